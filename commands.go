package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"order-forecast/pkg/api"
	"order-forecast/pkg/calculator"
	"order-forecast/pkg/service"
)

// serveCmd runs the HTTP API until SIGINT/SIGTERM.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts and wait times over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Logging.Environment == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			perSecond := rate.Limit(a.cfg.Server.ReloadPerHour / 3600)
			handlers := api.NewHandlers(a.svc, rate.NewLimiter(perSecond, a.cfg.Server.ReloadBurst), a.logger)
			router := api.NewRouter(handlers, a.metrics, a.logger, a.cfg.Server.RequestTimeout)

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				WriteTimeout:      a.cfg.Server.RequestTimeout + 30*time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			signalCh := make(chan os.Signal, 1)
			signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-signalCh:
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server: %w", err)
				}
			}

			a.logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}

// forecastCmd prints the forecast of one item. "-" forecasts all items.
func forecastCmd() *cobra.Command {
	var (
		days    int
		site    string
		altSite string
		dollars bool
	)
	cmd := &cobra.Command{
		Use:   "forecast <item_code>",
		Short: "Print the forecast of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			item := args[0]
			if item == "-" {
				item = ""
			}
			q := service.OrderQuery{ItemCode: item, Site: site, AltSite: altSite, Dollars: dollars}
			points, err := a.svc.Predictions(cmd.Context(), q, days)
			if err != nil {
				return fmt.Errorf("forecast %s: %w", args[0], err)
			}

			// date ; qty
			for _, p := range points {
				fmt.Printf("%s ; %.2f\n", p.Date, p.Qty)
			}
			fmt.Printf("total ; %.2f\n", calculator.PeriodTotal(points))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Forecast horizon in days")
	cmd.Flags().StringVar(&site, "site", "", "Site name prefix")
	cmd.Flags().StringVar(&altSite, "site2", "", "Alternate site name prefix")
	cmd.Flags().BoolVar(&dollars, "dollars", false, "Forecast AUD value instead of eaches")
	return cmd
}

// warmCmd forecasts every item ordered in the trailing window and prints the totals.
func warmCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Forecast every ordered item",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			codes, err := a.store.ItemCodes(ctx)
			if err != nil {
				return err
			}

			bar := progressbar.Default(int64(len(codes)))
			totals := make([]float64, len(codes))
			failed := 0
			for i, code := range codes {
				points, err := a.svc.Predictions(ctx, service.OrderQuery{ItemCode: code}, days)
				if err != nil {
					failed++
					totals[i] = -1
					a.logger.Warn("forecast failed", "item_code", code, "error", err)
				} else {
					totals[i] = calculator.PeriodTotal(points)
				}
				_ = bar.Add(1)
			}

			// item ; forecast total over the horizon
			for i, code := range codes {
				if totals[i] < 0 {
					fmt.Printf("%s ; failed\n", code)
					continue
				}
				fmt.Printf("%s ; %.2f\n", code, totals[i])
			}
			fmt.Printf("items=%d ; failed=%d\n", len(codes), failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Forecast horizon in days")
	return cmd
}
