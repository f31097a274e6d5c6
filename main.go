package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool

	version = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "order-forecast",
		Short: "Order volume forecasts and customer wait times",
		Long: `Pulls order and despatch history from the ERP database, builds dense daily
series and serves forecasts and wait-time summaries over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (defaults and env only when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(warmCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
