package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"order-forecast/pkg/calculator"
	"order-forecast/pkg/config"
	"order-forecast/pkg/database"
	"order-forecast/pkg/forecast"
	"order-forecast/pkg/logging"
	"order-forecast/pkg/metrics"
	"order-forecast/pkg/models"
	"order-forecast/pkg/service"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	db      *sql.DB
	store   *database.Store
	svc     *service.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		ServiceName: "order-forecast",
		Environment: cfg.Logging.Environment,
		Version:     version,
	})
	slog.SetDefault(logger)

	db, dsnUsed, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	logger.Info("database configured", "dsn", dsnUsed, "years", cfg.Database.Years)

	m := metrics.New()
	store := database.NewStore(db, database.Options{
		Years:           cfg.Database.Years,
		ExcludeCustomer: cfg.Database.ExcludeCustomer,
		SiteAliases:     models.SiteAliases(cfg.Database.SiteAliases),
		Observer:        m,
		Logger:          logger,
	})

	hw := forecast.HoltWinters{
		Alpha:  cfg.Forecast.Alpha,
		Beta:   cfg.Forecast.Beta,
		Gamma:  cfg.Forecast.Gamma,
		Phi:    cfg.Forecast.Phi,
		Season: cfg.Forecast.Season,
	}
	boundary := calculator.BoundaryExclusive
	if cfg.Scatter.InclusiveBoundary {
		boundary = calculator.BoundaryInclusive
	}
	svc := service.New(store, forecast.NewAdapter(hw, cfg.Forecast.FallbackYears, logger), service.Options{
		CacheTTL:  cfg.Cache.TTL,
		TodayTTL:  cfg.Cache.TodayTTL,
		CacheSize: cfg.Cache.Size,
		Boundary:  boundary,
		Recorder:  m,
		Observer:  m,
		Logger:    logger,
	})

	return &app{cfg: cfg, logger: logger, metrics: m, db: db, store: store, svc: svc}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
