package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"order-forecast/pkg/calculator"
	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

// DefaultFallbackYears is how far back an empty history is zero-filled.
const DefaultFallbackYears = 7

// Adapter turns an order history into a dated forecast.
type Adapter struct {
	fitter        Fitter
	fallbackYears int
	logger        *slog.Logger
}

// NewAdapter wraps a fitter. fallbackYears <= 0 uses DefaultFallbackYears.
func NewAdapter(f Fitter, fallbackYears int, logger *slog.Logger) *Adapter {
	if fallbackYears <= 0 {
		fallbackYears = DefaultFallbackYears
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{fitter: f, fallbackYears: fallbackYears, logger: logger}
}

// Forecast fits the history and returns the horizon days following its last date.
// An empty history is replaced by zeros from fallbackYears ago through now.
// Fit errors are returned as-is; there is no fallback forecast.
func (a *Adapter) Forecast(ctx context.Context, history []models.OrderDay, horizon int, now time.Time) ([]models.ForecastPoint, error) {
	if horizon <= 0 {
		return []models.ForecastPoint{}, nil
	}

	series, err := calculator.DensifyOrders(history)
	if err != nil {
		return nil, fmt.Errorf("densify history: %w", err)
	}
	if len(series) == 0 {
		series = a.zeroHistory(now)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	predictor, err := a.fitter.Fit(series)
	if err != nil {
		return nil, fmt.Errorf("fit %d days: %w", len(series), err)
	}

	last, err := dates.Parse(series[len(series)-1].Date)
	if err != nil {
		return nil, err
	}
	future := make([]time.Time, horizon)
	for i := range future {
		future[i] = last.AddDate(0, 0, i+1)
	}
	points, err := predictor.Predict(future)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	a.logger.Debug("forecast fitted",
		"history_days", len(series),
		"horizon", horizon,
		"last_observed", dates.ISO(last),
		"duration", time.Since(start),
	)
	return points, nil
}

func (a *Adapter) zeroHistory(now time.Time) []models.OrderDay {
	days := dates.Between(now.AddDate(0, 0, -365*a.fallbackYears), now)
	out := make([]models.OrderDay, len(days))
	for i, d := range days {
		out[i] = models.OrderDay{Date: d}
	}
	return out
}
