package calculator

import (
	"errors"

	"order-forecast/pkg/models"
)

// ErrNoBaseline means the comparison period has no orders to grow from.
var ErrNoBaseline = errors.New("no orders in the baseline period")

// PeriodTotal sums a forecast, clamped at zero.
func PeriodTotal(points []models.ForecastPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Qty
	}
	return max(0, sum)
}

// TrailingTotal sums the last n days of a history (all of it when shorter).
func TrailingTotal(days []models.OrderDay, n int) float64 {
	if n < 0 {
		n = 0
	}
	var sum float64
	for _, d := range days[max(0, len(days)-n):] {
		sum += d.Qty
	}
	return sum
}

// Total sums a whole history.
func Total(days []models.OrderDay) float64 {
	return TrailingTotal(days, len(days))
}

// Growth compares a forecast with the same number of trailing history days.
func Growth(history []models.OrderDay, forecast []models.ForecastPoint) (float64, error) {
	last := TrailingTotal(history, len(forecast))
	if last == 0 {
		return 0, ErrNoBaseline
	}
	return (PeriodTotal(forecast) - last) / last, nil
}
