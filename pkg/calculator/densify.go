package calculator

import (
	"time"

	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

// Densify returns one entry per calendar day from the earliest date to the latest
// (or to through, when it is later), ascending. Every entry is re-dated to its ISO
// day key through withDate. Entries sharing a date are merged; missing days come from empty.
func Densify[T any](items []T, dateOf func(T) string, withDate func(T, string) T, empty func(date string) T, merge func(a, b T) T, through time.Time) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	byDate := make(map[string]T, len(items))
	var first, last time.Time
	for i, it := range items {
		key := dateOf(it)
		d, err := dates.Parse(key)
		if err != nil {
			return nil, err
		}
		key = dates.ISO(d)
		it = withDate(it, key)
		if prev, ok := byDate[key]; ok {
			byDate[key] = merge(prev, it)
		} else {
			byDate[key] = it
		}
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}
	if !through.IsZero() && dates.Day(through).After(last) {
		last = through
	}

	days := dates.Between(first, last)
	out := make([]T, 0, len(days))
	for _, day := range days {
		if it, ok := byDate[day]; ok {
			out = append(out, it)
		} else {
			out = append(out, empty(day))
		}
	}
	return out, nil
}

// DensifyOrders fills the observed range of an order series with zero days.
func DensifyOrders(days []models.OrderDay) ([]models.OrderDay, error) {
	return DensifyOrdersThrough(days, time.Time{})
}

// DensifyOrdersThrough is DensifyOrders extended with zero days up to end.
func DensifyOrdersThrough(days []models.OrderDay, end time.Time) ([]models.OrderDay, error) {
	return Densify(days,
		func(d models.OrderDay) string { return d.Date },
		func(d models.OrderDay, date string) models.OrderDay { d.Date = date; return d },
		func(date string) models.OrderDay { return models.OrderDay{Date: date} },
		func(a, b models.OrderDay) models.OrderDay { return models.OrderDay{Date: a.Date, Qty: a.Qty + b.Qty} },
		end,
	)
}

// DensifyWaits fills the observed range of a wait series with sample-less days.
// Merged days are re-summarised under mode.
func DensifyWaits(days []models.AggregatedDay, mode models.Mode) ([]models.AggregatedDay, error) {
	return Densify(days,
		func(d models.AggregatedDay) string { return d.Date },
		func(d models.AggregatedDay, date string) models.AggregatedDay { d.Date = date; return d },
		func(date string) models.AggregatedDay { return models.AggregatedDay{Date: date} },
		func(a, b models.AggregatedDay) models.AggregatedDay {
			samples := make([]models.WeightedSample, 0, len(a.Samples)+len(b.Samples))
			samples = append(append(samples, a.Samples...), b.Samples...)
			return NewAggregatedDay(a.Date, samples, mode, 0)
		},
		time.Time{},
	)
}
