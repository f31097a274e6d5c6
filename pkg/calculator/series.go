package calculator

import (
	"time"

	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

// OrderHistory sums order quantities per required date and densifies through end
// (normally today). No records gives an empty history.
func OrderHistory(records []models.TransactionRecord, end time.Time) ([]models.OrderDay, error) {
	byDate := make(map[string]float64)
	var order []string
	for _, r := range records {
		key := dates.ISO(r.RequiredDate)
		if _, ok := byDate[key]; !ok {
			order = append(order, key)
		}
		byDate[key] += float64(r.Qty)
	}

	days := make([]models.OrderDay, 0, len(order))
	for _, key := range order {
		days = append(days, models.OrderDay{Date: key, Qty: byDate[key]})
	}
	return DensifyOrdersThrough(days, end)
}

// WaitHistory groups despatch samples (weighted by eaches) by despatched date,
// summarises each day under mode and fills the gaps with empty days.
func WaitHistory(records []models.TransactionRecord, mode models.Mode) ([]models.AggregatedDay, error) {
	byDate := make(map[string][]models.WeightedSample)
	var order []string
	for _, r := range records {
		key := dates.ISO(r.DespatchedDate)
		if _, ok := byDate[key]; !ok {
			order = append(order, key)
		}
		byDate[key] = append(byDate[key], r.QtySample())
	}

	days := make([]models.AggregatedDay, 0, len(order))
	for _, key := range order {
		days = append(days, NewAggregatedDay(key, byDate[key], mode, 0))
	}
	return DensifyWaits(days, mode)
}
