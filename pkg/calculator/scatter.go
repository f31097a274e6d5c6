package calculator

import (
	"time"

	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

// Boundary decides whether a record exactly at the trailing-window cutoff is kept.
type Boundary int

const (
	BoundaryExclusive Boundary = iota // required date strictly after the cutoff
	BoundaryInclusive                 // required date on or after the cutoff
)

// RecentWindowDays is the trailing window of the scatter view.
const RecentWindowDays = 365

// Recent keeps records whose required date lies within windowDays of now.
func Recent(records []models.TransactionRecord, now time.Time, windowDays int, b Boundary) []models.TransactionRecord {
	cutoff := dates.Day(now).AddDate(0, 0, -windowDays)
	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		req := dates.Day(r.RequiredDate)
		if req.After(cutoff) || (b == BoundaryInclusive && req.Equal(cutoff)) {
			out = append(out, r)
		}
	}
	return out
}

// GroupSummarize emits one weighted summary per distinct key over the trailing
// 365 days, in first-seen key order.
func GroupSummarize(records []models.TransactionRecord, key models.GroupKey, mode models.Mode, now time.Time, b Boundary) []models.GroupSummaryPoint {
	buckets := make(map[string][]models.WeightedSample)
	var order []string
	for _, r := range Recent(records, now, RecentWindowDays, b) {
		k := key.Of(r)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], r.Sample())
	}

	out := make([]models.GroupSummaryPoint, 0, len(order))
	for _, k := range order {
		total, summary := Summarize(buckets[k], mode, 0)
		out = append(out, models.GroupSummaryPoint{Key: k, TotalWeight: total, Summary: summary})
	}
	return out
}
