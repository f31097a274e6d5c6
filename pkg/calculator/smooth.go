package calculator

import "order-forecast/pkg/models"

// SmoothWaits re-aggregates every day over [i-halfWidth, i+halfWidth], truncated at the
// series ends. Windows pool the raw samples of each day, never the day summaries.
func SmoothWaits(series []models.AggregatedDay, halfWidth int, mode models.Mode) []models.AggregatedDay {
	if halfWidth < 0 {
		halfWidth = 0
	}
	n := len(series)
	out := make([]models.AggregatedDay, n)
	for i := range series {
		lo, hi := window(i, n, halfWidth)
		var pooled []models.WeightedSample
		for j := lo; j < hi; j++ {
			pooled = append(pooled, series[j].Samples...)
		}
		out[i] = NewAggregatedDay(series[i].Date, pooled, mode, hi-lo)
	}
	return out
}

// MovingAverage is the unweighted centred mean of an order series with half window
// smoothingDays/2, computed from prefix sums.
func MovingAverage(days []models.OrderDay, smoothingDays int) []models.OrderDay {
	n := len(days)
	half := smoothingDays / 2
	if n == 0 || half <= 0 {
		return days
	}

	prefix := make([]float64, n+1)
	for i, d := range days {
		prefix[i+1] = prefix[i] + d.Qty
	}

	out := make([]models.OrderDay, n)
	for i, d := range days {
		lo, hi := window(i, n, half)
		out[i] = models.OrderDay{Date: d.Date, Qty: (prefix[hi] - prefix[lo]) / float64(hi-lo)}
	}
	return out
}

// window returns the half-open bounds of position i's tapered window.
func window(i, n, half int) (lo, hi int) {
	return max(0, i-half), min(n, i+half+1)
}
