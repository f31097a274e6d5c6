package calculator

import (
	"slices"

	"order-forecast/pkg/models"
)

// Summarize collapses samples to (total weight, summary magnitude) under mode.
// No samples gives (0, 0). A positive windowSize divides the reported total only.
func Summarize(samples []models.WeightedSample, mode models.Mode, windowSize int) (total, summary float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	for _, s := range samples {
		total += s.Weight
	}

	switch mode {
	case models.ModeMean:
		summary = weightedMean(samples, total)
	case models.ModeMedian:
		summary = median(samples)
	case models.ModeMax:
		summary = samples[0].Magnitude
		for _, s := range samples[1:] {
			summary = max(summary, s.Magnitude)
		}
	case models.ModeMin:
		summary = samples[0].Magnitude
		for _, s := range samples[1:] {
			summary = min(summary, s.Magnitude)
		}
	case models.ModeMode:
		summary = weightedMode(samples)
	}

	if windowSize > 0 {
		total /= float64(windowSize)
	}
	return total, summary
}

// NewAggregatedDay summarises samples into a day. windowSize 0 leaves it unset.
func NewAggregatedDay(date string, samples []models.WeightedSample, mode models.Mode, windowSize int) models.AggregatedDay {
	total, summary := Summarize(samples, mode, windowSize)
	return models.AggregatedDay{
		Date:        date,
		Samples:     samples,
		TotalWeight: total,
		Summary:     summary,
		WindowSize:  windowSize,
	}
}

func weightedMean(samples []models.WeightedSample, total float64) float64 {
	if total == 0 {
		return 0
	}
	var acc float64
	for _, s := range samples {
		acc += s.Weight * s.Magnitude
	}
	return acc / total
}

// median ignores weights.
func median(samples []models.WeightedSample) float64 {
	mags := make([]float64, len(samples))
	for i, s := range samples {
		mags[i] = s.Magnitude
	}
	slices.Sort(mags)
	mid := len(mags) / 2
	if len(mags)%2 == 0 {
		return (mags[mid-1] + mags[mid]) / 2
	}
	return mags[mid]
}

// weightedMode picks the magnitude with the largest accumulated weight; the first to reach it wins.
func weightedMode(samples []models.WeightedSample) float64 {
	acc := make(map[float64]float64, len(samples))
	order := make([]float64, 0, len(samples))
	for _, s := range samples {
		if _, seen := acc[s.Magnitude]; !seen {
			order = append(order, s.Magnitude)
		}
		acc[s.Magnitude] += s.Weight
	}

	best, bestWeight := order[0], acc[order[0]]
	for _, m := range order[1:] {
		if acc[m] > bestWeight {
			best, bestWeight = m, acc[m]
		}
	}
	return best
}
