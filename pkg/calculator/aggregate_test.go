package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"order-forecast/pkg/models"
)

var allModes = []models.Mode{models.ModeMean, models.ModeMedian, models.ModeMax, models.ModeMin, models.ModeMode}

func samples(pairs ...float64) []models.WeightedSample {
	out := make([]models.WeightedSample, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.WeightedSample{Weight: pairs[i], Magnitude: pairs[i+1]})
	}
	return out
}

func TestSummarize_EmptyIsZeroForEveryMode(t *testing.T) {
	for _, m := range allModes {
		total, summary := Summarize(nil, m, 0)
		assert.Zero(t, total, m.String())
		assert.Zero(t, summary, m.String())

		total, summary = Summarize([]models.WeightedSample{}, m, 7)
		assert.Zero(t, total, m.String())
		assert.Zero(t, summary, m.String())
	}
}

func TestSummarize_Mean(t *testing.T) {
	total, summary := Summarize(samples(1, 2, 3, 6), models.ModeMean, 0)
	assert.Equal(t, 4.0, total)
	assert.InDelta(t, 5.0, summary, 1e-9) // (2 + 18) / 4
}

func TestSummarize_MeanScaleInvariant(t *testing.T) {
	base := samples(1, 2, 3, 6, 0.5, 10)
	scaled := make([]models.WeightedSample, len(base))
	for i, s := range base {
		scaled[i] = models.WeightedSample{Weight: s.Weight * 37.5, Magnitude: s.Magnitude}
	}
	_, a := Summarize(base, models.ModeMean, 0)
	_, b := Summarize(scaled, models.ModeMean, 0)
	assert.InDelta(t, a, b, 1e-9)
}

func TestSummarize_MeanZeroWeights(t *testing.T) {
	total, summary := Summarize(samples(0, 4, 0, 8), models.ModeMean, 0)
	assert.Zero(t, total)
	assert.Zero(t, summary)
}

func TestSummarize_MedianIgnoresWeights(t *testing.T) {
	_, odd := Summarize(samples(1, 9, 1, 1, 1, 4), models.ModeMedian, 0)
	assert.Equal(t, 4.0, odd)

	_, even := Summarize(samples(1, 1, 1, 2, 1, 3, 1, 10), models.ModeMedian, 0)
	assert.Equal(t, 2.5, even)

	_, reweighted := Summarize(samples(100, 1, 0.1, 2, 7, 3, 3, 10), models.ModeMedian, 0)
	assert.Equal(t, even, reweighted)
}

func TestSummarize_MaxMin(t *testing.T) {
	s := samples(5, 3, 1, 12, 9, 0)
	_, hi := Summarize(s, models.ModeMax, 0)
	_, lo := Summarize(s, models.ModeMin, 0)
	assert.Equal(t, 12.0, hi)
	assert.Equal(t, 0.0, lo)
}

func TestSummarize_ModeByAccumulatedWeight(t *testing.T) {
	// 2 occurs three times with little weight, 7 once with more
	_, got := Summarize(samples(1, 2, 1, 2, 1, 2, 10, 7), models.ModeMode, 0)
	assert.Equal(t, 7.0, got)
}

func TestSummarize_ModeTieKeepsFirstSeen(t *testing.T) {
	_, got := Summarize(samples(2, 5, 1, 3, 1, 3, 2, 9), models.ModeMode, 0)
	assert.Equal(t, 5.0, got)
}

func TestSummarize_WindowDividesTotalOnly(t *testing.T) {
	s := samples(4, 1, 2, 4)
	total, summary := Summarize(s, models.ModeMean, 3)
	rawTotal, rawSummary := Summarize(s, models.ModeMean, 0)
	assert.Equal(t, 2.0, total)
	assert.Equal(t, 6.0, rawTotal)
	assert.Equal(t, rawSummary, summary)
}

func TestNewAggregatedDay_TotalMatchesSamples(t *testing.T) {
	d := NewAggregatedDay("2024-01-01", samples(1.5, 2, 2.5, 4), models.ModeMax, 0)
	assert.Equal(t, 4.0, d.TotalWeight)
	assert.Equal(t, 4.0, d.Summary)
	assert.Zero(t, d.WindowSize)
}
