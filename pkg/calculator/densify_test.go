package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

func day(s string) time.Time {
	d, err := dates.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDense(t *testing.T, got []string, start, end string) {
	t.Helper()
	s, e := day(start), day(end)
	require.Len(t, got, dates.DaysBetween(s, e)+1)
	for i, d := range got {
		assert.Equal(t, dates.ISO(s.AddDate(0, 0, i)), d)
	}
}

func orderDates(days []models.OrderDay) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}

func TestDensifyOrders_FillsGapsAscending(t *testing.T) {
	in := []models.OrderDay{{Date: "2024-03-03", Qty: 3}, {Date: "2024-02-28", Qty: 1}, {Date: "2024-03-01", Qty: 2}}
	got, err := DensifyOrders(in)
	require.NoError(t, err)
	assertDense(t, orderDates(got), "2024-02-28", "2024-03-03")
	assert.Equal(t, []float64{1, 0, 2, 0, 3}, []float64{got[0].Qty, got[1].Qty, got[2].Qty, got[3].Qty, got[4].Qty})
}

func TestDensifyOrders_EmptyAndSingle(t *testing.T) {
	got, err := DensifyOrders(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = DensifyOrders([]models.OrderDay{{Date: "2024-01-01", Qty: 4}})
	require.NoError(t, err)
	assert.Equal(t, []models.OrderDay{{Date: "2024-01-01", Qty: 4}}, got)
}

func TestDensifyOrders_MergesRepeatedDates(t *testing.T) {
	got, err := DensifyOrders([]models.OrderDay{{Date: "2024-01-01", Qty: 4}, {Date: "2024-01-02", Qty: 1}, {Date: "2024-01-01", Qty: 6}})
	require.NoError(t, err)
	assert.Equal(t, []models.OrderDay{{Date: "2024-01-01", Qty: 10}, {Date: "2024-01-02", Qty: 1}}, got)
}

func TestDensifyOrders_Idempotent(t *testing.T) {
	dense := []models.OrderDay{{Date: "2024-01-30", Qty: 1}, {Date: "2024-01-31", Qty: 0}, {Date: "2024-02-01", Qty: 7.5}}
	got, err := DensifyOrders(dense)
	require.NoError(t, err)
	assert.Equal(t, dense, got)
}

func TestDensifyOrders_BadDate(t *testing.T) {
	_, err := DensifyOrders([]models.OrderDay{{Date: "yesterday"}})
	require.Error(t, err)
}

func TestDensifyOrdersThrough_ExtendsToEnd(t *testing.T) {
	got, err := DensifyOrdersThrough([]models.OrderDay{{Date: "2024-01-01", Qty: 2}}, day("2024-01-04"))
	require.NoError(t, err)
	assertDense(t, orderDates(got), "2024-01-01", "2024-01-04")
	assert.Zero(t, got[3].Qty)

	// an end inside the observed range changes nothing
	got, err = DensifyOrdersThrough([]models.OrderDay{{Date: "2024-01-01"}, {Date: "2024-01-03"}}, day("2024-01-02"))
	require.NoError(t, err)
	assertDense(t, orderDates(got), "2024-01-01", "2024-01-03")
}

func TestDensifyWaits_WeekendsIncluded(t *testing.T) {
	// Friday to Monday
	in := []models.AggregatedDay{
		NewAggregatedDay("2024-03-04", samples(1, 2), models.ModeMean, 0),
		NewAggregatedDay("2024-03-01", samples(1, 4), models.ModeMean, 0),
	}
	got, err := DensifyWaits(in, models.ModeMean)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "2024-03-02", got[1].Date)
	assert.Empty(t, got[1].Samples)
	assert.Zero(t, got[1].TotalWeight)
	assert.Zero(t, got[1].Summary)
	assert.Equal(t, 2.0, got[3].Summary)
}

func TestOrderHistory_SumsPerDayThroughToday(t *testing.T) {
	records := []models.TransactionRecord{
		{RequiredDate: day("2024-01-02"), Qty: 5},
		{RequiredDate: day("2024-01-01"), Qty: 3},
		{RequiredDate: day("2024-01-02"), Qty: 2},
	}
	got, err := OrderHistory(records, day("2024-01-05"))
	require.NoError(t, err)
	assertDense(t, orderDates(got), "2024-01-01", "2024-01-05")
	assert.Equal(t, 3.0, got[0].Qty)
	assert.Equal(t, 7.0, got[1].Qty)

	got, err = OrderHistory(nil, day("2024-01-05"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWaitHistory_GroupsByDespatchDate(t *testing.T) {
	rec := func(despatched string, qty int64, wait int) models.TransactionRecord {
		return models.TransactionRecord{DespatchedDate: day(despatched), Qty: qty, EstValue: decimal.NewFromInt(1000), WaitDays: wait}
	}
	got, err := WaitHistory([]models.TransactionRecord{
		rec("2024-01-03", 10, 4),
		rec("2024-01-01", 5, 0),
		rec("2024-01-03", 30, 0),
	}, models.ModeMean)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 5.0, got[0].TotalWeight)
	assert.Empty(t, got[1].Samples)
	assert.Equal(t, 40.0, got[2].TotalWeight)
	assert.InDelta(t, 1.0, got[2].Summary, 1e-9)
}

func TestWaitHistory_UncostedLinesKeepTheirWeight(t *testing.T) {
	rec, err := models.NewDespatchRecord(models.RawDespatchRow{
		ItemCode:      "NOCOST",
		CustomerCode:  "C1",
		DateRequired:  "2024-01-05",
		ProcessedDate: "2024-01-10",
		QtyEach:       12,
		DespatchNo:    "D1",
	}, models.CostTable{}, nil)
	require.NoError(t, err)
	assert.True(t, rec.EstValue.IsZero())

	got, err := WaitHistory([]models.TransactionRecord{rec}, models.ModeMean)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-10", got[0].Date)
	assert.Equal(t, 12.0, got[0].TotalWeight)
	assert.InDelta(t, 5.0, got[0].Summary, 1e-9)
}

func TestDensifyOrders_NormalisesObservedDates(t *testing.T) {
	got, err := DensifyOrders([]models.OrderDay{{Date: "01/01/2024", Qty: 1}, {Date: "2024-01-03", Qty: 3}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, orderDates(got))
	assert.Equal(t, 1.0, got[0].Qty)
}
