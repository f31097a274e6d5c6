package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCosts = CostTable{"A100": decimal.RequireFromString("2.50")}

func TestNewOrderRecord_Eaches(t *testing.T) {
	rec, ok, err := NewOrderRecord(RawOrderRow{
		ItemCode: "A100", SiteName: "11 Warehouse", QtyOrdered: 3, ConversionUnits: 12, DateRequired: "2024-05-01",
	}, testCosts, SiteAliases{"11": "90 Prosperity"}, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(36), rec.Qty)
	assert.Equal(t, "90 Prosperity", rec.Site)
	assert.True(t, rec.EstValue.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.RequiredDate)
}

func TestNewOrderRecord_DollarsSkipsUnknownCost(t *testing.T) {
	_, ok, err := NewOrderRecord(RawOrderRow{ItemCode: "ZZZ", QtyOrdered: 1, ConversionUnits: 1, DateRequired: "2024-05-01"}, testCosts, nil, true)
	require.NoError(t, err)
	assert.False(t, ok)

	rec, ok, err := NewOrderRecord(RawOrderRow{ItemCode: "A100", QtyOrdered: 1, ConversionUnits: 3, DateRequired: "2024-05-01"}, testCosts, nil, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), rec.Qty) // 3 × 2.50 truncated
}

func TestNewOrderRecord_BadDate(t *testing.T) {
	_, _, err := NewOrderRecord(RawOrderRow{ItemCode: "A100", DateRequired: "May 1st"}, testCosts, nil, false)
	require.Error(t, err)
}

func TestNewDespatchRecord_WaitClampedAtZero(t *testing.T) {
	rec, err := NewDespatchRecord(RawDespatchRow{
		ItemCode: "A100", QtyEach: 4, ProcessedDate: "2024-05-01", DateRequired: "2024-05-10",
	}, testCosts, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.WaitDays)
	assert.Equal(t, WeightedSample{Weight: 10, Magnitude: 0}, rec.Sample())
}

func TestNewDespatchRecord_Wait(t *testing.T) {
	rec, err := NewDespatchRecord(RawDespatchRow{
		ItemCode: "A100", QtyEach: 2, ProcessedDate: "12/05/2024", DateRequired: "2024-05-10",
	}, testCosts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.WaitDays)
	assert.Equal(t, 5.0, rec.Sample().Weight)
	assert.Equal(t, WeightedSample{Weight: 2, Magnitude: 2}, rec.QtySample())
}

func TestNewDespatchRecord_NoRequiredDate(t *testing.T) {
	rec, err := NewDespatchRecord(RawDespatchRow{ItemCode: "B1", QtyEach: 1, ProcessedDate: "2024-05-01"}, testCosts, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.WaitDays)
	assert.True(t, rec.EstValue.IsZero())
	assert.Equal(t, 1.0, rec.QtySample().Weight)
}

func TestSiteAliases_LongestPrefixWins(t *testing.T) {
	aliases := SiteAliases{"1": "One", "11": "Eleven", "110": "Hundred Ten"}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "Eleven", aliases.Canonical("1150"))
		assert.Equal(t, "Hundred Ten", aliases.Canonical("1100"))
		assert.Equal(t, "One", aliases.Canonical("1200"))
		assert.Equal(t, "2000", aliases.Canonical("2000"))
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeMean, m)
	for _, s := range []string{"mean", "median", "max", "min", "mode"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
	_, err = ParseMode("average")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestGroupKey(t *testing.T) {
	rec := TransactionRecord{CustomerCode: "C1", ItemCode: "I1", Site: "S1", Category: "Cat", ItemType: "T", SalesTerritory: "VIC", ParentCategory: "P"}
	cases := map[string]string{
		"customer_code": "C1", "item_code": "I1", "site_name": "S1", "category": "Cat",
		"type": "T", "sales_territory": "VIC", "parent": "P",
	}
	for in, want := range cases {
		k, err := ParseGroupKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, k.Of(rec), in)
	}
	_, err := ParseGroupKey("warehouse")
	require.ErrorIs(t, err, ErrUnknownGroupKey)
}
