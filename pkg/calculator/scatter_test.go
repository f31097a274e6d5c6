package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-forecast/pkg/models"
)

var scatterNow = time.Date(2025, 6, 30, 15, 30, 0, 0, time.UTC)

func aged(days int, customer string, value int64, wait int) models.TransactionRecord {
	return models.TransactionRecord{
		CustomerCode: customer,
		RequiredDate: scatterNow.AddDate(0, 0, -days),
		EstValue:     decimal.NewFromInt(value),
		WaitDays:     wait,
	}
}

func TestRecent_BoundaryExclusive(t *testing.T) {
	records := []models.TransactionRecord{aged(365, "old", 1, 0), aged(364, "kept", 1, 0)}
	got := Recent(records, scatterNow, RecentWindowDays, BoundaryExclusive)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].CustomerCode)
}

func TestRecent_BoundaryInclusive(t *testing.T) {
	records := []models.TransactionRecord{aged(366, "older", 1, 0), aged(365, "edge", 1, 0), aged(364, "kept", 1, 0)}
	got := Recent(records, scatterNow, RecentWindowDays, BoundaryInclusive)
	require.Len(t, got, 2)
	assert.Equal(t, "edge", got[0].CustomerCode)
}

func TestGroupSummarize_FirstSeenOrder(t *testing.T) {
	records := []models.TransactionRecord{
		aged(10, "ZED", 10, 2),
		aged(20, "ACME", 30, 4),
		aged(30, "ZED", 30, 6),
		aged(400, "GONE", 99, 99),
	}
	got := GroupSummarize(records, models.GroupCustomer, models.ModeMean, scatterNow, BoundaryExclusive)
	require.Len(t, got, 2)
	assert.Equal(t, "ZED", got[0].Key)
	assert.Equal(t, 40.0, got[0].TotalWeight)
	assert.InDelta(t, 5.0, got[0].Summary, 1e-9) // (20 + 180) / 40
	assert.Equal(t, models.GroupSummaryPoint{Key: "ACME", TotalWeight: 30, Summary: 4}, got[1])
}

func TestGroupSummarize_Empty(t *testing.T) {
	assert.Empty(t, GroupSummarize(nil, models.GroupItem, models.ModeMedian, scatterNow, BoundaryExclusive))
}
