package models

import (
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → raw rows as read from the ERP database, before any derivation.
*/

// RawOrderRow is one sales order line (required date in the past, not cancelled or on hold).
type RawOrderRow struct {
	ItemCode        string
	CustomerCode    string
	SiteName        string
	QtyOrdered      float64
	ConversionUnits float64
	DateRequired    string
}

// RawDespatchRow is one despatched customer line joined to its sales order line.
type RawDespatchRow struct {
	ItemCode       string
	CustomerCode   string
	SiteName       string
	QtyEach        float64
	ProcessedDate  string
	DateRequired   string
	DespatchNo     string
	SalesTerritory string
	Category       string
	ItemType       string
	ParentCategory string
}

// CostTable maps an item code to its AUD cost per each.
type CostTable map[string]decimal.Decimal

/*
DOMAIN → immutable records built by the factories in factory.go.
*/

// TransactionRecord is one historical order or despatch line.
// DespatchedDate is zero for order lines.
type TransactionRecord struct {
	ItemCode       string          `json:"item_code"`
	CustomerCode   string          `json:"customer_code"`
	Site           string          `json:"site"`
	SalesTerritory string          `json:"sales_territory"`
	Category       string          `json:"category"`
	ItemType       string          `json:"type"`
	ParentCategory string          `json:"parent"`
	DespatchNo     string          `json:"despatch_no,omitempty"`
	RequiredDate   time.Time       `json:"date_required"`
	DespatchedDate time.Time       `json:"date_despatched"`
	Qty            int64           `json:"qty"`
	EstValue       decimal.Decimal `json:"est_value"`
	WaitDays       int             `json:"wait_time_days"`
}

// OrderDay is one calendar day of aggregated order volume.
type OrderDay struct {
	Date string  `json:"date"` // YYYY-MM-DD
	Qty  float64 `json:"qty"`
}

// WeightedSample is the unit of aggregation: weight is AUD value, magnitude is wait days.
type WeightedSample struct {
	Weight    float64 `json:"weight"`
	Magnitude float64 `json:"wait_time_days"`
}

// AggregatedDay summarises the samples observed on one day.
// WindowSize is only set on smoothed output.
type AggregatedDay struct {
	Date        string           `json:"date"`
	Samples     []WeightedSample `json:"waits"`
	TotalWeight float64          `json:"qty"`
	Summary     float64          `json:"wait_days"`
	WindowSize  int              `json:"window_size,omitempty"`
}

// GroupSummaryPoint is one point of the scatter view.
type GroupSummaryPoint struct {
	Key         string  `json:"key"`
	TotalWeight float64 `json:"qty"`
	Summary     float64 `json:"wait_days"`
}

// ForecastPoint is one predicted day; Qty is not clamped.
type ForecastPoint struct {
	Date string  `json:"date"`
	Qty  float64 `json:"qty"`
}

/*
QUERY → filter criteria.
*/

// Criteria narrows a record set; an empty field is ignored.
// Site and AltSite are prefixes, a record passes when it matches either.
type Criteria struct {
	ItemCode       string
	CustomerCode   string
	Site           string
	AltSite        string
	SalesTerritory string
	Category       string
	ItemType       string
	ParentCategory string
}
