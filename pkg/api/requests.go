package api

import (
	"encoding/json"

	"order-forecast/pkg/models"
	"order-forecast/pkg/service"
)

// noneSentinel in a path segment or filter stands for "no value".
const noneSentinel = "-NONE-"

func none(s string) string {
	if s == noneSentinel {
		return ""
	}
	return s
}

type orderRequest struct {
	Days              int    `form:"days,default=30" binding:"gte=0,lte=3650"`
	Smoothing         int    `form:"smoothing,default=14" binding:"gte=0"`
	SiteFilter        string `form:"site_filter"`
	SiteFilter2       string `form:"site_filter2"`
	Dollars           bool   `form:"dollars"`
	TotalOnly         bool   `form:"total_only"`
	TotalPastOnly     bool   `form:"total_past_only"`
	YearlyGrowthOnly  bool   `form:"yearly_growth_only"`
	PastOrdersOnly    bool   `form:"past_orders_only"`
	FutureOrdersOnly  bool   `form:"future_orders_only"`
	AllDatesOnly      bool   `form:"all_dates_only"`
	ReloadCache       bool   `form:"reload_cache"`
	OrdersPlacedToday bool   `form:"orders_placed_today"`
}

func (r orderRequest) query(itemCode string) service.OrderQuery {
	return service.OrderQuery{
		ItemCode: none(itemCode),
		Site:     none(r.SiteFilter),
		AltSite:  none(r.SiteFilter2),
		Dollars:  r.Dollars,
	}
}

// needsForecast is false only for a plain past-orders view.
func (r orderRequest) needsForecast() bool {
	return !r.PastOrdersOnly || r.TotalOnly || r.YearlyGrowthOnly
}

type waitRequest struct {
	CustomerCode     string `form:"customer_code"`
	SiteFilter       string `form:"site_filter"`
	SalesTerritory   string `form:"sales_territory"`
	Category         string `form:"category"`
	ItemType         string `form:"type"`
	Parent           string `form:"parent"`
	Mode             string `form:"mode,default=mean" binding:"oneof=mean median max min mode"`
	Smoothing        int    `form:"smoothing" binding:"gte=0"`
	ShowWaits        bool   `form:"show_waits"`
	LinesOnly        bool   `form:"lines_only"`
	Limit            int    `form:"limit" binding:"gte=0"`
	ScatterPlotGroup string `form:"scatter_plot_group"`
}

func (r waitRequest) query(itemCode string) service.WaitQuery {
	return service.WaitQuery{
		ItemCode:       none(itemCode),
		CustomerCode:   none(r.CustomerCode),
		Site:           none(r.SiteFilter),
		SalesTerritory: none(r.SalesTerritory),
		Category:       none(r.Category),
		ItemType:       none(r.ItemType),
		ParentCategory: none(r.Parent),
	}
}

// groupKey resolves scatter_plot_group; the sentinel means per customer.
func (r waitRequest) groupKey() (models.GroupKey, error) {
	if r.ScatterPlotGroup == noneSentinel {
		return models.GroupCustomer, nil
	}
	return models.ParseGroupKey(r.ScatterPlotGroup)
}

// datePoint encodes as a [date, qty] pair.
type datePoint struct {
	Date string
	Qty  float64
}

func (p datePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Date, p.Qty})
}

func historyPoints(days []models.OrderDay) []datePoint {
	out := make([]datePoint, len(days))
	for i, d := range days {
		out[i] = datePoint{Date: d.Date, Qty: d.Qty}
	}
	return out
}

func forecastPoints(points []models.ForecastPoint) []datePoint {
	out := make([]datePoint, len(points))
	for i, p := range points {
		out[i] = datePoint{Date: p.Date, Qty: p.Qty}
	}
	return out
}

func asOrderDays(points []datePoint) []models.OrderDay {
	out := make([]models.OrderDay, len(points))
	for i, p := range points {
		out[i] = models.OrderDay{Date: p.Date, Qty: p.Qty}
	}
	return out
}

type orderResponse struct {
	ItemCode              *string     `json:"item_code"`
	Days                  int         `json:"days"`
	Predictions           []datePoint `json:"predictions"`
	PastOrders            []datePoint `json:"past_orders"`
	PredictionPeriodTotal *float64    `json:"prediction_period_total"`
	PastOrdersTotal       float64     `json:"past_orders_total"`
}

type waitSample struct {
	Qty          float64 `json:"qty"`
	WaitTimeDays float64 `json:"wait_time_days"`
}

type waitDateDetail struct {
	Date  string       `json:"date"`
	Waits []waitSample `json:"waits"`
}

type waitDateSummary struct {
	Date     string  `json:"date"`
	Qty      float64 `json:"qty"`
	WaitDays float64 `json:"wait_days"`
}
