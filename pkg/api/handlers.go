package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"order-forecast/pkg/calculator"
	"order-forecast/pkg/models"
	"order-forecast/pkg/service"
)

// Forecaster is the subset of service.Service the handlers use.
type Forecaster interface {
	Orders(ctx context.Context, q service.OrderQuery) ([]models.OrderDay, error)
	Predictions(ctx context.Context, q service.OrderQuery, days int) ([]models.ForecastPoint, error)
	OrdersPlacedToday(ctx context.Context, dollars bool) (float64, error)
	WaitDays(ctx context.Context, q service.WaitQuery, mode models.Mode, smoothing int) ([]models.AggregatedDay, error)
	Scatter(ctx context.Context, q service.WaitQuery, key models.GroupKey, mode models.Mode) ([]models.GroupSummaryPoint, error)
	Lines(ctx context.Context, q service.WaitQuery, limit int) ([]models.TransactionRecord, error)
	RawWaits(ctx context.Context) ([]models.TransactionRecord, error)
	Reload()
}

// Handlers serves the order forecast and wait-time routes.
type Handlers struct {
	svc    Forecaster
	reload *rate.Limiter
	logger *slog.Logger
}

// NewHandlers creates Handlers. reload throttles reload_cache requests.
func NewHandlers(svc Forecaster, reload *rate.Limiter, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, reload: reload, logger: logger}
}

// RegisterRoutes registers the forecast routes on the router
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.GetOrders)
	router.GET("/:item_code", h.GetOrders)
	router.GET("/wait/", h.GetWaits)
	router.GET("/wait/:item_code", h.GetWaits)
}

// GetOrders handles the order history and forecast views
func (h *Handlers) GetOrders(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, h.logger, ErrBadRequest(err.Error()).Wrap(err))
		return
	}
	ctx := c.Request.Context()

	if req.OrdersPlacedToday {
		total, err := h.svc.OrdersPlacedToday(ctx, req.Dollars)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders_placed_today": int64(total)})
		return
	}

	if req.ReloadCache {
		if h.reload != nil && !h.reload.Allow() {
			respondError(c, h.logger, ErrRateLimitExceeded())
			return
		}
		h.svc.Reload()
	}

	if req.YearlyGrowthOnly {
		req.Days = 365
	}
	q := req.query(c.Param("item_code"))
	h.logger.Debug("order request", "item_code", q.ItemCode, "days", req.Days, "dollars", q.Dollars)

	past, err := h.svc.Orders(ctx, q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var predictions []models.ForecastPoint
	if req.needsForecast() {
		if predictions, err = h.svc.Predictions(ctx, q, req.Days); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	switch {
	case req.TotalOnly:
		c.JSON(http.StatusOK, gin.H{"total": int64(calculator.PeriodTotal(predictions))})
	case req.TotalPastOnly:
		c.JSON(http.StatusOK, gin.H{"total_past": calculator.TrailingTotal(past, req.Days)})
	case req.YearlyGrowthOnly:
		growth, err := calculator.Growth(past, predictions)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"growth_percentage": growth})
	case req.PastOrdersOnly:
		c.JSON(http.StatusOK, historyPoints(calculator.MovingAverage(past, req.Smoothing)))
	case req.FutureOrdersOnly:
		future := asOrderDays(forecastPoints(predictions))
		c.JSON(http.StatusOK, historyPoints(calculator.MovingAverage(future, req.Smoothing)))
	case req.AllDatesOnly:
		all := append(historyPoints(past), forecastPoints(predictions)...)
		c.JSON(http.StatusOK, historyPoints(calculator.MovingAverage(asOrderDays(all), req.Smoothing)))
	default:
		c.JSON(http.StatusOK, newOrderResponse(q.ItemCode, req.Days, past, predictions))
	}
}

func newOrderResponse(itemCode string, days int, past []models.OrderDay, predictions []models.ForecastPoint) orderResponse {
	resp := orderResponse{
		Days:            days,
		Predictions:     forecastPoints(predictions),
		PastOrders:      historyPoints(past),
		PastOrdersTotal: calculator.Total(past),
	}
	if itemCode != "" {
		resp.ItemCode = &itemCode
	}
	total := calculator.PeriodTotal(predictions)
	resp.PredictionPeriodTotal = &total
	return resp
}

// GetWaits handles the wait-time views
func (h *Handlers) GetWaits(c *gin.Context) {
	var req waitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, h.logger, ErrBadRequest(err.Error()).Wrap(err))
		return
	}
	ctx := c.Request.Context()
	q := req.query(c.Param("item_code"))

	if req.LinesOnly {
		lines, err := h.svc.Lines(ctx, q, req.Limit)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines})
		return
	}

	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.ScatterPlotGroup != "" {
		key, err := req.groupKey()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		points, err := h.svc.Scatter(ctx, q, key, mode)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"group": key.String(), "mode": mode.String(), "points": points})
		return
	}

	days, err := h.svc.WaitDays(ctx, q, mode, req.Smoothing)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.ShowWaits {
		raw, err := h.svc.RawWaits(ctx)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		detail := make([]waitDateDetail, len(days))
		for i, d := range days {
			waits := make([]waitSample, len(d.Samples))
			for j, s := range d.Samples {
				waits[j] = waitSample{Qty: s.Weight, WaitTimeDays: s.Magnitude}
			}
			detail[i] = waitDateDetail{Date: d.Date, Waits: waits}
		}
		c.JSON(http.StatusOK, gin.H{"wait_times": raw, "wait_dates": detail})
		return
	}

	summary := make([]waitDateSummary, len(days))
	for i, d := range days {
		summary[i] = waitDateSummary{Date: d.Date, Qty: d.TotalWeight, WaitDays: d.Summary}
	}
	c.JSON(http.StatusOK, gin.H{"wait_dates": summary})
}
