package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"order-forecast/pkg/logging"
	"order-forecast/pkg/metrics"
)

// NewRouter builds the engine: recovery, access log, metrics, a per-request
// deadline, then the health, metrics and forecast routes.
func NewRouter(h *Handlers, m *metrics.Metrics, logger *slog.Logger, timeout time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.Middleware(logger))
	if m != nil {
		router.Use(m.Middleware())
	}
	if timeout > 0 {
		router.Use(deadline(timeout))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	h.RegisterRoutes(router)
	return router
}

func deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
