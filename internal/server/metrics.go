package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "capitol",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "capitol",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	searchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "capitol",
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Searches by the strategy that answered them.",
	}, []string{"strategy"})
)

// instrument records request counts and latency per route template. Errors
// are handed to the error handler here so the recorded status is final.
func instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request().Method
		httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
		httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return nil
	}
}

// searchObserver counts searches per strategy.
type searchObserver struct{}

func (searchObserver) ObserveSearch(strategy string) {
	searchQueries.WithLabelValues(strategy).Inc()
}
