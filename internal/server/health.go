package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// readyTimeout bounds each readiness ping.
const readyTimeout = 2 * time.Second

// Pinger is any dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Checks map[string]Pinger
}

func (h *HealthHandler) Register(g *echo.Group) {
	g.GET("/healthz", h.live)
	g.GET("/readyz", h.ready)
}

func (h *HealthHandler) live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) ready(c echo.Context) error {
	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := map[string]string{}
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
		err := h.Checks[name].Ping(ctx)
		cancel()
		if err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"status": "unavailable", "failed": failed})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
