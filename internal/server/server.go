package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/internal/region"
	"github.com/mohammad-safakhou/capitol/internal/search"
	"github.com/mohammad-safakhou/capitol/internal/store"
	"github.com/mohammad-safakhou/capitol/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators behind the HTTP surface.
type Deps struct {
	Regions *region.Service
	// Checks are pinged by /readyz, keyed by the name reported on failure.
	Checks  map[string]Pinger
	Metrics bool
	Logger  *zap.Logger
}

// New builds the echo instance with middleware, renderer and routes.
func New(d Deps) (*echo.Echo, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = errorHandler(d.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Logger))
	if d.Metrics {
		e.Use(instrument)
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	root := e.Group("")
	(&HealthHandler{Checks: d.Checks}).Register(root)
	(&PagesHandler{Regions: d.Regions}).Register(root)
	return e, nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Warn("request", fields...)
			} else {
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}

// Run wires storage, reports and the configured search strategy, then
// serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
	if err != nil {
		return err
	}
	defer st.Close()

	reports, err := repository.NewReportRepository(ctx, repository.RepoType(cfg.Storage.Reports), cfg.Storage, st.DB)
	if err != nil {
		return err
	}
	if c, ok := reports.(io.Closer); ok {
		defer c.Close()
	}

	var bills region.BillSearcher
	switch cfg.Search.Engine {
	case config.SearchEngineIndex:
		idx := search.NewIndex(st, st, cfg.Search.IndexPath, logger.Named("index"))
		defer idx.Close()
		if _, err := idx.Rebuild(ctx); err != nil {
			return fmt.Errorf("initial index build: %w", err)
		}
		refresher, err := search.NewRefresher(idx, cfg.Search.ReindexCron, logger.Named("refresher"))
		if err != nil {
			return err
		}
		refreshCtx, stopRefresh := context.WithCancel(ctx)
		refresher.Start(refreshCtx)
		defer func() {
			stopRefresh()
			refresher.Wait()
		}()
		bills = idx
	default:
		bills = search.NewSubstring(st)
	}

	svc := region.NewService(st, reports, bills, logger.Named("region"))
	svc.Observer = searchObserver{}

	e, err := New(Deps{
		Regions: svc,
		Checks:  map[string]Pinger{"postgres": st, "reports": reports},
		Metrics: cfg.Telemetry.MetricsEnabled,
		Logger:  logger.Named("http"),
	})
	if err != nil {
		return err
	}
	srvCfg := cfg.Server.Normalize()
	e.Server.ReadTimeout = srvCfg.ReadTimeout
	e.Server.WriteTimeout = srvCfg.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.General.Listen), zap.String("search", bills.Strategy()))
		errCh <- e.Start(cfg.General.Listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
