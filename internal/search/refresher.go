package search

import (
	"context"
	"time"

	"github.com/gorhill/cronexpr"
	"go.uber.org/zap"
)

// Rebuilder is anything that can be rebuilt on a schedule.
type Rebuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

// Refresher rebuilds the index whenever its cron schedule fires.
type Refresher struct {
	target   Rebuilder
	schedule *cronexpr.Expression
	logger   *zap.Logger
	done     chan struct{}
}

// NewRefresher parses schedule (cron syntax, "@hourly" and friends included).
func NewRefresher(target Rebuilder, schedule string, logger *zap.Logger) (*Refresher, error) {
	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{target: target, schedule: expr, logger: logger, done: make(chan struct{})}, nil
}

// Start runs the schedule in the background until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for {
			now := time.Now()
			next := r.schedule.Next(now)
			if next.IsZero() {
				r.logger.Warn("reindex schedule has no future runs")
				return
			}
			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			if _, err := r.target.Rebuild(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("scheduled reindex failed", zap.Error(err))
			}
		}
	}()
}

// Wait blocks until the background loop has exited.
func (r *Refresher) Wait() { <-r.done }
