package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/services"
)

const defaultDeadlineInterval = time.Hour

// DeadlineWorker runs the deadline reminder pass on a fixed interval. Passes
// never overlap; a tick that arrives during a pass is skipped.
type DeadlineWorker struct {
	log      *logger.Logger
	svc      services.DeadlineService
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

func NewDeadlineWorker(baseLog *logger.Logger, svc services.DeadlineService, interval time.Duration) *DeadlineWorker {
	if interval <= 0 {
		interval = defaultDeadlineInterval
	}
	return &DeadlineWorker{
		log:      baseLog.With("component", "DeadlineWorker"),
		svc:      svc,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs one pass immediately and then one per interval until ctx ends.
func (w *DeadlineWorker) Start(ctx context.Context) {
	go func() {
		w.RunOnce(ctx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs a single pass and returns the number of notifications
// created. It returns 0 without running when another pass is in progress.
func (w *DeadlineWorker) RunOnce(ctx context.Context) (created int) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.log.Debug("deadline pass already running")
		return 0
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	defer func() {
		if r := recover(); r != nil {
			w.log.Error("deadline pass panic", "panic", r)
			created = 0
		}
	}()

	started := time.Now()
	n, err := w.svc.Run(dbctx.Context{Ctx: ctx}, w.now())
	if err != nil {
		w.log.Warn("deadline pass failed", "error", err, "created", n)
		return n
	}
	w.log.Info("deadline pass done", "created", n, "duration", time.Since(started).String())
	return n
}
