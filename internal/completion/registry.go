package completion

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// Registry hands out one Tracker per project and evicts idle ones.
type Registry struct {
	engine  *Engine
	log     *logger.Logger
	idleTTL time.Duration
	onNew   []Observer

	mu       sync.Mutex
	trackers map[uuid.UUID]*Tracker
}

func NewRegistry(engine *Engine, idleTTL time.Duration, baseLog *logger.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = 15 * time.Minute
	}
	return &Registry{
		engine:   engine,
		log:      baseLog.With("component", "CompletionRegistry"),
		idleTTL:  idleTTL,
		trackers: map[uuid.UUID]*Tracker{},
	}
}

// OnChange subscribes fn to every tracker the registry creates from now on.
func (r *Registry) OnChange(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNew = append(r.onNew, fn)
}

func (r *Registry) Engine() *Engine { return r.engine }

func (r *Registry) Get(projectID uuid.UUID) *Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.trackers[projectID]; ok {
		t.touch()
		return t
	}
	t := NewTracker(projectID, r.engine, r.log)
	for _, fn := range r.onNew {
		t.Subscribe(fn)
	}
	r.trackers[projectID] = t
	observability.M().SetTrackers(len(r.trackers))
	return t
}

// Forget drops the tracker of a deleted project.
func (r *Registry) Forget(projectID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trackers, projectID)
	observability.M().SetTrackers(len(r.trackers))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

// Evict removes trackers unused since before now-idleTTL that have no
// subscribers beyond the registry's own hooks.
func (r *Registry) Evict(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := now.Add(-r.idleTTL)
	evicted := 0
	for id, t := range r.trackers {
		if t.idleSince().After(cutoff) || t.observerCount() > len(r.onNew) {
			continue
		}
		delete(r.trackers, id)
		evicted++
	}
	observability.M().SetTrackers(len(r.trackers))
	return evicted
}

// RunJanitor evicts idle trackers every interval until ctx ends.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Evict(now); n > 0 {
				r.log.Debug("evicted idle trackers", "count", n)
			}
		}
	}
}
