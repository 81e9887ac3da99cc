package completion

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// Observer receives every new state of a tracker. It must not block.
type Observer func(Result)

// Tracker owns the live completion state of one project.
type Tracker struct {
	projectID uuid.UUID
	engine    *Engine
	log       *logger.Logger

	// computeMu serializes recomputes and override writes so a recompute
	// never reads overrides older than a write that finished before it.
	computeMu sync.Mutex

	mu        sync.RWMutex
	state     Result
	ready     bool
	gen       uint64
	observers map[int]Observer
	nextObs   int

	lastUsed atomic.Int64
}

func NewTracker(projectID uuid.UUID, engine *Engine, baseLog *logger.Logger) *Tracker {
	t := &Tracker{
		projectID: projectID,
		engine:    engine,
		log:       baseLog.With("component", "CompletionTracker", "project_id", projectID),
		observers: map[int]Observer{},
	}
	t.touch()
	return t
}

func (t *Tracker) ProjectID() uuid.UUID { return t.projectID }

func (t *Tracker) touch() { t.lastUsed.Store(time.Now().UnixNano()) }

func (t *Tracker) idleSince() time.Time { return time.Unix(0, t.lastUsed.Load()) }

// Recompute reloads the project and publishes the result.
func (t *Tracker) Recompute(ctx context.Context) (Result, error) {
	t.touch()
	t.computeMu.Lock()
	defer t.computeMu.Unlock()

	t.mu.RLock()
	startGen := t.gen
	t.mu.RUnlock()

	res, err := t.engine.Compute(ctx, t.projectID)
	if err != nil {
		return Result{}, err
	}

	t.mu.Lock()
	if t.gen != startGen {
		// A local change landed while loading; keep it.
		current := t.state.clone()
		t.mu.Unlock()
		return current, nil
	}
	t.state = res
	t.ready = true
	t.gen++
	t.mu.Unlock()

	t.notify(res)
	return res.clone(), nil
}

// SetOverride applies the flag locally through the merge rule, notifies
// observers, then persists it. A failed write is logged and the local state
// is kept.
func (t *Tracker) SetOverride(ctx context.Context, section project.Section, isComplete bool) Result {
	t.touch()
	if _, ok := t.Snapshot(); !ok {
		if _, err := t.Recompute(ctx); err != nil {
			t.log.Warn("initial recompute failed", "error", err)
		}
	}

	t.mu.Lock()
	base := t.state
	if base.ProjectID == uuid.Nil {
		base.ProjectID = t.projectID
	}
	next := base.withOverride(section, isComplete)
	t.state = next
	t.ready = true
	t.gen++
	t.mu.Unlock()

	t.notify(next)

	t.computeMu.Lock()
	err := t.engine.Overrides().Set(ctx, t.projectID, section, isComplete)
	t.computeMu.Unlock()
	observability.M().OverrideWrite(err)
	if err != nil {
		t.log.Error("persist override failed", "section", section, "is_complete", isComplete, "error", err)
	}
	return next.clone()
}

// Snapshot returns the last known state and whether one exists.
func (t *Tracker) Snapshot() (Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.ready {
		return Result{}, false
	}
	return t.state.clone(), true
}

// Subscribe registers fn for every future change and returns a cancel func.
func (t *Tracker) Subscribe(fn Observer) func() {
	t.touch()
	t.mu.Lock()
	id := t.nextObs
	t.nextObs++
	t.observers[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.observers, id)
			t.mu.Unlock()
		})
	}
}

func (t *Tracker) observerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.observers)
}

func (t *Tracker) notify(res Result) {
	t.mu.RLock()
	fns := make([]Observer, 0, len(t.observers))
	for _, fn := range t.observers {
		fns = append(fns, fn)
	}
	t.mu.RUnlock()
	for _, fn := range fns {
		fn(res.clone())
	}
}
