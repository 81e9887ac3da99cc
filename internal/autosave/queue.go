package autosave

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

const DefaultDebounce = 500 * time.Millisecond

var ErrClosed = errors.New("autosave queue closed")

// Key identifies one coalesced row: a section table of a project.
type Key struct {
	Table     string
	ProjectID uuid.UUID
}

// Write persists the latest payload for a key.
type Write func(ctx context.Context) error

type entry struct {
	write Write
	timer *time.Timer
	seq   uint64
}

// Queue coalesces rapid saves of the same row. Only the newest payload of a
// key is written, once the key has been quiet for the debounce interval.
type Queue struct {
	debounce     time.Duration
	writeTimeout time.Duration
	log          *logger.Logger
	metrics      *observability.Metrics
	onWritten    func(Key)

	mu      sync.Mutex
	pending map[Key]*entry
	seq     uint64
	closed  bool
	wg      sync.WaitGroup

	// stripes serialize writes of the same key.
	stripes [64]sync.Mutex
}

type Option func(*Queue)

// WithDebounce overrides the quiet period before a pending write fires.
func WithDebounce(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.debounce = d
		}
	}
}

// WithWriteTimeout bounds timer-triggered writes.
func WithWriteTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.writeTimeout = d
		}
	}
}

// OnWritten is called after every successful write.
func OnWritten(fn func(Key)) Option {
	return func(q *Queue) { q.onWritten = fn }
}

func New(baseLog *logger.Logger, opts ...Option) *Queue {
	q := &Queue{
		debounce:     DefaultDebounce,
		writeTimeout: 10 * time.Second,
		log:          baseLog.With("component", "AutosaveQueue"),
		metrics:      observability.M(),
		pending:      map[Key]*entry{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue replaces the pending write of key and rearms its timer.
func (q *Queue) Enqueue(key Key, write Write) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.seq++
	seq := q.seq
	if e, ok := q.pending[key]; ok {
		e.timer.Stop()
	}
	q.pending[key] = &entry{
		write: write,
		seq:   seq,
		timer: time.AfterFunc(q.debounce, func() { q.fire(key, seq) }),
	}
	return nil
}

func (q *Queue) keyLock(key Key) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write(key.ProjectID[:])
	_, _ = h.Write([]byte(key.Table))
	return &q.stripes[h.Sum32()%uint32(len(q.stripes))]
}

// take removes the pending entry of key. When seq is non-zero the entry is
// only taken if it is still that generation.
func (q *Queue) take(key Key, seq uint64) *entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.pending[key]
	if !ok || (seq != 0 && e.seq != seq) {
		return nil
	}
	e.timer.Stop()
	delete(q.pending, key)
	return e
}

func (q *Queue) fire(key Key, seq uint64) {
	q.mu.Lock()
	if q.closed {
		// Close flushes whatever is still pending.
		q.mu.Unlock()
		return
	}
	q.wg.Add(1)
	q.mu.Unlock()
	defer q.wg.Done()

	l := q.keyLock(key)
	l.Lock()
	defer l.Unlock()
	e := q.take(key, seq)
	if e == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), q.writeTimeout)
	defer cancel()
	_ = q.run(ctx, key, e.write)
}

func (q *Queue) run(ctx context.Context, key Key, write Write) error {
	err := write(ctx)
	q.metrics.AutosaveFlush(key.Table, err)
	if err != nil {
		q.log.Error("autosave write failed", "table", key.Table, "project_id", key.ProjectID, "error", err)
		return err
	}
	if q.onWritten != nil {
		q.onWritten(key)
	}
	return nil
}

// Flush writes the pending entry of key now. It reports false when nothing
// was pending.
func (q *Queue) Flush(ctx context.Context, key Key) (bool, error) {
	l := q.keyLock(key)
	l.Lock()
	defer l.Unlock()
	e := q.take(key, 0)
	if e == nil {
		return false, nil
	}
	return true, q.run(ctx, key, e.write)
}

func (q *Queue) FlushAll(ctx context.Context) error {
	q.mu.Lock()
	keys := make([]Key, 0, len(q.pending))
	for k := range q.pending {
		keys = append(keys, k)
	}
	q.mu.Unlock()

	var errs []error
	for _, k := range keys {
		if _, err := q.Flush(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Cancel drops the pending write of key without running it.
func (q *Queue) Cancel(key Key) bool {
	return q.take(key, 0) != nil
}

// CancelProject drops every pending write of a project.
func (q *Queue) CancelProject(projectID uuid.UUID) int {
	q.mu.Lock()
	var keys []Key
	for k := range q.pending {
		if k.ProjectID == projectID {
			keys = append(keys, k)
		}
	}
	q.mu.Unlock()
	n := 0
	for _, k := range keys {
		if q.Cancel(k) {
			n++
		}
	}
	return n
}

func (q *Queue) Pending(key Key) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[key]
	return ok
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close refuses new work, writes everything pending and waits for in-flight
// timer writes.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	err := q.FlushAll(ctx)

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
	return err
}
