package completion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/summary"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// Result is one computed completion state.
type Result struct {
	ProjectID  uuid.UUID `json:"project_id"`
	Completion Map       `json:"completion"`
	Count      int       `json:"count"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Next       Step      `json:"next_step"`
	// Degraded is set when some section or override read failed and
	// defaults were used instead.
	Degraded   bool      `json:"degraded,omitempty"`
	ComputedAt time.Time `json:"computed_at"`

	in mergeInput
}

// mergeInput keeps what Completion was merged from so a single override
// can be re-applied without reloading the sections.
type mergeInput struct {
	content       map[project.Section]bool
	tasksComplete bool
	overrides     map[project.Section]bool
}

func (in mergeInput) clone() mergeInput {
	return mergeInput{
		content:       cloneFlags(in.content),
		tasksComplete: in.tasksComplete,
		overrides:     cloneFlags(in.overrides),
	}
}

func cloneFlags(m map[project.Section]bool) map[project.Section]bool {
	out := make(map[project.Section]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func newResult(projectID uuid.UUID, in mergeInput, degraded bool) Result {
	m := Merge(in.content, in.tasksComplete, in.overrides)
	return Result{
		ProjectID:  projectID,
		Completion: m,
		Count:      m.Count(),
		Total:      len(project.AllSections),
		Percentage: m.Percentage(),
		Next:       NextStep(m),
		Degraded:   degraded,
		ComputedAt: time.Now().UTC(),
		in:         in,
	}
}

// withOverride returns the state after setting one override, merged by the
// same rule as a full compute.
func (r Result) withOverride(section project.Section, isComplete bool) Result {
	in := r.in.clone()
	in.overrides[section] = isComplete
	return newResult(r.ProjectID, in, r.Degraded)
}

func (r Result) clone() Result {
	r.Completion = r.Completion.Clone()
	r.in = r.in.clone()
	return r
}

type Engine struct {
	loader    *summary.Loader
	overrides OverrideStore
	log       *logger.Logger
	metrics   *observability.Metrics
}

func NewEngine(loader *summary.Loader, overrides OverrideStore, baseLog *logger.Logger) *Engine {
	return &Engine{
		loader:    loader,
		overrides: overrides,
		log:       baseLog.With("component", "CompletionEngine"),
		metrics:   observability.M(),
	}
}

func (e *Engine) Overrides() OverrideStore { return e.overrides }

// Compute loads every section and merges the completion map. Read failures
// degrade the affected section instead of failing; only a cancelled context
// returns an error.
func (e *Engine) Compute(ctx context.Context, projectID uuid.UUID) (Result, error) {
	res, _, err := e.ComputeWithData(ctx, projectID)
	return res, err
}

// ComputeWithData is Compute that also hands back the normalized sections
// it was derived from.
func (e *Engine) ComputeWithData(ctx context.Context, projectID uuid.UUID) (Result, summary.Data, error) {
	start := time.Now()
	data, failures := e.loader.Load(ctx, projectID)
	if err := ctx.Err(); err != nil {
		return Result{}, summary.Data{}, err
	}

	overrides, err := e.overrides.Get(ctx, projectID)
	degraded := len(failures) > 0
	if err != nil {
		e.log.Warn("override read failed, ignoring overrides", "project_id", projectID, "error", err)
		overrides = nil
		degraded = true
	}
	for section := range failures {
		e.metrics.SectionReadFailed(section.String())
	}

	// A task read failure must not report an empty (complete) task list.
	tasksComplete := !failures.Failed(project.SectionTasks) && summary.TasksComplete(data.Tasks)

	in := mergeInput{content: summary.Evaluate(data), tasksComplete: tasksComplete, overrides: overrides}
	e.metrics.ObserveCompletion(degraded, time.Since(start))
	return newResult(projectID, in, degraded), data, nil
}
