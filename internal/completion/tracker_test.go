package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

func TestTrackerRecomputeNotifiesObservers(t *testing.T) {
	tr := NewTracker(uuid.New(), newTestEngine(&stubSource{}, &memOverrides{}), logger.Nop())
	if _, ok := tr.Snapshot(); ok {
		t.Fatalf("new tracker should have no snapshot")
	}

	var seen []Result
	cancel := tr.Subscribe(func(r Result) { seen = append(seen, r) })

	res, err := tr.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(seen) != 1 || seen[0].Percentage != res.Percentage {
		t.Fatalf("observer calls: want=1 got=%d", len(seen))
	}
	snap, ok := tr.Snapshot()
	if !ok || snap.Count != res.Count {
		t.Fatalf("snapshot: ok=%v got=%+v", ok, snap)
	}

	cancel()
	cancel()
	if _, err := tr.Recompute(context.Background()); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("cancelled observer called: calls=%d", len(seen))
	}
}

func TestTrackerSetOverridePersists(t *testing.T) {
	overrides := &memOverrides{}
	tr := NewTracker(uuid.New(), newTestEngine(&stubSource{}, overrides), logger.Nop())

	res := tr.SetOverride(context.Background(), project.SectionMood, true)
	if !res.Completion[project.SectionMood] || res.Count != 2 {
		t.Fatalf("optimistic state: %+v", res.Completion)
	}
	if overrides.values[project.SectionMood] != true || overrides.sets != 1 {
		t.Fatalf("override not persisted: %+v", overrides.values)
	}

	again, err := tr.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !again.Completion[project.SectionMood] {
		t.Fatalf("persisted override lost on recompute")
	}
}

func TestTrackerSetOverrideKeepsLocalStateOnFailure(t *testing.T) {
	overrides := &memOverrides{setErr: errors.New("write failed")}
	tr := NewTracker(uuid.New(), newTestEngine(&stubSource{}, overrides), logger.Nop())

	notified := 0
	tr.Subscribe(func(Result) { notified++ })

	res := tr.SetOverride(context.Background(), project.SectionAssets, true)
	if !res.Completion[project.SectionAssets] {
		t.Fatalf("local state rolled back")
	}
	snap, _ := tr.Snapshot()
	if !snap.Completion[project.SectionAssets] {
		t.Fatalf("snapshot rolled back")
	}
	// One notification from the initial load, one from the override.
	if notified != 2 {
		t.Fatalf("notifications: want=2 got=%d", notified)
	}
}

func TestTrackerSetOverrideFollowsMergeRule(t *testing.T) {
	src := &stubSource{
		technical: &project.TechnicalSpecs{CMS: str("Webflow")},
		tasks:     []*project.Task{{ID: uuid.New(), Title: "open"}},
	}
	cases := []struct {
		name       string
		section    project.Section
		isComplete bool
		wantFlag   bool
		wantCount  int
		wantPct    int
	}{
		{name: "tasks ignore a true override", section: project.SectionTasks, isComplete: true, wantFlag: false, wantCount: 1, wantPct: 13},
		{name: "false override keeps content", section: project.SectionTechnical, isComplete: false, wantFlag: true, wantCount: 1, wantPct: 13},
		{name: "true override marks empty section", section: project.SectionMood, isComplete: true, wantFlag: true, wantCount: 2, wantPct: 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overrides := &memOverrides{}
			tr := NewTracker(uuid.New(), newTestEngine(src, overrides), logger.Nop())
			var pushed []Result
			tr.Subscribe(func(r Result) { pushed = append(pushed, r) })

			res := tr.SetOverride(context.Background(), tc.section, tc.isComplete)
			if res.Completion[tc.section] != tc.wantFlag {
				t.Fatalf("%s: want=%v got=%v", tc.section, tc.wantFlag, res.Completion[tc.section])
			}
			if res.Count != tc.wantCount {
				t.Fatalf("count: want=%d got=%d", tc.wantCount, res.Count)
			}
			if res.Percentage != tc.wantPct {
				t.Fatalf("percentage: want=%d got=%d", tc.wantPct, res.Percentage)
			}
			last := pushed[len(pushed)-1]
			if last.Completion[tc.section] != tc.wantFlag || last.Count != tc.wantCount {
				t.Fatalf("pushed state: %+v", last.Completion)
			}

			again, err := tr.Recompute(context.Background())
			if err != nil {
				t.Fatalf("Recompute: %v", err)
			}
			if again.Completion[tc.section] != res.Completion[tc.section] || again.Count != res.Count {
				t.Fatalf("recompute disagrees with local state: local=%+v recomputed=%+v", res.Completion, again.Completion)
			}
		})
	}
}

func TestRegistryEvictsIdleTrackers(t *testing.T) {
	engine := newTestEngine(&stubSource{}, &memOverrides{})
	reg := NewRegistry(engine, time.Minute, logger.Nop())
	hookCalls := 0
	reg.OnChange(func(Result) { hookCalls++ })

	idle := reg.Get(uuid.New())
	watched := reg.Get(uuid.New())
	if reg.Get(idle.ProjectID()) != idle {
		t.Fatalf("Get should return the same tracker")
	}
	watched.Subscribe(func(Result) {})

	if _, err := idle.Recompute(context.Background()); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if hookCalls != 1 {
		t.Fatalf("registry hook: want=1 got=%d", hookCalls)
	}

	if n := reg.Evict(time.Now()); n != 0 {
		t.Fatalf("fresh trackers evicted: %d", n)
	}
	if n := reg.Evict(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("evicted: want=1 got=%d", n)
	}
	if reg.Len() != 1 {
		t.Fatalf("remaining: want=1 got=%d", reg.Len())
	}
}
