package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type fakeSource struct {
	overview   *project.Overview
	styleGuide *project.StyleGuide
	tasks      []*project.Task
	failing    map[string]error
}

func (f *fakeSource) err(name string) error { return f.failing[name] }

func (f *fakeSource) Overview(context.Context, uuid.UUID) (*project.Overview, error) {
	return f.overview, f.err("overview")
}
func (f *fakeSource) MoodBoard(context.Context, uuid.UUID) (*project.MoodBoard, error) {
	return &project.MoodBoard{StyleNotes: str("notes")}, f.err("mood_board")
}
func (f *fakeSource) MoodBoardItems(context.Context, uuid.UUID) ([]*project.MoodBoardItem, error) {
	return nil, f.err("mood_items")
}
func (f *fakeSource) StyleGuide(context.Context, uuid.UUID) (*project.StyleGuide, error) {
	return f.styleGuide, f.err("style_guide")
}
func (f *fakeSource) Sitemap(context.Context, uuid.UUID) (*project.Sitemap, error) {
	return nil, f.err("sitemap")
}
func (f *fakeSource) Technical(context.Context, uuid.UUID) (*project.TechnicalSpecs, error) {
	return &project.TechnicalSpecs{CMS: str("WordPress")}, f.err("technical")
}
func (f *fakeSource) Content(context.Context, uuid.UUID) (*project.ContentSection, error) {
	return nil, f.err("content")
}
func (f *fakeSource) Assets(context.Context, uuid.UUID) (*project.AssetSection, error) {
	return nil, f.err("assets")
}
func (f *fakeSource) Tasks(context.Context, uuid.UUID) ([]*project.Task, error) {
	return f.tasks, f.err("tasks")
}

func testLogger() *logger.Logger { return logger.Nop() }

func TestLoaderNormalizesEverySection(t *testing.T) {
	src := &fakeSource{
		overview:   &project.Overview{Description: str("Landing page")},
		styleGuide: &project.StyleGuide{Data: datatypes.JSON(`{"standardColors": {"primary": "#123456"}}`)},
		tasks:      []*project.Task{{ID: uuid.New(), Title: "t", Completed: true}},
	}
	data, failures := NewLoader(src, testLogger()).Load(context.Background(), uuid.New())
	if len(failures) != 0 {
		t.Fatalf("failures: want none got=%v", failures)
	}
	got := Evaluate(data)
	want := map[project.Section]bool{
		project.SectionOverview:   true,
		project.SectionMood:       true,
		project.SectionStyleGuide: true,
		project.SectionWireframe:  false,
		project.SectionTechnical:  true,
		project.SectionContent:    false,
		project.SectionAssets:     false,
	}
	for section, w := range want {
		if got[section] != w {
			t.Fatalf("%s: want=%v got=%v", section, w, got[section])
		}
	}
	if len(data.Tasks) != 1 || !TasksComplete(data.Tasks) {
		t.Fatalf("tasks: got=%+v", data.Tasks)
	}
}

func TestLoaderDegradesFailedReads(t *testing.T) {
	boom := errors.New("connection reset")
	src := &fakeSource{
		overview: &project.Overview{Description: str("Landing page")},
		tasks:    []*project.Task{{ID: uuid.New(), Completed: false}},
		failing: map[string]error{
			"overview":   boom,
			"mood_items": boom,
			"tasks":      boom,
		},
	}
	data, failures := NewLoader(src, testLogger()).Load(context.Background(), uuid.New())
	for _, s := range []project.Section{project.SectionOverview, project.SectionMood, project.SectionTasks} {
		if !failures.Failed(s) {
			t.Fatalf("%s: want failure recorded", s)
		}
		if !errors.Is(failures[s], boom) {
			t.Fatalf("%s: failure should wrap the read error: %v", s, failures[s])
		}
	}
	if failures.Failed(project.SectionTechnical) {
		t.Fatalf("technical read succeeded")
	}
	if HasOverviewContent(data.Overview) {
		t.Fatalf("failed overview read must fall back to defaults")
	}
	if HasMoodBoardContent(data.MoodBoard) {
		t.Fatalf("a failed item read drops the whole mood board")
	}
	if len(data.Tasks) != 0 {
		t.Fatalf("failed task read: want no tasks got=%d", len(data.Tasks))
	}
	if !HasTechnicalContent(data.Technical) {
		t.Fatalf("other sections keep their data")
	}
}
