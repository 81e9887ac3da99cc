package summary

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// Source reads the raw rows of one project. Single-row reads return nil, nil
// when the project has no row.
type Source interface {
	Overview(ctx context.Context, projectID uuid.UUID) (*project.Overview, error)
	MoodBoard(ctx context.Context, projectID uuid.UUID) (*project.MoodBoard, error)
	MoodBoardItems(ctx context.Context, projectID uuid.UUID) ([]*project.MoodBoardItem, error)
	StyleGuide(ctx context.Context, projectID uuid.UUID) (*project.StyleGuide, error)
	Sitemap(ctx context.Context, projectID uuid.UUID) (*project.Sitemap, error)
	Technical(ctx context.Context, projectID uuid.UUID) (*project.TechnicalSpecs, error)
	Content(ctx context.Context, projectID uuid.UUID) (*project.ContentSection, error)
	Assets(ctx context.Context, projectID uuid.UUID) (*project.AssetSection, error)
	Tasks(ctx context.Context, projectID uuid.UUID) ([]*project.Task, error)
}

// Failures records the sections whose reads failed. Failed sections carry
// their default shape in the loaded Data.
type Failures map[project.Section]error

func (f Failures) Failed(s project.Section) bool {
	_, ok := f[s]
	return ok
}

type Loader struct {
	src Source
	log *logger.Logger
}

func NewLoader(src Source, baseLog *logger.Logger) *Loader {
	return &Loader{src: src, log: baseLog.With("component", "SummaryLoader")}
}

type rawRows struct {
	overview   *project.Overview
	moodBoard  *project.MoodBoard
	moodItems  []*project.MoodBoardItem
	styleGuide *project.StyleGuide
	sitemap    *project.Sitemap
	technical  *project.TechnicalSpecs
	content    *project.ContentSection
	assets     *project.AssetSection
	tasks      []*project.Task
}

// Load reads every section concurrently and normalizes the result. It never
// fails as a whole; a failed read is logged and that section falls back to
// its defaults.
func (l *Loader) Load(ctx context.Context, projectID uuid.UUID) (Data, Failures) {
	var (
		rows     rawRows
		mu       sync.Mutex
		failures = Failures{}
		g        errgroup.Group
	)
	fail := func(section project.Section, what string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if _, seen := failures[section]; !seen {
			failures[section] = fmt.Errorf("%s: %w", what, err)
		}
	}

	read(&g, fail, project.SectionOverview, "project_overview", &rows.overview, func() (*project.Overview, error) {
		return l.src.Overview(ctx, projectID)
	})
	read(&g, fail, project.SectionMood, "mood_board", &rows.moodBoard, func() (*project.MoodBoard, error) {
		return l.src.MoodBoard(ctx, projectID)
	})
	read(&g, fail, project.SectionMood, "mood_board_items", &rows.moodItems, func() ([]*project.MoodBoardItem, error) {
		return l.src.MoodBoardItems(ctx, projectID)
	})
	read(&g, fail, project.SectionStyleGuide, "style_guide", &rows.styleGuide, func() (*project.StyleGuide, error) {
		return l.src.StyleGuide(ctx, projectID)
	})
	read(&g, fail, project.SectionWireframe, "sitemap", &rows.sitemap, func() (*project.Sitemap, error) {
		return l.src.Sitemap(ctx, projectID)
	})
	read(&g, fail, project.SectionTechnical, "technical_specs", &rows.technical, func() (*project.TechnicalSpecs, error) {
		return l.src.Technical(ctx, projectID)
	})
	read(&g, fail, project.SectionContent, "content_section", &rows.content, func() (*project.ContentSection, error) {
		return l.src.Content(ctx, projectID)
	})
	read(&g, fail, project.SectionAssets, "asset_section", &rows.assets, func() (*project.AssetSection, error) {
		return l.src.Assets(ctx, projectID)
	})
	read(&g, fail, project.SectionTasks, "tasks", &rows.tasks, func() ([]*project.Task, error) {
		return l.src.Tasks(ctx, projectID)
	})
	_ = g.Wait()

	for section, err := range failures {
		l.log.Warn("section read failed, using defaults",
			"project_id", projectID,
			"section", section,
			"error", err,
		)
		switch section {
		case project.SectionMood:
			rows.moodBoard, rows.moodItems = nil, nil
		case project.SectionTasks:
			rows.tasks = nil
		}
	}

	return Data{
		Overview:   NormalizeOverview(rows.overview),
		MoodBoard:  NormalizeMoodBoard(rows.moodBoard, rows.moodItems),
		StyleGuide: NormalizeStyleGuide(rows.styleGuide),
		Sitemap:    NormalizeSitemap(rows.sitemap),
		Technical:  NormalizeTechnical(rows.technical),
		Content:    NormalizeContent(rows.content),
		Assets:     NormalizeAssets(rows.assets),
		Tasks:      NormalizeTasks(rows.tasks),
	}, failures
}

// read runs fn on the group and stores its result in dst unless it fails.
func read[T any](g *errgroup.Group, fail func(project.Section, string, error), section project.Section, what string, dst *T, fn func() (T, error)) {
	g.Go(func() error {
		v, err := fn()
		if err != nil {
			fail(section, what, err)
			return nil
		}
		*dst = v
		return nil
	})
}
