package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/autosave"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	reposproject "github.com/troovstudio/troov-backend/internal/data/repos/project"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
	"github.com/troovstudio/troov-backend/internal/summary"
)

// SectionService loads and saves the single-row sections of a project.
// Saves go through the autosave queue; a missing row is seeded on first load.
type SectionService interface {
	Load(dbc dbctx.Context, projectID uuid.UUID, section types.Section) (any, error)
	Save(dbc dbctx.Context, projectID uuid.UUID, section types.Section, payload json.RawMessage, flush bool) (any, error)
	// Written is called by the autosave queue after a row was persisted.
	Written(key autosave.Key)
}

type sectionService struct {
	log        *logger.Logger
	repos      repos.Set
	queue      *autosave.Queue
	completion CompletionService
	publisher  Publisher
}

func NewSectionService(log *logger.Logger, set repos.Set, queue *autosave.Queue, completion CompletionService, publisher Publisher) SectionService {
	return &sectionService{
		log:        log.With("service", "SectionService"),
		repos:      set,
		queue:      queue,
		completion: completion,
		publisher:  orNop(publisher),
	}
}

func (s *sectionService) Load(dbc dbctx.Context, projectID uuid.UUID, section types.Section) (any, error) {
	if _, err := ownedProject(dbc, s.repos.Project, projectID); err != nil {
		return nil, err
	}
	switch section {
	case types.SectionOverview:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.Overview, func() (*types.Overview, error) {
			return summary.OverviewRow(projectID, summary.DefaultOverview())
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeOverview(row), nil
	case types.SectionMood:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.MoodBoard, func() (*types.MoodBoard, error) {
			return summary.MoodBoardRow(projectID, summary.MoodBoardData{}), nil
		})
		if err != nil {
			return nil, err
		}
		items, err := s.repos.MoodBoardItem.ListByProject(dbc, projectID)
		if err != nil {
			return nil, apierr.FromStore("list mood board items", err)
		}
		return summary.NormalizeMoodBoard(row, items), nil
	case types.SectionStyleGuide:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.StyleGuide, func() (*types.StyleGuide, error) {
			return summary.StyleGuideRow(projectID, summary.DefaultStyleGuide())
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeStyleGuide(row), nil
	case types.SectionWireframe:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.Sitemap, func() (*types.Sitemap, error) {
			return summary.SitemapRow(projectID, summary.DefaultSitemap())
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeSitemap(row), nil
	case types.SectionTechnical:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.Technical, func() (*types.TechnicalSpecs, error) {
			return summary.TechnicalRow(projectID, summary.TechnicalData{}), nil
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeTechnical(row), nil
	case types.SectionContent:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.Content, func() (*types.ContentSection, error) {
			return summary.ContentRow(projectID, summary.NormalizeContent(nil))
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeContent(row), nil
	case types.SectionAssets:
		row, err := loadOrSeed(s, dbc, projectID, s.repos.Assets, func() (*types.AssetSection, error) {
			return summary.AssetsRow(projectID, summary.NormalizeAssets(nil))
		})
		if err != nil {
			return nil, err
		}
		return summary.NormalizeAssets(row), nil
	case types.SectionTasks:
		rows, err := s.repos.Task.ListByProject(dbc, projectID)
		if err != nil {
			return nil, apierr.FromStore("list tasks", err)
		}
		return summary.NormalizeTasks(rows), nil
	}
	return nil, apierr.BadRequest("invalid_section", fmt.Sprintf("unknown section %q", section))
}

// loadOrSeed returns the project's row, inserting the seed row first when
// none exists. A pending autosave write for the row is flushed before
// reading.
func loadOrSeed[T reposproject.SectionRow](s *sectionService, dbc dbctx.Context, projectID uuid.UUID, repo reposproject.SectionRepo[T], seed func() (*T, error)) (*T, error) {
	if _, err := s.queue.Flush(dbc.Ctx, autosave.Key{Table: repo.Table(), ProjectID: projectID}); err != nil {
		s.log.Warn("flush before load failed", "table", repo.Table(), "project_id", projectID, "error", err)
	}
	row, err := repo.Get(dbc, projectID)
	if err != nil {
		return nil, apierr.FromStore("load "+repo.Table(), err)
	}
	if row != nil {
		return row, nil
	}
	seedRow, err := seed()
	if err != nil {
		return nil, apierr.Internal("seed_failed", err)
	}
	if _, err := repo.InsertIfMissing(dbc, seedRow); err != nil {
		return nil, apierr.FromStore("seed "+repo.Table(), err)
	}
	s.log.Debug("seeded section row", "table", repo.Table(), "project_id", projectID)
	row, err = repo.Get(dbc, projectID)
	if err != nil {
		return nil, apierr.FromStore("load "+repo.Table(), err)
	}
	if row == nil {
		return seedRow, nil
	}
	return row, nil
}

func (s *sectionService) Save(dbc dbctx.Context, projectID uuid.UUID, section types.Section, payload json.RawMessage, flush bool) (any, error) {
	if _, err := ownedProject(dbc, s.repos.Project, projectID); err != nil {
		return nil, err
	}
	switch section {
	case types.SectionOverview:
		var in summary.OverviewData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row, err := summary.OverviewRow(projectID, in)
		if err != nil {
			return nil, apierr.BadRequest("invalid_payload", err.Error())
		}
		return summary.NormalizeOverview(row), enqueueRow(s, dbc, projectID, s.repos.Overview, row, flush)
	case types.SectionMood:
		var in summary.MoodBoardData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row := summary.MoodBoardRow(projectID, in)
		// Items live in their own table; the response shows the stored ones.
		items, err := s.repos.MoodBoardItem.ListByProject(dbc, projectID)
		if err != nil {
			return nil, apierr.FromStore("list mood board items", err)
		}
		return summary.NormalizeMoodBoard(row, items), enqueueRow(s, dbc, projectID, s.repos.MoodBoard, row, flush)
	case types.SectionStyleGuide:
		var in summary.StyleGuideData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row, err := summary.StyleGuideRow(projectID, in)
		if err != nil {
			return nil, apierr.BadRequest("invalid_payload", err.Error())
		}
		return summary.NormalizeStyleGuide(row), enqueueRow(s, dbc, projectID, s.repos.StyleGuide, row, flush)
	case types.SectionWireframe:
		var in summary.SitemapData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row, err := summary.SitemapRow(projectID, in)
		if err != nil {
			return nil, apierr.BadRequest("invalid_payload", err.Error())
		}
		return summary.NormalizeSitemap(row), enqueueRow(s, dbc, projectID, s.repos.Sitemap, row, flush)
	case types.SectionTechnical:
		var in summary.TechnicalData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row := summary.TechnicalRow(projectID, in)
		return summary.NormalizeTechnical(row), enqueueRow(s, dbc, projectID, s.repos.Technical, row, flush)
	case types.SectionContent:
		var in summary.ContentData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row, err := summary.ContentRow(projectID, in)
		if err != nil {
			return nil, apierr.BadRequest("invalid_payload", err.Error())
		}
		return summary.NormalizeContent(row), enqueueRow(s, dbc, projectID, s.repos.Content, row, flush)
	case types.SectionAssets:
		var in summary.AssetsData
		if err := decodePayload(payload, &in); err != nil {
			return nil, err
		}
		row, err := summary.AssetsRow(projectID, in)
		if err != nil {
			return nil, apierr.BadRequest("invalid_payload", err.Error())
		}
		return summary.NormalizeAssets(row), enqueueRow(s, dbc, projectID, s.repos.Assets, row, flush)
	case types.SectionTasks:
		return nil, apierr.BadRequest("invalid_section", "tasks are saved individually")
	}
	return nil, apierr.BadRequest("invalid_section", fmt.Sprintf("unknown section %q", section))
}

func decodePayload(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return apierr.BadRequest("invalid_payload", "request body is required")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return apierr.BadRequest("invalid_payload", "invalid section payload")
	}
	return nil
}

// enqueueRow schedules an upsert of row, replacing any pending write of the
// same row. With flush the write happens before returning.
func enqueueRow[T reposproject.SectionRow](s *sectionService, dbc dbctx.Context, projectID uuid.UUID, repo reposproject.SectionRepo[T], row *T, flush bool) error {
	key := autosave.Key{Table: repo.Table(), ProjectID: projectID}
	write := func(ctx context.Context) error {
		return repo.Upsert(dbctx.Context{Ctx: ctx}, row)
	}
	if err := s.queue.Enqueue(key, write); err != nil {
		if errors.Is(err, autosave.ErrClosed) {
			return apierr.New(http.StatusServiceUnavailable, "unavailable", err)
		}
		return apierr.Internal("enqueue_failed", err)
	}
	if !flush {
		return nil
	}
	if _, err := s.queue.Flush(dbc.Ctx, key); err != nil {
		return apierr.FromStore("save "+repo.Table(), err)
	}
	return nil
}

func (s *sectionService) Written(key autosave.Key) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.publisher.Publish(ctx, realtime.SSEMessage{
		Channel: realtime.ProjectChannel(key.ProjectID),
		Event:   realtime.SSEEventSectionSaved,
		Data:    map[string]any{"project_id": key.ProjectID, "table": key.Table},
	})
	if err != nil {
		s.log.Warn("publish section saved failed", "project_id", key.ProjectID, "error", err)
	}
	s.completion.Refresh(ctx, key.ProjectID)
}
