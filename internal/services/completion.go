package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
)

type CompletionService interface {
	Get(dbc dbctx.Context, projectID uuid.UUID) (completion.Result, error)
	SetOverride(dbc dbctx.Context, projectID uuid.UUID, section types.Section, isComplete bool) (completion.Result, error)
	// Refresh recomputes a project after a write and pushes the result to
	// subscribers. Failures are logged.
	Refresh(ctx context.Context, projectID uuid.UUID)
}

type completionService struct {
	log       *logger.Logger
	projects  repos.ProjectRepo
	registry  *completion.Registry
	publisher Publisher
}

func NewCompletionService(log *logger.Logger, projects repos.ProjectRepo, registry *completion.Registry, publisher Publisher) CompletionService {
	s := &completionService{
		log:       log.With("service", "CompletionService"),
		projects:  projects,
		registry:  registry,
		publisher: orNop(publisher),
	}
	registry.OnChange(s.publish)
	return s
}

func (s *completionService) publish(res completion.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.publisher.Publish(ctx, realtime.SSEMessage{
		Channel: realtime.ProjectChannel(res.ProjectID),
		Event:   realtime.SSEEventCompletionUpdated,
		Data:    res,
	})
	if err != nil {
		s.log.Warn("publish completion failed", "project_id", res.ProjectID, "error", err)
	}
}

func (s *completionService) Get(dbc dbctx.Context, projectID uuid.UUID) (completion.Result, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return completion.Result{}, err
	}
	res, err := s.registry.Get(projectID).Recompute(dbc.Ctx)
	if err != nil {
		return completion.Result{}, apierr.FromStore("compute completion", err)
	}
	return res, nil
}

func (s *completionService) SetOverride(dbc dbctx.Context, projectID uuid.UUID, section types.Section, isComplete bool) (completion.Result, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return completion.Result{}, err
	}
	return s.registry.Get(projectID).SetOverride(dbc.Ctx, section, isComplete), nil
}

func (s *completionService) Refresh(ctx context.Context, projectID uuid.UUID) {
	if _, err := s.registry.Get(projectID).Recompute(ctx); err != nil {
		s.log.Warn("completion refresh failed", "project_id", projectID, "error", err)
	}
}
