package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/autosave"
	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type ProjectUpdate struct {
	Title         *string
	Deadline      *time.Time
	ClearDeadline bool
}

type ProjectService interface {
	Create(dbc dbctx.Context, title string, deadline *time.Time) (*types.Project, error)
	List(dbc dbctx.Context) ([]*types.Project, error)
	Get(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error)
	Update(dbc dbctx.Context, projectID uuid.UUID, in ProjectUpdate) (*types.Project, error)
	Delete(dbc dbctx.Context, projectID uuid.UUID) error
}

type projectService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects repos.ProjectRepo
	queue    *autosave.Queue
	registry *completion.Registry
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projects repos.ProjectRepo, queue *autosave.Queue, registry *completion.Registry) ProjectService {
	return &projectService{
		db:       db,
		log:      log.With("service", "ProjectService"),
		projects: projects,
		queue:    queue,
		registry: registry,
	}
}

func (s *projectService) Create(dbc dbctx.Context, title string, deadline *time.Time) (*types.Project, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.BadRequest("invalid_title", "Project title is required")
	}
	p := &types.Project{
		UserID:   userID,
		Title:    title,
		Deadline: utcDate(deadline),
	}
	if err := s.projects.Create(dbc, p); err != nil {
		return nil, apierr.FromStore("create project", err)
	}
	s.log.Info("project created", "project_id", p.ID, "user_id", userID)
	return p, nil
}

func (s *projectService) List(dbc dbctx.Context) ([]*types.Project, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.projects.ListByUser(dbc, userID)
	if err != nil {
		return nil, apierr.FromStore("list projects", err)
	}
	return out, nil
}

func (s *projectService) Get(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error) {
	return ownedProject(dbc, s.projects, projectID)
}

func (s *projectService) Update(dbc dbctx.Context, projectID uuid.UUID, in ProjectUpdate) (*types.Project, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apierr.BadRequest("invalid_title", "Project title is required")
		}
		updates["title"] = title
	}
	switch {
	case in.ClearDeadline:
		updates["deadline"] = nil
	case in.Deadline != nil:
		updates["deadline"] = utcDate(in.Deadline)
	}
	if err := s.projects.UpdateFields(dbc, projectID, updates); err != nil {
		return nil, apierr.FromStore("update project", err)
	}
	return ownedProject(dbc, s.projects, projectID)
}

func (s *projectService) Delete(dbc dbctx.Context, projectID uuid.UUID) error {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return err
	}
	if s.queue != nil {
		s.queue.CancelProject(projectID)
	}
	if err := s.projects.DeleteCascade(dbc, projectID); err != nil {
		return apierr.FromStore("delete project", err)
	}
	if s.registry != nil {
		s.registry.Forget(projectID)
	}
	s.log.Info("project deleted", "project_id", projectID)
	return nil
}

// utcDate truncates a deadline to its UTC calendar date.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
