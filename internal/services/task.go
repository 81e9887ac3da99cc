package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/summary"
)

type TaskUpdate struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type TaskService interface {
	List(dbc dbctx.Context, projectID uuid.UUID) ([]summary.Task, error)
	Create(dbc dbctx.Context, projectID uuid.UUID, title string) (summary.Task, error)
	Update(dbc dbctx.Context, projectID, taskID uuid.UUID, in TaskUpdate) (summary.Task, error)
	Reorder(dbc dbctx.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) ([]summary.Task, error)
	Delete(dbc dbctx.Context, projectID, taskID uuid.UUID) error
}

type taskService struct {
	log        *logger.Logger
	projects   repos.ProjectRepo
	tasks      repos.TaskRepo
	completion CompletionService
}

func NewTaskService(log *logger.Logger, projects repos.ProjectRepo, tasks repos.TaskRepo, completion CompletionService) TaskService {
	return &taskService{
		log:        log.With("service", "TaskService"),
		projects:   projects,
		tasks:      tasks,
		completion: completion,
	}
}

func (s *taskService) List(dbc dbctx.Context, projectID uuid.UUID) ([]summary.Task, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return nil, err
	}
	return s.list(dbc, projectID)
}

func (s *taskService) list(dbc dbctx.Context, projectID uuid.UUID) ([]summary.Task, error) {
	rows, err := s.tasks.ListByProject(dbc, projectID)
	if err != nil {
		return nil, apierr.FromStore("list tasks", err)
	}
	return summary.NormalizeTasks(rows), nil
}

func (s *taskService) Create(dbc dbctx.Context, projectID uuid.UUID, title string) (summary.Task, error) {
	p, err := ownedProject(dbc, s.projects, projectID)
	if err != nil {
		return summary.Task{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return summary.Task{}, apierr.BadRequest("invalid_title", "Task title is required")
	}
	max, err := s.tasks.MaxSortOrder(dbc, projectID)
	if err != nil {
		return summary.Task{}, apierr.FromStore("task sort order", err)
	}
	row := &types.Task{
		ProjectID: projectID,
		UserID:    p.UserID,
		Title:     title,
		SortOrder: max + 1,
	}
	if err := s.tasks.Create(dbc, row); err != nil {
		return summary.Task{}, apierr.FromStore("create task", err)
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return summary.NormalizeTasks([]*types.Task{row})[0], nil
}

func (s *taskService) Update(dbc dbctx.Context, projectID, taskID uuid.UUID, in TaskUpdate) (summary.Task, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return summary.Task{}, err
	}
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return summary.Task{}, apierr.BadRequest("invalid_title", "Task title is required")
		}
		updates["title"] = title
	}
	if in.Completed != nil {
		// Keep the legacy column in step so either flag reads the same.
		updates["completed"] = *in.Completed
		updates["is_complete"] = *in.Completed
	}
	ok, err := s.tasks.UpdateFields(dbc, projectID, taskID, updates)
	if err != nil {
		return summary.Task{}, apierr.FromStore("update task", err)
	}
	if !ok {
		return summary.Task{}, apierr.NotFound("task")
	}
	row, err := s.tasks.GetByID(dbc, projectID, taskID)
	if err != nil {
		return summary.Task{}, apierr.FromStore("get task", err)
	}
	if row == nil {
		return summary.Task{}, apierr.NotFound("task")
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return summary.NormalizeTasks([]*types.Task{row})[0], nil
}

func (s *taskService) Reorder(dbc dbctx.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) ([]summary.Task, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if id == uuid.Nil || seen[id] {
			return nil, apierr.BadRequest("invalid_order", "task ids must be unique")
		}
		seen[id] = true
	}
	if err := s.tasks.Reorder(dbc, projectID, orderedIDs); err != nil {
		return nil, apierr.FromStore("reorder tasks", err)
	}
	return s.list(dbc, projectID)
}

func (s *taskService) Delete(dbc dbctx.Context, projectID, taskID uuid.UUID) error {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return err
	}
	ok, err := s.tasks.Delete(dbc, projectID, taskID)
	if err != nil {
		return apierr.FromStore("delete task", err)
	}
	if !ok {
		return apierr.NotFound("task")
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return nil
}
