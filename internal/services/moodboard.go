package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type MoodBoardItemInput struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type MoodBoardItemUpdate struct {
	URL   *string `json:"url"`
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}

type MoodBoardService interface {
	ListItems(dbc dbctx.Context, projectID uuid.UUID) ([]*types.MoodBoardItem, error)
	AddItem(dbc dbctx.Context, projectID uuid.UUID, in MoodBoardItemInput) (*types.MoodBoardItem, error)
	UpdateItem(dbc dbctx.Context, projectID, itemID uuid.UUID, in MoodBoardItemUpdate) error
	DeleteItem(dbc dbctx.Context, projectID, itemID uuid.UUID) error
}

type moodBoardService struct {
	log        *logger.Logger
	projects   repos.ProjectRepo
	items      repos.MoodBoardItemRepo
	completion CompletionService
}

func NewMoodBoardService(log *logger.Logger, projects repos.ProjectRepo, items repos.MoodBoardItemRepo, completion CompletionService) MoodBoardService {
	return &moodBoardService{
		log:        log.With("service", "MoodBoardService"),
		projects:   projects,
		items:      items,
		completion: completion,
	}
}

func (s *moodBoardService) ListItems(dbc dbctx.Context, projectID uuid.UUID) ([]*types.MoodBoardItem, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return nil, err
	}
	out, err := s.items.ListByProject(dbc, projectID)
	if err != nil {
		return nil, apierr.FromStore("list mood board items", err)
	}
	return out, nil
}

func (s *moodBoardService) AddItem(dbc dbctx.Context, projectID uuid.UUID, in MoodBoardItemInput) (*types.MoodBoardItem, error) {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return nil, err
	}
	kind := strings.TrimSpace(in.Type)
	if kind != types.MoodItemImage && kind != types.MoodItemWebsiteReference {
		return nil, apierr.BadRequest("invalid_type", "type must be image or website_reference")
	}
	item := &types.MoodBoardItem{
		ProjectID: projectID,
		Type:      kind,
		URL:       strings.TrimSpace(in.URL),
		Title:     strings.TrimSpace(in.Title),
		Notes:     in.Notes,
	}
	if err := s.items.Create(dbc, item); err != nil {
		return nil, apierr.FromStore("create mood board item", err)
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return item, nil
}

func (s *moodBoardService) UpdateItem(dbc dbctx.Context, projectID, itemID uuid.UUID, in MoodBoardItemUpdate) error {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return err
	}
	updates := map[string]interface{}{}
	if in.URL != nil {
		updates["url"] = strings.TrimSpace(*in.URL)
	}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	ok, err := s.items.UpdateFields(dbc, projectID, itemID, updates)
	if err != nil {
		return apierr.FromStore("update mood board item", err)
	}
	if !ok {
		return apierr.NotFound("mood board item")
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return nil
}

func (s *moodBoardService) DeleteItem(dbc dbctx.Context, projectID, itemID uuid.UUID) error {
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return err
	}
	ok, err := s.items.Delete(dbc, projectID, itemID)
	if err != nil {
		return apierr.FromStore("delete mood board item", err)
	}
	if !ok {
		return apierr.NotFound("mood board item")
	}
	s.completion.Refresh(dbc.Ctx, projectID)
	return nil
}
