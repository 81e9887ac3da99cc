package summary

import (
	"context"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
)

type repoSource struct {
	repos repos.Set
}

// NewRepoSource reads section rows through the gorm repositories.
func NewRepoSource(set repos.Set) Source {
	return &repoSource{repos: set}
}

func (s *repoSource) Overview(ctx context.Context, id uuid.UUID) (*project.Overview, error) {
	return s.repos.Overview.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) MoodBoard(ctx context.Context, id uuid.UUID) (*project.MoodBoard, error) {
	return s.repos.MoodBoard.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) MoodBoardItems(ctx context.Context, id uuid.UUID) ([]*project.MoodBoardItem, error) {
	return s.repos.MoodBoardItem.ListByProject(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) StyleGuide(ctx context.Context, id uuid.UUID) (*project.StyleGuide, error) {
	return s.repos.StyleGuide.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) Sitemap(ctx context.Context, id uuid.UUID) (*project.Sitemap, error) {
	return s.repos.Sitemap.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) Technical(ctx context.Context, id uuid.UUID) (*project.TechnicalSpecs, error) {
	return s.repos.Technical.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) Content(ctx context.Context, id uuid.UUID) (*project.ContentSection, error) {
	return s.repos.Content.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) Assets(ctx context.Context, id uuid.UUID) (*project.AssetSection, error) {
	return s.repos.Assets.Get(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoSource) Tasks(ctx context.Context, id uuid.UUID) ([]*project.Task, error) {
	return s.repos.Task.ListByProject(dbctx.Context{Ctx: ctx}, id)
}
