package completion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
)

// OverrideStore persists manual completion flags, one per project section.
// Writes are last-write-wins.
type OverrideStore interface {
	Get(ctx context.Context, projectID uuid.UUID) (map[project.Section]bool, error)
	Set(ctx context.Context, projectID uuid.UUID, section project.Section, isComplete bool) error
}

type repoOverrideStore struct {
	repo repos.OverrideRepo
}

func NewOverrideStore(repo repos.OverrideRepo) OverrideStore {
	return &repoOverrideStore{repo: repo}
}

func (s *repoOverrideStore) Get(ctx context.Context, projectID uuid.UUID) (map[project.Section]bool, error) {
	rows, err := s.repo.ListByProject(dbctx.Context{Ctx: ctx}, projectID)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	out := make(map[project.Section]bool, len(rows))
	for _, row := range rows {
		section, ok := project.ParseSection(row.Section)
		if !ok {
			continue
		}
		out[section] = row.IsComplete
	}
	return out, nil
}

func (s *repoOverrideStore) Set(ctx context.Context, projectID uuid.UUID, section project.Section, isComplete bool) error {
	if err := s.repo.Upsert(dbctx.Context{Ctx: ctx}, projectID, section, isComplete); err != nil {
		return fmt.Errorf("upsert override %s: %w", section, err)
	}
	return nil
}
