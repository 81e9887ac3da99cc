package project

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type OverrideRepo interface {
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.SectionCompletionOverride, error)
	Upsert(dbc dbctx.Context, projectID uuid.UUID, section types.Section, isComplete bool) error
}

type overrideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOverrideRepo(db *gorm.DB, baseLog *logger.Logger) OverrideRepo {
	return &overrideRepo{db: db, log: baseLog.With("repo", "OverrideRepo")}
}

func (r *overrideRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.SectionCompletionOverride, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SectionCompletionOverride
	if err := transaction.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *overrideRepo) Upsert(dbc dbctx.Context, projectID uuid.UUID, section types.Section, isComplete bool) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.SectionCompletionOverride{
		ProjectID:  projectID,
		Section:    string(section),
		IsComplete: isComplete,
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_complete", "updated_at"}),
		}).
		Create(row).Error
}
