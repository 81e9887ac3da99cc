package project

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type MoodBoardItemRepo interface {
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.MoodBoardItem, error)
	Create(dbc dbctx.Context, item *types.MoodBoardItem) error
	UpdateFields(dbc dbctx.Context, projectID, id uuid.UUID, updates map[string]interface{}) (bool, error)
	Delete(dbc dbctx.Context, projectID, id uuid.UUID) (bool, error)
}

type moodBoardItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodBoardItemRepo(db *gorm.DB, baseLog *logger.Logger) MoodBoardItemRepo {
	return &moodBoardItemRepo{db: db, log: baseLog.With("repo", "MoodBoardItemRepo")}
}

// ListByProject returns items oldest first.
func (r *moodBoardItemRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.MoodBoardItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MoodBoardItem
	if err := transaction.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *moodBoardItemRepo) Create(dbc dbctx.Context, item *types.MoodBoardItem) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(item).Error
}

func (r *moodBoardItemRepo) UpdateFields(dbc dbctx.Context, projectID, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return true, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.MoodBoardItem{}).
		Where("id = ? AND project_id = ?", id, projectID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *moodBoardItemRepo) Delete(dbc dbctx.Context, projectID, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		Delete(&types.MoodBoardItem{})
	return res.RowsAffected > 0, res.Error
}
