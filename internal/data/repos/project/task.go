package project

import (
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type TaskRepo interface {
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Task, error)
	GetByID(dbc dbctx.Context, projectID, id uuid.UUID) (*types.Task, error)
	Create(dbc dbctx.Context, task *types.Task) error
	MaxSortOrder(dbc dbctx.Context, projectID uuid.UUID) (int, error)
	UpdateFields(dbc dbctx.Context, projectID, id uuid.UUID, updates map[string]interface{}) (bool, error)
	Reorder(dbc dbctx.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error
	Delete(dbc dbctx.Context, projectID, id uuid.UUID) (bool, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Task, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Task
	if err := transaction.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) GetByID(dbc dbctx.Context, projectID, id uuid.UUID) (*types.Task, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.Task
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *taskRepo) Create(dbc dbctx.Context, task *types.Task) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(task).Error
}

// MaxSortOrder returns -1 when the project has no tasks.
func (r *taskRepo) MaxSortOrder(dbc dbctx.Context, projectID uuid.UUID) (int, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var max sql.NullInt64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Task{}).
		Where("project_id = ?", projectID).
		Select("MAX(sort_order)").
		Row().
		Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (r *taskRepo) UpdateFields(dbc dbctx.Context, projectID, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return true, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Task{}).
		Where("id = ? AND project_id = ?", id, projectID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// Reorder assigns sort_order by position in orderedIDs.
func (r *taskRepo) Reorder(dbc dbctx.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&types.Task{}).
				Where("id = ? AND project_id = ?", id, projectID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepo) Delete(dbc dbctx.Context, projectID, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		Delete(&types.Task{})
	return res.RowsAffected > 0, res.Error
}
