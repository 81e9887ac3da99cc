package project

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, p *types.Project) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Project, error)
	ListWithDeadline(dbc dbctx.Context) ([]*types.Project, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteCascade(dbc dbctx.Context, id uuid.UUID) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) Create(dbc dbctx.Context, p *types.Project) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(p).Error
}

// GetByID returns nil, nil when no project has the id.
func (r *projectRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.Project
	res := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *projectRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Project
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) ListWithDeadline(dbc dbctx.Context) ([]*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Project
	if err := transaction.WithContext(dbc.Ctx).
		Where("deadline IS NOT NULL").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteCascade removes the project and every row keyed by it in one
// transaction.
func (r *projectRepo) DeleteCascade(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		children := []any{
			&types.Overview{},
			&types.MoodBoard{},
			&types.MoodBoardItem{},
			&types.StyleGuide{},
			&types.Sitemap{},
			&types.TechnicalSpecs{},
			&types.ContentSection{},
			&types.AssetSection{},
			&types.Task{},
			&types.SectionCompletionOverride{},
			&notify.DeadlineNotificationLog{},
			&notify.Notification{},
		}
		for _, model := range children {
			if err := tx.Where("project_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&types.Project{}).Error
	})
}
