package notify

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type NotificationRepo interface {
	Create(dbc dbctx.Context, n *types.Notification) error
	ListLatest(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Notification, error)
	MarkRead(dbc dbctx.Context, userID, id uuid.UUID, at time.Time) (bool, error)
	MarkAllRead(dbc dbctx.Context, userID uuid.UUID, at time.Time) (int64, error)
	ClearRead(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) Create(dbc dbctx.Context, n *types.Notification) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(n).Error
}

func (r *notificationRepo) ListLatest(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Notification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 20
	}
	var out []*types.Notification
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) MarkRead(dbc dbctx.Context, userID, id uuid.UUID, at time.Time) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", at)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepo) MarkAllRead(dbc dbctx.Context, userID uuid.UUID, at time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) ClearRead(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND read_at IS NOT NULL", userID).
		Delete(&types.Notification{})
	return res.RowsAffected, res.Error
}
