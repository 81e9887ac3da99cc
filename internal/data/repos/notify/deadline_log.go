package notify

import (
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type DeadlineLogRepo interface {
	// Insert fails with a unique violation when the reminder was already logged.
	Insert(dbc dbctx.Context, entry *types.DeadlineNotificationLog) error
}

type deadlineLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeadlineLogRepo(db *gorm.DB, baseLog *logger.Logger) DeadlineLogRepo {
	return &deadlineLogRepo{db: db, log: baseLog.With("repo", "DeadlineLogRepo")}
}

func (r *deadlineLogRepo) Insert(dbc dbctx.Context, entry *types.DeadlineNotificationLog) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(entry).Error
}
