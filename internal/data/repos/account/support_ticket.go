package account

import (
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/account"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type SupportTicketRepo interface {
	Create(dbc dbctx.Context, ticket *types.SupportTicket) error
}

type supportTicketRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupportTicketRepo(db *gorm.DB, baseLog *logger.Logger) SupportTicketRepo {
	return &supportTicketRepo{db: db, log: baseLog.With("repo", "SupportTicketRepo")}
}

func (r *supportTicketRepo) Create(dbc dbctx.Context, ticket *types.SupportTicket) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(ticket).Error
}
