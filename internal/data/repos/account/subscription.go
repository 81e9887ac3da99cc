package account

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/troovstudio/troov-backend/internal/domain/account"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserSubscription, error)
	Upsert(dbc dbctx.Context, sub *types.UserSubscription) error
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

// GetByUserID returns nil, nil for users without a subscription row.
func (r *subscriptionRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserSubscription, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.UserSubscription
	res := transaction.WithContext(dbc.Ctx).Where("user_id = ?", userID).Limit(1).Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *subscriptionRepo) Upsert(dbc dbctx.Context, sub *types.UserSubscription) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", sub.UserID).
		Assign(map[string]interface{}{
			"stripe_customer_id": sub.StripeCustomerID,
			"plan":               sub.Plan,
			"status":             sub.Status,
		}).
		FirstOrCreate(sub).Error
}
