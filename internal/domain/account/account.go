package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSubscription mirrors the billing state synced from the payment provider.
type UserSubscription struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	StripeCustomerID *string   `gorm:"column:stripe_customer_id" json:"stripe_customer_id,omitempty"`
	Plan             string    `gorm:"column:plan;default:free" json:"plan"`
	Status           string    `gorm:"column:status" json:"status"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserSubscription) TableName() string { return "user_subscriptions" }

func (s *UserSubscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SupportTicket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Email     string    `gorm:"column:email" json:"email"`
	Subject   string    `gorm:"not null;column:subject" json:"subject"`
	Message   string    `gorm:"not null;column:message" json:"message"`
	Status    string    `gorm:"not null;default:open;column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SupportTicket) TableName() string { return "support_tickets" }

func (t *SupportTicket) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
