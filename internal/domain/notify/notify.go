package notify

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const TypeDeadline = "deadline"

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index;column:project_id" json:"project_id,omitempty"`
	Type      string     `gorm:"not null;column:type" json:"type"`
	Title     string     `gorm:"not null;column:title" json:"title"`
	Body      string     `gorm:"column:body" json:"body"`
	URL       string     `gorm:"column:url" json:"url"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// DeadlineNotificationLog records which reminder kinds were already sent for
// a project deadline so repeated passes stay idempotent.
type DeadlineNotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deadline_log_once;column:project_id" json:"project_id"`
	Kind         string    `gorm:"not null;size:16;uniqueIndex:idx_deadline_log_once;column:kind" json:"kind"`
	DeadlineDate string    `gorm:"not null;size:10;uniqueIndex:idx_deadline_log_once;column:deadline_date" json:"deadline_date"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (DeadlineNotificationLog) TableName() string { return "deadline_notification_log" }

func (l *DeadlineNotificationLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
