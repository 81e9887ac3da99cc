package db

import (
	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/domain/account"
	"github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/domain/project"
)

// Models lists every persisted table in migration order.
func Models() []any {
	return []any{
		// Projects
		&project.Project{},

		// Section rows
		&project.Overview{},
		&project.MoodBoard{},
		&project.MoodBoardItem{},
		&project.StyleGuide{},
		&project.Sitemap{},
		&project.TechnicalSpecs{},
		&project.ContentSection{},
		&project.AssetSection{},
		&project.Task{},
		&project.SectionCompletionOverride{},

		// Notifications
		&notify.Notification{},
		&notify.DeadlineNotificationLog{},

		// Account
		&account.UserSubscription{},
		&account.SupportTicket{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("running auto-migration", "tables", len(Models()))
	return AutoMigrateAll(s.db)
}
