package repos

import (
	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/data/repos/account"
	"github.com/troovstudio/troov-backend/internal/data/repos/notify"
	"github.com/troovstudio/troov-backend/internal/data/repos/project"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type ProjectRepo = project.ProjectRepo
type MoodBoardItemRepo = project.MoodBoardItemRepo
type TaskRepo = project.TaskRepo
type OverrideRepo = project.OverrideRepo

type OverviewRepo = project.SectionRepo[types.Overview]
type MoodBoardRepo = project.SectionRepo[types.MoodBoard]
type StyleGuideRepo = project.SectionRepo[types.StyleGuide]
type SitemapRepo = project.SectionRepo[types.Sitemap]
type TechnicalSpecsRepo = project.SectionRepo[types.TechnicalSpecs]
type ContentSectionRepo = project.SectionRepo[types.ContentSection]
type AssetSectionRepo = project.SectionRepo[types.AssetSection]

type NotificationRepo = notify.NotificationRepo
type DeadlineLogRepo = notify.DeadlineLogRepo

type SubscriptionRepo = account.SubscriptionRepo
type SupportTicketRepo = account.SupportTicketRepo

// Set bundles every repository the services are wired with.
type Set struct {
	Project       ProjectRepo
	Overview      OverviewRepo
	MoodBoard     MoodBoardRepo
	MoodBoardItem MoodBoardItemRepo
	StyleGuide    StyleGuideRepo
	Sitemap       SitemapRepo
	Technical     TechnicalSpecsRepo
	Content       ContentSectionRepo
	Assets        AssetSectionRepo
	Task          TaskRepo
	Override      OverrideRepo

	Notification NotificationRepo
	DeadlineLog  DeadlineLogRepo

	Subscription  SubscriptionRepo
	SupportTicket SupportTicketRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Project:       project.NewProjectRepo(db, baseLog),
		Overview:      project.NewSectionRepo[types.Overview](db, baseLog),
		MoodBoard:     project.NewSectionRepo[types.MoodBoard](db, baseLog),
		MoodBoardItem: project.NewMoodBoardItemRepo(db, baseLog),
		StyleGuide:    project.NewSectionRepo[types.StyleGuide](db, baseLog),
		Sitemap:       project.NewSectionRepo[types.Sitemap](db, baseLog),
		Technical:     project.NewSectionRepo[types.TechnicalSpecs](db, baseLog),
		Content:       project.NewSectionRepo[types.ContentSection](db, baseLog),
		Assets:        project.NewSectionRepo[types.AssetSection](db, baseLog),
		Task:          project.NewTaskRepo(db, baseLog),
		Override:      project.NewOverrideRepo(db, baseLog),

		Notification: notify.NewNotificationRepo(db, baseLog),
		DeadlineLog:  notify.NewDeadlineLogRepo(db, baseLog),

		Subscription:  account.NewSubscriptionRepo(db, baseLog),
		SupportTicket: account.NewSupportTicketRepo(db, baseLog),
	}
}
