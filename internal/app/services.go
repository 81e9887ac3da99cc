package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/autosave"
	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/platform/billing"
	"github.com/troovstudio/troov-backend/internal/platform/gcs"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/platform/sendgrid"
	"github.com/troovstudio/troov-backend/internal/realtime/bus"
	"github.com/troovstudio/troov-backend/internal/services"
	"github.com/troovstudio/troov-backend/internal/summary"
)

type Services struct {
	Engine   *completion.Engine
	Registry *completion.Registry

	Auth         services.AuthService
	Project      services.ProjectService
	Section      services.SectionService
	MoodBoard    services.MoodBoardService
	Task         services.TaskService
	Completion   services.CompletionService
	Summary      services.SummaryService
	ProgressCard services.ProgressCardService
	Asset        services.AssetService
	Notification services.NotificationService
	Deadline     services.DeadlineService
	Support      services.SupportService
	Billing      services.BillingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, set repos.Set, queue *autosave.Queue, events bus.Bus) (Services, error) {
	log.Info("Wiring services...")

	engine := NewEngine(log, set)
	registry := completion.NewRegistry(engine, cfg.Tracker.IdleTTL, log)

	auth, err := services.NewAuthService(log, cfg.Auth.JWTSecret)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}
	cards, err := services.NewProgressCardService(log, set.Project, engine)
	if err != nil {
		return Services{}, fmt.Errorf("init progress card service: %w", err)
	}
	clients, err := wireClients(log, cfg)
	if err != nil {
		return Services{}, err
	}

	completionSvc := services.NewCompletionService(log, set.Project, registry, events)
	notifications := services.NewNotificationService(log, set.Notification, events)

	return Services{
		Engine:       engine,
		Registry:     registry,
		Auth:         auth,
		Project:      services.NewProjectService(db, log, set.Project, queue, registry),
		Section:      services.NewSectionService(log, set, queue, completionSvc, events),
		MoodBoard:    services.NewMoodBoardService(log, set.Project, set.MoodBoardItem, completionSvc),
		Task:         services.NewTaskService(log, set.Project, set.Task, completionSvc),
		Completion:   completionSvc,
		Summary:      services.NewSummaryService(log, set.Project, engine),
		ProgressCard: cards,
		Asset:        services.NewAssetService(log, set.Project, clients.bucket),
		Notification: notifications,
		Deadline:     services.NewDeadlineService(log, set.Project, set.DeadlineLog, notifications),
		Support:      services.NewSupportService(log, set.SupportTicket, clients.mailer, cfg.Support.InboxEmail),
		Billing:      services.NewBillingService(log, set.Subscription, clients.portal, cfg.App.URL),
	}, nil
}

// NewEngine assembles the completion engine over the repository set.
func NewEngine(log *logger.Logger, set repos.Set) *completion.Engine {
	loader := summary.NewLoader(summary.NewRepoSource(set), log)
	return completion.NewEngine(loader, completion.NewOverrideStore(set.Override), log)
}

type clientSet struct {
	mailer sendgrid.Client
	portal billing.PortalClient
	bucket gcs.AssetBucket
}

// wireClients builds the optional outbound integrations. A missing
// configuration leaves the client nil and the dependent feature degrades.
func wireClients(log *logger.Logger, cfg Config) (clientSet, error) {
	var out clientSet
	if cfg.SendGrid.Configured() {
		mailer, err := sendgrid.New(log, cfg.SendGrid)
		if err != nil {
			return out, fmt.Errorf("init sendgrid: %w", err)
		}
		out.mailer = mailer
	} else {
		log.Warn("SendGrid not configured; support emails disabled")
	}
	if cfg.Stripe.Configured() {
		portal, err := billing.NewStripePortal(log, cfg.Stripe)
		if err != nil {
			return out, fmt.Errorf("init stripe: %w", err)
		}
		out.portal = portal
	} else {
		log.Warn("Stripe not configured; billing portal disabled")
	}
	if cfg.GCS.Configured() {
		bucket, err := gcs.New(context.Background(), log, cfg.GCS)
		if err != nil {
			return out, fmt.Errorf("init gcs: %w", err)
		}
		out.bucket = bucket
	} else {
		log.Warn("GCS not configured; asset uploads disabled")
	}
	return out, nil
}
