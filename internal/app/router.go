package app

import (
	httpapi "github.com/troovstudio/troov-backend/internal/http"
	httpH "github.com/troovstudio/troov-backend/internal/http/handlers"
	httpMW "github.com/troovstudio/troov-backend/internal/http/middleware"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
)

func wireRouter(log *logger.Logger, cfg Config, s Services, hub *realtime.SSEHub) httpapi.RouterConfig {
	log.Info("Wiring handlers...")
	return httpapi.RouterConfig{
		Log:            log,
		ServiceName:    cfg.Otel.ServiceName,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Tracing:        cfg.Otel.Enabled,
		Metrics:        cfg.Metrics.Enabled,
		CronSecret:     cfg.Cron.Secret,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, s.Auth),

		HealthHandler:       httpH.NewHealthHandler(),
		ProjectHandler:      httpH.NewProjectHandler(s.Project),
		SectionHandler:      httpH.NewSectionHandler(s.Section),
		MoodBoardHandler:    httpH.NewMoodBoardHandler(s.MoodBoard),
		TaskHandler:         httpH.NewTaskHandler(s.Task),
		CompletionHandler:   httpH.NewCompletionHandler(s.Completion),
		SummaryHandler:      httpH.NewSummaryHandler(s.Summary, s.ProgressCard),
		AssetHandler:        httpH.NewAssetHandler(s.Asset),
		RealtimeHandler:     httpH.NewRealtimeHandler(log, hub, s.Project, s.Completion),
		NotificationHandler: httpH.NewNotificationHandler(s.Notification),
		AccountHandler:      httpH.NewAccountHandler(s.Support, s.Billing, s.Deadline),
	}
}
