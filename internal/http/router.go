package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/troovstudio/troov-backend/internal/http/handlers"
	httpMW "github.com/troovstudio/troov-backend/internal/http/middleware"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	Tracing        bool
	Metrics        bool
	CronSecret     string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	ProjectHandler      *httpH.ProjectHandler
	SectionHandler      *httpH.SectionHandler
	MoodBoardHandler    *httpH.MoodBoardHandler
	TaskHandler         *httpH.TaskHandler
	CompletionHandler   *httpH.CompletionHandler
	SummaryHandler      *httpH.SummaryHandler
	AssetHandler        *httpH.AssetHandler
	RealtimeHandler     *httpH.RealtimeHandler
	NotificationHandler *httpH.NotificationHandler
	AccountHandler      *httpH.AccountHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		name := cfg.ServiceName
		if name == "" {
			name = "troov-backend"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if cfg.Metrics {
		r.Use(httpMW.Metrics(observability.M()))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")

	// Cron (shared secret)
	if cfg.AccountHandler != nil {
		api.POST("/cron/deadline-check", httpMW.RequireCronSecret(cfg.CronSecret), cfg.AccountHandler.DeadlineCheck)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.PATCH("/projects/:id", cfg.ProjectHandler.Update)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
		}

		// Sections
		if cfg.SectionHandler != nil {
			protected.GET("/projects/:id/sections/:section", cfg.SectionHandler.Load)
			protected.PUT("/projects/:id/sections/:section", cfg.SectionHandler.Save)
		}

		// Mood board
		if cfg.MoodBoardHandler != nil {
			protected.GET("/projects/:id/mood-board/items", cfg.MoodBoardHandler.ListItems)
			protected.POST("/projects/:id/mood-board/items", cfg.MoodBoardHandler.AddItem)
			protected.PATCH("/projects/:id/mood-board/items/:itemId", cfg.MoodBoardHandler.UpdateItem)
			protected.DELETE("/projects/:id/mood-board/items/:itemId", cfg.MoodBoardHandler.DeleteItem)
		}

		// Tasks
		if cfg.TaskHandler != nil {
			protected.GET("/projects/:id/tasks", cfg.TaskHandler.List)
			protected.POST("/projects/:id/tasks", cfg.TaskHandler.Create)
			protected.PUT("/projects/:id/tasks/order", cfg.TaskHandler.Reorder)
			protected.PATCH("/projects/:id/tasks/:taskId", cfg.TaskHandler.Update)
			protected.DELETE("/projects/:id/tasks/:taskId", cfg.TaskHandler.Delete)
		}

		// Completion
		if cfg.CompletionHandler != nil {
			protected.GET("/projects/:id/completion", cfg.CompletionHandler.Get)
			protected.PUT("/projects/:id/completion/:section", cfg.CompletionHandler.SetOverride)
		}

		// Summary export
		if cfg.SummaryHandler != nil {
			protected.GET("/projects/:id/summary", cfg.SummaryHandler.Export)
			protected.GET("/projects/:id/progress.png", cfg.SummaryHandler.ProgressCard)
		}

		// Assets
		if cfg.AssetHandler != nil {
			protected.POST("/projects/:id/assets/upload", cfg.AssetHandler.Upload)
			protected.DELETE("/projects/:id/assets/:assetId", cfg.AssetHandler.Delete)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/projects/:id/events", cfg.RealtimeHandler.ProjectEvents)
			protected.GET("/notifications/events", cfg.RealtimeHandler.UserEvents)
		}

		// Notifications
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.POST("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
			protected.POST("/notifications/clear-read", cfg.NotificationHandler.ClearRead)
			protected.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
		}

		// Support and billing
		if cfg.AccountHandler != nil {
			protected.POST("/support/tickets", cfg.AccountHandler.CreateSupportTicket)
			protected.POST("/billing/portal-session", cfg.AccountHandler.PortalSession)
		}
	}

	return r
}
