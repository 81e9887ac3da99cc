package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/autosave"
	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/db"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	httpapi "github.com/troovstudio/troov-backend/internal/http"
	"github.com/troovstudio/troov-backend/internal/jobs"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
	"github.com/troovstudio/troov-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    repos.Set
	Services Services
	Server   *httpapi.Server
	SSEHub   *realtime.SSEHub

	store    *db.Service
	bus      bus.Bus
	queue    *autosave.Queue
	registry *completion.Registry
	worker   *jobs.DeadlineWorker

	cancel       context.CancelFunc
	otelShutdown func(context.Context) error
}

// New builds the full application from cfg. Nothing runs until Start.
func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.Log.Mode, logger.WithHashSalt(cfg.Log.HashSalt))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded", cfg.Summary()...)

	store, err := OpenDatabase(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := store.DB()

	ssehub := realtime.NewSSEHub(log)
	if cfg.Realtime.Heartbeat > 0 {
		ssehub.SetHeartbeat(cfg.Realtime.Heartbeat)
	}
	eventBus, err := bus.New(log, cfg.Redis)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("init realtime bus: %w", err)
	}

	reposet := repos.NewSet(theDB, log)

	a := &App{
		Log:    log,
		DB:     theDB,
		Cfg:    cfg,
		Repos:  reposet,
		SSEHub: ssehub,
		store:  store,
		bus:    eventBus,
	}

	a.queue = autosave.New(log,
		autosave.WithDebounce(cfg.Autosave.Debounce),
		autosave.WithWriteTimeout(cfg.Autosave.WriteTimeout),
		autosave.OnWritten(a.written),
	)

	serviceset, err := wireServices(theDB, log, cfg, reposet, a.queue, eventBus)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Services = serviceset
	a.registry = serviceset.Registry
	if cfg.Deadline.Enabled {
		a.worker = jobs.NewDeadlineWorker(log, serviceset.Deadline, cfg.Deadline.Interval)
	}

	a.Server = httpapi.NewServer(wireRouter(log, cfg, serviceset, ssehub))
	return a, nil
}

// OpenDatabase connects and brings the schema up to date.
func OpenDatabase(log *logger.Logger, cfg Config) (*db.Service, error) {
	store, err := db.Open(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	return store, nil
}

// written fans autosave completions into the section service once it exists.
func (a *App) written(key autosave.Key) {
	if a.Services.Section != nil {
		a.Services.Section.Written(key)
	}
}

func (a *App) Start() error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.otelShutdown = observability.InitOTel(ctx, a.Log, a.Cfg.Otel)

	if err := a.bus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
		return fmt.Errorf("start realtime forwarder: %w", err)
	}

	interval := a.Cfg.Tracker.IdleTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go a.registry.RunJanitor(ctx, interval)

	if a.worker != nil {
		a.worker.Start(ctx)
	}
	return nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(a.Cfg.HTTP.Addr)
}

// Close stops background work, drains pending section writes and releases
// every connection. It is safe to call more than once.
func (a *App) Close() {
	if a == nil {
		return
	}
	timeout := a.Cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if a.Server != nil {
		errs = append(errs, a.Server.Shutdown(ctx))
	}
	if a.queue != nil {
		errs = append(errs, a.queue.Close(ctx))
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
		a.bus = nil
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.otelShutdown != nil {
		errs = append(errs, a.otelShutdown(ctx))
		a.otelShutdown = nil
	}
	if err := errors.Join(errs...); err != nil && a.Log != nil {
		a.Log.Warn("Shutdown finished with errors", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
