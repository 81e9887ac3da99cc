package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troovstudio/troov-backend/internal/app"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime/bus"
	"github.com/troovstudio/troov-backend/internal/services"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline-check",
	Short: "Run one deadline notification pass",
	Long: `Run one deadline notification pass and exit.

Milestones already notified for a deadline are skipped, so the command is safe
to schedule alongside the in-process worker.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.LoadConfig(configPath)
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		store, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		events, err := bus.New(log, cfg.Redis)
		if err != nil {
			return fmt.Errorf("init realtime bus: %w", err)
		}
		defer events.Close()

		set := repos.NewSet(store.DB(), log)
		notifications := services.NewNotificationService(log, set.Notification, events)
		deadlines := services.NewDeadlineService(log, set.Project, set.DeadlineLog, notifications)

		created, err := deadlines.Run(dbctx.Context{Ctx: commandContext(cmd)}, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d notifications\n", created)
		return nil
	},
}
