package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/RevCBH/pgbox/internal/config"
	"github.com/RevCBH/pgbox/internal/container"
	"github.com/RevCBH/pgbox/internal/database"
	"github.com/RevCBH/pgbox/internal/events"
	"github.com/RevCBH/pgbox/internal/schema"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRunCmd creates the run command
func NewRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the postgres container",
		Long: `Run starts the postgres container, building the image first if it
does not exist yet. A container already running the target image is
left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStep(bootstrap.StepRun)
		},
	}
}

// runStep executes a bootstrap step end to end. All four step commands
// funnel through here; only the requested step differs.
func (a *App) runStep(step bootstrap.Step) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handler
	handler := NewSignalHandler(cancel)
	handler.OnShutdown(func() {
		fmt.Fprintln(os.Stderr, "\nShutting down...")
	})
	handler.Start()
	defer handler.Stop()

	// Create event bus
	bus := events.NewBus()
	defer bus.Close()

	// Plain-text display on a terminal, JSON event lines otherwise
	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	display := NewDisplay(os.Stdout, useColor)
	if events.IsJSONMode(false) {
		bus.Subscribe(events.JSONEmitterHandler(events.NewJSONEmitter(os.Stdout)))
	} else {
		bus.Subscribe(display.Handler())
	}
	if cfg.LogLevel == "debug" {
		bus.Subscribe(events.LogHandler(events.LogConfig{IncludePayload: true}))
	}

	orch, cleanup, err := a.buildOrchestrator(cfg, bus, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := orch.Execute(ctx, step)
	if result != nil && !events.IsJSONMode(false) {
		display.Summary(result, err)
	}
	return err
}

// buildOrchestrator wires the runtime, database client, and SQL sources
// into a bootstrap orchestrator. The returned cleanup closes the runtime.
func (a *App) buildOrchestrator(cfg *config.Config, bus *events.Bus, logger *slog.Logger) (*bootstrap.Orchestrator, func(), error) {
	runtime, err := container.New(container.Config{Binary: cfg.Runtime.Binary})
	if err != nil {
		return nil, nil, err
	}

	sql, err := schema.Load(cfg.SQL.InitFile, cfg.SQL.SeedFile)
	if err != nil {
		runtime.Close()
		return nil, nil, err
	}

	settle, err := cfg.SettleDelayDuration()
	if err != nil {
		runtime.Close()
		return nil, nil, err
	}
	backoff, err := cfg.ConnectBackoffDuration()
	if err != nil {
		runtime.Close()
		return nil, nil, err
	}

	orch := bootstrap.New(bootstrap.Config{
		Image:           bootstrap.ImageRef{Name: cfg.Image.Name, Tag: cfg.Image.Tag},
		BuildContext:    cfg.Image.BuildContext,
		HostPort:        cfg.Database.Port,
		ContainerPort:   cfg.Database.ContainerPort,
		DSN:             cfg.DSN(),
		InitSQL:         sql.Init(),
		SeedSQL:         sql.Seed(),
		SettleDelay:     settle,
		ConnectAttempts: cfg.Runtime.ConnectAttempts,
		ConnectBackoff:  backoff,
	}, bootstrap.Dependencies{
		Runtime:  runtime,
		Database: database.NewClient(),
		Bus:      bus,
		Logger:   logger,
	})

	cleanup := func() {
		if err := runtime.Close(); err != nil {
			logger.Warn("closing container runtime", "error", err)
		}
	}
	return orch, cleanup, nil
}
