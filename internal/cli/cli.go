package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/RevCBH/pgbox/internal/config"
	"github.com/spf13/cobra"
)

// VersionInfo holds build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Persistent flag values
	configDir string
	logLevel  string

	// Version information
	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()

	app.rootCmd.AddCommand(NewBuildCmd(app))
	app.rootCmd.AddCommand(NewRunCmd(app))
	app.rootCmd.AddCommand(NewInitCmd(app))
	app.rootCmd.AddCommand(NewSeedCmd(app))
	app.rootCmd.AddCommand(NewVersionCmd(app))

	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "pgbox",
		Short: "Disposable postgres environment for local development",
		Long: `Pgbox stands up a throwaway postgres instance in a container.

Each step implies the ones before it: build bakes the image, run starts
the container, init applies the schema, seed loads sample rows. A running
container is reused rather than replaced, so repeated invocations are safe.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().StringVarP(&a.configDir, "config-dir", "c", "",
		"Directory containing .pgbox.yaml (default: working directory)")
	a.rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
}

// loadConfig resolves the effective configuration for a command invocation.
// The --log-level flag wins over both the config file and the environment.
func (a *App) loadConfig() (*config.Config, error) {
	dir := a.configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	return cfg, nil
}

// setupLogger builds a structured logger at the requested level
func setupLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %q", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
