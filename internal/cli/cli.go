// Package cli implements the signcanvas command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/signcanvas/pkg/buildinfo"
	"github.com/matzehuels/signcanvas/pkg/config"
	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/observability"
	"github.com/matzehuels/signcanvas/pkg/recovery"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "signcanvas",
		Short: "Signcanvas edits sign layouts with undo and crash recovery",
		Long: `Signcanvas is a headless editing engine for signage canvases. It spaces
and aligns objects, records every change in a bounded undo history and keeps
a recovery draft so an interrupted session can be resumed.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/signcanvas/config.toml)")

	root.AddCommand(c.distributeCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.recoverCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and attaches the logger to the command
// context. A log level from the file only applies when -v was not given.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Log.Level != "" && c.Logger.GetLevel() != log.DebugLevel {
		c.Logger.SetLevel(cfg.LogLevel())
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRecoveryHooks(hooks)
	if c.Logger.GetLevel() == log.DebugLevel {
		observability.SetHistoryHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Session Factory
// =============================================================================

// openStore connects to the configured recovery backend. Remote backends
// show a spinner while connecting.
func (c *CLI) openStore(ctx context.Context) (recovery.Store, error) {
	backend := c.Config.Recovery.Backend
	if backend != config.BackendRedis && backend != config.BackendMongo {
		return c.Config.Recovery.OpenStore(ctx)
	}

	spinner := newSpinnerWithContext(ctx, "Connecting to "+backend+"...")
	spinner.Start()
	store, err := c.Config.Recovery.OpenStore(ctx)
	spinner.Stop()
	return store, err
}

// sessionOptions builds editor options from the loaded config.
func (c *CLI) sessionOptions(store recovery.Store) editor.Options {
	return editor.Options{
		Capacity: c.Config.History.Capacity,
		Store:    store,
		Writer:   c.Config.Recovery.WriterOptions(c.Logger),
		Logger:   c.Logger,
	}
}
