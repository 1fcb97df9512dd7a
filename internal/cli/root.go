// Package cli wires configuration, logging, storage and the seed client
// together behind the todolist command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/logging"
	"github.com/sandeepkv93/todolist/internal/update"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
	logConsole bool
	noSeed     bool
}

// app is the state shared by every command once the pre-run has finished.
type app struct {
	opts     rootOptions
	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
}

// NewRootCmd builds the command tree. Running it without a subcommand
// launches the interactive UI.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}

	root := &cobra.Command{
		Use:   "todolist",
		Short: "A terminal to-do list",
		Long: `todolist keeps a local list of tasks in SQLite.

On first launch with an empty store it imports a set of demo tasks
from a remote endpoint. Run 'todolist' without arguments to open the
interactive UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "Path to config file (default ~/.todolist/config.yaml)")
	flags.StringVar(&a.opts.dbPath, "db", "", "Path to the task database, or :memory:")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&a.opts.logFile, "log-file", "", "Path to log file")
	flags.BoolVar(&a.opts.logConsole, "log-console", false, "Mirror logs to stderr")
	flags.BoolVar(&a.opts.noSeed, "no-seed", false, "Never import demo tasks into an empty store")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDoneCmd(a),
		newDeleteCmd(a),
		newShowCmd(a),
		newSeedCmd(a),
	)
	for _, cmd := range append([]*cobra.Command{root}, root.Commands()...) {
		if cmd.RunE != nil {
			cmd.RunE = a.withShutdown(cmd.RunE)
		}
	}
	return root
}

// withShutdown closes the logger once run returns, whether it failed or not.
func (a *app) withShutdown(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.shutdown(cmd)
		err := run(cmd, args)
		if err != nil {
			a.logger.Error("command failed", slog.String("command", cmd.Name()), slog.Any("error", err))
		}
		return err
	}
}

func (a *app) shutdown(cmd *cobra.Command) {
	a.logger.Info("todolist exiting", slog.String("command", cmd.Name()))
	if a.logClose != nil {
		_ = a.logClose.Close()
		a.logClose = nil
	}
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	path := a.opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.opts.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.opts.logFile
	}
	if flags.Changed("log-console") {
		cfg.LogConsole = a.opts.logConsole
	}
	if a.opts.noSeed {
		cfg.SeedEnabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Config{
		Level:    cfg.LogLevel,
		FilePath: cfg.LogFile,
		Console:  cfg.LogConsole,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.logClose = closer
	a.logger.Info("todolist started", slog.String("command", cmd.Name()), slog.String("db", cfg.DBPath))
	return nil
}

func (a *app) runTUI(ctx context.Context) error {
	svc, closeStore, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	a.logger.Info("launching TUI")
	m := update.NewModel(ctx, svc, update.WithLogger(a.logger))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", slog.Any("error", err))
		return fmt.Errorf("run TUI: %w", err)
	}
	a.logger.Info("TUI exited normally")
	return nil
}
