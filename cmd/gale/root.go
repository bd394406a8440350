package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/gale/internal/app"
	"github.com/dshills/gale/internal/config"
	"github.com/dshills/gale/internal/renderer/backend"
)

type rootOptions struct {
	configPath string
	logFile    string
	logLevel   string
	eval       string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "gale [file]",
		Short: "A small terminal text editor",
		Long: `gale edits one file in the terminal.

Ctrl+S saves, Ctrl+O opens, Ctrl+Q quits and Ctrl+A cycles through the
remaining commands. With --eval, a Lua script edits the file without
starting the terminal interface.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runEditor(cmd, &opts, path)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/gale/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"write logs to this file (default: logs are discarded)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&opts.eval, "eval", "e", "",
		"run a Lua script against the file and exit")

	cmd.AddCommand(newVersionCmd(), newConfigCmd(&opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gale %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), opts, app.NullLogger)
			if err != nil {
				return err
			}
			defer cfg.Close()

			data, err := toml.Marshal(cfg.Settings().Tree())
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			for _, key := range cfg.Unknown() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown setting %s\n", key)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	})
	return cmd
}

func runEditor(cmd *cobra.Command, opts *rootOptions, path string) error {
	logger, closeLog, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()
	app.SetLogger(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer cfg.Close()

	if opts.eval != "" {
		return runEval(ctx, cmd.OutOrStdout(), cfg, logger, path, opts.eval)
	}

	if err := cfg.Watch(); err != nil {
		logger.WithComponent("config").Warn("live reload disabled: %v", err)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	editor, err := app.New(app.Options{
		Backend: term,
		Config:  cfg,
		Path:    path,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	if err := editor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runEval applies a script to path without a terminal. The script saves
// explicitly with ed.save().
func runEval(ctx context.Context, out io.Writer, cfg *config.Config, logger *app.Logger, path, script string) error {
	editor, err := app.New(app.Options{
		Config:       cfg,
		Path:         path,
		Logger:       logger,
		ScriptOutput: out,
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	return editor.RunScript(ctx, script)
}

func loadConfig(ctx context.Context, opts *rootOptions, logger *app.Logger) (*config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.New(config.WithPath(opts.configPath))
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.WithComponent("config")
	if cfg.Path() != "" {
		log.Info("using %s", cfg.Path())
	}
	for _, key := range cfg.Unknown() {
		log.Warn("unknown setting %s", key)
	}
	return cfg, nil
}

func newLogger(opts *rootOptions) (*app.Logger, func(), error) {
	level, err := app.ParseLogLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	if opts.logFile == "" {
		return app.NullLogger, func() {}, nil
	}

	f, err := app.OpenLogFile(opts.logFile)
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(app.LoggerConfig{
		Level:  level,
		Output: f,
		Prefix: "gale",
	})
	return logger, func() { _ = f.Close() }, nil
}
