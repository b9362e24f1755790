// Package main provides the semmls binary entry point.
// semmls folds per-run machine learning metadata into a project's provenance graph
// and reports on it: a leaderboard of runs by metric and a view of hyperparameters.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semmls/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semmls"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	projectPath string
	logLevel    string
	logger      *slog.Logger
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Machine learning provenance reports",
		Long: `semmls folds per-run machine learning metadata (models, hyperparameters,
evaluation metrics) into a project's provenance graph and reports on it.

It provides:
- a leaderboard of runs ranked by an evaluation metric
- the hyperparameter settings of runs, or the difference between two runs
- RDF export of the merged provenance graph`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.logLevel)
			slog.SetDefault(opts.logger)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.projectPath, "project", "", "Project root (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		mlsCmd(opts),
		annotateCmd(opts),
		graphCmd(opts),
		versionCmd(),
	)
	return cmd
}

func mlsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mls",
		Short: "Machine learning reports over the provenance graph",
	}
	cmd.AddCommand(leaderboardCmd(opts), paramsCmd(opts))
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig applies the layered config and the --project override.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	loader := config.NewLoader(o.logger)

	var project string
	if o.projectPath != "" {
		abs, err := filepath.Abs(o.projectPath)
		if err != nil {
			return nil, fmt.Errorf("resolve project path: %w", err)
		}
		project = abs
		loader.WithWorkDir(project)
	}

	cfg, err := loader.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if project != "" {
		cfg.Project.Path = project
	}
	return cfg, nil
}

// app loads config and opens the configured backends.
func (o *rootOptions) app(ctx context.Context) (*App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return NewApp(ctx, cfg, o.logger)
}
