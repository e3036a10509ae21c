package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/clineup/clineup/internal/config"
	"github.com/clineup/clineup/internal/logging"
	"github.com/clineup/clineup/internal/organize"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var opts = newOptions()

var rootCmd = &cobra.Command{
	Use:   "clineup",
	Short: "Organize photos into folders built from their metadata",
	Long: `clineup copies, moves or links media files into a destination tree
named after their metadata. Folder and filename formats use placeholders:

  %year %month %day                       capture date
  %created_year %modified_month ...       filesystem dates
  %width %height %camera_model %camera_brand
  %country %state %county %municipality %city   (needs --reverse-geocoding)
  %original_filename %original_folder

{%city|%county} takes the first placeholder that resolves.`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runOrganize,
}

// Execute runs the root command until it finishes or a signal arrives.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	opts.register(rootCmd)
	rootCmd.AddCommand(tuiCmd)
}

// loadSettings layers defaults, the config file, .env and the environment,
// then the flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	settings, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settings.ApplyEnv()
	opts.apply(cmd.Flags(), settings)
	return settings, nil
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	// Dry-run output is the point of a dry run.
	if settings.DryRun && logging.ParseLevel(settings.Log.Level) < logrus.InfoLevel {
		settings.Log.Level = logging.InfoLevel
	}

	logger, closer, err := logging.NewLogger(&settings.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	log, runID := logging.WithRun(logger)
	log.WithFields(logrus.Fields{
		"source":      settings.Source,
		"destination": settings.Destination,
		"strategy":    settings.Strategy,
		"dry_run":     settings.DryRun,
	}).Debug("starting run")

	manager, err := organize.NewManager(settings, log, func(event organize.ProgressEvent) {
		logEvent(log, event)
	})
	if err != nil {
		return err
	}
	defer manager.Close()

	ctx := cmd.Context()
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	sum, err := manager.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Warn("Interrupted, stopping")
	} else if err != nil {
		return err
	}

	printSummary(cmd, sum, runID)
	return err
}

func logEvent(log logrus.FieldLogger, event organize.ProgressEvent) {
	switch event.Level {
	case organize.LevelVerbose:
		log.Debug(event.Message)
	case organize.LevelWarning:
		log.Warn(event.Message)
	case organize.LevelError:
		log.Error(event.Message)
	default:
		log.Info(event.Message)
	}
}

func printSummary(cmd *cobra.Command, sum organize.Summary, runID string) {
	out := cmd.OutOrStdout()
	if sum.DryRun {
		fmt.Fprintln(out, "Dry run, nothing was changed.")
	}
	fmt.Fprintf(out, "%s files: %s placed, %s duplicates, %s skipped, %s failed (run %s)\n",
		humanize.Comma(int64(sum.Total)),
		humanize.Comma(int64(sum.Placed)),
		humanize.Comma(int64(sum.Duplicates)),
		humanize.Comma(int64(sum.Skipped)),
		humanize.Comma(int64(sum.Failed)),
		runID,
	)
}
