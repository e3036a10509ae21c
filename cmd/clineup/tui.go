package main

import (
	"github.com/clineup/clineup/internal/logging"
	"github.com/clineup/clineup/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Pick the folder format and options interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		// The terminal belongs to the UI.
		switch settings.Log.Output {
		case "", "stderr", "stdout":
			settings.Log.Output = "none"
		}
		logger, closer, err := logging.NewLogger(&settings.Log)
		if err != nil {
			return err
		}
		defer closer.Close()

		log, _ := logging.WithRun(logger)
		return tui.Run(settings, log)
	},
}
