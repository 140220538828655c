package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Record daily or weekly status notes",
}

var statusDailyCmd = &cobra.Command{
	Use:   "daily TEXT...",
	Short: "Save a daily status note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runStatus(args, true)
	},
}

var statusWeeklyCmd = &cobra.Command{
	Use:   "weekly TEXT...",
	Short: "Save a weekly status note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runStatus(args, false)
	},
}

func runStatus(args []string, daily bool) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return clierr.New(clierr.InvalidInput, "status text must not be empty")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	unlock, err := a.lock()
	if err != nil {
		return err
	}
	defer unlock()

	var path, label string
	if daily {
		path = a.recorder.Daily(text)
		label = "daily"
	} else {
		path = a.recorder.Weekly(text)
		label = "weekly"
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"status": label, "snapshot": path})
	}
	if path == "" {
		output.Messagef(os.Stdout, "Saved %s status (snapshot export failed)", label)
		return nil
	}
	output.Messagef(os.Stdout, "Saved %s status, snapshot: %s", label, path)
	return nil
}

func init() {
	statusCmd.AddCommand(statusDailyCmd)
	statusCmd.AddCommand(statusWeeklyCmd)
	rootCmd.AddCommand(statusCmd)
}
