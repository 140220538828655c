package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/status"
	"github.com/mvessman/tracklog/internal/taskstore"
)

var flagClearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all logs, tasks and status files",
	Long: `Clears the in-memory stores and deletes the persisted log, task and
status files. Snapshot exports are kept. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !flagClearForce {
			return clierr.New(clierr.ConfirmationReq,
				"this deletes all logs, tasks and status files; re-run with --force to proceed")
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

		a.book.Reset()
		a.tasks.Reset()
		a.ledger.Reset()

		removed := 0
		for _, name := range []string{
			logbook.FileName,
			taskstore.FileName,
			status.DailyFileName,
			status.WeeklyFileName,
		} {
			err := os.Remove(a.res.In(name))
			if err == nil {
				removed++
			} else if !os.IsNotExist(err) {
				output.Messagef(os.Stderr, "Warning: could not remove %s: %v", name, err)
			}
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]int{"removed_files": removed})
		}
		output.Messagef(os.Stdout, "Cleared all data (%d files removed)", removed)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&flagClearForce, "force", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)
}
