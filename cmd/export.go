package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write export snapshot files",
}

var exportHourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Export today's HOURLY entries to a snapshot file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runExport("hourly logs (today)", func(a *app) (string, error) {
			return a.engine.HourlyToday()
		})
	},
}

var exportWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Export the last 7 days of entries, with a JSONL section",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runExport("weekly logs", func(a *app) (string, error) {
			return a.engine.Weekly()
		})
	},
}

// runExport runs one export, distinguishing "nothing to export" from a
// failed write, and records an EXPORT log entry on success.
func runExport(label string, fn func(*app) (string, error)) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	unlock, err := a.lock()
	if err != nil {
		return err
	}
	defer unlock()

	path, err := fn(a)
	if err != nil {
		return clierr.Newf(clierr.ExportFailed, "exporting %s: %v", label, err)
	}
	if path == "" {
		return clierr.Newf(clierr.NothingToExport, "no entries to export for %s", label)
	}

	a.book.Appendf(logbook.KindExport, "Exported %s to %s", label, path)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"path": path})
	}
	fmt.Fprintln(os.Stdout, path)
	return nil
}

func init() {
	exportCmd.AddCommand(exportHourlyCmd)
	exportCmd.AddCommand(exportWeeklyCmd)
	rootCmd.AddCommand(exportCmd)
}
