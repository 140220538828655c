package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/timefmt"
)

var flagLogKind string

var logCmd = &cobra.Command{
	Use:   "log TEXT...",
	Short: "Append an entry to the activity log",
	Long: `Appends a timestamped entry to the activity log. The default kind is
HOURLY (a "what did you do this hour" note); use --kind for other tags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			return clierr.New(clierr.InvalidInput, "log text must not be empty")
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

		e := a.book.Append(logbook.Kind(flagLogKind), text)

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, output.LogEntriesJSON([]logbook.Entry{e})[0])
		}
		output.Messagef(os.Stdout, "Logged %s entry at %s", e.Kind, timefmt.FormatLocal(e.Timestamp))
		return nil
	},
}

var (
	flagLogsToday bool
	flagLogsKind  string
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"list"},
	Short:   "List activity log entries",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		entries := a.book.Entries()
		entries = filterEntries(entries, flagLogsKind, flagLogsToday)

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, output.LogEntriesJSON(entries))
		case output.FormatCompact:
			output.LogCompact(os.Stdout, entries)
		default:
			output.LogTable(os.Stdout, entries)
		}
		return nil
	},
}

// filterEntries applies the optional kind and same-local-day filters.
func filterEntries(entries []logbook.Entry, kind string, today bool) []logbook.Entry {
	if kind == "" && !today {
		return entries
	}
	now := time.Now()
	var out []logbook.Entry
	for _, e := range entries {
		if kind != "" && e.Kind != logbook.Kind(kind) {
			continue
		}
		if today && !timefmt.SameLocalDay(now, e.Timestamp) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func init() {
	logCmd.Flags().StringVar(&flagLogKind, "kind", logbook.KindHourly.String(), "entry kind tag")
	logsCmd.Flags().BoolVar(&flagLogsToday, "today", false, "only entries from today")
	logsCmd.Flags().StringVar(&flagLogsKind, "kind", "", "only entries of this kind")
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(logsCmd)
}
