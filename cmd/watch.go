package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the activity log as entries are appended",
	Long: `Watches the log file and prints entries appended by other tracklog
invocations until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		// Watch the whole data directory: the log file may not exist
		// yet, and appends land as writes on the directory's children.
		if err := a.res.Ensure(); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		seen := a.book.Len()
		w, err := watcher.New([]string{a.res.Dir()}, func() {
			if err := a.book.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				return
			}
			entries := a.book.Entries()
			for ; seen < len(entries); seen++ {
				fmt.Fprintln(os.Stdout, logbook.HumanLine(entries[seen]))
			}
		})
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		output.Messagef(os.Stderr, "Watching %s (ctrl-c to stop)", a.book.Path())
		w.Run(ctx, func(err error) {
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
