package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/notify"
	"github.com/mvessman/tracklog/internal/output"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Fire the one-shot attention signal",
	Long: `Triggers the configured alert command (or a terminal bell) without
waiting for it. Meant to be wired to a scheduler for hourly reminders:

  0 * * * * tracklog notify`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		notify.Notify(a.cfg.AlertCommand)
		output.Messagef(os.Stdout, "Attention signal sent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
