package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/breaks"
	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/output"
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Track breaks",
}

var breakStartCmd = &cobra.Command{
	Use:   "start TYPE",
	Short: "Start a break",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		_, ledger, unlock, err := openLedger(args[0])
		if err != nil {
			return err
		}
		defer unlock()

		b := ledger.Start(args[0])
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, output.BreaksJSON([]breaks.Break{b})[0])
		}
		output.Messagef(os.Stdout, "Started %s break", b.Type)
		return nil
	},
}

var breakEndCmd = &cobra.Command{
	Use:   "end TYPE",
	Short: "End the most recent active break of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		_, ledger, unlock, err := openLedger(args[0])
		if err != nil {
			return err
		}
		defer unlock()

		b, ended := ledger.EndLatest(args[0])
		if outputFormat() == output.FormatJSON {
			if !ended {
				return output.JSON(os.Stdout, map[string]any{"ended": false, "type": args[0]})
			}
			return output.JSON(os.Stdout, output.BreaksJSON([]breaks.Break{b})[0])
		}
		if !ended {
			// Not an error: the warning is already in the log.
			output.Messagef(os.Stdout, "No active %s break to end", args[0])
			return nil
		}
		output.Messagef(os.Stdout, "Ended %s break", b.Type)
		return nil
	},
}

var flagBreakSeed int64

var breakRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Add a synthetic, already-ended break (demo/testing)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		unlock, err := a.lock()
		if err != nil {
			return err
		}
		defer unlock()

		if flagBreakSeed != 0 {
			a.ledger.Seed(flagBreakSeed)
		}
		b := a.ledger.AddRandom()
		output.Messagef(os.Stdout, "Added random %s break (%s)", b.Type, b.End.Sub(b.Start))
		return nil
	},
}

var breakListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the break ledger",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, output.BreaksJSON(a.ledger.Entries()))
		case output.FormatCompact:
			output.BreakCompact(os.Stdout, a.ledger.Entries())
		default:
			output.BreakTable(os.Stdout, a.ledger.Entries())
		}
		return nil
	},
}

// openLedger opens the app, validates the break type against the
// catalog and takes the data lock.
func openLedger(breakType string) (*app, *breaks.Ledger, func(), error) {
	a, err := openApp()
	if err != nil {
		return nil, nil, nil, err
	}
	if !a.ledger.HasType(breakType) {
		return nil, nil, nil, clierr.Newf(clierr.UnknownBreakType,
			"unknown break type %q (catalog: %s)", breakType, strings.Join(a.ledger.Types(), ", ")).
			WithDetails(map[string]any{"type": breakType, "catalog": a.ledger.Types()})
	}
	unlock, err := a.lock()
	if err != nil {
		return nil, nil, nil, err
	}
	return a, a.ledger, unlock, nil
}

func init() {
	breakRandomCmd.Flags().Int64Var(&flagBreakSeed, "seed", 0, "seed for the random source (0 = clock)")
	breakCmd.AddCommand(breakStartCmd)
	breakCmd.AddCommand(breakEndCmd)
	breakCmd.AddCommand(breakRandomCmd)
	breakCmd.AddCommand(breakListCmd)
	rootCmd.AddCommand(breakCmd)
}
