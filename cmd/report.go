package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/report"
)

var (
	flagReportModel      string
	flagReportPromptOnly bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the weekly AI productivity summary",
	Long: `Gathers the last week's tracker files, builds an analysis prompt and
runs it through a local ollama model. The summary is written to
ai_weekly_summary.txt in the data directory. With --prompt-only (or
when ollama fails) the prompt is printed instead, for pasting into
another assistant.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		files := report.RecentFiles(a.res.Dir())
		if len(files) == 0 {
			return clierr.Newf(clierr.ReportFailed,
				"no productivity logs found for the last week in %s", a.res.Dir())
		}

		fmt.Fprintln(os.Stderr, "Analyzing these files:")
		for _, f := range files {
			fmt.Fprintln(os.Stderr, "  "+f)
		}

		prompt := report.BuildPrompt(files)
		if flagReportPromptOnly {
			fmt.Fprintln(os.Stdout, prompt)
			return nil
		}

		model := flagReportModel
		if model == "" {
			model = a.cfg.Report.Model
		}
		if env := os.Getenv("TRACKLOG_OLLAMA_MODEL"); env != "" && flagReportModel == "" {
			model = env
		}
		timeout := time.Duration(a.cfg.Report.TimeoutSeconds) * time.Second

		summary, err := report.RunOllama(cmd.Context(), model, prompt, timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\nFalling back to manual prompt:\n\n", err)
			fmt.Fprintln(os.Stdout, prompt)
			return nil
		}

		path, err := report.WriteSummary(a.res.Dir(), summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]string{"summary": summary, "path": path})
		}
		fmt.Fprintln(os.Stdout, summary)
		if path != "" {
			output.Messagef(os.Stderr, "\nSummary written to: %s", path)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagReportModel, "model", "", "ollama model (default from config)")
	reportCmd.Flags().BoolVar(&flagReportPromptOnly, "prompt-only", false, "print the prompt instead of running ollama")
	rootCmd.AddCommand(reportCmd)
}
