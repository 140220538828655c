package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/config"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory with a default config",
	Long: `Creates the data directory (default ~/.tracklog) and writes a default
config.yml. Running init is optional: every command works with defaults
and creates the directory on first write.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		dir := flagDir
		if dir == "" {
			dir = os.Getenv("TRACKLOG_DIR")
		}
		res := paths.New(dir)

		cfg, err := config.Init(res.Dir())
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]string{"dir": cfg.Dir(), "config": cfg.Path()})
		}
		output.Messagef(os.Stdout, "Initialized tracker data directory: %s", cfg.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
