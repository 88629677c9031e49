package cli

import (
	"github.com/mgpai22/asslrc/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "asslrc",
	Short: "Convert ASS subtitle scripts into LRC lyric files",
	Long: `Asslrc converts ASS/SSA subtitle scripts into LRC lyric files.

Every Dialogue line becomes one [mm:ss.cc] lyric line. Lines that share
a start time are spread across the gap to the next cue so that they do
not collapse onto a single instant.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to a YAML config file")
}
