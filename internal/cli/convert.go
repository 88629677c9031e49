package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/asslrc/internal/config"
	"github.com/mgpai22/asslrc/internal/convert"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [ass_file...]",
	Short: "Convert ASS scripts to LRC lyrics",
	Long: `Convert ASS/SSA scripts to LRC lyric files.

Without arguments every file matching --pattern in --input-dir is
converted. Each output is written next to its input (or into
--output-dir) with the same base name and an .lrc extension. Existing
outputs are never overwritten; they are counted as not converted
without being reported.

Examples:
  asslrc convert
  asslrc convert song.ass
  asslrc convert -i ./scripts -o ./lyrics --concurrency 4`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("input-dir", "i", "", "Directory to search for scripts (default \".\")")
	convertCmd.Flags().
		StringP("output-dir", "o", "", "Directory for LRC files (default: next to each input)")
	convertCmd.Flags().
		String("pattern", "", "Glob for input file names (default \"*.ass\")")
	convertCmd.Flags().
		IntP("concurrency", "c", 0, "Number of files converted in parallel (default 1)")
	convertCmd.Flags().
		String("summary", "", "Summary style: auto, table, or plain")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths, err = convert.Discover(cfg.InputDir, cfg.Pattern)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	if len(paths) == 0 {
		fmt.Fprintf(out, "No files matching %s found in %s\n", cfg.Pattern, cfg.InputDir)
		return nil
	}

	logger.Debugw("Starting conversion",
		"files", len(paths),
		"output_dir", cfg.OutputDir,
		"concurrency", cfg.Concurrency,
	)

	converter := convert.NewConverter(
		cfg.OutputDir,
		cfg.Extension,
		cfg.Concurrency,
		logger,
	)
	summary := converter.Run(cmd.Context(), paths)

	writeSummary(out, summary, useTable(cfg.Summary, out))

	return nil
}

// applies command line flags on top of the config file
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		cfg.InputDir, _ = flags.GetString("input-dir")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("pattern") {
		cfg.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("summary") {
		cfg.Summary, _ = flags.GetString("summary")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.OutputDir != "" {
		if info, err := os.Stat(cfg.OutputDir); err == nil && !info.IsDir() {
			return nil, fmt.Errorf("output path %s is not a directory", cfg.OutputDir)
		}
	}

	return cfg, nil
}
