package cmd

import (
	"github.com/rfoley/loglens/internal/classify"
	"github.com/rfoley/loglens/internal/config"
	"github.com/rfoley/loglens/internal/output"
	"github.com/rfoley/loglens/internal/summarize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file>...",
	Short: "Show error statistics for log files",
	Long: `Extract the error-relevant sections of each file and display the derived
statistics: error/warning counts, exception types, error codes, recurring
error patterns, and matched error categories.

Examples:
  loglens stats /var/log/app.log
  loglens stats --format json ci-run.log
  loglens stats --format table 'logs/*.log'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	addExtractFlags(statsCmd)

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	extractor := newExtractor(cmd, cfg, logger)

	format := output.ParseFormat(viper.GetString("format"))
	colorMode := output.ParseColorMode(viper.GetString("color"))
	writer := output.New(cmd.OutOrStdout(), format).WithColor(colorMode)

	reports := make([]output.Report, 0, len(files))
	for _, file := range files {
		text, err := extractor.Extract(file)
		if err != nil {
			return err
		}

		reports = append(reports, output.Report{
			File:       file,
			Stats:      summarize.Summarize(text),
			Categories: classify.Classify(text),
		})
	}

	if format == output.FormatJSON {
		if len(reports) == 1 {
			return writer.WriteJSON(reports[0])
		}
		return writer.WriteJSON(reports)
	}

	for i, report := range reports {
		if i > 0 {
			cmd.Println()
		}
		if err := writer.WriteReport(report); err != nil {
			return err
		}
	}

	return nil
}
