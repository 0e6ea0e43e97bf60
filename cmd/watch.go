package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rfoley/loglens/internal/classify"
	"github.com/rfoley/loglens/internal/output"
	"github.com/rfoley/loglens/internal/summarize"
	"github.com/rfoley/loglens/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Watch a log file and refresh its error statistics on change",
	Long: `Monitor a log file and re-run extraction, statistics, and classification
every time the file is written to. Each pass is a full re-extraction, so the
printed summary always reflects the whole file. Follows through log
rotations. Stop with Ctrl-C.

Examples:
  loglens watch /var/log/app.log
  loglens watch --context-lines 4 build.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addExtractFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	extractor := newExtractor(cmd, cfg, logger)

	format := output.ParseFormat(viper.GetString("format"))
	colorMode := output.ParseColorMode(viper.GetString("color"))
	writer := output.New(cmd.OutOrStdout(), format).WithColor(colorMode)

	refresh := func() error {
		text, err := extractor.Extract(filePath)
		if err != nil {
			return err
		}

		report := output.Report{
			File:       filePath,
			Stats:      summarize.Summarize(text),
			Categories: classify.Classify(text),
		}

		if format != output.FormatJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n", time.Now().Format("15:04:05"))
		}
		return writer.WriteReport(report)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(watch.Options{
		Path:     filePath,
		OnChange: refresh,
	}, logger)

	return watcher.Run(ctx)
}
