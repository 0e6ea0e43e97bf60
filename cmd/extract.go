package cmd

import (
	"fmt"
	"os"

	"github.com/rfoley/loglens/internal/config"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <file>...",
	Short: "Extract error sections from log files without calling an LLM",
	Long: `Run only the preprocessing step: reduce each log file to the sections
surrounding error-relevant lines and print (or save) the result.

Files smaller than 200 KiB are printed whole.

Examples:
  loglens extract /var/log/app.log
  loglens extract --context-lines 5 --max-sections 50 build.log
  loglens extract --save extracted.log huge.log
  loglens extract 'logs/*.log'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd)
	extractCmd.Flags().String("save", "", "write the extracted text to a file instead of stdout (single input only)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	savePath, _ := cmd.Flags().GetString("save")

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}
	if savePath != "" && len(files) > 1 {
		return fmt.Errorf("--save supports a single input file, got %d", len(files))
	}

	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	extractor := newExtractor(cmd, cfg, logger)

	multiFile := len(files) > 1
	for _, file := range files {
		text, err := extractor.Extract(file)
		if err != nil {
			return err
		}

		if savePath != "" {
			if err := os.WriteFile(savePath, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to save extracted text: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted text saved to %s\n", savePath)
			continue
		}

		if multiFile {
			fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", file)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	return nil
}
