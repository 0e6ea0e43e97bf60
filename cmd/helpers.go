package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rfoley/loglens/internal/config"
	"github.com/rfoley/loglens/internal/extract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newLogger builds the slog logger shared by all commands. Verbose mode
// lowers the level so the extractor's progress logs become visible.
func newLogger() *slog.Logger {
	level := slog.LevelError
	if viper.GetBool("verbose") {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig unmarshals the viper state into a typed Config.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// addExtractFlags registers the extraction tuning flags shared by the
// analyze, extract, stats, and watch commands.
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("context-lines", "C", extract.DefaultContextLines,
		"number of context lines to keep before and after each error line")
	cmd.Flags().Int("max-sections", extract.DefaultMaxSections,
		"maximum number of error sections to extract")
}

// newExtractor builds an extractor from config, letting explicitly set
// command flags override the configured values.
func newExtractor(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) *extract.Extractor {
	contextLines := cfg.Extract.ContextLines
	if cmd.Flags().Changed("context-lines") {
		contextLines, _ = cmd.Flags().GetInt("context-lines")
	}

	maxSections := cfg.Extract.MaxSections
	if cmd.Flags().Changed("max-sections") {
		maxSections, _ = cmd.Flags().GetInt("max-sections")
	}

	return extract.New(
		extract.WithContextLines(contextLines),
		extract.WithMaxSections(maxSections),
		extract.WithLogger(logger),
	)
}

// readWholeFile reads a file with tolerant decoding, matching the
// extractor's substitution of invalid UTF-8.
func readWholeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
