package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rfoley/loglens/internal/classify"
	"github.com/rfoley/loglens/internal/llm"
	"github.com/rfoley/loglens/internal/output"
	"github.com/rfoley/loglens/internal/prompt"
	"github.com/rfoley/loglens/internal/summarize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file>",
	Short: "Analyze a log file with an LLM and get a suggested fix",
	Long: `Extract the error-relevant sections of a log file, prepend summary
statistics, and send the result to an LLM for root-cause analysis.

Small files are sent whole; large files are reduced to error sections with
surrounding context before prompting.

Examples:
  loglens analyze /var/log/app.log
  loglens analyze --context-lines 4 --output solution.md build.log
  loglens analyze --raw small-error.txt
  loglens analyze --text "Error: connection refused at 10.0.0.1:5432"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	addExtractFlags(analyzeCmd)
	analyzeCmd.Flags().String("text", "", "analyze inline error text instead of a file")
	analyzeCmd.Flags().Bool("raw", false, "send the whole file without extraction")
	analyzeCmd.Flags().StringP("output", "o", "", "save the analysis to a file")
	analyzeCmd.Flags().String("save-extract", "", "save the preprocessed log text to a file before analysis")
	analyzeCmd.Flags().String("model", "", "override the configured model")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inlineText, _ := cmd.Flags().GetString("text")
	raw, _ := cmd.Flags().GetBool("raw")
	outputPath, _ := cmd.Flags().GetString("output")
	saveExtract, _ := cmd.Flags().GetString("save-extract")
	modelOverride, _ := cmd.Flags().GetString("model")

	if inlineText == "" && len(args) == 0 {
		return fmt.Errorf("provide a log file argument or --text")
	}
	if inlineText != "" && len(args) > 0 {
		return fmt.Errorf("--text and a file argument are mutually exclusive")
	}

	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	verbose := viper.GetBool("verbose")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Assemble the log text to analyze.
	var (
		logText    string
		filePath   string
		fileSizeMB float64
	)

	if inlineText != "" {
		logText = inlineText
	} else {
		filePath = args[0]

		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", filePath, err)
		}
		fileSizeMB = float64(info.Size()) / (1024 * 1024)

		if raw {
			logText, err = readWholeFile(filePath)
		} else {
			extractor := newExtractor(cmd, cfg, logger)
			logText, err = extractor.Extract(filePath)
		}
		if err != nil {
			return err
		}
	}

	if saveExtract != "" {
		if err := os.WriteFile(saveExtract, []byte(logText), 0o644); err != nil {
			return fmt.Errorf("failed to save preprocessed log: %w", err)
		}
		logger.Info("saved preprocessed log", "path", saveExtract)
	}

	stats := summarize.Summarize(logText)
	categories := classify.Classify(logText)

	// LLM setup
	provider, err := llm.NewProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w\n\nTroubleshooting:\n- Ensure Ollama is running: ollama serve\n- Check provider config in ~/.loglens.yaml", err)
	}

	if err := provider.Heartbeat(ctx); err != nil {
		if cfg.LLM.Provider == "ollama" {
			return fmt.Errorf("cannot connect to Ollama at %s: %w\n\nStart Ollama with: ollama serve",
				cfg.LLM.Ollama.Host, err)
		}
		return fmt.Errorf("LLM provider %s unavailable: %w", cfg.LLM.Provider, err)
	}

	messages := prompt.BuildAnalysis(prompt.AnalysisInput{
		LogText:      logText,
		Stats:        &stats,
		Categories:   categories,
		FileSizeMB:   fileSizeMB,
		ContextLines: cfg.Extract.ContextLines,
	})

	chatOpts := &llm.ChatOptions{
		Model:       cfg.LLM.Ollama.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	if modelOverride != "" {
		chatOpts.Model = modelOverride
	}

	stream, err := provider.ChatStream(ctx, messages, chatOpts)
	if err != nil {
		return fmt.Errorf("failed to start LLM stream: %w", err)
	}

	streamToStdout := format == output.FormatText && outputPath == ""
	if streamToStdout {
		fmt.Fprintln(cmd.OutOrStdout(), "=== Analysis ===")
		fmt.Fprintln(cmd.OutOrStdout())
	}

	var fullResponse strings.Builder
	for event := range stream {
		if event.Error != nil {
			if fullResponse.Len() > 0 {
				fmt.Fprintf(os.Stderr, "\n\nError during streaming: %v\n", event.Error)
			}
			return event.Error
		}

		if event.Content != "" {
			if streamToStdout {
				fmt.Fprint(cmd.OutOrStdout(), event.Content)
			}
			fullResponse.WriteString(event.Content)
		}
	}

	if streamToStdout {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(fullResponse.String()), 0o644); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Analysis saved to %s\n", outputPath)
	}

	if format == output.FormatJSON {
		result := map[string]interface{}{
			"file":       filePath,
			"categories": categories,
			"stats":      stats,
			"analysis":   fullResponse.String(),
			"metadata": map[string]interface{}{
				"provider": cfg.LLM.Provider,
				"model":    chatOpts.Model,
				"raw":      raw,
			},
		}
		writer := output.New(cmd.OutOrStdout(), output.FormatJSON)
		return writer.WriteJSON(result)
	}

	if verbose {
		fmt.Fprintln(cmd.OutOrStdout(), "\n=== Extraction Statistics ===")
		fmt.Fprintf(cmd.OutOrStdout(), "Errors: %d, Warnings: %d\n", stats.ErrorCount, stats.WarningCount)
		if len(categories) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(categories, ", "))
		}
	}

	return nil
}
