// Package prompt builds the messages sent to an llm.Provider for error
// analysis, including the statistics banner prepended to preprocessed logs.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rfoley/loglens/internal/llm"
	"github.com/rfoley/loglens/internal/summarize"
)

// largeFileNoteMB is the size above which the prompt carries a note telling
// the model it is looking at a preprocessed excerpt.
const largeFileNoteMB = 3.0

// AnalysisInput collects everything that goes into an analysis prompt.
type AnalysisInput struct {
	// LogText is the extracted (or raw) log content.
	LogText string

	// Stats, when non-nil, is rendered as a banner ahead of the log text.
	Stats *summarize.Stats

	// Categories are the classified error categories, included in the
	// banner when present.
	Categories []string

	// FileSizeMB is the original file size; very large files get a
	// preprocessing note so the model knows context lines were trimmed.
	FileSizeMB float64

	// ContextLines is the radius used during extraction, referenced by the
	// preprocessing note.
	ContextLines int
}

// BuildAnalysis constructs the system and user messages for a root-cause
// analysis request.
func BuildAnalysis(in AnalysisInput) []llm.Message {
	var sb strings.Builder

	if in.FileSizeMB > largeFileNoteMB {
		sb.WriteString(fmt.Sprintf(
			"NOTE: This is a preprocessed version of a very large log file (%.2f MB). "+
				"Only sections containing errors and %d lines of context before and after are included.\n\n",
			in.FileSizeMB, in.ContextLines))
	}

	sb.WriteString("Please analyze the following DevOps error and provide a solution:\n\n")

	if in.Stats != nil {
		sb.WriteString(StatsBanner(*in.Stats, in.Categories))
		sb.WriteString("\n")
	}

	sb.WriteString(in.LogText)

	return []llm.Message{
		{Role: "system", Content: System()},
		{Role: "user", Content: sb.String()},
	}
}

// StatsBanner renders the statistics record as the ERROR STATISTICS SUMMARY
// block placed ahead of the log text. Histogram keys are emitted in sorted
// order so the banner is deterministic.
func StatsBanner(stats summarize.Stats, categories []string) string {
	var sb strings.Builder

	rule := strings.Repeat("=", 80)
	sb.WriteString("\n\n" + rule + "\nERROR STATISTICS SUMMARY\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("Total errors identified: %d\n", stats.ErrorCount))
	sb.WriteString(fmt.Sprintf("Total warnings identified: %d\n", stats.WarningCount))

	if len(stats.ExceptionTypes) > 0 {
		sb.WriteString("\nException types:\n")
		for _, name := range sortedKeys(stats.ExceptionTypes) {
			sb.WriteString(fmt.Sprintf("- %s: %d occurrences\n", name, stats.ExceptionTypes[name]))
		}
	}

	if len(stats.ErrorCodes) > 0 {
		sb.WriteString("\nError codes:\n")
		for _, code := range sortedKeys(stats.ErrorCodes) {
			sb.WriteString(fmt.Sprintf("- %s: %d occurrences\n", code, stats.ErrorCodes[code]))
		}
	}

	if len(stats.CommonErrors) > 0 {
		sb.WriteString("\nCommon error patterns:\n")
		for _, pc := range stats.CommonErrors {
			sb.WriteString(fmt.Sprintf("- %s: %d occurrences\n", pc.Pattern, pc.Count))
		}
	}

	if len(categories) > 0 {
		sb.WriteString(fmt.Sprintf("\nError categories: %s\n", strings.Join(categories, ", ")))
	}

	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
