// Package output renders extraction reports and statistics in text, JSON,
// and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rfoley/loglens/internal/summarize"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Report bundles the per-file analysis results for rendering.
type Report struct {
	File       string          `json:"file"`
	Stats      summarize.Stats `json:"stats"`
	Categories []string        `json:"categories"`
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, color: ColorAuto}
}

// WithColor sets the color mode for text output.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = mode
	return wr
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteReport outputs a report in the configured format.
func (wr *Writer) WriteReport(report Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(report)
	case FormatTable:
		return wr.writeTable(report)
	default:
		return wr.writeText(report)
	}
}

func (wr *Writer) writeText(report Report) error {
	colorize := shouldColorize(wr.color, wr.w)

	fmt.Fprintf(wr.w, "Error statistics for %s\n\n", report.File)

	errLine := fmt.Sprintf("Errors:   %d", report.Stats.ErrorCount)
	warnLine := fmt.Sprintf("Warnings: %d", report.Stats.WarningCount)
	if colorize {
		if report.Stats.ErrorCount > 0 {
			errLine = colorRed + errLine + colorReset
		}
		if report.Stats.WarningCount > 0 {
			warnLine = colorYellow + warnLine + colorReset
		}
	}
	fmt.Fprintln(wr.w, errLine)
	fmt.Fprintln(wr.w, warnLine)

	if len(report.Stats.ExceptionTypes) > 0 {
		fmt.Fprintln(wr.w, "\nException types:")
		for _, kv := range sortedByCount(report.Stats.ExceptionTypes) {
			fmt.Fprintf(wr.w, "  %s: %d\n", kv.key, kv.count)
		}
	}

	if len(report.Stats.ErrorCodes) > 0 {
		fmt.Fprintln(wr.w, "\nError codes:")
		for _, kv := range sortedByCount(report.Stats.ErrorCodes) {
			fmt.Fprintf(wr.w, "  %s: %d\n", kv.key, kv.count)
		}
	}

	if len(report.Stats.CommonErrors) > 0 {
		fmt.Fprintln(wr.w, "\nCommon error patterns:")
		for _, pc := range report.Stats.CommonErrors {
			fmt.Fprintf(wr.w, "  %4d  %s\n", pc.Count, pc.Pattern)
		}
	}

	if len(report.Categories) > 0 {
		fmt.Fprintf(wr.w, "\nCategories: %s\n", strings.Join(report.Categories, ", "))
	}

	return nil
}

func (wr *Writer) writeTable(report Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintln(tw, "------\t-----")
	fmt.Fprintf(tw, "errors\t%d\n", report.Stats.ErrorCount)
	fmt.Fprintf(tw, "warnings\t%d\n", report.Stats.WarningCount)

	for _, kv := range sortedByCount(report.Stats.ExceptionTypes) {
		fmt.Fprintf(tw, "exception:%s\t%d\n", kv.key, kv.count)
	}
	for _, kv := range sortedByCount(report.Stats.ErrorCodes) {
		fmt.Fprintf(tw, "code:%s\t%d\n", kv.key, kv.count)
	}
	for _, pc := range report.Stats.CommonErrors {
		pattern := pc.Pattern
		if len(pattern) > 60 {
			pattern = pattern[:57] + "..."
		}
		fmt.Fprintf(tw, "pattern:%s\t%d\n", pattern, pc.Count)
	}
	if len(report.Categories) > 0 {
		fmt.Fprintf(tw, "categories\t%s\n", strings.Join(report.Categories, ", "))
	}

	return tw.Flush()
}

type keyCount struct {
	key   string
	count int
}

// sortedByCount orders histogram entries by descending count, then key, for
// stable rendering.
func sortedByCount(m map[string]int) []keyCount {
	entries := make([]keyCount, 0, len(m))
	for k, v := range m {
		entries = append(entries, keyCount{key: k, count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}
