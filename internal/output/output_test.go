package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rfoley/loglens/internal/summarize"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func sampleReport() Report {
	return Report{
		File: "app.log",
		Stats: summarize.Stats{
			ErrorCount:     5,
			WarningCount:   2,
			ExceptionTypes: map[string]int{"TimeoutError": 3, "ValueError": 1},
			ErrorCodes:     map[string]int{"E42": 2},
			CommonErrors: []summarize.PatternCount{
				{Pattern: "upstream timed out after <NUM> ms", Count: 3},
			},
		},
		Categories: []string{"networking"},
	}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	wr := New(&buf, FormatText).WithColor(ColorNever)

	if err := wr.WriteReport(sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Error statistics for app.log",
		"Errors:   5",
		"Warnings: 2",
		"TimeoutError: 3",
		"E42: 2",
		"upstream timed out after <NUM> ms",
		"Categories: networking",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("text output contains ANSI escapes despite ColorNever")
	}

	// Histogram entries are ordered by descending count.
	if strings.Index(out, "TimeoutError") > strings.Index(out, "ValueError") {
		t.Error("exception types are not ordered by descending count")
	}
}

func TestWriteReportTextColor(t *testing.T) {
	var buf bytes.Buffer
	wr := New(&buf, FormatText).WithColor(ColorAlways)

	if err := wr.WriteReport(sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, colorRed+"Errors:   5"+colorReset) {
		t.Error("nonzero error count not colored red with ColorAlways")
	}
	if !strings.Contains(out, colorYellow+"Warnings: 2"+colorReset) {
		t.Error("nonzero warning count not colored yellow with ColorAlways")
	}
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	wr := New(&buf, FormatJSON)

	if err := wr.WriteReport(sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.File != "app.log" {
		t.Errorf("decoded file = %q, want app.log", decoded.File)
	}
	if decoded.Stats.ErrorCount != 5 {
		t.Errorf("decoded error count = %d, want 5", decoded.Stats.ErrorCount)
	}
	if len(decoded.Categories) != 1 || decoded.Categories[0] != "networking" {
		t.Errorf("decoded categories = %v, want [networking]", decoded.Categories)
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	wr := New(&buf, FormatTable)

	if err := wr.WriteReport(sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"METRIC",
		"errors",
		"warnings",
		"exception:TimeoutError",
		"code:E42",
		"categories",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportTableTruncatesLongPatterns(t *testing.T) {
	report := sampleReport()
	report.Stats.CommonErrors = []summarize.PatternCount{
		{Pattern: strings.Repeat("x", 90), Count: 1},
	}

	var buf bytes.Buffer
	if err := New(&buf, FormatTable).WriteReport(report); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	if !strings.Contains(buf.String(), strings.Repeat("x", 57)+"...") {
		t.Error("long pattern was not truncated in table output")
	}
	if strings.Contains(buf.String(), strings.Repeat("x", 61)) {
		t.Error("table output contains the untruncated pattern")
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"always", ColorAlways},
		{"never", ColorNever},
		{"auto", ColorAuto},
		{"", ColorAuto},
		{"bogus", ColorAuto},
	}

	for _, tt := range tests {
		if got := ParseColorMode(tt.in); got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldColorizeNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	if shouldColorize(ColorAuto, &buf) {
		t.Error("shouldColorize(ColorAuto) = true for a non-terminal writer")
	}
	if !shouldColorize(ColorAlways, &buf) {
		t.Error("shouldColorize(ColorAlways) = false")
	}
	if shouldColorize(ColorNever, &buf) {
		t.Error("shouldColorize(ColorNever) = true")
	}
}
