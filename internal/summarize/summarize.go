// Package summarize derives coarse error statistics from log text: raw
// error/warning counts, exception-type and error-code histograms, and a
// top-N histogram of normalized recurring error lines.
package summarize

import (
	"regexp"
	"sort"
	"strings"
)

// TopPatterns is how many normalized error-line patterns are kept in the
// CommonErrors histogram.
const TopPatterns = 10

// Pattern-matching tables, compiled once at startup and never mutated.
var (
	// exceptionRegex captures names shaped like SomeException: or SomeError:.
	exceptionRegex = regexp.MustCompile(`([A-Za-z]+Exception|[A-Za-z]+Error):`)

	// errorCodeRegex captures the token following "error" or "code".
	// The (?i) flag applies to the character class too, so lowercase tokens
	// are captured as well. That matches the observed behavior downstream
	// consumers depend on.
	errorCodeRegex = regexp.MustCompile(`(?i)(?:error|code)[\s:=]+([A-Z0-9_\-]+)`)

	// uuidRegex matches UUID-shaped tokens for normalization. It must run
	// before the digit-run rule or UUID segments would be partially
	// consumed by it.
	uuidRegex = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	// numRegex matches standalone digit runs.
	numRegex = regexp.MustCompile(`\b\d+\b`)

	// quotedRegex matches double-quoted substrings.
	quotedRegex = regexp.MustCompile(`"[^"]+"`)
)

// Stats is the statistics record produced by Summarize. It is built fresh
// per call and never mutated after construction.
type Stats struct {
	// ErrorCount and WarningCount are case-insensitive substring counts
	// across the whole text, not line counts. A line containing "error"
	// twice counts twice.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`

	// ExceptionTypes maps exception/error type names to occurrence counts.
	ExceptionTypes map[string]int `json:"exception_types"`

	// ErrorCodes maps error-code tokens to occurrence counts.
	ErrorCodes map[string]int `json:"error_codes"`

	// CommonErrors holds the top normalized error-line patterns by
	// descending count, ties broken by first-encountered order.
	CommonErrors []PatternCount `json:"common_errors"`
}

// PatternCount pairs a normalized error-line pattern with its occurrence
// count.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// Summarize analyzes the given text and returns its error statistics. It is
// a pure function with no error cases: empty or malformed input yields zero
// counts and empty histograms.
func Summarize(text string) Stats {
	stats := Stats{
		ExceptionTypes: make(map[string]int),
		ErrorCodes:     make(map[string]int),
	}

	for _, m := range exceptionRegex.FindAllStringSubmatch(text, -1) {
		stats.ExceptionTypes[m[1]]++
	}

	for _, m := range errorCodeRegex.FindAllStringSubmatch(text, -1) {
		stats.ErrorCodes[m[1]]++
	}

	lower := strings.ToLower(text)
	stats.ErrorCount = strings.Count(lower, "error")
	stats.WarningCount = strings.Count(lower, "warning")

	stats.CommonErrors = commonErrorPatterns(text)

	return stats
}

// commonErrorPatterns normalizes every error-relevant line and tallies the
// resulting patterns, keeping the TopPatterns most frequent.
func commonErrorPatterns(text string) []PatternCount {
	counts := make(map[string]int)
	var order []string

	for _, line := range strings.Split(text, "\n") {
		if !isErrorLine(line) {
			continue
		}
		pattern := Normalize(line)
		if _, seen := counts[pattern]; !seen {
			order = append(order, pattern)
		}
		counts[pattern]++
	}

	patterns := make([]PatternCount, 0, len(order))
	for _, p := range order {
		patterns = append(patterns, PatternCount{Pattern: p, Count: counts[p]})
	}

	// Stable sort over first-seen order makes tie-breaking deterministic.
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})

	if len(patterns) > TopPatterns {
		patterns = patterns[:TopPatterns]
	}
	return patterns
}

// isErrorLine reports whether the line mentions an error, exception, or
// failure, case-insensitively.
func isErrorLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "error") ||
		strings.Contains(lower, "exception") ||
		strings.Contains(lower, "fail")
}

// Normalize replaces variable tokens in an error line with placeholders so
// near-duplicate lines collapse into one pattern. UUIDs are replaced first,
// then standalone digit runs, then double-quoted substrings; the order is
// load-bearing.
func Normalize(line string) string {
	line = uuidRegex.ReplaceAllString(line, "<UUID>")
	line = numRegex.ReplaceAllString(line, "<NUM>")
	line = quotedRegex.ReplaceAllString(line, "<STRING>")
	return line
}
