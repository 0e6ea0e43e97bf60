package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Defaults and policy constants for the extractor.
const (
	// DefaultContextLines is the number of lines kept before and after
	// each matched line.
	DefaultContextLines = 2

	// DefaultMaxSections caps how many error sections are emitted to keep
	// the output within a predictable prompt budget.
	DefaultMaxSections = 500

	// SmallFileThreshold is the size below which a file is returned whole.
	// Small files are cheap enough to pass through without discarding signal.
	SmallFileThreshold = 200 * 1024

	// fallbackSampleLines is how many leading lines are returned when no
	// keyword matches exist in a large file.
	fallbackSampleLines = 100

	// ContinuationMarker is appended to the head sample so the reader knows
	// the file was truncated.
	ContinuationMarker = "[...log file continues...]"
)

// ErrExtraction wraps any I/O failure encountered mid-scan. A missing file is
// not an extraction failure; it is surfaced directly via the os.Stat error so
// callers can test errors.Is(err, fs.ErrNotExist).
var ErrExtraction = errors.New("log extraction failed")

// sectionBanner separates emitted error sections in the output.
var sectionBanner = "\n\n" + strings.Repeat("=", 40) + " ERROR SECTION " + strings.Repeat("=", 40) + "\n\n"

// Extractor reduces a large log file to the sections surrounding
// error-relevant lines. It holds only immutable configuration and is safe to
// reuse across calls.
type Extractor struct {
	contextLines int
	maxSections  int
	vocabulary   Vocabulary
	logger       *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithContextLines sets the number of context lines kept around each match.
// Negative values are clamped to zero.
func WithContextLines(n int) Option {
	return func(e *Extractor) {
		if n < 0 {
			n = 0
		}
		e.contextLines = n
	}
}

// WithMaxSections sets the maximum number of error sections to emit.
// Values below one keep the default.
func WithMaxSections(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxSections = n
		}
	}
}

// WithVocabulary replaces the default keyword vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(e *Extractor) {
		if len(v) > 0 {
			e.vocabulary = v
		}
	}
}

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		contextLines: DefaultContextLines,
		maxSections:  DefaultMaxSections,
		vocabulary:   DefaultVocabulary(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the log file at path and returns the error-relevant portion
// of its content.
//
// Files smaller than SmallFileThreshold are returned whole. Larger files are
// scanned line by line for vocabulary keywords; each match contributes a
// context window of contextLines lines on either side, windows already
// covered by an earlier match are not re-emitted, and at most maxSections
// windows are produced. When nothing matches, the first
// min(100, totalLines) lines are returned with a continuation marker.
//
// Invalid UTF-8 byte sequences are replaced with U+FFFD rather than failing.
// A missing file is returned as-is from os.Stat; any other I/O error is
// wrapped in ErrExtraction.
func (e *Extractor) Extract(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("log file not found: %w", err)
	}

	e.logger.Info("preprocessing log file",
		"path", path,
		"size_bytes", info.Size())

	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Error("failed to read log file", "path", path, "error", err)
		return "", fmt.Errorf("%w: reading %s: %v", ErrExtraction, path, err)
	}

	text := strings.ToValidUTF8(string(data), "�")

	if info.Size() < SmallFileThreshold {
		e.logger.Info("log file is small, returning entire content", "path", path)
		return text, nil
	}

	lines := splitLines(text)
	e.logger.Info("log file line count", "path", path, "lines", len(lines))

	matches := e.matchIndices(lines)
	e.logger.Info("found lines with error keywords", "path", path, "matches", len(matches))

	if len(matches) == 0 {
		return e.headSample(lines), nil
	}

	sections := e.collectSections(lines, matches)
	e.logger.Info("extracted error sections", "path", path, "sections", len(sections))

	return sectionBanner + strings.Join(sections, sectionBanner), nil
}

// matchIndices returns the ascending list of line indices containing at least
// one vocabulary keyword.
func (e *Extractor) matchIndices(lines []string) []int {
	var indices []int
	for i, line := range lines {
		if e.vocabulary.Matches(line) {
			indices = append(indices, i)
		}
	}
	return indices
}

// collectSections walks matches in ascending order and emits one context
// window per match not already covered by an earlier window. Covered indices
// are marked as processed so overlapping matches collapse into the first
// window that reached them.
func (e *Extractor) collectSections(lines []string, matches []int) []string {
	processed := make([]bool, len(lines))
	sections := make([]string, 0, min(len(matches), e.maxSections))

	for _, idx := range matches {
		if processed[idx] {
			continue
		}

		start := max(0, idx-e.contextLines)
		end := min(len(lines)-1, idx+e.contextLines)
		for i := start; i <= end; i++ {
			processed[i] = true
		}

		sections = append(sections, strings.Join(lines[start:end+1], "\n"))

		if len(sections) >= e.maxSections {
			e.logger.Warn("reached maximum error section limit", "limit", e.maxSections)
			break
		}
	}

	return sections
}

// headSample returns the first fallbackSampleLines lines plus the
// continuation marker, guaranteeing the caller gets some signal even when
// the vocabulary never matched.
func (e *Extractor) headSample(lines []string) string {
	n := min(fallbackSampleLines, len(lines))
	e.logger.Warn("no error sections found, returning head sample", "lines", n)
	return strings.Join(lines[:n], "\n") + "\n\n" + ContinuationMarker
}

// splitLines splits on newlines, dropping a trailing empty element produced
// by a final newline so the line count matches what a reader would expect.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
