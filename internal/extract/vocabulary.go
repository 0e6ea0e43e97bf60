package extract

import "strings"

// Vocabulary is an ordered list of lowercase substrings that flag a log line
// as error-relevant. It is built once at startup and shared read-only by all
// extraction calls.
type Vocabulary []string

// DefaultVocabulary returns the built-in keyword list covering generic
// failure indicators across web servers, databases, container runtimes,
// CI systems, and infrastructure tooling.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"error", "exception", "failure", "fail", "failed", "critical",
		"severe", "fatal", "crash", "crashed", "abort", "aborted",
		"denied", "reject", "rejected", "timeout", "timed out",
		"invalid", "incorrect", "warning", "alert", "emergency",
		"panic", "unexpected", "unable", "cannot", "not found",
		"forbidden", "prohibited", "unauthorized", "access denied",
		"permission denied", "insufficient", "missing", "bad request",
		"out of memory", "oom", "killed", "segfault", "null pointer",
		"unexpected eof", "corrupt", "deadlock", "race condition",
		"leaked", "overflow", "underflow", "exceed", "too many",
		"too few", "too large", "too small",
	}
}

// Matches reports whether the line contains any vocabulary keyword.
// Matching is case-insensitive and short-circuits on the first hit.
func (v Vocabulary) Matches(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range v {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
