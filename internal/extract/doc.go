// Package extract reduces large log files to the sections surrounding
// error-relevant lines so the result fits in an LLM prompt.
//
// The extractor is a single-pass, line-oriented filter. Files under 200 KiB
// are returned whole; larger files are scanned against a fixed keyword
// vocabulary and each matching line contributes a fixed-radius context
// window. Windows whose lines were already covered by an earlier match are
// skipped, and the total number of sections is capped.
//
// Basic usage:
//
//	extractor := extract.New(
//	    extract.WithContextLines(2),
//	    extract.WithMaxSections(500),
//	)
//	text, err := extractor.Extract("/var/log/app.log")
//
// The output is plain text: either the verbatim file, a banner-separated set
// of error sections, or a head sample ending in a continuation marker when
// nothing matched.
package extract
