package summarize

import (
	"fmt"
	"strings"
	"testing"
)

func TestSummarizeEmptyText(t *testing.T) {
	for _, text := range []string{"", "all services healthy\nrequest completed\n"} {
		stats := Summarize(text)

		if stats.ErrorCount != 0 {
			t.Errorf("Summarize(%q).ErrorCount = %d, want 0", text, stats.ErrorCount)
		}
		if stats.WarningCount != 0 {
			t.Errorf("Summarize(%q).WarningCount = %d, want 0", text, stats.WarningCount)
		}
		if len(stats.ExceptionTypes) != 0 {
			t.Errorf("Summarize(%q).ExceptionTypes = %v, want empty", text, stats.ExceptionTypes)
		}
		if len(stats.ErrorCodes) != 0 {
			t.Errorf("Summarize(%q).ErrorCodes = %v, want empty", text, stats.ErrorCodes)
		}
		if len(stats.CommonErrors) != 0 {
			t.Errorf("Summarize(%q).CommonErrors = %v, want empty", text, stats.CommonErrors)
		}
	}
}

func TestSummarizeExceptionTypesAndCommonErrors(t *testing.T) {
	text := "UserError: bad id 42 at \"req-1\"\nUserError: bad id 43 at \"req-2\"\n"

	stats := Summarize(text)

	if got := stats.ExceptionTypes["UserError"]; got != 2 {
		t.Errorf("ExceptionTypes[UserError] = %d, want 2", got)
	}
	if len(stats.ExceptionTypes) != 1 {
		t.Errorf("ExceptionTypes = %v, want a single entry", stats.ExceptionTypes)
	}

	if len(stats.CommonErrors) == 0 {
		t.Fatal("CommonErrors is empty")
	}
	top := stats.CommonErrors[0]
	if top.Pattern != "UserError: bad id <NUM> at <STRING>" {
		t.Errorf("top pattern = %q, want normalized line", top.Pattern)
	}
	if top.Count != 2 {
		t.Errorf("top pattern count = %d, want 2", top.Count)
	}
}

func TestSummarizeRawCountsAreSubstringCounts(t *testing.T) {
	// Substring semantics: "error" inside a longer word still counts, and
	// a line mentioning it twice counts twice.
	text := "error error\nterroreating\nWARNING: low disk\n"

	stats := Summarize(text)

	if stats.ErrorCount != 3 {
		t.Errorf("ErrorCount = %d, want 3", stats.ErrorCount)
	}
	if stats.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", stats.WarningCount)
	}
}

func TestSummarizeErrorCodes(t *testing.T) {
	text := "exited with error: TIMEOUT_42\nstatus code=E500-X returned\n"

	stats := Summarize(text)

	if got := stats.ErrorCodes["TIMEOUT_42"]; got != 1 {
		t.Errorf("ErrorCodes[TIMEOUT_42] = %d, want 1 (got map %v)", got, stats.ErrorCodes)
	}
	if got := stats.ErrorCodes["E500-X"]; got != 1 {
		t.Errorf("ErrorCodes[E500-X] = %d, want 1 (got map %v)", got, stats.ErrorCodes)
	}
}

func TestNormalizeOrderUUIDBeforeNum(t *testing.T) {
	line := `Error: request 550e8400-e29b-41d4-a716-446655440000 took 120 ms for "payload"`

	got := Normalize(line)

	want := "Error: request <UUID> took <NUM> ms for <STRING>"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
	// The UUID rule must fire before the digit rule, or the UUID's hex
	// segments would be chewed into <NUM> fragments.
	if strings.Contains(got, "<NUM>-") || strings.Contains(got, "-<NUM>") {
		t.Errorf("Normalize() partially consumed the UUID: %q", got)
	}
}

func TestCommonErrorsTopTenStableOrder(t *testing.T) {
	var sb strings.Builder
	// Twelve distinct patterns; pattern 0 repeated three times, pattern 1
	// and pattern 2 twice each.
	for i := 0; i < 12; i++ {
		repeats := 1
		switch i {
		case 0:
			repeats = 3
		case 1, 2:
			repeats = 2
		}
		for r := 0; r < repeats; r++ {
			fmt.Fprintf(&sb, "stage %c failed during rollout\n", 'a'+i)
		}
	}

	stats := Summarize(sb.String())

	if len(stats.CommonErrors) != TopPatterns {
		t.Fatalf("CommonErrors length = %d, want %d", len(stats.CommonErrors), TopPatterns)
	}

	if stats.CommonErrors[0].Pattern != "stage a failed during rollout" || stats.CommonErrors[0].Count != 3 {
		t.Errorf("top entry = %+v, want stage a with count 3", stats.CommonErrors[0])
	}

	// Equal counts keep first-encountered order.
	if stats.CommonErrors[1].Pattern != "stage b failed during rollout" {
		t.Errorf("second entry = %+v, want stage b (first-seen tiebreak)", stats.CommonErrors[1])
	}
	if stats.CommonErrors[2].Pattern != "stage c failed during rollout" {
		t.Errorf("third entry = %+v, want stage c (first-seen tiebreak)", stats.CommonErrors[2])
	}
}
