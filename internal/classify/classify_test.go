package classify

import (
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "kubernetes image pull",
			text: "Warning  Failed  kubelet  Back-off pulling image: ImagePullBackOff",
			want: []string{"kubernetes"},
		},
		{
			name: "docker daemon",
			text: "Error response from daemon: No such container: web",
			want: []string{"docker"},
		},
		{
			name: "terraform apply",
			text: "Error applying plan: 1 error occurred",
			want: []string{"terraform"},
		},
		{
			name: "networking timeout",
			text: "dial tcp 10.0.0.5:5432: connection refused (timeout)",
			want: []string{"networking"},
		},
		{
			name: "multiple categories sorted",
			text: "pipeline build error: connection refused while pushing image",
			want: []string{"ci_cd", "networking"},
		},
		{
			name: "cloud access denied",
			text: "aws s3 cp error: access denied",
			want: []string{"cloud"},
		},
		{
			name: "no match",
			text: "everything is fine here",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyDeduplicates(t *testing.T) {
	// Multiple patterns of the same category match; the category must
	// appear once.
	text := "CrashLoopBackOff observed, then ImagePullBackOff, and pod web not found"

	got := Classify(text)

	count := 0
	for _, c := range got {
		if c == "kubernetes" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Classify() returned kubernetes %d times, want 1 (got %v)", count, got)
	}
}

func TestNames(t *testing.T) {
	names := Names()

	want := []string{"kubernetes", "docker", "ci_cd", "terraform", "cloud", "networking"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}

	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			t.Error("Names() contains an empty category name")
		}
	}
}
