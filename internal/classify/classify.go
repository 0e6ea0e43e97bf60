// Package classify maps error text to coarse DevOps tooling categories
// (kubernetes, docker, ci_cd, terraform, cloud, networking) using fixed
// regular-expression tables.
package classify

import (
	"regexp"
	"sort"
)

// Category pairs a category name with its ordered pattern list. The first
// matching pattern claims the category; remaining patterns are skipped.
type Category struct {
	Name     string
	Patterns []*regexp.Regexp
}

// categories is the fixed classification table, compiled once at startup
// and shared read-only.
var categories = []Category{
	{
		Name: "kubernetes",
		Patterns: compile(
			`kubectl.*error`,
			`Error from server \(.*\)`,
			`pod.*not found`,
			`deployment.*failed`,
			`CrashLoopBackOff`,
			`ImagePullBackOff`,
		),
	},
	{
		Name: "docker",
		Patterns: compile(
			`docker.*error`,
			`Error response from daemon`,
			`image.*not found`,
			`container.*exited`,
			`permission denied.*docker`,
		),
	},
	{
		Name: "ci_cd",
		Patterns: compile(
			`pipeline.*failed`,
			`build.*error`,
			`(jenkins|github actions|gitlab ci|azure devops).*failed`,
			`workflow.*error`,
		),
	},
	{
		Name: "terraform",
		Patterns: compile(
			`terraform.*error`,
			`Error applying plan`,
			`provider.*error`,
			`resource.*already exists`,
		),
	},
	{
		Name: "cloud",
		Patterns: compile(
			`aws.*error`,
			`azure.*error`,
			`gcp.*error`,
			`cloud.*permission denied`,
			`access denied`,
			`insufficient permissions`,
		),
	},
	{
		Name: "networking",
		Patterns: compile(
			`connection.*refused`,
			`timeout`,
			`network.*unreachable`,
			`dns.*error`,
			`no route to host`,
		),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// Names returns every known category name in table order.
func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Classify returns the deduplicated set of category names whose patterns
// match the text, sorted for deterministic output. It is a pure, total
// function: empty or no-match input yields an empty result.
func Classify(text string) []string {
	if text == "" {
		return nil
	}

	var matched []string
	for _, category := range categories {
		for _, pattern := range category.Patterns {
			if pattern.MatchString(text) {
				matched = append(matched, category.Name)
				break
			}
		}
	}

	sort.Strings(matched)
	return matched
}
