// Package citation scans report text for citation markers and source
// URLs. Both extractors are pure text transforms; the optional source
// enrichment in enrich.go is the only thing here that touches the
// network.
package citation

import (
	"regexp"
	"sort"
)

// markerRe matches the two citation marker shapes that appear in
// generated reports: bracket-numeric ([3]) and author-year parentheticals
// ((Doe, 2021) — any comma-free sequence followed by a four-digit year).
var markerRe = regexp.MustCompile(`\[\d+\]|\([^,]+, \d{4}\)`)

// Extract returns the deduplicated set of citation markers found in
// text. The raw matched substrings are returned, not resolved sources.
// Output is sorted so repeat calls on the same text yield the same
// slice; absence of matches yields an empty slice, never an error.
func Extract(text string) []string {
	matches := markerRe.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	markers := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			markers = append(markers, m)
		}
	}

	sort.Strings(markers)
	return markers
}
