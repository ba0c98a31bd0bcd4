// Package hosts holds host name helpers shared by the reporting tools.
package hosts

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxEdits bounds how far a typo may stray from a suggested name.
const maxEdits = 2

// ShortName strips the domain from a fully qualified host name.
func ShortName(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Suggest returns up to limit names from candidates that look like query:
// names containing its characters in order, or within a couple of edits of
// it. Closest names come first.
func Suggest(query string, candidates []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 || limit <= 0 {
		return nil
	}
	type scored struct {
		name     string
		distance int
		index    int
	}
	seen := make(map[int]bool, len(candidates))
	matches := make([]scored, 0, limit)
	for _, rank := range fuzzy.RankFindNormalizedFold(query, candidates) {
		seen[rank.OriginalIndex] = true
		matches = append(matches, scored{name: rank.Target, distance: rank.Distance, index: rank.OriginalIndex})
	}
	lower := strings.ToLower(query)
	for i, name := range candidates {
		if seen[i] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(name)); d <= maxEdits {
			matches = append(matches, scored{name: name, distance: d, index: i})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].index < matches[j].index
	})
	out := make([]string, 0, limit)
	for _, m := range matches {
		if strings.EqualFold(m.name, query) {
			continue
		}
		out = append(out, m.name)
		if len(out) == limit {
			break
		}
	}
	return out
}
