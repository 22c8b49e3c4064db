// Package fuzzy suggests known property names for misspelled ones.
package fuzzy

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// mappedKey is the wildcard segment of a property pattern. It is repeated here
// to keep this package free of domain imports.
const mappedKey = "{*}"

// Options configures fuzzy matching behavior
type Options struct {
	MaxDistance    int  // Maximum distance to consider (default: 3)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	CaseSensitive  bool // Whether matching is case-sensitive (default: false)
}

type suggestion struct {
	value    string
	distance int
	order    int
}

// FindSimilar returns the candidates closest to target, closest first. Ties
// keep candidate order. Candidates may be property patterns: a "{*}" segment
// accepts any single segment of target at no cost.
//
// Example:
//
//	FindSimilar("quarkus.htp.port", []string{"quarkus.http.port", "quarkus.http.host"}, nil)
//	// Returns: ["quarkus.http.port", "quarkus.http.host"]
func FindSimilar(target string, candidates []string, opts *Options) []string {
	o := Options{MaxDistance: DefaultMaxDistance, MaxSuggestions: DefaultMaxSuggestions}
	if opts != nil {
		o = *opts
		if o.MaxDistance == 0 {
			o.MaxDistance = DefaultMaxDistance
		}
		if o.MaxSuggestions == 0 {
			o.MaxSuggestions = DefaultMaxSuggestions
		}
	}

	targetCmp := target
	if !o.CaseSensitive {
		targetCmp = strings.ToLower(target)
	}

	var suggestions []suggestion
	for i, candidate := range candidates {
		candidateCmp := candidate
		if !o.CaseSensitive {
			candidateCmp = strings.ToLower(candidate)
		}
		if dist := PatternDistance(targetCmp, candidateCmp); dist <= o.MaxDistance {
			suggestions = append(suggestions, suggestion{value: candidate, distance: dist, order: i})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, 0, o.MaxSuggestions)
	for i := 0; i < len(suggestions) && i < o.MaxSuggestions; i++ {
		result = append(result, suggestions[i].value)
	}
	return result
}

// FindBestMatch returns the single best match, or "" when nothing is close.
func FindBestMatch(target string, candidates []string, opts *Options) string {
	matches := FindSimilar(target, candidates, opts)
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// PatternDistance is an edit distance between a dotted name and a dotted
// pattern computed over segments. Substituting a segment costs the character
// distance between the two segments (zero against "{*}"); inserting or
// deleting a segment costs its length plus one for the dot.
func PatternDistance(name, pattern string) int {
	a := strings.Split(name, ".")
	b := strings.Split(pattern, ".")

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 1; j <= len(b); j++ {
		prev[j] = prev[j-1] + segmentCost(b[j-1])
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = prev[0] + segmentCost(a[i-1])
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if b[j-1] != mappedKey {
				sub += LevenshteinDistance(a[i-1], b[j-1])
			}
			curr[j] = min(
				prev[j]+segmentCost(a[i-1]),
				curr[j-1]+segmentCost(b[j-1]),
				sub,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func segmentCost(segment string) int {
	return len(segment) + 1
}

// LevenshteinDistance is the minimum number of single-byte insertions,
// deletions or substitutions turning s1 into s2.
//
//	LevenshteinDistance("kitten", "sitting") // Returns: 3
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
