// Package fuzzy ranks option names by similarity to a mistyped one.
// The parser uses it to attach "did you mean" hints to unknown options.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
)

// Matcher scores candidates by rune-level edit distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a new fuzzy matcher with the given max edit distance
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // no hints for single characters
	}
}

// Match represents a fuzzy match result
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Best returns the best candidate for input, or "" if none is close enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Matches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Matches returns the candidates within the distance limit, best first.
// Comparison ignores case; a candidate equal to input is never returned.
func (m *Matcher) Matches(input string, candidates []string) []Match {
	in := []rune(strings.ToLower(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		if candidate == input {
			continue
		}
		c := []rune(strings.ToLower(candidate))
		distance := m.distance(in, c)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{Value: candidate, Distance: distance, Score: m.score(in, c, distance)})
	}

	// Score descending, then distance, then name for a stable order
	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.Distance != b.Distance {
			return cmp.Compare(a.Distance, b.Distance)
		}
		return strings.Compare(a.Value, b.Value)
	})
	return matches
}

// maxRawScore is the sum of the score weights: identity plus the prefix,
// length and shared-rune bonuses.
const maxRawScore = 1 + 0.3 + 0.2 + 0.1

// score weighs edit distance with bonuses for a shared prefix, similar
// length and shared characters, normalized to [0, 1].
func (m *Matcher) score(a, b []rune, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	s := 1 - float64(distance)/float64(longest)
	if p := commonPrefix(a, b); p > 0 {
		s += float64(p) / float64(min(len(a), len(b))) * 0.3
	}
	s += (1 - float64(abs(len(a)-len(b)))/float64(longest)) * 0.2
	s += float64(commonRunes(a, b)) / float64(longest) * 0.1

	return min(s/maxRawScore, 1)
}

// distance is the Levenshtein distance of a and b, or maxDistance+1 as
// soon as the limit is certainly exceeded.
func (m *Matcher) distance(a, b []rune) int {
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b []rune) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// commonRunes counts runes of b also present in a, respecting multiplicity.
func commonRunes(a, b []rune) int {
	counts := make(map[rune]int, len(a))
	for _, r := range a {
		counts[r]++
	}
	common := 0
	for _, r := range b {
		if counts[r] > 0 {
			common++
			counts[r]--
		}
	}
	return common
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Closest returns the best match for input among candidates.
func Closest(input string, candidates []string, maxDistance int) string {
	return NewMatcher(maxDistance).Best(input, candidates)
}

// Suggestions returns up to limit matches for input, best first.
func Suggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Matches(input, candidates)
	out := make([]string, 0, min(len(matches), limit))
	for _, match := range matches[:min(len(matches), limit)] {
		out = append(out, match.Value)
	}
	return out
}
