package fuzzy

import "unicode"

// Scoring weights.
const (
	baseScore         = 100
	consecutiveBonus  = 20
	wordBoundaryBonus = 15
	prefixBonus       = 25
	exactPrefixBonus  = 50
	gapPenalty        = 2
	leadingPenalty    = 1
	lengthThreshold   = 20
)

// score rates matches of query in text. original keeps the case of text
// for camelCase boundaries; lower is the folded text matched against.
func score(query, original, lower []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}
	s := baseScore

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += consecutiveBonus
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			s += wordBoundaryBonus
		}
	}
	if matches[0] == 0 {
		s += prefixBonus
	}

	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * gapPenalty
	}
	s -= matches[0] * leadingPenalty

	// Shorter candidates are more specific.
	if len(lower) < lengthThreshold {
		s += lengthThreshold - len(lower)
	}
	if hasPrefix(lower, query) {
		s += exactPrefixBonus
	}
	return max(s, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether the rune at idx starts a word: the
// first rune, one after a separator such as '-', or a camelCase hump.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
