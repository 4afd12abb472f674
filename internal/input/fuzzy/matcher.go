// Package fuzzy ranks strings against a typed query. The command line
// uses it to complete command names.
package fuzzy

import (
	"sort"
	"strings"
)

// Result is a matched candidate.
type Result struct {
	// Text is the candidate.
	Text string

	// Score is higher for better matches.
	Score int

	// Matches are the rune indices of the matched characters.
	Matches []int
}

// Match returns the candidates containing the query's characters in
// order, best first. Matching ignores case. An empty query matches every
// candidate in sorted order. limit <= 0 returns all matches.
func Match(query string, candidates []string, limit int) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	queryRunes := []rune(query)

	results := make([]Result, 0, len(candidates))
	for _, text := range candidates {
		if query == "" {
			results = append(results, Result{Text: text})
			continue
		}
		original := []rune(text)
		lower := []rune(strings.ToLower(text))
		matches := locate(queryRunes, lower)
		if matches == nil {
			continue
		}
		results = append(results, Result{
			Text:    text,
			Score:   score(queryRunes, original, lower, matches),
			Matches: matches,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Text < results[j].Text
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Texts returns the candidate of each result.
func Texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

// locate finds query in text. It first prefers to continue a gap at a
// word boundary so "gs" picks the s of "goto-start", then falls back to
// the leftmost match.
func locate(query, text []rune) []int {
	if len(query) > len(text) {
		return nil
	}
	if m := scan(query, text, true); m != nil {
		return m
	}
	return scan(query, text, false)
}

func scan(query, text []rune, preferBoundary bool) []int {
	matches := make([]int, 0, len(query))
	qi := 0
	for ti := 0; ti < len(text) && qi < len(query); ti++ {
		if text[ti] != query[qi] {
			continue
		}
		if preferBoundary && qi > 0 && ti > matches[qi-1]+1 && !isWordBoundary(text, ti) {
			if next := nextBoundary(text, ti, query[qi]); next >= 0 {
				ti = next
			}
		}
		matches = append(matches, ti)
		qi++
	}
	if qi < len(query) {
		return nil
	}
	return matches
}

func nextBoundary(text []rune, from int, r rune) int {
	for i := from + 1; i < len(text); i++ {
		if text[i] == r && isWordBoundary(text, i) {
			return i
		}
	}
	return -1
}
