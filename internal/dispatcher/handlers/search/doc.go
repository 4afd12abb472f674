// Package search provides handlers for regular expression search and
// replace over the active buffer.
//
// Patterns use Go's regexp syntax. A pattern without upper case letters
// matches case-insensitively:
//
//	search fo+        select the next match after the primary cursor
//	search-next       repeat the last search forward
//	search-prev       repeat the last search backward
//	select-matches x  one selection per match inside the selections
//	replace-all a b   replace every match, $1 expands groups
//
// search and the search-next/search-prev pair wrap around the buffer.
package search
