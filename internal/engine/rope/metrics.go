package rope

// TextSummary holds aggregated metrics for a span of text.
// Summaries form a monoid under Add, which lets internal nodes
// answer offset and line queries without visiting leaves.
type TextSummary struct {
	// Runes is the number of Unicode code points.
	Runes int

	// Bytes is the UTF-8 byte count.
	Bytes int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Runes: s.Runes + other.Runes,
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
	}
}

// IsZero returns true if the summary describes empty text.
func (s TextSummary) IsZero() bool {
	return s.Runes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s)}
	for _, r := range s {
		sum.Runes++
		if r == '\n' {
			sum.Lines++
		}
	}
	return sum
}

// runeToByte returns the byte index of the rune at index n in s.
// n is clamped to the rune length of s.
func runeToByte(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for b := range s {
		if i == n {
			return b
		}
		i++
	}
	return len(s)
}

// nthNewline returns the rune index of the nth newline (0-based) in s,
// or -1 if s has fewer newlines.
func nthNewline(s string, n int) int {
	i := 0
	for _, r := range s {
		if r == '\n' {
			if n == 0 {
				return i
			}
			n--
		}
		i++
	}
	return -1
}

// countNewlines counts newlines in the first n runes of s.
func countNewlines(s string, n int) int {
	count := 0
	for _, r := range s {
		if n == 0 {
			break
		}
		if r == '\n' {
			count++
		}
		n--
	}
	return count
}
