package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = 192
)

// Chunk is a bounded, immutable string stored in a leaf node.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Runes returns the rune length of the chunk.
func (c Chunk) Runes() int {
	return c.summary.Runes
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at rune offset n.
func (c Chunk) Split(n int) (Chunk, Chunk) {
	if n <= 0 {
		return Chunk{}, c
	}
	if n >= c.summary.Runes {
		return c, Chunk{}
	}
	b := runeToByte(c.data, n)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// splitIntoChunks splits a string into chunks of at most MaxChunkSize bytes,
// always on rune boundaries.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	var chunks []Chunk
	for len(s) > MaxChunkSize {
		at := TargetChunkSize
		for at > 0 && !utf8.RuneStart(s[at]) {
			at--
		}
		chunks = append(chunks, NewChunk(s[:at]))
		s = s[at:]
	}
	return append(chunks, NewChunk(s))
}
