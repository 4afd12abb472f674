package editor

// DefaultKillRingSize is the default number of kill ring entries kept.
const DefaultKillRingSize = 60

// KillRing stores yanked text. Each entry holds one string per cursor
// that was yanked. The newest entry is at the end.
type KillRing struct {
	entries [][]string
	size    int
}

// NewKillRing creates a kill ring holding at most size entries.
func NewKillRing(size int) *KillRing {
	if size <= 0 {
		size = DefaultKillRingSize
	}
	return &KillRing{size: size}
}

// Push adds an entry, dropping the oldest when the ring is full.
func (k *KillRing) Push(texts []string) {
	if len(texts) == 0 {
		return
	}
	k.entries = append(k.entries, append([]string(nil), texts...))
	if len(k.entries) > k.size {
		k.entries = k.entries[len(k.entries)-k.size:]
	}
}

// Top returns a copy of the newest entry.
func (k *KillRing) Top() ([]string, bool) {
	if len(k.entries) == 0 {
		return nil, false
	}
	return append([]string(nil), k.entries[len(k.entries)-1]...), true
}

// Len returns the number of entries.
func (k *KillRing) Len() int {
	return len(k.entries)
}

// RotateForward moves the newest entry to the oldest position.
func (k *KillRing) RotateForward() {
	if len(k.entries) < 2 {
		return
	}
	last := k.entries[len(k.entries)-1]
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = last
}

// RotateBackward moves the oldest entry to the newest position.
func (k *KillRing) RotateBackward() {
	if len(k.entries) < 2 {
		return
	}
	first := k.entries[0]
	copy(k.entries, k.entries[1:])
	k.entries[len(k.entries)-1] = first
}

// ForCursors spreads an entry over n cursors. Cursor i gets texts[i];
// when there are more cursors than texts the last text repeats.
func ForCursors(texts []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		switch {
		case i < len(texts):
			out[i] = texts[i]
		case len(texts) > 0:
			out[i] = texts[len(texts)-1]
		}
	}
	return out
}
