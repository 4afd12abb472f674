package rope

import (
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"long unicode", strings.Repeat("日本語テキスト", 300)},
		{"very long string", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != utf8.RuneCountInString(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), utf8.RuneCountInString(tt.input))
			}
			if r.ByteLen() != len(tt.input) {
				t.Errorf("ByteLen() = %d, want %d", r.ByteLen(), len(tt.input))
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
	}{
		{"into empty", "", 0, "abc", "abc"},
		{"at start", "world", 0, "hello ", "hello world"},
		{"at end", "hello", 5, " world", "hello world"},
		{"middle", "helo", 3, "l", "hello"},
		{"after multibyte", "世界", 1, "x", "世x界"},
		{"past end clamps", "ab", 10, "c", "abc"},
		{"negative clamps", "ab", -3, "c", "cab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			got := r.Insert(tt.offset, tt.text)
			if got.String() != tt.expected {
				t.Errorf("Insert() = %q, want %q", got.String(), tt.expected)
			}
			if r.String() != tt.initial {
				t.Errorf("original modified: %q, want %q", r.String(), tt.initial)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		expected   string
	}{
		{"all", "hello", 0, 5, ""},
		{"prefix", "hello world", 0, 6, "world"},
		{"suffix", "hello world", 5, 11, "hello"},
		{"middle", "abcdef", 2, 4, "abef"},
		{"multibyte", "a世界b", 1, 3, "ab"},
		{"empty range", "abc", 1, 1, "abc"},
		{"inverted range", "abc", 2, 1, "abc"},
		{"newline", "ab\ncd", 2, 3, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromString(tt.initial).Delete(tt.start, tt.end)
			if got.String() != tt.expected {
				t.Errorf("Delete(%d, %d) = %q, want %q", tt.start, tt.end, got.String(), tt.expected)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	text := strings.Repeat("αβγ\n", 200)
	r := FromString(text)
	runes := []rune(text)

	for _, rng := range [][2]int{{0, 0}, {0, 1}, {3, 5}, {100, 400}, {790, 800}, {0, 800}} {
		want := string(runes[rng[0]:rng[1]])
		if got := r.Slice(rng[0], rng[1]); got != want {
			t.Errorf("Slice(%d, %d) = %q, want %q", rng[0], rng[1], got, want)
		}
	}
	if got := r.Slice(799, 2000); got != "\n" {
		t.Errorf("Slice past end = %q, want %q", got, "\n")
	}
}

func TestLines(t *testing.T) {
	r := FromString("ab\n\ncdef\ng")

	if r.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", r.LineCount())
	}

	tests := []struct {
		line       int
		start, end int
		text       string
	}{
		{0, 0, 2, "ab"},
		{1, 3, 3, ""},
		{2, 4, 8, "cdef"},
		{3, 9, 10, "g"},
		{9, 10, 10, ""},
	}
	for _, tt := range tests {
		if got := r.LineStartOffset(tt.line); got != tt.start {
			t.Errorf("LineStartOffset(%d) = %d, want %d", tt.line, got, tt.start)
		}
		if got := r.LineEndOffset(tt.line); got != tt.end {
			t.Errorf("LineEndOffset(%d) = %d, want %d", tt.line, got, tt.end)
		}
		if got := r.LineText(tt.line); got != tt.text {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.text)
		}
	}

	lineOf := map[int]int{0: 0, 2: 0, 3: 1, 4: 2, 8: 2, 9: 3, 10: 3}
	for offset, want := range lineOf {
		if got := r.LineOf(offset); got != want {
			t.Errorf("LineOf(%d) = %d, want %d", offset, got, want)
		}
	}
}

func TestPointConversion(t *testing.T) {
	r := FromString("hello\n世界\nxyz")

	p := r.OffsetToPoint(7)
	if p != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(7) = %+v, want {1 1}", p)
	}
	if got := r.PointToOffset(Point{Line: 1, Column: 10}); got != 8 {
		t.Errorf("PointToOffset clamps column: got %d, want 8", got)
	}
	if got := r.PointToOffset(Point{Line: 2, Column: 2}); got != 11 {
		t.Errorf("PointToOffset({2 2}) = %d, want 11", got)
	}
}

func TestLargeLineLookup(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("é", i%7))
		sb.WriteByte('\n')
	}
	text := sb.String()
	r := FromString(text)
	lines := strings.Split(text, "\n")

	if r.LineCount() != len(lines) {
		t.Fatalf("LineCount() = %d, want %d", r.LineCount(), len(lines))
	}
	offset := 0
	for i, line := range lines {
		if got := r.LineStartOffset(i); got != offset {
			t.Fatalf("LineStartOffset(%d) = %d, want %d", i, got, offset)
		}
		if got := r.LineText(i); got != line {
			t.Fatalf("LineText(%d) = %q, want %q", i, got, line)
		}
		offset += utf8.RuneCountInString(line) + 1
	}
}

func TestRandomEditsMatchString(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab\n世🌍 ")
	model := []rune{}
	r := New()

	for i := 0; i < 3000; i++ {
		n := len(model)
		if n > 0 && rng.Intn(3) == 0 {
			start := rng.Intn(n)
			end := start + rng.Intn(min(n-start, 40)+1)
			r = r.Delete(start, end)
			model = append(model[:start:start], model[end:]...)
		} else {
			at := rng.Intn(n + 1)
			size := rng.Intn(60)
			ins := make([]rune, size)
			for j := range ins {
				ins[j] = alphabet[rng.Intn(len(alphabet))]
			}
			r = r.Insert(at, string(ins))
			next := append([]rune{}, model[:at]...)
			next = append(next, ins...)
			model = append(next, model[at:]...)
		}
		if r.Len() != len(model) {
			t.Fatalf("step %d: Len() = %d, want %d", i, r.Len(), len(model))
		}
	}
	if r.String() != string(model) {
		t.Fatal("rope text diverged from model")
	}
	if r.LineCount() != strings.Count(string(model), "\n")+1 {
		t.Errorf("LineCount() = %d, want %d", r.LineCount(), strings.Count(string(model), "\n")+1)
	}
}

func TestSplitConcatRoundTrip(t *testing.T) {
	f := func(s string, at uint16) bool {
		r := FromString(s)
		left, right := r.Split(int(at) % (r.Len() + 1))
		return left.Concat(right).String() == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestImmutability(t *testing.T) {
	r1 := FromString(strings.Repeat("abc\n", 500))
	r2 := r1.Replace(10, 1000, "X")
	if r1.Len() != 2000 {
		t.Errorf("original Len() = %d, want 2000", r1.Len())
	}
	if r2.Len() != 2000-990+1 {
		t.Errorf("edited Len() = %d, want %d", r2.Len(), 2000-990+1)
	}
	if r1.Equals(r2) {
		t.Error("ropes should differ after Replace")
	}
}
