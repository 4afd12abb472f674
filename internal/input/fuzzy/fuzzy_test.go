package fuzzy

import (
	"reflect"
	"testing"
)

var commands = []string{
	"goto-start",
	"goto-end",
	"extend-start",
	"select-all",
	"scroll-to-cursor",
	"reload-config",
	"write",
}

func TestMatch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"wr", []string{"write"}},
		{"goto", []string{"goto-end", "goto-start"}},
		{"GS", []string{"goto-start"}},
		{"rc", []string{"reload-config", "scroll-to-cursor"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got := Texts(Match(tt.query, commands, 0))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchEmptyQuery(t *testing.T) {
	got := Texts(Match("  ", []string{"b", "c", "a"}, 2))
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Match(\"\") = %v, want %v", got, want)
	}
}

func TestMatchPositions(t *testing.T) {
	res := Match("gs", []string{"goto-start"}, 0)
	if len(res) != 1 {
		t.Fatalf("Match() = %v, want one result", res)
	}
	if want := []int{0, 5}; !reflect.DeepEqual(res[0].Matches, want) {
		t.Errorf("Matches = %v, want %v", res[0].Matches, want)
	}
}

func TestLocateFallsBackToLeftmost(t *testing.T) {
	// Jumping to the boundary t would leave no a after it.
	got := locate([]rune("sta"), []rune("sxtay-t"))
	if want := []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("locate() = %v, want %v", got, want)
	}
}

func TestScorePrefersPrefixAndRuns(t *testing.T) {
	prefix := Match("sel", []string{"select-all"}, 0)[0].Score
	scattered := Match("sel", []string{"scroll-to-cursor-end-line"}, 0)
	if len(scattered) != 1 {
		t.Fatalf("scattered match missing")
	}
	if prefix <= scattered[0].Score {
		t.Errorf("prefix score %d <= scattered score %d", prefix, scattered[0].Score)
	}
}

func TestIsWordBoundary(t *testing.T) {
	runes := []rune("goto-endOfLine")
	tests := []struct {
		idx  int
		want bool
	}{
		{0, true},
		{1, false},
		{5, true},
		{8, true},
		{20, false},
	}
	for _, tt := range tests {
		if got := isWordBoundary(runes, tt.idx); got != tt.want {
			t.Errorf("isWordBoundary(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
}
