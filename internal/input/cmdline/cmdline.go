package cmdline

import (
	"strings"

	"github.com/dshills/spiral/internal/input/key"
)

// DefaultHistorySize is the number of executed lines kept.
const DefaultHistorySize = 100

// Action tells the caller what a key did.
type Action int

const (
	// ActionNone means the key was not handled.
	ActionNone Action = iota
	// ActionEdit means the line or cursor changed.
	ActionEdit
	// ActionExecute means enter was pressed; the line is returned by Submit.
	ActionExecute
	// ActionCancel means escape was pressed.
	ActionCancel
)

// Completer returns candidates for the first word of the line, best
// first.
type Completer func(word string) []string

// Line is a single-line editor with history.
type Line struct {
	prompt string
	text   []rune
	cursor int

	complete Completer
	// choices and choice track a Tab cycle; any other key ends it.
	choices []string
	choice  int

	history []string
	maxHist int

	// histPos indexes history while browsing; len(history) means the
	// draft line.
	histPos int
	draft   string
}

// New creates an empty line editor with the given prompt.
func New(prompt string) *Line {
	return &Line{prompt: prompt, maxHist: DefaultHistorySize}
}

// Prompt returns the prompt shown before the line.
func (l *Line) Prompt() string { return l.prompt }

// Text returns the current line.
func (l *Line) Text() string { return string(l.text) }

// Cursor returns the cursor as a rune offset into the line.
func (l *Line) Cursor() int { return l.cursor }

// SetCompleter sets the function Tab completes with. nil disables
// completion.
func (l *Line) SetCompleter(c Completer) { l.complete = c }

// Reset clears the line and stops browsing history.
func (l *Line) Reset() {
	l.text = l.text[:0]
	l.cursor = 0
	l.histPos = len(l.history)
	l.draft = ""
	l.choices = nil
}

// Complete replaces the first word with the next completion. The first
// call asks the completer; later calls cycle through its candidates.
func (l *Line) Complete() bool {
	if l.complete == nil {
		return false
	}
	if l.choices == nil {
		word, _, _ := strings.Cut(l.Text(), " ")
		l.choices = l.complete(word)
		l.choice = -1
		if len(l.choices) == 0 {
			l.choices = nil
			return false
		}
	}
	l.choice = (l.choice + 1) % len(l.choices)
	_, rest, hasArgs := strings.Cut(l.Text(), " ")
	if hasArgs {
		l.SetText(l.choices[l.choice] + " " + rest)
		l.cursor = len([]rune(l.choices[l.choice]))
	} else {
		l.SetText(l.choices[l.choice])
	}
	return true
}

// SetText replaces the line and moves the cursor to its end.
func (l *Line) SetText(s string) {
	l.text = []rune(s)
	l.cursor = len(l.text)
}

// Insert inserts s at the cursor.
func (l *Line) Insert(s string) {
	if s == "" {
		return
	}
	rs := []rune(s)
	l.text = append(l.text[:l.cursor], append(rs, l.text[l.cursor:]...)...)
	l.cursor += len(rs)
}

// Backspace deletes the rune before the cursor.
func (l *Line) Backspace() bool {
	if l.cursor == 0 {
		return false
	}
	l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
	l.cursor--
	return true
}

// Delete deletes the rune under the cursor.
func (l *Line) Delete() bool {
	if l.cursor >= len(l.text) {
		return false
	}
	l.text = append(l.text[:l.cursor], l.text[l.cursor+1:]...)
	return true
}

// Left moves the cursor one rune left.
func (l *Line) Left() { l.cursor = max(l.cursor-1, 0) }

// Right moves the cursor one rune right.
func (l *Line) Right() { l.cursor = min(l.cursor+1, len(l.text)) }

// Home moves the cursor to the start of the line.
func (l *Line) Home() { l.cursor = 0 }

// End moves the cursor to the end of the line.
func (l *Line) End() { l.cursor = len(l.text) }

// Prev replaces the line with the previous history entry.
func (l *Line) Prev() bool {
	if l.histPos == 0 {
		return false
	}
	if l.histPos == len(l.history) {
		l.draft = l.Text()
	}
	l.histPos--
	l.SetText(l.history[l.histPos])
	return true
}

// Next replaces the line with the next history entry, or the draft.
func (l *Line) Next() bool {
	if l.histPos >= len(l.history) {
		return false
	}
	l.histPos++
	if l.histPos == len(l.history) {
		l.SetText(l.draft)
	} else {
		l.SetText(l.history[l.histPos])
	}
	return true
}

// Submit returns the line, records it in history and resets the editor.
// Blank lines and repeats of the newest entry are not recorded.
func (l *Line) Submit() string {
	line := l.Text()
	if strings.TrimSpace(line) != "" &&
		(len(l.history) == 0 || l.history[len(l.history)-1] != line) {
		l.history = append(l.history, line)
		if over := len(l.history) - l.maxHist; over > 0 {
			l.history = append(l.history[:0], l.history[over:]...)
		}
	}
	l.Reset()
	return line
}

// History returns a copy of the executed lines, oldest first.
func (l *Line) History() []string {
	return append([]string(nil), l.history...)
}

// HandleKey applies ev to the line.
func (l *Line) HandleKey(ev key.Event) Action {
	ev = ev.Normalize()
	if ev.Key == key.KeyTab && ev.Modifiers == key.ModNone {
		if !l.Complete() {
			return ActionNone
		}
		return ActionEdit
	}
	l.choices = nil
	if ev.IsChar() {
		l.Insert(string(ev.Rune))
		return ActionEdit
	}
	if ev.Modifiers.Has(key.ModCtrl) && ev.Key == key.KeyRune {
		switch ev.Rune {
		case 'a':
			l.Home()
		case 'e':
			l.End()
		case 'u':
			l.text = append(l.text[:0], l.text[l.cursor:]...)
			l.cursor = 0
		case 'c', 'g':
			return ActionCancel
		default:
			return ActionNone
		}
		return ActionEdit
	}
	switch ev.Key {
	case key.KeyEnter:
		return ActionExecute
	case key.KeyEscape:
		return ActionCancel
	case key.KeyBackspace:
		l.Backspace()
	case key.KeyDelete:
		l.Delete()
	case key.KeyLeft:
		l.Left()
	case key.KeyRight:
		l.Right()
	case key.KeyHome:
		l.Home()
	case key.KeyEnd:
		l.End()
	case key.KeyUp:
		l.Prev()
	case key.KeyDown:
		l.Next()
	default:
		return ActionNone
	}
	return ActionEdit
}
