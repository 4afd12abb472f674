package frontend

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/spiral/internal/app"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/view"
)

// statusRows is the number of rows below the text: the status line and
// the message or command line.
const statusRows = 2

// Renderer draws a session onto a tcell screen.
type Renderer struct {
	screen   tcell.Screen
	theme    Theme
	tabWidth int

	// heads remembers each view's primary head so the view only follows
	// the cursor when it moved, leaving explicit scrolls alone.
	heads map[view.ID]int
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen, theme Theme, tabWidth int) *Renderer {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return &Renderer{
		screen:   screen,
		theme:    theme,
		tabWidth: tabWidth,
		heads:    make(map[view.ID]int),
	}
}

// Render draws the active view, the status line and the bottom line,
// then shows the screen.
func (r *Renderer) Render(s *app.Session) {
	r.screen.Clear()
	width, height := r.screen.Size()
	rows := max(height-statusRows, 0)

	v, verr := s.Engine().ActiveView()
	var buf *buffer.Buffer
	if verr == nil {
		buf, verr = s.Engine().Buffer(v.Buffer())
	}
	if verr == nil {
		r.follow(v, buf, rows)
		r.drawText(v, buf, width, rows)
		r.drawStatus(s, v, buf, width, rows)
	}
	r.drawBottom(s, width, height-1)
	r.screen.Show()
}

// follow scrolls v so the primary head stays visible after it moved.
func (r *Renderer) follow(v *view.View, buf *buffer.Buffer, rows int) {
	head := v.Primary().Head()
	last, seen := r.heads[v.ID()]
	r.heads[v.ID()] = head
	if (seen && last == head) || rows == 0 {
		return
	}
	line := buf.LineOf(min(head, buf.Len()))
	switch {
	case line < v.Scroll():
		v.SetScroll(line)
	case line >= v.Scroll()+rows:
		v.SetScroll(line - rows + 1)
	}
}

func (r *Renderer) drawText(v *view.View, buf *buffer.Buffer, width, rows int) {
	sels := v.Selections()
	primary := v.Primary()
	n := buf.Len()

	styleAt := func(off int) tcell.Style {
		switch {
		case off == primary.Head():
			return r.theme.Primary
		case isHead(sels, off):
			return r.theme.Cursor
		case isSelected(sels, off, n):
			return r.theme.Selection
		}
		return r.theme.Text
	}

	for row := 0; row < rows; row++ {
		line := v.Scroll() + row
		if line >= buf.LineCount() {
			r.screen.SetContent(0, row, '~', nil, r.theme.Filler)
			continue
		}

		off := buf.LineStartOffset(line)
		x := 0
		g := uniseg.NewGraphemes(buf.LineText(line))
		for g.Next() && x < width {
			runes := g.Runes()
			style := styleAt(off)
			if runes[0] == '\t' {
				w := r.tabWidth - x%r.tabWidth
				for i := 0; i < w && x+i < width; i++ {
					r.screen.SetContent(x+i, row, ' ', nil, style)
				}
				x += w
			} else {
				r.screen.SetContent(x, row, runes[0], runes[1:], style)
				x += max(g.Width(), 1)
			}
			off += len(runes)
		}

		// The newline, or the end of the buffer, can hold a cursor.
		if x < width && off <= n {
			if style := styleAt(off); style != r.theme.Text {
				r.screen.SetContent(x, row, ' ', nil, style)
			}
		}
	}
}

func isHead(sels []cursor.Selection, off int) bool {
	for _, sel := range sels {
		if sel.Head() == off {
			return true
		}
	}
	return false
}

func isSelected(sels []cursor.Selection, off, n int) bool {
	for _, sel := range sels {
		rng := sel.Range(n)
		if off >= rng.Start && off < rng.End {
			return true
		}
	}
	return false
}

func (r *Renderer) drawStatus(s *app.Session, v *view.View, buf *buffer.Buffer, width, row int) {
	if row < 0 {
		return
	}
	fill(r.screen, 0, row, width, r.theme.Status)

	modeLabel := " " + strings.ToUpper(v.Mode()) + " "
	x := drawString(r.screen, 0, row, width, modeLabel, r.theme.StatusMode)

	name := buf.Name()
	if buf.Modified() {
		name += " [+]"
	}
	x = drawString(r.screen, x+1, row, width-x-1, name, r.theme.Status)

	head := min(v.Primary().Head(), buf.Len())
	line := buf.LineOf(head)
	right := fmt.Sprintf("%s  %d sel  %d:%d ",
		s.Input().Pending(), len(v.Selections()), line+1, head-buf.LineStartOffset(line)+1)
	rw := runewidth.StringWidth(right)
	if start := width - rw; start > x+1 {
		drawString(r.screen, start, row, rw, right, r.theme.Status)
	}
}

func (r *Renderer) drawBottom(s *app.Session, width, row int) {
	if row < 0 {
		return
	}
	if s.Input().CommandLineActive() {
		line := s.Input().CommandLine()
		text := line.Prompt() + line.Text()
		drawString(r.screen, 0, row, width, text, r.theme.Command)
		before := line.Prompt() + string([]rune(line.Text())[:line.Cursor()])
		r.screen.ShowCursor(min(runewidth.StringWidth(before), width-1), row)
		return
	}
	r.screen.HideCursor()

	msg, ok := s.Messages().Last()
	if !ok {
		return
	}
	style := r.theme.Message
	if msg.Level >= app.LogLevelError {
		style = r.theme.Error
	}
	drawString(r.screen, 0, row, width, firstLine(msg.Text), style)
}

// drawString draws text from x, truncated to width cells, and returns
// the column after it.
func drawString(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	if width <= 0 {
		return x
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

func fill(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
