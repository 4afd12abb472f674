package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/input"
)

// Action names for search operations.
const (
	ActionSearch        = "search"         // search <pattern>
	ActionSearchNext    = "search-next"    // repeat forward
	ActionSearchPrev    = "search-prev"    // repeat backward
	ActionSelectMatches = "select-matches" // select-matches <pattern>
	ActionReplaceAll    = "replace-all"    // replace-all <pattern> <replacement>
)

// Search errors.
var (
	ErrNoPattern = errors.New("no previous search pattern")
	ErrNoMatch   = errors.New("pattern not found")
)

// Handler implements the search commands. It remembers the last pattern
// for search-next and search-prev.
type Handler struct {
	last *regexp.Regexp
}

// NewHandler creates a new search handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the search namespace.
func (h *Handler) Namespace() string {
	return "search"
}

// Actions lists the search commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionReplaceAll, Description: "Replace every match of a pattern in the buffer"},
		{Name: ActionSearch, Description: "Select the next match of a pattern"},
		{Name: ActionSearchNext, Description: "Select the next match of the last pattern"},
		{Name: ActionSearchPrev, Description: "Select the previous match of the last pattern"},
		{Name: ActionSelectMatches, Description: "Select every match inside the selections"},
	}
}

// LastPattern returns the pattern of the last search, or "".
func (h *Handler) LastPattern() string {
	if h.last == nil {
		return ""
	}
	return h.last.String()
}

// HandleAction processes a search action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(execctx.ErrMissingEngine)
	}

	switch action.Name {
	case ActionSearch:
		re, err := patternArg(action)
		if err != nil {
			return handler.Error(err)
		}
		h.last = re
		return h.find(ctx, true)
	case ActionSearchNext, ActionSearchPrev:
		if h.last == nil {
			return handler.Error(ErrNoPattern)
		}
		return h.find(ctx, action.Name == ActionSearchNext)
	case ActionSelectMatches:
		re, err := patternArg(action)
		if err != nil {
			return handler.Error(err)
		}
		h.last = re
		return selectMatches(ctx, re)
	case ActionReplaceAll:
		return replaceAll(action, ctx)
	default:
		return handler.Errorf("unknown search action: %s", action.Name)
	}
}

// find selects the first match after the primary selection, or the last
// one before it, wrapping around the buffer.
func (h *Handler) find(ctx *execctx.ExecutionContext, forward bool) handler.Result {
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	matches := findAll(h.last, buf.Text())
	if len(matches) == 0 {
		return handler.Errorf("%w: %s", ErrNoMatch, h.last)
	}

	primary := v.Primary()
	var (
		m       span
		found   bool
		wrapped bool
	)
	if forward {
		for _, c := range matches {
			if c.start > primary.Min() || (c.start == primary.Min() && c.end-1 > primary.Max()) {
				m, found = c, true
				break
			}
		}
		if !found {
			m, wrapped = matches[0], true
		}
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].start < primary.Min() {
				m, found = matches[i], true
				break
			}
		}
		if !found {
			m, wrapped = matches[len(matches)-1], true
		}
	}

	if err := ctx.Engine.SetSelections(v.ID(), []cursor.Selection{m.selection()}); err != nil {
		return handler.Error(err)
	}
	if wrapped {
		return handler.SuccessWithMessage("search wrapped")
	}
	return handler.Success()
}

// selectMatches replaces the selections with the matches inside them.
// When every selection is collapsed the whole buffer is searched.
func selectMatches(ctx *execctx.ExecutionContext, re *regexp.Regexp) handler.Result {
	v, buf, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	matches := findAll(re, buf.Text())

	n := buf.Len()
	var ranges []buffer.Range
	for _, sel := range sels {
		if !sel.IsCollapsed() {
			ranges = append(ranges, sel.Range(n))
		}
	}
	if len(ranges) == 0 {
		ranges = []buffer.Range{buffer.NewRange(0, n)}
	}

	var out []cursor.Selection
	for _, m := range matches {
		for _, r := range ranges {
			if m.start >= r.Start && m.end <= r.End {
				out = append(out, m.selection())
				break
			}
		}
	}
	if len(out) == 0 {
		return handler.Errorf("%w: %s", ErrNoMatch, re)
	}
	if err := ctx.Engine.SetSelections(v.ID(), out); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("%d selections", len(out)))
}

// replaceAll replaces every match as one undo unit.
func replaceAll(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	args, err := handler.ParseArgs(action.Args)
	if err != nil {
		return handler.Error(err)
	}
	if len(args) != 2 {
		return handler.Errorf("%w: %s needs a pattern and a replacement", execctx.ErrMissingArgument, action.Name)
	}
	re, err := compile(args[0])
	if err != nil {
		return handler.Error(err)
	}

	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	text := buf.Text()
	idx := re.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return handler.NoOpWithMessage(fmt.Sprintf("%s: %s", ErrNoMatch, re))
	}

	var runes runeCounter
	edits := make([]buffer.Edit, 0, len(idx))
	for _, sub := range idx {
		repl := re.ExpandString(nil, args[1], text, sub)
		start := runes.offset(text, sub[0])
		end := runes.offset(text, sub[1])
		edits = append(edits, buffer.NewEdit(buffer.NewRange(start, end), string(repl)))
	}
	if err := ctx.Engine.Apply(buf.ID(), action.Name, edits); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("%d replacements", len(edits)))
}

func patternArg(action input.Action) (*regexp.Regexp, error) {
	pattern, err := execctx.RequireArg(action.Name, strings.TrimSpace(action.Args))
	if err != nil {
		return nil, err
	}
	return compile(pattern)
}

// compile makes a pattern without upper case letters case-insensitive.
func compile(pattern string) (*regexp.Regexp, error) {
	if !strings.ContainsFunc(pattern, unicode.IsUpper) {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return re, nil
}

// span is a match in rune offsets, end exclusive.
type span struct {
	start, end int
}

func (s span) selection() cursor.Selection {
	return cursor.NewSelection(s.start, s.end-1)
}

// findAll returns the non-empty matches of re in text.
func findAll(re *regexp.Regexp, text string) []span {
	var runes runeCounter
	var out []span
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		out = append(out, span{runes.offset(text, loc[0]), runes.offset(text, loc[1])})
	}
	return out
}

// runeCounter converts increasing byte offsets into rune offsets.
type runeCounter struct {
	byteOff, runeOff int
}

func (c *runeCounter) offset(text string, b int) int {
	c.runeOff += utf8.RuneCountInString(text[c.byteOff:b])
	c.byteOff = b
	return c.runeOff
}
