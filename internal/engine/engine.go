package engine

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/history"
	"github.com/dshills/spiral/internal/engine/view"
)

// document pairs a buffer with its edit history.
type document struct {
	buf     *buffer.Buffer
	history *history.History
}

// Engine owns all buffers and views and the active-view reference.
type Engine struct {
	docs  map[buffer.ID]*document
	order []buffer.ID
	views []*view.View

	active view.ID

	nextBuffer buffer.ID
	nextView   view.ID

	maxUndoEntries int
	defaultMode    string
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		docs:           make(map[buffer.ID]*document),
		maxUndoEntries: DefaultMaxUndoEntries,
		defaultMode:    DefaultMode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ============================================================================
// Buffers
// ============================================================================

// CreateBuffer creates a buffer holding text.
func (e *Engine) CreateBuffer(text string, opts ...buffer.Option) *buffer.Buffer {
	e.nextBuffer++
	return e.addBuffer(buffer.New(e.nextBuffer, text, opts...))
}

// ReadBuffer creates a buffer from r.
func (e *Engine) ReadBuffer(r io.Reader, opts ...buffer.Option) (*buffer.Buffer, error) {
	buf, err := buffer.NewFromReader(e.nextBuffer+1, r, opts...)
	if err != nil {
		return nil, err
	}
	e.nextBuffer++
	return e.addBuffer(buf), nil
}

func (e *Engine) addBuffer(buf *buffer.Buffer) *buffer.Buffer {
	e.docs[buf.ID()] = &document{buf: buf, history: history.New(e.maxUndoEntries)}
	e.order = append(e.order, buf.ID())
	return buf
}

// Buffer returns the buffer with id.
func (e *Engine) Buffer(id buffer.ID) (*buffer.Buffer, error) {
	doc, err := e.doc(id)
	if err != nil {
		return nil, err
	}
	return doc.buf, nil
}

// Buffers returns all buffers in creation order.
func (e *Engine) Buffers() []*buffer.Buffer {
	out := make([]*buffer.Buffer, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.docs[id].buf)
	}
	return out
}

// FindBuffer returns the buffer associated with path.
func (e *Engine) FindBuffer(path string) (*buffer.Buffer, bool) {
	for _, id := range e.order {
		if buf := e.docs[id].buf; buf.Path() == path && path != "" {
			return buf, true
		}
	}
	return nil, false
}

func (e *Engine) doc(id buffer.ID) (*document, error) {
	doc, ok := e.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	return doc, nil
}

// ============================================================================
// Views
// ============================================================================

// CreateView creates a view over the buffer with id. The first view
// created becomes active.
func (e *Engine) CreateView(id buffer.ID) (*view.View, error) {
	if _, err := e.doc(id); err != nil {
		return nil, err
	}
	e.nextView++
	v := view.New(e.nextView, id, e.defaultMode)
	e.views = append(e.views, v)
	if e.active == 0 {
		e.active = v.ID()
	}
	return v, nil
}

// View returns the view with id.
func (e *Engine) View(id view.ID) (*view.View, error) {
	for _, v := range e.views {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrViewNotFound, id)
}

// Views returns all views in creation order.
func (e *Engine) Views() []*view.View {
	return append([]*view.View(nil), e.views...)
}

// ActiveView returns the active view.
func (e *Engine) ActiveView() (*view.View, error) {
	if e.active == 0 {
		return nil, ErrNoActiveView
	}
	return e.View(e.active)
}

// SetActiveView makes the view with id active.
func (e *Engine) SetActiveView(id view.ID) error {
	if _, err := e.View(id); err != nil {
		return err
	}
	e.active = id
	return nil
}

// ScrollView moves a view's first visible line by delta, keeping it
// within the buffer's lines. It returns the new scroll line.
func (e *Engine) ScrollView(id view.ID, delta int) (int, error) {
	v, err := e.View(id)
	if err != nil {
		return 0, err
	}
	doc, err := e.doc(v.Buffer())
	if err != nil {
		return 0, err
	}
	v.SetScroll(min(v.Scroll()+delta, doc.buf.LineCount()-1))
	return v.Scroll(), nil
}

// ViewsOf returns the views over the buffer with id.
func (e *Engine) ViewsOf(id buffer.ID) []*view.View {
	var out []*view.View
	for _, v := range e.views {
		if v.Buffer() == id {
			out = append(out, v)
		}
	}
	return out
}

// SetSelections replaces a view's selections, clamped to its buffer.
func (e *Engine) SetSelections(id view.ID, sels []cursor.Selection) error {
	v, err := e.View(id)
	if err != nil {
		return err
	}
	doc, err := e.doc(v.Buffer())
	if err != nil {
		return err
	}
	v.SetSelections(sels, doc.buf.Len())
	return nil
}

// AddSelection appends a selection to a view, clamped to its buffer.
func (e *Engine) AddSelection(id view.ID, sel cursor.Selection) error {
	v, err := e.View(id)
	if err != nil {
		return err
	}
	doc, err := e.doc(v.Buffer())
	if err != nil {
		return err
	}
	v.AddSelection(sel, doc.buf.Len())
	return nil
}

// ============================================================================
// Edits
// ============================================================================

// Apply applies a batch of edits to a buffer as one undo unit.
// Edits may be given in any order; overlapping deletions are merged.
// The selections of every view over the buffer are mapped through the
// batch and clamped to the new length.
func (e *Engine) Apply(id buffer.ID, name string, edits []buffer.Edit) error {
	doc, err := e.doc(id)
	if err != nil {
		return err
	}
	edits, err = normalizeEdits(edits)
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	before := e.snapshot(id)
	rev := doc.buf.Revision()
	inverse, err := doc.buf.Apply(edits)
	if err != nil {
		return err
	}

	n := doc.buf.Len()
	for _, v := range e.ViewsOf(id) {
		v.SetSelections(cursor.MapSelections(v.Selections(), edits, n), n)
	}

	tx := history.NewTransaction(name, edits, inverse, before, e.snapshot(id))
	tx.RevBefore, tx.RevAfter = rev, doc.buf.Revision()
	doc.history.Push(tx)
	return nil
}

// Replace replaces [start, end) in a buffer with text as one undo unit.
func (e *Engine) Replace(id buffer.ID, start, end int, text string) error {
	return e.Apply(id, "replace", []buffer.Edit{buffer.NewEdit(buffer.NewRange(start, end), text)})
}

// Undo reverts the latest undo unit of a buffer and restores the
// selections from before it.
func (e *Engine) Undo(id buffer.ID) error {
	doc, err := e.doc(id)
	if err != nil {
		return err
	}
	tx, err := doc.history.Undo(doc.buf)
	if err != nil {
		return err
	}
	e.restore(id, tx.Before)
	return nil
}

// Redo replays the latest undone unit of a buffer and restores the
// selections from after it.
func (e *Engine) Redo(id buffer.ID) error {
	doc, err := e.doc(id)
	if err != nil {
		return err
	}
	tx, err := doc.history.Redo(doc.buf)
	if err != nil {
		return err
	}
	e.restore(id, tx.After)
	return nil
}

// BeginUndoGroup starts recording a buffer's edits as a single undo unit.
func (e *Engine) BeginUndoGroup(id buffer.ID) {
	if doc, err := e.doc(id); err == nil {
		doc.history.BeginGroup()
	}
}

// EndUndoGroup ends the group started by BeginUndoGroup.
func (e *Engine) EndUndoGroup(id buffer.ID) {
	if doc, err := e.doc(id); err == nil {
		doc.history.EndGroup()
	}
}

// CanUndo reports whether the buffer has undo history.
func (e *Engine) CanUndo(id buffer.ID) bool {
	doc, err := e.doc(id)
	return err == nil && doc.history.CanUndo()
}

// CanRedo reports whether the buffer has redo history.
func (e *Engine) CanRedo(id buffer.ID) bool {
	doc, err := e.doc(id)
	return err == nil && doc.history.CanRedo()
}

func (e *Engine) snapshot(id buffer.ID) history.Selections {
	out := make(history.Selections)
	for _, v := range e.ViewsOf(id) {
		out[v.ID()] = v.Selections()
	}
	return out
}

// restore sets recorded selections and re-clamps every view over the buffer.
func (e *Engine) restore(id buffer.ID, sels history.Selections) {
	n := e.docs[id].buf.Len()
	for _, v := range e.ViewsOf(id) {
		if recorded, ok := sels[v.ID()]; ok {
			v.SetSelections(recorded, n)
			continue
		}
		v.SetSelections(v.Selections(), n)
	}
}

// normalizeEdits sorts edits by offset, drops no-ops and merges
// overlapping deletions. Overlapping replacements are rejected.
func normalizeEdits(edits []buffer.Edit) ([]buffer.Edit, error) {
	sorted := make([]buffer.Edit, 0, len(edits))
	for _, ed := range edits {
		if ed.Range.Start > ed.Range.End {
			ed.Range.Start, ed.Range.End = ed.Range.End, ed.Range.Start
		}
		ed.NewText = buffer.NormalizeLineEndings(ed.NewText)
		if !ed.IsNoOp() {
			sorted = append(sorted, ed)
		}
	}
	slices.SortStableFunc(sorted, func(a, b buffer.Edit) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})

	out := sorted[:0]
	for _, ed := range sorted {
		if len(out) == 0 {
			out = append(out, ed)
			continue
		}
		last := &out[len(out)-1]
		if ed.Range.Start >= last.Range.End {
			out = append(out, ed)
			continue
		}
		if ed.NewText != "" || last.NewText != "" {
			return nil, fmt.Errorf("%w: %s and %s", ErrEditsOverlap, last, ed)
		}
		last.Range.End = max(last.Range.End, ed.Range.End)
	}
	return out, nil
}
