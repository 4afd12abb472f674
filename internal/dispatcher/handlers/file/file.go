package file

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/view"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/mode"
	"github.com/dshills/spiral/internal/vfs"
)

// Action names for file operations.
const (
	ActionOpen         = "open"           // open <path>
	ActionWrite        = "write"          // write [path]
	ActionFileTree     = "file-tree"      // file-tree [dir]
	ActionFileTreeOpen = "file-tree-open" // open the entry on the cursor line
)

// ErrNoPath indicates a write of a buffer that has no file path.
var ErrNoPath = errors.New("buffer has no file path")

// Handler implements file operations over a vfs.FS.
type Handler struct {
	fs        vfs.FS
	encodings map[buffer.ID]vfs.Encoding
	trees     map[buffer.ID]string
}

// NewHandler creates a file handler reading and writing through fsys.
func NewHandler(fsys vfs.FS) *Handler {
	return &Handler{
		fs:        fsys,
		encodings: make(map[buffer.ID]vfs.Encoding),
		trees:     make(map[buffer.ID]string),
	}
}

// Namespace returns the file namespace.
func (h *Handler) Namespace() string {
	return "file"
}

// Actions lists the file commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionFileTree, Description: "List a directory in a file-tree buffer"},
		{Name: ActionFileTreeOpen, Description: "Open the file-tree entry under the cursor"},
		{Name: ActionOpen, Description: "Open a file in a new view"},
		{Name: ActionWrite, Description: "Write the active buffer, optionally to a new path"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionOpen, ActionWrite, ActionFileTree, ActionFileTreeOpen:
		return true
	}
	return false
}

// HandleAction processes a file action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	switch action.Name {
	case ActionOpen:
		p, err := h.pathArg(action)
		if err != nil {
			return handler.Error(err)
		}
		if p == "" {
			return handler.Error(fmt.Errorf("%w: open needs a path", execctx.ErrMissingArgument))
		}
		v, err := h.Open(ctx, p)
		if err != nil {
			return handler.Error(err)
		}
		return handler.SuccessWithMessage(h.describe(ctx, v))
	case ActionWrite:
		p, err := h.pathArg(action)
		if err != nil {
			return handler.Error(err)
		}
		return h.write(ctx, p)
	case ActionFileTree:
		dir, err := h.pathArg(action)
		if err != nil {
			return handler.Error(err)
		}
		if dir == "" {
			dir = "."
		}
		_, err = h.Tree(ctx, dir)
		return handler.FromError(err)
	case ActionFileTreeOpen:
		return h.treeOpen(ctx)
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

// pathArg reads an optional single path argument, which may be quoted.
func (h *Handler) pathArg(action input.Action) (string, error) {
	args, err := handler.ParseArgs(action.Args)
	if err != nil {
		return "", err
	}
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%s takes one path, got %d", action.Name, len(args))
	}
}

// Open reads the file at p into a new buffer, creates a view over it and
// makes that view active. A file that is already open gets a new view
// over its existing buffer. A file that does not exist yet opens as an
// empty buffer with that path, to be created by write.
func (h *Handler) Open(ctx *execctx.ExecutionContext, p string) (*view.View, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	abs, err := h.fs.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}

	buf, ok := ctx.Engine.FindBuffer(abs)
	if !ok {
		buf, err = h.read(ctx, abs)
		if err != nil {
			return nil, err
		}
	}

	v, err := ctx.Engine.CreateView(buf.ID())
	if err != nil {
		return nil, err
	}
	if err := ctx.Engine.SetActiveView(v.ID()); err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) read(ctx *execctx.ExecutionContext, abs string) (*buffer.Buffer, error) {
	opts := []buffer.Option{buffer.WithPath(abs), buffer.WithName(filepath.Base(abs))}
	data, err := h.fs.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return ctx.Engine.CreateBuffer("", opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	text, enc, err := vfs.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	buf, err := ctx.Engine.ReadBuffer(strings.NewReader(text), opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	h.encodings[buf.ID()] = enc
	return buf, nil
}

// write saves the active buffer. With a path the buffer is first
// associated with it.
func (h *Handler) write(ctx *execctx.ExecutionContext, p string) handler.Result {
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	if p != "" {
		abs, err := h.fs.Abs(p)
		if err != nil {
			return handler.Errorf("write %s: %w", p, err)
		}
		buf.SetPath(abs)
	}
	if buf.Path() == "" {
		return handler.Errorf("write %s: %w", buf.Name(), ErrNoPath)
	}

	data, err := vfs.Encode(buf.Contents(), h.encodings[buf.ID()])
	if err != nil {
		return handler.Errorf("write %s: %w", buf.Path(), err)
	}
	if err := h.fs.WriteFile(buf.Path(), data, vfs.DefaultFileMode); err != nil {
		return handler.Errorf("write %s: %w", buf.Path(), err)
	}
	buf.MarkSaved()
	return handler.SuccessWithMessage(fmt.Sprintf("%q %dL written", buf.Path(), buf.LineCount()))
}

// Tree lists dir in a new buffer, one entry per line with directories
// marked by a trailing slash, and activates a file-tree view over it.
func (h *Handler) Tree(ctx *execctx.ExecutionContext, dir string) (*view.View, error) {
	abs, err := h.fs.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("file-tree %s: %w", dir, err)
	}
	entries, err := h.fs.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("file-tree %s: %w", dir, err)
	}

	var sb strings.Builder
	sb.WriteString("../\n")
	for _, e := range entries {
		sb.WriteString(e.Name)
		if e.Dir {
			sb.WriteByte('/')
		}
		sb.WriteByte('\n')
	}

	buf := ctx.Engine.CreateBuffer(sb.String(), buffer.WithName(abs+"/"))
	h.trees[buf.ID()] = abs
	v, err := ctx.Engine.CreateView(buf.ID())
	if err != nil {
		return nil, err
	}
	if err := ctx.Engine.SetActiveView(v.ID()); err != nil {
		return nil, err
	}
	if ctx.Modes != nil {
		err = ctx.Modes.Switch(v, mode.ModeFileTree)
	} else {
		v.SetMode(mode.ModeFileTree)
	}
	return v, err
}

// treeOpen opens the entry on the primary cursor's line of a file-tree
// buffer: a directory opens another listing, a file opens for editing.
func (h *Handler) treeOpen(ctx *execctx.ExecutionContext) handler.Result {
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	dir, ok := h.trees[buf.ID()]
	if !ok {
		return handler.Errorf("%s: not a file-tree buffer", buf.Name())
	}
	entry := buf.LineText(buf.LineOf(v.Primary().Head()))
	if entry == "" {
		return handler.NoOp()
	}

	target := joinPath(dir, strings.TrimSuffix(entry, "/"))
	if strings.HasSuffix(entry, "/") {
		_, err = h.Tree(ctx, target)
		return handler.FromError(err)
	}
	_, err = h.Open(ctx, target)
	return handler.FromError(err)
}

func (h *Handler) describe(ctx *execctx.ExecutionContext, v *view.View) string {
	buf, err := ctx.Engine.Buffer(v.Buffer())
	if err != nil {
		return ""
	}
	if enc := h.encodings[buf.ID()]; enc != "" && enc != vfs.EncodingUTF8 {
		return fmt.Sprintf("%q %dL [%s]", buf.Path(), buf.LineCount(), enc)
	}
	return fmt.Sprintf("%q %dL", buf.Path(), buf.LineCount())
}

// joinPath joins an entry onto a directory from ReadDir. In-memory
// file systems use slash paths regardless of the host.
func joinPath(dir, name string) string {
	if strings.HasPrefix(dir, "/") && !strings.Contains(dir, `\`) {
		return path.Join(dir, name)
	}
	return filepath.Join(dir, name)
}
