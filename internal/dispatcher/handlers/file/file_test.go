package file_test

import (
	"errors"
	"testing"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	filehandler "github.com/dshills/spiral/internal/dispatcher/handlers/file"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/mode"
	"github.com/dshills/spiral/internal/vfs"
)

func newContext(t *testing.T) (*execctx.ExecutionContext, *vfs.MemFS, *filehandler.Handler) {
	t.Helper()
	fsys := vfs.NewMemFS()
	ctx := execctx.New()
	ctx.Engine = engine.New()
	ctx.Modes = mode.NewManager()
	return ctx, fsys, filehandler.NewHandler(fsys)
}

func run(t *testing.T, h *filehandler.Handler, ctx *execctx.ExecutionContext, name, args string) {
	t.Helper()
	if res := h.HandleAction(input.NewAction(name, args, input.SourceCommandLine), ctx); res.IsError() {
		t.Fatalf("%s %q: %v", name, args, res.Error)
	}
}

func activeBuffer(t *testing.T, ctx *execctx.ExecutionContext) *buffer.Buffer {
	t.Helper()
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		t.Fatalf("ActiveBuffer: %v", err)
	}
	return buf
}

func TestOpenEditWrite(t *testing.T) {
	ctx, fsys, h := newContext(t)
	fsys.AddFile("/docs/a.txt", "one\r\ntwo\r\n")

	run(t, h, ctx, filehandler.ActionOpen, "/docs/a.txt")
	buf := activeBuffer(t, ctx)
	if buf.Text() != "one\ntwo\n" {
		t.Errorf("Text() = %q, want %q", buf.Text(), "one\ntwo\n")
	}
	if buf.Path() != "/docs/a.txt" || buf.Name() != "a.txt" {
		t.Errorf("Path() = %q, Name() = %q", buf.Path(), buf.Name())
	}

	if err := ctx.Engine.Replace(buf.ID(), 0, 3, "ONE"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !buf.Modified() {
		t.Error("Modified() = false after edit")
	}
	run(t, h, ctx, filehandler.ActionWrite, "")
	data, _ := fsys.ReadFile("/docs/a.txt")
	if string(data) != "ONE\r\ntwo\r\n" {
		t.Errorf("written = %q, want CRLF line endings kept", data)
	}
	if buf.Modified() {
		t.Error("Modified() = true after write")
	}
}

func TestOpenKeepsEncoding(t *testing.T) {
	ctx, fsys, h := newContext(t)
	fsys.AddFile("/latin.txt", string([]byte{'c', 0xE9}))

	run(t, h, ctx, filehandler.ActionOpen, "latin.txt")
	if got := activeBuffer(t, ctx).Text(); got != "cé" {
		t.Errorf("Text() = %q, want %q", got, "cé")
	}
	run(t, h, ctx, filehandler.ActionWrite, "/copy.txt")
	data, _ := fsys.ReadFile("/copy.txt")
	if string(data) != string([]byte{'c', 0xE9}) {
		t.Errorf("written = %v, want latin-1 bytes", data)
	}
}

func TestOpenSameFileSharesBuffer(t *testing.T) {
	ctx, fsys, h := newContext(t)
	fsys.AddFile("/a", "x")

	run(t, h, ctx, filehandler.ActionOpen, "/a")
	first := activeBuffer(t, ctx)
	run(t, h, ctx, filehandler.ActionOpen, "/a")
	if activeBuffer(t, ctx) != first {
		t.Error("second open created a new buffer")
	}
	if got := len(ctx.Engine.ViewsOf(first.ID())); got != 2 {
		t.Errorf("views over buffer = %d, want 2", got)
	}
}

func TestOpenMissingFileThenWrite(t *testing.T) {
	ctx, fsys, h := newContext(t)

	run(t, h, ctx, filehandler.ActionOpen, `"/new file"`)
	buf := activeBuffer(t, ctx)
	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}
	ctx.Engine.Replace(buf.ID(), 0, 0, "hi")
	run(t, h, ctx, filehandler.ActionWrite, "")
	if data, err := fsys.ReadFile("/new file"); err != nil || string(data) != "hi" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestFileErrors(t *testing.T) {
	ctx, _, h := newContext(t)

	res := h.HandleAction(input.NewAction(filehandler.ActionOpen, "", input.SourceCommandLine), ctx)
	if !errors.Is(res.Error, execctx.ErrMissingArgument) {
		t.Errorf("open without path = %v, want ErrMissingArgument", res.Error)
	}

	res = h.HandleAction(input.NewAction(filehandler.ActionWrite, "", input.SourceCommandLine), ctx)
	if !errors.Is(res.Error, execctx.ErrNoActiveView) {
		t.Errorf("write without view = %v, want ErrNoActiveView", res.Error)
	}

	buf := ctx.Engine.CreateBuffer("scratch")
	v, _ := ctx.Engine.CreateView(buf.ID())
	ctx.Engine.SetActiveView(v.ID())
	res = h.HandleAction(input.NewAction(filehandler.ActionWrite, "", input.SourceCommandLine), ctx)
	if !errors.Is(res.Error, filehandler.ErrNoPath) {
		t.Errorf("write of scratch buffer = %v, want ErrNoPath", res.Error)
	}

	res = h.HandleAction(input.NewAction(filehandler.ActionOpen, "a b", input.SourceCommandLine), ctx)
	if !res.IsError() {
		t.Error("open with two paths succeeded")
	}
}

func TestFileTree(t *testing.T) {
	ctx, fsys, h := newContext(t)
	fsys.AddFile("/src/main.go", "package main")
	fsys.AddFile("/src/util/a.go", "package util")

	run(t, h, ctx, filehandler.ActionFileTree, "/src")
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		t.Fatalf("ActiveBuffer: %v", err)
	}
	if want := "../\nmain.go\nutil/\n"; buf.Text() != want {
		t.Errorf("tree Text() = %q, want %q", buf.Text(), want)
	}
	if v.Mode() != mode.ModeFileTree {
		t.Errorf("tree Mode() = %q, want %q", v.Mode(), mode.ModeFileTree)
	}

	// Cursor on "util/" opens a nested listing.
	ctx.Engine.SetSelections(v.ID(), []cursor.Selection{cursor.NewCursor(buf.LineStartOffset(2))})
	run(t, h, ctx, filehandler.ActionFileTreeOpen, "")
	if got := activeBuffer(t, ctx).Text(); got != "../\na.go\n" {
		t.Errorf("nested tree Text() = %q", got)
	}

	// Back in the first listing, "main.go" opens the file.
	ctx.Engine.SetActiveView(v.ID())
	ctx.Engine.SetSelections(v.ID(), []cursor.Selection{cursor.NewCursor(buf.LineStartOffset(1))})
	run(t, h, ctx, filehandler.ActionFileTreeOpen, "")
	if got := activeBuffer(t, ctx); got.Path() != "/src/main.go" || got.Text() != "package main" {
		t.Errorf("opened %q = %q", got.Path(), got.Text())
	}

	res := h.HandleAction(input.NewAction(filehandler.ActionFileTreeOpen, "", input.SourceKeyboard), ctx)
	if !res.IsError() {
		t.Error("file-tree-open in a file buffer succeeded")
	}
}
