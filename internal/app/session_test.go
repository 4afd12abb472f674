package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/spiral/internal/config"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/input/key"
	"github.com/dshills/spiral/internal/input/keymap"
	"github.com/dshills/spiral/internal/input/mode"
	"github.com/dshills/spiral/internal/vfs"
)

const scriptPath = "/cfg/config.lua"

// newTestSession runs the config at scriptPath in fsys, or the embedded
// default when fsys has none.
func newTestSession(t *testing.T, fsys *vfs.MemFS, files ...string) *Session {
	t.Helper()
	settings := config.DefaultSettings()
	settings.Editor.Script = scriptPath
	s, err := New(Options{Settings: settings, FS: fsys, Files: files})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func activeBuffer(t *testing.T, s *Session) *buffer.Buffer {
	t.Helper()
	v, err := s.Engine().ActiveView()
	if err != nil {
		t.Fatalf("ActiveView: %v", err)
	}
	buf, err := s.Engine().Buffer(v.Buffer())
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	return buf
}

func typeKeys(t *testing.T, s *Session, chord string) {
	t.Helper()
	for _, ev := range key.MustParseSequence(chord) {
		if err := s.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey(%s): %v", ev, err)
		}
	}
}

func TestNewStartsWithScratch(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	if got := activeBuffer(t, s).Name(); got != ScratchName {
		t.Errorf("active buffer = %q, want %q", got, ScratchName)
	}
	if s.Mode() != mode.ModeNormal {
		t.Errorf("Mode() = %q, want normal", s.Mode())
	}
	if len(s.ID()) == 0 {
		t.Error("session has no id")
	}
	if _, ok := s.Messages().LastError(); ok {
		t.Errorf("unexpected error messages: %+v", s.Messages().All())
	}
}

func TestDefaultConfigEditing(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	typeKeys(t, s, "i h i")
	if s.Mode() != mode.ModeInsert {
		t.Fatalf("Mode() = %q, want insert", s.Mode())
	}
	if got := activeBuffer(t, s).Text(); got != "hi" {
		t.Errorf("text after typing = %q, want %q", got, "hi")
	}

	typeKeys(t, s, "bspc esc")
	if got := activeBuffer(t, s).Text(); got != "h" {
		t.Errorf("text after backspace = %q, want %q", got, "h")
	}
	if s.Mode() != mode.ModeNormal {
		t.Errorf("Mode() = %q, want normal after esc", s.Mode())
	}

	typeKeys(t, s, "u")
	if got := activeBuffer(t, s).Text(); got != "hi" {
		t.Errorf("text after undo = %q, want %q", got, "hi")
	}

	typeKeys(t, s, "C-q")
	if !s.Done() {
		t.Error("C-q did not end the session")
	}
}

func TestHandleKeyReportsFailures(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile(scriptPath, `Editor.bind("z", "normal", {"no-such-command", "select-all"})`)
	s := newTestSession(t, fsys)
	s.Engine().Replace(activeBuffer(t, s).ID(), 0, 0, "abc")

	err := s.HandleKey(key.NewRuneEvent('z', key.ModNone))
	if err == nil {
		t.Fatal("HandleKey() = nil, want the unknown command error")
	}
	msg, ok := s.Messages().LastError()
	if !ok || !strings.Contains(msg.Text, "no-such-command") {
		t.Errorf("LastError() = %+v, %v", msg, ok)
	}

	v, _ := s.Engine().ActiveView()
	if got := v.Primary(); got.Min() != 0 || got.Max() != 2 {
		t.Errorf("select-all after a failure = %+v, want it still applied", got)
	}
}

func TestModeChangeClearsPendingChord(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	typeKeys(t, s, "g")
	if len(s.Input().Pending()) != 1 {
		t.Fatalf("Pending() = %v, want the g prefix", s.Input().Pending())
	}
	if err := s.Execute("enter-mode insert"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(s.Input().Pending()) != 0 {
		t.Errorf("Pending() = %v after a mode change, want empty", s.Input().Pending())
	}
}

func TestCommandLine(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	typeKeys(t, s, ":")
	if !s.Input().CommandLineActive() {
		t.Fatal("':' did not focus the command line")
	}
	for _, r := range `insert "ok"` {
		if err := s.HandleKey(key.NewRuneEvent(r, key.ModNone)); err != nil {
			t.Fatalf("HandleKey(%q): %v", r, err)
		}
	}
	typeKeys(t, s, "enter")

	if s.Input().CommandLineActive() {
		t.Error("command line still active after enter")
	}
	if got := activeBuffer(t, s).Text(); got != "ok" {
		t.Errorf("text = %q, want %q", got, "ok")
	}
}

func TestCommandLineCompletesScriptCommands(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile(scriptPath, `
Editor.bind(":", "normal", "enter-command-mode")
Editor.register_command("zebra-jump", function() Editor.exec('insert "z"') end)`)
	s := newTestSession(t, fsys)

	typeKeys(t, s, ": z e b tab")
	if got := s.Input().CommandLine().Text(); got != "zebra-jump" {
		t.Fatalf("completed line = %q, want %q", got, "zebra-jump")
	}
	typeKeys(t, s, "enter")
	if got := activeBuffer(t, s).Text(); got != "z" {
		t.Errorf("text = %q, want %q", got, "z")
	}
}

func TestUndoInsideScriptCommand(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile(scriptPath, `
Editor.register_command("retract", function()
	local sel = Editor.get_active_view():get_selections()[1]
	sel:set_text("XYZ")
	Editor.exec("undo")
end)`)
	s := newTestSession(t, fsys)

	for _, line := range []string{`insert "hello world"`, "goto-end", "retract"} {
		if err := s.Execute(line); err != nil {
			t.Fatalf("Execute(%q): %v", line, err)
		}
	}
	if got := activeBuffer(t, s).Text(); got != "hello world" {
		t.Fatalf("text after retract = %q, want %q", got, "hello world")
	}

	if err := s.Execute("undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := activeBuffer(t, s).Text(); got != "" {
		t.Errorf("text after undo = %q, want empty", got)
	}
}

func TestKeyMacroRecordAndReplay(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	typeKeys(t, s, "Q i a b esc Q")
	if got := s.Macros().Get('q').String(); got != "i a b esc" {
		t.Fatalf("recorded %q, want %q", got, "i a b esc")
	}
	typeKeys(t, s, "q")
	if got := activeBuffer(t, s).Text(); got != "abab" {
		t.Errorf("text after replay = %q, want %q", got, "abab")
	}
	if s.Mode() != mode.ModeNormal {
		t.Errorf("Mode() = %q after replay, want normal", s.Mode())
	}
}

func TestSearchFromCommandLine(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())
	s.Engine().Replace(activeBuffer(t, s).ID(), 0, 0, "one two one")

	if err := s.Execute("search one"); err != nil {
		t.Fatalf("search: %v", err)
	}
	typeKeys(t, s, "n")
	v, _ := s.Engine().ActiveView()
	if got := v.Primary(); got.Min() != 8 || got.Max() != 10 {
		t.Errorf("primary after n = [%d, %d], want [8, 10]", got.Min(), got.Max())
	}
}

func TestReloadConfig(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile(scriptPath, `
Editor.register_command("shout", function() Editor.exec('insert "!"') end)
Editor.bind("s", "normal", "shout")
`)
	s := newTestSession(t, fsys)

	typeKeys(t, s, "s")
	if got := activeBuffer(t, s).Text(); got != "!" {
		t.Fatalf("text = %q, want %q", got, "!")
	}

	fsys.AddFile(scriptPath, `Editor.bind("t", "normal", "select-all")`)
	if err := s.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}

	if s.Dispatcher().Registry().Has("shout") {
		t.Error("script command survived a reload")
	}
	if m, _ := s.Keymap().Lookup(key.MustParseSequence("s"), mode.ModeNormal); m != keymap.NoMatch {
		t.Errorf("binding for s after reload = %v, want NoMatch", m)
	}
	if m, _ := s.Keymap().Lookup(key.MustParseSequence("t"), mode.ModeNormal); m != keymap.Exact {
		t.Errorf("binding for t after reload = %v, want Exact", m)
	}
	if !s.Dispatcher().Registry().Has("select-all") {
		t.Error("built-in command lost on reload")
	}
	if _, ok := s.Keymap().Fallback(mode.ModeInsert); !ok {
		t.Error("insert fallback lost on reload")
	}
}

func TestReloadConfigFailingScript(t *testing.T) {
	s, err := New(Options{
		FS: vfs.NewMemFS(),
		Scripts: []config.Script{
			{Name: "bad.lua", Source: `error("boom")`},
			{Name: "good.lua", Source: `Editor.bind("t", "normal", "select-all")`},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	msg, ok := s.Messages().LastError()
	if !ok || !strings.Contains(msg.Text, "bad.lua") || !strings.Contains(msg.Text, "boom") {
		t.Errorf("LastError() = %+v, %v, want the bad.lua failure", msg, ok)
	}
	if m, _ := s.Keymap().Lookup(key.MustParseSequence("t"), mode.ModeNormal); m != keymap.Exact {
		t.Error("script after the failing one did not run")
	}

	err = s.ReloadConfig()
	var list *LoadError
	if !errors.As(err, &list) || list.Len() != 1 || list.Failed[0].Script != "bad.lua" {
		t.Errorf("ReloadConfig() = %v, want one failure", err)
	}
}

func TestReloadFromRunningScript(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile(scriptPath, `
Editor.register_command("again", function() Editor.exec("reload-config") end)
`)
	s := newTestSession(t, fsys)

	err := s.Execute("again")
	if err == nil || !strings.Contains(err.Error(), ErrScriptRunning.Error()) {
		t.Errorf("Execute(again) = %v, want %v", err, ErrScriptRunning)
	}
	if !s.Dispatcher().Registry().Has("again") {
		t.Error("script state was dropped by the rejected reload")
	}

	if err := s.Execute("reload-config"); err != nil {
		t.Errorf("reload-config = %v", err)
	}
	if msg, _ := s.Messages().Last(); msg.Text != "config reloaded" {
		t.Errorf("Last() = %q, want the reload message", msg.Text)
	}
}

func TestOpenFile(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile("/src/main.go", "package main\n")
	s := newTestSession(t, fsys, "/src/main.go", "/src/missing.go")

	if got := activeBuffer(t, s).Path(); got != "/src/missing.go" {
		t.Errorf("active path = %q, want the last file", got)
	}
	if got := len(s.Engine().Views()); got != 2 {
		t.Errorf("views = %d, want 2", got)
	}

	v, err := s.OpenFile("/src/main.go")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	buf, _ := s.Engine().Buffer(v.Buffer())
	if buf.Text() != "package main\n" {
		t.Errorf("text = %q", buf.Text())
	}
	if got := len(s.Engine().Buffers()); got != 2 {
		t.Errorf("buffers = %d, want the existing buffer reused", got)
	}
}

func TestClose(t *testing.T) {
	s := newTestSession(t, vfs.NewMemFS())

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.HandleKey(key.NewRuneEvent('i', key.ModNone)); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("HandleKey after Close = %v, want %v", err, ErrSessionClosed)
	}
	if err := s.Execute("quit"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Execute after Close = %v, want %v", err, ErrSessionClosed)
	}
	if err := s.ReloadConfig(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("ReloadConfig after Close = %v, want %v", err, ErrSessionClosed)
	}
}

func TestCloseLogsCommandStats(t *testing.T) {
	var out bytes.Buffer
	settings := config.DefaultSettings()
	settings.Editor.Script = scriptPath
	s, err := New(Options{
		Settings: settings,
		FS:       vfs.NewMemFS(),
		Logger:   NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &out}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Execute("select-all")
	s.Execute("search zzz")
	s.Close()

	if !strings.Contains(out.String(), "session closed: ") || !strings.Contains(out.String(), "1 failed") {
		t.Errorf("log = %q, want the command stats", out.String())
	}
}
