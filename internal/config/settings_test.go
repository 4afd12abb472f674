package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/spiral/internal/vfs"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(vfs.NewMemFS(), "/home/u/.config/spiral/settings.toml")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", s)
	}
}

func TestLoadSettings(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile("/cfg/settings.toml", `
[editor]
script = "/cfg/init.lua"
max_undo = 50

[log]
level = "debug"
file = "/tmp/spiral.log"

[clipboard]
system = true

[script]
timeout = "250ms"
`)

	s, err := LoadSettings(fsys, "/cfg/settings.toml")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := DefaultSettings()
	want.Editor.Script = "/cfg/init.lua"
	want.Editor.MaxUndo = 50
	want.Log = LogSettings{Level: "debug", File: "/tmp/spiral.log"}
	want.Clipboard.System = true
	want.Script.Timeout = Duration(250 * time.Millisecond)
	if s != want {
		t.Errorf("LoadSettings() = %+v, want %+v", s, want)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		want    string
	}{
		{"syntax", "[editor\nwatch = true", ErrParse, "parse error in settings.toml"},
		{"unknown key", "[editor]\ncolour = 1", ErrParse, "colour"},
		{"bad duration", "[script]\ntimeout = \"soon\"", ErrParse, ""},
		{"negative undo", "[editor]\nmax_undo = -1", ErrInvalidSetting, "max_undo"},
		{"tab width", "[editor]\ntab_width = 0", ErrInvalidSetting, "tab_width"},
		{"log level", "[log]\nlevel = \"loud\"", ErrInvalidSetting, "loud"},
		{"zero timeout", "[script]\ntimeout = \"0s\"", ErrInvalidSetting, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := ParseSettings("settings.toml", []byte(tt.data), &s)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseSettings() = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadSettingsParseErrorKeepsDefaults(t *testing.T) {
	fsys := vfs.NewMemFS()
	fsys.AddFile("/settings.toml", "[editor]\nmax_undo = \"many\"")

	s, err := LoadSettings(fsys, "/settings.toml")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "/settings.toml" {
		t.Fatalf("LoadSettings() error = %v, want *ParseError for the file", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults after an error", s)
	}
}

func TestSettingsEncodeRoundTrip(t *testing.T) {
	want := DefaultSettings()
	want.Log.File = "/var/log/spiral.log"

	data, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `timeout = '5s'`) && !strings.Contains(string(data), `timeout = "5s"`) {
		t.Errorf("encoded settings lack the timeout string:\n%s", data)
	}

	got := Settings{}
	if err := ParseSettings("encoded", data, &got); err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
