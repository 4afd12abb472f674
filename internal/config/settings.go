package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/spiral/internal/vfs"
)

// AppName names the configuration directory.
const AppName = "spiral"

// SettingsFile is the settings file name inside the configuration directory.
const SettingsFile = "settings.toml"

// Settings is the decoded settings file.
type Settings struct {
	Editor    EditorSettings    `toml:"editor"`
	Log       LogSettings       `toml:"log"`
	Clipboard ClipboardSettings `toml:"clipboard"`
	Script    ScriptSettings    `toml:"script"`
}

// EditorSettings configures the session.
type EditorSettings struct {
	// Script is an explicit config script. Empty searches the default
	// locations.
	Script string `toml:"script"`

	// Watch reloads the config when a script changes on disk.
	Watch bool `toml:"watch"`

	// MaxUndo bounds each buffer's undo stack; 0 keeps the engine
	// default.
	MaxUndo int `toml:"max_undo"`

	// TabWidth is the display width of a tab.
	TabWidth int `toml:"tab_width"`
}

// LogSettings configures the log file.
type LogSettings struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`

	// File is the log file. Empty discards the log; the terminal
	// belongs to the editor.
	File string `toml:"file"`
}

// ClipboardSettings configures the kill ring's clipboard mirror.
type ClipboardSettings struct {
	// System mirrors yanks to the OS clipboard and pastes from it when
	// the kill ring is empty.
	System bool `toml:"system"`
}

// ScriptSettings configures the Lua state.
type ScriptSettings struct {
	// Timeout bounds a single script call.
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Editor: EditorSettings{
			Watch:    true,
			MaxUndo:  1000,
			TabWidth: 4,
		},
		Log: LogSettings{
			Level: "info",
		},
		Script: ScriptSettings{
			Timeout: Duration(5 * time.Second),
		},
	}
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	switch {
	case s.Editor.MaxUndo < 0:
		return fmt.Errorf("%w: editor.max_undo must not be negative", ErrInvalidSetting)
	case s.Editor.TabWidth < 1 || s.Editor.TabWidth > 16:
		return fmt.Errorf("%w: editor.tab_width must be between 1 and 16", ErrInvalidSetting)
	case s.Script.Timeout <= 0:
		return fmt.Errorf("%w: script.timeout must be positive", ErrInvalidSetting)
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidSetting, s.Log.Level)
	}
	return nil
}

// SettingsPath returns the default settings file location.
func SettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return SettingsFile
	}
	return filepath.Join(dir, AppName, SettingsFile)
}

// LoadSettings reads the settings file at path over the defaults. A
// missing file yields the defaults.
func LoadSettings(fsys vfs.FS, path string) (Settings, error) {
	s := DefaultSettings()
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := ParseSettings(path, data, &s); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// ParseSettings decodes TOML data over s and validates the result.
// source names the data in errors.
func ParseSettings(source string, data []byte, s *Settings) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return newParseError(source, err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		pe.Line, pe.Column = decodeErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		if key := first.Key(); len(key) > 0 {
			pe.Message = "unknown key " + strings.Join(key, ".")
		} else {
			pe.Message = strictErr.String()
		}
	}
	return pe
}

// Encode writes s as TOML.
func (s Settings) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
