package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/spiral/internal/vfs"
)

// ScriptFile is the config script name looked up on the search path.
const ScriptFile = "config.lua"

// EnvScript overrides the search path with a single script.
const EnvScript = "SPIRAL_CONFIG"

// DefaultScriptName names the embedded script in errors and logs.
const DefaultScriptName = "<default config.lua>"

//go:embed default_config.lua
var defaultScript string

// Script is a config script to run.
type Script struct {
	// Name identifies the script in errors; the path for files.
	Name string

	// Source is the Lua code.
	Source string
}

// DefaultScript returns the embedded config.
func DefaultScript() Script {
	return Script{Name: DefaultScriptName, Source: defaultScript}
}

// SearchPaths returns the config script locations in load order.
// override, or $SPIRAL_CONFIG when override is empty, replaces the
// search with a single path.
func SearchPaths(override string) []string {
	if override == "" {
		override = os.Getenv(EnvScript)
	}
	if override != "" {
		return []string{override}
	}

	paths := []string{filepath.Join("/etc", AppName, ScriptFile)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName, ScriptFile))
	}
	return append(paths, ScriptFile)
}

// LoadScripts reads every existing script of paths in order. With none
// found it returns the embedded default. A path that exists but cannot
// be read is an error.
func LoadScripts(fsys vfs.FS, paths []string) ([]Script, error) {
	var scripts []Script
	for _, p := range paths {
		data, err := fsys.ReadFile(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading config script %s: %w", p, err)
		}
		scripts = append(scripts, Script{Name: p, Source: string(data)})
	}
	if len(scripts) == 0 {
		scripts = append(scripts, DefaultScript())
	}
	return scripts, nil
}
