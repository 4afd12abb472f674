// Package config loads the editor's settings and locates its
// configuration scripts.
//
// Configuration has two layers:
//
//   - settings.toml holds static settings (log level, undo depth,
//     clipboard mirroring, script timeout). A missing file means
//     defaults; unknown keys are a parse error.
//   - config.lua scripts bind keys and define commands. Every script
//     found on the search path runs in order, system first:
//
//     /etc/spiral/config.lua
//     $XDG_CONFIG_HOME/spiral/config.lua (or ~/.config/spiral/config.lua)
//     ./config.lua
//
//     $SPIRAL_CONFIG or the editor.script setting replaces the search
//     with a single file. When nothing is found the embedded default
//     script runs.
//
// Watcher reports changes to the scripts so the session can reload them.
package config
