// Package main is the entry point for the spiral editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/spiral/internal/app"
	"github.com/dshills/spiral/internal/config"
	editorhandler "github.com/dshills/spiral/internal/dispatcher/handlers/editor"
	"github.com/dshills/spiral/internal/frontend"
	"github.com/dshills/spiral/internal/vfs"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	settingsPath string
	script       string
	logLevel     string
	logFile      string
	noWatch      bool
	files        []string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()
	fsys := vfs.NewOSFS()

	// Defaults are usable; a settings error is shown once the session is up.
	settings, settingsErr := config.LoadSettings(fsys, f.settingsPath)
	applyFlags(&settings, f)

	logger, closeLog, err := app.OpenLogger(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := app.Options{
		Settings: settings,
		FS:       fsys,
		Logger:   logger,
		Files:    f.files,
	}
	if settings.Clipboard.System {
		opts.Clipboard = editorhandler.SystemClipboard{}
	}

	session, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()
	if settingsErr != nil {
		session.ReportError(settingsErr)
	}

	var feOpts []frontend.Option
	if settings.Editor.Watch {
		if w := startWatcher(settings, logger); w != nil {
			defer w.Close()
			feOpts = append(feOpts, frontend.WithWatcher(w))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runTerminal(ctx, session, feOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runTerminal runs the session on the terminal and restores the terminal
// before returning.
func runTerminal(ctx context.Context, session *app.Session, opts []frontend.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	err = frontend.New(screen, session, opts...).Run(ctx)
	if ctx.Err() != nil {
		// Interrupted by a signal.
		return nil
	}
	return err
}

// startWatcher watches the config scripts. A watcher that cannot start
// only disables automatic reloads.
func startWatcher(settings config.Settings, logger *app.Logger) *config.Watcher {
	var paths []string
	for _, p := range config.SearchPaths(settings.Editor.Script) {
		if abs, err := filepath.Abs(p); err == nil {
			paths = append(paths, abs)
		}
	}
	w, err := config.NewWatcher(paths)
	if err != nil {
		logger.Warn("config watcher disabled: %v", err)
		return nil
	}
	return w
}

func applyFlags(settings *config.Settings, f flags) {
	if f.script != "" {
		settings.Editor.Script = f.script
	}
	if f.logLevel != "" {
		settings.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		settings.Log.File = f.logFile
	}
	if f.noWatch {
		settings.Editor.Watch = false
	}
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.settingsPath, "settings", config.SettingsPath(), "Path to the settings file")
	flag.StringVar(&f.script, "config", "", "Config script to run instead of the search path")
	flag.StringVar(&f.script, "c", "", "Config script (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", "", "Write the log to this file")
	flag.BoolVar(&f.noWatch, "no-watch", false, "Do not reload the config when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spiral - modal multi-cursor text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spiral [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfig scripts are read from /etc/%s/%s, the user config directory\n", config.AppName, config.ScriptFile)
		fmt.Fprintf(os.Stderr, "and ./%s, or from $%s.\n", config.ScriptFile, config.EnvScript)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("spiral %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	f.files = flag.Args()
	return f
}
