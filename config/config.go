// Package config loads the optional toolkit options file and its
// environment overrides. Options tune backend selection and display
// scaling without recompiling applications; widget state and
// preference files are out of scope here.
//
// The file is TOML, looked up at $FLINT_OPTIONS, then
// $XDG_CONFIG_HOME/flint/options.toml, then
// ~/.config/flint/options.toml:
//
//	backend = "x11"
//	scale = 1.5
//	log_level = "warn"
//
// Environment variables FLINT_BACKEND, FLINT_SCALE and FLINT_LOG
// override the file.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Options are the toolkit-wide graphics options.
type Options struct {
	// Backend names the graphics backend to prefer. Empty selects by
	// platform priority.
	Backend string `toml:"backend"`

	// Scale overrides the logical-to-device scale factor for new
	// surfaces. Zero means use the display's factor.
	Scale float64 `toml:"scale"`

	// LogLevel is one of "debug", "info", "warn", "error". Empty
	// leaves logging disabled.
	LogLevel string `toml:"log_level"`
}

var (
	mu      sync.Mutex
	current *Options
)

// Current returns the process-wide options, loading them on first
// use. Load failures other than a missing file are reported once via
// the error from Reload; Current itself degrades to defaults.
func Current() Options {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		o, _ := load()
		current = &o
	}
	return *current
}

// Reload re-reads the options file and environment. It returns the
// loaded options and any file parse error; on error the previous
// options stay in effect.
func Reload() (Options, error) {
	o, err := load()
	if err != nil {
		return o, err
	}
	mu.Lock()
	current = &o
	mu.Unlock()
	return o, nil
}

// load reads the options file (if any) and applies env overrides.
func load() (Options, error) {
	var o Options

	path, explicit := optionsPath()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own config dirs
		switch {
		case err == nil:
			if uerr := toml.Unmarshal(data, &o); uerr != nil {
				applyEnv(&o)
				return o, uerr
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No options file is the normal case.
		default:
			applyEnv(&o)
			return o, err
		}
	}

	applyEnv(&o)
	return o, nil
}

// optionsPath returns the options file path and whether it was named
// explicitly via FLINT_OPTIONS.
func optionsPath() (path string, explicit bool) {
	if p := os.Getenv("FLINT_OPTIONS"); p != "" {
		return p, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flint", "options.toml"), false
}

func applyEnv(o *Options) {
	if v := os.Getenv("FLINT_BACKEND"); v != "" {
		o.Backend = v
	}
	if v := os.Getenv("FLINT_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			o.Scale = f
		}
	}
	if v := os.Getenv("FLINT_LOG"); v != "" {
		o.LogLevel = v
	}
}

// Level maps the configured log level to a slog.Level. ok is false
// when no level is configured.
func (o Options) Level() (level slog.Level, ok bool) {
	switch o.LogLevel {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
