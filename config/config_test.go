package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeOptions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReloadFromFile(t *testing.T) {
	path := writeOptions(t, "backend = \"x11\"\nscale = 1.5\nlog_level = \"warn\"\n")
	t.Setenv("FLINT_OPTIONS", path)
	t.Setenv("FLINT_BACKEND", "")
	t.Setenv("FLINT_SCALE", "")
	t.Setenv("FLINT_LOG", "")

	o, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if o.Backend != "x11" || o.Scale != 1.5 || o.LogLevel != "warn" {
		t.Errorf("Reload() = %+v", o)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeOptions(t, "backend = \"x11\"\nscale = 1.5\n")
	t.Setenv("FLINT_OPTIONS", path)
	t.Setenv("FLINT_BACKEND", "software")
	t.Setenv("FLINT_SCALE", "2")
	t.Setenv("FLINT_LOG", "debug")

	o, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if o.Backend != "software" {
		t.Errorf("Backend = %q, want software", o.Backend)
	}
	if o.Scale != 2 {
		t.Errorf("Scale = %v, want 2", o.Scale)
	}
	if o.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", o.LogLevel)
	}
}

func TestEnvRejectsBadScale(t *testing.T) {
	t.Setenv("FLINT_OPTIONS", writeOptions(t, "scale = 1.25\n"))
	t.Setenv("FLINT_BACKEND", "")
	t.Setenv("FLINT_SCALE", "-3")
	t.Setenv("FLINT_LOG", "")

	o, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if o.Scale != 1.25 {
		t.Errorf("Scale = %v, want the file value 1.25", o.Scale)
	}
}

func TestExplicitMissingFileErrors(t *testing.T) {
	t.Setenv("FLINT_OPTIONS", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("FLINT_BACKEND", "")
	t.Setenv("FLINT_SCALE", "")
	t.Setenv("FLINT_LOG", "")

	if _, err := Reload(); err == nil {
		t.Error("Reload() succeeded for an explicitly named missing file")
	}
}

func TestImplicitMissingFileIsFine(t *testing.T) {
	t.Setenv("FLINT_OPTIONS", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FLINT_BACKEND", "")
	t.Setenv("FLINT_SCALE", "")
	t.Setenv("FLINT_LOG", "")

	o, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if o != (Options{}) {
		t.Errorf("Reload() = %+v, want zero options", o)
	}
}

func TestBadTOMLErrors(t *testing.T) {
	t.Setenv("FLINT_OPTIONS", writeOptions(t, "backend = [not toml"))
	t.Setenv("FLINT_BACKEND", "")
	t.Setenv("FLINT_SCALE", "")
	t.Setenv("FLINT_LOG", "")

	if _, err := Reload(); err == nil {
		t.Error("Reload() succeeded on malformed TOML")
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in    string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", 0, false},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		level, ok := Options{LogLevel: tt.in}.Level()
		if level != tt.level || ok != tt.ok {
			t.Errorf("Level(%q) = %v,%v, want %v,%v", tt.in, level, ok, tt.level, tt.ok)
		}
	}
}
