package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.toml")
	cfg, resolved, loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded {
		t.Fatal("reported loading a file that does not exist")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Enumeration.PollIntervalSeconds != defaultPollIntervalSeconds {
		t.Fatalf("poll interval = %d", cfg.Enumeration.PollIntervalSeconds)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
state_dir = "` + filepath.Join(dir, "state") + `"

[enumeration]
command = ["winpin-helper", "enumerate"]
poll_interval_seconds = 0

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded {
		t.Fatal("existing file not reported as loaded")
	}
	if got := cfg.Enumeration.Command; len(got) != 2 || got[0] != "winpin-helper" {
		t.Fatalf("command = %v", got)
	}
	// Zero falls back to the default rather than a busy loop.
	if cfg.Enumeration.PollIntervalSeconds != defaultPollIntervalSeconds {
		t.Fatalf("poll interval = %d", cfg.Enumeration.PollIntervalSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want lowercased debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnsupportedLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"verbose\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("err = %v, want logging.level complaint", err)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.StateDir = "/var/lib/winpin"
	if got := cfg.DatabasePath(); got != "/var/lib/winpin/pins.db" {
		t.Fatalf("database path = %q", got)
	}
	if got := cfg.SocketPath(); got != "/var/lib/winpin/winpind.sock" {
		t.Fatalf("socket path = %q", got)
	}
	if got := cfg.LockPath(); got != "/var/lib/winpin/winpind.lock" {
		t.Fatalf("lock path = %q", got)
	}
	if got := cfg.PIDPath(); got != "/var/lib/winpin/winpind.pid" {
		t.Fatalf("pid path = %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	// The sample must itself be loadable.
	if _, _, loaded, err := Load(path); err != nil || !loaded {
		t.Fatalf("load sample: loaded=%v err=%v", loaded, err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("second write should refuse to overwrite")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/.config/winpin")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, ".config/winpin") {
		t.Fatalf("expanded = %q", got)
	}
}

func TestTrimCommandDropsLeadingBlanks(t *testing.T) {
	if got := trimCommand([]string{" ", "", "helper", " arg "}); len(got) != 2 || got[0] != "helper" || got[1] != "arg" {
		t.Fatalf("trimCommand = %v", got)
	}
	if got := trimCommand([]string{"", "  "}); got != nil {
		t.Fatalf("all-blank command = %v", got)
	}
}
