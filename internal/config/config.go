package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Enumeration configures the external window enumeration helper.
type Enumeration struct {
	// Command is executed on every refresh and must print a JSON array of
	// window snapshots on stdout.
	Command             []string `toml:"command"`
	PollIntervalSeconds int      `toml:"poll_interval_seconds"`
	DebounceMillis      int      `toml:"debounce_millis"`
	TimeoutSeconds      int      `toml:"timeout_seconds"`
}

// Activation configures the external window activation helper. The matched
// window's runtime ID is appended as the final argument.
type Activation struct {
	Command        []string `toml:"command"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration for winpin.
type Config struct {
	Paths       Paths       `toml:"paths"`
	Enumeration Enumeration `toml:"enumeration"`
	Activation  Activation  `toml:"activation"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath is where Load looks when no explicit path is given.
const DefaultConfigPath = "~/.config/winpin/config.toml"

// Load reads configuration from path (or the default location when path is
// empty), applies defaults, normalizes, and validates. A missing file yields
// the defaults; the returned bool reports whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = DefaultConfigPath
	}
	expanded, err := ExpandPath(resolved)
	if err != nil {
		return nil, "", false, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := Default()
	loaded := false
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, expanded, false, fmt.Errorf("parse config %s: %w", expanded, err)
		}
		loaded = true
	case errors.Is(err, fs.ErrNotExist):
		// Defaults stand in for a missing file.
	default:
		return nil, expanded, false, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, expanded, loaded, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, expanded, loaded, err
	}
	return &cfg, expanded, loaded, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the pinned reference database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "pins.db")
}

// SocketPath returns the daemon IPC socket location.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.StateDir, "winpind.sock")
}

// LockPath returns the daemon single-instance lock location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "winpind.lock")
}

// PIDPath returns the daemon pid file location.
func (c *Config) PIDPath() string {
	return filepath.Join(c.Paths.StateDir, "winpind.pid")
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ against the current user's home directory.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Clean(trimmed), nil
}
