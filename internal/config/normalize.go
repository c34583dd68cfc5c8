package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Enumeration.Command = trimCommand(c.Enumeration.Command)
	if c.Enumeration.PollIntervalSeconds <= 0 {
		c.Enumeration.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Enumeration.DebounceMillis <= 0 {
		c.Enumeration.DebounceMillis = defaultDebounceMillis
	}
	if c.Enumeration.TimeoutSeconds <= 0 {
		c.Enumeration.TimeoutSeconds = defaultEnumTimeoutSeconds
	}

	c.Activation.Command = trimCommand(c.Activation.Command)
	if c.Activation.TimeoutSeconds <= 0 {
		c.Activation.TimeoutSeconds = defaultActTimeoutSeconds
	}

	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func trimCommand(command []string) []string {
	out := make([]string, 0, len(command))
	for _, arg := range command {
		arg = strings.TrimSpace(arg)
		if arg == "" && len(out) == 0 {
			continue
		}
		out = append(out, arg)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
