package config

const (
	defaultStateDir            = "~/.local/share/winpin"
	defaultLogDir              = "~/.local/share/winpin/logs"
	defaultPollIntervalSeconds = 2
	defaultDebounceMillis      = 150
	defaultEnumTimeoutSeconds  = 5
	defaultActTimeoutSeconds   = 5
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Enumeration: Enumeration{
			PollIntervalSeconds: defaultPollIntervalSeconds,
			DebounceMillis:      defaultDebounceMillis,
			TimeoutSeconds:      defaultEnumTimeoutSeconds,
		},
		Activation: Activation{
			TimeoutSeconds: defaultActTimeoutSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
