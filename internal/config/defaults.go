package config

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"

	// LogLevelEnv overrides the log level when the config file leaves it unset.
	LogLevelEnv = "AER_LOG_LEVEL"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
