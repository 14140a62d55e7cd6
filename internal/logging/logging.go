// Package logging constructs zerolog loggers for the CLI and Lambda runtimes.
// The lifecycle CLI optionally reads a YAML config file to adjust level and
// output format; everything else uses the runtime defaults.
package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the logging config file the CLI looks for at startup.
const DefaultConfigPath = ".face-alert.logging.yml"

// FileConfig is the YAML logging configuration.
type FileConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Default returns a console logger at info level.
func Default() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// Load parses a FileConfig from the given path.
func Load(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to read logging config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to parse logging config %s: %w", path, err)
	}

	return cfg, nil
}

// New builds a logger from a FileConfig.
func New(cfg FileConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var logger zerolog.Logger
	switch cfg.Format {
	case "", "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	case "json":
		logger = zerolog.New(os.Stdout)
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid log format %q: expected console or json", cfg.Format)
	}

	return logger.Level(level).With().Timestamp().Logger(), nil
}

// FromFile builds a logger from the config file at path. A missing file is
// fine and yields the default logger; an unreadable or invalid file also
// falls back to the default, with a warning.
func FromFile(path string) zerolog.Logger {
	fallback := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fallback
	}

	cfg, err := Load(path)
	if err != nil {
		fallback.Warn().Err(err).Msg("Unable to use supplied logging config, continuing with defaults")
		return fallback
	}

	logger, err := New(cfg)
	if err != nil {
		fallback.Warn().Err(err).Msg("Unable to use supplied logging config, continuing with defaults")
		return fallback
	}

	return logger
}
