package thicket

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const defaultRowCapacity = 1024

// Config tunes the encoding System. Zero values are replaced by defaults in
// NewSystem.
type Config struct {
	// Debug enables per-frame timing stats on the logger at debug level.
	Debug bool `config:"THICKET_DEBUG"`
	// Parallel runs encoders concurrently within a frame. Row order within
	// each encoder is unaffected.
	Parallel bool `config:"THICKET_PARALLEL"`
	// RowCapacity preallocates frame rows and column buffers.
	RowCapacity int `config:"THICKET_ROW_CAPACITY"`
	// LogLevel is a zerolog level name used by NewLogger.
	LogLevel string `config:"THICKET_LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		RowCapacity: defaultRowCapacity,
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

// LoadConfig reads THICKET_* environment variables over DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "thicket: failed to load config from environment")
	}
	if cfg.RowCapacity <= 0 {
		cfg.RowCapacity = defaultRowCapacity
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, eris.Wrapf(err, "thicket: invalid log level %q", cfg.LogLevel)
	}
	return cfg, nil
}
