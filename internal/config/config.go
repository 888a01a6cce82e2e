// Package config loads process configuration from DICE_* environment variables
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dice-companion/internal/errors"
)

// Config is the process configuration. Defaults match a single table
// served on a laptop with in-memory history.
type Config struct {
	HTTPPort int `env:"DICE_HTTP_PORT" envDefault:"8080"`

	// RedisAddr empty runs an in-memory Redis inside the process
	RedisAddr string `env:"DICE_REDIS_ADDR"`
	RedisTLS  bool   `env:"DICE_REDIS_TLS" envDefault:"false"`

	SettleDelay time.Duration `env:"DICE_SETTLE_DELAY" envDefault:"1s"`
	RevealDelay time.Duration `env:"DICE_REVEAL_DELAY" envDefault:"1500ms"`

	HistoryTTL   time.Duration `env:"DICE_HISTORY_TTL" envDefault:"15m"`
	HistoryLimit int           `env:"DICE_HISTORY_LIMIT" envDefault:"20"`
	MaxTables    int           `env:"DICE_MAX_TABLES" envDefault:"256"`

	// SoundCommand empty disables the roll sound
	SoundCommand string `env:"DICE_SOUND_COMMAND"`
	SoundFile    string `env:"DICE_SOUND_FILE" envDefault:"/dice.mp3"`

	LogLevel string `env:"DICE_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges and the relationship between the roll delays
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("HTTPPort", c.HTTPPort, 1, 65535, vb)
	errors.ValidatePositiveDuration("SettleDelay", c.SettleDelay, vb)
	if c.RevealDelay <= c.SettleDelay {
		vb.InvalidField("RevealDelay", "must be longer than SettleDelay")
	}
	errors.ValidatePositiveDuration("HistoryTTL", c.HistoryTTL, vb)
	errors.ValidateRange("HistoryLimit", c.HistoryLimit, 1, 1000, vb)
	errors.ValidateRange("MaxTables", c.MaxTables, 1, 100000, vb)
	errors.ValidateRequired("SoundFile", c.SoundFile, vb)
	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.InvalidField("LogLevel", c.LogLevel)
	}

	return vb.Build()
}

// Level returns the configured slog level
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger returns a text logger writing to w at the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(raw)))
	return level, err
}
