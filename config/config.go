package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/roomfield/parameter"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Field   FieldConfig   `toml:"field"`
	Map     MapConfig     `toml:"map"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

type FieldConfig struct {
	MaxDistance float64 `toml:"max_distance"` // tracked radius in map units
	Subdivision int     `toml:"subdivision"`  // pieces per tile edge
}

type MapConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty writes to stderr
}

type MetricsConfig struct {
	Addr string `toml:"addr"` // empty disables the /metrics listener
}

// Environment overrides, applied after the file
const (
	EnvMaxDistance = "ROOMFIELD_MAX_DISTANCE"
	EnvSubdivision = "ROOMFIELD_SUBDIVISION"
	EnvMapWidth    = "ROOMFIELD_MAP_WIDTH"
	EnvMapHeight   = "ROOMFIELD_MAP_HEIGHT"
	EnvLogLevel    = "ROOMFIELD_LOG_LEVEL"
	EnvLogFormat   = "ROOMFIELD_LOG_FORMAT"
	EnvMetricsAddr = "ROOMFIELD_METRICS_ADDR"
)

// Load reads the TOML file at path over the defaults, an empty path yields the defaults alone
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads envFile into the process environment (if non-empty) and applies the
// ROOMFIELD_* overrides to cfg. Variables already set in the environment win over the file
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env %s: %w", envFile, err)
		}
	}
	return cfg.ApplyEnv(os.LookupEnv)
}

// ApplyEnv overrides fields from lookup, typically os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMaxDistance); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDistance, err)
		}
		c.Field.MaxDistance = f
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvSubdivision, &c.Field.Subdivision},
		{EnvMapWidth, &c.Map.Width},
		{EnvMapHeight, &c.Map.Height},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.Metrics.Addr = v
	}
	return nil
}

// Validate rejects values the field or the tools cannot run with
func (c *Config) Validate() error {
	switch {
	case !(c.Field.MaxDistance > 0):
		return fmt.Errorf("%w: field.max_distance must be positive, got %v", ErrInvalid, c.Field.MaxDistance)
	case c.Field.Subdivision < 1:
		return fmt.Errorf("%w: field.subdivision must be at least 1, got %d", ErrInvalid, c.Field.Subdivision)
	case c.Map.Width < 1 || c.Map.Height < 1:
		return fmt.Errorf("%w: map must be at least 1x1, got %dx%d", ErrInvalid, c.Map.Width, c.Map.Height)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			MaxDistance: parameter.DefaultMaxDistance,
			Subdivision: parameter.DefaultSubdivision,
		},
		Map: MapConfig{
			Width:  parameter.LevelMapWidth,
			Height: parameter.LevelMapHeight,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
