// Package config loads framefit settings from an optional TOML file and
// FRAMEFIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"framefit/geom"
	"framefit/internal/logging"
	"framefit/present"

	"github.com/gogpu/gg"
	"github.com/spf13/viper"
)

const envPrefix = "FRAMEFIT"

// Config is the fully resolved configuration.
type Config struct {
	Canvas   CanvasConfig   `mapstructure:"canvas"`
	Window   WindowConfig   `mapstructure:"window"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CanvasConfig describes the content surface.
type CanvasConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Smooth     bool   `mapstructure:"smooth"`
	Mode       string `mapstructure:"mode"`
	Background string `mapstructure:"background"`
	Bars       string `mapstructure:"bars"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title string  `mapstructure:"title"`
	Scale float64 `mapstructure:"scale"`
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Hz      int    `mapstructure:"hz"`
	Ticks   uint64 `mapstructure:"ticks"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Quality maps the smooth flag to a presenter quality preference.
func (c CanvasConfig) Quality() present.Quality {
	if c.Smooth {
		return present.QualitySmooth
	}
	return present.QualityFast
}

// FitMode parses Mode.
func (c CanvasConfig) FitMode() (geom.Mode, error) {
	return geom.ParseMode(c.Mode)
}

// BackgroundColor parses Background.
func (c CanvasConfig) BackgroundColor() color.Color { return gg.Hex(c.Background).Color() }

// BarColor parses Bars.
func (c CanvasConfig) BarColor() color.Color { return gg.Hex(c.Bars).Color() }

// New returns a viper instance with defaults, env bindings and the search
// path set. path, when non-empty, names an explicit config file.
func New(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("framefit")
		v.SetConfigType("toml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 450)
	v.SetDefault("canvas.smooth", true)
	v.SetDefault("canvas.mode", "fit")
	v.SetDefault("canvas.background", "#ffffff")
	v.SetDefault("canvas.bars", "#000000")

	v.SetDefault("window.title", "Eyes")
	v.SetDefault("window.scale", 1.0)

	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the config file if one exists and decodes v. A missing file
// in the default search path is not an error; a missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and parses the derived fields once.
func (c *Config) Validate() error {
	if err := geom.CheckSize(float64(c.Canvas.Width), float64(c.Canvas.Height)); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if _, err := c.Canvas.FitMode(); err != nil {
		return fmt.Errorf("canvas.mode: %w", err)
	}
	for key, val := range map[string]string{"canvas.background": c.Canvas.Background, "canvas.bars": c.Canvas.Bars} {
		if !validHex(val) {
			return fmt.Errorf("%s: invalid colour %q", key, val)
		}
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window.scale must be positive, got %g", c.Window.Scale)
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("headless.hz must be positive, got %d", c.Headless.Hz)
	}
	if _, ok := logging.LookupLevel(c.Logging.Level); !ok {
		return fmt.Errorf("logging.level must be trace, debug, info, warn, error or disabled, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "framefit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "framefit"), nil
}
