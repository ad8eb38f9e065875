// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings loaded from a config file and the environment.
type Config struct {
	DebugLogging  bool   `mapstructure:"debug_logging"`
	LogBufferSize int    `mapstructure:"log_buffer_size"`
	LogFile       string `mapstructure:"log_file"`

	TopN             int     `mapstructure:"top_n"`
	TopNMax          int     `mapstructure:"top_n_max"`
	InnerRadiusRatio float64 `mapstructure:"inner_radius_ratio"`

	AnimationStep       float64       `mapstructure:"animation_step"`
	AnimationIntervalMS int           `mapstructure:"animation_interval_ms"`
	AnimationInterval   time.Duration `mapstructure:"-"`

	ExportDir    string `mapstructure:"export_dir"`
	CanvasWidth  int    `mapstructure:"canvas_width"`
	CanvasHeight int    `mapstructure:"canvas_height"`
	ChartSize    int    `mapstructure:"chart_size"`
	Title        string `mapstructure:"title"`

	// GenreHints maps a label to extra tooltip text.
	GenreHints map[string]string `mapstructure:"genre_hints"`
}

const (
	DefaultLogBufferSize       = 500
	DefaultTopN                = 10
	DefaultTopNMax             = 20
	DefaultInnerRadiusRatio    = 0.4
	DefaultAnimationStep       = 0.02
	DefaultAnimationIntervalMS = 20
	DefaultCanvasWidth         = 800
	DefaultCanvasHeight        = 600
	DefaultChartSize           = 400
	DefaultTitle               = "Total Money Distribution per Esports Title"

	envPrefix = "ESPORTS"
)

// DefaultGenreHints returns the built-in tooltip hints keyed by genre.
func DefaultGenreHints() map[string]string {
	return map[string]string{
		"Strategy":                 "Popular: StarCraft, Age of Empires",
		"Collectible Card Game":    "Popular: Magic, Hearthstone",
		"Sports":                   "Popular: FIFA, Madden NFL",
		"Fighting Game":            "Popular: Street Fighter, Tekken",
		"Multiplayer Battle Arena": "Popular: Dota 2, LoL",
		"First Person Shooter":     "Popular: CS, COD",
		"Racing":                   "Popular: Forza, Gran Turismo",
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}

// LoadConfig loads a .env file if one is present, then the config at path.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return Load(path)
}

// Load reads configuration from path (YAML, JSON or TOML). An empty path or
// a missing file yields defaults; ESPORTS_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"debug_logging":         false,
		"log_buffer_size":       DefaultLogBufferSize,
		"log_file":              "logs/esports.log",
		"top_n":                 DefaultTopN,
		"top_n_max":             DefaultTopNMax,
		"inner_radius_ratio":    DefaultInnerRadiusRatio,
		"animation_step":        DefaultAnimationStep,
		"animation_interval_ms": DefaultAnimationIntervalMS,
		"export_dir":            "exports",
		"canvas_width":          DefaultCanvasWidth,
		"canvas_height":         DefaultCanvasHeight,
		"chart_size":            DefaultChartSize,
		"title":                 DefaultTitle,
		"genre_hints":           DefaultGenreHints(),
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("read config error: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	cfg.AnimationInterval = time.Duration(cfg.AnimationIntervalMS) * time.Millisecond

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks ranges and applies defaults where a value is unusable.
func (c *Config) validate() error {
	if c.InnerRadiusRatio < 0 || c.InnerRadiusRatio >= 1 {
		return fmt.Errorf("inner_radius_ratio must be in [0, 1), got %v", c.InnerRadiusRatio)
	}
	if c.AnimationStep <= 0 || c.AnimationStep > 1 {
		return fmt.Errorf("animation_step must be in (0, 1], got %v", c.AnimationStep)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.ChartSize <= 0 || c.ChartSize > c.CanvasWidth || c.ChartSize > c.CanvasHeight {
		return fmt.Errorf("chart_size must fit the canvas, got %d", c.ChartSize)
	}

	if c.TopNMax <= 0 {
		c.TopNMax = DefaultTopNMax
	}
	if c.TopN < 0 {
		c.TopN = 0
	}
	if c.TopN > c.TopNMax {
		c.TopN = c.TopNMax
	}
	if c.AnimationInterval <= 0 {
		c.AnimationIntervalMS = DefaultAnimationIntervalMS
		c.AnimationInterval = DefaultAnimationIntervalMS * time.Millisecond
	}
	if c.LogBufferSize <= 0 {
		c.LogBufferSize = DefaultLogBufferSize
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	// viper folds keys to lower case, so hints are looked up case-insensitively
	hints := make(map[string]string, len(c.GenreHints))
	for k, v := range c.GenreHints {
		hints[strings.ToLower(k)] = v
	}
	c.GenreHints = hints
	return nil
}

// Hint returns the tooltip hint for label, if any.
func (c *Config) Hint(label string) string {
	if c == nil {
		return ""
	}
	return c.GenreHints[strings.ToLower(label)]
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
