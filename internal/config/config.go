// Package config loads the render configuration (reel.yaml).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/reel/internal/geometry"
	"github.com/aretw0/reel/internal/raster"
	"github.com/aretw0/reel/pkg/adapters/process"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "reel.yaml"

// Encoder kinds.
const (
	EncoderGIF     = "gif"
	EncoderProcess = "process"
	EncoderNone    = "none"
)

// Store kinds.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// RGB is an 8-bit color written as [r, g, b].
type RGB [3]uint8

// RGBA converts the color to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// Redis configures the redis image store.
type Redis struct {
	Addr       string `yaml:"addr" json:"addr"`
	Password   string `yaml:"password" json:"password"`
	DB         int    `yaml:"db" json:"db"`
	Prefix     string `yaml:"prefix" json:"prefix"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
}

// Config is the render configuration. Unset fields keep their defaults.
type Config struct {
	Width      int             `yaml:"width" json:"width"`
	Height     int             `yaml:"height" json:"height"`
	OutputDir  string          `yaml:"output_dir" json:"output_dir"`
	AnimDir    string          `yaml:"anim_dir" json:"anim_dir"`
	Step       int             `yaml:"step" json:"step"`
	Foreground RGB             `yaml:"foreground" json:"foreground"`
	Background RGB             `yaml:"background" json:"background"`
	Lighting   raster.Lighting `yaml:"lighting" json:"lighting"`

	// Encoder selects the animation assembler: gif, process or none.
	Encoder string `yaml:"encoder" json:"encoder"`
	// GIFDelay is the native encoder frame delay in hundredths of a second.
	GIFDelay int `yaml:"gif_delay" json:"gif_delay"`

	// Store selects where frames go: file or redis.
	Store string `yaml:"store" json:"store"`
	Redis Redis  `yaml:"redis" json:"redis"`

	// Commands overrides or extends the external viewer/encoder programs.
	Commands []process.ProcessConfig `yaml:"commands" json:"commands"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:      raster.DefaultWidth,
		Height:     raster.DefaultHeight,
		OutputDir:  ".",
		AnimDir:    "anim",
		Step:       geometry.DefaultStep,
		Foreground: RGB{255, 255, 255},
		Background: RGB{0, 0, 0},
		Lighting:   raster.DefaultLighting,
		Encoder:    EncoderGIF,
		GIFDelay:   2,
		Store:      StoreFile,
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "reel:frame:",
		},
		LogLevel: "info",
	}
}

// Load reads a configuration file (YAML or JSON by extension) over the
// defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Step <= 0 {
		errs = append(errs, fmt.Errorf("step %d must be positive", c.Step))
	}
	switch c.Encoder {
	case EncoderGIF, EncoderProcess, EncoderNone:
	default:
		errs = append(errs, fmt.Errorf("unknown encoder %q", c.Encoder))
	}
	switch c.Store {
	case StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ProcessCommands merges the configured commands over the defaults.
func (c Config) ProcessCommands() map[string]process.ProcessConfig {
	cmds := process.DefaultCommands()
	for name, pc := range process.CommandMap(c.Commands) {
		cmds[name] = pc
	}
	return cmds
}
