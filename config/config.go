// Package config loads hexnav settings from defaults, an optional YAML file
// and HEXNAV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/milk9111/hexnav/hexgrid"
)

// EnvPrefix prefixes environment overrides, e.g. HEXNAV_AGENT_SPEED.
const EnvPrefix = "HEXNAV"

// Config represents the complete hexnav configuration
type Config struct {
	Map     MapConfig     `mapstructure:"map"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MapConfig selects the map to load
type MapConfig struct {
	// Name of an embedded map; ignored when Path is set
	Name string `mapstructure:"name"`
	// Path to a map file on disk
	Path string `mapstructure:"path"`
}

// LayoutConfig sets the world geometry of a tile
type LayoutConfig struct {
	TileWidth float64 `mapstructure:"tile_width"`
	RowHeight float64 `mapstructure:"row_height"`
}

// AgentConfig controls the default agent
type AgentConfig struct {
	// Speed in world units per second
	Speed float64 `mapstructure:"speed"`
	// RotationSpeed in degrees per second
	RotationSpeed float64 `mapstructure:"rotation_speed"`
	// ShowPath highlights the found path while the agent walks it
	ShowPath bool `mapstructure:"show_path"`
	// StartX and StartY are the axial start coordinate
	StartX int `mapstructure:"start_x"`
	StartY int `mapstructure:"start_y"`
}

// SimConfig controls headless simulation
type SimConfig struct {
	// TickRate is the number of simulation ticks per second
	TickRate int `mapstructure:"tick_rate"`
	// MaxTicks bounds a simulation run (0 = unbounded)
	MaxTicks int `mapstructure:"max_ticks"`
}

// LoggingConfig controls the log sink
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// Dir receives hexnav.log; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	layout := hexgrid.DefaultLayout()
	return &Config{
		Map: MapConfig{Name: "islands"},
		Layout: LayoutConfig{
			TileWidth: layout.TileWidth,
			RowHeight: layout.RowHeight,
		},
		Agent: AgentConfig{
			Speed:         3,
			RotationSpeed: 360,
			ShowPath:      true,
		},
		Sim: SimConfig{
			TickRate: 60,
			MaxTicks: 60 * 60 * 5,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("map.name", d.Map.Name)
	v.SetDefault("map.path", d.Map.Path)
	v.SetDefault("layout.tile_width", d.Layout.TileWidth)
	v.SetDefault("layout.row_height", d.Layout.RowHeight)
	v.SetDefault("agent.speed", d.Agent.Speed)
	v.SetDefault("agent.rotation_speed", d.Agent.RotationSpeed)
	v.SetDefault("agent.show_path", d.Agent.ShowPath)
	v.SetDefault("agent.start_x", d.Agent.StartX)
	v.SetDefault("agent.start_y", d.Agent.StartY)
	v.SetDefault("sim.tick_rate", d.Sim.TickRate)
	v.SetDefault("sim.max_ticks", d.Sim.MaxTicks)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) on top of defaults and the environment.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper unmarshals and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// HexLayout returns the configured tile geometry.
func (c *Config) HexLayout() hexgrid.Layout {
	return hexgrid.Layout{TileWidth: c.Layout.TileWidth, RowHeight: c.Layout.RowHeight}
}

// Start returns the configured agent start coordinate.
func (c *Config) Start() hexgrid.Coord {
	return hexgrid.Coord{X: c.Agent.StartX, Y: c.Agent.StartY}
}

// TickSeconds returns the duration of one simulation tick.
func (c *SimConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hexnav")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hexnav"
	}
	return filepath.Join(home, ".config", "hexnav")
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ErrInvalid matches any ValidationErrors with errors.Is.
var ErrInvalid = errors.New("config: invalid")

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
