package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLEDCount = 120
	DefaultSpeed    = 1.0
	DefaultLayout   = "gp"
	DefaultFPS      = 30
	DefaultDataDir  = ".circuitled"
)

// Config is the yaml-file configuration for a race session. CLI flags
// override file values; the file overrides defaults.
type Config struct {
	LEDCount     int               `yaml:"led_count"`     // animation resolution along the strip
	InitialSpeed float64           `yaml:"initial_speed"` // starting playback multiplier
	TrackLayout  string            `yaml:"track_layout"`  // builtin layout id
	FPS          int               `yaml:"fps"`           // host tick rate
	DataDir      string            `yaml:"data_dir"`      // results store location
	Colors       map[string]string `yaml:"colors"`        // optional per-car hex color pins
}

func DefaultConfig() *Config {
	return &Config{
		LEDCount:     DefaultLEDCount,
		InitialSpeed: DefaultSpeed,
		TrackLayout:  DefaultLayout,
		FPS:          DefaultFPS,
		DataDir:      DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.LEDCount <= 0 {
		return fmt.Errorf("led_count must be positive, got %d", c.LEDCount)
	}
	if c.InitialSpeed <= 0 {
		return fmt.Errorf("initial_speed must be positive, got %g", c.InitialSpeed)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}
