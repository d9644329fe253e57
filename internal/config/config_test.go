package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LEDCount <= 0 {
		t.Error("led_count should be positive")
	}
	if cfg.InitialSpeed <= 0 {
		t.Error("initial_speed should be positive")
	}
	if cfg.TrackLayout == "" {
		t.Error("track_layout should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero leds", func(c *Config) { c.LEDCount = 0 }},
		{"negative leds", func(c *Config) { c.LEDCount = -10 }},
		{"zero speed", func(c *Config) { c.InitialSpeed = 0 }},
		{"negative speed", func(c *Config) { c.InitialSpeed = -2 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.LEDCount = 240
	cfg.InitialSpeed = 8.0
	cfg.TrackLayout = "oval"
	cfg.Colors = map[string]string{"verstappen": "#0000ff"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.LEDCount != 240 || loaded.InitialSpeed != 8.0 || loaded.TrackLayout != "oval" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Colors["verstappen"] != "#0000ff" {
		t.Errorf("colors not preserved: %+v", loaded.Colors)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.LEDCount = -1
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error loading invalid config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("demo")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TrackLayout != "oval" {
		t.Errorf("expected oval layout, got %s", cfg.TrackLayout)
	}

	// returned preset is a copy; mutating it must not change the original
	cfg.LEDCount = 1
	if Presets["demo"].LEDCount == 1 {
		t.Error("preset mutated through returned copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("presets not sorted")
		}
	}
}
