package config

import "sort"

// Presets cover the usual viewing setups without a config file.
var Presets = map[string]*Config{
	"broadcast": {
		LEDCount: 120, InitialSpeed: 1.0, TrackLayout: "gp", FPS: 30,
		DataDir: DefaultDataDir,
	},
	"highlights": {
		LEDCount: 120, InitialSpeed: 8.0, TrackLayout: "gp", FPS: 30,
		DataDir: DefaultDataDir,
	},
	"demo": {
		LEDCount: 60, InitialSpeed: 20.0, TrackLayout: "oval", FPS: 60,
		DataDir: DefaultDataDir,
	},
}

// GetPreset returns a copy of the named preset, nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
