// Package race turns recorded telemetry into a live circuit animation state.
//
// The package provides the simulation core behind the LED race view:
//
//   - [Clock]: simulated-time cursor with play/pause/speed/seek controls
//   - [Engine]: orchestrates the grid and emits one [Frame] per tick
//   - [Frame]: immutable per-tick snapshot the renderer consumes
//
// # Example
//
//	geo, _ := track.New(layout, 120)
//	eng, _ := race.NewEngine(geo, set, 1.0)
//	eng.Play()
//	frame := eng.Tick(delta)
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The model is a single host-owned
// tick loop: call Tick, read the frame, repeat. Playback controls are valid
// between ticks only.
package race
