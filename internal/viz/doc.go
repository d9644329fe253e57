// Package viz renders the race as a terminal LED animation.
//
// The package implements the host loop the engine expects: a Bubble Tea
// model that converts real elapsed wall time into engine ticks and draws
// each resulting frame.
//
//   - [Model]: interactive race view with playback controls
//   - [Canvas]: braille track outline plus colored car markers
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Restart from the grid
//	↑/↓   - Double/halve playback speed
//	←/→   - Seek 10s backward/forward
//	?     - Help overlay
//
// The engine itself never imports this package; the boundary is Tick,
// CurrentFrame and the playback controls.
package viz
