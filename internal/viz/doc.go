// Package viz provides the live terminal view of the velocity field.
//
// The package implements an interactive TUI using the Bubble Tea
// framework: the magnitude field is rendered as a shade ramp, with an
// energy sparkline and runtime parameter tuning alongside.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset and reseed the splat
//	Tab   - Cycle tunable parameters
//	Up/K  - Increase selected parameter (+5%)
//	Down/J- Decrease selected parameter (-5%)
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
