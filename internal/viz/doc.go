// Package viz renders a spring animation live in the terminal.
//
// [Model] is a bubbletea program model: every tick it steps the animation
// with the elapsed wall-clock time, consumes the output node and redraws a
// progress bar, a value history graph and a velocity sparkline.
package viz
