// Package viz shows the headline flow field live in a terminal.
//
// The Bubble Tea [Model] renders one engine frame per tick onto a braille
// [Canvas]. Each braille dot keeps an intensity that the engine's translucent
// background fill decays, which reproduces the fading trails of the raster
// output at terminal resolution.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the unfurling
//	T     - Cycle panel themes
//	?     - Show help overlay
//	Q     - Quit
//
// Resizing the terminal resizes the canvas, reseeds every curve and restarts
// the animation.
package viz
