// Package engine runs the headline flow-field animation one frame at a time.
//
// An [Engine] owns every piece of mutable simulation state: the flow grid, the
// noise time offset, the unfurling scheduler, the curve agents and the random
// source used for placement and neutral-sentiment flicker. Nothing lives in
// package globals, so several engines can run side by side and tests can drive
// frames against a [Recorder] without a real display.
//
// # Frame order
//
// [Engine.Frame] always:
//
//  1. paints a translucent background overlay instead of clearing,
//  2. advances the time offset and rebuilds the grid,
//  3. advances the unfurling scheduler,
//  4. styles, traces and draws every agent.
//
// Every curve is traced again from its origin on every frame. Nothing about a
// polyline is cached between frames: the grid changes each frame, and the
// fading overlay only works if the whole picture is redrawn.
//
// # Thread Safety
//
// An Engine is NOT thread-safe. Frame and Resize must be called from the same
// goroutine (the UI loop); that is what makes a resize atomic with respect to
// frame rendering.
package engine
