// Package flow provides the flow-field primitives that steer headline curves.
//
// The package contains the pieces of the simulation that carry no rendering
// concerns:
//
//   - [Grid]: canvas-sized lattice of unit vectors rebuilt from noise each frame
//   - [Agent]: one curve origin bound to one [Record]
//   - [TracePath]: walks an agent through a [Field] and returns its control points
//   - [Scheduler]: the global unfurling progress shared by every agent
//   - [CatmullRom]: flattens control points into a smooth open polyline
//
// # Example
//
//	grid, _ := flow.NewGrid(800, 600, 15, noise.New(1))
//	grid.Rebuild(zoff)
//	pts := flow.TracePath(agent, sched.Segments(), 200, 10, grid)
//
// # Thread Safety
//
// Grid and Scheduler are mutated once per frame by a single render loop and
// are NOT safe for concurrent use.
package flow
