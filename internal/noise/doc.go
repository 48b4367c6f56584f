// Package noise provides a seeded, coherent 3D noise field.
//
// [Field] sums octaves of improved Perlin gradient noise and normalizes the
// result into [0, 1). Two spatial axes and one time-like axis are sampled
// together, so advancing the third coordinate animates a 2D slice smoothly:
//
//	f := noise.New(42)
//	v := f.Sample(x*0.1, y*0.1, zoff)
//
// Samples are deterministic for a given seed and coordinate, and continuous in
// every axis. A Field is read-only after construction and safe to share.
package noise
