// Package export turns rendered frames into files: SVG markup for the final
// frame, an animated GIF of the whole run and a PNG still.
package export
