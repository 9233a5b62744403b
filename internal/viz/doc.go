// Package viz is the terminal front end of the explorer.
//
// The picture is drawn with half blocks, two pixels per cell, using
// truecolor where the terminal supports it. A braille [Canvas] plots the
// orbit of the point under the mouse.
//
// # Key Bindings
//
//	e/tab   - Edit the formula (enter applies, esc cancels)
//	+/-     - Zoom about the mouse
//	arrows  - Pan
//	[ ]     - Halve or double the iteration bound
//	m       - Cycle draw modes
//	c       - Julia set for the point under the mouse
//	o       - Orbit panel
//	t       - Cycle themes
//	?       - Full help
//
// Dragging with the left button pans; the wheel zooms.
package viz
