// Package plane maps screen pixels to the complex plane and turns pointer
// gestures into view changes.
//
// Screen y grows downward while the imaginary axis grows upward:
//
//	w = center + ((x - width/2) * scale, (height/2 - y) * scale)
//
// A Viewport is a plain value owned by its caller. An Interaction wraps a
// Viewport pointer and is the only thing that mutates it in response to
// pointer events.
package plane
