package plane

import (
	"math"

	"github.com/san-kum/zplane/internal/dynamo"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	// DefaultScale shows four plane units across the default width.
	DefaultScale = 4.0 / DefaultWidth
)

// Viewport is the affine map between screen pixels and the plane. Scale is
// plane units per pixel. Invariants: Scale > 0, Width > 0, Height > 0.
type Viewport struct {
	Center complex128
	Scale  float64
	Width  int
	Height int
}

func DefaultViewport() Viewport {
	return Viewport{Scale: DefaultScale, Width: DefaultWidth, Height: DefaultHeight}
}

// SetResolution changes the pixel size, keeping center and scale. Values
// below one are clamped to one and reported with a *dynamo.RecoveredError.
func (v *Viewport) SetResolution(width, height int) error {
	var err error
	if width < 1 || height < 1 {
		err = &dynamo.RecoveredError{
			Op:      "set resolution",
			Got:     [2]int{width, height},
			Used:    [2]int{max(width, 1), max(height, 1)},
			Wrapped: dynamo.ErrInvalidResolution,
		}
	}
	v.Width, v.Height = max(width, 1), max(height, 1)
	return err
}

// ScreenToPlane maps a screen position to a plane coordinate.
func (v Viewport) ScreenToPlane(x, y float64) complex128 {
	return v.Center + complex(
		(x-float64(v.Width)/2)*v.Scale,
		(float64(v.Height)/2-y)*v.Scale,
	)
}

// PlaneToScreen is the inverse of ScreenToPlane.
func (v Viewport) PlaneToScreen(w complex128) (x, y float64) {
	d := w - v.Center
	x = real(d)/v.Scale + float64(v.Width)/2
	y = float64(v.Height)/2 - imag(d)/v.Scale
	return x, y
}

// Zoom rescales about the centre of the screen.
func (v *Viewport) Zoom(factor float64) error {
	return v.ZoomAbout(factor, float64(v.Width)/2, float64(v.Height)/2)
}

// ZoomAbout divides scale by factor, keeping the plane point under (ax, ay)
// fixed. A factor above one zooms in. Factors that are not finite and
// positive, or that would push scale out of range, leave the view unchanged.
func (v *Viewport) ZoomAbout(factor, ax, ay float64) error {
	scale := v.Scale / factor
	if !(factor > 0) || math.IsInf(factor, 0) || !(scale > 0) || math.IsInf(scale, 0) {
		return &dynamo.RecoveredError{Op: "zoom", Got: factor, Used: 1.0, Wrapped: dynamo.ErrInvalidZoomFactor}
	}
	anchor := v.ScreenToPlane(ax, ay)
	v.Scale = scale
	v.Center = anchor - complex(
		(ax-float64(v.Width)/2)*scale,
		(float64(v.Height)/2-ay)*scale,
	)
	return nil
}

// Pan moves the view so the content follows a pointer displaced by
// (dx, dy) pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.Center = v.panned(v.Center, dx, dy)
}

func (v Viewport) panned(from complex128, dx, dy float64) complex128 {
	return from - complex(dx*v.Scale, -dy*v.Scale)
}

// Bounds returns the plane coordinates of the top-left and bottom-right
// screen corners.
func (v Viewport) Bounds() (topLeft, bottomRight complex128) {
	return v.ScreenToPlane(0, 0), v.ScreenToPlane(float64(v.Width), float64(v.Height))
}
