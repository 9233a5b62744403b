package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/plane"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay draws on top of a computed frame. Overlays run on a copy, so the
// computed frame can be re-presented without recomputation.
type Overlay func(frame *gg.Pixmap, vp plane.Viewport) error

// Axes draws the real and imaginary axes with a tick at every integer
// coordinate, when ticks are at least minTick pixels apart.
func Axes(col gg.RGBA) Overlay {
	const minTick = 12
	const tickLen = 4

	return func(frame *gg.Pixmap, vp plane.Viewport) error {
		dc := gg.NewContext(frame.Width(), frame.Height(), gg.WithPixmap(frame))
		defer dc.Close()
		dc.SetRGBA(col.R, col.G, col.B, col.A)
		dc.SetLineWidth(1)

		w, h := float64(vp.Width), float64(vp.Height)
		ox, oy := vp.PlaneToScreen(0)
		if oy >= 0 && oy <= h {
			dc.DrawLine(0, oy, w, oy)
		}
		if ox >= 0 && ox <= w {
			dc.DrawLine(ox, 0, ox, h)
		}

		// far from the origin unit steps no longer change the float
		near := math.Abs(real(vp.Center)) < 1e9 && math.Abs(imag(vp.Center)) < 1e9
		if near && 1/vp.Scale >= minTick {
			tl, br := vp.Bounds()
			for re := math.Ceil(real(tl)); re <= real(br); re++ {
				x, _ := vp.PlaneToScreen(complex(re, 0))
				dc.DrawLine(x, oy-tickLen, x, oy+tickLen)
			}
			for im := math.Ceil(imag(br)); im <= imag(tl); im++ {
				_, y := vp.PlaneToScreen(complex(0, im))
				dc.DrawLine(ox-tickLen, y, ox+tickLen, y)
			}
		}
		return dc.Stroke()
	}
}

// Annotation writes lines of text in the top-left corner.
func Annotation(col color.Color, lines ...string) Overlay {
	return func(frame *gg.Pixmap, _ plane.Viewport) error {
		img := frame.ToImage()
		d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: basicfont.Face7x13}
		for i, line := range lines {
			d.Dot = fixed.P(6, 16+i*15)
			d.DrawString(line)
		}
		copy(frame.Data(), img.Pix)
		return nil
	}
}
