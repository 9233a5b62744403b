package kernel

import (
	"image/color"
	"math"
	"math/cmplx"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp parameters, shared with the generated shaders.
const (
	rampHue        = 240.0
	rampSpan       = 300.0
	rampSaturation = 0.85
	rampMinValue   = 0.25

	domainSaturation = 0.9
	domainMinValue   = 0.6
)

// Interior is the colour of points that never trip.
var Interior = color.RGBA{A: 255}

// Ramp maps a normalised trip step t in [0,1] onto a smooth HSV gradient
// running from blue through magenta and red to yellow.
func Ramp(t float64) color.RGBA {
	switch {
	case t < 0 || t != t:
		t = 0
	case t > 1:
		t = 1
	}
	h := math.Mod(rampHue+rampSpan*t, 360)
	v := rampMinValue + (1-rampMinValue)*math.Sqrt(t)
	return rgba(colorful.Hsv(h, rampSaturation, v))
}

// DomainColor colours a value by its argument (hue) and the fractional part
// of log2 of its modulus (brightness). Non-finite values are Interior.
func DomainColor(f complex128) color.RGBA {
	if cmplx.IsNaN(f) || cmplx.IsInf(f) {
		return Interior
	}
	h := cmplx.Phase(f) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	var frac float64
	if m := cmplx.Abs(f); m > 0 {
		l := math.Log2(m)
		frac = l - math.Floor(l)
	}
	return rgba(colorful.Hsv(h, domainSaturation, domainMinValue+(1-domainMinValue)*frac))
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
