// Package export writes orbits and parameter sweeps as standalone SVG.
package export

import (
	"fmt"
	"math"
	"strings"
)

const background = "#0a0a0a"

type bounds struct {
	minX, maxX, minY, maxY float64
}

// fit finds the bounding box of the finite points, padded by a tenth on
// each side. ok is false when no point is finite.
func fit(points []complex128) (b bounds, ok bool) {
	for _, p := range points {
		x, y := real(p), imag(p)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		if !ok {
			b = bounds{x, x, y, y}
			ok = true
			continue
		}
		b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
		b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
	}
	if !ok {
		return b, false
	}

	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * 0.1
	b.maxX += rx * 0.1
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
	return b, true
}

func (b bounds) project(p complex128, width, height int) (x, y float64) {
	x = (real(p) - b.minX) / (b.maxX - b.minX) * float64(width)
	y = float64(height) - (imag(p)-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// OrbitSVG draws an orbit as a polyline with a dot at every iterate.
// Non-finite iterates end the path. Fewer than two finite points give "".
func OrbitSVG(orbit []complex128, width, height int, stroke string) string {
	n := 0
	for n < len(orbit) && finite(orbit[n]) {
		n++
	}
	if n < 2 {
		return ""
	}
	orbit = orbit[:n]
	b, _ := fit(orbit)

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="0.6" d="M`, stroke)
	for i, p := range orbit {
		x, y := b.project(p, width, height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", stroke)
	for _, p := range orbit {
		x, y := b.project(p, width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\"/>\n", x, y)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ScatterSVG draws every finite point as a small dot, real part across and
// imaginary part up. It returns "" when there is nothing to draw.
func ScatterSVG(points []complex128, width, height int, fill string) string {
	b, ok := fit(points)
	if !ok {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\" fill-opacity=\"0.7\">\n", fill)
	for _, p := range points {
		if !finite(p) {
			continue
		}
		x, y := b.project(p, width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"0.8\"/>\n", x, y)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func finite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsNaN(imag(z)) && !math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}
