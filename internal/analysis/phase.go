package analysis

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PlotOrbit charts |z| against the step number.
func PlotOrbit(orbit []complex128, width, height int, caption string) string {
	data := Moduli(Finite(orbit))
	if len(data) == 0 {
		return ""
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Width(width)}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(data, opts...)
}

// PlotSpectrum charts the folded power spectrum of an orbit's tail.
func PlotSpectrum(orbit []complex128, width, height int) string {
	tail := Finite(orbit)
	tail = tail[len(tail)/2:]
	ps := PowerSpectrum(tail)
	if len(ps) < 2 {
		return ""
	}
	return asciigraph.Plot(ps[1:len(ps)/2+1],
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("power spectrum"))
}

// PortraitASCII scatters points of the complex plane, real part across and
// imaginary part up, drawing the axes when they are in range.
func PortraitASCII(points []complex128, width, height int) string {
	points = Finite(points)
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := real(points[0]), real(points[0])
	minY, maxY := imag(points[0]), imag(points[0])
	for _, p := range points {
		minX, maxX = min(minX, real(p)), max(maxX, real(p))
		minY, maxY = min(minY, imag(p)), max(maxY, imag(p))
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((real(p) - minX) / rangeX * float64(width-1))
		row := height - 1 - int((imag(p)-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
