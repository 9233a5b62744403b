package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome braille canvas used for orbit portraits. Its
// resolution in dots is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// PlotOrbit fits the finite points into the canvas, keeping the aspect
// ratio, and joins consecutive points with lines.
func (c *Canvas) PlotOrbit(points []complex128) {
	var finite []complex128
	for _, p := range points {
		if math.IsNaN(real(p)) || math.IsNaN(imag(p)) || math.IsInf(real(p), 0) || math.IsInf(imag(p), 0) {
			break
		}
		finite = append(finite, p)
	}
	if len(finite) == 0 {
		return
	}

	minX, maxX := real(finite[0]), real(finite[0])
	minY, maxY := imag(finite[0]), imag(finite[0])
	for _, p := range finite {
		minX, maxX = min(minX, real(p)), max(maxX, real(p))
		minY, maxY = min(minY, imag(p)), max(maxY, imag(p))
	}
	dotsX, dotsY := float64(c.Width*2-1), float64(c.Height*4-1)
	span := max(maxX-minX, (maxY-minY)*dotsX/max(dotsY, 1), 1e-12)
	scale := dotsX / span
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	project := func(p complex128) (int, int) {
		x := dotsX/2 + (real(p)-cx)*scale
		y := dotsY/2 - (imag(p)-cy)*scale
		return int(math.Round(x)), int(math.Round(y))
	}

	px, py := project(finite[0])
	c.Set(px, py)
	for _, p := range finite[1:] {
		x, y := project(p)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
