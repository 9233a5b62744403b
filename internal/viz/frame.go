package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const upperHalf = "▀"

// HalfBlocks renders an RGBA pixel buffer as terminal lines, two pixel rows
// per line: the upper pixel is the foreground of '▀' and the lower pixel its
// background. Runs of identical cells share one styled span.
func HalfBlocks(pixels []byte, width, height int) []string {
	if width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		return nil
	}
	lines := make([]string, 0, (height+1)/2)
	for y := 0; y < height; y += 2 {
		var b strings.Builder
		var run int
		var runFg, runBg string
		flush := func() {
			if run == 0 {
				return
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(runFg))
			if runBg != "" {
				st = st.Background(lipgloss.Color(runBg))
			}
			b.WriteString(st.Render(strings.Repeat(upperHalf, run)))
			run = 0
		}
		for x := 0; x < width; x++ {
			fg := hexAt(pixels, width, x, y)
			bg := ""
			if y+1 < height {
				bg = hexAt(pixels, width, x, y+1)
			}
			if run > 0 && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg = fg, bg
			run++
		}
		flush()
		lines = append(lines, b.String())
	}
	return lines
}

func hexAt(pixels []byte, width, x, y int) string {
	i := (y*width + x) * 4
	c := colorful.Color{
		R: float64(pixels[i]) / 255,
		G: float64(pixels[i+1]) / 255,
		B: float64(pixels[i+2]) / 255,
	}
	return c.Hex()
}

// cellToPixel maps a terminal cell inside the picture to the centre of the
// pixel pair it shows.
func cellToPixel(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row*2) + 1
}
