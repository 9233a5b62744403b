package export

import (
	"math"
	"strings"
	"testing"
)

func TestOrbitSVG(t *testing.T) {
	orbit := []complex128{0, 1, complex(1, 1), complex(math.NaN(), 0), 5}
	svg := OrbitSVG(orbit, 200, 100, "#00ff00")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("got %d dots, want 3 before the NaN", n)
	}
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("got %d path segments, want 2", n)
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke colour missing")
	}

	if OrbitSVG([]complex128{1}, 10, 10, "red") != "" {
		t.Error("single point should give no svg")
	}
	if OrbitSVG([]complex128{complex(math.Inf(1), 0), 1, 2}, 10, 10, "red") != "" {
		t.Error("orbit starting at infinity should give no svg")
	}
}

func TestOrbitSVG_StaysInside(t *testing.T) {
	svg := OrbitSVG([]complex128{-3, complex(2, 7), complex(0.5, -1)}, 100, 50, "red")
	// padding keeps every dot away from the border
	for _, coord := range []string{`cx="0.0"`, `cx="100.0"`, `cy="0.0"`, `cy="50.0"`} {
		if strings.Contains(svg, coord) {
			t.Errorf("dot on the border: %s", coord)
		}
	}
}

func TestScatterSVG(t *testing.T) {
	points := []complex128{complex(-2, -1), complex(-2, 1), complex(0.25, 0), complex(0, math.Inf(-1))}
	svg := ScatterSVG(points, 300, 200, "#ff00ff")
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("got %d dots, want 3", n)
	}
	if ScatterSVG(nil, 10, 10, "red") != "" {
		t.Error("no points should give no svg")
	}

	// a single point still gets a non-degenerate box
	if svg := ScatterSVG([]complex128{1}, 10, 10, "red"); !strings.Contains(svg, `cx="5.0" cy="5.0"`) {
		t.Errorf("single point not centred:\n%s", svg)
	}
}
