package metrics

import (
	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/kernel"
)

// Coverage measures the share of interior pixels in rendered frames.
type Coverage struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "interior"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(frame *gg.Pixmap) {
	c.last = InteriorFraction(frame)
	c.total += c.last
	c.samples++
}

// Value is the interior fraction of the last observed frame.
func (c *Coverage) Value() float64 { return c.last }

// Mean is the interior fraction averaged over all observed frames.
func (c *Coverage) Mean() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.last = 0
	c.total = 0
	c.samples = 0
}

// InteriorFraction counts pixels painted with kernel.Interior.
func InteriorFraction(frame *gg.Pixmap) float64 {
	data := frame.Data()
	n := len(data) / 4
	if n == 0 {
		return 0
	}
	in := kernel.Interior
	count := 0
	for i := 0; i < len(data); i += 4 {
		if data[i] == in.R && data[i+1] == in.G && data[i+2] == in.B && data[i+3] == in.A {
			count++
		}
	}
	return float64(count) / float64(n)
}
