package compute

import (
	"context"
	"image/color"
	"runtime"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

// CPUBackend runs kernel bytecode on row bands spread over all cores.
type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Render(ctx context.Context, k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, dst *gg.Pixmap) error {
	if k == nil {
		return dynamo.ErrNoKernel
	}
	if err := checkFrame(vp, dst); err != nil {
		return err
	}

	data := dst.Data()
	stride := vp.Width * 4
	n := p.Samples()

	return dynamo.ParallelRows(ctx, vp.Height, c.workers, func(y int) {
		ev := k.NewEvaluator()
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < vp.Width; x++ {
			var col color.RGBA
			if n == 1 {
				col = ev.Color(vp.ScreenToPlane(float64(x), float64(y)), p)
			} else {
				col = supersample(ev, vp, p, x, y, n)
			}
			i := x * 4
			row[i+0] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = col.A
		}
	})
}

// supersample averages an n×n grid of samples inside the pixel.
func supersample(ev *kernel.Evaluator, vp plane.Viewport, p dynamo.Params, x, y, n int) color.RGBA {
	var r, g, b int
	inv := 1 / float64(n)
	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			col := ev.Color(vp.ScreenToPlane(float64(x)+float64(sx)*inv, float64(y)+float64(sy)*inv), p)
			r += int(col.R)
			g += int(col.G)
			b += int(col.B)
		}
	}
	total := n * n
	return color.RGBA{
		R: uint8((r + total/2) / total),
		G: uint8((g + total/2) / total),
		B: uint8((b + total/2) / total),
		A: 255,
	}
}
