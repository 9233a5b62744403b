// Package automation runs scripted work without a front end: zoom tours
// rendered to numbered PNG files, and Monte Carlo estimates of the area
// of the bounded set.
package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/explorer"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/render"
	"gopkg.in/yaml.v3"
)

// Tour is a scripted sequence of views.
type Tour struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Steps       []TourStep `yaml:"steps"`
}

// TourStep changes the view and then renders Frames frames, zooming by a
// total of Zoom about the centre. Empty fields keep the previous value.
type TourStep struct {
	Formula string    `yaml:"formula"`
	Mode    string    `yaml:"mode"`
	Niter   int       `yaml:"niter"`
	Center  []float64 `yaml:"center"`
	Julia   []float64 `yaml:"julia"`
	Zoom    float64   `yaml:"zoom"`
	Frames  int       `yaml:"frames"`
	SaveAs  string    `yaml:"save_as"`
}

// LoadTour loads a tour from a YAML file
func LoadTour(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tour Tour
	if err := yaml.Unmarshal(data, &tour); err != nil {
		return nil, fmt.Errorf("automation: %s: %w", path, err)
	}
	return &tour, nil
}

func complexField(name string, v []float64) (complex128, error) {
	if len(v) != 2 {
		return 0, fmt.Errorf("%s needs [re, im], got %v", name, v)
	}
	return complex(v[0], v[1]), nil
}

// RunTour renders every step of tour, starting from base, into outDir and
// returns the written paths in order.
func RunTour(ctx context.Context, tour *Tour, base *config.Config, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	params, err := base.Params()
	if err != nil {
		return nil, err
	}

	var path string
	surface := render.SurfaceFunc(func(frame *gg.Pixmap) error {
		return render.PNGSurface{Path: path}.Present(frame)
	})

	vp := base.Viewport()
	if tour.Width > 0 && tour.Height > 0 {
		vp.Scale *= float64(vp.Width) / float64(tour.Width)
		vp.Width, vp.Height = tour.Width, tour.Height
	}
	x := explorer.New(surface,
		explorer.WithBackend(compute.NewCPUBackend()),
		explorer.WithViewport(vp),
		explorer.WithNiter(base.Niter),
		explorer.WithKernelOptions(base.KernelOptions()),
		explorer.WithParams(params),
	)
	defer x.Close()
	if err := x.SetFunction(base.Formula); err != nil {
		return nil, err
	}

	prefix := tour.Name
	if prefix == "" {
		prefix = "tour"
	}

	var written []string
	frame := 0
	for i, step := range tour.Steps {
		if err := applyStep(x, step); err != nil {
			return written, fmt.Errorf("step %d: %w", i+1, err)
		}
		dynamo.Logger().Info("tour step", "step", i+1, "of", len(tour.Steps), "formula", x.Formula())

		name := step.SaveAs
		if name == "" {
			name = prefix
		}

		// the last frame of a step reaches the full zoom
		view := x.Viewport()
		x.OnPointerMove(float64(view.Width)/2, float64(view.Height)/2)
		frames := max(step.Frames, 1)
		factor := 1.0
		if step.Zoom > 0 && step.Zoom != 1 {
			if frames == 1 {
				x.Zoom(step.Zoom)
			} else {
				factor = math.Pow(step.Zoom, 1/float64(frames-1))
			}
		}
		for f := 0; f < frames; f++ {
			if f > 0 && factor != 1 {
				x.Zoom(factor)
			}
			path = filepath.Join(outDir, fmt.Sprintf("%s_%04d.png", name, frame))
			if err := x.Draw(ctx); err != nil {
				return written, fmt.Errorf("step %d frame %d: %w", i+1, f, err)
			}
			written = append(written, path)
			frame++
		}
	}
	return written, nil
}

func applyStep(x *explorer.Explorer, step TourStep) error {
	if step.Formula != "" {
		if err := x.SetFunction(step.Formula); err != nil {
			return err
		}
	}
	if step.Mode != "" {
		mode, err := dynamo.ParseMode(step.Mode)
		if err != nil {
			return err
		}
		x.SetMode(mode)
	}
	if step.Niter != 0 {
		x.SetNiter(step.Niter)
	}
	if step.Center != nil {
		c, err := complexField("center", step.Center)
		if err != nil {
			return err
		}
		x.SetCenter(c)
	}
	if step.Julia != nil {
		c, err := complexField("julia", step.Julia)
		if err != nil {
			return err
		}
		x.SetParameterC(c)
	}
	return nil
}

// AreaConfig defines a Monte Carlo area estimate.
type AreaConfig struct {
	Samples int
	Seed    int64
	Workers int
}

// AreaResult holds the estimate. Area is the bounded fraction of the
// viewport times its area; StdErr is one standard error of that.
type AreaResult struct {
	Samples int
	Bounded int
	Area    float64
	StdErr  float64
}

const areaChunk = 4096

// EstimateArea samples points uniformly over vp and counts the ones whose
// orbit does not trip within the kernel's bound. In escape and julia mode
// that is the area of the filled set inside the viewport. The result is
// reproducible for a given seed and sample count.
func EstimateArea(ctx context.Context, k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, cfg AreaConfig) (AreaResult, error) {
	if cfg.Samples < 1 {
		cfg.Samples = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	tl, br := vp.Bounds()
	w, h := real(br)-real(tl), imag(tl)-imag(br)
	chunks := (cfg.Samples + areaChunk - 1) / areaChunk
	counts := make([]int, chunks)

	err := dynamo.ParallelRows(ctx, chunks, cfg.Workers, func(i int) {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		ev := k.NewEvaluator()
		n := min(areaChunk, cfg.Samples-i*areaChunk)
		for j := 0; j < n; j++ {
			pt := complex(real(tl)+rng.Float64()*w, imag(br)+rng.Float64()*h)
			if !ev.Iterate(pt, p).Tripped {
				counts[i]++
			}
		}
	})
	if err != nil {
		return AreaResult{}, err
	}

	res := AreaResult{Samples: cfg.Samples}
	for _, c := range counts {
		res.Bounded += c
	}
	frac := float64(res.Bounded) / float64(res.Samples)
	res.Area = w * h * frac
	res.StdErr = w * h * math.Sqrt(frac*(1-frac)/float64(res.Samples))
	return res, nil
}
