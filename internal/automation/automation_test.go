package automation

import (
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

const tourYAML = `
name: dive
description: into the seahorse valley
width: 16
height: 12
steps:
  - center: [-0.75, 0.1]
    zoom: 4
    frames: 3
  - formula: z^3 + c
    mode: julia
    julia: [0.4, 0.2]
    save_as: cubic
`

func writeTour(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tour.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTour(t *testing.T) {
	tour, err := LoadTour(writeTour(t, tourYAML))
	if err != nil {
		t.Fatal(err)
	}
	if tour.Name != "dive" || tour.Width != 16 || len(tour.Steps) != 2 {
		t.Fatalf("tour = %+v", tour)
	}
	if s := tour.Steps[0]; s.Frames != 3 || s.Zoom != 4 || len(s.Center) != 2 {
		t.Errorf("step 1 = %+v", s)
	}
	if s := tour.Steps[1]; s.Formula != "z^3 + c" || s.SaveAs != "cubic" {
		t.Errorf("step 2 = %+v", s)
	}

	if _, err := LoadTour(writeTour(t, "steps: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestRunTour(t *testing.T) {
	tour, err := LoadTour(writeTour(t, tourYAML))
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	paths, err := RunTour(context.Background(), tour, config.DefaultConfig(), out)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"dive_0000.png", "dive_0001.png", "dive_0002.png", "cubic_0003.png"}
	if len(paths) != len(want) {
		t.Fatalf("wrote %v", paths)
	}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("frame %d = %s, want %s", i, filepath.Base(p), want[i])
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
			t.Errorf("%s is %dx%d", p, b.Dx(), b.Dy())
		}
	}
}

func TestRunTour_BadStep(t *testing.T) {
	tours := map[string]string{
		"mode":    "steps:\n  - mode: bogus\n",
		"formula": "steps:\n  - formula: z^^2\n",
		"center":  "steps:\n  - center: [1]\n",
	}
	for name, body := range tours {
		t.Run(name, func(t *testing.T) {
			tour, err := LoadTour(writeTour(t, body))
			if err != nil {
				t.Fatal(err)
			}
			_, err = RunTour(context.Background(), tour, config.DefaultConfig(), t.TempDir())
			if err == nil || !strings.Contains(err.Error(), "step 1") {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestEstimateArea_UnitDisk(t *testing.T) {
	k := kernel.Generate(expr.MustCompile("z^2 + c"), 64, kernel.DefaultOptions())
	p := dynamo.Params{Mode: dynamo.ModeJulia}
	cfg := AreaConfig{Samples: 20000, Seed: 7}

	res, err := EstimateArea(context.Background(), k, plane.DefaultViewport(), p, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Samples != 20000 || res.Bounded == 0 {
		t.Fatalf("result = %+v", res)
	}
	if math.Abs(res.Area-math.Pi) > 5*res.StdErr {
		t.Errorf("area = %v ± %v, want pi", res.Area, res.StdErr)
	}

	again, err := EstimateArea(context.Background(), k, plane.DefaultViewport(), p, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if again != res {
		t.Errorf("same seed gave %+v then %+v", res, again)
	}
}

func TestEstimateArea_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	k := kernel.Generate(expr.MustCompile("z^2 + c"), 16, kernel.DefaultOptions())
	_, err := EstimateArea(ctx, k, plane.DefaultViewport(), dynamo.DefaultParams(), AreaConfig{Samples: 100, Seed: 1})
	if err == nil {
		t.Error("expected a context error")
	}
}
