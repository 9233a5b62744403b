package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/analysis"
	"github.com/san-kum/zplane/internal/automation"
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/explorer"
	"github.com/san-kum/zplane/internal/export"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/probe"
	"github.com/san-kum/zplane/internal/render"
	"github.com/san-kum/zplane/internal/storage"
	"github.com/spf13/cobra"
)

// newExplorer builds a headless explorer for cfg presenting to surface.
// There is no graphics context, so "auto" resolves to the CPU.
func newExplorer(cfg *config.Config, surface render.Surface, overlays ...render.Overlay) (*explorer.Explorer, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	be, err := compute.ByName(cfg.Backend, false)
	if err != nil {
		return nil, err
	}
	x := explorer.New(surface,
		explorer.WithBackend(be),
		explorer.WithViewport(cfg.Viewport()),
		explorer.WithNiter(cfg.Niter),
		explorer.WithKernelOptions(cfg.KernelOptions()),
		explorer.WithParams(params),
		explorer.WithOverlays(overlays...),
	)
	if err := x.SetFunction(cfg.Formula); err != nil {
		x.Close()
		return nil, err
	}
	return x, nil
}

func renderImage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var overlays []render.Overlay
	if axes {
		overlays = append(overlays, render.Axes(gg.RGBA2(1, 1, 1, 0.6)))
	}
	if annotate {
		overlays = append(overlays, render.Annotation(color.White,
			"f(z, c) = "+cfg.Formula,
			fmt.Sprintf("%s  niter %d", cfg.Mode, cfg.Niter),
		))
	}

	x, err := newExplorer(cfg, render.PNGSurface{Path: output}, overlays...)
	if err != nil {
		return err
	}
	defer x.Close()

	if width > 0 || height > 0 {
		w, h := cfg.Width, cfg.Height
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}
		x.FitResolution(w, h)
	}

	start := time.Now()
	if err := x.Draw(cmd.Context()); err != nil {
		return err
	}
	vp := x.Viewport()
	fmt.Printf("wrote %s (%dx%d, %s on %s)\n", output, vp.Width, vp.Height,
		time.Since(start).Round(time.Millisecond), x.Backend().Name())
	return nil
}

func probePoint(cmd *cobra.Command, args []string) error {
	re, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid real part: %w", err)
	}
	im, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid imaginary part: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	e, err := expr.Compile(cfg.Formula)
	if err != nil {
		return err
	}
	k := kernel.Generate(e, cfg.Niter, cfg.KernelOptions())

	// a single pixel centred on the point maps back to it exactly
	w := complex(re, im)
	vp := plane.Viewport{Center: w, Scale: 1, Width: 1, Height: 1}
	report := probe.Inspect(k, vp, params, 0.5, 0.5)

	fmt.Printf("f(z, c) = %s\n", e)
	fmt.Println(report)

	orbit := analysis.Finite(report.Orbit)
	if len(orbit) > 1 {
		fmt.Println()
		fmt.Println(analysis.PlotOrbit(orbit, plotWidth, plotHeight, "|z_n|"))
	}
	if spectrum {
		if plot := analysis.PlotSpectrum(orbit, plotWidth, plotHeight); plot != "" {
			fmt.Println()
			fmt.Println(plot)
		}
	}
	if period, ok := analysis.DominantPeriod(orbit); ok {
		fmt.Printf("period:   %d\n", period)
	}
	if params.Mode != dynamo.ModeDomain {
		lambda := analysis.LyapunovExponent(k, w, params, 0)
		if !math.IsNaN(lambda) {
			fmt.Printf("lyapunov: %.4f\n", lambda)
		}
	}

	if svgPath != "" {
		svg := export.OrbitSVG(append([]complex128{w}, report.Orbit...), 600, 600, "#00ff88")
		if svg == "" {
			return fmt.Errorf("orbit of %s leaves the plane at once, nothing to draw", probe.FormatComplex(w))
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", svgPath, err)
		}
	}
	if saveAs != "" {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		snap := *cfg
		snap.CenterRe, snap.CenterIm = re, im
		id, err := st.Save(saveAs, &snap, w, report.Orbit)
		if err != nil {
			return err
		}
		fmt.Printf("saved:    %s\n", id)
	}
	return nil
}

func compileFormula(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := expr.Compile(args[0])
	if err != nil {
		return err
	}
	k := kernel.Generate(e, cfg.Niter, cfg.KernelOptions())

	switch target {
	case "ast":
		fmt.Println(e)
	case "bytecode":
		fmt.Print(k.Program())
	case "glsl":
		fmt.Print(k.GLSL())
	case "wgsl":
		fmt.Print(k.WGSL())
	default:
		return fmt.Errorf("unknown target: %s (available: ast, bytecode, glsl, wgsl)", target)
	}

	if spirvPath != "" {
		spv, err := k.SPIRV()
		if err != nil {
			return err
		}
		if err := os.WriteFile(spirvPath, spv, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", spirvPath, err)
		}
		dynamo.Logger().Info("wrote spir-v", "path", spirvPath, "bytes", len(spv))
	}
	return nil
}

func benchFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frames < 1 {
		frames = 1
	}

	fmt.Printf("benchmarking %s at %dx%d\n\n", cfg.Formula, cfg.Width, cfg.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBSAMPLE\tFRAMES\tTIME/FRAME\tFRAMES/SEC\tINTERIOR")

	for n := 1; n <= dynamo.MaxSubsample; n++ {
		run := *cfg
		run.Subsample = n
		x, err := newExplorer(&run, render.NewMemorySurface())
		if err != nil {
			return err
		}
		per, fps, err := timeFrames(cmd.Context(), x, frames)
		interior := x.Pipeline().InteriorFraction()
		x.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%dx%d\t%d\t%s\t%.1f\t%.1f%%\n", n, n, frames, per, fps, 100*interior)
	}
	return w.Flush()
}

// timeFrames draws n frames, panning one pixel between them so none is
// served from the cache.
func timeFrames(ctx context.Context, x *explorer.Explorer, n int) (time.Duration, float64, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if i > 0 {
			x.Pan(1, 0)
		}
		if err := x.Draw(ctx); err != nil {
			return 0, 0, err
		}
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return 0, 0, nil
	}
	return (elapsed / time.Duration(n)).Round(time.Microsecond), float64(n) / elapsed.Seconds(), nil
}

func plotBifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := expr.Compile(cfg.Formula)
	if err != nil {
		return err
	}
	k := kernel.Generate(e, transient+record, cfg.KernelOptions())

	points := analysis.BifurcationDiagram(k, 0, complex(fromC, 0), complex(toC, 0), steps, transient, record)
	escaped := 0
	for _, p := range points {
		if p.Values == nil {
			escaped++
		}
	}

	fmt.Printf("f(z, c) = %s  c in [%g, %g]\n", e, fromC, toC)
	fmt.Println(analysis.PortraitASCII(analysis.BifurcationSamples(points), bifWidth, bifHeight))
	fmt.Printf("%d of %d parameters escaped\n", escaped, len(points))

	if svgPath != "" {
		svg := export.ScatterSVG(analysis.BifurcationSamples(points), 1200, 800, "#ff66cc")
		if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", svgPath, err)
		}
	}
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tour, err := automation.LoadTour(args[0])
	if err != nil {
		return err
	}

	start := time.Now()
	paths, err := automation.RunTour(cmd.Context(), tour, cfg, outDir)
	if err != nil {
		return err
	}
	fmt.Printf("%s: wrote %d frames to %s in %s\n", tour.Name, len(paths), outDir,
		time.Since(start).Round(time.Millisecond))
	return nil
}

func estimateArea(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	e, err := expr.Compile(cfg.Formula)
	if err != nil {
		return err
	}
	k := kernel.Generate(e, cfg.Niter, cfg.KernelOptions())

	res, err := automation.EstimateArea(cmd.Context(), k, cfg.Viewport(), params,
		automation.AreaConfig{Samples: samples, Seed: seed})
	if err != nil {
		return err
	}
	fmt.Printf("f(z, c) = %s  %s  niter %d\n", e, params.Mode, cfg.Niter)
	fmt.Printf("bounded:  %d of %d\n", res.Bounded, res.Samples)
	fmt.Printf("area:     %.5f ± %.5f\n", res.Area, res.StdErr)
	return nil
}
