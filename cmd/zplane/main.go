package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/gui"
	"github.com/san-kum/zplane/internal/storage"
	"github.com/san-kum/zplane/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	formula    string
	niter      int
	mode       string
	juliaRe    float64
	juliaIm    float64
	backend    string
	verbose    bool
	dataDir    string
	bookmark   string
	// GUI
	withAudio bool
	// render
	output   string
	width    int
	height   int
	axes     bool
	annotate bool
	// probe
	plotWidth  int
	plotHeight int
	spectrum   bool
	saveAs     string
	svgPath    string
	// compile
	target    string
	spirvPath string
	// bench
	frames int
	// bifurcation
	fromC     float64
	toC       float64
	steps     int
	transient int
	record    int
	bifWidth  int
	bifHeight int
	// tour
	outDir string
	// area
	samples int
	seed    int64
)

// main registers the zplane commands and runs the GUI when no subcommand
// is given. It exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "zplane",
		Short:         "interactive complex dynamics explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			dynamo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVarP(&formula, "formula", "f", config.DefaultFormula, "update rule f(z, c)")
	pf.IntVarP(&niter, "niter", "n", dynamo.DefaultNiter, "iteration bound")
	pf.StringVar(&mode, "mode", "escape", "draw mode (escape, julia, converge, domain)")
	pf.Float64Var(&juliaRe, "julia-re", 0, "real part of the julia parameter")
	pf.Float64Var(&juliaIm, "julia-im", 0, "imaginary part of the julia parameter")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "compute backend (auto, cpu, opengl)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&dataDir, "data", ".zplane", "bookmark directory")
	pf.StringVar(&bookmark, "bookmark", "", "start from a saved bookmark id")

	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "play the orbit under the mouse")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "explore in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play the orbit under the mouse")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cmd.Context(), cfg)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to a png",
		Args:  cobra.NoArgs,
		RunE:  renderImage,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "zplane.png", "output file")
	renderCmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	renderCmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")
	renderCmd.Flags().BoolVar(&axes, "axes", false, "draw the axes")
	renderCmd.Flags().BoolVar(&annotate, "annotate", false, "write the formula on the image")

	probeCmd := &cobra.Command{
		Use:   "probe [re] [im]",
		Short: "iterate a single point and analyse its orbit",
		Args:  cobra.ExactArgs(2),
		RunE:  probePoint,
	}
	probeCmd.Flags().IntVar(&plotWidth, "plot-width", 60, "plot width")
	probeCmd.Flags().IntVar(&plotHeight, "plot-height", 12, "plot height")
	probeCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the power spectrum of the orbit tail")
	probeCmd.Flags().StringVar(&saveAs, "save", "", "bookmark the point and its orbit under this name")
	probeCmd.Flags().StringVar(&svgPath, "svg", "", "write the orbit as svg")

	compileCmd := &cobra.Command{
		Use:   "compile [formula]",
		Short: "show the generated kernel for a formula",
		Args:  cobra.ExactArgs(1),
		RunE:  compileFormula,
	}
	compileCmd.Flags().StringVarP(&target, "target", "t", "glsl", "output (ast, bytecode, glsl, wgsl)")
	compileCmd.Flags().StringVar(&spirvPath, "spirv", "", "also write the SPIR-V module to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame computation",
		Args:  cobra.NoArgs,
		RunE:  benchFrames,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 20, "frames per backend")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "plot attractor values along a real parameter segment",
		Args:  cobra.NoArgs,
		RunE:  plotBifurcation,
	}
	bifurcationCmd.Flags().Float64Var(&fromC, "from", -2, "segment start")
	bifurcationCmd.Flags().Float64Var(&toC, "to", 0.25, "segment end")
	bifurcationCmd.Flags().IntVar(&steps, "steps", 120, "parameters sampled")
	bifurcationCmd.Flags().IntVar(&transient, "transient", 200, "iterations discarded per parameter")
	bifurcationCmd.Flags().IntVar(&record, "record", 64, "iterations recorded per parameter")
	bifurcationCmd.Flags().IntVar(&bifWidth, "plot-width", 80, "plot width")
	bifurcationCmd.Flags().IntVar(&bifHeight, "plot-height", 24, "plot height")
	bifurcationCmd.Flags().StringVar(&svgPath, "svg", "", "write the diagram as svg")

	tourCmd := &cobra.Command{
		Use:   "tour [script.yaml]",
		Short: "render a scripted zoom tour to png frames",
		Args:  cobra.ExactArgs(1),
		RunE:  runTour,
	}
	tourCmd.Flags().StringVarP(&outDir, "output", "o", "frames", "output directory")

	areaCmd := &cobra.Command{
		Use:   "area",
		Short: "estimate the area of the bounded set in view",
		Args:  cobra.NoArgs,
		RunE:  estimateArea,
	}
	areaCmd.Flags().IntVar(&samples, "samples", 200000, "random points")
	areaCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "list saved bookmarks",
		Args:  cobra.NoArgs,
		RunE:  listBookmarks,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, renderCmd, probeCmd, compileCmd, presetsCmd, benchCmd, bifurcationCmd, tourCmd, areaCmd, bookmarksCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "zplane:", err)
		os.Exit(1)
	}
}

// loadConfig builds the configuration from the preset or bookmark, then
// the config file, then any flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if bookmark != "" {
		b, err := storage.New(dataDir).Load(bookmark)
		if err != nil {
			return nil, err
		}
		cfg = b.Config
	}
	if preset != "" {
		cfg = config.FindPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("formula") {
		cfg.Formula = formula
	}
	if flags.Changed("niter") {
		cfg.Niter = niter
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("julia-re") {
		cfg.JuliaRe = juliaRe
	}
	if flags.Changed("julia-im") {
		cfg.JuliaIm = juliaIm
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}

	if err := cfg.Validate(); err != nil {
		dynamo.Logger().Warn("config corrected", "err", err)
	}
	if _, err := cfg.Params(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), cfg, gui.Options{Audio: withAudio, Bookmarks: storage.New(dataDir)})
}

func listPresets(cmd *cobra.Command, args []string) error {
	modes := dynamo.Modes
	if len(args) == 1 {
		m, err := dynamo.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []dynamo.Mode{m}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tPRESET\tFORMULA")
	for _, m := range modes {
		for _, name := range config.ListPresets(m.String()) {
			p := config.GetPreset(m.String(), name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", m, name, p.Formula)
		}
	}
	return w.Flush()
}

func listBookmarks(cmd *cobra.Command, args []string) error {
	marks, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		fmt.Println("no bookmarks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODE\tFORMULA\tCENTER\tSAVED")
	for _, b := range marks {
		c := b.Config
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g%+gi\t%s\n", b.ID, b.Name, c.Mode, c.Formula,
			c.CenterRe, c.CenterIm, b.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
