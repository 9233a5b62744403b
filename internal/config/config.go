package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFormula  = "z^2 + c"
	DefaultZoomStep = 1.3
	DefaultBackend  = "auto"
)

type Config struct {
	Formula      string  `yaml:"formula"`
	Niter        int     `yaml:"niter"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	CenterRe     float64 `yaml:"center_re"`
	CenterIm     float64 `yaml:"center_im"`
	Scale        float64 `yaml:"scale"`
	Mode         string  `yaml:"mode"`
	JuliaRe      float64 `yaml:"julia_re"`
	JuliaIm      float64 `yaml:"julia_im"`
	EscapeRadius float64 `yaml:"escape_radius"`
	Tolerance    float64 `yaml:"tolerance"`
	Subsample    int     `yaml:"subsample"`
	ZoomStep     float64 `yaml:"zoom_step"`
	Backend      string  `yaml:"backend"`
}

func DefaultConfig() *Config {
	return &Config{
		Formula:      DefaultFormula,
		Niter:        dynamo.DefaultNiter,
		Width:        plane.DefaultWidth,
		Height:       plane.DefaultHeight,
		Scale:        plane.DefaultScale,
		Mode:         dynamo.ModeEscape.String(),
		EscapeRadius: dynamo.DefaultEscapeRadius,
		Tolerance:    dynamo.DefaultTolerance,
		Subsample:    1,
		ZoomStep:     DefaultZoomStep,
		Backend:      DefaultBackend,
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate coerces every field into range. The returned error joins one
// *dynamo.RecoveredError per corrected field, or is nil when nothing
// changed. An unknown mode is reported but left for Params to reject.
func (c *Config) Validate() error {
	var errs []error
	fix := func(op string, got, used any, wrapped error) {
		errs = append(errs, &dynamo.RecoveredError{Op: op, Got: got, Used: used, Wrapped: wrapped})
	}

	if n, err := dynamo.ClampNiter(c.Niter); err != nil {
		errs = append(errs, err)
		c.Niter = n
	}
	if c.Width < 1 || c.Height < 1 {
		w, h := max(c.Width, 1), max(c.Height, 1)
		fix("resolution", fmt.Sprintf("%dx%d", c.Width, c.Height), fmt.Sprintf("%dx%d", w, h), dynamo.ErrInvalidResolution)
		c.Width, c.Height = w, h
	}
	if !positive(c.Scale) {
		fix("scale", c.Scale, plane.DefaultScale, errInvalidValue)
		c.Scale = plane.DefaultScale
	}
	if !positive(c.EscapeRadius) {
		fix("escape_radius", c.EscapeRadius, dynamo.DefaultEscapeRadius, errInvalidValue)
		c.EscapeRadius = dynamo.DefaultEscapeRadius
	}
	if !positive(c.Tolerance) {
		fix("tolerance", c.Tolerance, dynamo.DefaultTolerance, errInvalidValue)
		c.Tolerance = dynamo.DefaultTolerance
	}
	if c.Subsample < 1 || c.Subsample > dynamo.MaxSubsample {
		used := min(max(c.Subsample, 1), dynamo.MaxSubsample)
		fix("subsample", c.Subsample, used, errInvalidValue)
		c.Subsample = used
	}
	if !positive(c.ZoomStep) || c.ZoomStep == 1 {
		fix("zoom_step", c.ZoomStep, DefaultZoomStep, dynamo.ErrInvalidZoomFactor)
		c.ZoomStep = DefaultZoomStep
	}
	if _, err := dynamo.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	return errors.Join(errs...)
}

var errInvalidValue = errors.New("config: value must be finite and positive")

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Viewport returns the configured view.
func (c *Config) Viewport() plane.Viewport {
	return plane.Viewport{
		Center: complex(c.CenterRe, c.CenterIm),
		Scale:  c.Scale,
		Width:  c.Width,
		Height: c.Height,
	}
}

func (c *Config) Params() (dynamo.Params, error) {
	mode, err := dynamo.ParseMode(c.Mode)
	if err != nil {
		return dynamo.Params{}, err
	}
	return dynamo.Params{
		Mode:      mode,
		JuliaC:    complex(c.JuliaRe, c.JuliaIm),
		Subsample: c.Subsample,
	}, nil
}

func (c *Config) KernelOptions() kernel.Options {
	return kernel.Options{EscapeRadius: c.EscapeRadius, Tolerance: c.Tolerance}
}
