package config

import "sort"

// Presets groups named starting points by draw mode.
var Presets = map[string]map[string]*Config{
	"escape": {
		"mandelbrot": {
			Formula: "z^2 + c", Mode: "escape", Niter: 64,
			CenterRe: -0.5, Scale: 3.0 / 800,
		},
		"seahorse": {
			Formula: "z^2 + c", Mode: "escape", Niter: 256,
			CenterRe: -0.745, CenterIm: 0.11, Scale: 0.05 / 800,
		},
		"multibrot": {
			Formula: "z^4 + c", Mode: "escape", Niter: 64,
			Scale: 3.0 / 800,
		},
		"burning_ship": {
			Formula: "(abs(re(z)) + i*abs(im(z)))^2 + c", Mode: "escape", Niter: 96,
			CenterRe: -0.4, CenterIm: -0.5, Scale: 3.5 / 800,
		},
		"tricorn": {
			Formula: "conj(z)^2 + c", Mode: "escape", Niter: 64,
			CenterRe: -0.3, Scale: 3.5 / 800,
		},
	},
	"julia": {
		"dendrite": {
			Formula: "z^2 + c", Mode: "julia", Niter: 128,
			JuliaIm: 1, Scale: 3.5 / 800,
		},
		"rabbit": {
			Formula: "z^2 + c", Mode: "julia", Niter: 128,
			JuliaRe: -0.123, JuliaIm: 0.745, Scale: 3.5 / 800,
		},
		"siegel": {
			Formula: "z^2 + c", Mode: "julia", Niter: 200,
			JuliaRe: -0.390541, JuliaIm: -0.586788, Scale: 3.5 / 800,
		},
		"exponential": {
			Formula: "c * exp(z)", Mode: "julia", Niter: 64,
			JuliaRe: 0.38, Scale: 8.0 / 800,
		},
	},
	"converge": {
		"newton3": {
			Formula: "z - (z^3 - 1) / (3*z^2)", Mode: "converge", Niter: 64,
			Scale: 4.0 / 800,
		},
		"newton_sin": {
			Formula: "z - tan(z)", Mode: "converge", Niter: 64,
			Scale: 8.0 / 800,
		},
	},
	"domain": {
		"sine": {
			Formula: "sin(z)", Mode: "domain", Niter: 1,
			Scale: 8.0 / 800,
		},
		"rational": {
			Formula: "(z^2 - 1) / (z^2 + 1)", Mode: "domain", Niter: 1,
			Scale: 4.0 / 800,
		},
	},
}

// GetPreset returns a complete configuration for a preset, or nil. Fields a
// preset leaves unset take their defaults.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	p, ok := modePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Formula = p.Formula
	cfg.Mode = p.Mode
	cfg.Niter = p.Niter
	cfg.CenterRe, cfg.CenterIm = p.CenterRe, p.CenterIm
	cfg.Scale = p.Scale
	cfg.JuliaRe, cfg.JuliaIm = p.JuliaRe, p.JuliaIm
	return cfg
}

// FindPreset looks a preset up by name across every mode.
func FindPreset(name string) *Config {
	for mode, presets := range Presets {
		if _, ok := presets[name]; ok {
			return GetPreset(mode, name)
		}
	}
	return nil
}

// ListPresets returns the sorted preset names for a mode.
func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
