package dynamo

import (
	"fmt"
	"strings"
)

const (
	DefaultNiter        = 64
	DefaultEscapeRadius = 2.0
	DefaultTolerance    = 1e-6
	MaxSubsample        = 4
)

type Mode int

const (
	ModeEscape Mode = iota
	ModeJulia
	ModeConverge
	ModeDomain
)

var Modes = []Mode{ModeEscape, ModeJulia, ModeConverge, ModeDomain}

var modeNames = map[Mode]string{
	ModeEscape:   "escape",
	ModeJulia:    "julia",
	ModeConverge: "converge",
	ModeDomain:   "domain",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Next cycles through Modes in order.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeEscape
}

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeEscape, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Params are the per-frame inputs shared by every backend. Changing them
// invalidates the frame but never the kernel.
type Params struct {
	Mode      Mode
	JuliaC    complex128
	Subsample int
}

func DefaultParams() Params {
	return Params{Mode: ModeEscape, Subsample: 1}
}

// Samples returns the per-axis subsample count clamped to [1, MaxSubsample].
func (p Params) Samples() int {
	switch {
	case p.Subsample < 1:
		return 1
	case p.Subsample > MaxSubsample:
		return MaxSubsample
	}
	return p.Subsample
}

// Start returns the initial iterate and the constant for a pixel at plane
// coordinate w.
func (p Params) Start(w complex128) (z0, c complex128) {
	if p.Mode == ModeJulia {
		return w, p.JuliaC
	}
	return w, w
}

// Sample is the outcome of iterating one point. Step is 1-based and only
// meaningful when Tripped is set.
type Sample struct {
	Tripped bool
	Step    int
	Z       complex128
}

// ClampNiter coerces n into the valid iteration bound range.
func ClampNiter(n int) (int, error) {
	if n < 1 {
		return 1, &RecoveredError{Op: "niter", Got: n, Used: 1, Wrapped: ErrInvalidIterationBound}
	}
	return n, nil
}
