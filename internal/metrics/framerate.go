package metrics

import (
	"sync"
	"time"
)

// FrameRate tracks frames per second as an exponentially weighted moving
// average of frame intervals, plus how many frames were recomputed versus
// re-presented.
type FrameRate struct {
	mu       sync.Mutex
	name     string
	alpha    float64
	interval float64
	last     time.Time
	samples  int
	rendered int
	reused   int
}

// NewFrameRate returns a meter with smoothing factor alpha in (0, 1]. Out of
// range values select 0.1.
func NewFrameRate(alpha float64) *FrameRate {
	if !(alpha > 0 && alpha <= 1) {
		alpha = 0.1
	}
	return &FrameRate{name: "fps", alpha: alpha}
}

func (f *FrameRate) Name() string { return f.name }

// Observe records a frame presented at now.
func (f *FrameRate) Observe(now time.Time, rendered bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rendered {
		f.rendered++
	} else {
		f.reused++
	}
	if !f.last.IsZero() {
		dt := now.Sub(f.last).Seconds()
		if dt > 0 {
			if f.samples == 0 {
				f.interval = dt
			} else {
				f.interval += f.alpha * (dt - f.interval)
			}
			f.samples++
		}
	}
	f.last = now
}

// Value returns the smoothed frame rate, or 0 before two frames were seen.
func (f *FrameRate) Value() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.samples == 0 || f.interval <= 0 {
		return 0
	}
	return 1 / f.interval
}

// Counts returns how many frames were recomputed and how many re-presented.
func (f *FrameRate) Counts() (rendered, reused int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rendered, f.reused
}

func (f *FrameRate) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = 0
	f.last = time.Time{}
	f.samples = 0
	f.rendered = 0
	f.reused = 0
}
