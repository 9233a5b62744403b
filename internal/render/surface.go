package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg"
)

// Surface is the destination a frame is presented to.
type Surface interface {
	Present(frame *gg.Pixmap) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(frame *gg.Pixmap) error

func (f SurfaceFunc) Present(frame *gg.Pixmap) error { return f(frame) }

// MemorySurface keeps a copy of the last presented frame.
type MemorySurface struct {
	mu       sync.Mutex
	width    int
	height   int
	pixels   []byte
	presents int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (m *MemorySurface) Present(frame *gg.Pixmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = frame.Width(), frame.Height()
	m.pixels = append(m.pixels[:0], frame.Data()...)
	m.presents++
	return nil
}

// Pixels returns a copy of the last frame's RGBA bytes.
func (m *MemorySurface) Pixels() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.pixels...)
}

// Size returns the dimensions of the last frame.
func (m *MemorySurface) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Presents counts calls to Present.
func (m *MemorySurface) Presents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presents
}

// PNGSurface writes every presented frame to Path.
type PNGSurface struct {
	Path string
}

func (s PNGSurface) Present(frame *gg.Pixmap) error {
	if err := frame.SavePNG(s.Path); err != nil {
		return fmt.Errorf("render: failed to write %s: %w", s.Path, err)
	}
	return nil
}
