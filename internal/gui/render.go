package gui

import (
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"
)

// textureSurface uploads presented frames into a raylib texture. It must
// be used on the goroutine that owns the window.
type textureSurface struct {
	tex    rl.Texture2D
	width  int
	height int
	loaded bool
}

func (s *textureSurface) Present(frame *gg.Pixmap) error {
	w, h := frame.Width(), frame.Height()
	if !s.loaded || w != s.width || h != s.height {
		s.unload()
		img := rl.GenImageColor(w, h, rl.Black)
		s.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		s.width, s.height, s.loaded = w, h, true
	}
	data := frame.Data()
	if len(data) == 0 {
		return nil
	}
	pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(&data[0])), len(data)/4)
	rl.UpdateTexture(s.tex, pixels)
	return nil
}

func (s *textureSurface) draw() {
	if s.loaded {
		rl.DrawTexture(s.tex, 0, 0, rl.White)
	}
}

func (s *textureSurface) unload() {
	if s.loaded {
		rl.UnloadTexture(s.tex)
		s.loaded = false
	}
}

// drawCrosshair marks the cursor when it is over the window.
func drawCrosshair(x, y float32) {
	const arm = 6
	rl.DrawLineV(rl.NewVector2(x-arm, y), rl.NewVector2(x+arm, y), ColAccent)
	rl.DrawLineV(rl.NewVector2(x, y-arm), rl.NewVector2(x, y+arm), ColAccent)
}

// drawOrbit connects the iterates of the point under the cursor.
func drawOrbit(points []rl.Vector2) {
	if len(points) < 2 {
		return
	}
	rl.DrawLineStrip(points, ColOrbit)
	for _, p := range points {
		rl.DrawCircleV(p, 2, ColOrbit)
	}
}
