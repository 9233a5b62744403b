// Package gui is the raylib window around an explorer.
package gui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/zplane/internal/audio"
	"github.com/san-kum/zplane/internal/compute"
	_ "github.com/san-kum/zplane/internal/compute/glcompute"
	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/explorer"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/probe"
	"github.com/san-kum/zplane/internal/render"
	"github.com/san-kum/zplane/internal/storage"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 170)
	ColError   = rl.NewColor(230, 80, 80, 255)
	ColOrbit   = rl.NewColor(255, 220, 120, 220)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Options are window settings that are not part of the view config.
type Options struct {
	Audio     bool
	Bookmarks *storage.Store
}

type App struct {
	X      *explorer.Explorer
	Cfg    *config.Config
	Font   rl.Font
	Audio  *audio.Voice
	Marks  *storage.Store
	ctx    context.Context
	screen *textureSurface

	Editing   bool
	Input     []rune
	Status    string
	StatusErr bool
	ShowOrbit bool
	ShowHUD   bool

	mouseX, mouseY float64
	pressed        bool
	quit           bool

	// report is the point under the mouse, refreshed once per frame.
	report *probe.Report
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "zplane")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

// NewApp builds the explorer. It needs an open window because GPU backends
// use the window's graphics context.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	backend, err := compute.ByName(cfg.Backend, true)
	if err != nil {
		dynamo.Logger().Warn("falling back to cpu backend", "requested", cfg.Backend, "err", err)
		backend = compute.NewCPUBackend()
	}

	screen := &textureSurface{}
	app := &App{
		Cfg:       cfg,
		Marks:     opts.Bookmarks,
		Font:      loadFont(),
		ctx:       ctx,
		screen:    screen,
		ShowOrbit: true,
		ShowHUD:   true,
	}
	app.X = explorer.New(screen,
		explorer.WithBackend(backend),
		explorer.WithViewport(cfg.Viewport()),
		explorer.WithNiter(cfg.Niter),
		explorer.WithKernelOptions(cfg.KernelOptions()),
		explorer.WithParams(params),
		explorer.WithAsyncCompile(true),
	)
	if err := app.X.SetFunction(cfg.Formula); err != nil {
		app.setStatus(err.Error(), true)
	}

	if opts.Audio {
		voice := audio.NewVoice()
		if err := voice.Start(); err != nil {
			dynamo.Logger().Warn("audio disabled", "err", err)
		} else {
			app.Audio = voice
		}
	}
	return app, nil
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
	a.X.Close()
	a.screen.unload()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		if a.ctx.Err() != nil {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.Status, a.StatusErr = msg, isErr
}

func (a *App) Update() {
	a.X.SetResolution(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	a.updatePointer()
	if a.Editing {
		a.updateEditor()
	} else {
		a.updateKeys()
	}
	a.report = a.X.Inspect(a.mouseX, a.mouseY)
	if a.Audio != nil && a.report != nil {
		a.Audio.SetOrbit(a.report.Orbit, a.X.KernelOptions().EscapeRadius)
	}
}

func (a *App) updatePointer() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)
	moved := x != a.mouseX || y != a.mouseY
	a.mouseX, a.mouseY = x, y

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.X.OnPointerDown(x, y)
		a.pressed = true
	case a.pressed && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.X.OnPointerUp(x, y)
		a.pressed = false
	case moved:
		a.X.OnPointerMove(x, y)
	}

	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		c := a.X.Viewport().ScreenToPlane(x, y)
		a.X.SetParameterC(c)
		a.X.SetMode(dynamo.ModeJulia)
		a.setStatus("julia c = "+a.X.DisplayValueAt(x, y), false)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.X.Zoom(math.Pow(a.Cfg.ZoomStep, float64(wheel)))
	}
}

func (a *App) updateKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyTab), rl.IsKeyPressed(rl.KeyEnter):
		a.Editing = true
		a.Input = []rune(a.X.Formula())
	case rl.IsKeyPressed(rl.KeyUp):
		a.X.SetNiter(a.X.Niter() * 2)
		a.setStatus(fmt.Sprintf("niter %d", a.X.Niter()), false)
	case rl.IsKeyPressed(rl.KeyDown):
		a.X.SetNiter(a.X.Niter() / 2)
		a.setStatus(fmt.Sprintf("niter %d", a.X.Niter()), false)
	case rl.IsKeyPressed(rl.KeyM):
		a.X.SetMode(a.X.Params().Mode.Next())
		a.setStatus("mode "+a.X.Params().Mode.String(), false)
	case rl.IsKeyPressed(rl.KeyS):
		a.X.SetSubsample(a.X.Params().Samples()%dynamo.MaxSubsample + 1)
		a.setStatus(fmt.Sprintf("subsample %dx%d", a.X.Params().Samples(), a.X.Params().Samples()), false)
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.X.Zoom(a.Cfg.ZoomStep)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.X.Zoom(1 / a.Cfg.ZoomStep)
	case rl.IsKeyPressed(rl.KeyR):
		a.X.Reset()
		a.setStatus("view reset", false)
	case rl.IsKeyPressed(rl.KeyO):
		a.ShowOrbit = !a.ShowOrbit
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	case rl.IsKeyPressed(rl.KeyP):
		a.saveScreenshot()
	case rl.IsKeyPressed(rl.KeyB):
		a.saveBookmark()
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	}
}

// updateEditor handles the formula line while it has focus.
func (a *App) updateEditor() {
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		if r >= 32 && r < 127 {
			a.Input = append(a.Input, r)
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace), rl.IsKeyPressedRepeat(rl.KeyBackspace):
		if len(a.Input) > 0 {
			a.Input = a.Input[:len(a.Input)-1]
		}
	case rl.IsKeyPressed(rl.KeyEscape):
		a.Editing = false
	case rl.IsKeyPressed(rl.KeyEnter):
		src := strings.TrimSpace(string(a.Input))
		if err := a.X.SetFunction(src); err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		a.Editing = false
		a.setStatus("f(z, c) = "+src, false)
	}
}

func (a *App) saveScreenshot() {
	frame := a.X.Pipeline().Frame()
	if frame == nil {
		return
	}
	path := fmt.Sprintf("zplane-%s.png", time.Now().Format("20060102-150405"))
	if err := (render.PNGSurface{Path: path}).Present(frame); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.setStatus("saved "+path, false)
}

// saveBookmark stores the current view with the orbit under the mouse.
func (a *App) saveBookmark() {
	if a.Marks == nil {
		return
	}
	if err := a.Marks.Init(); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	var point complex128
	var orbit []complex128
	if r := a.report; r != nil {
		point, orbit = r.Point, r.Orbit
	}
	id, err := a.Marks.Save(a.X.Formula(), a.X.Config(), point, orbit)
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.setStatus("bookmarked "+id, false)
}

func (a *App) Draw() {
	if err := a.X.Draw(a.ctx); err != nil {
		a.setStatus(err.Error(), true)
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.screen.draw()
	if a.ShowOrbit {
		a.drawOrbit()
	}
	if a.ShowHUD {
		a.DrawHUD()
	}
	if a.Editing {
		a.drawEditor()
	}
	rl.EndDrawing()
}

func (a *App) drawOrbit() {
	r := a.report
	if r == nil || r.Mode == dynamo.ModeDomain {
		return
	}
	vp := a.X.Viewport()
	points := make([]rl.Vector2, 0, len(r.Orbit)+1)
	for _, z := range append([]complex128{r.Point}, r.Orbit...) {
		x, y := vp.PlaneToScreen(z)
		if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > 1e5 || math.Abs(y) > 1e5 {
			break
		}
		points = append(points, rl.NewVector2(float32(x), float32(y)))
	}
	drawOrbit(points)
	drawCrosshair(float32(a.mouseX), float32(a.mouseY))
}

func (a *App) DrawHUD() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, 84, ColPanel)

	a.drawText("zplane", 16, 12, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: f(z, c) = %s", a.X.Formula()), 120, 16, 16, ColText)

	p := a.X.Params()
	vp := a.X.Viewport()
	info := fmt.Sprintf("%s  niter %d  scale %.3g  %s  %dx%d",
		p.Mode, a.X.Niter(), vp.Scale, a.X.Backend().Name(), vp.Width, vp.Height)
	if p.Mode == dynamo.ModeJulia {
		info += fmt.Sprintf("  c = %v", p.JuliaC)
	}
	a.drawText(info, 16, 42, 14, ColTextDim)

	a.drawText("z   "+a.X.DisplayValueAt(a.mouseX, a.mouseY), 16, 62, 14, ColAccent)
	a.drawText("f   "+a.X.DisplayImageAt(a.mouseX, a.mouseY), 320, 62, 14, ColAccent)
	if a.report != nil {
		a.drawText(a.report.Classification(), 640, 62, 14, ColText)
	}

	a.drawText(a.X.Pipeline().Summary(), 16, int(h)-24, 14, ColTextDim)
	if a.X.DragState() == plane.Dragging {
		a.drawText("DRAG", int(w)-60, 16, 16, ColSelect)
	}
	a.drawText("[TAB] FORMULA  [M] MODE  [UP/DOWN] NITER  [S] SUBSAMPLE  [R] RESET  [P] PNG  [Q] QUIT",
		int(w)-720, int(h)-24, 14, ColTextDim)

	if a.Status != "" {
		col := ColText
		if a.StatusErr {
			col = ColError
		}
		a.drawText(a.Status, 16, int(h)-48, 14, col)
	}
}

func (a *App) drawEditor() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	y := h/2 - 24
	rl.DrawRectangle(40, y, w-80, 48, ColPanel)
	rl.DrawRectangleLines(40, y, w-80, 48, ColAccent)
	cursor := ""
	if (time.Now().UnixMilli()/500)%2 == 0 {
		cursor = "_"
	}
	a.drawText("f(z, c) = "+string(a.Input)+cursor, 56, int(y)+14, 20, ColSelect)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
