// Package gui shows the flow field in a resizable raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/newsflow/internal/engine"
	"go.uber.org/zap"
)

var (
	ColHUD    = rl.NewColor(180, 180, 180, 255)
	ColHUDDim = rl.NewColor(90, 90, 90, 255)
	ColPanel  = rl.NewColor(0, 0, 0, 160)
)

type Options struct {
	FPS     int
	Title   string
	ShowHUD bool
	Logger  *zap.Logger
}

type App struct {
	eng     *engine.Engine
	target  rl.RenderTexture2D
	surf    *surface
	last    engine.FrameStats
	running bool
	showHUD bool
	log     *zap.Logger
}

func initWindow(w, h int32, title string, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens a window sized to the engine canvas and blocks until it is
// closed.
func Run(eng *engine.Engine, opts Options) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "newsflow"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	w, h := eng.Size()
	initWindow(int32(w), int32(h), opts.Title, opts.FPS)
	defer rl.CloseWindow()

	app := &App{
		eng:     eng,
		running: true,
		showHUD: opts.ShowHUD,
		log:     opts.Logger,
	}
	app.allocate(int32(w), int32(h))
	defer rl.UnloadRenderTexture(app.target)

	for !rl.WindowShouldClose() {
		if quit := app.Update(); quit {
			return
		}
		app.Draw()
	}
}

func (a *App) allocate(w, h int32) {
	a.target = rl.LoadRenderTexture(w, h)
	a.surf = &surface{width: w, height: h}
}

func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.eng.Restart()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}

	if rl.IsWindowResized() {
		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		if err := a.eng.Resize(float64(w), float64(h), a.eng.Records()); err != nil {
			a.log.Warn("resize rejected", zap.Error(err))
			return false
		}
		rl.UnloadRenderTexture(a.target)
		a.allocate(w, h)
	}
	return false
}

func (a *App) Draw() {
	if a.running {
		rl.BeginTextureMode(a.target)
		a.last = a.eng.Frame(a.surf)
		rl.EndTextureMode()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	tex := a.target.Texture
	// Render textures are stored bottom-up.
	rl.DrawTextureRec(tex, rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height)), rl.NewVector2(0, 0), rl.White)
	if a.showHUD {
		a.drawHUD()
	}
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawRectangle(16, 16, 260, 112, ColPanel)
	status := "UNFURLING"
	switch {
	case a.eng.Empty():
		status = "NO DATA"
	case !a.running:
		status = "PAUSED"
	case a.eng.Complete():
		status = "COMPLETE"
	}
	drawText("newsflow :: "+status, 28, 26, 18, ColHUD)
	drawText(fmt.Sprintf("progress %.1f / %d", a.eng.Progress(), a.eng.Scheduler().MaxSteps()), 28, 54, 14, ColHUD)
	drawText(fmt.Sprintf("curves %d  off grid %d", a.last.Curves, a.last.Truncated), 28, 74, 14, ColHUD)
	drawText(fmt.Sprintf("%d FPS  [SPACE] [R] [H] [Q]", rl.GetFPS()), 28, 98, 12, ColHUDDim)
}

func drawText(text string, x, y, size int32, c rl.Color) {
	rl.DrawTextEx(rl.GetFontDefault(), text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
}
