package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/config"
	"github.com/1siamBot/dualgrid/engine/core"
	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/input"
	"github.com/1siamBot/dualgrid/engine/render"
	"github.com/1siamBot/dualgrid/engine/screen"
)

const minimapSize = 160

// Game implements ebiten.Game.
type Game struct {
	app     *app
	input   *input.State
	camera  *render.Camera
	surface *screen.Surface
	minimap *screen.Minimap

	showMinimap bool
	showHelp    bool
	stats       render.Stats
	screenW     int
	screenH     int
}

func newGame(a *app, screenW, screenH int) *Game {
	g := &Game{
		app:         a,
		input:       input.NewState(),
		camera:      render.NewCamera(screenW, screenH),
		surface:     screen.NewSurface(),
		minimap:     screen.NewMinimap(minimapSize),
		showMinimap: true,
		showHelp:    true,
		screenW:     screenW,
		screenH:     screenH,
	}
	g.camera.X, g.camera.Y = a.view.CameraX, a.view.CameraY
	g.camera.SetZoom(a.view.Zoom)
	if g.camera.X == 0 && g.camera.Y == 0 {
		mid := float64(a.grid.Width()-1) / 2
		g.camera.CenterOn(a.view.Projection(screenW, screenH), mid, mid)
	}
	a.startAssetLoad(context.Background())
	return g
}

func (g *Game) Update() error {
	dt := g.app.loop.Tick()
	g.input.Update()
	g.input.DriveCamera(g.camera, dt)

	a := g.app
	g.camera.Apply(&a.view)
	g.updateBrush()
	if g.input.IsKeyJustPressed(ebiten.KeyR) {
		a.events.Emit(core.Event{Type: core.EvtRegenerateRequested, Frame: a.loop.Frame})
	}
	if g.input.IsKeyJustPressed(ebiten.KeyM) {
		a.view.Mode = a.view.Mode.Next()
		a.events.Emit(core.Event{Type: core.EvtModeChanged, Frame: a.loop.Frame, Payload: a.view.Mode})
	}
	layerKeys := []struct {
		key    ebiten.Key
		toggle *bool
	}{
		{ebiten.Key1, &a.view.Layers.Base},
		{ebiten.Key2, &a.view.Layers.Transition},
		{ebiten.Key3, &a.view.Layers.WorldGrid},
		{ebiten.Key4, &a.view.Layers.DualGrid},
	}
	for _, lk := range layerKeys {
		if g.input.IsKeyJustPressed(lk.key) {
			*lk.toggle = !*lk.toggle
			a.events.Emit(core.Event{Type: core.EvtLayersChanged, Frame: a.loop.Frame, Payload: a.view.Layers})
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyP) {
		a.events.Emit(core.Event{Type: core.EvtExportRequested, Frame: a.loop.Frame,
			Payload: fmt.Sprintf("dualgrid-%d.png", a.seed)})
	}
	if g.input.IsKeyJustPressed(ebiten.KeyC) {
		if err := a.saveConfig(); err != nil {
			a.log.Error("config save failed", zap.Error(err))
		}
	}
	resizeKeys := []struct {
		key  ebiten.Key
		size func(int) int
	}{
		{ebiten.KeyEqual, func(n int) int { return min(n*2, config.MaxGridSize) }},
		{ebiten.KeyMinus, func(n int) int { return max(n/2, 2) }},
	}
	for _, rk := range resizeKeys {
		if g.input.IsKeyJustPressed(rk.key) {
			a.events.Emit(core.Event{Type: core.EvtResizeRequested, Frame: a.loop.Frame,
				Payload: rk.size(a.grid.Width())})
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyN) {
		g.showMinimap = !g.showMinimap
	}
	if g.input.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	a.pollAssets()
	a.events.Dispatch()
	return nil
}

// updateBrush paints with the right mouse button. One press and drag is a
// single undo step.
func (g *Game) updateBrush() {
	ed := g.app.editor
	if g.input.RightJustPressed {
		ed.BeginStroke()
	}
	if g.input.RightPressed {
		proj := g.app.view.Projection(g.screenW, g.screenH)
		cx, cy := render.CellAt(proj, float64(g.input.MouseX), float64(g.input.MouseY))
		ed.Paint(cx, cy)
	}
	if g.input.RightJustReleased {
		ed.EndStroke()
	}

	switch {
	case g.input.IsKeyJustPressed(ebiten.KeyB):
		ed.CycleBrush(1)
	case g.input.IsKeyJustPressed(ebiten.KeyBracketLeft):
		ed.SetBrushSize(ed.BrushSize - 1)
	case g.input.IsKeyJustPressed(ebiten.KeyBracketRight):
		ed.SetBrushSize(ed.BrushSize + 1)
	case g.input.IsKeyJustPressed(ebiten.KeyZ):
		ed.Undo()
	case g.input.IsKeyJustPressed(ebiten.KeyY):
		ed.Redo()
	}
}

func (g *Game) Draw(dst *ebiten.Image) {
	a := g.app
	g.camera.Apply(&a.view)
	scene := a.scene()

	g.surface.Reset(dst)
	g.stats = a.renderer.Render(g.surface, scene, a.view)
	if g.stats.Waiting {
		msg := "Loading tilesets..."
		if a.loop.State == core.StateFailed {
			msg = "Tilesets failed to load. Press M for a colored mode."
		}
		ebitenutil.DebugPrintAt(dst, msg, g.screenW/2-len(msg)*3, g.screenH/2)
	}

	proj := a.view.Projection(g.screenW, g.screenH)
	if g.showMinimap {
		g.minimap.Draw(dst, scene, proj, g.screenW, g.screenH, g.screenW-minimapSize-10, g.screenH-minimapSize-10)
	}
	g.drawHUD(dst, proj)
}

func (g *Game) drawHUD(dst *ebiten.Image, proj render.Projection) {
	a := g.app
	tx, ty, cell, inGrid := render.TerrainAt(proj, a.grid, float64(g.input.MouseX), float64(g.input.MouseY))

	var b strings.Builder
	fmt.Fprintf(&b, "Dual Grid | FPS: %.0f | Seed: %d | %s | Zoom: %.2fx\n",
		ebiten.ActualFPS(), a.seed, a.view.Mode, a.view.Zoom)
	fmt.Fprintf(&b, "Tiles: %d base, %d transition, %d missing | Brush: %s x%d\n",
		g.stats.BaseDraws, g.stats.TransitionDraws, g.stats.Misses,
		a.buckets.Name(a.editor.Brush), a.editor.BrushSize)

	sampler := dualgrid.NewSampler(a.grid)
	if inGrid {
		fmt.Fprintf(&b, "Cell: %s", a.buckets.Name(cell))
	} else {
		b.WriteString("Cell: -")
	}
	if sampler.InBounds(tx, ty) {
		info := sampler.Describe(tx, ty, a.buckets)
		fmt.Fprintf(&b, " | Tile (%d, %d) base %s", tx, ty, a.buckets.Name(info.Base))
		for _, l := range info.Layers {
			fmt.Fprintf(&b, " %s:%s", a.buckets.Name(l.Layer), l.Role)
		}
	}
	b.WriteString("\n")
	if g.showHelp {
		b.WriteString("[Drag/WASD] Pan [Wheel] Zoom [R] Regenerate [M] Mode [1-4] Layers [P] Export [C] Save config [+/-] Size [N] Minimap [H] Help\n" +
			"[RMB] Paint [B] Brush [[ ]] Size [Z/Y] Undo/Redo")
	}
	ebitenutil.DebugPrint(dst, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.camera.Resize(outsideWidth, outsideHeight)
	}
	return g.screenW, g.screenH
}
