// Package display runs the viewer in an ebiten window: input polling, the
// fixed-step simulation and drawing the rendered polygons.
package display

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/andrerochasouza/view3d/config"
	"github.com/andrerochasouza/view3d/physics"
	"github.com/andrerochasouza/view3d/player"
	"github.com/andrerochasouza/view3d/render"
	"github.com/andrerochasouza/view3d/world"
)

var background = color.RGBA{A: 255}

// Game implements ebiten.Game.
type Game struct {
	world    *world.World
	renderer *render.Renderer
	player   *player.Controller
	engine   *physics.Engine

	input   *Input
	surface *Surface
	fps     *FPSCounter

	outline bool
	showHUD bool
	drawn   int
}

func NewGame(cfg config.Config, w *world.World) *Game {
	log.Println("Initializing viewer...")

	r := render.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	r.FOV = cfg.Render.FOV
	r.ZNear = cfg.Render.ZNear
	r.Shade = cfg.Render.Shade
	r.ClipToScreen = cfg.Render.ClipToScreen

	e := physics.NewEngine()
	e.Gravity = cfg.Gravity()
	e.Restitution = cfg.Physics.Restitution

	settings := cfg.PlayerSettings()
	p := player.New(cfg.Start(), settings, w.Colliders())
	if settings.Mode == player.ModeImpulse {
		e.AddBody(p.Body())
		for _, b := range w.StaticBodies() {
			e.AddBody(b)
		}
	}

	log.Printf("Player mode %s at %v", settings.Mode, p.Position())

	return &Game{
		world:    w,
		renderer: r,
		player:   p,
		engine:   e,
		input:    NewInput(cfg.Window.CaptureMouse),
		surface:  NewSurface(),
		fps:      NewFPSCounter(),
		outline:  cfg.Render.Outline,
		showHUD:  cfg.Window.ShowHUD,
	}
}

func (g *Game) Update() error {
	if err := g.input.Update(); err != nil {
		return err
	}
	dx, dy := g.input.MouseDelta()
	g.step(g.input.Intents(), dx, dy, 1/float64(ebiten.TPS()))
	return nil
}

// step runs one tick: look, move, then let physics resolve the move.
func (g *Game) step(in player.Intents, dx, dy, dt float64) {
	if dx != 0 || dy != 0 {
		g.player.Rotate(dx, dy)
	}
	g.player.Tick(in, dt)
	if g.player.Mode() == player.ModeImpulse {
		g.player.Observe(g.engine.Step(dt))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.fps.Tick()
	screen.Fill(background)

	cmds := g.renderer.Render(g.world.Tree(), g.player.View())
	g.drawn = len(cmds)

	g.surface.Begin(screen)
	render.Draw(g.surface, cmds, g.outline)
	g.surface.Flush()

	if g.showHUD {
		ebitenutil.DebugPrint(screen, g.hud())
	}
}

func (g *Game) hud() string {
	pos := g.player.Position()
	dir := g.player.Direction()
	return fmt.Sprintf("FPS: %0.2f TPS: %0.2f\nPosition: (%.2f, %.2f, %.2f)\nDirection: (%.2f, %.2f, %.2f)\nPolygons: %d/%d grounded: %v",
		g.fps.FPS(), ebiten.ActualTPS(),
		pos.X, pos.Y, pos.Z,
		dir.X, dir.Y, dir.Z,
		g.drawn, len(g.world.Polygons()), g.player.Grounded())
}

// Layout follows the window size so the projection keeps the window's
// aspect.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.renderer.Width || outsideHeight != g.renderer.Height {
		g.renderer.SetScreenSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
