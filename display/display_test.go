package display

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/config"
	"github.com/andrerochasouza/view3d/geom"
	"github.com/andrerochasouza/view3d/player"
	"github.com/andrerochasouza/view3d/world"
)

func TestAppendConvexPolygon(t *testing.T) {
	xs := []float32{0, 10, 10, 0, -5}
	ys := []float32{0, 0, 10, 10, 5}
	clr := color.RGBA{R: 255, G: 0, B: 51, A: 255}

	// an earlier polygon already in the batch
	vertices := make([]ebiten.Vertex, 3)
	indices := []uint16{0, 1, 2}

	vertices, indices = appendConvexPolygon(vertices, indices, xs, ys, clr)

	if len(vertices) != 8 {
		t.Fatalf("got %d vertices, want 8", len(vertices))
	}
	wantIndices := []uint16{0, 1, 2, 3, 4, 5, 3, 5, 6, 3, 6, 7}
	if len(indices) != len(wantIndices) {
		t.Fatalf("got %d indices, want %d", len(indices), len(wantIndices))
	}
	for i := range wantIndices {
		if indices[i] != wantIndices[i] {
			t.Errorf("indices[%d] = %d, want %d", i, indices[i], wantIndices[i])
		}
	}

	v := vertices[5]
	if v.DstX != 10 || v.DstY != 10 || v.SrcX != 1 || v.SrcY != 1 {
		t.Errorf("vertex = %+v", v)
	}
	if v.ColorR != 1 || v.ColorG != 0 || math.Abs(float64(v.ColorB)-0.2) > 1e-6 || v.ColorA != 1 {
		t.Errorf("vertex colour = (%v, %v, %v, %v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestSurfaceSkipsDegeneratePolygons(t *testing.T) {
	s := NewSurface()
	s.FillPolygon([]float32{0, 1}, []float32{0, 1}, color.RGBA{A: 255})
	s.StrokePolygon([]float32{0}, []float32{0}, 1, color.RGBA{A: 255})
	if len(s.vertices) != 0 || len(s.indices) != 0 {
		t.Errorf("batch holds %d vertices for degenerate input", len(s.vertices))
	}

	s.FillPolygon([]float32{0, 1, 1}, []float32{0, 0, 1}, color.RGBA{A: 255})
	if len(s.indices) != 3 {
		t.Errorf("triangle produced %d indices, want 3", len(s.indices))
	}

	// no destination yet, so flushing only clears
	s.Flush()
	if len(s.vertices) != 0 {
		t.Error("Flush() kept vertices")
	}
}

func TestIntents(t *testing.T) {
	testCases := []struct {
		name     string
		keys     []ebiten.Key
		expected player.Intents
	}{
		{"Nothing", nil, player.Intents{}},
		{"WASD", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, player.Intents{Forward: true, Right: true}},
		{"Arrows", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowLeft}, player.Intents{Backward: true, Left: true}},
		{"Run", []ebiten.Key{ebiten.KeyW, ebiten.KeyShiftRight}, player.Intents{Forward: true, Running: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, p := range tc.keys {
					if p == k {
						return true
					}
				}
				return false
			}
			if got := intents(pressed); got != tc.expected {
				t.Errorf("intents() = %+v, want %+v", got, tc.expected)
			}
		})
	}
}

func TestMouseTracking(t *testing.T) {
	in := NewInput(false)

	in.track(100, 100, true)
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("first sample gave (%v, %v), want no movement", dx, dy)
	}

	in.track(110, 95, true)
	if dx, dy := in.MouseDelta(); dx != 10 || dy != -5 {
		t.Errorf("MouseDelta() = (%v, %v), want (10, -5)", dx, dy)
	}

	// released, moved, pressed again: the jump while released is ignored
	in.track(300, 300, false)
	in.track(400, 400, true)
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("re-press gave (%v, %v), want no movement", dx, dy)
	}
}

func TestConsumeJump(t *testing.T) {
	in := NewInput(true)
	in.jump = true
	if !in.ConsumeJump() {
		t.Error("ConsumeJump() = false, want true")
	}
	if in.ConsumeJump() {
		t.Error("jump was not cleared")
	}
}

func TestFPSCounter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	c := &FPSCounter{now: func() time.Time { return now }}

	c.Tick()
	if c.FPS() != 0 {
		t.Errorf("FPS() = %v before a full frame", c.FPS())
	}

	now = now.Add(20 * time.Millisecond)
	c.Tick()
	if math.Abs(c.FPS()-50) > 1e-9 || math.Abs(c.Delta()-0.02) > 1e-12 {
		t.Errorf("FPS() = %v, Delta() = %v, want 50 and 0.02", c.FPS(), c.Delta())
	}
}

func floorWorld(t *testing.T) *world.World {
	t.Helper()
	quad, err := geom.NewPolygon([]geom.Vector3{
		{X: -10, Z: 10}, {X: 10, Z: 10}, {X: 10, Z: -10}, {X: -10, Z: -10},
	}, geom.LightGray, false, "Floor")
	if err != nil {
		t.Fatal(err)
	}
	floor := collision.Object{Name: "Floor", Min: geom.Vector3{X: -10, Y: -1, Z: -10}, Max: geom.Vector3{X: 10, Z: 10}}
	return world.New([]*geom.Polygon{quad}, []collision.Object{floor})
}

func TestGameStep(t *testing.T) {
	testCases := []struct {
		name string
		mode string
	}{
		{"Impulse", "impulse"},
		{"Slide", "slide"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Player.Mode = tc.mode
			cfg.Player.Start = [3]float64{0, 0.5, 0}

			g := NewGame(cfg, floorWorld(t))
			for i := 0; i < 60; i++ {
				g.step(player.Intents{}, 0, 0, 1.0/60)
			}
			if !g.player.Grounded() {
				t.Fatal("player resting on the floor is not grounded")
			}
			if y := g.player.Position().Y; y < 0.49 || y > 0.51 {
				t.Errorf("resting height = %v, want 0.5", y)
			}

			for i := 0; i < 60; i++ {
				g.step(player.Intents{Forward: true}, 0, 0, 1.0/60)
			}
			if z := g.player.Position().Z; z >= -0.1 {
				t.Errorf("walking forward left z = %v, want it to decrease", z)
			}

			g.step(player.Intents{}, 100, 0, 1.0/60)
			if g.player.Yaw() != -80 {
				t.Errorf("Yaw() = %v, want -80 after a 100 unit turn", g.player.Yaw())
			}
		})
	}
}

func TestLayoutResizesRenderer(t *testing.T) {
	g := NewGame(config.Default(), floorWorld(t))
	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("Layout() = %dx%d", w, h)
	}
	if g.renderer.Width != 1024 || g.renderer.Height != 768 {
		t.Errorf("renderer is %dx%d, want 1024x768", g.renderer.Width, g.renderer.Height)
	}
}
