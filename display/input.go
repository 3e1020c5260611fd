package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/andrerochasouza/view3d/player"
)

var (
	forwardKeys  = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	backwardKeys = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	leftKeys     = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys    = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	runKeys      = []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}
)

// Input polls the keyboard and mouse once per tick. With a captured cursor
// every mouse movement turns the view; otherwise the view turns while the
// left button is held.
type Input struct {
	captured bool

	lastX, lastY int
	tracking     bool
	dx, dy       float64

	jump bool
}

func NewInput(captured bool) *Input {
	return &Input{captured: captured}
}

// Update reads this tick's state. Escape returns ebiten.Termination.
func (in *Input) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.jump = true
	}

	x, y := ebiten.CursorPosition()
	active := in.captured || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.track(x, y, active)
	return nil
}

// track turns cursor positions into a per-tick delta. The first position
// after (re)activation only primes the tracker.
func (in *Input) track(x, y int, active bool) {
	in.dx, in.dy = 0, 0
	if !active {
		in.tracking = false
		return
	}
	if in.tracking {
		in.dx = float64(x - in.lastX)
		in.dy = float64(y - in.lastY)
	}
	in.lastX, in.lastY = x, y
	in.tracking = true
}

// MouseDelta is the cursor movement since the previous tick.
func (in *Input) MouseDelta() (dx, dy float64) {
	return in.dx, in.dy
}

// ConsumeJump reports a pending jump press and clears it.
func (in *Input) ConsumeJump() bool {
	j := in.jump
	in.jump = false
	return j
}

// Intents samples the movement keys and consumes any pending jump.
func (in *Input) Intents() player.Intents {
	it := intents(ebiten.IsKeyPressed)
	it.Jump = in.ConsumeJump()
	return it
}

func intents(pressed func(ebiten.Key) bool) player.Intents {
	held := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return player.Intents{
		Forward:  held(forwardKeys),
		Backward: held(backwardKeys),
		Left:     held(leftKeys),
		Right:    held(rightKeys),
		Running:  held(runKeys),
	}
}
