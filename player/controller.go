package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/geom"
	"github.com/andrerochasouza/view3d/physics"
	"github.com/andrerochasouza/view3d/render"
)

const (
	maxPitch   = 89.0
	initialYaw = -90.0 // looking down -Z
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Intents is one tick's worth of input.
type Intents struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Running  bool
	Jump     bool
}

// Controller is a first-person actor: an orientation plus one of two
// movement strategies.
type Controller struct {
	settings Settings

	yaw, pitch float64 // degrees
	direction  geom.Vector3
	right      geom.Vector3
	up         geom.Vector3

	grounded bool

	// ModeImpulse
	body *physics.RigidBody

	// ModeSlide
	slider           *collision.Slider
	position         geom.Vector3
	verticalVelocity float64
}

// New creates a controller at start. obstacles are only used in slide mode.
func New(start geom.Vector3, s Settings, obstacles []collision.Collider) *Controller {
	c := &Controller{
		settings: s,
		yaw:      initialYaw,
	}

	switch s.Mode {
	case ModeSlide:
		c.position = start
		c.slider = &collision.Slider{Radius: s.Radius, Obstacles: obstacles}
	default:
		c.body = physics.NewRigidBody(start, s.Mass, collision.NewSphere(start, s.Radius))
		c.body.Damping = s.Damping
	}

	c.updateVectors()
	return c
}

func (c *Controller) Mode() Mode { return c.settings.Mode }

// Body is the rigid body to register with the physics engine. It is nil in
// slide mode.
func (c *Controller) Body() *physics.RigidBody { return c.body }

func (c *Controller) Position() geom.Vector3 {
	if c.body != nil {
		return c.body.Position()
	}
	return c.position
}

// SetPosition teleports the controller and stops any vertical motion.
func (c *Controller) SetPosition(p geom.Vector3) {
	if c.body != nil {
		c.body.SetPosition(p)
		c.body.SetVelocity(geom.Vector3{})
		return
	}
	c.position = p
	c.verticalVelocity = 0
}

func (c *Controller) Direction() geom.Vector3 { return c.direction }
func (c *Controller) Right() geom.Vector3     { return c.right }
func (c *Controller) Up() geom.Vector3        { return c.up }
func (c *Controller) Yaw() float64            { return c.yaw }
func (c *Controller) Pitch() float64          { return c.pitch }
func (c *Controller) Grounded() bool          { return c.grounded }

// Velocity is the body velocity in impulse mode, and the vertical velocity
// alone in slide mode.
func (c *Controller) Velocity() geom.Vector3 {
	if c.body != nil {
		return c.body.Velocity()
	}
	return geom.Vector3{Y: c.verticalVelocity}
}

func (c *Controller) View() render.View {
	return render.View{
		Position:  c.Position(),
		Right:     c.right,
		Up:        c.up,
		Direction: c.direction,
	}
}

// Rotate applies a mouse delta. Pitch is clamped to ±89°.
func (c *Controller) Rotate(dx, dy float64) {
	c.yaw += dx * c.settings.Sensitivity
	c.pitch -= dy * c.settings.Sensitivity
	c.pitch = mgl64.Clamp(c.pitch, -maxPitch, maxPitch)
	c.updateVectors()
}

func (c *Controller) updateVectors() {
	yaw := mgl64.DegToRad(c.yaw)
	pitch := mgl64.DegToRad(c.pitch)

	dir := mgl64.Vec3{
		math.Cos(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw) * math.Cos(pitch),
	}.Normalize()
	right := dir.Cross(worldUp).Normalize()
	up := right.Cross(dir).Normalize()

	c.direction = geom.FromVec3(dir)
	c.right = geom.FromVec3(right)
	c.up = geom.FromVec3(up)
}

// wish is the normalized horizontal movement requested by in.
func (c *Controller) wish(in Intents) geom.Vector3 {
	forward := c.direction.WithY(0).Normalize()
	right := c.right.WithY(0).Normalize()

	var m geom.Vector3
	if in.Forward {
		m = m.Add(forward)
	}
	if in.Backward {
		m = m.Sub(forward)
	}
	if in.Left {
		m = m.Sub(right)
	}
	if in.Right {
		m = m.Add(right)
	}
	return m.Normalize()
}

func (c *Controller) speedMultiplier(in Intents) float64 {
	if in.Running {
		return c.settings.RunMultiplier
	}
	return 1
}

// Tick turns intents into movement. In impulse mode this only queues forces
// and impulses on the body; the engine step that follows moves it and
// Observe then updates the grounded state.
func (c *Controller) Tick(in Intents, dt float64) {
	switch c.settings.Mode {
	case ModeSlide:
		c.tickSlide(in, dt)
	default:
		c.tickImpulse(in)
	}
}

// tickImpulse pushes only while the speed along the wished direction is
// below WalkSpeed times the run multiplier.
func (c *Controller) tickImpulse(in Intents) {
	mult := c.speedMultiplier(in)
	if m := c.wish(in); !m.IsZero() && c.body.Velocity().Dot(m) < c.settings.WalkSpeed*mult {
		c.body.ApplyForce(m.Mul(c.settings.MoveForce * mult))
	}

	if in.Jump && c.grounded {
		c.body.ApplyImpulse(geom.Vector3{Y: c.settings.JumpForce})
		c.grounded = false
	}
}

func (c *Controller) tickSlide(in Intents, dt float64) {
	if in.Jump && c.grounded {
		c.verticalVelocity = c.settings.JumpSpeed
		c.grounded = false
	}

	// gravity pulls every tick; support cancels it below
	c.verticalVelocity -= c.settings.Gravity * dt

	if m := c.wish(in); !m.IsZero() {
		step := m.Mul(c.settings.WalkSpeed * c.speedMultiplier(in) * dt)
		c.position, _ = c.slider.Move(c.position, step)
	}

	pos, hit := c.slider.Move(c.position, geom.Vector3{Y: c.verticalVelocity * dt})
	c.position = pos
	switch {
	case !hit.Hit:
		c.grounded = false
	case hit.Normal.Y > physics.GroundedThreshold:
		c.grounded = true
		c.verticalVelocity = 0
	case hit.Normal.Y < -physics.GroundedThreshold && c.verticalVelocity > 0:
		// ceiling
		c.verticalVelocity = 0
	}
}

// Observe takes the grounded state from the engine step that followed Tick.
// It is a no-op in slide mode.
func (c *Controller) Observe(out physics.Outcome) {
	if c.body == nil {
		return
	}
	c.grounded = out.Grounded(c.body, physics.GroundedThreshold)
}
