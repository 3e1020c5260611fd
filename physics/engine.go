package physics

import (
	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/geom"
)

const (
	// GroundedThreshold is the minimum normal.Y of a supporting contact.
	GroundedThreshold = 0.7

	DefaultRestitution = 0.0
)

// DefaultGravity is 9.81 m/s² downwards.
var DefaultGravity = geom.Vector3{Y: -9.81}

// Contact is one resolved dynamic/static collision. Info is oriented so the
// normal points toward Body.
type Contact struct {
	Body  *RigidBody
	Other Body
	Info  collision.Info
}

// Outcome lists every contact resolved during a tick.
type Outcome struct {
	Contacts []Contact
}

// Grounded reports whether body rests on a surface whose normal has a
// vertical component above threshold.
func (o Outcome) Grounded(body *RigidBody, threshold float64) bool {
	for _, c := range o.Contacts {
		if c.Body == body && c.Info.Normal.Y > threshold {
			return true
		}
	}
	return false
}

// For returns the contacts involving body.
func (o Outcome) For(body *RigidBody) []Contact {
	var out []Contact
	for _, c := range o.Contacts {
		if c.Body == body {
			out = append(out, c)
		}
	}
	return out
}

// Tick advances bodies by dt: gravity, integration, then one pairwise
// collision pass. Pairs of dynamic bodies are ignored.
func Tick(bodies []Body, gravity geom.Vector3, dt, restitution float64) Outcome {
	for _, b := range bodies {
		if rb, ok := b.(*RigidBody); ok && !rb.IsStatic() {
			rb.ApplyForce(gravity.Mul(rb.Mass()))
		}
	}

	for _, b := range bodies {
		if rb, ok := b.(*RigidBody); ok {
			rb.Integrate(dt)
		}
	}

	var out Outcome
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Collider() == nil || b.Collider() == nil {
				continue
			}
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			info := collision.Check(a.Collider(), b.Collider())
			if !info.Hit {
				continue
			}
			if c, ok := resolve(a, b, info, restitution); ok {
				out.Contacts = append(out.Contacts, c)
			}
		}
	}
	return out
}

func resolve(a, b Body, info collision.Info, restitution float64) (Contact, bool) {
	var dynamic *RigidBody
	var other Body

	switch {
	case !a.IsStatic() && b.IsStatic():
		dynamic, other = a.(*RigidBody), b
	case a.IsStatic() && !b.IsStatic():
		dynamic, other = b.(*RigidBody), a
		info = info.Negate()
	default:
		return Contact{}, false
	}

	dynamic.SetPosition(dynamic.Position().Add(info.Penetration))

	vn := dynamic.Velocity().Dot(info.Normal)
	if vn < 0 {
		invMass := dynamic.InverseMass()
		impulse := info.Normal.Mul(-(1 + restitution) * vn / invMass)
		dynamic.SetVelocity(dynamic.Velocity().Add(impulse.Mul(invMass)))
	}

	return Contact{Body: dynamic, Other: other, Info: info}, true
}

// Engine owns nothing: it keeps references to bodies that are also held
// elsewhere.
type Engine struct {
	bodies []Body

	Gravity     geom.Vector3
	Restitution float64
}

func NewEngine() *Engine {
	return &Engine{
		Gravity:     DefaultGravity,
		Restitution: DefaultRestitution,
	}
}

func (e *Engine) AddBody(b Body) {
	e.bodies = append(e.bodies, b)
}

// RemoveBody drops the first reference to b, if any.
func (e *Engine) RemoveBody(b Body) {
	for i, existing := range e.bodies {
		if existing == b {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

func (e *Engine) Bodies() []Body {
	return e.bodies
}

// Step runs one fixed tick over the registered bodies.
func (e *Engine) Step(dt float64) Outcome {
	return Tick(e.bodies, e.Gravity, dt, e.Restitution)
}
