package physics

import (
	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/geom"
)

// Body is one of *RigidBody or *StaticBody.
type Body interface {
	Position() geom.Vector3
	Collider() collision.Collider
	IsStatic() bool
	Mass() float64

	sealed()
}

// RigidBody is a point mass with a collider that follows it.
type RigidBody struct {
	position geom.Vector3
	velocity geom.Vector3
	force    geom.Vector3
	mass     float64
	collider collision.Collider

	// Damping scales velocity once per integration step. 1 means none.
	Damping float64
}

// NewRigidBody places collider at pos. A mass of 0 makes the body static.
func NewRigidBody(pos geom.Vector3, mass float64, collider collision.Collider) *RigidBody {
	b := &RigidBody{
		position: pos,
		mass:     mass,
		collider: collider,
		Damping:  1,
	}
	b.syncCollider()
	return b
}

func (b *RigidBody) sealed() {}

func (b *RigidBody) Position() geom.Vector3       { return b.position }
func (b *RigidBody) Velocity() geom.Vector3       { return b.velocity }
func (b *RigidBody) Force() geom.Vector3          { return b.force }
func (b *RigidBody) Mass() float64                { return b.mass }
func (b *RigidBody) Collider() collision.Collider { return b.collider }

func (b *RigidBody) IsStatic() bool { return b.mass == 0 }

// InverseMass is 0 for static bodies.
func (b *RigidBody) InverseMass() float64 {
	if b.mass == 0 {
		return 0
	}
	return 1 / b.mass
}

func (b *RigidBody) SetPosition(p geom.Vector3) {
	b.position = p
	b.syncCollider()
}

func (b *RigidBody) SetVelocity(v geom.Vector3) {
	b.velocity = v
}

// ApplyForce accumulates f until the next integration step.
func (b *RigidBody) ApplyForce(f geom.Vector3) {
	if b.IsStatic() {
		return
	}
	b.force = b.force.Add(f)
}

// ApplyImpulse changes velocity immediately by j/m.
func (b *RigidBody) ApplyImpulse(j geom.Vector3) {
	b.velocity = b.velocity.Add(j.Mul(b.InverseMass()))
}

// Integrate advances the body by dt with semi-implicit Euler and clears the
// accumulated force.
func (b *RigidBody) Integrate(dt float64) {
	if b.mass != 0 {
		accel := b.force.Mul(1 / b.mass)
		b.velocity = b.velocity.Add(accel.Mul(dt))
	}
	b.velocity = b.velocity.Mul(b.Damping)
	b.position = b.position.Add(b.velocity.Mul(dt))
	b.syncCollider()
	b.force = geom.Vector3{}
}

func (b *RigidBody) syncCollider() {
	if b.collider != nil {
		b.collider.MoveTo(b.position)
	}
}

// StaticBody never moves.
type StaticBody struct {
	collider collision.Collider
}

func NewStaticBody(collider collision.Collider) *StaticBody {
	return &StaticBody{collider: collider}
}

func (s *StaticBody) sealed() {}

func (s *StaticBody) Position() geom.Vector3 {
	if s.collider == nil {
		return geom.Vector3{}
	}
	return s.collider.Position()
}

func (s *StaticBody) Collider() collision.Collider { return s.collider }
func (s *StaticBody) IsStatic() bool               { return true }
func (s *StaticBody) Mass() float64                { return 0 }
