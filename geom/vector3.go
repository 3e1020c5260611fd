package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDivideByZero is returned by Div when the scalar is zero.
var ErrDivideByZero = errors.New("geom: division by zero")

// Vector3 is an immutable 3D vector. Every operation returns a new value.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// FromVec3 converts an mgl64 vector.
func FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Vec3 converts to an mgl64 vector.
func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul scales the vector.
func (v Vector3) Mul(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Div divides every component by s. A zero scalar is an error, not an Inf.
func (v Vector3) Div(s float64) (Vector3, error) {
	if s == 0 {
		return Vector3{}, fmt.Errorf("divide %v: %w", v, ErrDivideByZero)
	}
	return Vector3{v.X / s, v.Y / s, v.Z / s}, nil
}

func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

func (v Vector3) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns the unit vector. The zero vector normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	length := v.Len()
	if length == 0 {
		return Vector3{}
	}
	return Vector3{v.X / length, v.Y / length, v.Z / length}
}

// DistanceTo is the length of v - o.
func (v Vector3) DistanceTo(o Vector3) float64 {
	return v.Sub(o).Len()
}

func (v Vector3) WithY(y float64) Vector3 {
	return Vector3{v.X, y, v.Z}
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
