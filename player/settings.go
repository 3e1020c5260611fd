package player

import (
	"fmt"
	"strings"
)

// Mode selects how the controller responds to collisions.
type Mode int

const (
	// ModeImpulse drives a physics.RigidBody that the engine resolves.
	ModeImpulse Mode = iota
	// ModeSlide moves through a collision.Slider without mass or impulses.
	ModeSlide
)

func (m Mode) String() string {
	switch m {
	case ModeImpulse:
		return "impulse"
	case ModeSlide:
		return "slide"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "impulse" or "slide", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "impulse", "":
		return ModeImpulse, nil
	case "slide":
		return ModeSlide, nil
	}
	return ModeImpulse, fmt.Errorf("unknown player mode %q", s)
}

type Settings struct {
	Mode Mode

	// Sensitivity is degrees of rotation per unit of mouse movement.
	Sensitivity float64
	Radius      float64

	// impulse mode
	Mass      float64
	Damping   float64
	MoveForce float64
	JumpForce float64

	// WalkSpeed is the slide mode speed and the impulse mode top speed.
	WalkSpeed float64

	// slide mode
	JumpSpeed float64
	Gravity   float64

	RunMultiplier float64
}

func DefaultSettings() Settings {
	return Settings{
		Mode:          ModeImpulse,
		Sensitivity:   0.1,
		Radius:        0.5,
		Mass:          70,
		Damping:       0.98,
		MoveForce:     1000,
		JumpForce:     350,
		WalkSpeed:     3,
		JumpSpeed:     5,
		Gravity:       9.81,
		RunMultiplier: 1.5,
	}
}
