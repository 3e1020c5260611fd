// Package config reads the viewer's YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrerochasouza/view3d/geom"
	"github.com/andrerochasouza/view3d/objfile"
	"github.com/andrerochasouza/view3d/player"
)

// DefaultPath is where the viewer looks for its settings, relative to the
// working directory.
const DefaultPath = "config/view3d.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Window  Window  `yaml:"window"`
	World   World   `yaml:"world"`
	Render  Render  `yaml:"render"`
	Player  Player  `yaml:"player"`
	Physics Physics `yaml:"physics"`
}

type Window struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	TPS          int    `yaml:"tps"`
	CaptureMouse bool   `yaml:"capture_mouse"`
	ShowHUD      bool   `yaml:"show_hud"`
}

type World struct {
	Map             string   `yaml:"map"`
	CollisionGroups []string `yaml:"collision_groups"`
	ReverseWinding  bool     `yaml:"reverse_winding"`
}

type Render struct {
	FOV          float64 `yaml:"fov"`
	ZNear        float64 `yaml:"znear"`
	Shade        bool    `yaml:"shade"`
	ClipToScreen bool    `yaml:"clip_to_screen"`
	Outline      bool    `yaml:"outline"`
}

type Player struct {
	Mode          string     `yaml:"mode"`
	Start         [3]float64 `yaml:"start"`
	Sensitivity   float64    `yaml:"sensitivity"`
	Radius        float64    `yaml:"radius"`
	Mass          float64    `yaml:"mass"`
	Damping       float64    `yaml:"damping"`
	MoveForce     float64    `yaml:"move_force"`
	JumpForce     float64    `yaml:"jump_force"`
	WalkSpeed     float64    `yaml:"walk_speed"`
	JumpSpeed     float64    `yaml:"jump_speed"`
	Gravity       float64    `yaml:"gravity"`
	RunMultiplier float64    `yaml:"run_multiplier"`
}

type Physics struct {
	Gravity     [3]float64 `yaml:"gravity"`
	Restitution float64    `yaml:"restitution"`
}

func Default() Config {
	ps := player.DefaultSettings()
	return Config{
		Window: Window{
			Width:        800,
			Height:       600,
			Title:        "view3d",
			TPS:          60,
			CaptureMouse: true,
			ShowHUD:      true,
		},
		World: World{
			Map:             "maps/maze.obj",
			CollisionGroups: append([]string(nil), objfile.DefaultCollisionGroups...),
		},
		Render: Render{
			FOV:          70,
			ZNear:        0.1,
			Shade:        true,
			ClipToScreen: true,
		},
		Player: Player{
			Mode:          ps.Mode.String(),
			Start:         [3]float64{0, 2, 0},
			Sensitivity:   ps.Sensitivity,
			Radius:        ps.Radius,
			Mass:          ps.Mass,
			Damping:       ps.Damping,
			MoveForce:     ps.MoveForce,
			JumpForce:     ps.JumpForce,
			WalkSpeed:     ps.WalkSpeed,
			JumpSpeed:     ps.JumpSpeed,
			Gravity:       ps.Gravity,
			RunMultiplier: ps.RunMultiplier,
		},
		Physics: Physics{
			Gravity: [3]float64{0, -9.81, 0},
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window.tps %d: %w", c.Window.TPS, ErrInvalid)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return fmt.Errorf("render.fov %g: %w", c.Render.FOV, ErrInvalid)
	case c.Render.ZNear <= 0:
		return fmt.Errorf("render.znear %g: %w", c.Render.ZNear, ErrInvalid)
	case c.Player.Radius <= 0:
		return fmt.Errorf("player.radius %g: %w", c.Player.Radius, ErrInvalid)
	case c.Player.Mass < 0:
		return fmt.Errorf("player.mass %g: %w", c.Player.Mass, ErrInvalid)
	}
	if _, err := player.ParseMode(c.Player.Mode); err != nil {
		return fmt.Errorf("player.mode: %w: %w", ErrInvalid, err)
	}
	return nil
}

// LoaderOptions maps the world section onto geometry loading options.
func (c Config) LoaderOptions() objfile.Options {
	return objfile.Options{
		CollisionGroups: c.World.CollisionGroups,
		ReverseWinding:  c.World.ReverseWinding,
	}
}

// PlayerSettings maps the player section onto controller settings. The mode
// has already been checked by Validate.
func (c Config) PlayerSettings() player.Settings {
	mode, _ := player.ParseMode(c.Player.Mode)
	p := c.Player
	return player.Settings{
		Mode:          mode,
		Sensitivity:   p.Sensitivity,
		Radius:        p.Radius,
		Mass:          p.Mass,
		Damping:       p.Damping,
		MoveForce:     p.MoveForce,
		JumpForce:     p.JumpForce,
		WalkSpeed:     p.WalkSpeed,
		JumpSpeed:     p.JumpSpeed,
		Gravity:       p.Gravity,
		RunMultiplier: p.RunMultiplier,
	}
}

func (c Config) Start() geom.Vector3 {
	return geom.Vector3{X: c.Player.Start[0], Y: c.Player.Start[1], Z: c.Player.Start[2]}
}

func (c Config) Gravity() geom.Vector3 {
	return geom.Vector3{X: c.Physics.Gravity[0], Y: c.Physics.Gravity[1], Z: c.Physics.Gravity[2]}
}
