package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/andrerochasouza/view3d/config"
	"github.com/andrerochasouza/view3d/display"
	"github.com/andrerochasouza/view3d/objfile"
	"github.com/andrerochasouza/view3d/world"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML settings file")
	mapPath := flag.String("map", "", "geometry file to load, overrides world.map")
	mode := flag.String("mode", "", "player mode (impulse or slide), overrides player.mode")
	export := flag.String("export", "", "write the loaded geometry to a .ply or .dxf file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *mapPath != "" {
		cfg.World.Map = *mapPath
	}
	if *mode != "" {
		cfg.Player.Mode = *mode
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Error in -mode: %v", err)
		}
	}

	w, err := loadWorld(cfg)
	if err != nil {
		log.Fatalf("Error loading world: %v", err)
	}

	if *export != "" {
		if err := objfile.Save(*export, w.Polygons()); err != nil {
			log.Fatalf("Error exporting geometry: %v", err)
		}
		return
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.CaptureMouse {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	if err := ebiten.RunGame(display.NewGame(cfg, w)); err != nil {
		log.Fatal(err)
	}
}

// loadWorld opens the map's directory as the file system so material
// libraries next to it resolve.
func loadWorld(cfg config.Config) (*world.World, error) {
	if cfg.World.Map == "" {
		return world.Load(nil, "", cfg.LoaderOptions())
	}
	dir, name := filepath.Split(cfg.World.Map)
	if dir == "" {
		dir = "."
	}
	return world.Load(os.DirFS(dir), name, cfg.LoaderOptions())
}
