// Command ogmoview draws Ogmo levels, reloading them as they are edited.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	projectPath := flag.String("project", "", "Ogmo project (.ogmo) to open")
	levelName := flag.String("level", "", "level to show first, relative to the project")
	zoom := flag.Float64("zoom", 0, "initial zoom")
	grid := flag.String("grid", "", "draw the cell grid in this colour, e.g. #ffffff40")
	noWatch := flag.Bool("nowatch", false, "disable hot reload")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	stdr.SetVerbosity(0)
	if *verbose {
		stdr.SetVerbosity(1)
	}
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("ogmoview")

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *projectPath != "" {
		cfg.Project = *projectPath
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	if *zoom > 0 {
		cfg.Zoom = *zoom
	}
	if *grid != "" {
		cfg.Grid = *grid
	}
	if *noWatch {
		cfg.Watch = false
	}
	if cfg.Project == "" && flag.NArg() > 0 {
		cfg.Project = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(cfg, logger)
	if err != nil {
		log.Fatalf("ogmoview: open %s: %v", cfg.Project, err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error(err, "run")
		os.Exit(1)
	}
}
