package main

import (
	"errors"
	"flag"
	systemLog "log"
	"os"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/editor"
	"github.com/bradbev/tileworld/src/tileworld"

	"github.com/hajimehoshi/ebiten/v2"
)

var log = systemLog.New(os.Stderr, "Main ", systemLog.Ltime)

func main() {
	content := flag.String("content", "./content", "directory holding the assets")
	configPath := flag.String("config", "world.json", "config asset to run")
	seed := flag.Int64("seed", 0, "override the world seed when non zero")
	inspect := flag.Bool("inspect", false, "draw the imgui inspector over the game")
	fullScan := flag.Bool("fullscan", false, "reconcile every tile each tick instead of the window difference")
	flag.Parse()

	asset.RegisterFileSystem(os.DirFS(*content), 0)
	asset.RegisterWritableFileSystem(asset.NewWritableFS(*content))
	tileworld.RegisterTypes()

	path := asset.Path(*configPath)
	cfg, err := loadConfig(path)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.FullScan = cfg.FullScan || *fullScan

	game, err := tileworld.NewGameFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	r := game.Report()
	log.Printf("generated %d tiles, %d rockland, %d enemies", r.Tiles, r.Rockland, r.Enemies)

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("tileworld")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var run ebiten.Game = game
	if *inspect {
		run = editor.NewEbitengineWrapper(game, path)
	}
	if err := ebiten.RunGame(run); err != nil {
		log.Fatal(err)
	}
}

// loadConfig loads path, or the first config in the content when path is
// missing, or the defaults when there is none.
func loadConfig(path asset.Path) (*tileworld.Config, error) {
	cfg, err := tileworld.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, asset.ErrNotFound) {
		return nil, err
	}
	found, _ := asset.FilterFilesByType[tileworld.Config]()
	if len(found) > 0 {
		log.Printf("%s not found, using %s", path, found[0])
		return tileworld.LoadConfig(asset.Path(found[0]))
	}
	log.Printf("%s not found, using the default config without sprites", path)
	return tileworld.DefaultConfig(), nil
}
