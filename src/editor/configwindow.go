package editor

import (
	"fmt"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/editor/edgui"
	"github.com/bradbev/tileworld/src/tileworld"

	"github.com/inkyblackness/imgui-go/v4"
)

// configWindow tunes the live config.  Streaming and play settings apply
// at once, generation settings apply on Regenerate.
type configWindow struct {
	ed     *ImguiEditor
	path   string
	seed   int32
	status string
}

func newConfigWindow(ed *ImguiEditor) *configWindow {
	return &configWindow{
		ed:   ed,
		path: string(ed.configPath),
		seed: int32(ed.game.Config().Seed),
	}
}

func (w *configWindow) Draw() error {
	defer imgui.End()
	open := true
	if imgui.BeginV("Config", &open, 0) {
		w.drawLive()
		imgui.Separator()
		w.drawGeneration()
		imgui.Separator()
		w.drawSave()
	}
	if !open {
		return closeDrawable
	}
	return nil
}

func (w *configWindow) drawLive() {
	g := w.ed.game
	cfg := g.Config()

	rw, rh := cfg.RenderWidth, cfg.RenderHeight
	if edgui.DragInt2("Extents", "w", &rw, "h", &rh) {
		g.SetExtents(rw, rh)
	}
	edgui.DragFloat64("Camera speed", &cfg.CameraSpeed)
	edgui.DragFloat64("Projectile damage", &cfg.ProjectileDamage)

	zoom := float32(cfg.Zoom)
	if imgui.SliderFloat("Zoom", &zoom, 0.5, 8) {
		cfg.Zoom = float64(zoom)
		g.Camera().Zoom = cfg.Zoom
	}
}

func (w *configWindow) drawGeneration() {
	cfg := w.ed.game.Config()
	edgui.Text("map %dx%d, tile length %v", cfg.MapWidth, cfg.MapHeight, cfg.TileLength)
	edgui.Text("%v region %v", cfg.RegionBiome, cfg.Region)
	edgui.DragFloat64("Enemy density", &cfg.EnemyDensity)
	imgui.InputInt("Seed", &w.seed)
	if imgui.Button("Regenerate") {
		cfg.Seed = int64(w.seed)
		w.status = w.regenerate(cfg)
	}
}

func (w *configWindow) regenerate(cfg *tileworld.Config) string {
	game, err := tileworld.NewGameFromConfig(cfg)
	if err != nil {
		return err.Error()
	}
	w.ed.SetGame(game, w.ed.configPath)
	return fmt.Sprintf("regenerated with seed %d", cfg.Seed)
}

func (w *configWindow) drawSave() {
	edgui.InputText("Path", &w.path)
	imgui.SameLine()
	if imgui.Button("Save") {
		if err := asset.Save(asset.Path(w.path), w.ed.game.Config()); err != nil {
			w.status = err.Error()
		} else {
			w.status = "saved " + w.path
		}
	}
	if w.status != "" {
		imgui.Text(w.status)
	}
}
