package editor

import (
	"github.com/bradbev/tileworld/src/editor/edgui"
	"github.com/bradbev/tileworld/src/tilemap"

	"github.com/inkyblackness/imgui-go/v4"
)

// streamWindow shows what the streamer is doing and moves the camera.
type streamWindow struct {
	ed   *ImguiEditor
	jump tilemap.Coord
}

func newStreamWindow(ed *ImguiEditor) *streamWindow {
	return &streamWindow{ed: ed, jump: ed.game.CameraTile()}
}

func (w *streamWindow) Draw() error {
	defer imgui.End()
	open := true
	if imgui.BeginV("Streaming", &open, 0) {
		w.drawStats()
		imgui.Separator()
		w.drawCamera()
	}
	if !open {
		return closeDrawable
	}
	return nil
}

func (w *streamWindow) drawStats() {
	g := w.ed.game
	s := g.Streamer()
	t := g.LastTick()
	r := g.Report()

	edgui.Text("state: %v", s.State())
	edgui.Text("camera tile %v, window %v", g.CameraTile(), s.Window())
	edgui.Text("live actors %d, pending tiles %d", g.Bridge().Live(), s.Pending())
	edgui.Text("last tick: %d spawned, %d despawned, %d enemies, %d deferred",
		t.Spawned, t.Despawned, t.EnemiesSpawned, t.Deferred)
	imgui.Separator()
	edgui.Text("generated %d tiles, %d rockland", r.Tiles, r.Rockland)
	edgui.Text("enemies: %d seeded in %v, %d live, %d defeated", r.Enemies, r.Region, s.LiveEnemies(), g.Kills())
	edgui.Text("strikes %d", g.Strikes())
}

func (w *streamWindow) drawCamera() {
	g := w.ed.game
	loc := &g.Camera().Location
	if edgui.DragFloat2("Camera", "x", &loc.X, "y", &loc.Y) {
		if _, err := g.Step(0, 0); err != nil {
			log.Print(err)
		}
	}

	edgui.DragInt2("Tile", "x", &w.jump.X, "y", &w.jump.Y)
	imgui.SameLine()
	if imgui.Button("Jump") {
		if _, err := g.JumpTo(w.jump); err != nil {
			log.Print(err)
		}
	}

	imgui.Checkbox("HUD", &g.ShowHUD)
	imgui.SameLine()
	imgui.Checkbox("Enemy markers", &g.ShowMarkers)
}
