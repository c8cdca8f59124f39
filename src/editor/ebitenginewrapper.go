package editor

import (
	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/tileworld"
	"github.com/gabstv/ebiten-imgui/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/inkyblackness/imgui-go/v4"
)

// NewEbitengineWrapper runs game with the editor drawn over it.
func NewEbitengineWrapper(game *tileworld.Game, configPath asset.Path) *EbitengineWrapper {
	mgr := renderer.New(nil)
	return &EbitengineWrapper{
		ImguiManager: mgr,
		Editor:       New(mgr, game, configPath),
	}
}

type EbitengineWrapper struct {
	ImguiManager *renderer.Manager
	Editor       *ImguiEditor
	w, h         int
}

func (g *EbitengineWrapper) Draw(screen *ebiten.Image) {
	g.Editor.game.Draw(screen)
	g.ImguiManager.Draw(screen)
}

func (g *EbitengineWrapper) Update() error {
	updateRate := float32(1.0 / 60.0)
	var err error

	g.ImguiManager.Update(updateRate)
	g.ImguiManager.BeginFrame()
	{
		err = g.Editor.Update(updateRate)
	}
	g.ImguiManager.EndFrame()
	if err != nil {
		return err
	}

	game := g.Editor.game
	game.IgnoreMouse = imgui.CurrentIO().WantCaptureMouse()
	return game.Update()
}

func (g *EbitengineWrapper) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w = outsideWidth
	g.h = outsideHeight
	g.ImguiManager.SetDisplaySize(float32(g.w), float32(g.h))
	g.Editor.game.Layout(outsideWidth, outsideHeight)
	return g.w, g.h
}
