// editor is an imgui overlay for inspecting and tuning a running
// tileworld.Game.  Each window is a Drawable; closing a window removes it.

package editor

import (
	"errors"
	systemLog "log"
	"os"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/editor/edgui"
	"github.com/bradbev/tileworld/src/tileworld"
	"github.com/gabstv/ebiten-imgui/renderer"
	"github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/exp/slices"
)

var log = systemLog.New(os.Stderr, "Editor ", systemLog.Ltime)

type Drawable interface {
	// Draw allows an item to render itself.
	// if the returned error is closeDrawable the drawable
	// will be removed from the draw list
	Draw() error
}

var closeDrawable = errors.New("Close")

type ImguiEditor struct {
	// Link to the ebiten-imgui/renderer.Manager instance that is running the editor
	Manager *renderer.Manager

	game       *tileworld.Game
	configPath asset.Path
	drawables  []Drawable
	menus      menuManager

	showDemoWindow bool
}

// New builds an editor over game.  configPath is where the config window
// saves to.
func New(manager *renderer.Manager, game *tileworld.Game, configPath asset.Path) *ImguiEditor {
	ed := &ImguiEditor{
		Manager:    manager,
		game:       game,
		configPath: configPath,
	}
	ed.AddDrawable(newStreamWindow(ed))
	ed.menus.AddMenu(ed.windowMenu())
	return ed
}

func (e *ImguiEditor) Game() *tileworld.Game { return e.game }

// SetGame swaps the inspected game.  Open windows follow the new one.
func (e *ImguiEditor) SetGame(game *tileworld.Game, configPath asset.Path) {
	e.game = game
	e.configPath = configPath
}

func (e *ImguiEditor) windowMenu() edgui.Menu {
	return edgui.Menu{
		Name: "Windows",
		Items: []*edgui.MenuItem{
			{Text: "Streaming", Action: func(*edgui.MenuItem) { e.AddDrawable(e.findOr(newStreamWindow(e))) }},
			{Text: "Config", Action: func(*edgui.MenuItem) { e.AddDrawable(e.findOr(newConfigWindow(e))) }},
			{Text: "Content", Action: func(*edgui.MenuItem) { e.AddDrawable(e.findOr(newContentWindow(e))) }},
			{
				Text: "Imgui Demo",
				Action: func(self *edgui.MenuItem) {
					e.showDemoWindow = !e.showDemoWindow
					self.Selected = e.showDemoWindow
				},
			},
		},
	}
}

func (e *ImguiEditor) AddMenu(menu edgui.Menu) {
	e.menus.AddMenu(menu)
}

// findOr returns the open window of the same type as d, or d itself.
func (e *ImguiEditor) findOr(d Drawable) Drawable {
	for _, existing := range e.drawables {
		if sameKind(existing, d) {
			return existing
		}
	}
	return d
}

func sameKind(a, b Drawable) bool {
	switch a.(type) {
	case *streamWindow:
		_, ok := b.(*streamWindow)
		return ok
	case *configWindow:
		_, ok := b.(*configWindow)
		return ok
	case *contentWindow:
		_, ok := b.(*contentWindow)
		return ok
	}
	return a == b
}

func (e *ImguiEditor) AddDrawable(d Drawable) {
	if !slices.ContainsFunc(e.drawables, func(existing Drawable) bool {
		return d == existing
	}) {
		e.drawables = append(e.drawables, d)
	}
}

func (e *ImguiEditor) Update(deltaseconds float32) error {
	e.menus.Draw()
	if e.showDemoWindow {
		imgui.ShowDemoWindow(&e.showDemoWindow)
	}
	return e.drawDrawables()
}

// drawDrawables draws every Drawable, then removes any that closed.
func (e *ImguiEditor) drawDrawables() error {
	toRemove := map[Drawable]bool{}
	var firstErr error
	for _, d := range e.drawables {
		err := d.Draw()
		switch {
		case err == closeDrawable:
			toRemove[d] = true
		case err != nil && firstErr == nil:
			firstErr = err
		}
	}
	e.drawables = slices.DeleteFunc(e.drawables, func(d Drawable) bool {
		return toRemove[d]
	})
	return firstErr
}

// OpenWorld loads the config asset at path and replaces the running game
// with a fresh one built from it.
func (e *ImguiEditor) OpenWorld(path asset.Path) error {
	cfg, err := tileworld.LoadConfig(path)
	if err != nil {
		return err
	}
	game, err := tileworld.NewGameFromConfig(cfg)
	if err != nil {
		return err
	}
	log.Printf("opened %s", path)
	e.SetGame(game, path)
	return nil
}
