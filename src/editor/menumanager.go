package editor

import (
	"github.com/bradbev/tileworld/src/editor/edgui"

	"github.com/inkyblackness/imgui-go/v4"
)

type menuManager struct {
	menus []edgui.Menu
}

func (m *menuManager) AddMenu(menu edgui.Menu) {
	m.menus = append(m.menus, menu)
}

func (m *menuManager) Draw() {
	if len(m.menus) == 0 {
		return
	}
	if imgui.BeginMainMenuBar() {
		defer imgui.EndMainMenuBar()
		for i := range m.menus {
			m.menus[i].Draw()
		}
	}
}
