package editor

import (
	"io/fs"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/editor/edgui"
	"github.com/bradbev/tileworld/src/tileworld"

	"github.com/inkyblackness/imgui-go/v4"
)

// contentWindow lists the world configs in the content filesystems.
// Double clicking one replaces the running world.
type contentWindow struct {
	ed       *ImguiEditor
	worlds   []string
	files    []string
	selected string
	status   string
}

func newContentWindow(ed *ImguiEditor) *contentWindow {
	ret := &contentWindow{ed: ed}
	ret.refresh()
	return ret
}

func (c *contentWindow) refresh() {
	worlds, err := asset.FilterFilesByType[tileworld.Config]()
	if err != nil {
		c.status = err.Error()
	}
	c.worlds = worlds

	c.files = c.files[:0]
	asset.WalkFiles(func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			c.files = append(c.files, path)
		}
		return nil
	})
}

func (c *contentWindow) Draw() error {
	defer imgui.End()
	open := true
	if imgui.BeginV("Content", &open, 0) {
		if imgui.Button("Refresh") {
			c.refresh()
		}
		edgui.Text("running %s", c.ed.configPath)
		for _, path := range c.worlds {
			if imgui.SelectableV(path, path == c.selected, imgui.SelectableFlagsAllowDoubleClick, imgui.Vec2{}) {
				c.selected = path
				if imgui.IsMouseDoubleClicked(0) {
					c.open(path)
				}
			}
		}
		if imgui.CollapsingHeader("All files") {
			for _, path := range c.files {
				imgui.Text(path)
			}
		}
		if c.status != "" {
			imgui.Text(c.status)
		}
	}
	if !open {
		return closeDrawable
	}
	return nil
}

func (c *contentWindow) open(path string) {
	if err := c.ed.OpenWorld(asset.Path(path)); err != nil {
		c.status = err.Error()
		return
	}
	c.status = ""
}
