package flat

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas is a sprite sheet of equally sized cells, read left to right and
// top to bottom.  Each cell is one variant.
type Atlas struct {
	Path    asset.Path `filter:"png"`
	Columns int
	Rows    int

	sprites []*ebiten.Image
}

var _ = SpriteSource((*Atlas)(nil))

func (a *Atlas) DefaultInitialize() {
	a.Columns = 1
	a.Rows = 1
}

func (a *Atlas) PostLoad() {
	a.sprites = nil
	content, err := asset.ReadFile(a.Path)
	if err != nil {
		log.Printf("atlas %s: %v", a.Path, err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		log.Printf("atlas %s: %v", a.Path, err)
		return
	}
	cells, err := AtlasCells(img.Bounds(), a.Columns, a.Rows)
	if err != nil {
		log.Printf("atlas %s: %v", a.Path, err)
		return
	}
	sheet := ebiten.NewImageFromImage(img)
	for _, cell := range cells {
		a.sprites = append(a.sprites, sheet.SubImage(cell).(*ebiten.Image))
	}
}

func (a *Atlas) Loaded() bool {
	return len(a.sprites) > 0
}

func (a *Atlas) Variants() int {
	return len(a.sprites)
}

// Sprite wraps i into the available variants; nil if nothing is loaded.
func (a *Atlas) Sprite(i int) *ebiten.Image {
	if len(a.sprites) == 0 {
		return nil
	}
	i %= len(a.sprites)
	if i < 0 {
		i += len(a.sprites)
	}
	return a.sprites[i]
}

// AtlasCells splits bounds into a columns x rows grid.  Sizes that do not
// divide evenly leave the remainder unused.
func AtlasCells(bounds image.Rectangle, columns, rows int) ([]image.Rectangle, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("atlas needs positive columns and rows, got %dx%d", columns, rows)
	}
	w, h := bounds.Dx()/columns, bounds.Dy()/rows
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%v is too small for %dx%d cells", bounds, columns, rows)
	}
	cells := make([]image.Rectangle, 0, columns*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			origin := bounds.Min.Add(image.Pt(c*w, r*h))
			cells = append(cells, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))})
		}
	}
	return cells, nil
}
