package flat

import (
	"github.com/deeean/go-vector/vector2"
	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSource hands out the variants of a sprite sheet.
type SpriteSource interface {
	Loaded() bool
	Variants() int
	Sprite(i int) *ebiten.Image
}

// SpriteComponent draws an image centered on its owner.  A nil image draws
// nothing.
type SpriteComponent struct {
	ComponentBase
	image      *ebiten.Image
	dimensions vector2.Vector2
	geoM       ebiten.GeoM
}

var _ = Component((*SpriteComponent)(nil))

func (s *SpriteComponent) SetImage(image *ebiten.Image) {
	s.image = image
	s.geoM = ebiten.GeoM{}
	if image == nil {
		s.dimensions.Set(0, 0)
		return
	}
	bounds := image.Bounds()
	s.dimensions.Set(float64(bounds.Dx()), float64(bounds.Dy()))
	s.geoM.Translate(-s.dimensions.X/2.0, -s.dimensions.Y/2.0)
}

// AnchorTopLeft draws the image with its top left corner on the owner
// instead of its center.
func (s *SpriteComponent) AnchorTopLeft() {
	s.geoM = ebiten.GeoM{}
}

func (s *SpriteComponent) Image() *ebiten.Image {
	return s.image
}

func (s *SpriteComponent) Draw(screen *ebiten.Image, view ebiten.GeoM) {
	if s.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = s.geoM
	s.Owner().GetTransform().Apply(&op.GeoM)
	op.GeoM.Concat(view)
	screen.DrawImage(s.image, op)
}
