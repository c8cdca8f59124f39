package flat

import (
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	TileLayer = iota
	EnemyLayer
)

// TileActor is the presentation of one materialized tile.
type TileActor struct {
	ActorBase
	Biome   tilemap.Biome
	Variant int

	sprite SpriteComponent
}

func NewTileActor(biome tilemap.Biome, x, y float64, variant int, image *ebiten.Image) *TileActor {
	t := &TileActor{Biome: biome, Variant: variant}
	t.Transform.SetLocation(x, y)
	t.sprite.SetImage(image)
	// a tile covers [pos, pos+L) so its sprite hangs off the corner
	t.sprite.AnchorTopLeft()
	t.AddComponent(t, &t.sprite)
	return t
}

func (t *TileActor) DrawLayer() int { return TileLayer }

func (t *TileActor) Sprite() *ebiten.Image {
	return t.sprite.Image()
}
