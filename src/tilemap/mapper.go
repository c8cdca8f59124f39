package tilemap

import "math"

// Mapper converts between world pixel space and grid space.  The world
// origin sits on the Center tile.
type Mapper struct {
	TileLength float64
	Center     Coord
}

func NewMapper(g *Grid, tileLength float64) Mapper {
	return Mapper{TileLength: tileLength, Center: g.Center()}
}

// WorldToTile floors toward negative infinity.  The result may lie outside
// the grid; callers bounds check before indexing.
func (m Mapper) WorldToTile(px, py float64) Coord {
	return Coord{
		X: m.Center.X + int(math.Floor(px/m.TileLength)),
		Y: m.Center.Y + int(math.Floor(py/m.TileLength)),
	}
}

// TileToWorld returns the world position a tile's entity is placed at.
// Depth is left to the caller.
func (m Mapper) TileToWorld(c Coord) (float64, float64) {
	return float64(c.X-m.Center.X) * m.TileLength, float64(c.Y-m.Center.Y) * m.TileLength
}
