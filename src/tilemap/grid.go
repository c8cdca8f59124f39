package tilemap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bradbev/tileworld/src/arena"
)

var ErrOutOfBounds = errors.New("tile coordinate out of bounds")

// Biome selects which atlas a tile is drawn with.
type Biome uint8

const (
	Grassland Biome = iota
	Desert
	Rockland
)

var biomeNames = []string{"Grassland", "Desert", "Rockland"}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return fmt.Sprintf("Biome(%d)", uint8(b))
}

func (b Biome) MarshalText() ([]byte, error) {
	if int(b) >= len(biomeNames) {
		return nil, fmt.Errorf("unknown biome %d", uint8(b))
	}
	return []byte(biomeNames[b]), nil
}

func (b *Biome) UnmarshalText(text []byte) error {
	for i, name := range biomeNames {
		if strings.EqualFold(name, string(text)) {
			*b = Biome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown biome %q", text)
}

// Biomes lists every biome, in declaration order.
func Biomes() []Biome {
	return []Biome{Grassland, Desert, Rockland}
}

type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

type Tile struct {
	X, Y          int
	Biome         Biome
	ContainsEnemy bool

	// Ref is the presentation entity for this tile.  It is valid exactly
	// while the tile is inside the streamed window.
	Ref arena.Handle

	// EnemySpawned is set the first time this tile's enemy is spawned and
	// is never cleared.  Enemy is the live enemy, zero once defeated.
	EnemySpawned bool
	Enemy        arena.Handle
}

func (t *Tile) Coord() Coord {
	return Coord{t.X, t.Y}
}

func (t *Tile) Materialized() bool {
	return t.Ref.Valid()
}

// Grid is a fixed size, row-major array of tiles.  It is never resized.
type Grid struct {
	width, height int
	tiles         []Tile
}

func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %dx%d", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[y*width+x] = Tile{X: x, Y: y, Biome: Grassland}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Len() int    { return len(g.tiles) }

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Index returns y*width+x, or false when c is outside the grid.
func (g *Grid) Index(c Coord) (int, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return c.Y*g.width + c.X, true
}

// Tile returns the tile at c, or false when there is no tile there.
func (g *Grid) Tile(c Coord) (*Tile, bool) {
	i, ok := g.Index(c)
	if !ok {
		return nil, false
	}
	return &g.tiles[i], true
}

// At returns the tile at a row-major index.  i must be in [0, Len()).
func (g *Grid) At(i int) *Tile {
	return &g.tiles[i]
}

func (g *Grid) CoordOf(i int) Coord {
	return Coord{X: i % g.width, Y: i / g.width}
}

// Center is the tile the world origin maps to.
func (g *Grid) Center() Coord {
	return Coord{X: g.width / 2, Y: g.height / 2}
}

func (g *Grid) Bounds() Rect {
	return Rect{Min: Coord{0, 0}, Max: Coord{g.width - 1, g.height - 1}}
}

func (g *Grid) Each(fn func(t *Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// CountMaterialized is O(grid), meant for tests and diagnostics.
func (g *Grid) CountMaterialized() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Materialized() {
			n++
		}
	}
	return n
}
