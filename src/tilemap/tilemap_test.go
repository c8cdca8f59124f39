package tilemap_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/bradbev/tileworld/src/tilemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := tilemap.NewGrid(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, g.Len())
	assert.Equal(t, tilemap.Coord{2, 1}, g.Center())

	for i := 0; i < g.Len(); i++ {
		tile := g.At(i)
		c := g.CoordOf(i)
		assert.Equal(t, c, tile.Coord())
		idx, ok := g.Index(c)
		assert.True(t, ok)
		assert.Equal(t, c.Y*4+c.X, idx, "index must be row-major")
		assert.Equal(t, tilemap.Grassland, tile.Biome)
		assert.False(t, tile.Materialized())
	}

	_, err = tilemap.NewGrid(0, 10)
	assert.Error(t, err)
}

func TestTileOutOfBounds(t *testing.T) {
	g, _ := tilemap.NewGrid(10, 10)
	for _, c := range []tilemap.Coord{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {-5, 99}} {
		tile, ok := g.Tile(c)
		assert.False(t, ok, "%v should have no tile", c)
		assert.Nil(t, tile)
	}
	tile, ok := g.Tile(tilemap.Coord{9, 9})
	assert.True(t, ok)
	assert.Equal(t, 9, tile.X)
}

func TestMapperRoundTrip(t *testing.T) {
	g, _ := tilemap.NewGrid(300, 300)
	m := tilemap.NewMapper(g, 16)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := tilemap.Coord{x, y}
			px, py := m.TileToWorld(c)
			assert.Equal(t, c, m.WorldToTile(px, py))
		}
	}
}

func TestMapperFloors(t *testing.T) {
	g, _ := tilemap.NewGrid(300, 300)
	m := tilemap.NewMapper(g, 16)
	assert.Equal(t, tilemap.Coord{150, 150}, m.WorldToTile(0, 0))
	assert.Equal(t, tilemap.Coord{150, 150}, m.WorldToTile(15.9, 15.9))
	assert.Equal(t, tilemap.Coord{149, 149}, m.WorldToTile(-0.1, -0.1), "negative positions floor, not truncate")
	assert.Equal(t, tilemap.Coord{151, 148}, m.WorldToTile(16, -16.5))
	assert.Equal(t, tilemap.Coord{-50, 150}, m.WorldToTile(-200*16, 0), "may leave the grid")
}

func TestMapperQuantizedRoundTrip(t *testing.T) {
	g, _ := tilemap.NewGrid(300, 300)
	m := tilemap.NewMapper(g, 16)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		px := rng.Float64()*4000 - 2000
		py := rng.Float64()*4000 - 2000
		c := m.WorldToTile(px, py)
		x, y := m.TileToWorld(c)
		assert.Equal(t, c, m.WorldToTile(x, y))
	}
}

func TestRectBasics(t *testing.T) {
	r := tilemap.WindowAround(tilemap.Coord{150, 150}, 13, 10)
	assert.Equal(t, 27, r.Width())
	assert.Equal(t, 21, r.Height())
	assert.Equal(t, 567, r.Area())
	assert.True(t, r.Contains(tilemap.Coord{137, 140}))
	assert.True(t, r.Contains(tilemap.Coord{163, 160}))
	assert.False(t, r.Contains(tilemap.Coord{164, 160}))

	h := tilemap.HalfOpen(200, 125, 300, 175)
	assert.Equal(t, 100*50, h.Area())

	empty := r.Intersect(tilemap.HalfOpen(0, 0, 10, 10))
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Area())
}

func collect(rects []tilemap.Rect) map[tilemap.Coord]int {
	out := map[tilemap.Coord]int{}
	for _, r := range rects {
		r.Each(func(c tilemap.Coord) { out[c]++ })
	}
	return out
}

func TestRectSubtract(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	randRect := func() tilemap.Rect {
		x, y := rng.Intn(20), rng.Intn(20)
		return tilemap.Rect{Min: tilemap.Coord{x, y}, Max: tilemap.Coord{x + rng.Intn(10) - 1, y + rng.Intn(10) - 1}}
	}
	for i := 0; i < 500; i++ {
		a, b := randRect(), randRect()
		got := collect(a.Subtract(b))
		want := map[tilemap.Coord]int{}
		a.Each(func(c tilemap.Coord) {
			if !b.Contains(c) {
				want[c] = 1
			}
		})
		assert.Equal(t, want, got, "%v minus %v", a, b)
		assert.LessOrEqual(t, len(a.Subtract(b)), 4)
	}
}

func TestBiomeText(t *testing.T) {
	b, err := json.Marshal(map[string]tilemap.Biome{"b": tilemap.Desert})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":"Desert"}`, string(b))

	var back tilemap.Biome
	require.NoError(t, back.UnmarshalText([]byte("rockland")))
	assert.Equal(t, tilemap.Rockland, back)
	assert.Error(t, back.UnmarshalText([]byte("swamp")))
}

func TestVariantIsStable(t *testing.T) {
	c := tilemap.Coord{12, 34}
	v := tilemap.Variant(7, c, 4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, v, tilemap.Variant(7, c, 4))
	}
	assert.Equal(t, 0, tilemap.Variant(7, c, 1))

	counts := make([]int, 4)
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			counts[tilemap.Variant(1, tilemap.Coord{x, y}, 4)]++
		}
	}
	for _, n := range counts {
		assert.Greater(t, n, 0, "every variant should be used")
	}
}
