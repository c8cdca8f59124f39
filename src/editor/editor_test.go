package editor

import (
	"errors"
	"testing"

	"github.com/bradbev/tileworld/src/flat"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/bradbev/tileworld/src/tileworld"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDrawable struct {
	draws int
	err   error
}

func (d *testDrawable) Draw() error {
	d.draws++
	return d.err
}

func TestClosedDrawablesAreRemoved(t *testing.T) {
	ed := &ImguiEditor{}
	keep := &testDrawable{}
	closing := &testDrawable{err: closeDrawable}
	ed.AddDrawable(keep)
	ed.AddDrawable(closing)
	ed.AddDrawable(keep)
	assert.Len(t, ed.drawables, 2, "a drawable is only added once")

	require.NoError(t, ed.drawDrawables())
	assert.Equal(t, []Drawable{keep}, ed.drawables)

	require.NoError(t, ed.drawDrawables())
	assert.Equal(t, 2, keep.draws)
	assert.Equal(t, 1, closing.draws)
}

func TestDrawableErrorsSurface(t *testing.T) {
	ed := &ImguiEditor{}
	boom := errors.New("boom")
	failing := &testDrawable{err: boom}
	ed.AddDrawable(failing)

	assert.ErrorIs(t, ed.drawDrawables(), boom)
	assert.Len(t, ed.drawables, 1, "only closed drawables are removed")
}

type loadedSprites struct{}

func (loadedSprites) Loaded() bool               { return true }
func (loadedSprites) Variants() int              { return 1 }
func (loadedSprites) Sprite(i int) *ebiten.Image { return nil }

func TestFindOrReusesOpenWindow(t *testing.T) {
	sprites := map[tilemap.Biome]flat.SpriteSource{}
	for _, b := range tilemap.Biomes() {
		sprites[b] = loadedSprites{}
	}
	game, err := tileworld.NewGame(tileworld.DefaultConfig(), sprites, nil)
	require.NoError(t, err)

	ed := &ImguiEditor{game: game}
	first := newStreamWindow(ed)
	ed.AddDrawable(first)
	assert.Same(t, first, ed.findOr(newStreamWindow(ed)))
	assert.Equal(t, tilemap.Coord{150, 150}, first.jump)

	cfg := newConfigWindow(ed)
	assert.Same(t, cfg, ed.findOr(cfg))
}
