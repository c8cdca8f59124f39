package tileworld_test

import (
	"io/fs"
	"testing"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/flat"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/bradbev/tileworld/src/tileworld"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSprites struct{ loaded bool }

func (f *fakeSprites) Loaded() bool               { return f.loaded }
func (f *fakeSprites) Variants() int              { return 4 }
func (f *fakeSprites) Sprite(i int) *ebiten.Image { return nil }

func sprites(src flat.SpriteSource) map[tilemap.Biome]flat.SpriteSource {
	out := map[tilemap.Biome]flat.SpriteSource{}
	for _, b := range tilemap.Biomes() {
		out[b] = src
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := tileworld.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16.0, cfg.TileLength)
	assert.Equal(t, 300, cfg.MapWidth)
	assert.Equal(t, 300, cfg.MapHeight)
	assert.Equal(t, 13, cfg.RenderWidth)
	assert.Equal(t, 10, cfg.RenderHeight)
	assert.Equal(t, 0.005, cfg.EnemyDensity)
	assert.Equal(t, tilemap.HalfOpen(200, 125, 300, 175), cfg.Region)
	assert.Equal(t, tilemap.Desert, cfg.RegionBiome)

	sc := cfg.StreamConfig()
	assert.Equal(t, 13, sc.RenderWidth)
	assert.Equal(t, 4, sc.Variants)
	assert.Equal(t, cfg.Seed, cfg.WorldgenConfig().Seed)
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*tileworld.Config){
		"tile length": func(c *tileworld.Config) { c.TileLength = 0 },
		"map size":    func(c *tileworld.Config) { c.MapWidth = -1 },
		"extents":     func(c *tileworld.Config) { c.RenderHeight = -1 },
		"density":     func(c *tileworld.Config) { c.EnemyDensity = 2 },
		"zoom":        func(c *tileworld.Config) { c.Zoom = 0 },
		"variants":    func(c *tileworld.Config) { c.Variants = 0 },
	} {
		cfg := tileworld.DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

const configType = "github.com/bradbev/tileworld/src/tileworld.Config"

func TestLoadConfig(t *testing.T) {
	defer asset.Reset()
	tileworld.RegisterTypes()
	content := memfs.New()
	content.WriteFile("world.json", []byte(`{
		"Type": "`+configType+`",
		"Inner": {
			"MapWidth": 50,
			"MapHeight": 40,
			"Seed": 7,
			"RegionBiome": "rockland",
			"Region": {"Min": {"X": 0, "Y": 0}, "Max": {"X": 9, "Y": 9}},
			"Desert": {"Type": "github.com/bradbev/tileworld/src/flat.Atlas", "Path": "desert.json"},
			"Enemy": {"Type": "github.com/bradbev/tileworld/src/flat.Enemy", "Path": "enemy.json"},
			"Font": {"Type": "github.com/bradbev/tileworld/src/flat.Font", "Path": "font.json"}
		}
	}`), 0777)
	content.WriteFile("desert.json", []byte(`{"Type": "github.com/bradbev/tileworld/src/flat.Atlas", "Inner": {"Path": "desert.png", "Columns": 4}}`), 0777)
	content.WriteFile("enemy.json", []byte(`{"Type": "github.com/bradbev/tileworld/src/flat.Enemy", "Inner": {"MaxHP": 40}}`), 0777)
	content.WriteFile("font.json", []byte(`{"Type": "github.com/bradbev/tileworld/src/flat.Font", "Inner": {}}`), 0777)
	require.NoError(t, asset.RegisterFileSystem(content, 0))

	cfg, err := tileworld.LoadConfig("world.json")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MapWidth)
	assert.Equal(t, 40, cfg.MapHeight)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, tilemap.Rockland, cfg.RegionBiome)
	assert.Equal(t, tilemap.HalfOpen(0, 0, 10, 10), cfg.Region)
	assert.Equal(t, 16.0, cfg.TileLength, "fields missing from the file keep their defaults")

	require.NotNil(t, cfg.Desert)
	assert.Equal(t, 4, cfg.Desert.Columns)
	assert.False(t, cfg.Desert.Loaded(), "desert.png does not exist")
	require.NotNil(t, cfg.Enemy)
	assert.Equal(t, 40.0, cfg.Enemy.MaxHP)
	assert.Equal(t, 10.0, cfg.Enemy.Speed)
	assert.Same(t, cfg.Font, cfg.Enemy.Label.Font)

	srcs := cfg.SpriteSources()
	assert.Len(t, srcs, 1)
	assert.Contains(t, srcs, tilemap.Desert)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	defer asset.Reset()
	tileworld.RegisterTypes()
	content := memfs.New()
	content.WriteFile("bad.json", []byte(`{"Type": "`+configType+`", "Inner": {"EnemyDensity": 3}}`), 0777)
	asset.RegisterFileSystem(content, 0)

	_, err := tileworld.LoadConfig("bad.json")
	assert.Error(t, err)
}

type writeFS struct{ fs *memfs.FS }

func (w *writeFS) WriteFile(path asset.Path, data []byte) error {
	return w.fs.WriteFile(string(path), data, 0777)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	defer asset.Reset()
	tileworld.RegisterTypes()
	wfs := &writeFS{fs: memfs.New()}
	asset.RegisterWritableFileSystem(wfs)

	cfg := tileworld.DefaultConfig()
	cfg.Seed = 99
	cfg.FullScan = true
	require.NoError(t, asset.Save("world", cfg))
	data, err := fs.ReadFile(wfs.fs, "world.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"RegionBiome": "Desert"`)

	asset.Reset()
	tileworld.RegisterTypes()
	asset.RegisterFileSystem(wfs.fs, 0)
	back, err := tileworld.LoadConfig("world.json")
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestNewGameStreamsOrigin(t *testing.T) {
	cfg := tileworld.DefaultConfig()
	g, err := tileworld.NewGame(cfg, sprites(&fakeSprites{loaded: true}), nil)
	require.NoError(t, err)

	tick := g.LastTick()
	assert.Equal(t, tilemap.Coord{150, 150}, tick.Center)
	assert.Equal(t, 567, tick.Spawned)
	assert.Equal(t, 567, g.Bridge().Live())
	assert.Equal(t, 100*50, g.Report().Tiles)

	// a step within the tile streams nothing
	tick, err = g.Step(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, tick.Intents())

	tick, err = g.Step(16, 0)
	require.NoError(t, err)
	assert.Equal(t, tilemap.Coord{151, 150}, g.CameraTile())
	assert.Equal(t, 21, tick.Spawned)
	assert.Equal(t, 21, tick.Despawned)
	assert.Equal(t, 567, g.Bridge().Live())
}

func TestGameWaitsForSprites(t *testing.T) {
	src := &fakeSprites{}
	g, err := tileworld.NewGame(tileworld.DefaultConfig(), sprites(src), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Bridge().Live())
	assert.Equal(t, 567, g.LastTick().Deferred)

	src.loaded = true
	tick, err := g.Step(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 567, tick.Spawned)
}

func TestJumpAndExtents(t *testing.T) {
	cfg := tileworld.DefaultConfig()
	cfg.EnemyDensity = 0
	g, err := tileworld.NewGame(cfg, sprites(&fakeSprites{loaded: true}), nil)
	require.NoError(t, err)

	_, err = g.JumpTo(tilemap.Coord{250, 150})
	require.NoError(t, err)
	assert.Equal(t, tilemap.Coord{250, 150}, g.CameraTile())

	g.SetExtents(1, 1)
	tick, err := g.Step(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 567-9, tick.Despawned)
	assert.Equal(t, 9, g.Bridge().Live())
}

func TestStrikeDefeatsEnemy(t *testing.T) {
	defer asset.Reset()
	tileworld.RegisterTypes()

	cfg := tileworld.DefaultConfig()
	// one enemy, on the origin tile
	cfg.Region = tilemap.HalfOpen(150, 150, 151, 151)
	cfg.EnemyDensity = 1
	proto := &flat.Enemy{}
	proto.DefaultInitialize()

	g, err := tileworld.NewGame(cfg, sprites(&fakeSprites{loaded: true}), proto)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Report().Enemies)
	assert.Equal(t, 1, g.Streamer().LiveEnemies())

	hits, kills, err := g.Strike(100, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
	assert.Equal(t, 0, kills)

	// 80 HP at 12 damage a strike
	for i := 0; i < 6; i++ {
		hits, kills, err = g.Strike(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, hits)
		assert.Equal(t, 0, kills)
	}
	_, kills, err = g.Strike(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, kills)
	assert.Equal(t, 1, g.Kills())
	assert.Equal(t, 0, g.Streamer().LiveEnemies())
	assert.Empty(t, flat.FindActorsByType[*flat.Enemy](g.World()))

	tile, _ := g.Streamer().Grid().Tile(tilemap.Coord{150, 150})
	assert.True(t, tile.EnemySpawned)
	assert.False(t, tile.Enemy.Valid())

	// walking away and back does not bring it back
	_, err = g.JumpTo(tilemap.Coord{20, 20})
	require.NoError(t, err)
	tick, err := g.JumpTo(tilemap.Coord{150, 150})
	require.NoError(t, err)
	assert.Equal(t, 0, tick.EnemiesSpawned)
}
