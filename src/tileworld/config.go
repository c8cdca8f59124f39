package tileworld

import (
	"fmt"

	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/flat"
	"github.com/bradbev/tileworld/src/stream"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/bradbev/tileworld/src/worldgen"
)

// Config holds every tunable of a session.  It is an asset, normally
// content/world.json; fields missing from the file keep the defaults below.
type Config struct {
	TileLength float64
	MapWidth   int
	MapHeight  int

	// Half extents of the streamed window, in tiles.
	RenderWidth  int
	RenderHeight int

	Region       tilemap.Rect
	RegionBiome  tilemap.Biome
	EnemyDensity float64
	Seed         int64
	Rockland     worldgen.NoiseConfig

	Variants    int
	VariantSeed uint32
	FullScan    bool
	Strict      bool

	// CameraSpeed is in world units per second.
	CameraSpeed      float64
	Zoom             float64
	ProjectileDamage float64

	Grassland     *flat.Atlas
	Desert        *flat.Atlas
	RocklandAtlas *flat.Atlas
	Enemy         *flat.Enemy
	Font          *flat.Font
}

func (c *Config) DefaultInitialize() {
	gen := worldgen.DefaultConfig()
	st := stream.DefaultConfig()

	c.TileLength = 16
	c.MapWidth = 300
	c.MapHeight = 300
	c.RenderWidth = st.RenderWidth
	c.RenderHeight = st.RenderHeight
	c.Region = gen.Region
	c.RegionBiome = gen.Biome
	c.EnemyDensity = gen.EnemyDensity
	c.Seed = gen.Seed
	c.Rockland = gen.Rockland
	c.Variants = st.Variants
	c.CameraSpeed = 100
	c.Zoom = 3
	c.ProjectileDamage = 12
}

// DefaultConfig is the configuration used when no config asset is given.
func DefaultConfig() *Config {
	c := &Config{}
	c.DefaultInitialize()
	return c
}

func (c *Config) Validate() error {
	switch {
	case c.TileLength <= 0:
		return fmt.Errorf("tile length must be positive, got %v", c.TileLength)
	case c.MapWidth <= 0 || c.MapHeight <= 0:
		return fmt.Errorf("map size must be positive, got %dx%d", c.MapWidth, c.MapHeight)
	case c.RenderWidth < 0 || c.RenderHeight < 0:
		return fmt.Errorf("render extents must not be negative, got %dx%d", c.RenderWidth, c.RenderHeight)
	case c.Variants < 1:
		return fmt.Errorf("need at least one sprite variant, got %d", c.Variants)
	case c.Zoom <= 0:
		return fmt.Errorf("zoom must be positive, got %v", c.Zoom)
	case c.CameraSpeed < 0:
		return fmt.Errorf("camera speed must not be negative, got %v", c.CameraSpeed)
	case c.ProjectileDamage < 0:
		return fmt.Errorf("projectile damage must not be negative, got %v", c.ProjectileDamage)
	}
	return c.WorldgenConfig().Validate()
}

func (c *Config) WorldgenConfig() worldgen.Config {
	return worldgen.Config{
		Region:       c.Region,
		Biome:        c.RegionBiome,
		EnemyDensity: c.EnemyDensity,
		Seed:         c.Seed,
		Rockland:     c.Rockland,
	}
}

func (c *Config) StreamConfig() stream.Config {
	return stream.Config{
		RenderWidth:  c.RenderWidth,
		RenderHeight: c.RenderHeight,
		Variants:     c.Variants,
		VariantSeed:  c.VariantSeed,
		FullScan:     c.FullScan,
		Strict:       c.Strict,
	}
}

// SpriteSources maps each biome to its configured atlas.  Biomes without an
// atlas are left out, which keeps the streamer waiting.
func (c *Config) SpriteSources() map[tilemap.Biome]flat.SpriteSource {
	out := map[tilemap.Biome]flat.SpriteSource{}
	for biome, atlas := range map[tilemap.Biome]*flat.Atlas{
		tilemap.Grassland: c.Grassland,
		tilemap.Desert:    c.Desert,
		tilemap.Rockland:  c.RocklandAtlas,
	} {
		if atlas != nil {
			out[biome] = atlas
		}
	}
	return out
}

func RegisterTypes() {
	flat.RegisterAllFlatTypes()
	asset.RegisterAsset(Config{})
}

// LoadConfig loads and validates a Config asset.
func LoadConfig(path asset.Path) (*Config, error) {
	c, err := asset.LoadAs[Config](path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Enemy != nil && c.Enemy.Label.Font == nil {
		c.Enemy.Label.Font = c.Font
	}
	return c, nil
}
