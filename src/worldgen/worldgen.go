// worldgen populates a tile grid once, before anything is streamed.
//
// A configured region is painted with a biome and every tile in it rolls
// for an enemy.  An optional noise pass scatters Rockland outside the
// region.  All randomness comes from Config.Seed so a world can be
// regenerated exactly.

package worldgen

import (
	"fmt"
	systemLog "log"
	"math/rand"
	"os"

	"github.com/aquilax/go-perlin"
	"github.com/bradbev/tileworld/src/tilemap"
)

var log = systemLog.New(os.Stderr, "Worldgen ", systemLog.Ltime)

type NoiseConfig struct {
	// Threshold in (0, 1] enables the pass; noise above it becomes Rockland.
	Threshold float64
	// Scale is tiles per noise unit.
	Scale float64
	Alpha     float64
	Beta      float64
	Octaves   int32
}

type Config struct {
	Region       tilemap.Rect
	Biome        tilemap.Biome
	EnemyDensity float64
	Seed         int64
	Rockland     NoiseConfig
}

func DefaultConfig() Config {
	return Config{
		Region:       tilemap.HalfOpen(200, 125, 300, 175),
		Biome:        tilemap.Desert,
		EnemyDensity: 0.005,
		Seed:         1,
		Rockland: NoiseConfig{
			Scale:   24,
			Alpha:   2,
			Beta:    2,
			Octaves: 3,
		},
	}
}

func (c Config) Validate() error {
	if c.EnemyDensity < 0 || c.EnemyDensity > 1 {
		return fmt.Errorf("enemy density %v outside [0,1]", c.EnemyDensity)
	}
	if c.Rockland.Threshold < 0 || c.Rockland.Threshold > 1 {
		return fmt.Errorf("rockland threshold %v outside [0,1]", c.Rockland.Threshold)
	}
	if c.Rockland.Threshold > 0 && c.Rockland.Scale <= 0 {
		return fmt.Errorf("rockland noise scale must be positive, got %v", c.Rockland.Scale)
	}
	return nil
}

type Report struct {
	Region   tilemap.Rect
	Tiles    int
	Enemies  int
	Rockland int
}

type Generator struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (g *Generator) Generate(grid *tilemap.Grid) (Report, error) {
	if err := g.cfg.Validate(); err != nil {
		return Report{}, err
	}
	for i := 0; i < grid.Len(); i++ {
		if grid.At(i).Materialized() {
			return Report{}, fmt.Errorf("tile %v is already materialized, generation must run first", grid.CoordOf(i))
		}
	}

	region := g.cfg.Region.Intersect(grid.Bounds())
	if region.Empty() && !g.cfg.Region.Empty() {
		return Report{}, fmt.Errorf("region %v: %w", g.cfg.Region, tilemap.ErrOutOfBounds)
	}
	if region.Area() != g.cfg.Region.Area() {
		log.Printf("region %v clipped to %v", g.cfg.Region, region)
	}

	report := Report{Region: region}
	region.Each(func(c tilemap.Coord) {
		tile, _ := grid.Tile(c)
		tile.Biome = g.cfg.Biome
		report.Tiles++
		// the draw happens for every tile so the sequence only depends on
		// the region, not on the density
		roll := g.rng.Float64()
		if g.cfg.EnemyDensity > 0 && roll <= g.cfg.EnemyDensity {
			tile.ContainsEnemy = true
			report.Enemies++
		}
	})

	if g.cfg.Rockland.Threshold > 0 {
		report.Rockland = g.scatterRockland(grid, region)
	}
	log.Printf("generated %d tiles in %v, %d enemies, %d rockland", report.Tiles, region, report.Enemies, report.Rockland)
	return report, nil
}

func (g *Generator) scatterRockland(grid *tilemap.Grid, region tilemap.Rect) int {
	nc := g.cfg.Rockland
	noise := perlin.NewPerlin(nc.Alpha, nc.Beta, nc.Octaves, g.cfg.Seed)
	count := 0
	grid.Each(func(t *tilemap.Tile) {
		if region.Contains(t.Coord()) {
			return
		}
		n := noise.Noise2D(float64(t.X)/nc.Scale, float64(t.Y)/nc.Scale)
		if n > nc.Threshold {
			t.Biome = tilemap.Rockland
			count++
		}
	})
	return count
}
