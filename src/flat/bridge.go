package flat

import (
	"errors"
	"fmt"

	"github.com/bradbev/tileworld/src/arena"
	"github.com/bradbev/tileworld/src/asset"
	"github.com/bradbev/tileworld/src/tilemap"
)

var (
	ErrNoSprites    = errors.New("no sprite source for biome")
	ErrNoEnemyProto = errors.New("no enemy prototype")
)

// Bridge turns the streamer's spawn and despawn intents into actors in a
// World.  Every live actor it created is held in an arena so handles held by
// tiles can never reach a despawned actor.
type Bridge struct {
	world  *World
	tiles  map[tilemap.Biome]SpriteSource
	enemy  *Enemy
	actors *arena.Arena[Actor]
}

func NewBridge(world *World, tiles map[tilemap.Biome]SpriteSource, enemy *Enemy) *Bridge {
	return &Bridge{
		world:  world,
		tiles:  tiles,
		enemy:  enemy,
		actors: arena.New[Actor](),
	}
}

// AssetsLoaded is true once every biome has sprites and the enemy prototype
// has its atlas.
func (b *Bridge) AssetsLoaded() bool {
	for _, biome := range tilemap.Biomes() {
		src, ok := b.tiles[biome]
		if !ok || src == nil || !src.Loaded() {
			return false
		}
	}
	if b.enemy != nil && b.enemy.Atlas != nil && !b.enemy.Atlas.Loaded() {
		return false
	}
	return true
}

func (b *Bridge) SpawnTile(biome tilemap.Biome, x, y float64, variant int) (arena.Handle, error) {
	src, ok := b.tiles[biome]
	if !ok || src == nil || src.Variants() == 0 {
		return arena.Handle{}, fmt.Errorf("%v: %w", biome, ErrNoSprites)
	}
	t := NewTileActor(biome, x, y, variant, src.Sprite(variant%src.Variants()))
	b.world.AddToWorld(t)
	return b.actors.Insert(t), nil
}

func (b *Bridge) SpawnEnemy(x, y float64) (arena.Handle, error) {
	if b.enemy == nil {
		return arena.Handle{}, ErrNoEnemyProto
	}
	a, err := asset.NewInstance(b.enemy)
	if err != nil {
		return arena.Handle{}, fmt.Errorf("instance enemy: %w", err)
	}
	e := a.(*Enemy)
	e.Transform.SetLocation(x, y)
	e.handle = b.actors.Insert(e)
	b.world.AddToWorld(e)
	return e.handle, nil
}

func (b *Bridge) Despawn(h arena.Handle) {
	actor, ok := b.actors.Remove(h)
	if !ok {
		log.Printf("despawn of stale handle %v", h)
		return
	}
	b.world.RemoveFromWorld(actor)
}

func (b *Bridge) Actor(h arena.Handle) (Actor, bool) {
	return b.actors.Get(h)
}

// Live is the number of actors the bridge has spawned and not despawned.
func (b *Bridge) Live() int {
	return b.actors.Len()
}

func (b *Bridge) World() *World {
	return b.world
}
