package flat

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/bradbev/tileworld/src/arena"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/deeean/go-vector/vector3"
)

// Enemy is loaded once as a prototype asset and instanced for every spawn.
// It wanders around the point it was spawned at.
type Enemy struct {
	ActorBase
	MaxHP        float64
	Speed        float64
	WanderRadius float64
	// HitRadius is how close a strike has to land, in world units.
	HitRadius float64
	Atlas     *Atlas
	Frame     int
	Label     TextComponent

	hp     float64
	home   vector3.Vector3
	target vector3.Vector3
	rng    *rand.Rand
	sprite SpriteComponent
	handle arena.Handle
}

func (e *Enemy) DefaultInitialize() {
	e.MaxHP = 80
	e.Speed = 10
	e.WanderRadius = 12
	e.HitRadius = 8
	e.Label.TextTemplate = `{{printf "%.0f" .HP}}`
	e.Label.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	e.Label.OffsetX = -6
	e.Label.OffsetY = -12
}

func (e *Enemy) BeginPlay() {
	e.hp = e.MaxHP
	e.home = e.Transform.Location
	e.target = e.home
	seed := tilemap.Hash2(0x5eed, int32(e.home.X), int32(e.home.Y))
	e.rng = rand.New(rand.NewSource(int64(seed)))
	if e.Atlas != nil {
		e.sprite.SetImage(e.Atlas.Sprite(e.Frame))
	}
	e.AddComponent(e, &e.sprite)
	e.AddComponent(e, &e.Label)
	e.Label.FillTemplate(e)
}

func (e *Enemy) DrawLayer() int { return EnemyLayer }

func (e *Enemy) HP() float64 { return e.hp }

func (e *Enemy) Alive() bool { return e.hp > 0 }

func (e *Enemy) Handle() arena.Handle { return e.handle }

// TakeDamage lowers HP and reports whether the enemy is now dead.
func (e *Enemy) TakeDamage(amount float64) bool {
	if amount > 0 {
		e.hp -= amount
	}
	e.Label.FillTemplate(e)
	return e.hp <= 0
}

// Hit reports whether the world point (x, y) lands on this enemy.
func (e *Enemy) Hit(x, y float64) bool {
	return e.Transform.Location.Distance(vector3.New(x, y, e.Transform.Location.Z)) <= e.HitRadius
}

func (e *Enemy) Tick(deltaseconds float64) {
	e.ActorBase.Tick(deltaseconds)
	if e.rng == nil || e.Speed <= 0 {
		return
	}
	loc := &e.Transform.Location
	dist := loc.Distance(&e.target)
	if dist < 0.5 {
		e.pickTarget()
		return
	}
	step := e.Speed * deltaseconds
	if step >= dist {
		*loc = e.target
		return
	}
	*loc = *loc.Add(e.target.Sub(loc).MulScalar(step / dist))
}

func (e *Enemy) pickTarget() {
	angle := e.rng.Float64() * 2 * math.Pi
	r := e.rng.Float64() * e.WanderRadius
	e.target = *e.home.Add(vector3.New(math.Cos(angle)*r, math.Sin(angle)*r, 0))
}
