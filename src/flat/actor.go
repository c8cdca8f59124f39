package flat

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type Component interface {
	SetOwner(owner Actor)
	Owner() Actor
}

type Actor interface {
	GetTransform() *Transform
}

type Tickable interface {
	Tick(deltaseconds float64)
}

// Drawable draws itself through view, the world to screen transform.
type Drawable interface {
	Draw(screen *ebiten.Image, view ebiten.GeoM)
}

// Layered drawables are drawn in ascending layer order.  Drawables that do
// not implement it are on layer 0.
type Layered interface {
	DrawLayer() int
}

type Playable interface {
	BeginPlay()
}

// EndPlayable actors are told when they are removed from the world.
type EndPlayable interface {
	EndPlay()
}

type ComponentBase struct {
	owner Actor
}

func (c *ComponentBase) SetOwner(owner Actor) {
	c.owner = owner
}
func (c *ComponentBase) Owner() Actor {
	return c.owner
}

type ActorBase struct {
	Transform Transform

	components         []Component
	tickableComponents []Tickable
	drawableComponents []Drawable
}

// "static assert" that ActorBase implements Actor
var _ = Actor((*ActorBase)(nil))

// AddComponent attaches component to owner, which should be the outermost
// actor embedding this ActorBase.
func (a *ActorBase) AddComponent(owner Actor, component Component) {
	component.SetOwner(owner)
	a.components = append(a.components, component)
	if tickable, ok := component.(Tickable); ok {
		a.tickableComponents = append(a.tickableComponents, tickable)
	}
	if drawable, ok := component.(Drawable); ok {
		a.drawableComponents = append(a.drawableComponents, drawable)
	}
}

func (a *ActorBase) Components() []Component {
	return a.components
}

func (a *ActorBase) GetTransform() *Transform {
	return &a.Transform
}

func (a *ActorBase) Tick(deltaseconds float64) {
	for _, tickable := range a.tickableComponents {
		tickable.Tick(deltaseconds)
	}
}

func (a *ActorBase) Draw(screen *ebiten.Image, view ebiten.GeoM) {
	for _, drawable := range a.drawableComponents {
		drawable.Draw(screen, view)
	}
}

// FindComponent returns the first component of type T on actor.
func FindComponent[T Component](actor *ActorBase) (T, bool) {
	for _, c := range actor.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
