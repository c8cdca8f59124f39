package flat

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/slices"
)

type World struct {
	actors    []Actor
	tickables []Tickable
	// drawables by layer, drawn in ascending order
	layers    []int
	drawables map[int][]Drawable
}

func NewWorld() *World {
	return &World{drawables: map[int][]Drawable{}}
}

func (w *World) AddToWorld(actor Actor) {
	w.actors = append(w.actors, actor)
	if tickable, ok := actor.(Tickable); ok {
		w.tickables = append(w.tickables, tickable)
	}
	if drawable, ok := actor.(Drawable); ok {
		layer := 0
		if l, ok := actor.(Layered); ok {
			layer = l.DrawLayer()
		}
		if _, seen := w.drawables[layer]; !seen {
			w.layers = append(w.layers, layer)
			slices.Sort(w.layers)
		}
		w.drawables[layer] = append(w.drawables[layer], drawable)
	}
	if playable, ok := actor.(Playable); ok {
		playable.BeginPlay()
	}
}

// RemoveFromWorld is a no-op for actors that are not in the world.
func (w *World) RemoveFromWorld(actor Actor) {
	before := len(w.actors)
	w.actors = slices.DeleteFunc(w.actors, func(a Actor) bool {
		return a == actor
	})
	if len(w.actors) == before {
		return
	}
	if tickable, ok := actor.(Tickable); ok {
		w.tickables = slices.DeleteFunc(w.tickables, func(t Tickable) bool {
			return t == tickable
		})
	}
	if drawable, ok := actor.(Drawable); ok {
		for layer, list := range w.drawables {
			w.drawables[layer] = slices.DeleteFunc(list, func(d Drawable) bool {
				return d == drawable
			})
		}
	}
	if ender, ok := actor.(EndPlayable); ok {
		ender.EndPlay()
	}
}

func (w *World) Len() int {
	return len(w.actors)
}

func (w *World) Tick(deltaseconds float64) {
	for _, tickable := range w.tickables {
		tickable.Tick(deltaseconds)
	}
}

func (w *World) Draw(screen *ebiten.Image, camera *Camera) {
	view := camera.View()
	for _, layer := range w.layers {
		for _, drawable := range w.drawables[layer] {
			drawable.Draw(screen, view)
		}
	}
}

func FindActorsByType[T Actor](w *World) []T {
	var ret []T
	for _, a := range w.actors {
		if t, ok := a.(T); ok {
			ret = append(ret, t)
		}
	}
	return ret
}
