package flat

import (
	"math"

	"github.com/deeean/go-vector/vector3"
	"github.com/hajimehoshi/ebiten/v2"
)

type Transform struct {
	Location vector3.Vector3
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

func (t *Transform) DefaultInitialize() {
	t.ScaleX = 1
	t.ScaleY = 1
}

func (t *Transform) SetLocation(x, y float64) {
	t.Location.Set(x, y, t.Location.Z)
}

func (t *Transform) AddRotation(deg float64) {
	t.Rotation += deg
	if t.Rotation >= 360 || t.Rotation < 0 {
		// the first mod brings us to the range -360..360
		// add on another to get to 0..720, and the second mod to get to 0..360
		t.Rotation = math.Mod(math.Mod(t.Rotation, 360)+360.0, 360.0)
	}
}

// Apply appends this transform to geom: scale, then rotate, then move to
// Location.  A zero scale is treated as 1.
func (t *Transform) Apply(geom *ebiten.GeoM) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	geom.Scale(sx, sy)
	geom.Rotate(t.Rotation * math.Pi / 180.0)
	geom.Translate(t.Location.X, t.Location.Y)
}
