package flat

import (
	"github.com/deeean/go-vector/vector3"
	"github.com/hajimehoshi/ebiten/v2"
)

// Camera looks at Location with Location drawn at the center of the screen.
type Camera struct {
	Location vector3.Vector3
	Zoom     float64

	screenW, screenH int
}

func NewCamera(zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{Zoom: zoom}
}

func (c *Camera) SetScreenSize(w, h int) {
	c.screenW, c.screenH = w, h
}

func (c *Camera) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

func (c *Camera) Move(dx, dy float64) {
	c.Location = *c.Location.Add(vector3.New(dx, dy, 0))
}

func (c *Camera) MoveTo(x, y float64) {
	c.Location.Set(x, y, 0)
}

// View maps world positions to screen pixels.
func (c *Camera) View() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-c.Location.X, -c.Location.Y)
	g.Scale(c.Zoom, c.Zoom)
	g.Translate(float64(c.screenW)/2, float64(c.screenH)/2)
	return g
}

func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	v := c.View()
	return v.Apply(x, y)
}

func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	v := c.View()
	v.Invert()
	return v.Apply(sx, sy)
}
