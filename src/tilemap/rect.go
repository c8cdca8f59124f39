package tilemap

import "fmt"

// Rect is an axis aligned rectangle of tiles.  Both Min and Max are
// inclusive; a Rect with Max less than Min on either axis is empty.
type Rect struct {
	Min, Max Coord
}

// HalfOpen builds the Rect covering x in [x0, x1) and y in [y0, y1).
func HalfOpen(x0, y0, x1, y1 int) Rect {
	return Rect{Min: Coord{x0, y0}, Max: Coord{x1 - 1, y1 - 1}}
}

// WindowAround is the inclusive rectangle of half extent (halfW, halfH)
// centered on c.
func WindowAround(c Coord, halfW, halfH int) Rect {
	return Rect{
		Min: Coord{c.X - halfW, c.Y - halfH},
		Max: Coord{c.X + halfW, c.Y + halfH},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("x[%d,%d] y[%d,%d]", r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
}

func (r Rect) Empty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Max.X - r.Min.X + 1
}

func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Max.Y - r.Min.Y + 1
}

func (r Rect) Area() int {
	return r.Width() * r.Height()
}

func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Coord{maxInt(r.Min.X, o.Min.X), maxInt(r.Min.Y, o.Min.Y)},
		Max: Coord{minInt(r.Max.X, o.Max.X), minInt(r.Max.Y, o.Max.Y)},
	}
	if out.Empty() {
		return Rect{Min: Coord{0, 0}, Max: Coord{-1, -1}}
	}
	return out
}

// Subtract returns up to four disjoint rectangles that together cover
// exactly the tiles of r that are not in o.
func (r Rect) Subtract(o Rect) []Rect {
	if r.Empty() {
		return nil
	}
	in := r.Intersect(o)
	if in.Empty() {
		return []Rect{r}
	}
	var out []Rect
	// full width bands above and below the overlap
	if in.Min.Y > r.Min.Y {
		out = append(out, Rect{Min: r.Min, Max: Coord{r.Max.X, in.Min.Y - 1}})
	}
	if in.Max.Y < r.Max.Y {
		out = append(out, Rect{Min: Coord{r.Min.X, in.Max.Y + 1}, Max: r.Max})
	}
	// left and right slivers beside the overlap
	if in.Min.X > r.Min.X {
		out = append(out, Rect{Min: Coord{r.Min.X, in.Min.Y}, Max: Coord{in.Min.X - 1, in.Max.Y}})
	}
	if in.Max.X < r.Max.X {
		out = append(out, Rect{Min: Coord{in.Max.X + 1, in.Min.Y}, Max: Coord{r.Max.X, in.Max.Y}})
	}
	return out
}

// Each visits every coordinate in row-major order.
func (r Rect) Each(fn func(c Coord)) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			fn(Coord{x, y})
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
