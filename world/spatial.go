package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/slipstream/behave"
)

const defaultCellSize = 20.0

// Region is a spatial filter for Query. Build one with Circle or Rect.
type Region interface {
	// Contains reports whether the point falls inside the region.
	Contains(p mgl64.Vec2) bool

	bounds() (min, max mgl64.Vec2)
}

type circle struct {
	center mgl64.Vec2
	radius float64
}

// Circle is the region within radius of center, boundary inclusive.
func Circle(center mgl64.Vec2, radius float64) Region {
	return circle{center: center, radius: radius}
}

func (c circle) Contains(p mgl64.Vec2) bool {
	return p.Sub(c.center).Len() <= c.radius
}

func (c circle) bounds() (mgl64.Vec2, mgl64.Vec2) {
	r := mgl64.Vec2{c.radius, c.radius}
	return c.center.Sub(r), c.center.Add(r)
}

type rect struct {
	min, max mgl64.Vec2
}

// Rect is the axis-aligned region between min and max, boundary inclusive.
func Rect(min, max mgl64.Vec2) Region {
	return rect{min: min, max: max}
}

func (r rect) Contains(p mgl64.Vec2) bool {
	return p.X() >= r.min.X() && p.X() <= r.max.X() &&
		p.Y() >= r.min.Y() && p.Y() <= r.max.Y()
}

func (r rect) bounds() (mgl64.Vec2, mgl64.Vec2) { return r.min, r.max }

type cellKey struct {
	cx, cy int32
}

// grid is a cell-based spatial index over tracked entity positions.
// Accessed only from the step-driving goroutine, so it carries no locks.
type grid struct {
	size  float64
	cells map[cellKey]map[behave.Entity]struct{}
}

func newGrid(size float64) *grid {
	return &grid{
		size:  size,
		cells: make(map[cellKey]map[behave.Entity]struct{}),
	}
}

func (g *grid) key(p mgl64.Vec2) cellKey {
	return cellKey{
		cx: int32(math.Floor(p.X() / g.size)),
		cy: int32(math.Floor(p.Y() / g.size)),
	}
}

func (g *grid) add(e behave.Entity, p mgl64.Vec2) {
	k := g.key(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[behave.Entity]struct{})
		g.cells[k] = cell
	}
	cell[e] = struct{}{}
}

func (g *grid) remove(e behave.Entity, p mgl64.Vec2) {
	k := g.key(p)
	if cell := g.cells[k]; cell != nil {
		delete(cell, e)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

func (g *grid) move(e behave.Entity, from, to mgl64.Vec2) {
	if g.key(from) == g.key(to) {
		return
	}
	g.remove(e, from)
	g.add(e, to)
}

// candidates returns the entities in every cell overlapping the bounding
// box. Callers still filter by the exact region.
func (g *grid) candidates(min, max mgl64.Vec2) []behave.Entity {
	lo := g.key(min)
	hi := g.key(max)

	var out []behave.Entity
	for cx := lo.cx; cx <= hi.cx; cx++ {
		for cy := lo.cy; cy <= hi.cy; cy++ {
			for e := range g.cells[cellKey{cx: cx, cy: cy}] {
				out = append(out, e)
			}
		}
	}
	return out
}
