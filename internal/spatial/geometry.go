// Package spatial answers the geometric questions behind auras: which grid
// cells a token occupies, how far apart two tokens are, which tokens lie in
// a wall-restricted region and which templates contain a token.
package spatial

import (
	"math"

	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// epsilon absorbs floating point error in boundary tests.
const epsilon = 1e-6

// Rect is an axis aligned rectangle in scene pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside or on the rectangle.
func (r Rect) Contains(p scene.Point) bool {
	return p.X >= r.X-epsilon && p.X <= r.MaxX()+epsilon &&
		p.Y >= r.Y-epsilon && p.Y <= r.MaxY()+epsilon
}

// Intersects reports whether the rectangles overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.MaxX()+epsilon && o.X <= r.MaxX()+epsilon &&
		r.Y <= o.MaxY()+epsilon && o.Y <= r.MaxY()+epsilon
}

// Shape is a region that can test containment and be ray cast.
type Shape interface {
	Contains(p scene.Point) bool
	Bounds() Rect
	// exit returns the distance from origin along the unit direction at
	// which the ray leaves the shape.
	exit(origin scene.Point, dx, dy float64) float64
}

// Circle is a disc.
type Circle struct {
	Center scene.Point
	Radius float64
}

// Contains implements Shape
func (c Circle) Contains(p scene.Point) bool {
	return c.Center.DistanceTo(p) <= c.Radius+epsilon
}

// Bounds implements Shape
func (c Circle) Bounds() Rect {
	return Rect{
		X:      c.Center.X - c.Radius,
		Y:      c.Center.Y - c.Radius,
		Width:  2 * c.Radius,
		Height: 2 * c.Radius,
	}
}

func (c Circle) exit(origin scene.Point, dx, dy float64) float64 {
	// solve |origin + t*d - center| = r for the positive root
	ox, oy := origin.X-c.Center.X, origin.Y-c.Center.Y
	b := ox*dx + oy*dy
	cc := ox*ox + oy*oy - c.Radius*c.Radius
	disc := b*b - cc
	if disc < 0 {
		return 0
	}
	t := -b + math.Sqrt(disc)
	return math.Max(t, 0)
}

// Box is a rectangle shape.
type Box struct {
	Rect
}

// Bounds implements Shape
func (b Box) Bounds() Rect { return b.Rect }

func (b Box) exit(origin scene.Point, dx, dy float64) float64 {
	t := math.Inf(1)
	if dx > epsilon {
		t = math.Min(t, (b.MaxX()-origin.X)/dx)
	} else if dx < -epsilon {
		t = math.Min(t, (b.X-origin.X)/dx)
	}
	if dy > epsilon {
		t = math.Min(t, (b.MaxY()-origin.Y)/dy)
	} else if dy < -epsilon {
		t = math.Min(t, (b.Y-origin.Y)/dy)
	}
	if math.IsInf(t, 1) || t < 0 {
		return 0
	}
	return t
}

// Dot is a single point.
type Dot struct {
	scene.Point
}

// Contains implements Shape
func (d Dot) Contains(p scene.Point) bool {
	return d.DistanceTo(p) <= epsilon
}

// Bounds implements Shape
func (d Dot) Bounds() Rect { return Rect{X: d.X, Y: d.Y} }

func (d Dot) exit(_ scene.Point, _, _ float64) float64 { return 0 }

// orientation returns the sign of the cross product (b-a)x(c-a).
func orientation(a, b, c scene.Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	default:
		return 0
	}
}

// segmentsCross reports whether segment p1p2 properly crosses q1q2. Touching
// an endpoint or running collinear does not count as crossing.
func segmentsCross(p1, p2, q1, q2 scene.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)
	return o1*o2 < 0 && o3*o4 < 0
}

// rayHit returns the distance along the unit ray at which it meets the
// segment ab, and false when it misses.
func rayHit(origin scene.Point, dx, dy float64, a, b scene.Point) (float64, bool) {
	ex, ey := b.X-a.X, b.Y-a.Y
	denom := dx*ey - dy*ex
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	ax, ay := a.X-origin.X, a.Y-origin.Y
	t := (ax*ey - ay*ex) / denom
	u := (ax*dy - ay*dx) / denom
	if t < epsilon || u < -epsilon || u > 1+epsilon {
		return 0, false
	}
	return t, true
}
