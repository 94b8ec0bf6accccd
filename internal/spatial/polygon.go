package spatial

import (
	"math"
	"sort"

	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

const (
	sweepRays       = 72
	endpointNudge   = 1e-4
	unboundedExtent = 1e5
)

// SweepConfig configures a single swept polygon.
type SweepConfig struct {
	// Boundary limits the polygon. Nil leaves it bounded only by walls.
	Boundary Shape
	// Restriction selects which walls block. Empty ignores walls.
	Restriction scene.Restriction
	Walls       []*scene.Wall
}

// Polygon is the region visible from an origin: the boundary shape minus
// everything hidden behind blocking walls. Constraints intersect further
// polygons into it. Polygons are built per query and never stored.
type Polygon struct {
	origin      scene.Point
	boundary    Shape
	restriction scene.Restriction
	walls       []*scene.Wall
	constraints []*Polygon
}

// NewPolygon sweeps a polygon from the origin.
func NewPolygon(origin scene.Point, cfg SweepConfig) *Polygon {
	p := &Polygon{
		origin:      origin,
		boundary:    cfg.Boundary,
		restriction: cfg.Restriction,
	}
	if cfg.Restriction == "" {
		return p
	}

	var bounds *Rect
	if cfg.Boundary != nil {
		b := cfg.Boundary.Bounds()
		bounds = &b
	}
	for _, wall := range cfg.Walls {
		if wall.Level(cfg.Restriction) == scene.LevelNone {
			continue
		}
		if bounds != nil && !bounds.Intersects(wallBounds(wall)) {
			continue
		}
		p.walls = append(p.walls, wall)
	}
	return p
}

// ApplyConstraint returns a polygon covering the intersection of p and c.
func (p *Polygon) ApplyConstraint(c *Polygon) *Polygon {
	out := *p
	out.constraints = append(append([]*Polygon(nil), p.constraints...), c)
	return &out
}

// Origin returns the point the polygon was swept from.
func (p *Polygon) Origin() scene.Point { return p.origin }

// Contains reports whether the point is inside the boundary and visible from
// the origin in this polygon and every constraint.
func (p *Polygon) Contains(pt scene.Point) bool {
	if p.boundary != nil && !p.boundary.Contains(pt) {
		return false
	}
	if p.restriction != "" && p.blocked(pt) {
		return false
	}
	for _, c := range p.constraints {
		if !c.Contains(pt) {
			return false
		}
	}
	return true
}

// blocked reports whether walls hide pt from the origin. A normal wall
// blocks on its own; limited walls block from the second one crossed.
func (p *Polygon) blocked(pt scene.Point) bool {
	limited := 0
	for _, wall := range p.walls {
		if !segmentsCross(p.origin, pt, wall.A, wall.B) {
			continue
		}
		switch wall.Level(p.restriction) {
		case scene.LevelNormal:
			return true
		case scene.LevelLimited:
			limited++
			if limited >= 2 {
				return true
			}
		}
	}
	return false
}

// Points traces the polygon outline by casting rays from the origin towards
// every wall endpoint and at regular angles.
func (p *Polygon) Points() []scene.Point {
	angles := p.sweepAngles()
	points := make([]scene.Point, 0, len(angles))
	for _, angle := range angles {
		dx, dy := math.Cos(angle), math.Sin(angle)
		d := p.reach(dx, dy)
		points = append(points, scene.Point{X: p.origin.X + d*dx, Y: p.origin.Y + d*dy})
	}
	return points
}

func (p *Polygon) sweepAngles() []float64 {
	angles := make([]float64, 0, sweepRays)
	for i := 0; i < sweepRays; i++ {
		angles = append(angles, 2*math.Pi*float64(i)/sweepRays)
	}

	var visit func(q *Polygon)
	visit = func(q *Polygon) {
		for _, wall := range q.walls {
			for _, end := range []scene.Point{wall.A, wall.B} {
				a := math.Atan2(end.Y-q.origin.Y, end.X-q.origin.X)
				angles = append(angles, a-endpointNudge, a, a+endpointNudge)
			}
		}
		if box, ok := q.boundary.(Box); ok {
			for _, corner := range []scene.Point{
				{X: box.X, Y: box.Y}, {X: box.MaxX(), Y: box.Y},
				{X: box.MaxX(), Y: box.MaxY()}, {X: box.X, Y: box.MaxY()},
			} {
				angles = append(angles, math.Atan2(corner.Y-q.origin.Y, corner.X-q.origin.X))
			}
		}
		for _, c := range q.constraints {
			visit(c)
		}
	}
	visit(p)

	for i, a := range angles {
		angles[i] = math.Mod(a+2*math.Pi, 2*math.Pi)
	}
	sort.Float64s(angles)
	return angles
}

// reach returns how far a ray from the origin travels inside the polygon.
func (p *Polygon) reach(dx, dy float64) float64 {
	d := unboundedExtent
	if p.boundary != nil {
		d = p.boundary.exit(p.origin, dx, dy)
	}
	if p.restriction != "" {
		d = math.Min(d, p.wallReach(dx, dy))
	}
	for _, c := range p.constraints {
		d = math.Min(d, c.reach(dx, dy))
	}
	return d
}

func (p *Polygon) wallReach(dx, dy float64) float64 {
	nearest := math.Inf(1)
	var limited []float64
	for _, wall := range p.walls {
		t, ok := rayHit(p.origin, dx, dy, wall.A, wall.B)
		if !ok {
			continue
		}
		switch wall.Level(p.restriction) {
		case scene.LevelNormal:
			nearest = math.Min(nearest, t)
		case scene.LevelLimited:
			limited = append(limited, t)
		}
	}
	if len(limited) >= 2 {
		sort.Float64s(limited)
		nearest = math.Min(nearest, limited[1])
	}
	return nearest
}

func wallBounds(w *scene.Wall) Rect {
	x0, x1 := math.Min(w.A.X, w.B.X), math.Max(w.A.X, w.B.X)
	y0, y1 := math.Min(w.A.Y, w.B.Y), math.Max(w.A.Y, w.B.Y)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
