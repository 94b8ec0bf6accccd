package spatial

import (
	"math"

	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// OccupiedCenters returns the centers of the grid cells a token covers.
// Tokens no larger than one cell yield their own center, which for a zero
// footprint is the token's origin.
func OccupiedCenters(g scene.Grid, t *scene.Token) []scene.Point {
	if t.Width <= 1 && t.Height <= 1 {
		return []scene.Point{t.Center(g)}
	}

	half := g.Size / 2
	centers := make([]scene.Point, 0, int(math.Ceil(t.Width)*math.Ceil(t.Height)))
	for a := 0; float64(a) < t.Width; a++ {
		for b := 0; float64(b) < t.Height; b++ {
			centers = append(centers, scene.Point{
				X: t.X + float64(a)*g.Size + half,
				Y: t.Y + float64(b)*g.Size + half,
			})
		}
	}
	return centers
}

// TokenBounds returns the pixel footprint of a token.
func TokenBounds(g scene.Grid, t *scene.Token) Rect {
	return Rect{X: t.X, Y: t.Y, Width: t.Width * g.Size, Height: t.Height * g.Size}
}

// RangeRect returns the square that extends a token's footprint by size
// units on every side.
func RangeRect(g scene.Grid, t *scene.Token, size float64) Rect {
	spaces := size / g.Distance
	x0 := t.X - spaces*g.Size
	y0 := t.Y - spaces*g.Size
	dist := (t.Width + 2*spaces) * g.Size
	return Rect{X: x0, Y: y0, Width: dist, Height: dist}
}

// AuraRadius converts a range in units to a pixel radius measured from the
// token's center, so that the aura starts at the token's edge.
func AuraRadius(g scene.Grid, t *scene.Token, size float64) float64 {
	return size*g.DistancePixels() + t.Width*g.Size/2
}

// Measure returns the distance in grid units between two points under the
// grid's diagonal rule. Gridded rules count whole cells.
func Measure(g scene.Grid, a, b scene.Point) float64 {
	dx := math.Abs(a.X-b.X) / g.Size
	dy := math.Abs(a.Y-b.Y) / g.Size

	switch g.Diagonals {
	case scene.DiagonalEuclidean:
		return math.Hypot(dx, dy) * g.Distance
	case scene.DiagonalAlternating:
		nx, ny := math.Round(dx), math.Round(dy)
		diagonal := math.Min(nx, ny)
		straight := math.Max(nx, ny) - diagonal
		return (straight + diagonal + math.Floor(diagonal/2)) * g.Distance
	default:
		return math.Max(math.Round(dx), math.Round(dy)) * g.Distance
	}
}
