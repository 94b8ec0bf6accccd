package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/spatial"
)

var testGrid = scene.Grid{Size: 100, Distance: 5, Diagonals: scene.DiagonalEquidistant}

func TestOccupiedCenters(t *testing.T) {
	testCases := []struct {
		name  string
		token *scene.Token
		want  []scene.Point
	}{
		{
			name:  "single cell",
			token: &scene.Token{X: 0, Y: 0, Width: 1, Height: 1},
			want:  []scene.Point{{X: 50, Y: 50}},
		},
		{
			name:  "tiny token uses its center",
			token: &scene.Token{X: 0, Y: 0, Width: 0.5, Height: 0.5},
			want:  []scene.Point{{X: 25, Y: 25}},
		},
		{
			name:  "zero footprint is a point",
			token: &scene.Token{X: 30, Y: 40},
			want:  []scene.Point{{X: 30, Y: 40}},
		},
		{
			name:  "large token",
			token: &scene.Token{X: 100, Y: 100, Width: 2, Height: 2},
			want: []scene.Point{
				{X: 150, Y: 150}, {X: 150, Y: 250},
				{X: 250, Y: 150}, {X: 250, Y: 250},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, spatial.OccupiedCenters(testGrid, tc.token))
		})
	}
}

func TestMeasure(t *testing.T) {
	origin := scene.Point{X: 0, Y: 0}

	testCases := []struct {
		name      string
		diagonals scene.DiagonalRule
		to        scene.Point
		want      float64
	}{
		{"equidistant straight", scene.DiagonalEquidistant, scene.Point{X: 300, Y: 0}, 15},
		{"equidistant diagonal", scene.DiagonalEquidistant, scene.Point{X: 300, Y: 100}, 15},
		{"alternating diagonal", scene.DiagonalAlternating, scene.Point{X: 300, Y: 300}, 20},
		{"alternating mixed", scene.DiagonalAlternating, scene.Point{X: 400, Y: 200}, 25},
		{"euclidean", scene.DiagonalEuclidean, scene.Point{X: 300, Y: 400}, 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := testGrid
			g.Diagonals = tc.diagonals
			assert.InDelta(t, tc.want, spatial.Measure(g, origin, tc.to), 1e-9)
		})
	}
}

func TestRangeRect(t *testing.T) {
	token := &scene.Token{X: 0, Y: 0, Width: 1, Height: 1}
	assert.Equal(t, spatial.Rect{X: -200, Y: -200, Width: 500, Height: 500}, spatial.RangeRect(testGrid, token, 10))
	assert.Equal(t, 250.0, spatial.AuraRadius(testGrid, token, 10))
}

func TestIndexQuery(t *testing.T) {
	idx := spatial.NewIndex(testGrid, 0)
	a := &scene.Token{ID: "a", X: 0, Y: 0, Width: 1, Height: 1}
	b := &scene.Token{ID: "b", X: 2000, Y: 2000, Width: 1, Height: 1}
	c := &scene.Token{ID: "c", X: 100, Y: 0, Width: 1, Height: 1}
	idx.Upsert(a)
	idx.Upsert(b)
	idx.Upsert(c)
	assert.Equal(t, 3, idx.Len())

	got := idx.Query(spatial.Rect{X: 0, Y: 0, Width: 300, Height: 300})
	assert.Equal(t, []*scene.Token{a, c}, got)

	b.X, b.Y = 150, 150
	idx.Upsert(b)
	got = idx.Query(spatial.Rect{X: 0, Y: 0, Width: 300, Height: 300})
	assert.Equal(t, []*scene.Token{a, b, c}, got, "reinserting keeps insertion order")

	idx.Remove("a")
	got = idx.Query(spatial.Rect{X: 0, Y: 0, Width: 300, Height: 300})
	assert.Equal(t, []*scene.Token{b, c}, got)
}
