package spatial

import (
	"math"
	"sort"

	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// DefaultIndexCells is the width of an index bucket in grid cells.
const DefaultIndexCells = 5

type cellKey struct {
	X int
	Y int
}

type indexEntry struct {
	token  *scene.Token
	bounds Rect
	cells  []cellKey
	order  int
}

// Index buckets tokens into a uniform grid so that range queries only test
// tokens near the query rectangle.
type Index struct {
	grid        scene.Grid
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]string
	entries     map[string]*indexEntry
	seq         int
}

// NewIndex creates an empty index. A non-positive cell size buckets by
// DefaultIndexCells grid cells.
func NewIndex(grid scene.Grid, cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = grid.Size * DefaultIndexCells
	}
	return &Index{
		grid:        grid,
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]string),
		entries:     make(map[string]*indexEntry),
	}
}

// Len returns the number of indexed tokens.
func (idx *Index) Len() int { return len(idx.entries) }

// Upsert inserts a token or refreshes its position.
func (idx *Index) Upsert(t *scene.Token) {
	if t == nil || t.ID == "" {
		return
	}

	order := idx.seq
	if entry, ok := idx.entries[t.ID]; ok {
		order = entry.order
		idx.removeFromCells(t.ID, entry.cells)
	} else {
		idx.seq++
	}

	bounds := TokenBounds(idx.grid, t)
	entry := &indexEntry{token: t, bounds: bounds, cells: idx.cellsFor(bounds), order: order}
	idx.entries[t.ID] = entry
	for _, cell := range entry.cells {
		idx.cells[cell] = append(idx.cells[cell], t.ID)
	}
}

// Remove deletes a token from the index.
func (idx *Index) Remove(id string) {
	entry, ok := idx.entries[id]
	if !ok {
		return
	}
	idx.removeFromCells(id, entry.cells)
	delete(idx.entries, id)
}

// Query returns the tokens whose footprint overlaps the rectangle, in
// insertion order.
func (idx *Index) Query(r Rect) []*scene.Token {
	seen := make(map[string]struct{})
	var hits []*indexEntry
	for _, cell := range idx.cellsFor(r) {
		for _, id := range idx.cells[cell] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			entry := idx.entries[id]
			if entry.bounds.Intersects(r) {
				hits = append(hits, entry)
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })
	out := make([]*scene.Token, 0, len(hits))
	for _, entry := range hits {
		out = append(out, entry.token)
	}
	return out
}

func (idx *Index) removeFromCells(id string, cells []cellKey) {
	for _, cell := range cells {
		bucket := idx.cells[cell]
		for i := range bucket {
			if bucket[i] != id {
				continue
			}
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
		if len(bucket) == 0 {
			delete(idx.cells, cell)
		} else {
			idx.cells[cell] = bucket
		}
	}
}

func (idx *Index) cellsFor(r Rect) []cellKey {
	minX := idx.coordToCell(r.X - epsilon)
	minY := idx.coordToCell(r.Y - epsilon)
	maxX := idx.coordToCell(r.MaxX() + epsilon)
	maxY := idx.coordToCell(r.MaxY() + epsilon)
	cells := make([]cellKey, 0, (maxX-minX+1)*(maxY-minY+1))
	for row := minY; row <= maxY; row++ {
		for col := minX; col <= maxX; col++ {
			cells = append(cells, cellKey{X: col, Y: row})
		}
	}
	return cells
}

func (idx *Index) coordToCell(value float64) int {
	return int(math.Floor(value * idx.invCellSize))
}
