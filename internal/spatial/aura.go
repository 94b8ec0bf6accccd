package spatial

import (
	"math"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
)

// ShapeKind selects the boundary of a range query.
type ShapeKind string

// Range shapes
const (
	ShapeCircle ShapeKind = "circle"
	ShapeRect   ShapeKind = "rect"
)

// Config holds the configuration for the aura engine
type Config struct {
	Scene *scene.Scene
	// IndexCellSize is the pixel width of a token index bucket.
	IndexCellSize float64
}

// Validate ensures the scene can be measured
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Scene == nil {
		vb.RequiredField("Scene")
		return vb.Build()
	}
	if c.Scene.Grid.Size <= 0 {
		vb.Field("Scene.Grid.Size", "must be positive")
	}
	if c.Scene.Grid.Distance <= 0 {
		vb.Field("Scene.Grid.Distance", "must be positive")
	}
	return vb.Build()
}

// Engine answers aura range and distance queries for one scene.
type Engine struct {
	scene *scene.Scene
	grid  scene.Grid
	index *Index
}

// NewEngine creates an engine and indexes the scene's tokens.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	e := &Engine{
		scene: cfg.Scene,
		grid:  cfg.Scene.Grid,
		index: NewIndex(cfg.Scene.Grid, cfg.IndexCellSize),
	}
	for _, token := range cfg.Scene.Tokens {
		e.index.Upsert(token)
	}
	return e, nil
}

// Scene returns the scene the engine measures.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// MoveToken updates a token's position and re-indexes it.
func (e *Engine) MoveToken(id string, x, y float64) error {
	token := e.scene.Token(id)
	if token == nil {
		return errors.NotFoundf("token %s not found", id)
	}
	token.X, token.Y = x, y
	e.index.Upsert(token)
	return nil
}

// OccupiedCenters returns the cell centers the token covers.
func (e *Engine) OccupiedCenters(t *scene.Token) []scene.Point {
	return OccupiedCenters(e.grid, t)
}

// RangeRect returns the square extending the token by size units.
func (e *Engine) RangeRect(t *scene.Token, size float64) Rect {
	return RangeRect(e.grid, t, size)
}

// RestrictedCircle sweeps a circle of size units around the token,
// constrained by walls of each restriction type.
func (e *Engine) RestrictedCircle(t *scene.Token, size float64, restrictions []scene.Restriction) *Polygon {
	center := t.Center(e.grid)
	var boundary Shape = Dot{Point: center}
	if size > 0 {
		boundary = Circle{Center: center, Radius: AuraRadius(e.grid, t, size)}
	}
	return e.restricted(center, boundary, restrictions)
}

// RestrictedRect sweeps a square of size units around the token,
// constrained by walls of each restriction type.
func (e *Engine) RestrictedRect(t *scene.Token, size float64, restrictions []scene.Restriction) *Polygon {
	center := t.Center(e.grid)
	var boundary Shape = Dot{Point: center}
	if size > 0 {
		boundary = Box{Rect: RangeRect(e.grid, t, size)}
	}
	return e.restricted(center, boundary, restrictions)
}

func (e *Engine) restricted(center scene.Point, boundary Shape, restrictions []scene.Restriction) *Polygon {
	sweep := NewPolygon(center, SweepConfig{Boundary: boundary})
	for _, r := range canonicalRestrictions(restrictions) {
		sweep = sweep.ApplyConstraint(NewPolygon(center, SweepConfig{
			Boundary:    boundary,
			Restriction: r,
			Walls:       e.scene.Walls,
		}))
	}
	return sweep
}

// TokensInRange returns the tokens with at least one occupied cell center
// inside the restricted region around source. A radius of -1 returns every
// other token; an unknown shape returns none. The source is never included.
func (e *Engine) TokensInRange(source *scene.Token, radius float64, shape ShapeKind, restrictions []scene.Restriction) []*scene.Token {
	if source == nil {
		return nil
	}
	if radius == babonus.RangeUnlimited {
		out := make([]*scene.Token, 0, len(e.scene.Tokens))
		for _, token := range e.scene.Tokens {
			if token.ID != source.ID {
				out = append(out, token)
			}
		}
		return out
	}

	var sweep *Polygon
	switch shape {
	case ShapeCircle:
		sweep = e.RestrictedCircle(source, radius, restrictions)
	case ShapeRect:
		sweep = e.RestrictedRect(source, radius, restrictions)
	default:
		return nil
	}

	var out []*scene.Token
	for _, candidate := range e.index.Query(RangeRect(e.grid, source, math.Max(radius, 0))) {
		if candidate.ID == source.ID {
			continue
		}
		for _, c := range OccupiedCenters(e.grid, candidate) {
			if sweep.Contains(c) {
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}

// TokensInRangeOfAura returns the tokens a token aura reaches from source.
func (e *Engine) TokensInRangeOfAura(b *babonus.Bonus, source *scene.Token) []*scene.Token {
	if b == nil || !b.Aura.IsTokenAura() {
		return nil
	}
	return e.TokensInRange(source, float64(b.Aura.Range), ShapeCircle, b.Aura.Restrictions)
}

// MinimumDistance returns the shortest distance in grid units between any
// pair of cells of the two tokens, or the elevation difference when larger.
func (e *Engine) MinimumDistance(a, b *scene.Token) float64 {
	horizontal := math.Inf(1)
	for _, ca := range OccupiedCenters(e.grid, a) {
		for _, cb := range OccupiedCenters(e.grid, b) {
			horizontal = math.Min(horizontal, Measure(e.grid, ca, cb))
		}
	}
	vertical := math.Abs(a.Elevation - b.Elevation)
	return math.Max(horizontal, vertical)
}

// ContainingTemplates returns the templates that contain any of the token's
// cell centers.
func (e *Engine) ContainingTemplates(t *scene.Token) []*document.Template {
	centers := OccupiedCenters(e.grid, t)
	var out []*document.Template
	for _, template := range e.scene.Templates {
		shape := TemplateShape(e.grid, template)
		if shape == nil {
			continue
		}
		for _, c := range centers {
			if shape.Contains(c) {
				out = append(out, template)
				break
			}
		}
	}
	return out
}

// TemplateShape returns the region a template covers, nil for unsupported
// shapes.
func TemplateShape(g scene.Grid, t *document.Template) Shape {
	dp := g.DistancePixels()
	switch t.Shape {
	case document.ShapeCircle:
		return Circle{Center: scene.Point{X: t.X, Y: t.Y}, Radius: t.Distance * dp}
	case document.ShapeRect:
		return Box{Rect: Rect{X: t.X, Y: t.Y, Width: t.Width * dp, Height: t.Height * dp}}
	default:
		return nil
	}
}

// Dispositions groups tokens by disposition.
type Dispositions struct {
	Hostiles   []*scene.Token
	Friendlies []*scene.Token
	Neutrals   []*scene.Token
	Secret     []*scene.Token
}

// TokensByDisposition splits the scene's tokens by disposition.
func (e *Engine) TokensByDisposition() *Dispositions {
	out := &Dispositions{}
	for _, token := range e.scene.Tokens {
		switch token.Disposition {
		case scene.DispositionHostile:
			out.Hostiles = append(out.Hostiles, token)
		case scene.DispositionFriendly:
			out.Friendlies = append(out.Friendlies, token)
		case scene.DispositionNeutral:
			out.Neutrals = append(out.Neutrals, token)
		case scene.DispositionSecret:
			out.Secret = append(out.Secret, token)
		}
	}
	return out
}

// canonicalRestrictions keeps known restrictions once each, in canonical
// order.
func canonicalRestrictions(in []scene.Restriction) []scene.Restriction {
	wanted := make(map[scene.Restriction]bool, len(in))
	for _, r := range in {
		wanted[r] = true
	}
	var out []scene.Restriction
	for _, r := range scene.Restrictions {
		if wanted[r] {
			out = append(out, r)
		}
	}
	return out
}
