// Package scene holds the spatial entities of a scene: the grid, tokens, walls
// and placed templates.
package scene

import (
	"encoding/json"
	"io"
	"math"

	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/errors"
)

// DiagonalRule controls how diagonal grid movement is measured.
type DiagonalRule string

// Diagonal rules
const (
	DiagonalEquidistant DiagonalRule = "equidistant"
	DiagonalAlternating DiagonalRule = "alternating"
	DiagonalEuclidean   DiagonalRule = "euclidean"
)

// Grid describes the scene's square grid.
type Grid struct {
	// Size is the width of a cell in pixels.
	Size float64 `json:"size"`
	// Distance is the number of units a cell spans.
	Distance  float64      `json:"distance"`
	Units     string       `json:"units,omitempty"`
	Diagonals DiagonalRule `json:"diagonals,omitempty"`
}

// DistancePixels returns the number of pixels per grid unit.
func (g Grid) DistancePixels() float64 {
	if g.Distance == 0 {
		return 0
	}
	return g.Size / g.Distance
}

// Point is a position in scene pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean pixel distance between two points.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Disposition is a token's attitude towards the players.
type Disposition int

// Token dispositions
const (
	DispositionSecret   Disposition = -2
	DispositionHostile  Disposition = -1
	DispositionNeutral  Disposition = 0
	DispositionFriendly Disposition = 1
)

// Token is an actor placed on the scene.
type Token struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	// Width and Height are measured in grid cells.
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Elevation   float64     `json:"elevation,omitempty"`
	Disposition Disposition `json:"disposition"`
	Hidden      bool        `json:"hidden,omitempty"`
	ActorID     string      `json:"actorId,omitempty"`
	// Actor is embedded for unlinked tokens and resolved from ActorID otherwise.
	Actor *document.Actor `json:"actor,omitempty"`
}

// Size returns the larger of the token's dimensions.
func (t *Token) Size() float64 {
	return math.Max(t.Width, t.Height)
}

// Center returns the pixel center of the token.
func (t *Token) Center(g Grid) Point {
	return Point{
		X: t.X + t.Width*g.Size/2,
		Y: t.Y + t.Height*g.Size/2,
	}
}

// Scene is a map with a grid, tokens, walls and templates.
type Scene struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Width     float64              `json:"width,omitempty"`
	Height    float64              `json:"height,omitempty"`
	Grid      Grid                 `json:"grid"`
	Actors    []*document.Actor    `json:"actors,omitempty"`
	Tokens    []*Token             `json:"tokens,omitempty"`
	Walls     []*Wall              `json:"walls,omitempty"`
	Templates []*document.Template `json:"templates,omitempty"`
}

// Load decodes a scene and links its documents.
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene")
	}
	if err := s.Link(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Link resolves token actors and wires parent references.
func (s *Scene) Link() error {
	if s.Grid.Size <= 0 {
		return errors.InvalidArgument("grid size must be positive")
	}
	if s.Grid.Distance <= 0 {
		return errors.InvalidArgument("grid distance must be positive")
	}
	if s.Grid.Diagonals == "" {
		s.Grid.Diagonals = DiagonalEquidistant
	}

	actors := make(map[string]*document.Actor, len(s.Actors))
	for _, actor := range s.Actors {
		actor.Link()
		actors[actor.ID] = actor
	}

	for _, token := range s.Tokens {
		if token.Actor != nil {
			token.Actor.Link()
			continue
		}
		if token.ActorID == "" {
			continue
		}
		actor, ok := actors[token.ActorID]
		if !ok {
			return errors.NotFoundf("token %s references unknown actor %s", token.ID, token.ActorID)
		}
		token.Actor = actor
	}

	for _, template := range s.Templates {
		template.SetScene(s.ID)
	}
	return nil
}

// Token returns the token with the id.
func (s *Scene) Token(id string) *Token {
	for _, token := range s.Tokens {
		if token.ID == id {
			return token
		}
	}
	return nil
}

// TokenForActor returns the first token representing the actor.
func (s *Scene) TokenForActor(actor *document.Actor) *Token {
	if actor == nil {
		return nil
	}
	for _, token := range s.Tokens {
		if token.Actor == actor {
			return token
		}
	}
	return nil
}

// Index builds a document index over the scene's actors, token actors and
// templates.
func (s *Scene) Index() *document.Index {
	idx := document.NewIndex()
	for _, actor := range s.Actors {
		idx.Add(actor)
	}
	for _, token := range s.Tokens {
		if token.Actor != nil {
			idx.Add(token.Actor)
		}
	}
	for _, template := range s.Templates {
		idx.Add(template)
	}
	return idx
}
