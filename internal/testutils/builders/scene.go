package builders

import (
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// SceneBuilder provides a fluent interface for building test Scene instances
type SceneBuilder struct {
	scene *scene.Scene
}

// NewSceneBuilder creates a 100px, 5ft grid scene
func NewSceneBuilder() *SceneBuilder {
	return &SceneBuilder{
		scene: &scene.Scene{
			ID:     "sceneTest0000001",
			Name:   "Test Scene",
			Width:  4000,
			Height: 4000,
			Grid: scene.Grid{
				Size:      100,
				Distance:  5,
				Units:     "ft",
				Diagonals: scene.DiagonalEquidistant,
			},
		},
	}
}

// WithGrid overrides the grid
func (b *SceneBuilder) WithGrid(g scene.Grid) *SceneBuilder {
	b.scene.Grid = g
	return b
}

// WithToken places a 1x1 token for the actor at the cell
func (b *SceneBuilder) WithToken(id string, actor *document.Actor, col, row int, disposition scene.Disposition) *SceneBuilder {
	return b.WithSizedToken(id, actor, col, row, 1, disposition)
}

// WithSizedToken places a size x size token for the actor at the cell
func (b *SceneBuilder) WithSizedToken(id string, actor *document.Actor, col, row int, size float64, disposition scene.Disposition) *SceneBuilder {
	t := &scene.Token{
		ID:          id,
		Name:        id,
		X:           float64(col) * b.scene.Grid.Size,
		Y:           float64(row) * b.scene.Grid.Size,
		Width:       size,
		Height:      size,
		Disposition: disposition,
	}
	if actor != nil {
		t.ActorID = actor.ID
		b.scene.Actors = append(b.scene.Actors, actor)
	}
	b.scene.Tokens = append(b.scene.Tokens, t)
	return b
}

// WithWall adds a wall blocking every restriction
func (b *SceneBuilder) WithWall(id string, a, c scene.Point) *SceneBuilder {
	b.scene.Walls = append(b.scene.Walls, &scene.Wall{
		ID:    id,
		A:     a,
		B:     c,
		Sight: scene.LevelNormal,
		Move:  scene.LevelNormal,
		Light: scene.LevelNormal,
		Sound: scene.LevelNormal,
	})
	return b
}

// WithTemplate adds a template
func (b *SceneBuilder) WithTemplate(t *document.Template) *SceneBuilder {
	b.scene.Templates = append(b.scene.Templates, t)
	return b
}

// Build links the scene and returns it. It panics on an invalid scene.
func (b *SceneBuilder) Build() *scene.Scene {
	if err := b.scene.Link(); err != nil {
		panic(err)
	}
	return b.scene
}
