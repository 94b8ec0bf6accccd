// Package engine matches bonus definitions against roll contexts
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/babonus/internal/engine Engine

import (
	"context"
)

// Engine collects the bonuses reachable from a roll and filters them
type Engine interface {
	// Collect gathers the enabled candidate bonuses of the roll's kind from
	// the acting documents, token auras and templates.
	Collect(ctx context.Context, input *CollectInput) (*CollectOutput, error)

	// Evaluate collects and returns the candidates whose filters all match.
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error)

	// Compile prepares a single bonus for matching.
	Compile(ctx context.Context, input *CompileInput) (*CompileOutput, error)
}
