package engine

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/filters"
)

// CollectInput contains the roll to gather candidates for
type CollectInput struct {
	Roll *roll.Context
}

// CollectOutput contains the candidates in collection order
type CollectOutput struct {
	Bonuses []*babonus.Bonus
}

// EvaluateInput contains the roll to match
type EvaluateInput struct {
	Roll *roll.Context
}

// EvaluateOutput contains the matching bonuses in collection order
type EvaluateOutput struct {
	Bonuses []*babonus.Bonus
	// Skipped counts malformed candidates that were excluded.
	Skipped int
}

// CompileInput contains the bonus to compile
type CompileInput struct {
	Bonus *babonus.Bonus
}

// CompileOutput contains the compiled bonus
type CompileOutput struct {
	Compiled *filters.Compiled
}
