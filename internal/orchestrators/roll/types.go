package roll

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// HookInput describes one roll entering a lifecycle hook. Item rolls set
// Item; actor rolls set Actor.
type HookInput struct {
	Actor       *document.Actor
	Item        *document.Item
	Scene       *scene.Scene
	Target      *document.Actor
	TargetToken *scene.Token
	Details     roll.Details
	// Parameters are mutated in place when set.
	Parameters *roll.Parameters
}

// HookOutput contains the roll after bonuses were folded in
type HookOutput struct {
	Roll *roll.Context
	// Applied are the bonuses folded into the parameters.
	Applied []*babonus.Bonus
	// Optionals are matched bonuses awaiting player confirmation.
	Optionals []*babonus.Bonus
}
