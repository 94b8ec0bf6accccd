package roll

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
)

// Event names published before a roll of each kind is made.
const (
	EventBeforeSaveDC   = "babonus.before_save_dc"
	EventBeforeHitDie   = "babonus.before_hit_die"
	EventBeforeTestRoll = "babonus.before_test_roll"
)

// Keys set on the context of every before-roll event.
const (
	ContextRoll      = "roll"
	ContextApplied   = "applied"
	ContextOptionals = "optionals"
)

// EventName returns the event published before a roll of the kind.
func EventName(kind babonus.Type) string {
	switch kind {
	case babonus.TypeAttack:
		return rpgevents.EventBeforeAttackRoll
	case babonus.TypeDamage:
		return rpgevents.EventBeforeDamageRoll
	case babonus.TypeThrow:
		return rpgevents.EventBeforeSavingThrow
	case babonus.TypeSave:
		return EventBeforeSaveDC
	case babonus.TypeHitDie:
		return EventBeforeHitDie
	default:
		return EventBeforeTestRoll
	}
}

// RollFromEvent returns the roll carried by a before-roll event.
// Subscribers may adjust its parameters before the roll is made.
func RollFromEvent(event rpgevents.Event) (*roll.Context, bool) {
	v, ok := event.Context().Get(ContextRoll)
	if !ok {
		return nil, false
	}
	rc, ok := v.(*roll.Context)
	return rc, ok && rc != nil
}

func (o *orchestrator) publish(ctx context.Context, out *HookOutput) error {
	if o.bus == nil {
		return nil
	}

	rc := out.Roll
	var source, target core.Entity
	if rc.Actor != nil {
		source = rc.Actor
	}
	if rc.Target != nil {
		target = rc.Target
	}

	event := rpgevents.NewGameEvent(EventName(rc.Kind), source, target)
	event.Context().Set(ContextRoll, rc)
	event.Context().Set(ContextApplied, out.Applied)
	event.Context().Set(ContextOptionals, out.Optionals)
	return o.bus.Publish(ctx, event)
}
