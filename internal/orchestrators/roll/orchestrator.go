// Package roll applies matching bonuses to rolls at each lifecycle hook
package roll

//go:generate mockgen -destination=mock/mock_service.go -package=rollmock github.com/KirkDiggler/babonus/internal/orchestrators/roll Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/babonus/internal/engine"
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/errors"
)

// Service defines the roll lifecycle hooks
type Service interface {
	// Item rolls
	PreRollAttack(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollDamage(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreDisplaySaveDC(ctx context.Context, input *HookInput) (*HookOutput, error)

	// Actor rolls
	PreRollAbilitySave(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollDeathSave(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollHitDie(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollAbilityTest(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollSkill(ctx context.Context, input *HookInput) (*HookOutput, error)
	PreRollToolCheck(ctx context.Context, input *HookInput) (*HookOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	Engine engine.Engine
	// Roller rolls dice inside threshold formulas. Defaults to
	// dice.DefaultRoller.
	Roller dice.Roller
	// Events receives a before-roll event once bonuses are folded in.
	// Optional.
	Events rpgevents.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

type orchestrator struct {
	engine     engine.Engine
	aggregator *Aggregator
	bus        rpgevents.EventBus
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:     cfg.Engine,
		aggregator: NewAggregator(cfg.Roller),
		bus:        cfg.Events,
	}, nil
}

type applyFunc func(rc *roll.Context, bonuses []*babonus.Bonus)

func (o *orchestrator) PreRollAttack(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireItem(input); err != nil {
		return nil, err
	}
	return o.run(ctx, babonus.TypeAttack, input, func(rc *roll.Context, bonuses []*babonus.Bonus) {
		o.aggregator.ApplyAttack(rc.Parameters, bonuses, rc.Data)
	})
}

func (o *orchestrator) PreRollDamage(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireItem(input); err != nil {
		return nil, err
	}
	return o.run(ctx, babonus.TypeDamage, input, func(rc *roll.Context, bonuses []*babonus.Bonus) {
		o.aggregator.ApplyDamage(rc.Parameters, bonuses, rc.Data)
	})
}

func (o *orchestrator) PreDisplaySaveDC(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireItem(input); err != nil {
		return nil, err
	}
	if input.Item.System.Save.Ability == "" {
		return nil, errors.InvalidArgumentf("item %s forces no saving throw", input.Item.ID)
	}
	return o.run(ctx, babonus.TypeSave, input, func(rc *roll.Context, bonuses []*babonus.Bonus) {
		base := rc.Parameters.SaveDC
		if base == 0 {
			base = rc.Item.System.Save.DC
		}
		o.aggregator.ApplySaveDC(rc.Parameters, bonuses, rc.Data, base)
	})
}

func (o *orchestrator) PreRollAbilitySave(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireActor(input); err != nil {
		return nil, err
	}
	if input.Details.ThrowType == "" {
		input.Details.ThrowType = input.Details.AbilityID
	}
	if input.Details.ThrowType == roll.ThrowConcentration {
		input.Details.ThrowType = "con"
		input.Details.IsConcentration = true
	}
	if input.Details.ThrowType == "" {
		return nil, errors.InvalidArgument("ability is required")
	}
	return o.run(ctx, babonus.TypeThrow, input, o.parts)
}

func (o *orchestrator) PreRollDeathSave(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireActor(input); err != nil {
		return nil, err
	}
	input.Details.ThrowType = roll.ThrowDeath
	return o.run(ctx, babonus.TypeThrow, input, func(rc *roll.Context, bonuses []*babonus.Bonus) {
		o.aggregator.ApplyDeathSave(rc.Parameters, bonuses, rc.Data)
	})
}

func (o *orchestrator) PreRollHitDie(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireActor(input); err != nil {
		return nil, err
	}
	if input.Details.Denomination == "" {
		return nil, errors.InvalidArgument("denomination is required")
	}
	return o.run(ctx, babonus.TypeHitDie, input, func(rc *roll.Context, bonuses []*babonus.Bonus) {
		o.aggregator.ApplyHitDie(rc.Parameters, bonuses, rc.Data, rc.Details.Denomination)
	})
}

func (o *orchestrator) PreRollAbilityTest(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireActor(input); err != nil {
		return nil, err
	}
	if input.Details.AbilityID == "" {
		return nil, errors.InvalidArgument("ability is required")
	}
	return o.run(ctx, babonus.TypeTest, input, o.parts)
}

func (o *orchestrator) PreRollSkill(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if err := requireActor(input); err != nil {
		return nil, err
	}
	skill, ok := input.Actor.Skills[input.Details.SkillID]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown skill %q", input.Details.SkillID)
	}
	if input.Details.AbilityID == "" {
		input.Details.AbilityID = skill.Ability
	}
	return o.run(ctx, babonus.TypeTest, input, o.parts)
}

func (o *orchestrator) PreRollToolCheck(ctx context.Context, input *HookInput) (*HookOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Actor == nil && input.Item != nil {
		input.Actor = input.Item.Actor()
	}
	if err := requireActor(input); err != nil {
		return nil, err
	}
	if input.Details.ToolID == "" && input.Item != nil {
		input.Details.ToolID = input.Item.System.BaseItem
	}
	if input.Details.ToolID == "" {
		return nil, errors.InvalidArgument("tool is required")
	}
	if tool, ok := input.Actor.Tools[input.Details.ToolID]; ok && input.Details.AbilityID == "" {
		input.Details.AbilityID = tool.Ability
	}
	return o.run(ctx, babonus.TypeTest, input, o.parts)
}

func (o *orchestrator) parts(rc *roll.Context, bonuses []*babonus.Bonus) {
	o.aggregator.AddParts(rc.Parameters, bonuses, rc.Data)
}

func (o *orchestrator) run(ctx context.Context, kind babonus.Type, input *HookInput, apply applyFunc) (*HookOutput, error) {
	rc := newContext(kind, input)

	result, err := o.engine.Evaluate(ctx, &engine.EvaluateInput{Roll: rc})
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate bonuses")
	}

	automatic, optional := Split(result.Bonuses)
	apply(rc, result.Bonuses)
	rc.Optionals = append(rc.Optionals, optional...)

	slog.Debug("applied bonuses",
		"kind", kind,
		"applied", len(automatic),
		"optional", len(optional))

	out := &HookOutput{Roll: rc, Applied: automatic, Optionals: optional}
	if err := o.publish(ctx, out); err != nil {
		return nil, errors.Wrap(err, "before-roll subscriber failed")
	}
	return out, nil
}

func newContext(kind babonus.Type, input *HookInput) *roll.Context {
	var rc *roll.Context
	if input.Item != nil && kind != babonus.TypeTest {
		rc = roll.NewItemContext(kind, input.Item, input.Details)
	} else {
		rc = roll.NewActorContext(kind, input.Actor, input.Details)
		rc.Item = input.Item
	}
	if input.Parameters != nil {
		rc.Parameters = input.Parameters
	}
	rc.WithScene(input.Scene)
	rc.WithTarget(input.Target, input.TargetToken)
	if rc.Target != nil {
		rc.Data["target"] = rc.Target.RollData()
	}
	return rc
}

func requireItem(input *HookInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.Item == nil {
		return errors.InvalidArgument("item is required")
	}
	return nil
}

func requireActor(input *HookInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.Actor == nil {
		return errors.InvalidArgument("actor is required")
	}
	return nil
}
