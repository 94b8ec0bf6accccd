package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/filters"
	"github.com/KirkDiggler/babonus/internal/filters/script"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/spatial"
)

type engine struct {
	registry *filters.Registry
	aura     *spatial.Engine
}

// Config holds the configuration for the filter engine
type Config struct {
	Registry *filters.Registry
	// Aura measures auras on a fixed scene. When nil, or when a roll is on a
	// different scene, an engine is built for the roll's scene.
	Aura *spatial.Engine
}

// Validate ensures all required dependencies are present
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Registry == nil {
		vb.RequiredField("Registry")
	}
	return vb.Build()
}

// New creates a filter engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &engine{registry: cfg.Registry, aura: cfg.Aura}, nil
}

// DefaultRegistry returns a registry with every built-in filter, custom
// scripts included.
func DefaultRegistry(trees *proficiency.Trees) (*filters.Registry, error) {
	scripts, err := script.New(&script.Config{Trees: trees})
	if err != nil {
		return nil, err
	}
	return filters.NewRegistry(append(filters.Builtin(trees), scripts)...)
}

func (e *engine) Compile(_ context.Context, input *CompileInput) (*CompileOutput, error) {
	if input == nil || input.Bonus == nil {
		return nil, errors.InvalidArgument("bonus is required")
	}
	compiled, err := e.registry.Compile(input.Bonus)
	if err != nil {
		return nil, err
	}
	return &CompileOutput{Compiled: compiled}, nil
}

func (e *engine) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	if input == nil || input.Roll == nil {
		return nil, errors.InvalidArgument("roll is required")
	}

	collected, err := e.Collect(ctx, &CollectInput{Roll: input.Roll})
	if err != nil {
		return nil, err
	}

	out := &EvaluateOutput{}
	for _, b := range collected.Bonuses {
		compiled, err := e.registry.Compile(b)
		if err != nil {
			slog.Warn("skipping malformed bonus",
				"bonus_uuid", b.UUID(),
				"error", err)
			out.Skipped++
			continue
		}
		if compiled.Match(input.Roll) {
			out.Bonuses = append(out.Bonuses, b)
		}
	}

	slog.Debug("evaluated bonuses",
		"kind", input.Roll.Kind,
		"candidates", len(collected.Bonuses),
		"matched", len(out.Bonuses))
	return out, nil
}

func (e *engine) Collect(_ context.Context, input *CollectInput) (*CollectOutput, error) {
	if input == nil || input.Roll == nil {
		return nil, errors.InvalidArgument("roll is required")
	}
	rc := input.Roll
	if !rc.Kind.Valid() {
		return nil, errors.InvalidArgumentf("unknown roll kind %q", rc.Kind)
	}

	c := &collector{rc: rc, seen: make(map[string]bool)}
	c.own()

	if rc.Token != nil && rc.Scene != nil {
		aura, err := e.auraFor(rc.Scene)
		if err != nil {
			slog.Warn("skipping auras", "scene_id", rc.Scene.ID, "error", err)
		} else {
			c.tokenAuras(aura)
			c.templateAuras(aura)
		}
	}

	return &CollectOutput{Bonuses: c.out}, nil
}

func (e *engine) auraFor(s *scene.Scene) (*spatial.Engine, error) {
	if e.aura != nil && e.aura.Scene() == s {
		return e.aura, nil
	}
	return spatial.NewEngine(&spatial.Config{Scene: s})
}

type collector struct {
	rc   *roll.Context
	seen map[string]bool
	out  []*babonus.Bonus

	// ranges caches aura reach per source token and shape
	ranges map[string][]*scene.Token
}

func (c *collector) add(b *babonus.Bonus) {
	if !b.Enabled || b.Type() != c.rc.Kind {
		return
	}
	key := b.UUID()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, b)
}

// own gathers bonuses stored on the acting documents.
func (c *collector) own() {
	rc := c.rc
	keep := func(b *babonus.Bonus) bool {
		if b.Aura.IsTemplateAura() {
			return false
		}
		if b.Aura.IsTokenAura() {
			return b.Aura.Self && !b.Aura.IsBlocked(c.statuses())
		}
		return true
	}

	if rc.Actor != nil {
		for _, b := range babonus.NewCollection(rc.Actor).All() {
			if keep(b) {
				c.add(b)
			}
		}
		for _, item := range rc.Actor.Items {
			for _, b := range babonus.NewCollection(item).All() {
				if b.Exclusive && item != rc.Item {
					continue
				}
				if keep(b) {
					c.add(b)
				}
			}
		}
		for _, effect := range rc.Actor.AppliedEffects() {
			for _, b := range babonus.NewCollection(effect).All() {
				if keep(b) {
					c.add(b)
				}
			}
		}
	}

	if rc.Item == nil {
		return
	}
	if rc.Item.Actor() == nil {
		for _, b := range babonus.NewCollection(rc.Item).All() {
			if keep(b) {
				c.add(b)
			}
		}
	}
	for _, effect := range rc.Item.Effects {
		if effect.Transfer || !effect.Active() {
			continue
		}
		for _, b := range babonus.NewCollection(effect).All() {
			if keep(b) {
				c.add(b)
			}
		}
	}
}

func (c *collector) statuses() []string {
	if c.rc.Actor == nil {
		return nil
	}
	return c.rc.Actor.StatusIDs()
}

// tokenAuras gathers token auras of other tokens that reach the acting
// token.
func (c *collector) tokenAuras(aura *spatial.Engine) {
	own := c.rc.Token
	for _, source := range aura.Scene().Tokens {
		if source == own || source.Actor == nil || source.Actor == c.rc.Actor {
			continue
		}
		for _, b := range sourceBonuses(source.Actor) {
			if !b.Enabled || b.Type() != c.rc.Kind || !b.Aura.IsTokenAura() {
				continue
			}
			if !b.Aura.AppliesTo(source.Disposition, own.Disposition) {
				continue
			}
			if b.Aura.IsBlocked(c.statuses()) || b.Aura.IsBlocked(source.Actor.StatusIDs()) {
				continue
			}
			if !c.reaches(aura, b, source) {
				continue
			}
			c.add(b)
		}
	}
}

// sourceBonuses returns the bonuses an actor emits: its own, its items'
// non-exclusive ones and those of effects applied to it.
func sourceBonuses(actor *document.Actor) []*babonus.Bonus {
	out := babonus.NewCollection(actor).All()
	for _, item := range actor.Items {
		for _, b := range babonus.NewCollection(item).All() {
			if !b.Exclusive {
				out = append(out, b)
			}
		}
	}
	for _, effect := range actor.AppliedEffects() {
		out = append(out, babonus.NewCollection(effect).All()...)
	}
	return out
}

func (c *collector) reaches(aura *spatial.Engine, b *babonus.Bonus, source *scene.Token) bool {
	key := fmt.Sprintf("%s|%d|%v", source.ID, b.Aura.Range, b.Aura.Restrictions)
	if c.ranges == nil {
		c.ranges = make(map[string][]*scene.Token)
	}
	tokens, ok := c.ranges[key]
	if !ok {
		tokens = aura.TokensInRangeOfAura(b, source)
		c.ranges[key] = tokens
	}
	for _, t := range tokens {
		if t == c.rc.Token {
			return true
		}
	}
	return false
}

// templateAuras gathers the bonuses of templates containing the acting
// token.
func (c *collector) templateAuras(aura *spatial.Engine) {
	own := c.rc.Token
	for _, template := range aura.ContainingTemplates(own) {
		for _, b := range babonus.NewCollection(template).All() {
			if !b.Aura.IsTemplateAura() {
				continue
			}
			if !b.Aura.AppliesTo(scene.Disposition(template.Disposition), own.Disposition) {
				continue
			}
			if b.Aura.IsBlocked(c.statuses()) {
				continue
			}
			c.add(b)
		}
	}
}
