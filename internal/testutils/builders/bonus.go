// Package builders provides test data builders for creating test fixtures
package builders

import (
	"encoding/json"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// BonusBuilder provides a fluent interface for building test Bonus instances
type BonusBuilder struct {
	bonus *babonus.Bonus
}

// NewBonusBuilder creates an enabled bonus of the type with minimal defaults.
// It panics on an unknown type.
func NewBonusBuilder(t babonus.Type) *BonusBuilder {
	b, err := babonus.New(t, "bonusTest0000001", "Test Bonus")
	if err != nil {
		panic(err)
	}
	return &BonusBuilder{bonus: b}
}

// WithID sets the bonus ID
func (b *BonusBuilder) WithID(id string) *BonusBuilder {
	b.bonus.ID = id
	return b
}

// WithName sets the bonus name
func (b *BonusBuilder) WithName(name string) *BonusBuilder {
	b.bonus.Name = name
	return b
}

// WithFormula sets the additive bonus formula
func (b *BonusBuilder) WithFormula(formula string) *BonusBuilder {
	switch p := b.bonus.Bonuses.(type) {
	case *babonus.AttackBonuses:
		p.Bonus = formula
	case *babonus.DamageBonuses:
		p.Bonus = formula
	case *babonus.SaveBonuses:
		p.Bonus = formula
	case *babonus.ThrowBonuses:
		p.Bonus = formula
	case *babonus.HitDieBonuses:
		p.Bonus = formula
	case *babonus.TestBonuses:
		p.Bonus = formula
	}
	return b
}

// WithPayload replaces the formula payload
func (b *BonusBuilder) WithPayload(payload babonus.Bonuses) *BonusBuilder {
	b.bonus.Bonuses = payload
	return b
}

// WithFilter stores a filter payload. Non-raw values are marshaled.
func (b *BonusBuilder) WithFilter(key string, value any) *BonusBuilder {
	switch v := value.(type) {
	case json.RawMessage:
		b.bonus.Filters[key] = v
	case string:
		b.bonus.Filters[key] = json.RawMessage(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		b.bonus.Filters[key] = data
	}
	return b
}

// Disabled marks the bonus disabled
func (b *BonusBuilder) Disabled() *BonusBuilder {
	b.bonus.Enabled = false
	return b
}

// Optional marks the bonus optional
func (b *BonusBuilder) Optional() *BonusBuilder {
	b.bonus.Optional = true
	return b
}

// Exclusive marks the bonus exclusive to rolls made with its item
func (b *BonusBuilder) Exclusive() *BonusBuilder {
	b.bonus.Exclusive = true
	return b
}

// WithTokenAura makes the bonus a token aura
func (b *BonusBuilder) WithTokenAura(rng int, disposition babonus.AuraDisposition, restrictions ...scene.Restriction) *BonusBuilder {
	b.bonus.Aura = babonus.Aura{
		Enabled:      true,
		IsToken:      true,
		Range:        rng,
		Disposition:  disposition,
		Restrictions: restrictions,
	}
	return b
}

// WithTemplateAura makes the bonus a template aura
func (b *BonusBuilder) WithTemplateAura(disposition babonus.AuraDisposition) *BonusBuilder {
	b.bonus.Aura = babonus.Aura{
		Enabled:     true,
		IsTemplate:  true,
		Disposition: disposition,
	}
	return b
}

// WithSelf lets an aura affect its owner
func (b *BonusBuilder) WithSelf() *BonusBuilder {
	b.bonus.Aura.Self = true
	return b
}

// WithBlockers sets the statuses that suppress the aura
func (b *BonusBuilder) WithBlockers(statuses ...string) *BonusBuilder {
	b.bonus.Aura.Blockers = statuses
	return b
}

// Build returns the built bonus
func (b *BonusBuilder) Build() *babonus.Bonus {
	return b.bonus
}

// Embed serializes the bonuses into the document's flags
func Embed(doc document.Document, bonuses ...*babonus.Bonus) {
	flags := doc.BonusFlags()
	for _, bonus := range bonuses {
		data, err := json.Marshal(bonus)
		if err != nil {
			panic(err)
		}
		flags.Set(bonus.ID, data)
	}
}
