package builders

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
)

// ActorBuilder provides a fluent interface for building test Actor instances
type ActorBuilder struct {
	actor *document.Actor
}

// NewActorBuilder creates a level 5 character with average abilities
func NewActorBuilder(id string) *ActorBuilder {
	abilities := make(map[string]document.Ability, 6)
	for _, ab := range []string{"str", "dex", "con", "int", "wis", "cha"} {
		abilities[ab] = document.Ability{Value: 10}
	}
	return &ActorBuilder{
		actor: &document.Actor{
			ID:        id,
			Name:      "Test Actor " + id,
			Type:      document.ActorTypeCharacter,
			Abilities: abilities,
			Skills:    make(map[string]document.Skill),
			Tools:     make(map[string]document.Tool),
			Traits:    make(map[string][]string),
			Attributes: document.Attributes{
				HP:   document.HitPoints{Value: 40, Max: 40},
				Prof: 3,
			},
			Details: document.Details{Level: 5},
		},
	}
}

// WithName sets the actor name
func (b *ActorBuilder) WithName(name string) *ActorBuilder {
	b.actor.Name = name
	return b
}

// WithType sets the actor type
func (b *ActorBuilder) WithType(t string) *ActorBuilder {
	b.actor.Type = t
	return b
}

// WithAbility sets an ability score
func (b *ActorBuilder) WithAbility(id string, value int, proficient bool) *ActorBuilder {
	b.actor.Abilities[id] = document.Ability{Value: value, Proficient: proficient}
	return b
}

// WithSkill adds a skill
func (b *ActorBuilder) WithSkill(id, ability string, proficient float64) *ActorBuilder {
	b.actor.Skills[id] = document.Skill{Ability: ability, Proficient: proficient}
	return b
}

// WithTool adds a tool proficiency
func (b *ActorBuilder) WithTool(id, ability string, proficient float64) *ActorBuilder {
	b.actor.Tools[id] = document.Tool{Ability: ability, Proficient: proficient}
	return b
}

// WithTraits sets the values of a trait category
func (b *ActorBuilder) WithTraits(category string, values ...string) *ActorBuilder {
	b.actor.Traits[category] = values
	return b
}

// WithHP sets current and maximum hit points
func (b *ActorBuilder) WithHP(value, max int) *ActorBuilder {
	b.actor.Attributes.HP = document.HitPoints{Value: value, Max: max}
	return b
}

// WithStatuses sets the actor's own statuses
func (b *ActorBuilder) WithStatuses(statuses ...string) *ActorBuilder {
	b.actor.Statuses = statuses
	return b
}

// WithCreatureTypes sets the creature types
func (b *ActorBuilder) WithCreatureTypes(types ...string) *ActorBuilder {
	b.actor.Details.CreatureTypes = types
	return b
}

// WithSpellSlots sets the slots of a spell level, e.g. "spell1"
func (b *ActorBuilder) WithSpellSlots(level string, value, max int) *ActorBuilder {
	if b.actor.Spells == nil {
		b.actor.Spells = make(map[string]document.SpellSlot)
	}
	b.actor.Spells[level] = document.SpellSlot{Value: value, Max: max}
	return b
}

// WithItem adds an owned item
func (b *ActorBuilder) WithItem(item *document.Item) *ActorBuilder {
	b.actor.Items = append(b.actor.Items, item)
	return b
}

// WithEffect adds an effect on the actor
func (b *ActorBuilder) WithEffect(effect *document.Effect) *ActorBuilder {
	b.actor.Effects = append(b.actor.Effects, effect)
	return b
}

// WithBonuses embeds bonuses on the actor
func (b *ActorBuilder) WithBonuses(bonuses ...*babonus.Bonus) *ActorBuilder {
	Embed(b.actor, bonuses...)
	return b
}

// Build links owned documents and returns the actor
func (b *ActorBuilder) Build() *document.Actor {
	b.actor.Link()
	return b.actor
}

// NewWeapon creates an equipped melee weapon item
func NewWeapon(id, baseItem string, properties ...string) *document.Item {
	return &document.Item{
		ID:   id,
		Name: baseItem,
		Type: document.ItemTypeWeapon,
		System: document.ItemSystem{
			ActionType: document.ActionMeleeWeapon,
			BaseItem:   baseItem,
			Ability:    "str",
			Damage:     []document.DamagePart{{Formula: "1d8", Type: "slashing"}},
			Properties: properties,
			Equipped:   true,
		},
	}
}

// NewSpell creates a spell item of the level and school
func NewSpell(id string, level int, school string, components ...string) *document.Item {
	return &document.Item{
		ID:   id,
		Name: "Spell " + id,
		Type: document.ItemTypeSpell,
		System: document.ItemSystem{
			ActionType:  document.ActionSave,
			Level:       level,
			School:      school,
			Preparation: "prepared",
			Components:  components,
			Save:        document.ItemSave{Ability: "dex", DC: 13},
		},
	}
}
