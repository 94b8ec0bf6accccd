package document

import (
	"sort"
)

// Actor types
const (
	ActorTypeCharacter = "character"
	ActorTypeNPC       = "npc"
	ActorTypeVehicle   = "vehicle"
)

// Trait categories used by the proficiency trees.
const (
	TraitLanguages = "languages"
	TraitWeapon    = "weapon"
	TraitArmor     = "armor"
	TraitTool      = "tool"
)

// Ability is a single ability score with its derived modifiers.
type Ability struct {
	Value      int  `json:"value"`
	Proficient bool `json:"proficient,omitempty"`
}

// Mod returns the ability modifier for the score.
func (a Ability) Mod() int {
	diff := a.Value - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Skill is an actor skill with its governing ability and proficiency multiplier.
type Skill struct {
	Ability    string  `json:"ability"`
	Proficient float64 `json:"proficient,omitempty"`
}

// Tool is a tool the actor is proficient with.
type Tool struct {
	Ability    string  `json:"ability"`
	Proficient float64 `json:"proficient,omitempty"`
}

// HitPoints tracks current, maximum and temporary hit points.
type HitPoints struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Temp  int `json:"temp,omitempty"`
}

// SpellSlot is one level of spell slots.
type SpellSlot struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Attributes are the actor attributes referenced by filters and roll data.
type Attributes struct {
	HP                  HitPoints `json:"hp"`
	Prof                int       `json:"prof"`
	SpellcastingAbility string    `json:"spellcasting,omitempty"`
	Concentrating       bool      `json:"concentrating,omitempty"`
}

// Details are descriptive actor data.
type Details struct {
	Level         int      `json:"level,omitempty"`
	CR            float64  `json:"cr,omitempty"`
	CreatureTypes []string `json:"creatureTypes,omitempty"`
}

// Actor is a creature that rolls and owns items and effects.
type Actor struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Type       string               `json:"type"`
	Abilities  map[string]Ability   `json:"abilities,omitempty"`
	Skills     map[string]Skill     `json:"skills,omitempty"`
	Tools      map[string]Tool      `json:"tools,omitempty"`
	Attributes Attributes           `json:"attributes"`
	Details    Details              `json:"details"`
	Traits     map[string][]string  `json:"traits,omitempty"`
	Spells     map[string]SpellSlot `json:"spells,omitempty"`
	Statuses   []string             `json:"statuses,omitempty"`
	Items      []*Item              `json:"items,omitempty"`
	Effects    []*Effect            `json:"effects,omitempty"`
	Flags      Flags                `json:"flags"`
}

// GetID implements core.Entity
func (a *Actor) GetID() string { return a.ID }

// GetType implements core.Entity
func (a *Actor) GetType() string { return KindActor }

// GetUUID returns the actor uuid
func (a *Actor) GetUUID() string { return joinUUID(nil, KindActor, a.ID) }

// GetName returns the actor name
func (a *Actor) GetName() string { return a.Name }

// BonusFlags returns the actor's bonus flags
func (a *Actor) BonusFlags() *Flags { return &a.Flags }

// Link wires parent references of owned items and effects. It must be called
// after decoding an actor.
func (a *Actor) Link() {
	for _, item := range a.Items {
		item.parent = a
		for _, effect := range item.Effects {
			effect.parent = item
		}
	}
	for _, effect := range a.Effects {
		effect.parent = a
	}
}

// Item returns the owned item with the id.
func (a *Actor) Item(id string) *Item {
	for _, item := range a.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Effect returns the owned effect with the id.
func (a *Actor) Effect(id string) *Effect {
	for _, effect := range a.Effects {
		if effect.ID == id {
			return effect
		}
	}
	return nil
}

// AbilityMod returns the modifier of an ability, 0 when unknown.
func (a *Actor) AbilityMod(id string) int {
	ability, ok := a.Abilities[id]
	if !ok {
		return 0
	}
	return ability.Mod()
}

// StatusIDs returns the actor's own statuses together with those granted by
// active effects, deduplicated and sorted.
func (a *Actor) StatusIDs() []string {
	seen := make(map[string]struct{})
	for _, s := range a.Statuses {
		seen[s] = struct{}{}
	}
	for _, effect := range a.AppliedEffects() {
		for _, s := range effect.Statuses {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasStatus reports whether the actor is affected by the status.
func (a *Actor) HasStatus(id string) bool {
	for _, s := range a.StatusIDs() {
		if s == id {
			return true
		}
	}
	return false
}

// AppliedEffects returns the active effects that apply to the actor: its own
// active effects plus active transfer effects on owned items.
func (a *Actor) AppliedEffects() []*Effect {
	var out []*Effect
	for _, effect := range a.Effects {
		if effect.Active() {
			out = append(out, effect)
		}
	}
	for _, item := range a.Items {
		for _, effect := range item.Effects {
			if effect.Transfer && effect.Active() {
				out = append(out, effect)
			}
		}
	}
	return out
}

// HealthPercentage returns current hit points as a percentage of the maximum.
// The second return is false when the actor has no maximum.
func (a *Actor) HealthPercentage() (float64, bool) {
	hp := a.Attributes.HP
	if hp.Max <= 0 {
		return 0, false
	}
	return float64(hp.Value) / float64(hp.Max) * 100, true
}

// RemainingSpellSlots sums the remaining slots across all spell levels.
func (a *Actor) RemainingSpellSlots() int {
	total := 0
	for _, slot := range a.Spells {
		total += slot.Value
	}
	return total
}

// Proficiency returns the proficiency bonus, derived from level when unset.
func (a *Actor) Proficiency() int {
	if a.Attributes.Prof != 0 {
		return a.Attributes.Prof
	}
	level := a.Details.Level
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// RollData returns the data available to formulas rolled by the actor.
func (a *Actor) RollData() map[string]any {
	abilities := make(map[string]any, len(a.Abilities))
	for id, ability := range a.Abilities {
		save := ability.Mod()
		if ability.Proficient {
			save += a.Proficiency()
		}
		abilities[id] = map[string]any{
			"value": ability.Value,
			"mod":   ability.Mod(),
			"save":  save,
		}
	}

	skills := make(map[string]any, len(a.Skills))
	for id, skill := range a.Skills {
		skills[id] = map[string]any{
			"ability": skill.Ability,
			"mod":     a.AbilityMod(skill.Ability),
			"prof":    int(skill.Proficient * float64(a.Proficiency())),
		}
	}

	spells := make(map[string]any, len(a.Spells))
	for id, slot := range a.Spells {
		spells[id] = map[string]any{"value": slot.Value, "max": slot.Max}
	}

	return map[string]any{
		"name":      a.Name,
		"prof":      a.Proficiency(),
		"abilities": abilities,
		"skills":    skills,
		"spells":    spells,
		"attributes": map[string]any{
			"prof": a.Proficiency(),
			"hp": map[string]any{
				"value": a.Attributes.HP.Value,
				"max":   a.Attributes.HP.Max,
				"temp":  a.Attributes.HP.Temp,
			},
		},
		"details": map[string]any{
			"level": a.Details.Level,
			"cr":    a.Details.CR,
		},
	}
}
