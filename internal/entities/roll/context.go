// Package roll holds the transient context of a single roll-lifecycle event.
package roll

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// Throw types besides ability ids.
const (
	ThrowDeath         = "death"
	ThrowConcentration = "concentration"
)

// Details is the situational data of a roll.
type Details struct {
	// SpellLevel is the level a spell is cast at, when upcast.
	SpellLevel *int `json:"spellLevel,omitempty"`
	// ThrowType is an ability id or "death".
	ThrowType       string `json:"throwType,omitempty"`
	IsConcentration bool   `json:"isConcentration,omitempty"`
	AbilityID       string `json:"abilityId,omitempty"`
	SkillID         string `json:"skillId,omitempty"`
	ToolID          string `json:"toolId,omitempty"`
	// Denomination is the hit die being rolled, e.g. "d8".
	Denomination string `json:"denomination,omitempty"`
	IsCritical   bool   `json:"isCritical,omitempty"`
}

// Parameters is the mutable bag of roll parameters bonuses fold into.
type Parameters struct {
	Parts               []string `json:"parts,omitempty"`
	Critical            *int     `json:"critical,omitempty"`
	Fumble              *int     `json:"fumble,omitempty"`
	CriticalBonusDice   int      `json:"criticalBonusDice,omitempty"`
	CriticalBonusDamage string   `json:"criticalBonusDamage,omitempty"`
	TargetValue         *int     `json:"targetValue,omitempty"`
	// Formula is the full formula of a hit die roll.
	Formula string `json:"formula,omitempty"`
	SaveDC  int    `json:"saveDc,omitempty"`
}

// Context is everything known about one roll.
type Context struct {
	Kind  babonus.Type
	Actor *document.Actor
	Item  *document.Item
	// Token is the acting actor's token on the scene, if any.
	Token       *scene.Token
	Target      *document.Actor
	TargetToken *scene.Token
	Scene       *scene.Scene
	Details     Details
	// Data is the roll data formulas are evaluated against.
	Data       map[string]any
	Parameters *Parameters
	// Optionals collects matched bonuses that need player confirmation.
	Optionals []*babonus.Bonus
}

// NewItemContext builds the context of a roll made with an item.
func NewItemContext(kind babonus.Type, item *document.Item, details Details) *Context {
	return &Context{
		Kind:       kind,
		Actor:      item.Actor(),
		Item:       item,
		Details:    details,
		Data:       item.RollData(),
		Parameters: &Parameters{},
	}
}

// NewActorContext builds the context of a roll made by an actor.
func NewActorContext(kind babonus.Type, actor *document.Actor, details Details) *Context {
	return &Context{
		Kind:       kind,
		Actor:      actor,
		Details:    details,
		Data:       actor.RollData(),
		Parameters: &Parameters{},
	}
}

// WithScene places the roll on a scene, resolving the acting token.
func (c *Context) WithScene(s *scene.Scene) *Context {
	c.Scene = s
	if s != nil && c.Token == nil {
		c.Token = s.TokenForActor(c.Actor)
	}
	return c
}

// WithTarget sets the targeted actor and its token.
func (c *Context) WithTarget(target *document.Actor, token *scene.Token) *Context {
	c.Target = target
	c.TargetToken = token
	if target == nil && token != nil {
		c.Target = token.Actor
	}
	return c
}

// ItemLevel returns the spell level of the roll, preferring the cast level.
func (c *Context) ItemLevel() (int, bool) {
	if c.Details.SpellLevel != nil {
		return *c.Details.SpellLevel, true
	}
	if c.Item != nil && c.Item.Type == document.ItemTypeSpell {
		return c.Item.System.Level, true
	}
	return 0, false
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
