package document

// Item types
const (
	ItemTypeWeapon     = "weapon"
	ItemTypeSpell      = "spell"
	ItemTypeEquipment  = "equipment"
	ItemTypeTool       = "tool"
	ItemTypeFeat       = "feat"
	ItemTypeConsumable = "consumable"
	ItemTypeLoot       = "loot"
)

// Action types an item can have.
const (
	ActionMeleeWeapon  = "mwak"
	ActionRangedWeapon = "rwak"
	ActionMeleeSpell   = "msak"
	ActionRangedSpell  = "rsak"
	ActionSave         = "save"
	ActionHeal         = "heal"
	ActionUtility      = "util"
)

// DamagePart is one damage formula and its type.
type DamagePart struct {
	Formula string `json:"formula"`
	Type    string `json:"type"`
}

// ItemSave is the saving throw an item forces.
type ItemSave struct {
	Ability string `json:"ability,omitempty"`
	DC      int    `json:"dc,omitempty"`
}

// ItemSystem is the system data of an item.
type ItemSystem struct {
	Ability     string       `json:"ability,omitempty"`
	ActionType  string       `json:"actionType,omitempty"`
	BaseItem    string       `json:"baseItem,omitempty"`
	ArmorType   string       `json:"armorType,omitempty"`
	Damage      []DamagePart `json:"damage,omitempty"`
	Properties  []string     `json:"properties,omitempty"`
	Level       int          `json:"level,omitempty"`
	School      string       `json:"school,omitempty"`
	Preparation string       `json:"preparation,omitempty"`
	Components  []string     `json:"components,omitempty"`
	Equipped    bool         `json:"equipped,omitempty"`
	Attuned     bool         `json:"attuned,omitempty"`
	Proficient  *float64     `json:"proficient,omitempty"`
	Save        ItemSave     `json:"save"`
}

// Item is an owned or unowned item.
type Item struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	System  ItemSystem `json:"system"`
	Effects []*Effect  `json:"effects,omitempty"`
	Flags   Flags      `json:"flags"`

	parent *Actor
}

// GetID implements core.Entity
func (i *Item) GetID() string { return i.ID }

// GetType implements core.Entity
func (i *Item) GetType() string { return KindItem }

// GetUUID returns the item uuid, nested under its owner when owned
func (i *Item) GetUUID() string {
	if i.parent == nil {
		return joinUUID(nil, KindItem, i.ID)
	}
	return joinUUID(i.parent, KindItem, i.ID)
}

// GetName returns the item name
func (i *Item) GetName() string { return i.Name }

// BonusFlags returns the item's bonus flags
func (i *Item) BonusFlags() *Flags { return &i.Flags }

// Actor returns the owning actor, nil for unowned items.
func (i *Item) Actor() *Actor { return i.parent }

// SetActor attaches the item to an owner.
func (i *Item) SetActor(a *Actor) {
	i.parent = a
	for _, effect := range i.Effects {
		effect.parent = i
	}
}

// HasProperty reports whether the item carries the property.
func (i *Item) HasProperty(prop string) bool {
	for _, p := range i.System.Properties {
		if p == prop {
			return true
		}
	}
	return false
}

// IsArmor reports whether the item is a piece of armor or a shield.
func (i *Item) IsArmor() bool {
	return i.Type == ItemTypeEquipment && i.System.ArmorType != ""
}

// HasAttack reports whether the item makes an attack roll.
func (i *Item) HasAttack() bool {
	switch i.System.ActionType {
	case ActionMeleeWeapon, ActionRangedWeapon, ActionMeleeSpell, ActionRangedSpell:
		return true
	default:
		return false
	}
}

// DamageTypes returns the damage types of the item's damage parts.
func (i *Item) DamageTypes() []string {
	out := make([]string, 0, len(i.System.Damage))
	for _, part := range i.System.Damage {
		if part.Type != "" {
			out = append(out, part.Type)
		}
	}
	return out
}

// AbilityID resolves the ability used by the item, taking finesse and
// spellcasting into account. The empty string means no ability applies.
func (i *Item) AbilityID() string {
	if i.System.Ability != "" {
		return i.System.Ability
	}
	actor := i.parent
	switch i.Type {
	case ItemTypeSpell:
		if actor != nil {
			return actor.Attributes.SpellcastingAbility
		}
		return ""
	case ItemTypeWeapon:
		if i.HasProperty("fin") && actor != nil {
			if actor.AbilityMod("dex") > actor.AbilityMod("str") {
				return "dex"
			}
			return "str"
		}
		if i.System.ActionType == ActionRangedWeapon {
			return "dex"
		}
		if i.System.ActionType == ActionMeleeWeapon {
			return "str"
		}
	}
	return ""
}

// RollData returns the owning actor's roll data extended with item data.
func (i *Item) RollData() map[string]any {
	var data map[string]any
	if i.parent != nil {
		data = i.parent.RollData()
	} else {
		data = make(map[string]any)
	}
	data["item"] = map[string]any{
		"name":  i.Name,
		"type":  i.Type,
		"level": i.System.Level,
	}
	if ability := i.AbilityID(); ability != "" && i.parent != nil {
		data["mod"] = i.parent.AbilityMod(ability)
	}
	return data
}
