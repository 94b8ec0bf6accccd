package filters

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/proficiency"
)

// Filter keys
const (
	KeyAbilities            = "abilities"
	KeySaveAbilities        = "saveAbilities"
	KeyThrowTypes           = "throwTypes"
	KeyStatusEffects        = "statusEffects"
	KeyTargetEffects        = "targetEffects"
	KeyCreatureTypes        = "creatureTypes"
	KeyActorCreatureTypes   = "actorCreatureTypes"
	KeyBaseArmors           = "baseArmors"
	KeyBaseTools            = "baseTools"
	KeyBaseWeapons          = "baseWeapons"
	KeyDamageTypes          = "damageTypes"
	KeyPreparationModes     = "preparationModes"
	KeySkillIDs             = "skillIds"
	KeySpellSchools         = "spellSchools"
	KeyWeaponProperties     = "weaponProperties"
	KeyItemTypes            = "itemTypes"
	KeyAttackTypes          = "attackTypes"
	KeyCustomScripts        = "customScripts"
	KeySpellLevels          = "spellLevels"
	KeySpellComponents      = "spellComponents"
	KeyItemRequirements     = "itemRequirements"
	KeyHealthPercentages    = "healthPercentages"
	KeyRemainingSpellSlots  = "remainingSpellSlots"
	KeyProficiencyLevels    = "proficiencyLevels"
	KeyArbitraryComparisons = "arbitraryComparisons"
	KeyTokenSizes           = "tokenSizes"
)

var itemTypes = []babonus.Type{babonus.TypeAttack, babonus.TypeDamage, babonus.TypeSave}

// Builtin returns every built-in filter except custom scripts, which live
// in their own package. Trees widen the base item filters; nil disables
// that.
func Builtin(trees *proficiency.Trees) []Filter {
	return []Filter{
		NewListFilter(KeyAbilities, true, rollAbility,
			babonus.TypeAttack, babonus.TypeDamage, babonus.TypeSave, babonus.TypeTest),
		NewListFilter(KeySaveAbilities, true, saveAbility, babonus.TypeSave),
		NewListFilter(KeyThrowTypes, false, throwTypes, babonus.TypeThrow),
		NewListFilter(KeyStatusEffects, true, actorStatuses),
		NewListFilter(KeyTargetEffects, true, targetStatuses),
		NewListFilter(KeyCreatureTypes, true, targetCreatureTypes),
		NewListFilter(KeyActorCreatureTypes, true, actorCreatureTypes),
		NewListFilter(KeyBaseArmors, true, equippedArmor).
			WithTree(trees, proficiency.CategoryArmor),
		NewListFilter(KeyBaseTools, true, toolKey, babonus.TypeTest).
			WithTree(trees, proficiency.CategoryTool),
		NewListFilter(KeyBaseWeapons, true, baseWeapon, babonus.TypeAttack, babonus.TypeDamage).
			WithTree(trees, proficiency.CategoryWeapon),
		NewListFilter(KeyDamageTypes, true, damageTypes, babonus.TypeAttack, babonus.TypeDamage),
		NewListFilter(KeyPreparationModes, false, preparationMode, itemTypes...),
		NewListFilter(KeySkillIDs, true, skillID, babonus.TypeTest),
		NewListFilter(KeySpellSchools, true, spellSchool, itemTypes...),
		NewListFilter(KeyWeaponProperties, true, weaponProperties, babonus.TypeAttack, babonus.TypeDamage),
		NewListFilter(KeyItemTypes, true, itemType, itemTypes...),
		NewListFilter(KeyAttackTypes, true, attackType, babonus.TypeAttack, babonus.TypeDamage),
		&SpellLevelFilter{},
		&SpellComponentFilter{},
		&ItemRequirementFilter{},
		&HealthPercentageFilter{},
		&RemainingSpellSlotFilter{},
		&ProficiencyLevelFilter{},
		&ArbitraryComparisonFilter{},
		&TokenSizeFilter{},
	}
}

func one(v string) ([]string, bool) {
	if v == "" {
		return nil, false
	}
	return []string{v}, true
}

func rollAbility(rc *roll.Context) ([]string, bool) {
	if rc.Item != nil {
		return one(rc.Item.AbilityID())
	}
	return one(rc.Details.AbilityID)
}

func saveAbility(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil {
		return nil, false
	}
	return one(rc.Item.System.Save.Ability)
}

func throwTypes(rc *roll.Context) ([]string, bool) {
	var out []string
	if rc.Details.ThrowType != "" {
		out = append(out, rc.Details.ThrowType)
	}
	if rc.Details.IsConcentration {
		out = append(out, roll.ThrowConcentration)
	}
	return out, len(out) > 0
}

func actorStatuses(rc *roll.Context) ([]string, bool) {
	if rc.Actor == nil {
		return nil, false
	}
	return rc.Actor.StatusIDs(), true
}

func targetStatuses(rc *roll.Context) ([]string, bool) {
	if rc.Target == nil {
		return nil, false
	}
	return rc.Target.StatusIDs(), true
}

func targetCreatureTypes(rc *roll.Context) ([]string, bool) {
	if rc.Target == nil {
		return nil, false
	}
	return rc.Target.Details.CreatureTypes, true
}

func actorCreatureTypes(rc *roll.Context) ([]string, bool) {
	if rc.Actor == nil {
		return nil, false
	}
	return rc.Actor.Details.CreatureTypes, true
}

func equippedArmor(rc *roll.Context) ([]string, bool) {
	if rc.Actor == nil {
		return nil, false
	}
	var out []string
	for _, item := range rc.Actor.Items {
		if !item.IsArmor() || !item.System.Equipped {
			continue
		}
		if item.System.BaseItem != "" {
			out = append(out, item.System.BaseItem)
		}
		out = append(out, item.System.ArmorType)
	}
	return out, true
}

func toolKey(rc *roll.Context) ([]string, bool) {
	if rc.Details.ToolID != "" {
		return one(rc.Details.ToolID)
	}
	if rc.Item != nil && rc.Item.Type == document.ItemTypeTool {
		return one(rc.Item.System.BaseItem)
	}
	return nil, false
}

func baseWeapon(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil || rc.Item.Type != document.ItemTypeWeapon {
		return nil, false
	}
	return one(rc.Item.System.BaseItem)
}

func damageTypes(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil {
		return nil, false
	}
	types := rc.Item.DamageTypes()
	return types, len(types) > 0
}

func preparationMode(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil || rc.Item.Type != document.ItemTypeSpell {
		return nil, false
	}
	return one(rc.Item.System.Preparation)
}

func skillID(rc *roll.Context) ([]string, bool) {
	return one(rc.Details.SkillID)
}

func spellSchool(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil || rc.Item.Type != document.ItemTypeSpell {
		return nil, false
	}
	return one(rc.Item.System.School)
}

func weaponProperties(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil || rc.Item.Type != document.ItemTypeWeapon {
		return nil, false
	}
	return rc.Item.System.Properties, true
}

func itemType(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil {
		return nil, false
	}
	return one(rc.Item.Type)
}

func attackType(rc *roll.Context) ([]string, bool) {
	if rc.Item == nil || !rc.Item.HasAttack() {
		return nil, false
	}
	return one(rc.Item.System.ActionType)
}
