package filters

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/formula"
)

func decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "malformed filter payload")
	}
	return nil
}

// SpellLevelFilter matches the level a spell is cast at.
type SpellLevelFilter struct{}

// Key implements Filter
func (SpellLevelFilter) Key() string { return KeySpellLevels }

// AppliesTo implements Filter
func (SpellLevelFilter) AppliesTo(t babonus.Type) bool { return appliesTo(itemTypes, t) }

// Cost implements Filter
func (SpellLevelFilter) Cost() int { return CostList }

// Compile implements Filter
func (SpellLevelFilter) Compile(raw json.RawMessage) (Predicate, error) {
	list, err := ParseList(raw)
	if err != nil {
		return nil, err
	}
	if len(list.Values) == 0 {
		return nil, nil
	}
	levels := make(map[int]bool, len(list.Values))
	for _, v := range list.Values {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid spell level %q", v)
		}
		levels[level] = true
	}

	return func(rc *roll.Context) bool {
		level, ok := rc.ItemLevel()
		return ok && levels[level]
	}, nil
}

// Component match modes
const (
	MatchAny = "ANY"
	MatchAll = "ALL"
)

// SpellComponentFilter matches the components of a spell.
type SpellComponentFilter struct{}

// Key implements Filter
func (SpellComponentFilter) Key() string { return KeySpellComponents }

// AppliesTo implements Filter
func (SpellComponentFilter) AppliesTo(t babonus.Type) bool { return appliesTo(itemTypes, t) }

// Cost implements Filter
func (SpellComponentFilter) Cost() int { return CostStructured }

// Compile implements Filter
func (SpellComponentFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var payload struct {
		Types json.RawMessage `json:"types"`
		Match string          `json:"match"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	types, err := ParseList(payload.Types)
	if err != nil {
		return nil, err
	}
	if len(types.Values) == 0 {
		return nil, nil
	}
	match := strings.ToUpper(payload.Match)
	if match == "" {
		match = MatchAny
	}
	if match != MatchAny && match != MatchAll {
		return nil, errors.InvalidArgumentf("invalid component match %q", payload.Match)
	}

	return func(rc *roll.Context) bool {
		if rc.Item == nil || rc.Item.Type != document.ItemTypeSpell {
			return false
		}
		components := ListCriteria{Values: rc.Item.System.Components}
		if match == MatchAny {
			return components.Overlaps(types.Values)
		}
		for _, t := range types.Values {
			if !components.Contains(t) {
				return false
			}
		}
		return true
	}, nil
}

// ItemRequirementFilter requires the rolling item to be equipped or attuned.
type ItemRequirementFilter struct{}

// Key implements Filter
func (ItemRequirementFilter) Key() string { return KeyItemRequirements }

// AppliesTo implements Filter
func (ItemRequirementFilter) AppliesTo(t babonus.Type) bool { return appliesTo(itemTypes, t) }

// Cost implements Filter
func (ItemRequirementFilter) Cost() int { return CostList }

// Compile implements Filter
func (ItemRequirementFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var payload struct {
		Equipped bool `json:"equipped"`
		Attuned  bool `json:"attuned"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if !payload.Equipped && !payload.Attuned {
		return nil, nil
	}

	return func(rc *roll.Context) bool {
		if rc.Item == nil {
			return false
		}
		if payload.Equipped && !rc.Item.System.Equipped {
			return false
		}
		if payload.Attuned && !rc.Item.System.Attuned {
			return false
		}
		return true
	}, nil
}

// Comparison directions shared by threshold filters.
const (
	AtOrBelow = 0
	AtOrAbove = 1
)

// HealthPercentageFilter compares the actor's hit points to a percentage.
type HealthPercentageFilter struct{}

// Key implements Filter
func (HealthPercentageFilter) Key() string { return KeyHealthPercentages }

// AppliesTo implements Filter
func (HealthPercentageFilter) AppliesTo(babonus.Type) bool { return true }

// Cost implements Filter
func (HealthPercentageFilter) Cost() int { return CostList }

// Compile implements Filter
func (HealthPercentageFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var payload struct {
		Value *float64 `json:"value"`
		Type  int      `json:"type"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Value == nil {
		return nil, nil
	}
	if payload.Type != AtOrBelow && payload.Type != AtOrAbove {
		return nil, errors.InvalidArgumentf("invalid health comparison %d", payload.Type)
	}
	value := *payload.Value

	return func(rc *roll.Context) bool {
		if rc.Actor == nil {
			return false
		}
		pct, ok := rc.Actor.HealthPercentage()
		if !ok {
			return false
		}
		if payload.Type == AtOrBelow {
			return pct <= value
		}
		return pct >= value
	}, nil
}

// RemainingSpellSlotFilter bounds the actor's remaining spell slots.
type RemainingSpellSlotFilter struct{}

// Key implements Filter
func (RemainingSpellSlotFilter) Key() string { return KeyRemainingSpellSlots }

// AppliesTo implements Filter
func (RemainingSpellSlotFilter) AppliesTo(babonus.Type) bool { return true }

// Cost implements Filter
func (RemainingSpellSlotFilter) Cost() int { return CostList }

// Compile implements Filter
func (RemainingSpellSlotFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var payload struct {
		Min *int `json:"min"`
		Max *int `json:"max"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Min == nil && payload.Max == nil {
		return nil, nil
	}
	lo, hi := 0, math.MaxInt
	if payload.Min != nil {
		lo = *payload.Min
	}
	if payload.Max != nil {
		hi = *payload.Max
	}
	if hi < lo {
		lo, hi = hi, lo
	}

	return func(rc *roll.Context) bool {
		if rc.Actor == nil {
			return false
		}
		n := rc.Actor.RemainingSpellSlots()
		return n >= lo && n <= hi
	}, nil
}

// ProficiencyLevelFilter matches the proficiency multiplier applied to the
// roll.
type ProficiencyLevelFilter struct{}

// Key implements Filter
func (ProficiencyLevelFilter) Key() string { return KeyProficiencyLevels }

// AppliesTo implements Filter
func (ProficiencyLevelFilter) AppliesTo(t babonus.Type) bool { return t != babonus.TypeHitDie }

// Cost implements Filter
func (ProficiencyLevelFilter) Cost() int { return CostList }

// Compile implements Filter
func (ProficiencyLevelFilter) Compile(raw json.RawMessage) (Predicate, error) {
	list, err := ParseList(raw)
	if err != nil {
		return nil, err
	}
	if len(list.Values) == 0 {
		return nil, nil
	}
	levels := make([]float64, 0, len(list.Values))
	for _, v := range list.Values {
		level, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid proficiency level %q", v)
		}
		levels = append(levels, level)
	}

	return func(rc *roll.Context) bool {
		multiplier, ok := ProficiencyMultiplier(rc)
		if !ok {
			return false
		}
		for _, level := range levels {
			if level == multiplier {
				return true
			}
		}
		return false
	}, nil
}

// ProficiencyMultiplier returns the proficiency multiplier of the roll.
func ProficiencyMultiplier(rc *roll.Context) (float64, bool) {
	if rc.Actor == nil {
		return 0, false
	}
	switch rc.Kind {
	case babonus.TypeAttack, babonus.TypeDamage, babonus.TypeSave:
		if rc.Item == nil {
			return 0, false
		}
		if rc.Item.System.Proficient != nil {
			return *rc.Item.System.Proficient, true
		}
		if rc.Item.Type == document.ItemTypeSpell {
			return 1, true
		}
		return 0, true
	case babonus.TypeTest:
		if skill, ok := rc.Actor.Skills[rc.Details.SkillID]; ok {
			return skill.Proficient, true
		}
		if tool, ok := rc.Actor.Tools[rc.Details.ToolID]; ok {
			return tool.Proficient, true
		}
		return 0, rc.Details.AbilityID != ""
	case babonus.TypeThrow:
		ability := rc.Details.ThrowType
		if rc.Details.IsConcentration || ability == roll.ThrowConcentration {
			ability = "con"
		}
		if ability == roll.ThrowDeath || ability == "" {
			return 0, true
		}
		if rc.Actor.Abilities[ability].Proficient {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Comparison operators
const (
	OpEqual        = "EQ"
	OpNotEqual     = "NE"
	OpLess         = "LT"
	OpLessEqual    = "LE"
	OpGreater      = "GT"
	OpGreaterEqual = "GE"
)

// Comparison compares two formulas over roll data.
type Comparison struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
}

// Evaluate substitutes roll data on both sides and compares them,
// numerically when both sides are arithmetic.
func (c Comparison) Evaluate(data map[string]any) bool {
	left := formula.Replace(c.Left, data)
	right := formula.Replace(c.Right, data)

	var cmp int
	lv, lerr := formula.Static(left, data)
	rv, rerr := formula.Static(right, data)
	if lerr == nil && rerr == nil {
		switch {
		case lv < rv:
			cmp = -1
		case lv > rv:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.TrimSpace(left), strings.TrimSpace(right))
	}

	switch c.Operator {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	default:
		return false
	}
}

// ArbitraryComparisonFilter requires every comparison to hold.
type ArbitraryComparisonFilter struct{}

// Key implements Filter
func (ArbitraryComparisonFilter) Key() string { return KeyArbitraryComparisons }

// AppliesTo implements Filter
func (ArbitraryComparisonFilter) AppliesTo(babonus.Type) bool { return true }

// Cost implements Filter
func (ArbitraryComparisonFilter) Cost() int { return CostFormula }

// Compile implements Filter
func (ArbitraryComparisonFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var all []Comparison
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		var single Comparison
		if err := decode(raw, &single); err != nil {
			return nil, err
		}
		all = append(all, single)
	} else if err := decode(raw, &all); err != nil {
		return nil, err
	}

	var comparisons []Comparison
	for _, c := range all {
		if strings.TrimSpace(c.Left) == "" || strings.TrimSpace(c.Right) == "" {
			continue
		}
		c.Operator = strings.ToUpper(c.Operator)
		switch c.Operator {
		case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		default:
			return nil, errors.InvalidArgumentf("invalid comparison operator %q", c.Operator)
		}
		comparisons = append(comparisons, c)
	}
	if len(comparisons) == 0 {
		return nil, nil
	}

	return func(rc *roll.Context) bool {
		for _, c := range comparisons {
			if !c.Evaluate(rc.Data) {
				return false
			}
		}
		return true
	}, nil
}

// TokenSizeFilter compares the target token's size to a threshold.
type TokenSizeFilter struct{}

// Key implements Filter
func (TokenSizeFilter) Key() string { return KeyTokenSizes }

// AppliesTo implements Filter
func (TokenSizeFilter) AppliesTo(t babonus.Type) bool { return appliesTo(itemTypes, t) }

// Cost implements Filter
func (TokenSizeFilter) Cost() int { return CostStructured }

// Compile implements Filter
func (TokenSizeFilter) Compile(raw json.RawMessage) (Predicate, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var payload struct {
		Size float64 `json:"size"`
		Type int     `json:"type"`
		// Self also compares against the rolling token's own size.
		Self bool `json:"self"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Size <= 0 {
		return nil, nil
	}
	if payload.Type != AtOrBelow && payload.Type != AtOrAbove {
		return nil, errors.InvalidArgumentf("invalid size comparison %d", payload.Type)
	}

	return func(rc *roll.Context) bool {
		if rc.TargetToken == nil {
			return false
		}
		threshold := payload.Size
		if payload.Self && rc.Token != nil {
			if payload.Type == AtOrAbove {
				threshold = math.Max(threshold, rc.Token.Size())
			} else {
				threshold = math.Min(threshold, rc.Token.Size())
			}
		}
		size := rc.TargetToken.Size()
		if payload.Type == AtOrAbove {
			return size >= threshold
		}
		return size <= threshold
	}, nil
}
