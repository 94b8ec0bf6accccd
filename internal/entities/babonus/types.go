package babonus

import (
	"github.com/KirkDiggler/babonus/internal/errors"
)

// Type is the roll-lifecycle a bonus is eligible for.
type Type string

// Bonus types
const (
	TypeAttack Type = "attack"
	TypeDamage Type = "damage"
	TypeSave   Type = "save"
	TypeThrow  Type = "throw"
	TypeHitDie Type = "hitdie"
	TypeTest   Type = "test"
)

// Types lists every bonus type in canonical order.
var Types = []Type{TypeAttack, TypeDamage, TypeSave, TypeThrow, TypeHitDie, TypeTest}

// Valid reports whether the type is registered.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Bonuses is the formula payload of a bonus. Each type has exactly one
// implementation carrying only the fields meaningful for it.
type Bonuses interface {
	Type() Type
	// Formula returns the additive bonus formula.
	Formula() string
	// Populated reports whether any field carries a value.
	Populated() bool
}

// NewBonuses returns an empty payload for the type.
func NewBonuses(t Type) (Bonuses, error) {
	switch t {
	case TypeAttack:
		return &AttackBonuses{}, nil
	case TypeDamage:
		return &DamageBonuses{}, nil
	case TypeSave:
		return &SaveBonuses{}, nil
	case TypeThrow:
		return &ThrowBonuses{}, nil
	case TypeHitDie:
		return &HitDieBonuses{}, nil
	case TypeTest:
		return &TestBonuses{}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown bonus type %q", t)
	}
}

// AttackBonuses modify attack rolls.
type AttackBonuses struct {
	Bonus             string `json:"bonus,omitempty"`
	CriticalRange     string `json:"criticalRange,omitempty"`
	CriticalRangeFlat bool   `json:"criticalRangeFlat,omitempty"`
	FumbleRange       string `json:"fumbleRange,omitempty"`
	FumbleRangeFlat   bool   `json:"fumbleRangeFlat,omitempty"`
}

// Type implements Bonuses
func (b *AttackBonuses) Type() Type { return TypeAttack }

// Formula implements Bonuses
func (b *AttackBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *AttackBonuses) Populated() bool {
	return b.Bonus != "" || b.CriticalRange != "" || b.FumbleRange != ""
}

// DamageBonuses modify damage rolls.
type DamageBonuses struct {
	Bonus               string `json:"bonus,omitempty"`
	CriticalBonusDice   string `json:"criticalBonusDice,omitempty"`
	CriticalBonusDamage string `json:"criticalBonusDamage,omitempty"`
}

// Type implements Bonuses
func (b *DamageBonuses) Type() Type { return TypeDamage }

// Formula implements Bonuses
func (b *DamageBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *DamageBonuses) Populated() bool {
	return b.Bonus != "" || b.CriticalBonusDice != "" || b.CriticalBonusDamage != ""
}

// SaveBonuses modify the DC of saving throws an item forces.
type SaveBonuses struct {
	Bonus string `json:"bonus,omitempty"`
}

// Type implements Bonuses
func (b *SaveBonuses) Type() Type { return TypeSave }

// Formula implements Bonuses
func (b *SaveBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *SaveBonuses) Populated() bool { return b.Bonus != "" }

// ThrowBonuses modify saving throws the actor makes, including death saves.
type ThrowBonuses struct {
	Bonus                    string `json:"bonus,omitempty"`
	DeathSaveTargetValue     string `json:"deathSaveTargetValue,omitempty"`
	DeathSaveTargetValueFlat bool   `json:"deathSaveTargetValueFlat,omitempty"`
}

// Type implements Bonuses
func (b *ThrowBonuses) Type() Type { return TypeThrow }

// Formula implements Bonuses
func (b *ThrowBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *ThrowBonuses) Populated() bool {
	return b.Bonus != "" || b.DeathSaveTargetValue != ""
}

// HitDieBonuses modify hit die rolls.
type HitDieBonuses struct {
	Bonus string `json:"bonus,omitempty"`
}

// Type implements Bonuses
func (b *HitDieBonuses) Type() Type { return TypeHitDie }

// Formula implements Bonuses
func (b *HitDieBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *HitDieBonuses) Populated() bool { return b.Bonus != "" }

// TestBonuses modify ability checks, skill checks and tool checks.
type TestBonuses struct {
	Bonus string `json:"bonus,omitempty"`
}

// Type implements Bonuses
func (b *TestBonuses) Type() Type { return TypeTest }

// Formula implements Bonuses
func (b *TestBonuses) Formula() string { return b.Bonus }

// Populated implements Bonuses
func (b *TestBonuses) Populated() bool { return b.Bonus != "" }
