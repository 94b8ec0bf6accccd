package roll

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/formula"
)

// Threshold defaults
const (
	DefaultCritical        = 20
	DefaultFumble          = 1
	DefaultDeathSaveTarget = 10
)

// Aggregator folds matched bonuses into roll parameters.
type Aggregator struct {
	eval *formula.Evaluator
}

// NewAggregator creates an aggregator. A nil roller uses dice.DefaultRoller.
func NewAggregator(roller dice.Roller) *Aggregator {
	return &Aggregator{eval: formula.New(roller)}
}

// threshold collects flat and modifier contributions to one threshold.
type threshold struct {
	flats []int
	mods  []int
}

func (t *threshold) add(value int, flat bool) {
	// an invalid or empty formula evaluates to 0 and never overrides
	if value == 0 {
		return
	}
	if flat {
		t.flats = append(t.flats, value)
		return
	}
	t.mods = append(t.mods, value)
}

// resolve seeds with the winning flat value, or base when there is none, and
// folds every modifier in with the given sign.
func (t *threshold) resolve(base int, wins func(candidate, current int) bool, sign int) int {
	value := base
	for i, flat := range t.flats {
		if i == 0 || wins(flat, value) {
			value = flat
		}
	}
	for _, mod := range t.mods {
		value += sign * mod
	}
	return value
}

func lower(candidate, current int) bool  { return candidate < current }
func higher(candidate, current int) bool { return candidate > current }

// offered reports whether the bonus is offered to the roller instead of being
// applied. Save DC bonuses are never optional.
func offered(b *babonus.Bonus) bool {
	return b.Optional && b.Type() != babonus.TypeSave
}

// Split separates the bonuses applied automatically from the optional
// bonuses offered to the roller. An optional bonus without a well formed
// bonus formula has nothing to offer and lands in neither list.
func Split(bonuses []*babonus.Bonus) (automatic, optional []*babonus.Bonus) {
	for _, b := range bonuses {
		if !offered(b) {
			automatic = append(automatic, b)
			continue
		}
		if formula.ValidSyntax(b.Formula()) {
			optional = append(optional, b)
		}
	}
	return automatic, optional
}

// AddParts appends the bonus formula of every automatic bonus as a roll
// part. Formulas are checked for syntax only; references are left for the
// roll to resolve.
func (a *Aggregator) AddParts(p *roll.Parameters, bonuses []*babonus.Bonus, _ map[string]any) {
	p.Parts = append(p.Parts, partFormulas(bonuses)...)
}

func partFormulas(bonuses []*babonus.Bonus) []string {
	var parts []string
	for _, b := range bonuses {
		if offered(b) {
			continue
		}
		if f := b.Formula(); formula.ValidSyntax(f) {
			parts = append(parts, f)
		}
	}
	return parts
}

// ApplyAttack adds bonus parts and adjusts the critical and fumble
// thresholds. Thresholds fold in every matched bonus, optional or not.
func (a *Aggregator) ApplyAttack(p *roll.Parameters, bonuses []*babonus.Bonus, data map[string]any) {
	a.AddParts(p, bonuses, data)

	var critical, fumble threshold
	for _, b := range bonuses {
		attack, ok := b.Bonuses.(*babonus.AttackBonuses)
		if !ok {
			continue
		}
		critical.add(a.eval.IntValue(attack.CriticalRange, data), attack.CriticalRangeFlat)
		fumble.add(a.eval.IntValue(attack.FumbleRange, data), attack.FumbleRangeFlat)
	}

	if len(critical.flats) > 0 || len(critical.mods) > 0 {
		base := DefaultCritical
		if p.Critical != nil {
			base = *p.Critical
		}
		// raising a critical modifier lowers the number needed
		value := critical.resolve(base, lower, -1)
		if value < 1 {
			value = 1
		}
		p.Critical = roll.IntPtr(value)
	}

	if len(fumble.flats) > 0 || len(fumble.mods) > 0 {
		base := DefaultFumble
		if p.Fumble != nil {
			base = *p.Fumble
		}
		p.Fumble = roll.IntPtr(fumble.resolve(base, higher, 1))
	}
}

// ApplyDamage adds bonus parts and critical bonus dice and damage. Critical
// contributions fold in every matched bonus, optional or not.
func (a *Aggregator) ApplyDamage(p *roll.Parameters, bonuses []*babonus.Bonus, data map[string]any) {
	a.AddParts(p, bonuses, data)

	bonusDice := 0
	var extra []string
	for _, b := range bonuses {
		damage, ok := b.Bonuses.(*babonus.DamageBonuses)
		if !ok {
			continue
		}
		bonusDice += a.eval.IntValue(damage.CriticalBonusDice, data)
		if formula.ValidSyntax(damage.CriticalBonusDamage) {
			extra = append(extra, damage.CriticalBonusDamage)
		}
	}

	p.CriticalBonusDice += bonusDice
	if p.CriticalBonusDice < 0 {
		p.CriticalBonusDice = 0
	}
	if len(extra) > 0 {
		if p.CriticalBonusDamage != "" {
			extra = append([]string{p.CriticalBonusDamage}, extra...)
		}
		p.CriticalBonusDamage = strings.Join(extra, " + ")
	}
}

// ApplyDeathSave adds bonus parts and adjusts the death save target value.
func (a *Aggregator) ApplyDeathSave(p *roll.Parameters, bonuses []*babonus.Bonus, data map[string]any) {
	a.AddParts(p, bonuses, data)

	var target threshold
	for _, b := range bonuses {
		throw, ok := b.Bonuses.(*babonus.ThrowBonuses)
		if !ok {
			continue
		}
		target.add(a.eval.IntValue(throw.DeathSaveTargetValue, data), throw.DeathSaveTargetValueFlat)
	}
	if len(target.flats) == 0 && len(target.mods) == 0 {
		return
	}

	base := DefaultDeathSaveTarget
	if p.TargetValue != nil {
		base = *p.TargetValue
	}
	p.TargetValue = roll.IntPtr(target.resolve(base, lower, 1))
}

// ApplyHitDie inserts the automatic bonus formulas right after the first
// occurrence of the denomination in the hit die formula.
func (a *Aggregator) ApplyHitDie(p *roll.Parameters, bonuses []*babonus.Bonus, _ map[string]any, denomination string) {
	if p.Formula == "" && denomination != "" {
		p.Formula = "1" + denomination
	}
	parts := partFormulas(bonuses)
	if len(parts) == 0 {
		return
	}
	extra := " + " + strings.Join(parts, " + ")
	if denomination == "" || !strings.Contains(p.Formula, denomination) {
		p.Formula += extra
		return
	}
	p.Formula = strings.Replace(p.Formula, denomination, denomination+extra, 1)
}

// ApplySaveDC raises the save DC by the sum of the bonuses, never below 1.
func (a *Aggregator) ApplySaveDC(p *roll.Parameters, bonuses []*babonus.Bonus, data map[string]any, base int) {
	total := 0
	for _, b := range bonuses {
		total += a.eval.IntValue(b.Formula(), data)
	}
	dc := base + total
	if dc < 1 {
		dc = 1
	}
	p.SaveDC = dc
}
