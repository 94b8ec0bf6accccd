package roll_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	rollctx "github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/orchestrators/roll"
	"github.com/KirkDiggler/babonus/internal/testutils/builders"
)

// fixedRoller rolls the same face on every die.
type fixedRoller struct {
	face int
}

func (r *fixedRoller) Roll(_ int) (int, error) {
	return r.face, nil
}

func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.face
	}
	return out, nil
}

type AggregatorTestSuite struct {
	suite.Suite
	aggregator *roll.Aggregator
	data       map[string]any
}

func (s *AggregatorTestSuite) SetupTest() {
	s.aggregator = roll.NewAggregator(&fixedRoller{face: 2})
	s.data = map[string]any{
		"prof": 3,
		"abilities": map[string]any{
			"str": map[string]any{"mod": 3},
			"con": map[string]any{"mod": 2},
		},
	}
}

func attack(id string, payload *babonus.AttackBonuses) *babonus.Bonus {
	return builders.NewBonusBuilder(babonus.TypeAttack).WithID(id).WithPayload(payload).Build()
}

func (s *AggregatorTestSuite) TestApplyAttack_Parts() {
	p := &rollctx.Parameters{}
	bonuses := []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("1d4").Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("@abilities.str.mod").Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("@scale.rogue.sneak").Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("1 +").Build(),
	}

	s.aggregator.ApplyAttack(p, bonuses, s.data)

	s.Equal([]string{"1d4", "@abilities.str.mod", "@scale.rogue.sneak"}, p.Parts)
	s.Nil(p.Critical)
	s.Nil(p.Fumble)
}

func (s *AggregatorTestSuite) TestApplyAttack_UnresolvedReferenceStaysPart() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("@scale.rogue.sneak").Build(),
	}, map[string]any{})

	s.Equal([]string{"@scale.rogue.sneak"}, p.Parts)
}

func (s *AggregatorTestSuite) TestApplyAttack_OptionalBonusStillMovesThresholds() {
	p := &rollctx.Parameters{}
	optional := builders.NewBonusBuilder(babonus.TypeAttack).
		WithID("optionalCrit0001").
		WithPayload(&babonus.AttackBonuses{Bonus: "1d4", CriticalRange: "18", CriticalRangeFlat: true}).
		Optional().
		Build()
	bonuses := []*babonus.Bonus{optional}

	s.aggregator.ApplyAttack(p, bonuses, s.data)
	automatic, optionals := roll.Split(bonuses)

	s.Require().NotNil(p.Critical)
	s.Equal(18, *p.Critical)
	s.Empty(p.Parts)
	s.Empty(automatic)
	s.Equal([]*babonus.Bonus{optional}, optionals)
}

func (s *AggregatorTestSuite) TestApplyDamage_OptionalBonusStillAddsCriticalDice() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyDamage(p, []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeDamage).
			WithPayload(&babonus.DamageBonuses{Bonus: "1d6", CriticalBonusDice: "2", CriticalBonusDamage: "1d4"}).
			Optional().
			Build(),
	}, s.data)

	s.Empty(p.Parts)
	s.Equal(2, p.CriticalBonusDice)
	s.Equal("1d4", p.CriticalBonusDamage)
}

func (s *AggregatorTestSuite) TestApplyAttack_CriticalRange() {
	p := &rollctx.Parameters{}
	bonuses := []*babonus.Bonus{
		attack("critFlat00000001", &babonus.AttackBonuses{CriticalRange: "18", CriticalRangeFlat: true}),
		attack("critFlat00000002", &babonus.AttackBonuses{CriticalRange: "19", CriticalRangeFlat: true}),
		attack("critMod000000001", &babonus.AttackBonuses{CriticalRange: "1"}),
		attack("critMod000000002", &babonus.AttackBonuses{CriticalRange: "-2"}),
	}

	s.aggregator.ApplyAttack(p, bonuses, s.data)

	s.Require().NotNil(p.Critical)
	s.Equal(19, *p.Critical)
}

func (s *AggregatorTestSuite) TestApplyAttack_CriticalModifierOnly() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		attack("critMod000000001", &babonus.AttackBonuses{CriticalRange: "@abilities.con.mod"}),
	}, s.data)

	s.Require().NotNil(p.Critical)
	s.Equal(18, *p.Critical)

	p = &rollctx.Parameters{Critical: rollctx.IntPtr(19)}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		attack("critMod000000001", &babonus.AttackBonuses{CriticalRange: "1"}),
	}, s.data)
	s.Equal(18, *p.Critical)
}

func (s *AggregatorTestSuite) TestApplyAttack_CriticalClamped() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		attack("critMod000000001", &babonus.AttackBonuses{CriticalRange: "25"}),
	}, s.data)

	s.Require().NotNil(p.Critical)
	s.Equal(1, *p.Critical)
}

func (s *AggregatorTestSuite) TestApplyAttack_FumbleRange() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		attack("fumbleMod0000001", &babonus.AttackBonuses{FumbleRange: "1"}),
		attack("fumbleMod0000002", &babonus.AttackBonuses{FumbleRange: "2"}),
	}, s.data)

	s.Require().NotNil(p.Fumble)
	s.Equal(4, *p.Fumble)

	p = &rollctx.Parameters{}
	s.aggregator.ApplyAttack(p, []*babonus.Bonus{
		attack("fumbleFlat000001", &babonus.AttackBonuses{FumbleRange: "2", FumbleRangeFlat: true}),
		attack("fumbleFlat000002", &babonus.AttackBonuses{FumbleRange: "3", FumbleRangeFlat: true}),
		attack("fumbleZero000001", &babonus.AttackBonuses{FumbleRange: "0", FumbleRangeFlat: true}),
	}, s.data)
	s.Equal(3, *p.Fumble)
}

func (s *AggregatorTestSuite) TestApplyDamage() {
	p := &rollctx.Parameters{CriticalBonusDamage: "2"}
	bonuses := []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeDamage).
			WithPayload(&babonus.DamageBonuses{Bonus: "1d6", CriticalBonusDice: "1", CriticalBonusDamage: "1d8"}).
			Build(),
		builders.NewBonusBuilder(babonus.TypeDamage).
			WithPayload(&babonus.DamageBonuses{CriticalBonusDice: "@abilities.con.mod", CriticalBonusDamage: "1 +"}).
			Build(),
	}

	s.aggregator.ApplyDamage(p, bonuses, s.data)

	s.Equal([]string{"1d6"}, p.Parts)
	s.Equal(3, p.CriticalBonusDice)
	s.Equal("2 + 1d8", p.CriticalBonusDamage)
}

func (s *AggregatorTestSuite) TestApplyDamage_BonusDiceNeverNegative() {
	p := &rollctx.Parameters{CriticalBonusDice: 1}
	s.aggregator.ApplyDamage(p, []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeDamage).
			WithPayload(&babonus.DamageBonuses{CriticalBonusDice: "-4"}).
			Build(),
	}, s.data)

	s.Equal(0, p.CriticalBonusDice)
	s.Empty(p.CriticalBonusDamage)
}

func (s *AggregatorTestSuite) TestApplyDeathSave() {
	throw := func(value string, flat bool) *babonus.Bonus {
		return builders.NewBonusBuilder(babonus.TypeThrow).
			WithPayload(&babonus.ThrowBonuses{DeathSaveTargetValue: value, DeathSaveTargetValueFlat: flat}).
			Build()
	}

	testCases := []struct {
		name     string
		bonuses  []*babonus.Bonus
		expected *int
	}{
		{name: "none", bonuses: []*babonus.Bonus{throw("", false)}, expected: nil},
		{name: "modifier", bonuses: []*babonus.Bonus{throw("-2", false)}, expected: rollctx.IntPtr(8)},
		{name: "lowest flat wins", bonuses: []*babonus.Bonus{throw("15", true), throw("12", true)}, expected: rollctx.IntPtr(12)},
		{name: "flat plus modifier", bonuses: []*babonus.Bonus{throw("12", true), throw("2", false)}, expected: rollctx.IntPtr(14)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p := &rollctx.Parameters{}
			s.aggregator.ApplyDeathSave(p, tc.bonuses, s.data)
			s.Equal(tc.expected, p.TargetValue)
		})
	}
}

func (s *AggregatorTestSuite) TestApplyHitDie() {
	p := &rollctx.Parameters{}
	s.aggregator.ApplyHitDie(p, []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeHitDie).WithFormula("@abilities.con.mod").Build(),
		builders.NewBonusBuilder(babonus.TypeHitDie).WithFormula("1 +").Build(),
		builders.NewBonusBuilder(babonus.TypeHitDie).WithFormula("2").Build(),
	}, s.data, "d8")

	s.Equal("1d8 + @abilities.con.mod + 2", p.Formula)

	p = &rollctx.Parameters{Formula: "1d10 + 4"}
	s.aggregator.ApplyHitDie(p, nil, s.data, "d10")
	s.Equal("1d10 + 4", p.Formula)
}

func (s *AggregatorTestSuite) TestApplyHitDie_InsertsAfterDenomination() {
	p := &rollctx.Parameters{Formula: "1d10 + 4"}
	s.aggregator.ApplyHitDie(p, []*babonus.Bonus{
		builders.NewBonusBuilder(babonus.TypeHitDie).WithFormula("@abilities.con.mod").Build(),
		builders.NewBonusBuilder(babonus.TypeHitDie).WithFormula("1d4").Build(),
	}, s.data, "d10")

	s.Equal("1d10 + @abilities.con.mod + 1d4 + 4", p.Formula)
}

func (s *AggregatorTestSuite) TestApplySaveDC() {
	save := func(f string) *babonus.Bonus {
		return builders.NewBonusBuilder(babonus.TypeSave).WithFormula(f).Build()
	}

	p := &rollctx.Parameters{}
	s.aggregator.ApplySaveDC(p, []*babonus.Bonus{save("2"), save("@prof"), save("@missing")}, s.data, 13)
	s.Equal(18, p.SaveDC)

	s.aggregator.ApplySaveDC(p, []*babonus.Bonus{save("-30")}, s.data, 13)
	s.Equal(1, p.SaveDC)
}

func (s *AggregatorTestSuite) TestSplit() {
	auto := builders.NewBonusBuilder(babonus.TypeAttack).WithID("automatic0000001").Build()
	optional := builders.NewBonusBuilder(babonus.TypeAttack).WithID("optional00000001").WithFormula("1d4").Optional().Build()
	empty := builders.NewBonusBuilder(babonus.TypeAttack).WithID("optionalEmpty001").Optional().Build()
	invalid := builders.NewBonusBuilder(babonus.TypeAttack).WithID("optionalBad00001").WithFormula("1 +").Optional().Build()
	save := builders.NewBonusBuilder(babonus.TypeSave).WithID("optionalSave0001").Optional().Build()

	automatic, optionals := roll.Split([]*babonus.Bonus{auto, optional, empty, invalid, save})

	s.Equal([]*babonus.Bonus{auto, save}, automatic)
	s.Equal([]*babonus.Bonus{optional}, optionals)
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
