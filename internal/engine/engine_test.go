package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/babonus/internal/engine"
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/filters"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/testutils"
	"github.com/KirkDiggler/babonus/internal/testutils/builders"
)

type EngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	engine engine.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()

	registry, err := engine.DefaultRegistry(proficiency.NewTrees())
	s.Require().NoError(err)

	s.engine, err = engine.New(&engine.Config{Registry: registry})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) ids(bonuses []*babonus.Bonus) []string {
	out := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		out = append(out, b.ID)
	}
	return out
}

func (s *EngineTestSuite) evaluate(rc *roll.Context) *engine.EvaluateOutput {
	out, err := s.engine.Evaluate(s.ctx, &engine.EvaluateInput{Roll: rc})
	s.Require().NoError(err)
	return out
}

func (s *EngineTestSuite) TestNew() {
	_, err := engine.New(nil)
	s.Error(err)

	_, err = engine.New(&engine.Config{})
	s.Error(err)
}

func (s *EngineTestSuite) TestCollect_InvalidKind() {
	fighter := testutils.CreateTestFighter()
	rc := roll.NewActorContext("initiative", fighter, roll.Details{})

	_, err := s.engine.Collect(s.ctx, &engine.CollectInput{Roll: rc})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestOwnBonuses() {
	fighter := testutils.CreateTestFighter()
	sword := fighter.Item(testutils.TestSwordID)
	dagger := builders.NewWeapon("dagger0000000001", "dagger", "fin", "lgt", "thr")
	fighter.Items = append(fighter.Items, dagger)

	builders.Embed(fighter,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("actorAttack00001").Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("actorDisabled001").Disabled().Build(),
		builders.NewBonusBuilder(babonus.TypeDamage).WithID("actorDamage00001").Build(),
	)
	builders.Embed(sword,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("swordExclusive01").Exclusive().Build(),
	)
	builders.Embed(dagger,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("daggerExclusive1").Exclusive().Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("daggerShared0001").Build(),
	)
	active := &document.Effect{ID: "effectActive0001"}
	inactive := &document.Effect{ID: "effectOff0000001", Disabled: true}
	builders.Embed(active, builders.NewBonusBuilder(babonus.TypeAttack).WithID("effectBonus00001").Build())
	builders.Embed(inactive, builders.NewBonusBuilder(babonus.TypeAttack).WithID("effectBonus00002").Build())
	fighter.Effects = append(fighter.Effects, active, inactive)
	fighter.Link()

	out := s.evaluate(roll.NewItemContext(babonus.TypeAttack, sword, roll.Details{}))
	s.ElementsMatch([]string{
		"actorAttack00001",
		"swordExclusive01",
		"daggerShared0001",
		"effectBonus00001",
	}, s.ids(out.Bonuses))
	s.Zero(out.Skipped)
}

func (s *EngineTestSuite) TestFiltersAndMalformedBonuses() {
	fighter := testutils.CreateTestFighter()
	builders.Embed(fighter,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("matchingBonus001").
			WithFilter(filters.KeyBaseWeapons, `["mar"]`).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("rangedOnly000001").
			WithFilter(filters.KeyAttackTypes, `["rwak"]`).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("unknownFilter001").
			WithFilter("unknownKey", `["x"]`).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("badScript0000001").
			WithFilter(filters.KeyCustomScripts, `"return (("`).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("goodScript000001").
			WithFilter(filters.KeyCustomScripts, `"item.baseItem == 'longsword'"`).Build(),
	)
	fighter.Flags.Set("not-an-id", []byte(`{"type":"attack"}`))

	out := s.evaluate(roll.NewItemContext(babonus.TypeAttack, fighter.Item(testutils.TestSwordID), roll.Details{}))
	s.Equal([]string{"goodScript000001", "matchingBonus001"}, s.ids(out.Bonuses))
	s.Equal(2, out.Skipped)
}

func (s *EngineTestSuite) auraScene(aura *babonus.Bonus) (*scene.Scene, *document.Actor, *document.Actor, *document.Actor) {
	return testutils.CreateTestAuraScene(aura)
}

func (s *EngineTestSuite) attack(sc *scene.Scene, actor *document.Actor) *roll.Context {
	return roll.NewItemContext(babonus.TypeAttack, actor.Item(testutils.TestSwordID), roll.Details{}).WithScene(sc)
}

func (s *EngineTestSuite) TestTokenAura_AllyInRange() {
	aura := builders.NewBonusBuilder(babonus.TypeAttack).WithID("blessAura0000001").
		WithTokenAura(10, babonus.AuraDispositionAlly).Build()
	sc, fighter, _, _ := s.auraScene(aura)

	out := s.evaluate(s.attack(sc, fighter))
	s.Equal([]string{"blessAura0000001"}, s.ids(out.Bonuses))
}

func (s *EngineTestSuite) TestTokenAura_OutOfRange() {
	aura := builders.NewBonusBuilder(babonus.TypeAttack).WithID("blessAura0000001").
		WithTokenAura(10, babonus.AuraDispositionAlly).Build()
	sc, fighter, _, _ := s.auraScene(aura)
	sc.Token("tokenCleric00001").X = 1500

	out := s.evaluate(s.attack(sc, fighter))
	s.Empty(out.Bonuses)
}

func (s *EngineTestSuite) TestTokenAura_Unlimited() {
	aura := builders.NewBonusBuilder(babonus.TypeAttack).WithID("globalAura000001").
		WithTokenAura(babonus.RangeUnlimited, babonus.AuraDispositionAny).Build()
	sc, _, _, goblin := s.auraScene(aura)
	goblin.Items = append(goblin.Items, builders.NewWeapon(testutils.TestSwordID, "scimitar"))
	goblin.Link()

	out := s.evaluate(s.attack(sc, goblin))
	s.Equal([]string{"globalAura000001"}, s.ids(out.Bonuses))
}

func (s *EngineTestSuite) TestTokenAura_Disposition() {
	aura := builders.NewBonusBuilder(babonus.TypeAttack).WithID("enemyAura0000001").
		WithTokenAura(babonus.RangeUnlimited, babonus.AuraDispositionEnemy).Build()
	sc, fighter, _, goblin := s.auraScene(aura)
	goblin.Items = append(goblin.Items, builders.NewWeapon(testutils.TestSwordID, "scimitar"))
	goblin.Link()

	s.Empty(s.evaluate(s.attack(sc, fighter)).Bonuses)
	s.Len(s.evaluate(s.attack(sc, goblin)).Bonuses, 1)
}

func (s *EngineTestSuite) TestTokenAura_Blockers() {
	testCases := []struct {
		name    string
		prepare func(fighter, cleric *document.Actor)
	}{
		{name: "blocked on the roller", prepare: func(fighter, _ *document.Actor) {
			fighter.Statuses = []string{"silenced"}
		}},
		{name: "blocked on the source", prepare: func(_, cleric *document.Actor) {
			cleric.Effects = append(cleric.Effects, &document.Effect{ID: "effectSilence001", Statuses: []string{"silenced"}})
			cleric.Link()
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			aura := builders.NewBonusBuilder(babonus.TypeAttack).WithID("blessAura0000001").
				WithTokenAura(10, babonus.AuraDispositionAlly).
				WithBlockers("silenced").
				Build()
			sc, fighter, cleric, _ := s.auraScene(aura)
			tc.prepare(fighter, cleric)

			s.Empty(s.evaluate(s.attack(sc, fighter)).Bonuses)
		})
	}
}

func (s *EngineTestSuite) TestTokenAura_Self() {
	plain := builders.NewBonusBuilder(babonus.TypeTest).WithID("auraNoSelf000001").
		WithTokenAura(10, babonus.AuraDispositionAny).Build()
	self := builders.NewBonusBuilder(babonus.TypeTest).WithID("auraSelf00000001").
		WithTokenAura(10, babonus.AuraDispositionAny).WithSelf().Build()
	sc, _, cleric, _ := s.auraScene(plain)
	builders.Embed(cleric, self)

	rc := roll.NewActorContext(babonus.TypeTest, cleric, roll.Details{AbilityID: "wis"}).WithScene(sc)
	s.Equal([]string{"auraSelf00000001"}, s.ids(s.evaluate(rc).Bonuses))
}

func (s *EngineTestSuite) TestTemplateAura() {
	fighter := testutils.CreateTestFighter()
	goblin := testutils.CreateTestGoblin()
	template := &document.Template{
		ID:          "spiritGuardians1",
		Shape:       document.ShapeCircle,
		X:           550,
		Y:           550,
		Distance:    5,
		Disposition: int(scene.DispositionFriendly),
	}
	builders.Embed(template,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("templateAlly0001").
			WithTemplateAura(babonus.AuraDispositionAlly).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("templateEnemy001").
			WithTemplateAura(babonus.AuraDispositionEnemy).Build(),
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("notAnAura0000001").Build(),
	)

	sc := builders.NewSceneBuilder().
		WithToken("tokenFighter0001", fighter, 5, 5, scene.DispositionFriendly).
		WithToken("tokenGoblin00001", goblin, 15, 15, scene.DispositionHostile).
		WithTemplate(template).
		Build()

	out := s.evaluate(s.attack(sc, fighter))
	s.Equal([]string{"templateAlly0001"}, s.ids(out.Bonuses))

	// the goblin is outside the template
	goblin.Items = append(goblin.Items, builders.NewWeapon(testutils.TestSwordID, "scimitar"))
	goblin.Link()
	s.Empty(s.evaluate(s.attack(sc, goblin)).Bonuses)
}

func (s *EngineTestSuite) TestTemplateAuraNotAppliedThroughOwner() {
	fighter := testutils.CreateTestFighter()
	builders.Embed(fighter,
		builders.NewBonusBuilder(babonus.TypeAttack).WithID("templateOnly0001").
			WithTemplateAura(babonus.AuraDispositionAny).Build(),
	)

	out := s.evaluate(roll.NewItemContext(babonus.TypeAttack, fighter.Item(testutils.TestSwordID), roll.Details{}))
	s.Empty(out.Bonuses)
}

func (s *EngineTestSuite) TestCompile() {
	b := builders.NewBonusBuilder(babonus.TypeSave).
		WithFilter(filters.KeySaveAbilities, `["dex"]`).
		WithFilter(filters.KeyAbilities, `[]`).
		Build()

	out, err := s.engine.Compile(s.ctx, &engine.CompileInput{Bonus: b})
	s.Require().NoError(err)
	s.Equal([]string{filters.KeySaveAbilities}, out.Compiled.Keys())

	_, err = s.engine.Compile(s.ctx, &engine.CompileInput{})
	s.Error(err)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
