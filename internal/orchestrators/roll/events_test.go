package roll_test

import (
	"context"
	"errors"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	rollctx "github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/orchestrators/roll"
	"github.com/KirkDiggler/babonus/internal/testutils/builders"
	"github.com/KirkDiggler/babonus/internal/testutils/mocks"
)

func (s *OrchestratorTestSuite) withBus() *rpgevents.Bus {
	bus := rpgevents.NewBus()
	var err error
	s.orchestrator, err = roll.NewOrchestrator(&roll.Config{
		Engine: s.mockEngine,
		Roller: &fixedRoller{face: 2},
		Events: bus,
	})
	s.Require().NoError(err)
	return bus
}

func (s *OrchestratorTestSuite) TestEventName() {
	s.Equal(rpgevents.EventBeforeAttackRoll, roll.EventName(babonus.TypeAttack))
	s.Equal(rpgevents.EventBeforeDamageRoll, roll.EventName(babonus.TypeDamage))
	s.Equal(rpgevents.EventBeforeSavingThrow, roll.EventName(babonus.TypeThrow))
	s.Equal(roll.EventBeforeSaveDC, roll.EventName(babonus.TypeSave))
	s.Equal(roll.EventBeforeHitDie, roll.EventName(babonus.TypeHitDie))
	s.Equal(roll.EventBeforeTestRoll, roll.EventName(babonus.TypeTest))
}

func (s *OrchestratorTestSuite) TestPreRollAttack_PublishesBeforeRoll() {
	bus := s.withBus()
	bless := builders.NewBonusBuilder(babonus.TypeAttack).WithFormula("1d4").Build()
	mocks.ExpectEvaluate(s.mockEngine, babonus.TypeAttack, bless)

	published := 0
	bus.SubscribeFunc(rpgevents.EventBeforeAttackRoll, 50, func(_ context.Context, event rpgevents.Event) error {
		published++
		rc, ok := roll.RollFromEvent(event)
		s.Require().True(ok)
		s.Equal([]string{"1d4"}, rc.Parameters.Parts)
		rc.Parameters.Parts = append(rc.Parameters.Parts, "2")
		return nil
	})

	out, err := s.orchestrator.PreRollAttack(s.ctx, &roll.HookInput{Item: s.sword})
	s.Require().NoError(err)

	s.Equal(1, published)
	s.Equal([]string{"1d4", "2"}, out.Roll.Parameters.Parts)
}

func (s *OrchestratorTestSuite) TestPreRollAttack_SubscriberError() {
	bus := s.withBus()
	mocks.ExpectEvaluate(s.mockEngine, babonus.TypeAttack)

	bus.SubscribeFunc(rpgevents.EventBeforeAttackRoll, 50, func(context.Context, rpgevents.Event) error {
		return errors.New("subscriber refused")
	})

	_, err := s.orchestrator.PreRollAttack(s.ctx, &roll.HookInput{Item: s.sword})
	s.Require().Error(err)
	s.Contains(err.Error(), "subscriber refused")
}

func (s *OrchestratorTestSuite) TestPreRollHitDie_PublishesOwnEvent() {
	bus := s.withBus()
	mocks.ExpectEvaluate(s.mockEngine, babonus.TypeHitDie)

	var attack, hitDie int
	bus.SubscribeFunc(rpgevents.EventBeforeAttackRoll, 50, func(context.Context, rpgevents.Event) error {
		attack++
		return nil
	})
	bus.SubscribeFunc(roll.EventBeforeHitDie, 50, func(context.Context, rpgevents.Event) error {
		hitDie++
		return nil
	})

	_, err := s.orchestrator.PreRollHitDie(s.ctx, &roll.HookInput{
		Actor:   s.fighter,
		Details: rollctx.Details{Denomination: "d10"},
	})
	s.Require().NoError(err)
	s.Zero(attack)
	s.Equal(1, hitDie)
}
