package testutils

import (
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/testutils/builders"
)

// Fixture ids
const (
	TestFighterID = "fighter000000001"
	TestClericID  = "cleric0000000001"
	TestGoblinID  = "goblin0000000001"
	TestSwordID   = "longsword0000001"
)

// CreateTestFighter creates a fighter wielding a longsword
func CreateTestFighter() *document.Actor {
	return builders.NewActorBuilder(TestFighterID).
		WithName("Fighter").
		WithAbility("str", 16, true).
		WithAbility("con", 14, true).
		WithSkill("ath", "str", 1).
		WithTraits(document.TraitWeapon, "sim", "mar").
		WithTraits(document.TraitArmor, "lgt", "med", "hvy", "shl").
		WithItem(builders.NewWeapon(TestSwordID, "longsword", "ver")).
		Build()
}

// CreateTestCleric creates a cleric with spell slots
func CreateTestCleric() *document.Actor {
	return builders.NewActorBuilder(TestClericID).
		WithName("Cleric").
		WithAbility("wis", 16, true).
		WithSpellSlots("spell1", 2, 4).
		WithSpellSlots("spell2", 1, 3).
		Build()
}

// CreateTestGoblin creates a hostile npc
func CreateTestGoblin() *document.Actor {
	return builders.NewActorBuilder(TestGoblinID).
		WithName("Goblin").
		WithType(document.ActorTypeNPC).
		WithCreatureTypes("humanoid").
		WithHP(7, 7).
		Build()
}

// CreateTestAuraScene places a cleric with a 10ft ally aura next to a
// fighter, and a goblin far away. The fighter and cleric are friendly.
func CreateTestAuraScene(aura *babonus.Bonus) (*scene.Scene, *document.Actor, *document.Actor, *document.Actor) {
	fighter := CreateTestFighter()
	cleric := CreateTestCleric()
	goblin := CreateTestGoblin()
	builders.Embed(cleric, aura)

	s := builders.NewSceneBuilder().
		WithToken("tokenFighter0001", fighter, 5, 5, scene.DispositionFriendly).
		WithToken("tokenCleric00001", cleric, 6, 5, scene.DispositionFriendly).
		WithToken("tokenGoblin00001", goblin, 20, 20, scene.DispositionHostile).
		Build()
	return s, fighter, cleric, goblin
}
