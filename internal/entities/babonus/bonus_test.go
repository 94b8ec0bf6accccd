package babonus_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
)

const (
	testBonusID  = "abcdEFGH12345678"
	testBonusID2 = "zzzzEFGH12345678"
)

type BonusTestSuite struct {
	suite.Suite
	actor *document.Actor
}

func TestBonusSuite(t *testing.T) {
	suite.Run(t, new(BonusTestSuite))
}

func (s *BonusTestSuite) SetupTest() {
	s.actor = &document.Actor{ID: "actor1", Name: "Tordek", Type: document.ActorTypeCharacter}
}

func (s *BonusTestSuite) TestRoundTrip() {
	b, err := babonus.New(babonus.TypeAttack, testBonusID, "Bless")
	s.Require().NoError(err)
	b.Description = "add a d4"
	b.Optional = true
	b.Bonuses = &babonus.AttackBonuses{
		Bonus:             "1d4",
		CriticalRange:     "19",
		CriticalRangeFlat: true,
		FumbleRange:       "1",
	}
	b.Filters["abilities"] = json.RawMessage(`{"values":["str"],"exclude":false}`)
	b.Aura = babonus.Aura{
		Enabled:      true,
		IsToken:      true,
		Range:        30,
		Disposition:  babonus.AuraDispositionAlly,
		Restrictions: []scene.Restriction{scene.RestrictionSight},
		Blockers:     []string{"dead"},
	}

	data, err := json.Marshal(b)
	s.Require().NoError(err)

	var out babonus.Bonus
	s.Require().NoError(json.Unmarshal(data, &out))

	s.Equal(b.ID, out.ID)
	s.Equal(b.Name, out.Name)
	s.Equal(b.Description, out.Description)
	s.True(out.Enabled)
	s.True(out.Optional)
	s.Equal(babonus.TypeAttack, out.Type())
	s.Equal(b.Bonuses, out.Bonuses)
	s.JSONEq(string(b.Filters["abilities"]), string(out.Filters["abilities"]))
	s.Equal(b.Aura, out.Aura)
}

func (s *BonusTestSuite) TestUnmarshalUnknownType() {
	var out babonus.Bonus
	err := json.Unmarshal([]byte(`{"id":"x","type":"initiative"}`), &out)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *BonusTestSuite) TestUnmarshalDisabledKeepsFlag() {
	var out babonus.Bonus
	s.Require().NoError(json.Unmarshal([]byte(`{"id":"x","type":"damage","enabled":false,"bonuses":{"bonus":"2"}}`), &out))
	s.False(out.Enabled)
	s.Equal("2", out.Formula())
}

func (s *BonusTestSuite) TestMaterializeUsesStorageKey() {
	b, err := babonus.Materialize(s.actor, testBonusID, json.RawMessage(`{"id":"other","type":"save","enabled":true}`))
	s.Require().NoError(err)
	s.Equal(testBonusID, b.ID)
	s.Equal("Actor.actor1.Babonus."+testBonusID, b.UUID())
	s.Equal(s.actor, b.Parent())
}

func (s *BonusTestSuite) TestMaterializeRejectsBadID() {
	_, err := babonus.Materialize(s.actor, "short", json.RawMessage(`{"type":"save"}`))
	s.Error(err)
}

func (s *BonusTestSuite) TestSplitUUID() {
	testCases := []struct {
		name       string
		uuid       string
		wantParent string
		wantID     string
		wantErr    bool
	}{
		{
			name:       "actor bonus",
			uuid:       "Actor.a1.Babonus." + testBonusID,
			wantParent: "Actor.a1",
			wantID:     testBonusID,
		},
		{
			name:       "nested effect bonus",
			uuid:       "Actor.a1.Item.i1.ActiveEffect.e1.Babonus." + testBonusID,
			wantParent: "Actor.a1.Item.i1.ActiveEffect.e1",
			wantID:     testBonusID,
		},
		{
			name:    "missing segment",
			uuid:    "Actor.a1.Item." + testBonusID,
			wantErr: true,
		},
		{
			name:    "too short",
			uuid:    "Babonus." + testBonusID,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			parent, id, err := babonus.SplitUUID(tc.uuid)
			if tc.wantErr {
				s.Error(err)
				return
			}
			s.NoError(err)
			s.Equal(tc.wantParent, parent)
			s.Equal(tc.wantID, id)
		})
	}
}

func (s *BonusTestSuite) TestCollectionSkipsMalformed() {
	s.actor.Flags.Set(testBonusID2, json.RawMessage(`{"name":"Second","type":"damage","enabled":true}`))
	s.actor.Flags.Set(testBonusID, json.RawMessage(`{"name":"First","type":"attack","enabled":true}`))
	s.actor.Flags.Set("badBadBadBadBad1", json.RawMessage(`{"name":"Broken","type":"nope"}`))
	s.actor.Flags.Set("bad", json.RawMessage(`{"name":"ShortID","type":"attack"}`))

	c := babonus.NewCollection(s.actor)

	s.Equal(2, c.Len())
	s.Equal([]string{testBonusID, testBonusID2}, c.IDs())
	s.Equal([]string{"First", "Second"}, c.Names())

	b, ok := c.GetName("Second")
	s.Require().True(ok)
	s.Equal(testBonusID2, b.ID)

	s.Len(c.OfType(babonus.TypeAttack), 1)
	_, ok = c.Get("badBadBadBadBad1")
	s.False(ok)
}

func (s *BonusTestSuite) TestAuraDisposition() {
	testCases := []struct {
		name        string
		disposition babonus.AuraDisposition
		source      scene.Disposition
		target      scene.Disposition
		want        bool
	}{
		{"any affects hostile", babonus.AuraDispositionAny, scene.DispositionFriendly, scene.DispositionHostile, true},
		{"ally affects same", babonus.AuraDispositionAlly, scene.DispositionFriendly, scene.DispositionFriendly, true},
		{"ally skips hostile", babonus.AuraDispositionAlly, scene.DispositionFriendly, scene.DispositionHostile, false},
		{"enemy affects opposite", babonus.AuraDispositionEnemy, scene.DispositionHostile, scene.DispositionFriendly, true},
		{"enemy skips neutral", babonus.AuraDispositionEnemy, scene.DispositionHostile, scene.DispositionNeutral, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			aura := babonus.Aura{Disposition: tc.disposition}
			s.Equal(tc.want, aura.AppliesTo(tc.source, tc.target))
		})
	}
}

func (s *BonusTestSuite) TestAuraKinds() {
	s.True(babonus.Aura{Enabled: true, IsToken: true, Range: babonus.RangeUnlimited}.IsTokenAura())
	s.False(babonus.Aura{Enabled: true, IsToken: true, Range: 0}.IsTokenAura())
	s.False(babonus.Aura{IsToken: true, Range: 10}.IsTokenAura())
	s.True(babonus.Aura{Enabled: true, IsTemplate: true}.IsTemplateAura())
	s.True(babonus.Aura{Blockers: []string{"dead"}}.IsBlocked([]string{"prone", "dead"}))
}
