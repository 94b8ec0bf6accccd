package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	apperrors "github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
	"github.com/KirkDiggler/babonus/internal/orchestrators/bonus"
	bonusmock "github.com/KirkDiggler/babonus/internal/orchestrators/bonus/mock"
	rollorch "github.com/KirkDiggler/babonus/internal/orchestrators/roll"
	rollmock "github.com/KirkDiggler/babonus/internal/orchestrators/roll/mock"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/spatial"
	"github.com/KirkDiggler/babonus/internal/testutils"
	"github.com/KirkDiggler/babonus/internal/testutils/builders"
)

const (
	fighterToken = "tokenFighter0001"
	clericToken  = "tokenCleric00001"
	goblinToken  = "tokenGoblin00001"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockRoll  *rollmock.MockService
	mockBonus *bonusmock.MockService
	handler   *v1alpha1.Handler
	ctx       context.Context

	scene   *scene.Scene
	fighter *document.Actor
	cleric  *document.Actor
	aura    *babonus.Bonus
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoll = rollmock.NewMockService(s.ctrl)
	s.mockBonus = bonusmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	s.aura = builders.NewBonusBuilder(babonus.TypeAttack).
		WithID("blessAura0000001").
		WithName("Bless").
		WithFormula("1d4").
		WithTokenAura(10, babonus.AuraDispositionAlly).
		Build()
	s.scene, s.fighter, s.cleric, _ = testutils.CreateTestAuraScene(s.aura)
	s.aura.WithParent(s.cleric)

	aura, err := spatial.NewEngine(&spatial.Config{Scene: s.scene})
	s.Require().NoError(err)

	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		RollService:  s.mockRoll,
		BonusService: s.mockBonus,
		Resolver:     s.scene.Index(),
		Aura:         aura,
		Trees:        proficiency.NewTrees(),
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok, "not a status error: %v", err)
	s.Equal(code, st.Code(), st.Message())
}

func (s *HandlerTestSuite) TestNewHandler_Validation() {
	_, err := v1alpha1.NewHandler(nil)
	s.Error(err)

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{RollService: s.mockRoll})
	s.Require().Error(err)
	s.Contains(err.Error(), "BonusService")
	s.Contains(err.Error(), "Resolver")
	s.Contains(err.Error(), "Aura")
	s.Contains(err.Error(), "Trees")
}

func (s *HandlerTestSuite) TestEvaluateRoll_Attack() {
	sword := s.fighter.Item(testutils.TestSwordID)

	s.mockRoll.EXPECT().
		PreRollAttack(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *rollorch.HookInput) (*rollorch.HookOutput, error) {
			s.Same(sword, input.Item)
			s.Same(s.fighter, input.Actor)
			s.Same(s.scene, input.Scene)
			s.Require().NotNil(input.TargetToken)
			s.Equal(goblinToken, input.TargetToken.ID)
			s.Require().NotNil(input.Parameters)
			s.Equal([]string{"@mod"}, input.Parameters.Parts)

			rc := roll.NewItemContext(babonus.TypeAttack, input.Item, input.Details)
			rc.Parameters = input.Parameters
			rc.Parameters.Parts = append(rc.Parameters.Parts, "1d4")
			return &rollorch.HookOutput{
				Roll:    rc,
				Applied: []*babonus.Bonus{s.aura},
			}, nil
		})

	resp, err := s.handler.EvaluateRoll(s.ctx, s.request(map[string]any{
		"hook":          v1alpha1.HookAttack,
		"itemUuid":      sword.GetUUID(),
		"targetTokenId": goblinToken,
		"parameters":    map[string]any{"parts": []any{"@mod"}},
	}))
	s.Require().NoError(err)

	s.Equal("attack", resp.Fields["kind"].GetStringValue())
	parts := resp.Fields["parameters"].GetStructValue().Fields["parts"].GetListValue().AsSlice()
	s.Equal([]any{"@mod", "1d4"}, parts)

	applied := resp.Fields["applied"].GetListValue().GetValues()
	s.Require().Len(applied, 1)
	s.Equal("Bless", applied[0].GetStructValue().Fields["name"].GetStringValue())
	s.Equal(s.aura.UUID(), applied[0].GetStructValue().Fields["uuid"].GetStringValue())
	s.Empty(resp.Fields["optionals"].GetListValue().GetValues())
}

func (s *HandlerTestSuite) TestEvaluateRoll_Save() {
	s.mockRoll.EXPECT().
		PreRollAbilitySave(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *rollorch.HookInput) (*rollorch.HookOutput, error) {
			s.Same(s.fighter, input.Actor)
			s.Equal(roll.ThrowConcentration, input.Details.ThrowType)
			return &rollorch.HookOutput{Roll: roll.NewActorContext(babonus.TypeThrow, input.Actor, input.Details)}, nil
		})

	resp, err := s.handler.EvaluateRoll(s.ctx, s.request(map[string]any{
		"hook":      v1alpha1.HookSave,
		"actorUuid": s.fighter.GetUUID(),
		"details":   map[string]any{"throwType": roll.ThrowConcentration},
	}))
	s.Require().NoError(err)
	s.Equal("throw", resp.Fields["kind"].GetStringValue())
}

func (s *HandlerTestSuite) TestEvaluateRoll_Errors() {
	sword := s.fighter.Item(testutils.TestSwordID)

	testCases := []struct {
		name   string
		fields map[string]any
		code   codes.Code
	}{
		{name: "unknown hook", fields: map[string]any{"hook": "initiative", "actorUuid": s.fighter.GetUUID()}, code: codes.InvalidArgument},
		{name: "no documents", fields: map[string]any{"hook": v1alpha1.HookAttack}, code: codes.InvalidArgument},
		{name: "missing actor", fields: map[string]any{"hook": v1alpha1.HookSave, "actorUuid": "Actor.missing000000001"}, code: codes.NotFound},
		{name: "item is an actor", fields: map[string]any{"hook": v1alpha1.HookAttack, "itemUuid": s.fighter.GetUUID()}, code: codes.InvalidArgument},
		{name: "actor is an item", fields: map[string]any{"hook": v1alpha1.HookSave, "actorUuid": sword.GetUUID()}, code: codes.InvalidArgument},
		{name: "unknown target", fields: map[string]any{"hook": v1alpha1.HookAttack, "itemUuid": sword.GetUUID(), "targetTokenId": "nobody"}, code: codes.NotFound},
		{name: "malformed details", fields: map[string]any{"hook": v1alpha1.HookSave, "actorUuid": s.fighter.GetUUID(), "details": "dex"}, code: codes.InvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.EvaluateRoll(s.ctx, s.request(tc.fields))
			s.requireCode(err, tc.code)
		})
	}
}

func (s *HandlerTestSuite) TestEvaluateRoll_ServiceError() {
	s.mockRoll.EXPECT().
		PreRollSkill(s.ctx, gomock.Any()).
		Return(nil, apperrors.InvalidArgument(`unknown skill "arc"`))

	_, err := s.handler.EvaluateRoll(s.ctx, s.request(map[string]any{
		"hook":      v1alpha1.HookSkill,
		"actorUuid": s.fighter.GetUUID(),
		"details":   map[string]any{"skillId": "arc"},
	}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestTokensInRange() {
	ids := func(resp *structpb.Struct) []any {
		return resp.Fields["tokenIds"].GetListValue().AsSlice()
	}

	resp, err := s.handler.TokensInRange(s.ctx, s.request(map[string]any{"tokenId": fighterToken, "range": 5}))
	s.Require().NoError(err)
	s.Equal([]any{clericToken}, ids(resp))

	resp, err = s.handler.TokensInRange(s.ctx, s.request(map[string]any{"tokenId": fighterToken, "range": -1}))
	s.Require().NoError(err)
	s.ElementsMatch([]any{clericToken, goblinToken}, ids(resp))

	resp, err = s.handler.TokensInRange(s.ctx, s.request(map[string]any{
		"tokenId":      goblinToken,
		"range":        10,
		"shape":        "rect",
		"restrictions": []any{"sight", "move"},
	}))
	s.Require().NoError(err)
	s.Empty(ids(resp))
}

func (s *HandlerTestSuite) TestTokensInRange_Errors() {
	_, err := s.handler.TokensInRange(s.ctx, s.request(map[string]any{"tokenId": fighterToken, "range": 5, "shape": "cone"}))
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.TokensInRange(s.ctx, s.request(map[string]any{"tokenId": fighterToken, "restrictions": []any{"smell"}}))
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.TokensInRange(s.ctx, s.request(map[string]any{"tokenId": "ghost", "range": 5}))
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestMinimumDistance() {
	resp, err := s.handler.MinimumDistance(s.ctx, s.request(map[string]any{"tokenA": fighterToken, "tokenB": clericToken}))
	s.Require().NoError(err)
	s.Equal(5.0, resp.Fields["distance"].GetNumberValue())
	s.Equal("ft", resp.Fields["units"].GetStringValue())

	resp, err = s.handler.MinimumDistance(s.ctx, s.request(map[string]any{"tokenA": fighterToken, "tokenB": goblinToken}))
	s.Require().NoError(err)
	s.Equal(75.0, resp.Fields["distance"].GetNumberValue())

	_, err = s.handler.MinimumDistance(s.ctx, s.request(map[string]any{"tokenA": fighterToken}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestResolveProficiencyPath() {
	resp, err := s.handler.ResolveProficiencyPath(s.ctx, s.request(map[string]any{"key": "longsword", "category": "weapon"}))
	s.Require().NoError(err)
	s.Equal([]any{"mar", "longsword"}, resp.Fields["path"].GetListValue().AsSlice())

	resp, err = s.handler.ResolveProficiencyPath(s.ctx, s.request(map[string]any{"key": "laser", "category": "weapon"}))
	s.Require().NoError(err)
	s.Empty(resp.Fields["path"].GetListValue().GetValues())

	_, err = s.handler.ResolveProficiencyPath(s.ctx, s.request(map[string]any{"key": "longsword", "category": "spells"}))
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.ResolveProficiencyPath(s.ctx, s.request(map[string]any{"category": "weapon"}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestListBonuses() {
	s.mockBonus.EXPECT().
		GetCollection(s.ctx, &bonus.GetCollectionInput{UUID: s.cleric.GetUUID()}).
		Return(&bonus.GetCollectionOutput{Collection: babonus.NewCollection(s.cleric)}, nil)

	resp, err := s.handler.ListBonuses(s.ctx, s.request(map[string]any{"parentUuid": s.cleric.GetUUID()}))
	s.Require().NoError(err)

	listed := resp.Fields["bonuses"].GetListValue().GetValues()
	s.Require().Len(listed, 1)
	fields := listed[0].GetStructValue().Fields
	s.Equal("blessAura0000001", fields["id"].GetStringValue())
	s.Equal("attack", fields["type"].GetStringValue())
	s.True(fields["enabled"].GetBoolValue())
}

func (s *HandlerTestSuite) TestListBonuses_ByType() {
	s.mockBonus.EXPECT().
		GetType(s.ctx, &bonus.GetTypeInput{ParentUUID: "Actor.cleric0000000001", Type: babonus.TypeDamage}).
		Return(&bonus.GetTypeOutput{}, nil)

	resp, err := s.handler.ListBonuses(s.ctx, s.request(map[string]any{
		"parentUuid": "Actor.cleric0000000001",
		"type":       "damage",
	}))
	s.Require().NoError(err)
	s.Empty(resp.Fields["bonuses"].GetListValue().GetValues())
}

func (s *HandlerTestSuite) TestListBonuses_Errors() {
	_, err := s.handler.ListBonuses(s.ctx, s.request(map[string]any{}))
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.ListBonuses(s.ctx, s.request(map[string]any{"parentUuid": "Actor.x", "type": "sorcery"}))
	s.requireCode(err, codes.InvalidArgument)

	s.mockBonus.EXPECT().
		GetCollection(s.ctx, gomock.Any()).
		Return(nil, apperrors.NotFound("document Actor.x not found"))
	_, err = s.handler.ListBonuses(s.ctx, s.request(map[string]any{"parentUuid": "Actor.x"}))
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestToggleBonus() {
	off := false
	s.mockBonus.EXPECT().
		Toggle(s.ctx, &bonus.ToggleInput{UUID: s.aura.UUID(), State: &off}).
		DoAndReturn(func(_ context.Context, input *bonus.ToggleInput) (*bonus.ToggleOutput, error) {
			s.aura.Enabled = *input.State
			return &bonus.ToggleOutput{Bonus: s.aura, Enabled: s.aura.Enabled}, nil
		})

	resp, err := s.handler.ToggleBonus(s.ctx, s.request(map[string]any{"uuid": s.aura.UUID(), "state": false}))
	s.Require().NoError(err)
	s.False(resp.Fields["enabled"].GetBoolValue())
	s.Equal(s.aura.UUID(), resp.Fields["uuid"].GetStringValue())

	_, err = s.handler.ToggleBonus(s.ctx, s.request(map[string]any{}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestDeleteBonus() {
	s.mockBonus.EXPECT().
		Delete(s.ctx, &bonus.DeleteInput{UUID: s.aura.UUID()}).
		Return(&bonus.DeleteOutput{Deleted: true}, nil)

	resp, err := s.handler.DeleteBonus(s.ctx, s.request(map[string]any{"uuid": s.aura.UUID()}))
	s.Require().NoError(err)
	s.True(resp.Fields["deleted"].GetBoolValue())

	s.mockBonus.EXPECT().
		Delete(s.ctx, gomock.Any()).
		Return(&bonus.DeleteOutput{}, nil)
	_, err = s.handler.DeleteBonus(s.ctx, s.request(map[string]any{"uuid": "Actor.x.Babonus.missing000000001"}))
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestRecoverPanic() {
	err := v1alpha1.RecoverPanic(s.ctx, "hook exploded")
	s.requireCode(err, codes.Internal)
	s.NotContains(err.Error(), "hook exploded")
}

func (s *HandlerTestSuite) TestServeOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(v1alpha1.RecoverPanic)),
	))
	v1alpha1.RegisterBonusServiceServer(srv, s.handler)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	client := v1alpha1.NewBonusServiceClient(conn)

	resp, err := client.Call(s.ctx, "ResolveProficiencyPath", s.request(map[string]any{"key": "smith", "category": "tool"}))
	s.Require().NoError(err)
	s.Equal([]any{"art", "smith"}, resp.Fields["path"].GetListValue().AsSlice())

	_, err = client.Call(s.ctx, "MinimumDistance", s.request(map[string]any{"tokenA": "ghost", "tokenB": clericToken}))
	s.requireCode(err, codes.NotFound)

	s.mockRoll.EXPECT().
		PreRollDeathSave(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *rollorch.HookInput) (*rollorch.HookOutput, error) {
			panic("hook exploded")
		})
	_, err = client.Call(s.ctx, "EvaluateRoll", s.request(map[string]any{
		"hook":      v1alpha1.HookDeathSave,
		"actorUuid": s.fighter.GetUUID(),
	}))
	s.requireCode(err, codes.Internal)

	_, err = client.Call(s.ctx, "Teleport", s.request(map[string]any{}))
	s.requireCode(err, codes.Unimplemented)
}
