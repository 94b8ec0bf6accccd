// Package v1alpha1 handles the bonus grpc service interface
package v1alpha1

import (
	"context"
	"encoding/json"
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/orchestrators/bonus"
	rollorch "github.com/KirkDiggler/babonus/internal/orchestrators/roll"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/spatial"
)

// Roll hooks accepted by EvaluateRoll
const (
	HookAttack    = "attack"
	HookDamage    = "damage"
	HookSaveDC    = "saveDc"
	HookSave      = "save"
	HookDeathSave = "deathSave"
	HookHitDie    = "hitDie"
	HookTest      = "test"
	HookSkill     = "skill"
	HookTool      = "tool"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	RollService  rollorch.Service
	BonusService bonus.Service
	Resolver     document.Resolver
	// Aura measures the served scene.
	Aura  *spatial.Engine
	Trees *proficiency.Trees
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.RollService == nil {
		vb.RequiredField("RollService")
	}
	if c.BonusService == nil {
		vb.RequiredField("BonusService")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Aura == nil {
		vb.RequiredField("Aura")
	}
	if c.Trees == nil {
		vb.RequiredField("Trees")
	}
	return vb.Build()
}

// Handler implements the bonus gRPC service
type Handler struct {
	rollService  rollorch.Service
	bonusService bonus.Service
	resolver     document.Resolver
	aura         *spatial.Engine
	trees        *proficiency.Trees
	hooks        map[string]hookFunc
}

type hookFunc func(ctx context.Context, input *rollorch.HookInput) (*rollorch.HookOutput, error)

var _ BonusServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Handler{
		rollService:  cfg.RollService,
		bonusService: cfg.BonusService,
		resolver:     cfg.Resolver,
		aura:         cfg.Aura,
		trees:        cfg.Trees,
	}
	h.hooks = map[string]hookFunc{
		HookAttack:    h.rollService.PreRollAttack,
		HookDamage:    h.rollService.PreRollDamage,
		HookSaveDC:    h.rollService.PreDisplaySaveDC,
		HookSave:      h.rollService.PreRollAbilitySave,
		HookDeathSave: h.rollService.PreRollDeathSave,
		HookHitDie:    h.rollService.PreRollHitDie,
		HookTest:      h.rollService.PreRollAbilityTest,
		HookSkill:     h.rollService.PreRollSkill,
		HookTool:      h.rollService.PreRollToolCheck,
	}
	return h, nil
}

type evaluateRollRequest struct {
	Hook          string           `json:"hook"`
	ActorUUID     string           `json:"actorUuid"`
	ItemUUID      string           `json:"itemUuid"`
	TargetTokenID string           `json:"targetTokenId"`
	Details       roll.Details     `json:"details"`
	Parameters    *roll.Parameters `json:"parameters"`
}

// BonusSummary identifies a bonus in responses
type BonusSummary struct {
	UUID    string       `json:"uuid"`
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    babonus.Type `json:"type"`
	Enabled bool         `json:"enabled"`
}

type evaluateRollResponse struct {
	Kind       babonus.Type     `json:"kind"`
	Parameters *roll.Parameters `json:"parameters"`
	Applied    []BonusSummary   `json:"applied"`
	Optionals  []BonusSummary   `json:"optionals"`
}

// EvaluateRoll runs one roll hook against the served scene
func (h *Handler) EvaluateRoll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in evaluateRollRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	hook, ok := h.hooks[in.Hook]
	if !ok {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown hook %q", in.Hook))
	}
	if in.ActorUUID == "" && in.ItemUUID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("actorUuid or itemUuid is required"))
	}

	input := &rollorch.HookInput{
		Scene:      h.aura.Scene(),
		Details:    in.Details,
		Parameters: in.Parameters,
	}
	if in.ItemUUID != "" {
		item, err := resolveAs[*document.Item](ctx, h.resolver, in.ItemUUID)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Item = item
		input.Actor = item.Actor()
	}
	if in.ActorUUID != "" {
		actor, err := resolveAs[*document.Actor](ctx, h.resolver, in.ActorUUID)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Actor = actor
	}
	if in.TargetTokenID != "" {
		token, err := h.token(in.TargetTokenID)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.TargetToken = token
	}

	out, err := hook(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	slog.Debug("evaluated roll", "hook", in.Hook, "applied", len(out.Applied), "optionals", len(out.Optionals))

	return encode(&evaluateRollResponse{
		Kind:       out.Roll.Kind,
		Parameters: out.Roll.Parameters,
		Applied:    summarize(out.Applied),
		Optionals:  summarize(out.Optionals),
	})
}

type tokensInRangeRequest struct {
	TokenID      string              `json:"tokenId"`
	Range        float64             `json:"range"`
	Shape        spatial.ShapeKind   `json:"shape"`
	Restrictions []scene.Restriction `json:"restrictions"`
}

type tokensInRangeResponse struct {
	TokenIDs []string `json:"tokenIds"`
}

// TokensInRange returns the ids of the tokens within range of a token
func (h *Handler) TokensInRange(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in tokensInRangeRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Shape == "" {
		in.Shape = spatial.ShapeCircle
	}
	if in.Shape != spatial.ShapeCircle && in.Shape != spatial.ShapeRect {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown shape %q", in.Shape))
	}
	for _, r := range in.Restrictions {
		if !r.Valid() {
			return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown restriction %q", r))
		}
	}

	source, err := h.token(in.TokenID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	tokens := h.aura.TokensInRange(source, in.Range, in.Shape, in.Restrictions)
	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		ids = append(ids, t.ID)
	}
	return encode(&tokensInRangeResponse{TokenIDs: ids})
}

type minimumDistanceRequest struct {
	TokenA string `json:"tokenA"`
	TokenB string `json:"tokenB"`
}

type minimumDistanceResponse struct {
	Distance float64 `json:"distance"`
	Units    string  `json:"units,omitempty"`
}

// MinimumDistance returns the distance between the closest cells of two tokens
func (h *Handler) MinimumDistance(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in minimumDistanceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	a, err := h.token(in.TokenA)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	b, err := h.token(in.TokenB)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&minimumDistanceResponse{
		Distance: h.aura.MinimumDistance(a, b),
		Units:    h.aura.Scene().Grid.Units,
	})
}

type resolvePathRequest struct {
	Key      string              `json:"key"`
	Category proficiency.Category `json:"category"`
}

type resolvePathResponse struct {
	Path []string `json:"path"`
}

// ResolveProficiencyPath returns the tree path down to a proficiency key
func (h *Handler) ResolveProficiencyPath(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in resolvePathRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Key == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("key is required"))
	}
	known := false
	for _, c := range proficiency.Categories {
		if c == in.Category {
			known = true
			break
		}
	}
	if !known {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown category %q", in.Category))
	}

	return encode(&resolvePathResponse{Path: h.trees.ResolvePath(in.Key, in.Category)})
}

func (h *Handler) token(id string) (*scene.Token, error) {
	if id == "" {
		return nil, errors.InvalidArgument("token id is required")
	}
	token := h.aura.Scene().Token(id)
	if token == nil {
		return nil, errors.NotFoundf("token %s not found", id)
	}
	return token, nil
}

func resolveAs[T document.Document](ctx context.Context, resolver document.Resolver, uuid string) (T, error) {
	var zero T
	doc, err := resolver.Resolve(ctx, uuid)
	if err != nil {
		return zero, err
	}
	typed, ok := doc.(T)
	if !ok {
		return zero, errors.InvalidArgumentf("document %s is a %s", uuid, doc.GetType())
	}
	return typed, nil
}

func summarize(bonuses []*babonus.Bonus) []BonusSummary {
	out := make([]BonusSummary, 0, len(bonuses))
	for _, b := range bonuses {
		out = append(out, summary(b))
	}
	return out
}

func summary(b *babonus.Bonus) BonusSummary {
	return BonusSummary{UUID: b.UUID(), ID: b.ID, Name: b.Name, Type: b.Type(), Enabled: b.Enabled}
}

func decode(req *structpb.Struct, target any) error {
	if req == nil {
		return errors.InvalidArgument("request is required")
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}
