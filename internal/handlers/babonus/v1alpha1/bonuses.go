package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/orchestrators/bonus"
)

type listBonusesRequest struct {
	ParentUUID string       `json:"parentUuid"`
	Type       babonus.Type `json:"type"`
}

type listBonusesResponse struct {
	Bonuses []BonusSummary `json:"bonuses"`
}

// ListBonuses returns the bonuses on a document, optionally of one type
func (h *Handler) ListBonuses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listBonusesRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ParentUUID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("parentUuid is required"))
	}

	var found []*babonus.Bonus
	if in.Type != "" {
		if !in.Type.Valid() {
			return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown bonus type %q", in.Type))
		}
		out, err := h.bonusService.GetType(ctx, &bonus.GetTypeInput{ParentUUID: in.ParentUUID, Type: in.Type})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		found = out.Bonuses
	} else {
		out, err := h.bonusService.GetCollection(ctx, &bonus.GetCollectionInput{UUID: in.ParentUUID})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		found = out.Collection.All()
	}

	return encode(&listBonusesResponse{Bonuses: summarize(found)})
}

type toggleBonusRequest struct {
	UUID  string `json:"uuid"`
	State *bool  `json:"state"`
}

// ToggleBonus sets a bonus' enabled state, or flips it when no state is given
func (h *Handler) ToggleBonus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in toggleBonusRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.UUID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("uuid is required"))
	}

	out, err := h.bonusService.Toggle(ctx, &bonus.ToggleInput{UUID: in.UUID, State: in.State})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	slog.Debug("bonus toggled", "uuid", in.UUID, "enabled", out.Enabled)
	return encode(summary(out.Bonus))
}

type deleteBonusRequest struct {
	UUID string `json:"uuid"`
}

type deleteBonusResponse struct {
	Deleted bool `json:"deleted"`
}

// DeleteBonus removes a bonus from its parent
func (h *Handler) DeleteBonus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in deleteBonusRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.UUID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("uuid is required"))
	}

	out, err := h.bonusService.Delete(ctx, &bonus.DeleteInput{UUID: in.UUID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if !out.Deleted {
		return nil, errors.ToGRPCError(errors.NotFoundf("bonus %s not found", in.UUID))
	}
	return encode(&deleteBonusResponse{Deleted: true})
}
