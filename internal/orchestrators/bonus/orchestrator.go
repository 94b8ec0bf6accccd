// Package bonus implements the public bonus API: lookup, creation,
// embedding, copying, moving, toggling and deletion of bonuses on documents
package bonus

//go:generate mockgen -destination=mock/mock_service.go -package=bonusmock github.com/KirkDiggler/babonus/internal/orchestrators/bonus Service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/filters"
	"github.com/KirkDiggler/babonus/internal/pkg/idgen"
	"github.com/KirkDiggler/babonus/internal/repositories/bonuses"
)

// Service defines the bonus API
type Service interface {
	// Lookup
	GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error)
	GetID(ctx context.Context, input *GetIDInput) (*GetIDOutput, error)
	GetIDs(ctx context.Context, input *GetIDsInput) (*GetIDsOutput, error)
	GetName(ctx context.Context, input *GetNameInput) (*GetNameOutput, error)
	GetNames(ctx context.Context, input *GetNamesInput) (*GetNamesOutput, error)
	GetType(ctx context.Context, input *GetTypeInput) (*GetTypeOutput, error)
	FromUUID(ctx context.Context, input *FromUUIDInput) (*FromUUIDOutput, error)
	FindEmbeddedDocumentsWithBonuses(
		ctx context.Context,
		input *FindEmbeddedDocumentsWithBonusesInput,
	) (*FindEmbeddedDocumentsWithBonusesOutput, error)

	// Mutation
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)
	Embed(ctx context.Context, input *EmbedInput) (*EmbedOutput, error)
	Copy(ctx context.Context, input *CopyInput) (*CopyOutput, error)
	Move(ctx context.Context, input *MoveInput) (*MoveOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
	Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error)
	HotbarToggle(ctx context.Context, input *HotbarToggleInput) (*HotbarToggleOutput, error)

	// HydrateDocuments loads stored bonuses into the documents' flags
	HydrateDocuments(ctx context.Context, input *HydrateDocumentsInput) (*HydrateDocumentsOutput, error)
}

// Config holds the dependencies for the bonus orchestrator
type Config struct {
	Resolver    document.Resolver
	Repository  bonuses.Repository
	Registry    *filters.Registry
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	resolver document.Resolver
	repo     bonuses.Repository
	registry *filters.Registry
	idGen    idgen.Generator
}

// NewOrchestrator creates a new bonus orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		resolver: cfg.Resolver,
		repo:     cfg.Repository,
		registry: cfg.Registry,
		idGen:    cfg.IDGenerator,
	}, nil
}

// collection resolves a document and materializes its bonuses. A missing
// document yields a nil collection.
func (o *orchestrator) collection(ctx context.Context, uuid string) (*babonus.Collection, error) {
	if uuid == "" {
		return nil, errors.InvalidArgument("uuid is required")
	}
	doc, err := o.resolver.Resolve(ctx, uuid)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Debug("document not found", "uuid", uuid)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to resolve %s", uuid)
	}
	return babonus.NewCollection(doc), nil
}

func (o *orchestrator) GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	c, err := o.collection(ctx, input.UUID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NotFoundf("document %s not found", input.UUID)
	}
	return &GetCollectionOutput{Collection: c}, nil
}

func (o *orchestrator) GetID(ctx context.Context, input *GetIDInput) (*GetIDOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	c, err := o.collection(ctx, input.ParentUUID)
	if err != nil || c == nil {
		return &GetIDOutput{}, err
	}
	b, _ := c.Get(input.ID)
	return &GetIDOutput{Bonus: b}, nil
}

func (o *orchestrator) GetIDs(ctx context.Context, input *GetIDsInput) (*GetIDsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	c, err := o.collection(ctx, input.ParentUUID)
	if err != nil || c == nil {
		return &GetIDsOutput{}, err
	}
	return &GetIDsOutput{IDs: c.IDs()}, nil
}

func (o *orchestrator) GetName(ctx context.Context, input *GetNameInput) (*GetNameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	c, err := o.collection(ctx, input.ParentUUID)
	if err != nil || c == nil {
		return &GetNameOutput{}, err
	}
	b, _ := c.GetName(input.Name)
	return &GetNameOutput{Bonus: b}, nil
}

func (o *orchestrator) GetNames(ctx context.Context, input *GetNamesInput) (*GetNamesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	c, err := o.collection(ctx, input.ParentUUID)
	if err != nil || c == nil {
		return &GetNamesOutput{}, err
	}
	return &GetNamesOutput{Names: c.Names()}, nil
}

func (o *orchestrator) GetType(ctx context.Context, input *GetTypeInput) (*GetTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Type.Valid() {
		return nil, errors.InvalidArgumentf("unknown bonus type %q", input.Type)
	}
	c, err := o.collection(ctx, input.ParentUUID)
	if err != nil || c == nil {
		return &GetTypeOutput{}, err
	}
	return &GetTypeOutput{Bonuses: c.OfType(input.Type)}, nil
}

func (o *orchestrator) FromUUID(ctx context.Context, input *FromUUIDInput) (*FromUUIDOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	parentUUID, id, err := babonus.SplitUUID(input.UUID)
	if err != nil {
		slog.Debug("invalid bonus uuid", "uuid", input.UUID, "error", err)
		return &FromUUIDOutput{}, nil
	}
	out, err := o.GetID(ctx, &GetIDInput{ParentUUID: parentUUID, ID: id})
	if err != nil {
		return nil, err
	}
	return &FromUUIDOutput{Bonus: out.Bonus}, nil
}

func (o *orchestrator) FindEmbeddedDocumentsWithBonuses(
	ctx context.Context,
	input *FindEmbeddedDocumentsWithBonusesInput,
) (*FindEmbeddedDocumentsWithBonusesOutput, error) {
	if input == nil || input.ActorUUID == "" {
		return nil, errors.InvalidArgument("actor uuid is required")
	}
	doc, err := o.resolver.Resolve(ctx, input.ActorUUID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &FindEmbeddedDocumentsWithBonusesOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to resolve %s", input.ActorUUID)
	}
	actor, ok := doc.(*document.Actor)
	if !ok {
		return nil, errors.InvalidArgumentf("%s is not an actor", input.ActorUUID)
	}

	out := &FindEmbeddedDocumentsWithBonusesOutput{}
	for _, item := range actor.Items {
		if babonus.NewCollection(item).Len() > 0 {
			out.Items = append(out.Items, item)
		}
	}
	for _, effect := range actor.Effects {
		if babonus.NewCollection(effect).Len() > 0 {
			out.Effects = append(out.Effects, effect)
		}
	}
	return out, nil
}

func (o *orchestrator) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := input.Name
	if name == "" {
		name = "New Bonus"
	}
	b, err := babonus.New(input.Type, o.idGen.Generate(), name)
	if err != nil {
		return nil, err
	}
	b.Description = input.Description

	if len(input.Bonuses) > 0 {
		if err := json.Unmarshal(input.Bonuses, b.Bonuses); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid bonus formulas")
		}
	}
	for key, raw := range input.Filters {
		b.Filters[key] = raw
	}
	if input.Aura != nil {
		b.Aura = *input.Aura
	}
	return &CreateOutput{Bonus: b}, nil
}

func (o *orchestrator) Embed(ctx context.Context, input *EmbedInput) (*EmbedOutput, error) {
	if input == nil || input.Bonus == nil {
		return nil, errors.InvalidArgument("bonus is required")
	}
	if !input.Bonus.Type().Valid() {
		return nil, errors.InvalidArgumentf("unknown bonus type %q", input.Bonus.Type())
	}
	if input.ParentUUID == "" {
		return nil, errors.InvalidArgument("parent uuid is required")
	}

	parent, err := o.resolver.Resolve(ctx, input.ParentUUID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", input.ParentUUID)
	}
	if !document.CanEmbed(parent) {
		return nil, errors.InvalidArgumentf("cannot embed bonuses on a %s", parent.GetType())
	}

	b, err := input.Bonus.Clone()
	if err != nil {
		return nil, err
	}
	if !input.KeepID || !idgen.IsValidID(b.ID) {
		b.ID = o.idGen.Generate()
	}
	if err := o.registry.Strip(b); err != nil {
		return nil, err
	}

	if err := o.store(ctx, parent, b); err != nil {
		return nil, err
	}

	slog.Info("embedded bonus",
		"bonus_uuid", b.UUID(),
		"type", b.Type())
	return &EmbedOutput{Bonus: b}, nil
}

// store writes the bonus to the repository and the parent's flags.
func (o *orchestrator) store(ctx context.Context, parent document.Document, b *babonus.Bonus) error {
	data, err := json.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "failed to serialize bonus")
	}
	if _, err := o.repo.Replace(ctx, &bonuses.ReplaceInput{
		ParentUUID: parent.GetUUID(),
		ID:         b.ID,
		Data:       data,
	}); err != nil {
		return errors.Wrapf(err, "failed to store bonus %s", b.ID)
	}

	flags := parent.BonusFlags()
	flags.Unset(b.ID)
	flags.Set(b.ID, data)
	b.WithParent(parent)
	return nil
}

func (o *orchestrator) Copy(ctx context.Context, input *CopyInput) (*CopyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	source, err := o.FromUUID(ctx, &FromUUIDInput{UUID: input.UUID})
	if err != nil {
		return nil, err
	}
	if source.Bonus == nil {
		return nil, errors.NotFoundf("bonus %s not found", input.UUID)
	}

	out, err := o.Embed(ctx, &EmbedInput{
		ParentUUID: input.TargetUUID,
		Bonus:      source.Bonus,
		KeepID:     input.KeepID,
	})
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Bonus: out.Bonus}, nil
}

func (o *orchestrator) Move(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	copied, err := o.Copy(ctx, &CopyInput{
		UUID:       input.UUID,
		TargetUUID: input.TargetUUID,
		KeepID:     input.KeepID,
	})
	if err != nil {
		return nil, err
	}
	// moving onto the same parent with the same id is a no-op
	if copied.Bonus.UUID() == input.UUID {
		return &MoveOutput{Bonus: copied.Bonus}, nil
	}
	if _, err := o.Delete(ctx, &DeleteInput{UUID: input.UUID}); err != nil {
		return nil, err
	}
	return &MoveOutput{Bonus: copied.Bonus}, nil
}

func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	parentUUID, id, err := babonus.SplitUUID(input.UUID)
	if err != nil {
		return nil, err
	}
	parent, err := o.resolver.Resolve(ctx, parentUUID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &DeleteOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to resolve %s", parentUUID)
	}

	deleted := parent.BonusFlags().Unset(id)
	if _, err := o.repo.Delete(ctx, &bonuses.DeleteInput{ParentUUID: parentUUID, ID: id}); err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrapf(err, "failed to delete bonus %s", id)
		}
	} else {
		deleted = true
	}

	if deleted {
		slog.Info("deleted bonus", "bonus_uuid", input.UUID)
	}
	return &DeleteOutput{Deleted: deleted}, nil
}

func (o *orchestrator) Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	found, err := o.FromUUID(ctx, &FromUUIDInput{UUID: input.UUID})
	if err != nil {
		return nil, err
	}
	if found.Bonus == nil {
		return nil, errors.NotFoundf("bonus %s not found", input.UUID)
	}

	b := found.Bonus
	if input.State != nil {
		b.Enabled = *input.State
	} else {
		b.Enabled = !b.Enabled
	}
	if err := o.store(ctx, b.Parent(), b); err != nil {
		return nil, err
	}
	return &ToggleOutput{Bonus: b, Enabled: b.Enabled}, nil
}

func (o *orchestrator) HotbarToggle(ctx context.Context, input *HotbarToggleInput) (*HotbarToggleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	out, err := o.Toggle(ctx, &ToggleInput{UUID: input.UUID})
	if err != nil {
		return nil, err
	}
	slog.Info("toggled bonus",
		"bonus", out.Bonus.Name,
		"enabled", out.Enabled)
	return &HotbarToggleOutput{Bonus: out.Bonus, Enabled: out.Enabled}, nil
}

func (o *orchestrator) HydrateDocuments(ctx context.Context, input *HydrateDocumentsInput) (*HydrateDocumentsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &HydrateDocumentsOutput{}
	for _, doc := range input.Documents {
		stored, err := o.repo.Get(ctx, &bonuses.GetInput{ParentUUID: doc.GetUUID()})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to load bonuses for %s", doc.GetUUID())
		}
		flags := doc.BonusFlags()
		for id, data := range stored.Bonuses {
			flags.Set(id, data)
		}
		out.Hydrated++
	}
	return out, nil
}
