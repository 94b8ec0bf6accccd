package bonus

import (
	"encoding/json"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
)

// GetCollectionInput identifies a document
type GetCollectionInput struct {
	UUID string
}

// GetCollectionOutput contains the document's bonuses
type GetCollectionOutput struct {
	Collection *babonus.Collection
}

// GetIDInput identifies a bonus on a document
type GetIDInput struct {
	ParentUUID string
	ID         string
}

// GetIDOutput contains the bonus, nil when absent
type GetIDOutput struct {
	Bonus *babonus.Bonus
}

// GetIDsInput identifies a document
type GetIDsInput struct {
	ParentUUID string
}

// GetIDsOutput contains the ids of the document's bonuses
type GetIDsOutput struct {
	IDs []string
}

// GetNameInput identifies a bonus by name
type GetNameInput struct {
	ParentUUID string
	Name       string
}

// GetNameOutput contains the first bonus with the name, nil when absent
type GetNameOutput struct {
	Bonus *babonus.Bonus
}

// GetNamesInput identifies a document
type GetNamesInput struct {
	ParentUUID string
}

// GetNamesOutput contains the distinct names of the document's bonuses
type GetNamesOutput struct {
	Names []string
}

// GetTypeInput selects bonuses of a type on a document
type GetTypeInput struct {
	ParentUUID string
	Type       babonus.Type
}

// GetTypeOutput contains the matching bonuses
type GetTypeOutput struct {
	Bonuses []*babonus.Bonus
}

// CreateInput describes a new, unembedded bonus
type CreateInput struct {
	Type        babonus.Type
	Name        string
	Description string
	// Bonuses is the type-specific formula payload.
	Bonuses json.RawMessage
	Filters map[string]json.RawMessage
	Aura    *babonus.Aura
}

// CreateOutput contains the created bonus
type CreateOutput struct {
	Bonus *babonus.Bonus
}

// EmbedInput places a bonus on a document
type EmbedInput struct {
	ParentUUID string
	Bonus      *babonus.Bonus
	// KeepID stores the bonus under its current id instead of a new one.
	KeepID bool
}

// EmbedOutput contains the embedded bonus
type EmbedOutput struct {
	Bonus *babonus.Bonus
}

// CopyInput copies a bonus to another document
type CopyInput struct {
	UUID       string
	TargetUUID string
	KeepID     bool
}

// CopyOutput contains the copy
type CopyOutput struct {
	Bonus *babonus.Bonus
}

// MoveInput moves a bonus to another document
type MoveInput struct {
	UUID       string
	TargetUUID string
	KeepID     bool
}

// MoveOutput contains the bonus at its new location
type MoveOutput struct {
	Bonus *babonus.Bonus
}

// DeleteInput identifies a bonus by uuid
type DeleteInput struct {
	UUID string
}

// DeleteOutput reports whether a bonus was removed
type DeleteOutput struct {
	Deleted bool
}

// ToggleInput sets or flips a bonus' enabled state
type ToggleInput struct {
	UUID string
	// State forces the enabled state; nil flips it.
	State *bool
}

// ToggleOutput contains the toggled bonus
type ToggleOutput struct {
	Bonus   *babonus.Bonus
	Enabled bool
}

// FromUUIDInput identifies a bonus by uuid
type FromUUIDInput struct {
	UUID string
}

// FromUUIDOutput contains the bonus, nil when it cannot be found
type FromUUIDOutput struct {
	Bonus *babonus.Bonus
}

// HotbarToggleInput identifies the bonus bound to a hotbar slot
type HotbarToggleInput struct {
	UUID string
}

// HotbarToggleOutput contains the new enabled state
type HotbarToggleOutput struct {
	Bonus   *babonus.Bonus
	Enabled bool
}

// FindEmbeddedDocumentsWithBonusesInput identifies an actor
type FindEmbeddedDocumentsWithBonusesInput struct {
	ActorUUID string
}

// FindEmbeddedDocumentsWithBonusesOutput contains the actor's items and
// effects that carry at least one valid bonus
type FindEmbeddedDocumentsWithBonusesOutput struct {
	Items   []*document.Item
	Effects []*document.Effect
}

// HydrateDocumentsInput lists documents to load stored bonuses into
type HydrateDocumentsInput struct {
	Documents []document.Document
}

// HydrateDocumentsOutput reports how many documents received bonuses
type HydrateDocumentsOutput struct {
	Hydrated int
}
