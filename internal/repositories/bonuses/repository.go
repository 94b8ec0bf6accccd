// Package bonuses persists the serialized bonus flags of documents
package bonuses

//go:generate mockgen -destination=mock/mock_repository.go -package=bonusesmock github.com/KirkDiggler/babonus/internal/repositories/bonuses Repository

import (
	"context"
	"encoding/json"
	"time"
)

// Repository stores serialized bonuses keyed by parent uuid and bonus id.
// Writes replace a whole definition; fields are never patched in place.
type Repository interface {
	// Get returns every definition stored on a parent
	// Returns errors.InvalidArgument for an empty parent uuid
	// Returns errors.NotFound if the parent has no stored definitions
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Replace deletes then sets one definition
	// Returns errors.InvalidArgument for missing fields
	Replace(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error)

	// Delete removes one definition
	// Returns errors.NotFound if the definition does not exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListParents returns the uuids of every parent with stored definitions
	ListParents(ctx context.Context, input *ListParentsInput) (*ListParentsOutput, error)
}

// GetInput defines the input for reading a parent's definitions
type GetInput struct {
	ParentUUID string
}

// GetOutput defines the output for reading a parent's definitions
type GetOutput struct {
	ParentUUID string
	Bonuses    map[string]json.RawMessage
	UpdatedAt  time.Time
}

// ReplaceInput defines the input for writing one definition
type ReplaceInput struct {
	ParentUUID string
	ID         string
	Data       json.RawMessage
}

// ReplaceOutput defines the output for writing one definition
type ReplaceOutput struct {
	UpdatedAt time.Time
}

// DeleteInput defines the input for removing one definition
type DeleteInput struct {
	ParentUUID string
	ID         string
}

// DeleteOutput defines the output for removing one definition
type DeleteOutput struct {
	// Remaining is the number of definitions left on the parent.
	Remaining int
}

// ListParentsInput defines the input for listing parents
type ListParentsInput struct{}

// ListParentsOutput defines the output for listing parents
type ListParentsOutput struct {
	ParentUUIDs []string
}

const (
	errParentUUIDEmpty = "parent uuid cannot be empty"
	errIDEmpty         = "bonus id cannot be empty"
)

func validateReplace(input *ReplaceInput) error {
	return validateKey(input.ParentUUID, input.ID)
}
