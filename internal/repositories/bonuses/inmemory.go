package bonuses

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/pkg/clock"
)

type parentData struct {
	bonuses   map[string]json.RawMessage
	updatedAt time.Time
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*parentData
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses the
// system clock.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*parentData),
	}
}

// Get returns every definition stored on a parent
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ParentUUID == "" {
		return nil, errors.InvalidArgument(errParentUUIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.store[input.ParentUUID]
	if !ok || len(data.bonuses) == 0 {
		return nil, errors.NotFoundf("no bonuses stored on %s", input.ParentUUID)
	}

	out := &GetOutput{
		ParentUUID: input.ParentUUID,
		Bonuses:    make(map[string]json.RawMessage, len(data.bonuses)),
		UpdatedAt:  data.updatedAt,
	}
	for id, raw := range data.bonuses {
		out.Bonuses[id] = append(json.RawMessage(nil), raw...)
	}
	return out, nil
}

// Replace deletes then sets one definition
func (r *InMemoryRepository) Replace(_ context.Context, input *ReplaceInput) (*ReplaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateReplace(input); err != nil {
		return nil, err
	}
	if !json.Valid(input.Data) {
		return nil, errors.InvalidArgumentf("bonus %s is not valid json", input.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.store[input.ParentUUID]
	if !ok {
		data = &parentData{bonuses: make(map[string]json.RawMessage)}
		r.store[input.ParentUUID] = data
	}
	delete(data.bonuses, input.ID)
	data.bonuses[input.ID] = append(json.RawMessage(nil), input.Data...)
	data.updatedAt = r.clock.Now().UTC()

	return &ReplaceOutput{UpdatedAt: data.updatedAt}, nil
}

// Delete removes one definition
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.ParentUUID, input.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.store[input.ParentUUID]
	if !ok {
		return nil, errors.NotFoundf("bonus %s not found on %s", input.ID, input.ParentUUID)
	}
	if _, ok := data.bonuses[input.ID]; !ok {
		return nil, errors.NotFoundf("bonus %s not found on %s", input.ID, input.ParentUUID)
	}
	delete(data.bonuses, input.ID)
	data.updatedAt = r.clock.Now().UTC()
	if len(data.bonuses) == 0 {
		delete(r.store, input.ParentUUID)
	}

	return &DeleteOutput{Remaining: len(data.bonuses)}, nil
}

// ListParents returns the uuids of every parent with stored definitions
func (r *InMemoryRepository) ListParents(_ context.Context, _ *ListParentsInput) (*ListParentsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.store))
	for uuid := range r.store {
		out = append(out, uuid)
	}
	sort.Strings(out)
	return &ListParentsOutput{ParentUUIDs: out}, nil
}
