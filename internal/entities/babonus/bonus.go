// Package babonus defines bonus definitions: conditional, data-driven
// modifiers that attach to documents and apply to matching rolls.
package babonus

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/pkg/idgen"
)

// UUIDSegment separates a parent uuid from a bonus id.
const UUIDSegment = "Babonus"

// Bonus is a single bonus definition.
type Bonus struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Optional    bool
	Exclusive   bool
	Bonuses     Bonuses
	Filters     map[string]json.RawMessage
	Aura        Aura

	parent document.Document
}

// New creates an enabled bonus of the type with an empty payload.
func New(t Type, id, name string) (*Bonus, error) {
	payload, err := NewBonuses(t)
	if err != nil {
		return nil, err
	}
	return &Bonus{
		ID:      id,
		Name:    name,
		Enabled: true,
		Bonuses: payload,
		Filters: make(map[string]json.RawMessage),
	}, nil
}

// Type returns the bonus type.
func (b *Bonus) Type() Type {
	if b.Bonuses == nil {
		return ""
	}
	return b.Bonuses.Type()
}

// Formula returns the additive bonus formula.
func (b *Bonus) Formula() string {
	if b.Bonuses == nil {
		return ""
	}
	return b.Bonuses.Formula()
}

// Parent returns the document the bonus is stored on.
func (b *Bonus) Parent() document.Document { return b.parent }

// WithParent returns the bonus attached to the document.
func (b *Bonus) WithParent(parent document.Document) *Bonus {
	b.parent = parent
	return b
}

// UUID returns the bonus uuid, empty when the bonus has no parent.
func (b *Bonus) UUID() string {
	if b.parent == nil {
		return ""
	}
	return b.parent.GetUUID() + "." + UUIDSegment + "." + b.ID
}

// Filter returns the raw payload stored for a filter key.
func (b *Bonus) Filter(key string) (json.RawMessage, bool) {
	raw, ok := b.Filters[key]
	return raw, ok
}

// Clone returns a deep copy detached from its parent.
func (b *Bonus) Clone() (*Bonus, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to clone bonus")
	}
	out := &Bonus{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to clone bonus")
	}
	return out, nil
}

type wireBonus struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Type        Type                       `json:"type"`
	Enabled     bool                       `json:"enabled"`
	Optional    bool                       `json:"optional,omitempty"`
	Exclusive   bool                       `json:"exclusive,omitempty"`
	Description string                     `json:"description,omitempty"`
	Bonuses     json.RawMessage            `json:"bonuses,omitempty"`
	Filters     map[string]json.RawMessage `json:"filters,omitempty"`
	Aura        Aura                       `json:"aura"`
}

// MarshalJSON writes the persisted form of the bonus.
func (b *Bonus) MarshalJSON() ([]byte, error) {
	if b.Bonuses == nil {
		return nil, errors.InvalidArgument("bonus has no type")
	}
	payload, err := json.Marshal(b.Bonuses)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireBonus{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Bonuses.Type(),
		Enabled:     b.Enabled,
		Optional:    b.Optional,
		Exclusive:   b.Exclusive,
		Description: b.Description,
		Bonuses:     payload,
		Filters:     b.Filters,
		Aura:        b.Aura,
	})
}

// UnmarshalJSON reads the persisted form. An unknown type is an error.
func (b *Bonus) UnmarshalJSON(data []byte) error {
	var wire wireBonus
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed bonus")
	}

	payload, err := NewBonuses(wire.Type)
	if err != nil {
		return err
	}
	if len(wire.Bonuses) > 0 && string(wire.Bonuses) != "null" {
		if err := json.Unmarshal(wire.Bonuses, payload); err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed bonus formulas")
		}
	}

	filters := wire.Filters
	if filters == nil {
		filters = make(map[string]json.RawMessage)
	}

	*b = Bonus{
		ID:          wire.ID,
		Name:        wire.Name,
		Description: wire.Description,
		Enabled:     wire.Enabled,
		Optional:    wire.Optional,
		Exclusive:   wire.Exclusive,
		Bonuses:     payload,
		Filters:     filters,
		Aura:        wire.Aura,
		parent:      b.parent,
	}
	return nil
}

// Materialize builds a bonus from its stored form under id on the parent.
// The storage key wins over any id inside the payload.
func Materialize(parent document.Document, id string, data json.RawMessage) (*Bonus, error) {
	if !idgen.IsValidID(id) {
		return nil, errors.InvalidArgumentf("invalid bonus id %q", id)
	}
	b := &Bonus{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, err
	}
	b.ID = id
	b.parent = parent
	return b, nil
}

// SplitUUID separates a bonus uuid into its parent uuid and bonus id.
func SplitUUID(uuid string) (parentUUID, id string, err error) {
	parts := strings.Split(uuid, ".")
	if len(parts) < 4 {
		return "", "", errors.InvalidArgumentf("invalid bonus uuid %q", uuid)
	}
	id = parts[len(parts)-1]
	if parts[len(parts)-2] != UUIDSegment || id == "" {
		return "", "", errors.InvalidArgumentf("invalid bonus uuid %q", uuid)
	}
	return strings.Join(parts[:len(parts)-2], "."), id, nil
}
