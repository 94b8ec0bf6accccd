package babonus

import (
	"log/slog"
	"sort"

	"github.com/KirkDiggler/babonus/internal/entities/document"
)

// Collection is a read-only snapshot of the bonuses stored on one document,
// ordered by id.
type Collection struct {
	parent document.Document
	items  []*Bonus
	byID   map[string]*Bonus
}

// NewCollection materializes every stored definition on the document.
// Malformed definitions are logged and skipped.
func NewCollection(parent document.Document) *Collection {
	c := &Collection{parent: parent, byID: make(map[string]*Bonus)}
	if parent == nil {
		return c
	}

	flags := parent.BonusFlags()
	ids := make([]string, 0, flags.Len())
	for id := range flags.Bonuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b, err := Materialize(parent, id, flags.Bonuses[id])
		if err != nil {
			slog.Warn("skipping malformed bonus",
				"parent", parent.GetUUID(),
				"bonus_id", id,
				"error", err)
			continue
		}
		c.items = append(c.items, b)
		c.byID[id] = b
	}
	return c
}

// Parent returns the document the collection was read from.
func (c *Collection) Parent() document.Document { return c.parent }

// Len returns the number of valid bonuses.
func (c *Collection) Len() int { return len(c.items) }

// All returns every bonus in id order.
func (c *Collection) All() []*Bonus {
	out := make([]*Bonus, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the bonus with the id.
func (c *Collection) Get(id string) (*Bonus, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// IDs returns the ids of every bonus.
func (c *Collection) IDs() []string {
	out := make([]string, 0, len(c.items))
	for _, b := range c.items {
		out = append(out, b.ID)
	}
	return out
}

// GetName returns the first bonus with the name.
func (c *Collection) GetName(name string) (*Bonus, bool) {
	for _, b := range c.items {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Names returns the distinct bonus names.
func (c *Collection) Names() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range c.items {
		if _, ok := seen[b.Name]; ok {
			continue
		}
		seen[b.Name] = struct{}{}
		out = append(out, b.Name)
	}
	return out
}

// OfType returns the bonuses of a type.
func (c *Collection) OfType(t Type) []*Bonus {
	var out []*Bonus
	for _, b := range c.items {
		if b.Type() == t {
			out = append(out, b)
		}
	}
	return out
}
