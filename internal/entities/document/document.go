// Package document holds the owning documents that can carry bonus definitions:
// actors, items, active effects and measured templates.
package document

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Document kinds as they appear in uuids.
const (
	KindActor    = "Actor"
	KindItem     = "Item"
	KindEffect   = "ActiveEffect"
	KindTemplate = "MeasuredTemplate"
	KindScene    = "Scene"
)

// Document is anything bonus definitions can be stored on.
type Document interface {
	core.Entity

	// GetUUID returns the dotted path that resolves back to this document.
	GetUUID() string
	GetName() string
	// BonusFlags returns the mutable flag storage holding serialized bonuses.
	BonusFlags() *Flags
}

// Flags is the flag namespace that stores bonus definitions keyed by id.
type Flags struct {
	Bonuses map[string]json.RawMessage `json:"bonuses,omitempty"`
}

// Set stores a serialized definition under id.
func (f *Flags) Set(id string, data json.RawMessage) {
	if f.Bonuses == nil {
		f.Bonuses = make(map[string]json.RawMessage)
	}
	f.Bonuses[id] = data
}

// Unset removes the definition stored under id and reports whether it existed.
func (f *Flags) Unset(id string) bool {
	if _, ok := f.Bonuses[id]; !ok {
		return false
	}
	delete(f.Bonuses, id)
	return true
}

// Len returns the number of stored definitions.
func (f *Flags) Len() int {
	return len(f.Bonuses)
}

// CanEmbed reports whether bonuses may be embedded on documents of the kind.
// Templates only receive bonuses through aura templates created by an item.
func CanEmbed(doc Document) bool {
	if doc == nil {
		return false
	}
	switch doc.GetType() {
	case KindActor, KindItem, KindEffect:
		return true
	default:
		return false
	}
}

func joinUUID(parent Document, kind, id string) string {
	if parent == nil {
		return kind + "." + id
	}
	return parent.GetUUID() + "." + kind + "." + id
}
