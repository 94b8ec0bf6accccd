package document

// Effect is an active effect on an actor or item.
type Effect struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Disabled   bool     `json:"disabled,omitempty"`
	Suppressed bool     `json:"suppressed,omitempty"`
	Transfer   bool     `json:"transfer,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
	Flags      Flags    `json:"flags"`

	parent Document
}

// GetID implements core.Entity
func (e *Effect) GetID() string { return e.ID }

// GetType implements core.Entity
func (e *Effect) GetType() string { return KindEffect }

// GetUUID returns the effect uuid nested under its parent
func (e *Effect) GetUUID() string { return joinUUID(e.parent, KindEffect, e.ID) }

// GetName returns the effect name
func (e *Effect) GetName() string { return e.Name }

// BonusFlags returns the effect's bonus flags
func (e *Effect) BonusFlags() *Flags { return &e.Flags }

// Parent returns the actor or item the effect lives on.
func (e *Effect) Parent() Document { return e.parent }

// Active reports whether the effect currently applies.
func (e *Effect) Active() bool {
	return !e.Disabled && !e.Suppressed
}
