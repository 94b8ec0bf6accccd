package document

// Template shapes
const (
	ShapeCircle = "circle"
	ShapeRect   = "rect"
)

// Template is a measured template placed on a scene. Aura templates carry
// copies of the bonuses of the item that created them.
type Template struct {
	ID    string  `json:"id"`
	Shape string  `json:"shape"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	// Distance is the radius of a circle, in grid units.
	Distance float64 `json:"distance,omitempty"`
	// Width and Height size a rectangle, in grid units.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Disposition is the disposition of the token that placed the template.
	Disposition int   `json:"disposition"`
	Hidden      bool  `json:"hidden,omitempty"`
	Flags       Flags `json:"flags"`

	sceneID string
}

// GetID implements core.Entity
func (t *Template) GetID() string { return t.ID }

// GetType implements core.Entity
func (t *Template) GetType() string { return KindTemplate }

// GetUUID returns the template uuid nested under its scene
func (t *Template) GetUUID() string {
	if t.sceneID == "" {
		return joinUUID(nil, KindTemplate, t.ID)
	}
	return KindScene + "." + t.sceneID + "." + KindTemplate + "." + t.ID
}

// GetName returns a display name for the template
func (t *Template) GetName() string { return t.Shape + " " + t.ID }

// BonusFlags returns the template's bonus flags
func (t *Template) BonusFlags() *Flags { return &t.Flags }

// SetScene records the scene the template is placed on.
func (t *Template) SetScene(sceneID string) { t.sceneID = sceneID }
