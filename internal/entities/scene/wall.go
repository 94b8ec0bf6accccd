package scene

// Restriction is a sense or movement type a wall can block.
type Restriction string

// Restriction types
const (
	RestrictionSight Restriction = "sight"
	RestrictionMove  Restriction = "move"
	RestrictionLight Restriction = "light"
	RestrictionSound Restriction = "sound"
)

// Restrictions lists every restriction type in canonical order.
var Restrictions = []Restriction{
	RestrictionSight,
	RestrictionMove,
	RestrictionLight,
	RestrictionSound,
}

// Valid reports whether the restriction is known.
func (r Restriction) Valid() bool {
	for _, known := range Restrictions {
		if r == known {
			return true
		}
	}
	return false
}

// Level is how strongly a wall blocks a restriction type.
type Level string

// Restriction levels. A limited wall only blocks when it is the second
// limited wall crossed.
const (
	LevelNone    Level = "none"
	LevelLimited Level = "limited"
	LevelNormal  Level = "normal"
)

// Door types
const (
	DoorNone   = "none"
	DoorDoor   = "door"
	DoorSecret = "secret"
)

// Door states
const (
	DoorClosed = "closed"
	DoorOpen   = "open"
	DoorLocked = "locked"
)

// Wall is a segment that can block sight, movement, light and sound.
type Wall struct {
	ID        string `json:"id"`
	A         Point  `json:"a"`
	B         Point  `json:"b"`
	Sight     Level  `json:"sight,omitempty"`
	Move      Level  `json:"move,omitempty"`
	Light     Level  `json:"light,omitempty"`
	Sound     Level  `json:"sound,omitempty"`
	Door      string `json:"door,omitempty"`
	DoorState string `json:"doorState,omitempty"`
}

// IsOpenDoor reports whether the wall is a door standing open.
func (w *Wall) IsOpenDoor() bool {
	return w.Door != "" && w.Door != DoorNone && w.DoorState == DoorOpen
}

// Level returns how the wall blocks the restriction. Unset levels default to
// normal, and open doors never block.
func (w *Wall) Level(r Restriction) Level {
	if w.IsOpenDoor() {
		return LevelNone
	}

	var level Level
	switch r {
	case RestrictionSight:
		level = w.Sight
	case RestrictionMove:
		level = w.Move
	case RestrictionLight:
		level = w.Light
	case RestrictionSound:
		level = w.Sound
	default:
		return LevelNone
	}
	if level == "" {
		return LevelNormal
	}
	return level
}
