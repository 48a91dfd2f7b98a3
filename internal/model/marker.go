package model

// Marker identifies which player occupies a cell
type Marker string

const (
	NoMarker       Marker = ""
	HumanMarker    Marker = "X"
	OpponentMarker Marker = "O"
)

// IsPlayer returns true for the two player markers
func (m Marker) IsPlayer() bool {
	return m == HumanMarker || m == OpponentMarker
}

// Other returns the opposing player's marker
func (m Marker) Other() Marker {
	switch m {
	case HumanMarker:
		return OpponentMarker
	case OpponentMarker:
		return HumanMarker
	default:
		return NoMarker
	}
}

func (m Marker) String() string {
	if m == NoMarker {
		return " "
	}
	return string(m)
}
