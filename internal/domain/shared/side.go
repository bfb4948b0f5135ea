package shared

// Side is the team a combatant fights for
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Valid reports whether s is a known side
func (s Side) Valid() bool {
	return s == SidePlayer || s == SideOpponent
}

// Opposing returns the other side
func (s Side) Opposing() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}
