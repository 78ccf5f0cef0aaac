package core

// Player identifies one side of the table.
type Player int

// Players. Unknown means "no player yet" or "unresolved".
const (
	Left Player = iota
	Right
	Unknown
)

// NumPlayers is the number of seats at the table.
const NumPlayers = 2

// String returns a human-readable name for the player.
func (p Player) String() string {
	switch p {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is a seated player.
func (p Player) Valid() bool {
	return p == Left || p == Right
}

// Index returns the array index for per-player tables, or -1 for Unknown.
func (p Player) Index() int {
	if !p.Valid() {
		return -1
	}
	return int(p)
}

// Other returns the opponent. Unknown stays Unknown.
func (p Player) Other() Player {
	switch p {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Unknown
	}
}

// Players returns both seated players in ordinal order.
func Players() [NumPlayers]Player {
	return [NumPlayers]Player{Left, Right}
}
