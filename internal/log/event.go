package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPlay
	EventRound
	EventHPChange
	EventStun
	EventDraw
	EventReshuffle
	EventExhausted
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPlay:
		return "Play"
	case EventRound:
		return "Round"
	case EventHPChange:
		return "HPChange"
	case EventStun:
		return "Stun"
	case EventDraw:
		return "Draw"
	case EventReshuffle:
		return "Reshuffle"
	case EventExhausted:
		return "Exhausted"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 during setup)
	Phase   string    // turn stage (e.g. "Resolved")
	Player  int       // acting side (0 = human, 1 = AI)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
