package engine

// State represents the engine playback state.
type State int

const (
	Idle State = iota
	Opening
	Buffering
	Playing
	Paused
	Stopped
	Ended
	Error
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Opening:
		return "Opening"
	case Buffering:
		return "Buffering"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	case Ended:
		return "Ended"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if the engine holds media that is playing, paused,
// or still coming up.
func (s State) IsActive() bool {
	switch s {
	case Playing, Paused, Buffering, Opening:
		return true
	default:
		return false
	}
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing || s == Buffering
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
