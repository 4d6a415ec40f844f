package session

import "fmt"

// Mode defines the track sequencing behavior.
type Mode int

const (
	Sequential Mode = iota
	LoopAll
	LoopOne
	Shuffle
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case LoopAll:
		return "loop-all"
	case LoopOne:
		return "loop-one"
	case Shuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Next returns the successor mode in the cycle. The order is fixed here
// rather than derived from declaration order.
func (m Mode) Next() Mode {
	switch m {
	case Sequential:
		return LoopAll
	case LoopAll:
		return LoopOne
	case LoopOne:
		return Shuffle
	case Shuffle:
		return Sequential
	default:
		return Sequential
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "sequential":
		return Sequential, nil
	case "loop-all":
		return LoopAll, nil
	case "loop-one":
		return LoopOne, nil
	case "shuffle":
		return Shuffle, nil
	default:
		return Sequential, fmt.Errorf("unknown playback mode %q", name)
	}
}
