// Package errs defines the error taxonomy shared by the playlist store and
// the playback session. Every expected failure is classified by one of the
// sentinel errors below so callers can branch with errors.Is while still
// receiving a human-readable reason.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	ErrNotFound            = errors.New("file not found")
	ErrDuplicate           = errors.New("already in playlist")
	ErrUnsupportedType     = errors.New("unsupported file type")
	ErrOutOfRange          = errors.New("index out of range")
	ErrNotApplicable       = errors.New("operation not applicable to this item")
	ErrEmptyPlaylist       = errors.New("playlist is empty")
	ErrFileMissing         = errors.New("file no longer exists")
	ErrPlaybackStartFailed = errors.New("playback failed to start")
	ErrEngineUnavailable   = errors.New("playback engine unavailable")
	ErrPersistFailure      = errors.New("failed to persist state")
	ErrNotPlaying          = errors.New("nothing is playing")
	ErrNotPaused           = errors.New("nothing is paused")
	ErrEndOfPlaylist       = errors.New("end of playlist reached")
	ErrAlreadyPlaying      = errors.New("already playing")
)

// Op names an operation that can fail, used for message formatting.
type Op string

// Operation constants, grouped by component.
const (
	// Playlist store operations
	OpAdd            Op = "add media"
	OpAddFolder      Op = "add folder"
	OpMove           Op = "move media"
	OpSetAssociation Op = "set associated file"
	OpSavePlaylist   Op = "save playlist"
	OpSaveHistory    Op = "save history"

	// Session operations
	OpPlay      Op = "start playback"
	OpPause     Op = "pause playback"
	OpResume    Op = "resume playback"
	OpStop      Op = "stop playback"
	OpNext      Op = "advance to next media"
	OpPrev      Op = "go to previous media"
	OpSeek      Op = "seek"
	OpSetVolume Op = "set volume"
	OpSetRate   Op = "set playback rate"

	// Equalizer operations
	OpSetPreamp   Op = "set equalizer preamp"
	OpSetBandGain Op = "set equalizer band gain"
)

// Wrap attaches an operation and context detail to a sentinel kind.
// The kind stays reachable through errors.Is.
func Wrap(op Op, kind error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %s", op, kind, detail)
}

// Format creates a user-facing message for a failed operation.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}
