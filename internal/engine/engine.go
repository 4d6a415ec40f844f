// Package engine defines the contract for the native media engine that
// decodes and renders media. The session drives it and observes progress by
// polling; the only engine-to-session notification is end of media.
package engine

import "time"

// Interface is the playback engine contract used for dependency injection
// and testing. Load prepares a media handle without starting it; Play
// starts the loaded handle. Calls return promptly, with buffering handled
// asynchronously and observed through State.
type Interface interface {
	LoadLocal(path string) error
	LoadStream(url string) error
	Play() error
	Pause()
	Resume()
	Stop()
	Seek(pos time.Duration)
	SetVolume(percent int) // 0-100
	SetRate(rate float64)
	SetSubtitleFile(path string) error // empty path clears the subtitle
	Position() time.Duration
	Duration() time.Duration
	State() State

	// Finished signals end of media. The receiver must marshal the
	// notification onto its own execution context before mutating state.
	Finished() <-chan struct{}

	// EqualizerCapability returns the engine equalizer, or nil when the
	// engine has none.
	EqualizerCapability() Equalizer

	Close() error
}

// Band describes one equalizer band.
type Band struct {
	Index     int
	Frequency float64 // Hz
	Gain      float64 // dB
}

// Equalizer is the optional engine equalizer capability.
type Equalizer interface {
	SetPreampGain(db float64) error
	SetBandGain(index int, db float64) error
	PreampGain() float64
	Bands() []Band
}
