package engine

import (
	"errors"
	"time"
)

// Mock is a test double for the playback engine.
type Mock struct {
	state    State
	loaded   string
	subtitle string
	volume   int
	rate     float64
	position time.Duration
	duration time.Duration

	loadErr error
	playErr error

	loadCalls     []string
	playCalls     int
	stopCalls     int
	subtitleCalls []string

	eq         Equalizer
	finishedCh chan struct{}
}

// NewMock creates a mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		state:      Idle,
		rate:       1.0,
		finishedCh: make(chan struct{}, 1),
	}
}

func (m *Mock) LoadLocal(path string) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loadCalls = append(m.loadCalls, path)
	m.loaded = path
	m.state = Stopped
	return nil
}

func (m *Mock) LoadStream(url string) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loadCalls = append(m.loadCalls, url)
	m.loaded = url
	m.state = Stopped
	return nil
}

func (m *Mock) Play() error {
	if m.playErr != nil {
		m.state = Error
		return m.playErr
	}
	if m.loaded == "" {
		return errors.New("no media loaded")
	}
	m.playCalls++
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	if m.state.CanPause() {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state.CanResume() {
		m.state = Playing
	}
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
	m.position = 0
}

func (m *Mock) Seek(pos time.Duration) { m.position = pos }

func (m *Mock) SetVolume(percent int) { m.volume = percent }

func (m *Mock) SetRate(rate float64) { m.rate = rate }

func (m *Mock) SetSubtitleFile(path string) error {
	m.subtitleCalls = append(m.subtitleCalls, path)
	m.subtitle = path
	return nil
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) State() State { return m.state }

func (m *Mock) Finished() <-chan struct{} { return m.finishedCh }

func (m *Mock) EqualizerCapability() Equalizer { return m.eq }

func (m *Mock) Close() error {
	m.Stop()
	return nil
}

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetPosition(pos time.Duration) { m.position = pos }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetEqualizer(eq Equalizer) { m.eq = eq }

func (m *Mock) Loaded() string { return m.loaded }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) Subtitle() string { return m.subtitle }

func (m *Mock) SubtitleCalls() []string { return m.subtitleCalls }

func (m *Mock) Volume() int { return m.volume }

func (m *Mock) Rate() float64 { return m.rate }

// SimulateFinished simulates the media reaching its end.
func (m *Mock) SimulateFinished() {
	m.state = Ended
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
