// Package session owns the playback selection, mode, and volume/rate
// state, and drives the playback engine. All mutation goes through the
// session mutex; the engine's end-of-media notification is marshaled onto
// the same lock by Run.
package session

import (
	"math/rand"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/engine"
	"github.com/fermata-player/fermata/internal/errs"
	"github.com/fermata-player/fermata/internal/lyrics"
	"github.com/fermata-player/fermata/internal/media"
	"github.com/fermata-player/fermata/internal/playlist"
)

// Volume and rate bounds.
const (
	MinVolume = 0.0
	MaxVolume = 1.0
	MinRate   = 0.1
	MaxRate   = 4.0
)

// Session maps playback intents to engine calls and keeps the selection
// consistent with playlist mutations. The current item is tracked as an
// index into the store, never as a reference that could dangle.
type Session struct {
	mu sync.Mutex

	log   *zap.Logger
	store *playlist.Store
	eng   engine.Interface

	current int
	mode    Mode
	volume  float64
	rate    float64

	// loadedPath is the main path the engine currently holds, empty when
	// nothing is loaded.
	loadedPath string
	lyricLines []lyrics.Line

	rng *rand.Rand
}

// New creates a session over the given store and engine.
func New(log *zap.Logger, store *playlist.Store, eng engine.Interface) *Session {
	return &Session{
		log:     log,
		store:   store,
		eng:     eng,
		current: -1,
		mode:    Sequential,
		volume:  0.5,
		rate:    1.0,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// Store returns the playlist store the session drives.
func (s *Session) Store() *playlist.Store {
	return s.store
}

// CurrentIndex returns the selected index, -1 when nothing is selected.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentItem returns the selected item, resolved through the store.
func (s *Session) CurrentItem() (media.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Item(s.current)
}

// Mode returns the sequencing mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode sets the sequencing mode.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.log.Info("playback mode changed", zap.Stringer("mode", m))
}

// CycleMode advances to the successor mode and returns it.
func (s *Session) CycleMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Next()
	s.log.Info("playback mode changed", zap.Stringer("mode", s.mode))
	return s.mode
}

// Play starts or resumes the current selection, defaulting to the first
// item when nothing is selected.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playLocked(-1)
}

// PlayIndex starts playback of the item at index.
func (s *Session) PlayIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.store.Len() {
		return errs.Wrap(errs.OpPlay, errs.ErrOutOfRange, strconv.Itoa(index))
	}
	return s.playLocked(index)
}

// playLocked resolves the target index (-1 means "current or first") and
// drives the engine through load, configure, and start. On engine failure
// the loaded-media tracking is rolled back so the session never points at
// media the engine does not hold.
func (s *Session) playLocked(index int) error {
	if s.store.Len() == 0 {
		return errs.Wrap(errs.OpPlay, errs.ErrEmptyPlaylist, "")
	}
	if index >= 0 {
		s.current = index
	} else if s.current == -1 {
		s.current = 0
	}

	item, ok := s.store.Item(s.current)
	if !ok {
		return errs.Wrap(errs.OpPlay, errs.ErrOutOfRange, strconv.Itoa(s.current))
	}

	// Resume in place when the engine already holds this item.
	if item.MainPath == s.loadedPath {
		switch s.eng.State() {
		case engine.Paused:
			s.eng.Resume()
			s.log.Info("resumed", zap.String("path", item.MainPath))
			return nil
		case engine.Playing, engine.Buffering:
			return errs.Wrap(errs.OpPlay, errs.ErrAlreadyPlaying, item.Title)
		}
	}

	if !item.IsStream() {
		if _, err := os.Stat(item.MainPath); err != nil {
			return errs.Wrap(errs.OpPlay, errs.ErrFileMissing, item.MainPath)
		}
	}

	var loadErr error
	if item.IsStream() {
		loadErr = s.eng.LoadStream(item.MainPath)
	} else {
		loadErr = s.eng.LoadLocal(item.MainPath)
	}
	if loadErr != nil {
		s.clearLoaded()
		s.log.Error("load failed", zap.String("path", item.MainPath), zap.Error(loadErr))
		return errs.Wrap(errs.OpPlay, errs.ErrPlaybackStartFailed, loadErr.Error())
	}

	s.eng.SetVolume(volumePercent(s.volume))
	s.eng.SetRate(s.rate)
	s.applySubtitle(item)

	if err := s.eng.Play(); err != nil {
		s.clearLoaded()
		s.log.Error("start failed", zap.String("path", item.MainPath), zap.Error(err))
		return errs.Wrap(errs.OpPlay, errs.ErrPlaybackStartFailed, err.Error())
	}

	s.loadedPath = item.MainPath
	s.loadLyrics(item)
	s.store.AppendHistory(item)
	s.log.Info("playing",
		zap.String("path", item.MainPath),
		zap.Int("index", s.current))
	return nil
}

// applySubtitle clears any previous subtitle and applies the item's
// subtitle file when it is a video with an existing subtitle. Subtitle
// errors never fail playback.
func (s *Session) applySubtitle(item media.Item) {
	if err := s.eng.SetSubtitleFile(""); err != nil {
		s.log.Debug("clearing subtitle rejected", zap.Error(err))
	}
	if item.Kind != media.Video || item.SubtitlePath == "" {
		return
	}
	if _, err := os.Stat(item.SubtitlePath); err != nil {
		return
	}
	if err := s.eng.SetSubtitleFile(item.SubtitlePath); err != nil {
		s.log.Warn("subtitle rejected",
			zap.String("subtitle", item.SubtitlePath), zap.Error(err))
	}
}

// loadLyrics loads the item's lyric file, best-effort.
func (s *Session) loadLyrics(item media.Item) {
	s.lyricLines = nil
	if item.LyricsPath == "" {
		return
	}
	lines, err := lyrics.LoadFile(item.LyricsPath)
	if err != nil {
		s.log.Debug("lyrics unavailable",
			zap.String("path", item.LyricsPath), zap.Error(err))
		return
	}
	s.lyricLines = lines
}

func (s *Session) clearLoaded() {
	s.loadedPath = ""
	s.lyricLines = nil
}

// Pause pauses playback.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.eng.State().CanPause() {
		return errs.Wrap(errs.OpPause, errs.ErrNotPlaying, "")
	}
	s.eng.Pause()
	s.log.Info("paused")
	return nil
}

// Resume resumes paused playback.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.eng.State().CanResume() {
		return errs.Wrap(errs.OpResume, errs.ErrNotPaused, "")
	}
	s.eng.Resume()
	s.log.Info("resumed")
	return nil
}

// Stop halts playback. The selection is unchanged.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.eng.State().IsActive() {
		return errs.Wrap(errs.OpStop, errs.ErrNotPlaying, "")
	}
	s.stopLocked()
	return nil
}

// stopLocked stops the engine unconditionally, clearing subtitles first.
func (s *Session) stopLocked() {
	if err := s.eng.SetSubtitleFile(""); err != nil {
		s.log.Debug("clearing subtitle rejected", zap.Error(err))
	}
	s.eng.Stop()
	s.clearLoaded()
	s.log.Info("stopped")
}

// SetVolume sets the session volume in [0, 1] and applies it to the
// engine.
func (s *Session) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < MinVolume || v > MaxVolume {
		return errs.Wrap(errs.OpSetVolume, errs.ErrOutOfRange,
			strconv.FormatFloat(v, 'f', 2, 64))
	}
	s.volume = v
	s.eng.SetVolume(volumePercent(v))
	return nil
}

// Volume returns the session volume.
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetRate sets the playback rate in [0.1, 4.0] and applies it to the
// engine.
func (s *Session) SetRate(r float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r < MinRate || r > MaxRate {
		return errs.Wrap(errs.OpSetRate, errs.ErrOutOfRange,
			strconv.FormatFloat(r, 'f', 2, 64))
	}
	s.rate = r
	s.eng.SetRate(r)
	return nil
}

// Rate returns the playback rate.
func (s *Session) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// SeekMs seeks to an absolute position in milliseconds.
func (s *Session) SeekMs(ms int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.eng.State().IsActive() {
		return errs.Wrap(errs.OpSeek, errs.ErrNotPlaying, "")
	}
	s.eng.Seek(msToDuration(ms))
	return nil
}

func volumePercent(v float64) int {
	return int(v*100 + 0.5)
}
