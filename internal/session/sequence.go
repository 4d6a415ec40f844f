package session

import (
	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/errs"
)

// Next advances to the next item according to the sequencing mode and
// plays it. In Sequential mode, advancing past the last item stops
// playback and reports end of playlist instead of wrapping; every other
// mode keeps going.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Len()
	if n == 0 {
		s.stopLocked()
		return errs.Wrap(errs.OpNext, errs.ErrEmptyPlaylist, "")
	}

	if s.current < 0 || s.current >= n {
		return s.playLocked(s.resolveInvalid(0))
	}

	switch s.mode {
	case LoopOne:
		return s.playLocked(s.current)
	case Shuffle:
		return s.playLocked(s.pickShuffle())
	case Sequential:
		if s.current == n-1 {
			s.stopLocked()
			s.log.Info("end of playlist")
			return errs.Wrap(errs.OpNext, errs.ErrEndOfPlaylist, "")
		}
		return s.playLocked(s.current + 1)
	case LoopAll:
		return s.playLocked((s.current + 1) % n)
	}
	return s.playLocked(s.current)
}

// Prev goes to the previous item according to the sequencing mode and
// plays it. Unlike Next, Sequential mode wraps from the first item to the
// last without a terminal condition.
func (s *Session) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Len()
	if n == 0 {
		s.stopLocked()
		return errs.Wrap(errs.OpPrev, errs.ErrEmptyPlaylist, "")
	}

	if s.current < 0 || s.current >= n {
		return s.playLocked(s.resolveInvalid(n - 1))
	}

	switch s.mode {
	case LoopOne:
		return s.playLocked(s.current)
	case Shuffle:
		return s.playLocked(s.pickShuffle())
	default: // Sequential and LoopAll both wrap backwards
		return s.playLocked((s.current - 1 + n) % n)
	}
}

// resolveInvalid picks the index to play when the current index is not
// valid: a random one in shuffle mode, otherwise the given fallback.
func (s *Session) resolveInvalid(fallback int) int {
	if s.mode == Shuffle {
		return s.rng.Intn(s.store.Len())
	}
	return fallback
}

// pickShuffle picks uniformly at random among all indices except the
// current one. With a single item, or no other candidate, it repeats the
// current item.
func (s *Session) pickShuffle() int {
	n := s.store.Len()
	if n <= 1 {
		return 0
	}
	pick := s.rng.Intn(n - 1)
	if pick >= s.current {
		pick++
	}
	return pick
}

// Run consumes the engine's end-of-media notifications until ctx is done,
// triggering auto-advance. The notification originates on the engine's own
// goroutine; taking the session lock inside Next serializes it with every
// user-initiated call.
func (s *Session) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-s.eng.Finished():
			if err := s.Next(); err != nil {
				s.log.Info("auto-advance stopped", zap.Error(err))
			}
		}
	}
}
