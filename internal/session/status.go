package session

import (
	"fmt"
	"time"

	"github.com/fermata-player/fermata/internal/engine"
	"github.com/fermata-player/fermata/internal/lyrics"
	"github.com/fermata-player/fermata/internal/media"
)

// Status is a point-in-time snapshot for presentation polling. The
// presentation layer reads it on an interval (~100ms) for clock refresh
// and lyric highlighting; it must never mutate session state directly.
type Status struct {
	State      engine.State
	Index      int
	Item       media.Item
	HasItem    bool
	ElapsedMs  int64
	DurationMs int64
	Elapsed    string // MM:SS
	Total      string // MM:SS
	Volume     float64
	Rate       float64
	Mode       Mode
	LyricIndex int // index into Lyrics, -1 when no line is active
	Lyrics     []lyrics.Line
}

// Status returns the current snapshot.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:      s.eng.State(),
		Index:      s.current,
		Volume:     s.volume,
		Rate:       s.rate,
		Mode:       s.mode,
		LyricIndex: -1,
		Lyrics:     s.lyricLines,
	}
	if item, ok := s.store.Item(s.current); ok {
		st.Item = item
		st.HasItem = true
	}

	st.ElapsedMs = s.eng.Position().Milliseconds()
	st.DurationMs = s.eng.Duration().Milliseconds()
	st.Elapsed = FormatClock(st.ElapsedMs)
	st.Total = FormatClock(st.DurationMs)

	if len(s.lyricLines) > 0 && s.eng.State().IsActive() {
		st.LyricIndex = lyrics.Locate(st.ElapsedMs, s.lyricLines)
	}
	return st
}

// FormatClock renders milliseconds as MM:SS, clamping negatives to zero.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
