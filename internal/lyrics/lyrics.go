// Package lyrics parses timestamped lyric text and locates the active line
// for a playback position.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Untimed marks a line without a parseable timestamp. Untimed lines sort
// after every timed line and are never returned by Locate.
const Untimed int64 = -1

// Line is a single lyric line with its start time in milliseconds, or
// Untimed.
type Line struct {
	Millis int64
	Text   string
}

// IsTimed reports whether the line carries a timestamp.
func (l Line) IsTimed() bool {
	return l.Millis != Untimed
}

// Timestamp patterns: [MM:SS.fff] with a 2- or 3-digit fraction, and the
// fraction-less [MM:SS].
var (
	timedRe   = regexp.MustCompile(`^\[(\d{2}):(\d{2})\.(\d{2,3})\](.*)$`)
	untimedRe = regexp.MustCompile(`^\[(\d{2}):(\d{2})\](.*)$`)
)

// Parse reads lyric text line by line. Lines matching a timestamp pattern
// become timed entries; anything else is kept as an untimed entry holding
// the trimmed raw text. Lines whose text trims to empty are dropped. The
// result is sorted ascending by timestamp with untimed entries last, their
// relative order preserved.
func Parse(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		raw := scanner.Text()

		if m := timedRe.FindStringSubmatch(raw); m != nil {
			text := strings.TrimSpace(m[4])
			if text == "" {
				continue
			}
			lines = append(lines, Line{Millis: timestampMillis(m[1], m[2], m[3]), Text: text})
			continue
		}

		if m := untimedRe.FindStringSubmatch(raw); m != nil {
			text := strings.TrimSpace(m[3])
			if text == "" {
				continue
			}
			lines = append(lines, Line{Millis: timestampMillis(m[1], m[2], ""), Text: text})
			continue
		}

		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Millis: Untimed, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Stable so untimed lines keep their original relative order.
	sort.SliceStable(lines, func(i, j int) bool {
		return sortKey(lines[i]) < sortKey(lines[j])
	})

	return lines, nil
}

// ParseString parses lyric text held in a string.
func ParseString(text string) []Line {
	lines, _ := Parse(strings.NewReader(text))
	return lines
}

func sortKey(l Line) int64 {
	if l.Millis == Untimed {
		return int64(^uint64(0) >> 1) // max int64, after every timed line
	}
	return l.Millis
}

// timestampMillis converts MM, SS, and an optional fraction to
// milliseconds. A 2-digit fraction is centiseconds and scales by 10.
func timestampMillis(mm, ss, frac string) int64 {
	minutes, _ := strconv.Atoi(mm)
	seconds, _ := strconv.Atoi(ss)
	millis := 0
	if frac != "" {
		millis, _ = strconv.Atoi(frac)
		if len(frac) == 2 {
			millis *= 10
		}
	}
	return int64(minutes*60+seconds)*1000 + int64(millis)
}

// Locate returns the index of the latest timed line whose timestamp is at
// or before timeMs, or -1 if no timed line qualifies. Untimed lines are
// never returned.
func Locate(timeMs int64, lines []Line) int {
	// Timed lines form a sorted prefix after Parse.
	timed := 0
	for timed < len(lines) && lines[timed].IsTimed() {
		timed++
	}
	if timed == 0 {
		return -1
	}

	low, high := 0, timed-1
	found := -1
	for low <= high {
		mid := (low + high) / 2
		if lines[mid].Millis <= timeMs {
			found = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return found
}
