package lyrics

import (
	"strings"
	"testing"
)

func TestParse_TimedLines(t *testing.T) {
	text := `[00:12.34]First line
[00:15.678]Second line
[00:20]Third line`

	lines := ParseString(text)

	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}

	expected := []struct {
		millis int64
		text   string
	}{
		{12340, "First line"},  // 2-digit fraction scaled x10
		{15678, "Second line"}, // 3-digit fraction as-is
		{20000, "Third line"},  // no fraction
	}
	for i, exp := range expected {
		if lines[i].Millis != exp.millis {
			t.Errorf("lines[%d].Millis = %d, want %d", i, lines[i].Millis, exp.millis)
		}
		if lines[i].Text != exp.text {
			t.Errorf("lines[%d].Text = %q, want %q", i, lines[i].Text, exp.text)
		}
	}
}

func TestParse_UntimedSortedLast(t *testing.T) {
	text := `credits: someone
[00:10.00]timed
more credits`

	lines := ParseString(text)

	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0].Millis != 10000 {
		t.Errorf("lines[0].Millis = %d, want 10000", lines[0].Millis)
	}
	// Untimed entries keep their relative order after the timed ones.
	if lines[1].Millis != Untimed || lines[1].Text != "credits: someone" {
		t.Errorf("lines[1] = %v, want untimed %q", lines[1], "credits: someone")
	}
	if lines[2].Millis != Untimed || lines[2].Text != "more credits" {
		t.Errorf("lines[2] = %v, want untimed %q", lines[2], "more credits")
	}
}

func TestParse_SortsByTimestamp(t *testing.T) {
	text := `[01:00.00]later
[00:10.00]earlier`

	lines := ParseString(text)

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].Text != "earlier" || lines[1].Text != "later" {
		t.Errorf("lines not sorted by timestamp: %v", lines)
	}
}

func TestParse_DropsEmptyText(t *testing.T) {
	text := `[00:10.00]
[00:20.00]
[00:30.00]kept

   `

	lines := ParseString(text)

	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Text != "kept" {
		t.Errorf("lines[0].Text = %q, want %q", lines[0].Text, "kept")
	}
}

func TestParse_IdempotentOnPlainText(t *testing.T) {
	// Parsing plain text yields untimed lines; round-tripping the texts
	// through Parse again yields the same sequence.
	text := "alpha\nbeta\ngamma"

	first := ParseString(text)

	var texts []string
	for _, l := range first {
		if l.IsTimed() {
			t.Fatalf("plain text produced timed line %v", l)
		}
		texts = append(texts, l.Text)
	}

	second := ParseString(strings.Join(texts, "\n"))

	if len(second) != len(first) {
		t.Fatalf("round-trip length = %d, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i] != first[i] {
			t.Errorf("round-trip line %d = %v, want %v", i, second[i], first[i])
		}
	}
}

func TestParse_ScannerError(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err != nil {
		t.Fatalf("Parse empty input error: %v", err)
	}
}

func TestLocate(t *testing.T) {
	lines := []Line{
		{Millis: 1000, Text: "a"},
		{Millis: 5000, Text: "b"},
		{Millis: Untimed, Text: "c"},
	}

	tests := []struct {
		name   string
		timeMs int64
		want   int
	}{
		{"before first", 0, -1},
		{"exact first", 1000, 0},
		{"between", 4999, 0},
		{"exact second", 5000, 1},
		{"after all", 99999, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locate(tt.timeMs, lines); got != tt.want {
				t.Errorf("Locate(%d) = %d, want %d", tt.timeMs, got, tt.want)
			}
		})
	}
}

func TestLocate_NoTimedLines(t *testing.T) {
	lines := []Line{
		{Millis: Untimed, Text: "a"},
		{Millis: Untimed, Text: "b"},
	}
	if got := Locate(10000, lines); got != -1 {
		t.Errorf("Locate = %d, want -1", got)
	}
	if got := Locate(0, nil); got != -1 {
		t.Errorf("Locate(nil) = %d, want -1", got)
	}
}
