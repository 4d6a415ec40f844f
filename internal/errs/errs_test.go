package errs

import (
	"errors"
	"testing"
)

func TestWrap_KeepsKindReachable(t *testing.T) {
	err := Wrap(OpAdd, ErrDuplicate, "song.mp3")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("errors.Is(err, ErrDuplicate) = false for %v", err)
	}
	want := "add media: already in playlist: song.mp3"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestWrap_NoDetail(t *testing.T) {
	err := Wrap(OpPlay, ErrEmptyPlaylist, "")
	want := "start playback: playlist is empty"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(OpSavePlaylist, errors.New("disk full")); got != "Failed to save playlist: disk full" {
		t.Errorf("Format = %q", got)
	}
	if got := Format(OpSavePlaylist, nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}
