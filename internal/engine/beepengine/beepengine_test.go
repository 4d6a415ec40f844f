package beepengine

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/engine"
)

func TestLoadLocal_UnsupportedExtension(t *testing.T) {
	e := New(zap.NewNop())
	path := filepath.Join(t.TempDir(), "song.opus")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.LoadLocal(path); err == nil {
		t.Error("LoadLocal(.opus) should fail")
	}
	if e.State() != engine.Error {
		t.Errorf("State() = %v, want %v", e.State(), engine.Error)
	}
}

func TestLoadLocal_MissingFile(t *testing.T) {
	e := New(zap.NewNop())
	if err := e.LoadLocal(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Error("LoadLocal on missing file should fail")
	}
	if e.State() != engine.Error {
		t.Errorf("State() = %v, want %v", e.State(), engine.Error)
	}
}

func TestLoadStream_Unsupported(t *testing.T) {
	e := New(zap.NewNop())
	if err := e.LoadStream("http://example.com/radio"); err == nil {
		t.Error("LoadStream should fail")
	}
}

func TestSetSubtitleFile(t *testing.T) {
	e := New(zap.NewNop())
	if err := e.SetSubtitleFile(""); err != nil {
		t.Errorf("clearing subtitles should succeed, got %v", err)
	}
	if err := e.SetSubtitleFile("/x/film.srt"); err == nil {
		t.Error("setting a subtitle should fail")
	}
}

func TestPlay_NoMediaLoaded(t *testing.T) {
	e := New(zap.NewNop())
	if err := e.Play(); err == nil {
		t.Error("Play without media should fail")
	}
}

// The end-of-stream callback transitions the state from the speaker
// goroutine while other goroutines poll State. The race detector flags any
// unguarded access here.
func TestState_ConcurrentTransition(t *testing.T) {
	e := New(zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			e.setState(engine.Playing)
			e.setState(engine.Ended)
		}
	}()

	for {
		select {
		case <-done:
			if e.State() != engine.Ended {
				t.Errorf("State() = %v, want %v", e.State(), engine.Ended)
			}
			return
		default:
			_ = e.State()
		}
	}
}
