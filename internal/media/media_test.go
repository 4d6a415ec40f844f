package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"/music/song.mp3", Audio},
		{"/music/song.FLAC", Audio},
		{"/music/song.opus", Audio},
		{"/movies/film.mkv", Video},
		{"/movies/film.mp4", Video},
		{"/docs/readme.txt", Unknown},
		{"/music/noext", Unknown},
	}
	for _, tt := range tests {
		if got := KindForPath(tt.path); got != tt.want {
			t.Errorf("KindForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsStreamURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"http://example.com/radio", true},
		{"https://example.com/radio", true},
		{"rtmp://example.com/live", true},
		{"rtsp://example.com/cam", true},
		{"ftp://example.com/file.mp3", true},
		{"/home/user/song.mp3", false},
		{"file:///home/user/song.mp3", false},
		{"httpx://example.com", false},
	}
	for _, tt := range tests {
		if got := IsStreamURL(tt.input); got != tt.want {
			t.Errorf("IsStreamURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_Fallbacks(t *testing.T) {
	item, err := New("/music/track.mp3", Audio, "", "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if item.Title != "track.mp3" {
		t.Errorf("Title = %q, want %q", item.Title, "track.mp3")
	}
	if item.Artist != UnknownArtist {
		t.Errorf("Artist = %q, want %q", item.Artist, UnknownArtist)
	}
	if item.Album != UnknownAlbum {
		t.Errorf("Album = %q, want %q", item.Album, UnknownAlbum)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("", Audio, "", "", ""); err == nil {
		t.Error("New with empty path should fail")
	}
	if _, err := New("/x.mp3", NetworkStream, "", "", ""); err == nil {
		t.Error("New with stream kind should fail")
	}
	if _, err := New("/x.mp3", Unknown, "", "", ""); err == nil {
		t.Error("New with unknown kind should fail")
	}
}

func TestNewStream(t *testing.T) {
	item, err := NewStream("http://example.com/radio")
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if item.Kind != NetworkStream {
		t.Errorf("Kind = %v, want %v", item.Kind, NetworkStream)
	}
	if item.Title != "http://example.com/radio" {
		t.Errorf("Title = %q, want the URL", item.Title)
	}
	if item.Artist != StreamArtist || item.Album != StreamAlbum {
		t.Errorf("stream metadata = %q/%q, want placeholders", item.Artist, item.Album)
	}
	if !item.IsStream() {
		t.Error("IsStream() = false, want true")
	}

	if _, err := NewStream(""); err == nil {
		t.Error("NewStream with empty URL should fail")
	}
}

func TestResolveAssociations(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "song.mp3")
	for _, name := range []string{"song.mp3", "song.lrc", "song.png", "song.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	assoc := ResolveAssociations(main)

	if assoc.Lyrics != filepath.Join(dir, "song.lrc") {
		t.Errorf("Lyrics = %q, want song.lrc", assoc.Lyrics)
	}
	if assoc.Cover != filepath.Join(dir, "song.png") {
		t.Errorf("Cover = %q, want song.png", assoc.Cover)
	}
	if assoc.Subtitle != filepath.Join(dir, "song.srt") {
		t.Errorf("Subtitle = %q, want song.srt", assoc.Subtitle)
	}
}

func TestResolveAssociations_Priority(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"song.lrc", "song.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	assoc := ResolveAssociations(filepath.Join(dir, "song.mp3"))

	if assoc.Lyrics != filepath.Join(dir, "song.lrc") {
		t.Errorf("Lyrics = %q, want .lrc preferred over .txt", assoc.Lyrics)
	}
}

func TestResolveAssociations_Missing(t *testing.T) {
	assoc := ResolveAssociations(filepath.Join(t.TempDir(), "song.mp3"))
	if assoc != (Associations{}) {
		t.Errorf("Associations = %+v, want all empty", assoc)
	}
}
