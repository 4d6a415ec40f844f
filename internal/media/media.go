// Package media defines the playable media item entity and the
// classification rules for paths, URLs, and associated files.
package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies a media item. The string values are part of the persisted
// JSON schema and match the reference state files.
type Kind string

const (
	Audio         Kind = "audio"
	Video         Kind = "video"
	NetworkStream Kind = "network_stream"
	Unknown       Kind = "unknown"
)

// Fallback metadata used when tags are absent.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	StreamArtist  = "Network Stream"
	StreamAlbum   = "Network Stream"
)

// Item is one playable unit plus its associated files and display metadata.
// MainPath is the unique key within a playlist. Only the three association
// paths are settable after construction.
type Item struct {
	MainPath     string `json:"main_path"`
	Kind         Kind   `json:"type"`
	LyricsPath   string `json:"lyrics_path"`
	CoverPath    string `json:"cover_path"`
	SubtitlePath string `json:"subtitle_path"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Album        string `json:"album"`
}

// New creates a validated local media item. Title falls back to the base
// file name, artist and album to the unknown placeholders.
func New(path string, kind Kind, title, artist, album string) (Item, error) {
	if path == "" {
		return Item{}, fmt.Errorf("media item requires a path")
	}
	if kind != Audio && kind != Video {
		return Item{}, fmt.Errorf("invalid local media kind %q", kind)
	}
	if title == "" {
		title = filepath.Base(path)
	}
	if artist == "" {
		artist = UnknownArtist
	}
	if album == "" {
		album = UnknownAlbum
	}
	return Item{
		MainPath: path,
		Kind:     kind,
		Title:    title,
		Artist:   artist,
		Album:    album,
	}, nil
}

// NewStream creates a media item for a network stream URL. Streams carry no
// associated files; the URL doubles as the title.
func NewStream(url string) (Item, error) {
	if url == "" {
		return Item{}, fmt.Errorf("stream item requires a URL")
	}
	return Item{
		MainPath: url,
		Kind:     NetworkStream,
		Title:    url,
		Artist:   StreamArtist,
		Album:    StreamAlbum,
	}, nil
}

// IsStream reports whether the item points at a network location.
func (i Item) IsStream() bool {
	return i.Kind == NetworkStream
}

// streamSchemes are the URI scheme prefixes handed through to the engine as
// opaque stream locations.
var streamSchemes = []string{
	"http://", "https://", "rtmp://", "rtsp://", "ftp://",
}

// IsStreamURL reports whether the input should be treated as a network
// stream rather than a local path.
func IsStreamURL(input string) bool {
	for _, scheme := range streamSchemes {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}
