// Package tags reads display metadata from media files. Reading is
// best-effort: a file without tags, or a format the reader cannot parse,
// yields empty metadata rather than an error.
package tags

import (
	"os"

	"github.com/dhowden/tag"

	"github.com/fermata-player/fermata/internal/media"
)

// Meta holds the display tags extracted from a media file. Absent tags stay
// empty.
type Meta struct {
	Title  string
	Artist string
	Album  string
}

// Reader extracts metadata from local media files.
type Reader struct{}

// NewReader creates a tag reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read extracts title, artist, and album from the file at path. Failure to
// open or parse the file is not an error; the zero Meta is returned.
func (r *Reader) Read(path string) Meta {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Meta{}
	}
	return Meta{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}
}

// Classify reports whether the file at path is audio, video, or unknown,
// judged by extension.
func (r *Reader) Classify(path string) media.Kind {
	return media.KindForPath(path)
}
