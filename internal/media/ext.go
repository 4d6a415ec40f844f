package media

import (
	"os"
	"path/filepath"
	"strings"
)

// Supported media file extensions, lowercased with leading dot.
var (
	audioExts = map[string]bool{
		".mp3": true, ".wav": true, ".ogg": true, ".flac": true,
		".aac": true, ".m4a": true, ".opus": true, ".wma": true,
	}
	videoExts = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
		".wmv": true, ".flv": true, ".webm": true, ".ts": true, ".m2ts": true,
	}
)

// Associated file extensions, tried in order.
var (
	lyricsExts   = []string{".lrc", ".txt"}
	coverExts    = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}
	subtitleExts = []string{".srt", ".ass", ".ssa", ".vtt"}
)

// KindForPath classifies a local file by extension.
func KindForPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case audioExts[ext]:
		return Audio
	case videoExts[ext]:
		return Video
	default:
		return Unknown
	}
}

// IsSupportedExt reports whether the extension belongs to the playable set.
func IsSupportedExt(path string) bool {
	return KindForPath(path) != Unknown
}

// Associations holds the sibling files resolved for a media file.
type Associations struct {
	Lyrics   string
	Cover    string
	Subtitle string
}

// ResolveAssociations looks next to the media file for siblings sharing its
// base name: lyrics, cover art, and subtitles. The first existing candidate
// per category wins. Missing siblings stay empty.
func ResolveAssociations(mainPath string) Associations {
	base := strings.TrimSuffix(mainPath, filepath.Ext(mainPath))
	return Associations{
		Lyrics:   firstExisting(base, lyricsExts),
		Cover:    firstExisting(base, coverExts),
		Subtitle: firstExisting(base, subtitleExts),
	}
}

func firstExisting(base string, exts []string) string {
	for _, ext := range exts {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
