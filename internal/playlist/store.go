// Package playlist owns the ordered collection of media items and the play
// history log, including their JSON persistence.
package playlist

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/errs"
	"github.com/fermata-player/fermata/internal/media"
	"github.com/fermata-player/fermata/internal/tags"
)

// HistoryCap is the maximum number of retained history entries.
const HistoryCap = 100

// Direction selects the single-step move direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// Association selects which associated file to set on an item.
type Association int

const (
	AssocLyrics Association = iota
	AssocCover
	AssocSubtitle
)

// Store holds the playlist items and the history log. It is not safe for
// concurrent mutation; callers serialize access (the session owns it).
type Store struct {
	log    *zap.Logger
	reader *tags.Reader

	playlistPath string
	historyPath  string

	items   []media.Item
	history []media.Item
}

// New creates an empty store persisting to the two given JSON files.
func New(log *zap.Logger, reader *tags.Reader, playlistPath, historyPath string) *Store {
	return &Store{
		log:          log,
		reader:       reader,
		playlistPath: playlistPath,
		historyPath:  historyPath,
	}
}

// Len returns the number of playlist items.
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the playlist items in playback order.
func (s *Store) Items() []media.Item {
	out := make([]media.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the item at index, and whether the index is valid.
func (s *Store) Item(index int) (media.Item, bool) {
	if index < 0 || index >= len(s.items) {
		return media.Item{}, false
	}
	return s.items[index], true
}

// Contains reports whether a main path is already in the playlist.
func (s *Store) Contains(mainPath string) bool {
	return s.indexOf(mainPath) != -1
}

func (s *Store) indexOf(mainPath string) int {
	for i, item := range s.items {
		if item.MainPath == mainPath {
			return i
		}
	}
	return -1
}

// Add classifies the input as a network stream or a local file, builds the
// media item (resolving sibling files and reading tags for local files),
// and appends it. Duplicate main paths are rejected.
func (s *Store) Add(input string) (media.Item, error) {
	if media.IsStreamURL(input) {
		return s.addStream(input)
	}
	return s.addLocal(input)
}

func (s *Store) addStream(url string) (media.Item, error) {
	if s.Contains(url) {
		return media.Item{}, errs.Wrap(errs.OpAdd, errs.ErrDuplicate, url)
	}
	item, err := media.NewStream(url)
	if err != nil {
		return media.Item{}, err
	}
	s.items = append(s.items, item)
	s.log.Info("added network stream", zap.String("url", url))
	return item, nil
}

func (s *Store) addLocal(path string) (media.Item, error) {
	if _, err := os.Stat(path); err != nil {
		return media.Item{}, errs.Wrap(errs.OpAdd, errs.ErrNotFound, path)
	}
	kind := media.KindForPath(path)
	if kind == media.Unknown {
		return media.Item{}, errs.Wrap(errs.OpAdd, errs.ErrUnsupportedType, filepath.Base(path))
	}
	if s.Contains(path) {
		return media.Item{}, errs.Wrap(errs.OpAdd, errs.ErrDuplicate, filepath.Base(path))
	}

	meta := s.reader.Read(path)
	item, err := media.New(path, kind, meta.Title, meta.Artist, meta.Album)
	if err != nil {
		return media.Item{}, err
	}

	assoc := media.ResolveAssociations(path)
	item.LyricsPath = assoc.Lyrics
	item.CoverPath = assoc.Cover
	if kind == media.Video {
		item.SubtitlePath = assoc.Subtitle
	}

	s.items = append(s.items, item)
	s.log.Info("added media", zap.String("path", path), zap.String("kind", string(kind)))
	return item, nil
}

// AddFolder adds every supported media file directly inside dir, in name
// order. Returns the number of items added.
func (s *Store) AddFolder(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errs.Wrap(errs.OpAddFolder, errs.ErrNotFound, dir)
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !media.IsSupportedExt(path) {
			continue
		}
		if _, err := s.Add(path); err == nil {
			added++
		}
	}
	s.log.Info("added folder", zap.String("dir", dir), zap.Int("added", added))
	return added, nil
}

// Remove deletes the items at the given indices, processed highest to
// lowest so earlier removals cannot shift later ones. Invalid indices are
// skipped. Returns the number removed. Current-index reconciliation is the
// session's responsibility.
func (s *Store) Remove(indices []int) int {
	seen := make(map[int]bool, len(indices))
	ordered := make([]int, 0, len(indices))
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			ordered = append(ordered, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	removed := 0
	for _, idx := range ordered {
		if idx < 0 || idx >= len(s.items) {
			s.log.Warn("remove: invalid index", zap.Int("index", idx))
			continue
		}
		s.log.Info("removing media", zap.String("path", s.items[idx].MainPath))
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		removed++
	}
	return removed
}

// Clear empties the playlist.
func (s *Store) Clear() {
	s.items = s.items[:0]
	s.log.Info("playlist cleared")
}

// Move swaps the item at index one step up or down.
func (s *Store) Move(index int, dir Direction) error {
	if index < 0 || index >= len(s.items) {
		return errs.Wrap(errs.OpMove, errs.ErrOutOfRange, strconv.Itoa(index))
	}
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	if target < 0 || target >= len(s.items) {
		return errs.Wrap(errs.OpMove, errs.ErrOutOfRange, strconv.Itoa(target))
	}
	s.items[index], s.items[target] = s.items[target], s.items[index]
	return nil
}

// MoveToPosition pops the item at source and reinserts it at target.
func (s *Store) MoveToPosition(source, target int) error {
	if source < 0 || source >= len(s.items) || target < 0 || target >= len(s.items) {
		return errs.Wrap(errs.OpMove, errs.ErrOutOfRange,
			strconv.Itoa(source)+" -> "+strconv.Itoa(target))
	}
	item := s.items[source]
	s.items = append(s.items[:source], s.items[source+1:]...)
	s.items = append(s.items[:target], append([]media.Item{item}, s.items[target:]...)...)
	return nil
}

// SetAssociation attaches a lyric, cover, or subtitle file to the item at
// index. Network streams accept no associations and subtitles apply only to
// video items. The target file must exist.
func (s *Store) SetAssociation(index int, assoc Association, path string) error {
	if index < 0 || index >= len(s.items) {
		return errs.Wrap(errs.OpSetAssociation, errs.ErrOutOfRange, strconv.Itoa(index))
	}
	if _, err := os.Stat(path); err != nil {
		return errs.Wrap(errs.OpSetAssociation, errs.ErrNotFound, path)
	}

	item := &s.items[index]
	if item.IsStream() {
		return errs.Wrap(errs.OpSetAssociation, errs.ErrNotApplicable, "network streams accept no associated files")
	}

	switch assoc {
	case AssocLyrics:
		item.LyricsPath = path
	case AssocCover:
		item.CoverPath = path
	case AssocSubtitle:
		if item.Kind != media.Video {
			return errs.Wrap(errs.OpSetAssociation, errs.ErrNotApplicable, "subtitles require a video item")
		}
		item.SubtitlePath = path
	}

	s.log.Info("set association",
		zap.String("path", item.MainPath),
		zap.String("associated", path))
	return nil
}

// AppendHistory records a played item. Appending the same main path as the
// latest entry is a no-op; the log is truncated to the newest HistoryCap
// entries.
func (s *Store) AppendHistory(item media.Item) {
	if n := len(s.history); n > 0 && s.history[n-1].MainPath == item.MainPath {
		return
	}
	s.history = append(s.history, item)
	if len(s.history) > HistoryCap {
		s.history = s.history[len(s.history)-HistoryCap:]
	}
}

// History returns a copy of the history log, oldest first.
func (s *Store) History() []media.Item {
	out := make([]media.Item, len(s.history))
	copy(out, s.history)
	return out
}
