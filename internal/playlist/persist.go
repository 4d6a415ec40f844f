package playlist

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/errs"
	"github.com/fermata-player/fermata/internal/media"
)

const appName = "fermata"

// DefaultPaths returns the XDG data file locations for the playlist and
// history documents, creating parent directories as needed.
func DefaultPaths() (playlistPath, historyPath string, err error) {
	playlistPath, err = xdg.DataFile(filepath.Join(appName, "playlist.json"))
	if err != nil {
		return "", "", err
	}
	historyPath, err = xdg.DataFile(filepath.Join(appName, "history.json"))
	if err != nil {
		return "", "", err
	}
	return playlistPath, historyPath, nil
}

// Load restores the playlist and history from disk. A missing file, a parse
// error, or a schema mismatch yields an empty collection; nothing is ever
// raised to the caller. Items whose local file no longer exists are
// filtered out, except network streams which are always kept.
func (s *Store) Load() {
	s.items = s.loadDocument(s.playlistPath, "playlist")

	history := s.loadDocument(s.historyPath, "history")
	if len(history) > HistoryCap {
		history = history[len(history)-HistoryCap:]
	}
	s.history = history
}

func (s *Store) loadDocument(path, name string) []media.Item {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("read failed, starting empty",
				zap.String("document", name), zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	var raw []media.Item
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Error("malformed JSON, starting empty",
			zap.String("document", name), zap.String("path", path), zap.Error(err))
		return nil
	}

	// Schema check: every entry must carry a main path.
	for _, item := range raw {
		if item.MainPath == "" {
			s.log.Warn("schema mismatch, starting empty",
				zap.String("document", name), zap.String("path", path))
			return nil
		}
	}

	valid := make([]media.Item, 0, len(raw))
	for _, item := range raw {
		if item.IsStream() {
			valid = append(valid, item)
			continue
		}
		if _, err := os.Stat(item.MainPath); err == nil {
			valid = append(valid, item)
		} else {
			s.log.Info("dropping vanished file",
				zap.String("document", name), zap.String("path", item.MainPath))
		}
	}

	s.log.Info("loaded document",
		zap.String("document", name), zap.Int("items", len(valid)))
	return valid
}

// Save writes both documents. Failures are advisory: they are logged,
// wrapped as a persist failure, and must never block playback or playlist
// mutation.
func (s *Store) Save() error {
	var firstErr error
	if err := s.saveDocument(s.playlistPath, s.items); err != nil {
		s.log.Error("saving playlist failed", zap.Error(err))
		firstErr = errs.Wrap(errs.OpSavePlaylist, errs.ErrPersistFailure, err.Error())
	}
	if err := s.saveDocument(s.historyPath, s.history); err != nil {
		s.log.Error("saving history failed", zap.Error(err))
		if firstErr == nil {
			firstErr = errs.Wrap(errs.OpSaveHistory, errs.ErrPersistFailure, err.Error())
		}
	}
	return firstErr
}

func (s *Store) saveDocument(path string, items []media.Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if items == nil {
		items = []media.Item{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
