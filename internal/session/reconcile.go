package session

import (
	"github.com/fermata-player/fermata/internal/media"
	"github.com/fermata-player/fermata/internal/playlist"
)

// Playlist mutations route through the session so the current index is
// recomputed against every structural change. The store itself never
// touches selection state.

// Add adds a path or URL to the playlist. When the store goes from empty
// to non-empty the first item becomes the selection (without starting
// playback).
func (s *Session) Add(input string) (media.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.store.Add(input)
	if err != nil {
		return media.Item{}, err
	}
	s.selectFirstIfUnset()
	return item, nil
}

// AddFolder adds every supported file in dir to the playlist.
func (s *Session) AddFolder(dir string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.store.AddFolder(dir)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.selectFirstIfUnset()
	}
	return added, nil
}

func (s *Session) selectFirstIfUnset() {
	if s.current == -1 && s.store.Len() > 0 {
		s.current = 0
	}
}

// Remove deletes the items at the given indices and reconciles the
// selection: removing the current item stops playback and clears the
// selection; removals before it shift it down; a selection past the new
// end is clamped.
func (s *Session) Remove(indices []int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removedCurrent := false
	before := 0
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= s.store.Len() || seen[idx] {
			continue
		}
		seen[idx] = true
		switch {
		case idx == s.current:
			removedCurrent = true
		case idx < s.current:
			before++
		}
	}

	removed := s.store.Remove(indices)
	if removed == 0 {
		return 0
	}

	if removedCurrent {
		s.stopLocked()
		s.current = -1
	} else if s.current >= 0 {
		s.current -= before
	}

	n := s.store.Len()
	if n == 0 {
		s.current = -1
		s.clearLoaded()
	} else if s.current >= n {
		s.current = n - 1
	}
	return removed
}

// Clear stops playback and empties the playlist.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.store.Clear()
	s.current = -1
}

// Move shifts the item at index one step and translates the selection
// through the swap.
func (s *Session) Move(index int, dir playlist.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := index - 1
	if dir == playlist.Down {
		target = index + 1
	}
	if err := s.store.Move(index, dir); err != nil {
		return err
	}

	switch s.current {
	case index:
		s.current = target
	case target:
		s.current = index
	}
	return nil
}

// MoveToPosition reorders with pop-and-insert semantics and translates the
// selection through the same permutation.
func (s *Session) MoveToPosition(source, target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.MoveToPosition(source, target); err != nil {
		return err
	}

	switch {
	case s.current == source:
		s.current = target
	case source < s.current && s.current <= target:
		s.current--
	case target <= s.current && s.current < source:
		s.current++
	}
	return nil
}

// SetAssociation attaches an associated file to the item at index. When
// the change attaches a subtitle to the item currently playing, the engine
// subtitle is refreshed in place.
func (s *Session) SetAssociation(index int, assoc playlist.Association, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetAssociation(index, assoc, path); err != nil {
		return err
	}

	if assoc == playlist.AssocSubtitle && index == s.current && s.eng.State().IsActive() {
		if item, ok := s.store.Item(index); ok {
			s.applySubtitle(item)
		}
	}
	if assoc == playlist.AssocLyrics && index == s.current && s.loadedPath != "" {
		if item, ok := s.store.Item(index); ok {
			s.loadLyrics(item)
		}
	}
	return nil
}
