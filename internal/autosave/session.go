// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autosave

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/settings"
	"github.com/olegiv/ostore-go/internal/theme"
)

// Session is one editor's working copy of a storefront document. Every edit
// replaces the whole document and queues it on the Saver.
type Session struct {
	saver *Saver
	slug  string

	mu      sync.Mutex
	cfg     settings.Config
	version int64
	saved   []byte
	err     error

	saveMu sync.Mutex
}

// Slug returns the storefront slug.
func (s *Session) Slug() string { return s.slug }

// Config returns a copy of the working document.
func (s *Session) Config() settings.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Version returns the stored version the next save is checked against.
func (s *Session) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Err returns the error of the last failed save, or nil after a success.
// A store.ErrVersionConflict means the session must be reopened.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dirty reports whether the working document differs from the last save.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := json.Marshal(s.cfg)
	return err != nil || !bytes.Equal(doc, s.saved)
}

// Update replaces the working document with fn's result and queues a save.
func (s *Session) Update(fn func(settings.Config) settings.Config) error {
	s.mu.Lock()
	s.cfg = fn(s.cfg.Clone())
	s.mu.Unlock()
	return s.saver.Queue(s)
}

// Apply merges a top-level patch object into the document.
func (s *Session) Apply(patch any) error {
	return s.Update(func(c settings.Config) settings.Config {
		return settings.ApplyPatch(c, patch)
	})
}

// SetBlocks replaces the landing blocks.
func (s *Session) SetBlocks(list blocks.List) error {
	return s.Update(func(c settings.Config) settings.Config {
		return settings.SetBlocks(c, list)
	})
}

// Reorder moves the landing block at from to position to. Out-of-range
// indexes leave the blocks as they are.
func (s *Session) Reorder(from, to int) error {
	return s.Update(func(c settings.Config) settings.Config {
		return settings.SetBlocks(c, blocks.Reorder(c.LandingBlocks, from, to))
	})
}

// ToggleHidden hides or shows the landing block at i.
func (s *Session) ToggleHidden(i int) error {
	return s.Update(func(c settings.Config) settings.Config {
		return settings.SetBlocks(c, blocks.ToggleHidden(c.LandingBlocks, i))
	})
}

// SetTheme replaces the theme.
func (s *Session) SetTheme(t theme.Theme) error {
	return s.Update(func(c settings.Config) settings.Config {
		return settings.SetTheme(c, t)
	})
}

// ApplyPreset replaces the landing blocks with a named preset. Unknown ids
// leave the document untouched and report false.
func (s *Session) ApplyPreset(id string) (bool, error) {
	list, ok := blocks.ApplyPreset(id)
	if !ok {
		return false, nil
	}
	return true, s.SetBlocks(list)
}

func (s *Session) snapshot() (settings.Config, int64, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone(), s.version, s.saved
}

func (s *Session) markSaved(version int64, doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
	s.saved = doc
	s.err = nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
