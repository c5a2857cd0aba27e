// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package autosave persists storefront settings edits. Edits to one storefront
// within the debounce window coalesce into a single whole-document write, and
// every write is checked against the version the edit session was based on.
package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/ostore-go/internal/settings"
	"github.com/olegiv/ostore-go/internal/store"
)

// ErrStopped is returned when queueing on a stopped Saver.
var ErrStopped = errors.New("autosave: saver stopped")

// Store persists a settings document with a version check.
type Store interface {
	UpdateStorefrontConfig(ctx context.Context, arg store.UpdateStorefrontConfigParams) (int64, error)
}

// Config holds debounce configuration.
type Config struct {
	// Delay is the quiet period after the last edit before saving.
	Delay time.Duration
	// MaxWait bounds how long continuous edits can postpone a save.
	MaxWait time.Duration
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return Config{
		Delay:   350 * time.Millisecond,
		MaxWait: 5 * time.Second,
	}
}

// Result reports the outcome of one write.
type Result struct {
	Slug    string
	Version int64 // version after the write, 0 on failure
	Err     error
}

// pendingSave tracks a debounced session.
type pendingSave struct {
	session   *Session
	timer     *time.Timer
	firstSeen time.Time
}

// Saver coalesces queued sessions into debounced writes.
type Saver struct {
	store   Store
	config  Config
	logger  *slog.Logger
	onSave  func(Result)
	pending map[string]*pendingSave // slug -> pending save
	stopped bool
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures a Saver.
type Option func(*Saver)

// WithOnSave registers a callback invoked after every attempted write,
// including conflicts and failures. It runs on the saving goroutine.
func WithOnSave(fn func(Result)) Option {
	return func(s *Saver) { s.onSave = fn }
}

// New creates a Saver. Zero config fields use DefaultConfig values.
func New(st Store, config Config, logger *slog.Logger, opts ...Option) *Saver {
	def := DefaultConfig()
	if config.Delay <= 0 {
		config.Delay = def.Delay
	}
	if config.MaxWait <= 0 {
		config.MaxWait = def.MaxWait
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Saver{
		store:   st,
		config:  config,
		logger:  logger.With("category", "autosave"),
		pending: make(map[string]*pendingSave),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts an edit session for a storefront whose stored document raw is
// at version. The stored document is merged once; opening and saving without
// edits writes nothing.
func (s *Saver) Open(slug string, version int64, raw any) *Session {
	cfg := settings.Merge(raw)
	saved, _ := json.Marshal(cfg)
	return &Session{
		saver:   s,
		slug:    slug,
		cfg:     cfg,
		version: version,
		saved:   saved,
	}
}

// Queue schedules a save of the session's current document. A save already
// pending for the same storefront is replaced and its timer reset, unless the
// first queued edit is older than MaxWait, in which case it saves now.
func (s *Saver) Queue(sess *Session) error {
	key := sess.slug
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}

	if existing, ok := s.pending[key]; ok {
		existing.session = sess
		if now.Sub(existing.firstSeen) >= s.config.MaxWait {
			s.dispatchLocked(key)
			return nil
		}
		existing.timer.Reset(s.config.Delay)
		s.logger.Debug("autosave debounced", "slug", key, "wait_time", now.Sub(existing.firstSeen))
		return nil
	}

	p := &pendingSave{session: sess, firstSeen: now}
	p.timer = time.AfterFunc(s.config.Delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.pending[key] == p {
			s.dispatchLocked(key)
		}
	})
	s.pending[key] = p
	s.logger.Debug("autosave queued", "slug", key)
	return nil
}

// dispatchLocked saves a pending session in the background. Must be called
// with the lock held.
func (s *Saver) dispatchLocked(key string) {
	p, ok := s.pending[key]
	if !ok {
		return
	}
	p.timer.Stop()
	delete(s.pending, key)

	s.wg.Add(1)
	go func(sess *Session) {
		defer s.wg.Done()
		_ = s.save(s.ctx, sess)
	}(p.session)
}

// Flush saves every pending session now, on the calling goroutine.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.pending))
	for key, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, key)
		sessions = append(sessions, p.session)
	}
	s.mu.Unlock()

	var errs []error
	for _, sess := range sessions {
		if err := s.save(ctx, sess); err != nil {
			errs = append(errs, fmt.Errorf("saving %s: %w", sess.slug, err))
		}
	}
	return errors.Join(errs...)
}

// Stop flushes pending sessions, waits for in-flight saves and rejects
// further queueing.
func (s *Saver) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	err := s.Flush(s.ctx)
	s.wg.Wait()
	s.cancel()
	return err
}

// PendingCount returns the number of storefronts with a pending save.
func (s *Saver) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// save writes the session's document if it differs from the last saved one.
// Saves of one session never overlap.
func (s *Saver) save(ctx context.Context, sess *Session) error {
	sess.saveMu.Lock()
	defer sess.saveMu.Unlock()

	cfg, version, saved := sess.snapshot()
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if bytes.Equal(doc, saved) {
		s.logger.Debug("autosave skipped, document unchanged", "slug", sess.slug)
		return nil
	}

	newVersion, err := s.store.UpdateStorefrontConfig(ctx, store.UpdateStorefrontConfigParams{
		Slug:            sess.slug,
		Config:          string(doc),
		ExpectedVersion: version,
		UpdatedAt:       time.Now().UTC(),
	})
	switch {
	case errors.Is(err, store.ErrVersionConflict):
		s.logger.Warn("autosave conflict, storefront changed since the session opened",
			"slug", sess.slug, "version", version)
		sess.fail(err)
	case err != nil:
		s.logger.Error("autosave failed", "slug", sess.slug, "error", err)
		sess.fail(err)
	default:
		sess.markSaved(newVersion, doc)
		s.logger.Debug("autosave saved", "slug", sess.slug, "version", newVersion)
	}

	if s.onSave != nil {
		s.onSave(Result{Slug: sess.slug, Version: newVersion, Err: err})
	}
	return err
}
