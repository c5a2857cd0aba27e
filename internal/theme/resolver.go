// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultResolverSize is the number of distinct theme documents kept by a Resolver.
const DefaultResolverSize = 1024

// Resolver memoizes Resolve for display surfaces that resolve the same tenant
// theme on every request. It is safe for concurrent use.
type Resolver struct {
	resolved map[string]Resolved
	maxSize  int
	mu       sync.RWMutex
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewResolver creates a memoizing resolver holding at most maxSize entries.
// A non-positive maxSize uses DefaultResolverSize.
func NewResolver(maxSize int, logger *slog.Logger) *Resolver {
	if maxSize <= 0 {
		maxSize = DefaultResolverSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		resolved: make(map[string]Resolved),
		maxSize:  maxSize,
		logger:   logger,
	}
}

// Resolve returns the memoized tokens for t, computing them on first use.
func (r *Resolver) Resolve(t Theme) Resolved {
	key, err := json.Marshal(t)
	if err != nil {
		return Resolve(t)
	}

	r.mu.RLock()
	if res, ok := r.resolved[string(key)]; ok {
		r.mu.RUnlock()
		r.hits.Add(1)
		return res
	}
	r.mu.RUnlock()

	res := Resolve(t)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses.Add(1)
	if len(r.resolved) >= r.maxSize {
		// Tenants rarely change themes; starting over is cheaper than tracking recency.
		r.logger.Debug("theme resolver full, resetting", "entries", len(r.resolved))
		r.resolved = make(map[string]Resolved)
	}
	r.resolved[string(key)] = res
	r.logger.Debug("resolved theme", "variant", res.Variant, "preset", res.Preset)
	return res
}

// Len returns the number of memoized themes.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resolved)
}

// Stats returns the hit and miss counters.
func (r *Resolver) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}

// Reset drops all memoized themes.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = make(map[string]Resolved)
	r.hits.Store(0)
	r.misses.Store(0)
}
