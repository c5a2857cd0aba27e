// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storefront

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/olegiv/ostore-go/internal/autosave"
	"github.com/olegiv/ostore-go/internal/cache"
	"github.com/olegiv/ostore-go/internal/settings"
	"github.com/olegiv/ostore-go/internal/store"
	"github.com/olegiv/ostore-go/internal/theme"
)

// Service renders storefronts from the database, caching views per
// storefront version and active category.
type Service struct {
	queries *store.Queries
	views   *cache.TypedCache[View]
	themes  *theme.Resolver
	logger  *slog.Logger
}

// NewService creates a Service. A nil cache disables view caching.
func NewService(db *sql.DB, c cache.Cacher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		queries: store.New(db),
		themes:  theme.NewResolver(theme.DefaultResolverSize, logger),
		logger:  logger,
	}
	if c != nil {
		s.views = cache.NewTypedCache[View](c, 0)
	}
	return s
}

// viewKey includes the document version, so a saved document is never
// served from a stale entry.
func viewKey(slug string, version int64, activeCategory string) string {
	return cache.Key("view", slug, strconv.FormatInt(version, 10), activeCategory)
}

// Render returns the view of the storefront at slug with activeCategory
// selected ("" for none). A document that cannot be parsed renders with
// defaults and is logged.
func (s *Service) Render(ctx context.Context, slug, activeCategory string) (View, error) {
	sf, err := s.queries.GetStorefrontBySlug(ctx, slug)
	if err != nil {
		return View{}, fmt.Errorf("loading storefront %s: %w", slug, err)
	}

	key := viewKey(sf.Slug, sf.Version, activeCategory)
	if s.views != nil {
		if v, ok := s.views.Get(ctx, key); ok {
			return *v, nil
		}
	}

	cfg, ok := settings.Parse(sf.Config)
	if !ok {
		s.logger.Warn("storefront config is not a JSON object, using defaults",
			"slug", sf.Slug, "version", sf.Version, "category", "config")
	}

	categories, err := s.queries.ListCategories(ctx, sf.ID)
	if err != nil {
		return View{}, fmt.Errorf("listing categories: %w", err)
	}
	products, err := s.queries.ListProducts(ctx, sf.ID)
	if err != nil {
		return View{}, fmt.Errorf("listing products: %w", err)
	}

	resolved := s.themes.Resolve(cfg.Theme)
	v := Build(Input{
		Slug:           sf.Slug,
		Name:           sf.Name,
		Version:        sf.Version,
		Config:         cfg,
		Categories:     categories,
		Products:       products,
		ActiveCategory: activeCategory,
		Theme:          &resolved,
	})

	if s.views != nil {
		if err := s.views.Set(ctx, key, &v); err != nil {
			s.logger.Warn("caching storefront view failed", "slug", sf.Slug, "error", err, "category", "cache")
		}
	}
	return v, nil
}

// Config returns the merged settings document and its version.
func (s *Service) Config(ctx context.Context, slug string) (settings.Config, int64, error) {
	sf, err := s.queries.GetStorefrontBySlug(ctx, slug)
	if err != nil {
		return settings.Config{}, 0, fmt.Errorf("loading storefront %s: %w", slug, err)
	}
	return settings.Merge(sf.Config), sf.Version, nil
}

// Edit opens an autosave session on the stored document.
func (s *Service) Edit(ctx context.Context, saver *autosave.Saver, slug string) (*autosave.Session, error) {
	sf, err := s.queries.GetStorefrontBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading storefront %s: %w", slug, err)
	}
	return saver.Open(sf.Slug, sf.Version, sf.Config), nil
}

// Invalidate drops every cached view of the storefront.
func (s *Service) Invalidate(ctx context.Context, slug string) error {
	if s.views == nil {
		return nil
	}
	if err := s.views.DeletePrefix(ctx, cache.Key("view", slug)+":"); err != nil {
		return fmt.Errorf("invalidating views of %s: %w", slug, err)
	}
	return nil
}

// ThemeStats reports the theme resolver's hit and miss counts.
func (s *Service) ThemeStats() (hits, misses int64) {
	return s.themes.Stats()
}
