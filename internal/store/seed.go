// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ostore-go/internal/catalog"
	"github.com/olegiv/ostore-go/internal/util"
)

//go:embed seed/demo.json
var demoSeed []byte

// demoFixture mirrors seed/demo.json. Records stay loosely typed so they go
// through the same parsing as imported data.
type demoFixture struct {
	Name       string           `json:"name"`
	Config     json.RawMessage  `json:"config"`
	Categories []map[string]any `json:"categories"`
	Products   []map[string]any `json:"products"`
}

// SeedDemo creates a demo storefront under slug with a legacy-shaped settings
// document and a small catalog. It does nothing if the slug already exists.
func SeedDemo(ctx context.Context, db *sql.DB, slug string, logger *slog.Logger) (Storefront, error) {
	slug = util.StoreSlug(slug)
	if slug == "" {
		return Storefront{}, fmt.Errorf("invalid storefront slug")
	}

	queries := New(db)
	existing, err := queries.GetStorefrontBySlug(ctx, slug)
	if err == nil {
		logger.Info("demo storefront already exists", "slug", slug, "category", "system")
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Storefront{}, fmt.Errorf("checking storefront: %w", err)
	}

	var fx demoFixture
	if err := json.Unmarshal(demoSeed, &fx); err != nil {
		return Storefront{}, fmt.Errorf("parsing demo seed: %w", err)
	}

	var sf Storefront
	err = InTx(ctx, db, func(q *Queries) error {
		var err error
		sf, err = q.CreateStorefront(ctx, CreateStorefrontParams{
			Slug:      slug,
			Name:      fx.Name,
			Config:    string(fx.Config),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("creating storefront: %w", err)
		}

		for _, rec := range fx.Categories {
			c, ok := catalog.CategoryFromRecord(rec)
			if !ok {
				logger.Warn("skipping demo category without id", "record", rec)
				continue
			}
			if _, err := q.CreateCategory(ctx, sf.ID, c); err != nil {
				return fmt.Errorf("creating category %s: %w", c.ID, err)
			}
		}

		for _, rec := range fx.Products {
			p, ok := catalog.ProductFromRecord(rec)
			if !ok {
				logger.Warn("skipping demo product without id", "record", rec)
				continue
			}
			if _, err := q.CreateProduct(ctx, sf.ID, p); err != nil {
				return fmt.Errorf("creating product %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return Storefront{}, err
	}

	logger.Info("seeded demo storefront", "slug", slug,
		"categories", len(fx.Categories), "products", len(fx.Products), "category", "system")
	return sf, nil
}
