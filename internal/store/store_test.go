// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/ostore-go/internal/catalog"
	"github.com/olegiv/ostore-go/internal/settings"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "ostore-store-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	return db, func() { _ = db.Close() }
}

func newTestStorefront(t *testing.T, q *Queries, slug string) Storefront {
	t.Helper()
	sf, err := q.CreateStorefront(context.Background(), CreateStorefrontParams{
		Slug:      slug,
		Name:      "Test " + slug,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateStorefront: %v", err)
	}
	return sf
}

func TestMigrate_Idempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate: %v", err)
	}
}

func TestStorefront_CreateAndGet(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	sf := newTestStorefront(t, q, "luna")
	if sf.Version != 1 {
		t.Errorf("Version = %d, want 1", sf.Version)
	}
	if sf.Config != "{}" {
		t.Errorf("Config = %q, want {}", sf.Config)
	}

	got, err := q.GetStorefrontBySlug(ctx, "luna")
	if err != nil {
		t.Fatalf("GetStorefrontBySlug: %v", err)
	}
	if got.ID != sf.ID || got.Name != "Test luna" {
		t.Errorf("got %+v, want %+v", got, sf)
	}

	if _, err := q.GetStorefrontBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetStorefrontBySlug(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStorefront_DuplicateSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)

	newTestStorefront(t, q, "luna")
	_, err := q.CreateStorefront(context.Background(), CreateStorefrontParams{Slug: "luna", Name: "again"})
	if err == nil {
		t.Error("expected unique constraint error")
	}
}

func TestUpdateStorefrontConfig(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	newTestStorefront(t, q, "luna")

	v, err := q.UpdateStorefrontConfig(ctx, UpdateStorefrontConfigParams{
		Slug: "luna", Config: `{"sort":"newest"}`, ExpectedVersion: 1,
	})
	if err != nil {
		t.Fatalf("UpdateStorefrontConfig: %v", err)
	}
	if v != 2 {
		t.Errorf("version = %d, want 2", v)
	}

	// A writer still holding version 1 loses.
	_, err = q.UpdateStorefrontConfig(ctx, UpdateStorefrontConfigParams{
		Slug: "luna", Config: `{"sort":"price_asc"}`, ExpectedVersion: 1,
	})
	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale update error = %v, want ErrVersionConflict", err)
	}

	got, _ := q.GetStorefrontBySlug(ctx, "luna")
	if got.Config != `{"sort":"newest"}` || got.Version != 2 {
		t.Errorf("stored = (%q, %d), want newest at version 2", got.Config, got.Version)
	}

	_, err = q.UpdateStorefrontConfig(ctx, UpdateStorefrontConfigParams{Slug: "missing", ExpectedVersion: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing slug error = %v, want ErrNotFound", err)
	}
}

func TestListStorefronts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)

	newTestStorefront(t, q, "zeta")
	newTestStorefront(t, q, "alpha")

	list, err := q.ListStorefronts(context.Background())
	if err != nil {
		t.Fatalf("ListStorefronts: %v", err)
	}
	if len(list) != 2 || list[0].Slug != "alpha" || list[1].Slug != "zeta" {
		t.Errorf("ListStorefronts = %+v, want alpha, zeta", list)
	}
}

func TestCatalogQueries(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	sf := newTestStorefront(t, q, "luna")

	dresses, err := q.CreateCategory(ctx, sf.ID, catalog.Category{Name: "Dresses", Position: 2})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if dresses.ID == "" {
		t.Error("CreateCategory should assign an id")
	}
	if _, err := q.CreateCategory(ctx, sf.ID, catalog.Category{ID: "c-bags", Name: "Bags", Position: 1, CoverImg: "bags.jpg"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	cats, err := q.ListCategories(ctx, sf.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].ID != "c-bags" || cats[0].CoverImg != "bags.jpg" || cats[1].CoverImg != "" {
		t.Errorf("ListCategories = %+v", cats)
	}

	price := 19.5
	if _, err := q.CreateProduct(ctx, sf.ID, catalog.Product{
		ID: "p-1", Title: "Dress", Price: &price, CategoryID: dresses.ID, Visible: true, Position: 1,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := q.CreateProduct(ctx, sf.ID, catalog.Product{Title: "Gift card", Position: 2}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	products, err := q.ListProducts(ctx, sf.ID)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("ListProducts returned %d products, want 2", len(products))
	}
	p := products[0]
	if p.ID != "p-1" || p.Price == nil || *p.Price != 19.5 || p.CategoryID != dresses.ID || !p.Visible {
		t.Errorf("first product = %+v", p)
	}
	if products[1].Price != nil || products[1].Visible || products[1].CreatedAt == nil {
		t.Errorf("second product = %+v, want nil price, hidden, created_at set", products[1])
	}

	if err := q.SetProductVisible(ctx, "p-1", false); err != nil {
		t.Fatalf("SetProductVisible: %v", err)
	}

	// Deleting a category leaves its products uncategorized.
	if err := q.DeleteCategory(ctx, dresses.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	products, _ = q.ListProducts(ctx, sf.ID)
	if products[0].CategoryID != "" || products[0].Visible {
		t.Errorf("after delete = %+v, want uncategorized and hidden", products[0])
	}

	// Deleting the storefront cascades.
	if err := q.DeleteStorefront(ctx, "luna"); err != nil {
		t.Fatalf("DeleteStorefront: %v", err)
	}
	products, _ = q.ListProducts(ctx, sf.ID)
	if len(products) != 0 {
		t.Errorf("products after storefront delete = %d, want 0", len(products))
	}
}

func TestInTx_RollsBack(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()

	boom := errors.New("boom")
	err := InTx(ctx, db, func(q *Queries) error {
		newTestStorefront(t, q, "luna")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx error = %v, want boom", err)
	}
	if _, err := New(db).GetStorefrontBySlug(ctx, "luna"); !errors.Is(err, ErrNotFound) {
		t.Errorf("storefront should not exist after rollback, got %v", err)
	}
}

func TestEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, msg := range []string{"first", "second"} {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Level: "warning", Category: "config", Message: msg, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	events, err := q.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 || events[0].Message != "second" || events[1].Metadata != "{}" {
		t.Errorf("ListEvents = %+v", events)
	}

	n, err := q.CountEvents(ctx)
	if err != nil || n != 2 {
		t.Errorf("CountEvents = %d, %v; want 2", n, err)
	}
}

func TestSeedDemo(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sf, err := SeedDemo(ctx, db, "Luna Atelier", logger)
	if err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}
	if sf.Slug != "luna-atelier" {
		t.Errorf("Slug = %q, want luna-atelier", sf.Slug)
	}

	q := New(db)
	cats, _ := q.ListCategories(ctx, sf.ID)
	if len(cats) != 3 {
		t.Errorf("categories = %d, want 3", len(cats))
	}
	products, _ := q.ListProducts(ctx, sf.ID)
	if len(products) != 6 {
		t.Fatalf("products = %d, want 6", len(products))
	}

	var tote catalog.Product
	for _, p := range products {
		if p.ID == "p-tote" {
			tote = p
		}
	}
	if tote.Visible || tote.Price == nil || *tote.Price != 42 {
		t.Errorf("tote = %+v, want hidden with price 42", tote)
	}

	// The seeded document is legacy-shaped and upgrades through Merge.
	cfg := settings.Merge(sf.Config)
	if cfg.Socials.Instagram != "https://instagram.com/luna.atelier" {
		t.Errorf("Instagram = %q", cfg.Socials.Instagram)
	}
	if cfg.Sort != settings.SortNewest || cfg.LandingPage != settings.LandingCategories {
		t.Errorf("cfg = %+v", cfg)
	}

	again, err := SeedDemo(ctx, db, "luna-atelier", logger)
	if err != nil {
		t.Fatalf("second SeedDemo: %v", err)
	}
	if again.ID != sf.ID {
		t.Errorf("second SeedDemo created a new storefront")
	}
}

func TestSeedDemo_InvalidSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if _, err := SeedDemo(context.Background(), db, "!!!", slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("expected error for empty slug")
	}
}
