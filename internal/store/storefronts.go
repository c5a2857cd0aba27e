// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Storefront is a row of the storefronts table. Config holds the raw
// settings document exactly as it was saved.
type Storefront struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Config    string    `json:"config"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const storefrontColumns = `id, slug, name, config, version, created_at, updated_at`

func scanStorefront(row interface{ Scan(...any) error }) (Storefront, error) {
	var s Storefront
	err := row.Scan(&s.ID, &s.Slug, &s.Name, &s.Config, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const createStorefront = `-- name: CreateStorefront :execlastid
INSERT INTO storefronts (slug, name, config, version, created_at, updated_at)
VALUES (?, ?, ?, 1, ?, ?)`

// CreateStorefrontParams are the inputs of CreateStorefront.
type CreateStorefrontParams struct {
	Slug      string
	Name      string
	Config    string
	CreatedAt time.Time
}

// CreateStorefront inserts a storefront at version 1.
func (q *Queries) CreateStorefront(ctx context.Context, arg CreateStorefrontParams) (Storefront, error) {
	if arg.Config == "" {
		arg.Config = "{}"
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}
	res, err := q.db.ExecContext(ctx, createStorefront, arg.Slug, arg.Name, arg.Config, arg.CreatedAt, arg.CreatedAt)
	if err != nil {
		return Storefront{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Storefront{}, err
	}
	return Storefront{
		ID:        id,
		Slug:      arg.Slug,
		Name:      arg.Name,
		Config:    arg.Config,
		Version:   1,
		CreatedAt: arg.CreatedAt,
		UpdatedAt: arg.CreatedAt,
	}, nil
}

const getStorefrontBySlug = `-- name: GetStorefrontBySlug :one
SELECT ` + storefrontColumns + ` FROM storefronts WHERE slug = ?`

// GetStorefrontBySlug returns ErrNotFound when no storefront has slug.
func (q *Queries) GetStorefrontBySlug(ctx context.Context, slug string) (Storefront, error) {
	s, err := scanStorefront(q.db.QueryRowContext(ctx, getStorefrontBySlug, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return Storefront{}, ErrNotFound
	}
	return s, err
}

const listStorefronts = `-- name: ListStorefronts :many
SELECT ` + storefrontColumns + ` FROM storefronts ORDER BY slug`

// ListStorefronts returns all storefronts ordered by slug.
func (q *Queries) ListStorefronts(ctx context.Context) ([]Storefront, error) {
	rows, err := q.db.QueryContext(ctx, listStorefronts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Storefront
	for rows.Next() {
		s, err := scanStorefront(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const updateStorefrontConfig = `-- name: UpdateStorefrontConfig :execrows
UPDATE storefronts SET config = ?, version = version + 1, updated_at = ?
WHERE slug = ? AND version = ?`

// UpdateStorefrontConfigParams are the inputs of UpdateStorefrontConfig.
type UpdateStorefrontConfigParams struct {
	Slug            string
	Config          string
	ExpectedVersion int64
	UpdatedAt       time.Time
}

// UpdateStorefrontConfig replaces the settings document if the stored version
// still equals ExpectedVersion and returns the new version. A stale version
// yields ErrVersionConflict and an unknown slug ErrNotFound.
func (q *Queries) UpdateStorefrontConfig(ctx context.Context, arg UpdateStorefrontConfigParams) (int64, error) {
	if arg.UpdatedAt.IsZero() {
		arg.UpdatedAt = time.Now().UTC()
	}
	res, err := q.db.ExecContext(ctx, updateStorefrontConfig, arg.Config, arg.UpdatedAt, arg.Slug, arg.ExpectedVersion)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		if _, err := q.GetStorefrontBySlug(ctx, arg.Slug); err != nil {
			return 0, err
		}
		return 0, ErrVersionConflict
	}
	return arg.ExpectedVersion + 1, nil
}

const deleteStorefront = `-- name: DeleteStorefront :exec
DELETE FROM storefronts WHERE slug = ?`

// DeleteStorefront removes a storefront and, by cascade, its catalog.
func (q *Queries) DeleteStorefront(ctx context.Context, slug string) error {
	_, err := q.db.ExecContext(ctx, deleteStorefront, slug)
	return err
}
