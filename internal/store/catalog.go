// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ostore-go/internal/catalog"
	"github.com/olegiv/ostore-go/internal/util"
)

const createCategory = `-- name: CreateCategory :exec
INSERT INTO categories (id, storefront_id, name, cover_img, position, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

// CreateCategory inserts c under the storefront. An empty ID is replaced by
// a new UUID; the stored category is returned.
func (q *Queries) CreateCategory(ctx context.Context, storefrontID int64, c catalog.Category) (catalog.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := q.db.ExecContext(ctx, createCategory,
		c.ID, storefrontID, c.Name, util.NullStringFromValue(c.CoverImg), c.Position, time.Now().UTC())
	if err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}

const listCategories = `-- name: ListCategories :many
SELECT id, name, cover_img, position FROM categories
WHERE storefront_id = ?
ORDER BY position, name`

// ListCategories returns the storefront's categories ordered by position.
func (q *Queries) ListCategories(ctx context.Context, storefrontID int64) ([]catalog.Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories, storefrontID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []catalog.Category
	for rows.Next() {
		var (
			c     catalog.Category
			cover sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &cover, &c.Position); err != nil {
			return nil, err
		}
		c.CoverImg = cover.String
		items = append(items, c)
	}
	return items, rows.Err()
}

const deleteCategory = `-- name: DeleteCategory :exec
DELETE FROM categories WHERE id = ?`

// DeleteCategory removes a category. Its products stay, uncategorized.
func (q *Queries) DeleteCategory(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteCategory, id)
	return err
}

const createProduct = `-- name: CreateProduct :exec
INSERT INTO products (
    id, storefront_id, category_id, title, price, caption, thumb_url,
    visible, position, cta_label, cta_url, instagram_permalink, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateProduct inserts p under the storefront. An empty ID is replaced by a
// new UUID and a nil CreatedAt by the current time.
func (q *Queries) CreateProduct(ctx context.Context, storefrontID int64, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == nil {
		now := time.Now().UTC()
		p.CreatedAt = &now
	}
	_, err := q.db.ExecContext(ctx, createProduct,
		p.ID,
		storefrontID,
		util.NullStringFromValue(p.CategoryID),
		p.Title,
		util.NullFloat64FromPtr(p.Price),
		util.NullStringFromValue(p.Caption),
		util.NullStringFromValue(p.ThumbURL),
		p.Visible,
		p.Position,
		util.NullStringFromValue(p.CTALabel),
		util.NullStringFromValue(p.CTAURL),
		util.NullStringFromValue(p.InstagramPermalink),
		*p.CreatedAt,
	)
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

const listProducts = `-- name: ListProducts :many
SELECT id, category_id, title, price, caption, thumb_url, visible, position,
       cta_label, cta_url, instagram_permalink, created_at
FROM products
WHERE storefront_id = ?
ORDER BY position, created_at`

// ListProducts returns every product of the storefront, hidden ones included.
func (q *Queries) ListProducts(ctx context.Context, storefrontID int64) ([]catalog.Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts, storefrontID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []catalog.Product
	for rows.Next() {
		var (
			p                             catalog.Product
			categoryID, caption, thumbURL sql.NullString
			ctaLabel, ctaURL, permalink   sql.NullString
			price                         sql.NullFloat64
			createdAt                     time.Time
		)
		if err := rows.Scan(
			&p.ID, &categoryID, &p.Title, &price, &caption, &thumbURL, &p.Visible, &p.Position,
			&ctaLabel, &ctaURL, &permalink, &createdAt,
		); err != nil {
			return nil, err
		}
		p.CategoryID = categoryID.String
		p.Price = util.PtrFromNullFloat64(price)
		p.Caption = caption.String
		p.ThumbURL = thumbURL.String
		p.CTALabel = ctaLabel.String
		p.CTAURL = ctaURL.String
		p.InstagramPermalink = permalink.String
		p.CreatedAt = &createdAt
		items = append(items, p)
	}
	return items, rows.Err()
}

const setProductVisible = `-- name: SetProductVisible :exec
UPDATE products SET visible = ? WHERE id = ?`

// SetProductVisible shows or hides a product.
func (q *Queries) SetProductVisible(ctx context.Context, id string, visible bool) error {
	_, err := q.db.ExecContext(ctx, setProductVisible, visible, id)
	return err
}
