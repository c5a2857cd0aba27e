// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog projects categories and products into render-ready items:
// layout shape, link targets, CTAs and which optional fields to surface.
package catalog

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Category is a read-only catalog category.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CoverImg string `json:"cover_img,omitempty"`
	Position int    `json:"position"`
}

// Product is a read-only catalog product. Empty strings mean "not set".
type Product struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Price              *float64   `json:"price,omitempty"`
	Caption            string     `json:"caption,omitempty"`
	ThumbURL           string     `json:"thumb_url,omitempty"`
	CategoryID         string     `json:"category_id,omitempty"`
	Visible            bool       `json:"visible"`
	Position           int        `json:"position"`
	CTALabel           string     `json:"cta_label,omitempty"`
	CTAURL             string     `json:"cta_url,omitempty"`
	InstagramPermalink string     `json:"instagram_permalink,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// HasCaption reports whether the product has caption text.
func (p Product) HasCaption() bool {
	return strings.TrimSpace(p.Caption) != ""
}

// CategoryFromRecord parses a loosely-typed storage record. Records without
// an id are rejected.
func CategoryFromRecord(rec map[string]any) (Category, bool) {
	id := recString(rec, "id")
	if id == "" {
		return Category{}, false
	}
	return Category{
		ID:       id,
		Name:     recString(rec, "name"),
		CoverImg: recString(rec, "cover_img"),
		Position: cast.ToInt(rec["position"]),
	}, true
}

// ProductFromRecord parses a loosely-typed storage record. Records without
// an id are rejected. A missing visible flag means visible.
func ProductFromRecord(rec map[string]any) (Product, bool) {
	id := recString(rec, "id")
	if id == "" {
		return Product{}, false
	}

	p := Product{
		ID:                 id,
		Title:              recString(rec, "title"),
		Caption:            recString(rec, "caption"),
		ThumbURL:           recString(rec, "thumb_url"),
		CategoryID:         recString(rec, "category_id"),
		Visible:            true,
		Position:           cast.ToInt(rec["position"]),
		CTALabel:           recString(rec, "cta_label"),
		CTAURL:             recString(rec, "cta_url"),
		InstagramPermalink: recString(rec, "instagram_permalink"),
	}

	if v, ok := rec["visible"]; ok && v != nil {
		if b, err := cast.ToBoolE(v); err == nil {
			p.Visible = b
		}
	}
	if v, ok := rec["price"]; ok && v != nil && recString(rec, "price") != "" {
		if f, err := cast.ToFloat64E(v); err == nil && f >= 0 {
			p.Price = &f
		}
	}
	if v, ok := rec["created_at"]; ok && v != nil && recString(rec, "created_at") != "" {
		if t, err := cast.ToTimeE(v); err == nil {
			t = t.UTC()
			p.CreatedAt = &t
		}
	}
	return p, true
}

func recString(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
