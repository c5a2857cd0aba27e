// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storefront assembles the public view model of a storefront from its
// merged settings document and catalog snapshot.
package storefront

import (
	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/catalog"
	"github.com/olegiv/ostore-go/internal/settings"
	"github.com/olegiv/ostore-go/internal/theme"
)

// Input is everything Build needs. Config must already be merged.
type Input struct {
	Slug           string
	Name           string
	Version        int64
	Config         settings.Config
	Categories     []catalog.Category
	Products       []catalog.Product
	ActiveCategory string

	// Theme, when set, is used instead of resolving Config.Theme.
	Theme *theme.Resolved
}

// View is the render-ready storefront.
type View struct {
	Slug           string              `json:"slug"`
	Name           string              `json:"name"`
	Version        int64               `json:"version"`
	ActiveCategory string              `json:"active_category,omitempty"`
	Theme          theme.Resolved      `json:"theme"`
	CSSVariables   map[string]string   `json:"css_variables"`
	TopSection     settings.TopSection `json:"top_section"`
	Blocks         []BlockView         `json:"blocks"`
}

// BlockView is one visible landing block. Exactly one of the payload fields
// is set, matching Kind.
type BlockView struct {
	Kind  blocks.Kind `json:"type"`
	Index int         `json:"index"` // position in landing_blocks

	Hero       *HeroView             `json:"hero,omitempty"`
	Categories *catalog.CategoryList `json:"categories,omitempty"`
	Products   *ProductsView         `json:"products,omitempty"`
	Text       *TextView             `json:"text,omitempty"`
}

// SocialLink is a profile link shown in the hero.
type SocialLink struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// HeroView is a resolved hero block.
type HeroView struct {
	Name       string        `json:"name"`
	ShowAvatar bool          `json:"show_avatar"`
	Dense      bool          `json:"dense"`
	Socials    []SocialLink  `json:"socials,omitempty"`
	CTAs       []catalog.CTA `json:"ctas,omitempty"`
}

// ProductsView is a resolved products block.
type ProductsView struct {
	catalog.ProductList
	Nav      []catalog.NavItem `json:"nav,omitempty"`
	NavStyle string            `json:"nav_style,omitempty"`
}

// TextView is a text block rendered to sanitized HTML.
type TextView struct {
	HTML  string `json:"html"`
	Align string `json:"align"`
}

// Build projects the visible landing blocks against the catalog. It is pure
// and never fails: unknown block types are skipped and missing categories
// yield empty lists.
func Build(in Input) View {
	cfg := in.Config
	resolved := theme.Resolve(cfg.Theme)
	if in.Theme != nil {
		resolved = *in.Theme
	}

	v := View{
		Slug:           in.Slug,
		Name:           in.Name,
		Version:        in.Version,
		ActiveCategory: in.ActiveCategory,
		Theme:          resolved,
		CSSVariables:   resolved.CSSVariables(),
		TopSection:     cfg.TopSection,
		Blocks:         []BlockView{},
	}

	for i, b := range cfg.LandingBlocks {
		if b.IsHidden() {
			continue
		}
		bv := BlockView{Kind: b.Kind(), Index: i}
		switch blk := b.(type) {
		case blocks.Hero:
			bv.Hero = buildHero(in, blk)
		case blocks.CategoriesWall:
			list := catalog.ProjectCategories(in.Categories, catalog.CategoryOptions{
				Slug:    in.Slug,
				View:    blk.View,
				Columns: blk.Columns,
				Limit:   deref(blk.Limit),
				Active:  in.ActiveCategory,
			})
			bv.Categories = &list
		case blocks.Products:
			bv.Products = buildProducts(in, blk)
		case blocks.Text:
			bv.Text = &TextView{HTML: RenderMarkdown(blk.ContentMD), Align: blk.Align}
		default:
			continue
		}
		v.Blocks = append(v.Blocks, bv)
	}
	return v
}

func buildHero(in Input, b blocks.Hero) *HeroView {
	cfg := in.Config
	h := &HeroView{Name: in.Name, ShowAvatar: b.ShowAvatar, Dense: b.Dense}

	if b.ShowSocials {
		for _, s := range []SocialLink{
			{Kind: "instagram", URL: cfg.Socials.Instagram},
			{Kind: "tiktok", URL: cfg.Socials.TikTok},
			{Kind: "facebook", URL: cfg.Socials.Facebook},
		} {
			if s.URL != "" {
				h.Socials = append(h.Socials, s)
			}
		}
	}

	if b.ShowCTAs {
		if cfg.CTAVisible(settings.CTAWhatsApp) {
			if u := catalog.WhatsAppURL(cfg.Socials.WhatsApp, ""); u != "" {
				h.CTAs = append(h.CTAs, catalog.CTA{Kind: settings.CTAWhatsApp, URL: u})
			}
		}
		if cfg.CTAVisible(settings.CTAInstagram) && cfg.Socials.Instagram != "" {
			h.CTAs = append(h.CTAs, catalog.CTA{Kind: settings.CTAInstagram, URL: cfg.Socials.Instagram})
		}
	}
	return h
}

func buildProducts(in Input, b blocks.Products) *ProductsView {
	cfg := in.Config
	categories := in.Categories
	if categories == nil {
		categories = []catalog.Category{}
	}

	pv := &ProductsView{
		ProductList: catalog.ProjectProducts(in.Products, catalog.ProductOptions{
			Slug:           in.Slug,
			View:           b.View,
			SourceCategory: b.Source.CategoryID,
			ActiveCategory: in.ActiveCategory,
			Categories:     categories,
			Sort:           cfg.Sort,
			Limit:          deref(b.Limit),
			ShowPrice:      b.ShowPrice,
			ShowCaption:    b.ShowCaption,
			CTA:            b.CTA,
			WhatsApp:       cfg.Socials.WhatsApp,
			CTAVisible:     cfg.CTAVisible,
			Currency:       cfg.Currency,
			Locale:         cfg.Locale,
		}),
	}

	// A block pinned to one category has nothing to navigate between.
	if b.ShowCategoryNav && b.Source.IsAll() && len(in.Categories) > 0 {
		pv.Nav = catalog.CategoryNav(in.Slug, in.Categories, in.ActiveCategory)
		pv.NavStyle = b.CategoryNavStyle
	}
	return pv
}

// Kinds returns the block kinds of v in render order.
func (v View) Kinds() []blocks.Kind {
	kinds := make([]blocks.Kind, 0, len(v.Blocks))
	for _, b := range v.Blocks {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
