// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/settings"
)

// Link is a tap target.
type Link struct {
	URL      string `json:"url"`
	External bool   `json:"external,omitempty"`
}

// CTA is one call to action on a product.
type CTA struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// CTA kinds beyond the visibility-gated ones.
const CTAProduct = "product"

// PrimaryLink is where tapping the product goes. A product without caption
// text that has an Instagram post links straight to the post; every other
// product opens its product page.
func PrimaryLink(slug string, p Product, activeCategory string) Link {
	if !p.HasCaption() && p.InstagramPermalink != "" {
		return Link{URL: p.InstagramPermalink, External: true}
	}
	return Link{URL: ProductURL(slug, p.ID, activeCategory)}
}

// ProductCTAs lists every applicable CTA: WhatsApp when the merchant has a
// phone, Instagram when the product has a permalink, custom when both label
// and URL are set. visible may disable kinds; nil enables all.
func ProductCTAs(p Product, whatsapp string, visible func(kind string) bool) []CTA {
	if visible == nil {
		visible = func(string) bool { return true }
	}

	ctas := []CTA{}
	if visible(settings.CTAWhatsApp) {
		if u := WhatsAppURL(whatsapp, whatsAppText(p)); u != "" {
			ctas = append(ctas, CTA{Kind: settings.CTAWhatsApp, URL: u})
		}
	}
	if visible(settings.CTAInstagram) && p.InstagramPermalink != "" {
		ctas = append(ctas, CTA{Kind: settings.CTAInstagram, URL: p.InstagramPermalink})
	}
	if visible(settings.CTACustom) && p.CTALabel != "" && p.CTAURL != "" {
		ctas = append(ctas, CTA{Kind: settings.CTACustom, Label: p.CTALabel, URL: p.CTAURL})
	}
	return ctas
}

// BlockButton resolves a products block's card button. WhatsApp buttons are
// omitted when the merchant has no phone.
func BlockButton(kind, slug string, p Product, activeCategory, whatsapp string) *CTA {
	switch kind {
	case blocks.CTAWhatsApp:
		u := WhatsAppURL(whatsapp, whatsAppText(p))
		if u == "" {
			return nil
		}
		return &CTA{Kind: settings.CTAWhatsApp, URL: u}
	case blocks.CTANone:
		return nil
	default:
		return &CTA{Kind: CTAProduct, URL: ProductURL(slug, p.ID, activeCategory)}
	}
}

func whatsAppText(p Product) string {
	if p.Title == "" {
		return ""
	}
	return "Hi! I'm interested in " + p.Title
}

// NavItem is one entry of a category navigation bar.
type NavItem struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active,omitempty"`
	All    bool   `json:"all,omitempty"`
}

// CategoryNav builds navigation entries: an "all products" entry followed by
// one entry per category in position order.
func CategoryNav(slug string, categories []Category, active string) []NavItem {
	nav := []NavItem{{Name: "All", URL: StoreURL(slug), Active: active == "", All: true}}
	for _, c := range ProjectCategories(categories, CategoryOptions{Slug: slug, Active: active}).Items {
		nav = append(nav, NavItem{ID: c.ID, Name: c.Name, URL: c.URL, Active: c.Active})
	}
	return nav
}
