// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package settings merges a tenant's stored storefront document with the
// documented defaults and upgrades legacy fields into the current schema.
//
// A stored document is a JSON object, or a JSON string holding one. It has no
// schema version, so shape is inferred from which keys are present. Merge
// never fails: unparsable input merges as an empty object.
package settings

import (
	"encoding/json"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/theme"
	"github.com/olegiv/ostore-go/internal/util"
)

// Display modes.
const (
	DisplayGrid  = "grid"
	DisplayList  = "list"
	DisplayLinks = "links"
)

// Sort orders.
const (
	SortManual    = "manual"
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Landing pages (legacy layout selector).
const (
	LandingProducts   = "products"
	LandingCategories = "categories"
	LandingHeroOnly   = "hero-only"
)

// Top section modes and header styles.
const (
	TopHeader = "header"
	TopHero   = "hero"

	HeaderSmall       = "small"
	HeaderLargeSquare = "large-square"
	HeaderLargeCircle = "large-circle"
)

// CTA kinds used as cta_visibility keys.
const (
	CTAWhatsApp  = "whatsapp"
	CTAInstagram = "instagram"
	CTACustom    = "custom"
)

// TopSection controls the block above the landing blocks.
type TopSection struct {
	Mode        string `json:"mode"`
	HeaderStyle string `json:"header_style"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the section with its unmodeled keys.
func (t TopSection) MarshalJSON() ([]byte, error) {
	type alias TopSection
	return util.MarshalWithExtra(alias(t), t.Extra)
}

// Socials holds structured social links. WhatsApp is a phone number in digits.
type Socials struct {
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	Facebook  string `json:"facebook"`
	WhatsApp  string `json:"whatsapp"`

	// Extra holds networks this version does not model, such as youtube.
	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the socials with the networks this version does not model.
func (s Socials) MarshalJSON() ([]byte, error) {
	type alias Socials
	return util.MarshalWithExtra(alias(s), s.Extra)
}

// Config is the fully merged storefront document.
type Config struct {
	DisplayMode    string          `json:"display_mode"`
	ShowCategories bool            `json:"show_categories"`
	Sort           string          `json:"sort"`
	LandingPage    string          `json:"landing_page"`
	CTAVisibility  map[string]bool `json:"cta_visibility"`
	Theme          theme.Theme     `json:"theme"`
	LandingBlocks  blocks.List     `json:"landing_blocks"`
	TopSection     TopSection      `json:"top_section"`
	Socials        Socials         `json:"socials_config"`
	Currency       string          `json:"currency"`
	Locale         string          `json:"locale"`

	// Extra holds top-level keys this version does not model, verbatim.
	// Legacy fields live here too and are written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownKeys are the top-level keys modeled by Config.
var knownKeys = []string{
	"display_mode", "show_categories", "sort", "landing_page", "cta_visibility",
	"theme", "landing_blocks", "top_section", "socials_config", "currency", "locale",
}

// Default values.
const (
	DefaultCurrency = "USD"
	DefaultLocale   = "en"
)

// Defaults returns the default configuration. Each call returns fresh maps and slices.
func Defaults() Config {
	c := Config{
		DisplayMode:    DisplayGrid,
		ShowCategories: true,
		Sort:           SortManual,
		LandingPage:    LandingProducts,
		CTAVisibility:  defaultCTAVisibility(),
		Theme:          theme.Default(),
		TopSection:     TopSection{Mode: TopHeader, HeaderStyle: HeaderSmall},
		Currency:       DefaultCurrency,
		Locale:         DefaultLocale,
	}
	c.LandingBlocks = deriveBlocks(c.LandingPage, c.DisplayMode, c.ShowCategories)
	return c
}

func defaultCTAVisibility() map[string]bool {
	return map[string]bool{CTAWhatsApp: true, CTAInstagram: true, CTACustom: true}
}

// CTAVisible reports whether a CTA kind is enabled. Kinds missing from the
// map are enabled.
func (c Config) CTAVisible(kind string) bool {
	v, ok := c.CTAVisibility[kind]
	return !ok || v
}

// MarshalJSON writes modeled fields and Extra as one flat object with sorted keys.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	return util.MarshalWithExtra(alias(c), c.Extra)
}

// UnmarshalJSON merges the document with defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Merge(json.RawMessage(data))
	return nil
}

// Equal reports whether two configurations encode to the same document.
func Equal(a, b Config) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ja) == string(jb)
}
