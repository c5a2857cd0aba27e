// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/theme"
	"github.com/olegiv/ostore-go/internal/util"
)

// Merge fills every field of a stored document from Defaults, upgrades legacy
// fields and keeps unknown keys. Merge(Merge(x)) encodes to the same bytes as Merge(x).
func Merge(raw any) Config {
	c, _ := Parse(raw)
	return c
}

// Parse is Merge that also reports whether raw held a JSON object.
// A false result still carries a usable default configuration.
func Parse(raw any) (Config, bool) {
	obj, ok := util.JSONObject(util.RawDocument(raw))
	if !ok {
		obj = map[string]json.RawMessage{}
	}
	return merge(obj), ok
}

func merge(obj map[string]json.RawMessage) Config {
	d := Defaults()

	c := Config{
		DisplayMode:    enum(obj["display_mode"], d.DisplayMode, DisplayGrid, DisplayList, DisplayLinks),
		ShowCategories: util.JSONBoolOr(obj["show_categories"], d.ShowCategories),
		Sort:           enum(obj["sort"], d.Sort, SortManual, SortNewest, SortPriceAsc, SortPriceDesc),
		LandingPage:    enum(obj["landing_page"], d.LandingPage, LandingProducts, LandingCategories, LandingHeroOnly),
		CTAVisibility:  mergeCTAVisibility(obj["cta_visibility"]),
		Theme:          parseTheme(obj["theme"]),
		TopSection:     parseTopSection(obj["top_section"], d.TopSection),
		Socials:        parseSocials(obj["socials_config"]),
		Currency:       parseCurrency(obj["currency"]),
		Locale:         parseLocale(obj["locale"]),
		Extra:          util.UnknownKeys(obj, knownKeys...),
	}

	// Some clients stored the block list as a JSON-encoded string.
	if list := util.RawDocument(obj["landing_blocks"]); isArray(list) {
		c.LandingBlocks = blocks.Normalize(list)
	} else {
		c.LandingBlocks = deriveBlocks(c.LandingPage, c.DisplayMode, c.ShowCategories)
	}

	upgradeSocials(&c.Socials, obj)
	return c
}

func enum(raw json.RawMessage, def string, allowed ...string) string {
	s, _ := util.JSONString(raw)
	return util.Coalesce(util.OneOf(strings.ToLower(s), allowed...), def)
}

// mergeCTAVisibility overlays stored flags on the defaults. Unknown CTA kinds
// are kept so newer clients can add their own.
func mergeCTAVisibility(raw json.RawMessage) map[string]bool {
	out := defaultCTAVisibility()
	obj, ok := util.JSONObject(raw)
	if !ok {
		return out
	}
	for k, v := range obj {
		if b, ok := util.JSONBool(v); ok {
			out[k] = b
		}
	}
	return out
}

func parseTheme(raw json.RawMessage) theme.Theme {
	obj, ok := util.JSONObject(raw)
	if !ok {
		return theme.Default()
	}

	t := theme.Theme{
		Variant: theme.Variant(str(obj["variant"])),
		Extra:   util.UnknownKeys(obj, "variant", "palette", "background", "buttons"),
	}

	if p, ok := util.JSONObject(obj["palette"]); ok {
		t.Palette = theme.Palette{
			Preset:  str(p["preset"]),
			Primary: strPtr(p["primary"]),
			Accent:  strPtr(p["accent"]),
			Extra:   util.UnknownKeys(p, "preset", "primary", "accent"),
		}
	}
	if bg, ok := util.JSONObject(obj["background"]); ok {
		t.Background = theme.Background{
			Type:  str(bg["type"]),
			Value: strPtr(bg["value"]),
			Extra: util.UnknownKeys(bg, "type", "value"),
		}
	}
	if b, ok := util.JSONObject(obj["buttons"]); ok {
		t.Buttons = &theme.ButtonStyle{
			Style:  str(b["style"]),
			Shadow: str(b["shadow"]),
			Tone:   str(b["tone"]),
		}
		t.ButtonsExtra = util.UnknownKeys(b, "style", "shadow", "tone")
	}
	return theme.Normalize(t)
}

func parseTopSection(raw json.RawMessage, def TopSection) TopSection {
	obj, _ := util.JSONObject(raw)
	return TopSection{
		Mode:        enum(obj["mode"], def.Mode, TopHeader, TopHero),
		HeaderStyle: enum(obj["header_style"], def.HeaderStyle, HeaderSmall, HeaderLargeSquare, HeaderLargeCircle),
		Extra:       util.UnknownKeys(obj, "mode", "header_style"),
	}
}

func parseSocials(raw json.RawMessage) Socials {
	obj, _ := util.JSONObject(raw)
	return Socials{
		Instagram: str(obj["instagram"]),
		TikTok:    str(obj["tiktok"]),
		Facebook:  str(obj["facebook"]),
		WhatsApp:  digits(str(obj["whatsapp"])),
		Extra:     util.UnknownKeys(obj, "instagram", "tiktok", "facebook", "whatsapp"),
	}
}

func parseCurrency(raw json.RawMessage) string {
	s := str(raw)
	if s == "" {
		return DefaultCurrency
	}
	unit, err := currency.ParseISO(strings.ToUpper(s))
	if err != nil {
		return DefaultCurrency
	}
	return unit.String()
}

func parseLocale(raw json.RawMessage) string {
	s := str(raw)
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	return tag.String()
}

// deriveBlocks builds landing blocks for documents written before blocks
// existed, from the legacy landing_page selector. show_categories used to
// toggle the category chips above the product grid.
func deriveBlocks(landing, display string, showCategories bool) blocks.List {
	hero := blocks.NewHero()

	wall := blocks.NewCategoriesWall()
	wall.View = display

	products := blocks.NewProducts()
	switch display {
	case DisplayList:
		products.View = blocks.ViewList
	case DisplayLinks:
		products.View = blocks.ViewLinks
	}
	products.ShowCategoryNav = showCategories

	switch landing {
	case LandingHeroOnly:
		return blocks.List{hero}
	case LandingCategories:
		return blocks.List{hero, wall}
	default:
		return blocks.List{hero, products}
	}
}

func isArray(raw json.RawMessage) bool {
	_, ok := util.JSONArray(raw)
	return ok
}

// ApplyPatch returns cfg with the top-level keys of patch replaced. A null
// value resets that key to its default. cfg is not modified.
func ApplyPatch(cfg Config, patch any) Config {
	base := map[string]json.RawMessage{}
	if b, err := json.Marshal(cfg); err == nil {
		if obj, ok := util.JSONObject(b); ok {
			base = obj
		}
	}

	if p, ok := util.JSONObject(util.RawDocument(patch)); ok {
		for k, v := range p {
			if util.IsJSONNull(v) {
				delete(base, k)
				continue
			}
			base[k] = v
		}
	}
	return merge(base)
}

// SetBlocks returns cfg with its landing blocks replaced.
func SetBlocks(cfg Config, list blocks.List) Config {
	out := cfg.Clone()
	out.LandingBlocks = blocks.Normalize(list)
	return out
}

// SetTheme returns cfg with its theme replaced.
func SetTheme(cfg Config, t theme.Theme) Config {
	out := cfg.Clone()
	out.Theme = theme.Normalize(t)
	return out
}

// Clone returns a copy of c that shares no maps or slices with it.
func (c Config) Clone() Config {
	out := c
	out.CTAVisibility = maps.Clone(c.CTAVisibility)
	out.Theme = c.Theme.Clone()
	out.LandingBlocks = slices.Clone(c.LandingBlocks)
	out.TopSection.Extra = maps.Clone(c.TopSection.Extra)
	out.Socials.Extra = maps.Clone(c.Socials.Extra)
	out.Extra = maps.Clone(c.Extra)
	return out
}

func str(raw json.RawMessage) string {
	s, _ := util.JSONString(raw)
	return s
}

func strPtr(raw json.RawMessage) *string {
	s, ok := util.JSONString(raw)
	if !ok || s == "" {
		return nil
	}
	return &s
}
