// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/theme"
)

func encode(t *testing.T, c Config) string {
	t.Helper()
	b, err := json.Marshal(c)
	require.NoError(t, err)
	return string(b)
}

func TestMerge_JSONStringDisplayMode(t *testing.T) {
	c := Merge(`{"display_mode":"grid"}`)

	assert.Equal(t, DisplayGrid, c.DisplayMode)
	assert.True(t, Equal(c, Defaults()), "got %s", encode(t, c))
}

func TestMerge_FixedPoint(t *testing.T) {
	inputs := []any{
		nil,
		``,
		`not json`,
		`{"display_mode":"list","sort":"price_desc","landing_page":"categories"}`,
		`"{\"show_categories\":\"false\",\"landing_page\":\"hero-only\"}"`,
		`{"theme":{"variant":"bold","palette":{"preset":"sunset","accent":"#123456","primary":"red"},
			"background":{"type":"image","value":" https://cdn.example/bg.jpg "},"buttons":{"tone":"outline","style":"blob"}}}`,
		`{"instagram_handle":"@shop","whatsapp_number":"+1 (555) 010-2000","future_flag":{"a":[1,2]}}`,
		`{"landing_blocks":[{"type":"products","source":{"category_id":"c1"}},{"type":"gallery","n":1}]}`,
		`{"cta_visibility":{"whatsapp":"0","telegram":true,"custom":"nope"},"currency":"eur","locale":"pt-br"}`,
		map[string]any{"top_section": map[string]any{"mode": "hero", "header_style": "large-circle"}},
		`{"theme":{"variant":"bold","font":"serif","palette":{"preset":"sunset","gradient_stops":3},
			"buttons":{"glow":true}},"top_section":{"mode":"hero","banner":"x.jpg"},
			"socials_config":{"instagram":"https://instagram.com/a","youtube":"https://youtube.com/@a"},
			"landing_blocks":[{"type":"products","source":{"category_id":"c1","include_sub":true}}]}`,
		`{"landing_blocks":"[{\"type\":\"text\",\"content_md\":\"hello\"}]"}`,
	}

	for _, in := range inputs {
		once := Merge(in)
		twice := Merge(once)
		assert.Equal(t, encode(t, once), encode(t, twice), "input %v", in)

		fromJSON := Merge(encode(t, once))
		assert.Equal(t, encode(t, once), encode(t, fromJSON), "input %v", in)
	}
}

func TestParse_ReportsUnparsable(t *testing.T) {
	_, ok := Parse(`{"sort":`)
	assert.False(t, ok)

	_, ok = Parse(`[1,2]`)
	assert.False(t, ok)

	_, ok = Parse(`{}`)
	assert.True(t, ok)

	c, ok := Parse([]byte(`garbage`))
	assert.False(t, ok)
	assert.True(t, Equal(c, Defaults()))
}

func TestMerge_EnumFallbacks(t *testing.T) {
	c := Merge(`{"display_mode":"masonry","sort":"random","landing_page":"blog",
		"top_section":{"mode":"banner","header_style":"LARGE-SQUARE"}}`)

	assert.Equal(t, DisplayGrid, c.DisplayMode)
	assert.Equal(t, SortManual, c.Sort)
	assert.Equal(t, LandingProducts, c.LandingPage)
	assert.Equal(t, TopHeader, c.TopSection.Mode)
	assert.Equal(t, HeaderLargeSquare, c.TopSection.HeaderStyle)
}

func TestMerge_Theme(t *testing.T) {
	c := Merge(`{"theme":{"variant":"minimal"}}`)
	assert.Equal(t, theme.VariantMinimal, c.Theme.Variant)
	assert.Equal(t, "mono", c.Theme.Palette.Preset)

	c = Merge(`{"theme":{"variant":"bold","palette":{"preset":"sunset","accent":"#123456"}}}`)
	r := theme.Resolve(c.Theme)
	assert.Equal(t, "#f97316", r.Colors.Primary)
	assert.Equal(t, "#123456", r.Colors.Accent)

	c = Merge(`{"theme":"dark"}`)
	assert.Equal(t, theme.Default(), c.Theme)
}

func TestMerge_LegacySocials(t *testing.T) {
	in := `{"instagram_handle":"@maria.bakes","tiktok_handle":"mariabakes",
		"facebook_handle":"https://facebook.com/maria","whatsapp_number":"+44 7700 900123"}`
	c := Merge(in)

	assert.Equal(t, "https://instagram.com/maria.bakes", c.Socials.Instagram)
	assert.Equal(t, "https://www.tiktok.com/@mariabakes", c.Socials.TikTok)
	assert.Equal(t, "https://facebook.com/maria", c.Socials.Facebook)
	assert.Equal(t, "447700900123", c.Socials.WhatsApp)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encode(t, c)), &out))
	assert.JSONEq(t, `"@maria.bakes"`, string(out[LegacyInstagramHandle]))
	assert.JSONEq(t, `"mariabakes"`, string(out[LegacyTikTokHandle]))
	assert.JSONEq(t, `"+44 7700 900123"`, string(out[LegacyWhatsAppNumber]))
	assert.Contains(t, out, "socials_config")
}

func TestMerge_StructuredSocialsWin(t *testing.T) {
	c := Merge(`{"instagram_handle":"old","socials_config":{"instagram":"https://instagram.com/new"}}`)
	assert.Equal(t, "https://instagram.com/new", c.Socials.Instagram)
	assert.JSONEq(t, `"old"`, string(c.Extra[LegacyInstagramHandle]))
}

func TestMerge_UnknownKeysPassThrough(t *testing.T) {
	c := Merge(`{"announcement":{"text":"Sale!","until":"2026-12-01"},"v2_layout":true}`)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encode(t, c)), &out))
	assert.JSONEq(t, `{"text":"Sale!","until":"2026-12-01"}`, string(out["announcement"]))
	assert.JSONEq(t, `true`, string(out["v2_layout"]))
}

func TestMerge_NestedUnknownKeysPassThrough(t *testing.T) {
	c := Merge(`{
		"theme":{"variant":"bold","font":"serif","palette":{"preset":"sunset","gradient_stops":3},
			"background":{"type":"color","value":"#000","blur":2},"buttons":{"tone":"solid","glow":true}},
		"top_section":{"mode":"hero","banner":"x.jpg"},
		"socials_config":{"instagram":"https://instagram.com/a","youtube":"https://youtube.com/@a"},
		"landing_blocks":[{"type":"products","source":{"category_id":"c1","include_sub":true}}]
	}`)

	var doc struct {
		Theme struct {
			Font       string         `json:"font"`
			Palette    map[string]any `json:"palette"`
			Background map[string]any `json:"background"`
			Buttons    map[string]any `json:"buttons"`
		} `json:"theme"`
		TopSection    map[string]any   `json:"top_section"`
		Socials       map[string]any   `json:"socials_config"`
		LandingBlocks []map[string]any `json:"landing_blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(encode(t, c)), &doc))

	assert.Equal(t, "serif", doc.Theme.Font)
	assert.Equal(t, float64(3), doc.Theme.Palette["gradient_stops"])
	assert.Equal(t, float64(2), doc.Theme.Background["blur"])
	assert.Equal(t, true, doc.Theme.Buttons["glow"])
	assert.Equal(t, "solid", doc.Theme.Buttons["tone"])
	assert.Equal(t, "x.jpg", doc.TopSection["banner"])
	assert.Equal(t, "https://youtube.com/@a", doc.Socials["youtube"])
	require.Len(t, doc.LandingBlocks, 1)
	assert.Equal(t, map[string]any{"category_id": "c1", "include_sub": true}, doc.LandingBlocks[0]["source"])

	// Edits through the reducer keep them too.
	patched := ApplyPatch(c, map[string]any{"sort": "newest"})
	assert.Equal(t, SortNewest, patched.Sort)
	assert.JSONEq(t, `"x.jpg"`, string(patched.TopSection.Extra["banner"]))
	assert.JSONEq(t, `"serif"`, string(patched.Theme.Extra["font"]))
}

func TestMerge_StringifiedLandingBlocks(t *testing.T) {
	c := Merge(`{"landing_page":"products","landing_blocks":"[{\"type\":\"text\",\"content_md\":\"hello\"}]"}`)

	require.Len(t, c.LandingBlocks, 1)
	text, ok := c.LandingBlocks[0].(blocks.Text)
	require.True(t, ok, "got %T", c.LandingBlocks[0])
	assert.Equal(t, "hello", text.ContentMD)

	// The re-saved document stores a plain array.
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encode(t, c)), &out))
	assert.JSONEq(t, `[{"type":"text","content_md":"hello","align":"start"}]`, string(out["landing_blocks"]))
}

func TestMerge_CTAVisibility(t *testing.T) {
	c := Merge(`{"cta_visibility":{"whatsapp":false,"telegram":true}}`)

	assert.False(t, c.CTAVisible(CTAWhatsApp))
	assert.True(t, c.CTAVisible(CTAInstagram))
	assert.True(t, c.CTAVisible(CTACustom))
	assert.True(t, c.CTAVisibility["telegram"])
}

func TestMerge_CurrencyAndLocale(t *testing.T) {
	c := Merge(`{"currency":"eur","locale":"pt-br"}`)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, "pt-BR", c.Locale)

	c = Merge(`{"currency":"dollars","locale":"??"}`)
	assert.Equal(t, DefaultCurrency, c.Currency)
	assert.Equal(t, DefaultLocale, c.Locale)
}

func TestMerge_DerivedBlocks(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []blocks.Kind
	}{
		{"products", `{"landing_page":"products"}`, []blocks.Kind{blocks.KindHero, blocks.KindProducts}},
		{"categories", `{"landing_page":"categories"}`, []blocks.Kind{blocks.KindHero, blocks.KindCategoriesWall}},
		{"hero only", `{"landing_page":"hero-only"}`, []blocks.Kind{blocks.KindHero}},
		{"explicit empty list", `{"landing_page":"hero-only","landing_blocks":[]}`, []blocks.Kind{}},
		{"null list", `{"landing_page":"categories","landing_blocks":null}`, []blocks.Kind{blocks.KindHero, blocks.KindCategoriesWall}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Merge(tt.doc)
			got := make([]blocks.Kind, 0, len(c.LandingBlocks))
			for _, b := range c.LandingBlocks {
				got = append(got, b.Kind())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	c := Merge(`{"display_mode":"list","show_categories":false}`)
	require.Len(t, c.LandingBlocks, 2)
	p := c.LandingBlocks[1].(blocks.Products)
	assert.Equal(t, blocks.ViewList, p.View)
	assert.False(t, p.ShowCategoryNav)
}

func TestConfig_UnmarshalJSON(t *testing.T) {
	var doc struct {
		Config Config `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"config":{"sort":"newest"}}`), &doc))
	assert.Equal(t, SortNewest, doc.Config.Sort)
	assert.Equal(t, DefaultCurrency, doc.Config.Currency)
}
