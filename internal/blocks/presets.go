// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blocks

// Block list presets.
const (
	PresetBusinessCard    = "business-card"
	PresetCatalog         = "catalog"
	PresetStoryHighlights = "story-highlights"
)

var presets = map[string]func() List{
	PresetBusinessCard: func() List {
		hero := NewHero()
		wall := NewCategoriesWall()
		wall.View = ViewLinks
		return List{hero, wall}
	},
	PresetCatalog: func() List {
		hero := NewHero()
		hero.Dense = true
		wall := NewCategoriesWall()
		wall.Columns = 3
		products := NewProducts()
		products.ShowPrice = true
		products.ShowCategoryNav = true
		return List{hero, wall, products}
	},
	PresetStoryHighlights: func() List {
		hero := NewHero()
		text := NewText()
		text.Align = AlignCenter
		products := NewProducts()
		products.View = ViewGrid2
		products.ShowCaption = true
		products.CTA = CTAWhatsApp
		return List{hero, text, products}
	},
}

// PresetIDs lists the available presets in display order.
func PresetIDs() []string {
	return []string{PresetBusinessCard, PresetCatalog, PresetStoryHighlights}
}

// ApplyPreset returns a fresh block list for the named preset. It replaces
// the whole list; nothing from the current blocks is kept.
func ApplyPreset(id string) (List, bool) {
	build, ok := presets[id]
	if !ok {
		return nil, false
	}
	return build(), true
}
