// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/theme"
)

func TestApplyPatch(t *testing.T) {
	base := Merge(`{"sort":"newest","display_mode":"list","custom":1}`)
	before := encode(t, base)

	got := ApplyPatch(base, map[string]any{"sort": "price_asc", "display_mode": nil})

	assert.Equal(t, SortPriceAsc, got.Sort)
	assert.Equal(t, DisplayGrid, got.DisplayMode, "null resets to default")
	assert.JSONEq(t, `1`, string(got.Extra["custom"]))
	assert.Equal(t, before, encode(t, base), "input must not change")
}

func TestApplyPatch_InvalidPatchIsNoop(t *testing.T) {
	base := Merge(`{"sort":"newest"}`)
	assert.True(t, Equal(base, ApplyPatch(base, `not json`)))
	assert.True(t, Equal(base, ApplyPatch(base, nil)))
}

func TestApplyPatch_Blocks(t *testing.T) {
	base := Defaults()
	list, ok := blocks.ApplyPreset(blocks.PresetStoryHighlights)
	require.True(t, ok)

	got := ApplyPatch(base, map[string]any{"landing_blocks": list})
	assert.Equal(t, list, got.LandingBlocks)
}

func TestSetBlocksAndTheme(t *testing.T) {
	base := Defaults()
	list := blocks.Reorder(base.LandingBlocks, 0, 1)

	got := SetBlocks(base, list)
	assert.Equal(t, blocks.KindProducts, got.LandingBlocks[0].Kind())
	assert.Equal(t, blocks.KindHero, base.LandingBlocks[0].Kind())

	got = SetTheme(got, theme.Theme{Variant: theme.VariantBold})
	assert.Equal(t, "sunset", got.Theme.Palette.Preset)
	assert.Equal(t, theme.VariantClean, base.Theme.Variant)

	assert.True(t, Equal(got, Merge(encode(t, got))))
}
