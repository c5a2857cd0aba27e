// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme resolves a tenant's stored theme document into concrete
// visual tokens: palette colors, background CSS, surface and button styles.
//
// Every function in this package is total. Unknown variants, unknown presets and
// malformed overrides degrade to documented defaults instead of returning errors,
// because a storefront rendered with a default theme is better than no storefront.
package theme

import (
	"encoding/json"
	"maps"
	"strings"

	"github.com/olegiv/ostore-go/internal/util"
)

// Variant is the top-level theme family that drives structural defaults.
type Variant string

// Theme variants.
const (
	VariantClean   Variant = "clean"
	VariantBold    Variant = "bold"
	VariantMinimal Variant = "minimal"
)

// DefaultVariant is used for absent or unknown variants.
const DefaultVariant = VariantClean

// Background types.
const (
	BackgroundNone     = "none"
	BackgroundColor    = "color"
	BackgroundGradient = "gradient"
	BackgroundImage    = "image"
)

// BackgroundTypes lists the accepted background types.
var BackgroundTypes = []string{BackgroundNone, BackgroundColor, BackgroundGradient, BackgroundImage}

// ParseVariant maps a stored variant string to a known Variant.
func ParseVariant(s string) Variant {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantClean, VariantBold, VariantMinimal:
		return v
	default:
		return DefaultVariant
	}
}

// Palette selects a preset and optional per-tenant color overrides.
type Palette struct {
	Preset  string  `json:"preset"`
	Primary *string `json:"primary"`
	Accent  *string `json:"accent"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the palette with its unmodeled keys.
func (p Palette) MarshalJSON() ([]byte, error) {
	type alias Palette
	return util.MarshalWithExtra(alias(p), p.Extra)
}

// Background is an explicit page background chosen by the tenant.
type Background struct {
	Type  string  `json:"type"`
	Value *string `json:"value"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the background with its unmodeled keys.
func (b Background) MarshalJSON() ([]byte, error) {
	type alias Background
	return util.MarshalWithExtra(alias(b), b.Extra)
}

// Theme is the persisted theme document.
type Theme struct {
	Variant    Variant      `json:"variant"`
	Palette    Palette      `json:"palette"`
	Background Background   `json:"background"`
	Buttons    *ButtonStyle `json:"buttons,omitempty"`

	// Extra holds theme keys this version does not model. ButtonsExtra does
	// the same for the buttons object. Both are written back verbatim.
	Extra        map[string]json.RawMessage `json:"-"`
	ButtonsExtra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the modeled fields and the unmodeled keys as one object.
func (t Theme) MarshalJSON() ([]byte, error) {
	type alias Theme
	a := alias(t)
	extra := t.Extra
	if len(t.ButtonsExtra) > 0 {
		var b ButtonStyle
		if t.Buttons != nil {
			b = *t.Buttons
		}
		raw, err := util.MarshalWithExtra(b, t.ButtonsExtra)
		if err != nil {
			return nil, err
		}
		a.Buttons = nil
		extra = maps.Clone(t.Extra)
		if extra == nil {
			extra = make(map[string]json.RawMessage, 1)
		}
		extra["buttons"] = raw
	}
	return util.MarshalWithExtra(a, extra)
}

// Clone returns a copy of t that shares no maps or pointers with it.
func (t Theme) Clone() Theme {
	out := t
	out.Palette.Primary = clonePtr(t.Palette.Primary)
	out.Palette.Accent = clonePtr(t.Palette.Accent)
	out.Palette.Extra = maps.Clone(t.Palette.Extra)
	out.Background.Value = clonePtr(t.Background.Value)
	out.Background.Extra = maps.Clone(t.Background.Extra)
	if t.Buttons != nil {
		b := *t.Buttons
		out.Buttons = &b
	}
	out.Extra = maps.Clone(t.Extra)
	out.ButtonsExtra = maps.Clone(t.ButtonsExtra)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Colors are the four resolved color tokens.
type Colors struct {
	Primary       string `json:"primary"`
	Accent        string `json:"accent"`
	BackgroundCSS string `json:"background_css"`
	Text          string `json:"text"`
}

// Surface describes how cards and panels are drawn.
type Surface struct {
	Style  string `json:"style"`  // elevated, solid, outline
	Shadow string `json:"shadow"` // none, soft, hard
	Border bool   `json:"border"`
}

// Resolved is the opaque token bag handed to display surfaces.
// Consumers should read tokens from it and never branch on Variant.
type Resolved struct {
	Variant Variant     `json:"variant"`
	Preset  string      `json:"preset"`
	Colors  Colors      `json:"colors"`
	Radius  string      `json:"radius"`
	Surface Surface     `json:"surface"`
	Button  ButtonStyle `json:"button"`
}

// Normalize returns t with every field reduced to a known value: the variant
// is parsed, the preset resolved to a name in the variant's table, invalid hex
// overrides dropped, and unknown background types and button values cleared.
// Unmodeled keys are carried over untouched.
func Normalize(t Theme) Theme {
	variant := ParseVariant(string(t.Variant))
	out := Theme{
		Variant: variant,
		Palette: Palette{
			Preset:  lookupPreset(variant, t.Palette.Preset).Name,
			Primary: hexPtr(t.Palette.Primary),
			Accent:  hexPtr(t.Palette.Accent),
			Extra:   maps.Clone(t.Palette.Extra),
		},
		Background: Background{
			Type:  util.Coalesce(util.OneOf(strings.ToLower(strings.TrimSpace(t.Background.Type)), BackgroundTypes...), BackgroundNone),
			Value: clonePtr(t.Background.Value),
			Extra: maps.Clone(t.Background.Extra),
		},
		Extra:        maps.Clone(t.Extra),
		ButtonsExtra: maps.Clone(t.ButtonsExtra),
	}
	if t.Buttons != nil {
		if b := t.Buttons.Sanitized(); !b.IsZero() {
			out.Buttons = &b
		}
	}
	return out
}

// Default returns the theme used for tenants that never chose one.
func Default() Theme {
	return Normalize(Theme{})
}

func hexPtr(s *string) *string {
	v := ValidHex(s)
	if v == "" {
		return nil
	}
	return &v
}

// structure holds the per-variant structural tokens.
type structure struct {
	radius  string
	surface Surface
}

var structures = map[Variant]structure{
	VariantClean: {
		radius:  "rounded-xl",
		surface: Surface{Style: "elevated", Shadow: ShadowSoft},
	},
	VariantBold: {
		radius:  "rounded-3xl",
		surface: Surface{Style: "solid", Shadow: ShadowHard},
	},
	VariantMinimal: {
		radius:  "rounded-none",
		surface: Surface{Style: "outline", Shadow: ShadowNone, Border: true},
	},
}

// Resolve derives the full token set for a theme document.
// It is pure: the same document always yields the same Resolved value.
func Resolve(t Theme) Resolved {
	variant := ParseVariant(string(t.Variant))
	preset := lookupPreset(variant, t.Palette.Preset)
	s := structures[variant]

	var explicit ButtonStyle
	if t.Buttons != nil {
		explicit = *t.Buttons
	}

	return Resolved{
		Variant: variant,
		Preset:  preset.Name,
		Colors:  ResolvePalette(variant, t.Palette, t.Background),
		Radius:  s.radius,
		Surface: s.surface,
		Button:  ResolveButton(explicit, variant),
	}
}

// ButtonFor resolves a per-call button override against the theme's button defaults.
// Explicit fields win, the rest come from the already-resolved theme.
func (r Resolved) ButtonFor(explicit ButtonStyle) ButtonStyle {
	return explicit.valid().over(r.Button)
}

// CSSVariables flattens the token bag into CSS custom properties.
func (r Resolved) CSSVariables() map[string]string {
	return map[string]string{
		"--color-primary":  r.Colors.Primary,
		"--color-accent":   r.Colors.Accent,
		"--color-text":     r.Colors.Text,
		"--page-bg":        r.Colors.BackgroundCSS,
		"--surface-style":  r.Surface.Style,
		"--surface-shadow": r.Surface.Shadow,
		"--button-style":   r.Button.Style,
		"--button-shadow":  r.Button.Shadow,
		"--button-tone":    r.Button.Tone,
	}
}
