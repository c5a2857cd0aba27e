// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"strings"

	"github.com/olegiv/ostore-go/internal/util"
)

// Button shapes.
const (
	ButtonRounded = "rounded"
	ButtonPills   = "pills"
	ButtonSquare  = "square"
)

// Shadow strengths, shared by buttons and surfaces.
const (
	ShadowNone = "none"
	ShadowSoft = "soft"
	ShadowHard = "hard"
)

// Button tones.
const (
	ToneSolid   = "solid"
	ToneSoft    = "soft"
	ToneOutline = "outline"
)

// ButtonStyle is a {style, shadow, tone} triple. Empty fields mean "not set".
type ButtonStyle struct {
	Style  string `json:"style,omitempty"`
	Shadow string `json:"shadow,omitempty"`
	Tone   string `json:"tone,omitempty"`
}

// globalButton is the last precedence layer.
var globalButton = ButtonStyle{Style: ButtonRounded, Shadow: ShadowSoft, Tone: ToneSoft}

// variantButtons are the variant-derived defaults. Unset fields fall through
// to globalButton.
var variantButtons = map[Variant]ButtonStyle{
	VariantClean:   {Style: ButtonRounded, Tone: ToneSoft},
	VariantBold:    {Style: ButtonPills, Tone: ToneSolid},
	VariantMinimal: {Style: ButtonSquare},
}

// valid drops fields that are not one of the known values.
func (b ButtonStyle) valid() ButtonStyle {
	return ButtonStyle{
		Style:  util.OneOf(strings.ToLower(strings.TrimSpace(b.Style)), ButtonRounded, ButtonPills, ButtonSquare),
		Shadow: util.OneOf(strings.ToLower(strings.TrimSpace(b.Shadow)), ShadowNone, ShadowSoft, ShadowHard),
		Tone:   util.OneOf(strings.ToLower(strings.TrimSpace(b.Tone)), ToneSolid, ToneSoft, ToneOutline),
	}
}

// over fills b's unset fields from each layer in order.
func (b ButtonStyle) over(layers ...ButtonStyle) ButtonStyle {
	out := b
	for _, l := range layers {
		out = ButtonStyle{
			Style:  util.Coalesce(out.Style, l.Style),
			Shadow: util.Coalesce(out.Shadow, l.Shadow),
			Tone:   util.Coalesce(out.Tone, l.Tone),
		}
	}
	return out
}

// IsZero reports whether no field is set.
func (b ButtonStyle) IsZero() bool {
	return b == ButtonStyle{}
}

// Sanitized returns b with unknown values removed.
func (b ButtonStyle) Sanitized() ButtonStyle {
	return b.valid()
}

// ResolveButton applies explicit > variant-derived > global precedence.
// Explicit values that are not recognized are ignored.
func ResolveButton(explicit ButtonStyle, variant Variant) ButtonStyle {
	v := ParseVariant(string(variant))
	return explicit.valid().over(variantButtons[v], globalButton)
}
