// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"regexp"
	"strings"

	"github.com/olegiv/ostore-go/internal/util"
)

// hexColorRegex accepts #rgb and #rrggbb only.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Preset is a named color combination within a variant.
type Preset struct {
	Name       string
	Primary    string
	Accent     string
	Background string // CSS background value
	Text       string
}

// presetTables holds the presets of each variant. The first entry is the
// variant's default preset.
var presetTables = map[Variant][]Preset{
	VariantClean: {
		{Name: "ocean", Primary: "#2563eb", Accent: "#0ea5e9", Background: "#ffffff", Text: "#0f172a"},
		{Name: "forest", Primary: "#15803d", Accent: "#84cc16", Background: "#f7fee7", Text: "#14532d"},
		{Name: "rose", Primary: "#e11d48", Accent: "#f472b6", Background: "#fff1f2", Text: "#4c0519"},
	},
	VariantBold: {
		{
			Name: "sunset", Primary: "#f97316", Accent: "#db2777",
			Background: "linear-gradient(135deg, #fff7ed 0%, #ffe4e6 100%)", Text: "#1c1917",
		},
		{
			Name: "electric", Primary: "#7c3aed", Accent: "#06b6d4",
			Background: "linear-gradient(135deg, #0f172a 0%, #312e81 100%)", Text: "#f8fafc",
		},
		{Name: "noir", Primary: "#fafafa", Accent: "#facc15", Background: "#0a0a0a", Text: "#fafafa"},
	},
	VariantMinimal: {
		{Name: "mono", Primary: "#111111", Accent: "#6b7280", Background: "#fafafa", Text: "#111111"},
		{Name: "sand", Primary: "#78716c", Accent: "#a8a29e", Background: "#f5f5f4", Text: "#292524"},
	},
}

// globalColors is the last layer of the fallback chain.
var globalColors = Colors{
	Primary:       "#2563eb",
	Accent:        "#0ea5e9",
	BackgroundCSS: "#ffffff",
	Text:          "#0f172a",
}

// DefaultPreset returns the default preset name for a variant.
func DefaultPreset(v Variant) string {
	return presetTables[ParseVariant(string(v))][0].Name
}

// PresetNames returns the preset names available for a variant, default first.
func PresetNames(v Variant) []string {
	table := presetTables[ParseVariant(string(v))]
	names := make([]string, 0, len(table))
	for _, p := range table {
		names = append(names, p.Name)
	}
	return names
}

// lookupPreset finds a preset by name, falling back to the variant default.
// Empty and unknown names are treated alike.
func lookupPreset(v Variant, name string) Preset {
	table := presetTables[v]
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range table {
		if p.Name == name {
			return p
		}
	}
	return table[0]
}

// ValidHex returns the trimmed color if it is a strict #rgb / #rrggbb value, otherwise "".
func ValidHex(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if !hexColorRegex.MatchString(v) {
		return ""
	}
	return v
}

// ResolvePalette maps variant, palette and background to the four color tokens.
// Overrides win over the preset, the preset wins over the variant default preset,
// and the global defaults fill anything still empty.
func ResolvePalette(variant Variant, p Palette, bg Background) Colors {
	v := ParseVariant(string(variant))
	preset := lookupPreset(v, p.Preset)
	fallback := presetTables[v][0]

	return Colors{
		Primary:       util.Coalesce(ValidHex(p.Primary), preset.Primary, fallback.Primary, globalColors.Primary),
		Accent:        util.Coalesce(ValidHex(p.Accent), preset.Accent, fallback.Accent, globalColors.Accent),
		BackgroundCSS: util.Coalesce(BackgroundCSS(bg), preset.Background, fallback.Background, globalColors.BackgroundCSS),
		Text:          util.Coalesce(preset.Text, fallback.Text, globalColors.Text),
	}
}

// BackgroundCSS renders an explicit background, or "" when the preset should be used.
// Color and gradient values are used verbatim unless they could break out of a
// CSS declaration; images become a quoted url() reference.
func BackgroundCSS(bg Background) string {
	if bg.Value == nil {
		return ""
	}
	value := strings.TrimSpace(*bg.Value)
	if value == "" {
		return ""
	}

	switch strings.ToLower(strings.TrimSpace(bg.Type)) {
	case BackgroundColor, BackgroundGradient:
		if strings.ContainsAny(value, ";{}<>") {
			return ""
		}
		return value
	case BackgroundImage:
		return `url("` + cssURLEscaper.Replace(value) + `")`
	default:
		return ""
	}
}

var cssURLEscaper = strings.NewReplacer(
	`\`, `%5C`,
	`"`, `%22`,
	"\n", "",
	"\r", "",
)
