// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import "testing"

func strPtr(s string) *string { return &s }

func TestResolvePalette_PresetValues(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		preset  string
		primary string
		accent  string
	}{
		{"clean default", VariantClean, "", "#2563eb", "#0ea5e9"},
		{"clean forest", VariantClean, "forest", "#15803d", "#84cc16"},
		{"bold sunset", VariantBold, "sunset", "#f97316", "#db2777"},
		{"bold default", VariantBold, "", "#f97316", "#db2777"},
		{"bold noir", VariantBold, "NOIR", "#fafafa", "#facc15"},
		{"minimal mono", VariantMinimal, "mono", "#111111", "#6b7280"},
		{"unknown preset falls back", VariantMinimal, "neon", "#111111", "#6b7280"},
		{"preset from another variant", VariantMinimal, "sunset", "#111111", "#6b7280"},
		{"unknown variant", Variant("retro"), "sunset", "#2563eb", "#0ea5e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePalette(tt.variant, Palette{Preset: tt.preset}, Background{})
			if got.Primary != tt.primary {
				t.Errorf("Primary = %q, want %q", got.Primary, tt.primary)
			}
			if got.Accent != tt.accent {
				t.Errorf("Accent = %q, want %q", got.Accent, tt.accent)
			}
		})
	}
}

func TestResolvePalette_AccentOverride(t *testing.T) {
	base := ResolvePalette(VariantBold, Palette{Preset: "sunset"}, Background{})
	got := ResolvePalette(VariantBold, Palette{Preset: "sunset", Accent: strPtr("#123456")}, Background{})

	if got.Accent != "#123456" {
		t.Errorf("Accent = %q, want %q", got.Accent, "#123456")
	}
	if got.Primary != base.Primary {
		t.Errorf("Primary = %q, want %q", got.Primary, base.Primary)
	}
	if got.BackgroundCSS != base.BackgroundCSS {
		t.Errorf("BackgroundCSS = %q, want %q", got.BackgroundCSS, base.BackgroundCSS)
	}
	if got.Text != base.Text {
		t.Errorf("Text = %q, want %q", got.Text, base.Text)
	}
}

func TestResolvePalette_InvalidOverridesIgnored(t *testing.T) {
	for _, bad := range []string{"", "red", "#12345", "#1234567", "123456", "#ggg", "  "} {
		got := ResolvePalette(VariantClean, Palette{Primary: strPtr(bad), Accent: strPtr(bad)}, Background{})
		if got.Primary != "#2563eb" {
			t.Errorf("Primary with override %q = %q, want preset value", bad, got.Primary)
		}
		if got.Accent != "#0ea5e9" {
			t.Errorf("Accent with override %q = %q, want preset value", bad, got.Accent)
		}
	}
}

func TestResolvePalette_Totality(t *testing.T) {
	variants := []Variant{VariantClean, VariantBold, VariantMinimal, "", "unknown"}
	overrides := []*string{nil, strPtr(""), strPtr("#abc"), strPtr("bogus")}
	backgrounds := []Background{
		{},
		{Type: BackgroundColor, Value: strPtr("#000")},
		{Type: BackgroundImage, Value: strPtr("https://cdn.example.com/bg.png")},
		{Type: "video", Value: strPtr("x")},
	}

	for _, v := range variants {
		presets := append(PresetNames(v), "", "missing")
		for _, p := range presets {
			for _, o := range overrides {
				for _, bg := range backgrounds {
					c := ResolvePalette(v, Palette{Preset: p, Primary: o, Accent: o}, bg)
					if c.Primary == "" || c.Accent == "" || c.BackgroundCSS == "" || c.Text == "" {
						t.Fatalf("empty token for variant=%q preset=%q: %+v", v, p, c)
					}
				}
			}
		}
	}
}

func TestValidHex(t *testing.T) {
	tests := []struct {
		in   *string
		want string
	}{
		{nil, ""},
		{strPtr("#fff"), "#fff"},
		{strPtr(" #A1B2C3 "), "#A1B2C3"},
		{strPtr("#abcd"), ""},
		{strPtr("rgb(0,0,0)"), ""},
	}
	for _, tt := range tests {
		if got := ValidHex(tt.in); got != tt.want {
			t.Errorf("ValidHex(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBackgroundCSS(t *testing.T) {
	tests := []struct {
		name string
		bg   Background
		want string
	}{
		{"none", Background{Type: BackgroundNone, Value: strPtr("#fff")}, ""},
		{"nil value", Background{Type: BackgroundColor}, ""},
		{"color", Background{Type: BackgroundColor, Value: strPtr("#101010")}, "#101010"},
		{"gradient", Background{Type: "Gradient", Value: strPtr("linear-gradient(#fff, #000)")}, "linear-gradient(#fff, #000)"},
		{"injection rejected", Background{Type: BackgroundColor, Value: strPtr("red; color: blue")}, ""},
		{"image", Background{Type: BackgroundImage, Value: strPtr("https://x.test/a.png")}, `url("https://x.test/a.png")`},
		{"image quotes escaped", Background{Type: BackgroundImage, Value: strPtr(`a"b`)}, `url("a%22b")`},
		{"unknown type", Background{Type: "pattern", Value: strPtr("dots")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackgroundCSS(tt.bg); got != tt.want {
				t.Errorf("BackgroundCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePalette_ExplicitBackgroundWins(t *testing.T) {
	got := ResolvePalette(VariantBold, Palette{Preset: "sunset"}, Background{Type: BackgroundColor, Value: strPtr("#000000")})
	if got.BackgroundCSS != "#000000" {
		t.Errorf("BackgroundCSS = %q, want %q", got.BackgroundCSS, "#000000")
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames(VariantBold)
	if len(names) != 3 || names[0] != "sunset" {
		t.Errorf("PresetNames(bold) = %v, want sunset first of 3", names)
	}
	if got := DefaultPreset("nonsense"); got != "ocean" {
		t.Errorf("DefaultPreset(nonsense) = %q, want %q", got, "ocean")
	}
}
