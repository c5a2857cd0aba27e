// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"encoding/json"
	"strings"
)

// Legacy flat keys written before socials_config existed. They stay in the
// document after an upgrade because older readers still look for them.
const (
	LegacyInstagramHandle = "instagram_handle"
	LegacyTikTokHandle    = "tiktok_handle"
	LegacyFacebookHandle  = "facebook_handle"
	LegacyWhatsAppNumber  = "whatsapp_number"
)

// upgradeSocials fills empty socials from legacy keys. Populated structured
// values always win.
func upgradeSocials(s *Socials, obj map[string]json.RawMessage) {
	if s.Instagram == "" {
		s.Instagram = socialURL(str(obj[LegacyInstagramHandle]), "https://instagram.com/")
	}
	if s.TikTok == "" {
		s.TikTok = socialURL(str(obj[LegacyTikTokHandle]), "https://www.tiktok.com/@")
	}
	if s.Facebook == "" {
		s.Facebook = socialURL(str(obj[LegacyFacebookHandle]), "https://facebook.com/")
	}
	if s.WhatsApp == "" {
		s.WhatsApp = digits(str(obj[LegacyWhatsAppNumber]))
	}
}

// socialURL turns a bare handle into a profile URL. Values that are already
// URLs are kept.
func socialURL(handle, base string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}
	lower := strings.ToLower(handle)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return handle
	}
	handle = strings.TrimLeft(handle, "@")
	if handle == "" {
		return ""
	}
	return base + handle
}

// digits keeps only ASCII digits, which is what wa.me expects.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
