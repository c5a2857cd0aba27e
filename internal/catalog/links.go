// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"net/url"
)

// StoreURL is the storefront root.
func StoreURL(slug string) string {
	return "/" + url.PathEscape(slug)
}

// CategoryURL links to a category's filtered product list.
func CategoryURL(slug, categoryID string) string {
	return StoreURL(slug) + "/c/" + url.PathEscape(categoryID)
}

// ProductURL links to a product page. When a category is active it is
// carried as ?category= so going back returns to the filtered list.
func ProductURL(slug, productID, activeCategory string) string {
	u := StoreURL(slug) + "/p/" + url.PathEscape(productID)
	if activeCategory != "" {
		u += "?" + url.Values{"category": {activeCategory}}.Encode()
	}
	return u
}

// WhatsAppURL builds a wa.me chat link for a merchant phone number.
// Returns "" when phone has no digits.
func WhatsAppURL(phone, text string) string {
	digits := onlyDigits(phone)
	if digits == "" {
		return ""
	}
	u := "https://wa.me/" + digits
	if text != "" {
		u += "?" + url.Values{"text": {text}}.Encode()
	}
	return u
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
