// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by the storefront packages:
// slug generation for tenant URLs, layered default selection and lenient
// decoding of loosely-typed JSON documents.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxStoreSlugLength bounds tenant slugs so storefront URLs stay short.
const MaxStoreSlugLength = 48

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// reservedSlugs collide with top-level application routes.
var reservedSlugs = map[string]bool{
	"admin":  true,
	"api":    true,
	"login":  true,
	"logout": true,
	"static": true,
	"c":      true,
	"p":      true,
}

// Slugify converts a string to a URL-friendly slug.
// It lowercases, strips accents, replaces spaces with hyphens and drops
// everything that is not a letter, digit or hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// StoreSlug derives a tenant slug from a business name.
// Non-Latin scripts are transliterated first, so "Москва Цветы" becomes
// "moskva-tsvety" instead of an empty slug. Returns "" when nothing usable remains.
func StoreSlug(name string) string {
	slug := Slugify(unidecode.Unidecode(name))
	if len(slug) > MaxStoreSlugLength {
		slug = strings.TrimRight(slug[:MaxStoreSlugLength], "-")
	}
	return slug
}

// IsReservedSlug reports whether slug would shadow an application route.
func IsReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
