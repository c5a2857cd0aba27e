// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

// Coalesce returns the first value that is not the zero value of T.
// Callers pass layers from most to least specific (explicit, derived, global),
// so the order of the arguments is the precedence order.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// OneOf returns s if it is one of the allowed values, otherwise the empty string.
// Combined with Coalesce it turns an unknown enum value into "not set".
func OneOf(s string, allowed ...string) string {
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return ""
}
