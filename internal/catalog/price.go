// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice formats an amount in the store currency for the store locale.
// Unknown currencies fall back to USD and unknown locales to English.
func FormatPrice(amount float64, code, locale string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(tag)

	symbol := p.Sprint(currency.Symbol(unit))
	number := p.Sprintf(fmt.Sprintf("%%.%df", scale), amount)
	if utf8.RuneCountInString(symbol) == 1 {
		return symbol + number
	}
	return symbol + " " + number
}
