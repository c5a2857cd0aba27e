// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storefront

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders tenant text blocks. Raw HTML in the source is dropped by
// goldmark and whatever remains is sanitized again below.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts a text block's markdown to sanitized HTML.
// Markdown that fails to render is shown as escaped plain text.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "<p>" + html.EscapeString(md) + "</p>"
	}
	return htmlSanitizer.Sanitize(buf.String())
}
