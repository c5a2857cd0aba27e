// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blocks

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/olegiv/ostore-go/internal/util"
)

// List is the ordered landing page. Order is render order.
type List []Block

// MarshalJSON encodes a nil list as [] so the stored document stays an array.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Block(l))
}

// UnmarshalJSON decodes and normalizes a stored block array.
func (l *List) UnmarshalJSON(data []byte) error {
	*l = Normalize(json.RawMessage(data))
	return nil
}

// Visible returns the blocks that should be rendered.
func (l List) Visible() List {
	out := make(List, 0, len(l))
	for _, b := range l {
		if !b.IsHidden() {
			out = append(out, b)
		}
	}
	return out
}

// kindAliases maps spellings written by older clients to the canonical tag.
var kindAliases = map[string]Kind{
	"hero":            KindHero,
	"categories_wall": KindCategoriesWall,
	"categories-wall": KindCategoriesWall,
	"categories":      KindCategoriesWall,
	"products":        KindProducts,
	"text":            KindText,
}

// Normalize turns a stored landing_blocks value into a fully defaulted List.
// The result has the same length and order as the input. Anything that is not
// an array yields an empty list. Normalizing an already normalized list
// encodes to the same bytes.
func Normalize(raw any) List {
	doc := util.RawDocument(raw)
	items, ok := util.JSONArray(doc)
	if !ok {
		return List{}
	}

	out := make(List, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeBlock(item))
	}
	return out
}

func normalizeBlock(raw json.RawMessage) Block {
	obj, ok := util.JSONObject(raw)
	if !ok {
		return unknown(raw)
	}

	var tag string
	_ = json.Unmarshal(obj["type"], &tag)
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return unknown(raw)
	}

	switch kind {
	case KindHero:
		return normalizeHero(obj)
	case KindCategoriesWall:
		return normalizeCategoriesWall(obj)
	case KindProducts:
		return normalizeProducts(obj)
	default:
		return normalizeText(obj)
	}
}

func unknown(raw json.RawMessage) Unknown {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Unknown{Raw: raw}
	}
	return Unknown{Raw: buf.Bytes()}
}

func normalizeHero(obj map[string]json.RawMessage) Hero {
	d := NewHero()
	return Hero{
		ShowAvatar:  util.JSONBoolOr(obj["show_avatar"], d.ShowAvatar),
		ShowSocials: util.JSONBoolOr(obj["show_socials"], d.ShowSocials),
		ShowCTAs:    util.JSONBoolOr(obj["show_ctas"], d.ShowCTAs),
		Dense:       util.JSONBoolOr(obj["dense"], d.Dense),
		Hidden:      hidden(obj),
		Extra:       extra(obj, "show_avatar", "show_socials", "show_ctas", "dense"),
	}
}

func normalizeCategoriesWall(obj map[string]json.RawMessage) CategoriesWall {
	columns := DefaultWallColumns
	if n, ok := util.JSONInt(obj["columns"]); ok && n >= 2 && n <= 4 {
		columns = n
	}
	return CategoriesWall{
		View:    enum(obj["view"], DefaultWallView, ViewGrid, ViewList, ViewLinks),
		Columns: columns,
		Limit:   limit(obj["limit"]),
		Hidden:  hidden(obj),
		Extra:   extra(obj, "view", "columns", "limit"),
	}
}

func normalizeProducts(obj map[string]json.RawMessage) Products {
	d := NewProducts()
	return Products{
		Source:           source(obj["source"]),
		View:             enum(obj["view"], d.View, ViewGrid, ViewGrid1, ViewGrid2, ViewGrid3, ViewList, ViewLinks),
		ShowPrice:        util.JSONBoolOr(obj["show_price"], d.ShowPrice),
		ShowCaption:      util.JSONBoolOr(obj["show_caption"], d.ShowCaption),
		Limit:            limit(obj["limit"]),
		CTA:              enum(obj["cta"], d.CTA, CTAProduct, CTAWhatsApp, CTANone),
		ShowCategoryNav:  util.JSONBoolOr(obj["show_category_nav"], d.ShowCategoryNav),
		CategoryNavStyle: enum(obj["category_nav_style"], d.CategoryNavStyle, NavChips, NavTabs),
		Hidden:           hidden(obj),
		Extra: extra(obj, "source", "view", "show_price", "show_caption", "limit", "cta",
			"show_category_nav", "category_nav_style"),
	}
}

func normalizeText(obj map[string]json.RawMessage) Text {
	var content string
	if err := json.Unmarshal(obj["content_md"], &content); err != nil {
		content = ""
	}
	return Text{
		ContentMD: content,
		Align:     enum(obj["align"], DefaultTextAlign, AlignStart, AlignCenter),
		Hidden:    hidden(obj),
		Extra:     extra(obj, "content_md", "align"),
	}
}

// source reads "all" or {"category_id": id}. Anything else selects all products.
func source(raw json.RawMessage) Source {
	obj, ok := util.JSONObject(raw)
	if !ok {
		return SourceAll
	}
	id, _ := util.JSONString(obj["category_id"])
	return Source{CategoryID: id, Extra: util.UnknownKeys(obj, "category_id")}
}

func enum(raw json.RawMessage, def string, allowed ...string) string {
	s, _ := util.JSONString(raw)
	return util.Coalesce(util.OneOf(strings.ToLower(s), allowed...), def)
}

// limit keeps only positive integers.
func limit(raw json.RawMessage) *int {
	n, ok := util.JSONInt(raw)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

func hidden(obj map[string]json.RawMessage) bool {
	return util.JSONBoolOr(obj["_hidden"], false)
}

// extra collects the keys a block does not model. The type tag and _hidden
// are always modeled.
func extra(obj map[string]json.RawMessage, known ...string) map[string]json.RawMessage {
	return util.UnknownKeys(obj, append(known, "type", "_hidden")...)
}
