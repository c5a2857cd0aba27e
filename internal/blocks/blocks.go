// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package blocks models the landing page as an ordered list of typed blocks.
//
// A Block is a closed sum type: Hero, CategoriesWall, Products, Text, and
// Unknown for tags written by a newer schema. Known blocks keep keys they do
// not recognize in Extra so a re-save never strips them.
package blocks

import (
	"encoding/json"

	"github.com/olegiv/ostore-go/internal/util"
)

// Kind is the block type tag stored under "type".
type Kind string

// Block kinds.
const (
	KindHero           Kind = "hero"
	KindCategoriesWall Kind = "categories_wall"
	KindProducts       Kind = "products"
	KindText           Kind = "text"
)

// Block is one section of the landing page.
type Block interface {
	Kind() Kind
	IsHidden() bool
	withHidden(hidden bool) Block
}

// View modes.
const (
	ViewGrid  = "grid"
	ViewGrid1 = "grid_1"
	ViewGrid2 = "grid_2"
	ViewGrid3 = "grid_3"
	ViewList  = "list"
	ViewLinks = "links"
)

// Products block CTA kinds.
const (
	CTAProduct  = "product"
	CTAWhatsApp = "whatsapp"
	CTANone     = "none"
)

// Category navigation styles.
const (
	NavChips = "chips"
	NavTabs  = "tabs"
)

// Text alignments.
const (
	AlignStart  = "start"
	AlignCenter = "center"
)

// Defaults applied by Normalize.
const (
	DefaultWallView     = ViewGrid
	DefaultWallColumns  = 2
	DefaultProductsView = ViewGrid3
	DefaultProductsCTA  = CTAProduct
	DefaultCategoryNav  = NavChips
	DefaultTextAlign    = AlignStart
)

// Hero is the header section with avatar, socials and CTAs.
type Hero struct {
	ShowAvatar  bool `json:"show_avatar"`
	ShowSocials bool `json:"show_socials"`
	ShowCTAs    bool `json:"show_ctas"`
	Dense       bool `json:"dense"`
	Hidden      bool `json:"_hidden,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewHero returns a hero block with default options.
func NewHero() Hero {
	return Hero{ShowAvatar: true, ShowSocials: true, ShowCTAs: true}
}

// Kind returns KindHero.
func (Hero) Kind() Kind {
	return KindHero
}

// IsHidden reports whether the owner hid the block.
func (b Hero) IsHidden() bool {
	return b.Hidden
}

func (b Hero) withHidden(h bool) Block {
	b.Hidden = h
	return b
}

// MarshalJSON writes the hero with its type tag and unmodeled keys.
func (b Hero) MarshalJSON() ([]byte, error) {
	type alias Hero
	return encodeObject(KindHero, alias(b), b.Extra)
}

// CategoriesWall lists the store's categories.
type CategoriesWall struct {
	View    string `json:"view"`
	Columns int    `json:"columns"`
	Limit   *int   `json:"limit,omitempty"`
	Hidden  bool   `json:"_hidden,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewCategoriesWall returns a categories wall with default options.
func NewCategoriesWall() CategoriesWall {
	return CategoriesWall{View: DefaultWallView, Columns: DefaultWallColumns}
}

// Kind returns KindCategoriesWall.
func (CategoriesWall) Kind() Kind {
	return KindCategoriesWall
}

// IsHidden reports whether the owner hid the block.
func (b CategoriesWall) IsHidden() bool {
	return b.Hidden
}

func (b CategoriesWall) withHidden(h bool) Block {
	b.Hidden = h
	return b
}

// MarshalJSON writes the categories wall with its type tag and unmodeled keys.
func (b CategoriesWall) MarshalJSON() ([]byte, error) {
	type alias CategoriesWall
	return encodeObject(KindCategoriesWall, alias(b), b.Extra)
}

// Source selects the products shown by a Products block.
// An empty CategoryID means all products.
type Source struct {
	CategoryID string

	// Extra holds source keys this version does not model, such as include_sub.
	Extra map[string]json.RawMessage
}

// SourceAll selects every visible product.
var SourceAll = Source{}

// IsAll reports whether the source is not scoped to a category.
func (s Source) IsAll() bool {
	return s.CategoryID == ""
}

// MarshalJSON encodes "all" or {"category_id": id}. A source carrying
// unmodeled keys is always written as an object.
func (s Source) MarshalJSON() ([]byte, error) {
	if s.IsAll() && len(s.Extra) == 0 {
		return []byte(`"all"`), nil
	}
	return util.MarshalWithExtra(struct {
		CategoryID string `json:"category_id,omitempty"`
	}{s.CategoryID}, s.Extra)
}

// Products is a product grid or list.
type Products struct {
	Source           Source `json:"source"`
	View             string `json:"view"`
	ShowPrice        bool   `json:"show_price"`
	ShowCaption      bool   `json:"show_caption"`
	Limit            *int   `json:"limit,omitempty"`
	CTA              string `json:"cta"`
	ShowCategoryNav  bool   `json:"show_category_nav"`
	CategoryNavStyle string `json:"category_nav_style"`
	Hidden           bool   `json:"_hidden,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewProducts returns a products block with default options.
func NewProducts() Products {
	return Products{
		Source:           SourceAll,
		View:             DefaultProductsView,
		CTA:              DefaultProductsCTA,
		CategoryNavStyle: DefaultCategoryNav,
	}
}

// Kind returns KindProducts.
func (Products) Kind() Kind {
	return KindProducts
}

// IsHidden reports whether the owner hid the block.
func (b Products) IsHidden() bool {
	return b.Hidden
}

func (b Products) withHidden(h bool) Block {
	b.Hidden = h
	return b
}

// MarshalJSON writes the products block with its type tag and unmodeled keys.
func (b Products) MarshalJSON() ([]byte, error) {
	type alias Products
	return encodeObject(KindProducts, alias(b), b.Extra)
}

// Text is a free-form markdown section.
type Text struct {
	ContentMD string `json:"content_md"`
	Align     string `json:"align"`
	Hidden    bool   `json:"_hidden,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewText returns an empty text block.
func NewText() Text {
	return Text{Align: DefaultTextAlign}
}

// Kind returns KindText.
func (Text) Kind() Kind {
	return KindText
}

// IsHidden reports whether the owner hid the block.
func (b Text) IsHidden() bool {
	return b.Hidden
}

func (b Text) withHidden(h bool) Block {
	b.Hidden = h
	return b
}

// MarshalJSON writes the text block with its type tag and unmodeled keys.
func (b Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return encodeObject(KindText, alias(b), b.Extra)
}

// Unknown holds a block this version does not understand, verbatim.
type Unknown struct {
	Raw json.RawMessage
}

// Kind returns the stored type tag, or "" when there is none.
func (b Unknown) Kind() Kind {
	obj, ok := util.JSONObject(b.Raw)
	if !ok {
		return ""
	}
	var tag string
	_ = json.Unmarshal(obj["type"], &tag)
	return Kind(tag)
}

// IsHidden reads the stored _hidden flag.
func (b Unknown) IsHidden() bool {
	obj, ok := util.JSONObject(b.Raw)
	if !ok {
		return false
	}
	return util.JSONBoolOr(obj["_hidden"], false)
}

// withHidden rewrites the _hidden key. Non-object values cannot be hidden.
func (b Unknown) withHidden(h bool) Block {
	obj, ok := util.JSONObject(b.Raw)
	if !ok {
		return b
	}
	if h {
		obj["_hidden"] = json.RawMessage("true")
	} else {
		delete(obj, "_hidden")
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return b
	}
	return Unknown{Raw: raw}
}

// MarshalJSON writes the stored block back unchanged.
func (b Unknown) MarshalJSON() ([]byte, error) {
	if len(b.Raw) == 0 {
		return []byte("null"), nil
	}
	return b.Raw, nil
}

// encodeObject writes a known block as one flat object with its type tag.
// Keys come out sorted, which keeps the encoding byte-stable.
func encodeObject(kind Kind, fields any, extra map[string]json.RawMessage) ([]byte, error) {
	tag, err := json.Marshal(string(kind))
	if err != nil {
		return nil, err
	}
	all := make(map[string]json.RawMessage, len(extra)+1)
	for k, v := range extra {
		all[k] = v
	}
	all["type"] = tag
	return util.MarshalWithExtra(fields, all)
}
