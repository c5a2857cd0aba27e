// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"cmp"
	"slices"

	"github.com/olegiv/ostore-go/internal/blocks"
	"github.com/olegiv/ostore-go/internal/settings"
)

// Shape is how one item is drawn. Visual styling comes from the theme.
type Shape string

// Item shapes.
const (
	ShapeTile Shape = "tile"
	ShapeRow  Shape = "row"
	ShapeLink Shape = "link"
)

// Layout is the arrangement of a projected list.
type Layout struct {
	Shape   Shape `json:"shape"`
	Columns int   `json:"columns,omitempty"`
}

// LayoutFor maps a view mode to a layout. Plain "grid" uses columns, which
// is clamped to 2..4. Unknown views are drawn as a two-column grid.
func LayoutFor(view string, columns int) Layout {
	switch view {
	case blocks.ViewGrid1:
		return Layout{Shape: ShapeTile, Columns: 1}
	case blocks.ViewGrid2:
		return Layout{Shape: ShapeTile, Columns: 2}
	case blocks.ViewGrid3:
		return Layout{Shape: ShapeTile, Columns: 3}
	case blocks.ViewList:
		return Layout{Shape: ShapeRow}
	case blocks.ViewLinks:
		return Layout{Shape: ShapeLink}
	}
	if columns < 2 || columns > 4 {
		columns = 2
	}
	return Layout{Shape: ShapeTile, Columns: columns}
}

// CategoryOptions controls ProjectCategories.
type CategoryOptions struct {
	Slug    string
	View    string
	Columns int
	Limit   int // 0 means no limit
	Active  string
}

// CategoryItem is one render-ready category.
type CategoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CoverImg string `json:"cover_img,omitempty"`
	URL      string `json:"url"`
	Active   bool   `json:"active,omitempty"`
}

// CategoryList is a projected categories wall.
type CategoryList struct {
	Layout Layout         `json:"layout"`
	Items  []CategoryItem `json:"items"`
}

// ProjectCategories orders categories by position and links each to its
// filtered product list.
func ProjectCategories(categories []Category, opts CategoryOptions) CategoryList {
	sorted := slices.Clone(categories)
	slices.SortStableFunc(sorted, func(a, b Category) int {
		return cmp.Compare(a.Position, b.Position)
	})
	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}

	items := make([]CategoryItem, 0, len(sorted))
	for _, c := range sorted {
		items = append(items, CategoryItem{
			ID:       c.ID,
			Name:     c.Name,
			CoverImg: c.CoverImg,
			URL:      CategoryURL(opts.Slug, c.ID),
			Active:   opts.Active != "" && c.ID == opts.Active,
		})
	}
	return CategoryList{Layout: LayoutFor(opts.View, opts.Columns), Items: items}
}

// ProductOptions controls ProjectProducts.
type ProductOptions struct {
	Slug string
	View string

	// SourceCategory is the block's fixed category, "" for all products.
	SourceCategory string
	// ActiveCategory is the category the shopper selected, if any.
	// It narrows only blocks whose source is all products.
	ActiveCategory string
	// Categories is the catalog's category snapshot. When non-nil, a filter
	// naming a category outside it yields no items.
	Categories []Category

	Sort        string
	Limit       int // 0 means no limit
	ShowPrice   bool
	ShowCaption bool
	CTA         string

	// WhatsApp is the merchant phone; empty disables WhatsApp CTAs.
	WhatsApp string
	// CTAVisible gates each CTA kind. Nil enables every kind.
	CTAVisible func(kind string) bool

	Currency string
	Locale   string
}

// ProductItem is one render-ready product.
type ProductItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ThumbURL string `json:"thumb_url,omitempty"`
	Price    string `json:"price,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Link     Link   `json:"link"`
	CTAs     []CTA  `json:"ctas"`
	Button   *CTA   `json:"button,omitempty"`
}

// ProductList is a projected products block.
type ProductList struct {
	Layout   Layout        `json:"layout"`
	Category string        `json:"category,omitempty"`
	Items    []ProductItem `json:"items"`
}

// FilterCategory is the category a products block is narrowed to.
func (o ProductOptions) FilterCategory() string {
	if o.SourceCategory != "" {
		return o.SourceCategory
	}
	return o.ActiveCategory
}

// ProjectProducts filters, sorts and limits products and resolves each
// product's link, CTAs and surfaced fields. A filter naming a category that
// no longer exists produces an empty list.
func ProjectProducts(products []Product, opts ProductOptions) ProductList {
	filter := opts.FilterCategory()
	out := ProductList{
		Layout:   LayoutFor(opts.View, 3),
		Category: filter,
		Items:    []ProductItem{},
	}
	if filter != "" && opts.Categories != nil && !hasCategory(opts.Categories, filter) {
		return out
	}

	selected := make([]Product, 0, len(products))
	for _, p := range products {
		if !p.Visible {
			continue
		}
		if filter != "" && p.CategoryID != filter {
			continue
		}
		selected = append(selected, p)
	}

	SortProducts(selected, opts.Sort)
	if opts.Limit > 0 && len(selected) > opts.Limit {
		selected = selected[:opts.Limit]
	}

	for _, p := range selected {
		out.Items = append(out.Items, projectProduct(p, opts, filter))
	}
	return out
}

func projectProduct(p Product, opts ProductOptions, filter string) ProductItem {
	item := ProductItem{
		ID:       p.ID,
		Title:    p.Title,
		ThumbURL: p.ThumbURL,
		Link:     PrimaryLink(opts.Slug, p, filter),
		CTAs:     ProductCTAs(p, opts.WhatsApp, opts.CTAVisible),
	}
	if opts.ShowPrice && p.Price != nil {
		item.Price = FormatPrice(*p.Price, opts.Currency, opts.Locale)
	}
	if opts.ShowCaption {
		item.Caption = p.Caption
	}
	item.Button = BlockButton(opts.CTA, opts.Slug, p, filter, opts.WhatsApp)
	return item
}

func hasCategory(categories []Category, id string) bool {
	return slices.ContainsFunc(categories, func(c Category) bool { return c.ID == id })
}

// SortProducts orders products in place. Products without a price or
// creation time sort last; ties keep manual position order.
func SortProducts(products []Product, order string) {
	byPosition := func(a, b Product) int { return cmp.Compare(a.Position, b.Position) }

	var less func(a, b Product) int
	switch order {
	case settings.SortNewest:
		less = func(a, b Product) int {
			if c := nilsLast(a.CreatedAt == nil, b.CreatedAt == nil); c != 0 {
				return c
			}
			if a.CreatedAt != nil && !a.CreatedAt.Equal(*b.CreatedAt) {
				return b.CreatedAt.Compare(*a.CreatedAt)
			}
			return byPosition(a, b)
		}
	case settings.SortPriceAsc, settings.SortPriceDesc:
		desc := order == settings.SortPriceDesc
		less = func(a, b Product) int {
			if c := nilsLast(a.Price == nil, b.Price == nil); c != 0 {
				return c
			}
			if a.Price != nil && *a.Price != *b.Price {
				if desc {
					return cmp.Compare(*b.Price, *a.Price)
				}
				return cmp.Compare(*a.Price, *b.Price)
			}
			return byPosition(a, b)
		}
	default:
		less = byPosition
	}
	slices.SortStableFunc(products, less)
}

func nilsLast(aNil, bNil bool) int {
	switch {
	case aNil == bNil:
		return 0
	case aNil:
		return 1
	default:
		return -1
	}
}
