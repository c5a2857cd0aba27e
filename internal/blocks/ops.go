// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blocks

import "slices"

// Reorder moves the block at from to position to. Either index out of range
// returns an unchanged copy, since drag-and-drop indices may be stale.
func Reorder(l List, from, to int) List {
	out := slices.Clone(l)
	if from < 0 || from >= len(l) || to < 0 || to >= len(l) || from == to {
		return out
	}
	b := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, b)
}

// ToggleHidden flips _hidden on the block at i. Out of range returns an
// unchanged copy.
func ToggleHidden(l List, i int) List {
	out := slices.Clone(l)
	if i < 0 || i >= len(out) {
		return out
	}
	out[i] = out[i].withHidden(!out[i].IsHidden())
	return out
}

// Remove deletes the block at i. Out of range returns an unchanged copy.
func Remove(l List, i int) List {
	out := slices.Clone(l)
	if i < 0 || i >= len(out) {
		return out
	}
	return slices.Delete(out, i, i+1)
}

// New returns a default block of the given kind.
func New(kind Kind) (Block, bool) {
	switch kind {
	case KindHero:
		return NewHero(), true
	case KindCategoriesWall:
		return NewCategoriesWall(), true
	case KindProducts:
		return NewProducts(), true
	case KindText:
		return NewText(), true
	}
	return nil, false
}

// Append adds a default block of the given kind at the end of the list.
// Unknown kinds return an unchanged copy.
func Append(l List, kind Kind) List {
	out := slices.Clone(l)
	b, ok := New(kind)
	if !ok {
		return out
	}
	return append(out, b)
}
