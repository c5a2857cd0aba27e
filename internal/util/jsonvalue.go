// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Lenient decoders for loosely-typed persisted documents.
// Older clients stored booleans as "true"/"1" and numbers as strings,
// so every decoder accepts those shapes and reports ok=false for anything else.

// decodeAny unmarshals raw into an untyped value. JSON null and empty input are "absent".
func decodeAny(raw json.RawMessage) (any, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// JSONBool decodes a boolean, accepting "true"/"false"/"1"/"0" and numbers.
func JSONBool(raw json.RawMessage) (bool, bool) {
	v, ok := decodeAny(raw)
	if !ok {
		return false, false
	}
	switch v.(type) {
	case bool, string, float64:
	default:
		return false, false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// JSONBoolOr decodes a boolean or returns def.
func JSONBoolOr(raw json.RawMessage, def bool) bool {
	if b, ok := JSONBool(raw); ok {
		return b
	}
	return def
}

// JSONString decodes a string value. Numbers are accepted and formatted,
// which keeps numeric ids from older documents usable.
func JSONString(raw json.RawMessage) (string, bool) {
	v, ok := decodeAny(raw)
	if !ok {
		return "", false
	}
	switch v.(type) {
	case string, float64:
	default:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// JSONInt decodes an integer from a number or numeric string.
// Fractional numbers are rejected.
func JSONInt(raw json.RawMessage) (int, bool) {
	v, ok := decodeAny(raw)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := cast.ToIntE(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// JSONObject decodes a JSON object into its raw members.
func JSONObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// JSONArray decodes a JSON array into its raw elements.
func JSONArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// UnknownKeys returns the members of obj not named in known, or nil when
// every member is known.
func UnknownKeys(obj map[string]json.RawMessage, known ...string) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for k, v := range obj {
		if slices.Contains(known, k) {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = v
	}
	return out
}

// MarshalWithExtra encodes v, which must encode to a JSON object, and adds
// the members of extra that v does not set itself. Keys come out sorted, so
// the encoding is byte-stable.
func MarshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(body, &known); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(known)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

// IsJSONNull reports whether raw is absent or the JSON literal null.
func IsJSONNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// maxDocumentDepth bounds how many times a JSON-encoded string is unwrapped.
// Some clients stored the document as a string, and a few stored that string again.
const maxDocumentDepth = 3

// RawDocument converts a stored value into raw JSON. It accepts raw bytes,
// JSON text, JSON-encoded strings holding JSON text, and any marshalable value.
// It returns nil when the value cannot be turned into JSON.
func RawDocument(v any) json.RawMessage {
	var raw json.RawMessage
	switch d := v.(type) {
	case nil:
		return nil
	case json.RawMessage:
		raw = d
	case []byte:
		raw = d
	case string:
		raw = json.RawMessage(d)
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return nil
		}
		raw = b
	}

	for i := 0; i < maxDocumentDepth; i++ {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '"' {
			break
		}
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		raw = json.RawMessage(inner)
	}
	if !json.Valid(raw) {
		return nil
	}
	return raw
}
