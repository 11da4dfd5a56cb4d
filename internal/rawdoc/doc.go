// Package rawdoc wraps a decoded upstream JSON object with defensive typed
// accessors. Upstream field names and presence vary across resource kinds and
// over time, so every accessor reports absence instead of failing.
package rawdoc

import (
	"encoding/json"
	"sort"
	"strings"
)

// Doc is a single decoded upstream record.
type Doc map[string]any

// Parse decodes a JSON object body into a Doc. A non-object body returns
// (nil, false).
func Parse(data []byte) (Doc, bool) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return Doc(m), true
}

// FromAny converts an already-decoded value into a Doc when it is an object.
func FromAny(v any) (Doc, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Doc(m), true
}

// Keys returns the sorted top-level keys, used to log unrecognized shapes.
func (d Doc) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TryString returns the field as a string. JSON decodes numbers as float64,
// so numeric values are not coerced; only real strings match.
func (d Doc) TryString(name string) (string, bool) {
	v, ok := d[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// String returns the field as a string or "" when absent or mistyped.
func (d Doc) String(name string) string {
	s, _ := d.TryString(name)
	return s
}

// TryInt returns the field as an int, accepting JSON numbers with no
// fractional part.
func (d Doc) TryInt(name string) (int, bool) {
	v, ok := d[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, false
		}
		return i, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// IntOr returns the field as an int or def when absent or mistyped.
func (d Doc) IntOr(name string, def int) int {
	if i, ok := d.TryInt(name); ok {
		return i
	}
	return def
}

// TryBool returns the field as a bool.
func (d Doc) TryBool(name string) (bool, bool) {
	v, ok := d[name]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Bool returns the field as a bool or false when absent or mistyped.
func (d Doc) Bool(name string) bool {
	b, _ := d.TryBool(name)
	return b
}

// TryArray returns the field as a JSON array.
func (d Doc) TryArray(name string) ([]any, bool) {
	v, ok := d[name]
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	return a, ok
}

// FirstArray probes the named fields in order and returns the first
// non-empty array, along with the key that matched.
func (d Doc) FirstArray(names ...string) ([]any, string, bool) {
	for _, name := range names {
		if a, ok := d.TryArray(name); ok && len(a) > 0 {
			return a, name, true
		}
	}
	return nil, "", false
}

// FirstString probes the named fields in order and returns the first
// non-empty string value.
func (d Doc) FirstString(names ...string) string {
	for _, name := range names {
		if s, ok := d.TryString(name); ok && s != "" {
			return s
		}
	}
	return ""
}

// StringSlice returns the field as a slice of strings, skipping non-string
// elements rather than failing on them.
func (d Doc) StringSlice(name string) []string {
	a, ok := d.TryArray(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Marshal re-encodes the document for raw-payload storage.
func (d Doc) Marshal() json.RawMessage {
	data, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil
	}
	return data
}

// TagSegment extracts a segment from a hierarchical dotted tag. Given tags
// like "Item.Resource.Raw", TagSegment(tags, "Item.", 1) returns "Resource"
// and TagSegment(tags, "Item.", 2) returns "Raw". The first tag with the
// prefix and a deep enough path wins; no match yields "".
func TagSegment(tags []string, prefix string, index int) string {
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		parts := strings.Split(tag, ".")
		if index < len(parts) {
			return parts[index]
		}
	}
	return ""
}
