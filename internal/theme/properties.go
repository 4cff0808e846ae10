package theme

import (
	"reflect"
	"sort"
	"strings"
)

// PathSeparator joins property names and collection keys in a modification path.
const PathSeparator = "."

// Properties is an open property-name to value mapping.
// Nested records are map[string]any (or Properties) values.
type Properties map[string]any

// JoinPath joins path segments with PathSeparator, skipping empty segments.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, PathSeparator)
}

// Get returns the value stored directly under key.
func (p Properties) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// GetPath resolves a dot-delimited path through nested records.
// A path without separators behaves like Get.
func (p Properties) GetPath(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = map[string]any(p)
	for _, segment := range strings.Split(path, PathSeparator) {
		m, ok := asMap(current)
		if !ok || m == nil {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath writes value at a dot-delimited path, creating intermediate
// records as needed. Intermediate scalars are replaced by records.
func (p Properties) SetPath(path string, value any) {
	if p == nil || path == "" {
		return
	}
	segments := strings.Split(path, PathSeparator)
	m := map[string]any(p)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := asMap(m[segment])
		if !ok || next == nil {
			next = make(map[string]any)
			m[segment] = next
		}
		m = next
	}
	m[segments[len(segments)-1]] = value
}

// Record returns the nested record stored under key, if any.
func (p Properties) Record(key string) (Properties, bool) {
	v, ok := p.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	return Properties(m), true
}

// SortedKeys returns the keys of p in lexical order.
func (p Properties) SortedKeys() []string {
	return Keys(p)
}

// SameValue reports whether a and b are identical under the reset
// comparison rule. Scalars compare by value and every numeric kind compares
// as a number. Maps and slices compare by identity, so two distinct
// composites with equal contents are not the same value.
//
// Empty slices are the exception: Go gives every zero-length allocation
// the same address, so two separately allocated empty slices compare as
// the same value. Nil and non-nil empty slices still differ.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice:
		if vb.Kind() != va.Kind() {
			return false
		}
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if va.Kind() == reflect.Slice && va.Len() != vb.Len() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	}

	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Properties:
		return map[string]any(m), true
	}
	return nil, false
}

// Keys returns the keys of m in lexical order.
func Keys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
