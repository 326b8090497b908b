package tagql

import (
	"encoding/json"
	"regexp"
)

// Filter is the structured document a downstream document-query engine
// consumes. Keys are either field paths or the documented operators
// ($and, $or, $ne, $not, $size, $exists); values are strings, compiled
// patterns, ints, bools, nested Filters or []Filter. The empty Filter
// matches everything.
type Filter map[string]any

// Equal reports whether two filters are structurally identical.
// Compiled patterns compare by their pattern text.
func (f Filter) Equal(other Filter) bool {
	return valueEqual(f, other)
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case Filter:
		bv, ok := b.(Filter)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !valueEqual(v, w) {
				return false
			}
		}
		return true
	case []Filter:
		bv, ok := b.([]Filter)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !valueEqual(v, bv[i]) {
				return false
			}
		}
		return true
	case *regexp.Regexp:
		bv, ok := b.(*regexp.Regexp)
		return ok && av.String() == bv.String()
	default:
		return a == b
	}
}

// MarshalJSON renders the filter as extended JSON, with compiled
// patterns written as {"$regex": "..."} operators.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue(f))
}

func jsonValue(v any) any {
	switch val := v.(type) {
	case Filter:
		out := make(map[string]any, len(val))
		for k, sub := range val {
			out[k] = jsonValue(sub)
		}
		return out
	case []Filter:
		out := make([]any, len(val))
		for i, sub := range val {
			out[i] = jsonValue(sub)
		}
		return out
	case *regexp.Regexp:
		return map[string]any{"$regex": val.String()}
	default:
		return v
	}
}
