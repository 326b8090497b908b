// Package engine evaluates compiled filter documents against JSON
// documents. It implements the subset of filter operators the compiler
// emits: $and, $or, $ne, $not, $size, $exists and bare field equality.
package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coffersTech/tagquery/internal/pkg/tagql"
	"github.com/valyala/fastjson"
)

// Matches reports whether doc satisfies every clause of the filter.
// An empty filter matches everything.
func Matches(f tagql.Filter, doc *fastjson.Value) bool {
	for key, want := range f {
		if !matchClause(doc, key, want) {
			return false
		}
	}
	return true
}

func matchClause(doc *fastjson.Value, key string, want any) bool {
	switch key {
	case "$and":
		subs, ok := want.([]tagql.Filter)
		if !ok {
			return false
		}
		for _, sub := range subs {
			if !Matches(sub, doc) {
				return false
			}
		}
		return true

	case "$or":
		subs, ok := want.([]tagql.Filter)
		if !ok {
			return false
		}
		for _, sub := range subs {
			if Matches(sub, doc) {
				return true
			}
		}
		return false
	}

	return matchField(lookup(doc, key), want)
}

// matchField applies a single field clause to the resolved value,
// which is nil when the path does not exist in the document.
func matchField(v *fastjson.Value, want any) bool {
	switch w := want.(type) {
	case string:
		return containsString(v, w)

	case *regexp.Regexp:
		return matchesPattern(v, w)

	case tagql.Filter:
		for op, arg := range w {
			if !matchOperator(v, op, arg) {
				return false
			}
		}
		return true
	}
	return false
}

func matchOperator(v *fastjson.Value, op string, arg any) bool {
	switch op {
	case "$exists":
		b, ok := arg.(bool)
		return ok && (v != nil) == b

	case "$size":
		n, ok := arg.(int)
		if !ok || v == nil || v.Type() != fastjson.TypeArray {
			return false
		}
		return len(v.GetArray()) == n

	case "$ne":
		s, ok := arg.(string)
		return ok && !containsString(v, s)

	case "$not":
		re, ok := arg.(*regexp.Regexp)
		return ok && !matchesPattern(v, re)
	}
	return false
}

// containsString matches MongoDB's equality semantics for array
// fields: a scalar string compares directly, an array matches when any
// element equals the wanted string. A missing field never matches.
func containsString(v *fastjson.Value, want string) bool {
	if v == nil {
		return false
	}
	if v.Type() == fastjson.TypeArray {
		for _, elem := range v.GetArray() {
			if s, ok := stringValue(elem); ok && s == want {
				return true
			}
		}
		return false
	}
	s, ok := stringValue(v)
	return ok && s == want
}

func matchesPattern(v *fastjson.Value, re *regexp.Regexp) bool {
	if v == nil {
		return false
	}
	if v.Type() == fastjson.TypeArray {
		for _, elem := range v.GetArray() {
			if s, ok := stringValue(elem); ok && re.MatchString(s) {
				return true
			}
		}
		return false
	}
	s, ok := stringValue(v)
	return ok && re.MatchString(s)
}

func stringValue(v *fastjson.Value) (string, bool) {
	if v.Type() != fastjson.TypeString {
		return "", false
	}
	return string(v.GetStringBytes()), true
}

// lookup resolves a dotted path against the document. Numeric path
// segments index into arrays, so "tags.3" resolves to the fourth
// element of the tags array when it exists.
func lookup(doc *fastjson.Value, path string) *fastjson.Value {
	v := doc
	for _, seg := range strings.Split(path, ".") {
		if v == nil {
			return nil
		}
		if idx, err := strconv.Atoi(seg); err == nil && v.Type() == fastjson.TypeArray {
			arr := v.GetArray()
			if idx < 0 || idx >= len(arr) {
				return nil
			}
			v = arr[idx]
			continue
		}
		if v.Type() != fastjson.TypeObject {
			return nil
		}
		v = v.Get(seg)
	}
	return v
}
