package tagql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Emit walks a canonical (reduced) AST and produces the filter
// document for the given field. It is total over canonical trees; an
// operator or function that somehow survived reduction incomplete
// re-raises the corresponding error.
func Emit(n *Node, field string) (Filter, error) {
	switch n.Kind {
	case KindNone:
		return Filter{}, nil
	case KindTag:
		return emitTag(n, field), nil
	case KindRegex:
		return emitRegex(n, field)
	case KindFunction:
		return emitFunction(n, field)
	case KindOperator:
		return emitOperator(n, field)
	}
	return nil, fmt.Errorf("unknown node kind %d", n.Kind)
}

func emitTag(n *Node, field string) Filter {
	if !n.GlobLeft && !n.GlobRight {
		if n.Negate {
			return Filter{field: Filter{"$ne": n.Text}}
		}
		return Filter{field: n.Text}
	}

	// The literal portion is pattern-escaped; globbing picks the
	// anchoring. Both sides globbed means unanchored containment.
	pattern := regexp.QuoteMeta(n.Text)
	if !n.GlobLeft {
		pattern = "^" + pattern
	} else if !n.GlobRight {
		pattern = pattern + "$"
	}

	re := regexp.MustCompile(pattern)
	if n.Negate {
		return Filter{field: Filter{"$not": re}}
	}
	return Filter{field: re}
}

func emitRegex(n *Node, field string) (Filter, error) {
	// A fully anchored pattern without metacharacters is just a string
	// in disguise; emit plain equality for it.
	if lit, ok := literalPattern(n.Text); ok {
		return emitTag(&Node{Kind: KindTag, Text: lit, Negate: n.Negate}, field), nil
	}

	re, err := regexp.Compile(n.Text)
	if err != nil {
		return nil, BadRegexError{Pattern: n.Text, Message: regexErrMessage(err)}
	}

	if n.Negate {
		return Filter{field: Filter{"$not": re}}, nil
	}
	return Filter{field: re}, nil
}

// literalPattern reports whether pattern is of the form ^...$ with a
// metacharacter-free body, returning the body when it is.
func literalPattern(pattern string) (string, bool) {
	if len(pattern) < 2 || pattern[0] != '^' || pattern[len(pattern)-1] != '$' {
		return "", false
	}
	body := pattern[1 : len(pattern)-1]
	if strings.ContainsAny(body, `\.+*?()|[]{}^$`) {
		return "", false
	}
	return body, true
}

// regexErrMessage strips the "error parsing regexp: " prefix the Go
// engine puts in front of its diagnostics.
func regexErrMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "error parsing regexp: ")
}

// emitFunction translates a count predicate into existence and size
// assertions against the ordinal "field.index" representation.
func emitFunction(n *Node, field string) (Filter, error) {
	if len(n.Children) != 1 {
		return nil, MissingParamError{Function: n.Text}
	}
	count, err := strconv.Atoi(n.Children[0].Text)
	if err != nil {
		return nil, BadFuncParamError{Function: n.Text, Reason: "must be an integer"}
	}

	switch n.Text {
	case "eq":
		if n.Negate {
			if count == 0 {
				// "any tags at all" needs no disjunction.
				return Filter{indexKey(field, 0): Filter{"$exists": true}}, nil
			}
			return Filter{"$or": []Filter{
				{indexKey(field, count - 1): Filter{"$exists": false}},
				{indexKey(field, count): Filter{"$exists": true}},
			}}, nil
		}
		return Filter{field: Filter{"$size": count}}, nil

	case "lt":
		if count < 1 {
			return nil, BadFuncParamError{Function: n.Text, Reason: "must be a positive integer"}
		}
		return Filter{indexKey(field, count - 1): Filter{"$exists": n.Negate}}, nil

	case "le":
		return Filter{indexKey(field, count): Filter{"$exists": n.Negate}}, nil

	case "gt":
		return Filter{indexKey(field, count): Filter{"$exists": !n.Negate}}, nil

	case "ge":
		if count < 1 {
			return nil, BadFuncParamError{Function: n.Text, Reason: "must be a positive integer"}
		}
		return Filter{indexKey(field, count - 1): Filter{"$exists": !n.Negate}}, nil
	}

	return nil, fmt.Errorf("unknown function %q", n.Text)
}

func indexKey(field string, index int) string {
	return fmt.Sprintf("%s.%d", field, index)
}

func emitOperator(n *Node, field string) (Filter, error) {
	if len(n.Children) < 2 {
		return nil, MissingOperandError{Operator: n.Text}
	}

	name := n.Text
	kids := n.Children
	if n.Negate {
		// De Morgan as a flag flip: swap the connective and invert each
		// child on the way down instead of rewriting the tree.
		if name == "and" {
			name = "or"
		} else {
			name = "and"
		}
		flipped := make([]*Node, len(kids))
		for i, c := range kids {
			flipped[i] = c.withNegate(!c.Negate)
		}
		kids = flipped
	}

	subs := make([]Filter, 0, len(kids))
	for _, c := range kids {
		sub, err := Emit(c, field)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return Filter{"$" + name: subs}, nil
}
