package tagql

import "strconv"

// Reduce normalizes a parsed AST into the smallest logically
// equivalent tree: duplicate operands are removed, contradictions and
// tautologies are detected, and sibling count predicates are merged
// into their tightest form. A subtree that always matches collapses to
// the KindNone leaf. Reduction fails fast on combinations that can
// never match rather than emitting an always-false filter.
func Reduce(n *Node) (*Node, error) {
	return reduceNode(n)
}

func reduceNode(n *Node) (*Node, error) {
	switch n.Kind {
	case KindNone, KindTag, KindRegex:
		return n, nil
	case KindFunction:
		if err := checkFuncParam(n); err != nil {
			return nil, err
		}
		return n, nil
	case KindOperator:
		return reduceOperator(n)
	}
	return n, nil
}

// checkFuncParam rejects vacuous count bounds before range analysis:
// "fewer than 0" and "at least 0" say nothing about a non-negative
// count and are treated as authoring errors.
func checkFuncParam(n *Node) error {
	if len(n.Children) != 1 {
		return MissingParamError{Function: n.Text}
	}
	count, err := strconv.Atoi(n.Children[0].Text)
	if err != nil {
		return BadFuncParamError{Function: n.Text, Reason: "must be an integer"}
	}
	if (n.Text == "lt" || n.Text == "ge") && count < 1 {
		return BadFuncParamError{Function: n.Text, Reason: "must be a positive integer"}
	}
	return nil
}

func reduceOperator(n *Node) (*Node, error) {
	conj := n.Text == "and"

	// Reduce children bottom-up, re-splicing any same-operator child a
	// collapse may have exposed.
	kids := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		rc, err := reduceNode(child)
		if err != nil {
			return nil, err
		}
		if rc.Kind == KindOperator && rc.Text == n.Text && !rc.Negate {
			kids = append(kids, rc.Children...)
		} else {
			kids = append(kids, rc)
		}
	}

	// Always-match children follow ordinary short-circuit semantics:
	// AND drops them, OR collapses around them.
	pruned := make([]*Node, 0, len(kids))
	for _, c := range kids {
		if c.Kind == KindNone {
			if conj {
				continue
			}
			return collapseUniversal(n)
		}
		pruned = append(pruned, c)
	}

	// Remove later duplicates of an earlier sibling.
	uniq := make([]*Node, 0, len(pruned))
	for _, c := range pruned {
		dup := false
		for _, seen := range uniq {
			if c.Equal(seen) {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, c)
		}
	}

	// Both polarities of the same plain tag: an AND can never match,
	// an OR always does.
	for i, c := range uniq {
		if c.Kind != KindTag || c.GlobLeft || c.GlobRight {
			continue
		}
		for _, d := range uniq[i+1:] {
			if d.Kind != KindTag || d.GlobLeft || d.GlobRight {
				continue
			}
			if d.Text == c.Text && d.Negate != c.Negate {
				if conj {
					if n.Negate {
						return &Node{Kind: KindNone}, nil
					}
					return nil, ContradictionError{Tag: c.Text}
				}
				return collapseUniversal(n)
			}
		}
	}

	uniq, collapsed, err := mergeRanges(n, uniq)
	if err != nil {
		return nil, err
	}
	if collapsed != nil {
		return collapsed, nil
	}

	switch len(uniq) {
	case 0:
		// Every child was always-match, so the conjunction is too.
		return collapseUniversal(n)
	case 1:
		child := uniq[0]
		if n.Negate {
			child = child.withNegate(!child.Negate)
		}
		return child, nil
	default:
		return &Node{Kind: KindOperator, Text: n.Text, Children: uniq, Negate: n.Negate}, nil
	}
}

// collapseUniversal resolves a node whose children always match. A
// negated always-match can never match, which is surfaced as an error
// rather than silently emitting an always-false filter.
func collapseUniversal(n *Node) (*Node, error) {
	if n.Negate {
		return nil, ContradictionError{}
	}
	return &Node{Kind: KindNone}, nil
}

// mergeRanges intersects (AND) or unions (OR) the sets denoted by
// direct function-node siblings and re-expresses the result minimally.
// A non-nil second return value replaces the whole operator node; the
// node's own negation is already resolved in it.
func mergeRanges(n *Node, kids []*Node) ([]*Node, *Node, error) {
	var funcs []int
	for i, c := range kids {
		if c.Kind == KindFunction {
			funcs = append(funcs, i)
		}
	}
	if len(funcs) < 2 {
		return kids, nil, nil
	}

	conj := n.Text == "and"
	sets := make([]intervalSet, len(funcs))
	for i, idx := range funcs {
		sets[i] = funcSet(kids[idx])
	}

	merged := sets[0]
	spanCount := len(sets[0])
	for _, s := range sets[1:] {
		if conj {
			merged = merged.intersect(s)
		} else {
			merged = merged.union(s)
		}
		spanCount += len(s)
	}

	if merged.empty() {
		// Negating an impossible constraint makes it vacuous, not wrong.
		if n.Negate {
			return nil, &Node{Kind: KindNone}, nil
		}
		return nil, nil, ImpossibleRangeError{}
	}
	if merged.universal() {
		if n.Negate {
			return nil, nil, ImpossibleRangeError{}
		}
		return nil, &Node{Kind: KindNone}, nil
	}

	// A union whose operands were already disjoint and non-adjacent
	// simplified nothing; keep the original predicates untouched.
	if !conj && len(merged) == spanCount {
		return kids, nil, nil
	}

	// Replace the function siblings with the merged predicates at the
	// position of the first one.
	replacement := merged.express(conj)
	out := make([]*Node, 0, len(kids)-len(funcs)+len(replacement))
	for i, c := range kids {
		if c.Kind == KindFunction {
			if i == funcs[0] {
				out = append(out, replacement...)
			}
			continue
		}
		out = append(out, c)
	}
	return out, nil, nil
}
