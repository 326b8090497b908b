package tagql

import (
	"sort"
	"strconv"
)

// Count predicates denote sets of non-negative integers:
//
//	gt N  = (N, inf)    ge N = [N, inf)
//	lt N  = [0, N)      le N = [0, N]
//	eq N  = {N}
//
// and negation takes the set complement over the non-negative domain.
// An intervalSet is the canonical representation of such a set: spans
// sorted by lower bound, pairwise disjoint and non-adjacent.

// unbounded marks a span with no upper limit.
const unbounded = -1

type span struct {
	lo, hi int
}

func (s span) open() bool { return s.hi == unbounded }

type intervalSet []span

func (s intervalSet) empty() bool { return len(s) == 0 }

func (s intervalSet) universal() bool {
	return len(s) == 1 && s[0].lo == 0 && s[0].open()
}

// funcSet returns the integer set a function node denotes, with the
// node's negate flag applied. The parameter was validated at parse
// time, so Atoi cannot fail here.
func funcSet(n *Node) intervalSet {
	count, _ := strconv.Atoi(n.Children[0].Text)

	var s intervalSet
	switch n.Text {
	case "eq":
		s = intervalSet{{count, count}}
	case "lt":
		s = intervalSet{{0, count - 1}}
	case "le":
		s = intervalSet{{0, count}}
	case "gt":
		s = intervalSet{{count + 1, unbounded}}
	case "ge":
		s = intervalSet{{count, unbounded}}
	}

	if n.Negate {
		s = s.complement()
	}
	return s
}

// union merges two sets, folding overlapping and adjacent spans.
func (s intervalSet) union(t intervalSet) intervalSet {
	all := make(intervalSet, 0, len(s)+len(t))
	all = append(all, s...)
	all = append(all, t...)
	if len(all) == 0 {
		return nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].lo < all[j].lo })

	out := intervalSet{all[0]}
	for _, sp := range all[1:] {
		last := &out[len(out)-1]
		if last.open() {
			break
		}
		if sp.lo <= last.hi+1 {
			if sp.open() || sp.hi > last.hi {
				last.hi = sp.hi
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// intersect computes the overlap of two sets.
func (s intervalSet) intersect(t intervalSet) intervalSet {
	return s.complement().union(t.complement()).complement()
}

// complement returns the set's complement over [0, inf).
func (s intervalSet) complement() intervalSet {
	var out intervalSet
	next := 0
	for _, sp := range s {
		if sp.lo > next {
			out = append(out, span{next, sp.lo - 1})
		}
		if sp.open() {
			return out
		}
		next = sp.hi + 1
	}
	return append(out, span{next, unbounded})
}

// express rebuilds AST nodes for a merged set. The returned nodes are
// siblings of an AND when conj is true, of an OR otherwise.
func (s intervalSet) express(conj bool) []*Node {
	// A set missing exactly one point reads best as a negated equality.
	if comp := s.complement(); len(comp) == 1 && comp[0].lo == comp[0].hi {
		node := newFunction("eq", comp[0].lo)
		node.Negate = true
		return []*Node{node}
	}

	if conj {
		if len(s) == 1 {
			return s[0].express()
		}
		// A conjunction cannot carry a union directly; wrap the
		// interval pieces in a single OR child.
		return []*Node{newOperator("or", s.pieces()...)}
	}

	return s.pieces()
}

// pieces renders each span as one OR operand.
func (s intervalSet) pieces() []*Node {
	out := make([]*Node, 0, len(s))
	for _, sp := range s {
		nodes := sp.express()
		if len(nodes) == 1 {
			out = append(out, nodes[0])
		} else {
			out = append(out, newOperator("and", nodes...))
		}
	}
	return out
}

// express renders a single span as conjoined function nodes.
func (sp span) express() []*Node {
	switch {
	case !sp.open() && sp.lo == sp.hi:
		return []*Node{newFunction("eq", sp.lo)}
	case sp.open() && sp.lo == 0:
		// The universal span is collapsed by the caller, never emitted.
		return nil
	case sp.open():
		return []*Node{newFunction("ge", sp.lo)}
	case sp.lo == 0:
		return []*Node{newFunction("le", sp.hi)}
	default:
		return []*Node{newFunction("ge", sp.lo), newFunction("le", sp.hi)}
	}
}
