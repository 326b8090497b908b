package tagql

import (
	"fmt"
	"strings"
)

// NodeKind identifies the kind of an AST node.
type NodeKind int

const (
	// KindNone is the terminal "empty expression" leaf. It compiles to
	// the universal filter that matches everything.
	KindNone NodeKind = iota
	// KindTag is a literal tag or a run of concatenated words.
	KindTag
	// KindRegex is a raw, store-native regular expression pattern.
	KindRegex
	// KindOperator is an n-ary boolean combinator ("and" or "or").
	// "not" never survives parsing; it is folded into Negate flags.
	KindOperator
	// KindFunction is a tag-count predicate (eq/lt/le/gt/ge) with a
	// single numeric child.
	KindFunction
)

// Node is a node in the query AST. Children are owned exclusively by
// their parent; transformations build new nodes rather than aliasing
// child slices across parents.
type Node struct {
	Kind     NodeKind
	Text     string // tag text, operator name, or function name
	Children []*Node
	// Negate logically inverts the node. It is a pure boolean XOR
	// accumulator: double negation cancels exactly. Resolution is
	// deferred to emission.
	Negate bool
	// Glob flags are meaningful on KindTag nodes only.
	GlobLeft  bool
	GlobRight bool
}

func newTag(text string) *Node {
	return &Node{Kind: KindTag, Text: text}
}

func newOperator(text string, children ...*Node) *Node {
	return &Node{Kind: KindOperator, Text: text, Children: children}
}

func newFunction(name string, count int) *Node {
	return &Node{Kind: KindFunction, Text: name, Children: []*Node{newTag(fmt.Sprintf("%d", count))}}
}

// withNegate returns a shallow copy of n with the negate flag set as
// given. The original node is left untouched.
func (n *Node) withNegate(negate bool) *Node {
	c := *n
	c.Negate = negate
	return &c
}

// Equal reports whether two nodes are structurally identical: same
// kind, text, negate flag, glob flags, and recursively equal children.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Text != other.Text || n.Negate != other.Negate {
		return false
	}
	if n.GlobLeft != other.GlobLeft || n.GlobRight != other.GlobRight {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// coalesce folds children of same-kind operators into this node, so
// "a and b and c" becomes one 3-child AND instead of nested pairs.
// Applied recursively, child-first. Negated children keep their own
// grouping since their meaning differs from the parent's.
func (n *Node) coalesce() {
	if n.Kind != KindOperator {
		return
	}
	kids := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		child.coalesce()
		if child.Kind == KindOperator && child.Text == n.Text && !child.Negate {
			kids = append(kids, child.Children...)
		} else {
			kids = append(kids, child)
		}
	}
	n.Children = kids
}

func (k NodeKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindTag:
		return "Tag"
	case KindRegex:
		return "Regex"
	case KindOperator:
		return "Operator"
	case KindFunction:
		return "Function"
	}
	return "Unknown"
}

// String renders the node tree in an indented debug form.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *Node) dump(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if n.Negate {
		b.WriteString("not ")
	}
	fmt.Fprintf(b, "%s (%s)", n.Kind, n.Text)
	if n.GlobLeft || n.GlobRight {
		fmt.Fprintf(b, " glob[left=%t right=%t]", n.GlobLeft, n.GlobRight)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		c.dump(b, indent+1)
	}
}
