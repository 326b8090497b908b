package tagql

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	node, err := Parse(input)
	if err != nil {
		t.Fatalf("parse error for %q: %v", input, err)
	}
	return node
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", " ", "   "} {
		node := mustParse(t, input)
		if node.Kind != KindNone {
			t.Errorf("Parse(%q) = %v, want None leaf", input, node)
		}
	}
}

func TestParseSingleTag(t *testing.T) {
	node := mustParse(t, "sunset")
	if node.Kind != KindTag || node.Text != "sunset" || node.Negate {
		t.Errorf("got %v, want plain tag \"sunset\"", node)
	}
}

func TestParseLowercasesInput(t *testing.T) {
	// The whole expression is lowercased before lexing, quoted strings
	// and regex literals included.
	node := mustParse(t, `Beach AND "Sunny Day"`)
	want := newOperator("and", newTag("beach"), newTag("sunny day"))
	if !node.Equal(want) {
		t.Errorf("got:\n%v\nwant:\n%v", node, want)
	}

	re := mustParse(t, "{[A-Z]+}")
	if re.Text != "[a-z]+" {
		t.Errorf("regex body %q, want lowercased \"[a-z]+\"", re.Text)
	}
}

func TestParseWordConcatenation(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"a b c", "a b c"},
		{`a "b  c"`, "a b  c"},
		{`"x" y`, "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if node.Kind != KindTag || node.Text != tt.text {
				t.Errorf("got %v (%q), want tag %q", node.Kind, node.Text, tt.text)
			}
		})
	}
}

func TestParseFlattening(t *testing.T) {
	tests := []struct {
		input string
		want  *Node
	}{
		{"a and b and c", newOperator("and", newTag("a"), newTag("b"), newTag("c"))},
		{"a and (b and c)", newOperator("and", newTag("a"), newTag("b"), newTag("c"))},
		{"(a and b) and c", newOperator("and", newTag("a"), newTag("b"), newTag("c"))},
		{"a or b or c", newOperator("or", newTag("a"), newTag("b"), newTag("c"))},
		{"a or (b or c)", newOperator("or", newTag("a"), newTag("b"), newTag("c"))},
		{"a and b or c", newOperator("and", newTag("a"), newOperator("or", newTag("b"), newTag("c")))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if !node.Equal(tt.want) {
				t.Errorf("got:\n%v\nwant:\n%v", node, tt.want)
			}
		})
	}
}

func TestParseNot(t *testing.T) {
	neg := newTag("b")
	neg.Negate = true

	tests := []struct {
		input string
		want  *Node
	}{
		{"not b", neg},
		{"a and not b", newOperator("and", newTag("a"), neg)},
		{"a not b", newOperator("and", newTag("a"), neg)},
		{"not not b", newTag("b")},
		{"not not not b", neg},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if !node.Equal(tt.want) {
				t.Errorf("got:\n%v\nwant:\n%v", node, tt.want)
			}
		})
	}
}

func TestParseNegatedGroupStaysGrouped(t *testing.T) {
	node := mustParse(t, "not (a and b)")
	if node.Kind != KindOperator || node.Text != "and" || !node.Negate {
		t.Fatalf("got %v, want negated AND", node)
	}
	if len(node.Children) != 2 {
		t.Errorf("got %d children, want 2", len(node.Children))
	}

	// A negated AND must not coalesce into an enclosing AND.
	outer := mustParse(t, "c and not (a and b)")
	if len(outer.Children) != 2 {
		t.Errorf("negated group was flattened: %v", outer)
	}
}

func TestParseGlobs(t *testing.T) {
	tests := []struct {
		input     string
		globLeft  bool
		globRight bool
	}{
		{"*a", true, false},
		{"a*", false, true},
		{"*a*", true, true},
		{"a", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if node.Kind != KindTag || node.GlobLeft != tt.globLeft || node.GlobRight != tt.globRight {
				t.Errorf("got %v, want glob[left=%t right=%t]", node, tt.globLeft, tt.globRight)
			}
		})
	}
}

func TestParseFunction(t *testing.T) {
	node := mustParse(t, "eq 3")
	want := newFunction("eq", 3)
	if !node.Equal(want) {
		t.Errorf("got:\n%v\nwant:\n%v", node, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		target any
	}{
		{"a and b or", &MissingOperandError{}},
		{"a and b or c and", &MissingOperandError{}},
		{"and and and", &MissingOperandError{}},
		{"and b", &MissingOperandError{}},
		{"not", &MissingOperandError{}},
		{"a not", &MissingOperandError{}},
		{"()", &EmptyParensError{}},
		{"( )", &EmptyParensError{}},
		{"(a", &MissingRightParenError{}},
		{"(a and b", &MissingRightParenError{}},
		{"a)", &MissingLeftParenError{}},
		{"eq", &MissingParamError{}},
		{"eq and", &MissingParamError{}},
		{"eq (3)", &MissingParamError{}},
		{"eq x", &BadFuncParamError{}},
		{"eq 1.5", &BadFuncParamError{}},
		{"*", &BadGlobError{}},
		{"* *", &BadGlobError{}},
		{"* (a)", &BadGlobError{}},
		{"* eq 3", &BadGlobError{}},
		{"* {x}", &BadGlobError{}},
		{"a b (c)", &SyntaxError{}},
		{"{x} {y}", &SyntaxError{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !errors.As(err, tt.target) {
				t.Errorf("got %T (%v), want %T", err, err, tt.target)
			}
		})
	}
}

func TestNodeStringDump(t *testing.T) {
	node := mustParse(t, "a and not b")
	dump := node.String()
	if dump == "" {
		t.Fatal("empty dump")
	}
	for _, want := range []string{"Operator (and)", "Tag (a)", "not Tag (b)"} {
		if !containsLine(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}

func containsLine(dump, want string) bool {
	for _, line := range splitLines(dump) {
		if trimIndent(line) == want {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func trimIndent(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}
