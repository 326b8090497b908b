package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/coffersTech/tagquery/internal/pkg/tagql"
)

var testDocs = []string{
	`{"id": 0, "tags": ["beach", "sunset"]}`,
	`{"id": 1, "tags": ["beach", "sunrise", "surf"]}`,
	`{"id": 2, "tags": ["mountain"]}`,
	`{"id": 3, "tags": []}`,
	`{"id": 4, "name": "untagged"}`,
}

func parseDocs(t *testing.T, raw []string) []*fastjson.Value {
	t.Helper()
	docs := make([]*fastjson.Value, len(raw))
	for i, r := range raw {
		var p fastjson.Parser
		v, err := p.Parse(r)
		require.NoError(t, err)
		docs[i] = v
	}
	return docs
}

// matchingIDs compiles the expression and returns the ids of the test
// documents its filter matches.
func matchingIDs(t *testing.T, expression string) []int {
	t.Helper()
	f, err := tagql.Compile(expression, "tags")
	require.NoError(t, err, "compile %q", expression)

	var ids []int
	for i, doc := range parseDocs(t, testDocs) {
		if Matches(f, doc) {
			ids = append(ids, i)
		}
	}
	return ids
}

func TestMatchesCompiledFilters(t *testing.T) {
	tests := []struct {
		expression string
		want       []int
	}{
		{"", []int{0, 1, 2, 3, 4}},
		{"beach", []int{0, 1}},
		{"not beach", []int{2, 3, 4}},
		{"beach and sunset", []int{0}},
		{"beach or mountain", []int{0, 1, 2}},
		{"beach and not surf", []int{0}},
		{"not (beach or mountain)", []int{3, 4}},
		{"s*", []int{0, 1}},
		{"*t", []int{0}},
		{"not s*", []int{2, 3, 4}},
		{"{r.se}", []int{1}},
		{"= 0", []int{3}},
		{"= 2", []int{0}},
		{"not = 0", []int{0, 1, 2}},
		{"> 2", []int{1}},
		{"< 2", []int{2, 3, 4}},
		{">= 1", []int{0, 1, 2}},
		{"<= 2", []int{0, 2, 3, 4}},
		{"beach and > 2", []int{1}},
		{"mountain or = 2", []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.expression), func(t *testing.T) {
			assert.Equal(t, tt.want, matchingIDs(t, tt.expression))
		})
	}
}

func TestMatchesScalarField(t *testing.T) {
	doc := fastjson.MustParse(`{"tags": "beach"}`)

	f, err := tagql.Compile("beach", "tags")
	require.NoError(t, err)
	assert.True(t, Matches(f, doc))

	f, err = tagql.Compile("sunset", "tags")
	require.NoError(t, err)
	assert.False(t, Matches(f, doc))
}

func TestMatchesNestedField(t *testing.T) {
	doc := fastjson.MustParse(`{"meta": {"tags": ["beach", "sunset"]}}`)

	f, err := tagql.Compile("beach and sunset", "meta.tags")
	require.NoError(t, err)
	assert.True(t, Matches(f, doc))

	f, err = tagql.Compile("> 1", "meta.tags")
	require.NoError(t, err)
	assert.True(t, Matches(f, doc))

	f, err = tagql.Compile("> 2", "meta.tags")
	require.NoError(t, err)
	assert.False(t, Matches(f, doc))
}

func TestMatchesNonStringElements(t *testing.T) {
	// Non-string array elements never satisfy string or pattern
	// clauses but still count toward sizes and existence.
	doc := fastjson.MustParse(`{"tags": [1, true, "beach"]}`)

	f, err := tagql.Compile("beach", "tags")
	require.NoError(t, err)
	assert.True(t, Matches(f, doc))

	f, err = tagql.Compile("= 3", "tags")
	require.NoError(t, err)
	assert.True(t, Matches(f, doc))

	f, err = tagql.Compile("{1}", "tags")
	require.NoError(t, err)
	assert.False(t, Matches(f, doc))
}

func TestLookup(t *testing.T) {
	doc := fastjson.MustParse(`{"a": {"b": ["x", "y"]}, "n": 3}`)

	require.NotNil(t, lookup(doc, "a"))
	require.NotNil(t, lookup(doc, "a.b"))
	require.NotNil(t, lookup(doc, "a.b.1"))
	assert.Equal(t, "y", string(lookup(doc, "a.b.1").GetStringBytes()))

	assert.Nil(t, lookup(doc, "a.b.2"))
	assert.Nil(t, lookup(doc, "a.c"))
	assert.Nil(t, lookup(doc, "n.0"))
	assert.Nil(t, lookup(doc, "missing"))
}

// Negation must line up between the compiler and the matcher: for any
// expression, the documents matching "not (expr)" are exactly the
// complement, except where reduction collapses the query entirely.
func TestMatchesNegationComplement(t *testing.T) {
	expressions := []string{
		"beach", "beach and sunset", "beach or mountain",
		"s*", "{r.se}", "= 2", "> 2", "< 2",
	}

	docs := parseDocs(t, testDocs)
	for _, expr := range expressions {
		pos, err := tagql.Compile(expr, "tags")
		require.NoError(t, err)
		neg, err := tagql.Compile("not ("+expr+")", "tags")
		require.NoError(t, err)

		for i, doc := range docs {
			assert.NotEqual(t, Matches(pos, doc), Matches(neg, doc),
				"expression %q, document %d", expr, i)
		}
	}
}
