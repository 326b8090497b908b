// Package tagql compiles tag query expressions (boolean combinations
// of tags, wildcard globs, regex literals and tag-count comparisons)
// into filter documents for a document-oriented store.
package tagql

// Compile parses, reduces and emits an expression as a filter over the
// given field. It is a pure function: safe for concurrent use, no
// state survives the call. On failure it returns one of the typed
// errors from this package and no filter.
func Compile(expression, field string) (Filter, error) {
	ast, err := Parse(expression)
	if err != nil {
		return nil, err
	}

	ast, err = Reduce(ast)
	if err != nil {
		return nil, err
	}

	return Emit(ast, field)
}
