package tagql

import "fmt"

// Every compile failure is a distinct, inspectable error type so that
// callers can branch on the failure kind with errors.As. Any error
// aborts the whole compilation; there is no partial output.

// UnterminatedStringError reports a quoted string with no closing quote.
type UnterminatedStringError struct{}

func (UnterminatedStringError) Error() string { return "unterminated string" }

// UnterminatedRegexError reports a {...} regex literal with no closing brace.
type UnterminatedRegexError struct {
	Pattern string
}

func (e UnterminatedRegexError) Error() string {
	return fmt.Sprintf("unterminated regex %q", e.Pattern)
}

// InvalidSymbolError reports a run of characters that cannot start any token.
type InvalidSymbolError struct {
	Symbol string
}

func (e InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q", e.Symbol)
}

// SyntaxError is the generic parse failure for trailing input that the
// grammar cannot attach to the expression.
type SyntaxError struct{}

func (SyntaxError) Error() string { return "syntax error" }

// MissingLeftParenError reports a stray closing parenthesis.
type MissingLeftParenError struct{}

func (MissingLeftParenError) Error() string { return `missing left parenthesis "("` }

// MissingRightParenError reports an unclosed opening parenthesis.
type MissingRightParenError struct{}

func (MissingRightParenError) Error() string { return `missing right parenthesis ")"` }

// EmptyParensError reports a "()" group with no expression inside.
type EmptyParensError struct{}

func (EmptyParensError) Error() string { return "parentheses must contain an expression" }

// MissingOperandError reports a boolean operator without enough operands.
type MissingOperandError struct {
	Operator string
}

func (e MissingOperandError) Error() string {
	return fmt.Sprintf("missing operand for %q operator", e.Operator)
}

// MissingParamError reports a count function without a parameter.
type MissingParamError struct {
	Function string
}

func (e MissingParamError) Error() string {
	return fmt.Sprintf("missing parameter for %q function", e.Function)
}

// BadFuncParamError reports a count function parameter that is not an
// acceptable integer.
type BadFuncParamError struct {
	Function string
	Reason   string
}

func (e BadFuncParamError) Error() string {
	return fmt.Sprintf("parameter for %q %s", e.Function, e.Reason)
}

// BadGlobError reports a glob marker that is not adjacent to a tag.
type BadGlobError struct{}

func (BadGlobError) Error() string { return `glob "*" must be immediately adjacent to a tag` }

// BadRegexError reports a regex literal the pattern engine rejected.
type BadRegexError struct {
	Pattern string
	Message string
}

func (e BadRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Pattern, e.Message)
}

// ContradictionError reports an AND combination that can never match,
// such as requiring and excluding the same tag.
type ContradictionError struct {
	Tag string
}

func (e ContradictionError) Error() string {
	if e.Tag == "" {
		return "contradiction: query can never match"
	}
	return fmt.Sprintf("contradiction: tag %q is both required and excluded", e.Tag)
}

// ImpossibleRangeError reports an AND of tag-count constraints whose
// intersection is empty.
type ImpossibleRangeError struct{}

func (ImpossibleRangeError) Error() string {
	return "impossible range: tag count constraints have no overlap"
}
