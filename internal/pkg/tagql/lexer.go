package tagql

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenRegex
	TokenOperator
	TokenFunction
	TokenGlob
	TokenLParen
	TokenRParen
)

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Value string
}

// funcAliases maps every accepted spelling of a count function to its
// canonical name. Built once; read-only after init.
var funcAliases = map[string]string{
	"eq": "eq", "equal": "eq", "equals": "eq", "exact": "eq", "exactly": "eq",
	"ge": "ge", "min": "ge", "minimum": "ge",
	"le": "le", "max": "le", "maximum": "le",
	"lt": "lt", "fewer": "lt", "below": "lt",
	"gt": "gt", "greater": "gt", "above": "gt",
}

// Lexer tokenizes a tag query expression.
// A Lexer is single-pass: create a fresh one per expression.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, pos: 0}
}

// NextToken returns the next token from the input.
// The end of input is reported as a TokenEOF token, not an error.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}, nil
	}

	ch := l.input[l.pos]

	switch ch {
	case '*':
		l.pos++
		return Token{Type: TokenGlob, Value: "*"}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "("}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")"}, nil
	case '+':
		l.pos++
		return Token{Type: TokenOperator, Value: "and"}, nil
	case '/':
		l.pos++
		return Token{Type: TokenOperator, Value: "or"}, nil
	case '-':
		l.pos++
		return Token{Type: TokenOperator, Value: "not"}, nil
	case '=':
		l.pos++
		return Token{Type: TokenFunction, Value: "eq"}, nil
	case '>':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return Token{Type: TokenFunction, Value: "ge"}, nil
		}
		return Token{Type: TokenFunction, Value: "gt"}, nil
	case '<':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return Token{Type: TokenFunction, Value: "le"}, nil
		}
		return Token{Type: TokenFunction, Value: "lt"}, nil
	case '"':
		return l.readQuoted()
	case '{':
		return l.readRegex()
	}

	if isWordChar(ch) {
		return l.readWord(), nil
	}

	return Token{}, InvalidSymbolError{Symbol: l.readInvalidRun()}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

// readWord reads a bare word and classifies it as an operator keyword,
// a count-function keyword, or a plain string.
func (l *Lexer) readWord() Token {
	start := l.pos
	for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]

	switch word {
	case "and", "or", "not":
		return Token{Type: TokenOperator, Value: word}
	}
	if fn, ok := funcAliases[word]; ok {
		return Token{Type: TokenFunction, Value: fn}
	}

	return Token{Type: TokenString, Value: word}
}

// readQuoted reads a double-quoted string, decoding backslash escapes
// for quote, backslash, tab, newline and carriage return.
func (l *Lexer) readQuoted() (Token, error) {
	l.pos++ // skip opening quote

	var out []byte
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case '"':
			l.pos++
			return Token{Type: TokenString, Value: string(out)}, nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return Token{}, UnterminatedStringError{}
			}
			switch esc := l.input[l.pos+1]; esc {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 't':
				out = append(out, '\t')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			default:
				// Unknown escapes are kept verbatim.
				out = append(out, '\\', esc)
			}
			l.pos += 2
		default:
			out = append(out, ch)
			l.pos++
		}
	}

	return Token{}, UnterminatedStringError{}
}

// readRegex reads a brace-delimited regex literal. The pattern is
// stored with the braces stripped and is otherwise left unmodified.
func (l *Lexer) readRegex() (Token, error) {
	l.pos++ // skip opening brace
	start := l.pos
	for l.pos < len(l.input) {
		if l.input[l.pos] == '}' {
			pattern := l.input[start:l.pos]
			l.pos++
			return Token{Type: TokenRegex, Value: pattern}, nil
		}
		l.pos++
	}

	return Token{}, UnterminatedRegexError{Pattern: l.input[start:]}
}

// readInvalidRun collects the run of characters that cannot start any
// token, so the error can report the whole offending sequence.
func (l *Lexer) readInvalidRun() string {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isSpace(ch) || isWordChar(ch) || isTokenStart(ch) {
			break
		}
		l.pos++
	}
	return l.input[start:l.pos]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isWordChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '_' || ch == '.'
}

func isTokenStart(ch byte) bool {
	switch ch {
	case '*', '(', ')', '+', '/', '-', '=', '>', '<', '"', '{':
		return true
	}
	return false
}
