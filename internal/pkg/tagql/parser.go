package tagql

import "strings"

// Grammar (single precedence level for and/or, right-recursive with
// left-fold normalization through coalescing):
//
//	expr    := binary
//	binary  := value ( ( "and" | "or" | "not" ) binary )?
//	value   := "*"? wordrun "*"?
//	         | "(" expr ")"
//	         | regex-literal
//	         | function numeral
//	         | "not" value
//	         | /* empty */
//	wordrun := one or more adjacent words, concatenated with single spaces

// parser consumes the lexer's token stream with one-token lookahead.
type parser struct {
	lex *Lexer
	cur Token
}

// Parse lexes and parses an expression into a raw AST. The expression
// is lowercased in its entirety first, quoted strings and regex
// literals included.
func Parse(expression string) (*Node, error) {
	p := &parser{lex: NewLexer(strings.ToLower(expression))}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.expr()
	if err != nil {
		return nil, err
	}

	// Anything left over is trailing garbage.
	switch p.cur.Type {
	case TokenEOF:
		return root, nil
	case TokenRParen:
		return nil, MissingLeftParenError{}
	default:
		return nil, SyntaxError{}
	}
}

func (p *parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expr() (*Node, error) {
	return p.binary()
}

func (p *parser) binary() (*Node, error) {
	lhs, err := p.value()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != TokenOperator {
		return lhs, nil
	}

	// "a not b" is shorthand for "a and not b". The "not" token is left
	// in the stream so value() folds it into the right operand.
	var op *Node
	if p.cur.Value == "not" {
		op = newOperator("and")
	} else {
		op = newOperator(p.cur.Value)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	rhs, err := p.binary()
	if err != nil {
		return nil, err
	}
	if lhs.Kind == KindNone || rhs.Kind == KindNone {
		return nil, MissingOperandError{Operator: op.Text}
	}

	// Splice a same-operator right-hand side directly into this node
	// so chains flatten into one n-ary operator.
	if rhs.Kind == KindOperator && rhs.Text == op.Text && !rhs.Negate {
		op.Children = append([]*Node{lhs}, rhs.Children...)
	} else {
		op.Children = []*Node{lhs, rhs}
	}
	op.coalesce()

	return op, nil
}

func (p *parser) value() (*Node, error) {
	switch p.cur.Type {
	case TokenGlob:
		if err := p.advance(); err != nil {
			return nil, err
		}
		word, err := p.wordRun()
		if err != nil {
			return nil, err
		}
		if word == nil {
			return nil, BadGlobError{}
		}
		word.GlobLeft = true
		if p.cur.Type == TokenGlob {
			if err := p.advance(); err != nil {
				return nil, err
			}
			word.GlobRight = true
		}
		return word, nil

	case TokenString:
		word, err := p.wordRun()
		if err != nil {
			return nil, err
		}
		if p.cur.Type == TokenGlob {
			if err := p.advance(); err != nil {
				return nil, err
			}
			word.GlobRight = true
		}
		return word, nil

	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenRParen {
			return nil, MissingRightParenError{}
		}
		if inner.Kind == KindNone {
			return nil, EmptyParensError{}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenRegex:
		node := &Node{Kind: KindRegex, Text: p.cur.Value}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	case TokenFunction:
		return p.function()

	case TokenOperator:
		if p.cur.Value != "not" {
			return &Node{Kind: KindNone}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		if val.Kind == KindNone {
			return nil, MissingOperandError{Operator: "not"}
		}
		val.Negate = !val.Negate
		return val, nil

	default:
		return &Node{Kind: KindNone}, nil
	}
}

// wordRun concatenates adjacent bare words and quoted strings into a
// single tag, separated by single spaces. Returns nil when the cursor
// is not on a word.
func (p *parser) wordRun() (*Node, error) {
	if p.cur.Type != TokenString {
		return nil, nil
	}

	text := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.Type == TokenString {
		text += " " + p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return newTag(text), nil
}

// function parses a count function and its numeric parameter.
func (p *parser) function() (*Node, error) {
	name := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Type != TokenString {
		return nil, MissingParamError{Function: name}
	}
	if !isDigits(p.cur.Value) {
		return nil, BadFuncParamError{Function: name, Reason: "must be an integer"}
	}

	param := newTag(p.cur.Value)
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &Node{Kind: KindFunction, Text: name, Children: []*Node{param}}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

