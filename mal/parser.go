package mal

import (
	"io"
	"strconv"
)

const SliceDefaultCap = 10

// Parser turns the lexer's token stream into Sexp trees by recursive
// descent with one token of lookahead.
type Parser struct {
	lexer *Lexer
	env   *Env
}

func (env *Env) NewParser() *Parser {
	return &Parser{
		lexer: NewLexer(),
		env:   env,
	}
}

func (p *Parser) Reset() {
	p.lexer.Reset()
}

func (p *Parser) NewInput(s io.RuneScanner) {
	p.lexer.AddInput(s)
}

func (p *Parser) ResetAddNewInput(s io.RuneScanner) {
	p.lexer.Reset()
	p.lexer.AddInput(s)
}

func (parser *Parser) ParseList(depth int) (Sexp, error) {
	lexer := parser.lexer
	arr := make([]Sexp, 0, SliceDefaultCap)

	for {
		tok, err := lexer.PeekNextToken()
		if err != nil {
			return SexpNull, err
		}
		if tok.typ == TokenEnd {
			return SexpNull, ParseErrorf("unterminated list")
		}
		if tok.typ == TokenRParen {
			_, _ = lexer.GetNextToken()
			return &SexpList{Val: arr}, nil
		}
		if tok.typ == TokenRSquare || tok.typ == TokenRCurly {
			return SexpNull, ParseErrorf("expected ')', got '%s'", tok.String())
		}

		expr, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return SexpNull, err
		}
		arr = append(arr, expr)
	}
}

func (parser *Parser) ParseArray(depth int) (Sexp, error) {
	lexer := parser.lexer
	arr := make([]Sexp, 0, SliceDefaultCap)

	for {
		tok, err := lexer.PeekNextToken()
		if err != nil {
			return SexpNull, err
		}
		if tok.typ == TokenEnd {
			return SexpNull, ParseErrorf("unterminated vector")
		}
		if tok.typ == TokenRSquare {
			_, _ = lexer.GetNextToken()
			return &SexpArray{Val: arr}, nil
		}
		if tok.typ == TokenRParen || tok.typ == TokenRCurly {
			return SexpNull, ParseErrorf("expected ']', got '%s'", tok.String())
		}

		expr, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return SexpNull, err
		}
		arr = append(arr, expr)
	}
}

// ParseHash reads alternating key/value forms, checking the key
// invariant as each pair arrives rather than at the end.
func (parser *Parser) ParseHash(depth int) (Sexp, error) {
	lexer := parser.lexer
	keys := make([]Sexp, 0, SliceDefaultCap)
	vals := make([]Sexp, 0, SliceDefaultCap)

	for {
		tok, err := lexer.PeekNextToken()
		if err != nil {
			return SexpNull, err
		}
		if tok.typ == TokenEnd {
			return SexpNull, ParseErrorf("unterminated hashmap")
		}
		if tok.typ == TokenRCurly {
			_, _ = lexer.GetNextToken()
			return &SexpHash{Keys: keys, Vals: vals}, nil
		}
		if tok.typ == TokenRParen || tok.typ == TokenRSquare {
			return SexpNull, ParseErrorf("expected '}', got '%s'", tok.String())
		}

		key, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return SexpNull, err
		}
		switch key.(type) {
		case *SexpStr, *SexpKeyword:
		default:
			return SexpNull, ParseErrorf("hashmap key must be string or keyword, got %s",
				TypeName(key))
		}

		tok, err = lexer.PeekNextToken()
		if err != nil {
			return SexpNull, err
		}
		if tok.typ == TokenEnd || tok.typ == TokenRCurly {
			return SexpNull, ParseErrorf("last key in hashmap lacks value")
		}

		val, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return SexpNull, err
		}

		keys = append(keys, key)
		vals = append(vals, val)
	}
}

// parseWrapped reads the single form following a reader macro token and
// wraps it as (sym form).
func (parser *Parser) parseWrapped(sym string, depth int) (Sexp, error) {
	expr, err := parser.ParseExpression(depth + 1)
	if err != nil {
		return SexpNull, err
	}
	if expr == SexpEnd {
		return SexpNull, ParseErrorf("no form to %s", sym)
	}
	return MakeList([]Sexp{parser.env.MakeSymbol(sym), expr}), nil
}

// parseWithMeta reads metadata then target, producing
// (with-meta target metadata): target first in the output even though
// metadata is read first.
func (parser *Parser) parseWithMeta(depth int) (Sexp, error) {
	meta, err := parser.ParseExpression(depth + 1)
	if err != nil {
		return SexpNull, err
	}
	if meta == SexpEnd {
		return SexpNull, ParseErrorf("no metadata form to read")
	}
	target, err := parser.ParseExpression(depth + 1)
	if err != nil {
		return SexpNull, err
	}
	if target == SexpEnd {
		return SexpNull, ParseErrorf("no form to attach metadata to")
	}
	return MakeList([]Sexp{parser.env.MakeSymbol("with-meta"), target, meta}), nil
}

func (parser *Parser) ParseExpression(depth int) (Sexp, error) {
	lexer := parser.lexer
	env := parser.env

	tok, err := lexer.GetNextToken()
	if err != nil {
		return SexpEnd, err
	}

	switch tok.typ {
	case TokenLParen:
		return parser.ParseList(depth + 1)
	case TokenLSquare:
		return parser.ParseArray(depth + 1)
	case TokenLCurly:
		return parser.ParseHash(depth + 1)
	case TokenRParen:
		return SexpNull, ParseErrorf("unexpected ')'")
	case TokenRSquare:
		return SexpNull, ParseErrorf("unexpected ']'")
	case TokenRCurly:
		return SexpNull, ParseErrorf("unexpected '}'")
	case TokenQuote:
		return parser.parseWrapped("quote", depth)
	case TokenQuasiquote:
		return parser.parseWrapped("quasiquote", depth)
	case TokenUnquote:
		return parser.parseWrapped("unquote", depth)
	case TokenTildeAt:
		return parser.parseWrapped("splice-unquote", depth)
	case TokenDeref:
		return parser.parseWrapped("deref", depth)
	case TokenCaret:
		return parser.parseWithMeta(depth)
	case TokenString:
		return &SexpStr{S: tok.str}, nil
	case TokenKeyword:
		return &SexpKeyword{name: tok.str[1:]}, nil
	case TokenNil:
		return SexpNull, nil
	case TokenBool:
		return &SexpBool{Val: tok.str == "true"}, nil
	case TokenDecimal:
		i, err := strconv.ParseInt(tok.str, 10, 64)
		if err != nil {
			return SexpNull, ParseErrorf("invalid integer '%s'", tok.str)
		}
		return &SexpInt{Val: i}, nil
	case TokenSymbol:
		return env.MakeSymbol(tok.str), nil
	case TokenEnd:
		return SexpEnd, nil
	}
	return SexpNull, ParseErrorf("don't know what to do with '%s'", tok.String())
}

// ParseTokens drains every form from the current input. The first
// error wins; partially built siblings are abandoned to the collector.
func (p *Parser) ParseTokens() ([]Sexp, error) {
	var sx []Sexp
	for {
		expr, err := p.ParseExpression(0)
		if err != nil {
			return sx, err
		}
		if expr == SexpEnd {
			return sx, nil
		}
		sx = append(sx, expr)
	}
}
