package mal

import (
	"bytes"
	"io"
	"regexp"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenLParen
	TokenRParen
	TokenLSquare
	TokenRSquare
	TokenLCurly
	TokenRCurly
	TokenQuote
	TokenQuasiquote
	TokenUnquote
	TokenTildeAt
	TokenDeref
	TokenCaret
	TokenString
	TokenKeyword
	TokenSymbol
	TokenBool
	TokenDecimal
	TokenNil
	TokenEnd
)

type Token struct {
	typ TokenType
	str string
}

var EndTk = Token{typ: TokenEnd}

func (t Token) String() string {
	switch t.typ {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLSquare:
		return "["
	case TokenRSquare:
		return "]"
	case TokenLCurly:
		return "{"
	case TokenRCurly:
		return "}"
	case TokenQuote:
		return "'"
	case TokenQuasiquote:
		return "`"
	case TokenUnquote:
		return "~"
	case TokenTildeAt:
		return "~@"
	case TokenDeref:
		return "@"
	case TokenCaret:
		return "^"
	case TokenString:
		return `"` + t.str + `"`
	}
	return t.str
}

type LexerState int

const (
	LexerNormal LexerState = iota
	LexerCommentLine
	LexerStrLit
	LexerStrEscaped
	LexerUnquote
)

type Lexer struct {
	state  LexerState
	tokens []Token
	buffer *bytes.Buffer
	stream io.RuneScanner
}

func NewLexer() *Lexer {
	return &Lexer{
		tokens: make([]Token, 0, 10),
		buffer: new(bytes.Buffer),
		state:  LexerNormal,
	}
}

func (lex *Lexer) Reset() {
	lex.stream = nil
	lex.tokens = lex.tokens[:0]
	lex.state = LexerNormal
	lex.buffer.Reset()
}

func (lex *Lexer) AddInput(s io.RuneScanner) {
	lex.stream = s
}

func (lexer *Lexer) AppendToken(tok Token) {
	lexer.tokens = append(lexer.tokens, tok)
}

func (lex *Lexer) Token(typ TokenType, str string) Token {
	return Token{typ: typ, str: str}
}

var (
	BoolRegex    = regexp.MustCompile("^(true|false)$")
	DecimalRegex = regexp.MustCompile("^-?[0-9]+$")
)

// EscapeChar resolves the escapes a string literal may carry. The set
// mirrors quoteString exactly, so every readable rendering reads back.
func EscapeChar(char rune) (rune, error) {
	switch char {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'e':
		return '\x1b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	}
	return ' ', LexErrorf("invalid escape sequence '\\%c'", char)
}

// DecodeAtom classifies a maximal symbol-like run into its final token
// type. The token keeps the exact source text; keywords retain their
// leading ':' for the parser to strip.
func (x *Lexer) DecodeAtom(atom string) (Token, error) {
	if atom == "nil" {
		return x.Token(TokenNil, atom), nil
	}
	if BoolRegex.MatchString(atom) {
		return x.Token(TokenBool, atom), nil
	}
	if DecimalRegex.MatchString(atom) {
		return x.Token(TokenDecimal, atom), nil
	}
	if atom[0] == ':' {
		if len(atom) == 1 {
			return EndTk, LexErrorf("keyword terminated too early")
		}
		return x.Token(TokenKeyword, atom), nil
	}
	return x.Token(TokenSymbol, atom), nil
}

func (lexer *Lexer) dumpBuffer() error {
	if lexer.buffer.Len() <= 0 {
		return nil
	}
	tok, err := lexer.DecodeAtom(lexer.buffer.String())
	if err != nil {
		return err
	}
	lexer.buffer.Reset()
	lexer.AppendToken(tok)
	return nil
}

func (lexer *Lexer) dumpString() {
	str := lexer.buffer.String()
	lexer.buffer.Reset()
	lexer.AppendToken(lexer.Token(TokenString, str))
}

func (x *Lexer) DecodeBrace(brace rune) Token {
	switch brace {
	case '(':
		return x.Token(TokenLParen, "")
	case ')':
		return x.Token(TokenRParen, "")
	case '[':
		return x.Token(TokenLSquare, "")
	case ']':
		return x.Token(TokenRSquare, "")
	case '{':
		return x.Token(TokenLCurly, "")
	case '}':
		return x.Token(TokenRCurly, "")
	}
	return EndTk
}

func (lexer *Lexer) LexNextRune(r rune) error {
top:
	switch lexer.state {

	case LexerCommentLine:
		if r == '\n' {
			lexer.state = LexerNormal
		}
		return nil

	case LexerStrLit:
		if r == '\\' {
			lexer.state = LexerStrEscaped
			return nil
		}
		if r == '"' {
			lexer.dumpString()
			lexer.state = LexerNormal
			return nil
		}
		lexer.buffer.WriteRune(r)
		return nil

	case LexerStrEscaped:
		char, err := EscapeChar(r)
		if err != nil {
			return err
		}
		lexer.buffer.WriteRune(char)
		lexer.state = LexerStrLit
		return nil

	case LexerUnquote:
		lexer.state = LexerNormal
		if r == '@' {
			lexer.AppendToken(lexer.Token(TokenTildeAt, ""))
			return nil
		}
		lexer.AppendToken(lexer.Token(TokenUnquote, ""))
		goto top // still have to lex r in Normal

	case LexerNormal:
		switch r {
		case '"':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.state = LexerStrLit
			return nil

		case ';':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.state = LexerCommentLine
			return nil

		case '~':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.state = LexerUnquote
			return nil

		case '\'':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.AppendToken(lexer.Token(TokenQuote, ""))
			return nil

		case '`':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.AppendToken(lexer.Token(TokenQuasiquote, ""))
			return nil

		case '@':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.AppendToken(lexer.Token(TokenDeref, ""))
			return nil

		case '^':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.AppendToken(lexer.Token(TokenCaret, ""))
			return nil

		case '(', ')', '[', ']', '{', '}':
			err := lexer.dumpBuffer()
			if err != nil {
				return err
			}
			lexer.AppendToken(lexer.DecodeBrace(r))
			return nil

		case ' ', '\t', '\n', '\r', '\v', '\f', ',':
			return lexer.dumpBuffer()
		}
	}

	lexer.buffer.WriteRune(r)
	return nil
}

// finishStream flushes whatever the state machine holds once the input
// runes run out. An open string literal at this point is a lexical
// error; everything else settles into tokens.
func (lexer *Lexer) finishStream() error {
	switch lexer.state {
	case LexerStrLit, LexerStrEscaped:
		return LexErrorf("unterminated string")
	case LexerUnquote:
		lexer.AppendToken(lexer.Token(TokenUnquote, ""))
	}
	lexer.state = LexerNormal
	return lexer.dumpBuffer()
}

// PeekNextToken returns the next token without consuming it, driving
// the state machine over the stream as needed. EndTk signals that the
// input is exhausted.
func (lexer *Lexer) PeekNextToken() (Token, error) {
	for len(lexer.tokens) == 0 {
		if lexer.stream == nil {
			return EndTk, nil
		}
		r, _, err := lexer.stream.ReadRune()
		if err != nil {
			lexer.stream = nil
			err = lexer.finishStream()
			if err != nil {
				return EndTk, err
			}
			continue
		}
		err = lexer.LexNextRune(r)
		if err != nil {
			return EndTk, err
		}
	}
	return lexer.tokens[0], nil
}

func (lexer *Lexer) GetNextToken() (Token, error) {
	tok, err := lexer.PeekNextToken()
	if err != nil || tok.typ == TokenEnd {
		return EndTk, err
	}
	lexer.tokens = lexer.tokens[1:]
	return tok, nil
}
