// Package scanner tokenizes PSTricks macro text.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

type TokenType int

const (
	TokenCommand  TokenType = iota // '\name', '\name*' or a control symbol such as '\\'
	TokenLParen                    // '('
	TokenRParen                    // ')'
	TokenLBracket                  // '['
	TokenRBracket                  // ']'
	TokenLBrace                    // '{'
	TokenRBrace                    // '}'
	TokenText                      // any other run of non-blank characters
)

var tokenNames = [...]string{"command", "(", ")", "[", "]", "{", "}", "text"}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "unknown"
	}
	return tokenNames[t]
}

// Token is a lexical unit. Line and Column are 1-based.
type Token struct {
	Type   TokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

var (
	ErrTokenTooLong  = errors.New("token too long")
	ErrUnbalanced    = errors.New("unbalanced group")
	ErrDepthExceeded = errors.New("group nesting too deep")
)

type Config struct {
	// MaxTokenLength bounds commands, text runs and raw groups; 0 means
	// unlimited.
	MaxTokenLength int
	// MaxDepth bounds group nesting; 0 means unlimited.
	MaxDepth int
}

type Scanner struct {
	src  string
	pos  int
	line int
	col  int
	cfg  Config
}

func New(src string, cfg Config) *Scanner {
	return &Scanner{src: src, line: 1, col: 1, cfg: cfg}
}

// NewAt scans a fragment whose first byte sits at line:col of an enclosing
// source, so that positions stay meaningful.
func NewAt(src string, line, col int, cfg Config) *Scanner {
	return &Scanner{src: src, line: line, col: col, cfg: cfg}
}

// Position returns the line and column of the next unread byte.
func (s *Scanner) Position() (line, col int) { return s.line, s.col }

func (s *Scanner) Offset() int { return s.pos }

func (s *Scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else if utf8.RuneStart(c) {
		s.col++
	}
	return c
}

// Next returns the next token, or io.EOF at the end of the input.
func (s *Scanner) Next() (Token, error) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.src) {
		return Token{}, io.EOF
	}
	tok := Token{Pos: s.pos, Line: s.line, Column: s.col}
	c := s.src[s.pos]
	switch c {
	case '\\':
		return s.scanCommand(tok)
	case '(', ')', '[', ']', '{', '}':
		s.advance()
		tok.Type = structural[c]
		tok.Value = string(c)
		return tok, nil
	}
	start := s.pos
	for s.pos < len(s.src) && !isDelimiter(s.src[s.pos]) {
		s.advance()
	}
	tok.Type = TokenText
	tok.Value = s.src[start:s.pos]
	if err := s.checkLength(len(tok.Value)); err != nil {
		return Token{}, err
	}
	return tok, nil
}

var structural = map[byte]TokenType{
	'(': TokenLParen, ')': TokenRParen,
	'[': TokenLBracket, ']': TokenRBracket,
	'{': TokenLBrace, '}': TokenRBrace,
}

func (s *Scanner) scanCommand(tok Token) (Token, error) {
	s.advance() // '\'
	tok.Type = TokenCommand
	if s.pos >= len(s.src) {
		return tok, nil
	}
	start := s.pos
	if !isLetter(s.src[s.pos]) {
		s.advance()
		tok.Value = s.src[start:s.pos]
		return tok, nil
	}
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.advance()
	}
	if s.pos < len(s.src) && s.src[s.pos] == '*' {
		s.advance()
	}
	tok.Value = s.src[start:s.pos]
	if err := s.checkLength(len(tok.Value)); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (Token, error) {
	pos, line, col := s.pos, s.line, s.col
	tok, err := s.Next()
	s.pos, s.line, s.col = pos, line, col
	return tok, err
}

// ReadGroup returns the raw text up to the delimiter closing a group whose
// opening delimiter was just consumed. Nested open/close pairs and braces
// are balanced; escaped delimiters are kept verbatim.
func (s *Scanner) ReadGroup(open, close byte) (string, error) {
	start, line, col := s.pos, s.line, s.col
	reset := func() { s.pos, s.line, s.col = start, line, col }
	depth, braces := 1, 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\' && s.pos+1 < len(s.src):
			s.advance()
		case c == '{' && open != '{':
			braces++
		case c == '}' && open != '{' && braces > 0:
			braces--
		case c == open:
			depth++
			if s.cfg.MaxDepth > 0 && depth > s.cfg.MaxDepth {
				reset()
				return "", fmt.Errorf("%w: %d", ErrDepthExceeded, depth)
			}
		case c == close && braces == 0:
			depth--
			if depth == 0 {
				raw := s.src[start:s.pos]
				s.advance()
				return raw, s.checkLength(len(raw))
			}
		}
		s.advance()
	}
	reset()
	return "", fmt.Errorf("%w: missing %q", ErrUnbalanced, close)
}

// SkipTo advances to the next token of type t or the end of the input.
// Parsers use it to resume after a malformed macro.
func (s *Scanner) SkipTo(t TokenType) {
	for {
		tok, err := s.Peek()
		if err != nil || tok.Type == t {
			return
		}
		if _, err := s.Next(); err != nil {
			return
		}
	}
}

func (s *Scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isSpace(c):
			s.advance()
		case c == '%':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *Scanner) checkLength(n int) error {
	if s.cfg.MaxTokenLength > 0 && n > s.cfg.MaxTokenLength {
		return fmt.Errorf("%w: %d bytes", ErrTokenTooLong, n)
	}
	return nil
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@' }

func isDelimiter(c byte) bool {
	switch c {
	case '\\', '(', ')', '[', ']', '{', '}', '%':
		return true
	}
	return isSpace(c)
}
