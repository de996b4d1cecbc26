package scanner

import (
	"errors"
	"io"
	"testing"
)

func nextToken(t *testing.T, s *Scanner) Token {
	t.Helper()
	tok, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tok
}

func TestScanner_BasicTokens(t *testing.T) {
	s := New("\\psline*[linewidth=0.1]{->}(0,0)\n% comment\n  text \\\\", Config{})

	want := []struct {
		typ TokenType
		val string
	}{
		{TokenCommand, "psline*"},
		{TokenLBracket, "["},
		{TokenText, "linewidth=0.1"},
		{TokenRBracket, "]"},
		{TokenLBrace, "{"},
		{TokenText, "->"},
		{TokenRBrace, "}"},
		{TokenLParen, "("},
		{TokenText, "0,0"},
		{TokenRParen, ")"},
		{TokenText, "text"},
		{TokenCommand, "\\"},
	}
	for i, w := range want {
		tok := nextToken(t, s)
		if tok.Type != w.typ || tok.Value != w.val {
			t.Fatalf("token %d: got %s %q, want %s %q", i, tok.Type, tok.Value, w.typ, w.val)
		}
	}
	if _, err := s.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestScanner_Positions(t *testing.T) {
	s := New("\\psdots(1,2)\n  \\psline", Config{})
	nextToken(t, s)
	nextToken(t, s)
	nextToken(t, s)
	nextToken(t, s)
	tok := nextToken(t, s)
	if tok.Line != 2 || tok.Column != 3 || tok.Value != "psline" {
		t.Fatalf("unexpected position %+v", tok)
	}
}

func TestScanner_ReadGroup(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		open, close byte
		want        string
		rest        string
	}{
		{"brace", "{a {b} c}x", '{', '}', "a {b} c", "x"},
		{"bracket with braces", "[labels={a]b}, x=1]y", '[', ']', "labels={a]b}, x=1", "y"},
		{"escaped", `{a \} b}z`, '{', '}', `a \} b`, "z"},
		{"paren", "(1,(2))(3,4)", '(', ')', "1,(2)", "(3,4)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.src, Config{})
			nextToken(t, s)
			got, err := s.ReadGroup(tc.open, tc.close)
			if err != nil {
				t.Fatalf("ReadGroup: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if rest := tc.src[s.Offset():]; rest != tc.rest {
				t.Fatalf("rest %q, want %q", rest, tc.rest)
			}
		})
	}
}

func TestScanner_ReadGroupErrors(t *testing.T) {
	s := New("{abc", Config{})
	nextToken(t, s)
	if _, err := s.ReadGroup('{', '}'); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}

	s = New("{{{{x}}}}", Config{MaxDepth: 2})
	nextToken(t, s)
	if _, err := s.ReadGroup('{', '}'); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}

	s = New("{abcdef}", Config{MaxTokenLength: 3})
	nextToken(t, s)
	if _, err := s.ReadGroup('{', '}'); !errors.Is(err, ErrTokenTooLong) {
		t.Fatalf("expected ErrTokenTooLong, got %v", err)
	}
}

func TestScanner_PeekAndSkip(t *testing.T) {
	s := New("junk ( more \\psgrid", Config{})
	p, err := s.Peek()
	if err != nil || p.Value != "junk" {
		t.Fatalf("peek: %+v %v", p, err)
	}
	if tok := nextToken(t, s); tok.Value != "junk" {
		t.Fatalf("peek consumed input: %+v", tok)
	}
	s.SkipTo(TokenCommand)
	if tok := nextToken(t, s); tok.Type != TokenCommand || tok.Value != "psgrid" {
		t.Fatalf("SkipTo stopped at %+v", tok)
	}
}
