package lexer

import (
	"testing"

	"github.com/go-endbasic/endbasic/internal/token"
)

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input string
		lit   string
	}{
		{"0", "0"},
		{"123", "123"},
		{"2147483647", "2147483647"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.INT {
			t.Errorf("input %q: type = %s, want INT", tt.input, tok.Type)
		}
		if tok.Literal != tt.lit {
			t.Errorf("input %q: literal = %q, want %q", tt.input, tok.Literal, tt.lit)
		}
		if len(l.Errors()) != 0 {
			t.Errorf("input %q: unexpected lex errors: %v", tt.input, l.Errors())
		}
	}
}

func TestIntegerLiteralOutOfRange(t *testing.T) {
	l := New("2147483648")
	tok := l.NextToken()
	if tok.Type != token.INT {
		t.Fatalf("type = %s, want INT (out-of-range ints still tokenize as INT)", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected exactly one lex error, got %d", len(l.Errors()))
	}
}

func TestDoubleLiterals(t *testing.T) {
	tests := []string{"1.5", "0.0", "123.456"}
	for _, input := range tests {
		l := New(input)
		tok := l.NextToken()
		if tok.Type != token.DOUBLE {
			t.Errorf("input %q: type = %s, want DOUBLE", input, tok.Type)
		}
		if tok.Literal != input {
			t.Errorf("input %q: literal = %q, want %q", input, tok.Literal, input)
		}
	}
}

func TestDotWithoutDigitIsNotDouble(t *testing.T) {
	// "1." with nothing following the dot must not be folded into the
	// number: the dot is left for the next token.
	l := New("1.")
	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("got %s %q, want INT \"1\"", tok.Type, tok.Literal)
	}
}
