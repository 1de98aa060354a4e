package lexer

import (
	"testing"

	"github.com/go-endbasic/endbasic/internal/token"
)

func TestIdentifierWithSigil(t *testing.T) {
	tests := []struct {
		input string
		lit   string
	}{
		{"a%", "a%"},
		{"total#", "total#"},
		{"name$", "name$"},
		{"flag?", "flag?"},
		{"plain", "plain"},
		{"has_underscore", "has_underscore"},
		{"x1", "x1"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.IDENT {
			t.Errorf("input %q: type = %s, want IDENT", tt.input, tok.Type)
		}
		if tok.Literal != tt.lit {
			t.Errorf("input %q: literal = %q, want %q", tt.input, tok.Literal, tt.lit)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"IF", "if", "If", "iF"} {
		l := New(spelling)
		tok := l.NextToken()
		if tok.Type != token.IF {
			t.Errorf("spelling %q: type = %s, want IF", spelling, tok.Type)
		}
		if tok.Literal != spelling {
			t.Errorf("spelling %q: literal = %q, want original spelling preserved", spelling, tok.Literal)
		}
	}
}

func TestBooleanLiterals(t *testing.T) {
	for _, spelling := range []string{"TRUE", "false", "True"} {
		l := New(spelling)
		tok := l.NextToken()
		if tok.Type != token.BOOLEAN {
			t.Errorf("spelling %q: type = %s, want BOOLEAN", spelling, tok.Type)
		}
	}
}

func TestTypeNameKeywordsOnlyAfterAS(t *testing.T) {
	// Type-name keywords are lexed as keywords everywhere; it's the
	// parser's job to restrict where they're legal.
	l := New("INTEGER")
	tok := l.NextToken()
	if tok.Type != token.TYPE_INTEGER {
		t.Fatalf("type = %s, want TYPE_INTEGER", tok.Type)
	}
}
