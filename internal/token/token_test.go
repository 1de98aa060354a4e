package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"IF", IF},
		{"if", IDENT}, // LookupIdent expects an already-upper-cased spelling
		{"WHILE", WHILE},
		{"INTEGER", TYPE_INTEGER},
		{"TRUE", BOOLEAN},
		{"FALSE", BOOLEAN},
		{"FOO", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.name); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTypeIsLiteral(t *testing.T) {
	for _, tt := range []Type{IDENT, INT, DOUBLE, STRING, BOOLEAN} {
		if !tt.IsLiteral() {
			t.Errorf("%s.IsLiteral() = false, want true", tt)
		}
	}
	for _, tt := range []Type{ILLEGAL, EOF, EOS, IF, PLUS} {
		if tt.IsLiteral() {
			t.Errorf("%s.IsLiteral() = true, want false", tt)
		}
	}
}

func TestTypeIsKeyword(t *testing.T) {
	for _, tt := range []Type{AND, AS, DIM, FOR, IF, WHILE, TYPE_STRING} {
		if !tt.IsKeyword() {
			t.Errorf("%s.IsKeyword() = false, want true", tt)
		}
	}
	for _, tt := range []Type{IDENT, INT, PLUS, EOF} {
		if tt.IsKeyword() {
			t.Errorf("%s.IsKeyword() = true, want false", tt)
		}
	}
}

func TestTypeStringUnknown(t *testing.T) {
	var unknown Type = 9999
	if got := unknown.String(); got != "Type(9999)" {
		t.Errorf("String() of unknown type = %q, want %q", got, "Type(9999)")
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7, Offset: 42}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}
