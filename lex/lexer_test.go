package lex

import (
	"testing"

	"github.com/dhamidi/lpc/parse"
	"github.com/dhamidi/lpc/source"
)

func demoPatterns() []Pattern {
	return []Pattern{
		MustPattern("WS", `[\s]+`),
		MustPattern("LET", `let`),
		MustPattern("ID", `[a-zA-Z_]+`),
	}
}

func TestLexerTokenize(t *testing.T) {
	lexer := MustNew(demoPatterns())
	c := source.New("Hello letWorld!wassup", source.WithName("MyStream"))

	tokens, err := lexer.Tokenize(c)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []struct {
		id     string
		text   string
		column int
	}{
		{"ID", "Hello", 1},
		{"WS", " ", 6},
		{"ID", "letWorld", 7},
		{Unknown, "!", 15},
		{"ID", "wassup", 16},
		{EOS, "", 22},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.ID != w.id || tok.Text != w.text {
			t.Errorf("token %d = %s(%q), want %s(%q)", i, tok.ID, tok.Text, w.id, w.text)
		}
		if tok.Location.Position.Column != w.column {
			t.Errorf("token %d column = %d, want %d", i, tok.Location.Position.Column, w.column)
		}
		if tok.Location.Name != "MyStream" {
			t.Errorf("token %d stream = %q", i, tok.Location.Name)
		}
	}
}

func TestLexerTieGoesToFirstDeclared(t *testing.T) {
	lexer := MustNew(demoPatterns())

	tests := []struct {
		input string
		id    string
		text  string
	}{
		{"let", "LET", "let"},
		{"let x", "LET", "let"},
		{"lets", "ID", "lets"},
		{"le", "ID", "le"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := lexer.Next(source.New(tt.input))
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if tok.ID != tt.id || tok.Text != tt.text {
				t.Errorf("Next = %s(%q), want %s(%q)", tok.ID, tok.Text, tt.id, tt.text)
			}
		})
	}
}

func TestLexerDeclaredBeatsUnknown(t *testing.T) {
	lexer := MustNew([]Pattern{MustPattern("BANG", `!`)})

	tok, err := lexer.Next(source.New("!?"))
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if tok.ID != "BANG" {
		t.Errorf("ID = %s, want BANG", tok.ID)
	}
}

func TestLexerCacheIdempotence(t *testing.T) {
	evaluations := 0
	lexer := MustNew(demoPatterns(), WithMatchHook(func(string) { evaluations++ }))
	c := source.New("let x")

	first, err := lexer.Next(c)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if evaluations != 3 {
		t.Errorf("evaluations = %d after first lex, want 3", evaluations)
	}
	if c.CachedTokens() != 1 {
		t.Errorf("CachedTokens() = %d, want 1", c.CachedTokens())
	}

	c.SetOffset(0)
	second, err := lexer.Next(c)
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second != first {
		t.Errorf("second token %v differs from first %v", second, first)
	}
	if evaluations != 3 {
		t.Errorf("evaluations = %d after cached lex, want 3", evaluations)
	}
	if c.Offset() != 3 {
		t.Errorf("Offset() = %d after cached lex, want 3", c.Offset())
	}

	c.ClearTokens()
	c.SetOffset(0)
	if _, err := lexer.Next(c); err != nil {
		t.Fatalf("Next after ClearTokens: %v", err)
	}
	if evaluations != 6 {
		t.Errorf("evaluations = %d after ClearTokens, want 6", evaluations)
	}
}

func TestLexerRelexesForeignTokens(t *testing.T) {
	wide := MustNew(demoPatterns())
	narrow := MustNew(nil)
	c := source.New("c")

	tok, err := wide.Next(c)
	if err != nil {
		t.Fatalf("wide Next: %v", err)
	}
	if tok.ID != "ID" {
		t.Fatalf("wide token = %v, want ID", tok)
	}

	c.SetOffset(0)
	tok, err = narrow.Next(c)
	if err != nil {
		t.Fatalf("narrow Next: %v", err)
	}
	if tok.ID != Unknown || tok.Text != "c" {
		t.Errorf("narrow token = %v, want %s \"c\"", tok, Unknown)
	}
	if c.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1", c.Offset())
	}
}

func TestLexerSharesTokensBetweenAlternatives(t *testing.T) {
	evaluations := 0
	lexer := MustNew([]Pattern{
		MustPattern("NUM", `[0-9]+`),
		MustPattern("ID", `[a-z]+`),
	}, WithMatchHook(func(string) { evaluations++ }))

	c := source.New("abc")
	r, err := parse.Run(parse.FirstSuccess(Lexeme(lexer, "NUM"), Lexeme(lexer, "ID")), c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Value != "abc" {
		t.Errorf("Value = %q", r.Value)
	}
	if evaluations != 2 {
		t.Errorf("evaluations = %d, want 2", evaluations)
	}
}

func TestNewRejectsInvalidPatterns(t *testing.T) {
	tests := map[string][]Pattern{
		"duplicate": {MustPattern("A", "a"), MustPattern("A", "b")},
		"eos":       {MustPattern(EOS, "a")},
		"unknown":   {MustPattern(Unknown, "a")},
		"empty id":  {MustPattern("", "a")},
		"no regex":  {{ID: "A"}},
	}
	for name, patterns := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := New(patterns); err == nil {
				t.Error("New succeeded")
			}
		})
	}
}

func TestLexerPatterns(t *testing.T) {
	lexer := MustNew(demoPatterns())

	if got := len(lexer.Patterns()); got != 3 {
		t.Errorf("len(Patterns()) = %d, want 3", got)
	}
	for _, id := range []string{"WS", "LET", "ID", EOS, Unknown} {
		if !lexer.HasPattern(id) {
			t.Errorf("HasPattern(%s) = false", id)
		}
	}
	if lexer.HasPattern("NUM") {
		t.Error("HasPattern(NUM) = true")
	}

	p, ok := lexer.Pattern("LET")
	if !ok || p.Regex.Pattern() != "let" {
		t.Errorf("Pattern(LET) = %+v, %v", p, ok)
	}
	if _, ok := lexer.Pattern(EOS); ok {
		t.Error("Pattern(EOS) returned a declared pattern")
	}
	if _, ok := lexer.Pattern(Unknown); ok {
		t.Error("Pattern(Unknown) returned a declared pattern")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{ID: "ID", Text: "abc", Location: source.Location{Position: source.Position{Line: 2, Column: 5}}}
	if got := tok.String(); got != `(2, 5) ID "abc"` {
		t.Errorf("String() = %s", got)
	}
}
