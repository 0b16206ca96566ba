package lex

import (
	"github.com/dhamidi/lpc/parse"
)

// Lexeme reads one token from tokens and fails unless it has the given id
// and, if text is given, exactly that text. It produces the token text.
//
// tokens is usually a *Lexer or the result of Lexer.Skipping.
func Lexeme(tokens parse.Parser[Token], id string, text ...string) parse.Parser[string] {
	if len(text) > 1 {
		panic("lex: Lexeme takes at most one expected text")
	}
	want := ""
	if len(text) == 1 {
		want = text[0]
	}

	accept := func(r parse.Result[Token]) bool {
		return r.Value.ID == id && (len(text) == 0 || r.Value.Text == want)
	}
	reject := func(r parse.Result[Token]) *parse.Failure {
		return parse.Expectation(describe(id, want), describe(r.Value.ID, r.Value.Text), r.Location)
	}
	return parse.Map(parse.Satisfy(tokens, accept, reject), func(r parse.Result[Token]) string {
		return r.Value.Text
	})
}

// EOSLexeme matches the end of input.
func EOSLexeme(tokens parse.Parser[Token]) parse.Parser[string] {
	return Lexeme(tokens, EOS)
}

// UnknownLexeme matches a character no pattern recognized.
func UnknownLexeme(tokens parse.Parser[Token]) parse.Parser[string] {
	return Lexeme(tokens, Unknown)
}

func describe(id, text string) string {
	if text == "" {
		return "'" + id + "'"
	}
	return "'" + id + "(" + text + ")'"
}
