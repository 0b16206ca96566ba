// Package lex turns a list of regular expression patterns into a token
// parser.
//
// At every offset all patterns are tried and the longest match wins; on
// equal lengths the pattern declared first wins. Two patterns are always
// present: EOS, which matches only at the end of input, and Unknown, which
// matches any single character that no declared pattern covers.
//
// Lexed tokens are memoized in the source.Cursor, so a token consumed by
// several alternative parsers at the same offset is only matched once. A
// cursor's token cache is meant to be filled by one Lexer; a cached token
// whose pattern index this lexer does not know is lexed again.
package lex

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/lpc/parse"
	"github.com/dhamidi/lpc/source"
	"github.com/tliron/commonlog"
)

// Reserved pattern ids.
const (
	EOS     = "<EOS>"
	Unknown = "<UNKNOWN>"
)

// Pattern associates a token id with the regular expression that
// recognizes it.
type Pattern struct {
	ID    string
	Regex *parse.Regex
}

func NewPattern(id, expr string) (Pattern, error) {
	re, err := parse.CompileRegex(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %s: %w", id, err)
	}
	return Pattern{ID: id, Regex: re}, nil
}

// MustPattern is NewPattern that panics on an invalid expression.
func MustPattern(id, expr string) Pattern {
	p, err := NewPattern(id, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Token is a lexed span of input.
type Token struct {
	ID       string
	Location source.Location
	Text     string
}

func (t Token) IsEOS() bool {
	return t.ID == EOS
}

func (t Token) IsUnknown() bool {
	return t.ID == Unknown
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Location.Position, t.ID, t.Text)
}

type Option func(*Lexer)

// WithLogger replaces the "lpc.lex" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(l *Lexer) {
		l.log = log
	}
}

// WithMatchHook registers a function called every time the expression of
// a declared pattern is evaluated.
func WithMatchHook(hook func(id string)) Option {
	return func(l *Lexer) {
		l.hook = hook
	}
}

// match is a candidate produced while lexing, before it is cached.
type match struct {
	pattern int
	text    string
}

type Lexer struct {
	patterns []Pattern
	ids      []string // EOS, declared patterns, Unknown
	index    map[string]int
	longest  parse.Parser[match]
	hook     func(id string)
	log      commonlog.Logger
}

// New builds a lexer over patterns. Ids must be unique and must not use
// the reserved EOS and Unknown ids.
func New(patterns []Pattern, opts ...Option) (*Lexer, error) {
	l := &Lexer{
		patterns: append([]Pattern(nil), patterns...),
		index:    make(map[string]int, len(patterns)+2),
		log:      commonlog.GetLogger("lpc.lex"),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.ids = append(l.ids, EOS)
	l.index[EOS] = 0
	candidates := []parse.Parser[match]{eosMatcher()}

	for _, p := range l.patterns {
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("pattern with empty id")
		case p.Regex == nil:
			return nil, fmt.Errorf("pattern %s has no regular expression", p.ID)
		case p.ID == EOS || p.ID == Unknown:
			return nil, fmt.Errorf("pattern id %s is reserved", p.ID)
		}
		if _, exists := l.index[p.ID]; exists {
			return nil, fmt.Errorf("pattern already exists with id: %s", p.ID)
		}
		l.index[p.ID] = len(l.ids)
		l.ids = append(l.ids, p.ID)
		candidates = append(candidates, l.patternMatcher(p, l.index[p.ID]))
	}

	l.index[Unknown] = len(l.ids)
	l.ids = append(l.ids, Unknown)
	candidates = append(candidates, parse.Map(parse.Char(), func(r parse.Result[string]) match {
		return match{pattern: l.index[Unknown], text: r.Value}
	}))

	l.longest = parse.Longest(candidates...)
	return l, nil
}

// MustNew is New that panics on invalid patterns.
func MustNew(patterns []Pattern, opts ...Option) *Lexer {
	l, err := New(patterns, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

func eosMatcher() parse.Parser[match] {
	return parse.Func[match](func(loc source.Location, c *source.Cursor) (parse.Result[match], error) {
		if !c.AtEnd() {
			found := fmt.Sprintf("'%c'", c.Peek())
			return parse.Result[match]{}, parse.Expectation("'"+EOS+"'", found, loc)
		}
		return parse.Result[match]{Location: loc, Value: match{pattern: 0}}, nil
	})
}

func (l *Lexer) patternMatcher(p Pattern, index int) parse.Parser[match] {
	terminal := parse.Terminal(p.Regex)
	return parse.Func[match](func(_ source.Location, c *source.Cursor) (parse.Result[match], error) {
		if l.hook != nil {
			l.hook(p.ID)
		}
		r, err := parse.Run(terminal, c)
		if err != nil {
			return parse.Result[match]{}, err
		}
		return parse.Result[match]{Location: r.Location, Value: match{pattern: index, text: r.Value}}, nil
	})
}

// Apply lexes one token at the cursor, reusing a cached token when the
// offset was lexed before.
func (l *Lexer) Apply(_ source.Location, c *source.Cursor) (parse.Result[Token], error) {
	if peeked, ok := c.PeekToken(); ok {
		if l.owns(peeked) {
			cached, _ := c.CachedToken()
			l.log.Debugf("cached %s at %s", l.ids[cached.Pattern], cached.Location)
			return l.result(cached), nil
		}
		l.log.Debugf("ignoring foreign token at %s", peeked.Location)
	}

	r, err := parse.Run(l.longest, c)
	if err != nil {
		return parse.Result[Token]{}, err
	}
	stored, err := c.StoreToken(r.Location.Position, utf8.RuneCountInString(r.Value.text), r.Value.pattern)
	if err != nil {
		return parse.Result[Token]{}, err
	}
	l.log.Debugf("lexed %s %q at %s", l.ids[stored.Pattern], stored.Text, stored.Location)
	return l.result(stored), nil
}

// owns reports whether tok carries a pattern index of this lexer. Tokens
// stored by another lexer are lexed again and overwritten.
func (l *Lexer) owns(tok source.Token) bool {
	return tok.Pattern >= 0 && tok.Pattern < len(l.ids)
}

func (l *Lexer) result(tok source.Token) parse.Result[Token] {
	return parse.Result[Token]{
		Location: tok.Location,
		Value:    Token{ID: l.ids[tok.Pattern], Location: tok.Location, Text: tok.Text},
	}
}

// Next lexes the token at the cursor and advances past it.
func (l *Lexer) Next(c *source.Cursor) (Token, error) {
	r, err := parse.Run[Token](l, c)
	return r.Value, err
}

// Tokenize lexes until the end of input. The final token is always EOS.
func (l *Lexer) Tokenize(c *source.Cursor) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next(c)
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOS() {
			return tokens, nil
		}
	}
}

// Skipping returns a token parser that discards tokens with the given ids,
// such as whitespace or comments. EOS is never skipped.
func (l *Lexer) Skipping(ids ...string) parse.Parser[Token] {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != EOS {
			skip[id] = true
		}
	}
	return parse.Func[Token](func(_ source.Location, c *source.Cursor) (parse.Result[Token], error) {
		for {
			r, err := parse.Run[Token](l, c)
			if err != nil {
				return parse.Result[Token]{}, err
			}
			if !skip[r.Value.ID] {
				return r, nil
			}
		}
	})
}

// Patterns returns the declared patterns in declaration order.
func (l *Lexer) Patterns() []Pattern {
	return append([]Pattern(nil), l.patterns...)
}

// HasPattern reports whether id is known, including the reserved ids.
func (l *Lexer) HasPattern(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Pattern returns the declared pattern with the given id.
func (l *Lexer) Pattern(id string) (Pattern, bool) {
	i, ok := l.index[id]
	if !ok || i == 0 || i == len(l.ids)-1 {
		return Pattern{}, false
	}
	return l.patterns[i-1], true
}
