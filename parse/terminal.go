package parse

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/lpc/source"
)

var (
	charRegex        = MustRegex(`[\S\s]`)
	charsRegex       = MustRegex(`[\S\s]+`)
	letterRegex      = MustRegex(`[a-zA-Z]`)
	lettersRegex     = MustRegex(`[a-zA-Z]+`)
	digitRegex       = MustRegex(`[0-9]`)
	digitsRegex      = MustRegex(`[0-9]+`)
	alphaNumRegex    = MustRegex(`[a-zA-Z0-9]`)
	alphaNumsRegex   = MustRegex(`[a-zA-Z0-9]+`)
	whitespaceRegex  = MustRegex(`\s`)
	whitespacesRegex = MustRegex(`\s+`)
)

// Terminal matches re at the current offset and returns the matched text.
// If an expected text is given, a match with any other text fails.
func Terminal(re *Regex, expected ...string) Parser[string] {
	if len(expected) > 1 {
		panic("parse: Terminal takes at most one expected text")
	}
	return Func[string](func(loc source.Location, c *source.Cursor) (Result[string], error) {
		text, ok, err := re.Match(c.Rest())
		if err != nil {
			return Result[string]{}, fmt.Errorf("match %q at %s: %w", re.Pattern(), loc, err)
		}
		if !ok {
			return Result[string]{}, Failuref(loc, "no match found for regular expression: %s", re.Pattern())
		}
		if len(expected) == 1 && text != expected[0] {
			return Result[string]{}, Expectation(quote(expected[0]), quote(text), loc)
		}
		c.Ignore(utf8.RuneCountInString(text))
		return Result[string]{Location: loc, Value: text}, nil
	})
}

// Char matches any single character.
func Char(expected ...string) Parser[string] { return Terminal(charRegex, expected...) }

// Chars matches the rest of the input.
func Chars(expected ...string) Parser[string] { return Terminal(charsRegex, expected...) }

func Letter(expected ...string) Parser[string]  { return Terminal(letterRegex, expected...) }
func Letters(expected ...string) Parser[string] { return Terminal(lettersRegex, expected...) }
func Digit(expected ...string) Parser[string]   { return Terminal(digitRegex, expected...) }
func Digits(expected ...string) Parser[string]  { return Terminal(digitsRegex, expected...) }

func AlphaNum(expected ...string) Parser[string]  { return Terminal(alphaNumRegex, expected...) }
func AlphaNums(expected ...string) Parser[string] { return Terminal(alphaNumsRegex, expected...) }

func Whitespace(expected ...string) Parser[string]  { return Terminal(whitespaceRegex, expected...) }
func Whitespaces(expected ...string) Parser[string] { return Terminal(whitespacesRegex, expected...) }

// EOS matches only at the end of input.
func EOS() Parser[struct{}] {
	return Func[struct{}](func(loc source.Location, c *source.Cursor) (Result[struct{}], error) {
		if !c.AtEnd() {
			return Result[struct{}]{}, Expectation("end of stream", quote(string(c.Peek())), loc)
		}
		return Result[struct{}]{Location: loc}, nil
	})
}

// Error always fails with message. It marks grammar branches that must not
// be reached.
func Error[T any](message string) Parser[T] {
	return Func[T](func(loc source.Location, _ *source.Cursor) (Result[T], error) {
		return Result[T]{}, NewFailure(loc, message)
	})
}

func quote(s string) string {
	return "'" + s + "'"
}
