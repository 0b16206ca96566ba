// Package parse provides parser combinators over a source.Cursor.
//
// A Parser[T] reads from the cursor and produces a Result[T] or an error.
// Parse failures are reported as *Failure and can be recovered by the
// alternation and optional combinators. Any other error (an invalid cursor
// conversion, a regular expression timeout, the depth guard) aborts the
// whole parse.
//
// Every parser must be invoked through Run, which rewinds the cursor to
// where the attempt started whenever it returns an error:
//
//	digits := parse.Digits()
//	c := source.New("123abc")
//	r, err := parse.Run(digits, c)
//	// r.Value == "123", c.Offset() == 3
//
// Grammars are built once and may be applied to any number of cursors.
// A cursor must only be used by one parse at a time.
package parse

import (
	"github.com/dhamidi/lpc/source"
)

// Result is a successful match: its starting location and the value it
// produced.
type Result[T any] struct {
	Location source.Location
	Value    T
}

// Parser is anything that can match at the current offset of a cursor.
// Implementations may leave the cursor anywhere when they fail; Run
// restores it.
type Parser[T any] interface {
	Apply(loc source.Location, c *source.Cursor) (Result[T], error)
}

// Func adapts a function to the Parser interface.
type Func[T any] func(loc source.Location, c *source.Cursor) (Result[T], error)

func (f Func[T]) Apply(loc source.Location, c *source.Cursor) (Result[T], error) {
	return f(loc, c)
}

// Run applies p at the cursor's current offset. On error the cursor is
// moved back to that offset before the error is returned.
func Run[T any](p Parser[T], c *source.Cursor) (Result[T], error) {
	start := c.Offset()
	if err := c.Descend(); err != nil {
		return Result[T]{}, err
	}
	defer c.Ascend()

	r, err := p.Apply(c.Location(), c)
	if err != nil {
		c.SetOffset(start)
		return Result[T]{}, err
	}
	return r, nil
}

// ParseString runs p over a fresh, unnamed cursor on text.
func ParseString[T any](p Parser[T], text string) (Result[T], error) {
	return Run(p, source.New(text))
}
