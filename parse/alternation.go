package parse

import (
	"github.com/dhamidi/lpc/source"
)

// Longest tries every parser from the same offset and keeps the match that
// consumed the most input. On equal lengths the earlier parser wins.
//
// When all of them fail, the failure that got furthest is returned. If
// several failures are tied, they become the trace of a single
// "no option parsed" failure.
func Longest[T any](ps ...Parser[T]) Parser[T] {
	return Func[T](func(loc source.Location, c *source.Cursor) (Result[T], error) {
		start := c.Offset()
		var (
			best     Result[T]
			bestEnd  = -1
			failures []*Failure
		)
		for _, p := range ps {
			c.SetOffset(start)
			r, err := Run(p, c)
			if err != nil {
				f, ok := AsFailure(err)
				if !ok {
					return Result[T]{}, err
				}
				failures = append(failures, f)
				continue
			}
			if c.Offset() > bestEnd {
				best, bestEnd = r, c.Offset()
			}
		}

		if bestEnd < 0 {
			return Result[T]{}, noOption(loc, failures)
		}
		c.SetOffset(bestEnd)
		return best, nil
	})
}

// FirstSuccess tries each parser in order and returns the first match.
// Failures are reported like Longest does.
func FirstSuccess[T any](ps ...Parser[T]) Parser[T] {
	return Func[T](func(loc source.Location, c *source.Cursor) (Result[T], error) {
		start := c.Offset()
		var failures []*Failure
		for _, p := range ps {
			c.SetOffset(start)
			r, err := Run(p, c)
			if err == nil {
				return r, nil
			}
			f, ok := AsFailure(err)
			if !ok {
				return Result[T]{}, err
			}
			failures = append(failures, f)
		}
		return Result[T]{}, noOption(loc, failures)
	})
}

func noOption(loc source.Location, failures []*Failure) *Failure {
	best := furthest(failures)
	switch len(best) {
	case 0:
		return NewFailure(loc, "no option parsed")
	case 1:
		return best[0]
	}
	return &Failure{Location: loc, Message: "no option parsed", Trace: best}
}
