package parse

import (
	"fmt"
	"math"

	"github.com/dhamidi/lpc/source"
)

// Unbounded removes the upper limit of Count.
const Unbounded = math.MaxInt

// Seq runs each parser in order and collects their results. The location
// is the first element's, or the call site's when ps is empty.
func Seq[T any](ps ...Parser[T]) Parser[[]Result[T]] {
	return Func[[]Result[T]](func(loc source.Location, c *source.Cursor) (Result[[]Result[T]], error) {
		results := make([]Result[T], 0, len(ps))
		for _, p := range ps {
			r, err := Run(p, c)
			if err != nil {
				return Result[[]Result[T]]{}, err
			}
			results = append(results, r)
		}
		if len(results) > 0 {
			loc = results[0].Location
		}
		return Result[[]Result[T]]{Location: loc, Value: results}, nil
	})
}

type Pair[A, B any] struct {
	First  Result[A]
	Second Result[B]
}

type Triple[A, B, C any] struct {
	First  Result[A]
	Second Result[B]
	Third  Result[C]
}

// Seq2 is Seq over two parsers of different types.
func Seq2[A, B any](first Parser[A], second Parser[B]) Parser[Pair[A, B]] {
	return Func[Pair[A, B]](func(_ source.Location, c *source.Cursor) (Result[Pair[A, B]], error) {
		ra, err := Run(first, c)
		if err != nil {
			return Result[Pair[A, B]]{}, err
		}
		rb, err := Run(second, c)
		if err != nil {
			return Result[Pair[A, B]]{}, err
		}
		return Result[Pair[A, B]]{Location: ra.Location, Value: Pair[A, B]{First: ra, Second: rb}}, nil
	})
}

// Seq3 is Seq over three parsers of different types.
func Seq3[A, B, C any](first Parser[A], second Parser[B], third Parser[C]) Parser[Triple[A, B, C]] {
	return Func[Triple[A, B, C]](func(_ source.Location, c *source.Cursor) (Result[Triple[A, B, C]], error) {
		ra, err := Run(first, c)
		if err != nil {
			return Result[Triple[A, B, C]]{}, err
		}
		rb, err := Run(second, c)
		if err != nil {
			return Result[Triple[A, B, C]]{}, err
		}
		rc, err := Run(third, c)
		if err != nil {
			return Result[Triple[A, B, C]]{}, err
		}
		v := Triple[A, B, C]{First: ra, Second: rb, Third: rc}
		return Result[Triple[A, B, C]]{Location: ra.Location, Value: v}, nil
	})
}

// Prefixed runs discard then p and keeps p's result.
func Prefixed[D, T any](discard Parser[D], p Parser[T]) Parser[T] {
	return Map(Seq2(discard, p), func(r Result[Pair[D, T]]) T {
		return r.Value.Second.Value
	})
}

// Suffixed runs p then discard and keeps p's result.
func Suffixed[T, D any](p Parser[T], discard Parser[D]) Parser[T] {
	return Map(Seq2(p, discard), func(r Result[Pair[T, D]]) T {
		return r.Value.First.Value
	})
}

// Between runs pre, p and post and keeps p's result.
func Between[A, T, B any](pre Parser[A], p Parser[T], post Parser[B]) Parser[T] {
	return Map(Seq3(pre, p, post), func(r Result[Triple[A, T, B]]) T {
		return r.Value.Second.Value
	})
}

// Count matches p at least min and at most max times. Use Unbounded for
// no upper limit. When max is Unbounded the loop also stops once min is
// reached and a match consumed no input.
func Count[T any](p Parser[T], min, max int) (Parser[[]Result[T]], error) {
	if min < 0 {
		return nil, fmt.Errorf("count: minimum %d is negative", min)
	}
	if max < 0 {
		return nil, fmt.Errorf("count: maximum %d is negative", max)
	}
	if max < min {
		return nil, fmt.Errorf("count: maximum %d is less than minimum %d", max, min)
	}

	return Func[[]Result[T]](func(loc source.Location, c *source.Cursor) (Result[[]Result[T]], error) {
		var results []Result[T]
		var stop error
		for len(results) < max {
			before := c.Offset()
			r, err := Run(p, c)
			if err != nil {
				stop = err
				break
			}
			results = append(results, r)
			if max == Unbounded && c.Offset() == before && len(results) >= min {
				break
			}
		}

		if len(results) < min {
			cause, ok := AsFailure(stop)
			if !ok {
				return Result[[]Result[T]]{}, stop
			}
			head := Expectation(fmt.Sprintf("at least %d", min), fmt.Sprintf("only %d", len(results)), loc)
			return Result[[]Result[T]]{}, Combine(head, cause)
		}
		if stop != nil {
			if _, ok := AsFailure(stop); !ok {
				return Result[[]Result[T]]{}, stop
			}
		}

		if len(results) > 0 {
			loc = results[0].Location
		}
		return Result[[]Result[T]]{Location: loc, Value: results}, nil
	}), nil
}

// MustCount is Count that panics on invalid bounds.
func MustCount[T any](p Parser[T], min, max int) Parser[[]Result[T]] {
	counted, err := Count(p, min, max)
	if err != nil {
		panic(err)
	}
	return counted
}

// ManyOrOne matches p one or more times.
func ManyOrOne[T any](p Parser[T]) Parser[[]Result[T]] {
	return MustCount(p, 1, Unbounded)
}

// ZeroOrOne matches p at most once.
func ZeroOrOne[T any](p Parser[T]) Parser[[]Result[T]] {
	return MustCount(p, 0, 1)
}

// ZeroOrMore matches p any number of times.
func ZeroOrMore[T any](p Parser[T]) Parser[[]Result[T]] {
	return MustCount(p, 0, Unbounded)
}

// Exactly matches p n times.
func Exactly[T any](p Parser[T], n int) (Parser[[]Result[T]], error) {
	return Count(p, n, n)
}
