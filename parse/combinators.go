package parse

import (
	"github.com/dhamidi/lpc/source"
	"github.com/tliron/commonlog"
)

// Map transforms the value produced by p, keeping its location.
func Map[T, U any](p Parser[T], f func(Result[T]) U) Parser[U] {
	return Func[U](func(_ source.Location, c *source.Cursor) (Result[U], error) {
		r, err := Run(p, c)
		if err != nil {
			return Result[U]{}, err
		}
		return Result[U]{Location: r.Location, Value: f(r)}, nil
	})
}

// MapErr is Map with a transformation that may fail. Its error is
// returned unchanged.
func MapErr[T, U any](p Parser[T], f func(Result[T]) (U, error)) Parser[U] {
	return Func[U](func(_ source.Location, c *source.Cursor) (Result[U], error) {
		r, err := Run(p, c)
		if err != nil {
			return Result[U]{}, err
		}
		v, err := f(r)
		if err != nil {
			return Result[U]{}, err
		}
		return Result[U]{Location: r.Location, Value: v}, nil
	})
}

// Value always succeeds with v and consumes nothing.
func Value[T any](v T) Parser[T] {
	return Func[T](func(loc source.Location, _ *source.Cursor) (Result[T], error) {
		return Result[T]{Location: loc, Value: v}, nil
	})
}

// Satisfy fails unless pred accepts the result of p. onFail builds the
// failure from the rejected result; when onFail is nil or returns nil a
// generic failure is used.
func Satisfy[T any](p Parser[T], pred func(Result[T]) bool, onFail func(Result[T]) *Failure) Parser[T] {
	return Func[T](func(_ source.Location, c *source.Cursor) (Result[T], error) {
		r, err := Run(p, c)
		if err != nil {
			return Result[T]{}, err
		}
		if pred(r) {
			return r, nil
		}
		if onFail != nil {
			if f := onFail(r); f != nil {
				return Result[T]{}, f
			}
		}
		return Result[T]{}, NewFailure(r.Location, "predicate not satisfied")
	})
}

// Named labels failures of p with the rule name, keeping the original
// failure as the cause.
func Named[T any](name string, p Parser[T]) Parser[T] {
	log := commonlog.GetLogger("lpc.parse")
	return Func[T](func(loc source.Location, c *source.Cursor) (Result[T], error) {
		r, err := Run(p, c)
		if err == nil {
			return r, nil
		}
		cause, ok := AsFailure(err)
		if !ok {
			return Result[T]{}, err
		}
		log.Debugf("rule %s failed at %s: %s", name, loc, cause.Message)
		return Result[T]{}, Combine(Failuref(loc, "Unable to parse %s", name), cause)
	})
}

// Option is the value of Maybe: Value is only meaningful when Ok is set.
type Option[T any] struct {
	Value T
	Ok    bool
}

// Maybe runs p and reports whether it matched. It never fails on a parse
// failure.
func Maybe[T any](p Parser[T]) Parser[Option[T]] {
	return Func[Option[T]](func(loc source.Location, c *source.Cursor) (Result[Option[T]], error) {
		r, err := Run(p, c)
		if err != nil {
			if _, ok := AsFailure(err); !ok {
				return Result[Option[T]]{}, err
			}
			return Result[Option[T]]{Location: loc}, nil
		}
		return Result[Option[T]]{Location: r.Location, Value: Option[T]{Value: r.Value, Ok: true}}, nil
	})
}

// Outcome is the value of Try: either the value produced or the failure
// that prevented it.
type Outcome[T any] struct {
	Value T
	Err   *Failure
}

func (o Outcome[T]) IsSuccess() bool {
	return o.Err == nil
}

// Try runs p and captures its failure instead of failing.
func Try[T any](p Parser[T]) Parser[Outcome[T]] {
	return Func[Outcome[T]](func(loc source.Location, c *source.Cursor) (Result[Outcome[T]], error) {
		r, err := Run(p, c)
		if err != nil {
			f, ok := AsFailure(err)
			if !ok {
				return Result[Outcome[T]]{}, err
			}
			return Result[Outcome[T]]{Location: loc, Value: Outcome[T]{Err: f}}, nil
		}
		return Result[Outcome[T]]{Location: r.Location, Value: Outcome[T]{Value: r.Value}}, nil
	})
}

// Success reports whether p matched, discarding its value.
func Success[T any](p Parser[T]) Parser[bool] {
	return Map(Maybe(p), func(r Result[Option[T]]) bool {
		return r.Value.Ok
	})
}

// Reference is a parser whose definition is supplied later, which allows
// recursive grammars:
//
//	var expr parse.Reference[int]
//	term := parse.FirstSuccess(number, parse.Between(open, &expr, close))
//	expr.Set(...term...)
//
// Applying a Reference before Set is a programming error and panics.
type Reference[T any] struct {
	p Parser[T]
}

// NewReference returns an unset reference.
func NewReference[T any]() *Reference[T] {
	return &Reference[T]{}
}

// Set defines the referenced parser. It may only be called once.
func (r *Reference[T]) Set(p Parser[T]) {
	if p == nil {
		panic("parse: Reference.Set with nil parser")
	}
	if r.p != nil {
		panic("parse: Reference already set")
	}
	r.p = p
}

// IsSet reports whether Set has been called.
func (r *Reference[T]) IsSet() bool {
	return r.p != nil
}

func (r *Reference[T]) Apply(_ source.Location, c *source.Cursor) (Result[T], error) {
	if r.p == nil {
		panic("parse: Reference used before Set")
	}
	return Run(r.p, c)
}
