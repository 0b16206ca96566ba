package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/lpc/source"
)

// Failure is a recoverable parse error. Trace holds the causes that led to
// it, oldest first.
type Failure struct {
	Location source.Location
	Message  string
	Trace    []*Failure
}

func NewFailure(loc source.Location, message string) *Failure {
	return &Failure{Location: loc, Message: message}
}

func Failuref(loc source.Location, format string, args ...any) *Failure {
	return NewFailure(loc, fmt.Sprintf(format, args...))
}

// Expectation reports that expected was wanted at loc but found was there.
func Expectation(expected, found string, loc source.Location) *Failure {
	return Failuref(loc, "expected %s, found %s", expected, found)
}

// Combine returns a copy of head with cause appended to its trace.
func Combine(head, cause *Failure) *Failure {
	trace := make([]*Failure, 0, len(head.Trace)+1)
	trace = append(trace, head.Trace...)
	trace = append(trace, cause)
	return &Failure{Location: head.Location, Message: head.Message, Trace: trace}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("Error @ %s: %s", f.Location.Position, f.Message)
}

// Report renders f followed by its trace, each entry one tab deeper than
// its parent.
func (f *Failure) Report() string {
	var sb strings.Builder
	sb.WriteString(f.Error())
	for _, cause := range f.Trace {
		sb.WriteString("\n\t")
		sb.WriteString(strings.ReplaceAll(cause.Report(), "\n", "\n\t"))
	}
	return sb.String()
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// furthest returns the failures that reached the greatest position.
func furthest(failures []*Failure) []*Failure {
	var best []*Failure
	for _, f := range failures {
		if len(best) == 0 {
			best = append(best, f)
			continue
		}
		switch f.Location.Position.Compare(best[0].Location.Position) {
		case 1:
			best = append(best[:0], f)
		case 0:
			best = append(best, f)
		}
	}
	return best
}
