package parse

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Regex is a regular expression that only matches at the start of the
// input it is given. Anchors inside the pattern are allowed but redundant.
type Regex struct {
	pattern string
	re      *regexp2.Regexp
}

func CompileRegex(pattern string) (*Regex, error) {
	re, err := regexp2.Compile("^(?:"+pattern+")", regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return &Regex{pattern: pattern, re: re}, nil
}

// MustRegex is CompileRegex that panics on an invalid pattern.
func MustRegex(pattern string) *Regex {
	re, err := CompileRegex(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the expression as written by the caller.
func (r *Regex) Pattern() string {
	return r.pattern
}

func (r *Regex) String() string {
	return r.pattern
}

// Match returns the text matched at the start of input. The error is only
// set when the regular expression engine gives up, for example on a
// timeout.
func (r *Regex) Match(input []rune) (string, bool, error) {
	m, err := r.re.FindRunesMatch(input)
	if err != nil {
		return "", false, err
	}
	if m == nil {
		return "", false, nil
	}
	return m.String(), true, nil
}
