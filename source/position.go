// Package source holds the input model shared by every parser: positions,
// locations and the Cursor that owns the text being parsed.
package source

import "fmt"

// Position is a 1-based line and column inside a source text.
// Columns count characters, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Line, p.Column)
}

// IsValid reports whether both coordinates are 1-based.
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1
}

// Compare returns -1, 0 or +1 depending on whether p comes before, at or
// after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Location is a Position inside a named stream.
type Location struct {
	Name     string
	Position Position
}

func (l Location) String() string {
	if l.Name != "" {
		return fmt.Sprintf("%s:%s", l.Name, l.Position)
	}
	return l.Position.String()
}

// Token is a lexed span remembered by a Cursor. Pattern is the index of the
// pattern that produced it, as understood by the lexer that stored it.
type Token struct {
	Pattern  int
	Location Location
	Text     string
}
