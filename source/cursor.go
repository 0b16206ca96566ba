package source

import (
	"sort"

	"github.com/pkg/errors"
)

// EOF is returned by Get and Peek once the cursor reached the end of input.
const EOF rune = -1

// DefaultMaxDepth bounds parser nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 10000

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	ErrTooDeep          = errors.New("maximum parser depth exceeded")
)

type Option func(*Cursor)

// WithName sets the stream name reported in every Location.
func WithName(name string) Option {
	return func(c *Cursor) {
		c.name = name
	}
}

// WithMaxDepth limits how deeply parsers may nest on this cursor.
// A value <= 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *Cursor) {
		c.maxDepth = depth
	}
}

type cachedToken struct {
	token  Token
	length int
}

// Cursor owns an immutable text and the single mutable offset every parser
// moves. It also memoizes lexed tokens by their starting offset.
//
// A Cursor must not be shared between concurrent parses.
type Cursor struct {
	name       string
	text       string
	data       []rune
	offset     int
	lineStarts []int
	tokens     map[int]cachedToken
	depth      int
	maxDepth   int
}

// New creates a cursor over text positioned at offset 0.
func New(text string, opts ...Option) *Cursor {
	c := &Cursor{
		text:     text,
		data:     []rune(text),
		tokens:   make(map[int]cachedToken),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.lineStarts = []int{0}
	for i, ch := range c.data {
		if ch == '\n' {
			c.lineStarts = append(c.lineStarts, i+1)
		}
	}
	return c
}

func (c *Cursor) Name() string {
	return c.name
}

// Text returns the whole input.
func (c *Cursor) Text() string {
	return c.text
}

// Len returns the input length in characters.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Get consumes and returns the next character, or EOF.
func (c *Cursor) Get() rune {
	if c.AtEnd() {
		return EOF
	}
	ch := c.data[c.offset]
	c.offset++
	return ch
}

// Peek returns the next character without consuming it.
func (c *Cursor) Peek() rune {
	if c.AtEnd() {
		return EOF
	}
	return c.data[c.offset]
}

// Ignore skips n characters, stopping at the end of input.
func (c *Cursor) Ignore(n int) {
	if n < 0 {
		panic("source: negative ignore count")
	}
	c.SetOffset(c.offset + n)
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.data)
}

func (c *Cursor) Offset() int {
	return c.offset
}

// SetOffset moves the cursor to an absolute offset, clamped to the input
// length.
func (c *Cursor) SetOffset(offset int) {
	if offset < 0 {
		panic("source: negative offset")
	}
	c.offset = min(offset, len(c.data))
}

// Rest returns the unconsumed input. The slice must not be modified.
func (c *Cursor) Rest() []rune {
	return c.data[c.offset:]
}

// Position returns the position of the current offset.
func (c *Cursor) Position() Position {
	pos, _ := c.PositionAt(c.offset)
	return pos
}

// Location returns the named position of the current offset.
func (c *Cursor) Location() Location {
	return Location{Name: c.name, Position: c.Position()}
}

// LocationAt is PositionAt with the stream name attached.
func (c *Cursor) LocationAt(offset int) (Location, error) {
	pos, err := c.PositionAt(offset)
	if err != nil {
		return Location{}, err
	}
	return Location{Name: c.name, Position: pos}, nil
}

// PositionAt converts a character offset into a Position. The offset equal
// to the input length is valid and denotes the end of input.
func (c *Cursor) PositionAt(offset int) (Position, error) {
	if offset < 0 || offset > len(c.data) {
		return Position{}, errors.Wrapf(ErrOffsetOutOfRange, "offset %d, length %d", offset, len(c.data))
	}
	line := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > offset
	})
	return Position{Line: line, Column: offset - c.lineStarts[line-1] + 1}, nil
}

// OffsetAt converts a Position back into a character offset.
func (c *Cursor) OffsetAt(pos Position) (int, error) {
	if !pos.IsValid() || pos.Line > len(c.lineStarts) {
		return 0, errors.Wrapf(ErrInvalidPosition, "%s", pos)
	}
	start := c.lineStarts[pos.Line-1]
	end := len(c.data)
	if pos.Line < len(c.lineStarts) {
		end = c.lineStarts[pos.Line]
	}
	if pos.Column-1 > end-start {
		return 0, errors.Wrapf(ErrInvalidPosition, "%s", pos)
	}
	return start + pos.Column - 1, nil
}

// SetPosition moves the cursor to pos.
func (c *Cursor) SetPosition(pos Position) error {
	offset, err := c.OffsetAt(pos)
	if err != nil {
		return err
	}
	c.SetOffset(offset)
	return nil
}

// Slice returns length characters starting at start.
// A negative length means "up to the end of input".
func (c *Cursor) Slice(start, length int) (string, error) {
	if length < 0 {
		length = len(c.data) - start
	}
	if start < 0 || length < 0 || start+length > len(c.data) {
		return "", errors.Wrapf(ErrRangeOutOfBounds, "start %d, length %d, input length %d", start, length, len(c.data))
	}
	return string(c.data[start : start+length]), nil
}

// CachedToken returns the token stored at the current offset and consumes
// it.
func (c *Cursor) CachedToken() (Token, bool) {
	cached, ok := c.tokens[c.offset]
	if !ok {
		return Token{}, false
	}
	c.SetOffset(c.offset + cached.length)
	return cached.token, true
}

// PeekToken returns the token stored at the current offset without
// consuming it.
func (c *Cursor) PeekToken() (Token, bool) {
	cached, ok := c.tokens[c.offset]
	return cached.token, ok
}

// StoreToken remembers the span of length characters starting at pos as a
// token produced by pattern.
func (c *Cursor) StoreToken(pos Position, length, pattern int) (Token, error) {
	offset, err := c.OffsetAt(pos)
	if err != nil {
		return Token{}, err
	}
	text, err := c.Slice(offset, length)
	if err != nil {
		return Token{}, err
	}
	tok := Token{
		Pattern:  pattern,
		Location: Location{Name: c.name, Position: pos},
		Text:     text,
	}
	c.tokens[offset] = cachedToken{token: tok, length: length}
	return tok, nil
}

// ClearTokens forgets every stored token.
func (c *Cursor) ClearTokens() {
	c.tokens = make(map[int]cachedToken)
}

// CachedTokens returns the number of stored tokens.
func (c *Cursor) CachedTokens() int {
	return len(c.tokens)
}

// Descend records one more level of parser nesting.
func (c *Cursor) Descend() error {
	if c.maxDepth > 0 && c.depth >= c.maxDepth {
		return errors.Wrapf(ErrTooDeep, "limit %d at %s", c.maxDepth, c.Location())
	}
	c.depth++
	return nil
}

// Ascend undoes one Descend.
func (c *Cursor) Ascend() {
	if c.depth > 0 {
		c.depth--
	}
}

// Depth returns the current parser nesting level.
func (c *Cursor) Depth() int {
	return c.depth
}
