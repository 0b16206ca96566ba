package parse

import (
	"testing"

	"github.com/dhamidi/lpc/source"
)

func TestSeq(t *testing.T) {
	c := source.New("abcde")
	r, err := Run(Seq(Char("a"), Char("b"), Char("c"), Char("d"), Char("e")), c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(r.Value) != len(want) {
		t.Fatalf("got %d results, want %d", len(r.Value), len(want))
	}
	for i, w := range want {
		if r.Value[i].Value != w {
			t.Errorf("result %d = %q, want %q", i, r.Value[i].Value, w)
		}
		if col := r.Value[i].Location.Position.Column; col != i+1 {
			t.Errorf("result %d column = %d, want %d", i, col, i+1)
		}
	}
	if c.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", c.Offset())
	}
}

func TestSeqEmpty(t *testing.T) {
	c := source.New("xyz")
	c.Ignore(1)

	r, err := Run(Seq[string](), c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.Value) != 0 {
		t.Errorf("got %d results", len(r.Value))
	}
	if r.Location.Position != (source.Position{Line: 1, Column: 2}) {
		t.Errorf("Location = %v, want call site (1, 2)", r.Location)
	}
}

func TestSeq2AndSeq3(t *testing.T) {
	pair, err := ParseString(Seq2(Letters(), Map(Digits(), func(r Result[string]) int { return len(r.Value) })), "ab123")
	if err != nil {
		t.Fatalf("Seq2: %v", err)
	}
	if pair.Value.First.Value != "ab" || pair.Value.Second.Value != 3 {
		t.Errorf("Seq2 = %+v", pair.Value)
	}

	triple, err := ParseString(Seq3(Letter(), Digit(), Letter()), "a1b")
	if err != nil {
		t.Fatalf("Seq3: %v", err)
	}
	if triple.Value.Third.Location.Position.Column != 3 {
		t.Errorf("third column = %d", triple.Value.Third.Location.Position.Column)
	}
}

func TestPrefixedSuffixedBetween(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser[string]
		input  string
		want   string
		offset int
	}{
		{"prefixed", Prefixed(Char("$"), Letters()), "$abc;", "abc", 4},
		{"suffixed", Suffixed(Digits(), Char(";")), "12;x", "12", 3},
		{"between", Between(Char("["), AlphaNums(), Char("]")), "[a1]", "a1", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := source.New(tt.input)
			r, err := Run(tt.parser, c)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if r.Value != tt.want {
				t.Errorf("Value = %q, want %q", r.Value, tt.want)
			}
			if c.Offset() != tt.offset {
				t.Errorf("Offset() = %d, want %d", c.Offset(), tt.offset)
			}
		})
	}

	c := source.New("[a1)")
	if _, err := Run(Between(Char("["), AlphaNums(), Char("]")), c); err == nil {
		t.Error("Between accepted a wrong closing delimiter")
	}
	if c.Offset() != 0 {
		t.Errorf("Offset() = %d after failed Between, want 0", c.Offset())
	}
}

func TestCountInvalidBounds(t *testing.T) {
	for _, bounds := range [][2]int{{-1, 3}, {0, -1}, {4, 2}} {
		if _, err := Count(Letter(), bounds[0], bounds[1]); err == nil {
			t.Errorf("Count(%d, %d) succeeded", bounds[0], bounds[1])
		}
	}
	if _, err := Exactly(Letter(), -2); err == nil {
		t.Error("Exactly(-2) succeeded")
	}
}

func TestCount(t *testing.T) {
	letter := Func[string](func(loc source.Location, c *source.Cursor) (Result[string], error) {
		ch := c.Peek()
		if !(ch >= 'a' && ch <= 'z') {
			return Result[string]{}, Expectation("a letter", quote(string(ch)), loc)
		}
		return Result[string]{Location: loc, Value: string(c.Get())}, nil
	})
	parser := MustCount[string](letter, 1, 3)
	c := source.New("abcef g ")

	r, err := Run(parser, c)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if len(r.Value) != 3 || r.Value[0].Value != "a" || r.Value[2].Value != "c" {
		t.Errorf("first Value = %+v", r.Value)
	}

	r, err = Run(parser, c)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(r.Value) != 2 || r.Value[0].Location.Position.Column != 4 || r.Value[1].Value != "f" {
		t.Errorf("second Value = %+v", r.Value)
	}

	if _, err := Run(parser, c); err == nil {
		t.Fatal("third Run succeeded on a space")
	}
	c.Ignore(1)

	r, err = Run(parser, c)
	if err != nil {
		t.Fatalf("fourth Run: %v", err)
	}
	if len(r.Value) != 1 || r.Value[0].Value != "g" || r.Location.Position.Column != 7 {
		t.Errorf("fourth Value = %+v", r.Value)
	}
}

func TestCountBoundaries(t *testing.T) {
	parser := MustCount(Letter(), 2, 4)

	c := source.New("a1")
	_, err := Run(parser, c)
	f, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error = %v, want a failure", err)
	}
	if f.Message != "expected at least 2, found only 1" {
		t.Errorf("Message = %q", f.Message)
	}
	if len(f.Trace) != 1 || f.Trace[0].Location.Position.Column != 2 {
		t.Errorf("trace = %v, want the failure that stopped the loop", f.Trace)
	}
	if c.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", c.Offset())
	}

	c = source.New("abcde")
	r, err := Run(parser, c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.Value) != 4 {
		t.Errorf("got %d results, want 4", len(r.Value))
	}
	if c.Offset() != 4 {
		t.Errorf("Offset() = %d, want 4", c.Offset())
	}
}

func TestCountDerivatives(t *testing.T) {
	exactly, err := Exactly(Digit(), 2)
	if err != nil {
		t.Fatalf("Exactly: %v", err)
	}

	tests := []struct {
		name   string
		parser Parser[[]Result[string]]
		input  string
		n      int
		ok     bool
	}{
		{"ManyOrOne", ManyOrOne(Digit()), "123a", 3, true},
		{"ManyOrOne none", ManyOrOne(Digit()), "a", 0, false},
		{"ZeroOrOne", ZeroOrOne(Digit()), "123", 1, true},
		{"ZeroOrOne none", ZeroOrOne(Digit()), "a", 0, true},
		{"ZeroOrMore", ZeroOrMore(Digit()), "1234", 4, true},
		{"ZeroOrMore none", ZeroOrMore(Digit()), "", 0, true},
		{"Exactly", exactly, "123", 2, true},
		{"Exactly short", exactly, "1a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseString(tt.parser, tt.input)
			if tt.ok != (err == nil) {
				t.Fatalf("error = %v, want ok=%v", err, tt.ok)
			}
			if len(r.Value) != tt.n {
				t.Errorf("got %d results, want %d", len(r.Value), tt.n)
			}
		})
	}
}

func TestZeroOrMoreStopsWithoutProgress(t *testing.T) {
	r, err := ParseString(ZeroOrMore(Value(1)), "abc")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(r.Value) != 1 {
		t.Errorf("got %d results, want 1", len(r.Value))
	}

	r, err = ParseString(MustCount(Value(1), 3, Unbounded), "")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(r.Value) != 3 {
		t.Errorf("got %d results, want 3", len(r.Value))
	}
}
