package charblock

import (
	"testing"

	"github.com/0x4d5352/regocross/internal/alphabet"
)

func mustAlphabet(t *testing.T, explicit string) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New(explicit)
	if err != nil {
		t.Fatalf("alphabet.New(%q): %v", explicit, err)
	}
	return a
}

func TestSingle(t *testing.T) {
	a := mustAlphabet(t, "abc")
	s := Single{Char: 'b'}
	cs := s.Characters(a)
	if cs.Count() != 1 {
		t.Fatalf("expected exactly one candidate, got %v", cs)
	}
	idx, _ := a.IndexOf('b')
	if !cs.Contains(idx) {
		t.Errorf("expected Single('b') to admit 'b'")
	}
	if s.ExplicitCharacters() != "b" {
		t.Errorf("ExplicitCharacters() = %q, want %q", s.ExplicitCharacters(), "b")
	}
}

func TestRange(t *testing.T) {
	a := mustAlphabet(t, "abcdef")
	r := Range{Lo: 'b', Hi: 'd'}
	cs := r.Characters(a)
	for _, c := range []byte{'b', 'c', 'd'} {
		idx, _ := a.IndexOf(c)
		if !cs.Contains(idx) {
			t.Errorf("expected range b-d to admit %q", c)
		}
	}
	for _, c := range []byte{'a', 'e', 'f'} {
		idx, _ := a.IndexOf(c)
		if cs.Contains(idx) {
			t.Errorf("did not expect range b-d to admit %q", c)
		}
	}
	if r.ExplicitCharacters() != "bcd" {
		t.Errorf("ExplicitCharacters() = %q, want %q", r.ExplicitCharacters(), "bcd")
	}
}

func TestShorthandDigitWordSpace(t *testing.T) {
	a := mustAlphabet(t, "a1 _!")

	digit := Shorthand{Kind: Digit}
	idx, _ := a.IndexOf('1')
	if !digit.Characters(a).Contains(idx) {
		t.Errorf(`expected \d to admit '1'`)
	}

	word := Shorthand{Kind: Word}
	for _, c := range []byte{'a', '1', '_'} {
		idx, _ := a.IndexOf(c)
		if !word.Characters(a).Contains(idx) {
			t.Errorf(`expected \w to admit %q`, c)
		}
	}

	notSpace := Shorthand{Kind: NotSpace}
	idx, _ = a.IndexOf(' ')
	if notSpace.Characters(a).Contains(idx) {
		t.Errorf(`did not expect \S to admit a literal space`)
	}
	idx, _ = a.IndexOf('!')
	if !notSpace.Characters(a).Contains(idx) {
		t.Errorf(`expected \S to admit '!'`)
	}
}

func TestDotExcludesNewline(t *testing.T) {
	a := mustAlphabet(t, "a\nb")
	d := Dot{}
	cs := d.Characters(a)
	idx, _ := a.IndexOf('\n')
	if cs.Contains(idx) {
		t.Errorf("did not expect dot to admit newline")
	}
	idx, _ = a.IndexOf('a')
	if !cs.Contains(idx) {
		t.Errorf("expected dot to admit 'a'")
	}
	if d.ExplicitCharacters() != "" {
		t.Errorf("expected dot to contribute no explicit characters")
	}
}

func TestBracketClassNegation(t *testing.T) {
	a := mustAlphabet(t, "abc")
	bc := BracketClass{Negated: true, Items: []Block{Single{Char: 'a'}}}
	cs := bc.Characters(a)
	idxA, _ := a.IndexOf('a')
	idxB, _ := a.IndexOf('b')
	if cs.Contains(idxA) {
		t.Errorf("did not expect negated class to admit 'a'")
	}
	if !cs.Contains(idxB) {
		t.Errorf("expected negated class to admit 'b'")
	}
}

func TestCompositeUnion(t *testing.T) {
	a := mustAlphabet(t, "abc")
	comp := Composite{Items: []Block{Single{Char: 'a'}, Single{Char: 'c'}}}
	cs := comp.Characters(a)
	if cs.Count() != 2 {
		t.Fatalf("expected composite to admit exactly two characters, got %v", cs)
	}
	idxB, _ := a.IndexOf('b')
	if cs.Contains(idxB) {
		t.Errorf("did not expect composite of 'a'|'c' to admit 'b'")
	}
}

func TestStringForms(t *testing.T) {
	if got := (Single{Char: '.'}).String(); got != `\.` {
		t.Errorf("Single('.').String() = %q, want %q", got, `\.`)
	}
	if got := (Range{Lo: 'a', Hi: 'z'}).String(); got != "a-z" {
		t.Errorf("Range.String() = %q, want %q", got, "a-z")
	}
	if got := (Shorthand{Kind: Word}).String(); got != `\w` {
		t.Errorf(`Shorthand{Word}.String() = %q, want \w`, got)
	}
}
