package regexparser

import (
	"errors"
	"testing"
)

func TestParseLiteralConcatenation(t *testing.T) {
	root, err := Parse("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := root.String(), "abc"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseAlternation(t *testing.T) {
	root, err := Parse("a|b|c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := root.String(), "(?:a|b|c)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseRepetitionForms(t *testing.T) {
	tests := []string{"a*", "a+", "a?", "a{2}", "a{2,}", "a{2,4}"}
	for _, src := range tests {
		if _, err := Parse(src); err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", src, err)
		}
	}
}

func TestParseRepetitionOutOfOrderBounds(t *testing.T) {
	_, err := Parse("a{4,2}")
	if err == nil {
		t.Fatal("expected an error for a lower bound exceeding the upper bound")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected a *ParseError, got %T", err)
	}
}

func TestParseCharacterClass(t *testing.T) {
	root, err := Parse("[a-c]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := root.String(), "[a-c]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseNegatedClass(t *testing.T) {
	root, err := Parse("[^a]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := root.String(), "[^a]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseEmptyClassIsAnError(t *testing.T) {
	if _, err := Parse("[]"); err == nil {
		t.Fatal("expected an error for an empty character class")
	}
}

func TestParseGroupsAndBackreference(t *testing.T) {
	if _, err := Parse(`(a)\1`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseBackreferenceToUnopenedGroup(t *testing.T) {
	_, err := Parse(`\1(a)`)
	if err == nil {
		t.Fatal("expected an error referencing a group that has not been opened yet")
	}
}

func TestParseSelfReferencingGroupIsStructureError(t *testing.T) {
	_, err := Parse(`(a\1)`)
	if err == nil {
		t.Fatal("expected a structure error for a group referencing itself")
	}
	var serr *StructureError
	if !errors.As(err, &serr) {
		t.Errorf("expected a *StructureError, got %T", err)
	}
}

func TestParseBackreferenceCrossingLookahead(t *testing.T) {
	_, err := Parse(`(?=(a))\1`)
	// The referenced group lives inside a lookahead, and the
	// backreference sits outside it: that crosses the lookahead
	// boundary and must be rejected.
	if err == nil {
		t.Fatal("expected an error for a backreference crossing a lookahead boundary")
	}
	var serr *StructureError
	if !errors.As(err, &serr) {
		t.Errorf("expected a *StructureError, got %T", err)
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	root, err := Parse("(?:ab)c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := root.String(), "(?:ab)c"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseTrailingInputIsAnError(t *testing.T) {
	_, err := Parse("a)")
	if err == nil {
		t.Fatal("expected an error for an unmatched closing paren")
	}
}

func TestParseUnterminatedClass(t *testing.T) {
	if _, err := Parse("[abc"); err == nil {
		t.Fatal("expected an error for an unterminated character class")
	}
}

func TestParseShorthandClasses(t *testing.T) {
	for _, src := range []string{`\d`, `\D`, `\w`, `\W`, `\s`, `\S`} {
		if _, err := Parse(src); err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", src, err)
		}
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	_, err := Parse("a{4,2}")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ParseError, got %T", err)
	}
	if perr.Source != "a{4,2}" {
		t.Errorf("Source = %q, want %q", perr.Source, "a{4,2}")
	}
}
