// Package alphabet holds the process-wide ordered character set that a
// solve() call is induced over. It is set once per grid from the
// explicit characters of that grid's regexes, and every CharSet in
// every live Constraint is indexed against it.
package alphabet

import (
	"fmt"
	"sort"

	"github.com/0x4d5352/regocross/internal/charset"
)

// Alphabet is the sorted set of explicit characters appearing anywhere
// in a grid's regexes. character_at and index_of are inverses;
// ordering is byte order.
type Alphabet struct {
	chars []byte
	index [256]int16 // byte value -> alphabet index, -1 if absent
}

// Error reports that the explicit characters of a grid could not be
// turned into an alphabet: either none were found, or there were more
// than charset.Capacity distinct ones.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "alphabet error: " + e.Message }

// New builds an Alphabet from the concatenation of every line regex's
// explicit characters. Duplicate bytes collapse; the result is sorted.
func New(explicit string) (*Alphabet, error) {
	seen := make(map[byte]bool)
	for i := 0; i < len(explicit); i++ {
		seen[explicit[i]] = true
	}
	if len(seen) == 0 {
		return nil, &Error{Message: "no explicit characters found in any regex"}
	}
	if len(seen) > charset.Capacity {
		return nil, &Error{Message: fmt.Sprintf(
			"alphabet has %d distinct characters, which exceeds the capacity of %d",
			len(seen), charset.Capacity)}
	}

	chars := make([]byte, 0, len(seen))
	for b := range seen {
		chars = append(chars, b)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	a := &Alphabet{chars: chars}
	for i := range a.index {
		a.index[i] = -1
	}
	for i, b := range chars {
		a.index[b] = int16(i)
	}
	return a, nil
}

// Len returns the number of characters in the alphabet.
func (a *Alphabet) Len() int { return len(a.chars) }

// CharacterAt returns the character at alphabet index i.
func (a *Alphabet) CharacterAt(i int) byte { return a.chars[i] }

// IndexOf returns the alphabet index of c, and whether c is a member.
func (a *Alphabet) IndexOf(c byte) (int, bool) {
	idx := a.index[c]
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}

// Contains reports whether c is a member of the alphabet.
func (a *Alphabet) Contains(c byte) bool {
	_, ok := a.IndexOf(c)
	return ok
}

// All returns a CharSet with every alphabet index set.
func (a *Alphabet) All() charset.CharSet {
	return charset.All(a.Len())
}

// CharSetOf returns a CharSet containing exactly the members of bytes
// that are in the alphabet (non-members are silently dropped, since a
// byte outside the alphabet can never be a candidate).
func (a *Alphabet) CharSetOf(bytes string) charset.CharSet {
	var c charset.CharSet
	for i := 0; i < len(bytes); i++ {
		if idx, ok := a.IndexOf(bytes[i]); ok {
			c.Set(idx)
		}
	}
	return c
}

// isWordByte reports whether b is in [A-Za-z0-9_], the fixed
// definition of "word character" used by \w, \b and \B.
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b == '_'
}

// WordCharacters returns the subset of the alphabet that is
// word-only, used by \w and word-boundary application.
func (a *Alphabet) WordCharacters() charset.CharSet {
	var c charset.CharSet
	for i, b := range a.chars {
		if isWordByte(b) {
			c.Set(i)
		}
	}
	return c
}

// NonWordCharacters returns the complement of WordCharacters within
// the alphabet.
func (a *Alphabet) NonWordCharacters() charset.CharSet {
	return a.All().Difference(a.WordCharacters())
}

// DigitCharacters returns the alphabet subset matching \d (0-9).
func (a *Alphabet) DigitCharacters() charset.CharSet {
	return a.rangeCharacters('0', '9')
}

// SpaceCharacters returns the alphabet subset matching \s, narrowed to
// the literal space character rather than the full \t\n\r\f\v class:
// grid alphabets are built from characters that actually appear in a
// puzzle's regexes, and puzzles have no use for non-space whitespace.
func (a *Alphabet) SpaceCharacters() charset.CharSet {
	var c charset.CharSet
	if idx, ok := a.IndexOf(' '); ok {
		c.Set(idx)
	}
	return c
}

func (a *Alphabet) rangeCharacters(lo, hi byte) charset.CharSet {
	var c charset.CharSet
	for i, b := range a.chars {
		if b >= lo && b <= hi {
			c.Set(i)
		}
	}
	return c
}

// String renders the alphabet as the bytes it contains, in order; used
// for diagnostics only.
func (a *Alphabet) String() string {
	return string(a.chars)
}

// Global alphabet state. A solve() call sets this once via SetGlobal
// before building any regex or constraint, and clears it via Reset
// when the solve finishes. No two grids may solve concurrently: this
// package enforces single-use bracketing, not thread-safety.
var current *Alphabet

// SetGlobal installs a as the process-wide alphabet for the duration
// of one solve() call.
func SetGlobal(a *Alphabet) { current = a }

// Global returns the currently installed alphabet, or nil if none is
// installed.
func Global() *Alphabet { return current }

// Reset clears the process-wide alphabet, to be called once a solve()
// call has finished (successfully or not).
func Reset() { current = nil }
