package regexast

import (
	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/constraint"
)

// WordBoundary is \b. Boundary anchors constrain their neighbor cells
// rather than themselves, so the real work happens in
// ApplyWordBoundaries, run in a dedicated pass after every
// character-consuming node has applied its value.
type WordBoundary struct{ wordBoundaryLike }

func NewWordBoundary() *WordBoundary { return &WordBoundary{} }

func (w *WordBoundary) Clone() Node    { return NewWordBoundary() }
func (w *WordBoundary) Rewind(pos int) { w.rewind(pos) }
func (w *WordBoundary) ExplicitCharacters() string { return "" }
func (w *WordBoundary) String() string             { return `\b` }

func (w *WordBoundary) ApplyWordBoundaries(c *constraint.Constraint) bool {
	return applyWordBoundary(c, w.BeginPos(), true)
}

// NotWordBoundary is \B.
type NotWordBoundary struct{ wordBoundaryLike }

func NewNotWordBoundary() *NotWordBoundary { return &NotWordBoundary{} }

func (w *NotWordBoundary) Clone() Node    { return NewNotWordBoundary() }
func (w *NotWordBoundary) Rewind(pos int) { w.rewind(pos) }
func (w *NotWordBoundary) ExplicitCharacters() string { return "" }
func (w *NotWordBoundary) String() string             { return `\B` }

func (w *NotWordBoundary) ApplyWordBoundaries(c *constraint.Constraint) bool {
	return applyWordBoundary(c, w.BeginPos(), false)
}

// applyWordBoundary narrows p's neighbors so that exactly one side is
// a word character and the other isn't. atBoundary is true for \b,
// false for \B; the two differ only in which side is removed.
func applyWordBoundary(c *constraint.Constraint, p int, atBoundary bool) bool {
	n := c.Size()
	a := alphabet.Global()
	word := a.WordCharacters()
	nonWord := a.NonWordCharacters()

	if n == 0 {
		return false
	}

	// At \b, an edge position must be a word character (the other side
	// of the boundary is the string edge, which counts as non-word).
	// At \B, an edge position must be a non-word character.
	if p == 0 {
		if atBoundary {
			return c.Intersect(0, word)
		}
		return c.Intersect(0, nonWord)
	}
	if p == n {
		if atBoundary {
			return c.Intersect(n-1, word)
		}
		return c.Intersect(n-1, nonWord)
	}

	before := c.At(p - 1)
	after := c.At(p)

	onlyWordBefore := before.Subset(word)
	onlyNonWordBefore := before.Subset(nonWord)
	onlyWordAfter := after.Subset(word)
	onlyNonWordAfter := after.Subset(nonWord)

	if atBoundary {
		if onlyWordBefore {
			if !c.Intersect(p, nonWord) {
				return false
			}
		}
		if onlyNonWordBefore {
			if !c.Intersect(p, word) {
				return false
			}
		}
		if onlyWordAfter {
			if !c.Intersect(p-1, nonWord) {
				return false
			}
		}
		if onlyNonWordAfter {
			if !c.Intersect(p-1, word) {
				return false
			}
		}
	} else {
		if onlyWordBefore {
			if !c.Intersect(p, word) {
				return false
			}
		}
		if onlyNonWordBefore {
			if !c.Intersect(p, nonWord) {
				return false
			}
		}
		if onlyWordAfter {
			if !c.Intersect(p-1, word) {
				return false
			}
		}
		if onlyNonWordAfter {
			if !c.Intersect(p-1, nonWord) {
				return false
			}
		}
	}

	return c.At(p-1).NotEmpty() && c.At(p).NotEmpty()
}
