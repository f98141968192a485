package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// Backreference is \1-\9. It has no independent value space of its
// own length: its length tracks whatever the resolved target group's
// current value length is, since in a genuine match they must agree.
// Its ApplyOnce does not touch characters directly; instead it
// overlays a mutual, bidirectional intersection between its own cell
// range and the target's cell range, repeated to a fixed point by the
// driver in engine.go.
type Backreference struct {
	base
	Number   int
	narrowed bool
	atEnd    bool
}

func NewBackreference(number int) *Backreference {
	return &Backreference{Number: number}
}

func (b *Backreference) Children() []Node { return nil }

// resolvedTarget finds the defining group on the tree's currently
// committed iteration path: the rightmost capturing group numbered
// b.Number that the union choices and repetition counts in effect
// right now have actually produced an instance of. This is recomputed
// on every call, never cached - which union alternative is selected
// and how many repetition clones exist both change constantly as
// enumeration proceeds, so a resolution from one moment is not valid
// at another.
func (b *Backreference) resolvedTarget() *Group {
	return resolveBackreferenceTarget(b)
}

// LengthOfCurrentValue mirrors the target's current value length, or 0
// when no target resolves on the current path - HasValue reports that
// case separately so the enclosing iteration steps over it rather than
// treating it as a vacuous match.
func (b *Backreference) LengthOfCurrentValue() int {
	t := b.resolvedTarget()
	if t == nil {
		return 0
	}
	return t.LengthOfCurrentValue()
}

// AtEnd, Rewind and Increment implement a trivial single-value
// iteration: a backreference's value is wholly determined by its
// target, so it has exactly one value per rewind.
func (b *Backreference) AtEnd() bool { return b.atEnd }

func (b *Backreference) Rewind(pos int) {
	b.beginPos = pos
	b.atEnd = false
}

func (b *Backreference) Increment() { b.atEnd = true }

func (b *Backreference) Clone() Node {
	return &Backreference{Number: b.Number}
}

// HasValue reports whether a target actually resolves on the
// currently committed path. When the defining group lies in a union
// branch that isn't currently selected, resolvedTarget returns nil and
// this combination has no value at all - the enclosing iteration must
// step over it rather than apply the backreference as a no-op.
func (b *Backreference) HasValue() bool { return b.resolvedTarget() != nil }

// ApplyOnce performs the bidirectional overlay: it intersects the
// target's cell range into the backreference's own range and vice
// versa, so that whichever side is narrower after any other
// constraint application propagates to the other. It reports whether
// narrowing occurred so the outer ApplyValue loop in engine.go knows
// to repeat the whole tree's application.
func (b *Backreference) ApplyOnce(c *constraint.Constraint, offset int) bool {
	b.narrowed = false

	t := b.resolvedTarget()
	if t == nil {
		return true
	}

	myLen := t.LengthOfCurrentValue()
	myStart := b.BeginPos() + offset
	targetStart := t.BeginPos()

	if myLen == 0 {
		return true
	}
	if myStart < 0 || myStart+myLen > c.Size() {
		return false
	}
	if targetStart < 0 || targetStart+myLen > c.Size() {
		return false
	}

	for i := 0; i < myLen; i++ {
		mine := c.At(myStart + i)
		theirs := c.At(targetStart + i)
		merged := mine.Intersect(theirs)
		if merged.IsEmpty() {
			return false
		}
		if !merged.Equal(mine) {
			if !c.Intersect(myStart+i, merged) {
				return false
			}
			b.narrowed = true
		}
		if !merged.Equal(theirs) {
			if !c.Intersect(targetStart+i, merged) {
				return false
			}
			b.narrowed = true
		}
	}

	return true
}

func (b *Backreference) ApplyWordBoundaries(*constraint.Constraint) bool { return true }

func (b *Backreference) ResetAfterConstrain() { b.narrowed = false }

func (b *Backreference) CharactersWereConstrainedByBackreference() bool { return b.narrowed }

func (b *Backreference) ExplicitCharacters() string { return "" }

func (b *Backreference) String() string {
	return "\\" + string(rune('0'+b.Number))
}
