// Package constraint holds the per-line candidate state: one CharSet
// per cell position, fixed in length once constructed.
package constraint

import "github.com/0x4d5352/regocross/internal/charset"

// Constraint is an ordered sequence of CharSets, one per line
// position. Its length is immutable after construction.
type Constraint struct {
	cells []charset.CharSet
}

// All returns a Constraint of the given size with every cell set to
// the full alphabet (size n).
func All(size int, full charset.CharSet) Constraint {
	cells := make([]charset.CharSet, size)
	for i := range cells {
		cells[i] = full
	}
	return Constraint{cells: cells}
}

// None returns a Constraint of the given size with every cell empty.
func None(size int) Constraint {
	return Constraint{cells: make([]charset.CharSet, size)}
}

// FromCells builds a Constraint directly from a per-cell CharSet slice.
func FromCells(cells []charset.CharSet) Constraint {
	out := make([]charset.CharSet, len(cells))
	copy(out, cells)
	return Constraint{cells: out}
}

// Size returns the number of cells.
func (c Constraint) Size() int { return len(c.cells) }

// At returns the CharSet at position i.
func (c Constraint) At(i int) charset.CharSet { return c.cells[i] }

// Set replaces the CharSet at position i.
func (c *Constraint) Set(i int, s charset.CharSet) { c.cells[i] = s }

// Intersect narrows position i by s in place, returning whether the
// resulting CharSet is still non-empty.
func (c *Constraint) Intersect(i int, s charset.CharSet) bool {
	c.cells[i] = c.cells[i].Intersect(s)
	return c.cells[i].NotEmpty()
}

// Impossible reports whether any cell is empty.
func (c Constraint) Impossible() bool {
	for _, s := range c.cells {
		if s.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of c.
func (c Constraint) Clone() Constraint {
	cells := make([]charset.CharSet, len(c.cells))
	copy(cells, c.cells)
	return Constraint{cells: cells}
}

// Or returns the elementwise union of c and other. Both must have the
// same size.
func (c Constraint) Or(other Constraint) Constraint {
	if len(c.cells) != len(other.cells) {
		panic("constraint: Or size mismatch")
	}
	out := make([]charset.CharSet, len(c.cells))
	for i := range out {
		out[i] = c.cells[i].Union(other.cells[i])
	}
	return Constraint{cells: out}
}

// TighterThanOrEqual reports whether every cell of c is a subset of
// the corresponding cell of other.
func (c Constraint) TighterThanOrEqual(other Constraint) bool {
	for i := range c.cells {
		if !c.cells[i].Subset(other.cells[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether c and other hold the same cells.
func (c Constraint) Equal(other Constraint) bool {
	if len(c.cells) != len(other.cells) {
		return false
	}
	for i := range c.cells {
		if !c.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}

// Cells exposes the underlying slice for callers (e.g. the grid
// solver) that need to write the result back into per-cell state.
func (c Constraint) Cells() []charset.CharSet { return c.cells }

// None-accumulator helper: the starting point of an OR fold over every
// value a regex can produce. An empty accumulator (every cell empty)
// combined with Or(...) behaves as the identity for union.
func NoneAccumulator(size int) Constraint { return None(size) }
