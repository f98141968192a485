// Package lineconstrainer drives the per-line constraint-propagation
// step: given a line's parsed, optimized regex roots and its current
// per-cell candidate sets, it produces a tighter candidate set, or
// reports that the line admits no value at all.
package lineconstrainer

import (
	"strings"

	"github.com/0x4d5352/regocross/internal/charset"
	"github.com/0x4d5352/regocross/internal/constraint"
	"github.com/0x4d5352/regocross/internal/regexast"
)

// LineConstrainer holds one line's regex roots and the last Constraint
// it was asked about, so that an unchanged cell state can skip the
// (relatively expensive) enumeration entirely.
type LineConstrainer struct {
	roots      []regexast.Node
	universal  []bool // roots[i] is a textual .* and is skipped
	lastSeen   constraint.Constraint
	haveLast   bool
}

// New builds a LineConstrainer from parsed roots and their original
// source text (used only to detect the `.*` fast path).
func New(roots []regexast.Node, sources []string) *LineConstrainer {
	universal := make([]bool, len(roots))
	for i, s := range sources {
		universal[i] = strings.TrimSpace(s) == ".*"
	}
	return &LineConstrainer{roots: roots, universal: universal}
}

// Clone returns an independent LineConstrainer: a deep clone of every
// regex root (so branching search never shares mutable tree state
// between branches) plus a by-value copy of the equality cache. The
// cached Constraint's cell slice is shared with lc (and with the slice
// Constrain last returned); Constrain itself only replaces the cache
// and never writes into it.
func (lc *LineConstrainer) Clone() *LineConstrainer {
	roots := make([]regexast.Node, len(lc.roots))
	for i, r := range lc.roots {
		roots[i] = r.Clone()
	}
	universal := make([]bool, len(lc.universal))
	copy(universal, lc.universal)
	return &LineConstrainer{
		roots:     roots,
		universal: universal,
		lastSeen:  lc.lastSeen,
		haveLast:  lc.haveLast,
	}
}

// Constrain runs every non-universal regex against cells in order,
// short-circuiting as soon as one produces an impossible constraint.
// It returns the tightened cells and whether any cell actually
// changed; if the incoming cells equal the last-seen Constraint, it
// returns immediately with changed=false.
func (lc *LineConstrainer) Constrain(cells []charset.CharSet) (tightened []charset.CharSet, ok bool, changed bool) {
	cur := constraint.FromCells(cells)

	if lc.haveLast && cur.Equal(lc.lastSeen) {
		return cells, true, false
	}

	for i, root := range lc.roots {
		if lc.universal[i] {
			continue
		}
		next, applied := enumerateExactFits(root, cur)
		if !applied {
			return nil, false, false
		}
		cur = next
		if cur.Impossible() {
			return nil, false, false
		}
	}

	lc.lastSeen = cur
	lc.haveLast = true

	changedAny := false
	for i := range cells {
		if !cur.At(i).Equal(cells[i]) {
			changedAny = true
		}
	}
	return cur.Cells(), true, changedAny
}

// enumerateExactFits drives root through every value fitting cur's
// length, starting at position 0, OR-combining the tightened
// constraint produced by each value that fits exactly and survives
// application: set constraint size, rewind to 0, walk increments to
// at_end, and skip any value that does not end exactly at the line
// length.
//
// A repetition's own growth is bounded by its constraint size (see
// internal/regexast's Repetition.advanceCount), so this traversal
// always terminates.
func enumerateExactFits(root regexast.Node, cur constraint.Constraint) (constraint.Constraint, bool) {
	size := cur.Size()
	regexast.SetConstraintSizeTree(root, size)
	regexast.RewindTree(root, 0)

	acc := constraint.None(size)
	any := false

	for {
		if root.HasValue() && regexast.ValueFitsExactly(root) {
			if tightened, ok := regexast.ApplyValue(root, &cur); ok {
				acc = acc.Or(tightened)
				any = true
			}
		}
		if root.AtEnd() {
			break
		}
		root.Increment()
	}

	if !any {
		return acc, false
	}
	return acc, true
}
