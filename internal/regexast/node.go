// Package regexast defines the regex AST: a tagged tree of nodes, each
// of which is a resumable state machine over its own possible values.
// The external driver in package lineconstrainer repeatedly rewinds a
// root node to position 0, walks its values in lexicographic order,
// and ORs together the constraints each exactly-fitting value induces.
//
// Every node variant implements Node. Node has only exported methods,
// so the set of implementors is not closed to this package; package
// optimizer uses only the exported constructors and accessors to
// rewrite trees and adds no implementation of Node.
package regexast

import (
	"github.com/0x4d5352/regocross/internal/constraint"
)

// Node is the interface every AST node variant implements. See the
// package doc comment for the iteration contract these methods form.
type Node interface {
	Parent() Node
	SetParent(Node)
	Children() []Node
	Clone() Node

	SetConstraintSize(n int)
	ConstraintSize() int
	BeginPos() int
	LengthOfCurrentValue() int
	AtEnd() bool
	Rewind(pos int)
	Increment()
	HasValue() bool

	// ApplyOnce intersects the CharSets at the positions this node's
	// current value covers into c, starting at c's position
	// BeginPos()+offset. It returns false if doing so emptied any
	// touched position (the value is then dead and contributes nothing
	// to the OR-accumulator).
	ApplyOnce(c *constraint.Constraint, offset int) bool

	// ApplyWordBoundaries runs the second, boundary-only pass (see
	// ApplyValue in engine.go) over this node and its children.
	ApplyWordBoundaries(c *constraint.Constraint) bool

	// ResetAfterConstrain clears any backreference-overlay cache this
	// node accumulated while the current value was being applied.
	ResetAfterConstrain()

	// CharactersWereConstrainedByBackreference reports whether this
	// node's last ApplyOnce call narrowed a CharSet through a
	// backreference overlay, meaning the whole tree's application
	// pass must be repeated.
	CharactersWereConstrainedByBackreference() bool

	ExplicitCharacters() string
	String() string
}

// EndPos returns the position just past n's current value.
func EndPos(n Node) int {
	return n.BeginPos() + n.LengthOfCurrentValue()
}

// ValueFits reports whether n's current value ends at or before the
// end of its constraint.
func ValueFits(n Node) bool {
	return EndPos(n) <= n.ConstraintSize()
}

// ValueFitsExactly reports whether n's current value exactly fills its
// constraint.
func ValueFitsExactly(n Node) bool {
	return EndPos(n) == n.ConstraintSize()
}

// SetConstraintSizeTree sets the constraint size on n and every node in
// its subtree. It does not rewind anything.
func SetConstraintSizeTree(n Node, size int) {
	n.SetConstraintSize(size)
	for _, c := range n.Children() {
		SetConstraintSizeTree(c, size)
	}
}

// RewindTree rewinds n and every descendant to begin at pos. Variant
// Rewind implementations are responsible for rewinding their own
// children with the correct begin_pos (which can differ per child for
// concatenations and repetitions), so this is only ever called on the
// root.
func RewindTree(n Node, pos int) {
	n.Rewind(pos)
}

// base holds the fields and trivial accessors common to every node
// variant. Variant-specific iteration state lives alongside it in the
// concrete struct.
type base struct {
	parent         Node
	constraintSize int
	beginPos       int
}

func (b *base) Parent() Node            { return b.parent }
func (b *base) SetParent(p Node)        { b.parent = p }
func (b *base) SetConstraintSize(n int) { b.constraintSize = n }
func (b *base) ConstraintSize() int     { return b.constraintSize }
func (b *base) BeginPos() int           { return b.beginPos }
func (b *base) HasValue() bool          { return true }
func (b *base) ResetAfterConstrain()    {}
func (b *base) ApplyWordBoundaries(*constraint.Constraint) bool { return true }
func (b *base) CharactersWereConstrainedByBackreference() bool  { return false }

// zeroLength is embedded by every node whose only value has length 0.
type zeroLength struct {
	atEnd bool
}

func (z *zeroLength) LengthOfCurrentValue() int { return 0 }
func (z *zeroLength) AtEnd() bool               { return z.atEnd }
func (z *zeroLength) Children() []Node          { return nil }

// Empty represents a regex with no possible values. Neither the parser
// nor the optimizer creates one; NewEmpty is its only constructor.
type Empty struct {
	base
	zeroLength
}

func NewEmpty() *Empty {
	e := &Empty{}
	e.atEnd = true
	return e
}

func (e *Empty) Clone() Node                                      { return NewEmpty() }
func (e *Empty) Rewind(pos int)                                   { e.beginPos = pos; e.atEnd = true }
func (e *Empty) Increment()                                       {}
func (e *Empty) ApplyOnce(*constraint.Constraint, int) bool        { return false }
func (e *Empty) ExplicitCharacters() string                        { return "" }
func (e *Empty) String() string                                    { return "(?!)" }

// epsilonLike is the shared shape for the zero-length, single-value
// nullary nodes: Epsilon, EpsilonAtStart, EpsilonAtEnd. Each only
// differs in do_constrain_once_with_current_value (here, whether
// ApplyOnce succeeds).
type epsilonLike struct {
	base
	done bool
}

func (e *epsilonLike) Children() []Node          { return nil }
func (e *epsilonLike) LengthOfCurrentValue() int { return 0 }
func (e *epsilonLike) AtEnd() bool               { return e.done }
func (e *epsilonLike) Increment()                { e.done = true }
func (e *epsilonLike) rewind(pos int)            { e.beginPos = pos; e.done = false }

// Epsilon matches the empty string unconditionally.
type Epsilon struct{ epsilonLike }

func NewEpsilon() *Epsilon { return &Epsilon{} }

func (e *Epsilon) Clone() Node { return NewEpsilon() }
func (e *Epsilon) Rewind(pos int) { e.rewind(pos) }
func (e *Epsilon) ApplyOnce(*constraint.Constraint, int) bool { return true }
func (e *Epsilon) ExplicitCharacters() string                 { return "" }
func (e *Epsilon) String() string                             { return "" }

// AtStart matches the empty string only when begin_pos == 0 (^, \A).
type AtStart struct{ epsilonLike }

func NewAtStart() *AtStart { return &AtStart{} }

func (e *AtStart) Clone() Node { return NewAtStart() }
func (e *AtStart) Rewind(pos int) { e.rewind(pos) }
func (e *AtStart) ApplyOnce(c *constraint.Constraint, offset int) bool {
	return e.BeginPos()+offset == 0
}
func (e *AtStart) ExplicitCharacters() string { return "" }
func (e *AtStart) String() string             { return "^" }

// AtEnd matches the empty string only when begin_pos == constraint
// size ($, \Z).
type AtEnd struct{ epsilonLike }

func NewAtEnd() *AtEnd { return &AtEnd{} }

func (e *AtEnd) Clone() Node { return NewAtEnd() }
func (e *AtEnd) Rewind(pos int) { e.rewind(pos) }
func (e *AtEnd) ApplyOnce(c *constraint.Constraint, offset int) bool {
	return e.BeginPos()+offset == e.ConstraintSize()
}
func (e *AtEnd) ExplicitCharacters() string { return "" }
func (e *AtEnd) String() string             { return "$" }

// wordBoundaryLike shares the structure of \b and \B: they have a
// single length-0 value and apply nothing in the primary pass, but
// narrow their neighbor cells in the dedicated boundary pass (see
// word_boundary.go).
type wordBoundaryLike struct{ epsilonLike }

func (w *wordBoundaryLike) ApplyOnce(*constraint.Constraint, int) bool { return true }
