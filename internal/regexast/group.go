package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// Group wraps a child regex as either a capturing group (Capturing
// true, Number its 1-based capture number) or a non-capturing group.
// Both kinds delegate iteration and constraint application entirely to
// the child; a capturing group additionally participates in
// backreference resolution via tree.go.
type Group struct {
	base
	Child     Node
	Capturing bool
	Number    int // 0 for non-capturing groups
}

// NewCapturingGroup wraps child as capturing group number n.
func NewCapturingGroup(n int, child Node) *Group {
	g := &Group{Child: child, Capturing: true, Number: n}
	child.SetParent(g)
	return g
}

// NewNonCapturingGroup wraps child with no capture semantics.
func NewNonCapturingGroup(child Node) *Group {
	g := &Group{Child: child}
	child.SetParent(g)
	return g
}

func (g *Group) Children() []Node          { return []Node{g.Child} }
func (g *Group) LengthOfCurrentValue() int { return g.Child.LengthOfCurrentValue() }
func (g *Group) AtEnd() bool               { return g.Child.AtEnd() }
func (g *Group) HasValue() bool            { return g.Child.HasValue() }

func (g *Group) Rewind(pos int) {
	g.beginPos = pos
	g.Child.SetConstraintSize(g.ConstraintSize())
	g.Child.Rewind(pos)
}

func (g *Group) Increment() { g.Child.Increment() }

func (g *Group) Clone() Node {
	var ng *Group
	if g.Capturing {
		ng = NewCapturingGroup(g.Number, g.Child.Clone())
	} else {
		ng = NewNonCapturingGroup(g.Child.Clone())
	}
	return ng
}

func (g *Group) ApplyOnce(c *constraint.Constraint, offset int) bool {
	return g.Child.ApplyOnce(c, offset)
}

func (g *Group) ApplyWordBoundaries(c *constraint.Constraint) bool {
	return g.Child.ApplyWordBoundaries(c)
}

func (g *Group) ResetAfterConstrain() { g.Child.ResetAfterConstrain() }

func (g *Group) CharactersWereConstrainedByBackreference() bool {
	return g.Child.CharactersWereConstrainedByBackreference()
}

func (g *Group) ExplicitCharacters() string { return g.Child.ExplicitCharacters() }

func (g *Group) String() string {
	if g.Capturing {
		return "(" + g.Child.String() + ")"
	}
	return "(?:" + g.Child.String() + ")"
}
