package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// Concatenation joins Left then Right: Right's values begin wherever
// Left's current value ends. Incrementing drives Right first and only
// advances Left once Right is exhausted, so values are produced in
// lexicographic order (Left varies slowest).
type Concatenation struct {
	base
	Left, Right Node
}

func NewConcatenation(left, right Node) *Concatenation {
	n := &Concatenation{Left: left, Right: right}
	left.SetParent(n)
	right.SetParent(n)
	return n
}

func (n *Concatenation) Children() []Node { return []Node{n.Left, n.Right} }

func (n *Concatenation) LengthOfCurrentValue() int {
	return n.Left.LengthOfCurrentValue() + n.Right.LengthOfCurrentValue()
}

func (n *Concatenation) AtEnd() bool {
	return n.Left.AtEnd() && n.Right.AtEnd()
}

func (n *Concatenation) HasValue() bool {
	return n.Left.HasValue() && n.Right.HasValue()
}

func (n *Concatenation) Rewind(pos int) {
	n.beginPos = pos
	n.Left.SetConstraintSize(n.ConstraintSize())
	n.Right.SetConstraintSize(n.ConstraintSize())
	n.Left.Rewind(pos)
	n.Right.Rewind(EndPos(n.Left))
}

func (n *Concatenation) Increment() {
	n.Right.Increment()
	for n.Right.AtEnd() && !n.Left.AtEnd() {
		n.Left.Increment()
		if n.Left.AtEnd() {
			return
		}
		n.Right.Rewind(EndPos(n.Left))
	}
}

func (n *Concatenation) Clone() Node {
	return NewConcatenation(n.Left.Clone(), n.Right.Clone())
}

func (n *Concatenation) ApplyOnce(c *constraint.Constraint, offset int) bool {
	if !n.Left.ApplyOnce(c, offset) {
		return false
	}
	return n.Right.ApplyOnce(c, offset)
}

func (n *Concatenation) ApplyWordBoundaries(c *constraint.Constraint) bool {
	if !n.Left.ApplyWordBoundaries(c) {
		return false
	}
	return n.Right.ApplyWordBoundaries(c)
}

func (n *Concatenation) ResetAfterConstrain() {
	n.Left.ResetAfterConstrain()
	n.Right.ResetAfterConstrain()
}

func (n *Concatenation) CharactersWereConstrainedByBackreference() bool {
	return n.Left.CharactersWereConstrainedByBackreference() ||
		n.Right.CharactersWereConstrainedByBackreference()
}

func (n *Concatenation) ExplicitCharacters() string {
	return n.Left.ExplicitCharacters() + n.Right.ExplicitCharacters()
}

func (n *Concatenation) String() string {
	return n.Left.String() + n.Right.String()
}

// Union picks exactly one of Alternatives per value; incrementing
// drains the current alternative before moving to the next, so all of
// alternative i's values precede all of alternative i+1's.
type Union struct {
	base
	Alternatives []Node
	current      int
}

func NewUnion(alternatives []Node) *Union {
	if len(alternatives) < 2 {
		panic("regexast: Union requires at least 2 alternatives")
	}
	n := &Union{Alternatives: alternatives}
	for _, a := range alternatives {
		a.SetParent(n)
	}
	return n
}

func (n *Union) Children() []Node { return n.Alternatives }

func (n *Union) LengthOfCurrentValue() int {
	return n.Alternatives[n.current].LengthOfCurrentValue()
}

func (n *Union) AtEnd() bool {
	return n.current == len(n.Alternatives)-1 && n.Alternatives[n.current].AtEnd()
}

func (n *Union) HasValue() bool {
	return n.Alternatives[n.current].HasValue()
}

func (n *Union) Rewind(pos int) {
	n.beginPos = pos
	n.current = 0
	for _, a := range n.Alternatives {
		a.SetConstraintSize(n.ConstraintSize())
		a.Rewind(pos)
	}
}

func (n *Union) Increment() {
	n.Alternatives[n.current].Increment()
	for n.Alternatives[n.current].AtEnd() && n.current < len(n.Alternatives)-1 {
		n.current++
		n.Alternatives[n.current].Rewind(n.beginPos)
	}
}

func (n *Union) Clone() Node {
	clones := make([]Node, len(n.Alternatives))
	for i, a := range n.Alternatives {
		clones[i] = a.Clone()
	}
	return NewUnion(clones)
}

// CurrentAlternative returns the alternative currently selected.
func (n *Union) CurrentAlternative() Node { return n.Alternatives[n.current] }

func (n *Union) ApplyOnce(c *constraint.Constraint, offset int) bool {
	return n.Alternatives[n.current].ApplyOnce(c, offset)
}

func (n *Union) ApplyWordBoundaries(c *constraint.Constraint) bool {
	return n.Alternatives[n.current].ApplyWordBoundaries(c)
}

func (n *Union) ResetAfterConstrain() {
	for _, a := range n.Alternatives {
		a.ResetAfterConstrain()
	}
}

func (n *Union) CharactersWereConstrainedByBackreference() bool {
	return n.Alternatives[n.current].CharactersWereConstrainedByBackreference()
}

func (n *Union) ExplicitCharacters() string {
	s := ""
	for _, a := range n.Alternatives {
		s += a.ExplicitCharacters()
	}
	return s
}

func (n *Union) String() string {
	s := n.Alternatives[0].String()
	for _, a := range n.Alternatives[1:] {
		s += "|" + a.String()
	}
	return "(?:" + s + ")"
}
