package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// PositiveLookahead is zero-length in the surrounding sequence, but its
// ApplyOnce is not a no-op: it re-enumerates its child's entire value
// space from BeginPos()+offset, OR-combining into c every value that
// fits (not only the child's currently-selected iteration value). When
// invoked with a nonzero offset - i.e. as the target of a backreference
// overlay rather than from its natural position in the tree - it
// degrades to a no-op, since a lookahead only ever asserts about what
// follows its own position.
type PositiveLookahead struct {
	base
	zeroLength
	Child Node
}

func NewPositiveLookahead(child Node) *PositiveLookahead {
	n := &PositiveLookahead{Child: child}
	child.SetParent(n)
	return n
}

func (n *PositiveLookahead) Children() []Node { return []Node{n.Child} }

func (n *PositiveLookahead) Rewind(pos int) {
	n.beginPos = pos
	n.atEnd = false
}

func (n *PositiveLookahead) Increment() { n.atEnd = true }

func (n *PositiveLookahead) Clone() Node { return NewPositiveLookahead(n.Child.Clone()) }

func (n *PositiveLookahead) ApplyOnce(c *constraint.Constraint, offset int) bool {
	if offset != 0 {
		return true
	}

	n.Child.SetConstraintSize(c.Size())
	n.Child.Rewind(n.BeginPos())

	acc := constraint.None(c.Size())
	any := false
	for {
		if n.Child.HasValue() {
			trial := c.Clone()
			if n.Child.ApplyOnce(&trial, 0) {
				acc = acc.Or(trial)
				any = true
			}
		}
		if n.Child.AtEnd() {
			break
		}
		n.Child.Increment()
	}
	n.Child.ResetAfterConstrain()

	if !any {
		return false
	}
	for i := 0; i < c.Size(); i++ {
		if !c.Intersect(i, acc.At(i)) {
			return false
		}
	}
	return true
}

func (n *PositiveLookahead) ExplicitCharacters() string { return "" }
func (n *PositiveLookahead) String() string             { return "(?=" + n.Child.String() + ")" }
