package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// Repetition generalizes *, +, ?, {n}, {n,m} and {n,} as a single node
// with Min and Max (Max == -1 meaning unbounded). It holds one clone of
// its template child per currently-considered repeat count, so that
// resolveBackreferenceTarget can look at "the clone at index i" as the
// committed sibling scope for a backreference inside a later clone.
//
// Iteration order matches the original: for a fixed repeat count k, the
// k clones are driven as a concatenation (rightmost varies fastest);
// repeat counts themselves are tried from Min upward, and the empty
// (count 0) case, when Min is 0, is tried first.
type Repetition struct {
	base
	Template Node
	Min, Max int // Max == -1 means unbounded

	clones []Node
	count  int
	atEnd  bool
}

func NewRepetition(template Node, min, max int) *Repetition {
	return &Repetition{Template: template, Min: min, Max: max}
}

func (n *Repetition) Children() []Node {
	if len(n.clones) == 0 {
		return []Node{n.Template}
	}
	return n.clones
}

func (n *Repetition) LengthOfCurrentValue() int {
	total := 0
	for _, c := range n.clones {
		total += c.LengthOfCurrentValue()
	}
	return total
}

func (n *Repetition) AtEnd() bool { return n.atEnd }

func (n *Repetition) HasValue() bool {
	if n.Max != -1 && n.Min > n.Max {
		return false
	}
	for _, c := range n.clones {
		if !c.HasValue() {
			return false
		}
	}
	return true
}

func (n *Repetition) Clone() Node {
	return NewRepetition(n.Template.Clone(), n.Min, n.Max)
}

// Rewind sets the repeat count to Min and builds that many fresh clones
// of Template, each rewound as a concatenation would be: sequentially,
// each starting where the previous one's current value ends.
func (n *Repetition) Rewind(pos int) {
	n.beginPos = pos
	n.count = n.Min
	n.atEnd = false
	n.rebuildClones()
}

func (n *Repetition) rebuildClones() {
	n.clones = make([]Node, n.count)
	p := n.beginPos
	for i := 0; i < n.count; i++ {
		c := n.Template.Clone()
		c.SetParent(n)
		c.SetConstraintSize(n.ConstraintSize())
		c.Rewind(p)
		n.clones[i] = c
		p = EndPos(c)
	}
}

// Increment drives the current count's clones as a concatenation
// (rightmost clone varies fastest); once every clone-count combination
// at the current repeat count is exhausted, it advances to the next
// repeat count (or reports AtEnd if Max is reached).
func (n *Repetition) Increment() {
	if n.count == 0 {
		n.advanceCount()
		return
	}

	i := len(n.clones) - 1
	for i >= 0 {
		n.clones[i].Increment()
		if !n.clones[i].AtEnd() {
			p := EndPos(n.clones[i])
			for j := i + 1; j < len(n.clones); j++ {
				n.clones[j].Rewind(p)
				p = EndPos(n.clones[j])
			}
			return
		}
		i--
	}
	n.advanceCount()
}

func (n *Repetition) advanceCount() {
	n.count++
	if n.Max != -1 && n.count > n.Max {
		n.atEnd = true
		return
	}
	// Whatever Max is, the count stops once beginPos+count passes the
	// constraint size (when that size is set), as if every repeat
	// consumed at least one position. The parser does not reject
	// zero-width templates, so such a template is tried with at most
	// that many repeats.
	if n.ConstraintSize() > 0 && n.beginPos+n.count > n.ConstraintSize() {
		n.atEnd = true
		return
	}
	n.rebuildClones()
}

func (n *Repetition) ApplyOnce(c *constraint.Constraint, offset int) bool {
	for _, clone := range n.clones {
		if !clone.ApplyOnce(c, offset) {
			return false
		}
	}
	return true
}

func (n *Repetition) ApplyWordBoundaries(c *constraint.Constraint) bool {
	for _, clone := range n.clones {
		if !clone.ApplyWordBoundaries(c) {
			return false
		}
	}
	return true
}

func (n *Repetition) ResetAfterConstrain() {
	for _, clone := range n.clones {
		clone.ResetAfterConstrain()
	}
}

func (n *Repetition) CharactersWereConstrainedByBackreference() bool {
	for _, clone := range n.clones {
		if clone.CharactersWereConstrainedByBackreference() {
			return true
		}
	}
	return false
}

func (n *Repetition) ExplicitCharacters() string {
	return n.Template.ExplicitCharacters()
}

func (n *Repetition) String() string {
	body := n.Template.String()
	switch {
	case n.Min == 0 && n.Max == 1:
		return body + "?"
	case n.Min == 0 && n.Max == -1:
		return body + "*"
	case n.Min == 1 && n.Max == -1:
		return body + "+"
	case n.Max == -1:
		return body + "{" + itoaRep(n.Min) + ",}"
	case n.Min == n.Max:
		return body + "{" + itoaRep(n.Min) + "}"
	default:
		return body + "{" + itoaRep(n.Min) + "," + itoaRep(n.Max) + "}"
	}
}

func itoaRep(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
