package regexast

// groupsWithNumber returns every *Group in n's subtree whose Number
// equals num, in left-to-right (textual) order.
func groupsWithNumber(n Node, num int) []*Group {
	var out []*Group
	var walk func(Node)
	walk = func(n Node) {
		if g, ok := n.(*Group); ok && g.Capturing && g.Number == num {
			out = append(out, g)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

// committedGroupsWithNumber is groupsWithNumber restricted to the
// subtree's currently committed iteration path: a Union contributes
// only its CurrentAlternative, and a Repetition contributes only its
// live clones - a repeat count of zero has produced no instance of its
// template at all, so the uninstantiated Template is not a candidate.
// Used by resolveBackreferenceTarget, where the target must be a group
// that actually exists on the path the iteration has committed to, not
// merely one that appears somewhere in the tree's static shape.
func committedGroupsWithNumber(n Node, num int) []*Group {
	var out []*Group
	var walk func(Node)
	walk = func(n Node) {
		if g, ok := n.(*Group); ok && g.Capturing && g.Number == num {
			out = append(out, g)
		}
		switch t := n.(type) {
		case *Union:
			walk(t.CurrentAlternative())
			return
		case *Repetition:
			for _, c := range t.clones {
				walk(c)
			}
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

// AllGroups returns every capturing *Group in n's subtree, in textual
// order.
func AllGroups(n Node) []*Group {
	var out []*Group
	var walk func(Node)
	walk = func(n Node) {
		if g, ok := n.(*Group); ok && g.Capturing {
			out = append(out, g)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

// AllBackreferences returns every *Backreference in n's subtree.
func AllBackreferences(n Node) []*Backreference {
	var out []*Backreference
	var walk func(Node)
	walk = func(n Node) {
		if b, ok := n.(*Backreference); ok {
			out = append(out, b)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

// EnclosingGroup returns the nearest ancestor *Group of n (not
// including n itself), or nil if none.
func EnclosingGroup(n Node) *Group {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if g, ok := p.(*Group); ok {
			return g
		}
	}
	return nil
}

// EnclosingLookahead returns the nearest ancestor *PositiveLookahead
// of n, or nil if none.
func EnclosingLookahead(n Node) *PositiveLookahead {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if l, ok := p.(*PositiveLookahead); ok {
			return l
		}
	}
	return nil
}

// resolveBackreferenceTarget walks up from b through its ancestors.
// At each step that has a "committed sibling" scope (the left side of
// a concatenation, or an earlier clone of a repetition), it looks there
// for the rightmost group numbered b.Number and returns it if found;
// otherwise it keeps climbing. Union and simple wrapper parents
// contribute no candidates and are simply passed through.
func resolveBackreferenceTarget(b *Backreference) *Group {
	var cur Node = b
	for {
		p := cur.Parent()
		if p == nil {
			return nil
		}
		switch n := p.(type) {
		case *Concatenation:
			if cur == n.Right {
				if gs := committedGroupsWithNumber(n.Left, b.Number); len(gs) > 0 {
					return gs[len(gs)-1]
				}
			}
		case *Repetition:
			idx := -1
			for i, clone := range n.clones {
				if clone == cur {
					idx = i
					break
				}
			}
			if idx > 0 {
				var found []*Group
				for i := 0; i < idx; i++ {
					found = append(found, committedGroupsWithNumber(n.clones[i], b.Number)...)
				}
				if len(found) > 0 {
					return found[len(found)-1]
				}
			}
		}
		cur = p
	}
}
