// Package optimizer rewrites a parsed regexast tree into an
// equivalent, flatter tree: non-backreferenced capturing groups and
// all non-capturing groups elide to their child, adjacent
// union-friendly CharBlockLeaf siblings fuse into one leaf with a
// Composite block, and adjacent concatenation-friendly leaves fuse
// into a single StringLeaf. Every pass preserves the set of values the
// tree can produce; running fewer passes only leaves the tree less
// flattened, never changes that set.
package optimizer

import (
	"github.com/0x4d5352/regocross/internal/charblock"
	"github.com/0x4d5352/regocross/internal/regexast"
)

// Flags selects which passes Optimize runs, each independently.
type Flags struct {
	Groups        bool
	Unions        bool
	Concatenations bool
}

// All enables every pass.
func All() Flags { return Flags{Groups: true, Unions: true, Concatenations: true} }

// Optimize applies the enabled passes, in the fixed order groups, then
// unions, then concatenations, and returns the possibly-rewritten
// root.
func Optimize(root regexast.Node, flags Flags) regexast.Node {
	if flags.Groups {
		root = elideGroups(root)
	}
	if flags.Unions {
		root = fuseUnions(root)
	}
	if flags.Concatenations {
		root = fuseConcatenations(root)
	}
	return root
}

// referencedGroupNumbers collects every group number targeted by a
// backreference anywhere in the tree.
func referencedGroupNumbers(root regexast.Node) map[int]bool {
	refs := map[int]bool{}
	for _, b := range regexast.AllBackreferences(root) {
		refs[b.Number] = true
	}
	return refs
}

// elideGroups implements pass 1: any capturing group whose number is
// never backreferenced becomes non-capturing, and every group -
// capturing or not - is replaced by its (recursively elided) child.
// Elision never changes semantics here, since a Group contributes no
// iteration behavior beyond its child.
func elideGroups(root regexast.Node) regexast.Node {
	refs := referencedGroupNumbers(root)
	return elideGroupsWalk(root, refs)
}

func elideGroupsWalk(n regexast.Node, refs map[int]bool) regexast.Node {
	switch v := n.(type) {
	case *regexast.Group:
		child := elideGroupsWalk(v.Child, refs)
		if v.Capturing && refs[v.Number] {
			g := regexast.NewCapturingGroup(v.Number, child)
			return g
		}
		return child
	case *regexast.Concatenation:
		left := elideGroupsWalk(v.Left, refs)
		right := elideGroupsWalk(v.Right, refs)
		return regexast.NewConcatenation(left, right)
	case *regexast.Union:
		alts := make([]regexast.Node, len(v.Alternatives))
		for i, a := range v.Alternatives {
			alts[i] = elideGroupsWalk(a, refs)
		}
		return regexast.NewUnion(alts)
	case *regexast.Repetition:
		return regexast.NewRepetition(elideGroupsWalk(v.Template, refs), v.Min, v.Max)
	case *regexast.PositiveLookahead:
		return regexast.NewPositiveLookahead(elideGroupsWalk(v.Child, refs))
	default:
		return n
	}
}

// rebuildGroup reconstructs g around a freshly rewritten child,
// preserving its capturing/non-capturing kind and number.
func rebuildGroup(g *regexast.Group, child regexast.Node) regexast.Node {
	if g.Capturing {
		return regexast.NewCapturingGroup(g.Number, child)
	}
	return regexast.NewNonCapturingGroup(child)
}

// unifiableLeaf reports whether n can take part in union fusion: only
// a plain CharBlockLeaf qualifies - a StringLeaf or any control-flow
// node is left alone.
func unifiableLeaf(n regexast.Node) (*regexast.CharBlockLeaf, bool) {
	l, ok := n.(*regexast.CharBlockLeaf)
	return l, ok
}

// fuseUnions implements pass 2: recursively, a Union whose alternative
// is itself a Union takes over that inner Union's alternatives, and
// then every unifiable CharBlockLeaf alternative of the resulting
// Union is fused into a single leaf wrapping a Composite block.
func fuseUnions(root regexast.Node) regexast.Node {
	return fuseUnionsWalk(root)
}

func fuseUnionsWalk(n regexast.Node) regexast.Node {
	switch v := n.(type) {
	case *regexast.Concatenation:
		return regexast.NewConcatenation(fuseUnionsWalk(v.Left), fuseUnionsWalk(v.Right))
	case *regexast.Repetition:
		return regexast.NewRepetition(fuseUnionsWalk(v.Template), v.Min, v.Max)
	case *regexast.PositiveLookahead:
		return regexast.NewPositiveLookahead(fuseUnionsWalk(v.Child))
	case *regexast.Group:
		return rebuildGroup(v, fuseUnionsWalk(v.Child))
	case *regexast.Union:
		var alts []regexast.Node
		for _, a := range v.Alternatives {
			w := fuseUnionsWalk(a)
			if inner, ok := w.(*regexast.Union); ok {
				alts = append(alts, inner.Alternatives...)
				continue
			}
			alts = append(alts, w)
		}
		return fuseUnionPairwise(alts)
	default:
		return n
	}
}

// fuseUnionPairwise folds a left-to-right union alternative list,
// merging every unifiable leaf in it, adjacent or not, into one
// Composite leaf placed where the first of them stood; the other
// alternatives keep their relative order.
func fuseUnionPairwise(alts []regexast.Node) regexast.Node {
	var fused []regexast.Node
	var blocks []charblock.Block
	leafAt := -1

	for _, a := range alts {
		if leaf, ok := unifiableLeaf(a); ok {
			if leafAt < 0 {
				leafAt = len(fused)
				fused = append(fused, nil)
			}
			blocks = append(blocks, leaf.Block)
			continue
		}
		fused = append(fused, a)
	}
	if len(blocks) == 1 {
		fused[leafAt] = regexast.NewCharBlockLeaf(blocks[0])
	} else if len(blocks) > 1 {
		fused[leafAt] = regexast.NewCharBlockLeaf(charblock.Composite{Items: blocks})
	}

	if len(fused) == 1 {
		return fused[0]
	}
	return regexast.NewUnion(fused)
}

// concatenable reports whether n can take part in concatenation
// fusion: a CharBlockLeaf, a StringLeaf, or an Epsilon (which
// contributes no blocks and is simply dropped).
func concatenable(n regexast.Node) ([]charblock.Block, bool) {
	switch v := n.(type) {
	case *regexast.CharBlockLeaf:
		return []charblock.Block{v.Block}, true
	case *regexast.StringLeaf:
		return v.Blocks, true
	case *regexast.Epsilon:
		return nil, true
	default:
		return nil, false
	}
}

// fuseConcatenations implements pass 3, folding a run of adjacent
// concatenable leaves (left to right) into a single StringLeaf.
func fuseConcatenations(root regexast.Node) regexast.Node {
	return fuseConcatenationsWalk(root)
}

func fuseConcatenationsWalk(n regexast.Node) regexast.Node {
	switch v := n.(type) {
	case *regexast.Union:
		alts := make([]regexast.Node, len(v.Alternatives))
		for i, a := range v.Alternatives {
			alts[i] = fuseConcatenationsWalk(a)
		}
		return regexast.NewUnion(alts)
	case *regexast.Repetition:
		return regexast.NewRepetition(fuseConcatenationsWalk(v.Template), v.Min, v.Max)
	case *regexast.PositiveLookahead:
		return regexast.NewPositiveLookahead(fuseConcatenationsWalk(v.Child))
	case *regexast.Group:
		return rebuildGroup(v, fuseConcatenationsWalk(v.Child))
	case *regexast.Concatenation:
		flat := flattenConcatenation(v)
		return fuseConcatenableRun(flat)
	default:
		return n
	}
}

// flattenConcatenation collects a left-to-right Concatenation chain
// into a flat node list, recursing into each side first so that
// nested unions/repetitions/groups are independently optimized before
// fusion looks at their concatenable-ness.
func flattenConcatenation(n *regexast.Concatenation) []regexast.Node {
	var out []regexast.Node
	var walk func(regexast.Node)
	walk = func(x regexast.Node) {
		if c, ok := x.(*regexast.Concatenation); ok {
			walk(c.Left)
			walk(c.Right)
			return
		}
		out = append(out, fuseConcatenationsWalk(x))
	}
	walk(n)
	return out
}

func fuseConcatenableRun(nodes []regexast.Node) regexast.Node {
	var result []regexast.Node
	var pending []charblock.Block

	flush := func() {
		if len(pending) == 0 {
			return
		}
		if len(pending) == 1 {
			result = append(result, regexast.NewCharBlockLeaf(pending[0]))
		} else {
			result = append(result, regexast.NewStringLeaf(append([]charblock.Block(nil), pending...)))
		}
		pending = nil
	}

	for _, n := range nodes {
		if blocks, ok := concatenable(n); ok {
			pending = append(pending, blocks...)
			continue
		}
		flush()
		result = append(result, n)
	}
	flush()

	if len(result) == 0 {
		return regexast.NewEpsilon()
	}
	out := result[0]
	for _, n := range result[1:] {
		out = regexast.NewConcatenation(out, n)
	}
	return out
}
