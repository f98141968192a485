package regexparser

import "github.com/0x4d5352/regocross/internal/regexast"

// validateStructure runs the post-parse semantic checks the grammar
// itself cannot express: a backreference must not target its own
// enclosing group, and must not reach across a lookahead boundary to a
// group defined inside it.
func validateStructure(root regexast.Node) error {
	for _, b := range regexast.AllBackreferences(root) {
		if err := checkSelfReference(b); err != nil {
			return err
		}
		if err := checkLookaheadCrossing(root, b); err != nil {
			return err
		}
	}
	return nil
}

func checkSelfReference(b *regexast.Backreference) error {
	for p := regexast.Node(b); p != nil; p = p.Parent() {
		if g, ok := p.(*regexast.Group); ok && g.Capturing && g.Number == b.Number {
			return &StructureError{Message: "group cannot backreference itself"}
		}
	}
	return nil
}

func checkLookaheadCrossing(root regexast.Node, b *regexast.Backreference) error {
	groups := groupsNumbered(root, b.Number)
	for _, g := range groups {
		lookahead := regexast.EnclosingLookahead(g)
		if lookahead == nil {
			continue
		}
		if !isAncestor(lookahead, b) {
			return &StructureError{
				Message: "backreference crosses a lookahead boundary into the group it references",
			}
		}
	}
	return nil
}

func groupsNumbered(n regexast.Node, num int) []*regexast.Group {
	var out []*regexast.Group
	if g, ok := n.(*regexast.Group); ok && g.Capturing && g.Number == num {
		out = append(out, g)
	}
	for _, c := range n.Children() {
		out = append(out, groupsNumbered(c, num)...)
	}
	return out
}

func isAncestor(ancestor, n regexast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}
