package regexast

import "github.com/0x4d5352/regocross/internal/constraint"

// ApplyValue applies root's current value against a copy of base,
// repeating that pass while any backreference overlay narrowed a cell
// last time - a backreference and the characters it resolved against
// can each tighten the other, so one pass is not always enough to
// reach a fixed point. The word-boundary pass then runs once on the
// result; it is not repeated after backreference narrowing. It reports
// the tightened constraint and whether root's current value is still
// live.
func ApplyValue(root Node, base *constraint.Constraint) (constraint.Constraint, bool) {
	result := base.Clone()

	for {
		if !root.ApplyOnce(&result, 0) {
			root.ResetAfterConstrain()
			return result, false
		}
		if !root.CharactersWereConstrainedByBackreference() {
			break
		}
	}
	if !root.ApplyWordBoundaries(&result) {
		root.ResetAfterConstrain()
		return result, false
	}

	root.ResetAfterConstrain()
	return result, true
}
