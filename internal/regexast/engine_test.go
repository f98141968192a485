package regexast_test

import (
	"testing"

	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/constraint"
	"github.com/0x4d5352/regocross/internal/regexast"
	"github.com/0x4d5352/regocross/internal/regexparser"
)

func setupAlphabet(t *testing.T, explicit string) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New(explicit)
	if err != nil {
		t.Fatalf("alphabet.New(%q): %v", explicit, err)
	}
	alphabet.SetGlobal(a)
	t.Cleanup(alphabet.Reset)
	return a
}

// exactFitMatches reports whether root can produce a value, exactly
// filling a constraint of len(candidate) cells, whose application
// leaves every position still admitting candidate's corresponding
// character - i.e. whether root can match candidate as a whole line.
func exactFitMatches(t *testing.T, root regexast.Node, a *alphabet.Alphabet, candidate string) bool {
	t.Helper()
	size := len(candidate)
	want := make([]int, size)
	for i := 0; i < size; i++ {
		idx, ok := a.IndexOf(candidate[i])
		if !ok {
			return false
		}
		want[i] = idx
	}

	regexast.SetConstraintSizeTree(root, size)
	regexast.RewindTree(root, 0)
	base := constraint.All(size, a.All())

	for {
		if root.HasValue() && regexast.ValueFitsExactly(root) {
			tightened, ok := regexast.ApplyValue(root, &base)
			if ok {
				matches := true
				for i := 0; i < size; i++ {
					if !tightened.At(i).Contains(want[i]) {
						matches = false
						break
					}
				}
				if matches {
					return true
				}
			}
		}
		if root.AtEnd() {
			break
		}
		root.Increment()
	}
	return false
}

func TestApplyValueConcatenation(t *testing.T) {
	a := setupAlphabet(t, "ab")
	root, err := regexparser.Parse("ab")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !exactFitMatches(t, root, a, "ab") {
		t.Error("expected \"ab\" to match its own literal pattern")
	}
	if exactFitMatches(t, root, a, "ba") {
		t.Error("did not expect \"ab\" to match \"ba\"")
	}
}

func TestBackreferenceOnlyMatchesRepeatedGroup(t *testing.T) {
	a := setupAlphabet(t, "ab")
	root, err := regexparser.Parse(`(a|b)\1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !exactFitMatches(t, root, a, "aa") {
		t.Error(`expected "aa" to match (a|b)\1`)
	}
	if !exactFitMatches(t, root, a, "bb") {
		t.Error(`expected "bb" to match (a|b)\1`)
	}
	if exactFitMatches(t, root, a, "ab") {
		t.Error(`did not expect "ab" to match (a|b)\1`)
	}
	if exactFitMatches(t, root, a, "ba") {
		t.Error(`did not expect "ba" to match (a|b)\1`)
	}
}

func TestBackreferenceTargetInsideRepetitionTracksLatestClone(t *testing.T) {
	a := setupAlphabet(t, "abc")
	root, err := regexparser.Parse(`(a|b)*c\1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !exactFitMatches(t, root, a, "aca") {
		t.Error(`expected "aca" to match (a|b)*c\1: one repetition captures "a"`)
	}
	if !exactFitMatches(t, root, a, "bcb") {
		t.Error(`expected "bcb" to match (a|b)*c\1: one repetition captures "b"`)
	}
	if exactFitMatches(t, root, a, "acb") {
		t.Error(`did not expect "acb" to match (a|b)*c\1: \1 must echo the captured "a"`)
	}
	if !exactFitMatches(t, root, a, "abcb") {
		t.Error(`expected "abcb" to match (a|b)*c\1: \1 must echo the last repetition ("b"), not the first`)
	}
	if exactFitMatches(t, root, a, "abca") {
		t.Error(`did not expect "abca" to match (a|b)*c\1: \1 echoing the first repetition ("a") is wrong`)
	}
}

func TestBackreferenceTargetInUnselectedUnionBranchHasNoValue(t *testing.T) {
	a := setupAlphabet(t, "abcde")
	root, err := regexparser.Parse(`((b)*|c)(a|\2)(d|e\2)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !exactFitMatches(t, root, a, "cad") {
		t.Error(`expected "cad" to match ((b)*|c)(a|\2)(d|e\2): group 1 takes "c", leaving \2 without a value, so only the non-backreference alternatives can apply`)
	}
	if exactFitMatches(t, root, a, "cbd") {
		t.Error(`did not expect "cbd" to match ((b)*|c)(a|\2)(d|e\2): group 1's "c" branch never captures group 2, so \2 has no value to supply "b"`)
	}
	if exactFitMatches(t, root, a, "ced") {
		t.Error(`did not expect "ced" to match ((b)*|c)(a|\2)(d|e\2): \2 has no value when group 1 takes "c", so "e\2" cannot apply either`)
	}
	if !exactFitMatches(t, root, a, "bad") {
		t.Error(`expected "bad" to match ((b)*|c)(a|\2)(d|e\2): group 1 takes "(b)*" with one repetition, group 2 captures "b", but the third group picks the literal "a"`)
	}
	if !exactFitMatches(t, root, a, "bbd") {
		t.Error(`expected "bbd" to match ((b)*|c)(a|\2)(d|e\2): group 1 takes "(b)*" once, \2 = "b" supplies the third group`)
	}
}

func TestWordBoundaryAtStringEdge(t *testing.T) {
	a := setupAlphabet(t, "a !")
	root, err := regexparser.Parse(`\ba`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !exactFitMatches(t, root, a, "a") {
		t.Error(`expected "a" to match \ba at the start of the line`)
	}
}

func TestNotWordBoundaryRejectsEdgeWordChar(t *testing.T) {
	a := setupAlphabet(t, "a !")
	root, err := regexparser.Parse(`\Ba`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// \B at position 0 requires a non-word character there; 'a' is a
	// word character, so this can never match.
	if exactFitMatches(t, root, a, "a") {
		t.Error(`did not expect "a" to match \Ba at the start of the line`)
	}
}
