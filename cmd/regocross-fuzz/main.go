// Command regocross-fuzz repeatedly generates small random regex
// strings and checks two properties that must hold for every one of
// them that parses: the optimizer must not change what a regex can
// constrain, and this engine's verdict on a random candidate string
// must agree with github.com/dlclark/regexp2 (a real backtracking
// engine with backreferences and lookahead, the closest real-world
// equivalent this engine has). It runs until it finds a disagreement,
// or until a caller-chosen number of trials have passed.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/dlclark/regexp2"
	flag "github.com/spf13/pflag"

	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/constraint"
	"github.com/0x4d5352/regocross/internal/optimizer"
	"github.com/0x4d5352/regocross/internal/regexast"
	"github.com/0x4d5352/regocross/internal/regexparser"
)

const sidecarPath = "regocross_fuzz_trial.json"

// trialRecord is the crash sidecar, rewritten before each trial with
// that trial's regex and removed only when run finishes without a
// failure, so a crash or a failing trial leaves the offending input on
// disk.
type trialRecord struct {
	Regex     string `json:"regex"`
	Candidate string `json:"candidate,omitempty"`
}

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regocross-fuzz", flag.ContinueOnError)
	fs.SetOutput(stderr)

	randomize := fs.Bool("randomize", false, "seed the random source from wall-clock time instead of a fixed seed")
	numTests := fs.Int64("num-tests", 0, "stop after this many trials (0 means run until a failure is found)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "regocross-fuzz - cross-check the regex engine against regexp2 on random input\n\n")
		fmt.Fprintf(stderr, "Usage:\n  regocross-fuzz [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	seed := int64(1)
	if *randomize {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	stats := &statistics{}
	var i int64
	for *numTests == 0 || i < *numTests {
		if i != 0 && i%1000 == 0 {
			stats.print(stderr)
		}
		i++

		s := randomRegexString(rng)
		if err := writeSidecar(trialRecord{Regex: s}); err != nil {
			return err
		}

		if err := testString(rng, s, stats); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return err
		}
	}

	stats.print(stderr)
	return os.Remove(sidecarPath)
}

type statistics struct {
	unparseable  int64
	badStructure int64
	skipped      int64
	checked      int64
}

func (s *statistics) total() int64 {
	return s.unparseable + s.badStructure + s.skipped + s.checked
}

func (s *statistics) print(w io.Writer) {
	total := s.total()
	pct := func(n int64) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}
	fmt.Fprintf(w, "unparseable = %d (%.2f%%), bad structure = %d (%.2f%%), skipped = %d (%.2f%%), checked = %d (%.2f%%), total = %d\n",
		s.unparseable, pct(s.unparseable),
		s.badStructure, pct(s.badStructure),
		s.skipped, pct(s.skipped),
		s.checked, pct(s.checked),
		total)
}

// testString parses s, and unless it is unparseable, malformed or too
// expensive to be worth constraining, runs both checks against it.
func testString(rng *rand.Rand, s string, stats *statistics) error {
	root, err := regexparser.Parse(s)
	if err != nil {
		var perr *regexparser.ParseError
		var serr *regexparser.StructureError
		if errors.As(err, &perr) {
			stats.unparseable++
			return nil
		}
		if errors.As(err, &serr) {
			stats.badStructure++
			return nil
		}
		return err
	}

	if wouldTakeTooLongToConstrain(s) {
		stats.skipped++
		return nil
	}
	stats.checked++

	explicit := root.ExplicitCharacters()
	if explicit == "" {
		return nil
	}
	a, err := alphabet.New(explicit)
	if err != nil {
		return nil
	}
	alphabet.SetGlobal(a)
	defer alphabet.Reset()

	if err := checkOptimizerPreservesConstraints(root, len(s)); err != nil {
		return err
	}

	candidate := randomCandidateOverAlphabet(rng, a, len(s))
	record := trialRecord{Regex: s, Candidate: candidate}
	if err := writeSidecar(record); err != nil {
		return err
	}
	return checkAgreesWithRegexp2(s, candidate)
}

// checkOptimizerPreservesConstraints constrains root and its
// fully-optimized clone against the same all-characters constraint,
// combining every enumerated value's result with OR (the same
// combine() the original fuzzer performs, justified in
// regex.constrain.unit_tests in the original sources: a regex can
// produce more than one value fitting a given length, so only the
// union of per-value results is comparable across two trees that may
// enumerate values in different orders).
func checkOptimizerPreservesConstraints(root regexast.Node, size int) error {
	plain := combineAllValues(root.Clone(), size)
	optimized := combineAllValues(optimizer.Optimize(root.Clone(), optimizer.All()), size)

	if !plain.Equal(optimized) {
		return fmt.Errorf("optimizer changed constraints for regex (see %s)", sidecarPath)
	}
	return nil
}

func combineAllValues(root regexast.Node, size int) constraint.Constraint {
	regexast.SetConstraintSizeTree(root, size)
	regexast.RewindTree(root, 0)

	acc := constraint.None(size)
	for {
		if root.HasValue() && regexast.ValueFitsExactly(root) {
			base := constraint.All(size, alphabet.Global().All())
			if tightened, ok := regexast.ApplyValue(root, &base); ok {
				acc = acc.Or(tightened)
			}
		}
		if root.AtEnd() {
			break
		}
		root.Increment()
	}
	return acc
}

// checkAgreesWithRegexp2 asks regexp2 whether candidate fully matches
// s anchored at both ends, and compares that against whether this
// engine's own constrain, given a constraint narrowed to exactly
// candidate, reports the line as possible.
func checkAgreesWithRegexp2(s, candidate string) error {
	re, err := regexp2.Compile("^(?:"+s+")$", regexp2.None)
	if err != nil {
		// A regex regexp2 itself rejects is outside the comparison's
		// scope: its syntax is a superset in some places and a subset
		// in others (no POSIX classes, different backreference
		// limits), so a regexp2 compile failure is not a disagreement.
		return nil
	}
	theirs, err := re.MatchString(candidate)
	if err != nil {
		return nil
	}

	root, err := regexparser.Parse(s)
	if err != nil {
		return nil
	}
	ours := singletonMatches(root, candidate)

	if ours != theirs {
		return fmt.Errorf("disagreement on %q against %q: this engine says %v, regexp2 says %v (see %s)",
			s, candidate, ours, theirs, sidecarPath)
	}
	return nil
}

// singletonMatches reports whether root can produce a value that
// intersects a constraint built from exactly candidate's characters,
// at every position - i.e. whether root can match candidate as a
// whole line.
func singletonMatches(root regexast.Node, candidate string) bool {
	a := alphabet.Global()
	size := len(candidate)
	candidateIdx := make([]int, size)
	for i := 0; i < size; i++ {
		idx, ok := a.IndexOf(candidate[i])
		if !ok {
			return false
		}
		candidateIdx[i] = idx
	}
	base := constraint.All(size, a.All())

	regexast.SetConstraintSizeTree(root, size)
	regexast.RewindTree(root, 0)

	for {
		if root.HasValue() && regexast.ValueFitsExactly(root) {
			trial := base.Clone()
			if tightened, ok := regexast.ApplyValue(root, &trial); ok {
				matches := true
				for i := 0; i < size; i++ {
					if !tightened.At(i).Contains(candidateIdx[i]) {
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

// randomRegexString mirrors the original fuzzer's generator: 0 to 20
// random printable ASCII characters (including regex metacharacters),
// the length and every character drawn uniformly, with no bias toward
// syntactically valid regexes.
func randomRegexString(rng *rand.Rand) string {
	const chars = ` !"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\]^_` +
		"`abcdefghijklmnopqrstuvwxyz{|}~"
	length := rng.Intn(21)
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}

// randomCandidateOverAlphabet generates a random candidate string of
// the same length as the source regex, drawn only from the alphabet
// the regex's own explicit characters produced - a candidate drawn
// from outside the alphabet could never match by construction, which
// would make every trial trivially agree.
func randomCandidateOverAlphabet(rng *rand.Rand, a *alphabet.Alphabet, length int) string {
	if a.Len() == 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = a.CharacterAt(rng.Intn(a.Len()))
	}
	return string(b)
}

// wouldTakeTooLongToConstrain mirrors the original fuzzer's cheap
// textual heuristic: two or more repetition operators in one regex can
// make full enumeration exponential, so such regexes are skipped
// rather than constrained.
func wouldTakeTooLongToConstrain(s string) bool {
	count := 0
	hasOpenBrace, hasCloseBrace := false, false
	for _, c := range s {
		switch c {
		case '*', '+', '?':
			count++
		case '{':
			hasOpenBrace = true
		case '}':
			hasCloseBrace = true
		}
	}
	if hasOpenBrace && hasCloseBrace {
		count++
	}
	return count >= 2
}

func writeSidecar(r trialRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(sidecarPath, b, 0o644)
}
