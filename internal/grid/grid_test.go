package grid

import (
	"testing"
)

func TestRectangularGeometryBasics(t *testing.T) {
	g := RectangularGeometry{Rows: 2, Cols: 3}
	if g.NumLineDirections() != 2 {
		t.Fatalf("expected 2 line directions, got %d", g.NumLineDirections())
	}
	if g.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", g.NumRows())
	}
	if g.BeginY(0) != 0 || g.EndY(0) != 3 {
		t.Errorf("row 0 span = [%d,%d), want [0,3)", g.BeginY(0), g.EndY(0))
	}
	if g.NumLines(0) != 2 || g.NumLines(1) != 3 {
		t.Errorf("NumLines = (%d,%d), want (2,3)", g.NumLines(0), g.NumLines(1))
	}
	if g.LineLength(0, 0) != 3 || g.LineLength(1, 0) != 2 {
		t.Errorf("LineLength = (%d,%d), want (3,2)", g.LineLength(0, 0), g.LineLength(1, 0))
	}
	if g.IndexOnLine(0, 0, 2) != 2 {
		t.Errorf("IndexOnLine(0,0,2) = %d, want 2", g.IndexOnLine(0, 0, 2))
	}
}

func TestHexagonalSideLengthValidation(t *testing.T) {
	tests := []struct {
		numLines int
		wantSide int
		wantErr  bool
	}{
		{9, 2, false},   // 9/3 = 3, odd, side = 2
		{15, 3, false},  // 15/3 = 5, odd, side = 3
		{10, 0, true},   // not a multiple of 3
		{18, 0, true},   // 18/3 = 6, even
	}
	for _, tt := range tests {
		side, err := SideLength(tt.numLines)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SideLength(%d): expected an error", tt.numLines)
			}
			continue
		}
		if err != nil {
			t.Errorf("SideLength(%d): unexpected error: %v", tt.numLines, err)
		}
		if side != tt.wantSide {
			t.Errorf("SideLength(%d) = %d, want %d", tt.numLines, side, tt.wantSide)
		}
	}
}

func TestHexagonalGeometryRowSpans(t *testing.T) {
	g := HexagonalGeometry{SideLength: 2}
	// A side-2 hexagon has 3 rows of lengths 2, 3, 2.
	wantLengths := []int{2, 3, 2}
	if g.NumRows() != len(wantLengths) {
		t.Fatalf("NumRows() = %d, want %d", g.NumRows(), len(wantLengths))
	}
	for x, want := range wantLengths {
		got := g.EndY(x) - g.BeginY(x)
		if got != want {
			t.Errorf("row %d length = %d, want %d", x, got, want)
		}
	}
}

func TestHexagonalLineLengthSymmetric(t *testing.T) {
	g := HexagonalGeometry{SideLength: 2}
	for i := 0; i < g.NumLines(0); i++ {
		l0 := g.LineLength(0, i)
		l1 := g.LineLength(1, i)
		l2 := g.LineLength(2, i)
		if l0 != l1 || l1 != l2 {
			t.Errorf("line %d lengths differ across directions: %d, %d, %d", i, l0, l1, l2)
		}
	}
}

// buildRectangular2x2 builds a 2x2 grid whose unique solution is
//
//	a b
//	b a
//
// fully pinned down by its row and column regexes alone (no search
// branching required).
func buildRectangular2x2(t *testing.T) *Grid {
	t.Helper()
	geom := RectangularGeometry{Rows: 2, Cols: 2}
	sources := [][]string{
		{"ab"}, // row 0
		{"ba"}, // row 1
		{"ab"}, // col 0
		{"ba"}, // col 1
	}
	g, err := Build(geom, sources)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuildAssignsCellsToLines(t *testing.T) {
	g := buildRectangular2x2(t)
	if len(g.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(g.Cells))
	}
	if len(g.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(g.Lines))
	}
	for _, line := range g.Lines {
		if len(line.CellIdx) != 2 {
			t.Errorf("direction %d line %d: expected 2 cells, got %d", line.Direction, line.Index, len(line.CellIdx))
		}
	}
}

func TestSolveFindsUniqueSolution(t *testing.T) {
	g := buildRectangular2x2(t)
	solutions := g.Solve(2)
	if len(solutions) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d", len(solutions))
	}
	sol := solutions[0]
	if !sol.IsSolved() {
		t.Fatal("expected the returned grid to be fully solved")
	}

	want := map[[2]int]byte{
		{0, 0}: 'a', {0, 1}: 'b',
		{1, 0}: 'b', {1, 1}: 'a',
	}
	for _, c := range sol.Cells {
		idx := c.Candidates.Indices()
		if len(idx) != 1 {
			t.Fatalf("cell (%d,%d): expected exactly one candidate, got %v", c.X, c.Y, c.Candidates)
		}
		got := sol.Alphabet.CharacterAt(idx[0])
		if want[[2]int{c.X, c.Y}] != got {
			t.Errorf("cell (%d,%d) = %q, want %q", c.X, c.Y, got, want[[2]int{c.X, c.Y}])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := buildRectangular2x2(t)
	clone := g.Clone()
	clone.Cells[0].Candidates = clone.Cells[0].Candidates.Complement(clone.Alphabet.Len())
	if g.Cells[0].Candidates.Equal(clone.Cells[0].Candidates) {
		t.Error("expected mutating the clone's cells not to affect the original")
	}
}

// TestCloneIsolatesLineRegexTrees exercises a row pattern with a
// backreference (whose enumeration rewinds and increments its own
// tree's iteration state every propagation pass) across a grid shape
// that forces branching search, so every candidate cell value gets its
// own cloned grid and its own pass over the row's tree. If Clone ever
// shared tree instances across branches, one branch's in-progress
// enumeration state could leak into a sibling branch's and admit an
// unintended solution.
func TestCloneIsolatesLineRegexTrees(t *testing.T) {
	geom := RectangularGeometry{Rows: 1, Cols: 2}
	sources := [][]string{
		{`(a|b)\1`}, // row 0
		{"."},       // col 0
		{"."},       // col 1
	}
	g, err := Build(geom, sources)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	solutions := g.Solve(10)
	got := make(map[string]bool, len(solutions))
	for _, sol := range solutions {
		s := make([]byte, len(sol.Cells))
		for i, c := range sol.Cells {
			idx := c.Candidates.Indices()
			if len(idx) != 1 {
				t.Fatalf("cell %d: expected exactly one candidate, got %v", i, c.Candidates)
			}
			s[i] = sol.Alphabet.CharacterAt(idx[0])
		}
		got[string(s)] = true
	}

	want := map[string]bool{"aa": true, "bb": true}
	if len(got) != len(want) {
		t.Fatalf("solutions = %v, want exactly %v", got, want)
	}
	for s := range want {
		if !got[s] {
			t.Errorf("expected %q among the solutions, got %v", s, got)
		}
	}
}

func TestBuildRejectsWrongLineCount(t *testing.T) {
	geom := RectangularGeometry{Rows: 2, Cols: 2}
	_, err := Build(geom, [][]string{{"a."}, {".b"}})
	if err == nil {
		t.Fatal("expected an error when too few line regex groups are given")
	}
}
