package grid

import (
	"errors"
	"fmt"

	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/charset"
	"github.com/0x4d5352/regocross/internal/lineconstrainer"
	"github.com/0x4d5352/regocross/internal/optimizer"
	"github.com/0x4d5352/regocross/internal/regexast"
	"github.com/0x4d5352/regocross/internal/regexparser"
)

// StructureError reports that a grid file's regex counts do not match
// its declared shape.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string { return "grid structure error: " + e.Message }

// Cell is one grid position: its coordinates (z is unused on a
// rectangular grid) and its current candidate set.
type Cell struct {
	X, Y, Z    int
	Candidates charset.CharSet
}

// Solved reports whether this cell has narrowed to exactly one
// candidate.
func (c Cell) Solved() bool { return c.Candidates.Count() == 1 }

// Line is one regex-constrained line of cells: a line direction, its
// index within that direction, the cells it covers in line order, and
// the constrainer built from its (already parsed and optimized)
// regexes.
type Line struct {
	Direction int
	Index     int
	CellIdx   []int
	Sources   []string
	lc        lineconstrainer.LineConstrainer
}

// Grid is a fully built, ready-to-solve crossword: its geometry, its
// flat cell list, and every line that constrains those cells.
type Grid struct {
	Geom     Geometry
	Cells    []Cell
	Lines    []Line
	Alphabet *alphabet.Alphabet
}

// Build parses, optimizes and wires every line's regexes against the
// cells geom admits, in the order Geometry documents: direction 0's
// lines first (index ascending), then direction 1's, then (for a
// hexagonal grid) direction 2's. lineRegexSources must hold exactly
// that many groups, one per line.
func Build(geom Geometry, lineRegexSources [][]string) (*Grid, error) {
	total := 0
	for d := 0; d < geom.NumLineDirections(); d++ {
		total += geom.NumLines(d)
	}
	if len(lineRegexSources) != total {
		return nil, &StructureError{Message: fmt.Sprintf(
			"grid has %d regex lines total, but %d lines were given",
			total, len(lineRegexSources))}
	}

	lines := make([]Line, total)
	k := 0
	for d := 0; d < geom.NumLineDirections(); d++ {
		for idx := 0; idx < geom.NumLines(d); idx++ {
			lines[k] = Line{
				Direction: d,
				Index:     idx,
				CellIdx:   make([]int, geom.LineLength(d, idx)),
				Sources:   lineRegexSources[k],
			}
			k++
		}
	}
	lineOffset := func(direction int) int {
		off := 0
		for d := 0; d < direction; d++ {
			off += geom.NumLines(d)
		}
		return off
	}

	var cells []Cell
	for x := 0; x < geom.NumRows(); x++ {
		for y := geom.BeginY(x); y < geom.EndY(x); y++ {
			z := 0
			if geom.NumLineDirections() == 3 {
				z = geom.Z(x, y)
			}
			coords := [3]int{x, y, z}
			cellIdx := len(cells)
			cells = append(cells, Cell{X: x, Y: y, Z: z})

			for d := 0; d < geom.NumLineDirections(); d++ {
				coordinate := coords[d]
				nextCoordinate := coords[(d+1)%geom.NumLineDirections()]
				line := &lines[lineOffset(d)+coordinate]
				pos := geom.IndexOnLine(d, coordinate, nextCoordinate)
				if pos < 0 || pos >= len(line.CellIdx) {
					return nil, &StructureError{Message: fmt.Sprintf(
						"cell (%d,%d,%d) maps outside its line %d/%d", x, y, z, d, coordinate)}
				}
				line.CellIdx[pos] = cellIdx
			}
		}
	}

	var explicit []byte
	parsedByLine := make([][]regexast.Node, total)
	for i := range lines {
		roots := make([]regexast.Node, len(lines[i].Sources))
		for j, src := range lines[i].Sources {
			root, err := regexparser.Parse(src)
			if err != nil {
				return nil, err
			}
			explicit = append(explicit, root.ExplicitCharacters()...)
			roots[j] = root
		}
		parsedByLine[i] = roots
	}

	a, err := alphabet.New(string(explicit))
	if err != nil {
		return nil, err
	}
	alphabet.SetGlobal(a)

	for i := range lines {
		roots := make([]regexast.Node, len(parsedByLine[i]))
		for j, root := range parsedByLine[i] {
			roots[j] = optimizer.Optimize(root, optimizer.All())
		}
		lines[i].lc = *lineconstrainer.New(roots, lines[i].Sources)
	}

	for i := range cells {
		cells[i].Candidates = a.All()
	}

	return &Grid{Geom: geom, Cells: cells, Lines: lines, Alphabet: a}, nil
}

// IsSolved reports whether every cell has narrowed to one candidate.
func (g *Grid) IsSolved() bool {
	for _, c := range g.Cells {
		if !c.Solved() {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy: a new cell slice and, for
// each line, a line constrainer whose regex trees are deep-cloned from
// this grid's, so that branching search can diverge freely without any
// branch's tree mutations (Rewind, Increment, the backreference and
// repetition iteration state) being visible to any other branch.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	lines := make([]Line, len(g.Lines))
	for i := range g.Lines {
		lines[i] = g.Lines[i]
		lines[i].lc = *g.Lines[i].lc.Clone()
	}
	return &Grid{Geom: g.Geom, Cells: cells, Lines: lines, Alphabet: g.Alphabet}
}

// Propagate runs round-robin per-line constraint propagation until
// either a full pass over every line produces no change, or a
// line turns up impossible. It returns false in the latter case.
func (g *Grid) Propagate() bool {
	n := len(g.Lines)
	if n == 0 {
		return true
	}
	unchangedStreak := 0
	i := 0
	for unchangedStreak != n {
		line := &g.Lines[i]
		cur := make([]charset.CharSet, len(line.CellIdx))
		for j, ci := range line.CellIdx {
			cur[j] = g.Cells[ci].Candidates
		}

		tightened, ok, changed := line.lc.Constrain(cur)
		if !ok {
			return false
		}
		if changed {
			for j, ci := range line.CellIdx {
				g.Cells[ci].Candidates = tightened[j]
				if g.Cells[ci].Candidates.IsEmpty() {
					return false
				}
			}
			unchangedStreak = 0
		} else {
			unchangedStreak++
		}
		i = (i + 1) % n
	}
	return true
}

// cellToSearch returns the index of an unsolved cell with the fewest
// candidates, the heuristic branch-on-least-ambiguity choice: it
// maximizes the odds that a guessed character is the right one.
func (g *Grid) cellToSearch() (int, bool) {
	best := -1
	for i, c := range g.Cells {
		if c.Solved() {
			continue
		}
		if best == -1 || g.Cells[i].Candidates.Count() < g.Cells[best].Candidates.Count() {
			best = i
		}
	}
	return best, best != -1
}

// ErrNoSolutions is returned by callers that want to distinguish "ran
// out of solutions to find" from a structural failure; Solve itself
// just returns an empty slice in that case.
var ErrNoSolutions = errors.New("grid: no solutions")

// Solve runs fixed-point propagation followed, if necessary, by
// branch-and-bound search, stopping once it has collected maxSolutions
// solved grids (or every possibility is exhausted).
func (g *Grid) Solve(maxSolutions int) []*Grid {
	var out []*Grid
	g.solve(maxSolutions, &out)
	return out
}

func (g *Grid) solve(remaining int, out *[]*Grid) {
	if remaining <= 0 || len(*out) >= remaining {
		return
	}
	if !g.Propagate() {
		return
	}
	if g.IsSolved() {
		*out = append(*out, g)
		return
	}

	idx, ok := g.cellToSearch()
	if !ok {
		return
	}
	for _, ci := range g.Cells[idx].Candidates.Indices() {
		if len(*out) >= remaining {
			return
		}
		branch := g.Clone()
		branch.Cells[idx].Candidates = charset.Single(ci)
		branch.solve(remaining, out)
	}
}
