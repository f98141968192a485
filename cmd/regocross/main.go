// Command regocross solves regex crosswords: grid files naming a
// shape (rectangular or hexagonal), the regexes constraining each of
// its lines, and nothing else. It prints every solution it finds, up
// to a caller-chosen cap.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/grid"
	"github.com/0x4d5352/regocross/internal/gridio"
	"github.com/0x4d5352/regocross/internal/gridprinter"
	"github.com/0x4d5352/regocross/internal/regexparser"
)

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regocross", flag.ContinueOnError)
	fs.SetOutput(stderr)

	stopAfter := fs.Int("stop-after", 1, "stop after finding this many solutions")
	all := fs.Bool("all", false, "find every solution (overrides --stop-after)")
	verbose := fs.Bool("verbose", false, "print the grid after fixed-point propagation, before search")
	copyFlag := fs.Bool("copy", false, "copy the first solution to the clipboard via OSC 52")
	color := fs.String("color", "auto", "color output: auto, always, or never")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "regocross - solve regex crosswords\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  regocross [flags] <grid-file>\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  regocross puzzle.txt\n")
		fmt.Fprintf(stderr, "  regocross --all --verbose puzzle.txt\n")
		fmt.Fprintf(stderr, "  regocross --color=never --stop-after=5 puzzle.txt\n")
	}

	err := fs.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one grid file argument\n\n")
		fs.Usage()
		return fmt.Errorf("missing grid file argument")
	}
	path := fs.Arg(0)

	colorMode, err := parseColorMode(*color)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	parsed, err := gridio.ReadFile(path)
	if err != nil {
		displayError(stderr, err)
		return err
	}

	built, err := grid.Build(parsed.Geometry, parsed.LineRegexSources)
	if err != nil {
		displayError(stderr, err)
		return err
	}
	defer alphabet.Reset()

	maxSolutions := *stopAfter
	if *all {
		maxSolutions = int(^uint(0) >> 1) // effectively unbounded
	}

	printer := gridprinter.New(stdout, gridprinter.Config{
		Color:           colorMode,
		Copy:            *copyFlag,
		SolvedHue:       gridprinter.DefaultConfig().SolvedHue,
		UndeterminedHue: gridprinter.DefaultConfig().UndeterminedHue,
	})

	if *verbose {
		snapshot := built.Clone()
		if snapshot.Propagate() {
			fmt.Fprintln(stdout, "after fixed-point propagation:")
			printer.Render(renderRows(snapshot))
			fmt.Fprintln(stdout)
		}
	}

	solutions := built.Solve(maxSolutions)
	if len(solutions) == 0 {
		fmt.Fprintln(stdout, "this grid has no solutions")
		return nil
	}

	if len(solutions) < maxSolutions {
		fmt.Fprintf(stdout, "found %d solution(s) (there are no other solutions):\n", len(solutions))
	} else {
		fmt.Fprintf(stdout, "first %d solution(s) found (there might be other solutions):\n", len(solutions))
	}

	for i, sol := range solutions {
		fmt.Fprintln(stdout)
		p := printer
		if i > 0 {
			// Only the first solution is eligible for clipboard copy.
			cfg := gridprinter.DefaultConfig()
			cfg.Color = colorMode
			p = gridprinter.New(stdout, cfg)
		}
		p.Render(renderRows(sol))
	}

	return nil
}

func parseColorMode(s string) (gridprinter.ColorMode, error) {
	switch s {
	case "auto":
		return gridprinter.ColorAuto, nil
	case "always":
		return gridprinter.ColorAlways, nil
	case "never":
		return gridprinter.ColorNever, nil
	default:
		return 0, fmt.Errorf("invalid --color value %q: must be auto, always, or never", s)
	}
}

// displayError shows a parse error with a position indicator when the
// underlying error carries one (regexparser.ParseError), and a plain
// message otherwise.
func displayError(w io.Writer, err error) {
	var perr *regexparser.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "Error parsing regular expression:\n\n")
		fmt.Fprintf(w, "  %s\n", perr.Source)
		if perr.Offset >= 0 && perr.Offset <= len(perr.Source) {
			fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", perr.Offset))
		}
		fmt.Fprintf(w, "\n%s\n", perr.Message)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// renderRows lays a grid's cells out row by row (x ascending, y
// ascending within a row) for gridprinter, which only knows how to
// print rows of cells - it has no notion of grid shape.
func renderRows(g *grid.Grid) [][]gridprinter.Cell {
	byRow := map[int][]grid.Cell{}
	maxX := 0
	for _, c := range g.Cells {
		byRow[c.X] = append(byRow[c.X], c)
		if c.X > maxX {
			maxX = c.X
		}
	}

	alphabetBytes := make([]byte, g.Alphabet.Len())
	for i := range alphabetBytes {
		alphabetBytes[i] = g.Alphabet.CharacterAt(i)
	}

	rows := make([][]gridprinter.Cell, maxX+1)
	for x := 0; x <= maxX; x++ {
		row := byRow[x]
		cells := make([]gridprinter.Cell, len(row))
		for i, c := range row {
			cells[i] = gridprinter.Cell{Candidates: c.Candidates, Alphabet: alphabetBytes}
		}
		rows[x] = cells
	}
	return rows
}
