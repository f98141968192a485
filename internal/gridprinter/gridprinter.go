// Package gridprinter renders a solved or partially-solved grid to a
// terminal: one cell per character when every cell is a singleton, or
// a bracketed candidate list when it isn't. Color is applied through
// termenv so it degrades gracefully on pipes and non-color terminals,
// and the whole rendered block can optionally be pushed to the
// system clipboard over OSC 52 for remote/SSH sessions where a local
// clipboard isn't reachable any other way.
package gridprinter

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"github.com/0x4d5352/regocross/internal/charset"
)

// ColorMode mirrors the CLI's --color flag.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Config controls how Render lays a grid out.
type Config struct {
	Color ColorMode
	// Copy, when true, additionally emits an OSC 52 clipboard escape
	// sequence wrapping the plain-text rendering.
	Copy bool
	// SolvedHue and UndeterminedHue are HSL hues (degrees) used to
	// distinguish singleton cells from cells still holding multiple
	// candidates.
	SolvedHue, UndeterminedHue float64
}

// DefaultConfig returns the configuration the CLI uses absent explicit
// flags.
func DefaultConfig() Config {
	return Config{
		Color:           ColorAuto,
		SolvedHue:       140, // green
		UndeterminedHue: 40,  // amber
	}
}

// Printer renders grids to an io.Writer using a termenv output bound
// to that writer, so color profile detection (truecolor, ANSI256,
// ANSI, or no color) matches the actual destination rather than
// always assuming os.Stdout.
type Printer struct {
	cfg Config
	out *termenv.Output
	w   io.Writer
}

// New builds a Printer writing to w, deriving its color profile from
// cfg.Color and, for ColorAuto, from whether w is a terminal.
func New(w io.Writer, cfg Config) *Printer {
	var profile termenv.Profile
	switch cfg.Color {
	case ColorAlways:
		profile = termenv.ANSI256
	case ColorNever:
		profile = termenv.Ascii
	default:
		if f, ok := w.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(f.Fd()) {
			profile = termenv.EnvColorProfile()
		} else {
			profile = termenv.Ascii
		}
	}
	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	return &Printer{cfg: cfg, out: out, w: w}
}

// Cell is the minimal view gridprinter needs of a solved or
// in-progress grid cell.
type Cell struct {
	Candidates charset.CharSet
	Alphabet   []byte // CharacterAt(i) for i in Indices() order, shared across all cells
}

// Render writes rows of cells (already ordered by the caller's
// geometry adapter) to the printer's writer, one row per line. A
// singleton cell renders as its one character in SolvedHue; any other
// cell renders as its candidates joined and wrapped in brackets, in
// UndeterminedHue.
func (p *Printer) Render(rows [][]Cell) {
	var plain strings.Builder

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(p.w, " ")
				plain.WriteByte(' ')
			}
			text, hue := cellText(cell, p.cfg)
			fmt.Fprint(p.w, p.colorize(text, hue))
			plain.WriteString(text)
		}
		fmt.Fprintln(p.w)
		plain.WriteByte('\n')
	}

	if p.cfg.Copy {
		seq := osc52.New(plain.String())
		seq.WriteTo(p.w)
	}
}

func cellText(c Cell, cfg Config) (string, float64) {
	idx := c.Candidates.Indices()
	if len(idx) == 1 {
		return string(c.Alphabet[idx[0]]), cfg.SolvedHue
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, i := range idx {
		b.WriteByte(c.Alphabet[i])
	}
	b.WriteByte(']')
	return b.String(), cfg.UndeterminedHue
}

func (p *Printer) colorize(text string, hue float64) string {
	if p.cfg.Color == ColorNever {
		return text
	}
	c := colorful.Hsl(hue, 0.55, 0.5)
	return p.out.String(text).Foreground(p.out.Color(c.Hex())).String()
}

// DisplayWidth reports how many terminal columns text occupies,
// accounting for combining marks and wide runes - used by callers that
// need to align columns across rows whose cell text isn't always a
// single byte (bracketed multi-candidate cells).
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}
