// Package grid assembles parsed, optimized regex lines into the cell
// grid they constrain, for either grid shape, and drives the
// propagate-then-search solve loop over it.
package grid

// Geometry abstracts the two grid shapes this solver supports:
// rectangular (two line directions, rows and columns) and hexagonal
// (three line directions at 60 degrees to each other). A Grid is built
// by walking every (x, y) cell coordinate the geometry admits and, for
// each of its line directions, asking the geometry which line the cell
// belongs to and where on that line it sits.
//
// The coordinate rotation a cell's line placement depends on is the
// same cyclic trick the geometry it was ported from uses: direction d
// reads its own coordinate from position d of the cell's coordinate
// tuple and its "next" coordinate from position (d+1) mod
// NumLineDirections. A hexagonal grid's three directions are related
// by exactly this rotation, which is why HexGeometry's IndexOnLine
// does not need to know which direction it is being asked about.
type Geometry interface {
	// NumLineDirections returns 2 for rectangular grids, 3 for
	// hexagonal ones.
	NumLineDirections() int

	// NumRows returns the number of distinct values the first
	// coordinate (x) takes.
	NumRows() int

	// BeginY and EndY bound the half-open range of y values that
	// exist for a given x.
	BeginY(x int) int
	EndY(x int) int

	// Z returns the third coordinate of a cell, given x and y. Only
	// called when NumLineDirections is 3.
	Z(x, y int) int

	// NumLines returns how many lines run in the given direction.
	NumLines(direction int) int

	// LineLength returns how many cells the line at the given index
	// (within its direction) holds.
	LineLength(direction, lineIndex int) int

	// IndexOnLine returns the position, along the line identified by
	// (direction, coordinate), that the cell whose next coordinate is
	// nextCoordinate occupies.
	IndexOnLine(direction, coordinate, nextCoordinate int) int
}
