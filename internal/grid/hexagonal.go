package grid

import "fmt"

// HexagonalGeometry lays cells out on a hexagonal grid addressed by
// cube coordinates (x, y, z), x + y + z constant. Its three line
// directions are related to each other by the cyclic coordinate
// rotation documented on Geometry, so a single BeginY/EndY pair
// (phrased in terms of "x" and "y") serves all three once the caller
// has rotated the coordinate tuple appropriately.
type HexagonalGeometry struct {
	SideLength int
}

// SideLength derives a hexagon's side length from the total number of
// regex lines in its grid file (lines are given in three equal
// groups, one per direction, and the side length is recovered from
// how many lines make up one of those groups).
func SideLength(numLines int) (int, error) {
	if numLines%3 != 0 {
		return 0, fmt.Errorf("number of hexagonal grid lines (%d) is not a multiple of 3", numLines)
	}
	perDirection := numLines / 3
	if perDirection%2 == 0 {
		return 0, fmt.Errorf("number of lines per hexagonal grid direction (%d) must be odd", perDirection)
	}
	return (perDirection + 1) / 2, nil
}

func (g HexagonalGeometry) numLinesPerDirection() int { return 2*g.SideLength - 1 }

func (g HexagonalGeometry) NumLineDirections() int { return 3 }
func (g HexagonalGeometry) NumRows() int           { return g.numLinesPerDirection() }

func (g HexagonalGeometry) BeginY(x int) int {
	if g.SideLength >= x+1 {
		return g.SideLength - (x + 1)
	}
	return 0
}

func (g HexagonalGeometry) EndY(x int) int {
	overhang := x - g.SideLength + 1
	if overhang < 0 {
		overhang = 0
	}
	return 2*g.SideLength - 1 - overhang
}

func (g HexagonalGeometry) Z(x, y int) int {
	return 3*g.SideLength - x - y - 3
}

func (g HexagonalGeometry) NumLines(direction int) int {
	return g.numLinesPerDirection()
}

// LineLength is symmetric across all three directions: a hexagon's
// rows, its SE-to-NW diagonals and its NE-to-SW diagonals are all the
// same shape, just rotated.
func (g HexagonalGeometry) LineLength(direction, lineIndex int) int {
	return g.EndY(lineIndex) - g.BeginY(lineIndex)
}

// IndexOnLine needs no direction switch: the cyclic rotation Geometry
// documents already presents "coordinate" and "nextCoordinate" in the
// roles x and y would play for direction 0, for every direction.
func (g HexagonalGeometry) IndexOnLine(direction, coordinate, nextCoordinate int) int {
	return nextCoordinate - g.BeginY(coordinate)
}
