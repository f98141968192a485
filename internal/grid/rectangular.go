package grid

// RectangularGeometry lays cells out on a plain rows-by-columns grid.
// Direction 0 is rows (read left to right), direction 1 is columns
// (read top to bottom).
type RectangularGeometry struct {
	Rows, Cols int
}

func (g RectangularGeometry) NumLineDirections() int { return 2 }
func (g RectangularGeometry) NumRows() int           { return g.Rows }
func (g RectangularGeometry) BeginY(x int) int       { return 0 }
func (g RectangularGeometry) EndY(x int) int         { return g.Cols }
func (g RectangularGeometry) Z(x, y int) int         { return 0 }

func (g RectangularGeometry) NumLines(direction int) int {
	if direction == 0 {
		return g.Rows
	}
	return g.Cols
}

func (g RectangularGeometry) LineLength(direction, lineIndex int) int {
	if direction == 0 {
		return g.Cols
	}
	return g.Rows
}

// IndexOnLine is trivial for a rectangle: whichever coordinate isn't
// fixing the line is that cell's position on it.
func (g RectangularGeometry) IndexOnLine(direction, coordinate, nextCoordinate int) int {
	return nextCoordinate
}
