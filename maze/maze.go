/*
Package maze builds perfect mazes on a cell/wall grid.

A Grid of width x height rooms is stored as a (2*width+1) x (2*height+1) array of
cells. Lattice cells (the border and every cell with an even coordinate) are
walls; rooms sit on odd/odd coordinates. Two lattice cells are opened as the
entrance and exit gateways.

A Carver turns a fresh Grid into a perfect maze with a randomized depth-first
walk plus a reconnection scan, yielding one CarveEvent per carved cell so that
an observer can replay the construction step by step.
*/
package maze

import (
	"errors"
	"strings"
)

const (
	minMazeDimension = 2
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")
	ErrInvalidGateway   = errors.New("invalid gateway column")
)

// Grid is a fixed-shape array of cell states indexed [row][col].
type Grid struct {
	width       int           // Number of room columns
	height      int           // Number of room rows
	cells       [][]CellState // totalHeight x totalWidth cells
	entrance    CellPosition  // Entrance gateway on the top border
	exit        CellPosition  // Exit gateway on the bottom border
	carvedRooms int           // Number of room cells in the Carved state
}

// New creates a grid of width x height rooms with the entrance above the first
// room column and the exit below the last one.
func New(width, height int) (*Grid, error) {
	return NewWithGateways(width, height, 1, 2*width-1)
}

// NewWithGateways creates a grid of width x height rooms with the gateways at
// the given grid columns. Both columns must be odd and inside the border.
func NewWithGateways(width, height, entranceCol, exitCol int) (*Grid, error) {
	if min(width, height) < minMazeDimension {
		return nil, ErrInvalidDimension
	}

	totalWidth, totalHeight := 2*width+1, 2*height+1
	validCol := func(col int) bool {
		return col > 0 && col < totalWidth-1 && col%2 == 1
	}
	if !validCol(entranceCol) || !validCol(exitCol) {
		return nil, ErrInvalidGateway
	}

	cells := make([][]CellState, totalHeight)
	for row := range cells {
		cells[row] = make([]CellState, totalWidth)
		for col := range cells[row] {
			if isLattice(row, col, totalWidth, totalHeight) {
				cells[row][col] = Wall
			} else {
				cells[row][col] = Empty
			}
		}
	}

	g := &Grid{
		width:    width,
		height:   height,
		cells:    cells,
		entrance: CellPosition{Row: 0, Col: entranceCol},
		exit:     CellPosition{Row: totalHeight - 1, Col: exitCol},
	}
	g.cells[g.entrance.Row][g.entrance.Col] = Carved
	g.cells[g.exit.Row][g.exit.Col] = Carved
	return g, nil
}

func isLattice(row, col, totalWidth, totalHeight int) bool {
	return row == 0 || row == totalHeight-1 || col == 0 || col == totalWidth-1 || row%2 == 0 || col%2 == 0
}

// Width returns the number of room columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of room rows.
func (g *Grid) Height() int { return g.height }

// TotalWidth returns the number of grid columns, walls included.
func (g *Grid) TotalWidth() int { return 2*g.width + 1 }

// TotalHeight returns the number of grid rows, walls included.
func (g *Grid) TotalHeight() int { return 2*g.height + 1 }

// Entrance returns the entrance gateway position.
func (g *Grid) Entrance() CellPosition { return g.entrance }

// Exit returns the exit gateway position.
func (g *Grid) Exit() CellPosition { return g.exit }

// InBound reports whether the position lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.TotalHeight() && col >= 0 && col < g.TotalWidth()
}

// State returns the state of the cell at the given position.
// It panics if the position is out of bounds; use InBound first.
func (g *Grid) State(row, col int) CellState {
	return g.cells[row][col]
}

// IsRoom reports whether the position is a room cell.
func (g *Grid) IsRoom(row, col int) bool {
	return g.InBound(row, col) && !isLattice(row, col, g.TotalWidth(), g.TotalHeight())
}

// RoomCount returns the number of room cells.
func (g *Grid) RoomCount() int { return g.width * g.height }

// CarvedRooms returns the number of room cells already carved.
func (g *Grid) CarvedRooms() int { return g.carvedRooms }

// Complete reports whether every room is carved.
func (g *Grid) Complete() bool { return g.carvedRooms == g.RoomCount() }

// OpenedWalls returns the number of interior lattice cells that have been
// carved, i.e. the passages between rooms. Gateways are not counted.
func (g *Grid) OpenedWalls() int {
	opened := 0
	for row := 1; row < g.TotalHeight()-1; row++ {
		for col := 1; col < g.TotalWidth()-1; col++ {
			if (row%2 == 0 || col%2 == 0) && g.cells[row][col] == Carved {
				opened++
			}
		}
	}
	return opened
}

// Snapshot returns a copy of the cell states.
func (g *Grid) Snapshot() [][]CellState {
	snapshot := make([][]CellState, len(g.cells))
	for row := range g.cells {
		snapshot[row] = append([]CellState(nil), g.cells[row]...)
	}
	return snapshot
}

// carve marks the cell Carved and reports whether it changed.
func (g *Grid) carve(pos CellPosition) bool {
	if g.cells[pos.Row][pos.Col] == Carved {
		return false
	}
	if g.IsRoom(pos.Row, pos.Col) {
		g.carvedRooms++
	}
	g.cells[pos.Row][pos.Col] = Carved
	return true
}

// String provides a textual representation of the grid:
// '#' for walls, ' ' for carved cells and '.' for rooms not reached yet.
func (g *Grid) String() string {
	return Render(g.cells)
}

// Render draws cell states with the same symbols as Grid.String.
func Render(cells [][]CellState) string {
	var output strings.Builder
	for _, row := range cells {
		for _, state := range row {
			output.WriteByte(symbol(state))
		}
		output.WriteByte('\n')
	}
	return output.String()
}

func symbol(s CellState) byte {
	switch s {
	case Wall:
		return '#'
	case Carved:
		return ' '
	default:
		return '.'
	}
}
