package maze

// CellState is the state of a single grid cell.
type CellState uint8

const (
	// Empty is a room cell the walk has not reached yet.
	Empty CellState = iota
	// Wall is a lattice cell. It is never carved, except for the gateways.
	Wall
	// Carved is a cell that is part of the connected maze.
	Carved
)

// String returns the name of the state.
func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Carved:
		return "carved"
	default:
		return "unknown"
	}
}

// CellPosition represents the position of a cell in the grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// step returns the position n cells away in direction d.
func (p CellPosition) step(d Direction, n int) CellPosition {
	delta := directionDeltas[d]
	return CellPosition{Row: p.Row + delta.Row*n, Col: p.Col + delta.Col*n}
}

// Direction is a compass direction probed by the carver.
type Direction int

// Directions in rotation order. The carver walks them as (start + k*stride) mod 4.
// Rows grow toward Top: the entrance row is the bottom edge. Render prints row 0
// first, so printed grids show that frame upside down.
const (
	Top Direction = iota
	Right
	Bottom
	Left

	directionCount = 4
)

var directionDeltas = [directionCount]CellPosition{
	Top:    {Row: 1, Col: 0},
	Right:  {Row: 0, Col: 1},
	Bottom: {Row: -1, Col: 0},
	Left:   {Row: 0, Col: -1},
}

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// CarveEvent reports a cell that has just transitioned to Carved.
type CarveEvent struct {
	Row int
	Col int
}
