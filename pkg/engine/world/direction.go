package world

// Direction represents one of the four walls of a cell
type Direction int

// Direction constants. Right is +X, Top is +Y (the next row).
const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{Left, Right, Top, Bottom}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the four walls
func (d Direction) IsValid() bool {
	return d >= Left && d <= Bottom
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	case Bottom:
		return Top
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Top:
		return 0, 1
	case Bottom:
		return 0, -1
	default:
		return 0, 0
	}
}

// DirectionBetween returns the direction leading from a cell at (fromX, fromY)
// to an orthogonally adjacent cell at (toX, toY). The second result is false
// when the two positions are not adjacent.
func DirectionBetween(fromX, fromY, toX, toY int) (Direction, bool) {
	for _, dir := range AllDirections() {
		dx, dy := dir.Delta()
		if fromX+dx == toX && fromY+dy == toY {
			return dir, true
		}
	}
	return Left, false
}
