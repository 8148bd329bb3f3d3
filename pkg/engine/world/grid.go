package world

import (
	"fmt"
)

// Grid represents the maze with row-major cell storage
type Grid struct {
	cells    []Cell
	width    int
	depth    int
	cellSize float64

	startCell int
	exitCell  int
	keyCell   int
}

// NewGrid creates a new grid of closed cells with the given dimensions
func NewGrid(width, depth int, cellSize float64) *Grid {
	g := &Grid{}
	g.Build(width, depth, cellSize)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, depth int, cellSize float64) {
	if width <= 0 || depth <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.depth = depth
	g.cellSize = cellSize
	g.startCell = NoCell
	g.exitCell = NoCell
	g.keyCell = NoCell

	g.cells = make([]Cell, width*depth)
	for y := 0; y < depth; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			g.cells[idx] = NewCell(idx, x, y, cellSize)
		}
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Depth returns the number of rows in the grid
func (g *Grid) Depth() int {
	return g.depth
}

// CellSize returns the side length of a cell in world units
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Len returns the number of cells
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index returns the row-major index of (x, y), or NoCell if out of bounds
func (g *Grid) Index(x, y int) int {
	if !g.IsValidPosition(x, y) {
		return NoCell
	}
	return y*g.width + x
}

// Coords returns the x and y position of a cell index
func (g *Grid) Coords(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.depth
}

// IsValidIndex checks if idx addresses a cell of this grid
func (g *Grid) IsValidIndex(idx int) bool {
	return idx >= 0 && idx < len(g.cells)
}

// Cell returns the cell at the given index, or nil if out of bounds
func (g *Grid) Cell(idx int) *Cell {
	if !g.IsValidIndex(idx) {
		return nil
	}
	return &g.cells[idx]
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(x, y int) *Cell {
	return g.Cell(g.Index(x, y))
}

// CellInDirection returns the index of the cell adjacent to idx in dir,
// or NoCell when that would leave the grid
func (g *Grid) CellInDirection(idx int, dir Direction) int {
	if !g.IsValidIndex(idx) || !dir.IsValid() {
		return NoCell
	}
	x, y := g.Coords(idx)
	dx, dy := dir.Delta()
	return g.Index(x+dx, y+dy)
}

// DirectionTo returns the direction leading from cell a to the adjacent cell b
func (g *Grid) DirectionTo(a, b int) (Direction, bool) {
	if !g.IsValidIndex(a) || !g.IsValidIndex(b) {
		return Left, false
	}
	ax, ay := g.Coords(a)
	bx, by := g.Coords(b)
	return DirectionBetween(ax, ay, bx, by)
}

// OpenWall breaks the wall between idx and its neighbour in dir, on both
// sides, and links the two cells as neighbours. Returns the neighbour index,
// or NoCell if there is no cell in that direction. Opening an already open
// wall is a no-op.
func (g *Grid) OpenWall(idx int, dir Direction) int {
	adj := g.CellInDirection(idx, dir)
	if adj == NoCell {
		return NoCell
	}

	current := &g.cells[idx]
	other := &g.cells[adj]
	if current.Open[dir] {
		return adj
	}

	current.Open[dir] = true
	other.Open[dir.Opposite()] = true
	current.Neighbours = append(current.Neighbours, adj)
	other.Neighbours = append(other.Neighbours, idx)
	return adj
}

// OpenEdgeCount returns the number of broken walls between cell pairs
func (g *Grid) OpenEdgeCount() int {
	n := 0
	for i := range g.cells {
		n += len(g.cells[i].Neighbours)
	}
	return n / 2
}

// ForEachCell iterates over all cells in index order
func (g *Grid) ForEachCell(fn func(idx int, cell *Cell)) {
	for i := range g.cells {
		fn(i, &g.cells[i])
	}
}

// ResetTraversal clears the visited flags and histories of all cells
func (g *Grid) ResetTraversal() {
	for i := range g.cells {
		g.cells[i].Visited = false
		g.cells[i].History = nil
	}
}

// StartCell returns the starting cell index
func (g *Grid) StartCell() int {
	return g.startCell
}

// ExitCell returns the exit cell index
func (g *Grid) ExitCell() int {
	return g.exitCell
}

// KeyCell returns the key cell index
func (g *Grid) KeyCell() int {
	return g.keyCell
}

// SetStartCell sets the starting cell. Returns false if idx is out of bounds.
func (g *Grid) SetStartCell(idx int) bool {
	if !g.IsValidIndex(idx) {
		return false
	}
	g.startCell = idx
	return true
}

// SetExitCell sets the exit cell and marks it as an exit. Returns false if idx is out of bounds.
func (g *Grid) SetExitCell(idx int) bool {
	if !g.IsValidIndex(idx) {
		return false
	}
	if g.exitCell != NoCell {
		g.cells[g.exitCell].ExitCell = false
	}
	g.exitCell = idx
	g.cells[idx].ExitCell = true
	return true
}

// SetKeyCell sets the key cell and marks it. Returns false if idx is out of bounds.
func (g *Grid) SetKeyCell(idx int) bool {
	if !g.IsValidIndex(idx) {
		return false
	}
	if g.keyCell != NoCell {
		g.cells[g.keyCell].KeyCell = false
	}
	g.keyCell = idx
	g.cells[idx].KeyCell = true
	return true
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.depth <= 0 {
		return "Grid has invalid dimensions"
	}

	if want := len(g.cells) - 1; g.OpenEdgeCount() != want {
		return fmt.Sprintf("Grid has %d open walls, want %d", g.OpenEdgeCount(), want)
	}

	for i := range g.cells {
		cell := &g.cells[i]
		for _, dir := range AllDirections() {
			if !cell.Open[dir] {
				continue
			}
			adj := g.CellInDirection(i, dir)
			if adj == NoCell {
				return fmt.Sprintf("Cell %d has an open %s wall on the border", i, dir)
			}
			if !g.cells[adj].Open[dir.Opposite()] {
				return fmt.Sprintf("Cell %d and %d disagree on their shared wall", i, adj)
			}
			if !cell.HasNeighbour(adj) || !g.cells[adj].HasNeighbour(i) {
				return fmt.Sprintf("Cell %d and %d are not linked as neighbours", i, adj)
			}
		}
		if len(cell.Neighbours) != cell.OpenCount() {
			return fmt.Sprintf("Cell %d has %d neighbours but %d open walls", i, len(cell.Neighbours), cell.OpenCount())
		}
	}

	if g.startCell != NoCell && g.exitCell != NoCell && g.startCell == g.exitCell && len(g.cells) > 1 {
		return "Exit cell is the start cell"
	}

	if g.exitCell != NoCell && g.keyCell != NoCell && g.exitCell == g.keyCell {
		return "Key cell is the exit cell"
	}

	return ""
}
