// Package world provides the 2D maze grid primitives shared by the
// generation pipeline. Cells refer to each other by grid index only.
package world

import (
	"github.com/gookit/color"
)

// NoCell is the sentinel index returned when a cell lookup or search fails
const NoCell = -1

// Unset is the color a cell carries before region coloring reaches it.
// gookit/color marks any RGBColor whose fourth byte is above 1 as empty.
var Unset = color.RGBColor{3: 99}

// Cell represents a single cell of the maze grid
type Cell struct {
	// Grid position; Index = Y*Width + X
	Index int
	X     int
	Y     int

	// Open walls, indexed by Direction
	Open [4]bool

	// Navigation - indices of cells reachable through an open wall
	Neighbours []int

	// Path of ancestor indices from the start cell, oldest first
	History []int

	Visited bool

	// Elevation state
	Tier     Tier
	Offset   float64 // magnitude drawn from the tier's band
	Position Vec3    // world position of the cell's origin corner
	Floor    Quad    // local floor vertices relative to Position

	Color color.RGBColor

	// Cell type flags
	ExitCell bool
	KeyCell  bool
}

// NewCell creates a new closed cell at the given position
func NewCell(index, x, y int, size float64) Cell {
	return Cell{
		Index:    index,
		X:        x,
		Y:        y,
		Tier:     None,
		Position: Vec3{X: float64(x) * size, Y: float64(y) * size},
		Floor:    FlatQuad(size),
		Color:    Unset,
	}
}

// IsOpen returns true if the wall in the given direction has been broken
func (c *Cell) IsOpen(dir Direction) bool {
	if !dir.IsValid() {
		return false
	}
	return c.Open[dir]
}

// OpenCount returns how many walls of the cell are open
func (c *Cell) OpenCount() int {
	n := 0
	for _, open := range c.Open {
		if open {
			n++
		}
	}
	return n
}

// HasNeighbour returns true if idx is reachable from this cell in one step
func (c *Cell) HasNeighbour(idx int) bool {
	for _, n := range c.Neighbours {
		if n == idx {
			return true
		}
	}
	return false
}

// IsBranching returns true if the cell joins more than two corridors
func (c *Cell) IsBranching() bool {
	return len(c.Neighbours) > 2
}

// HasColor returns true once region coloring has assigned the cell a color
func (c *Cell) HasColor() bool {
	return !c.Color.IsEmpty()
}

// SetHistory replaces the cell's history with parent's history followed by parent
func (c *Cell) SetHistory(parentHistory []int, parent int) {
	h := make([]int, 0, len(parentHistory)+1)
	h = append(h, parentHistory...)
	c.History = append(h, parent)
}

// WorldFloor returns the floor vertices in world space
func (c *Cell) WorldFloor() Quad {
	var q Quad
	for i, v := range c.Floor {
		q[i] = c.Position.Add(v)
	}
	return q
}
