package world

// Vec3 is a point in world or cell-local space. Z is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Corner identifies one vertex of a cell's floor quad
type Corner int

// Corner constants. Bottom is the -Y side, Left the -X side.
const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

// Quad holds the four local-space floor vertices of a cell, indexed by Corner
type Quad [4]Vec3

// FlatQuad returns a level floor quad of the given side length
func FlatQuad(size float64) Quad {
	return Quad{
		BottomLeft:  {X: 0, Y: 0},
		BottomRight: {X: size, Y: 0},
		TopLeft:     {X: 0, Y: size},
		TopRight:    {X: size, Y: size},
	}
}

// EdgeCorners returns the two corners lying on the wall in direction dir.
// The pair is ordered so that EdgeCorners(d)[i] of one cell touches
// EdgeCorners(d.Opposite())[i] of the neighbour across that wall.
func EdgeCorners(dir Direction) [2]Corner {
	switch dir {
	case Left:
		return [2]Corner{BottomLeft, TopLeft}
	case Right:
		return [2]Corner{BottomRight, TopRight}
	case Top:
		return [2]Corner{TopLeft, TopRight}
	default:
		return [2]Corner{BottomLeft, BottomRight}
	}
}
