package world

import (
	"testing"
)

func TestGridIndexAndCoords(t *testing.T) {
	g := NewGrid(4, 3, 10)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			idx := g.Index(x, y)
			if idx != y*4+x {
				t.Errorf("Index(%d,%d) = %d, want %d", x, y, idx, y*4+x)
			}
			gx, gy := g.Coords(idx)
			if gx != x || gy != y {
				t.Errorf("Coords(%d) = (%d,%d), want (%d,%d)", idx, gx, gy, x, y)
			}
			cell := g.Cell(idx)
			if cell.Index != idx || cell.X != x || cell.Y != y {
				t.Errorf("cell %d has identity (%d,%d,%d)", idx, cell.Index, cell.X, cell.Y)
			}
			if cell.Position.X != float64(x)*10 || cell.Position.Y != float64(y)*10 {
				t.Errorf("cell %d position = %+v", idx, cell.Position)
			}
		}
	}
	if g.Index(-1, 0) != NoCell || g.Index(4, 0) != NoCell || g.Index(0, 3) != NoCell {
		t.Error("Index out of bounds should return NoCell")
	}
	if g.Cell(12) != nil {
		t.Error("Cell(12) on a 4x3 grid should be nil")
	}
}

func TestNewGridCellsStartClosedAndUncolored(t *testing.T) {
	g := NewGrid(2, 2, 5)
	g.ForEachCell(func(idx int, cell *Cell) {
		if cell.OpenCount() != 0 {
			t.Errorf("cell %d has %d open walls, want 0", idx, cell.OpenCount())
		}
		if cell.HasColor() {
			t.Errorf("cell %d has a color before coloring", idx)
		}
		if cell.Tier != None {
			t.Errorf("cell %d tier = %v, want None", idx, cell.Tier)
		}
	})
	if g.StartCell() != NoCell || g.ExitCell() != NoCell || g.KeyCell() != NoCell {
		t.Error("new grid should have no start, exit or key cell")
	}
}

func TestOpenWallIsSymmetric(t *testing.T) {
	g := NewGrid(3, 3, 10)
	center := g.Index(1, 1)

	for _, dir := range AllDirections() {
		adj := g.OpenWall(center, dir)
		if adj == NoCell {
			t.Fatalf("OpenWall(center, %v) = NoCell", dir)
		}
		if !g.Cell(center).IsOpen(dir) {
			t.Errorf("center %v wall still closed", dir)
		}
		if !g.Cell(adj).IsOpen(dir.Opposite()) {
			t.Errorf("neighbour %v wall still closed", dir.Opposite())
		}
		if !g.Cell(center).HasNeighbour(adj) || !g.Cell(adj).HasNeighbour(center) {
			t.Errorf("center and %d are not mutual neighbours", adj)
		}
	}

	// Opening the same wall twice must not duplicate links
	g.OpenWall(center, Left)
	if got := len(g.Cell(center).Neighbours); got != 4 {
		t.Errorf("len(Neighbours) = %d, want 4", got)
	}
	if got := g.OpenEdgeCount(); got != 4 {
		t.Errorf("OpenEdgeCount() = %d, want 4", got)
	}
}

func TestOpenWallOnBorder(t *testing.T) {
	g := NewGrid(2, 2, 10)
	if adj := g.OpenWall(g.Index(0, 0), Left); adj != NoCell {
		t.Errorf("OpenWall on the left border = %d, want NoCell", adj)
	}
	if adj := g.OpenWall(g.Index(0, 0), Bottom); adj != NoCell {
		t.Errorf("OpenWall on the bottom border = %d, want NoCell", adj)
	}
	if g.Cell(0).OpenCount() != 0 {
		t.Error("border wall should stay closed")
	}
}

func TestDirectionTo(t *testing.T) {
	g := NewGrid(3, 3, 10)
	center := g.Index(1, 1)
	for _, dir := range AllDirections() {
		adj := g.CellInDirection(center, dir)
		got, ok := g.DirectionTo(center, adj)
		if !ok || got != dir {
			t.Errorf("DirectionTo(center, %d) = %v,%v, want %v", adj, got, ok, dir)
		}
	}
	if _, ok := g.DirectionTo(g.Index(0, 0), g.Index(2, 2)); ok {
		t.Error("DirectionTo between non-adjacent cells should fail")
	}
}

func TestSetExitAndKeyCellMoveFlags(t *testing.T) {
	g := NewGrid(3, 1, 10)
	g.SetExitCell(1)
	g.SetExitCell(2)
	if g.Cell(1).ExitCell {
		t.Error("previous exit cell still flagged")
	}
	if !g.Cell(2).ExitCell || g.ExitCell() != 2 {
		t.Error("exit cell 2 not flagged")
	}
	if g.SetKeyCell(7) {
		t.Error("SetKeyCell(7) on a 3-cell grid should fail")
	}
	g.SetKeyCell(0)
	if !g.Cell(0).KeyCell || g.KeyCell() != 0 {
		t.Error("key cell 0 not flagged")
	}
}

func TestValidateDetectsMissingEdges(t *testing.T) {
	g := NewGrid(3, 1, 10)
	g.OpenWall(0, Right)
	if msg := g.Validate(); msg == "" {
		t.Error("Validate() on a disconnected grid = \"\", want an error")
	}
	g.OpenWall(1, Right)
	if msg := g.Validate(); msg != "" {
		t.Errorf("Validate() = %q, want \"\"", msg)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, dir := range AllDirections() {
		if dir.Opposite().Opposite() != dir {
			t.Errorf("%v.Opposite().Opposite() = %v", dir, dir.Opposite().Opposite())
		}
		dx, dy := dir.Delta()
		ox, oy := dir.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%v and its opposite do not cancel out", dir)
		}
	}
}

func TestEdgeCornersTouch(t *testing.T) {
	const size = 10.0
	flat := FlatQuad(size)
	for _, dir := range AllDirections() {
		dx, dy := dir.Delta()
		offset := Vec3{X: float64(dx) * size, Y: float64(dy) * size}
		mine := EdgeCorners(dir)
		theirs := EdgeCorners(dir.Opposite())
		for i := 0; i < 2; i++ {
			a := flat[mine[i]]
			b := flat[theirs[i]].Add(offset)
			if a != b {
				t.Errorf("%v edge corner %d: %+v does not touch %+v", dir, i, a, b)
			}
		}
	}
}
