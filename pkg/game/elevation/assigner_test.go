package elevation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

const seamTolerance = 1e-9

func newAssigner(seed int64) *Assigner {
	return NewAssigner(config.Default().Sanitize(nil), rand.New(rand.NewSource(seed)), nil)
}

func TestNextTierFollowsTransitionRules(t *testing.T) {
	allowed := map[world.Tier][]world.Tier{
		world.MinusMax: {world.MinusMax, world.MinusMin},
		world.MinusMin: {world.MinusMin, world.None, world.MinusMax},
		world.None:     {world.None, world.PlusMin, world.MinusMin},
		world.PlusMin:  {world.PlusMin, world.None, world.PlusMax},
		world.PlusMax:  {world.PlusMax, world.PlusMin},
	}

	a := newAssigner(1)
	for from, options := range allowed {
		seen := make(map[world.Tier]bool)
		for i := 0; i < 2000; i++ {
			next := a.NextTier(from)
			require.Contains(t, options, next, "from %s", from)
			seen[next] = true
		}
		assert.Len(t, seen, len(options), "from %s: every transition should occur", from)
	}
}

func TestNextTierStaysAboutAQuarterOfTheTime(t *testing.T) {
	a := newAssigner(2)
	const n = 20000
	same := 0
	for i := 0; i < n; i++ {
		if a.NextTier(world.PlusMax) == world.PlusMax {
			same++
		}
	}
	ratio := float64(same) / n
	assert.InDelta(t, 1-ChangeProbability, ratio, 0.02)
}

func TestMagnitudeStaysInBand(t *testing.T) {
	a := newAssigner(3)
	bands := world.DefaultBands()
	for _, tier := range world.AllTiers() {
		for i := 0; i < 500; i++ {
			m := a.Magnitude(tier)
			assert.True(t, bands[tier].Contains(m), "%s magnitude %v outside %v", tier, m, bands[tier])
		}
	}
	assert.Equal(t, 0.0, a.Magnitude(world.None))
}

func TestStartIsFlat(t *testing.T) {
	grid := world.NewGrid(2, 2, config.DefaultCellSize)
	cell := grid.Cell(0)
	cell.Tier = world.PlusMax
	cell.Position.Z = 12

	newAssigner(1).Start(cell)
	assert.Equal(t, world.None, cell.Tier)
	assert.Equal(t, 0.0, cell.Position.Z)
	assert.Equal(t, world.FlatQuad(config.DefaultCellSize), cell.Floor)
}

// seamGap returns the largest height difference between the corners two
// adjacent cells share in world space.
func seamGap(grid *world.Grid, from, to int) float64 {
	dir, _ := grid.DirectionTo(from, to)
	a := grid.Cell(from).WorldFloor()
	b := grid.Cell(to).WorldFloor()
	edgeA := world.EdgeCorners(dir)
	edgeB := world.EdgeCorners(dir.Opposite())

	gap := 0.0
	for i := range edgeA {
		pa, pb := a[edgeA[i]], b[edgeB[i]]
		gap = math.Max(gap, math.Abs(pa.Z-pb.Z))
		gap = math.Max(gap, math.Abs(pa.X-pb.X))
		gap = math.Max(gap, math.Abs(pa.Y-pb.Y))
	}
	return gap
}

func TestStepKeepsSeamsContinuous(t *testing.T) {
	// Walk a snake through a 4x4 grid so every direction gets used
	grid := world.NewGrid(4, 4, config.DefaultCellSize)
	var path []int
	for y := 0; y < 4; y++ {
		for i := 0; i < 4; i++ {
			x := i
			if y%2 == 1 {
				x = 3 - i
			}
			path = append(path, grid.Index(x, y))
		}
	}
	// then back down the first column
	path = append(path, grid.Index(0, 2), grid.Index(0, 1))

	a := newAssigner(11)
	a.Start(grid.Cell(path[0]))
	for i := 1; i < len(path); i++ {
		// revisits re-derive the cell from its new parent
		require.NoError(t, a.Step(grid, path[i-1], path[i]))
		assert.LessOrEqual(t, seamGap(grid, path[i-1], path[i]), seamTolerance, "step %d -> %d", path[i-1], path[i])
	}
}

func TestStepSetsHeightFromParent(t *testing.T) {
	cfg := config.Default().Sanitize(nil)
	grid := world.NewGrid(2, 1, cfg.CellSize)
	a := NewAssigner(cfg, rand.New(rand.NewSource(4)), nil)
	a.Start(grid.Cell(0))
	grid.Cell(0).Position.Z = 5

	require.NoError(t, a.Step(grid, 0, 1))
	next := grid.Cell(1)
	assert.InDelta(t, 5+next.Offset/cfg.ElevationRatio, next.Position.Z, seamTolerance)
	assert.True(t, cfg.Bands[next.Tier].Contains(next.Offset))

	// far edge of the new floor is level with the cell origin
	for _, c := range world.EdgeCorners(world.Right) {
		assert.Equal(t, 0.0, next.Floor[c].Z)
	}
}

func TestStepRejectsDistantCells(t *testing.T) {
	grid := world.NewGrid(3, 3, config.DefaultCellSize)
	a := newAssigner(1)
	assert.ErrorIs(t, a.Step(grid, 0, 8), ErrNotAdjacent)
	assert.ErrorIs(t, a.Step(grid, 0, 99), ErrNotAdjacent)
}
