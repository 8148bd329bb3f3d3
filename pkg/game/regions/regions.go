// Package regions splits a finished maze into colored areas. One seed cell is
// sampled per square block of the grid and every other cell takes the color of
// the seed closest to it by walking distance. The exit and key cells, along
// with the seeds closest to them, get fixed landmark colors.
package regions

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

var (
	// ErrNoReachableSeed is returned when a cell cannot walk to any seed
	ErrNoReachableSeed = errors.New("regions: no seed reachable")
	// ErrNoSeeds is returned when coloring is asked for without seeds
	ErrNoSeeds = errors.New("regions: no seed points")
)

// Colorer assigns region colors to the cells of a grid
type Colorer struct {
	rng       *rand.Rand
	blockSize int
	palette   []color.RGBColor
	exitColor color.RGBColor
	keyColor  color.RGBColor
	logger    *slog.Logger
}

// NewColorer returns a colorer for cfg, which is expected to be sanitized
func NewColorer(cfg config.Config, rng *rand.Rand, logger *slog.Logger) *Colorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Colorer{
		rng:       rng,
		blockSize: cfg.VoronoiCellSize,
		palette:   cfg.Palette,
		exitColor: cfg.ExitColor,
		keyColor:  cfg.KeyColor,
		logger:    logger,
	}
}

// Seeds is the ordered set of sampled seed cells
type Seeds struct {
	cells []int
	set   mapset.Set[int]
}

// NewSeeds returns a seed set holding cells in the given order
func NewSeeds(cells ...int) *Seeds {
	s := &Seeds{set: mapset.New[int]()}
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Add appends cell unless it is already a seed
func (s *Seeds) Add(cell int) {
	if s.set.Has(cell) {
		return
	}
	s.set.Put(cell)
	s.cells = append(s.cells, cell)
}

// Has reports whether cell is a seed
func (s *Seeds) Has(cell int) bool {
	return s.set.Has(cell)
}

// Cells returns the seeds in sampling order
func (s *Seeds) Cells() []int {
	return s.cells
}

// Len returns the number of seeds
func (s *Seeds) Len() int {
	return len(s.cells)
}

// SampleSeeds picks one random cell in every block of the grid, block rows
// first, and gives it a random palette color.
func (c *Colorer) SampleSeeds(grid *world.Grid) *Seeds {
	size := c.blockSize
	if size <= 0 || grid.Width()%size != 0 || grid.Depth()%size != 0 {
		c.logger.Warn("block size does not divide the grid, sampling every cell", "size", size)
		size = 1
	}

	seeds := NewSeeds()
	for by := 0; by < grid.Depth()/size; by++ {
		for bx := 0; bx < grid.Width()/size; bx++ {
			y := by*size + c.rng.Intn(size)
			x := bx*size + c.rng.Intn(size)
			idx := grid.Index(x, y)
			if idx == world.NoCell {
				c.logger.Error("sample seeds: cell out of bounds", "x", x, "y", y)
				continue
			}
			grid.Cell(idx).Color = c.palette[c.rng.Intn(len(c.palette))]
			seeds.Add(idx)
		}
	}
	return seeds
}

// ClosestSeed walks outward from start one ring at a time until a ring holds
// at least one seed, and returns that seed with the walk from start to it.
// When several seeds share the ring, the colors already on start's
// neighbours decide; see pickTied.
func (c *Colorer) ClosestSeed(grid *world.Grid, start int, seeds *Seeds) (int, []int, error) {
	if seeds.Len() == 0 {
		return world.NoCell, nil, ErrNoSeeds
	}
	if !grid.IsValidIndex(start) {
		return world.NoCell, nil, fmt.Errorf("regions: start %d out of bounds", start)
	}
	if seeds.Has(start) {
		return start, []int{start}, nil
	}

	parent := map[int]int{start: world.NoCell}
	visited := mapset.New[int]()
	work := queue.New[int]()
	visited.Put(start)
	work.Enqueue(start)

	var tied []int
	ring := 1
	for len(tied) == 0 && ring > 0 {
		next := 0
		for ; ring > 0; ring-- {
			current := work.Dequeue()
			for _, n := range grid.Cell(current).Neighbours {
				if visited.Has(n) {
					continue
				}
				visited.Put(n)
				parent[n] = current
				if seeds.Has(n) {
					tied = append(tied, n)
				}
				work.Enqueue(n)
				next++
			}
		}
		ring = next
	}

	if len(tied) == 0 {
		c.logger.Error("closest seed: no seed reachable", "cell", start)
		return world.NoCell, nil, fmt.Errorf("%w from cell %d", ErrNoReachableSeed, start)
	}

	seed := tied[0]
	if len(tied) > 1 {
		seed = c.pickTied(grid, start, tied)
	}
	return seed, walkBack(parent, seed), nil
}

// pickTied chooses between seeds at the same distance from cell. If one
// color is strictly most common among the cell's colored neighbours, the
// first tied seed of that color wins, otherwise the first tied seed does.
// With no colored neighbour the pick is random.
func (c *Colorer) pickTied(grid *world.Grid, cell int, tied []int) int {
	counts := make(map[color.RGBColor]int)
	for _, n := range grid.Cell(cell).Neighbours {
		if nc := grid.Cell(n); nc.HasColor() {
			counts[nc.Color]++
		}
	}
	if len(counts) == 0 {
		return tied[c.rng.Intn(len(tied))]
	}

	best, bestCount, unique := world.Unset, 0, false
	for col, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, unique = col, n, true
		case n == bestCount:
			unique = false
		}
	}
	if unique {
		for _, s := range tied {
			if grid.Cell(s).Color == best {
				return s
			}
		}
	}
	return tied[0]
}

func walkBack(parent map[int]int, to int) []int {
	var path []int
	for at := to; at != world.NoCell; at = parent[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Paint colors every cell of grid and returns the sampled seeds. The exit,
// the key and the seeds closest to each take the landmark colors.
func (c *Colorer) Paint(grid *world.Grid, exit, key int) (*Seeds, error) {
	if !grid.IsValidIndex(exit) || !grid.IsValidIndex(key) {
		return nil, fmt.Errorf("regions: exit %d or key %d out of bounds", exit, key)
	}

	seeds := c.SampleSeeds(grid)
	if seeds.Len() == 0 {
		return nil, ErrNoSeeds
	}

	grid.Cell(exit).Color = c.exitColor
	grid.Cell(key).Color = c.keyColor
	for _, landmark := range []struct {
		cell int
		col  color.RGBColor
	}{{exit, c.exitColor}, {key, c.keyColor}} {
		seed, _, err := c.ClosestSeed(grid, landmark.cell, seeds)
		if err != nil {
			return nil, err
		}
		grid.Cell(seed).Color = landmark.col
	}

	for idx := 0; idx < grid.Len(); idx++ {
		if idx == exit || idx == key || seeds.Has(idx) {
			continue
		}
		seed, _, err := c.ClosestSeed(grid, idx, seeds)
		if err != nil {
			return nil, err
		}
		grid.Cell(idx).Color = grid.Cell(seed).Color
	}

	c.logger.Debug("regions painted", "seeds", seeds.Len())
	return seeds, nil
}
