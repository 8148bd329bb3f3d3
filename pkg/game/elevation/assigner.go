// Package elevation gives each cell reached during the exit search a terrace
// height. Heights follow a random walk over the five tiers, and every floor
// quad is bent so that it meets the floor of the cell it was reached from.
package elevation

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

// Transition odds of the tier walk
const (
	ChangeProbability   = 0.75
	RiseFromNone        = 0.5
	CollapseProbability = 1.0 / 3.0
)

// ErrNotAdjacent is returned by Step when the two cells do not share a wall
var ErrNotAdjacent = errors.New("elevation: cells are not adjacent")

// Assigner draws tiers and heights for newly reached cells
type Assigner struct {
	rng      *rand.Rand
	bands    world.Bands
	ratio    float64
	cellSize float64
	logger   *slog.Logger
}

// NewAssigner returns an assigner using cfg's bands, elevation ratio and cell
// size. cfg is expected to be sanitized.
func NewAssigner(cfg config.Config, rng *rand.Rand, logger *slog.Logger) *Assigner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assigner{
		rng:      rng,
		bands:    cfg.Bands,
		ratio:    cfg.ElevationRatio,
		cellSize: cfg.CellSize,
		logger:   logger,
	}
}

// Start levels the start cell: tier None, height 0 and a flat floor
func (a *Assigner) Start(cell *world.Cell) {
	cell.Tier = world.None
	cell.Offset = 0
	cell.Position.Z = 0
	cell.Floor = world.FlatQuad(a.cellSize)
}

// NextTier returns the tier of a cell reached from a cell on tier current
func (a *Assigner) NextTier(current world.Tier) world.Tier {
	if a.rng.Float64() >= ChangeProbability {
		return current
	}

	switch current {
	case world.MinusMax:
		return world.MinusMin
	case world.PlusMax:
		return world.PlusMin
	case world.None:
		if a.rng.Float64() < RiseFromNone {
			return world.PlusMin
		}
		return world.MinusMin
	case world.MinusMin:
		if a.rng.Float64() < CollapseProbability {
			return world.None
		}
		return world.MinusMax
	case world.PlusMin:
		if a.rng.Float64() < CollapseProbability {
			return world.None
		}
		return world.PlusMax
	default:
		a.logger.Error("elevation: unknown tier", "tier", current.String())
		return current
	}
}

// Magnitude draws a height uniformly from tier's band
func (a *Assigner) Magnitude(tier world.Tier) float64 {
	band, ok := a.bands[tier]
	if !ok {
		a.logger.Error("elevation: no band for tier", "tier", tier.String())
		return 0
	}
	if band.Width() == 0 {
		return band.Min
	}
	return band.Min + a.rng.Float64()*band.Width()
}

// Step assigns the cell at to, reached from the cell at from, its tier,
// height, world position and floor quad.
func (a *Assigner) Step(grid *world.Grid, from, to int) error {
	current := grid.Cell(from)
	next := grid.Cell(to)
	if current == nil || next == nil {
		return fmt.Errorf("elevation: step %d -> %d: %w", from, to, ErrNotAdjacent)
	}
	dir, ok := grid.DirectionTo(from, to)
	if !ok {
		a.logger.Error("elevation: step between cells that do not touch", "from", from, "to", to)
		return fmt.Errorf("elevation: step %d -> %d: %w", from, to, ErrNotAdjacent)
	}

	next.Tier = a.NextTier(current.Tier)
	next.Offset = a.Magnitude(next.Tier)

	rise := next.Offset / a.ratio
	next.Position.Z = current.Position.Z + rise
	next.Floor = SeamQuad(current.Floor, dir, -rise, a.cellSize)
	return nil
}

// SeamQuad builds the floor of a cell entered through dir from a cell whose
// floor is prev. The edge shared with prev sits at drop plus prev's height
// there; the rest of the floor is level at 0.
func SeamQuad(prev world.Quad, dir world.Direction, drop, size float64) world.Quad {
	q := world.FlatQuad(size)
	shared := world.EdgeCorners(dir.Opposite())
	prevEdge := world.EdgeCorners(dir)
	for i := range shared {
		q[shared[i]].Z = drop + prev[prevEdge[i]].Z
	}
	return q
}
