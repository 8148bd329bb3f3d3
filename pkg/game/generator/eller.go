package generator

import (
	"fmt"
	"log/slog"
	"math/rand"

	"mazeforge/pkg/engine/disjoint"
	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

// EllerGenerator carves a perfect maze one row at a time with Eller's
// algorithm. Only the sets of the row being carved are kept in memory.
type EllerGenerator struct {
	Logger *slog.Logger
}

// Name returns the name of this generator
func (g *EllerGenerator) Name() string {
	return "Eller"
}

func (g *EllerGenerator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

// Generate carves a new grid sized by cfg. cfg is expected to be sanitized.
func (g *EllerGenerator) Generate(cfg config.Config, rng *rand.Rand) (*world.Grid, error) {
	logger := g.logger()
	if cfg.Width <= 0 || cfg.Depth <= 0 {
		return nil, fmt.Errorf("generator: invalid dimensions %dx%d", cfg.Width, cfg.Depth)
	}

	grid := world.NewGrid(cfg.Width, cfg.Depth, cfg.CellSize)
	sets := disjoint.New(logger)
	lastRow := cfg.Depth - 1

	for y := 0; y < cfg.Depth; y++ {
		for x := 0; x < cfg.Width; x++ {
			idx := grid.Index(x, y)
			sets.MakeSet(idx)

			// Joining is random except on the last row, where every
			// remaining set has to be folded together.
			if x == 0 || !(rng.Float64() < cfg.MergeProbability || y == lastRow) {
				continue
			}
			current := sets.FindSet(idx)
			left := sets.FindSet(idx - 1)
			if current == disjoint.NoSet || left == disjoint.NoSet || current == left {
				continue
			}
			grid.OpenWall(idx, world.Left)
			sets.Merge(current, left)
		}

		if y == lastRow {
			break
		}

		// Every set keeps going upward through one random member
		for _, set := range sets.Sets() {
			members := sets.Members(set)
			member := members[rng.Intn(len(members))]
			above := grid.OpenWall(member, world.Top)
			if above == world.NoCell {
				logger.Error("carve: no cell above set member", "set", set, "cell", member)
				continue
			}
			sets.Reset(set, above)
		}
	}

	if got, want := grid.OpenEdgeCount(), grid.Len()-1; got != want {
		logger.Error("carve: maze is not a spanning tree", "open", got, "want", want)
		return nil, fmt.Errorf("%w: %d open, want %d", ErrEdgeCount, got, want)
	}

	logger.Debug("maze carved", "generator", g.Name(), "width", cfg.Width, "depth", cfg.Depth)
	return grid, nil
}
