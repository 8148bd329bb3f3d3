// Package setup runs the maze generation pipeline: carve the maze, place the
// start, search for the exit while raising the terraces, choose the key and
// paint the regions.
package setup

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"mazeforge/pkg/game/config"
	"mazeforge/pkg/game/elevation"
	"mazeforge/pkg/game/generator"
	"mazeforge/pkg/game/pathing"
	"mazeforge/pkg/game/regions"
	"mazeforge/pkg/game/state"
)

// ErrNoAttempts is returned by GenerateWithRetry when asked for zero attempts
var ErrNoAttempts = errors.New("setup: no generation attempts allowed")

// Generate builds a complete level from cfg and seed. cfg is sanitized
// first; a nil logger discards diagnostics. On failure no level is returned.
func Generate(cfg config.Config, seed int64, logger *slog.Logger) (*state.Level, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg = cfg.Sanitize(logger)
	rng := rand.New(rand.NewSource(seed))
	log := logger.With("seed", seed)

	carver := &generator.EllerGenerator{Logger: log}
	grid, err := carver.Generate(cfg, rng)
	if err != nil {
		return nil, err
	}
	level := state.NewLevel(grid, cfg, seed)

	// Start anywhere along the first row
	start := grid.Index(rng.Intn(cfg.Width), 0)
	grid.SetStartCell(start)
	level.Start = start

	heights := elevation.NewAssigner(cfg, rng, log)
	heights.Start(grid.Cell(start))

	finder := &pathing.Finder{Step: heights.Step, Logger: log}
	res, err := finder.ExitAndKey(grid, start)
	if err != nil {
		return nil, err
	}
	grid.SetExitCell(res.Exit)
	grid.SetKeyCell(res.Key)
	level.Exit = res.Exit
	level.Key = res.Key
	level.ExitPath = res.ExitPath

	seeds, err := regions.NewColorer(cfg, rng, log).Paint(grid, res.Exit, res.Key)
	if err != nil {
		return nil, err
	}
	level.Seeds = seeds.Cells()

	if problem := CheckSolvable(level); problem != "" {
		log.Error("generated level is not solvable", "problem", problem)
		return nil, fmt.Errorf("setup: %s", problem)
	}

	log.Info("level generated",
		"layout", level.LayoutID.String(),
		"width", cfg.Width, "depth", cfg.Depth,
		"start", start, "exit", res.Exit, "key", res.Key,
		"exit_depth", res.Depth)
	return level, nil
}

// GenerateWithRetry calls Generate with seed, seed+1, ... until a level comes
// out or attempts run out. Only a missing key candidate is retried; any other
// error is returned at once.
func GenerateWithRetry(cfg config.Config, seed int64, attempts int, logger *slog.Logger) (*state.Level, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if attempts <= 0 {
		return nil, ErrNoAttempts
	}

	var err error
	for n := 0; n < attempts; n++ {
		var level *state.Level
		level, err = Generate(cfg, seed+int64(n), logger)
		if err == nil {
			level.Attempts = n + 1
			return level, nil
		}
		if !errors.Is(err, pathing.ErrNoKeyCandidate) {
			return nil, err
		}
		logger.Warn("degenerate layout, regenerating", "seed", seed+int64(n), "attempt", n+1, "error", err)
	}
	return nil, fmt.Errorf("setup: gave up after %d attempts: %w", attempts, err)
}
