package setup

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
	"mazeforge/pkg/game/pathing"
)

func sizedConfig(width, depth int) config.Config {
	cfg := config.Default()
	cfg.Width = width
	cfg.Depth = depth
	return cfg
}

func TestGenerateWithRetryIsReproducible(t *testing.T) {
	cfg := sizedConfig(8, 6)
	a, err := GenerateWithRetry(cfg, 1234, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	b, err := GenerateWithRetry(cfg, 1234, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}

	if a.Start != b.Start || a.Exit != b.Exit || a.Key != b.Key {
		t.Errorf("landmarks differ: %d/%d/%d vs %d/%d/%d", a.Start, a.Exit, a.Key, b.Start, b.Exit, b.Key)
	}
	if a.LayoutID != b.LayoutID {
		t.Errorf("LayoutID = %v and %v, want equal", a.LayoutID, b.LayoutID)
	}
	if len(a.Seeds) != len(b.Seeds) {
		t.Fatalf("seed counts differ: %d vs %d", len(a.Seeds), len(b.Seeds))
	}
	a.Grid.ForEachCell(func(idx int, ca *world.Cell) {
		cb := b.Grid.Cell(idx)
		if ca.Open != cb.Open || ca.Tier != cb.Tier || ca.Offset != cb.Offset ||
			ca.Color != cb.Color || ca.Position != cb.Position || ca.Floor != cb.Floor {
			t.Errorf("cell %d differs between runs", idx)
		}
	})
}

func TestGenerateDifferentSeedsDifferentLayouts(t *testing.T) {
	cfg := sizedConfig(8, 8)
	a, err := GenerateWithRetry(cfg, 1, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	b, err := GenerateWithRetry(cfg, 1000, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	if a.LayoutID == b.LayoutID {
		t.Errorf("seeds 1 and 1000 share layout %v", a.LayoutID)
	}
}

func TestGeneratedLevelsAreSolvable(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		level, err := GenerateWithRetry(sizedConfig(7, 9), seed*31, 10, nil)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if problem := CheckSolvable(level); problem != "" {
			t.Errorf("seed %d: %s", seed, problem)
		}
		grid := level.Grid
		if grid.StartCell() != level.Start || grid.ExitCell() != level.Exit || grid.KeyCell() != level.Key {
			t.Errorf("seed %d: grid landmarks do not match level", seed)
		}
		if !grid.Cell(level.Exit).ExitCell || !grid.Cell(level.Key).KeyCell {
			t.Errorf("seed %d: exit or key flag not set", seed)
		}
		if _, y := grid.Coords(level.Start); y != 0 {
			t.Errorf("seed %d: start on row %d, want 0", seed, y)
		}
		if grid.Cell(level.Start).Tier != world.None || grid.Cell(level.Start).Position.Z != 0 {
			t.Errorf("seed %d: start cell is not level", seed)
		}
		if level.Exit != level.ExitPath[len(level.ExitPath)-1] || level.Start != level.ExitPath[0] {
			t.Errorf("seed %d: exit path %v does not run from start to exit", seed, level.ExitPath)
		}
	}
}

func TestGeneratedFloorsMeetAtSeams(t *testing.T) {
	level, err := GenerateWithRetry(sizedConfig(10, 10), 77, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	grid := level.Grid
	grid.ForEachCell(func(idx int, cell *world.Cell) {
		if idx == level.Start {
			return
		}
		parent := cell.History[len(cell.History)-1]
		dir, ok := grid.DirectionTo(parent, idx)
		if !ok {
			t.Fatalf("cell %d: parent %d is not adjacent", idx, parent)
		}
		from := grid.Cell(parent).WorldFloor()
		to := cell.WorldFloor()
		a, b := world.EdgeCorners(dir), world.EdgeCorners(dir.Opposite())
		for i := range a {
			if d := math.Abs(from[a[i]].Z - to[b[i]].Z); d > 1e-9 {
				t.Errorf("cell %d: seam with %d off by %g", idx, parent, d)
			}
		}
	})
}

func TestGenerateSanitizesConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := sizedConfig(-4, 6)
	cfg.VoronoiCellSize = 4

	level, err := GenerateWithRetry(cfg, 5, 10, logger)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	if level.Config.Width != config.DefaultWidth {
		t.Errorf("Width = %d, want %d", level.Config.Width, config.DefaultWidth)
	}
	if level.Config.VoronoiCellSize != 1 {
		t.Errorf("VoronoiCellSize = %d, want 1", level.Config.VoronoiCellSize)
	}
	for _, msg := range []string{"invalid maze width", "voronoi cell size must divide", "level generated"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log does not mention %q", msg)
		}
	}
}

func TestSingleCorridorHasNoKey(t *testing.T) {
	_, err := Generate(sizedConfig(1, 5), 1, nil)
	if !errors.Is(err, pathing.ErrNoKeyCandidate) {
		t.Errorf("Generate(1x5) error = %v, want ErrNoKeyCandidate", err)
	}

	_, err = GenerateWithRetry(sizedConfig(1, 5), 1, 3, nil)
	if !errors.Is(err, pathing.ErrNoKeyCandidate) {
		t.Errorf("GenerateWithRetry(1x5) error = %v, want ErrNoKeyCandidate", err)
	}
}

func TestGenerateWithRetryNeedsAttempts(t *testing.T) {
	if _, err := GenerateWithRetry(config.Default(), 1, 0, nil); !errors.Is(err, ErrNoAttempts) {
		t.Errorf("GenerateWithRetry(0 attempts) error = %v, want ErrNoAttempts", err)
	}
}

func TestCheckSolvableSpotsKeyOnExitPath(t *testing.T) {
	level, err := GenerateWithRetry(sizedConfig(6, 6), 9, 10, nil)
	if err != nil {
		t.Fatalf("GenerateWithRetry: %v", err)
	}
	level.Key = level.ExitPath[1]
	if problem := CheckSolvable(level); problem == "" {
		t.Error("CheckSolvable accepted a key on the exit path")
	}

	if problem := CheckSolvable(nil); problem == "" {
		t.Error("CheckSolvable accepted a nil level")
	}
}
