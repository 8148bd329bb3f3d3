// Package devtools provides developer tools for inspecting generated mazes.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// Options control how maps are rendered
type Options struct {
	// Color paints each cell with its region color using ANSI escapes
	Color bool
}

var wallStyle = color.New(color.FgGray)

// tierGlyph returns the interior symbol for a plain cell on tier t
func tierGlyph(t world.Tier) byte {
	switch t {
	case world.MinusMax:
		return '_'
	case world.MinusMin:
		return '-'
	case world.PlusMin:
		return '+'
	case world.PlusMax:
		return '^'
	default:
		return '.'
	}
}

// cellSymbol returns the single-character symbol for a cell
func cellSymbol(level *state.Level, idx int) byte {
	cell := level.Grid.Cell(idx)
	switch {
	case idx == level.Start:
		return 'S'
	case cell.ExitCell:
		return 'E'
	case cell.KeyCell:
		return 'K'
	case level.IsSeed(idx):
		return '*'
	default:
		return tierGlyph(cell.Tier)
	}
}

func paintCell(cell *world.Cell, text string, opts Options) string {
	if !opts.Color || !cell.HasColor() {
		return text
	}
	bg := color.RGB(cell.Color[0], cell.Color[1], cell.Color[2], true)
	return bg.Sprint(text)
}

func paintWall(text string, opts Options) string {
	if !opts.Color {
		return text
	}
	return wallStyle.Sprint(text)
}

// WriteMap draws the maze as ASCII art with the last row at the top, so up
// on screen is +Y.
func WriteMap(w io.Writer, level *state.Level, opts Options) error {
	if level == nil || level.Grid == nil {
		return fmt.Errorf("no grid")
	}
	grid := level.Grid
	bw := bufio.NewWriter(w)

	var line strings.Builder
	for y := grid.Depth() - 1; y >= 0; y-- {
		// wall above row y
		line.Reset()
		for x := 0; x < grid.Width(); x++ {
			if grid.GetCell(x, y).IsOpen(world.Top) {
				line.WriteString(paintWall("+", opts) + "   ")
			} else {
				line.WriteString(paintWall("+---", opts))
			}
		}
		line.WriteString(paintWall("+", opts))
		fmt.Fprintln(bw, line.String())

		line.Reset()
		for x := 0; x < grid.Width(); x++ {
			cell := grid.GetCell(x, y)
			if cell.IsOpen(world.Left) {
				line.WriteString(" ")
			} else {
				line.WriteString(paintWall("|", opts))
			}
			line.WriteString(paintCell(cell, " "+string(cellSymbol(level, cell.Index))+" ", opts))
		}
		line.WriteString(paintWall("|", opts))
		fmt.Fprintln(bw, line.String())
	}

	line.Reset()
	for x := 0; x < grid.Width(); x++ {
		line.WriteString(paintWall("+---", opts))
	}
	line.WriteString(paintWall("+", opts))
	fmt.Fprintln(bw, line.String())

	return bw.Flush()
}

// writeLegend lists the map symbols; labels go through the translation catalog
func writeLegend(w io.Writer) {
	entries := []struct {
		symbol string
		label  string
	}{
		{"S", gotext.Get("start")},
		{"E", gotext.Get("exit")},
		{"K", gotext.Get("key")},
		{"*", gotext.Get("region seed")},
		{"_", gotext.Get("lowest terrace")},
		{"-", gotext.Get("low terrace")},
		{".", gotext.Get("ground level")},
		{"+", gotext.Get("high terrace")},
		{"^", gotext.Get("highest terrace")},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.symbol+" = "+e.label)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func coords(grid *world.Grid, idx int) string {
	if !grid.IsValidIndex(idx) {
		return "none"
	}
	x, y := grid.Coords(idx)
	return fmt.Sprintf("%d,%d", x, y)
}

// WriteReport writes a full debug dump: metadata, legend, map, tier
// histogram, seed points and region sizes. The format is plain
// "key: value" sections meant to be read by people and diffed by tools.
func WriteReport(w io.Writer, level *state.Level, opts Options) error {
	if level == nil || level.Grid == nil {
		return fmt.Errorf("no grid")
	}
	grid := level.Grid
	cfg := level.Config

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAZE DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", level.Seed)
	fmt.Fprintf(w, "attempts: %d\n", level.Attempts)
	fmt.Fprintf(w, "layout_id: %s\n", level.LayoutID)
	fmt.Fprintf(w, "width: %d\n", grid.Width())
	fmt.Fprintf(w, "depth: %d\n", grid.Depth())
	fmt.Fprintf(w, "cell_size: %g\n", grid.CellSize())
	fmt.Fprintf(w, "elevation_ratio: %g\n", cfg.ElevationRatio)
	fmt.Fprintf(w, "merge_probability: %g\n", cfg.MergeProbability)
	fmt.Fprintf(w, "voronoi_cell_size: %d\n", cfg.VoronoiCellSize)
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, y grows upward)\n")
	fmt.Fprintf(w, "start_cell: %s\n", coords(grid, level.Start))
	fmt.Fprintf(w, "exit_cell: %s\n", coords(grid, level.Exit))
	fmt.Fprintf(w, "key_cell: %s\n", coords(grid, level.Key))
	if len(level.ExitPath) > 0 {
		fmt.Fprintf(w, "exit_distance: %d\n", len(level.ExitPath)-1)
	}
	fmt.Fprintf(w, "open_walls: %d\n", grid.OpenEdgeCount())
	fmt.Fprintf(w, "seed_points: %d\n", len(level.Seeds))
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	writeLegend(w)
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	if err := WriteMap(w, level, opts); err != nil {
		return err
	}
	fmt.Fprintln(w, "")

	// --- Elevation ---
	fmt.Fprintln(w, "--- Elevation tiers ---")
	counts := level.TierCounts()
	for _, tier := range world.AllTiers() {
		fmt.Fprintf(w, "  tier: %s cells: %d\n", tier, counts[tier])
	}
	fmt.Fprintln(w, "")

	// --- Seeds ---
	fmt.Fprintln(w, "--- Seed points ---")
	for _, idx := range level.Seeds {
		fmt.Fprintf(w, "  cell: %s color: #%s\n", coords(grid, idx), grid.Cell(idx).Color.Hex())
	}
	fmt.Fprintln(w, "")

	// --- Regions ---
	fmt.Fprintln(w, "--- Regions ---")
	sizes := make(map[string]int)
	grid.ForEachCell(func(_ int, cell *world.Cell) {
		if cell.HasColor() {
			sizes["#"+cell.Color.Hex()]++
		} else {
			sizes["unset"]++
		}
	})
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  color: %s cells: %d\n", name, sizes[name])
	}
	fmt.Fprintln(w, "")

	_, err := fmt.Fprintln(w, "=== END MAZE DUMP ===")
	return err
}

// DumpToFile writes an uncolored report to path (map.txt when empty) and
// returns the absolute path written.
func DumpToFile(level *state.Level, path string) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteReport(f, level, Options{}); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
