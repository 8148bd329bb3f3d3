package devtools

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/state"
)

// cellPixels is the side of one maze cell in the HTML view
const cellPixels = 24

// SaveScreenshotHTML writes the level as an HTML page to path. An empty path
// picks a timestamped file name in the working directory. Returns the
// absolute path written.
func SaveScreenshotHTML(level *state.Level, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("maze-%s.html", time.Now().Format("20060102-150405"))
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

	if err := WriteHTML(f, level); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}

// WriteHTML renders the maze as a table of cells; each cell is filled with
// its region color and bordered where its walls stand.
func WriteHTML(w io.Writer, level *state.Level) error {
	if level == nil || level.Grid == nil {
		return fmt.Errorf("no grid")
	}
	grid := level.Grid
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .meta { color: #888; margin-bottom: 20px; }
        table.maze { border-collapse: collapse; }
        table.maze td {
            width: %dpx;
            height: %dpx;
            padding: 0;
            text-align: center;
            font-weight: bold;
            color: #111;
            border: 2px solid transparent;
        }
        table.maze td.wall-left { border-left-color: #eee; }
        table.maze td.wall-right { border-right-color: #eee; }
        table.maze td.wall-top { border-top-color: #eee; }
        table.maze td.wall-bottom { border-bottom-color: #eee; }
    </style>
</head>
<body>
`, html.EscapeString(gotext.Get("Maze layout")), cellPixels, cellPixels)

	fmt.Fprintf(bw, `    <div class="header">%s %s</div>`+"\n",
		html.EscapeString(gotext.Get("Layout")), level.LayoutID)
	fmt.Fprintf(bw, `    <div class="meta">%s: %d &middot; %dx%d</div>`+"\n",
		html.EscapeString(gotext.Get("Seed")), level.Seed, grid.Width(), grid.Depth())

	fmt.Fprintln(bw, `    <table class="maze">`)
	for y := grid.Depth() - 1; y >= 0; y-- {
		fmt.Fprint(bw, "        <tr>")
		for x := 0; x < grid.Width(); x++ {
			cell := grid.GetCell(x, y)
			symbol := cellSymbol(level, cell.Index)
			if symbol != 'S' && symbol != 'E' && symbol != 'K' && symbol != '*' {
				symbol = ' '
			}
			fmt.Fprintf(bw, `<td class="%s" style="background-color:%s" title="%s">%s</td>`,
				wallClasses(cell), cssColor(cell.Color), cellTitle(cell), html.EscapeString(string(symbol)))
		}
		fmt.Fprintln(bw, "</tr>")
	}
	fmt.Fprintln(bw, `    </table>`)

	fmt.Fprint(bw, `</body>
</html>
`)
	return bw.Flush()
}

// wallClasses returns the CSS classes for the closed walls of a cell.
// On screen up is +Y, so the Top wall is drawn on the upper edge.
func wallClasses(cell *world.Cell) string {
	classes := ""
	for _, wall := range []struct {
		dir   world.Direction
		class string
	}{
		{world.Left, "wall-left"},
		{world.Right, "wall-right"},
		{world.Top, "wall-top"},
		{world.Bottom, "wall-bottom"},
	} {
		if cell.IsOpen(wall.dir) {
			continue
		}
		if classes != "" {
			classes += " "
		}
		classes += wall.class
	}
	return classes
}

func cssColor(c color.RGBColor) string {
	if c.IsEmpty() {
		return "transparent"
	}
	return "#" + c.Hex()
}

func cellTitle(cell *world.Cell) string {
	return html.EscapeString(fmt.Sprintf("%d,%d %s z=%.2f", cell.X, cell.Y, cell.Tier, cell.Position.Z))
}
