package setup

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/state"
)

// reachableFrom returns every cell that can be walked to from start
func reachableFrom(grid *world.Grid, start int) mapset.Set[int] {
	reachable := mapset.New[int]()
	if !grid.IsValidIndex(start) {
		return reachable
	}
	work := queue.New[int]()
	reachable.Put(start)
	work.Enqueue(start)

	for !work.Empty() {
		current := work.Dequeue()
		for _, n := range grid.Cell(current).Neighbours {
			if !reachable.Has(n) {
				reachable.Put(n)
				work.Enqueue(n)
			}
		}
	}
	return reachable
}

// CheckSolvable checks that a player starting at the level's start can pick
// up the key and then leave through the exit. Returns a description of the
// first problem found, or an empty string.
func CheckSolvable(level *state.Level) string {
	if level == nil || level.Grid == nil {
		return "level has no grid"
	}
	grid := level.Grid
	if problem := grid.Validate(); problem != "" {
		return problem
	}

	for _, landmark := range []struct {
		name string
		idx  int
	}{{"start", level.Start}, {"exit", level.Exit}, {"key", level.Key}} {
		if !grid.IsValidIndex(landmark.idx) {
			return fmt.Sprintf("%s cell %d is out of bounds", landmark.name, landmark.idx)
		}
	}
	if grid.Len() > 1 && level.Start == level.Exit {
		return "exit is the start cell"
	}
	if level.Key == level.Exit || level.Key == level.Start {
		return "key shares a cell with the start or exit"
	}

	reachable := reachableFrom(grid, level.Start)
	if reachable.Size() != grid.Len() {
		return fmt.Sprintf("only %d of %d cells are reachable from the start", reachable.Size(), grid.Len())
	}

	for _, idx := range level.ExitPath {
		if idx == level.Key {
			return "key lies on the way to the exit"
		}
	}

	uncolored := 0
	grid.ForEachCell(func(_ int, cell *world.Cell) {
		if !cell.HasColor() {
			uncolored++
		}
	})
	if uncolored > 0 {
		return fmt.Sprintf("%d cells have no region color", uncolored)
	}
	return ""
}
