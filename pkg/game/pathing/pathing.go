// Package pathing finds the exit and key cells of a carved maze.
//
// The exit is the last cell a breadth-first search from the start takes off
// its frontier. The same search records every cell's history (the cells on
// its path from the start) and reports each tree edge it walks, which is how
// elevation gets assigned. The key is the cell whose history strays furthest
// from the path to the exit.
package pathing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"mazeforge/pkg/engine/world"
)

var (
	// ErrFrontierExhausted is returned when the search never dequeued a cell
	ErrFrontierExhausted = errors.New("pathing: frontier exhausted without an exit")
	// ErrNoKeyCandidate is returned when no cell strays from the exit path
	ErrNoKeyCandidate = errors.New("pathing: no cell diverges from the exit path")
)

// StepFunc is called once for every tree edge the exit search walks, before
// the cell at to is marked visited
type StepFunc func(grid *world.Grid, from, to int) error

// Result describes where the exit search ended
type Result struct {
	Start int
	Exit  int
	Key   int

	// ExitPath is the exit's history followed by the exit itself
	ExitPath []int

	// Order lists the cells in the order they were dequeued
	Order []int

	// Depth is the number of steps from the start to the exit
	Depth int
}

// Finder runs the exit and key searches
type Finder struct {
	Step   StepFunc
	Logger *slog.Logger
}

func (f *Finder) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}

// FindExit searches the maze breadth first from start. Histories of all
// reached cells are rewritten. Key is left at world.NoCell.
func (f *Finder) FindExit(grid *world.Grid, start int) (*Result, error) {
	logger := f.logger()
	if !grid.IsValidIndex(start) {
		logger.Error("find exit: start cell out of bounds", "start", start)
		return nil, fmt.Errorf("%w: start %d out of bounds", ErrFrontierExhausted, start)
	}

	grid.ResetTraversal()

	visited := mapset.New[int]()
	work := queue.New[int]()

	visited.Put(start)
	grid.Cell(start).Visited = true
	work.Enqueue(start)

	res := &Result{Start: start, Exit: world.NoCell, Key: world.NoCell}
	for !work.Empty() {
		current := work.Dequeue()
		res.Order = append(res.Order, current)
		cell := grid.Cell(current)

		for _, next := range cell.Neighbours {
			if visited.Has(next) {
				continue
			}
			if f.Step != nil {
				if err := f.Step(grid, current, next); err != nil {
					logger.Error("find exit: step failed", "from", current, "to", next, "error", err)
					return nil, fmt.Errorf("pathing: step %d -> %d: %w", current, next, err)
				}
			}
			nextCell := grid.Cell(next)
			nextCell.SetHistory(cell.History, current)
			nextCell.Visited = true
			visited.Put(next)
			work.Enqueue(next)
		}

		if work.Empty() {
			res.Exit = current
			break
		}
	}

	if res.Exit == world.NoCell {
		logger.Error("find exit: frontier exhausted", "start", start)
		return nil, ErrFrontierExhausted
	}

	exit := grid.Cell(res.Exit)
	res.ExitPath = append(append(make([]int, 0, len(exit.History)+1), exit.History...), res.Exit)
	res.Depth = len(exit.History)
	if visited.Size() != grid.Len() {
		logger.Warn("find exit: maze is not fully connected", "reached", visited.Size(), "cells", grid.Len())
	}
	return res, nil
}

// FindKey returns the cell with the most history entries off exitPath.
// Cells are scanned in index order and the first one with the highest count
// wins.
func (f *Finder) FindKey(grid *world.Grid, exitPath []int) (int, error) {
	onPath := pathSet(exitPath)

	key, best := world.NoCell, 0
	grid.ForEachCell(func(idx int, cell *world.Cell) {
		if count := countOff(cell.History, onPath); count > best {
			key, best = idx, count
		}
	})

	if key == world.NoCell {
		f.logger().Error("find key: no cell diverges from the exit path", "path", len(exitPath))
		return world.NoCell, ErrNoKeyCandidate
	}
	return key, nil
}

// ExitAndKey runs FindExit then FindKey on its exit path
func (f *Finder) ExitAndKey(grid *world.Grid, start int) (*Result, error) {
	res, err := f.FindExit(grid, start)
	if err != nil {
		return nil, err
	}
	key, err := f.FindKey(grid, res.ExitPath)
	if err != nil {
		return nil, err
	}
	res.Key = key
	return res, nil
}

// Divergence returns how many entries of path are not on exitPath
func Divergence(path, exitPath []int) int {
	return countOff(path, pathSet(exitPath))
}

func pathSet(path []int) mapset.Set[int] {
	set := mapset.New[int]()
	for _, idx := range path {
		set.Put(idx)
	}
	return set
}

func countOff(path []int, onPath mapset.Set[int]) int {
	n := 0
	for _, idx := range path {
		if !onPath.Has(idx) {
			n++
		}
	}
	return n
}
