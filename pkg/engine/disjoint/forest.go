// Package disjoint provides the set forest used while carving a maze row by row.
//
// Unlike a classic parent-pointer union-find, every set keeps an explicit,
// ordered member list so callers can pick a random member of a set and
// replace a set's membership wholesale when carrying it into the next row.
// A set's id is the index of the cell it was created for.
package disjoint

import (
	"log/slog"
	"sort"
)

// NoSet is returned by FindSet when no set contains the requested cell
const NoSet = -1

// Forest maps set ids to the cell indices they contain
type Forest struct {
	sets   map[int][]int
	owner  map[int]int // cell index -> set id
	logger *slog.Logger
}

// New returns an empty forest. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Forest {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Forest{
		sets:   make(map[int][]int),
		owner:  make(map[int]int),
		logger: logger,
	}
}

// MakeSet puts cell in a new singleton set whose id is the cell index.
// If the cell already belongs to a set, that set's id is returned unchanged.
func (f *Forest) MakeSet(cell int) int {
	if set, ok := f.owner[cell]; ok {
		return set
	}
	f.sets[cell] = []int{cell}
	f.owner[cell] = cell
	return cell
}

// Contains reports whether some set holds cell
func (f *Forest) Contains(cell int) bool {
	_, ok := f.owner[cell]
	return ok
}

// FindSet returns the id of the set containing cell, or NoSet after logging
// an error when no set does.
func (f *Forest) FindSet(cell int) int {
	set, ok := f.owner[cell]
	if !ok {
		f.logger.Error("find set: cell is in no set", "cell", cell)
		return NoSet
	}
	return set
}

// Merge moves every member of from into to and removes from.
// Callers must ensure from != to.
func (f *Forest) Merge(from, to int) {
	if from == to {
		f.logger.Error("merge: set merged into itself", "set", from)
		return
	}
	members, ok := f.sets[from]
	if !ok {
		f.logger.Error("merge: unknown source set", "set", from)
		return
	}
	if _, ok := f.sets[to]; !ok {
		f.logger.Error("merge: unknown target set", "set", to)
		return
	}

	for _, cell := range members {
		f.owner[cell] = to
	}
	f.sets[to] = append(f.sets[to], members...)
	delete(f.sets, from)
}

// Reset replaces the membership of set with members. Cells that were in the
// set but are not listed stop belonging to any set.
func (f *Forest) Reset(set int, members ...int) {
	old, ok := f.sets[set]
	if !ok {
		f.logger.Error("reset: unknown set", "set", set)
		return
	}
	for _, cell := range old {
		delete(f.owner, cell)
	}
	for _, cell := range members {
		if prev, ok := f.owner[cell]; ok && prev != set {
			f.removeMember(prev, cell)
		}
		f.owner[cell] = set
	}
	f.sets[set] = append([]int(nil), members...)
}

// Members returns the cells of set in insertion order
func (f *Forest) Members(set int) []int {
	return f.sets[set]
}

// Sets returns the live set ids in ascending order
func (f *Forest) Sets() []int {
	ids := make([]int, 0, len(f.sets))
	for id := range f.sets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of live sets
func (f *Forest) Len() int {
	return len(f.sets)
}

func (f *Forest) removeMember(set, cell int) {
	members := f.sets[set]
	for i, m := range members {
		if m == cell {
			f.sets[set] = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(f.sets[set]) == 0 {
		delete(f.sets, set)
	}
}
