package state

import (
	"fmt"

	"github.com/google/uuid"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

// layoutNamespace scopes layout IDs so they never collide with other UUIDv5 users
var layoutNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("mazeforge.layout"))

// Level represents one finished maze generation
type Level struct {
	Grid *world.Grid

	Start int
	Exit  int
	Key   int

	// Seeds are the region seed cells in sampling order
	Seeds []int

	// ExitPath runs from the start to the exit, both included
	ExitPath []int

	Seed     int64 // random seed the level was generated from
	Attempts int   // generations tried before this one succeeded

	Config   config.Config
	LayoutID uuid.UUID
}

// NewLevel creates a level for grid with no landmarks yet
func NewLevel(grid *world.Grid, cfg config.Config, seed int64) *Level {
	return &Level{
		Grid:     grid,
		Start:    world.NoCell,
		Exit:     world.NoCell,
		Key:      world.NoCell,
		Seed:     seed,
		Attempts: 1,
		Config:   cfg,
		LayoutID: LayoutID(seed, cfg),
	}
}

// LayoutID returns the identifier shared by every level generated from seed
// and cfg
func LayoutID(seed int64, cfg config.Config) uuid.UUID {
	return uuid.NewSHA1(layoutNamespace, []byte(fmt.Sprintf("%d|%s", seed, cfg.Fingerprint())))
}

// IsSeed reports whether idx is a region seed
func (l *Level) IsSeed(idx int) bool {
	for _, s := range l.Seeds {
		if s == idx {
			return true
		}
	}
	return false
}

// TierCounts returns how many cells sit on each elevation tier
func (l *Level) TierCounts() map[world.Tier]int {
	counts := make(map[world.Tier]int)
	l.Grid.ForEachCell(func(_ int, cell *world.Cell) {
		counts[cell.Tier]++
	})
	return counts
}
