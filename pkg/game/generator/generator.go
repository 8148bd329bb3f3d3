package generator

import (
	"errors"
	"math/rand"

	"mazeforge/pkg/engine/world"
	"mazeforge/pkg/game/config"
)

// ErrEdgeCount is returned when a carved grid is not a spanning tree
var ErrEdgeCount = errors.New("generator: carved grid has the wrong number of open walls")

// GridGenerator is an interface for maze carving algorithms
type GridGenerator interface {
	Generate(cfg config.Config, rng *rand.Rand) (*world.Grid, error)
	Name() string
}

// Available generators
var (
	Eller = &EllerGenerator{}
)

// DefaultGenerator is the default maze generator
var DefaultGenerator GridGenerator = Eller
