// Package config holds the maze generation settings and their validation.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/gookit/color"

	"mazeforge/pkg/engine/world"
)

// Defaults used when a setting is missing or invalid
const (
	DefaultWidth            = 5
	DefaultDepth            = 5
	DefaultCellSize         = 10.0
	DefaultElevationRatio   = 8.0
	DefaultMergeProbability = 0.5
	DefaultVoronoiCellSize  = 1
)

// Default landmark colors
var (
	DefaultExitColor = color.RGB(0x1a, 0xbc, 0x9c)
	DefaultKeyColor  = color.RGB(0x2e, 0xcc, 0x71)
	FallbackColor    = color.RGB(0, 0, 0)
)

// Config holds everything one maze generation needs
type Config struct {
	Width            int     // Number of cells along X
	Depth            int     // Number of cells along Y
	CellSize         float64 // Side length of a cell in world units
	ElevationRatio   float64 // Divisor applied to elevation magnitudes
	MergeProbability float64 // Chance of joining two horizontal neighbours in Eller's algorithm
	VoronoiCellSize  int     // Side of a region sampling block, must divide Width and Depth

	Palette   []color.RGBColor // Colors drawn for region seed points
	ExitColor color.RGBColor   // Color of the region around the exit
	KeyColor  color.RGBColor   // Color of the region around the key

	Bands world.Bands // Elevation magnitude band per tier
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Width:            DefaultWidth,
		Depth:            DefaultDepth,
		CellSize:         DefaultCellSize,
		ElevationRatio:   DefaultElevationRatio,
		MergeProbability: DefaultMergeProbability,
		VoronoiCellSize:  DefaultVoronoiCellSize,
		Palette:          []color.RGBColor{FallbackColor},
		ExitColor:        DefaultExitColor,
		KeyColor:         DefaultKeyColor,
		Bands:            world.DefaultBands(),
	}
}

// ParseColor parses a hex color such as "#1abc9c" or "1abc9c"
func ParseColor(s string) (color.RGBColor, bool) {
	c := color.HEX(s)
	if c.IsEmpty() {
		return c, false
	}
	return c, true
}

// ParsePalette parses a comma separated list of hex colors.
// Entries that cannot be parsed are returned in bad.
func ParsePalette(s string) (palette []color.RGBColor, bad []string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, ok := ParseColor(part)
		if !ok {
			bad = append(bad, part)
			continue
		}
		palette = append(palette, c)
	}
	return palette, bad
}

// Sanitize returns a copy of c in which every invalid value has been replaced
// by its default. Each correction is logged as a warning; Sanitize never fails.
func (c Config) Sanitize(logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := c

	if !(out.ElevationRatio > 0) || math.IsInf(out.ElevationRatio, 0) {
		logger.Warn("invalid elevation ratio, using default", "value", out.ElevationRatio, "default", DefaultElevationRatio)
		out.ElevationRatio = DefaultElevationRatio
	}
	if !(out.CellSize > 0) || math.IsInf(out.CellSize, 0) {
		logger.Warn("invalid cell size, using default", "value", out.CellSize, "default", DefaultCellSize)
		out.CellSize = DefaultCellSize
	}
	if out.Width <= 0 {
		logger.Warn("invalid maze width, using default", "value", out.Width, "default", DefaultWidth)
		out.Width = DefaultWidth
	}
	if out.Depth <= 0 {
		logger.Warn("invalid maze depth, using default", "value", out.Depth, "default", DefaultDepth)
		out.Depth = DefaultDepth
	}
	if math.IsNaN(out.MergeProbability) || out.MergeProbability < 0 || out.MergeProbability > 1 {
		logger.Warn("invalid merge probability, using default", "value", out.MergeProbability, "default", DefaultMergeProbability)
		out.MergeProbability = DefaultMergeProbability
	}
	if out.VoronoiCellSize <= 0 {
		logger.Warn("invalid voronoi cell size, using default", "value", out.VoronoiCellSize, "default", DefaultVoronoiCellSize)
		out.VoronoiCellSize = DefaultVoronoiCellSize
	}
	if out.Width%out.VoronoiCellSize != 0 || out.Depth%out.VoronoiCellSize != 0 {
		logger.Warn("voronoi cell size must divide maze width and depth, using default",
			"value", out.VoronoiCellSize, "width", out.Width, "depth", out.Depth, "default", DefaultVoronoiCellSize)
		out.VoronoiCellSize = DefaultVoronoiCellSize
	}

	out.Palette = nil
	for i, p := range c.Palette {
		if p.IsEmpty() {
			logger.Warn("dropping unset palette color", "position", i)
			continue
		}
		out.Palette = append(out.Palette, p)
	}
	if len(out.Palette) == 0 {
		logger.Warn("empty color palette, using fallback color", "fallback", "#"+FallbackColor.Hex())
		out.Palette = []color.RGBColor{FallbackColor}
	}

	if isUnset(out.ExitColor) {
		logger.Warn("unset exit area color, using default", "default", "#"+DefaultExitColor.Hex())
		out.ExitColor = DefaultExitColor
	}
	if isUnset(out.KeyColor) {
		logger.Warn("unset key area color, using default", "default", "#"+DefaultKeyColor.Hex())
		out.KeyColor = DefaultKeyColor
	}

	defaults := world.DefaultBands()
	out.Bands = make(world.Bands, len(defaults))
	for _, tier := range world.AllTiers() {
		band, ok := c.Bands[tier]
		if !ok {
			out.Bands[tier] = defaults[tier]
			continue
		}
		if math.IsNaN(band.Min) || math.IsNaN(band.Max) {
			logger.Warn("invalid elevation band, using default", "tier", tier.String())
			band = defaults[tier]
		}
		if band.Min > band.Max {
			logger.Warn("elevation band is reversed, swapping bounds", "tier", tier.String(), "min", band.Min, "max", band.Max)
			band.Min, band.Max = band.Max, band.Min
		}
		out.Bands[tier] = band
	}

	return out
}

// isUnset treats the zero RGBColor like gookit's empty marker, so a Config
// literal without landmark colors picks up the defaults.
func isUnset(c color.RGBColor) bool {
	return c.IsEmpty() || c == color.RGBColor{}
}

// Fingerprint returns a canonical text form of the configuration, stable
// across runs, used to derive layout identifiers.
func (c Config) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "w=%d;d=%d;cs=%g;er=%g;mp=%g;vcs=%d", c.Width, c.Depth, c.CellSize, c.ElevationRatio, c.MergeProbability, c.VoronoiCellSize)

	b.WriteString(";palette=")
	for i, p := range c.Palette {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Hex())
	}
	fmt.Fprintf(&b, ";exit=%s;key=%s", c.ExitColor.Hex(), c.KeyColor.Hex())

	tiers := make([]int, 0, len(c.Bands))
	for tier := range c.Bands {
		tiers = append(tiers, int(tier))
	}
	sort.Ints(tiers)
	for _, t := range tiers {
		band := c.Bands[world.Tier(t)]
		fmt.Fprintf(&b, ";%s=%g..%g", world.Tier(t), band.Min, band.Max)
	}
	return b.String()
}
