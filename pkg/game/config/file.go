package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mazeforge/pkg/engine/world"
)

// fileConfig is the YAML layout of a configuration file. Pointer fields
// distinguish "absent" from "zero" so absent keys keep the base value.
type fileConfig struct {
	Width            *int                  `yaml:"width"`
	Depth            *int                  `yaml:"depth"`
	CellSize         *float64              `yaml:"cell_size"`
	ElevationRatio   *float64              `yaml:"elevation_ratio"`
	MergeProbability *float64              `yaml:"merge_probability"`
	VoronoiCellSize  *int                  `yaml:"voronoi_cell_size"`
	Palette          []string              `yaml:"palette"`
	ExitColor        string                `yaml:"exit_color"`
	KeyColor         string                `yaml:"key_color"`
	Bands            map[string]world.Band `yaml:"elevation_bands"`
}

// Load reads a YAML configuration file and overlays it on base
func Load(path string, base Config, logger *slog.Logger) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data, base, logger)
}

// Parse decodes YAML configuration data and overlays it on base.
// Unknown colors and tier names are logged and skipped.
func Parse(data []byte, base Config, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("config: decoding yaml: %w", err)
	}

	out := base
	if fc.Width != nil {
		out.Width = *fc.Width
	}
	if fc.Depth != nil {
		out.Depth = *fc.Depth
	}
	if fc.CellSize != nil {
		out.CellSize = *fc.CellSize
	}
	if fc.ElevationRatio != nil {
		out.ElevationRatio = *fc.ElevationRatio
	}
	if fc.MergeProbability != nil {
		out.MergeProbability = *fc.MergeProbability
	}
	if fc.VoronoiCellSize != nil {
		out.VoronoiCellSize = *fc.VoronoiCellSize
	}

	if fc.Palette != nil {
		palette, bad := ParsePalette(strings.Join(fc.Palette, ","))
		for _, b := range bad {
			logger.Warn("ignoring palette color", "value", b)
		}
		out.Palette = palette
	}
	if fc.ExitColor != "" {
		if c, ok := ParseColor(fc.ExitColor); ok {
			out.ExitColor = c
		} else {
			logger.Warn("ignoring exit color", "value", fc.ExitColor)
		}
	}
	if fc.KeyColor != "" {
		if c, ok := ParseColor(fc.KeyColor); ok {
			out.KeyColor = c
		} else {
			logger.Warn("ignoring key color", "value", fc.KeyColor)
		}
	}

	if len(fc.Bands) > 0 {
		bands := base.Bands.Clone()
		if bands == nil {
			bands = world.Bands{}
		}
		for name, band := range fc.Bands {
			tier, ok := parseTier(name)
			if !ok {
				logger.Warn("ignoring elevation band for unknown tier", "tier", name)
				continue
			}
			bands[tier] = band
		}
		out.Bands = bands
	}

	return out, nil
}

func parseTier(name string) (world.Tier, bool) {
	for _, tier := range world.AllTiers() {
		if strings.EqualFold(tier.String(), name) {
			return tier, true
		}
	}
	return world.None, false
}
