package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names understood by FromEnv
const (
	EnvWidth            = "MAZE_WIDTH"
	EnvDepth            = "MAZE_DEPTH"
	EnvCellSize         = "MAZE_CELL_SIZE"
	EnvElevationRatio   = "MAZE_ELEVATION_RATIO"
	EnvMergeProbability = "MAZE_MERGE_PROBABILITY"
	EnvVoronoiCellSize  = "MAZE_VORONOI_CELL_SIZE"
	EnvPalette          = "MAZE_PALETTE"
	EnvExitColor        = "MAZE_EXIT_COLOR"
	EnvKeyColor         = "MAZE_KEY_COLOR"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) into the process environment. A missing file is only reported.
func LoadDotEnv(logger *slog.Logger, files ...string) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := godotenv.Load(files...); err != nil {
		logger.Info(".env file not found or could not be loaded", "error", err)
	}
}

// FromEnv overlays MAZE_* environment variables on base. Values that cannot
// be parsed are logged and leave the base value in place.
func FromEnv(base Config, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := base

	out.Width = getEnvAsInt(logger, EnvWidth, out.Width)
	out.Depth = getEnvAsInt(logger, EnvDepth, out.Depth)
	out.CellSize = getEnvAsFloat(logger, EnvCellSize, out.CellSize)
	out.ElevationRatio = getEnvAsFloat(logger, EnvElevationRatio, out.ElevationRatio)
	out.MergeProbability = getEnvAsFloat(logger, EnvMergeProbability, out.MergeProbability)
	out.VoronoiCellSize = getEnvAsInt(logger, EnvVoronoiCellSize, out.VoronoiCellSize)

	if value, ok := os.LookupEnv(EnvPalette); ok {
		palette, bad := ParsePalette(value)
		for _, b := range bad {
			logger.Warn("ignoring palette color", "variable", EnvPalette, "value", b)
		}
		out.Palette = palette
	}
	if value, ok := os.LookupEnv(EnvExitColor); ok {
		if c, valid := ParseColor(value); valid {
			out.ExitColor = c
		} else {
			logger.Warn("ignoring color", "variable", EnvExitColor, "value", value)
		}
	}
	if value, ok := os.LookupEnv(EnvKeyColor); ok {
		if c, valid := ParseColor(value); valid {
			out.KeyColor = c
		} else {
			logger.Warn("ignoring color", "variable", EnvKeyColor, "value", value)
		}
	}

	return out
}

// getEnvAsInt retrieves an environment variable as an integer or returns fallback
func getEnvAsInt(logger *slog.Logger, key string, fallback int) int {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Warn("environment variable must be an integer", "variable", key, "value", valueStr)
		return fallback
	}
	return value
}

// getEnvAsFloat retrieves an environment variable as a float or returns fallback
func getEnvAsFloat(logger *slog.Logger, key string, fallback float64) float64 {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logger.Warn("environment variable must be a number", "variable", key, "value", valueStr)
		return fallback
	}
	return value
}
