package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mazeforge/pkg/engine/terminal"
	"mazeforge/pkg/game/config"
	"mazeforge/pkg/game/devtools"
	"mazeforge/pkg/game/setup"
)

type options struct {
	seed       int64
	configPath string
	envPath    string
	attempts   int
	colorMode  string
	dumpPath   string
	htmlPath   string
	width      int
	depth      int
	verbose    bool
	localeDir  string
	language   string
}

func parseFlags() *options {
	o := &options{}
	flag.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.StringVar(&o.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&o.envPath, "env", ".env", "dotenv file with MAZE_* settings")
	flag.IntVar(&o.attempts, "attempts", 10, "generations to try before giving up on degenerate layouts")
	flag.StringVar(&o.colorMode, "color", "auto", "paint regions: auto, always or never")
	flag.StringVar(&o.dumpPath, "dump", "", "write the report to this file instead of stdout")
	flag.StringVar(&o.htmlPath, "html", "", "also save the maze as an HTML page")
	flag.IntVar(&o.width, "width", config.DefaultWidth, "maze width in cells")
	flag.IntVar(&o.depth, "depth", config.DefaultDepth, "maze depth in cells")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.StringVar(&o.localeDir, "locale", "locale", "directory holding translation catalogs")
	flag.StringVar(&o.language, "lang", "en_GB", "language of report labels")
	flag.Parse()
	return o
}

func initGettext(o *options) {
	gotext.Configure(o.localeDir, o.language, "default")
}

func initColors(mode string, logger *slog.Logger) {
	switch mode {
	case "always":
		color.ForceColor()
	case "never":
		color.Enable = false
	case "auto":
		color.Enable = terminal.IsTerminal(os.Stdout)
	default:
		logger.Warn("unknown color mode, using auto", "mode", mode)
		color.Enable = terminal.IsTerminal(os.Stdout)
	}
}

// loadConfig layers defaults, the config file, the environment and the
// command line, in that order
func loadConfig(o *options, logger *slog.Logger) (config.Config, error) {
	config.LoadDotEnv(logger, o.envPath)

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath, cfg, logger)
		if err != nil {
			return cfg, err
		}
	}
	cfg = config.FromEnv(cfg, logger)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = o.width
		case "depth":
			cfg.Depth = o.depth
		}
	})
	return cfg, nil
}

func run(o *options, logger *slog.Logger) error {
	cfg, err := loadConfig(o, logger)
	if err != nil {
		return err
	}

	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	level, err := setup.GenerateWithRetry(cfg, seed, o.attempts, logger)
	if err != nil {
		return err
	}

	if o.htmlPath != "" {
		path, err := devtools.SaveScreenshotHTML(level, o.htmlPath)
		if err != nil {
			return fmt.Errorf("saving html: %w", err)
		}
		logger.Info("html written", "path", path)
	}

	if o.dumpPath != "" {
		path, err := devtools.DumpToFile(level, o.dumpPath)
		if err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
		logger.Info("dump written", "path", path)
		return nil
	}

	if terminal.IsTerminal(os.Stdout) && !terminal.FitsWidth(os.Stdout, level.Grid.Width()) {
		logger.Warn("maze is wider than the terminal, lines will wrap",
			"needed", terminal.MapWidth(level.Grid.Width()), "available", terminal.GetWidth(os.Stdout))
	}
	return devtools.WriteReport(os.Stdout, level, devtools.Options{Color: color.Enable})
}

func main() {
	o := parseFlags()

	logLevel := slog.LevelInfo
	if o.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	initGettext(o)
	initColors(o.colorMode, logger)

	if err := run(o, logger); err != nil {
		logger.Error("maze generation failed", "error", err)
		os.Exit(1)
	}
}
