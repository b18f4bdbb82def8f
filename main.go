package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/plumage-go/app"
	"github.com/soocke/plumage-go/config"
	"github.com/soocke/plumage-go/debug"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "verbose logging and runtime metrics")
	taxonomyPath := flag.String("taxonomy", "", "IOC taxonomy XML (default: embedded copy)")
	datasetPath := flag.String("dataset", "", "CSV file samples are appended to")
	imagePath := flag.String("image", "", "image to open at start")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	bootLogger := NewLogger(slog.LevelInfo)
	if err != nil {
		bootLogger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *taxonomyPath != "" {
		cfg.TaxonomyPath = *taxonomyPath
	}
	if *datasetPath != "" {
		cfg.DatasetPath = *datasetPath
	}
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfg.Debug {
		debug.StartGoroutineLogger(10*time.Second, logger)
		debug.StartMemLogger(10*time.Second, logger)
	}

	application, err := app.NewApp(cfg.CanvasWidth+420, cfg.CanvasHeight+120, cfg, *cfgPath, logger)
	if err != nil {
		logger.Error("reference data could not be loaded", "error", err)
		os.Exit(1)
	}
	application.Start(*imagePath)
}
