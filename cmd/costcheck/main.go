// Package main provides costcheck, which prices a saved build file against
// the on-disk catalog and prints the cost breakdown and derived summaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jtholloran/runeforge/internal/catalog"
	"github.com/jtholloran/runeforge/internal/config"
	"github.com/jtholloran/runeforge/internal/engine"
	"github.com/jtholloran/runeforge/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	buildPath := flag.String("build", "", "path to build record YAML file")
	flag.Parse()

	if *buildPath == "" {
		fmt.Fprintln(os.Stderr, "usage: costcheck -build <file> [-config <file>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer base.Sync()
	logger := observability.ComponentLogger(base, "costcheck")

	snap, err := catalog.LoadSnapshot(
		cfg.Catalog.PartsDir, cfg.Catalog.PropertiesDir,
		cfg.Catalog.ProgressionFile, cfg.Catalog.MechanicsFile,
	)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("parts", snap.PartCount()))

	data, err := os.ReadFile(*buildPath)
	if err != nil {
		logger.Fatal("reading build file", zap.Error(err))
	}
	var rec engine.BuildRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		logger.Fatal("parsing build file", zap.Error(err))
	}

	build, warnings := engine.Rehydrate(rec, snap)
	for _, w := range warnings {
		logger.Warn("degraded while loading build", zap.String("warning", w.String()))
	}

	costs := engine.ComputeCosts(build, snap)
	summaries := engine.DeriveSummaries(build, snap)

	fmt.Printf("Build: %s\n", build.Name)
	fmt.Printf("Action:   %s\n", summaries.ActionText)
	fmt.Printf("Range:    %s\n", summaries.RangeText)
	fmt.Printf("Area:     %s\n", summaries.AreaText)
	fmt.Printf("Duration: %s\n", summaries.DurationText)
	fmt.Printf("Energy: %.2f  Training Points: %.2f  Item Points: %.2f  Currency x%.2f\n",
		costs.TotalEnergy, costs.TotalTrainingPoints, costs.TotalItemPoints, costs.CurrencyFactor)

	sources := make([]string, 0, len(costs.TPBySource))
	for source := range costs.TPBySource {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)
	for _, source := range sources {
		fmt.Printf("  TP from %s: %.2f\n", source, costs.TPBySource[engine.TPSource(source)])
	}
	for _, w := range costs.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
