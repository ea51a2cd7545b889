// Package main provides import-content, which loads YAML catalog content and
// upserts it into the PostgreSQL catalog tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jtholloran/runeforge/internal/catalog"
	"github.com/jtholloran/runeforge/internal/config"
	"github.com/jtholloran/runeforge/internal/observability"
	"github.com/jtholloran/runeforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer base.Sync()
	logger := observability.ComponentLogger(base, "import-content")

	parts, err := catalog.LoadParts(cfg.Catalog.PartsDir)
	if err != nil {
		logger.Fatal("loading parts", zap.Error(err))
	}
	properties, err := catalog.LoadProperties(cfg.Catalog.PropertiesDir)
	if err != nil {
		logger.Fatal("loading properties", zap.Error(err))
	}
	progression, err := catalog.LoadProgression(cfg.Catalog.ProgressionFile)
	if err != nil {
		logger.Fatal("loading progression", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewCatalogRepository(pool.DB())
	if err := repo.ImportParts(ctx, parts); err != nil {
		logger.Fatal("importing parts", zap.Error(err))
	}
	if err := repo.ImportProperties(ctx, properties); err != nil {
		logger.Fatal("importing properties", zap.Error(err))
	}
	if err := repo.ImportProgression(ctx, progression); err != nil {
		logger.Fatal("importing progression", zap.Error(err))
	}

	logger.Info("import complete",
		zap.Int("parts", len(parts)),
		zap.Int("properties", len(properties)),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Fprintf(os.Stdout, "import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
