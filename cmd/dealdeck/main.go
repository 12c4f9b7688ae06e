package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
	"github.com/ohcanadadeals/dealdeck/internal/config"
	"github.com/ohcanadadeals/dealdeck/internal/ingest"
	"github.com/ohcanadadeals/dealdeck/internal/presets"
	"github.com/ohcanadadeals/dealdeck/internal/server"
	"github.com/ohcanadadeals/dealdeck/internal/store"
	"github.com/ohcanadadeals/dealdeck/internal/version"
)

func main() {
	// Maintenance subcommands run before flag parsing so they keep their
	// own flag sets.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		}
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("DealDeck server starting", zap.String("version", version.Short()))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Preset storage.
	db, err := store.New(cfg.GetString("store.path"))
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer db.Close()

	presetRepo, err := presets.NewSQLiteRepository(ctx, db)
	if err != nil {
		logger.Fatal("failed to initialize preset storage", zap.Error(err))
	}
	presetService := presets.NewService(presetRepo, logger)

	// Catalog ingestion: one engine per region, all loaded from
	// <data_dir>/<region>/*.json.
	categories := ingest.NewCategoryTable()
	loader := ingest.NewLoader(categories, logger)
	dataDir := cfg.GetString("catalog.data_dir")
	regions := cfg.GetStringSlice("catalog.regions")

	loadRegion := func(region string) []catalog.Product {
		return loader.LoadDir(filepath.Join(dataDir, region))
	}

	engines := make(map[string]*catalog.Engine, len(regions))
	for _, region := range regions {
		engine := catalog.NewEngine()
		products := loadRegion(region)
		engine.SetProducts(products)
		engines[region] = engine
		logger.Info("catalog loaded",
			zap.String("region", region),
			zap.Int("products", len(products)),
		)
	}

	descriptors, err := categories.Descriptors()
	if err != nil {
		logger.Fatal("failed to load category table", zap.Error(err))
	}

	catalogHandler := catalog.NewHandler(engines, catalog.HandlerConfig{
		AffiliateTag:     cfg.GetString("catalog.affiliate_tag"),
		PlaceholderImage: cfg.GetString("catalog.placeholder_image"),
		Categories:       descriptors,
		Reload:           loadRegion,
	}, logger)
	presetHandler := presets.NewHandler(presetService, logger)

	addr := fmt.Sprintf("%s:%d", cfg.GetString("server.host"), cfg.GetInt("server.port"))
	srv := server.New(addr, logger, server.Options{
		AllowedOrigins: cfg.GetStringSlice("server.allowed_origins"),
		RateLimit:      cfg.GetFloat64("server.rate_limit"),
		RateBurst:      cfg.GetInt("server.rate_burst"),
	}, catalogHandler, presetHandler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("DealDeck server ready", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("DealDeck server stopped")
}
