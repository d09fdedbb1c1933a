package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"intern-watch/internal/app"
	"intern-watch/internal/classify"
	"intern-watch/internal/config"
	"intern-watch/internal/extract"
	"intern-watch/internal/fetcher"
	"intern-watch/internal/notify"
	"intern-watch/internal/observability"
	"intern-watch/internal/storage"
	"intern-watch/internal/storage/jsonfile"
	"intern-watch/internal/storage/redisstore"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Credentials come from the environment; a local .env is optional.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	defer func() { _ = logger.Sync() }()

	repo, err := newRepository(cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "driver", cfg.Storage.Driver, "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("storage close failed", "error", err.Error())
		}
	}()

	f := fetcher.NewFetcher(cfg, logger)

	cards, err := extract.NewCardExtractor(cfg.Sources.Cards, logger)
	if err != nil {
		logger.Error("card extractor init failed", "error", err.Error())
		os.Exit(1)
	}
	markdown := extract.NewMarkdownExtractor(f, cfg.Sources.Markdown, logger)

	orch := app.NewOrchestrator(
		cfg,
		logger,
		f,
		cards,
		markdown,
		classify.New(classifierRules(cfg)),
		notify.NewComposer(cfg.Notify.BatchSize),
		notify.NewNotifier(
			notify.NewSMSSender(cfg.Notify.SMS, logger),
			notify.NewEmailSender(cfg.Notify.Email, logger),
		),
		repo,
	)

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	if err := app.NewScheduler(cfg, logger, orch).Run(ctx); err != nil {
		logger.Error("fatal: run crashed", "error", err.Error())
		os.Exit(1)
	}
}

func newRepository(cfg *config.Config, logger *observability.Logger) (storage.Repository, error) {
	if cfg.Storage.Driver == "redis" {
		return redisstore.NewRepository(context.Background(), cfg.Storage.RedisURL, cfg.Storage.RedisKey, logger)
	}
	return jsonfile.NewRepository(cfg.Storage.Path, logger), nil
}

func classifierRules(cfg *config.Config) []classify.Rule {
	rules := make([]classify.Rule, 0, len(cfg.Classify.Rules))
	for _, r := range cfg.Classify.Rules {
		rules = append(rules, classify.Rule{Category: r.Category, Keywords: r.Keywords})
	}
	return rules
}
