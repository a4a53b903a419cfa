package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/app"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/config"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/database"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/extraction"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/knowledge"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/logging"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/metrics"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/redis"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/risk"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/server"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/stacking"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *redis.Client {
	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		slog.Error("Failed to ping Redis", "error", err)
		os.Exit(1)
	}

	return client
}

type knowledgeBase struct {
	taxonomy *knowledge.Taxonomy
	registry *knowledge.Registry
	advice   *knowledge.AdviceRegistry
}

func setupKnowledge(cfg *config.Config) knowledgeBase {
	taxonomy, err := knowledge.LoadAllergenTaxonomy(cfg.AllergenTaxonomyPath)
	if err != nil {
		slog.Error("Failed to load allergen taxonomy", "error", err)
		os.Exit(1)
	}
	registry, err := knowledge.LoadFunctionalRegistry(cfg.FunctionalRegistryPath)
	if err != nil {
		slog.Error("Failed to load functional registry", "error", err)
		os.Exit(1)
	}
	advice, err := knowledge.LoadAdviceRegistry(cfg.AdviceRegistryPath)
	if err != nil {
		slog.Error("Failed to load advice registry", "error", err)
		os.Exit(1)
	}

	slog.Info("Knowledge base loaded",
		"taxonomy_version", taxonomy.Version,
		"registry_version", registry.Version,
		"advice_version", advice.Version)

	// Orphan advice is a content defect, not a startup failure.
	orphans := knowledge.ValidateNoOrphanAdvice(taxonomy, advice)
	metrics.KnowledgeOrphanAdviceEntries.Set(float64(len(orphans)))
	for _, target := range orphans {
		slog.Warn("Advice entry targets unknown taxonomy node", "target", target)
	}

	return knowledgeBase{taxonomy: taxonomy, registry: registry, advice: advice}
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	kb := setupKnowledge(cfg)
	matcher := knowledge.NewMatcher(kb.taxonomy, kb.registry)
	engine := risk.NewEngine()

	profileRepo := database.NewProfileRepo(pool)
	checkRepo := database.NewCheckRepo(pool)
	eventRepo := database.NewEventRepo(pool)

	detector := stacking.NewDetector(checkRepo, eventRepo, matcher, clock)
	extractor := extraction.NewKeywordExtractor()

	// Redis is optional: without it submissions are never rate limited.
	var limiter domain.SubmissionLimiter
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()
		limiter = redis.NewSubmissionLimiter(redisClient.Underlying(), clock, cfg.ChecksPerMinute)
	} else {
		slog.Warn("REDIS_URL not set, check submissions are not rate limited")
	}

	appSvc := app.NewService(profileRepo, checkRepo, eventRepo, extractor, engine, detector, limiter, clock)

	// Pass nil explicitly to avoid a typed-nil interface value.
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, appSvc, pool, redisClient)
	} else {
		srv = server.NewServer(cfg, appSvc, pool, nil)
	}

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
