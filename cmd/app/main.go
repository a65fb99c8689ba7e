// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"telegram-lookup-bot/internal/application"
	"telegram-lookup-bot/internal/config"
	lookupAdapters "telegram-lookup-bot/internal/infra/adapters/lookup"
	tele "telegram-lookup-bot/internal/infra/adapters/telegram"
	pg "telegram-lookup-bot/internal/infra/db/postgres"
	"telegram-lookup-bot/internal/infra/logging"
	"telegram-lookup-bot/internal/infra/metrics"
	red "telegram-lookup-bot/internal/infra/redis"
	"telegram-lookup-bot/internal/infra/web"
	"telegram-lookup-bot/internal/usecase"

	domadapter "telegram-lookup-bot/internal/domain/ports/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	// ---- Repositories ----
	accountRepo := pg.NewPostgresAccountRepo(pool)
	codeRepo := pg.NewPostgresCodeRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Use cases ----
	policy := usecase.NewAccessPolicy(cfg.Bot.AdminIDs)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, tm, cfg.Credits.DailyFree, logger)
	codeUC := usecase.NewCodeUseCase(codeRepo, accountRepo, tm, logger)

	// ---- Lookup adapter (optionally cached via Redis) ----
	var lookup domadapter.LookupAdapter
	lookup, err = lookupAdapters.NewHTTPLookupAdapter(cfg.Lookup.APITemplate, cfg.Lookup.Timeout, logger, cfg.Runtime.Dev)
	if err != nil {
		logger.Fatal().Err(err).Msg("lookup adapter init failed")
	}
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		cache := red.NewLookupCache(redisClient, cfg.Lookup.CacheTTL)
		lookup = lookupAdapters.NewCachedLookupAdapter(lookup, cache, logger)
		logger.Info().Dur("ttl", cfg.Lookup.CacheTTL).Msg("lookup cache enabled")
	}

	lookupUC := usecase.NewLookupUseCase(ledgerUC, policy, lookup, cfg.Credits.LookupCost, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(ledgerUC, codeUC, lookupUC, policy, cfg.Credits.DailyFree)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Admin API ----
	var webServer *web.Server
	if cfg.Web.Port > 0 {
		webServer = web.NewServer(&cfg.Web, codeUC, ledgerUC, cfg.Runtime.Dev, logger)
		go func() {
			if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("admin api stopped")
			}
		}()
	}

	logger.Info().Msg("bot started")

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	cancel()
	botAdapter.StopPolling()
	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("admin api shutdown failed")
		}
	}
}
