// File: cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"telegram-tarot-bot/internal/application"
	"telegram-tarot-bot/internal/config"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/infra/metrics"
	red "telegram-tarot-bot/internal/infra/redis"
	"telegram-tarot-bot/internal/infra/sched"
	"telegram-tarot-bot/internal/infra/storage/jsonfile"
	tele "telegram-tarot-bot/internal/infra/telegram"
	"telegram-tarot-bot/internal/infra/worker"
	"telegram-tarot-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging)")
	flag.Parse()

	// .env is optional; real deployments use the config file or environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Static tables (fatal on malformed data) ----
	catalog, err := jsonfile.LoadCardCatalog(cfg.Data.CardsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Data.CardsFile).Msg("card catalog load failed")
	}
	schedule, err := jsonfile.LoadScheduleTable(cfg.Data.ScheduleFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Data.ScheduleFile).Msg("schedule load failed")
	}
	logger.Info().Int("cards", catalog.Len()).Int("scheduled", schedule.Len()).Msg("static tables loaded")

	// ---- Redis (optional; only the rate limiter uses it) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer func() { _ = redisClient.Close() }()
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis not configured; rate limiting disabled")
	}

	// ---- Workers ----
	pool := worker.NewPool(cfg.Bot.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	// ---- Telegram adapter + use cases + facade ----
	botAdapter, err := tele.NewRealBotAdapter(cfg, rateLimiter, pool, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}

	subUC := usecase.NewSubscriptionUseCase(cfg.Bot.Channel, botAdapter, logger)
	cardUC := usecase.NewCardUseCase(catalog, logger)
	broadcastUC := usecase.NewBroadcastUseCase(schedule, botAdapter, cfg.Broadcast.ChatID, logger)

	facade := application.NewBotFacade(subUC, cardUC, cfg.Bot.Channel, cfg.Bot.WebAppURL, logger)
	botAdapter.SetFacade(facade)

	if cfg.Bot.Mode != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("mode not implemented; falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("polling stopped")
		}
	}()

	// ---- Daily broadcast ----
	broadcastWorker := sched.NewBroadcastWorker(cfg.Broadcast.Hour, broadcastUC, logger)
	go func() { _ = broadcastWorker.Run(ctx) }()

	// ---- Health/metrics listener ----
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Admin.Port), Handler: mux}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("admin listener started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("admin listener error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	if err := server.Shutdown(shCtx); err != nil {
		logger.Warn().Err(err).Msg("admin listener shutdown error")
	}
}
