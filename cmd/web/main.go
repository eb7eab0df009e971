// File: cmd/web/main.go
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

	"telegram-tarot-bot/internal/config"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/infra/metrics"
	"telegram-tarot-bot/internal/infra/storage/jsonfile"
	"telegram-tarot-bot/internal/infra/web"
	"telegram-tarot-bot/internal/usecase"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateWeb(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	catalog, err := jsonfile.LoadCardCatalog(cfg.Data.CardsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Data.CardsFile).Msg("card catalog load failed")
	}
	logger.Info().Int("cards", catalog.Len()).Msg("card catalog loaded")

	cardUC := usecase.NewCardUseCase(catalog, logger)
	srv := web.NewServer(cardUC, logger)

	server := &http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("card picker listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}
}
