package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/lectern/internal/app"
	"github.com/KirkDiggler/lectern/internal/common/logging"
	"github.com/KirkDiggler/lectern/internal/config"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Log for humans until the config says otherwise
	logging.Setup(config.ModeDev, "info")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Mode, cfg.LogLevel)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close()

	handler, err := a.APIHandler()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create api handler")
	}

	bot, err := a.DiscordBot()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord bot")
	}
	if bot != nil {
		if err := bot.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start discord bot")
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("bus", cfg.Bus).Msg("lectern server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error().Err(err).Msg("error stopping discord bot")
		}
	}
	// Hijacked websockets are not tracked by Shutdown, their read pumps end
	// when the process exits and presence entries expire with the session
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited gracefully")
}
