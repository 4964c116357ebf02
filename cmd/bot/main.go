package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/lectern/internal/app"
	"github.com/KirkDiggler/lectern/internal/common/logging"
	"github.com/KirkDiggler/lectern/internal/config"
	"github.com/rs/zerolog/log"
)

// The bot runs on its own next to the servers. It shares their Redis, so its
// votes, questions and reactions reach followers over the redis bus.
func main() {
	logging.Setup(config.ModeDev, "info")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Mode, cfg.LogLevel)

	if cfg.DiscordToken == "" {
		log.Fatal().Msg("DISCORD_TOKEN environment variable is required")
	}
	if cfg.Bus != config.BusRedis {
		log.Warn().Str("bus", cfg.Bus).Msg("standalone bot needs the redis bus to reach followers, switching")
		cfg.Bus = config.BusRedis
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close()

	bot, err := a.DiscordBot()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("error stopping bot")
	}

	log.Info().Msg("bot has been shut down")
}
