package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lectern/internal/bus"
	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/config"
	"github.com/KirkDiggler/lectern/internal/handlers/api"
	"github.com/KirkDiggler/lectern/internal/handlers/discord"
	pollRepo "github.com/KirkDiggler/lectern/internal/repositories/poll"
	presenceRepo "github.com/KirkDiggler/lectern/internal/repositories/presence"
	questionRepo "github.com/KirkDiggler/lectern/internal/repositories/question"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// App holds every wired service
type App struct {
	Config *config.Config
	Redis  *redis.Client

	Broadcaster broadcast.Service
	Sessions    session.Service
	Presence    presence.Service
	Polls       poll.Service
	QA          qa.Service
	Reactions   reaction.Service
	Messaging   messaging.Service
}

// New connects to Redis and wires repositories, the bus and services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	a, err := Wire(cfg, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	return a, nil
}

// Wire builds the app on an existing client, tests pass a miniredis one
func Wire(cfg *config.Config, client *redis.Client) (*App, error) {
	systemClock := &clock.DefaultClock{}
	ids := uuid.New()

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}
	participants, err := presenceRepo.NewRedis(&presenceRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create presence repository: %w", err)
	}
	slides, err := slideContentRepo.NewRedis(&slideContentRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create slide content repository: %w", err)
	}
	polls, err := pollRepo.NewRedis(&pollRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create poll repository: %w", err)
	}
	questions, err := questionRepo.NewRedis(&questionRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create question repository: %w", err)
	}

	var eventBus bus.Bus
	switch cfg.Bus {
	case config.BusMemory:
		eventBus, err = bus.NewMemory(&bus.MemoryConfig{Clock: systemClock})
	default:
		eventBus, err = bus.NewRedis(&bus.RedisConfig{RedisClient: client})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bus: %w", cfg.Bus, err)
	}

	broadcaster, err := broadcast.New(&broadcast.Config{
		Bus:              eventBus,
		SessionRepo:      sessions,
		PresenceRepo:     participants,
		SlideContentRepo: slides,
		PollRepo:         polls,
		QuestionRepo:     questions,
		Clock:            systemClock,
		UUIDGenerator:    ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create broadcast service: %w", err)
	}

	issuer, err := token.NewJWT(&token.Config{
		Secret: cfg.TokenSecret,
		TTL:    cfg.TokenTTL,
		Clock:  systemClock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	sessionSvc, err := session.New(&session.Config{
		EndGrace:         cfg.EndGrace,
		PublicOrigin:     cfg.PublicOrigin,
		SessionRepo:      sessions,
		SlideContentRepo: slides,
		Expirers:         []session.Expirer{participants, slides, polls, questions, broadcaster},
		Broadcaster:      broadcaster,
		CodeGenerator:    codegen.New(&codegen.Config{}),
		TokenIssuer:      issuer,
		Clock:            systemClock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	presenceSvc, err := presence.New(&presence.Config{
		SessionRepo:  sessions,
		PresenceRepo: participants,
		Broadcaster:  broadcaster,
		Clock:        systemClock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create presence service: %w", err)
	}

	pollSvc, err := poll.New(&poll.Config{
		SessionRepo:   sessions,
		PollRepo:      polls,
		Broadcaster:   broadcaster,
		TokenIssuer:   issuer,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poll service: %w", err)
	}

	qaSvc, err := qa.New(&qa.Config{
		SessionRepo:   sessions,
		QuestionRepo:  questions,
		Broadcaster:   broadcaster,
		TokenIssuer:   issuer,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qa service: %w", err)
	}

	reactionSvc, err := reaction.New(&reaction.Config{
		RateLimit:     cfg.ReactionRateLimit,
		RateWindow:    cfg.ReactionRateWindow,
		RedisClient:   client,
		SessionRepo:   sessions,
		Broadcaster:   broadcaster,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reaction service: %w", err)
	}

	messages, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging service: %w", err)
	}

	log.Info().Str("module", "app").Str("bus", cfg.Bus).Str("redis", cfg.RedisAddr).Msg("services wired")

	return &App{
		Config:      cfg,
		Redis:       client,
		Broadcaster: broadcaster,
		Sessions:    sessionSvc,
		Presence:    presenceSvc,
		Polls:       pollSvc,
		QA:          qaSvc,
		Reactions:   reactionSvc,
		Messaging:   messages,
	}, nil
}

// APIHandler builds the REST and websocket handler
func (a *App) APIHandler() (*api.Handler, error) {
	return api.New(&api.Config{
		SessionService:  a.Sessions,
		PresenceService: a.Presence,
		PollService:     a.Polls,
		QAService:       a.QA,
		ReactionService: a.Reactions,
		Broadcaster:     a.Broadcaster,
		Messaging:       a.Messaging,
		AllowedOrigins:  a.Config.AllowedOrigins,
		SendBuffer:      a.Config.SendBuffer,
		PingInterval:    a.Config.PingInterval,
	})
}

// DiscordBot builds the bot, nil when no Discord token is configured
func (a *App) DiscordBot() (*discord.Bot, error) {
	if a.Config.DiscordToken == "" {
		return nil, nil
	}
	return discord.New(&discord.Config{
		Token:           a.Config.DiscordToken,
		ApplicationID:   a.Config.DiscordApplicationID,
		GuildID:         a.Config.DiscordGuildID,
		SessionService:  a.Sessions,
		PresenceService: a.Presence,
		PollService:     a.Polls,
		QAService:       a.QA,
		ReactionService: a.Reactions,
		Messaging:       a.Messaging,
	})
}

// Close releases the Redis connection
func (a *App) Close() error {
	return a.Redis.Close()
}
