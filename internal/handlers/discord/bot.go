package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// interactionTimeout bounds service calls, Discord drops responses after 3s
const interactionTimeout = 2500 * time.Millisecond

// Bot lets a Discord channel take part in a live session
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	lectern    *LecternCommand
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	SessionService  session.Service
	PresenceService presence.Service
	PollService     poll.Service
	QAService       qa.Service
	ReactionService reaction.Service
	Messaging       messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	lectern, err := NewLecternCommand(&LecternConfig{
		SessionService:  cfg.SessionService,
		PresenceService: cfg.PresenceService,
		PollService:     cfg.PollService,
		QAService:       cfg.QAService,
		ReactionService: cfg.ReactionService,
		Messaging:       cfg.Messaging,
	})
	if err != nil {
		return nil, err
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		lectern:    lectern,
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.lectern); err != nil {
		return fmt.Errorf("failed to register lectern command: %w", err)
	}

	log.Info().Str("module", "discord").Msg("bot is running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).Str("module", "discord").Str("command", cmdName).Msg("failed to delete command")
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to the session user when no application id was configured
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, per guild when GuildID is set
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().Str("module", "discord").Str("command", cmd.GetName()).Str("guild_id", b.config.GuildID).Msg("registered command")

	return nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	var (
		data *discordgo.InteractionResponseData
		err  error
	)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h, ok := b.commands[i.ApplicationCommandData().Name]
		if !ok {
			return
		}
		data, err = h.Handle(ctx, userOf(i), i.ApplicationCommandData())
	case discordgo.InteractionMessageComponent:
		data, err = b.lectern.HandleComponent(ctx, userOf(i), i.MessageComponentData().CustomID)
	default:
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("module", "discord").Msg("interaction failed")
		data = b.lectern.ErrorResponse(ctx, err)
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		log.Warn().Err(err).Str("module", "discord").Msg("failed to respond to interaction")
	}
}

// userOf reads the invoking user from a guild or DM interaction
func userOf(i *discordgo.InteractionCreate) *User {
	u := &User{}
	if i.Member != nil && i.Member.User != nil {
		u.ID = i.Member.User.ID
		u.Name = i.Member.User.Username
		if i.Member.Nick != "" {
			u.Name = i.Member.Nick
		}
	} else if i.User != nil {
		u.ID = i.User.ID
		u.Name = i.User.Username
	}
	u.Name = strings.TrimSpace(u.Name)
	return u
}
