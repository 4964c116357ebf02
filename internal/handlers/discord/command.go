package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// User is the Discord member behind an interaction
type User struct {
	ID   string
	Name string
}

// AudienceID namespaces a Discord user so it cannot collide with web followers
func (u *User) AudienceID() string {
	return "discord:" + u.ID
}

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle builds the response to a slash command
	Handle(ctx context.Context, user *User, data discordgo.ApplicationCommandInteractionData) (*discordgo.InteractionResponseData, error)
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

const (
	colorInfo  = 0x3b82f6
	colorOK    = 0x00ff00
	colorError = 0xff0000
)

func embedResponse(title, description string, color int, fields []*discordgo.MessageEmbedField) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: description,
			Color:       color,
			Fields:      fields,
		}},
	}
}

func ephemeralMessage(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func ephemeralError(message string) *discordgo.InteractionResponseData {
	data := embedResponse("Oops", message, colorError, nil)
	data.Flags = discordgo.MessageFlagsEphemeral
	return data
}

// buttonRows packs buttons into action rows of at most five
func buttonRows(buttons []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for len(buttons) > 0 {
		n := len(buttons)
		if n > 5 {
			n = 5
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}
	return rows
}
