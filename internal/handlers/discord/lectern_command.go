package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

const (
	// Subcommands
	SubcommandStatus    = "status"
	SubcommandAsk       = "ask"
	SubcommandVote      = "vote"
	SubcommandReact     = "react"
	SubcommandQuestions = "questions"

	// Component custom id prefixes, followed by ":"-separated arguments
	ComponentVote   = "vote"
	ComponentUpvote = "upvote"

	// maxButtons is Discord's limit of five rows of five
	maxButtons = 25

	// questionsShown caps the open questions listed by /lectern questions
	questionsShown = 5
)

var errUnknownComponent = errors.New("unknown component")

// LecternConfig holds the services the command drives
type LecternConfig struct {
	SessionService  session.Service
	PresenceService presence.Service
	PollService     poll.Service
	QAService       qa.Service
	ReactionService reaction.Service
	Messaging       messaging.Service
}

// LecternCommand is /lectern, letting a Discord channel follow a session
type LecternCommand struct {
	BaseCommand
	sessions  session.Service
	presence  presence.Service
	polls     poll.Service
	qa        qa.Service
	reactions reaction.Service
	messaging messaging.Service
}

// NewLecternCommand creates the /lectern command
func NewLecternCommand(cfg *LecternConfig) (*LecternCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.PresenceService == nil {
		return nil, errors.New("presence service cannot be nil")
	}
	if cfg.PollService == nil {
		return nil, errors.New("poll service cannot be nil")
	}
	if cfg.QAService == nil {
		return nil, errors.New("qa service cannot be nil")
	}
	if cfg.ReactionService == nil {
		return nil, errors.New("reaction service cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	codeOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "code",
		Description: "Session code shown on the presenter's screen",
		Required:    true,
		MinLength:   intPtr(codegen.Length),
		MaxLength:   codegen.Length,
	}

	emojiChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.AllowedEmoji))
	for _, emoji := range models.AllowedEmoji {
		emojiChoices = append(emojiChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(emoji),
			Value: string(emoji),
		})
	}

	return &LecternCommand{
		BaseCommand: BaseCommand{
			Name:        "lectern",
			Description: "Follow along with a live presentation",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStatus,
					Description: "Show where the session is at",
					Options:     []*discordgo.ApplicationCommandOption{codeOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandAsk,
					Description: "Ask the presenter a question",
					Options: []*discordgo.ApplicationCommandOption{
						codeOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "question",
							Description: "Your question",
							Required:    true,
							MaxLength:   models.MaxQuestionLength,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandVote,
					Description: "Vote in the open poll",
					Options:     []*discordgo.ApplicationCommandOption{codeOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandReact,
					Description: "Float a reaction over the slides",
					Options: []*discordgo.ApplicationCommandOption{
						codeOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "emoji",
							Description: "Reaction to send",
							Required:    true,
							Choices:     emojiChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandQuestions,
					Description: "Upvote the questions you want answered",
					Options:     []*discordgo.ApplicationCommandOption{codeOption},
				},
			},
		},
		sessions:  cfg.SessionService,
		presence:  cfg.PresenceService,
		polls:     cfg.PollService,
		qa:        cfg.QAService,
		reactions: cfg.ReactionService,
		messaging: cfg.Messaging,
	}, nil
}

func intPtr(v int) *int {
	return &v
}

// Handle dispatches a /lectern subcommand
func (c *LecternCommand) Handle(ctx context.Context, user *User, data discordgo.ApplicationCommandInteractionData) (*discordgo.InteractionResponseData, error) {
	if len(data.Options) == 0 {
		return ephemeralMessage("Pick a subcommand, for example `/lectern status`."), nil
	}

	sub := data.Options[0]
	options := make(map[string]string, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt.StringValue()
	}
	code := codegen.Normalize(options["code"])

	switch sub.Name {
	case SubcommandStatus:
		return c.status(ctx, code)
	case SubcommandAsk:
		return c.ask(ctx, user, code, options["question"])
	case SubcommandVote:
		return c.showPoll(ctx, code)
	case SubcommandReact:
		return c.react(ctx, user, code, options["emoji"])
	case SubcommandQuestions:
		return c.showQuestions(ctx, user, code)
	default:
		return ephemeralMessage(fmt.Sprintf("Unknown subcommand %q.", sub.Name)), nil
	}
}

// HandleComponent handles the vote and upvote buttons
func (c *LecternCommand) HandleComponent(ctx context.Context, user *User, customID string) (*discordgo.InteractionResponseData, error) {
	parts := strings.Split(customID, ":")
	switch {
	case len(parts) == 4 && parts[0] == ComponentVote:
		index, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, errUnknownComponent
		}
		return c.vote(ctx, user, parts[1], parts[2], index)
	case len(parts) == 3 && parts[0] == ComponentUpvote:
		return c.upvote(ctx, user, parts[1], parts[2])
	default:
		return nil, errUnknownComponent
	}
}

// ErrorResponse turns a service error into a friendly ephemeral reply
func (c *LecternCommand) ErrorResponse(ctx context.Context, err error) *discordgo.InteractionResponseData {
	output, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: messaging.ErrorTypeOf(err),
	})
	if msgErr != nil {
		return ephemeralError("Something went wrong. Try again in a moment.")
	}
	return ephemeralError(output.Message)
}

func (c *LecternCommand) status(ctx context.Context, code string) (*discordgo.InteractionResponseData, error) {
	found, err := c.sessions.GetSession(ctx, &session.GetSessionInput{Code: code})
	if err != nil {
		return nil, err
	}

	input := &messaging.GetSessionStatusMessageInput{Session: found.Session}
	if found.Session.IsActive {
		participants, err := c.presence.List(ctx, &presence.ListInput{Code: code})
		if err != nil {
			return nil, err
		}
		input.ParticipantCount = len(participants.Participants)

		polls, err := c.polls.ListPolls(ctx, &poll.ListPollsInput{Code: code})
		if err != nil {
			return nil, err
		}
		input.ActivePoll = polls.ActivePoll

		questions, err := c.qa.ListQuestions(ctx, &qa.ListQuestionsInput{Code: code})
		if err != nil {
			return nil, err
		}
		for _, q := range questions.Questions {
			if !q.IsAnswered {
				input.OpenQuestions++
			}
		}
	}

	status, err := c.messaging.GetSessionStatusMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	return embedResponse(status.Title, status.Message, colorInfo, []*discordgo.MessageEmbedField{
		{Name: "Code", Value: found.Session.Code, Inline: true},
	}), nil
}

func (c *LecternCommand) ask(ctx context.Context, user *User, code, text string) (*discordgo.InteractionResponseData, error) {
	output, err := c.qa.SubmitQuestion(ctx, &qa.SubmitQuestionInput{
		Code:      code,
		Text:      text,
		AskerID:   user.AudienceID(),
		AskerName: user.Name,
	})
	if err != nil {
		return nil, err
	}

	return embedResponse("Question sent", output.Question.Text, colorOK, []*discordgo.MessageEmbedField{
		{Name: "Asked by", Value: output.Question.AskerName, Inline: true},
	}), nil
}

func (c *LecternCommand) showPoll(ctx context.Context, code string) (*discordgo.InteractionResponseData, error) {
	polls, err := c.polls.ListPolls(ctx, &poll.ListPollsInput{Code: code})
	if err != nil {
		return nil, err
	}
	if polls.ActivePoll == nil {
		return ephemeralMessage("There is no open poll right now."), nil
	}

	return renderPoll(code, polls.ActivePoll), nil
}

func (c *LecternCommand) vote(ctx context.Context, user *User, code, pollID string, index int) (*discordgo.InteractionResponseData, error) {
	output, err := c.polls.Vote(ctx, &poll.VoteInput{
		Code:        code,
		PollID:      pollID,
		OptionIndex: index,
		UserID:      user.AudienceID(),
	})
	if err != nil {
		return nil, err
	}

	if !output.Recorded {
		return ephemeralMessage("You've already voted in this poll."), nil
	}
	return ephemeralMessage(fmt.Sprintf("Vote recorded for **%s**.", output.Poll.Options[index].Text)), nil
}

func (c *LecternCommand) react(ctx context.Context, user *User, code, emoji string) (*discordgo.InteractionResponseData, error) {
	// Discord has no pointer position, so reactions rise from the bottom centre
	_, err := c.reactions.Send(ctx, &reaction.SendInput{
		Code:     code,
		Emoji:    emoji,
		X:        0.5,
		Y:        0.9,
		UserID:   user.AudienceID(),
		UserName: user.Name,
	})
	if err != nil {
		return nil, err
	}
	return ephemeralMessage(emoji + " sent!"), nil
}

func (c *LecternCommand) showQuestions(ctx context.Context, user *User, code string) (*discordgo.InteractionResponseData, error) {
	output, err := c.qa.ListQuestions(ctx, &qa.ListQuestionsInput{Code: code})
	if err != nil {
		return nil, err
	}

	return renderQuestions(code, output.Questions, user.AudienceID()), nil
}

func (c *LecternCommand) upvote(ctx context.Context, user *User, code, questionID string) (*discordgo.InteractionResponseData, error) {
	output, err := c.qa.Upvote(ctx, &qa.UpvoteInput{
		Code:       code,
		QuestionID: questionID,
		UserID:     user.AudienceID(),
	})
	if err != nil {
		return nil, err
	}

	if !output.Recorded {
		return ephemeralMessage("You've already upvoted that question."), nil
	}
	return ephemeralMessage("Upvoted!"), nil
}
