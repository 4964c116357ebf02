package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/bwmarrin/discordgo"
)

func renderPoll(code string, p *models.Poll) *discordgo.InteractionResponseData {
	var b strings.Builder
	buttons := make([]discordgo.MessageComponent, 0, len(p.Options))
	for i, option := range p.Options {
		fmt.Fprintf(&b, "**%d.** %s (%d)\n", i+1, option.Text, option.Votes)
		if i < maxButtons {
			buttons = append(buttons, discordgo.Button{
				Label:    truncate(option.Text, 80),
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s:%s:%s:%d", ComponentVote, code, p.ID, i),
			})
		}
	}

	data := embedResponse(p.Question, b.String(), colorInfo, []*discordgo.MessageEmbedField{
		{Name: "Votes", Value: fmt.Sprintf("%d", p.TotalVotes), Inline: true},
	})
	data.Components = buttonRows(buttons)
	data.Flags = discordgo.MessageFlagsEphemeral
	return data
}

func renderQuestions(code string, questions []*models.Question, userID string) *discordgo.InteractionResponseData {
	var b strings.Builder
	var buttons []discordgo.MessageComponent
	for _, q := range questions {
		if q.IsAnswered {
			continue
		}
		if len(buttons) == questionsShown {
			break
		}
		fmt.Fprintf(&b, "**%d.** %s (%d ▲, %s)\n", len(buttons)+1, q.Text, q.Upvotes, q.AskerName)

		style := discordgo.SecondaryButton
		if q.HasUpvoted(userID) {
			style = discordgo.SuccessButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("▲ %d", len(buttons)+1),
			Style:    style,
			CustomID: fmt.Sprintf("%s:%s:%s", ComponentUpvote, code, q.ID),
		})
	}

	if len(buttons) == 0 {
		return ephemeralMessage("No open questions yet. Ask one with `/lectern ask`.")
	}

	data := embedResponse("Open questions", b.String(), colorInfo, nil)
	data.Components = buttonRows(buttons)
	data.Flags = discordgo.MessageFlagsEphemeral
	return data
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
