package models

import "time"

// Emoji is one of the reactions an audience member can float on screen
type Emoji string

const (
	EmojiThumbsUp  Emoji = "👍"
	EmojiHeart     Emoji = "❤️"
	EmojiLaugh     Emoji = "😂"
	EmojiSurprised Emoji = "😮"
	EmojiClap      Emoji = "👏"
	EmojiParty     Emoji = "🎉"
	EmojiThinking  Emoji = "🤔"
	EmojiIdea      Emoji = "💡"
)

// AllowedEmoji lists the reaction set in display order
var AllowedEmoji = []Emoji{
	EmojiThumbsUp,
	EmojiHeart,
	EmojiLaugh,
	EmojiSurprised,
	EmojiClap,
	EmojiParty,
	EmojiThinking,
	EmojiIdea,
}

// IsAllowedEmoji reports whether e belongs to the reaction set
func IsAllowedEmoji(e string) bool {
	for _, allowed := range AllowedEmoji {
		if string(allowed) == e {
			return true
		}
	}
	return false
}

// Reaction is a fire-and-forget emoji broadcast. It is never stored.
type Reaction struct {
	// ID is chosen by the sender so it can recognise its own echo
	ID    string `json:"id"`
	Emoji Emoji  `json:"emoji"`
	// X and Y place the emoji as fractions of the screen, both in [0, 1]
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	SentAt   time.Time `json:"sentAt"`
}
