package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForUserIsStable(t *testing.T) {
	for _, id := range []string{"u1", "presenter", "7c6e0c1e-7a43-4b44-9d0e-d6a7e4d5c001"} {
		color := ColorForUser(id)
		assert.Contains(t, PresenceColors, color)
		for i := 0; i < 10; i++ {
			assert.Equal(t, color, ColorForUser(id))
		}
	}
}

func TestIsAllowedEmoji(t *testing.T) {
	assert.True(t, IsAllowedEmoji("👍"))
	assert.True(t, IsAllowedEmoji(string(EmojiIdea)))
	assert.False(t, IsAllowedEmoji("🍕"))
	assert.False(t, IsAllowedEmoji(""))
}

func TestSessionEnd(t *testing.T) {
	s := &Session{Code: "ABCDEF", TotalSlides: 3, IsActive: true}
	assert.True(t, s.HasSlide(0))
	assert.True(t, s.HasSlide(2))
	assert.False(t, s.HasSlide(3))
	assert.False(t, s.HasSlide(-1))

	assert.True(t, s.End(s.StartedAt))
	assert.False(t, s.IsActive)
	assert.NotNil(t, s.EndedAt)
	assert.False(t, s.End(s.StartedAt))
}
