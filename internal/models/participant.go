package models

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// PresenceColors is the palette participants are drawn in
var PresenceColors = []string{
	"#EF4444",
	"#F97316",
	"#EAB308",
	"#22C55E",
	"#14B8A6",
	"#3B82F6",
	"#6366F1",
	"#A855F7",
	"#EC4899",
	"#64748B",
}

// ColorForUser maps a user id onto the palette. The mapping only depends on
// the id, so every client draws the same user in the same color.
func ColorForUser(userID string) string {
	return PresenceColors[xxhash.Sum64String(userID)%uint64(len(PresenceColors))]
}

// Participant is a user attached to a session
type Participant struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joinedAt"`
}
