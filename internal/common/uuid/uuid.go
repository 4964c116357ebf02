// Package uuid hands out the identifiers used for polls, questions, events
// and floating reactions.
package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/lectern/internal/common/uuid UUID

type UUID interface {
	NewUUID() string
}

// Generator implements the UUID interface using random (v4) UUIDs,
// optionally prefixed so ids are recognisable in logs and Redis keys
type Generator struct {
	prefix string
}

func New() *Generator {
	return &Generator{}
}

// NewWithPrefix returns a generator whose ids look like "<prefix>-<uuid>"
func NewWithPrefix(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// NewUUID returns a new UUID
func (g *Generator) NewUUID() string {
	id := uuid.NewString()
	if g.prefix == "" {
		return id
	}
	return g.prefix + "-" + id
}
