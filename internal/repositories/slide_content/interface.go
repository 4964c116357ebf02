package slide_content

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lectern/internal/repositories/slide_content Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Repository defines the interface for storing projected slide content
type Repository interface {
	// SaveSlideContent overwrites the content stored for a slide index
	SaveSlideContent(ctx context.Context, input *SaveSlideContentInput) error

	// GetSlideContent retrieves the content of a slide index
	GetSlideContent(ctx context.Context, input *GetSlideContentInput) (*models.SlideContent, error)

	// ExpireSession schedules the session's slide content for deletion after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
