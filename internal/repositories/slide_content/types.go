package slide_content

import "github.com/KirkDiggler/lectern/internal/models"

type SaveSlideContentInput struct {
	SessionCode string
	Content     *models.SlideContent
}

type GetSlideContentInput struct {
	SessionCode string
	SlideNumber int
}
