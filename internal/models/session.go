package models

import (
	"time"
)

// Session is a live, presenter-led event that followers join by code
type Session struct {
	// Code is the 6 character join code, always upper case
	Code string `json:"code"`

	// Title is the presentation title shown to followers
	Title string `json:"title"`

	// TotalSlides is the number of slides in the deck
	TotalSlides int `json:"totalSlides"`

	// CurrentSlide is the 0-based index of the slide on screen
	CurrentSlide int `json:"currentSlide"`

	// IsActive is false once the presenter ends the session
	IsActive bool `json:"isActive"`

	// StartedAt is when the session was created
	StartedAt time.Time `json:"startedAt"`

	// EndedAt is set when the session is ended
	EndedAt *time.Time `json:"endedAt,omitempty"`

	// PresenterName is the optional display name of the presenter
	PresenterName string `json:"presenterName,omitempty"`
}

// HasSlide reports whether index is a valid slide of the deck
func (s *Session) HasSlide(index int) bool {
	return index >= 0 && index < s.TotalSlides
}

// End marks the session inactive. It returns false if it was already ended.
func (s *Session) End(at time.Time) bool {
	if !s.IsActive {
		return false
	}
	s.IsActive = false
	s.EndedAt = &at
	return true
}
