package models

// MaxKeyPoints is the most key points a follower view shows per slide
const MaxKeyPoints = 5

// SlideContent is the audience-safe view of one slide, derived from the
// presenter's rendered markup
type SlideContent struct {
	SlideNumber  int            `json:"slideNumber"`
	Title        string         `json:"title,omitempty"`
	KeyPoints    []string       `json:"keyPoints"`
	FillInBlanks []*FillInBlank `json:"fillInBlanks,omitempty"`
	Poll         *SlidePoll     `json:"poll,omitempty"`
}

// FillInBlank is a blank found in the slide text. Answer is supplied by the
// content generator and stays empty here.
type FillInBlank struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"answer"`
	Revealed bool   `json:"revealed"`
}

// SlidePoll is a poll authored directly on the slide
type SlidePoll struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Votes    []int    `json:"votes"`
}
