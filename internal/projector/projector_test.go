package projector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ProjectorTestSuite struct {
	suite.Suite
}

func TestProjectorTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectorTestSuite))
}

func (s *ProjectorTestSuite) TestTitleFromFirstHeading() {
	content := Parse(`<section><h2> Beta   Blockers </h2><h1>Later</h1></section>`, 0)
	s.Equal("Beta Blockers", content.Title)
	s.Equal(0, content.SlideNumber)
}

func (s *ProjectorTestSuite) TestTitleFromTitleClass() {
	content := Parse(`<div class="slide-Title">Renal Dosing</div><h3>Sub</h3>`, 1)
	s.Equal("Renal Dosing", content.Title)
}

func (s *ProjectorTestSuite) TestKeyPointsCappedAndFiltered() {
	long := strings.Repeat("x", MaxKeyPointLength+1)
	markup := `<ul>
		<li>One</li><li>   </li><li>` + long + `</li>
		<li>Two</li><li>Three</li><li>Four</li><li>Five</li><li>Six</li>
	</ul>`

	content := Parse(markup, 2)
	s.Equal([]string{"One", "Two", "Three", "Four", "Five"}, content.KeyPoints)
}

func (s *ProjectorTestSuite) TestKeyPointAtLengthLimitKept() {
	exact := strings.Repeat("y", MaxKeyPointLength)
	content := Parse(`<ul><li>`+exact+`</li></ul>`, 0)
	s.Equal([]string{exact}, content.KeyPoints)
}

func (s *ProjectorTestSuite) TestBlanksFromMarkers() {
	markup := `<p>The first-line drug is ___ and the target is [BLANK].</p>
		<ul><li>Dose in [fill] mg</li></ul>
		<span>No markers here</span>
		<td>__</td>`

	content := Parse(markup, 4)
	s.Require().Len(content.FillInBlanks, 3)

	s.Equal("blank-4-1", content.FillInBlanks[0].ID)
	s.Equal("The first-line drug is ____ and the target is ____.", content.FillInBlanks[0].Prompt)
	s.Equal("blank-4-2", content.FillInBlanks[1].ID)
	s.Equal("blank-4-3", content.FillInBlanks[2].ID)
	s.Equal("Dose in ____ mg", content.FillInBlanks[2].Prompt)

	for _, blank := range content.FillInBlanks {
		s.Empty(blank.Answer)
		s.False(blank.Revealed)
	}
}

func (s *ProjectorTestSuite) TestNestedScannedElementsCountOnce() {
	content := Parse(`<p>Outer <span>inner _____ blank</span> text</p>`, 0)
	s.Require().Len(content.FillInBlanks, 1)
	s.Equal("inner ____ blank", content.FillInBlanks[0].Prompt)
}

func (s *ProjectorTestSuite) TestScriptAndStyleIgnored() {
	content := Parse(`<style>.title{}</style><script>var a = "____";</script><p>plain</p>`, 0)
	s.Empty(content.Title)
	s.Empty(content.FillInBlanks)
}

func (s *ProjectorTestSuite) TestSlidePoll() {
	markup := `<div data-poll-question="Which is first line?">
		<button data-poll-option="Metformin"></button>
		<button data-poll-option>Insulin</button>
		<button data-poll-option="  "></button>
	</div>`

	content := Parse(markup, 3)
	s.Require().NotNil(content.Poll)
	s.Equal("Which is first line?", content.Poll.Question)
	s.Equal([]string{"Metformin", "Insulin"}, content.Poll.Options)
	s.Equal([]int{0, 0}, content.Poll.Votes)
}

func (s *ProjectorTestSuite) TestSlidePollNeedsTwoOptions() {
	content := Parse(`<div data-poll-question="Q?"><span data-poll-option="Only"></span></div>`, 0)
	s.Nil(content.Poll)
}

func (s *ProjectorTestSuite) TestParseIsIdempotent() {
	markup := `<h1>Sepsis</h1><ul><li>Fluids ___</li><li>Antibiotics</li></ul>
		<div data-poll-question="MAP target?"><i data-poll-option="55"></i><i data-poll-option="65"></i></div>`

	s.Equal(Parse(markup, 7), Parse(markup, 7))
}

func (s *ProjectorTestSuite) TestEmptyMarkup() {
	content := Parse("", 5)
	s.Equal(5, content.SlideNumber)
	s.Empty(content.Title)
	s.Empty(content.KeyPoints)
	s.Nil(content.FillInBlanks)
	s.Nil(content.Poll)
}
