// Package projector derives the audience-safe SlideContent from rendered
// slide markup. Parsing is pure: the same markup always yields the same content.
package projector

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/lectern/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MaxKeyPointLength drops list items too long to read on a phone
	MaxKeyPointLength = 200

	// BlankMarker replaces every blank marker in a fill-in-the-blank prompt
	BlankMarker = "____"

	pollQuestionAttr = "data-poll-question"
	pollOptionAttr   = "data-poll-option"
)

var blankPattern = regexp.MustCompile(`(?i)_{3,}|\[blank\]|\[fill\]`)

// Parse projects markup for the given slide index. Markup that cannot be
// read yields content with only the slide number set.
func Parse(markup string, slideNumber int) *models.SlideContent {
	p := &parser{
		content: &models.SlideContent{
			SlideNumber: slideNumber,
			KeyPoints:   []string{},
		},
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return p.content
	}

	p.walk(doc)
	return p.content
}

type parser struct {
	content *models.SlideContent
	blanks  int
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if isSkipped(n) {
			return
		}
		p.visit(n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) visit(n *html.Node) {
	if p.content.Title == "" && isTitle(n) {
		p.content.Title = textOf(n)
	}

	if n.DataAtom == atom.Li && len(p.content.KeyPoints) < models.MaxKeyPoints {
		text := textOf(n)
		if text != "" && utf8.RuneCountInString(text) <= MaxKeyPointLength {
			p.content.KeyPoints = append(p.content.KeyPoints, text)
		}
	}

	if isScanned(n) {
		p.scanBlanks(ownText(n))
	}

	if p.content.Poll == nil {
		if _, ok := attr(n, pollQuestionAttr); ok {
			p.content.Poll = slidePoll(n)
		}
	}
}

// scanBlanks emits one blank per marker found in text
func (p *parser) scanBlanks(text string) {
	matches := blankPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return
	}

	prompt := blankPattern.ReplaceAllString(text, BlankMarker)
	for range matches {
		p.blanks++
		p.content.FillInBlanks = append(p.content.FillInBlanks, &models.FillInBlank{
			ID:       fmt.Sprintf("blank-%d-%d", p.content.SlideNumber, p.blanks),
			Prompt:   prompt,
			Answer:   "",
			Revealed: false,
		})
	}
}

// slidePoll reads a poll authored with data attributes. Fewer than
// MinPollOptions options means there is no poll.
func slidePoll(n *html.Node) *models.SlidePoll {
	question, _ := attr(n, pollQuestionAttr)
	question = collapse(question)
	if question == "" {
		return nil
	}

	var options []string
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.ElementNode {
			if value, ok := attr(c, pollOptionAttr); ok {
				text := collapse(value)
				if text == "" {
					text = textOf(c)
				}
				if text != "" {
					options = append(options, text)
				}
				return
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	if len(options) < models.MinPollOptions {
		return nil
	}

	return &models.SlidePoll{
		Question: question,
		Options:  options,
		Votes:    make([]int, len(options)),
	}
}

func isSkipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template, atom.Noscript:
		return true
	}
	return false
}

func isTitle(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return textOf(n) != ""
	}
	class, _ := attr(n, "class")
	return strings.Contains(strings.ToLower(class), "title") && textOf(n) != ""
}

func isScanned(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Li, atom.Span, atom.Td:
		return true
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textOf is the whitespace-collapsed text of n and all its descendants
func textOf(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n, false)
	return collapse(b.String())
}

// ownText is like textOf but leaves out nested scanned elements, which are
// scanned on their own so a marker is never counted twice
func ownText(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n, true)
	return collapse(b.String())
}

func appendText(b *strings.Builder, n *html.Node, skipScanned bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if isSkipped(c) || (skipScanned && isScanned(c)) {
				continue
			}
			appendText(b, c, skipScanned)
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
