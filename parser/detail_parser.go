package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrElementNotFound is returned when the page has no div carrying the class.
var ErrElementNotFound = errors.New("element not found")

// targetTag is the only element type searched for.
const targetTag = "div"

// DetailParser extracts the text of a labeled div from detail pages
type DetailParser struct {
	class string
}

// NewDetailParser creates a new DetailParser looking for div elements
// carrying the given class token
func NewDetailParser(class string) *DetailParser {
	return &DetailParser{class: class}
}

// Class returns the class token the parser looks for.
func (dp *DetailParser) Class() string {
	return dp.class
}

// ParseDetailPage returns the trimmed text of the first matching div.
func (dp *DetailParser) ParseDetailPage(body []byte) (string, error) {
	return dp.ParseDetailPageWithClass(body, dp.class)
}

// ParseDetailPageWithClass is ParseDetailPage with an explicit class token.
func (dp *DetailParser) ParseDetailPageWithClass(body []byte, class string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	target := findTarget(doc, class)
	if target.Length() == 0 {
		return "", fmt.Errorf("no %s with class %q: %w", targetTag, class, ErrElementNotFound)
	}

	return strings.TrimSpace(target.Text()), nil
}

// findTarget returns the first div, in document order, whose class list
// contains class. The token is compared literally so class names that are
// not valid CSS identifiers still match.
func findTarget(doc *goquery.Document, class string) *goquery.Selection {
	return doc.Find(targetTag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	}).First()
}
