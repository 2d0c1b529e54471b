package fetcher

import (
	"context"
	"fmt"

	"brief-scraper/parser"
)

// DetailExtractor fetches detail pages and extracts the labeled text
type DetailExtractor struct {
	client Getter
	parser *parser.DetailParser
}

// NewDetailExtractor creates a new DetailExtractor
func NewDetailExtractor(client Getter, p *parser.DetailParser) *DetailExtractor {
	return &DetailExtractor{
		client: client,
		parser: p,
	}
}

// Extract fetches url and returns the text of the first div carrying the
// parser's default class.
func (de *DetailExtractor) Extract(ctx context.Context, url string) (string, error) {
	return de.ExtractWithClass(ctx, url, de.parser.Class())
}

// ExtractWithClass is Extract with an explicit class token. A panic while
// handling the page is recovered and reported as ErrUnexpected.
func (de *DetailExtractor) ExtractWithClass(ctx context.Context, url, class string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", ErrUnexpected, url, r)
		}
	}()

	resp, err := de.client.Get(ctx, url)
	if err != nil {
		return "", err
	}

	body, err := htmlBody(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}

	text, err = de.parser.ParseDetailPageWithClass(body, class)
	if err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}

	return text, nil
}
