package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"brief-scraper/fetcher"
	"brief-scraper/filter"
	"brief-scraper/models"
	"brief-scraper/pagerange"
	"brief-scraper/parser"
)

// ErrInvalidRange is returned when the start page is after the end page.
var ErrInvalidRange = errors.New("invalid page range")

// PageFetcher returns the items of one API page
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (models.PageResult, error)
}

// DetailExtractor returns the labeled text of the page at url
type DetailExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Scraper walks a page range and merges every linked item with the text
// extracted from its detail page
type Scraper struct {
	pages   PageFetcher
	details DetailExtractor
	filter  *filter.Filter
	delay   time.Duration
	log     *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
	summary models.Summary
}

// Option configures a Scraper
type Option func(*Scraper)

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scraper) {
		s.log = l
	}
}

// WithSleep replaces the pause taken after each page fetch.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scraper) {
		s.sleep = fn
	}
}

// NewScraper creates a new Scraper that pauses for delay after every page fetch
func NewScraper(pages PageFetcher, details DetailExtractor, delay time.Duration, opts ...Option) *Scraper {
	s := &Scraper{
		pages:   pages,
		details: details,
		filter:  filter.NewFilter(),
		delay:   delay,
		log:     zap.NewNop(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the counters of the last ProcessPages call
func (s *Scraper) Summary() models.Summary {
	return s.summary
}

// ProcessPages fetches pages startPage..endPage in order and returns one
// record per item that has a link. Fetch and extraction failures are logged
// and degrade to an empty page or a null text; they never stop the run.
// If ctx is done the records collected so far are returned with ctx's error.
func (s *Scraper) ProcessPages(ctx context.Context, startPage, endPage int) ([]models.OutputRecord, error) {
	if startPage > endPage {
		return nil, fmt.Errorf("%w: start %d is after end %d", ErrInvalidRange, startPage, endPage)
	}

	s.summary = models.Summary{}
	records := make([]models.OutputRecord, 0)

	for _, page := range pagerange.Pages(startPage, endPage) {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		s.log.Info("Fetching data for page", zap.Int("page", page))
		items := s.fetchPage(ctx, page)
		if err := ctx.Err(); err != nil {
			return records, err
		}

		if err := s.sleep(ctx, s.delay); err != nil {
			return records, err
		}

		var err error
		records, err = s.processItems(ctx, items, records)
		if err != nil {
			return records, err
		}
	}

	s.logSummary()
	return records, nil
}

// fetchPage returns the page's items, or nil after logging why there are none.
func (s *Scraper) fetchPage(ctx context.Context, page int) []models.ItemRecord {
	s.summary.PagesRequested++

	result, err := s.pages.FetchPage(ctx, page)
	if err != nil {
		if ctx.Err() == nil {
			s.summary.PagesFailed++
			s.logPageError(page, err)
		}
		return nil
	}

	if result.Malformed > 0 {
		s.summary.ItemsMalformed += result.Malformed
		s.log.Warn("Skipped malformed items",
			zap.Int("page", page),
			zap.Int("count", result.Malformed))
	}

	s.summary.ItemsSeen += len(result.Items)
	return result.Items
}

func (s *Scraper) processItems(ctx context.Context, items []models.ItemRecord, records []models.OutputRecord) ([]models.OutputRecord, error) {
	linked, skipped := s.filter.ApplyFilters(items)
	s.summary.ItemsSkipped += skipped

	for _, item := range linked {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		link := item.LinkURL()
		s.log.Info("Processing URL", zap.String("url", link))

		var targetText *string
		text, err := s.details.Extract(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			s.summary.ExtractionsFailed++
			s.logExtractError(link, err)
		} else {
			targetText = &text
		}

		records = append(records, models.OutputRecord{
			Title:      item.Title,
			Link:       link,
			TargetText: targetText,
		})
		s.summary.RecordsEmitted++
	}

	return records, nil
}

func (s *Scraper) logPageError(page int, err error) {
	var decodeErr *fetcher.DecodeError
	if errors.As(err, &decodeErr) {
		s.log.Warn("Error decoding JSON from page",
			zap.Int("page", page),
			zap.Error(err),
			zap.ByteString("raw_response", decodeErr.Body))
		return
	}
	s.log.Warn("Error fetching data from page",
		zap.Int("page", page),
		zap.Error(err))
}

func (s *Scraper) logExtractError(url string, err error) {
	switch {
	case errors.Is(err, parser.ErrElementNotFound):
		s.log.Warn("No target div found", zap.String("url", url), zap.Error(err))
	case errors.Is(err, fetcher.ErrTransport):
		s.log.Warn("Error fetching URL", zap.String("url", url), zap.Error(err))
	default:
		s.log.Error("Unexpected error on URL", zap.String("url", url), zap.Error(err))
	}
}

func (s *Scraper) logSummary() {
	s.log.Info("Run complete",
		zap.Int("pages_requested", s.summary.PagesRequested),
		zap.Int("pages_failed", s.summary.PagesFailed),
		zap.Int("items_seen", s.summary.ItemsSeen),
		zap.Int("items_skipped", s.summary.ItemsSkipped),
		zap.Int("items_malformed", s.summary.ItemsMalformed),
		zap.Int("records", s.summary.RecordsEmitted),
		zap.Int("extractions_failed", s.summary.ExtractionsFailed))
}

// sleepContext pauses for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
