package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Client implements Getter using colly
type Client struct {
	collector *colly.Collector
}

// NewClient creates a new Client instance. Every request is bounded by
// timeout; revisits are allowed because the same link may appear on several
// items and must be fetched each time.
func NewClient(timeout time.Duration, userAgent string) *Client {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		// Let non-2xx responses reach OnResponse so Get can report the status.
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(timeout)

	return &Client{
		collector: c,
	}
}

// Get implements the Getter interface
func (cl *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Callbacks are registered on a clone so they do not pile up across calls.
	c := cl.collector.Clone()
	c.Context = ctx

	var resp *Response
	c.OnResponse(func(r *colly.Response) {
		resp = &Response{
			URL:         r.Request.URL.String(),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			Body:        r.Body,
		}
	})

	if err := c.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, rawURL, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: GET %s: no response", ErrTransport, rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return resp, nil
}
