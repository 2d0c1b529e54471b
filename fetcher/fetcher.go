package fetcher

import "context"

// Getter interface defines the contract for the HTTP transport shared by the
// page fetcher and the detail extractor
type Getter interface {
	// Get issues a GET for rawURL and returns the response when its status is 2xx
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// Response is a fully read HTTP response
type Response struct {
	URL         string
	StatusCode  int
	ContentType string // as sent; when it names a charset, colly has already converted Body to UTF-8
	Body        []byte
}
