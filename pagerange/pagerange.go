package pagerange

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query parameter names understood by the upstream API.
const (
	ParamKeyword  = "text"
	ParamPageSize = "pageSize"
	ParamPage     = "page"
)

// Query holds the fixed part of every page request
type Query struct {
	Keyword  string
	PageSize int
}

// PageURL represents the API URL for a single page
type PageURL struct {
	URL   string
	Label string // e.g., "page 3"
	Page  int
}

// BuildPageURL returns baseURL with the keyword, page size and page index set.
// Query parameters already present on baseURL are kept unless they collide
// with one of the three.
func BuildPageURL(baseURL string, q Query, page int) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	query := parsedURL.Query()
	query.Set(ParamKeyword, q.Keyword)
	query.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	query.Set(ParamPage, strconv.Itoa(page))

	newParsedURL := *parsedURL
	newParsedURL.RawQuery = query.Encode()
	return newParsedURL.String(), nil
}

// Pages returns the page indices from start to end inclusive, ascending.
// It returns nil when start > end.
func Pages(start, end int) []int {
	if start > end {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}

// GeneratePageURLs builds one PageURL per page in [start, end].
func GeneratePageURLs(baseURL string, q Query, start, end int) ([]PageURL, error) {
	if start > end {
		return nil, fmt.Errorf("invalid page range: start %d is after end %d", start, end)
	}

	var urls []PageURL
	for _, page := range Pages(start, end) {
		u, err := BuildPageURL(baseURL, q, page)
		if err != nil {
			return nil, err
		}
		urls = append(urls, PageURL{
			URL:   u,
			Label: fmt.Sprintf("page %d", page),
			Page:  page,
		})
	}
	return urls, nil
}

// CountPages returns how many requests a run over [start, end] issues
func CountPages(start, end int) int {
	if start > end {
		return 0
	}
	return end - start + 1
}
