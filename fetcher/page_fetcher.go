package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"brief-scraper/models"
	"brief-scraper/pagerange"
)

// PageFetcher fetches pages of items from the upstream API
type PageFetcher struct {
	client  Getter
	baseURL string
	query   pagerange.Query
}

// NewPageFetcher creates a new PageFetcher for the API at baseURL
func NewPageFetcher(client Getter, baseURL string, query pagerange.Query) *PageFetcher {
	return &PageFetcher{
		client:  client,
		baseURL: baseURL,
		query:   query,
	}
}

// pageResponse mirrors the API body. Elements are kept raw so one bad
// element does not discard the whole page.
type pageResponse struct {
	List []json.RawMessage `json:"list"`
}

// FetchPage retrieves one page. On any error the returned result carries the
// page index and no items.
func (pf *PageFetcher) FetchPage(ctx context.Context, page int) (models.PageResult, error) {
	result := models.PageResult{Page: page}

	pageURL, err := pagerange.BuildPageURL(pf.baseURL, pf.query, page)
	if err != nil {
		return result, fmt.Errorf("page %d: %w", page, err)
	}

	resp, err := pf.client.Get(ctx, pageURL)
	if err != nil {
		return result, fmt.Errorf("page %d: %w", page, err)
	}

	items, malformed, err := decodeItems(resp.Body)
	if err != nil {
		return result, &DecodeError{Page: page, Body: resp.Body, Err: err}
	}

	result.Items = items
	result.Malformed = malformed
	return result, nil
}

// decodeItems returns the elements of "list" that decode as items, and how
// many did not. A missing or null "list" yields no items and no error.
// Only a non-object element or a non-string urllink makes an element
// malformed; all_title may hold any JSON value.
func decodeItems(body []byte) ([]models.ItemRecord, int, error) {
	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, err
	}

	items := make([]models.ItemRecord, 0, len(resp.List))
	malformed := 0
	for _, raw := range resp.List {
		var item models.ItemRecord
		if err := decodeItem(raw, &item); err != nil {
			malformed++
			continue
		}
		items = append(items, item)
	}

	return items, malformed, nil
}

// decodeItem keeps numeric titles as json.Number so they are written back
// exactly as received.
func decodeItem(raw json.RawMessage, item *models.ItemRecord) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(item)
}
