package filter

import (
	"brief-scraper/models"
)

// Filter selects the API items that can be followed to a detail page
type Filter struct{}

// NewFilter creates a new Filter instance
func NewFilter() *Filter {
	return &Filter{}
}

// ApplyFilters returns the items that carry a link, in their original order,
// and how many were dropped.
func (f *Filter) ApplyFilters(items []models.ItemRecord) ([]models.ItemRecord, int) {
	var filtered []models.ItemRecord
	skipped := 0

	for _, item := range items {
		if f.matchesFilters(item) {
			filtered = append(filtered, item)
		} else {
			skipped++
		}
	}

	return filtered, skipped
}

// matchesFilters reports whether the item has a non-empty link
func (f *Filter) matchesFilters(item models.ItemRecord) bool {
	return item.LinkURL() != ""
}
