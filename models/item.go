package models

// ItemRecord is one element of the API's "list" array. Both fields are
// optional upstream; a missing key and an explicit null both decode to nil.
// Title is passed through untyped: usually a string, but numbers, arrays and
// objects are copied to the output as they came.
type ItemRecord struct {
	Title any     `json:"all_title"`
	Link  *string `json:"urllink"`
}

// LinkURL returns the item's link, or "" when it is absent.
func (i ItemRecord) LinkURL() string {
	if i.Link == nil {
		return ""
	}
	return *i.Link
}

// PageResult holds the items decoded from one API page
type PageResult struct {
	Page      int
	Items     []ItemRecord
	Malformed int // list elements that were not decodable as an ItemRecord
}

// OutputRecord is one element of the final JSON array
type OutputRecord struct {
	Title      any     `json:"all_title"`
	Link       string  `json:"urllink"`
	TargetText *string `json:"target_text"`
}

// Summary counts what happened during a run
type Summary struct {
	PagesRequested    int
	PagesFailed       int
	ItemsSeen         int
	ItemsSkipped      int
	ItemsMalformed    int
	RecordsEmitted    int
	ExtractionsFailed int
}
