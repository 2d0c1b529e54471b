package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"brief-scraper/models"
)

// Writer writes the aggregate as one pretty-printed JSON array
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer on w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecords encodes records with two-space indentation. Non-ASCII text and
// HTML characters are written literally; an empty run prints [].
func (wr *Writer) WriteRecords(records []models.OutputRecord) error {
	if records == nil {
		records = []models.OutputRecord{}
	}

	encoder := json.NewEncoder(wr.w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// WriteFile writes records to path, replacing any existing file
func WriteFile(path string, records []models.OutputRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := NewWriter(file).WriteRecords(records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
