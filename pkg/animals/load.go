package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when the data source is not valid UTF-8.
var ErrInvalidEncoding = errors.New("data is not valid UTF-8")

// Load reads and parses the JSON data file at path. The returned slice is
// owned by the caller and keeps the order of the file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return records, nil
}

// Decode reads a full JSON document from r and parses it.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of records. A top-level null yields an empty
// collection; anything other than an array is an error.
func Parse(data []byte) ([]Record, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
