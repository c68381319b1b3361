// Package filter derives the selectable values of one record attribute and
// restricts a record collection to a chosen value.
package filter

import (
	"sort"
	"strings"

	"github.com/CTAG07/Bestiary/pkg/animals"
)

// Option is one distinct value of an attribute across a collection.
type Option struct {
	// Value is the normalized form used for matching.
	Value string
	// Display is the original-case form, taken from the first record that
	// carries the value.
	Display string
	// Count is the number of records carrying the value.
	Count int
}

// Normalize returns the matching form of an attribute value: trimmed and
// lower-cased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Options collects the distinct values of attr across records. Values are
// deduplicated case-insensitively with the first-seen casing kept as the
// display form, and returned sorted by their normalized form. Records that
// lack the attribute, or carry only whitespace, are skipped.
func Options(records []animals.Record, attr animals.Attribute) []Option {
	index := make(map[string]int)
	var options []Option
	for i := range records {
		raw := records[i].Lookup(attr).String()
		key := Normalize(raw)
		if key == "" {
			continue
		}
		if pos, ok := index[key]; ok {
			options[pos].Count++
			continue
		}
		index[key] = len(options)
		options = append(options, Option{Value: key, Display: strings.TrimSpace(raw), Count: 1})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}

// DistinctValues returns the display forms of Options, in the same order.
func DistinctValues(records []animals.Record, attr animals.Attribute) []string {
	options := Options(records, attr)
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Display
	}
	return values
}

// FilterByValue returns the records whose attr matches selected, compared
// case-insensitively after trimming. Records lacking the attribute, or
// carrying only whitespace, are never returned, even when selected is empty.
// Relative order is preserved.
func FilterByValue(records []animals.Record, attr animals.Attribute, selected string) []animals.Record {
	want := Normalize(selected)
	matched := make([]animals.Record, 0, len(records))
	for i := range records {
		key := Normalize(records[i].Lookup(attr).String())
		if key == "" {
			continue
		}
		if key == want {
			matched = append(matched, records[i])
		}
	}
	return matched
}
