package templating

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/CTAG07/Bestiary/pkg/animals"
)

// Names of the built-in card layouts.
const (
	LayoutDefault  = "default"
	LayoutExtended = "extended"
	LayoutCustom   = "custom"
)

// ErrUnknownLayout is returned when a layout name is not recognized.
var ErrUnknownLayout = errors.New("unknown card layout")

// FieldSpec is one labelled line in a card's details block.
type FieldSpec struct {
	Label     string            `json:"label" yaml:"label"`
	Attribute animals.Attribute `json:"attribute" yaml:"attribute"`
}

// Layout is the ordered list of fields rendered in every card.
type Layout []FieldSpec

// DefaultLayout returns the standard field set: Diet, Location, Type,
// Lifespan and Top Speed, in that order.
func DefaultLayout() Layout {
	return Layout{
		{Label: "Diet", Attribute: animals.AttrDiet},
		{Label: "Location", Attribute: animals.AttrLocation},
		{Label: "Type", Attribute: animals.AttrType},
		{Label: "Lifespan", Attribute: animals.AttrLifespan},
		{Label: "Top Speed", Attribute: animals.AttrTopSpeed},
	}
}

// ExtendedLayout returns the long-form field set, which adds taxonomy,
// habitat, weight and color to the standard fields.
func ExtendedLayout() Layout {
	return Layout{
		{Label: "Scientific Name", Attribute: animals.AttrScientificName},
		{Label: "Diet", Attribute: animals.AttrDiet},
		{Label: "Location", Attribute: animals.AttrLocation},
		{Label: "Type", Attribute: animals.AttrType},
		{Label: "Habitat", Attribute: animals.AttrHabitat},
		{Label: "Top Speed", Attribute: animals.AttrTopSpeed},
		{Label: "Weight", Attribute: animals.AttrWeight},
		{Label: "Lifespan", Attribute: animals.AttrLifespan},
		{Label: "Color", Attribute: animals.AttrColor},
	}
}

// LayoutByName resolves a layout name. The custom layout uses fields, which
// must not be empty; a field without a label gets the attribute's label.
func LayoutByName(name string, fields []FieldSpec) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutDefault:
		return DefaultLayout(), nil
	case LayoutExtended:
		return ExtendedLayout(), nil
	case LayoutCustom:
		if len(fields) == 0 {
			return nil, fmt.Errorf("custom layout requires at least one field")
		}
		layout := make(Layout, 0, len(fields))
		for _, f := range fields {
			attr, err := animals.ParseAttribute(string(f.Attribute))
			if err != nil {
				return nil, fmt.Errorf("invalid custom field %q: %w", f.Label, err)
			}
			label := f.Label
			if label == "" {
				label = attr.Label()
			}
			layout = append(layout, FieldSpec{Label: label, Attribute: attr})
		}
		return layout, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// FormatField renders one "label: value" detail line. Label and value are
// inserted as given. An empty value yields an empty string, so absent fields
// leave no markup behind.
func FormatField(label, value string) string {
	if value == "" {
		return ""
	}
	return "<strong>" + label + ":</strong> " + value + "<br/>"
}

// Card renders a record as a single list item using the layout's fields.
func (l Layout) Card(rec *animals.Record) string {
	var sb strings.Builder
	l.writeCard(&sb, rec, false)
	return sb.String()
}

// Cards renders every record in order and concatenates the results.
func (l Layout) Cards(records []animals.Record) string {
	return l.Render(records, false)
}

// Render is Cards with optional HTML escaping of names, labels and values.
func (l Layout) Render(records []animals.Record, escapeHTML bool) string {
	var sb strings.Builder
	for i := range records {
		l.writeCard(&sb, &records[i], escapeHTML)
	}
	return sb.String()
}

func (l Layout) writeCard(sb *strings.Builder, rec *animals.Record, escapeHTML bool) {
	text := func(s string) string { return s }
	if escapeHTML {
		text = html.EscapeString
	}
	sb.WriteString(`<li class="cards__item">`)
	sb.WriteString(`<div class="card__title">`)
	sb.WriteString(text(rec.Name.String()))
	sb.WriteString(`</div>`)
	sb.WriteString(`<p class="card__text">`)
	for _, f := range l {
		// false and numeric zero are suppressed like missing values.
		if v := rec.Lookup(f.Attribute); v.Present() {
			sb.WriteString(FormatField(text(f.Label), text(v.String())))
		}
	}
	sb.WriteString(`</p>`)
	sb.WriteString(`</li>`)
}

// SerializeCard renders a record with the default layout.
func SerializeCard(rec *animals.Record) string {
	return DefaultLayout().Card(rec)
}
