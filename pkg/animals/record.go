package animals

import (
	"encoding/json"
	"errors"
	"strings"
)

// Attribute names a single value of a record, such as "diet" or "skin_type".
type Attribute string

// Record-level and taxonomy attributes.
const (
	AttrName           Attribute = "name"
	AttrLocation       Attribute = "location"
	AttrScientificName Attribute = "scientific_name"
	AttrKingdom        Attribute = "kingdom"
	AttrPhylum         Attribute = "phylum"
	AttrClass          Attribute = "class"
	AttrOrder          Attribute = "order"
	AttrFamily         Attribute = "family"
	AttrGenus          Attribute = "genus"
)

// Characteristic attributes with dedicated fields. Any other characteristic
// key is kept in Characteristics.Extra and can be looked up all the same.
const (
	AttrDiet     Attribute = "diet"
	AttrType     Attribute = "type"
	AttrLifespan Attribute = "lifespan"
	AttrTopSpeed Attribute = "top_speed"
	AttrWeight   Attribute = "weight"
	AttrHabitat  Attribute = "habitat"
	AttrColor    Attribute = "color"
	AttrSkinType Attribute = "skin_type"
)

// ErrEmptyAttribute is returned by ParseAttribute for blank input.
var ErrEmptyAttribute = errors.New("attribute name is empty")

// ParseAttribute normalizes a user-supplied attribute name, so that
// "Skin Type", "skin-type" and "SKIN_TYPE" all name AttrSkinType.
func ParseAttribute(s string) (Attribute, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptyAttribute
	}
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	return Attribute(s), nil
}

// Label returns a human-readable form of the attribute, e.g. "Top Speed".
func (a Attribute) Label() string {
	words := strings.Split(string(a), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Record is one animal as read from the data source.
type Record struct {
	Name            Text            `json:"name,omitzero"`
	Locations       []Text          `json:"locations,omitempty"`
	Taxonomy        Taxonomy        `json:"taxonomy,omitzero"`
	Characteristics Characteristics `json:"characteristics,omitzero"`
}

// Location returns the first listed location, which is the one shown on a card.
func (r *Record) Location() Text {
	if len(r.Locations) == 0 {
		return Text{}
	}
	return r.Locations[0]
}

// Lookup resolves an attribute against the record. Unknown attributes are
// absent, never an error.
func (r *Record) Lookup(attr Attribute) Text {
	switch attr {
	case AttrName:
		return r.Name
	case AttrLocation:
		return r.Location()
	}
	if t := r.Taxonomy.field(attr); t != nil {
		return *t
	}
	return r.Characteristics.Lookup(attr)
}

// Taxonomy holds the scientific classification of an animal.
type Taxonomy struct {
	Kingdom        Text `json:"kingdom,omitzero"`
	Phylum         Text `json:"phylum,omitzero"`
	Class          Text `json:"class,omitzero"`
	Order          Text `json:"order,omitzero"`
	Family         Text `json:"family,omitzero"`
	Genus          Text `json:"genus,omitzero"`
	ScientificName Text `json:"scientific_name,omitzero"`
}

func (t *Taxonomy) field(attr Attribute) *Text {
	switch attr {
	case AttrKingdom:
		return &t.Kingdom
	case AttrPhylum:
		return &t.Phylum
	case AttrClass:
		return &t.Class
	case AttrOrder:
		return &t.Order
	case AttrFamily:
		return &t.Family
	case AttrGenus:
		return &t.Genus
	case AttrScientificName:
		return &t.ScientificName
	}
	return nil
}

// Characteristics holds the descriptive attributes of an animal. The fields
// used by the card layouts are explicit; every other key lands in Extra.
type Characteristics struct {
	Diet     Text
	Type     Text
	Lifespan Text
	TopSpeed Text
	Weight   Text
	Habitat  Text
	Color    Text
	SkinType Text
	Extra    map[string]Text
}

// Lookup returns the characteristic named by attr.
func (c *Characteristics) Lookup(attr Attribute) Text {
	if t := c.field(attr); t != nil {
		return *t
	}
	return c.Extra[string(attr)]
}

func (c *Characteristics) field(attr Attribute) *Text {
	switch attr {
	case AttrDiet:
		return &c.Diet
	case AttrType:
		return &c.Type
	case AttrLifespan:
		return &c.Lifespan
	case AttrTopSpeed:
		return &c.TopSpeed
	case AttrWeight:
		return &c.Weight
	case AttrHabitat:
		return &c.Habitat
	case AttrColor:
		return &c.Color
	case AttrSkinType:
		return &c.SkinType
	}
	return nil
}

// UnmarshalJSON decodes the characteristics object, routing known keys to
// their fields and keeping the rest in Extra.
func (c *Characteristics) UnmarshalJSON(data []byte) error {
	var raw map[string]Text
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Characteristics{}
	for key, value := range raw {
		if t := c.field(Attribute(key)); t != nil {
			*t = value
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]Text)
		}
		c.Extra[key] = value
	}
	return nil
}

// MarshalJSON encodes the characteristics back into a single flat object,
// leaving out absent values.
func (c Characteristics) MarshalJSON() ([]byte, error) {
	out := make(map[string]Text, len(c.Extra)+8)
	for key, value := range c.Extra {
		if !value.IsZero() {
			out[key] = value
		}
	}
	for _, attr := range []Attribute{AttrDiet, AttrType, AttrLifespan, AttrTopSpeed, AttrWeight, AttrHabitat, AttrColor, AttrSkinType} {
		if value := *c.field(attr); !value.IsZero() {
			out[string(attr)] = value
		}
	}
	return json.Marshal(out)
}
