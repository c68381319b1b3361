package animals

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is an optional string attribute. The zero value is absent.
type Text struct {
	value   string
	present bool
	// literal is set when the value came from a JSON number or boolean.
	literal bool
}

// Some returns a present Text holding v.
func Some(v string) Text {
	return Text{value: v, present: true}
}

// Get returns the value and whether it was set in the source.
func (t Text) Get() (string, bool) {
	return t.value, t.present
}

// Present reports whether the value is set and truthy. Empty strings,
// false and numeric zero are treated the same as missing values when
// rendering; String still returns their text.
func (t Text) Present() bool {
	if !t.present || t.value == "" {
		return false
	}
	if t.literal {
		if t.value == "false" {
			return false
		}
		if f, err := strconv.ParseFloat(t.value, 64); err == nil && f == 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether the value is absent. It makes `omitzero` drop
// absent fields when encoding.
func (t Text) IsZero() bool {
	return !t.present
}

// String returns the value, or "" when absent.
func (t Text) String() string {
	return t.value
}

// UnmarshalJSON decodes a JSON scalar. Strings keep their value, numbers
// and booleans keep their literal text. null, objects and arrays decode as
// absent instead of failing, since no attribute is guaranteed by the source.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Some(s)
	case 't', 'f':
		b, err := strconv.ParseBool(string(data))
		if err != nil {
			return err
		}
		*t = Text{value: strconv.FormatBool(b), present: true, literal: true}
	case 'n', '{', '[':
		// absent
	default:
		*t = Text{value: string(data), present: true, literal: true}
	}
	return nil
}

// MarshalJSON encodes an absent value as null. Numbers and booleans are
// written back as the literals they were read from.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	if t.literal {
		return []byte(t.value), nil
	}
	return json.Marshal(t.value)
}
