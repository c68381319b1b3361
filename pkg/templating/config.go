package templating

// TemplateConfig holds all configuration options for page rendering.
type TemplateConfig struct {
	// Placeholder is the token replaced by the rendered cards. Empty means
	// the package default, __REPLACE_ANIMALS_INFO__.
	Placeholder string `json:"placeholder" yaml:"placeholder"`

	// StrictPlaceholder turns a template without the placeholder into an
	// error. When false the template is written out unchanged and a warning
	// is logged.
	StrictPlaceholder bool `json:"strict_placeholder" yaml:"strict_placeholder"`

	// EscapeHTML escapes names, labels and values before they are placed
	// in a card. Off by default: values are inserted verbatim.
	EscapeHTML bool `json:"escape_html" yaml:"escape_html"`

	// Layout names the card field set: "default", "extended" or "custom".
	Layout string `json:"layout" yaml:"layout"`

	// Fields is the ordered field list used by the "custom" layout.
	Fields []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// DefaultConfig returns a TemplateConfig with the default placeholder and
// the default card layout. Missing placeholders are tolerated.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		Placeholder:       Placeholder,
		StrictPlaceholder: false,
		Layout:            LayoutDefault,
	}
}

func (c *TemplateConfig) placeholder() string {
	if c.Placeholder == "" {
		return Placeholder
	}
	return c.Placeholder
}
