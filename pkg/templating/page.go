package templating

import (
	"errors"
	"strings"
)

// Placeholder is the token in a page template that is replaced by the cards.
const Placeholder = "__REPLACE_ANIMALS_INFO__"

// ErrPlaceholderMissing is returned in strict mode when the page template
// does not contain the placeholder.
var ErrPlaceholderMissing = errors.New("template does not contain the placeholder")

// Assemble substitutes every occurrence of placeholder in tmpl with cards.
// The boolean reports whether the placeholder was found; when it was not,
// tmpl is returned unchanged.
func Assemble(tmpl, cards, placeholder string) (string, bool) {
	if placeholder == "" {
		placeholder = Placeholder
	}
	if !strings.Contains(tmpl, placeholder) {
		return tmpl, false
	}
	return strings.ReplaceAll(tmpl, placeholder, cards), true
}
