/*
Package templating renders animal records into HTML.

A record becomes a card: a list item with the animal's name as its title and
one "label: value" line for every field of the active layout that the record
actually carries. Absent, empty, false and zero values produce no markup
at all. Values are inserted verbatim unless escaping is enabled. Cards are
concatenated in input order and substituted into a page template at a single
placeholder token (__REPLACE_ANIMALS_INFO__ by default).

The TemplateManager loads the page template from disk, applies the configured
layout, and writes finished pages atomically so a failed run never leaves a
half-written file behind.
*/
package templating
