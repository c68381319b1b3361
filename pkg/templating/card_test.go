package templating

import (
	"errors"
	"strings"
	"testing"

	"github.com/CTAG07/Bestiary/pkg/animals"
	"golang.org/x/net/html"
)

// countElements parses fragment as HTML and counts elements named tag.
func countElements(t *testing.T, fragment, tag string) int {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<ul>" + fragment + "</ul>"))
	if err != nil {
		t.Fatalf("failed to parse rendered HTML: %v", err)
	}
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

func fullRecord() animals.Record {
	return animals.Record{
		Name:      animals.Some("Cheetah"),
		Locations: []animals.Text{animals.Some("Africa"), animals.Some("Asia")},
		Taxonomy:  animals.Taxonomy{ScientificName: animals.Some("Acinonyx jubatus")},
		Characteristics: animals.Characteristics{
			Diet:     animals.Some("Carnivore"),
			Type:     animals.Some("Mammal"),
			Lifespan: animals.Some("10 - 12 years"),
			TopSpeed: animals.Some("120 km/h"),
			Weight:   animals.Some("40kg - 65kg"),
			Habitat:  animals.Some("Grassland"),
			Color:    animals.Some("Gold"),
		},
	}
}

func TestFormatField(t *testing.T) {
	if got := FormatField("Diet", "Carnivore"); got != "<strong>Diet:</strong> Carnivore<br/>" {
		t.Errorf("unexpected field markup: %q", got)
	}
	if got := FormatField("Diet", ""); got != "" {
		t.Errorf("empty value should render nothing, got %q", got)
	}
	if got := FormatField("Note", "Fish & Krill"); got != "<strong>Note:</strong> Fish & Krill<br/>" {
		t.Errorf("value should be inserted verbatim, got %q", got)
	}
}

func TestSerializeCard_NameOnly(t *testing.T) {
	rec := animals.Record{Name: animals.Some("Okapi")}
	card := SerializeCard(&rec)

	if !strings.Contains(card, "Okapi") {
		t.Errorf("card should contain the name, got %q", card)
	}
	if n := countElements(t, card, "strong"); n != 0 {
		t.Errorf("expected no detail fields, found %d", n)
	}
	if n := countElements(t, card, "li"); n != 1 {
		t.Errorf("expected exactly one list item, found %d", n)
	}
}

func TestSerializeCard_MissingName(t *testing.T) {
	rec := animals.Record{Characteristics: animals.Characteristics{Diet: animals.Some("Omnivore")}}
	card := SerializeCard(&rec)
	if !strings.Contains(card, `<div class="card__title"></div>`) {
		t.Errorf("missing name should render an empty title, got %q", card)
	}
	if !strings.Contains(card, "Omnivore") {
		t.Errorf("card should still contain the diet, got %q", card)
	}
}

func TestSerializeCard_DefaultFields(t *testing.T) {
	rec := fullRecord()
	card := SerializeCard(&rec)

	for _, want := range []string{"Cheetah", "Carnivore", "Africa", "Mammal", "10 - 12 years", "120 km/h"} {
		if !strings.Contains(card, want) {
			t.Errorf("card should contain %q, got %q", want, card)
		}
	}
	// Only the first location is shown, and extended-only fields are left out.
	for _, absent := range []string{"Asia", "Acinonyx", "Grassland", "Weight", "Color"} {
		if strings.Contains(card, absent) {
			t.Errorf("default card should not contain %q, got %q", absent, card)
		}
	}
	if n := countElements(t, card, "strong"); n != 5 {
		t.Errorf("expected 5 detail fields, found %d", n)
	}

	order := []string{"Diet:", "Location:", "Type:", "Lifespan:", "Top Speed:"}
	last := -1
	for _, label := range order {
		idx := strings.Index(card, label)
		if idx <= last {
			t.Fatalf("label %q out of order in %q", label, card)
		}
		last = idx
	}
}

func TestSerializeCard_AbsentFieldsLeaveNoLabel(t *testing.T) {
	rec := animals.Record{
		Name: animals.Some("Gecko"),
		Characteristics: animals.Characteristics{
			Type:     animals.Some("Reptile"),
			Lifespan: animals.Some(""),
		},
	}
	card := SerializeCard(&rec)
	if !strings.Contains(card, "Reptile") {
		t.Errorf("card should contain the type, got %q", card)
	}
	for _, label := range []string{"Diet", "Location", "Lifespan", "Top Speed"} {
		if strings.Contains(card, label) {
			t.Errorf("absent field %q should not be rendered, got %q", label, card)
		}
	}
}

func TestExtendedLayout(t *testing.T) {
	rec := fullRecord()
	card := ExtendedLayout().Card(&rec)
	for _, want := range []string{"Acinonyx jubatus", "Grassland", "40kg - 65kg", "Gold"} {
		if !strings.Contains(card, want) {
			t.Errorf("extended card should contain %q, got %q", want, card)
		}
	}
	if n := countElements(t, card, "strong"); n != 9 {
		t.Errorf("expected 9 detail fields, found %d", n)
	}
}

func TestCards_PreservesOrder(t *testing.T) {
	lion := animals.Record{Name: animals.Some("Lion"), Characteristics: animals.Characteristics{Diet: animals.Some("Carnivore")}}
	cow := animals.Record{Name: animals.Some("Cow"), Characteristics: animals.Characteristics{Diet: animals.Some("Herbivore")}}
	layout := DefaultLayout()

	a, b := layout.Card(&lion), layout.Card(&cow)
	if got := layout.Cards([]animals.Record{lion, cow}); got != a+b {
		t.Errorf("forward order mismatch:\n got %q\nwant %q", got, a+b)
	}
	if got := layout.Cards([]animals.Record{cow, lion}); got != b+a {
		t.Errorf("reversed order mismatch:\n got %q\nwant %q", got, b+a)
	}
	if got := layout.Cards(nil); got != "" {
		t.Errorf("no records should render nothing, got %q", got)
	}
}

func TestLayoutByName(t *testing.T) {
	tests := []struct {
		name    string
		fields  []FieldSpec
		wantLen int
		wantErr bool
	}{
		{name: "", wantLen: 5},
		{name: "default", wantLen: 5},
		{name: "Extended", wantLen: 9},
		{name: "custom", fields: []FieldSpec{{Attribute: "skin type"}, {Label: "Eats", Attribute: "diet"}}, wantLen: 2},
		{name: "custom", wantErr: true},
		{name: "custom", fields: []FieldSpec{{Label: "Blank"}}, wantErr: true},
		{name: "fancy", wantErr: true},
	}
	for _, tt := range tests {
		layout, err := LayoutByName(tt.name, tt.fields)
		if tt.wantErr {
			if err == nil {
				t.Errorf("LayoutByName(%q): expected an error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("LayoutByName(%q) failed: %v", tt.name, err)
			continue
		}
		if len(layout) != tt.wantLen {
			t.Errorf("LayoutByName(%q): expected %d fields, got %d", tt.name, tt.wantLen, len(layout))
		}
	}

	layout, _ := LayoutByName("custom", []FieldSpec{{Attribute: "skin type"}})
	if layout[0].Label != "Skin Type" || layout[0].Attribute != animals.AttrSkinType {
		t.Errorf("custom field should be normalized, got %+v", layout[0])
	}

	_, err := LayoutByName("fancy", nil)
	if !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestSerializeCard_ValuesVerbatim(t *testing.T) {
	records, err := animals.Parse([]byte(`[{"name": "Przewalski's Horse", "characteristics": {"diet": "Fish & Krill"}}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	card := SerializeCard(&records[0])
	for _, want := range []string{
		`<div class="card__title">Przewalski's Horse</div>`,
		"<strong>Diet:</strong> Fish & Krill<br/>",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card should contain %q verbatim, got %q", want, card)
		}
	}
}

func TestRender_EscapeHTML(t *testing.T) {
	rec := animals.Record{
		Name:            animals.Some("Przewalski's Horse"),
		Characteristics: animals.Characteristics{Diet: animals.Some("<Fish> & Krill")},
	}
	layout := DefaultLayout()

	escaped := layout.Render([]animals.Record{rec}, true)
	for _, want := range []string{"Przewalski&#39;s Horse", "&lt;Fish&gt; &amp; Krill"} {
		if !strings.Contains(escaped, want) {
			t.Errorf("escaped card should contain %q, got %q", want, escaped)
		}
	}
	if raw := layout.Render([]animals.Record{rec}, false); raw != layout.Card(&rec) {
		t.Errorf("unescaped render should match Card:\n got %q\nwant %q", raw, layout.Card(&rec))
	}
}

func TestSerializeCard_FalsyValuesSuppressed(t *testing.T) {
	records, err := animals.Parse([]byte(`[{"name": "Sloth", "characteristics": {"top_speed": 0, "type": false, "diet": "Herbivore", "lifespan": 30}}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	card := SerializeCard(&records[0])
	for _, absent := range []string{"Top Speed", "Type"} {
		if strings.Contains(card, absent) {
			t.Errorf("falsy %s should not be rendered, got %q", absent, card)
		}
	}
	for _, want := range []string{"<strong>Diet:</strong> Herbivore<br/>", "<strong>Lifespan:</strong> 30<br/>"} {
		if !strings.Contains(card, want) {
			t.Errorf("card should contain %q, got %q", want, card)
		}
	}
}
