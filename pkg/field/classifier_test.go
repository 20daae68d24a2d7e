package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStructuralTypes(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		desc Descriptor
		want SemanticType
	}{
		{"email input", Descriptor{Kind: KindText, Type: "email"}, TypeEmail},
		{"url input", Descriptor{Kind: KindText, Type: "url"}, TypeWebsite},
		{"tel input", Descriptor{Kind: KindText, Type: "tel"}, TypePhone},
		{"number input", Descriptor{Kind: KindText, Type: "number"}, TypeNumber},
		{"date input", Descriptor{Kind: KindText, Type: "date"}, TypeDate},
		// Structural type wins over any textual hint on the element.
		{"email input named message", Descriptor{Kind: KindText, Type: "email", Name: "message"}, TypeEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.desc))
		})
	}
}

func TestClassifyAutocompleteHints(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		hint string
		want SemanticType
	}{
		{"email", TypeEmail},
		{"given-name", TypeFirstName},
		{"family-name", TypeLastName},
		{"street-address", TypeAddress},
		{"address-level2", TypeCity},
		{"postal-code", TypeZip},
		{"organization", TypeCompany},
		{"country-name", TypeCountry},
	}
	for _, tt := range tests {
		got := c.Classify(Descriptor{Kind: KindText, Autocomplete: tt.hint})
		assert.Equal(t, tt.want, got, "autocomplete %q", tt.hint)
	}

	// Unknown hints fall through to the keyword heuristic.
	got := c.Classify(Descriptor{Kind: KindText, Autocomplete: "cc-number", Name: "city"})
	assert.Equal(t, TypeCity, got)
}

func TestClassifyKeywordHeuristic(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		desc Descriptor
		want SemanticType
	}{
		{"first name underscore", Descriptor{Kind: KindText, Name: "first_name"}, TypeFirstName},
		{"last name underscore", Descriptor{Kind: KindText, Name: "last_name"}, TypeLastName},
		{"fname token", Descriptor{Kind: KindText, Name: "fname"}, TypeFirstName},
		// Role keyword alone, without a "name" token, must not classify.
		{"bare last", Descriptor{Kind: KindText, Name: "last"}, TypeFreeText},
		{"bare first", Descriptor{Kind: KindText, Name: "first"}, TypeFreeText},
		{"full name", Descriptor{Kind: KindText, Name: "full-name"}, TypeName},
		{"placeholder email", Descriptor{Kind: KindText, Placeholder: "Your Email"}, TypeEmail},
		{"aria label phone", Descriptor{Kind: KindText, AriaLabel: "Mobile number"}, TypePhone},
		{"class city", Descriptor{Kind: KindText, ClassName: "form-control city-input"}, TypeCity},
		{"company", Descriptor{Kind: KindText, Name: "company"}, TypeCompany},
		{"job title", Descriptor{Kind: KindText, Name: "job_title"}, TypeTitle},
		{"website", Descriptor{Kind: KindText, Name: "website"}, TypeWebsite},
		{"zip", Descriptor{Kind: KindText, Name: "zip_code"}, TypeZip},
		{"no hints at all", Descriptor{Kind: KindText, Name: "q"}, TypeFreeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.desc))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := NewClassifier()

	// Email outranks phone when both keyword sets match.
	d := Descriptor{Kind: KindText, Name: "email", Placeholder: "phone"}
	assert.Equal(t, TypeEmail, c.Classify(d))

	// Autocomplete outranks keywords.
	d = Descriptor{Kind: KindText, Name: "city", Autocomplete: "postal-code"}
	assert.Equal(t, TypeZip, c.Classify(d))
}

func TestClassifyFileControls(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, TypeImage, c.Classify(Descriptor{Kind: KindFile, Accept: "image/*"}))
	assert.Equal(t, TypeImage, c.Classify(Descriptor{Kind: KindFile, Accept: "image/png,image/jpeg"}))
	assert.Equal(t, TypeFreeText, c.Classify(Descriptor{Kind: KindFile, Accept: ".pdf"}))
	assert.Equal(t, TypeFreeText, c.Classify(Descriptor{Kind: KindFile}))
}

func TestClassifyTextAreaFallback(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, TypeMessage, c.Classify(Descriptor{Kind: KindTextArea, Name: "xyz"}))
	assert.Equal(t, TypeMessage, c.Classify(Descriptor{Kind: KindTextArea, Name: "comment"}))
	// Keyword matches still win over the textarea fallback.
	assert.Equal(t, TypeAddress, c.Classify(Descriptor{Kind: KindTextArea, Name: "street_address"}))
}

func TestClassifyIsStable(t *testing.T) {
	c := NewClassifier()
	descs := []Descriptor{
		{Kind: KindText, Type: "email"},
		{Kind: KindText, Name: "first_name"},
		{Kind: KindTextArea},
		{Kind: KindFile, Accept: "image/*"},
		{Kind: KindSelect, Name: "country"},
	}
	for _, d := range descs {
		first := c.Classify(d)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, c.Classify(d))
		}
	}
}

func TestClassifierCustomRules(t *testing.T) {
	cats := []KeywordCategory{
		{Type: TypeCompany, Keywords: []string{"firma"}},
	}
	c := NewClassifierWithRules(nil, cats)

	assert.Equal(t, TypeCompany, c.Classify(Descriptor{Kind: KindText, Name: "firma"}))
	// Default rules are gone.
	assert.Equal(t, TypeFreeText, c.Classify(Descriptor{Kind: KindText, Name: "city"}))
}
