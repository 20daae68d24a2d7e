package field

import "strings"

// KeywordCategory is one entry in the classifier's free-text heuristic.
// Categories are tested in slice order; the first match wins.
type KeywordCategory struct {
	// Type is the semantic type assigned when the category matches.
	Type SemanticType

	// Keywords are tested via substring containment against each token of
	// the control's attribute bag.
	Keywords []string

	// RequiresNameToken additionally requires some token to contain "name".
	// Used by firstName/lastName so that a bare role keyword ("last") does
	// not misclassify unrelated controls.
	RequiresNameToken bool
}

// Classifier maps a control descriptor to a semantic type. Classification is
// total and deterministic: it never fails, and repeated calls with the same
// descriptor always return the same type.
//
// The keyword lists and category priority are tunable defaults, not a
// contract. Hosts with unusual form vocabularies can supply their own rules
// via NewClassifierWithRules.
type Classifier struct {
	autocomplete map[string]SemanticType
	categories   []KeywordCategory
}

// NewClassifier returns a classifier with the default autocomplete table and
// keyword categories.
func NewClassifier() *Classifier {
	return NewClassifierWithRules(defaultAutocompleteTable(), DefaultKeywordCategories())
}

// NewClassifierWithRules returns a classifier using the supplied autocomplete
// lookup table and keyword categories. Both are copied.
func NewClassifierWithRules(autocomplete map[string]SemanticType, categories []KeywordCategory) *Classifier {
	table := make(map[string]SemanticType, len(autocomplete))
	for k, v := range autocomplete {
		table[strings.ToLower(k)] = v
	}
	cats := make([]KeywordCategory, len(categories))
	copy(cats, categories)
	return &Classifier{autocomplete: table, categories: cats}
}

// Classify assigns a semantic type to the descriptor. Priority order, first
// match wins:
//
//  1. Structural input type (email/url/tel/number/date) maps directly.
//  2. The standardized autocomplete hint, via the lookup table.
//  3. File controls accepting an image MIME class.
//  4. Keyword heuristic over the name/id/placeholder/aria-label/class tokens.
//
// When nothing matches, text controls fall back to TypeFreeText and
// multi-line controls to TypeMessage.
func (c *Classifier) Classify(d Descriptor) SemanticType {
	if t, ok := structuralType(d); ok {
		return t
	}

	if hint := strings.ToLower(strings.TrimSpace(d.Autocomplete)); hint != "" {
		if t, ok := c.autocomplete[hint]; ok {
			return t
		}
	}

	if d.Kind == KindFile {
		if strings.Contains(strings.ToLower(d.Accept), "image") {
			return TypeImage
		}
		return TypeFreeText
	}

	tokens := tokenBag(d)
	if len(tokens) > 0 {
		hasName := anyTokenContains(tokens, "name")
		for _, cat := range c.categories {
			if cat.RequiresNameToken && !hasName {
				continue
			}
			for _, kw := range cat.Keywords {
				if anyTokenContains(tokens, kw) {
					return cat.Type
				}
			}
		}
	}

	if d.Kind == KindTextArea {
		return TypeMessage
	}
	return TypeFreeText
}

// structuralType maps hard structural control types that override any textual
// hint on the element.
func structuralType(d Descriptor) (SemanticType, bool) {
	if d.Kind != KindText {
		return "", false
	}
	switch strings.ToLower(d.Type) {
	case "email":
		return TypeEmail, true
	case "url":
		return TypeWebsite, true
	case "tel":
		return TypePhone, true
	case "number":
		return TypeNumber, true
	case "date", "datetime-local", "month":
		return TypeDate, true
	}
	return "", false
}

// tokenBag lowercases and concatenates the descriptor's textual attributes,
// then splits on whitespace, hyphens and underscores.
func tokenBag(d Descriptor) []string {
	raw := strings.ToLower(strings.Join([]string{
		d.Name, d.ID, d.Placeholder, d.AriaLabel, d.ClassName,
	}, " "))
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_'
	})
}

func anyTokenContains(tokens []string, sub string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, sub) {
			return true
		}
	}
	return false
}

// defaultAutocompleteTable maps WHATWG autofill hint values to semantic types.
func defaultAutocompleteTable() map[string]SemanticType {
	return map[string]SemanticType{
		"email":              TypeEmail,
		"tel":                TypePhone,
		"tel-national":       TypePhone,
		"given-name":         TypeFirstName,
		"family-name":        TypeLastName,
		"name":               TypeName,
		"street-address":     TypeAddress,
		"address-line1":      TypeAddress,
		"address-line2":      TypeAddress,
		"address-level2":     TypeCity,
		"address-level1":     TypeState,
		"postal-code":        TypeZip,
		"country":            TypeCountry,
		"country-name":       TypeCountry,
		"organization":       TypeCompany,
		"organization-title": TypeTitle,
		"url":                TypeWebsite,
		"bday":               TypeDate,
	}
}

// DefaultKeywordCategories returns the default free-text heuristic in its
// fixed priority order. Callers may copy and modify the slice before passing
// it to NewClassifierWithRules.
func DefaultKeywordCategories() []KeywordCategory {
	return []KeywordCategory{
		{Type: TypeEmail, Keywords: []string{"email", "e-mail", "mail"}},
		{Type: TypePhone, Keywords: []string{"phone", "mobile", "tel", "cell", "fax"}},
		{Type: TypeFirstName, Keywords: []string{"first", "fname", "given", "forename"}, RequiresNameToken: true},
		{Type: TypeLastName, Keywords: []string{"last", "lname", "surname", "family"}, RequiresNameToken: true},
		{Type: TypeName, Keywords: []string{"name"}},
		{Type: TypeAddress, Keywords: []string{"address", "street", "addr"}},
		{Type: TypeCity, Keywords: []string{"city", "town", "locality"}},
		{Type: TypeState, Keywords: []string{"state", "province", "region"}},
		{Type: TypeZip, Keywords: []string{"zip", "postal", "postcode"}},
		{Type: TypeCountry, Keywords: []string{"country", "nation"}},
		{Type: TypeCompany, Keywords: []string{"company", "organization", "organisation", "employer", "business"}},
		{Type: TypeTitle, Keywords: []string{"title", "job", "role", "position"}},
		{Type: TypeWebsite, Keywords: []string{"website", "url", "homepage", "site"}},
		{Type: TypeMessage, Keywords: []string{"message", "comment", "description", "notes", "feedback", "bio", "about"}},
	}
}
