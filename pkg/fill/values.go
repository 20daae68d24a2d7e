package fill

import (
	"strings"

	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/field"
)

// genericPlaceholder is the value of last resort for unrecognized fields.
const genericPlaceholder = "Test value"

// categoryDefaults are static fallbacks used when the selected persona lacks
// a value for a field's semantic type.
var categoryDefaults = map[field.SemanticType]string{
	field.TypeEmail:     "test@example.com",
	field.TypePhone:     "+1 555 000 0000",
	field.TypeFirstName: "Test",
	field.TypeLastName:  "User",
	field.TypeName:      "Test User",
	field.TypeAddress:   "123 Test Street",
	field.TypeCity:      "Testville",
	field.TypeState:     "CA",
	field.TypeZip:       "90210",
	field.TypeCountry:   "United States",
	field.TypeCompany:   "Test Company",
	field.TypeTitle:     "QA Engineer",
	field.TypeWebsite:   "https://example.com",
	field.TypeMessage:   "This is a test message.",
	field.TypeDate:      "2000-01-01",
	field.TypeNumber:    "1",
}

// resolveValue picks the value for one field: persona value first, then the
// static category default, then the generic placeholder.
func resolveValue(ds dataset.Dataset, t field.SemanticType) string {
	if v, ok := ds.Value(t); ok {
		return v
	}
	if v, ok := categoryDefaults[t]; ok {
		return v
	}
	return genericPlaceholder
}

// resolveOption maps a resolved value onto a select control's options:
// exact case-insensitive match first, then prefix match in either direction
// ("United States" vs "US" style abbreviations miss, but "Sweden" matches
// "sweden"), then the first non-placeholder option.
func resolveOption(sel driver.SelectControl, want string) (string, bool) {
	options := sel.Options()
	for _, opt := range options {
		if strings.EqualFold(opt, want) {
			return opt, true
		}
	}
	lowerWant := strings.ToLower(want)
	for _, opt := range options {
		lowerOpt := strings.ToLower(opt)
		if lowerOpt != "" && (strings.HasPrefix(lowerWant, lowerOpt) || strings.HasPrefix(lowerOpt, lowerWant)) {
			return opt, true
		}
	}
	for _, opt := range options {
		if opt != "" {
			return opt, true
		}
	}
	return "", false
}
