package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/fillforge/pkg/field"
)

// Scenario is a curated dataset collection targeting one test goal. A
// scenario is consumed through the same selection contract as the organic
// catalogue: NewStore installs its datasets as the store's pool.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Datasets    []Dataset `yaml:"datasets"`
}

// NewStore builds a store whose pool is this scenario's datasets. The store
// is memory-only: scenario runs should not disturb the organic rotation
// ledger.
func (sc Scenario) NewStore() *Store {
	return NewStore(StoreOptions{Seed: sc.Datasets})
}

// LoadScenarioFile reads a scenario definition from YAML.
func LoadScenarioFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("dataset: read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("dataset: parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return Scenario{}, fmt.Errorf("dataset: scenario %s has no name", path)
	}
	if len(sc.Datasets) == 0 {
		return Scenario{}, fmt.Errorf("dataset: scenario %q has no datasets", sc.Name)
	}
	return sc, nil
}

// BuiltinScenario returns the named built-in scenario.
func BuiltinScenario(name string) (Scenario, error) {
	for _, sc := range BuiltinScenarios() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: scenario %s", ErrNotFound, name)
}

// BuiltinScenarios returns the built-in scenario library. Each targets one
// class of form behavior QA wants to exercise.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "happy-path",
			Description: "Well-formed values every validator should accept",
			Datasets:    BuiltinPersonas(),
		},
		{
			Name:        "edge-cases",
			Description: "Unusual but legal values: long strings, rare characters, minimal input",
			Datasets: []Dataset{
				{
					ID:       "edge-long-values",
					Name:     "Maximal lengths",
					Category: "edge-cases",
					Data: map[field.SemanticType]string{
						field.TypeEmail:     "very.long.local.part.with.many.segments@subdomain.of.a.rather.long.example.domain.com",
						field.TypeFirstName: "Maximillianna-Alexandretta",
						field.TypeLastName:  "Wolfeschlegelsteinhausen",
						field.TypeName:      "Maximillianna-Alexandretta Wolfeschlegelsteinhausen",
						field.TypeAddress:   "Apartment 47B, Building C, 12345 Extraordinarily Long Boulevard Name",
						field.TypeCity:      "Llanfairpwllgwyngyll",
						field.TypeZip:       "99999-9999",
						field.TypeMessage:   "A deliberately verbose message intended to probe length limits on free-text controls without being truncated silently by the page under test.",
					},
				},
				{
					ID:       "edge-minimal",
					Name:     "Minimal input",
					Category: "edge-cases",
					Data: map[field.SemanticType]string{
						field.TypeEmail:     "a@b.co",
						field.TypeFirstName: "Al",
						field.TypeLastName:  "Oh",
						field.TypeName:      "Al Oh",
						field.TypeZip:       "0",
						field.TypeMessage:   "ok",
					},
				},
				{
					ID:       "edge-punctuation-name",
					Name:     "Names with punctuation",
					Category: "edge-cases",
					Data: map[field.SemanticType]string{
						field.TypeEmail:     "sean.o'brien@example.ie",
						field.TypeFirstName: "Seán",
						field.TypeLastName:  "O'Brien-Ó Súilleabháin",
						field.TypeName:      "Seán O'Brien-Ó Súilleabháin",
						field.TypeCity:      "Dún Laoghaire",
						field.TypeCountry:   "Ireland",
					},
				},
			},
		},
		{
			Name:        "validation",
			Description: "Deliberately malformed values validators should reject",
			Datasets: []Dataset{
				{
					ID:       "validation-malformed",
					Name:     "Malformed basics",
					Category: "validation",
					Data: map[field.SemanticType]string{
						field.TypeEmail:   "not-an-email",
						field.TypePhone:   "12",
						field.TypeZip:     "ABCDE",
						field.TypeWebsite: "htp:/broken",
						field.TypeDate:    "31-31-9999",
						field.TypeNumber:  "NaN",
					},
				},
				{
					ID:       "validation-whitespace",
					Name:     "Whitespace traps",
					Category: "validation",
					Data: map[field.SemanticType]string{
						field.TypeEmail:     " padded@example.com ",
						field.TypeFirstName: "   ",
						field.TypeLastName:  "\tTab",
						field.TypeMessage:   "line one\n\n\nline after blank lines",
					},
				},
			},
		},
		{
			Name:        "i18n",
			Description: "Non-Latin scripts, combining marks and bidirectional text",
			Datasets: []Dataset{
				{
					ID:       "i18n-cjk",
					Name:     "CJK",
					Category: "i18n",
					Data: map[field.SemanticType]string{
						field.TypeFirstName: "秀英",
						field.TypeLastName:  "王",
						field.TypeName:      "王秀英",
						field.TypeCity:      "北京",
						field.TypeCountry:   "中国",
						field.TypeMessage:   "こんにちは。フォームのテストです。",
					},
				},
				{
					ID:       "i18n-rtl",
					Name:     "Right-to-left",
					Category: "i18n",
					Data: map[field.SemanticType]string{
						field.TypeFirstName: "ليلى",
						field.TypeLastName:  "حداد",
						field.TypeName:      "ليلى حداد",
						field.TypeCity:      "بيروت",
						field.TypeCountry:   "لبنان",
						field.TypeMessage:   "هذه رسالة اختبار للنموذج.",
					},
				},
				{
					ID:       "i18n-diacritics",
					Name:     "Diacritics and emoji",
					Category: "i18n",
					Data: map[field.SemanticType]string{
						field.TypeFirstName: "Zoë",
						field.TypeLastName:  "Brzęczyszczykiewicz",
						field.TypeName:      "Zoë Brzęczyszczykiewicz",
						field.TypeCity:      "Łódź",
						field.TypeMessage:   "Testing émojis 🎉 and combining marks: é é",
					},
				},
			},
		},
		{
			Name:        "accessibility",
			Description: "Values exercising screen-reader and announcement paths",
			Datasets: []Dataset{
				{
					ID:       "a11y-announcements",
					Name:     "Announcement-heavy values",
					Category: "accessibility",
					Data: map[field.SemanticType]string{
						field.TypeName:    "Screen Reader Test User",
						field.TypeEmail:   "sr.test@example.com",
						field.TypeMessage: "Text with UPPERCASE words, numbers 1 2 3, and symbols & < > that assistive tech must announce.",
					},
				},
			},
		},
		{
			Name:        "security",
			Description: "Injection payloads the page must render and store inertly",
			Datasets: []Dataset{
				{
					ID:       "security-xss",
					Name:     "Markup injection",
					Category: "security",
					Data: map[field.SemanticType]string{
						field.TypeFirstName: "<script>alert(1)</script>",
						field.TypeLastName:  "\"><img src=x onerror=alert(1)>",
						field.TypeName:      "<b>bold?</b>",
						field.TypeMessage:   "{{constructor.constructor('return 1')()}}",
					},
				},
				{
					ID:       "security-sqli",
					Name:     "Query injection",
					Category: "security",
					Data: map[field.SemanticType]string{
						field.TypeFirstName: "Robert'); DROP TABLE users;--",
						field.TypeLastName:  "' OR '1'='1",
						field.TypeEmail:     "sqli'--@example.com",
						field.TypeMessage:   "1; SELECT * FROM sessions",
					},
				},
			},
		},
		{
			Name:        "boundary",
			Description: "Numeric and date boundary values",
			Datasets: []Dataset{
				{
					ID:       "boundary-extremes",
					Name:     "Numeric extremes",
					Category: "boundary",
					Data: map[field.SemanticType]string{
						field.TypeNumber: "2147483648",
						field.TypeDate:   "1899-12-31",
						field.TypeZip:    "00000",
						field.TypePhone:  "+999999999999999",
					},
				},
				{
					ID:       "boundary-zero",
					Name:     "Zero and negatives",
					Category: "boundary",
					Data: map[field.SemanticType]string{
						field.TypeNumber: "-1",
						field.TypeDate:   "0001-01-01",
						field.TypeZip:    "0",
					},
				},
			},
		},
	}
}
