// Package listing defines the structured, translated extraction of a
// Japanese property flyer and the target languages it can be translated to.
package listing

import "fmt"

// Language is a target language for extraction and document labels.
type Language string

const (
	// LanguageChinese is Traditional Chinese.
	LanguageChinese Language = "zh-Hant"
	// LanguageEnglish is English.
	LanguageEnglish Language = "en"
)

// Languages lists every supported target language.
func Languages() []Language {
	return []Language{LanguageChinese, LanguageEnglish}
}

// Valid reports whether l is a supported target language.
func (l Language) Valid() bool {
	switch l {
	case LanguageChinese, LanguageEnglish:
		return true
	}
	return false
}

// PromptName returns the language name as written into the extraction prompt.
func (l Language) PromptName() string {
	switch l {
	case LanguageChinese:
		return "Traditional Chinese"
	case LanguageEnglish:
		return "English"
	}
	return string(l)
}

// ParseLanguage parses a language code or name into a Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "zh-Hant", "zh", "chinese", "Traditional Chinese":
		return LanguageChinese, nil
	case "en", "english", "English":
		return LanguageEnglish, nil
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

// Record is the structured result of one flyer extraction. Every field is
// always present (possibly empty) so downstream layout code never has to deal
// with missing keys. A Record is immutable after creation and replaced
// wholesale on each new extraction.
type Record struct {
	PropertyName   string   `json:"propertyName"`
	Price          string   `json:"price"`
	Location       string   `json:"location"`
	Access         string   `json:"access"`
	Layout         string   `json:"layout"`
	Size           string   `json:"size"`
	BuiltYear      string   `json:"builtYear"`
	Floor          string   `json:"floor"`
	ManagementFee  string   `json:"managementFee"`
	RepairFund     string   `json:"repairFund"`
	CoverageRatio  string   `json:"coverageRatio"`
	FloorAreaRatio string   `json:"floorAreaRatio"`
	Restrictions   string   `json:"restrictions"`
	Facilities     string   `json:"facilities"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
}

// Normalize ensures the record upholds its presence invariant. Fields decoded
// from JSON already default to empty strings; only the feature slice can be
// nil after decoding.
func (r *Record) Normalize() {
	if r.Features == nil {
		r.Features = []string{}
	}
}
