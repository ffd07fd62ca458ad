// Package flow implements the Sampark onboarding state machine, the
// post-onboarding menu dispatcher, and the validators both consume.
package flow

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cityAliases collapses known spellings to a canonical display name.
// Lookup is case-insensitive on the trimmed input.
var cityAliases = map[string]string{
	"bengaluru": "Bangalore",
	"bangalore": "Bangalore",
	"bombay":    "Mumbai",
	"mumbai":    "Mumbai",
	"madras":    "Chennai",
	"chennai":   "Chennai",
	"delhi":     "Delhi",
	"new delhi": "Delhi",
}

// relationKeywords maps relation words to their canonical category.
// Input is lowercased and stripped of non-letters before lookup.
var relationKeywords = map[string]string{
	"brother": "Sibling",
	"sister":  "Sibling",
	"sibling": "Sibling",
	"mom":     "Parent",
	"mother":  "Parent",
	"mum":     "Parent",
	"dad":     "Parent",
	"father":  "Parent",
	"husband": "Spouse",
	"wife":    "Spouse",
	"spouse":  "Spouse",
	"friend":  "Friend",
	"buddy":   "Friend",
}

// canonicalRelations is the closed set of relation categories besides Other.
var canonicalRelations = map[string]bool{
	"Spouse":  true,
	"Parent":  true,
	"Sibling": true,
	"Friend":  true,
}

// TitleCase capitalizes the first letter of each word and lowercases the
// rest, matching how the bot displays names and cities.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// ParseAge parses a patient age. Any value that parses as an integer is
// accepted; no plausibility range is enforced.
func ParseAge(text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseMeasurement parses a height or weight value. Any value that parses
// as a float is accepted, including zero and negative values; the BMI
// calculator guards the division instead.
func ParseMeasurement(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeCity resolves a raw city string to its canonical display form.
// Unknown cities are title-cased verbatim.
func NormalizeCity(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := cityAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return TitleCase(trimmed)
}

// NormalizeRelation classifies a relation word into one of
// Spouse/Parent/Sibling/Friend/Other.
func NormalizeRelation(text string) string {
	var letters strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters.WriteRune(r)
		}
	}
	key := strings.ToLower(letters.String())
	if key == "" {
		return "Other"
	}
	if category, ok := relationKeywords[key]; ok {
		return category
	}
	if titled := TitleCase(strings.TrimSpace(text)); canonicalRelations[titled] {
		return titled
	}
	return "Other"
}
