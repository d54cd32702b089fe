// ABOUTME: Heuristic metadata scanning and structured-property merge
// ABOUTME: First matching pattern family wins per field

package extract

import "regexp"

// Metadata carries document-level attributes. EffectiveDate and Version
// come from heuristic text scanning unless a structured source (document
// properties, front-matter) overrides them; Author, CreatedDate,
// ModifiedDate and PageCount only ever come from structured sources.
type Metadata struct {
	EffectiveDate string `json:"effectiveDate,omitempty"`
	Version       string `json:"version,omitempty"`
	Author        string `json:"author,omitempty"`
	CreatedDate   string `json:"createdDate,omitempty"`
	ModifiedDate  string `json:"modifiedDate,omitempty"`
	PageCount     int    `json:"pageCount,omitempty"`
}

// Pattern families tried in order; the first family that matches wins and
// no further family is tried. Quantifiers are bounded throughout.
var effectiveDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)effective\s*(?:date)?\s*[:\-]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`(?i)dated?\s*[:\-]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`([A-Za-z]{3,20}\s+\d{1,2},?\s+\d{4})`),
}

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)version\s*[:\-]?\s*(\d{1,4}(?:\.\d{1,4}){0,5})`),
	regexp.MustCompile(`(?i)rev(?:ision)?\s*[:\-]?\s*(\d{1,4}(?:\.\d{1,4}){0,5})`),
	regexp.MustCompile(`(?i)\bv(\d{1,4}(?:\.\d{1,4}){0,5})\b`),
}

// ScanMetadata extracts effective date and version from raw text. Missing
// values stay empty; scanning never fails.
func ScanMetadata(text string) Metadata {
	return Metadata{
		EffectiveDate: firstMatch(effectiveDatePatterns, text),
		Version:       firstMatch(versionPatterns, text),
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// Merge overlays structured document properties on heuristic values.
// Structured sources win field by field; empty structured fields leave
// the heuristic value in place.
func Merge(heuristic, structured Metadata) Metadata {
	out := heuristic
	if structured.EffectiveDate != "" {
		out.EffectiveDate = structured.EffectiveDate
	}
	if structured.Version != "" {
		out.Version = structured.Version
	}
	if structured.Author != "" {
		out.Author = structured.Author
	}
	if structured.CreatedDate != "" {
		out.CreatedDate = structured.CreatedDate
	}
	if structured.ModifiedDate != "" {
		out.ModifiedDate = structured.ModifiedDate
	}
	if structured.PageCount != 0 {
		out.PageCount = structured.PageCount
	}
	return out
}
