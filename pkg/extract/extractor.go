// ABOUTME: Structural extractor turning normalized text into title,
// ABOUTME: ordered sections and heuristic metadata

package extract

import (
	"path/filepath"
	"strings"
)

// Section is a heading-delimited span of document text.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Level   int    `json:"level"`
}

// Extraction is the full result of structural extraction.
type Extraction struct {
	Title    string
	Sections []Section
	Metadata Metadata
}

// Extract runs section detection, title extraction and metadata scanning
// over normalized plain text. It never fails: degraded input produces an
// empty but valid Extraction.
func Extract(text, filename string) Extraction {
	return Extraction{
		Title:    ExtractTitle(text, filename),
		Sections: ExtractSections(text),
		Metadata: ScanMetadata(text),
	}
}

// ExtractSections walks the text line by line, opening a new section at
// every accepted heading and accumulating trimmed content lines into the
// currently open one. Blank lines are skipped entirely. Lines before the
// first heading are discarded, as are sections whose content trims empty.
func ExtractSections(text string) []Section {
	var sections []Section
	var open *Section
	var buf []string

	flush := func() {
		if open == nil {
			return
		}
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if content != "" {
			open.Content = content
			sections = append(sections, *open)
		}
		open = nil
		buf = nil
	}

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if h, ok := ClassifyHeading(line); ok {
			flush()
			open = &Section{Heading: h.Text, Level: h.Level}
			continue
		}

		if open != nil {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

const (
	titleScanLines = 10
	titleMinLen    = 5
	titleMaxLen    = 150
)

// Boilerplate lines that commonly precede the real title.
var titleSkipPrefixes = []string{"date", "version", "effective", "revision", "rev "}

// ExtractTitle scans the first 10 non-blank lines for a title-looking
// line: 6-149 characters, starts with an uppercase letter, at least two
// words, and not page/date/version boilerplate. Falls back to the
// filename with its document extension stripped.
func ExtractTitle(text, filename string) string {
	seen := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > titleScanLines {
			break
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "page ") || hasAnyPrefix(lower, titleSkipPrefixes) {
			continue
		}

		if len(line) > titleMinLen && len(line) < titleMaxLen &&
			line[0] >= 'A' && line[0] <= 'Z' &&
			len(strings.Fields(line)) >= 2 {
			return line
		}
	}

	return titleFromFilename(filename)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

var strippedExtensions = []string{".pdf", ".docx", ".md"}

func titleFromFilename(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	for _, known := range strippedExtensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}
