// ABOUTME: Data model for ingested policy documents
// ABOUTME: Document, Summary and SearchResult shapes

package policy

import (
	"time"

	"github.com/nainya/policystore/pkg/extract"
)

// Document is a fully ingested policy. Treated as immutable after
// creation: an update is a Remove followed by a fresh Add.
type Document struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	SourceFile    string            `json:"sourceFile"`
	Category      string            `json:"category,omitempty"`
	EffectiveDate string            `json:"effectiveDate,omitempty"`
	Version       string            `json:"version,omitempty"`
	Author        string            `json:"author,omitempty"`
	CreatedDate   string            `json:"createdDate,omitempty"`
	ModifiedDate  string            `json:"modifiedDate,omitempty"`
	PageCount     int               `json:"pageCount,omitempty"`
	Sections      []extract.Section `json:"sections"`
	ExtractedAt   time.Time         `json:"extractedAt"`
}

// Summary is the lightweight listing projection of a Document.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SourceFile   string    `json:"sourceFile"`
	Category     string    `json:"category,omitempty"`
	SectionCount int       `json:"sectionCount"`
	ExtractedAt  time.Time `json:"extractedAt"`
}

// SearchResult references a stored document together with the headings of
// the sections that matched and the computed relevance score. Ephemeral,
// never stored.
type SearchResult struct {
	Document        *Document `json:"document"`
	MatchedSections []string  `json:"matchedSections"`
	RelevanceScore  float64   `json:"relevanceScore"`
}

func (d *Document) summary() Summary {
	return Summary{
		ID:           d.ID,
		Title:        d.Title,
		SourceFile:   d.SourceFile,
		Category:     d.Category,
		SectionCount: len(d.Sections),
		ExtractedAt:  d.ExtractedAt,
	}
}
