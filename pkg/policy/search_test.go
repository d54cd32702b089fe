// ABOUTME: Tests for relevance scoring and result ordering
// ABOUTME: Verifies contributions, literal matching and edge queries

package policy

import (
	"strings"
	"testing"

	"github.com/nainya/policystore/pkg/extract"
)

func addDoc(store *MemoryStore, title, content, category string, sections ...extract.Section) *Document {
	return store.Add(extract.Extraction{
		Title:    title,
		Sections: sections,
	}, content, title+".pdf", category)
}

func TestEmptyAndShortQueries(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Encryption Standards", "encryption everywhere", "")

	if results := store.Search("", ""); len(results) != 0 {
		t.Errorf("Expected empty results for empty query, got %d", len(results))
	}
	if results := store.Search("   ", ""); len(results) != 0 {
		t.Errorf("Expected empty results for whitespace query, got %d", len(results))
	}
	// Non-empty query whose terms are all too short.
	if results := store.Search("a b c", ""); len(results) != 0 {
		t.Errorf("Expected empty results for all-short-term query, got %d", len(results))
	}
}

func TestScoreContributions(t *testing.T) {
	store := NewMemoryStore()

	// Title contains the phrase (+10), section 1 has one term hit (+1),
	// the full content contains the phrase once (+0.5).
	addDoc(store, "Encryption Standards",
		"Define encryption standards for sensitive data",
		"",
		extract.Section{Heading: "1. Purpose", Content: "Define encryption standards for sensitive data", Level: 1},
		extract.Section{Heading: "2. Scope", Content: "Applies to all systems handling customer data", Level: 1},
	)

	results := store.Search("encryption", "")
	if len(results) != 1 {
		t.Fatalf("Expected exactly one result, got %d", len(results))
	}

	r := results[0]
	if r.RelevanceScore != 11.5 {
		t.Errorf("Expected score 11.5, got %v", r.RelevanceScore)
	}
	if len(r.MatchedSections) != 1 || r.MatchedSections[0] != "1. Purpose" {
		t.Errorf("Expected matched sections ['1. Purpose'], got %v", r.MatchedSections)
	}
}

func TestContentOccurrencesCountedIndividually(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Unrelated Title", "encryption here and encryption there", "")

	results := store.Search("encryption", "")
	if len(results) != 1 {
		t.Fatalf("Expected one result, got %d", len(results))
	}
	// No title match, no sections: two content occurrences at 0.5 each.
	if results[0].RelevanceScore != 1.0 {
		t.Errorf("Expected score 1.0, got %v", results[0].RelevanceScore)
	}
}

func TestResultsSortedDescending(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Recovery Guide", "backup backup backup", "")
	addDoc(store, "Backup Policy Overview", "backup once", "",
		extract.Section{Heading: "1. Backup Schedule", Content: "Nightly backup of all volumes", Level: 1})
	addDoc(store, "Unrelated", "nothing relevant here", "")

	results := store.Search("backup", "")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results (zero-score documents excluded), got %d", len(results))
	}
	for i := 0; i+1 < len(results); i++ {
		if results[i].RelevanceScore < results[i+1].RelevanceScore {
			t.Errorf("Results out of order at %d: %v < %v",
				i, results[i].RelevanceScore, results[i+1].RelevanceScore)
		}
	}
	if results[0].Document.Title != "Backup Policy Overview" {
		t.Errorf("Expected title+section match to rank first, got %q", results[0].Document.Title)
	}
}

func TestEqualScoresKeepInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	first := addDoc(store, "Alpha", "retention period retention period", "")
	second := addDoc(store, "Beta", "retention period retention period", "")

	results := store.Search("retention", "")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != first.ID || results[1].Document.ID != second.ID {
		t.Errorf("Expected stable insertion order for equal scores")
	}
}

func TestCategoryFilterAppliedBeforeScoring(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Encryption Standards", "encryption", "security")
	addDoc(store, "Encryption Addendum", "encryption", "legal")

	results := store.Search("encryption", "SECURITY")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result after category filter, got %d", len(results))
	}
	if results[0].Document.Category != "security" {
		t.Errorf("Expected security document, got %q", results[0].Document.Category)
	}
}

func TestQueryMatchedAsLiteralText(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Coding Standard", "use c++ where c++ is appropriate", "")
	addDoc(store, "Regex Bait", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "")

	// Pattern metacharacters must match literally, not as a pattern.
	results := store.Search("c++", "")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result for literal query, got %d", len(results))
	}
	if results[0].RelevanceScore != 1.0 {
		t.Errorf("Expected two 0.5 content hits, got %v", results[0].RelevanceScore)
	}

	// An adversarial pattern-shaped query is just a string that matches
	// nothing.
	if results := store.Search("(a+)+$", ""); len(results) != 0 {
		t.Errorf("Expected no results for pattern-shaped query, got %d", len(results))
	}
}

func TestMatchedSectionsInDocumentOrder(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Access Control Policy", "no occurrences in body", "",
		extract.Section{Heading: "1. Badging", Content: "badge readers at every door", Level: 1},
		extract.Section{Heading: "2. Visitors", Content: "escort required at all times", Level: 1},
		extract.Section{Heading: "3. Badge Audits", Content: "badge logs reviewed monthly", Level: 1},
	)

	results := store.Search("badge", "")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	want := []string{"1. Badging", "3. Badge Audits"}
	got := results[0].MatchedSections
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected matched sections %v, got %v", want, got)
	}
}

func TestLongDocumentSearchIsLinear(t *testing.T) {
	store := NewMemoryStore()
	addDoc(store, "Big Document", strings.Repeat("filler text retention clause ", 5000), "")

	results := store.Search("retention", "")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].RelevanceScore != 5000*0.5 {
		t.Errorf("Expected 2500 content score, got %v", results[0].RelevanceScore)
	}
}
