// ABOUTME: Tests for the in-memory policy index
// ABOUTME: Verifies identity, round-trips, filtering and removal

package policy

import (
	"fmt"
	"testing"
	"time"

	"github.com/nainya/policystore/pkg/extract"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("doc-%d", n)
	}
}

func fixedClock() func() time.Time {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func testExtraction(title string) extract.Extraction {
	return extract.Extraction{
		Title: title,
		Sections: []extract.Section{
			{Heading: "1. Purpose", Content: "Why this policy exists.", Level: 1},
		},
		Metadata: extract.Metadata{Version: "1.0"},
	}
}

func TestAddAndGetRoundTrip(t *testing.T) {
	store := NewMemoryStore(WithIDGenerator(sequentialIDs()), WithClock(fixedClock()))

	added := store.Add(testExtraction("Data Retention Policy"), "full text", "retention.pdf", "compliance")

	got, ok := store.Get(added.ID)
	if !ok {
		t.Fatalf("Expected to find document %s", added.ID)
	}

	if got.Title != "Data Retention Policy" {
		t.Errorf("Expected title to round-trip, got %q", got.Title)
	}
	if got.Content != "full text" {
		t.Errorf("Expected content to round-trip, got %q", got.Content)
	}
	if got.SourceFile != "retention.pdf" {
		t.Errorf("Expected source file to round-trip, got %q", got.SourceFile)
	}
	if got.Category != "compliance" {
		t.Errorf("Expected category to round-trip, got %q", got.Category)
	}
	if got.Version != "1.0" {
		t.Errorf("Expected metadata to round-trip, got %q", got.Version)
	}
	if len(got.Sections) != 1 || got.Sections[0].Heading != "1. Purpose" {
		t.Errorf("Expected sections to round-trip, got %+v", got.Sections)
	}
	if !got.ExtractedAt.Equal(fixedClock()()) {
		t.Errorf("Expected clock timestamp, got %v", got.ExtractedAt)
	}
}

func TestDistinctIDsForIdenticalContent(t *testing.T) {
	store := NewMemoryStore()

	a := store.Add(testExtraction("Same Title"), "same content", "same.pdf", "")
	b := store.Add(testExtraction("Same Title"), "same content", "same.pdf", "")

	if a.ID == b.ID {
		t.Errorf("Expected distinct identifiers, both got %q", a.ID)
	}
	if store.Count() != 2 {
		t.Errorf("Expected 2 documents, got %d", store.Count())
	}
}

func TestGetMissIsNotAnError(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("Expected miss for unknown id")
	}
}

func TestListCategoryFilter(t *testing.T) {
	store := NewMemoryStore(WithIDGenerator(sequentialIDs()), WithClock(fixedClock()))
	store.Add(testExtraction("HR Handbook"), "text", "hr.pdf", "HR")
	store.Add(testExtraction("Security Standard"), "text", "sec.pdf", "security")
	store.Add(testExtraction("Uncategorized Doc"), "text", "misc.pdf", "")

	// Case-insensitive exact match.
	hr := store.List("hr")
	if len(hr) != 1 || hr[0].Title != "HR Handbook" {
		t.Fatalf("Expected only the HR document, got %+v", hr)
	}

	// Empty category means no filtering.
	all := store.List("")
	if len(all) != 3 {
		t.Errorf("Expected 3 summaries without filter, got %d", len(all))
	}
	if all[0].SectionCount != 1 {
		t.Errorf("Expected section count 1, got %d", all[0].SectionCount)
	}
}

func TestListIsIdempotent(t *testing.T) {
	store := NewMemoryStore(WithIDGenerator(sequentialIDs()), WithClock(fixedClock()))
	store.Add(testExtraction("Doc A"), "text", "a.pdf", "ops")
	store.Add(testExtraction("Doc B"), "text", "b.pdf", "ops")

	first := store.List("ops")
	second := store.List("ops")

	if len(first) != len(second) {
		t.Fatalf("List not idempotent: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("List not idempotent at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestListAllReturnsDefensiveCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Add(testExtraction("Doc A"), "text", "a.pdf", "")
	store.Add(testExtraction("Doc B"), "text", "b.pdf", "")

	docs := store.ListAll()
	docs[0], docs[1] = docs[1], docs[0]
	docs = docs[:1]

	again := store.ListAll()
	if len(again) != 2 {
		t.Fatalf("Internal state affected by caller mutation: %d docs", len(again))
	}
	if again[0].Title != "Doc A" {
		t.Errorf("Expected insertion order preserved, got %q first", again[0].Title)
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := NewMemoryStore()
	doc := store.Add(testExtraction("Doomed"), "text", "d.pdf", "")

	if !store.Remove(doc.ID) {
		t.Error("Expected removal to report true")
	}
	if store.Remove(doc.ID) {
		t.Error("Expected second removal to report false")
	}

	store.Add(testExtraction("Another"), "text", "a.pdf", "")
	store.Clear()
	store.Clear() // idempotent

	if store.Count() != 0 {
		t.Errorf("Expected empty store after clear, got %d", store.Count())
	}
	if store.Remove("any-id") {
		t.Error("Expected remove on cleared store to report false")
	}
}
