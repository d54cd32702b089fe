// ABOUTME: In-memory policy index guarded by a single mutex
// ABOUTME: Insertion-ordered storage with injectable id generator and clock

package policy

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nainya/policystore/pkg/extract"
)

// Store is the storage abstraction for ingested policies. MemoryStore is
// the only implementation shipped; the interface exists so a concurrent
// or persistent backing store can be swapped in without touching
// extraction or scoring.
type Store interface {
	Add(ex extract.Extraction, content, sourceFile, category string) *Document
	Get(id string) (*Document, bool)
	ListAll() []*Document
	List(category string) []Summary
	Search(query, category string) []SearchResult
	Remove(id string) bool
	Clear()
	Count() int
}

// MemoryStore holds documents in a map keyed by id. Every public
// operation takes the mutex, so operations are atomic with respect to
// each other and a partially added document is never observable.
// Iteration order for listing and search is insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]*Document
	order []string

	newID func() string
	now   func() time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator overrides the identifier generator. The default is
// UUIDv4, assumed collision-free.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) { s.newID = gen }
}

// WithClock overrides the source of ingestion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an empty in-memory policy index.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		docs:  make(map[string]*Document),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add assigns a fresh id, stamps the ingestion time and stores the
// document built from the extraction output. It never fails.
func (s *MemoryStore) Add(ex extract.Extraction, content, sourceFile, category string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &Document{
		ID:            s.newID(),
		Title:         ex.Title,
		Content:       content,
		SourceFile:    sourceFile,
		Category:      category,
		EffectiveDate: ex.Metadata.EffectiveDate,
		Version:       ex.Metadata.Version,
		Author:        ex.Metadata.Author,
		CreatedDate:   ex.Metadata.CreatedDate,
		ModifiedDate:  ex.Metadata.ModifiedDate,
		PageCount:     ex.Metadata.PageCount,
		Sections:      ex.Sections,
		ExtractedAt:   s.now(),
	}

	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return doc
}

// Get looks up a document by id. A miss is a normal outcome, not an
// error.
func (s *MemoryStore) Get(id string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	return doc, ok
}

// ListAll returns every stored document in insertion order. The returned
// slice is a copy; callers may reorder or truncate it freely.
func (s *MemoryStore) ListAll() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out
}

// List returns summaries, optionally filtered by case-insensitive exact
// category match. An empty category means no filtering.
func (s *MemoryStore) List(category string) []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		doc := s.docs[id]
		if category != "" && !strings.EqualFold(doc.Category, category) {
			continue
		}
		out = append(out, doc.summary())
	}
	return out
}

// Remove deletes a document if present and reports whether a deletion
// occurred.
func (s *MemoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the store. Idempotent.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]*Document)
	s.order = nil
}

// Count returns the number of stored documents.
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.docs)
}
