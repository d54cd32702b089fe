// ABOUTME: Relevance scoring for keyword search over stored policies
// ABOUTME: Additive title, section and content contributions, literal matching

package policy

import (
	"sort"
	"strings"
)

const (
	// Score contributions. Title match counts the full query as a phrase,
	// sections count per-term hits, content counts full-phrase occurrences
	// at half weight.
	titleMatchScore        = 10.0
	contentOccurrenceScore = 0.5

	// Terms shorter than this are dropped from the query before scoring.
	minTermLength = 3
)

// Search scores every candidate document against the query and returns
// results ordered by descending relevance. An empty query, or a query
// whose terms are all too short, yields an empty result set rather than
// an error. The query is matched as a literal string throughout, never
// interpreted as a pattern.
func (s *MemoryStore) Search(query, category string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	terms := searchTerms(q)
	if len(terms) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, id := range s.order {
		doc := s.docs[id]
		if category != "" && !strings.EqualFold(doc.Category, category) {
			continue
		}

		score, matched := scoreDocument(doc, q, terms)
		if score > 0 {
			results = append(results, SearchResult{
				Document:        doc,
				MatchedSections: matched,
				RelevanceScore:  score,
			})
		}
	}

	// Stable sort keeps ingestion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	return results
}

// searchTerms splits a normalized query on whitespace and drops terms too
// short to be selective.
func searchTerms(q string) []string {
	var terms []string
	for _, t := range strings.Fields(q) {
		if len(t) >= minTermLength {
			terms = append(terms, t)
		}
	}
	return terms
}

func scoreDocument(doc *Document, query string, terms []string) (float64, []string) {
	score := 0.0

	if strings.Contains(strings.ToLower(doc.Title), query) {
		score += titleMatchScore
	}

	var matched []string
	for _, sec := range doc.Sections {
		haystack := strings.ToLower(sec.Heading + " " + sec.Content)
		hits := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				hits++
			}
		}
		if hits > 0 {
			score += float64(hits)
			matched = append(matched, sec.Heading)
		}
	}

	// strings.Count is non-overlapping and literal, which is exactly the
	// contract for the content contribution.
	score += float64(strings.Count(strings.ToLower(doc.Content), query)) * contentOccurrenceScore

	return score, matched
}
