// ABOUTME: Ordered heading classifiers for section boundary detection
// ABOUTME: First matching pattern wins; priority order is a testable constant

package extract

import (
	"regexp"
	"strings"
)

// HeadingKind identifies which classifier matched a line.
type HeadingKind int

const (
	NoMatch HeadingKind = iota
	NumericHeading
	RomanHeading
	LetterHeading
	AbbrevHeading
	CapsHeading
)

// Heading is the result of classifying a single line.
type Heading struct {
	Kind  HeadingKind
	Text  string // full heading text including any numbering prefix
	Level int    // 1 = top level
}

// Composed heading strings outside (minHeadingLen, maxHeadingLen) are not
// accepted as section boundaries.
const (
	minHeadingLen = 2
	maxHeadingLen = 200
)

// All quantifiers are explicitly bounded. Go's regexp is RE2, so matching
// is linear in the input even on adversarial uploads; the caps keep
// heading shapes sane on top of that.
var (
	numericHeadingRe = regexp.MustCompile(`^(\d{1,4}(?:\.\d{1,4}){0,5})(?:[.:\-]\s*|\s+)(.{1,200})$`)
	romanHeadingRe   = regexp.MustCompile(`^[IVXLCivxlc]{1,10}[.:\-]\s*(.{1,200})$`)
	letterHeadingRe  = regexp.MustCompile(`^[A-Z][.:\-]\s*(.{1,200})$`)
	abbrevHeadingRe  = regexp.MustCompile(`^[A-Z]{2,4} [A-Z].{0,199}$`)
	capsHeadingRe    = regexp.MustCompile(`^[A-Z][A-Z ]{3,103}$`)
)

// headingClassifiers is the dispatch order. Priority is part of the
// contract: a line matching an earlier classifier never falls through to
// a later one.
var headingClassifiers = []func(string) (Heading, bool){
	classifyNumeric,
	classifyRoman,
	classifyLetter,
	classifyAbbrev,
	classifyCaps,
}

// ClassifyHeading tests a trimmed, non-blank line against each heading
// pattern in priority order. Lines that match a pattern but compose a
// heading shorter than 3 or longer than 199 characters are treated as
// content.
func ClassifyHeading(line string) (Heading, bool) {
	for _, classify := range headingClassifiers {
		h, ok := classify(line)
		if !ok {
			continue
		}
		if len(h.Text) <= minHeadingLen || len(h.Text) >= maxHeadingLen {
			return Heading{Kind: NoMatch}, false
		}
		return h, true
	}
	return Heading{Kind: NoMatch}, false
}

func classifyNumeric(line string) (Heading, bool) {
	m := numericHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return Heading{}, false
	}
	return Heading{
		Kind:  NumericHeading,
		Text:  line,
		Level: strings.Count(m[1], ".") + 1,
	}, true
}

func classifyRoman(line string) (Heading, bool) {
	if !romanHeadingRe.MatchString(line) {
		return Heading{}, false
	}
	return Heading{Kind: RomanHeading, Text: line, Level: 1}, true
}

func classifyLetter(line string) (Heading, bool) {
	if !letterHeadingRe.MatchString(line) {
		return Heading{}, false
	}
	return Heading{Kind: LetterHeading, Text: line, Level: 1}, true
}

func classifyAbbrev(line string) (Heading, bool) {
	if !abbrevHeadingRe.MatchString(line) {
		return Heading{}, false
	}
	return Heading{Kind: AbbrevHeading, Text: line, Level: 1}, true
}

func classifyCaps(line string) (Heading, bool) {
	if !capsHeadingRe.MatchString(line) {
		return Heading{}, false
	}
	return Heading{Kind: CapsHeading, Text: line, Level: 1}, true
}
