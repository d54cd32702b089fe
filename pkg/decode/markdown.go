// ABOUTME: Markdown decoder with YAML front-matter support
// ABOUTME: Strips markup so heading lines reach the extractor bare

package decode

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nainya/policystore/pkg/extract"
)

// frontMatter is the subset of front-matter keys mapped into document
// properties. Unknown keys are ignored.
type frontMatter struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	Version       string `yaml:"version"`
	EffectiveDate string `yaml:"effective_date"`
	Date          string `yaml:"date"`
	Created       string `yaml:"created"`
	Modified      string `yaml:"modified"`
}

// MarkdownDecoder handles .md and .markdown files.
type MarkdownDecoder struct{}

func (MarkdownDecoder) Decode(data []byte) (*Result, error) {
	body := strings.ReplaceAll(string(data), "\r\n", "\n")
	res := &Result{}

	if fm, rest, ok := splitFrontMatter(body); ok {
		var meta frontMatter
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return nil, fmt.Errorf("%w: invalid front-matter: %v", ErrUnreadableSource, err)
		}
		res.Title = meta.Title
		res.Props = extract.Metadata{
			Author:        meta.Author,
			Version:       meta.Version,
			EffectiveDate: meta.EffectiveDate,
			CreatedDate:   meta.Created,
			ModifiedDate:  meta.Modified,
		}
		if res.Props.EffectiveDate == "" {
			res.Props.EffectiveDate = meta.Date
		}
		body = rest
	}

	res.Text = normalizeMarkdown(body)
	return res, nil
}

// splitFrontMatter separates a leading --- fenced YAML block from the
// document body. Returns ok=false when no complete fence is present.
func splitFrontMatter(s string) (fm, rest string, ok bool) {
	if !strings.HasPrefix(s, "---\n") {
		return "", s, false
	}
	after := s[len("---\n"):]
	end := strings.Index(after, "\n---")
	if end < 0 {
		return "", s, false
	}
	fm = after[:end]
	rest = after[end+len("\n---"):]
	if i := strings.Index(rest, "\n"); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = ""
	}
	return fm, rest, true
}

var (
	mdLinkRe   = regexp.MustCompile(`\[([^\]]{0,200})\]\(([^)]{0,500})\)`)
	mdBulletRe = regexp.MustCompile(`^[\-\*\+]\s+`)
)

// normalizeMarkdown strips markup that would hide heading shapes from the
// section classifiers: ATX heading markers, emphasis markers, list
// bullets, blockquote markers and link syntax.
func normalizeMarkdown(body string) string {
	var out []string
	for line := range strings.Lines(body) {
		line = strings.TrimRight(line, "\n")
		trimmed := strings.TrimSpace(line)

		trimmed = strings.TrimLeft(trimmed, "#")
		trimmed = strings.TrimSpace(trimmed)
		trimmed = strings.TrimPrefix(trimmed, "> ")
		trimmed = mdBulletRe.ReplaceAllString(trimmed, "")
		trimmed = mdLinkRe.ReplaceAllString(trimmed, "$1")
		trimmed = strings.ReplaceAll(trimmed, "**", "")
		trimmed = strings.ReplaceAll(trimmed, "__", "")
		trimmed = strings.ReplaceAll(trimmed, "`", "")

		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
