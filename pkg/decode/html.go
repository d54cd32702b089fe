// ABOUTME: HTML decoder using x/net/html tree traversal
// ABOUTME: Headings become standalone lines for the section classifiers

package decode

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// HTMLDecoder handles .html and .htm files.
type HTMLDecoder struct{}

func (HTMLDecoder) Decode(data []byte) (*Result, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	res := &Result{}
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "title":
				if n.FirstChild != nil {
					res.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
			if isHeadingTag(n.Data) {
				b.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlockTag(n.Data) {
			b.WriteString("\n")
		}
	}
	walk(root)

	// Inline text accumulates trailing spaces before block breaks; trim
	// each line so headings reach the classifiers clean.
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	res.Text = strings.TrimSpace(strings.Join(lines, "\n"))
	return res, nil
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func isBlockTag(tag string) bool {
	if isHeadingTag(tag) {
		return true
	}
	switch tag {
	case "p", "div", "section", "article", "li", "tr", "br", "table", "ul", "ol":
		return true
	}
	return false
}
