// ABOUTME: Format decoder registry turning raw document bytes into text
// ABOUTME: Unreadable sources surface one sentinel error kind

package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nainya/policystore/pkg/extract"
)

// ErrUnreadableSource marks bytes that cannot be decoded into text
// (corrupt, encrypted or truncated input).
var ErrUnreadableSource = errors.New("unreadable source")

// ErrUnsupportedFormat marks file extensions with no registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Result is the decoder output: normalized plain text plus whatever
// structured properties the format itself carries. Structured properties
// take precedence over heuristic extraction downstream.
type Result struct {
	Text      string
	Title     string
	PageCount int
	Props     extract.Metadata
}

// Decoder turns raw document bytes into a Result. A decoder must report
// a corrupt source via ErrUnreadableSource rather than silently
// returning empty text.
type Decoder interface {
	Decode(data []byte) (*Result, error)
}

var decoders = map[string]Decoder{
	".md":       MarkdownDecoder{},
	".markdown": MarkdownDecoder{},
	".pdf":      PDFDecoder{},
	".docx":     DocxDecoder{},
	".html":     HTMLDecoder{},
	".htm":      HTMLDecoder{},
	".txt":      TextDecoder{},
}

// ForFile returns the decoder registered for the file's extension.
func ForFile(filename string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec, nil
}

// SupportedExtensions lists the registered extensions, for surfacing in
// error messages and docs.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	return exts
}
