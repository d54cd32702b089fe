// ABOUTME: PDF text decoder built on ledongthuc/pdf
// ABOUTME: Extracts per-page plain text and the page count

package decode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFDecoder handles .pdf files.
type PDFDecoder struct{}

func (PDFDecoder) Decode(data []byte) (res *Result, err error) {
	// ledongthuc/pdf panics on some malformed inputs; uploads are
	// untrusted, so the panic is converted into the decode error kind.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrUnreadableSource, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	total := reader.NumPage()
	var pages []string
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return nil, fmt.Errorf("%w: no extractable text", ErrUnreadableSource)
	}

	return &Result{Text: text, PageCount: total}, nil
}
