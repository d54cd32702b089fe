// ABOUTME: Plain text decoder
// ABOUTME: Fallback for .txt and other already-textual sources

package decode

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextDecoder handles .txt files.
type TextDecoder struct{}

func (TextDecoder) Decode(data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrUnreadableSource)
	}
	return &Result{Text: strings.ReplaceAll(string(data), "\r\n", "\n")}, nil
}
