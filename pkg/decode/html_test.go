// ABOUTME: Tests for the HTML decoder and the decoder registry
// ABOUTME: Verifies heading isolation, title capture and format dispatch

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLDecode(t *testing.T) {
	src := `<html>
<head><title>Remote Work Policy</title><style>body{color:red}</style></head>
<body>
<h1>1. Eligibility</h1>
<p>All full-time employees are eligible.</p>
<h2>2. Equipment</h2>
<p>Company laptops only.</p>
<script>alert("ignored")</script>
</body>
</html>`

	res, err := HTMLDecoder{}.Decode([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Remote Work Policy", res.Title)
	assert.Contains(t, res.Text, "1. Eligibility\n")
	assert.Contains(t, res.Text, "All full-time employees are eligible.")
	assert.Contains(t, res.Text, "2. Equipment\n")
	assert.NotContains(t, res.Text, "alert")
	assert.NotContains(t, res.Text, "color:red")
}

func TestForFileDispatch(t *testing.T) {
	cases := map[string]Decoder{
		"policy.md":    MarkdownDecoder{},
		"POLICY.MD":    MarkdownDecoder{},
		"policy.pdf":   PDFDecoder{},
		"policy.docx":  DocxDecoder{},
		"policy.html":  HTMLDecoder{},
		"notes.txt":    TextDecoder{},
		"doc.markdown": MarkdownDecoder{},
	}

	for filename, want := range cases {
		dec, err := ForFile(filename)
		require.NoError(t, err, filename)
		assert.IsType(t, want, dec, filename)
	}
}

func TestForFileUnsupported(t *testing.T) {
	_, err := ForFile("image.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTextDecodeRejectsBinary(t *testing.T) {
	_, err := TextDecoder{}.Decode([]byte{0xff, 0xfe, 0x00, 0x80})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestPDFDecodeRejectsGarbage(t *testing.T) {
	_, err := PDFDecoder{}.Decode([]byte("not a pdf at all"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}
