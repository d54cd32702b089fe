// ABOUTME: DOCX decoder reading word/document.xml and docProps/core.xml
// ABOUTME: Stdlib OPC parse, no external docx dependency

package decode

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nainya/policystore/pkg/extract"
)

// DocxDecoder handles .docx files.
type DocxDecoder struct{}

func (DocxDecoder) Decode(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	var docXML, coreXML []byte
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			if docXML, err = readZipFile(f); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
			}
		case "docProps/core.xml":
			coreXML, _ = readZipFile(f)
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrUnreadableSource)
	}

	text, err := docxText(docXML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	res := &Result{Text: text}
	if coreXML != nil {
		res.Props = docxProps(coreXML)
	}
	return res, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// docxText streams document.xml, collecting the character data of w:t
// runs and emitting a newline at each paragraph end.
func docxText(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var b strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString(" ")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// coreProperties maps the Dublin Core subset carried by docProps/core.xml.
type coreProperties struct {
	Creator  string `xml:"creator"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

func docxProps(core []byte) extract.Metadata {
	var props coreProperties
	if err := xml.Unmarshal(core, &props); err != nil {
		return extract.Metadata{}
	}
	return extract.Metadata{
		Author:       props.Creator,
		CreatedDate:  props.Created,
		ModifiedDate: props.Modified,
	}
}
