package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractDOCX opens the upload as a zipped document package and concatenates
// all paragraph texts from word/document.xml in document order, one paragraph
// per line. Decode failures degrade to empty text with a warning.
func extractDOCX(data []byte) (string, []string) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", []string{"docx: not a zip package: " + err.Error()}
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", []string{"docx: word/document.xml not found"}
	}

	rc, err := doc.Open()
	if err != nil {
		return "", []string{"docx: open document.xml: " + err.Error()}
	}
	defer rc.Close()

	text, err := paragraphText(rc)
	if err != nil {
		return "", []string{"docx: decode document.xml: " + err.Error()}
	}
	return strings.TrimSpace(text), nil
}

// paragraphText walks the WordprocessingML token stream, collecting character
// data inside <w:t> runs and emitting a newline at each </w:p>.
func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

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
			if t.Name.Local == "t" {
				inText = true
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
	return b.String(), nil
}
