package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned when a file extension has no registered parser.
// Callers must treat it as a hard failure for that document, not skip it silently.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Text extracts plain text from raw document bytes, dispatching on the file
// extension of 'filename'. Pages and paragraphs are joined with newlines in
// reading order. This is the only place format-specific parsing is allowed.
func Text(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return plainText(data), nil
	case ".pdf":
		return pdfText(data)
	case ".docx", ".doc":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func plainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	// Lossy decode: drop invalid sequences instead of failing the whole file.
	return strings.ToValidUTF8(string(data), "")
}

func pdfText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract pdf page %d: %w", i, err)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// docxText pulls paragraph text out of the OOXML main document part.
// A .docx file is a zip archive; the text lives in w:t runs inside w:p paragraphs.
// Files with a legacy .doc extension go through the same path: in practice they
// are almost always OOXML archives with the old extension, and true binary .doc
// data fails the zip open with a clear error.
func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("invalid docx: missing word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read docx document part: %w", err)
	}
	defer rc.Close()

	var out strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			if t.Name.Local == "p" {
				out.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return strings.TrimRight(out.String(), "\n"), nil
}
