package pdfextract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// FromBytes extracts the plain text of a PDF document. A well-formed PDF
// with no extractable text yields an empty string and no error.
func FromBytes(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
