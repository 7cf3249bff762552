// Package extraction normalizes heterogeneous document formats into plain
// UTF-8 text. It performs no LLM calls and no retries; a decode failure is
// fatal for that file only.
package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported MIME types at the document input boundary
const (
	MimePDF       = "application/pdf"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlainText = "text/plain"
)

// BatchPolicy controls how a multi-file batch reacts to a single failure
type BatchPolicy int

const (
	// AbortOnError stops the batch at the first failing file
	AbortOnError BatchPolicy = iota
	// SkipFailed drops failing files and continues with the rest
	SkipFailed
)

// File is one document at the input boundary
type File struct {
	Name string
	Mime string
	Data []byte
}

// Result pairs a file name with its extracted text
type Result struct {
	Name string
	Text string
}

// ExtractText converts a single file's contents to plain text based on its
// declared MIME type.
func ExtractText(name, mime string, data []byte) (string, error) {
	switch mime {
	case MimePlainText:
		return string(data), nil
	case MimePDF:
		text, err := extractPDFText(data)
		if err != nil {
			return "", &DecodeError{Filename: name, Cause: err}
		}
		return text, nil
	case MimeDocx:
		text, err := extractDocxText(data)
		if err != nil {
			return "", &DecodeError{Filename: name, Cause: err}
		}
		return text, nil
	default:
		return "", &UnsupportedFileTypeError{MimeType: mime}
	}
}

// ExtractBatch extracts text from each file in order. Under AbortOnError the
// first failure aborts the remaining batch; under SkipFailed the failing file
// is dropped and extraction continues.
func ExtractBatch(files []File, policy BatchPolicy) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		text, err := ExtractText(f.Name, f.Mime, f.Data)
		if err != nil {
			if policy == SkipFailed {
				continue
			}
			return nil, err
		}
		results = append(results, Result{Name: f.Name, Text: text})
	}
	return results, nil
}

// extractPDFText concatenates per-page text runs, one newline between pages,
// preserving page order. Pages the decoder cannot render are skipped.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDocxText returns the decoder's raw-text extraction verbatim
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return doc.Editable().GetContent(), nil
}
