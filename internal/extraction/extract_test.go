package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("cv.txt", MimePlainText, []byte("John Doe\nSoftware Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nSoftware Engineer", text)
}

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText("cv.png", "image/png", []byte{0x89, 0x50})
	require.Error(t, err)

	var unsupportedErr *UnsupportedFileTypeError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, "image/png", unsupportedErr.MimeType)
	assert.Contains(t, err.Error(), "image/png")
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("cv.pdf", MimePDF, []byte("definitely not a pdf"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "cv.pdf", decodeErr.Filename)
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText("cv.docx", MimeDocx, []byte("not a zip archive"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "cv.docx", decodeErr.Filename)
}

func TestExtractBatch_AbortOnError(t *testing.T) {
	files := []File{
		{Name: "a.txt", Mime: MimePlainText, Data: []byte("alpha")},
		{Name: "b.bin", Mime: "application/octet-stream", Data: []byte{0x00}},
		{Name: "c.txt", Mime: MimePlainText, Data: []byte("gamma")},
	}

	_, err := ExtractBatch(files, AbortOnError)
	require.Error(t, err)

	var unsupportedErr *UnsupportedFileTypeError
	assert.ErrorAs(t, err, &unsupportedErr)
}

func TestExtractBatch_SkipFailed(t *testing.T) {
	files := []File{
		{Name: "a.txt", Mime: MimePlainText, Data: []byte("alpha")},
		{Name: "b.bin", Mime: "application/octet-stream", Data: []byte{0x00}},
		{Name: "c.txt", Mime: MimePlainText, Data: []byte("gamma")},
	}

	results, err := ExtractBatch(files, SkipFailed)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.txt", results[0].Name)
	assert.Equal(t, "alpha", results[0].Text)
	assert.Equal(t, "c.txt", results[1].Name)
	assert.Equal(t, "gamma", results[1].Text)
}

func TestExtractBatch_Empty(t *testing.T) {
	results, err := ExtractBatch(nil, AbortOnError)
	require.NoError(t, err)
	assert.Empty(t, results)
}
