package extraction

import "fmt"

// UnsupportedFileTypeError indicates a file arrived with a MIME type the
// adapter cannot decode. It is fatal for that file; the batch policy decides
// whether the rest of the batch continues.
type UnsupportedFileTypeError struct {
	MimeType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

// DecodeError indicates the underlying decoder failed on a supported format
type DecodeError struct {
	Filename string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Filename, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
