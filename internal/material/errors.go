package material

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// TooLargeError is returned when an upload exceeds MaxFileSize.
type TooLargeError struct {
	Name  string
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s exceeds the %s upload limit", e.Name, humanize.IBytes(uint64(e.Limit)))
}

// UnsupportedTypeError is returned for media types other than PDF, plain
// text and markdown.
type UnsupportedTypeError struct {
	Name      string
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: use .txt, .md or .pdf", e.MediaType, e.Name)
}

// ExtractError wraps a failure to pull text out of a document.
type ExtractError struct {
	Name string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Name, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
