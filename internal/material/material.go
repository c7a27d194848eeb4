package material

import (
	"errors"
	"strings"
)

// ErrMissing is returned when neither text nor a file was provided.
var ErrMissing = errors.New("study material is missing: provide text or a file")

// Material is the study content an assessment is generated from. Exactly
// one of Text or File carries the content.
type Material struct {
	Text string
	File *FilePayload
}

// FilePayload holds document bytes for providers that accept files directly.
type FilePayload struct {
	Data      []byte
	MediaType string
	Name      string
}

// FromText wraps pasted text as Material.
func FromText(s string) Material {
	return Material{Text: s}
}

// HasText reports whether the material carries non-blank text.
func (m Material) HasText() bool {
	return strings.TrimSpace(m.Text) != ""
}

// IsEmpty reports whether the material carries no usable content.
func (m Material) IsEmpty() bool {
	return !m.HasText() && (m.File == nil || len(m.File.Data) == 0)
}

// Validate returns ErrMissing for empty material.
func Validate(m Material) error {
	if m.IsEmpty() {
		return ErrMissing
	}
	return nil
}
