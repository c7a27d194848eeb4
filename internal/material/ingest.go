package material

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize int64 = 20 << 20

// Supported media types.
const (
	MediaPDF      = "application/pdf"
	MediaText     = "text/plain"
	MediaMarkdown = "text/markdown"
)

// Mode selects how an uploaded document becomes Material.
type Mode int

const (
	// ModeText extracts the document to plain text.
	ModeText Mode = iota
	// ModeEncoded keeps the raw bytes and media type.
	ModeEncoded
)

// IngestFile opens path and ingests it.
func IngestFile(path string, mode Mode) (Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return Material{}, fmt.Errorf("open material: %w", err)
	}
	defer f.Close()
	return Ingest(filepath.Base(path), f, mode)
}

// Ingest reads an uploaded document and converts it to Material.
func Ingest(name string, r io.Reader, mode Mode) (Material, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return Material{}, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > MaxFileSize {
		return Material{}, &TooLargeError{Name: name, Limit: MaxFileSize}
	}

	mediaType, err := DetectMediaType(name, data)
	if err != nil {
		return Material{}, err
	}

	if mode == ModeEncoded {
		return Material{File: &FilePayload{Data: data, MediaType: mediaType, Name: name}}, nil
	}

	switch mediaType {
	case MediaPDF:
		text, err := extractPDFText(data)
		if err != nil {
			return Material{}, &ExtractError{Name: name, Err: err}
		}
		return FromText(text), nil
	default:
		return FromText(string(data)), nil
	}
}

// DetectMediaType sniffs the content and falls back to the file extension
// when sniffing only finds a generic type.
func DetectMediaType(name string, data []byte) (string, error) {
	detected := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case detected.Is(MediaPDF):
		return MediaPDF, nil
	case detected.Is(MediaText):
		if ext == ".md" || ext == ".markdown" {
			return MediaMarkdown, nil
		}
		return MediaText, nil
	case detected.Is("application/octet-stream"):
		// fallback by extension
		switch ext {
		case ".pdf":
			return MediaPDF, nil
		case ".txt":
			if utf8.Valid(data) {
				return MediaText, nil
			}
		case ".md", ".markdown":
			if utf8.Valid(data) {
				return MediaMarkdown, nil
			}
		}
	}
	return "", &UnsupportedTypeError{Name: name, MediaType: detected.String()}
}

// extractPDFText joins the plain text of every page with newlines.
func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(strings.Join(strings.Fields(text), " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}
