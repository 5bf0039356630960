// Package extract turns uploaded attachment bytes into text that can be folded
// into a model prompt.
package extract

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"routerchat/backend/internal/model"
)

const (
	StatusExtracted   = model.ExtractionExtracted
	StatusUnsupported = model.ExtractionUnsupported
	StatusNone        = model.ExtractionNone
)

// Result is the outcome of one extraction. Text is empty unless Status is
// StatusExtracted.
type Result struct {
	Text   string
	Status model.ExtractionStatus
}

var textualTypes = map[string]bool{
	"application/json":   true,
	"application/xml":    true,
	"application/yaml":   true,
	"application/x-yaml": true,
}

// Document formats we recognize but cannot decode yet.
var unsupportedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Extractor is stateless; the zero value is ready to use.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract classifies data by its declared media type and decodes textual
// content. Only undecodable text is returned as an error.
func (e *Extractor) Extract(data []byte, mediaType string) (Result, error) {
	base, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		base = strings.ToLower(strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0]))
		params = nil
	}

	switch {
	case strings.HasPrefix(base, "text/") || textualTypes[base]:
		text, err := decodeText(data, params["charset"])
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Status: StatusExtracted}, nil
	case unsupportedTypes[base]:
		return Result{Status: StatusUnsupported}, nil
	default:
		return Result{Status: StatusNone}, nil
	}
}

// DetectMediaType returns the declared type unless it is missing or generic,
// in which case the content is sniffed.
func DetectMediaType(data []byte, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !strings.HasPrefix(declared, "application/octet-stream") {
		return declared
	}
	return mimetype.Detect(data).String()
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeText(data []byte, charset string) (string, error) {
	var enc encoding.Encoding
	if charset != "" {
		// An unknown charset label falls through to detection.
		enc, _ = htmlindex.Get(charset)
	}
	switch {
	case enc != nil:
	case utf8.Valid(data):
		enc = unicode.UTF8BOM
	default:
		enc = charmap.Windows1252
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("could not decode attachment text: %w", err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}
