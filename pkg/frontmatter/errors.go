package frontmatter

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	// ErrMalformedDocument indicates the document has no "---" header block.
	ErrMalformedDocument = errors.New("malformed document: missing header block")

	// ErrUnrepresentable indicates Format was given a key or value that the
	// extractor could not read back unchanged.
	ErrUnrepresentable = errors.New("value cannot be represented in frontmatter")
)

// MalformedDocumentError identifies the document that lacked a header block.
type MalformedDocumentError struct {
	Name string // Name of the document, empty when unknown
}

func (e *MalformedDocumentError) Error() string {
	if e.Name == "" {
		return ErrMalformedDocument.Error()
	}
	return fmt.Sprintf("%s: %v", e.Name, ErrMalformedDocument)
}

func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}
