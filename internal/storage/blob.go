package storage

import (
	"io"

	"github.com/pkg/errors"
)

var ErrEmptyKey = errors.New("empty key")

// BlobStore keeps uploaded files (cutoff PDFs, document templates).
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error              // missing keys are not an error
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
}
