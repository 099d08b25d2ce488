package storage

import "io"

// DocumentStore abstracts where payslip documents live. The local
// implementation keeps them on disk; a cloud backend (S3, Azure Blob)
// can replace it without touching the service layer.
type DocumentStore interface {
	// Save writes a document under the given key, replacing any existing
	// file, and returns the stored path.
	Save(key string, r io.Reader) (string, error)

	// Open returns a reader for the document at key.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the document at key. Deleting a missing key is not
	// an error.
	Delete(key string) error
}
