package document

import (
	"context"
	"errors"

	domain "liftlog/internal/domain/document"
)

// ErrStorageExhausted marks a save that failed because the underlying
// storage is full. Callers show the actionable export-and-clear message
// for this case and a generic retry message for everything else.
var ErrStorageExhausted = errors.New("storage exhausted")

// Store persists the single workout document.
type Store interface {
	// Load returns the current document, falling back to a repaired or
	// freshly constructed default document when the persisted blob is
	// absent, corrupt, or structurally invalid. Load never fails on bad
	// content, only on storage access errors.
	Load(ctx context.Context) (domain.Document, error)
	// Save rotates the current primary blob into the backup slot
	// (best-effort) and then writes the full document as one blob.
	Save(ctx context.Context, d domain.Document) error
	// LoadBackup returns the previously committed blob, if any.
	LoadBackup(ctx context.Context) (domain.Document, bool, error)
}
