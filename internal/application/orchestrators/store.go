package orchestrators

import (
	"context"
	"time"

	"liftlog/internal/domain/document"
)

// DocumentStore defines the persistence interface the orchestrators
// need: the whole document in, the whole document out.
type DocumentStore interface {
	Load(ctx context.Context) (document.Document, error)
	Save(ctx context.Context, d document.Document) error
}

// Clock supplies the current time; swapped out in tests.
type Clock func() time.Time

// Deps holds dependencies shared by all document orchestrators.
type Deps struct {
	Docs DocumentStore
	Now  Clock
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// applyMutation runs a pure Document -> Document transform through the
// store: load, transform, stamp updatedAt, write through. Validation
// happens inside the transform before anything changes, so a failed
// transform leaves the persisted state untouched (fail fast, no partial
// writes).
func applyMutation(ctx context.Context, deps Deps, transform func(document.Document) (document.Document, error)) (document.Document, error) {
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return document.Document{}, err
	}
	next, err := transform(d)
	if err != nil {
		return document.Document{}, err
	}
	next = next.Touch(deps.now())
	if err := deps.Docs.Save(ctx, next); err != nil {
		return document.Document{}, err
	}
	return next, nil
}
