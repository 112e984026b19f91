package orchestrators

import (
	"context"

	"liftlog/internal/domain/snapshot"
)

// ExportResult carries the serialized snapshot and its suggested
// filename (embedding the current date).
type ExportResult struct {
	Filename string
	Data     []byte
}

// ExecuteExport serializes the full document for a user-initiated
// download. Read-only.
func ExecuteExport(ctx context.Context, deps Deps) (ExportResult, error) {
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	data, err := snapshot.Export(d)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Filename: snapshot.Filename(deps.now()), Data: data}, nil
}

// ExecuteImport replaces the whole document with a parsed snapshot.
// This is explicitly destructive; the caller must have confirmed the
// replace before invoking it. A rejected payload leaves the current
// document untouched.
// PRE: payload confirmed by the user as a full replacement
// POST: imported document normalized, stamped, and persisted
func ExecuteImport(ctx context.Context, deps Deps, payload []byte) error {
	d, err := snapshot.Import(payload)
	if err != nil {
		return err
	}
	d = d.Touch(deps.now())
	return deps.Docs.Save(ctx, d)
}
