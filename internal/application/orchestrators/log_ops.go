package orchestrators

import (
	"context"

	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
)

// DraftResult carries an opened log draft and where it came from.
type DraftResult struct {
	Exercise program.Exercise
	Entry    logbook.LogEntry
	Source   logbook.DraftSource
}

// ExecuteOpenDraft returns the entry to edit for (exerciseID, dateKey):
// the stored entry for that date, a carry-forward prefill from the most
// recent prior log, or a fresh single-set draft. Read-only.
func ExecuteOpenDraft(ctx context.Context, deps Deps, exerciseID, dateKey string) (DraftResult, error) {
	if !logbook.IsDateKey(dateKey) {
		return DraftResult{}, &program.ValidationError{Reason: "date must look like YYYY-MM-DD"}
	}
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return DraftResult{}, err
	}
	ex, ok := d.Program.FindExercise(exerciseID)
	if !ok {
		return DraftResult{}, program.ErrExerciseNotFound
	}
	entry, source := d.LogsByDate.OpenDraft(exerciseID, dateKey)
	return DraftResult{Exercise: ex, Entry: entry, Source: source}, nil
}

// SaveLogInput carries input for ExecuteSaveLog.
type SaveLogInput struct {
	DateKey    string
	ExerciseID string
	Sets       []logbook.Set
	Notes      string
}

// ExecuteSaveLog normalizes the draft sets against the exercise's unit
// and stores the entry, replacing any prior entry for the exact
// (date, exercise) pair.
// PRE: the exercise still exists in the program
// POST: entry persisted; zero-quantity sets dropped, placeholder kept
func ExecuteSaveLog(ctx context.Context, deps Deps, input SaveLogInput) error {
	if !logbook.IsDateKey(input.DateKey) {
		return &program.ValidationError{Reason: "date must look like YYYY-MM-DD"}
	}
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		ex, ok := d.Program.FindExercise(input.ExerciseID)
		if !ok {
			return d, program.ErrExerciseNotFound
		}
		entry := logbook.LogEntry{
			Sets:  logbook.NormalizeSets(input.Sets, ex.Unit.AllowsDecimal()),
			Notes: input.Notes,
		}
		d.LogsByDate = d.LogsByDate.Save(input.DateKey, input.ExerciseID, entry)
		return d, nil
	})
	return err
}

// ExecuteDeleteLog removes the entry for the exact (date, exercise)
// pair; it is a no-op when absent. The exercise does not have to exist
// anymore, so stale history stays cleanable.
func ExecuteDeleteLog(ctx context.Context, deps Deps, dateKey, exerciseID string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		d.LogsByDate = d.LogsByDate.Delete(dateKey, exerciseID)
		return d, nil
	})
	return err
}
