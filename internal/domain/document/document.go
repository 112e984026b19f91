package document

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
)

// SchemaVersion tags the persisted document shape.
const SchemaVersion = 1

// ErrNotDocument is returned by Decode when the payload is not a JSON
// object carrying a program.
var ErrNotDocument = errors.New("payload is not a workout document")

// Meta carries document bookkeeping timestamps in epoch milliseconds.
type Meta struct {
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Document is the whole persisted state: the exercise program, the
// per-date logs, and metadata. All mutations are pure transforms
// Document -> Document; persistence and normalization stay in the
// storage adapter.
type Document struct {
	Version    int                `json:"version"`
	Program    program.Program    `json:"program"`
	LogsByDate logbook.LogsByDate `json:"logsByDate"`
	Meta       Meta               `json:"meta"`
}

// Touch refreshes the updatedAt stamp. Called on every mutation.
func (d Document) Touch(now time.Time) Document {
	d.Meta.UpdatedAt = now.UnixMilli()
	return d
}

// Default builds a fresh first-run document: the baseline workout plus
// two sample workouts and no logs.
func Default(now time.Time) Document {
	ms := now.UnixMilli()
	return Document{
		Version: SchemaVersion,
		Program: program.Program{Workouts: []program.Workout{
			BaselineWorkout(),
			{
				ID:       uuid.NewString(),
				Name:     "Upper Body",
				Category: program.CategoryDefault,
				Exercises: []program.Exercise{
					newExercise("Bench Press", program.UnitReps),
					newExercise("Barbell Rows", program.UnitReps),
					newExercise("Overhead Press", program.UnitReps),
					newExercise("Bicep Curls", program.UnitReps),
				},
			},
			{
				ID:       uuid.NewString(),
				Name:     "Lower Body",
				Category: program.CategoryDefault,
				Exercises: []program.Exercise{
					newExercise("Back Squats", program.UnitReps),
					newExercise("Romanian Deadlifts", program.UnitReps),
					newExercise("Walking Lunges", program.UnitSteps),
					newExercise("Calf Raises", program.UnitReps),
				},
			},
		}},
		LogsByDate: logbook.LogsByDate{},
		Meta:       Meta{CreatedAt: ms, UpdatedAt: ms},
	}
}

// BaselineWorkout builds the fixed bodyweight-test routine injected
// whenever the reserved baseline workout is missing.
func BaselineWorkout() program.Workout {
	return program.Workout{
		ID:       program.BaselineWorkoutID,
		Name:     "Baseline",
		Category: program.CategoryBaseline,
		Exercises: []program.Exercise{
			newExercise("Push-ups", program.UnitReps),
			newExercise("Sit-ups", program.UnitReps),
			newExercise("Bodyweight Squats", program.UnitReps),
			newExercise("Pull-ups", program.UnitReps),
			newExercise("Plank", program.UnitSec),
			newExercise("Mile Run", program.UnitMiles),
		},
	}
}

func newExercise(name string, kind program.UnitKind) program.Exercise {
	return program.Exercise{ID: uuid.NewString(), Name: name, Unit: program.FixedUnit(kind)}
}

// Repair deterministically normalizes a structurally-present-but-partial
// document: missing logs map, missing baseline workout, workouts without
// an exercises list or category. It is idempotent and never fails;
// repair is not an error condition.
func Repair(d Document) Document {
	if d.Version == 0 {
		d.Version = SchemaVersion
	}
	if d.LogsByDate == nil {
		d.LogsByDate = logbook.LogsByDate{}
	}

	workouts := make([]program.Workout, 0, len(d.Program.Workouts)+1)
	if d.Program.FindWorkout(program.BaselineWorkoutID) < 0 {
		workouts = append(workouts, BaselineWorkout())
	}
	for _, w := range d.Program.Workouts {
		if w.Exercises == nil {
			w.Exercises = []program.Exercise{}
		}
		if w.Category == "" {
			if w.IsBaseline() {
				w.Category = program.CategoryBaseline
			} else {
				w.Category = program.CategoryDefault
			}
		}
		workouts = append(workouts, w)
	}
	d.Program.Workouts = workouts
	return d
}

// Decode parses a persisted payload into a repaired Document. The
// payload must be a JSON object with an object `program` field;
// anything else fails with ErrNotDocument (or the JSON error), letting
// the caller fall back to a default document.
func Decode(data []byte) (Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, err
	}
	prog, ok := probe["program"]
	if !ok || len(prog) == 0 || prog[0] != '{' {
		return Document{}, ErrNotDocument
	}

	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return Repair(d), nil
}

// Encode serializes the document as one JSON blob.
func Encode(d Document) ([]byte, error) {
	return json.Marshal(d)
}
