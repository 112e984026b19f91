package orchestrators

import (
	"context"

	"github.com/google/uuid"

	"liftlog/internal/domain/document"
	"liftlog/internal/domain/program"
)

// AddWorkoutInput carries input for ExecuteAddWorkout.
type AddWorkoutInput struct {
	Name     string
	Category string
}

// ExecuteAddWorkout appends a new workout to the program.
// PRE: Name passes the workout name rules
// POST: Workout persisted with a fresh unique id and empty exercise list
func ExecuteAddWorkout(ctx context.Context, deps Deps, input AddWorkoutInput) (program.Workout, error) {
	id := uuid.NewString()
	d, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.AddWorkout(id, input.Name, input.Category)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	if err != nil {
		return program.Workout{}, err
	}
	return d.Program.Workouts[d.Program.FindWorkout(id)], nil
}

// ExecuteRenameWorkout renames a workout, excluding it from its own
// duplicate check.
func ExecuteRenameWorkout(ctx context.Context, deps Deps, id, newName string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.RenameWorkout(id, newName)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteSetWorkoutCategory replaces a workout's free-text category.
func ExecuteSetWorkoutCategory(ctx context.Context, deps Deps, id, category string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.SetWorkoutCategory(id, category)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteDeleteWorkout removes a workout. The baseline workout is
// refused; historical logs stay untouched either way.
func ExecuteDeleteWorkout(ctx context.Context, deps Deps, id string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.DeleteWorkout(id)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteMoveWorkout swaps a workout with its neighbor in the given
// direction, honoring the baseline anchor.
func ExecuteMoveWorkout(ctx context.Context, deps Deps, id string, dir program.Direction) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.MoveWorkout(id, dir)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// AddExerciseInput carries input for ExecuteAddExercise.
type AddExerciseInput struct {
	WorkoutID string
	Name      string
	Unit      program.Unit
}

// ExecuteAddExercise appends a new exercise to a workout.
func ExecuteAddExercise(ctx context.Context, deps Deps, input AddExerciseInput) (program.Exercise, error) {
	id := uuid.NewString()
	d, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.AddExercise(input.WorkoutID, id, input.Name, input.Unit)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	if err != nil {
		return program.Exercise{}, err
	}
	ex, _ := d.Program.FindExercise(id)
	return ex, nil
}

// ExecuteRenameExercise renames an exercise within its workout.
func ExecuteRenameExercise(ctx context.Context, deps Deps, exerciseID, newName string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.RenameExercise(exerciseID, newName)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteDeleteExercise removes an exercise from its workout. Historical
// log entries referencing the exercise id are deliberately kept.
func ExecuteDeleteExercise(ctx context.Context, deps Deps, exerciseID string) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.DeleteExercise(exerciseID)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteMoveExercise swaps an exercise with its neighbor inside its
// workout.
func ExecuteMoveExercise(ctx context.Context, deps Deps, exerciseID string, dir program.Direction) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.MoveExercise(exerciseID, dir)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}

// ExecuteChangeExerciseUnit replaces an exercise's unit.
func ExecuteChangeExerciseUnit(ctx context.Context, deps Deps, exerciseID string, unit program.Unit) error {
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		p, err := d.Program.ChangeExerciseUnit(exerciseID, unit)
		if err != nil {
			return d, err
		}
		d.Program = p
		return d, nil
	})
	return err
}
