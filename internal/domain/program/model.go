package program

import (
	"errors"
	"fmt"
	"strings"
)

// BaselineWorkoutID is the reserved id of the non-deletable baseline workout.
const BaselineWorkoutID = "baseline"

// Category defaults for new workouts.
const (
	CategoryBaseline = "Baseline"
	CategoryDefault  = "Workout"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength   = 50
	MaxAbbrevLength = 10
)

// Domain errors
var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrBaselineProtected = errors.New("the baseline workout cannot be deleted")
	ErrBaselineAnchored  = errors.New("cannot move a workout across the baseline workout")
	ErrNoNeighbor        = errors.New("nothing to swap with in that direction")
)

// ValidationError reports invalid user input (empty/too-long/duplicate
// names, missing custom unit abbreviation). No mutation has been applied
// when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Direction selects a neighbor for reorder operations.
type Direction int

const (
	DirUp   Direction = -1
	DirDown Direction = 1
)

// Program is the exercise taxonomy: an ordered list of workouts.
type Program struct {
	Workouts []Workout `json:"workouts"`
}

// Workout groups an ordered list of exercises under a name and a
// free-text category label.
type Workout struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a named, unit-typed movement within a workout.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit Unit   `json:"unit"`
}

// IsBaseline returns true for the reserved baseline workout.
func (w *Workout) IsBaseline() bool {
	return w.ID == BaselineWorkoutID
}

// NormalizeCategory trims a category label, substituting the default
// when blank.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return CategoryDefault
	}
	return category
}

// validateName checks the shared name rules: non-empty after trimming,
// at most MaxNameLength characters, case-insensitively unique among
// taken names.
// POST: returns the trimmed name, or a ValidationError
func validateName(name, kind string, taken []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationf("%s name cannot be empty", kind)
	}
	if len(name) > MaxNameLength {
		return "", validationf("%s name cannot exceed %d characters", kind, MaxNameLength)
	}
	for _, t := range taken {
		if strings.EqualFold(t, name) {
			return "", validationf("a %s named %q already exists", kind, t)
		}
	}
	return name, nil
}

// workoutNames returns all workout names except the one with excludeID.
func (p Program) workoutNames(excludeID string) []string {
	var names []string
	for _, w := range p.Workouts {
		if w.ID != excludeID {
			names = append(names, w.Name)
		}
	}
	return names
}

func exerciseNames(w Workout, excludeID string) []string {
	var names []string
	for _, e := range w.Exercises {
		if e.ID != excludeID {
			names = append(names, e.Name)
		}
	}
	return names
}

// FindWorkout returns the index of the workout with the given id, or -1.
func (p Program) FindWorkout(id string) int {
	for i, w := range p.Workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// FindExercise looks an exercise up by id across all workouts.
func (p Program) FindExercise(id string) (Exercise, bool) {
	for _, w := range p.Workouts {
		for _, e := range w.Exercises {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Exercise{}, false
}

// clone returns a copy of the program with its own workout and exercise
// slices, so mutations never alias the input.
func (p Program) clone() Program {
	out := Program{Workouts: make([]Workout, len(p.Workouts))}
	for i, w := range p.Workouts {
		cw := w
		cw.Exercises = make([]Exercise, len(w.Exercises))
		copy(cw.Exercises, w.Exercises)
		out.Workouts[i] = cw
	}
	return out
}

// AddWorkout appends a new workout with the given id.
// PRE: id is fresh and unique
// POST: returns the updated program, or the input unchanged with an error
func (p Program) AddWorkout(id, name, category string) (Program, error) {
	name, err := validateName(name, "workout", p.workoutNames(""))
	if err != nil {
		return p, err
	}
	out := p.clone()
	out.Workouts = append(out.Workouts, Workout{
		ID:        id,
		Name:      name,
		Category:  NormalizeCategory(category),
		Exercises: []Exercise{},
	})
	return out, nil
}

// RenameWorkout renames the workout with the given id. The workout
// being renamed is excluded from the duplicate check.
func (p Program) RenameWorkout(id, newName string) (Program, error) {
	idx := p.FindWorkout(id)
	if idx < 0 {
		return p, ErrWorkoutNotFound
	}
	newName, err := validateName(newName, "workout", p.workoutNames(id))
	if err != nil {
		return p, err
	}
	out := p.clone()
	out.Workouts[idx].Name = newName
	return out, nil
}

// SetWorkoutCategory replaces a workout's category label. Blank input
// falls back to the default label.
func (p Program) SetWorkoutCategory(id, category string) (Program, error) {
	idx := p.FindWorkout(id)
	if idx < 0 {
		return p, ErrWorkoutNotFound
	}
	out := p.clone()
	out.Workouts[idx].Category = NormalizeCategory(category)
	return out, nil
}

// DeleteWorkout removes a workout. The baseline workout is protected.
// Historical log entries for its exercises are never touched.
func (p Program) DeleteWorkout(id string) (Program, error) {
	if id == BaselineWorkoutID {
		return p, ErrBaselineProtected
	}
	idx := p.FindWorkout(id)
	if idx < 0 {
		return p, ErrWorkoutNotFound
	}
	out := p.clone()
	out.Workouts = append(out.Workouts[:idx], out.Workouts[idx+1:]...)
	return out, nil
}

// MoveWorkout swaps a workout with its immediate neighbor. The baseline
// workout is a fixed anchor: it never moves and nothing swaps across it.
func (p Program) MoveWorkout(id string, dir Direction) (Program, error) {
	if id == BaselineWorkoutID {
		return p, ErrBaselineAnchored
	}
	idx := p.FindWorkout(id)
	if idx < 0 {
		return p, ErrWorkoutNotFound
	}
	target := idx + int(dir)
	if target < 0 || target >= len(p.Workouts) {
		return p, ErrNoNeighbor
	}
	if p.Workouts[target].IsBaseline() {
		return p, ErrBaselineAnchored
	}
	out := p.clone()
	out.Workouts[idx], out.Workouts[target] = out.Workouts[target], out.Workouts[idx]
	return out, nil
}

// AddExercise appends a new exercise to the given workout.
// PRE: id is fresh and unique
func (p Program) AddExercise(workoutID, id, name string, unit Unit) (Program, error) {
	idx := p.FindWorkout(workoutID)
	if idx < 0 {
		return p, ErrWorkoutNotFound
	}
	name, err := validateName(name, "exercise", exerciseNames(p.Workouts[idx], ""))
	if err != nil {
		return p, err
	}
	if err := unit.Validate(); err != nil {
		return p, err
	}
	out := p.clone()
	out.Workouts[idx].Exercises = append(out.Workouts[idx].Exercises, Exercise{
		ID:   id,
		Name: name,
		Unit: unit,
	})
	return out, nil
}

func (p Program) findExercisePos(exerciseID string) (int, int) {
	for wi, w := range p.Workouts {
		for ei, e := range w.Exercises {
			if e.ID == exerciseID {
				return wi, ei
			}
		}
	}
	return -1, -1
}

// RenameExercise renames an exercise; the duplicate check is scoped to
// its workout and excludes the exercise itself.
func (p Program) RenameExercise(exerciseID, newName string) (Program, error) {
	wi, ei := p.findExercisePos(exerciseID)
	if wi < 0 {
		return p, ErrExerciseNotFound
	}
	newName, err := validateName(newName, "exercise", exerciseNames(p.Workouts[wi], exerciseID))
	if err != nil {
		return p, err
	}
	out := p.clone()
	out.Workouts[wi].Exercises[ei].Name = newName
	return out, nil
}

// DeleteExercise removes an exercise from its workout. Historical log
// entries referencing the id remain untouched.
func (p Program) DeleteExercise(exerciseID string) (Program, error) {
	wi, ei := p.findExercisePos(exerciseID)
	if wi < 0 {
		return p, ErrExerciseNotFound
	}
	out := p.clone()
	exs := out.Workouts[wi].Exercises
	out.Workouts[wi].Exercises = append(exs[:ei], exs[ei+1:]...)
	return out, nil
}

// MoveExercise swaps an exercise with its immediate neighbor inside its
// workout.
func (p Program) MoveExercise(exerciseID string, dir Direction) (Program, error) {
	wi, ei := p.findExercisePos(exerciseID)
	if wi < 0 {
		return p, ErrExerciseNotFound
	}
	target := ei + int(dir)
	if target < 0 || target >= len(p.Workouts[wi].Exercises) {
		return p, ErrNoNeighbor
	}
	out := p.clone()
	exs := out.Workouts[wi].Exercises
	exs[ei], exs[target] = exs[target], exs[ei]
	return out, nil
}

// ChangeExerciseUnit replaces an exercise's unit.
func (p Program) ChangeExerciseUnit(exerciseID string, unit Unit) (Program, error) {
	wi, ei := p.findExercisePos(exerciseID)
	if wi < 0 {
		return p, ErrExerciseNotFound
	}
	if err := unit.Validate(); err != nil {
		return p, err
	}
	out := p.clone()
	out.Workouts[wi].Exercises[ei].Unit = unit
	return out, nil
}
