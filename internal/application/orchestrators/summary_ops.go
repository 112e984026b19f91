package orchestrators

import (
	"context"

	"liftlog/internal/domain/coach"
	"liftlog/internal/domain/program"
	"liftlog/internal/domain/summary"
)

// SummarizeInput selects the exercise and date range to aggregate.
type SummarizeInput struct {
	ExerciseID string
	Range      summary.Range
}

// SummarizeResult pairs the aggregation with the exercise it describes.
type SummarizeResult struct {
	Exercise program.Exercise
	Summary  summary.Result
}

// ExecuteSummarize computes total quantity and max weight for one
// exercise over a date range. Read-only projection of the document.
func ExecuteSummarize(ctx context.Context, deps Deps, input SummarizeInput) (SummarizeResult, error) {
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return SummarizeResult{}, err
	}
	ex, ok := d.Program.FindExercise(input.ExerciseID)
	if !ok {
		return SummarizeResult{}, program.ErrExerciseNotFound
	}
	return SummarizeResult{
		Exercise: ex,
		Summary:  summary.Summarize(d.LogsByDate, input.ExerciseID, ex.Unit, input.Range),
	}, nil
}

// CoachResult carries the volume breakdown and derived insights.
type CoachResult struct {
	Volume   map[coach.MuscleGroup]float64
	Insights []coach.Insight
}

// ExecuteCoach classifies every logged set in range into muscle groups
// and derives heuristic imbalance insights. Read-only projection.
func ExecuteCoach(ctx context.Context, deps Deps, rng summary.Range) (CoachResult, error) {
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return CoachResult{}, err
	}
	volume := coach.AggregateVolume(d, rng)
	return CoachResult{
		Volume:   volume,
		Insights: coach.DetectInsights(volume),
	}, nil
}
