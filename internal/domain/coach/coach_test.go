package coach_test

import (
	"testing"
	"time"

	"liftlog/internal/domain/coach"
	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
	"liftlog/internal/domain/summary"
)

func containsGroup(groups []coach.MuscleGroup, want coach.MuscleGroup) bool {
	for _, g := range groups {
		if g == want {
			return true
		}
	}
	return false
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		want     coach.MuscleGroup
	}{
		{name: "bench press is chest", exercise: "Barbell Bench Press", want: coach.Chest},
		{name: "face pulls are rear delts", exercise: "Face Pulls", want: coach.PosteriorDelt},
		{name: "rows are back", exercise: "Barbell Rows", want: coach.Back},
		{name: "curls are biceps", exercise: "Hammer Curls", want: coach.Biceps},
		{name: "squats are quads", exercise: "Back Squats", want: coach.Quads},
		{name: "rdl is hamstrings", exercise: "Romanian Deadlifts", want: coach.Hamstrings},
		{name: "plank is core", exercise: "Plank", want: coach.Core},
		{name: "case-insensitive", exercise: "OVERHEAD PRESS", want: coach.AnteriorDelt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coach.Classify(tt.exercise)
			if !containsGroup(got, tt.want) {
				t.Errorf("Classify(%q) = %v, want it to include %s", tt.exercise, got, tt.want)
			}
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	got := coach.Classify("Xyz Unknown Move")
	if len(got) != 1 || got[0] != coach.Unclassified {
		t.Errorf("Classify(unknown) = %v, want exactly {UNCLASSIFIED}", got)
	}
}

func TestClassify_MultiMatchRetained(t *testing.T) {
	got := coach.Classify("Romanian Deadlifts")
	if !containsGroup(got, coach.Back) || !containsGroup(got, coach.Hamstrings) {
		t.Errorf("Classify(Romanian Deadlifts) = %v, want both BACK and HAMSTRINGS", got)
	}
}

func analyzerDoc() document.Document {
	d := document.Default(time.Unix(0, 0))
	d.Program.Workouts = append(d.Program.Workouts, program.Workout{
		ID:       "w-test",
		Name:     "Test Day",
		Category: program.CategoryDefault,
		Exercises: []program.Exercise{
			{ID: "ex-bench", Name: "Bench Press", Unit: program.FixedUnit(program.UnitReps)},
			{ID: "ex-row", Name: "Barbell Rows", Unit: program.FixedUnit(program.UnitReps)},
		},
	})
	return d
}

func TestAggregateVolume(t *testing.T) {
	d := analyzerDoc()
	d.LogsByDate = logbook.LogsByDate{
		"2024-03-10": {
			"ex-bench": {Sets: []logbook.Set{{Reps: 10, Weight: "135"}, {Reps: 8, Weight: "155"}}},
			"ex-row":   {Sets: []logbook.Set{{Reps: 12, Weight: "95"}}},
		},
		"2024-03-20": {
			"ex-bench": {Sets: []logbook.Set{{Reps: 5, Weight: "185"}}},
		},
		// deleted exercise: id not in the program, logs remain on disk
		"2024-03-11": {
			"ex-ghost": {Sets: []logbook.Set{{Reps: 100, Weight: "BW"}}},
		},
	}

	vol := coach.AggregateVolume(d, summary.Range{Start: "2024-03-01", End: "2024-03-15"})

	if vol[coach.Chest] != 18 {
		t.Errorf("CHEST = %v, want 18 (out-of-range 2024-03-20 excluded)", vol[coach.Chest])
	}
	if vol[coach.Back] != 12 {
		t.Errorf("BACK = %v, want 12", vol[coach.Back])
	}
	var total float64
	for _, v := range vol {
		total += v
	}
	if total != 30 {
		t.Errorf("total = %v, want 30 (ghost exercise must contribute nothing)", total)
	}
}

func TestDetectInsights_InsufficientData(t *testing.T) {
	got := coach.DetectInsights(map[coach.MuscleGroup]float64{coach.Chest: 49})
	if len(got) != 0 {
		t.Errorf("insights = %v, want none below the 50-rep floor", got)
	}
}

// push=130, pull=30, ratio 4.33x
func TestDetectInsights_PushPullFirst(t *testing.T) {
	vol := map[coach.MuscleGroup]float64{
		coach.Chest:         100,
		coach.AnteriorDelt:  20,
		coach.Triceps:       10,
		coach.Back:          20,
		coach.PosteriorDelt: 5,
		coach.Biceps:        5,
	}
	got := coach.DetectInsights(vol)
	if len(got) == 0 {
		t.Fatal("expected at least one insight")
	}
	if got[0].Severity != coach.SeverityHigh || got[0].Title != "Push/pull imbalance" {
		t.Errorf("first insight = %+v, want the HIGH push/pull imbalance", got[0])
	}
	if len(got[0].Suggestions) == 0 {
		t.Error("imbalance insight should suggest pulling exercises")
	}
	if len(got) > 3 {
		t.Errorf("insights = %d, cap is 3", len(got))
	}
}

func TestDetectInsights_RearDeltNeglect(t *testing.T) {
	vol := map[coach.MuscleGroup]float64{
		coach.AnteriorDelt:  60,
		coach.PosteriorDelt: 10,
		coach.Back:          60, // keeps push/pull quiet: push=60, pull=70
	}
	got := coach.DetectInsights(vol)
	found := false
	for _, in := range got {
		if in.Severity == coach.SeverityMedium {
			found = true
		}
	}
	if !found {
		t.Errorf("insights = %+v, want a MEDIUM rear-delt insight", got)
	}
}

func TestDetectInsights_NeglectStopsAtTwoQueued(t *testing.T) {
	// back and hamstrings and rear delts all below 5% of a big total:
	// only two LOW insights may be queued.
	vol := map[coach.MuscleGroup]float64{
		coach.Quads: 200,
		coach.Core:  100,
	}
	got := coach.DetectInsights(vol)
	if len(got) != 2 {
		t.Fatalf("insights = %+v, want exactly 2 neglect warnings", got)
	}
	for _, in := range got {
		if in.Severity != coach.SeverityLow {
			t.Errorf("severity = %s, want LOW", in.Severity)
		}
	}
	if got[0].Title != "Back barely trained" {
		t.Errorf("first neglect insight = %q, want the BACK check first", got[0].Title)
	}
}

func TestDetectInsights_Balanced(t *testing.T) {
	vol := map[coach.MuscleGroup]float64{
		coach.Chest:         40,
		coach.Back:          40,
		coach.AnteriorDelt:  20,
		coach.PosteriorDelt: 15,
		coach.Biceps:        20,
		coach.Triceps:       20,
		coach.Quads:         40,
		coach.Hamstrings:    30,
	}
	got := coach.DetectInsights(vol)
	if len(got) != 1 || got[0].Severity != coach.SeverityInfo {
		t.Errorf("insights = %+v, want exactly one INFO balanced insight", got)
	}
}

func TestDetectInsights_NoBalancedBelowHundred(t *testing.T) {
	// above the 50 floor, below the 100 "balanced" threshold, nothing fired
	vol := map[coach.MuscleGroup]float64{
		coach.Chest: 30,
		coach.Back:  30,
	}
	got := coach.DetectInsights(vol)
	if len(got) != 0 {
		t.Errorf("insights = %+v, want none", got)
	}
}
