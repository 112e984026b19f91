package coach

import (
	"fmt"
	"math"

	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/summary"
)

// Severity ranks an insight.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
)

// Insight is one heuristic observation about training volume. This is
// advisory output, not a correctness-critical computation.
type Insight struct {
	Severity    Severity
	Title       string
	Message     string
	Suggestions []string
}

// Heuristic thresholds. Design constants, not clinically derived
// values.
const (
	minTotalVolume      = 50
	pushPullRatioLimit  = 1.5
	rearDeltMinAnterior = 30
	rearDeltRatioLimit  = 2
	neglectMinTotal     = 100
	neglectShareLimit   = 0.05
	maxInsights         = 3
)

// neglectGroups are checked for the low-share warning, in this order.
var neglectGroups = []MuscleGroup{Back, Hamstrings, PosteriorDelt}

var pullSuggestions = []string{"Barbell Rows", "Pull-ups", "Face Pulls", "Lat Pulldowns"}

var neglectSuggestions = map[MuscleGroup][]string{
	Back:          {"Barbell Rows", "Lat Pulldowns", "Pull-ups"},
	Hamstrings:    {"Romanian Deadlifts", "Leg Curls", "Good Mornings"},
	PosteriorDelt: {"Face Pulls", "Reverse Flyes", "Band Pull-aparts"},
}

// AggregateVolume sums logged reps per muscle group over the inclusive
// date range. Log entries are keyed by exercise id; ids that no longer
// exist in the program are skipped, so deleted exercises contribute no
// volume even though their logs remain on disk.
func AggregateVolume(doc document.Document, rng summary.Range) map[MuscleGroup]float64 {
	volume := make(map[MuscleGroup]float64)
	for key, day := range doc.LogsByDate {
		if !logbook.IsDateKey(key) || key < rng.Start || key > rng.End {
			continue
		}
		for exerciseID, entry := range day {
			ex, ok := doc.Program.FindExercise(exerciseID)
			if !ok {
				continue
			}
			groups := Classify(ex.Name)
			for _, set := range entry.Sets {
				reps := set.Reps
				if math.IsNaN(reps) || math.IsInf(reps, 0) {
					continue
				}
				for _, g := range groups {
					volume[g] += reps
				}
			}
		}
	}
	return volume
}

// DetectInsights derives at most three ordered insights from a volume
// mapping: the push/pull imbalance check first, then rear-delt neglect,
// then low-share warnings for chronically skipped groups, and finally a
// single "balanced" note when nothing else fired.
func DetectInsights(volume map[MuscleGroup]float64) []Insight {
	var total float64
	for _, v := range volume {
		total += v
	}
	if total < minTotalVolume {
		return nil
	}

	var insights []Insight

	pushVolume := volume[Chest] + volume[AnteriorDelt] + volume[Triceps]
	pullVolume := volume[Back] + volume[PosteriorDelt] + volume[Biceps]
	if pullVolume > 0 && pushVolume > pushPullRatioLimit*pullVolume {
		insights = append(insights, Insight{
			Severity: SeverityHigh,
			Title:    "Push/pull imbalance",
			Message: fmt.Sprintf(
				"Pushing volume is %.1fx your pulling volume (%.0f vs %.0f reps). Favoring pressing over pulling this much tends to show up in the shoulders first.",
				pushVolume/pullVolume, pushVolume, pullVolume),
			Suggestions: pullSuggestions,
		})
	}

	anterior := volume[AnteriorDelt]
	posterior := volume[PosteriorDelt]
	if anterior > rearDeltMinAnterior && anterior > rearDeltRatioLimit*posterior {
		insights = append(insights, Insight{
			Severity: SeverityMedium,
			Title:    "Rear delts lagging",
			Message: fmt.Sprintf(
				"Front delt volume (%.0f reps) is more than double your rear delt volume (%.0f reps).",
				anterior, posterior),
			Suggestions: neglectSuggestions[PosteriorDelt],
		})
	}

	if total > neglectMinTotal {
		for _, g := range neglectGroups {
			if len(insights) >= 2 {
				break
			}
			if volume[g]/total < neglectShareLimit {
				insights = append(insights, Insight{
					Severity: SeverityLow,
					Title:    fmt.Sprintf("%s barely trained", displayName(g)),
					Message: fmt.Sprintf(
						"%s got under 5%% of your total volume in this range.", displayName(g)),
					Suggestions: neglectSuggestions[g],
				})
			}
		}
	}

	if len(insights) == 0 && total > neglectMinTotal {
		insights = append(insights, Insight{
			Severity: SeverityInfo,
			Title:    "Looking balanced",
			Message:  fmt.Sprintf("No major imbalances detected across %.0f logged reps. Keep it up.", total),
		})
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func displayName(g MuscleGroup) string {
	switch g {
	case Back:
		return "Back"
	case Hamstrings:
		return "Hamstrings"
	case PosteriorDelt:
		return "Rear delts"
	case AnteriorDelt:
		return "Front delts"
	default:
		return string(g)
	}
}
