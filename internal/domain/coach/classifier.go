package coach

import "strings"

// MuscleGroup labels the broad muscle groups the coach reasons about.
type MuscleGroup string

const (
	Chest         MuscleGroup = "CHEST"
	Back          MuscleGroup = "BACK"
	AnteriorDelt  MuscleGroup = "ANTERIOR_DELT"
	LateralDelt   MuscleGroup = "LATERAL_DELT"
	PosteriorDelt MuscleGroup = "POSTERIOR_DELT"
	Biceps        MuscleGroup = "BICEPS"
	Triceps       MuscleGroup = "TRICEPS"
	Quads         MuscleGroup = "QUADS"
	Hamstrings    MuscleGroup = "HAMSTRINGS"
	Glutes        MuscleGroup = "GLUTES"
	Calves        MuscleGroup = "CALVES"
	Core          MuscleGroup = "CORE"
	Unclassified  MuscleGroup = "UNCLASSIFIED"
)

// groupOrder fixes a deterministic ordering for classification results
// and volume reports.
var groupOrder = []MuscleGroup{
	Chest, Back, AnteriorDelt, LateralDelt, PosteriorDelt,
	Biceps, Triceps, Quads, Hamstrings, Glutes, Calves, Core,
}

// Groups returns every classifiable muscle group in report order,
// without Unclassified.
func Groups() []MuscleGroup {
	out := make([]MuscleGroup, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// keywords maps each muscle group to the substrings that mark an
// exercise as working it. Matching is case-insensitive substring
// search; an exercise may match several groups at once.
var keywords = map[MuscleGroup][]string{
	Chest:         {"bench", "chest", "fly", "flye", "push-up", "pushup", "push up", "dip"},
	Back:          {"row", "pulldown", "pull-down", "pull-up", "pullup", "pull up", "chin", "lat ", "deadlift"},
	AnteriorDelt:  {"overhead press", "shoulder press", "military", "ohp", "front raise", "arnold", "incline press"},
	LateralDelt:   {"lateral raise", "side raise", "lat raise", "upright row"},
	PosteriorDelt: {"face pull", "rear delt", "reverse fly", "reverse flye", "band pull-apart", "pull apart"},
	Biceps:        {"curl", "chin-up", "chinup"},
	Triceps:       {"tricep", "pushdown", "push-down", "skullcrusher", "skull crusher", "close grip", "close-grip", "dip"},
	Quads:         {"squat", "lunge", "leg press", "leg extension", "step-up", "step up"},
	Hamstrings:    {"hamstring", "leg curl", "rdl", "romanian", "good morning", "nordic", "hip hinge"},
	Glutes:        {"glute", "hip thrust", "bridge", "kickback"},
	Calves:        {"calf", "calves"},
	Core:          {"plank", "crunch", "sit-up", "situp", "sit up", "ab wheel", "leg raise", "knee raise", "hollow", "dead bug"},
}

// Classify lower-cases the exercise name and returns every muscle group
// with at least one keyword substring match, in a fixed order. Names
// matching nothing are tagged Unclassified. Multiple simultaneous
// matches are expected and retained.
func Classify(exerciseName string) []MuscleGroup {
	name := strings.ToLower(exerciseName)
	var groups []MuscleGroup
	for _, g := range groupOrder {
		for _, kw := range keywords[g] {
			if strings.Contains(name, kw) {
				groups = append(groups, g)
				break
			}
		}
	}
	if len(groups) == 0 {
		return []MuscleGroup{Unclassified}
	}
	return groups
}
