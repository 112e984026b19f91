package logbook

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// BodyweightMarker is the sentinel weight meaning "no external weight
// used". It is distinct from a numeric weight of zero.
const BodyweightMarker = "BW"

// Set is one performed set: a quantity in the exercise's unit plus a
// weight, which is either the bodyweight marker or a non-negative
// numeric string.
type Set struct {
	Reps   float64 `json:"reps"`
	Weight string  `json:"weight"`
}

// LogEntry is what was logged for one exercise on one date.
// INVARIANT: Sets is never empty once stored.
type LogEntry struct {
	Sets  []Set  `json:"sets"`
	Notes string `json:"notes,omitempty"`
}

// LogsByDate maps date keys (YYYY-MM-DD) to per-exercise log entries.
// Keys are unordered; entries may reference exercise ids that no longer
// exist in the program, since structural edits never cascade into logs.
type LogsByDate map[string]map[string]LogEntry

// IsDateKey reports whether s has the fixed-width YYYY-MM-DD shape.
// This is a string-shape check, not a calendar check.
func IsDateKey(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// DefaultDraftSet is the single set a brand-new draft starts with.
// Fresh sets default to bodyweight.
func DefaultDraftSet() Set {
	return Set{Reps: 0, Weight: BodyweightMarker}
}

// NormalizeWeight canonicalizes a weight value: the bodyweight marker
// for blank, "bw", or non-numeric input; otherwise the shortest decimal
// rendering of the non-negative number.
func NormalizeWeight(w string) string {
	w = strings.TrimSpace(w)
	if w == "" || strings.EqualFold(w, BodyweightMarker) {
		return BodyweightMarker
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return BodyweightMarker
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NormalizeSets applies the save rules: quantities clamped to >= 0 and
// floored unless the unit allows decimals, weights canonicalized, and
// non-positive-quantity sets dropped. If everything drops, a single
// placeholder zero-rep bodyweight set is returned so the entry stays
// structurally valid.
func NormalizeSets(sets []Set, allowDecimal bool) []Set {
	out := make([]Set, 0, len(sets))
	for _, s := range sets {
		reps := s.Reps
		if math.IsNaN(reps) || math.IsInf(reps, 0) || reps < 0 {
			reps = 0
		}
		if !allowDecimal {
			reps = math.Floor(reps)
		}
		if reps <= 0 {
			continue
		}
		out = append(out, Set{Reps: reps, Weight: NormalizeWeight(s.Weight)})
	}
	if len(out) == 0 {
		out = append(out, DefaultDraftSet())
	}
	return out
}

// Entry returns the stored entry for the exact (date, exercise) pair.
func (l LogsByDate) Entry(dateKey, exerciseID string) (LogEntry, bool) {
	day, ok := l[dateKey]
	if !ok {
		return LogEntry{}, false
	}
	e, ok := day[exerciseID]
	return e, ok
}

// DraftSource says where an opened draft came from.
type DraftSource int

const (
	DraftFresh   DraftSource = iota // no history, default empty set
	DraftCarried                    // prefilled from the most recent prior log
	DraftExisting
)

func (s DraftSource) String() string {
	switch s {
	case DraftExisting:
		return "existing"
	case DraftCarried:
		return "carried forward"
	default:
		return "fresh"
	}
}

// OpenDraft returns the entry to edit for (exerciseID, dateKey): the
// existing entry for that exact date if present, otherwise the most
// recent entry on a strictly earlier date (carry-forward prefill),
// otherwise a fresh single-set draft.
//
// The carry-forward lookup scans every key; strict lexicographic
// comparison is valid only because keys are fixed-width YYYY-MM-DD.
func (l LogsByDate) OpenDraft(exerciseID, dateKey string) (LogEntry, DraftSource) {
	if e, ok := l.Entry(dateKey, exerciseID); ok {
		return cloneEntry(e), DraftExisting
	}

	var prior []string
	for key, day := range l {
		if !IsDateKey(key) || key >= dateKey {
			continue
		}
		if _, ok := day[exerciseID]; ok {
			prior = append(prior, key)
		}
	}
	if len(prior) > 0 {
		sort.Sort(sort.Reverse(sort.StringSlice(prior)))
		e := l[prior[0]][exerciseID]
		draft := cloneEntry(e)
		draft.Notes = "" // notes are per-day, only the sets carry forward
		return draft, DraftCarried
	}

	return LogEntry{Sets: []Set{DefaultDraftSet()}}, DraftFresh
}

// Save stores an already-normalized entry for the exact (date,
// exercise) pair, replacing any prior entry. The receiver is not
// mutated.
func (l LogsByDate) Save(dateKey, exerciseID string, entry LogEntry) LogsByDate {
	out := l.clone()
	day, ok := out[dateKey]
	if !ok {
		day = make(map[string]LogEntry)
		out[dateKey] = day
	}
	day[exerciseID] = entry
	return out
}

// Delete removes the entry for the exact (date, exercise) pair; it is a
// no-op when absent. Empty day maps are pruned. The receiver is not
// mutated.
func (l LogsByDate) Delete(dateKey, exerciseID string) LogsByDate {
	if _, ok := l.Entry(dateKey, exerciseID); !ok {
		return l
	}
	out := l.clone()
	delete(out[dateKey], exerciseID)
	if len(out[dateKey]) == 0 {
		delete(out, dateKey)
	}
	return out
}

func (l LogsByDate) clone() LogsByDate {
	out := make(LogsByDate, len(l))
	for key, day := range l {
		copied := make(map[string]LogEntry, len(day))
		for id, e := range day {
			copied[id] = e
		}
		out[key] = copied
	}
	return out
}

func cloneEntry(e LogEntry) LogEntry {
	sets := make([]Set, len(e.Sets))
	copy(sets, e.Sets)
	return LogEntry{Sets: sets, Notes: e.Notes}
}
