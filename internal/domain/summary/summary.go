package summary

import (
	"math"
	"strconv"
	"time"

	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
)

// NoData is the max-weight display value when a range holds no sets.
const NoData = "n/a"

const dateLayout = "2006-01-02"

// WeekStart fixes the week-to-date boundary convention. The default is
// Monday; Sunday is available as a configuration choice.
type WeekStart int

const (
	WeekStartMonday WeekStart = iota
	WeekStartSunday
)

// ParseWeekStart maps a config value to a WeekStart, defaulting to Monday.
func ParseWeekStart(s string) WeekStart {
	if s == "sunday" {
		return WeekStartSunday
	}
	return WeekStartMonday
}

// Range is an inclusive date-key range.
type Range struct {
	Start string
	End   string
}

// Result is the aggregation over one exercise and one date range.
type Result struct {
	// TotalQuantity is the summed quantity: floored to an integer for
	// integer units, rounded to 2 decimal places for decimal units.
	TotalQuantity float64
	// MaxWeight is the display value: the numeric maximum if any
	// numeric weight was seen, else the bodyweight marker if any
	// bodyweight set was seen, else NoData.
	MaxWeight string
}

// Summarize computes total quantity and maximum weight for an exercise
// across all log entries inside [rng.Start, rng.End]. Malformed date
// keys are skipped; range membership uses lexicographic string
// comparison, valid because keys are fixed-width YYYY-MM-DD.
func Summarize(logs logbook.LogsByDate, exerciseID string, unit program.Unit, rng Range) Result {
	var total float64
	var maxWeight float64
	sawNumeric := false
	sawBodyweight := false

	for key, day := range logs {
		if !logbook.IsDateKey(key) || key < rng.Start || key > rng.End {
			continue
		}
		entry, ok := day[exerciseID]
		if !ok {
			continue
		}
		for _, set := range entry.Sets {
			if !math.IsNaN(set.Reps) && !math.IsInf(set.Reps, 0) {
				total += set.Reps
			}
			if set.Weight == logbook.BodyweightMarker {
				sawBodyweight = true
				continue
			}
			if w, err := strconv.ParseFloat(set.Weight, 64); err == nil {
				if !sawNumeric || w > maxWeight {
					maxWeight = w
				}
				sawNumeric = true
			}
		}
	}

	if unit.AllowsDecimal() {
		total = math.Round(total*100) / 100
	} else {
		total = math.Floor(total)
	}

	switch {
	case sawNumeric:
		return Result{TotalQuantity: total, MaxWeight: strconv.FormatFloat(maxWeight, 'f', -1, 64)}
	case sawBodyweight:
		return Result{TotalQuantity: total, MaxWeight: logbook.BodyweightMarker}
	default:
		return Result{TotalQuantity: total, MaxWeight: NoData}
	}
}

// WeekToDate returns [start of the week containing dateKey, dateKey].
func WeekToDate(dateKey string, ws WeekStart) (Range, error) {
	day, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return Range{}, err
	}
	var back int
	if ws == WeekStartSunday {
		back = int(day.Weekday())
	} else {
		back = (int(day.Weekday()) + 6) % 7
	}
	start := day.AddDate(0, 0, -back)
	return Range{Start: start.Format(dateLayout), End: dateKey}, nil
}

// MonthToDate returns [first of the month, dateKey].
func MonthToDate(dateKey string) (Range, error) {
	day, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return Range{}, err
	}
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: first.Format(dateLayout), End: dateKey}, nil
}

// YearToDate returns [first of the year, dateKey].
func YearToDate(dateKey string) (Range, error) {
	day, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return Range{}, err
	}
	first := time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: first.Format(dateLayout), End: dateKey}, nil
}
