package summary_test

import (
	"testing"

	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
	"liftlog/internal/domain/summary"
)

var yearRange = summary.Range{Start: "2024-01-01", End: "2024-12-31"}

func TestSummarize_EmptyRange(t *testing.T) {
	logs := logbook.LogsByDate{}
	got := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitReps), yearRange)
	if got.TotalQuantity != 0 {
		t.Errorf("total = %v, want 0", got.TotalQuantity)
	}
	if got.MaxWeight != summary.NoData {
		t.Errorf("maxWeight = %q, want %q", got.MaxWeight, summary.NoData)
	}
}

func TestSummarize_MixedWeights(t *testing.T) {
	// one bodyweight set of 10 reps and one numeric set of 8 reps at 185
	logs := logbook.LogsByDate{
		"2024-03-10": {
			"ex-1": {Sets: []logbook.Set{
				{Reps: 10, Weight: "BW"},
				{Reps: 8, Weight: "185"},
			}},
		},
	}
	got := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitReps), yearRange)
	if got.TotalQuantity != 18 {
		t.Errorf("total = %v, want 18", got.TotalQuantity)
	}
	if got.MaxWeight != "185" {
		t.Errorf("maxWeight = %q, want 185 (numeric max beats BW)", got.MaxWeight)
	}
}

func TestSummarize_BodyweightOnly(t *testing.T) {
	logs := logbook.LogsByDate{
		"2024-03-10": {"ex-1": {Sets: []logbook.Set{{Reps: 12, Weight: "BW"}}}},
	}
	got := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitReps), yearRange)
	if got.MaxWeight != logbook.BodyweightMarker {
		t.Errorf("maxWeight = %q, want %q", got.MaxWeight, logbook.BodyweightMarker)
	}
}

func TestSummarize_RangeAndKeyFiltering(t *testing.T) {
	logs := logbook.LogsByDate{
		"2024-03-01": {"ex-1": {Sets: []logbook.Set{{Reps: 5, Weight: "100"}}}},
		"2024-03-15": {"ex-1": {Sets: []logbook.Set{{Reps: 7, Weight: "110"}}}},
		"2024-04-01": {"ex-1": {Sets: []logbook.Set{{Reps: 9, Weight: "120"}}}},
		"garbage":    {"ex-1": {Sets: []logbook.Set{{Reps: 99, Weight: "999"}}}},
	}
	got := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitReps),
		summary.Range{Start: "2024-03-01", End: "2024-03-31"})
	if got.TotalQuantity != 12 {
		t.Errorf("total = %v, want 12 (inclusive range, malformed keys skipped)", got.TotalQuantity)
	}
	if got.MaxWeight != "110" {
		t.Errorf("maxWeight = %q, want 110", got.MaxWeight)
	}
}

func TestSummarize_DecimalRounding(t *testing.T) {
	logs := logbook.LogsByDate{
		"2024-03-10": {"ex-1": {Sets: []logbook.Set{
			{Reps: 1.105, Weight: "BW"},
			{Reps: 2.101, Weight: "BW"},
		}}},
	}

	miles := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitMiles), yearRange)
	if miles.TotalQuantity != 3.21 {
		t.Errorf("decimal total = %v, want 3.21 (rounded to 2 places)", miles.TotalQuantity)
	}

	reps := summary.Summarize(logs, "ex-1", program.FixedUnit(program.UnitReps), yearRange)
	if reps.TotalQuantity != 3 {
		t.Errorf("integer total = %v, want 3 (floored)", reps.TotalQuantity)
	}
}

func TestRangePresets(t *testing.T) {
	// 2024-03-15 is a Friday
	tests := []struct {
		name      string
		compute   func() (summary.Range, error)
		wantStart string
	}{
		{
			name:      "MTD",
			compute:   func() (summary.Range, error) { return summary.MonthToDate("2024-03-15") },
			wantStart: "2024-03-01",
		},
		{
			name:      "YTD",
			compute:   func() (summary.Range, error) { return summary.YearToDate("2024-03-15") },
			wantStart: "2024-01-01",
		},
		{
			name: "WTD monday convention",
			compute: func() (summary.Range, error) {
				return summary.WeekToDate("2024-03-15", summary.WeekStartMonday)
			},
			wantStart: "2024-03-11",
		},
		{
			name: "WTD sunday convention",
			compute: func() (summary.Range, error) {
				return summary.WeekToDate("2024-03-15", summary.WeekStartSunday)
			},
			wantStart: "2024-03-10",
		},
		{
			name: "WTD on a monday is that monday",
			compute: func() (summary.Range, error) {
				return summary.WeekToDate("2024-03-11", summary.WeekStartMonday)
			},
			wantStart: "2024-03-11",
		},
		{
			name: "WTD crosses a month boundary",
			compute: func() (summary.Range, error) {
				return summary.WeekToDate("2024-04-02", summary.WeekStartMonday)
			},
			wantStart: "2024-04-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := tt.compute()
			if err != nil {
				t.Fatalf("range error = %v", err)
			}
			if rng.Start != tt.wantStart {
				t.Errorf("start = %q, want %q", rng.Start, tt.wantStart)
			}
		})
	}
}

func TestRangePresets_BadKey(t *testing.T) {
	if _, err := summary.WeekToDate("not-a-date", summary.WeekStartMonday); err == nil {
		t.Error("WeekToDate should reject a malformed key")
	}
}

func TestParseWeekStart(t *testing.T) {
	if summary.ParseWeekStart("sunday") != summary.WeekStartSunday {
		t.Error("sunday not parsed")
	}
	if summary.ParseWeekStart("") != summary.WeekStartMonday {
		t.Error("default should be monday")
	}
	if summary.ParseWeekStart("banana") != summary.WeekStartMonday {
		t.Error("unknown values should fall back to monday")
	}
}
