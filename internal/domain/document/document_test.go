package document_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
)

func TestDefault(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	d := document.Default(now)

	if d.Version != document.SchemaVersion {
		t.Errorf("version = %d, want %d", d.Version, document.SchemaVersion)
	}
	if idx := d.Program.FindWorkout(program.BaselineWorkoutID); idx != 0 {
		t.Errorf("baseline index = %d, want 0", idx)
	}
	if len(d.Program.Workouts) != 3 {
		t.Errorf("workouts = %d, want baseline + two samples", len(d.Program.Workouts))
	}
	if d.LogsByDate == nil || len(d.LogsByDate) != 0 {
		t.Error("default document should have an empty logs map")
	}
	if d.Meta.CreatedAt != now.UnixMilli() || d.Meta.UpdatedAt != now.UnixMilli() {
		t.Errorf("meta = %+v, want both stamps at now", d.Meta)
	}

	// ids must be unique across the whole document
	seen := map[string]bool{}
	for _, w := range d.Program.Workouts {
		if seen[w.ID] {
			t.Errorf("duplicate workout id %q", w.ID)
		}
		seen[w.ID] = true
		for _, e := range w.Exercises {
			if seen[e.ID] {
				t.Errorf("duplicate exercise id %q", e.ID)
			}
			seen[e.ID] = true
		}
	}
}

func TestRepair(t *testing.T) {
	partial := document.Document{
		Program: program.Program{Workouts: []program.Workout{
			{ID: "w1", Name: "Push Day"}, // nil exercises, blank category
		}},
	}

	got := document.Repair(partial)

	if got.Version != document.SchemaVersion {
		t.Errorf("version = %d, want %d", got.Version, document.SchemaVersion)
	}
	if got.LogsByDate == nil {
		t.Error("missing logsByDate not repaired to an empty map")
	}
	if idx := got.Program.FindWorkout(program.BaselineWorkoutID); idx != 0 {
		t.Errorf("baseline injected at index %d, want 0 (front)", idx)
	}
	w := got.Program.Workouts[got.Program.FindWorkout("w1")]
	if w.Exercises == nil {
		t.Error("nil exercise list not normalized")
	}
	if w.Category != program.CategoryDefault {
		t.Errorf("category = %q, want %q", w.Category, program.CategoryDefault)
	}
}

// TestRepairIdempotent: repair(repair(D)) == repair(D).
func TestRepairIdempotent(t *testing.T) {
	inputs := []document.Document{
		{},
		{Program: program.Program{Workouts: []program.Workout{{ID: "w1", Name: "A"}}}},
		document.Default(time.Unix(0, 0)),
	}
	for i, in := range inputs {
		once := document.Repair(in)
		twice := document.Repair(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("input %d: repair is not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}

func TestRepairKeepsExistingBaseline(t *testing.T) {
	d := document.Document{
		Program: program.Program{Workouts: []program.Workout{
			{ID: "w1", Name: "First", Category: "X", Exercises: []program.Exercise{}},
			{ID: program.BaselineWorkoutID, Name: "My Tests", Category: "Custom", Exercises: []program.Exercise{}},
		}},
		LogsByDate: logbook.LogsByDate{},
	}
	got := document.Repair(d)
	idx := got.Program.FindWorkout(program.BaselineWorkoutID)
	if idx != 1 {
		t.Errorf("existing baseline moved to index %d, repair must not reorder", idx)
	}
	if got.Program.Workouts[idx].Name != "My Tests" {
		t.Error("repair rewrote a renamed baseline workout")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "valid document", payload: `{"version":1,"program":{"workouts":[]},"logsByDate":{},"meta":{}}`},
		{name: "partial document repaired", payload: `{"program":{"workouts":[{"id":"w1","name":"A"}]}}`},
		{name: "not json", payload: `{{{`, wantErr: true},
		{name: "not an object", payload: `[1,2,3]`, wantErr: true},
		{name: "missing program", payload: `{"logsByDate":{}}`, wantErr: true},
		{name: "program not an object", payload: `{"program":"yes"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := document.Decode([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Program.FindWorkout(program.BaselineWorkoutID) < 0 {
				t.Error("decoded document missing the baseline workout")
			}
			if got.LogsByDate == nil {
				t.Error("decoded document has a nil logs map")
			}
		})
	}
}

func TestDecodeMissingProgramIsErrNotDocument(t *testing.T) {
	_, err := document.Decode([]byte(`{"logsByDate":{}}`))
	if !errors.Is(err, document.ErrNotDocument) {
		t.Fatalf("error = %v, want ErrNotDocument", err)
	}
}

// TestEncodeDecodeRoundTrip: load(save(D)) needs no second repair.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := document.Default(time.Unix(1700000000, 0))
	d.LogsByDate = d.LogsByDate.Save("2024-03-15", "ex-1", logbook.LogEntry{
		Sets:  []logbook.Set{{Reps: 10, Weight: "BW"}},
		Notes: "round trip",
	})

	data, err := document.Encode(d)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := document.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(d, got) {
		t.Errorf("round trip changed the document:\nin:  %+v\nout: %+v", d, got)
	}
}

// Logs referencing deleted exercises must survive encode/decode and
// repair untouched.
func TestOrphanLogsPreserved(t *testing.T) {
	d := document.Default(time.Unix(0, 0))
	d.LogsByDate = d.LogsByDate.Save("2024-01-02", "ghost-exercise", logbook.LogEntry{
		Sets: []logbook.Set{{Reps: 12, Weight: "45"}},
	})

	repaired := document.Repair(d)
	entry, ok := repaired.LogsByDate.Entry("2024-01-02", "ghost-exercise")
	if !ok || entry.Sets[0].Reps != 12 {
		t.Fatal("repair touched a log entry referencing a missing exercise")
	}

	data, _ := document.Encode(repaired)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("encoded document is not valid JSON: %v", err)
	}
	decoded, err := document.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := decoded.LogsByDate.Entry("2024-01-02", "ghost-exercise"); !ok {
		t.Fatal("orphan log entry lost in round trip")
	}
}
