package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"liftlog/internal/domain/document"
)

// FilenamePrefix is shared by export filenames; the current date is
// appended.
const FilenamePrefix = "workout-tracker-export-"

// ParseError reports a rejected import file with a descriptive reason.
// The current document is untouched when one is returned.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "import rejected: " + e.Reason
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// Export serializes the full document for a user-initiated download.
func Export(d document.Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Filename returns the export filename for the given moment, embedding
// the current date.
func Filename(now time.Time) string {
	return FilenamePrefix + now.Format("2006-01-02") + ".json"
}

// Import parses an exported snapshot. It fails closed: the payload must
// be a JSON object containing an object `program` with an array
// `program.workouts` and an object `logsByDate`. On success the
// returned document has been normalized with document.Repair and is
// meant to fully replace the current one; callers must confirm the
// destructive replace before invoking this.
func Import(data []byte) (document.Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return document.Document{}, parseErrorf("file is not a JSON object")
	}

	progRaw, ok := top["program"]
	if !ok {
		return document.Document{}, parseErrorf("missing \"program\" field")
	}
	var prog map[string]json.RawMessage
	if err := json.Unmarshal(progRaw, &prog); err != nil {
		return document.Document{}, parseErrorf("\"program\" is not an object")
	}
	workoutsRaw, ok := prog["workouts"]
	if !ok {
		return document.Document{}, parseErrorf("missing \"program.workouts\" field")
	}
	var workouts []json.RawMessage
	if err := json.Unmarshal(workoutsRaw, &workouts); err != nil {
		return document.Document{}, parseErrorf("\"program.workouts\" is not an array")
	}

	logsRaw, ok := top["logsByDate"]
	if !ok {
		return document.Document{}, parseErrorf("missing \"logsByDate\" field")
	}
	var logs map[string]json.RawMessage
	if err := json.Unmarshal(logsRaw, &logs); err != nil {
		return document.Document{}, parseErrorf("\"logsByDate\" is not an object")
	}

	var d document.Document
	if err := json.Unmarshal(data, &d); err != nil {
		return document.Document{}, parseErrorf("document shape is invalid: %v", err)
	}
	return document.Repair(d), nil
}
