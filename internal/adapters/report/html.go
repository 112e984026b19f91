package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"liftlog/internal/domain/coach"
	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/summary"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in notes is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// exerciseRow is one line of the per-exercise summary table.
type exerciseRow struct {
	Workout   string
	Exercise  string
	Unit      string
	Total     float64
	MaxWeight string
}

// noteItem is one rendered note, in date order.
type noteItem struct {
	Date     string
	Exercise string
	HTML     template.HTML
}

type insightItem struct {
	Severity string
	Title    string
	Message  string
}

type reportData struct {
	Start       string
	End         string
	GeneratedAt string
	Rows        []exerciseRow
	Notes       []noteItem
	Insights    []insightItem
}

// Filename returns the report filename for the given moment.
func Filename(now time.Time) string {
	return "liftlog-report-" + now.Format("2006-01-02") + ".html"
}

// Render produces a self-contained HTML training report for the range:
// a summary row per exercise that has volume in range, the heuristic
// coach insights, and every logged note rendered from Markdown.
func Render(doc document.Document, rng summary.Range, now time.Time) ([]byte, error) {
	data := reportData{
		Start:       rng.Start,
		End:         rng.End,
		GeneratedAt: now.Format("2006-01-02 15:04"),
	}

	for _, w := range doc.Program.Workouts {
		for _, ex := range w.Exercises {
			res := summary.Summarize(doc.LogsByDate, ex.ID, ex.Unit, rng)
			if res.TotalQuantity == 0 && res.MaxWeight == summary.NoData {
				continue
			}
			data.Rows = append(data.Rows, exerciseRow{
				Workout:   w.Name,
				Exercise:  ex.Name,
				Unit:      ex.Unit.Abbrev(),
				Total:     res.TotalQuantity,
				MaxWeight: res.MaxWeight,
			})
		}
	}

	for _, in := range coach.DetectInsights(coach.AggregateVolume(doc, rng)) {
		data.Insights = append(data.Insights, insightItem{
			Severity: string(in.Severity),
			Title:    in.Title,
			Message:  in.Message,
		})
	}

	notes, err := collectNotes(doc, rng)
	if err != nil {
		return nil, err
	}
	data.Notes = notes

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func collectNotes(doc document.Document, rng summary.Range) ([]noteItem, error) {
	var keys []string
	for key := range doc.LogsByDate {
		if logbook.IsDateKey(key) && key >= rng.Start && key <= rng.End {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var notes []noteItem
	for _, key := range keys {
		day := doc.LogsByDate[key]
		var ids []string
		for id := range day {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			entry := day[id]
			if entry.Notes == "" {
				continue
			}
			name := id
			if ex, ok := doc.Program.FindExercise(id); ok {
				name = ex.Name
			}
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(entry.Notes), &buf); err != nil {
				return nil, fmt.Errorf("render note for %s on %s: %w", name, key, err)
			}
			notes = append(notes, noteItem{
				Date:     key,
				Exercise: name,
				HTML:     template.HTML(buf.String()),
			})
		}
	}
	return notes, nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Training report {{.Start}} to {{.End}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; }
.severity-HIGH { color: #b00020; font-weight: 600; }
.severity-MEDIUM { color: #b36b00; font-weight: 600; }
.severity-LOW { color: #555; }
.severity-INFO { color: #0a7b36; }
.note { border-left: 3px solid #ccc; padding-left: 0.8rem; margin: 0.8rem 0; }
footer { margin-top: 2rem; color: #888; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Training report</h1>
<p>{{.Start}} to {{.End}}</p>

<h2>Volume</h2>
{{if .Rows}}
<table>
<tr><th>Workout</th><th>Exercise</th><th>Total</th><th>Max weight</th></tr>
{{range .Rows}}
<tr><td>{{.Workout}}</td><td>{{.Exercise}}</td><td>{{.Total}} {{.Unit}}</td><td>{{.MaxWeight}}</td></tr>
{{end}}
</table>
{{else}}
<p>No training logged in this range.</p>
{{end}}

{{if .Insights}}
<h2>Coach</h2>
<ul>
{{range .Insights}}
<li class="severity-{{.Severity}}"><strong>{{.Title}}:</strong> {{.Message}}</li>
{{end}}
</ul>
{{end}}

{{if .Notes}}
<h2>Notes</h2>
{{range .Notes}}
<div class="note">
<p><strong>{{.Date}}</strong> · {{.Exercise}}</p>
{{.HTML}}
</div>
{{end}}
{{end}}

<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`))
