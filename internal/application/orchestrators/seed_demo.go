package orchestrators

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"liftlog/internal/domain/document"
	"liftlog/internal/domain/logbook"
)

// ErrDocumentNotEmpty guards the demo seeder: it never overwrites real
// training history.
var ErrDocumentNotEmpty = errors.New("document already has logged entries, refusing to seed demo data")

// SeedDemoInput configures the demo seeder.
type SeedDemoInput struct {
	Days int   // how many days back from today to fill
	Seed int64 // faker seed; 0 means non-deterministic
}

// ExecuteSeedDemo fills the document with plausible fake training
// history over the existing program, for trying the app out.
// PRE: the document has no logged entries yet
// POST: roughly every second day in the window carries logs
func ExecuteSeedDemo(ctx context.Context, deps Deps, input SeedDemoInput) (int, error) {
	days := input.Days
	if days <= 0 {
		days = 28
	}
	faker := gofakeit.New(input.Seed)

	seeded := 0
	_, err := applyMutation(ctx, deps, func(d document.Document) (document.Document, error) {
		if len(d.LogsByDate) > 0 {
			return d, ErrDocumentNotEmpty
		}

		logs := d.LogsByDate
		today := deps.now()
		for back := days; back >= 0; back-- {
			if back != 0 && faker.Bool() {
				continue // rest day
			}
			dateKey := today.AddDate(0, 0, -back).Format("2006-01-02")
			w := d.Program.Workouts[faker.Number(0, len(d.Program.Workouts)-1)]
			for _, ex := range w.Exercises {
				sets := make([]logbook.Set, faker.Number(2, 4))
				weight := logbook.BodyweightMarker
				if faker.Bool() {
					weight = fmt.Sprintf("%d", faker.Number(9, 40)*5)
				}
				for i := range sets {
					sets[i] = logbook.Set{Reps: float64(faker.Number(5, 12)), Weight: weight}
				}
				entry := logbook.LogEntry{Sets: logbook.NormalizeSets(sets, ex.Unit.AllowsDecimal())}
				if faker.Number(0, 4) == 0 {
					entry.Notes = faker.Sentence(6)
				}
				logs = logs.Save(dateKey, ex.ID, entry)
				seeded++
			}
		}
		d.LogsByDate = logs
		return d, nil
	})
	if err != nil {
		return 0, err
	}
	return seeded, nil
}
