package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"liftlog/internal/adapters/report"
	"liftlog/internal/adapters/storage"
	documentStore "liftlog/internal/adapters/storage/document"
	"liftlog/internal/application/orchestrators"
	"liftlog/internal/config"
	"liftlog/internal/domain/coach"
	"liftlog/internal/domain/logbook"
	"liftlog/internal/domain/program"
	"liftlog/internal/domain/snapshot"
	"liftlog/internal/domain/summary"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const dateLayout = "2006-01-02"

func main() {
	cfgPath := envOrDefault("LIFTLOG_CONFIG", config.DefaultPath())
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	if args[0] == "version" {
		fmt.Println("liftlog", version)
		return
	}

	deps, closeDB, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer closeDB()

	if err := dispatch(context.Background(), deps, cfg, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}

// openStore opens the SQLite database with WAL mode and a busy timeout,
// runs schema init, and wires the document store behind the slow-query
// logging wrapper.
func openStore(cfg config.Config) (orchestrators.Deps, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return orchestrators.Deps{}, nil, err
	}
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return orchestrators.Deps{}, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return orchestrators.Deps{}, nil, err
	}
	if err := storage.InitDB(db); err != nil {
		db.Close()
		return orchestrators.Deps{}, nil, err
	}
	timed := storage.NewTimedDB(db)
	deps := orchestrators.Deps{
		Docs: documentStore.NewSQLiteStore(timed),
		Now:  time.Now,
	}
	return deps, func() { timed.Close() }, nil
}

func dispatch(ctx context.Context, deps orchestrators.Deps, cfg config.Config, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "program":
		return runProgram(ctx, deps, rest)
	case "log":
		return runLog(ctx, deps, rest)
	case "summary":
		return runSummary(ctx, deps, cfg, rest)
	case "coach":
		return runCoach(ctx, deps, cfg, rest)
	case "export":
		return runExport(ctx, deps, rest)
	case "import":
		return runImport(ctx, deps, rest)
	case "report":
		return runReport(ctx, deps, cfg, rest)
	case "seed":
		return runSeed(ctx, deps, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runProgram(ctx context.Context, deps orchestrators.Deps, args []string) error {
	if len(args) == 0 {
		return errors.New("program: need a subcommand (list, add-workout, rename-workout, set-category, delete-workout, move-workout, add-exercise, rename-exercise, delete-exercise, move-exercise, set-unit)")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return programList(ctx, deps)

	case "add-workout":
		fs := flag.NewFlagSet("program add-workout", flag.ExitOnError)
		name := fs.String("name", "", "workout name")
		category := fs.String("category", "", "category label (defaults to Workout)")
		fs.Parse(rest)
		w, err := orchestrators.ExecuteAddWorkout(ctx, deps, orchestrators.AddWorkoutInput{Name: *name, Category: *category})
		if err != nil {
			return err
		}
		fmt.Printf("added workout %q (%s)\n", w.Name, w.ID)
		return nil

	case "rename-workout":
		fs := flag.NewFlagSet("program rename-workout", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		name := fs.String("name", "", "new name")
		fs.Parse(rest)
		return orchestrators.ExecuteRenameWorkout(ctx, deps, *id, *name)

	case "set-category":
		fs := flag.NewFlagSet("program set-category", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		category := fs.String("category", "", "new category label")
		fs.Parse(rest)
		return orchestrators.ExecuteSetWorkoutCategory(ctx, deps, *id, *category)

	case "delete-workout":
		fs := flag.NewFlagSet("program delete-workout", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		fs.Parse(rest)
		return orchestrators.ExecuteDeleteWorkout(ctx, deps, *id)

	case "move-workout":
		fs := flag.NewFlagSet("program move-workout", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		dir := fs.String("dir", "", "up or down")
		fs.Parse(rest)
		d, err := parseDirection(*dir)
		if err != nil {
			return err
		}
		return orchestrators.ExecuteMoveWorkout(ctx, deps, *id, d)

	case "add-exercise":
		fs := flag.NewFlagSet("program add-exercise", flag.ExitOnError)
		workout := fs.String("workout", "", "workout id")
		name := fs.String("name", "", "exercise name")
		unit := fs.String("unit", "reps", "unit kind (reps, miles, yards, laps, steps, sec, min, hrs, custom)")
		abbrev := fs.String("abbrev", "", "abbreviation for a custom unit")
		decimals := fs.Bool("decimals", false, "allow decimal quantities (custom units only)")
		fs.Parse(rest)
		u, err := parseUnit(*unit, *abbrev, *decimals)
		if err != nil {
			return err
		}
		ex, err := orchestrators.ExecuteAddExercise(ctx, deps, orchestrators.AddExerciseInput{
			WorkoutID: *workout, Name: *name, Unit: u,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added exercise %q (%s)\n", ex.Name, ex.ID)
		return nil

	case "rename-exercise":
		fs := flag.NewFlagSet("program rename-exercise", flag.ExitOnError)
		id := fs.String("id", "", "exercise id")
		name := fs.String("name", "", "new name")
		fs.Parse(rest)
		return orchestrators.ExecuteRenameExercise(ctx, deps, *id, *name)

	case "delete-exercise":
		fs := flag.NewFlagSet("program delete-exercise", flag.ExitOnError)
		id := fs.String("id", "", "exercise id")
		fs.Parse(rest)
		return orchestrators.ExecuteDeleteExercise(ctx, deps, *id)

	case "move-exercise":
		fs := flag.NewFlagSet("program move-exercise", flag.ExitOnError)
		id := fs.String("id", "", "exercise id")
		dir := fs.String("dir", "", "up or down")
		fs.Parse(rest)
		d, err := parseDirection(*dir)
		if err != nil {
			return err
		}
		return orchestrators.ExecuteMoveExercise(ctx, deps, *id, d)

	case "set-unit":
		fs := flag.NewFlagSet("program set-unit", flag.ExitOnError)
		id := fs.String("id", "", "exercise id")
		unit := fs.String("unit", "", "unit kind (reps, miles, yards, laps, steps, sec, min, hrs, custom)")
		abbrev := fs.String("abbrev", "", "abbreviation for a custom unit")
		decimals := fs.Bool("decimals", false, "allow decimal quantities (custom units only)")
		fs.Parse(rest)
		u, err := parseUnit(*unit, *abbrev, *decimals)
		if err != nil {
			return err
		}
		return orchestrators.ExecuteChangeExerciseUnit(ctx, deps, *id, u)

	default:
		return fmt.Errorf("program: unknown subcommand %q", sub)
	}
}

func programList(ctx context.Context, deps orchestrators.Deps) error {
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return err
	}
	for _, w := range d.Program.Workouts {
		fmt.Printf("%s  %s [%s]\n", w.ID, w.Name, w.Category)
		for _, ex := range w.Exercises {
			fmt.Printf("  %s  %s (%s)\n", ex.ID, ex.Name, ex.Unit.Abbrev())
		}
	}
	return nil
}

func runLog(ctx context.Context, deps orchestrators.Deps, args []string) error {
	if len(args) == 0 {
		return errors.New("log: need a subcommand (draft, save, delete)")
	}
	sub, rest := args[0], args[1:]
	today := time.Now().Format(dateLayout)
	switch sub {
	case "draft":
		fs := flag.NewFlagSet("log draft", flag.ExitOnError)
		exercise := fs.String("exercise", "", "exercise id")
		date := fs.String("date", today, "date (YYYY-MM-DD)")
		fs.Parse(rest)
		res, err := orchestrators.ExecuteOpenDraft(ctx, deps, *exercise, *date)
		if err != nil {
			return err
		}
		fmt.Printf("%s on %s (%s)\n", res.Exercise.Name, *date, res.Source)
		for i, s := range res.Entry.Sets {
			fmt.Printf("  set %d: %s %s @ %s\n", i+1, formatQuantity(s.Reps), res.Exercise.Unit.Abbrev(), s.Weight)
		}
		if res.Entry.Notes != "" {
			fmt.Printf("  notes: %s\n", res.Entry.Notes)
		}
		return nil

	case "save":
		fs := flag.NewFlagSet("log save", flag.ExitOnError)
		exercise := fs.String("exercise", "", "exercise id")
		date := fs.String("date", today, "date (YYYY-MM-DD)")
		sets := fs.String("sets", "", `sets as "QTYxWEIGHT,..." e.g. "8x185,10xBW" (bare quantity means bodyweight)`)
		notes := fs.String("notes", "", "free-text notes (markdown)")
		fs.Parse(rest)
		parsed, err := parseSets(*sets)
		if err != nil {
			return err
		}
		return orchestrators.ExecuteSaveLog(ctx, deps, orchestrators.SaveLogInput{
			DateKey:    *date,
			ExerciseID: *exercise,
			Sets:       parsed,
			Notes:      *notes,
		})

	case "delete":
		fs := flag.NewFlagSet("log delete", flag.ExitOnError)
		exercise := fs.String("exercise", "", "exercise id")
		date := fs.String("date", today, "date (YYYY-MM-DD)")
		fs.Parse(rest)
		return orchestrators.ExecuteDeleteLog(ctx, deps, *date, *exercise)

	default:
		return fmt.Errorf("log: unknown subcommand %q", sub)
	}
}

func runSummary(ctx context.Context, deps orchestrators.Deps, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	exercise := fs.String("exercise", "", "exercise id")
	preset := fs.String("range", "mtd", "wtd, mtd or ytd")
	from := fs.String("from", "", "range start (YYYY-MM-DD), overrides -range with -to")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)
	rng, err := resolveRange(*preset, *from, *to, cfg.WeekStart)
	if err != nil {
		return err
	}
	res, err := orchestrators.ExecuteSummarize(ctx, deps, orchestrators.SummarizeInput{
		ExerciseID: *exercise,
		Range:      rng,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s to %s\n", res.Exercise.Name, rng.Start, rng.End)
	fmt.Printf("  total: %s %s\n", formatQuantity(res.Summary.TotalQuantity), res.Exercise.Unit.Abbrev())
	fmt.Printf("  max weight: %s\n", res.Summary.MaxWeight)
	return nil
}

func runCoach(ctx context.Context, deps orchestrators.Deps, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("coach", flag.ExitOnError)
	preset := fs.String("range", "mtd", "wtd, mtd or ytd")
	from := fs.String("from", "", "range start (YYYY-MM-DD), overrides -range with -to")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)
	rng, err := resolveRange(*preset, *from, *to, cfg.WeekStart)
	if err != nil {
		return err
	}
	res, err := orchestrators.ExecuteCoach(ctx, deps, rng)
	if err != nil {
		return err
	}
	fmt.Printf("volume by muscle group, %s to %s\n", rng.Start, rng.End)
	for _, g := range coach.Groups() {
		if v := res.Volume[g]; v > 0 {
			fmt.Printf("  %-15s %s\n", g, formatQuantity(v))
		}
	}
	if v := res.Volume[coach.Unclassified]; v > 0 {
		fmt.Printf("  %-15s %s\n", coach.Unclassified, formatQuantity(v))
	}
	if len(res.Insights) == 0 {
		fmt.Println("no insights for this range")
		return nil
	}
	for _, ins := range res.Insights {
		fmt.Printf("[%s] %s\n  %s\n", ins.Severity, ins.Title, ins.Message)
		if len(ins.Suggestions) > 0 {
			fmt.Printf("  try: %s\n", strings.Join(ins.Suggestions, ", "))
		}
	}
	return nil
}

func runExport(ctx context.Context, deps orchestrators.Deps, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", ".", "directory to write the export file into")
	fs.Parse(args)
	res, err := orchestrators.ExecuteExport(ctx, deps)
	if err != nil {
		return err
	}
	path := filepath.Join(*out, res.Filename)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return err
	}
	fmt.Println("exported to", path)
	return nil
}

func runImport(ctx context.Context, deps orchestrators.Deps, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "export file to import")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)
	if *file == "" {
		return errors.New("import: -file is required")
	}
	payload, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	if !*yes {
		fmt.Print("importing REPLACES all current workouts and logs. Type 'yes' to continue: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "yes" {
			fmt.Println("import cancelled")
			return nil
		}
	}
	if err := orchestrators.ExecuteImport(ctx, deps, payload); err != nil {
		return err
	}
	fmt.Println("import complete")
	return nil
}

func runReport(ctx context.Context, deps orchestrators.Deps, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	preset := fs.String("range", "mtd", "wtd, mtd or ytd")
	from := fs.String("from", "", "range start (YYYY-MM-DD), overrides -range with -to")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	out := fs.String("out", "", "output path (defaults to liftlog-report-<date>.html)")
	fs.Parse(args)
	rng, err := resolveRange(*preset, *from, *to, cfg.WeekStart)
	if err != nil {
		return err
	}
	d, err := deps.Docs.Load(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	html, err := report.Render(d, rng, now)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = report.Filename(now)
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return err
	}
	fmt.Println("report written to", path)
	return nil
}

func runSeed(ctx context.Context, deps orchestrators.Deps, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	days := fs.Int("days", 28, "how many days back to fill")
	seed := fs.Int64("seed", 0, "faker seed (0 for random)")
	fs.Parse(args)
	n, err := orchestrators.ExecuteSeedDemo(ctx, deps, orchestrators.SeedDemoInput{Days: *days, Seed: *seed})
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d demo log entries\n", n)
	return nil
}

// resolveRange picks explicit -from/-to bounds when both are given,
// otherwise expands the preset relative to today.
func resolveRange(preset, from, to, weekStart string) (summary.Range, error) {
	if from != "" || to != "" {
		if from == "" || to == "" {
			return summary.Range{}, errors.New("need both -from and -to, or a -range preset")
		}
		return summary.Range{Start: from, End: to}, nil
	}
	today := time.Now().Format(dateLayout)
	switch preset {
	case "wtd":
		return summary.WeekToDate(today, summary.ParseWeekStart(weekStart))
	case "mtd":
		return summary.MonthToDate(today)
	case "ytd":
		return summary.YearToDate(today)
	default:
		return summary.Range{}, fmt.Errorf("unknown range preset %q (want wtd, mtd or ytd)", preset)
	}
}

func parseDirection(s string) (program.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return program.DirUp, nil
	case "down":
		return program.DirDown, nil
	default:
		return 0, fmt.Errorf("direction must be up or down, got %q", s)
	}
}

func parseUnit(kind, abbrev string, decimals bool) (program.Unit, error) {
	k, ok := program.ParseUnitKind(kind)
	if !ok {
		return program.Unit{}, fmt.Errorf("unknown unit %q (want reps, miles, yards, laps, steps, sec, min, hrs or custom)", kind)
	}
	if k == program.UnitCustom {
		return program.CustomUnit(abbrev, decimals), nil
	}
	return program.FixedUnit(k), nil
}

// parseSets parses a comma-separated set list like "8x185,10xBW,12".
// Each element is QTYxWEIGHT; a bare quantity means bodyweight.
func parseSets(s string) ([]logbook.Set, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(`no sets given; use -sets "8x185,10xBW"`)
	}
	var out []logbook.Set
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		qty, weight := part, logbook.BodyweightMarker
		if i := strings.IndexAny(part, "xX"); i >= 0 {
			qty, weight = part[:i], part[i+1:]
		}
		reps, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
		if err != nil {
			return nil, fmt.Errorf("bad set %q: quantity must be a number", part)
		}
		out = append(out, logbook.Set{Reps: reps, Weight: strings.TrimSpace(weight)})
	}
	if len(out) == 0 {
		return nil, errors.New(`no sets given; use -sets "8x185,10xBW"`)
	}
	return out, nil
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// userMessage turns known error kinds into actionable one-liners.
func userMessage(err error) string {
	var pe *snapshot.ParseError
	switch {
	case errors.Is(err, documentStore.ErrStorageExhausted):
		return "storage is full; your previous data is intact. Free disk space or run 'liftlog export' elsewhere, then retry"
	case errors.As(err, &pe):
		return "that file does not look like a liftlog export: " + pe.Reason
	case program.IsValidation(err):
		return err.Error()
	default:
		return err.Error()
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `liftlog - personal workout log

usage: liftlog <command> [flags]

commands:
  program   manage workouts and exercises (program list, program add-workout ...)
  log       open, save or delete a day's log entry (log draft, log save, log delete)
  summary   total quantity and max weight for an exercise over a range
  coach     muscle group volume breakdown and imbalance insights
  export    write a full JSON snapshot of your data
  import    replace all data from an export file (destructive)
  report    render an HTML training report
  seed      fill an empty log with demo data
  version   print the version

run 'liftlog <command> -h' for flags.
`)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
