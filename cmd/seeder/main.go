package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/config"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/ingestion"
)

var subjects = []string{
	"Math", "Science", "English", "History", "Spanish", "Art", "Biology", "Geography",
}

var topics = map[string][]string{
	"Math":      {"fractions", "long division", "decimals", "geometry", "word problems"},
	"Science":   {"the water cycle", "simple machines", "states of matter", "magnets"},
	"English":   {"persuasive essays", "poetry", "grammar", "vocabulary"},
	"History":   {"ancient Egypt", "the Roman republic", "the industrial revolution"},
	"Spanish":   {"verbs", "greetings", "numbers", "the family"},
	"Art":       {"color theory", "perspective drawing", "clay sculpture"},
	"Biology":   {"cells", "photosynthesis", "food webs"},
	"Geography": {"rivers", "continents", "map reading"},
}

var contentTypes = []core.ContentType{
	core.ContentTypeLesson,
	core.ContentTypeReading,
	core.ContentTypeChapter,
	core.ContentTypeAssignment,
	core.ContentTypeWorksheet,
	core.ContentTypeQuiz,
	core.ContentTypeTest,
	core.ContentTypeNotes,
}

var (
	studentID = flag.String("student", "demo-student", "student the materials belong to")
	count     = flag.Int("n", 60, "number of materials to generate")
	seed      = flag.Uint64("seed", 1, "random seed")
	outFile   = flag.String("out", "", "write a YAML fixture here instead of importing")
	dbPath    = flag.String("db", "./satchel-data", "badger store to import into")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// materials returns an iterator over n generated materials with due dates
// spread around today.
func materials(n int, today time.Time, rng *rand.Rand) iter.Seq[ingestion.RawMaterial] {
	return func(yield func(ingestion.RawMaterial) bool) {
		for i := range n {
			subject := subjects[rng.IntN(len(subjects))]
			topic := topics[subject][rng.IntN(len(topics[subject]))]
			ct := contentTypes[rng.IntN(len(contentTypes))]

			raw := ingestion.RawMaterial{
				ExternalID:  fmt.Sprintf("seed-%04d", i),
				Title:       fmt.Sprintf("%s %s: %s", subject, ct, topic),
				ContentType: string(ct),
				Description: fmt.Sprintf("%s practice on %s.", subject, topic),
			}

			switch ct {
			case core.ContentTypeLesson, core.ContentTypeReading, core.ContentTypeChapter:
				primary := rng.IntN(3) == 0
				raw.IsPrimaryLesson = &primary
				raw.Content = map[string]any{
					"learning_objectives": []any{"Understand " + topic},
					"summary":             fmt.Sprintf("An introduction to %s.", topic),
					"keywords":            []any{subject, topic},
				}
			default:
				due := today.AddDate(0, 0, rng.IntN(21)-7)
				raw.DueDate = due.Format(time.DateOnly)
				if due.Before(today) && rng.IntN(2) == 0 {
					raw.CompletedAt = due.Add(-6 * time.Hour).Format(time.RFC3339)
					grade, maxGrade := float64(40+rng.IntN(61)), 100.0
					raw.GradeValue, raw.GradeMaxValue = &grade, &maxGrade
				}
			}

			if !yield(raw) {
				return
			}
		}
	}
}

func main() {
	rng := rand.New(rand.NewPCG(*seed, *seed))
	today := core.CalendarDay(time.Now())

	var raws []ingestion.RawMaterial
	for raw := range materials(*count, today, rng) {
		raws = append(raws, raw)
	}

	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := ingestion.WriteRawMaterials(f, ingestion.FormatYAML, raws); err != nil {
			panic(err)
		}
		slog.Info("wrote fixture", "file", *outFile, "materials", len(raws))
		return
	}

	db, err := satchel.NewDatabase(config.NewConfig(config.WithPath(*dbPath)))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	importer, err := db.NewIngestionPipeline(ingestion.WithProgress(os.Stderr))
	if err != nil {
		panic(err)
	}
	defer importer.Release()

	report, err := importer.Import(context.Background(), *studentID, raws)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded", "student", *studentID, "imported", report.Imported, "invalid", report.Invalid)
}
