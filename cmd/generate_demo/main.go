// Command generate_demo creates a demo sleep store with a few weeks of nights.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-nights 42]
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/logging"
	"github.com/mrlokans/sleeptracker/internal/manager"
	"github.com/mrlokans/sleeptracker/internal/utils"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// demoTag is a tag name with the chance it is attached to any given night.
type demoTag struct {
	Name        string
	R, G, B     uint8
	Probability float64
}

var demoTags = []demoTag{
	{Name: "coffee", R: 0x6F, G: 0x4E, B: 0x37, Probability: 0.35},
	{Name: "screen time", R: 0x92, G: 0x56, B: 0xBC, Probability: 0.5},
	{Name: "workout", R: 0x38, G: 0xAA, B: 0x8E, Probability: 0.3},
	{Name: "late dinner", R: 0xE0, G: 0x7A, B: 0x1F, Probability: 0.2},
	{Name: "travel", R: 0x1F, G: 0x6F, B: 0xE0, Probability: 0.05},
}

var demoComments = []string{
	"Woke up once around 3am",
	"Fell asleep reading",
	"Neighbours were loud",
	"Vivid dreams",
	"Slept straight through",
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	nights := flag.Int("nights", 42, "number of nights to generate, ending yesterday")
	seed := flag.Uint64("seed", 1, "random seed, for reproducible demo data")
	flag.Parse()

	log, err := logging.New("info", "console")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), *dbPath, *nights, *seed, log); err != nil {
		log.Fatal("Failed to generate demo database", zap.Error(err))
	}
}

func run(ctx context.Context, dbPath string, nights int, seed uint64, log *zap.Logger) error {
	log.Info("Generating demo database", zap.String("path", dbPath), zap.Int("nights", nights))

	// Start fresh so the initializer runs.
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	db, err := database.NewDatabase(ctx, dbPath, database.Options{}, log)
	if err != nil {
		return err
	}
	defer db.Close()

	m := manager.NewFromDatabase(db, log)
	rng := rand.New(rand.NewPCG(seed, seed))

	tagIDs := make([]int64, len(demoTags))
	for i, tag := range demoTags {
		id, err := m.InsertTag(ctx, tag.Name, utils.PackRGB(tag.R, tag.G, tag.B))
		if err != nil {
			return err
		}
		tagIDs[i] = id
	}

	end := time.Now().AddDate(0, 0, -1)
	for n := nights - 1; n >= 0; n-- {
		night := end.AddDate(0, 0, -n).Format("2006-01-02")

		var picked []int64
		penalty := 0.0
		for i, tag := range demoTags {
			if rng.Float64() < tag.Probability {
				picked = append(picked, tagIDs[i])
				penalty += 0.4
			}
		}

		amount := 6.0 + rng.Float64()*3.0 - penalty
		if amount < 3 {
			amount = 3
		}
		quality := int64(min(5, max(1, int(amount-3.5)+rng.IntN(2))))

		sleepID, err := m.InsertSleep(ctx, night, float64(int(amount*4))/4, quality)
		if err != nil {
			return err
		}
		if len(picked) > 0 {
			if _, err := m.AddTagsToSleep(ctx, sleepID, picked); err != nil {
				return err
			}
		}
		if rng.Float64() < 0.25 {
			if _, err := m.InsertComment(ctx, sleepID, demoComments[rng.IntN(len(demoComments))]); err != nil {
				return err
			}
		}
	}

	log.Info("Demo database generated successfully", zap.Int("tags", len(tagIDs)), zap.Int("nights", nights))
	return nil
}
