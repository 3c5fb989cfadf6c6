// Command traindata samples random weather scenarios against the full grid
// and writes a CSV suitable for training a fast surrogate model.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"grid-thermal/internal/config"
	"grid-thermal/internal/data"
	"grid-thermal/internal/grid"
)

// Sampled input ranges. Load is drawn from discrete planning levels rather
// than a continuum.
const (
	tempMinC  = 0.0
	tempMaxC  = 60.0
	windMinFt = 0.1
	windMaxFt = 15.0
)

var loadLevels = []float64{1.0, 1.5, 2.0, 2.5, 3.0}

func main() {
	configPath := flag.String("config", "", "path to YAML config (empty: built-in defaults)")
	samples := flag.Int("n", 50000, "number of random scenarios to simulate")
	outPath := flag.String("out", "training_data.csv", "output CSV path")
	seed := flag.Int64("seed", 0, "RNG seed (0: time-based)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	net, err := data.Load(cfg.Data.ToPaths())
	if err != nil {
		log.Fatalf("Failed to load topology: %v", err)
	}
	sim := grid.NewSimulator(net, cfg.Ambient.ToModel(cfg.Request.TempC, cfg.Request.WindFtSec))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"temp", "wind", "load_mult", "num_overloaded", "total_stress_score"}); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	none := map[string]struct{}{}
	for i := 0; i < *samples; i++ {
		temp := tempMinC + rng.Float64()*(tempMaxC-tempMinC)
		wind := windMinFt + rng.Float64()*(windMaxFt-windMinFt)
		load := loadLevels[rng.Intn(len(loadLevels))]

		rep, err := sim.Simulate(temp, wind, load, none)
		if err != nil {
			log.Fatalf("Simulation failed at sample %d: %v", i, err)
		}

		// Raw summed overload percentage, not normalized by line count;
		// the surrogate learns the normalization for free.
		totalStress := 0.0
		for _, fail := range rep.Failures {
			totalStress += fail.LoadingPercent
		}

		if err := w.Write([]string{
			strconv.FormatFloat(temp, 'f', -1, 64),
			strconv.FormatFloat(wind, 'f', -1, 64),
			strconv.FormatFloat(load, 'f', -1, 64),
			strconv.Itoa(rep.FailureCount),
			strconv.FormatFloat(totalStress, 'f', -1, 64),
		}); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}

		if (i+1)%5000 == 0 {
			log.Printf("%d/%d samples", i+1, *samples)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}
	fmt.Printf("Wrote %d samples to %s (seed %d)\n", *samples, *outPath, *seed)
}
