// Package evolve is a small generational evolutionary-search engine:
// variable-length genomes, tournament selection, one-point crossover,
// per-gene replacement mutation, and single-slot elitism. It is generic
// over the gene type and takes its random source from the caller, so
// operators can be exercised deterministically under a seeded source.
package evolve

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// Config holds the search parameters. Scores are minimized.
type Config struct {
	PopulationSize int
	Generations    int
	// MinGenes/MaxGenes bound the genome length of freshly created
	// individuals (crossover may swap tails of unequal parents, but the
	// resulting lengths stay within the same bounds).
	MinGenes int
	MaxGenes int
	// CrossoverProb is the per-pair chance of one-point crossover.
	CrossoverProb float64
	// MutationProb is the per-gene chance of replacement by a new gene.
	MutationProb float64
	// TournamentSize is the number of individuals sampled (with
	// replacement) per parent pick.
	TournamentSize int
}

func (c Config) validate() error {
	if c.PopulationSize < 2 {
		return errors.New("PopulationSize must be >= 2")
	}
	if c.Generations < 0 {
		return errors.New("Generations must be >= 0")
	}
	if c.MinGenes < 1 || c.MaxGenes < c.MinGenes {
		return errors.New("need 1 <= MinGenes <= MaxGenes")
	}
	if c.TournamentSize < 1 {
		return errors.New("TournamentSize must be >= 1")
	}
	return nil
}

// Engine runs the search for one gene type. The fitness function must be
// safe for concurrent calls: all individuals of a generation are evaluated
// in parallel, with the generation boundary as the barrier.
type Engine[G any] struct {
	cfg     Config
	rng     *rand.Rand
	newGene func(*rand.Rand) G
	fitness func([]G) float64
}

func New[G any](cfg Config, rng *rand.Rand, newGene func(*rand.Rand) G, fitness func([]G) float64) (*Engine[G], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil || newGene == nil || fitness == nil {
		return nil, errors.New("rng, newGene and fitness are required")
	}
	return &Engine[G]{cfg: cfg, rng: rng, newGene: newGene, fitness: fitness}, nil
}

// Result is the best individual seen across every generation, regardless
// of whether later generations regressed.
type Result[G any] struct {
	Best  []G
	Score float64
	// Generations is how many generations actually ran; fewer than
	// configured when the context was cancelled.
	Generations int
}

// Run executes the search. Cancellation is best-effort: it is observed at
// generation boundaries and returns the best individual found so far
// rather than an error, so a long search still yields a usable plan.
func (e *Engine[G]) Run(ctx context.Context) Result[G] {
	pop := make([][]G, e.cfg.PopulationSize)
	for i := range pop {
		pop[i] = e.randomGenome()
	}
	scores := e.evaluate(pop)

	best, bestScore := cloneGenome(pop[0]), scores[0]
	updateBest := func() {
		for i, s := range scores {
			if s < bestScore {
				best, bestScore = cloneGenome(pop[i]), s
			}
		}
	}
	updateBest()

	gen := 0
	for ; gen < e.cfg.Generations; gen++ {
		if ctx.Err() != nil {
			break
		}

		offspring := make([][]G, len(pop))
		for i := range offspring {
			offspring[i] = cloneGenome(pop[e.tournament(scores)])
		}
		for i := 0; i+1 < len(offspring); i += 2 {
			if e.rng.Float64() < e.cfg.CrossoverProb {
				offspring[i], offspring[i+1] = onePointCrossover(e.rng, offspring[i], offspring[i+1])
			}
		}
		for _, genome := range offspring {
			e.mutate(genome)
		}

		pop = offspring
		scores = e.evaluate(pop)
		updateBest()
	}

	return Result[G]{Best: best, Score: bestScore, Generations: gen}
}

func (e *Engine[G]) randomGenome() []G {
	n := e.cfg.MinGenes + e.rng.Intn(e.cfg.MaxGenes-e.cfg.MinGenes+1)
	genome := make([]G, n)
	for i := range genome {
		genome[i] = e.newGene(e.rng)
	}
	return genome
}

func (e *Engine[G]) evaluate(pop [][]G) []float64 {
	scores := make([]float64, len(pop))
	var wg sync.WaitGroup
	for i := range pop {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scores[i] = e.fitness(pop[i])
		}(i)
	}
	wg.Wait()
	return scores
}

// tournament picks the index of the lowest-scoring of TournamentSize
// uniform samples (with replacement).
func (e *Engine[G]) tournament(scores []float64) int {
	winner := e.rng.Intn(len(scores))
	for k := 1; k < e.cfg.TournamentSize; k++ {
		c := e.rng.Intn(len(scores))
		if scores[c] < scores[winner] {
			winner = c
		}
	}
	return winner
}

// onePointCrossover swaps the tails of both genomes at a shared cut point
// (unequal parents swap lengths). No-op when either parent is too short to
// cut.
func onePointCrossover[G any](rng *rand.Rand, a, b []G) ([]G, []G) {
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter < 2 {
		return a, b
	}
	cut := 1 + rng.Intn(shorter-1)
	newA := append(a[:cut:cut], b[cut:]...)
	newB := append(b[:cut:cut], a[cut:]...)
	return newA, newB
}

func (e *Engine[G]) mutate(genome []G) {
	for i := range genome {
		if e.rng.Float64() < e.cfg.MutationProb {
			genome[i] = e.newGene(e.rng)
		}
	}
}

func cloneGenome[G any](g []G) []G {
	out := make([]G, len(g))
	copy(out, g)
	return out
}
