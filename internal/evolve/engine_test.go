package evolve

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intConfig() Config {
	return Config{
		PopulationSize: 40,
		Generations:    25,
		MinGenes:       1,
		MaxGenes:       5,
		CrossoverProb:  0.6,
		MutationProb:   0.2,
		TournamentSize: 3,
	}
}

// sumFitness rewards genomes of small non-negative ints summing low.
func sumFitness(genome []int) float64 {
	total := 0.0
	for _, g := range genome {
		total += float64(g)
	}
	return total
}

func TestEngineMinimizesSimpleObjective(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	eng, err := New(intConfig(), rng, func(r *rand.Rand) int { return r.Intn(100) }, sumFitness)
	require.NoError(t, err)

	res := eng.Run(context.Background())
	assert.Equal(t, 25, res.Generations)
	// 40x25 draws over genomes of 1..5 genes in [0,100): the search should
	// comfortably land a small total.
	assert.Less(t, res.Score, 20.0)
	assert.InDelta(t, sumFitness(res.Best), res.Score, 1e-12)
}

func TestEngineDeterministicUnderSeed(t *testing.T) {
	gene := func(r *rand.Rand) int { return r.Intn(100) }

	run := func() Result[int] {
		eng, err := New(intConfig(), rand.New(rand.NewSource(42)), gene, sumFitness)
		require.NoError(t, err)
		return eng.Run(context.Background())
	}
	a := run()
	b := run()
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Best, b.Best)
}

func TestEngineElitismSurvivesRegression(t *testing.T) {
	// A fitness with heavy noise would let generations regress; the result
	// must still be the best score ever observed.
	rng := rand.New(rand.NewSource(7))
	seen := make(chan float64, 100000)
	fitness := func(genome []int) float64 {
		s := sumFitness(genome)
		seen <- s
		return s
	}
	eng, err := New(intConfig(), rng, func(r *rand.Rand) int { return r.Intn(100) }, fitness)
	require.NoError(t, err)

	res := eng.Run(context.Background())
	close(seen)
	lowest := 1e18
	for s := range seen {
		if s < lowest {
			lowest = s
		}
	}
	assert.Equal(t, lowest, res.Score)
}

func TestEngineCancellationReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, err := New(intConfig(), rand.New(rand.NewSource(3)),
		func(r *rand.Rand) int { return r.Intn(100) }, sumFitness)
	require.NoError(t, err)

	res := eng.Run(ctx)
	// Only the initial population was evaluated.
	assert.Zero(t, res.Generations)
	assert.NotEmpty(t, res.Best)
}

func TestOnePointCrossover(t *testing.T) {
	t.Run("swaps tails at the cut", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		a := []int{1, 1, 1, 1}
		b := []int{2, 2, 2, 2}
		na, nb := onePointCrossover(rng, a, b)

		require.Len(t, na, 4)
		require.Len(t, nb, 4)
		// Each child is a prefix of one parent and a suffix of the other.
		cut := 0
		for cut < 4 && na[cut] == 1 {
			cut++
		}
		assert.GreaterOrEqual(t, cut, 1)
		assert.LessOrEqual(t, cut, 3)
		for i := 0; i < 4; i++ {
			if i < cut {
				assert.Equal(t, 1, na[i])
				assert.Equal(t, 2, nb[i])
			} else {
				assert.Equal(t, 2, na[i])
				assert.Equal(t, 1, nb[i])
			}
		}
	})

	t.Run("unequal parents swap lengths", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		na, nb := onePointCrossover(rng, []int{1, 1}, []int{2, 2, 2, 2, 2})
		assert.Len(t, na, 5)
		assert.Len(t, nb, 2)
	})

	t.Run("single-gene parent is a no-op", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		na, nb := onePointCrossover(rng, []int{1}, []int{2, 2, 2})
		assert.Equal(t, []int{1}, na)
		assert.Equal(t, []int{2, 2, 2}, nb)
	})
}

func TestTournamentPrefersLowScores(t *testing.T) {
	cfg := intConfig()
	eng, err := New(cfg, rand.New(rand.NewSource(11)),
		func(r *rand.Rand) int { return 0 }, sumFitness)
	require.NoError(t, err)

	scores := []float64{5, 1, 9, 3}
	wins := make([]int, len(scores))
	for i := 0; i < 4000; i++ {
		wins[eng.tournament(scores)]++
	}
	// The best individual must win the plurality of 3-way tournaments and
	// the worst the fewest.
	assert.Greater(t, wins[1], wins[3])
	assert.Greater(t, wins[3], wins[0])
	assert.Greater(t, wins[0], wins[2])
	assert.Greater(t, wins[2], 0) // sampling with replacement still lets it through
}

func TestMutationRate(t *testing.T) {
	cfg := intConfig()
	cfg.MutationProb = 0.2
	eng, err := New(cfg, rand.New(rand.NewSource(13)),
		func(r *rand.Rand) int { return 1 }, sumFitness)
	require.NoError(t, err)

	const n = 20000
	genome := make([]int, n)
	eng.mutate(genome)
	mutated := 0
	for _, g := range genome {
		if g == 1 {
			mutated++
		}
	}
	assert.InDelta(t, 0.2, float64(mutated)/n, 0.02)
}

func TestConfigValidation(t *testing.T) {
	bad := intConfig()
	bad.PopulationSize = 1
	_, err := New(bad, rand.New(rand.NewSource(1)),
		func(r *rand.Rand) int { return 0 }, sumFitness)
	assert.Error(t, err)

	bad = intConfig()
	bad.MinGenes = 0
	_, err = New(bad, rand.New(rand.NewSource(1)),
		func(r *rand.Rand) int { return 0 }, sumFitness)
	assert.Error(t, err)
}
