// Package remediation searches for low-cost corrective action plans that
// eliminate thermal overloads, using the grid simulator as its fitness
// oracle.
package remediation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"grid-thermal/internal/evolve"
	"grid-thermal/internal/grid"
	"grid-thermal/internal/model"
)

// Action costs are planning weights, not engineering data.
const (
	CostRerouteLine = 500
	CostLoadCurtail = 2000 // per LoadCurtailStep
	LoadCurtailStep = 0.05

	MaxActionsPerSolution = 5

	// failureWeight makes failure elimination lexicographically dominant
	// over cost: MaxActionsPerSolution * max(cost) must stay well below it
	// so the two components never bleed into each other.
	failureWeight = 1_000_000

	// faultFailureCount penalizes a candidate whose simulation faulted
	// instead of aborting the search.
	faultFailureCount = 999

	rerouteGeneProb = 0.75
)

// SearchParams are the evolutionary knobs. Zero values fall back to the
// production defaults.
type SearchParams struct {
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	MutationProb   float64
	TournamentSize int
}

func DefaultSearchParams() SearchParams {
	return SearchParams{
		PopulationSize: 50,
		Generations:    30,
		CrossoverProb:  0.6,
		MutationProb:   0.2,
		TournamentSize: 3,
	}
}

func (p SearchParams) withDefaults() SearchParams {
	def := DefaultSearchParams()
	if p.PopulationSize == 0 {
		p.PopulationSize = def.PopulationSize
	}
	if p.Generations == 0 {
		p.Generations = def.Generations
	}
	if p.CrossoverProb == 0 {
		p.CrossoverProb = def.CrossoverProb
	}
	if p.MutationProb == 0 {
		p.MutationProb = def.MutationProb
	}
	if p.TournamentSize == 0 {
		p.TournamentSize = def.TournamentSize
	}
	return p
}

// Optimizer runs remediation searches against one simulator.
type Optimizer struct {
	sim    *grid.Simulator
	params SearchParams
	rng    *rand.Rand
}

// NewOptimizer builds an optimizer. rng may be nil, in which case a
// time-seeded source is used; tests pass a seeded one for reproducibility.
func NewOptimizer(sim *grid.Simulator, params SearchParams, rng *rand.Rand) *Optimizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Optimizer{sim: sim, params: params.withDefaults(), rng: rng}
}

// Outcome is one remediation result: how bad the baseline was, how bad the
// best plan leaves the grid, what the plan costs, and its deduplicated
// actions.
type Outcome struct {
	ID                 string
	BaselineFailures   int
	RemediatedFailures int
	Cost               int
	Plan               []model.RemedialAction
}

// Optimize searches for the cheapest action plan for the given baseline
// state. A baseline with no failures short-circuits: the search is never
// started and an informational empty plan is returned. Cancellation via
// ctx stops the search at the next generation boundary and the best plan
// found so far is returned.
func (o *Optimizer) Optimize(ctx context.Context, tempC, windFtSec, loadMult float64, baseline map[string]struct{}) (*Outcome, error) {
	base, err := o.sim.Simulate(tempC, windFtSec, loadMult, baseline)
	if err != nil {
		return nil, fmt.Errorf("remediation baseline: %w", err)
	}

	out := &Outcome{ID: uuid.NewString(), BaselineFailures: base.FailureCount}
	if base.FailureCount == 0 {
		out.Plan = []model.RemedialAction{{
			Type:    model.ActionInfo,
			Message: "No failures detected. No action required.",
		}}
		return out, nil
	}

	lineNames := o.sim.Network().LineNames()
	eng, err := evolve.New(evolve.Config{
		PopulationSize: o.params.PopulationSize,
		Generations:    o.params.Generations,
		MinGenes:       1,
		MaxGenes:       MaxActionsPerSolution,
		CrossoverProb:  o.params.CrossoverProb,
		MutationProb:   o.params.MutationProb,
		TournamentSize: o.params.TournamentSize,
	}, o.rng,
		func(r *rand.Rand) model.RemedialAction {
			if r.Float64() < rerouteGeneProb {
				return model.Reroute(lineNames[r.Intn(len(lineNames))])
			}
			return model.Curtail(LoadCurtailStep)
		},
		func(genome []model.RemedialAction) float64 {
			return o.score(genome, tempC, windFtSec, loadMult, baseline)
		})
	if err != nil {
		return nil, err
	}

	res := eng.Run(ctx)

	out.RemediatedFailures = int(res.Score) / failureWeight
	out.Cost = int(res.Score) % failureWeight
	out.Plan = dedupe(res.Best, baseline)
	return out, nil
}

// score is the minimized fitness: failures weighted lexicographically above
// plan cost. Reroutes already offline in the working set are free; every
// curtail gene costs its full step. A faulting simulation penalizes the
// candidate rather than failing the search.
func (o *Optimizer) score(genome []model.RemedialAction, tempC, windFtSec, loadMult float64, baseline map[string]struct{}) float64 {
	cost := 0
	load := loadMult
	offline := make(map[string]struct{}, len(baseline)+len(genome))
	for k := range baseline {
		offline[k] = struct{}{}
	}

	for _, a := range genome {
		switch a.Type {
		case model.ActionReroute:
			if _, dup := offline[a.Line]; !dup {
				cost += CostRerouteLine
				offline[a.Line] = struct{}{}
			}
		case model.ActionCurtail:
			cost += CostLoadCurtail
			load -= a.Fraction
		}
	}

	failures := faultFailureCount
	if rep, err := o.sim.Simulate(tempC, windFtSec, load, offline); err == nil {
		failures = rep.FailureCount
	}
	return float64(failures*failureWeight + cost)
}

// dedupe compresses the winning genome into a presentable plan: reroutes
// already offline in the baseline or repeated within the plan are dropped
// (first occurrence wins), and all curtail steps merge into one aggregate
// action.
func dedupe(genome []model.RemedialAction, baseline map[string]struct{}) []model.RemedialAction {
	var plan []model.RemedialAction
	seen := make(map[string]struct{})
	totalCurtail := 0.0

	for _, a := range genome {
		switch a.Type {
		case model.ActionReroute:
			if _, off := baseline[a.Line]; off {
				continue
			}
			if _, dup := seen[a.Line]; dup {
				continue
			}
			seen[a.Line] = struct{}{}
			plan = append(plan, a)
		case model.ActionCurtail:
			totalCurtail += a.Fraction
		}
	}
	if totalCurtail > 0 {
		plan = append(plan, model.Curtail(totalCurtail))
	}
	return plan
}
