// Package analysis ranks what-if topology scenarios: N-1 contingency
// screening and multi-day ambient forecasts, both built on repeated
// simulator runs.
package analysis

import (
	"context"
	"sort"

	"grid-thermal/internal/grid"
)

// TopContingencies is how many ranked outages an analysis reports.
const TopContingencies = 5

// Contingency is one ranked N-1 outcome: the line taken out and how many
// additional overloads that caused beyond the baseline.
type Contingency struct {
	LineName       string
	FailuresCaused int
}

// Analyzer runs contingency and forecast studies against one simulator.
// It never mutates session state; callers hand it an offline-set snapshot.
type Analyzer struct {
	sim *grid.Simulator
}

func NewAnalyzer(sim *grid.Simulator) *Analyzer {
	return &Analyzer{sim: sim}
}

// AnalyzeN1 simulates the loss of every in-service line on top of the
// baseline topology and returns the TopContingencies worst, ordered by
// additional failures caused (ties keep topology order). Impact is clamped
// at zero: an outage that happens to reduce failures is not a negative
// contingency.
//
// This is one simulator run per line, O(L^2) in line count. Fine for the
// topologies this serves (tens of lines); revisit before pointing it at a
// regional model. ctx is checked between runs.
func (a *Analyzer) AnalyzeN1(ctx context.Context, tempC, windFtSec, loadMult float64, baseline map[string]struct{}) ([]Contingency, error) {
	base, err := a.sim.Simulate(tempC, windFtSec, loadMult, baseline)
	if err != nil {
		return nil, err
	}

	var out []Contingency
	for _, name := range a.sim.Network().LineNames() {
		if _, off := baseline[name]; off {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		trial := make(map[string]struct{}, len(baseline)+1)
		for k := range baseline {
			trial[k] = struct{}{}
		}
		trial[name] = struct{}{}

		rep, err := a.sim.Simulate(tempC, windFtSec, loadMult, trial)
		if err != nil {
			return nil, err
		}
		caused := rep.FailureCount - base.FailureCount
		if caused < 0 {
			caused = 0
		}
		out = append(out, Contingency{LineName: name, FailuresCaused: caused})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FailuresCaused > out[j].FailuresCaused
	})
	if len(out) > TopContingencies {
		out = out[:TopContingencies]
	}
	return out, nil
}
