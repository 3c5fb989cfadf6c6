package remediation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-thermal/internal/grid"
	"grid-thermal/internal/model"
)

func drakeSpec() model.ConductorSpec {
	return model.ConductorSpec{
		Name:              "DRAKE_ACSR",
		TLoC:              25,
		RLoOhmsPerFt:      0.1166 / 5280,
		THiC:              50,
		RHiOhmsPerFt:      0.1278 / 5280,
		DiameterIn:        1.108,
		MaxOperatingTempC: 75,
	}
}

func baseAmbient() model.AmbientConditions {
	return model.AmbientConditions{
		WindAngleDeg: 90,
		ElevationFt:  1000,
		LatitudeDeg:  27,
		SunTimeHour:  12,
		Emissivity:   0.8,
		Absorptivity: 0.8,
		Direction:    model.DirectionEastWest,
		Atmosphere:   model.AtmosphereClear,
	}
}

// pairSim: X and Y at 138 kV are healthy together, but either alone
// overloads carrying both flows; C is an independent 69 kV line.
func pairSim(t *testing.T) *grid.Simulator {
	t.Helper()
	mk := func(name, b0, b1 string, kv, nom float64) model.Line {
		return model.Line{Name: name, Bus0: b0, Bus1: b1, VoltageKV: kv, NominalFlowMVA: nom, Conductor: drakeSpec()}
	}
	net, err := grid.NewNetwork([]model.Line{
		mk("X", "b1", "b2", 138, 120),
		mk("Y", "b2", "b3", 138, 120),
		mk("C", "b4", "b5", 69, 20),
	}, nil)
	require.NoError(t, err)
	return grid.NewSimulator(net, baseAmbient())
}

func TestOptimizeHealthyBaselineShortCircuits(t *testing.T) {
	// Absurd generation count: if the search ran at all the test would hang,
	// so a fast return proves the short circuit.
	params := DefaultSearchParams()
	params.Generations = 1 << 30
	opt := NewOptimizer(pairSim(t), params, rand.New(rand.NewSource(1)))

	out, err := opt.Optimize(context.Background(), 25, 2, 1.0, map[string]struct{}{})
	require.NoError(t, err)

	assert.Zero(t, out.BaselineFailures)
	assert.Zero(t, out.RemediatedFailures)
	assert.Zero(t, out.Cost)
	require.Len(t, out.Plan, 1)
	assert.Equal(t, model.ActionInfo, out.Plan[0].Type)
	assert.NotEmpty(t, out.ID)
}

func TestOptimizeEliminatesFailures(t *testing.T) {
	// X offline forces Y into overload. The cheapest full fix is a single
	// reroute of Y (500); rerouting the already-offline X is free and any
	// curtail gene costs 2000, so the search converges on exactly that plan.
	opt := NewOptimizer(pairSim(t), DefaultSearchParams(), rand.New(rand.NewSource(1)))
	baseline := map[string]struct{}{"X": {}}

	out, err := opt.Optimize(context.Background(), 25, 2, 1.0, baseline)
	require.NoError(t, err)

	assert.Equal(t, 1, out.BaselineFailures)
	assert.Zero(t, out.RemediatedFailures)
	assert.Equal(t, CostRerouteLine, out.Cost)
	require.Len(t, out.Plan, 1)
	assert.Equal(t, model.Reroute("Y"), out.Plan[0])
	assert.LessOrEqual(t, out.RemediatedFailures, out.BaselineFailures)
}

func TestOptimizeBaselineUnavailable(t *testing.T) {
	opt := NewOptimizer(grid.NewSimulator(nil, baseAmbient()), DefaultSearchParams(), rand.New(rand.NewSource(1)))
	_, err := opt.Optimize(context.Background(), 25, 2, 1.0, map[string]struct{}{})
	assert.ErrorIs(t, err, grid.ErrUnavailable)
}

func TestScoreDecomposition(t *testing.T) {
	opt := NewOptimizer(pairSim(t), DefaultSearchParams(), rand.New(rand.NewSource(1)))
	baseline := map[string]struct{}{"X": {}}

	// Reroute Y fixes the overload; duplicate and baseline reroutes are
	// free; the curtail gene charges its full step.
	genome := []model.RemedialAction{
		model.Reroute("Y"),
		model.Reroute("Y"),
		model.Reroute("X"),
		model.Curtail(LoadCurtailStep),
	}
	score := opt.score(genome, 25, 2, 1.0, baseline)
	assert.Equal(t, float64(0*failureWeight+CostRerouteLine+CostLoadCurtail), score)

	// An empty-fix genome keeps the baseline failure in the weighted term.
	score = opt.score([]model.RemedialAction{model.Reroute("X")}, 25, 2, 1.0, baseline)
	assert.Equal(t, float64(1*failureWeight+0), score)
}

func TestDedupeProperties(t *testing.T) {
	baseline := map[string]struct{}{"X": {}}
	genome := []model.RemedialAction{
		model.Reroute("Y"),
		model.Reroute("X"), // already offline in baseline
		model.Reroute("Y"), // repeat
		model.Curtail(LoadCurtailStep),
		model.Reroute("C"),
		model.Curtail(LoadCurtailStep),
	}
	plan := dedupe(genome, baseline)

	reroutes := map[string]int{}
	curtails := 0
	total := 0.0
	for _, a := range plan {
		switch a.Type {
		case model.ActionReroute:
			reroutes[a.Line]++
			assert.NotContains(t, baseline, a.Line)
		case model.ActionCurtail:
			curtails++
			total += a.Fraction
		}
	}
	for line, n := range reroutes {
		assert.Equal(t, 1, n, "duplicate reroute for %s", line)
	}
	assert.Equal(t, 1, curtails)
	assert.InDelta(t, 2*LoadCurtailStep, total, 1e-12)
	// First occurrences keep their order; the merged curtail goes last.
	require.Len(t, plan, 3)
	assert.Equal(t, model.Reroute("Y"), plan[0])
	assert.Equal(t, model.Reroute("C"), plan[1])
	assert.Equal(t, model.ActionCurtail, plan[2].Type)
}

func TestDedupeNoCurtail(t *testing.T) {
	plan := dedupe([]model.RemedialAction{model.Reroute("Y")}, map[string]struct{}{})
	require.Len(t, plan, 1)
	assert.Equal(t, model.ActionReroute, plan[0].Type)
}

func TestCostBoundInvariant(t *testing.T) {
	// Failure elimination must stay lexicographically dominant over cost.
	maxCost := CostRerouteLine
	if CostLoadCurtail > maxCost {
		maxCost = CostLoadCurtail
	}
	assert.Less(t, MaxActionsPerSolution*maxCost, failureWeight)
}

func TestActionFormatRoundTrip(t *testing.T) {
	for _, a := range []model.RemedialAction{
		model.Reroute("L-10"),
		model.Curtail(LoadCurtailStep),
		model.Curtail(3 * LoadCurtailStep),
	} {
		back, err := model.ParseAction(model.FormatAction(a))
		require.NoError(t, err)
		assert.Equal(t, a.Type, back.Type)
		assert.Equal(t, a.Line, back.Line)
		assert.InDelta(t, a.Fraction, back.Fraction, 1e-12)
	}
}
