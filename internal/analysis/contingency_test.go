package analysis

import (
	"context"
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

func testLine(name, bus0, bus1 string, kv, nominal float64) model.Line {
	return model.Line{Name: name, Bus0: bus0, Bus1: bus1, VoltageKV: kv, NominalFlowMVA: nominal, Conductor: drakeSpec()}
}

// pairNet: two 138 kV lines that are fine together but overload when either
// carries both flows (rating ~215.7 MVA at 25C / 2 ft/s), plus an isolated
// 69 kV line whose loss displaces load nowhere.
func pairNet(t *testing.T) *grid.Simulator {
	t.Helper()
	net, err := grid.NewNetwork([]model.Line{
		testLine("X", "b1", "b2", 138, 120),
		testLine("Y", "b2", "b3", 138, 120),
		testLine("C", "b4", "b5", 69, 20),
	}, nil)
	require.NoError(t, err)
	return grid.NewSimulator(net, baseAmbient())
}

func TestAnalyzeN1RanksCriticalLines(t *testing.T) {
	a := NewAnalyzer(pairNet(t))

	out, err := a.AnalyzeN1(context.Background(), 25, 2, 1.0, map[string]struct{}{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Losing X overloads Y and vice versa; losing C strands its load.
	assert.Equal(t, Contingency{LineName: "X", FailuresCaused: 1}, out[0])
	assert.Equal(t, Contingency{LineName: "Y", FailuresCaused: 1}, out[1])
	assert.Equal(t, Contingency{LineName: "C", FailuresCaused: 0}, out[2])

	for i, c := range out {
		assert.GreaterOrEqual(t, c.FailuresCaused, 0)
		if i > 0 {
			assert.GreaterOrEqual(t, out[i-1].FailuresCaused, c.FailuresCaused)
		}
	}
}

func TestAnalyzeN1SkipsBaselineOfflineLines(t *testing.T) {
	a := NewAnalyzer(pairNet(t))

	out, err := a.AnalyzeN1(context.Background(), 25, 2, 1.0, map[string]struct{}{"X": {}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, c := range out {
		assert.NotEqual(t, "X", c.LineName)
	}
}

func TestAnalyzeN1TopFiveOnly(t *testing.T) {
	lines := make([]model.Line, 0, 7)
	buses := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"}
	for i := 0; i < 7; i++ {
		lines = append(lines, testLine(string(rune('A'+i)), buses[i], buses[i+1], 138, 190))
	}
	net, err := grid.NewNetwork(lines, nil)
	require.NoError(t, err)
	a := NewAnalyzer(grid.NewSimulator(net, baseAmbient()))

	out, err := a.AnalyzeN1(context.Background(), 25, 2, 1.0, map[string]struct{}{})
	require.NoError(t, err)
	assert.Len(t, out, TopContingencies)
	// Any single outage pushes the six survivors past their rating.
	for _, c := range out {
		assert.Equal(t, 6, c.FailuresCaused)
	}
}

func TestAnalyzeN1Cancellation(t *testing.T) {
	a := NewAnalyzer(pairNet(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeN1(ctx, 25, 2, 1.0, map[string]struct{}{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForecast(t *testing.T) {
	a := NewAnalyzer(pairNet(t))

	days := []DayConditions{
		{Day: "Mon", TempC: 25, WindFtSec: 2},
		{Day: "Tue", TempC: 40, WindFtSec: 1},
	}
	out := a.Forecast(days, map[string]struct{}{})
	require.Len(t, out, 2)
	assert.Equal(t, "Mon", out[0].Day)
	assert.False(t, out[0].Failed)
	assert.Zero(t, out[0].PredictedFailures)
}

func TestForecastDayFaultDoesNotAbort(t *testing.T) {
	a := NewAnalyzer(grid.NewSimulator(nil, baseAmbient()))

	out := a.Forecast([]DayConditions{{Day: "Mon", TempC: 25, WindFtSec: 2}}, nil)
	require.Len(t, out, 1)
	assert.True(t, out[0].Failed)
}
