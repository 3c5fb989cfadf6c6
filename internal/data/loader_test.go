package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fixturePaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		Lines: writeFixture(t, dir, "lines.csv",
			"name,bus0,bus1,conductor,MOT\n"+
				"L1,B1,B2,DRAKE,75\n"+
				"L2,B2,B3,DRAKE,75\n"),
		Buses: writeFixture(t, dir, "buses.csv",
			"name,v_nom,x,y\n"+
				"B1,138,-155.1,19.7\n"+
				"B2,138,-155.2,19.8\n"+
				"B3,69,-155.3,19.9\n"),
		Flows: writeFixture(t, dir, "flows.csv",
			"name,p0_nominal\n"+
				"L1,52.5\n"+
				"L2,48.1\n"),
		Conductors: writeFixture(t, dir, "conductors.csv",
			"ConductorName,RES_25C,RES_50C,CDRAD_in\n"+
				"DRAKE,0.1166,0.1278,0.554\n"),
	}
}

func TestLoadJoinsTopology(t *testing.T) {
	net, err := Load(fixturePaths(t))
	require.NoError(t, err)

	require.Len(t, net.Lines, 2)
	l1 := net.Lines[0]
	assert.Equal(t, "L1", l1.Name)
	assert.Equal(t, "B1", l1.Bus0)
	assert.Equal(t, "B2", l1.Bus1)
	assert.Equal(t, 138.0, l1.VoltageKV) // from bus0
	assert.Equal(t, 52.5, l1.NominalFlowMVA)

	cond := l1.Conductor
	assert.Equal(t, "DRAKE", cond.Name)
	assert.InDelta(t, 0.1166/5280, cond.RLoOhmsPerFt, 1e-12)
	assert.InDelta(t, 0.1278/5280, cond.RHiOhmsPerFt, 1e-12)
	assert.InDelta(t, 1.108, cond.DiameterIn, 1e-9) // radius doubled
	assert.Equal(t, 75.0, cond.MaxOperatingTempC)
	assert.NoError(t, cond.Validate())

	require.Len(t, net.BusCoords, 3)
	assert.Equal(t, "B1", net.BusCoords[0].Name)
	assert.InDelta(t, -155.1, net.BusCoords[0].X, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	p := fixturePaths(t)
	p.Flows = filepath.Join(t.TempDir(), "nope.csv")
	_, err := Load(p)
	require.Error(t, err)
	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestLoadMissingColumn(t *testing.T) {
	p := fixturePaths(t)
	p.Buses = writeFixture(t, t.TempDir(), "buses.csv", "name,voltage\nB1,138\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v_nom")
}

func TestLoadBrokenJoins(t *testing.T) {
	t.Run("unknown bus", func(t *testing.T) {
		p := fixturePaths(t)
		p.Lines = writeFixture(t, t.TempDir(), "lines.csv",
			"name,bus0,bus1,conductor,MOT\nL1,GHOST,B2,DRAKE,75\n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GHOST")
	})

	t.Run("unknown conductor", func(t *testing.T) {
		p := fixturePaths(t)
		p.Lines = writeFixture(t, t.TempDir(), "lines.csv",
			"name,bus0,bus1,conductor,MOT\nL1,B1,B2,UNOBTANIUM,75\n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UNOBTANIUM")
	})

	t.Run("missing flow", func(t *testing.T) {
		p := fixturePaths(t)
		p.Lines = writeFixture(t, t.TempDir(), "lines.csv",
			"name,bus0,bus1,conductor,MOT\nL9,B1,B2,DRAKE,75\n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nominal flow")
	})

	t.Run("duplicate line name", func(t *testing.T) {
		p := fixturePaths(t)
		p.Lines = writeFixture(t, t.TempDir(), "lines.csv",
			"name,bus0,bus1,conductor,MOT\nL1,B1,B2,DRAKE,75\nL1,B2,B3,DRAKE,75\n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})
}

func TestLoadBadNumber(t *testing.T) {
	p := fixturePaths(t)
	p.Flows = writeFixture(t, t.TempDir(), "flows.csv", "name,p0_nominal\nL1,high\nL2,48.1\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p0_nominal")
}
