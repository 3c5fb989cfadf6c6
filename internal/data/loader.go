// Package data loads the topology tables and joins them into the
// denormalized per-line view the simulator runs against.
package data

import (
	"fmt"

	"grid-thermal/internal/grid"
	"grid-thermal/internal/model"
)

// Paths locates the four topology CSVs.
type Paths struct {
	Lines      string
	Buses      string
	Flows      string
	Conductors string
}

// LoadError is fatal: the process must refuse to serve simulations until
// the data problem is resolved.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("topology load: %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Reference temperatures of the conductor library's two resistance columns.
const (
	libTLoC = 25
	libTHiC = 50

	feetPerMile = 5280
)

// Load reads and joins the topology: each line picks up its terminal
// voltage from bus0, its nominal flow, and its conductor's thermal
// parameters (per-mile resistances converted to ohms/ft, diameter from the
// radius column). Any missing file, column, or join target is a LoadError.
func Load(p Paths) (*grid.Network, error) {
	linesTab, err := readTable(p.Lines)
	if err != nil {
		return nil, &LoadError{File: p.Lines, Err: err}
	}
	busesTab, err := readTable(p.Buses)
	if err != nil {
		return nil, &LoadError{File: p.Buses, Err: err}
	}
	flowsTab, err := readTable(p.Flows)
	if err != nil {
		return nil, &LoadError{File: p.Flows, Err: err}
	}
	condTab, err := readTable(p.Conductors)
	if err != nil {
		return nil, &LoadError{File: p.Conductors, Err: err}
	}

	if err := linesTab.require("name", "bus0", "bus1", "conductor", "MOT"); err != nil {
		return nil, &LoadError{File: p.Lines, Err: err}
	}
	if err := busesTab.require("name", "v_nom", "x", "y"); err != nil {
		return nil, &LoadError{File: p.Buses, Err: err}
	}
	if err := flowsTab.require("name", "p0_nominal"); err != nil {
		return nil, &LoadError{File: p.Flows, Err: err}
	}
	if err := condTab.require("ConductorName", "RES_25C", "RES_50C", "CDRAD_in"); err != nil {
		return nil, &LoadError{File: p.Conductors, Err: err}
	}

	voltages := make(map[string]float64)
	coords := make([]grid.BusCoord, 0, len(busesTab.rows))
	for _, row := range busesTab.rows {
		v, err := busesTab.float(row, "v_nom")
		if err != nil {
			return nil, &LoadError{File: p.Buses, Err: err}
		}
		x, err := busesTab.float(row, "x")
		if err != nil {
			return nil, &LoadError{File: p.Buses, Err: err}
		}
		y, err := busesTab.float(row, "y")
		if err != nil {
			return nil, &LoadError{File: p.Buses, Err: err}
		}
		name := busesTab.str(row, "name")
		voltages[name] = v
		coords = append(coords, grid.BusCoord{Name: name, X: x, Y: y})
	}

	flows := make(map[string]float64)
	for _, row := range flowsTab.rows {
		v, err := flowsTab.float(row, "p0_nominal")
		if err != nil {
			return nil, &LoadError{File: p.Flows, Err: err}
		}
		flows[flowsTab.str(row, "name")] = v
	}

	conductors := make(map[string]model.ConductorSpec)
	for _, row := range condTab.rows {
		res25, err := condTab.float(row, "RES_25C")
		if err != nil {
			return nil, &LoadError{File: p.Conductors, Err: err}
		}
		res50, err := condTab.float(row, "RES_50C")
		if err != nil {
			return nil, &LoadError{File: p.Conductors, Err: err}
		}
		radius, err := condTab.float(row, "CDRAD_in")
		if err != nil {
			return nil, &LoadError{File: p.Conductors, Err: err}
		}
		name := condTab.str(row, "ConductorName")
		conductors[name] = model.ConductorSpec{
			Name:         name,
			TLoC:         libTLoC,
			RLoOhmsPerFt: res25 / feetPerMile,
			THiC:         libTHiC,
			RHiOhmsPerFt: res50 / feetPerMile,
			DiameterIn:   radius * 2,
		}
	}

	lines := make([]model.Line, 0, len(linesTab.rows))
	for _, row := range linesTab.rows {
		name := linesTab.str(row, "name")
		bus0 := linesTab.str(row, "bus0")
		bus1 := linesTab.str(row, "bus1")

		vnom, ok := voltages[bus0]
		if !ok {
			return nil, &LoadError{File: p.Lines, Err: fmt.Errorf("line %s: unknown bus %q", name, bus0)}
		}
		flow, ok := flows[name]
		if !ok {
			return nil, &LoadError{File: p.Lines, Err: fmt.Errorf("line %s: no nominal flow", name)}
		}
		condName := linesTab.str(row, "conductor")
		cond, ok := conductors[condName]
		if !ok {
			return nil, &LoadError{File: p.Lines, Err: fmt.Errorf("line %s: unknown conductor %q", name, condName)}
		}
		mot, err := linesTab.float(row, "MOT")
		if err != nil {
			return nil, &LoadError{File: p.Lines, Err: err}
		}
		cond.MaxOperatingTempC = mot

		lines = append(lines, model.Line{
			Name:           name,
			Bus0:           bus0,
			Bus1:           bus1,
			VoltageKV:      vnom,
			NominalFlowMVA: flow,
			Conductor:      cond,
		})
	}

	net, err := grid.NewNetwork(lines, coords)
	if err != nil {
		return nil, &LoadError{File: p.Lines, Err: err}
	}
	return net, nil
}
