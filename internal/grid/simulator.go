// Package grid simulates line loading and stress propagation across a fixed
// transmission network under varying ambient conditions and topology.
package grid

import (
	"errors"
	"log"
	"sort"

	"grid-thermal/internal/model"
	"grid-thermal/internal/thermal"
)

// ErrUnavailable is returned when no topology has been loaded.
var ErrUnavailable = errors.New("grid: topology not loaded")

// Simulator computes a full-grid thermal loading report. It is stateless
// across calls: the offline set is always supplied explicitly and never
// mutated. Safe for concurrent use.
type Simulator struct {
	net *Network
	// base carries the ambient parameters that are not per-request
	// (wind angle, sun position, emissivity, ...). TempC and WindFtSec are
	// overridden on every call.
	base model.AmbientConditions
}

func NewSimulator(net *Network, base model.AmbientConditions) *Simulator {
	return &Simulator{net: net, base: base}
}

// Network exposes the topology for callers that enumerate the line universe.
func (s *Simulator) Network() *Network { return s.net }

// Simulate runs one deterministic pass over the whole grid.
//
// Offline lines carry no load; their scaled nominal flow is displaced onto
// the remaining lines of the same voltage level in proportion to each
// line's share of the active nominal flow at that level. A line whose
// thermal calculation faults is reported with status error and excluded
// from stress aggregation; it never aborts the report.
func (s *Simulator) Simulate(tempC, windFtSec, loadMult float64, offline map[string]struct{}) (*model.GridReport, error) {
	if s == nil || s.net == nil {
		return nil, ErrUnavailable
	}

	amb := s.base
	amb.TempC = tempC
	amb.WindFtSec = windFtSec

	// Displaced load and active capacity share, grouped by voltage level.
	displacedByKV := make(map[float64]float64)
	activeNominalByKV := make(map[float64]float64)
	activeCount := 0
	for _, line := range s.net.Lines {
		if _, off := offline[line.Name]; off {
			displacedByKV[line.VoltageKV] += line.NominalFlowMVA * loadMult
		} else {
			activeNominalByKV[line.VoltageKV] += line.NominalFlowMVA
			activeCount++
		}
	}

	results := make([]model.LineResult, 0, len(s.net.Lines))
	buses := make(map[string]string)

	for _, line := range s.net.Lines {
		if _, off := offline[line.Name]; off {
			results = append(results, model.LineResult{
				Name:   line.Name,
				Bus0:   line.Bus0,
				Bus1:   line.Bus1,
				Status: model.StatusOffline,
				Color:  model.ColorOffline,
			})
			continue
		}

		amps, err := thermal.Rating(line.Conductor, amb)
		if err != nil {
			log.Printf("grid: line %s thermal calculation failed: %v", line.Name, err)
			results = append(results, model.LineResult{
				Name:   line.Name,
				Bus0:   line.Bus0,
				Bus1:   line.Bus1,
				Status: model.StatusError,
				Color:  model.ColorError,
			})
			continue
		}
		ratingMVA := thermal.MVA(amps, line.VoltageKV)

		baseLoad := line.NominalFlowMVA * loadMult
		extraLoad := 0.0
		if total := activeNominalByKV[line.VoltageKV]; total > 0 {
			extraLoad = displacedByKV[line.VoltageKV] * (line.NominalFlowMVA / total)
		}
		currentLoad := baseLoad + extraLoad

		loading := 0.0
		if ratingMVA > 0 {
			loading = (currentLoad/ratingMVA - 1) * 100
		}

		status := model.StatusOK
		switch {
		case loading > 0:
			status = model.StatusOverloaded
		case loading > -15:
			status = model.StatusStressed
		}

		results = append(results, model.LineResult{
			Name:           line.Name,
			Bus0:           line.Bus0,
			Bus1:           line.Bus1,
			LoadingPercent: loading,
			Status:         status,
			Color:          model.ColorOK,
			CurrentMVA:     currentLoad,
			RatingMVA:      ratingMVA,
		})

		if status == model.StatusOverloaded {
			buses[line.Bus0] = model.BusOverloaded
			buses[line.Bus1] = model.BusOverloaded
		}
	}

	// Final coloring and stress aggregation.
	totalStress := 0.0
	var failures []model.LineResult
	for i := range results {
		r := &results[i]
		switch r.Status {
		case model.StatusOffline, model.StatusError:
			// keep black / gray
		case model.StatusOverloaded:
			r.Color = model.ColorOverload
			totalStress += r.LoadingPercent
			failures = append(failures, *r)
		case model.StatusStressed:
			if buses[r.Bus0] == model.BusOverloaded || buses[r.Bus1] == model.BusOverloaded {
				r.Color = model.ColorSecondary
			}
		}
	}

	if activeCount > 0 {
		totalStress /= float64(activeCount)
	} else {
		totalStress = 0
	}

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].LoadingPercent > failures[j].LoadingPercent
	})

	return &model.GridReport{
		Lines:         results,
		Buses:         buses,
		OverallStress: totalStress,
		Failures:      failures,
		FailureCount:  len(failures),
		TotalLines:    len(s.net.Lines),
	}, nil
}
