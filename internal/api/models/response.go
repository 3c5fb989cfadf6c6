package models

import (
	"math"
	"sort"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/grid"
	"grid-thermal/internal/model"
	"grid-thermal/internal/remediation"
)

// ErrorResponse is the error envelope every endpoint returns on failure
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// LineState is one line's visible state in a grid status response
type LineState struct {
	StatusColor string  `json:"status_color"`
	Loading     float64 `json:"loading"`
	CurrentMVA  float64 `json:"current_mva"`
	RatingMVA   float64 `json:"rating_mva"`
}

// FailureEntry is one overloaded line in the failure report
type FailureEntry struct {
	Name    string  `json:"name"`
	Loading float64 `json:"loading"`
}

// ReportBody aggregates one simulation run for the client
type ReportBody struct {
	OverallStress float64        `json:"overall_stress"`
	TopNFailures  []FailureEntry `json:"top_n_failures"`
	FailureCount  int            `json:"failure_count"`
	TotalLines    int            `json:"total_lines"`
}

// GridStatusResponse represents the full grid state returned by
// /api/grid-status and /api/cascade-round
type GridStatusResponse struct {
	Lines        map[string]LineState `json:"lines"`
	Buses        map[string]string    `json:"buses"`
	Report       ReportBody           `json:"report"`
	OfflineLines []string             `json:"offline_lines"`
}

// NewGridStatus converts a simulation report into the wire shape, keeping
// the top n failures.
func NewGridStatus(rep *model.GridReport, offline []string, n int) GridStatusResponse {
	lines := make(map[string]LineState, len(rep.Lines))
	for _, l := range rep.Lines {
		lines[l.Name] = LineState{
			StatusColor: l.Color,
			Loading:     round2(l.LoadingPercent),
			CurrentMVA:  round2(l.CurrentMVA),
			RatingMVA:   round2(l.RatingMVA),
		}
	}
	if n > len(rep.Failures) || n < 0 {
		n = len(rep.Failures)
	}
	top := make([]FailureEntry, 0, n)
	for _, f := range rep.Failures[:n] {
		top = append(top, FailureEntry{Name: f.Name, Loading: round2(f.LoadingPercent)})
	}
	if offline == nil {
		offline = []string{}
	}
	return GridStatusResponse{
		Lines: lines,
		Buses: rep.Buses,
		Report: ReportBody{
			OverallStress: round2(rep.OverallStress),
			TopNFailures:  top,
			FailureCount:  rep.FailureCount,
			TotalLines:    rep.TotalLines,
		},
		OfflineLines: offline,
	}
}

// ToggleLineResponse represents the result of a line toggle
type ToggleLineResponse struct {
	LineName     string   `json:"line_name"`
	Status       string   `json:"status"`
	OfflineLines []string `json:"offline_lines"`
}

// ContingencyEntry is one ranked N-1 outage
type ContingencyEntry struct {
	LineName       string `json:"line_name"`
	FailuresCaused int    `json:"failures_caused"`
}

func NewContingencies(list []analysis.Contingency) []ContingencyEntry {
	out := make([]ContingencyEntry, 0, len(list))
	for _, c := range list {
		out = append(out, ContingencyEntry{LineName: c.LineName, FailuresCaused: c.FailuresCaused})
	}
	return out
}

// DayPredictionResponse is one forecast day's predicted outcome. A day
// whose simulation faulted carries the string "Error" in both prediction
// fields, so they are typed loosely.
type DayPredictionResponse struct {
	Day               string `json:"day"`
	PredictedFailures any    `json:"predicted_failures"`
	PredictedStress   any    `json:"predicted_stress"`
}

func NewPredictions(preds []analysis.DayPrediction) []DayPredictionResponse {
	out := make([]DayPredictionResponse, 0, len(preds))
	for _, p := range preds {
		if p.Failed {
			out = append(out, DayPredictionResponse{Day: p.Day, PredictedFailures: "Error", PredictedStress: "Error"})
			continue
		}
		out = append(out, DayPredictionResponse{
			Day:               p.Day,
			PredictedFailures: p.PredictedFailures,
			PredictedStress:   round2(p.PredictedStress),
		})
	}
	return out
}

// PlanAction is one step of a remediation plan
type PlanAction struct {
	Desc  string `json:"desc"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// RemediationResponse represents the outcome of a remediation search
type RemediationResponse struct {
	ID                 string       `json:"id"`
	BaselineFailures   int          `json:"baseline_failures"`
	RemediatedFailures int          `json:"remediated_failures"`
	Cost               int          `json:"cost"`
	Plan               []PlanAction `json:"plan"`
}

func NewRemediation(out *remediation.Outcome) RemediationResponse {
	plan := make([]PlanAction, 0, len(out.Plan))
	for _, a := range out.Plan {
		pa := PlanAction{Desc: model.FormatAction(a), Type: string(a.Type)}
		switch a.Type {
		case model.ActionReroute:
			pa.Value = a.Line
		case model.ActionCurtail:
			pa.Value = a.Fraction
		default:
			pa.Value = ""
		}
		plan = append(plan, pa)
	}
	return RemediationResponse{
		ID:                 out.ID,
		BaselineFailures:   out.BaselineFailures,
		RemediatedFailures: out.RemediatedFailures,
		Cost:               out.Cost,
		Plan:               plan,
	}
}

// MapBus is one bus coordinate record for the map layer
type MapBus struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func NewMapBuses(coords []grid.BusCoord) []MapBus {
	out := make([]MapBus, 0, len(coords))
	for _, b := range coords {
		out = append(out, MapBus{Name: b.Name, X: b.X, Y: b.Y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
