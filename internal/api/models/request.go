package models

// ToggleLineRequest represents the request body for flipping a line's state
type ToggleLineRequest struct {
	LineName string `json:"line_name"`
}

// SimulationBody carries the weather and topology overrides shared by the
// POST simulation endpoints. Omitted fields fall back to server defaults.
type SimulationBody struct {
	Temp     *float64 `json:"temp,omitempty"`
	Wind     *float64 `json:"wind,omitempty"`
	LoadMult *float64 `json:"load_mult,omitempty"`
}

// CascadeRequest represents the request body for a cascade round: the
// offline set is supplied explicitly and the caller's session is untouched.
type CascadeRequest struct {
	SimulationBody
	N                   *int     `json:"n,omitempty"`
	CurrentOfflineLines []string `json:"current_offline_lines,omitempty"`
}

// RemediationRequest represents the request body for a remediation search
type RemediationRequest struct {
	SimulationBody
	BaselineOfflineLines []string `json:"baseline_offline_lines,omitempty"`
}

// ForecastDay is one day of the forecast submitted to /api/predict
type ForecastDay struct {
	Day  string  `json:"day" binding:"required"`
	Temp float64 `json:"temp"`
	Wind float64 `json:"wind"`
}
