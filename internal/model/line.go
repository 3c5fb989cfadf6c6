package model

// Line is one transmission line in the denormalized topology view:
// line endpoints joined with the terminal voltage, the nominal power flow,
// and the conductor's thermal parameters. Immutable after load.
type Line struct {
	Name           string
	Bus0           string
	Bus1           string
	VoltageKV      float64
	NominalFlowMVA float64
	Conductor      ConductorSpec
}

// LineStatus classifies one line's outcome in a simulation run.
type LineStatus string

const (
	StatusOK         LineStatus = "ok"
	StatusStressed   LineStatus = "stressed"
	StatusOverloaded LineStatus = "overloaded"
	StatusOffline    LineStatus = "offline"
	StatusError      LineStatus = "error"
)

// Display colors for the map layer. Keep these values stable; the frontend
// consumes them verbatim.
const (
	ColorOK        = "green"
	ColorOverload  = "red"
	ColorSecondary = "orange"
	ColorOffline   = "black"
	ColorError     = "gray"
)

// LineResult is the per-line outcome of one simulation.
// LoadingPercent is relative to the thermal rating: 0 means exactly at
// rating, negative means margin below it.
type LineResult struct {
	Name           string
	Bus0           string
	Bus1           string
	LoadingPercent float64
	Status         LineStatus
	Color          string
	CurrentMVA     float64
	RatingMVA      float64
}

// BusOverloaded marks a bus touched by at least one overloaded line.
const BusOverloaded = "overloaded"

// GridReport aggregates one simulation run.
type GridReport struct {
	Lines []LineResult
	// Buses maps bus name -> status for buses touching an overloaded line.
	Buses map[string]string
	// OverallStress is the summed overload percentage of failed lines
	// normalized by the active line count.
	OverallStress float64
	// Failures holds all overloaded lines, worst loading first.
	Failures     []LineResult
	FailureCount int
	TotalLines   int
}
