package analysis

import "log"

// WorstCaseLoadMult is the peak-of-day load multiplier every forecast day
// is evaluated at.
const WorstCaseLoadMult = 1.15

// DayConditions is one day of an ambient forecast.
type DayConditions struct {
	Day       string
	TempC     float64
	WindFtSec float64
}

// DayPrediction is the predicted grid outcome for one day. Failed is set
// when the simulation for that day faulted; the numeric fields are then
// meaningless.
type DayPrediction struct {
	Day               string
	PredictedFailures int
	PredictedStress   float64
	Failed            bool
}

// Forecast evaluates each day independently at the worst-case load
// multiplier. A day whose simulation faults is reported with Failed set
// instead of aborting the remaining days.
func (a *Analyzer) Forecast(days []DayConditions, offline map[string]struct{}) []DayPrediction {
	out := make([]DayPrediction, 0, len(days))
	for _, d := range days {
		rep, err := a.sim.Simulate(d.TempC, d.WindFtSec, WorstCaseLoadMult, offline)
		if err != nil {
			log.Printf("analysis: forecast for %s failed: %v", d.Day, err)
			out = append(out, DayPrediction{Day: d.Day, Failed: true})
			continue
		}
		out = append(out, DayPrediction{
			Day:               d.Day,
			PredictedFailures: rep.FailureCount,
			PredictedStress:   rep.OverallStress,
		})
	}
	return out
}
