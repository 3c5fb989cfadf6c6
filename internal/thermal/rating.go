// Package thermal implements the IEEE-738 steady-state thermal rating of
// bare overhead conductors in US units (heat terms in W/ft, resistance in
// ohms/ft, wind in ft/s, diameter in inches).
package thermal

import (
	"fmt"
	"math"

	"grid-thermal/internal/model"
)

// PhysicsError marks a rating computation fault: invalid inputs, or a heat
// balance term that evaluated to a degenerate value.
type PhysicsError struct {
	Reason string
	Err    error
}

func (e *PhysicsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("thermal rating: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("thermal rating: %s", e.Reason)
}

func (e *PhysicsError) Unwrap() error { return e.Err }

// Rating computes the steady-state ampacity of a conductor at its max
// operating temperature under the given ambient conditions.
//
// The heat balance solved is qc + qr = qs + I**2 * R(Tc), giving
// I = sqrt((qc + qr - qs) / R(Tc)). A negative radicand clamps to zero:
// the conductor is cooling, a rating of 0 A is reported rather than an
// imaginary current.
func Rating(cond model.ConductorSpec, amb model.AmbientConditions) (float64, error) {
	if err := cond.Validate(); err != nil {
		return 0, &PhysicsError{Reason: "invalid conductor", Err: err}
	}
	if err := amb.Validate(); err != nil {
		return 0, &PhysicsError{Reason: "invalid ambient conditions", Err: err}
	}

	c := calc{cond: cond, amb: amb, tc: cond.MaxOperatingTempC}

	qc := c.convectionLoss()
	qs, err := c.solarGain()
	if err != nil {
		return 0, err
	}
	qr := c.radiatedLoss()
	rTc := c.resistanceAtTc()

	if qs == 0 {
		return 0, &PhysicsError{Reason: "solar heat gain is zero"}
	}
	if qr == 0 {
		return 0, &PhysicsError{Reason: "radiated heat loss is zero"}
	}

	var amps float64
	if rad := qc + qr - qs; rad > 0 {
		amps = math.Sqrt(rad / rTc)
	}
	return amps * float64(cond.Bundle()), nil
}

// MVA converts an ampacity to a three-phase MVA rating at the given
// line-to-line voltage.
func MVA(amps, voltageKV float64) float64 {
	return math.Sqrt(3) * amps * voltageKV * 1e-3
}

// calc carries the working state of one rating evaluation. tc starts at the
// conductor's max operating temperature and may be nudged above ambient by
// the natural-convection guard; every term computed after the guard sees
// the nudged value, matching the reference implementation term by term.
type calc struct {
	cond model.ConductorSpec
	amb  model.AmbientConditions
	tc   float64
}

func (c *calc) filmTemp() float64 { return (c.tc + c.amb.TempC) / 2 }

// airDensity in lb/ft^3 at the film temperature, corrected for elevation.
func (c *calc) airDensity() float64 {
	he := c.amb.ElevationFt
	return (0.080695 - 2.901e-6*he + 3.7e-11*he*he) / (1 + 0.00367*c.filmTemp())
}

// airViscosity in lb/(ft*hr) at the film temperature.
func (c *calc) airViscosity() float64 {
	tf := c.filmTemp()
	return 0.00353 * math.Pow(tf+273.0, 1.5) / (tf + 383.4)
}

// airConductivity in W/(ft*degC) at the film temperature.
func (c *calc) airConductivity() float64 {
	tf := c.filmTemp()
	return 7.388e-3 + 2.279e-5*tf - 1.343e-9*tf*tf
}

// naturalConvectionLoss is the zero-wind convective loss in W/ft. If the
// conductor temperature sits below ambient it is clamped to ambient plus
// 0.1 degC to keep the 1.25-power term real; this is a numerical guard,
// not a valid physical state.
func (c *calc) naturalConvectionLoss() float64 {
	pf := c.airDensity()
	if c.tc-c.amb.TempC < 0 {
		c.tc = c.amb.TempC + 0.1
	}
	return 0.283 * math.Sqrt(pf) * math.Pow(c.cond.DiameterIn, 0.75) *
		math.Pow(c.tc-c.amb.TempC, 1.25)
}

// forcedConvectionLoss is the wind-driven convective loss in W/ft, taking
// the larger of the low- and high-Reynolds correlations, scaled by the
// wind direction factor Kangle.
func (c *calc) forcedConvectionLoss() float64 {
	d := c.cond.DiameterIn
	vWind := c.amb.WindFtSec * 3600.0 // ft/hr
	pf := c.airDensity()
	uf := c.airViscosity()
	kf := c.airConductivity()
	dt := c.tc - c.amb.TempC

	re := d * pf * vWind / uf
	qc1 := (1.01 + 0.371*math.Pow(re, 0.52)) * kf * dt
	qc2 := 0.1695 * math.Pow(re, 0.6) * kf * dt

	w := deg2rad(90 - c.amb.WindAngleDeg)
	kAngle := 1.194 - math.Sin(w) - 0.194*math.Cos(2*w) + 0.368*math.Sin(2*w)

	return math.Max(qc1*kAngle, qc2*kAngle)
}

func (c *calc) convectionLoss() float64 {
	// Natural first: it owns the Tc clamp, which the forced terms then see.
	qcn := c.naturalConvectionLoss()
	qcf := c.forcedConvectionLoss()
	return math.Max(qcn, qcf)
}

// radiatedLoss is the Stefan-Boltzmann-style loss in W/ft.
func (c *calc) radiatedLoss() float64 {
	tcK := (c.tc + 273.0) / 100.0
	taK := (c.amb.TempC + 273.0) / 100.0
	return 0.138 * c.cond.DiameterIn * c.amb.Emissivity *
		(math.Pow(tcK, 4) - math.Pow(taK, 4))
}

// resistanceAtTc linearly interpolates the conductor resistance between the
// two reference points, evaluated at the working conductor temperature.
func (c *calc) resistanceAtTc() float64 {
	k := c.cond
	return k.RLoOhmsPerFt +
		(k.RHiOhmsPerFt-k.RLoOhmsPerFt)/(k.THiC-k.TLoC)*(c.tc-k.TLoC)
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180.0 }
func rad2deg(rad float64) float64 { return rad * 180.0 / math.Pi }
