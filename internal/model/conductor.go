package model

import "errors"

// ConductorSpec defines the physical parameters of an overhead conductor.
// Units:
// - RLoOhmsPerFt / RHiOhmsPerFt: ohms/ft (beware: library tables use ohms/mile)
// - TLoC / THiC: deg C reference temperatures for the two resistances
// - DiameterIn: inches
// - MaxOperatingTempC: deg C, the conductor temperature the rating is computed at
type ConductorSpec struct {
	Name              string
	TLoC              float64
	RLoOhmsPerFt      float64
	THiC              float64
	RHiOhmsPerFt      float64
	DiameterIn        float64
	MaxOperatingTempC float64

	// ConductorsPerBundle multiplies the single-conductor rating.
	// Zero is treated as 1.
	ConductorsPerBundle int
}

// maxPlausibleOhmsPerFt guards against per-mile resistances being passed
// through unconverted. Real conductors are well under 1 mOhm/ft.
const maxPlausibleOhmsPerFt = 0.001

func (c ConductorSpec) Validate() error {
	if c.DiameterIn <= 0 {
		return errors.New("DiameterIn must be > 0")
	}
	if c.RLoOhmsPerFt <= 0 || c.RHiOhmsPerFt <= 0 {
		return errors.New("reference resistances must be > 0")
	}
	if c.RLoOhmsPerFt > maxPlausibleOhmsPerFt {
		return errors.New("RLo is much higher than expected; units should be ohms/ft")
	}
	if c.RHiOhmsPerFt > maxPlausibleOhmsPerFt {
		return errors.New("RHi is much higher than expected; units should be ohms/ft")
	}
	if c.THiC == c.TLoC {
		return errors.New("reference temperatures must differ")
	}
	if c.ConductorsPerBundle < 0 {
		return errors.New("ConductorsPerBundle must be >= 0")
	}
	return nil
}

// Bundle returns the effective number of conductors per bundle.
func (c ConductorSpec) Bundle() int {
	if c.ConductorsPerBundle <= 0 {
		return 1
	}
	return c.ConductorsPerBundle
}
