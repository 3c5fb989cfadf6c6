package model

import "errors"

// Direction is the horizontal orientation of a conductor span.
type Direction string

const (
	DirectionEastWest   Direction = "EastWest"
	DirectionNorthSouth Direction = "NorthSouth"
)

// Atmosphere selects the solar-flux polynomial fit.
type Atmosphere string

const (
	AtmosphereClear      Atmosphere = "Clear"
	AtmosphereIndustrial Atmosphere = "Industrial"
)

// DefaultDate is the day-of-year used when no date is supplied.
const DefaultDate = "12 Jun"

// AmbientConditions describes the environment a rating is computed under.
// Units:
// - TempC: deg C
// - WindFtSec: ft/s
// - WindAngleDeg: degrees between wind and conductor, 0-90
// - ElevationFt: ft above sea level
// - LatitudeDeg: degrees
// - SunTimeHour: hour of day, 0-24
// - Date: day of year as "12 Jun"; empty means DefaultDate
type AmbientConditions struct {
	TempC        float64
	WindFtSec    float64
	WindAngleDeg float64
	ElevationFt  float64
	LatitudeDeg  float64
	SunTimeHour  float64
	Date         string
	Emissivity   float64
	Absorptivity float64
	Direction    Direction
	Atmosphere   Atmosphere
}

func (a AmbientConditions) Validate() error {
	if a.Emissivity < 0 || a.Emissivity > 1 {
		return errors.New("Emissivity must be in [0, 1]")
	}
	if a.Absorptivity < 0 || a.Absorptivity > 1 {
		return errors.New("Absorptivity must be in [0, 1]")
	}
	switch a.Direction {
	case DirectionEastWest, DirectionNorthSouth:
	default:
		return errors.New("Direction must be EastWest or NorthSouth")
	}
	switch a.Atmosphere {
	case AtmosphereClear, AtmosphereIndustrial:
	default:
		return errors.New("Atmosphere must be Clear or Industrial")
	}
	return nil
}

// DateOrDefault returns the configured date, falling back to DefaultDate.
func (a AmbientConditions) DateOrDefault() string {
	if a.Date == "" {
		return DefaultDate
	}
	return a.Date
}
