package thermal

import (
	"math"
	"time"
)

// Solar-flux polynomial fits (W/ft^2 at sea level as a function of solar
// altitude in degrees), ascending order: p[0] + p[1]*x + ... + p[6]*x^6.
var (
	solarFluxClear = [7]float64{
		-3.9241, 5.9276, -1.7856e-1, 3.223e-3, -3.3549e-5, 1.8053e-7, -3.7868e-10,
	}
	solarFluxIndustrial = [7]float64{
		4.9408, 1.3202, 6.1444e-2, -2.9411e-3, 5.07752e-5, -4.03627e-7, 1.22967e-9,
	}
)

func polyval(p [7]float64, x float64) float64 {
	result := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		result = result*x + p[i]
	}
	return result
}

// dayOfYear parses a "12 Jun" style date into days since 1 Jan. The
// reference year is a fixed non-leap year so 12 Jun is always day 162.
func dayOfYear(date string) (int, error) {
	t, err := time.Parse("2 Jan", date)
	if err != nil {
		return 0, err
	}
	return time.Date(1999, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).YearDay() - 1, nil
}

// solarGain computes qs in W/ft: the solar flux for the atmosphere type at
// the sun's current altitude, projected onto the conductor via the angle
// between the sun's azimuth and the span direction, and corrected for
// elevation.
func (c *calc) solarGain() (float64, error) {
	n, err := dayOfYear(c.amb.DateOrDefault())
	if err != nil {
		return 0, &PhysicsError{Reason: "invalid date", Err: err}
	}

	lat := c.amb.LatitudeDeg
	hourAngle := (c.amb.SunTimeHour - 12.0) * 15.0
	decl := 23.4583 * math.Sin(deg2rad((284.0+float64(n))/365.0*360.0))

	// Solar altitude, equation 15.
	hc := rad2deg(math.Asin(
		math.Cos(deg2rad(lat))*math.Cos(deg2rad(decl))*math.Cos(deg2rad(hourAngle)) +
			math.Sin(deg2rad(lat))*math.Sin(deg2rad(decl))))

	flux := solarFluxClear
	if c.amb.Atmosphere == "Industrial" {
		flux = solarFluxIndustrial
	}
	qsFlux := polyval(flux, hc)

	zc := solarAzimuth(lat, hourAngle, decl)

	// Span axis: a conductor running east-west faces the sun broadside at
	// an azimuth 90 degrees off a north-south span.
	z1 := 0.0
	if c.amb.Direction == "EastWest" {
		z1 = 90.0
	}
	theta := math.Acos(math.Cos(deg2rad(hc)) * math.Cos(deg2rad(zc-z1)))

	he := c.amb.ElevationFt
	area := c.cond.DiameterIn / 12.0 // projected ft^2 per ft of span
	qs := c.amb.Absorptivity * qsFlux * math.Sin(theta) * area *
		(1.0 + 3.5e-5*he - 1.0e-9*he*he)
	return qs, nil
}

// solarAzimuth returns Zc in degrees, with the quadrant constant from
// Table 3 resolving the arctangent ambiguity by hour-angle sign.
func solarAzimuth(lat, hourAngle, decl float64) float64 {
	x := math.Sin(deg2rad(hourAngle)) /
		(math.Sin(deg2rad(lat))*math.Cos(deg2rad(hourAngle)) -
			math.Cos(deg2rad(lat))*math.Tan(deg2rad(decl)))

	var cc float64
	if hourAngle < 0 {
		if x >= 0 {
			cc = 0
		} else {
			cc = 180
		}
	} else {
		if x >= 0 {
			cc = 180
		} else {
			cc = 360
		}
	}
	return cc + rad2deg(math.Atan(x))
}
