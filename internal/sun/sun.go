// Package sun implements a medium-precision geocentric solar position
// model (mean longitude, mean anomaly, equation of center, obliquity)
// and the topocentric transform to horizontal coordinates.
//
// Accuracy is on the order of a minute of time for horizon crossings,
// well under a degree in azimuth.
package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// Threshold altitudes, in degrees of geometric altitude of the Sun's
// center, applied by the crossing solver.
const (
	// RiseSetAltitude accounts for standard refraction plus the solar
	// semi-diameter: the upper limb touches the horizon when the center
	// is about 50 arc minutes below it.
	RiseSetAltitude = -50.0 / 60.0

	CivilTwilightAltitude        = -6.0
	NauticalTwilightAltitude     = -12.0
	AstronomicalTwilightAltitude = -18.0

	// MagicHourLow and MagicHourHigh bound the golden/blue lighting band.
	MagicHourLow  = -4.0
	MagicHourHigh = 6.0
)

// Equatorial holds geocentric equatorial coordinates in degrees.
// RA is kept in degrees (0-360) to stay consistent with the rest of the
// internal math.
type Equatorial struct {
	RA  float64
	Dec float64
}

// EclipticLongitude returns the Sun's geometric ecliptic longitude at t,
// in degrees [0, 360).
func EclipticLongitude(t time.Time) float64 {
	lon, _ := eclipticCoords(timeutil.JulianCenturiesTT(t))
	return lon
}

// eclipticCoords returns the Sun's true ecliptic longitude and the mean
// obliquity of the ecliptic, both in degrees, for TT centuries T.
func eclipticCoords(T float64) (lon, eps float64) {
	// Mean longitude and mean anomaly of the Sun.
	L0 := timeutil.Normalize360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := timeutil.Normalize360(357.52911 + 35999.05029*T - 0.0001537*T*T)

	// Equation of center.
	C := (1.914602-0.004817*T-0.000014*T*T)*timeutil.SinD(M) +
		(0.019993-0.000101*T)*timeutil.SinD(2*M) +
		0.000289*timeutil.SinD(3*M)

	lon = timeutil.Normalize360(L0 + C)
	eps = 23.4392911 - 0.0130042*T - 0.00000016*T*T
	return lon, eps
}

// Geocentric returns the Sun's geocentric RA/Dec at t.
func Geocentric(t time.Time) Equatorial {
	T := timeutil.JulianCenturiesTT(t)
	lon, eps := eclipticCoords(T)

	lonR := timeutil.Deg2Rad(lon)
	epsR := timeutil.Deg2Rad(eps)

	ra := math.Atan2(math.Cos(epsR)*math.Sin(lonR), math.Cos(lonR))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(epsR) * math.Sin(lonR))

	return Equatorial{
		RA:  timeutil.Rad2Deg(ra),
		Dec: timeutil.Rad2Deg(dec),
	}
}

// Horizontal returns the Sun's geometric altitude and azimuth (degrees)
// for an observer at lat, lon at time t. Azimuth is measured clockwise
// from north, normalized to [0, 360).
func Horizontal(lat, lon float64, t time.Time) (alt, az float64) {
	eq := Geocentric(t)

	raR := timeutil.Deg2Rad(eq.RA)
	decR := timeutil.Deg2Rad(eq.Dec)
	latR := timeutil.Deg2Rad(lat)

	// Hour angle H = LST - RA, wrapped to (-π, π].
	lstR := timeutil.Deg2Rad(timeutil.LocalSiderealDeg(t, lon))
	H := timeutil.WrapPi(lstR - raR)

	sinAlt := math.Sin(latR)*math.Sin(decR) + math.Cos(latR)*math.Cos(decR)*math.Cos(H)
	alt = timeutil.Rad2Deg(math.Asin(sinAlt))

	// atan2 form measures azimuth from south; shift to north-clockwise.
	azS := math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(latR)-math.Tan(decR)*math.Cos(latR))
	az = timeutil.Normalize360(timeutil.Rad2Deg(azS) + 180.0)

	return alt, az
}

// Altitude returns just the geometric altitude in degrees.
func Altitude(lat, lon float64, t time.Time) float64 {
	alt, _ := Horizontal(lat, lon, t)
	return alt
}

// Azimuth returns just the azimuth in degrees [0, 360).
func Azimuth(lat, lon float64, t time.Time) float64 {
	_, az := Horizontal(lat, lon, t)
	return az
}
