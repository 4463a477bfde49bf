// Package moon implements a truncated-series lunar position model:
// geocentric ecliptic longitude, latitude and distance from the leading
// periodic terms, conversion to equatorial coordinates, and a
// topocentric transform that applies the Moon's horizontal parallax.
//
// The Moon is close enough that the observer's displacement from the
// geocenter shifts its apparent position by up to a degree, so rise/set
// work has to use the topocentric altitude and a per-instant threshold
// derived from the current distance.
package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// SynodicMonth is the mean length of the lunar cycle in days.
const SynodicMonth = 29.530588853

// MeanDistanceKm is the mean Earth-Moon distance.
const MeanDistanceKm = 385000.56

const earthRadiusKm = 6378.14

// Position holds geocentric equatorial coordinates (degrees) and the
// Earth-Moon distance (km).
type Position struct {
	RA       float64
	Dec      float64
	Distance float64
}

// fundamentals returns the Moon's fundamental arguments in degrees for
// TT centuries T: mean longitude L', mean elongation D, Sun mean anomaly
// M, Moon mean anomaly M', argument of latitude F.
func fundamentals(T float64) (Lp, D, M, Mp, F float64) {
	Lp = timeutil.Normalize360(218.3164477 + 481267.88123421*T)
	D = timeutil.Normalize360(297.8501921 + 445267.1114034*T)
	M = timeutil.Normalize360(357.5291092 + 35999.0502909*T)
	Mp = timeutil.Normalize360(134.9633964 + 477198.8675055*T)
	F = timeutil.Normalize360(93.2720950 + 483202.0175233*T)
	return
}

// Ecliptic returns the Moon's geocentric ecliptic longitude and latitude
// (degrees) and distance (km) at t, from the dominant periodic terms.
func Ecliptic(t time.Time) (lon, lat, dist float64) {
	T := timeutil.JulianCenturiesTT(t)
	Lp, D, M, Mp, F := fundamentals(T)

	// Longitude: the handful of terms that dominate the series.
	lon = Lp +
		6.288774*timeutil.SinD(Mp) +
		1.274027*timeutil.SinD(2*D-Mp) +
		0.658314*timeutil.SinD(2*D) +
		0.213618*timeutil.SinD(2*Mp) -
		0.185116*timeutil.SinD(M) -
		0.114332*timeutil.SinD(2*F) +
		0.058793*timeutil.SinD(2*D-2*Mp) +
		0.057066*timeutil.SinD(2*D-M-Mp)
	lon = timeutil.Normalize360(lon)

	// Latitude.
	lat = 5.128122*timeutil.SinD(F) +
		0.280602*timeutil.SinD(Mp+F) +
		0.277693*timeutil.SinD(Mp-F) +
		0.173237*timeutil.SinD(2*D-F) +
		0.055413*timeutil.SinD(2*D-Mp+F) +
		0.046271*timeutil.SinD(2*D-Mp-F)

	// Distance in km.
	dist = MeanDistanceKm -
		20905.355*timeutil.CosD(Mp) -
		3699.111*timeutil.CosD(2*D-Mp) -
		2955.968*timeutil.CosD(2*D) -
		569.925*timeutil.CosD(2*Mp) +
		246.158*timeutil.CosD(2*D-2*Mp) -
		204.586*timeutil.CosD(2*D-M)

	return lon, lat, dist
}

// EclipticLongitude returns just the ecliptic longitude in degrees.
func EclipticLongitude(t time.Time) float64 {
	lon, _, _ := Ecliptic(t)
	return lon
}

// Geocentric returns the Moon's geocentric RA/Dec and distance at t.
func Geocentric(t time.Time) Position {
	lonD, latD, dist := Ecliptic(t)

	lon := timeutil.Deg2Rad(lonD)
	lat := timeutil.Deg2Rad(latD)
	eps := timeutil.Deg2Rad(23.4392911 - 0.0130042*timeutil.JulianCenturiesTT(t))

	// Ecliptic to equatorial via direction cosines.
	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)

	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	ra := math.Atan2(yEq, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return Position{
		RA:       timeutil.Rad2Deg(ra),
		Dec:      timeutil.Rad2Deg(math.Asin(zEq)),
		Distance: dist,
	}
}

// ParallaxDeg returns the Moon's equatorial horizontal parallax in
// degrees for the given distance.
func ParallaxDeg(distanceKm float64) float64 {
	if distanceKm <= earthRadiusKm {
		// Invalid distance, clamp to something harmless.
		return 1.0
	}
	return timeutil.Rad2Deg(math.Asin(earthRadiusKm / distanceKm))
}

// RiseSetAltitude returns the apparent-altitude threshold (degrees) that
// defines moonrise and moonset at t. It varies with the Moon's distance:
// h0 = 0.7275·parallax folds together the parallax-corrected semi-diameter
// terms; refraction is handled in the apparent altitude itself.
func RiseSetAltitude(t time.Time) float64 {
	return 0.7275 * ParallaxDeg(Geocentric(t).Distance)
}

// Horizontal returns the Moon's apparent topocentric altitude and
// azimuth (degrees) for an observer at lat, lon at time t. Altitude
// includes the parallax correction and standard refraction; azimuth is
// measured clockwise from north, normalized to [0, 360).
func Horizontal(lat, lon float64, t time.Time) (alt, az float64) {
	pos := Geocentric(t)

	raR := timeutil.Deg2Rad(pos.RA)
	decR := timeutil.Deg2Rad(pos.Dec)
	latR := timeutil.Deg2Rad(lat)

	lstR := timeutil.Deg2Rad(timeutil.LocalSiderealDeg(t, lon))
	H := timeutil.WrapPi(lstR - raR)

	// Observer displacement for sea level, spherical-ish Earth.
	const rho = 0.99883
	sinPi := math.Sin(timeutil.Deg2Rad(ParallaxDeg(pos.Distance)))

	sinPhi := math.Sin(latR)
	cosPhi := math.Cos(latR)
	sinDec := math.Sin(decR)
	cosDec := math.Cos(decR)

	// Topocentric RA shift and declination.
	dAlpha := math.Atan2(
		-rho*cosPhi*sinPi*math.Sin(H),
		cosDec-rho*cosPhi*sinPi*math.Cos(H),
	)
	decTopo := math.Atan2(
		sinDec-rho*sinPhi*sinPi,
		cosDec-rho*cosPhi*sinPi*math.Cos(H),
	)

	Ht := timeutil.WrapPi(H - dAlpha)

	sinAlt := sinPhi*math.Sin(decTopo) + cosPhi*math.Cos(decTopo)*math.Cos(Ht)
	alt = timeutil.Rad2Deg(math.Asin(sinAlt))
	alt += timeutil.ApproxRefraction(alt)

	azS := math.Atan2(math.Sin(Ht), math.Cos(Ht)*sinPhi-math.Tan(decTopo)*cosPhi)
	az = timeutil.Normalize360(timeutil.Rad2Deg(azS) + 180.0)

	return alt, az
}

// Altitude returns just the apparent topocentric altitude in degrees.
func Altitude(lat, lon float64, t time.Time) float64 {
	alt, _ := Horizontal(lat, lon, t)
	return alt
}

// Azimuth returns just the azimuth in degrees [0, 360).
func Azimuth(lat, lon float64, t time.Time) float64 {
	_, az := Horizontal(lat, lon, t)
	return az
}
