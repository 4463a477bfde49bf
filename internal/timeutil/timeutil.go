// Package timeutil provides the time-system arithmetic shared by the
// position models: calendar to Julian Date conversion, a delta-T
// approximation for Terrestrial Time, sidereal time, and small
// degree/radian helpers.
package timeutil

import (
	"math"
	"time"
)

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

// JulianDay converts t to a Julian Date using the standard Gregorian
// calendar algorithm. The input is interpreted on the UT timescale.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 +
		hour/24.0
}

// JulianCenturies returns UT centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - 2451545.0) / 36525.0
}

// JulianCenturiesTT returns centuries since J2000.0 on the Terrestrial
// Time scale, i.e. with the delta-T correction applied. The position
// series are referred to TT.
func JulianCenturiesTT(t time.Time) float64 {
	jd := JulianDay(t) + DeltaT(t)/86400.0
	return (jd - 2451545.0) / 36525.0
}

// DeltaT approximates TT - UT in seconds at the instant t.
//
// It uses the Espenak-Meeus polynomial fits for the 1900-2050 eras and
// falls back to the long-term parabola ΔT = -20 + 32u² (u in centuries
// from 1820) outside them, so accuracy degrades smoothly for distant
// dates instead of failing.
func DeltaT(t time.Time) float64 {
	u := t.UTC()
	// Decimal year, good enough for a slowly varying correction.
	y := float64(u.Year()) + (float64(u.YearDay())-0.5)/365.25

	switch {
	case y >= 1900 && y < 1920:
		t := y - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case y >= 1920 && y < 1941:
		t := y - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case y >= 1941 && y < 1961:
		t := y - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case y >= 1961 && y < 1986:
		t := y - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case y >= 1986 && y < 2005:
		t := y - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case y >= 2005 && y < 2050:
		t := y - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	default:
		c := (y - 1820) / 100
		return -20 + 32*c*c
	}
}

// GreenwichSiderealDeg returns the Greenwich mean sidereal time at t as
// an angle in degrees, normalized to [0, 360).
func GreenwichSiderealDeg(t time.Time) float64 {
	d := DaysSinceJ2000(t)
	return Normalize360(280.46061837 + 360.98564736629*d)
}

// LocalSiderealDeg returns the local mean sidereal time at t for an
// observer at longitude lon (degrees, east positive), in degrees.
func LocalSiderealDeg(t time.Time, lon float64) float64 {
	return Normalize360(GreenwichSiderealDeg(t) + lon)
}

// -----------------------------
// Degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(deg))
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// WrapPi maps an angle in radians to (-π, π].
func WrapPi(r float64) float64 {
	for r > math.Pi {
		r -= 2 * math.Pi
	}
	for r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// ApproxRefraction returns an approximation of atmospheric refraction (in
// degrees) at a given geometric altitude altDeg (degrees) under standard
// conditions, to be added to the geometric altitude.
//
// Saemundsson-style formula:
//
//	R (arcmin) ≈ 1.02 / tan( (alt + 10.3 / (alt + 5.11)) in degrees )
func ApproxRefraction(altDeg float64) float64 {
	// Refraction isn't meaningfully defined deep below the horizon.
	if altDeg > 90 || altDeg < -1.0 {
		return 0
	}

	// Clamp very low altitudes away from the singularity near -5.11.
	alt := altDeg
	if alt < -0.5 {
		alt = -0.5
	}

	t := math.Tan(Deg2Rad(alt + 10.3/(alt+5.11)))
	if t == 0 {
		return 0
	}

	arcmin := 1.02 / t
	return arcmin / 60.0
}
