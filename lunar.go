package horizon

import (
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/moon"
	"github.com/thurmanmarka/horizon/internal/solver"
	"github.com/thurmanmarka/horizon/internal/sun"
	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// LunarState classifies a civil day's pattern of moonrise/moonset
// crossings. The set is richer than the solar one because the Moon's
// rise and set drift about 50 minutes later each day against the 24h
// civil day, so a day can see zero, one, two, or three crossings.
type LunarState int

const (
	// LunarSetAndRisen: up at midnight, sets, rises again.
	LunarSetAndRisen LunarState = iota

	// LunarRisenAndSet: down at midnight, rises, sets.
	LunarRisenAndSet

	// LunarSetRiseSet: up at midnight, sets, rises, and sets again.
	LunarSetRiseSet

	// LunarFullDay: above the horizon the whole civil day.
	LunarFullDay

	// LunarFullNight: below the horizon the whole civil day.
	LunarFullNight

	// LunarOnlySet: the drift leaves a single set in the day.
	LunarOnlySet

	// LunarOnlyRisen: the drift leaves a single rise in the day.
	LunarOnlyRisen

	// LunarStateError marks a crossing pattern outside the defined
	// mapping. It is a data value, not an error: callers still get a
	// well-typed result.
	LunarStateError
)

func (s LunarState) String() string {
	switch s {
	case LunarSetAndRisen:
		return "set-and-risen"
	case LunarRisenAndSet:
		return "risen-and-set"
	case LunarSetRiseSet:
		return "set-rise-set"
	case LunarFullDay:
		return "full-day"
	case LunarFullNight:
		return "full-night"
	case LunarOnlySet:
		return "only-set"
	case LunarOnlyRisen:
		return "only-risen"
	case LunarStateError:
		return "error"
	default:
		return fmt.Sprintf("LunarState(%d)", int(s))
	}
}

// MoonPhase describes the Moon's phase at an instant. Phase is a global
// property, independent of the observer's location.
type MoonPhase struct {
	Age          float64 // days into the synodic month, [0, 29.53...)
	Illumination float64 // percent, [0, 100]
	Elongation   float64 // Sun-Moon angular separation, degrees [0, 180]
	Waxing       bool
	Name         string // "New Moon", "Waxing Crescent", ...
}

// LunarEventDay is the absolute-day lunar result.
type LunarEventDay struct {
	Events          []Event // chronological
	State           LunarState
	PreviousState   LunarState
	VisibleLength   Clock
	InvisibleLength Clock
	Transit         time.Time // upper meridian transit
	AntiTransit     time.Time // lower transit
	Phase           MoonPhase
}

// LunarDay is the relative-day lunar result.
type LunarDay struct {
	Events          []DayEvent
	State           LunarState
	PreviousState   LunarState
	VisibleLength   Clock
	InvisibleLength Clock
	Transit         Clock
	AntiTransit     Clock
	Phase           MoonPhase
}

// LunarEventDayAt computes the lunar events for the civil day (in at's
// zone) containing at, with the phase evaluated at at.
func LunarEventDayAt(c Coordinates, at time.Time) (LunarEventDay, error) {
	if err := c.Validate(); err != nil {
		return LunarEventDay{}, err
	}

	d := lunarDayAt(c, at)

	events := make([]Event, len(d.crossings))
	for i, cr := range d.crossings {
		events[i] = Event{
			Type:    eventType(cr.Rising),
			Azimuth: moon.Azimuth(c.Lat, c.Lon, cr.Time),
			Time:    cr.Time.In(at.Location()),
		}
	}

	return LunarEventDay{
		Events:          events,
		State:           d.state,
		PreviousState:   d.prevState,
		VisibleLength:   ClockFromDuration(d.visible),
		InvisibleLength: ClockFromDuration(d.invisible),
		Transit:         d.transit.In(at.Location()),
		AntiTransit:     d.antiTransit.In(at.Location()),
		Phase:           MoonPhaseAt(at),
	}, nil
}

// LunarDayAt computes the same day in the relative shape.
func LunarDayAt(c Coordinates, at time.Time) (LunarDay, error) {
	if err := c.Validate(); err != nil {
		return LunarDay{}, err
	}

	d := lunarDayAt(c, at)

	events := make([]DayEvent, len(d.crossings))
	for i, cr := range d.crossings {
		events[i] = DayEvent{
			Type:    eventType(cr.Rising),
			Azimuth: moon.Azimuth(c.Lat, c.Lon, cr.Time),
			Time:    ClockOf(cr.Time, at),
			Until:   cr.Time.Sub(at),
		}
	}

	return LunarDay{
		Events:          events,
		State:           d.state,
		PreviousState:   d.prevState,
		VisibleLength:   ClockFromDuration(d.visible),
		InvisibleLength: ClockFromDuration(d.invisible),
		Transit:         ClockOf(d.transit, at),
		AntiTransit:     ClockOf(d.antiTransit, at),
		Phase:           MoonPhaseAt(at),
	}, nil
}

// NextLunarDayEvent returns the nearest moonrise or moonset at or after
// at, in the relative shape. ok is false when the bounded search finds
// nothing.
func NextLunarDayEvent(c Coordinates, at time.Time) (ev DayEvent, ok bool, err error) {
	if err := c.Validate(); err != nil {
		return DayEvent{}, false, err
	}

	cr, ok := solver.Next(lunarSignal(c), at, 0, 0, 0, searchHorizon)
	if !ok {
		return DayEvent{}, false, nil
	}

	return DayEvent{
		Type:    eventType(cr.Rising),
		Azimuth: moon.Azimuth(c.Lat, c.Lon, cr.Time),
		Time:    ClockOf(cr.Time, at),
		Until:   cr.Time.Sub(at),
	}, true, nil
}

// MoonPhaseAt computes the Moon's age, illumination, and phase name at
// t. Age comes from the elongation in ecliptic longitude; illumination
// from the Sun-Moon angular separation via the cosine illumination
// model, clamped to [0, 100].
func MoonPhaseAt(t time.Time) MoonPhase {
	utc := t.UTC()

	lonSun := sun.EclipticLongitude(utc)
	lonMoon := moon.EclipticLongitude(utc)

	drift := timeutil.Normalize360(lonMoon - lonSun)
	age := drift / 360.0 * moon.SynodicMonth
	waxing := drift < 180.0

	// Angular separation ψ between Sun and Moon:
	// cos ψ = sin δs sin δm + cos δs cos δm cos(αs - αm)
	sEq := sun.Geocentric(utc)
	mEq := moon.Geocentric(utc)

	raS := timeutil.Deg2Rad(sEq.RA)
	decS := timeutil.Deg2Rad(sEq.Dec)
	raM := timeutil.Deg2Rad(mEq.RA)
	decM := timeutil.Deg2Rad(mEq.Dec)

	cosPsi := math.Sin(decS)*math.Sin(decM) +
		math.Cos(decS)*math.Cos(decM)*math.Cos(raS-raM)
	cosPsi = math.Max(-1, math.Min(1, cosPsi))

	illum := 50.0 * (1 - cosPsi)
	illum = math.Max(0, math.Min(100, illum))

	return MoonPhase{
		Age:          age,
		Illumination: illum,
		Elongation:   timeutil.Rad2Deg(math.Acos(cosPsi)),
		Waxing:       waxing,
		Name:         phaseName(illum, waxing),
	}
}

func phaseName(illumPercent float64, waxing bool) string {
	switch {
	case illumPercent < 1:
		return "New Moon"
	case illumPercent > 99:
		return "Full Moon"
	case math.Abs(illumPercent-50) < 5:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case illumPercent < 50:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

type lunarDayResult struct {
	crossings   []solver.Crossing
	state       LunarState
	prevState   LunarState
	visible     time.Duration
	invisible   time.Duration
	transit     time.Time
	antiTransit time.Time
}

// lunarSignal folds the per-instant rise/set threshold into the
// altitude curve, so the solver hunts zero crossings.
func lunarSignal(c Coordinates) solver.AltitudeFunc {
	return func(t time.Time) float64 {
		return moon.Altitude(c.Lat, c.Lon, t) - moon.RiseSetAltitude(t)
	}
}

func lunarDayAt(c Coordinates, at time.Time) lunarDayResult {
	start, end := dayBounds(at)
	signal := lunarSignal(c)
	alt := func(t time.Time) float64 { return moon.Altitude(c.Lat, c.Lon, t) }

	crossings := solver.Crossings(signal, start, end, 0, 0, 0)
	above := signal(start) > 0

	ystart := start.Add(-24 * time.Hour)
	ycross := solver.Crossings(signal, ystart, start, 0, 0, 0)
	yabove := signal(ystart) > 0

	visible := durationAbove(above, crossings, start, end)

	transit, _ := solver.Extremum(alt, start, end, 0, 0, true)
	antiTransit, _ := solver.Extremum(alt, start, end, 0, 0, false)

	return lunarDayResult{
		crossings:   crossings,
		state:       classifyLunar(crossingPattern(crossings), above),
		prevState:   classifyLunar(crossingPattern(ycross), yabove),
		visible:     visible,
		invisible:   end.Sub(start) - visible,
		transit:     transit,
		antiTransit: antiTransit,
	}
}

// classifyLunar maps a day's crossing pattern plus the state at local
// midnight to a LunarState. Combinations outside the table (such as
// rise-set-rise, which the drift cannot produce) yield LunarStateError
// rather than a guess.
func classifyLunar(pattern string, above bool) LunarState {
	switch pattern {
	case "":
		if above {
			return LunarFullDay
		}
		return LunarFullNight
	case "R":
		return LunarOnlyRisen
	case "S":
		return LunarOnlySet
	case "RS":
		return LunarRisenAndSet
	case "SR":
		return LunarSetAndRisen
	case "SRS":
		return LunarSetRiseSet
	default:
		return LunarStateError
	}
}
