package horizon

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon/internal/solver"
	"github.com/thurmanmarka/horizon/internal/sun"
)

// SolarState classifies a civil day's pattern of sunrise/sunset
// crossings.
type SolarState int

const (
	// SolarRisenAndSet is the ordinary day: the Sun rises, later it sets.
	// It also covers a day whose only event is a set (the Sun was already
	// up at midnight).
	SolarRisenAndSet SolarState = iota

	// SolarSetAndRisen is a day that starts with the Sun up, sets, and
	// rises again before midnight, or whose only event is a rise.
	SolarSetAndRisen

	// PolarDay means the Sun stays above the horizon the whole day.
	PolarDay

	// PolarNight means the Sun stays below the horizon the whole day.
	PolarNight
)

func (s SolarState) String() string {
	switch s {
	case SolarRisenAndSet:
		return "risen-and-set"
	case SolarSetAndRisen:
		return "set-and-risen"
	case PolarDay:
		return "polar-day"
	case PolarNight:
		return "polar-night"
	default:
		return fmt.Sprintf("SolarState(%d)", int(s))
	}
}

// Twilights carries the civil, nautical and astronomical dawn/dusk
// instants for a day. A zero time means the Sun does not cross that
// altitude on the day (polar conditions).
type Twilights struct {
	CivilDawn        time.Time
	CivilDusk        time.Time
	NauticalDawn     time.Time
	NauticalDusk     time.Time
	AstronomicalDawn time.Time
	AstronomicalDusk time.Time
}

// SolarEventDay is the absolute-day solar result: the day's events with
// full timestamps in the caller's zone, the classified state, day and
// night lengths, and the meridian transits.
type SolarEventDay struct {
	Events        []Event // chronological
	State         SolarState
	PreviousState SolarState
	DayLength     Clock
	NightLength   Clock
	Noon          time.Time // upper meridian transit
	Midnight      time.Time // lower (antimeridian) transit
	Twilight      Twilights
}

// SolarDay is the relative-day solar result: events as clock times plus
// offsets from the query instant.
type SolarDay struct {
	Events        []DayEvent
	State         SolarState
	PreviousState SolarState
	DayLength     Clock
	NightLength   Clock
	Noon          Clock
	Midnight      Clock
}

// SolarEventDayAt computes the solar events for the civil day (in at's
// zone) containing at.
func SolarEventDayAt(c Coordinates, at time.Time) (SolarEventDay, error) {
	if err := c.Validate(); err != nil {
		return SolarEventDay{}, err
	}

	d := solarDayAt(c, at)

	events := make([]Event, len(d.crossings))
	for i, cr := range d.crossings {
		events[i] = Event{
			Type:    eventType(cr.Rising),
			Azimuth: sun.Azimuth(c.Lat, c.Lon, cr.Time),
			Time:    cr.Time.In(at.Location()),
		}
	}

	return SolarEventDay{
		Events:        events,
		State:         d.state,
		PreviousState: d.prevState,
		DayLength:     ClockFromDuration(d.dayLen),
		NightLength:   ClockFromDuration(d.nightLen),
		Noon:          d.noon.In(at.Location()),
		Midnight:      d.midnight.In(at.Location()),
		Twilight:      solarTwilights(c, at),
	}, nil
}

// SolarDayAt computes the same day in the relative shape: clock times
// of day plus offsets from at. Offsets are negative for events earlier
// in the civil day than the query instant.
func SolarDayAt(c Coordinates, at time.Time) (SolarDay, error) {
	if err := c.Validate(); err != nil {
		return SolarDay{}, err
	}

	d := solarDayAt(c, at)

	events := make([]DayEvent, len(d.crossings))
	for i, cr := range d.crossings {
		events[i] = DayEvent{
			Type:    eventType(cr.Rising),
			Azimuth: sun.Azimuth(c.Lat, c.Lon, cr.Time),
			Time:    ClockOf(cr.Time, at),
			Until:   cr.Time.Sub(at),
		}
	}

	return SolarDay{
		Events:        events,
		State:         d.state,
		PreviousState: d.prevState,
		DayLength:     ClockFromDuration(d.dayLen),
		NightLength:   ClockFromDuration(d.nightLen),
		Noon:          ClockOf(d.noon, at),
		Midnight:      ClockOf(d.midnight, at),
	}, nil
}

// NextSolarEvent returns the nearest sunrise or sunset at or after at,
// with an absolute timestamp. ok is false when no event occurs within
// the search horizon (deep polar conditions are bounded, not an error).
func NextSolarEvent(c Coordinates, at time.Time) (ev Event, ok bool, err error) {
	if err := c.Validate(); err != nil {
		return Event{}, false, err
	}

	cr, ok := nextSolarCrossing(c, at)
	if !ok {
		return Event{}, false, nil
	}

	return Event{
		Type:    eventType(cr.Rising),
		Azimuth: sun.Azimuth(c.Lat, c.Lon, cr.Time),
		Time:    cr.Time.In(at.Location()),
	}, true, nil
}

// NextSolarDayEvent is the relative variant of NextSolarEvent.
func NextSolarDayEvent(c Coordinates, at time.Time) (ev DayEvent, ok bool, err error) {
	if err := c.Validate(); err != nil {
		return DayEvent{}, false, err
	}

	cr, ok := nextSolarCrossing(c, at)
	if !ok {
		return DayEvent{}, false, nil
	}

	return DayEvent{
		Type:    eventType(cr.Rising),
		Azimuth: sun.Azimuth(c.Lat, c.Lon, cr.Time),
		Time:    ClockOf(cr.Time, at),
		Until:   cr.Time.Sub(at),
	}, true, nil
}

// NextSolarEventIn is the short variant: type, azimuth, and offset only.
// An event at exactly at yields Until == 0.
func NextSolarEventIn(c Coordinates, at time.Time) (ev UpcomingEvent, ok bool, err error) {
	if err := c.Validate(); err != nil {
		return UpcomingEvent{}, false, err
	}

	cr, ok := nextSolarCrossing(c, at)
	if !ok {
		return UpcomingEvent{}, false, nil
	}

	return UpcomingEvent{
		Type:    eventType(cr.Rising),
		Azimuth: sun.Azimuth(c.Lat, c.Lon, cr.Time),
		Until:   cr.Time.Sub(at),
	}, true, nil
}

// solarDayResult is the engine-internal digest of a civil day.
type solarDayResult struct {
	crossings []solver.Crossing
	state     SolarState
	prevState SolarState
	dayLen    time.Duration
	nightLen  time.Duration
	noon      time.Time
	midnight  time.Time
}

func solarDayAt(c Coordinates, at time.Time) solarDayResult {
	start, end := dayBounds(at)
	alt := func(t time.Time) float64 { return sun.Altitude(c.Lat, c.Lon, t) }

	crossings := solver.Crossings(alt, start, end, sun.RiseSetAltitude, 0, 0)
	above := alt(start) > sun.RiseSetAltitude

	// Yesterday's pattern, for the prior-day context. Its start state is
	// read off the curve the same way, keeping the classification
	// consistent across day boundaries.
	ystart := start.Add(-24 * time.Hour)
	ycross := solver.Crossings(alt, ystart, start, sun.RiseSetAltitude, 0, 0)
	yabove := alt(ystart) > sun.RiseSetAltitude

	dayLen := durationAbove(above, crossings, start, end)

	noon, _ := solver.Extremum(alt, start, end, 0, 0, true)
	midnight, _ := solver.Extremum(alt, start, end, 0, 0, false)

	return solarDayResult{
		crossings: crossings,
		state:     classifySolar(crossingPattern(crossings), above),
		prevState: classifySolar(crossingPattern(ycross), yabove),
		dayLen:    dayLen,
		nightLen:  end.Sub(start) - dayLen,
		noon:      noon,
		midnight:  midnight,
	}
}

// classifySolar maps a day's crossing pattern plus the state at local
// midnight (above = Sun already up, i.e. yesterday ended risen) to a
// SolarState. The mapping is a closed table; the Sun cannot produce
// more than two crossings in 24 hours.
func classifySolar(pattern string, above bool) SolarState {
	switch pattern {
	case "":
		if above {
			return PolarDay
		}
		return PolarNight
	case "RS":
		return SolarRisenAndSet
	case "SR":
		return SolarSetAndRisen
	case "S":
		// Risen at midnight, set during the day.
		return SolarRisenAndSet
	case "R":
		// Down at midnight, rose during the day.
		return SolarSetAndRisen
	default:
		// Not reachable for the Sun; fall back on the first crossing.
		if pattern[0] == 'R' {
			return SolarSetAndRisen
		}
		return SolarRisenAndSet
	}
}

func nextSolarCrossing(c Coordinates, at time.Time) (solver.Crossing, bool) {
	alt := func(t time.Time) float64 { return sun.Altitude(c.Lat, c.Lon, t) }
	return solver.Next(alt, at, sun.RiseSetAltitude, 0, 0, searchHorizon)
}

func solarTwilights(c Coordinates, at time.Time) Twilights {
	start, end := dayBounds(at)
	alt := func(t time.Time) float64 { return sun.Altitude(c.Lat, c.Lon, t) }

	var tw Twilights
	for _, band := range []struct {
		alt        float64
		dawn, dusk *time.Time
	}{
		{sun.CivilTwilightAltitude, &tw.CivilDawn, &tw.CivilDusk},
		{sun.NauticalTwilightAltitude, &tw.NauticalDawn, &tw.NauticalDusk},
		{sun.AstronomicalTwilightAltitude, &tw.AstronomicalDawn, &tw.AstronomicalDusk},
	} {
		for _, cr := range solver.Crossings(alt, start, end, band.alt, 0, 0) {
			if cr.Rising && band.dawn.IsZero() {
				*band.dawn = cr.Time.In(at.Location())
			}
			if !cr.Rising {
				*band.dusk = cr.Time.In(at.Location())
			}
		}
	}
	return tw
}

func eventType(rising bool) EventType {
	if rising {
		return Rise
	}
	return Set
}
