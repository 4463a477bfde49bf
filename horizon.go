// Package horizon computes solar and lunar horizon-crossing events
// (rise, set), day/night and twilight durations, magic-hour lighting
// windows, and lunar phase/illumination for an arbitrary geographic
// coordinate and instant.
//
// Every entry point is a pure function of (coordinates, instant): no
// I/O, no hidden clock, no shared state, so concurrent use needs no
// locking. Results are immutable values built fresh per query. The
// caller's time zone is taken from the instant's Location; the package
// does not resolve zone names itself.
//
// Polar day, polar night, and the Moon's irregular day patterns are
// first-class classified states, never errors.
package horizon

import (
	"errors"
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon/internal/solver"
)

// ErrInvalidArgument is the base error for malformed inputs: coordinates
// outside their ranges or clock fields outside theirs. It is returned
// (wrapped with detail) before any computation starts.
var ErrInvalidArgument = errors.New("invalid argument")

// searchHorizon caps the day-by-day forward search for upcoming events.
// A body that produces no crossing within a year at a location will not
// produce one later either.
const searchHorizon = 365 * 24 * time.Hour

// Coordinates is an observer's location in degrees: latitude north
// positive, longitude east positive.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate reports whether the coordinates are within range.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidArgument, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidArgument, c.Lon)
	}
	return nil
}

// EventType says whether an event is a rise or a set.
type EventType int

const (
	Rise EventType = iota
	Set
)

func (e EventType) String() string {
	switch e {
	case Rise:
		return "rise"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

// Event is a horizon crossing with an absolute timestamp in the
// caller's zone.
type Event struct {
	Type    EventType
	Azimuth float64 // degrees, [0,360) clockwise from north
	Time    time.Time
}

// DayEvent is a horizon crossing expressed relative to the query
// instant: the local clock time of day plus the offset until the event.
// Until is negative for events earlier in the civil day than the query.
type DayEvent struct {
	Type    EventType
	Azimuth float64
	Time    Clock
	Until   time.Duration
}

// UpcomingEvent is the compact "next event" shape: just the type, the
// azimuth, and how long from the query instant it occurs. An event at
// exactly the query instant has Until == 0.
type UpcomingEvent struct {
	Type    EventType
	Azimuth float64
	Until   time.Duration
}

// dayBounds returns the local civil day [00:00, 24:00) containing at,
// in at's zone.
func dayBounds(at time.Time) (start, end time.Time) {
	year, month, day := at.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, at.Location())
	return start, start.Add(24 * time.Hour)
}

// durationAbove integrates the time the signal spends above its
// threshold across [start, end), given the directed crossing list and
// whether the signal starts above.
func durationAbove(above bool, crossings []solver.Crossing, start, end time.Time) time.Duration {
	var total time.Duration
	cursor := start

	for _, c := range crossings {
		if above {
			total += c.Time.Sub(cursor)
		}
		above = c.Rising
		cursor = c.Time
	}
	if above {
		total += end.Sub(cursor)
	}

	return total
}

// crossingPattern renders a crossing list as a compact signature like
// "RS" or "SRS", the key the classifiers switch on.
func crossingPattern(crossings []solver.Crossing) string {
	buf := make([]byte, len(crossings))
	for i, c := range crossings {
		if c.Rising {
			buf[i] = 'R'
		} else {
			buf[i] = 'S'
		}
	}
	return string(buf)
}
