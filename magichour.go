package horizon

import (
	"sort"
	"time"

	"github.com/thurmanmarka/horizon/internal/solver"
	"github.com/thurmanmarka/horizon/internal/sun"
)

// TrackPoint is one boundary of a magic-hour interval. Azimuth is nil
// when the boundary is the day's start or end rather than a genuine
// threshold crossing (the band was already active at the day edge).
type TrackPoint struct {
	Time    time.Time
	Azimuth *float64
}

// MagicHourInterval is a maximal span during which the Sun's altitude
// stays inside the magic-hour band.
type MagicHourInterval struct {
	Start  TrackPoint
	Finish TrackPoint
}

// Length returns the interval's duration.
func (i MagicHourInterval) Length() time.Duration {
	return i.Finish.Time.Sub(i.Start.Time)
}

// MagicHourPeriod is a civil day partitioned into magic-hour intervals,
// full daylight (above the band) and darkness (below it). The three
// always sum to 24 hours of wall time.
type MagicHourPeriod struct {
	Intervals []MagicHourInterval // chronological
	Daylight  Clock
	Darkness  Clock
}

// MagicHourAt walks the Sun's altitude curve across the civil day (in
// at's zone) containing at and emits the golden/blue lighting windows:
// the maximal intervals where the altitude lies within
// [-4°, +6°].
func MagicHourAt(c Coordinates, at time.Time) (MagicHourPeriod, error) {
	if err := c.Validate(); err != nil {
		return MagicHourPeriod{}, err
	}

	start, end := dayBounds(at)
	alt := func(t time.Time) float64 { return sun.Altitude(c.Lat, c.Lon, t) }

	// Boundaries of the day's zone segments: both band edges can be
	// crossed, in either direction, up to twice each.
	lowCross := solver.Crossings(alt, start, end, sun.MagicHourLow, 0, 0)
	highCross := solver.Crossings(alt, start, end, sun.MagicHourHigh, 0, 0)

	bounds := make([]time.Time, 0, len(lowCross)+len(highCross)+2)
	bounds = append(bounds, start)
	for _, cr := range lowCross {
		bounds = append(bounds, cr.Time)
	}
	for _, cr := range highCross {
		bounds = append(bounds, cr.Time)
	}
	bounds = append(bounds, end)
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Before(bounds[j]) })

	var (
		period   MagicHourPeriod
		daylight time.Duration
		darkness time.Duration
		open     *MagicHourInterval
	)

	closeInterval := func(t time.Time, atEdge bool) {
		open.Finish = trackPoint(c, t, at, atEdge)
		period.Intervals = append(period.Intervals, *open)
		open = nil
	}

	for i := 0; i+1 < len(bounds); i++ {
		segStart, segEnd := bounds[i], bounds[i+1]
		if !segStart.Before(segEnd) {
			continue
		}

		// The zone is constant within a segment; probe its midpoint.
		mid := segStart.Add(segEnd.Sub(segStart) / 2)
		a := alt(mid)

		switch {
		case a > sun.MagicHourHigh:
			daylight += segEnd.Sub(segStart)
			if open != nil {
				closeInterval(segStart, false)
			}
		case a < sun.MagicHourLow:
			darkness += segEnd.Sub(segStart)
			if open != nil {
				closeInterval(segStart, false)
			}
		default:
			if open == nil {
				open = &MagicHourInterval{
					Start: trackPoint(c, segStart, at, segStart.Equal(start)),
				}
			}
		}
	}
	if open != nil {
		closeInterval(end, true)
	}

	period.Daylight = ClockFromDuration(daylight)
	period.Darkness = ClockFromDuration(darkness)
	return period, nil
}

// trackPoint builds a boundary point, attaching the azimuth only for
// genuine crossings — a day edge carries no crossing azimuth.
func trackPoint(c Coordinates, t time.Time, at time.Time, dayEdge bool) TrackPoint {
	tp := TrackPoint{Time: t.In(at.Location())}
	if !dayEdge {
		az := sun.Azimuth(c.Lat, c.Lon, t)
		tp.Azimuth = &az
	}
	return tp
}
