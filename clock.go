package horizon

import (
	"fmt"
	"math"
	"time"
)

const millisPerDay = 24 * 60 * 60 * 1000

// Clock is a wall-clock value: hour, minute, second, millisecond, plus
// a signed day offset so it can also carry durations and multi-day
// spans. It is an immutable value type; the zero value is 00:00:00 on
// day 0.
type Clock struct {
	Days        int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// NewClock builds a Clock from clock fields on day 0. Hour must be in
// [0,23] and minute/second in [0,59]; anything else fails with
// ErrInvalidArgument.
func NewClock(hour, minute, second int) (Clock, error) {
	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("%w: hour %d outside [0, 23]", ErrInvalidArgument, hour)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: minute %d outside [0, 59]", ErrInvalidArgument, minute)
	}
	if second < 0 || second > 59 {
		return Clock{}, fmt.Errorf("%w: second %d outside [0, 59]", ErrInvalidArgument, second)
	}
	return Clock{Hour: hour, Minute: minute, Second: second}, nil
}

// ClockFromMillis normalizes a total millisecond count into days plus
// clock fields. Negative totals normalize with floor semantics, so
// -1000 ms becomes day -1, 23:59:59.
func ClockFromMillis(ms int64) Clock {
	days := ms / millisPerDay
	rem := ms % millisPerDay
	if rem < 0 {
		days--
		rem += millisPerDay
	}

	return Clock{
		Days:        int(days),
		Hour:        int(rem / 3600000),
		Minute:      int(rem % 3600000 / 60000),
		Second:      int(rem % 60000 / 1000),
		Millisecond: int(rem % 1000),
	}
}

// ClockFromDuration normalizes a duration the same way.
func ClockFromDuration(d time.Duration) Clock {
	return ClockFromMillis(d.Milliseconds())
}

// ClockOf extracts the local time of day of t, with Days carrying the
// calendar-day delta from reference's civil day (0 = same day).
func ClockOf(t, reference time.Time) Clock {
	local := t.In(reference.Location())
	refStart, _ := dayBounds(reference)
	tStart, _ := dayBounds(local)

	// Rounding absorbs DST-shortened or -lengthened days.
	return Clock{
		Days:        int(math.Round(tStart.Sub(refStart).Hours() / 24)),
		Hour:        local.Hour(),
		Minute:      local.Minute(),
		Second:      local.Second(),
		Millisecond: local.Nanosecond() / 1e6,
	}
}

// Millis returns the total milliseconds the clock value represents.
// It is the inverse of ClockFromMillis.
func (c Clock) Millis() int64 {
	return int64(c.Days)*millisPerDay +
		int64(c.Hour)*3600000 +
		int64(c.Minute)*60000 +
		int64(c.Second)*1000 +
		int64(c.Millisecond)
}

// Duration returns the clock value as a time.Duration.
func (c Clock) Duration() time.Duration {
	return time.Duration(c.Millis()) * time.Millisecond
}

func (c Clock) String() string {
	if c.Days != 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", c.Days, c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}
