// Package solver locates horizon crossings of a continuous altitude
// signal. It is body-agnostic: callers hand it an altitude function and
// a target altitude, and get back the directed crossings found in a
// search window, refined by bisection.
package solver

import (
	"time"
)

// AltitudeFunc returns an altitude in degrees at time t.
type AltitudeFunc func(t time.Time) float64

// Crossing is a single threshold crossing. Rising reports whether the
// altitude was increasing through the target (a rise event).
type Crossing struct {
	Time   time.Time
	Rising bool
}

// DefaultStep is the sampling interval used when scanning a window for
// sign changes. Ten minutes is short enough to catch the brief lunar
// up-periods near the polar circles.
const DefaultStep = 10 * time.Minute

// DefaultTol is the bisection bracket width at which refinement stops.
const DefaultTol = 30 * time.Second

// Crossings scans [start, end] for times where f crosses target, in
// chronological order. Sampling is at the given step with each detected
// bracket refined by bisection to within tol.
//
// It never fails: a window with no crossings yields an empty slice, and
// the caller can distinguish "up all day" from "down all day" by
// evaluating f itself.
func Crossings(f AltitudeFunc, start, end time.Time, target float64, step, tol time.Duration) []Crossing {
	if !start.Before(end) {
		return nil
	}
	if step <= 0 {
		step = DefaultStep
	}
	if tol <= 0 {
		tol = DefaultTol
	}

	var out []Crossing

	prevT := start
	prevV := f(prevT) - target

	for t := start.Add(step); ; t = t.Add(step) {
		if t.After(end) {
			t = end
		}

		v := f(t) - target

		switch {
		case prevV < 0 && v >= 0:
			out = append(out, Crossing{Time: bisect(f, prevT, t, target, tol), Rising: true})
		case prevV > 0 && v <= 0:
			out = append(out, Crossing{Time: bisect(f, prevT, t, target, tol), Rising: false})
		}

		if t.Equal(end) {
			break
		}
		prevT, prevV = t, v
	}

	return out
}

// Next finds the first crossing of target at or after from, scanning
// forward one day at a time up to horizon. It reports ok=false when the
// horizon is exhausted without a crossing, so the search always
// terminates.
func Next(f AltitudeFunc, from time.Time, target float64, step, tol time.Duration, horizon time.Duration) (Crossing, bool) {
	limit := from.Add(horizon)

	for dayStart := from; dayStart.Before(limit); dayStart = dayStart.Add(24 * time.Hour) {
		dayEnd := dayStart.Add(24 * time.Hour)
		if dayEnd.After(limit) {
			dayEnd = limit
		}

		for _, c := range Crossings(f, dayStart, dayEnd, target, step, tol) {
			if !c.Time.Before(from) {
				return c, true
			}
		}
	}

	return Crossing{}, false
}

// Extremum locates the maximum (or minimum) of f in [start, end]: a
// coarse scan picks the best sample, then the bracket around it is
// narrowed by ternary search until it is within tol. Returns the time
// and the altitude there.
func Extremum(f AltitudeFunc, start, end time.Time, step, tol time.Duration, findMax bool) (time.Time, float64) {
	if step <= 0 {
		step = DefaultStep
	}
	if tol <= 0 {
		tol = DefaultTol
	}

	best := start
	bestV := f(start)

	for t := start.Add(step); !t.After(end); t = t.Add(step) {
		v := f(t)
		if (findMax && v > bestV) || (!findMax && v < bestV) {
			best, bestV = t, v
		}
	}

	a := best.Add(-step)
	if a.Before(start) {
		a = start
	}
	b := best.Add(step)
	if b.After(end) {
		b = end
	}

	for b.Sub(a) > tol {
		third := b.Sub(a) / 3
		m1 := a.Add(third)
		m2 := b.Add(-third)

		v1, v2 := f(m1), f(m2)
		if (findMax && v1 < v2) || (!findMax && v1 > v2) {
			a = m1
		} else {
			b = m2
		}
	}

	mid := a.Add(b.Sub(a) / 2)
	return mid, f(mid)
}

func bisect(f AltitudeFunc, a, b time.Time, target float64, tol time.Duration) time.Time {
	va := f(a) - target

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		vm := f(mid) - target

		if (va < 0) == (vm < 0) {
			a, va = mid, vm
		} else {
			b = mid
		}
	}

	return a.Add(b.Sub(a) / 2)
}
