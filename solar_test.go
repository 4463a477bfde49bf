package horizon_test

import (
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thurmanmarka/horizon"
)

var murmansk = horizon.Coordinates{Lat: 68.9585, Lon: 33.0827}

func diffMinutes(a, b time.Time) float64 {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}

func TestSolarEventDay_EquatorEquinox(t *testing.T) {
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	day, err := horizon.SolarEventDayAt(horizon.Coordinates{}, at)
	require.NoError(t, err)

	require.Len(t, day.Events, 2)
	assert.Equal(t, horizon.SolarRisenAndSet, day.State)

	rise, set := day.Events[0], day.Events[1]
	require.Equal(t, horizon.Rise, rise.Type)
	require.Equal(t, horizon.Set, set.Type)

	wantRise := time.Date(2025, time.March, 20, 6, 4, 0, 0, time.UTC)
	wantSet := time.Date(2025, time.March, 20, 18, 10, 0, 0, time.UTC)
	assert.LessOrEqual(t, diffMinutes(rise.Time, wantRise), 2.5, "sunrise at %v", rise.Time)
	assert.LessOrEqual(t, diffMinutes(set.Time, wantSet), 2.5, "sunset at %v", set.Time)

	// On the equinox the Sun rises almost exactly east, sets almost
	// exactly west.
	assert.InDelta(t, 90, rise.Azimuth, 3)
	assert.InDelta(t, 270, set.Azimuth, 3)

	// Day and night partition the civil day.
	assert.InDelta(t, float64(86400000), float64(day.DayLength.Millis()+day.NightLength.Millis()), 1000)
}

func TestSolarEventDay_PolarDay(t *testing.T) {
	at := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)
	day, err := horizon.SolarEventDayAt(murmansk, at)
	require.NoError(t, err)

	assert.Equal(t, horizon.PolarDay, day.State)
	assert.Empty(t, day.Events)
	assert.Greater(t, day.DayLength.Millis(), int64(0))
	assert.EqualValues(t, 0, day.NightLength.Millis())
}

func TestSolarEventDay_PolarNight(t *testing.T) {
	at := time.Date(2025, time.December, 21, 12, 0, 0, 0, time.UTC)
	day, err := horizon.SolarEventDayAt(murmansk, at)
	require.NoError(t, err)

	assert.Equal(t, horizon.PolarNight, day.State)
	assert.Empty(t, day.Events)
	assert.Greater(t, day.NightLength.Millis(), int64(0))
	assert.EqualValues(t, 0, day.DayLength.Millis())
}

// The engine should stay within a few minutes of the NOAA-style
// reference model across seasons and hemispheres.
func TestSolarEventDay_MatchesReference(t *testing.T) {
	const tolMinutes = 3.0

	locNY, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	locSYD, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	tests := []struct {
		name   string
		coords horizon.Coordinates
		at     time.Time
	}{
		{"NYC late autumn", horizon.Coordinates{Lat: 40.7128, Lon: -74.0060},
			time.Date(2025, time.November, 30, 12, 0, 0, 0, locNY)},
		{"Phoenix summer solstice", horizon.Coordinates{Lat: 33.4484, Lon: -112.0740},
			time.Date(2025, time.June, 21, 12, 0, 0, 0, time.FixedZone("MST", -7*3600))},
		{"Sydney winter", horizon.Coordinates{Lat: -33.8688, Lon: 151.2093},
			time.Date(2025, time.July, 1, 12, 0, 0, 0, locSYD)},
		{"Reykjavik equinox", horizon.Coordinates{Lat: 64.1466, Lon: -21.9426},
			time.Date(2025, time.September, 22, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := horizon.SolarEventDayAt(tt.coords, tt.at)
			require.NoError(t, err)
			require.Len(t, day.Events, 2)

			refRise, refSet := sunrise.SunriseSunset(
				tt.coords.Lat, tt.coords.Lon, tt.at.Year(), tt.at.Month(), tt.at.Day())

			assert.LessOrEqual(t, diffMinutes(day.Events[0].Time, refRise), tolMinutes)
			assert.LessOrEqual(t, diffMinutes(day.Events[1].Time, refSet), tolMinutes)
		})
	}
}

func TestSolarEventDay_EventsSortedAzimuthInRange(t *testing.T) {
	coords := horizon.Coordinates{Lat: 48.8566, Lon: 2.3522}
	for month := time.January; month <= time.December; month++ {
		at := time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
		day, err := horizon.SolarEventDayAt(coords, at)
		require.NoError(t, err)

		for i, e := range day.Events {
			assert.GreaterOrEqual(t, e.Azimuth, 0.0)
			assert.Less(t, e.Azimuth, 360.0)
			if i > 0 {
				assert.True(t, e.Time.After(day.Events[i-1].Time),
					"%v: events out of order", month)
			}
		}
	}
}

func TestSolarDayAt_RelativeShape(t *testing.T) {
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	day, err := horizon.SolarDayAt(horizon.Coordinates{}, at)
	require.NoError(t, err)
	require.Len(t, day.Events, 2)

	rise, set := day.Events[0], day.Events[1]

	// Sunrise was about six hours before the noon query, sunset about
	// six hours after.
	assert.Negative(t, rise.Until)
	assert.Positive(t, set.Until)
	assert.Equal(t, 6, rise.Time.Hour)
	assert.Equal(t, 18, set.Time.Hour)
	assert.Equal(t, 0, rise.Time.Days)

	// The relative noon sits near the clock noon at Greenwich.
	assert.InDelta(t, 12, float64(day.Noon.Hour)+float64(day.Noon.Minute)/60, 0.3)
}

func TestNextSolarEvent_Variants(t *testing.T) {
	coords := horizon.Coordinates{}
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	ev, ok, err := horizon.NextSolarEvent(coords, at)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, horizon.Set, ev.Type)
	assert.True(t, ev.Time.After(at))

	short, ok, err := horizon.NextSolarEventIn(coords, at)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ev.Type, short.Type)
	assert.InDelta(t, float64(ev.Time.Sub(at)), float64(short.Until), float64(time.Minute))

	rel, ok, err := horizon.NextSolarDayEvent(coords, at)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ev.Type, rel.Type)
	assert.Equal(t, 18, rel.Time.Hour)
}

// Deep in polar day the next sunset is weeks away; the bounded search
// must still find it rather than giving up or spinning.
func TestNextSolarEvent_AcrossPolarDay(t *testing.T) {
	at := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)

	ev, ok, err := horizon.NextSolarEvent(murmansk, at)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ev.Time.After(at.AddDate(0, 0, 14)),
		"first crossing should be weeks out, got %v", ev.Time)
	assert.True(t, ev.Time.Before(at.AddDate(0, 2, 0)))
}

func TestSolarEventDay_Twilights(t *testing.T) {
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	day, err := horizon.SolarEventDayAt(horizon.Coordinates{}, at)
	require.NoError(t, err)
	require.Len(t, day.Events, 2)

	tw := day.Twilight
	require.False(t, tw.CivilDawn.IsZero())
	require.False(t, tw.NauticalDawn.IsZero())
	require.False(t, tw.AstronomicalDawn.IsZero())

	assert.True(t, tw.AstronomicalDawn.Before(tw.NauticalDawn))
	assert.True(t, tw.NauticalDawn.Before(tw.CivilDawn))
	assert.True(t, tw.CivilDawn.Before(day.Events[0].Time))
	assert.True(t, tw.CivilDusk.After(day.Events[1].Time))
	assert.True(t, tw.NauticalDusk.After(tw.CivilDusk))
	assert.True(t, tw.AstronomicalDusk.After(tw.NauticalDusk))
}

func TestSolarEventDay_Idempotent(t *testing.T) {
	coords := horizon.Coordinates{Lat: 40.7128, Lon: -74.0060}
	at := time.Date(2025, time.November, 30, 9, 30, 0, 0, time.UTC)

	a, err := horizon.SolarEventDayAt(coords, at)
	require.NoError(t, err)
	b, err := horizon.SolarEventDayAt(coords, at)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
