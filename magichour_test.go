package horizon_test

import (
	"testing"
	"time"

	"github.com/sixdouglas/suncalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thurmanmarka/horizon"
)

// The intervals plus daylight plus darkness must tile the civil day
// exactly, whatever the latitude.
func TestMagicHour_PartitionsDay(t *testing.T) {
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	for _, coords := range []horizon.Coordinates{
		{},
		{Lat: 33.4484, Lon: -112.0740},
		{Lat: 64.1466, Lon: -21.9426},
		{Lat: -33.8688, Lon: 151.2093},
	} {
		period, err := horizon.MagicHourAt(coords, at)
		require.NoError(t, err)

		var inBand time.Duration
		for _, iv := range period.Intervals {
			assert.Positive(t, iv.Length())
			inBand += iv.Length()
		}

		total := inBand + period.Daylight.Duration() + period.Darkness.Duration()
		assert.InDelta(t, float64(24*time.Hour), float64(total), float64(2*time.Second),
			"lat %v lon %v", coords.Lat, coords.Lon)
	}
}

func TestMagicHour_MatchesGoldenHourReference(t *testing.T) {
	at := time.Date(2025, time.March, 20, 12, 0, 0, 0, mst())
	period, err := horizon.MagicHourAt(phoenix, at)
	require.NoError(t, err)

	// A mid-latitude equinox day has a morning window and an evening
	// window.
	require.Len(t, period.Intervals, 2)
	morning, evening := period.Intervals[0], period.Intervals[1]

	times := suncalc.GetTimes(at, phoenix.Lat, phoenix.Lon)
	refMorningEnd := times[suncalc.GoldenHourEnd].Value   // Sun climbs through +6
	refEveningStart := times[suncalc.GoldenHour].Value    // Sun drops through +6

	assert.LessOrEqual(t, diffMinutes(morning.Finish.Time, refMorningEnd), 10.0,
		"morning band top at %v, reference %v", morning.Finish.Time, refMorningEnd)
	assert.LessOrEqual(t, diffMinutes(evening.Start.Time, refEveningStart), 10.0,
		"evening band top at %v, reference %v", evening.Start.Time, refEveningStart)

	// Interior boundaries are genuine crossings and carry azimuths.
	for _, iv := range period.Intervals {
		require.NotNil(t, iv.Start.Azimuth)
		require.NotNil(t, iv.Finish.Azimuth)
		assert.GreaterOrEqual(t, *iv.Start.Azimuth, 0.0)
		assert.Less(t, *iv.Start.Azimuth, 360.0)
	}
}

// Around the Murmansk summer solstice the Sun grazes the band without
// ever leaving daylight-or-band, so darkness is zero and any interval
// touching midnight has edge boundaries without azimuths.
func TestMagicHour_PolarGrazing(t *testing.T) {
	at := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)
	period, err := horizon.MagicHourAt(murmansk, at)
	require.NoError(t, err)

	assert.EqualValues(t, 0, period.Darkness.Millis())
	require.NotEmpty(t, period.Intervals)

	start := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 22, 0, 0, 0, 0, time.UTC)
	first := period.Intervals[0]
	last := period.Intervals[len(period.Intervals)-1]
	if first.Start.Time.Equal(start) {
		assert.Nil(t, first.Start.Azimuth)
	}
	if last.Finish.Time.Equal(end) {
		assert.Nil(t, last.Finish.Azimuth)
	}
}

// In polar night the Sun never reaches the band: no intervals, no
// daylight, 24h darkness.
func TestMagicHour_PolarNight(t *testing.T) {
	// Alert, Nunavut in deep winter; the Sun stays below -4 the whole day.
	coords := horizon.Coordinates{Lat: 82.5018, Lon: -62.3481}
	at := time.Date(2025, time.December, 21, 12, 0, 0, 0, time.UTC)

	period, err := horizon.MagicHourAt(coords, at)
	require.NoError(t, err)

	assert.Empty(t, period.Intervals)
	assert.EqualValues(t, 0, period.Daylight.Millis())
	assert.InDelta(t, float64(86400000), float64(period.Darkness.Millis()), 1000)
}

func TestMagicHour_IntervalsChronological(t *testing.T) {
	at := time.Date(2025, time.October, 5, 12, 0, 0, 0, time.UTC)
	period, err := horizon.MagicHourAt(horizon.Coordinates{Lat: 51.5074, Lon: -0.1278}, at)
	require.NoError(t, err)

	for i := 1; i < len(period.Intervals); i++ {
		assert.True(t, period.Intervals[i].Start.Time.After(period.Intervals[i-1].Finish.Time) ||
			period.Intervals[i].Start.Time.Equal(period.Intervals[i-1].Finish.Time))
	}
	for _, iv := range period.Intervals {
		assert.True(t, iv.Finish.Time.After(iv.Start.Time))
	}
}
