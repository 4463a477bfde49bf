package horizon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClock(t *testing.T) {
	c, err := NewClock(6, 4, 30)
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 6, Minute: 4, Second: 30}, c)

	tests := []struct {
		name    string
		h, m, s int
	}{
		{"hour 25", 25, 0, 0},
		{"hour 24", 24, 0, 0},
		{"hour -1", -1, 0, 0},
		{"minute 60", 0, 60, 0},
		{"second 60", 0, 0, 60},
		{"second -1", 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClock(tt.h, tt.m, tt.s)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestClockMillisRoundTrip(t *testing.T) {
	cases := []int64{
		0,
		1,
		999,
		1000,
		60 * 1000,
		3600 * 1000,
		86399999,
		86400000,
		86400001,
		3*millisPerDay + 23*3600000 + 59*60000 + 59000 + 999,
		-1,
		-1000,
		-86400000,
		-90061001,
	}
	for _, ms := range cases {
		c := ClockFromMillis(ms)
		assert.Equal(t, ms, c.Millis(), "round trip for %d ms (%v)", ms, c)
		assert.GreaterOrEqual(t, c.Hour, 0)
		assert.LessOrEqual(t, c.Hour, 23)
		assert.GreaterOrEqual(t, c.Minute, 0)
		assert.LessOrEqual(t, c.Minute, 59)
		assert.GreaterOrEqual(t, c.Second, 0)
		assert.LessOrEqual(t, c.Second, 59)
	}
}

func TestClockFromMillisNormalizes(t *testing.T) {
	c := ClockFromMillis(-1000)
	assert.Equal(t, Clock{Days: -1, Hour: 23, Minute: 59, Second: 59}, c)

	c = ClockFromMillis(millisPerDay + 3600000)
	assert.Equal(t, Clock{Days: 1, Hour: 1}, c)
}

func TestClockOf(t *testing.T) {
	ref := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	c := ClockOf(time.Date(2025, time.March, 20, 18, 10, 5, 0, time.UTC), ref)
	assert.Equal(t, Clock{Hour: 18, Minute: 10, Second: 5}, c)

	c = ClockOf(time.Date(2025, time.March, 21, 2, 0, 0, 0, time.UTC), ref)
	assert.Equal(t, Clock{Days: 1, Hour: 2}, c)

	c = ClockOf(time.Date(2025, time.March, 19, 23, 59, 59, 0, time.UTC), ref)
	assert.Equal(t, Clock{Days: -1, Hour: 23, Minute: 59, Second: 59}, c)
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "06:04:00", Clock{Hour: 6, Minute: 4}.String())
	assert.Equal(t, "1d 00:00:00", Clock{Days: 1}.String())
}
