package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_Breakdown(t *testing.T) {
	target := time.Date(2025, 6, 5, 3, 0, 0, 0, time.UTC)

	got := Tick(target.Add(-90061*time.Second), target)

	assert.Equal(t, Value{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, got)
}

func TestTick_TargetReached(t *testing.T) {
	target := time.Date(2025, 6, 5, 3, 0, 0, 0, time.UTC)

	assert.True(t, Tick(target, target).IsZero())
	assert.True(t, Tick(target.Add(time.Nanosecond), target).IsZero())
	assert.Equal(t, Value{}, Tick(target.Add(72*time.Hour), target))
}

func TestTick_FieldRanges(t *testing.T) {
	target := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5000; i++ {
		v := Tick(now.Add(time.Duration(i)*7919*time.Second), target)
		require.GreaterOrEqual(t, v.Days, int64(0))
		require.True(t, v.Hours >= 0 && v.Hours < 24)
		require.True(t, v.Minutes >= 0 && v.Minutes < 60)
		require.True(t, v.Seconds >= 0 && v.Seconds < 60)
	}
}

func TestTick_TruncatesFractions(t *testing.T) {
	target := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	got := Tick(target.Add(-1500*time.Millisecond), target)

	assert.Equal(t, Value{Seconds: 1}, got)
}

func TestTick_IndependentOfLocation(t *testing.T) {
	target, err := ParseTarget("2025-06-05T00:00:00", "-03:00")
	require.NoError(t, err)

	nowUTC := time.Date(2025, 6, 4, 2, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	assert.Equal(t, Tick(nowUTC, target), Tick(nowUTC.In(tokyo), target))
	assert.Equal(t, Value{Days: 1, Hours: 1}, Tick(nowUTC, target))
}

func TestValue_Format(t *testing.T) {
	v := Value{Days: 12, Hours: 3, Minutes: 4, Seconds: 5}

	assert.Equal(t, "12 Dia(s), 03:04:05", v.Format("Dia(s)"))
	assert.Equal(t, "0 days, 00:00:00", Value{}.Format("days"))
}

func TestParseUTCOffset(t *testing.T) {
	tests := []struct {
		name    string
		offset  string
		want    int
		wantErr bool
	}{
		{name: "negative hours", offset: "-03:00", want: -3 * 3600},
		{name: "positive with minutes", offset: "+05:30", want: 5*3600 + 30*60},
		{name: "compact form", offset: "+0545", want: 5*3600 + 45*60},
		{name: "hours only", offset: "-3", want: -3 * 3600},
		{name: "zulu", offset: "Z", want: 0},
		{name: "empty is utc", offset: "", want: 0},
		{name: "missing sign", offset: "03:00", wantErr: true},
		{name: "garbage", offset: "-ab:cd", wantErr: true},
		{name: "out of range", offset: "+15:00", wantErr: true},
	}

	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseUTCOffset(tt.offset)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOffset)
				return
			}
			require.NoError(t, err)
			_, off := ref.In(loc).Zone()
			assert.Equal(t, tt.want, off)
		})
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("2025-06-05T00:00:00", "-03:00")
	require.NoError(t, err)
	assert.True(t, target.Equal(time.Date(2025, 6, 5, 3, 0, 0, 0, time.UTC)))

	_, err = ParseTarget("June 5th", "-03:00")
	assert.Error(t, err)

	_, err = ParseTarget("2025-06-05T00:00:00", "brasilia")
	assert.ErrorIs(t, err, ErrInvalidOffset)
}
