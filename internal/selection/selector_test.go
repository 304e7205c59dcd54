package selection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

// scriptedRand replays a fixed sequence of draws and records the bounds it was asked for
type scriptedRand struct {
	t      *testing.T
	values []int
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.t.Helper()
	require.NotEmpty(r.t, r.values, "scripted rand exhausted")
	v := r.values[0]
	r.values = r.values[1:]
	r.bounds = append(r.bounds, n)
	require.True(r.t, v >= 0 && v < n, "scripted value %d outside [0, %d)", v, n)
	return v
}

// Helper function to build entries with the given durations
func createTestEntries(durations ...int64) []playlist.Entry {
	entries := make([]playlist.Entry, len(durations))
	for i, d := range durations {
		entries[i] = playlist.Entry{Reference: string(rune('a' + i%26)), DurationSeconds: d}
	}
	return entries
}

func TestSelectNext_SingleEntryAlwaysZero(t *testing.T) {
	entries := createTestEntries(120)
	rng := rand.New(rand.NewPCG(1, 2))
	sel := NewSelector(WithRand(rng))

	for _, previous := range []int{NoPrevious, 0, 5, 99} {
		pick := sel.SelectNext(entries, previous)
		assert.Equal(t, 0, pick.Index, "previous=%d", previous)
	}
}

func TestSelectNext_NeverRepeatsPrevious(t *testing.T) {
	for _, n := range []int{2, 3, 10, rejectionLimit, rejectionLimit + 1, 500} {
		durations := make([]int64, n)
		entries := createTestEntries(durations...)
		sel := NewSelector(WithRand(rand.New(rand.NewPCG(uint64(n), 7))))

		previous := NoPrevious
		for i := 0; i < 2000; i++ {
			pick := sel.SelectNext(entries, previous)
			require.NotEqual(t, previous, pick.Index, "n=%d iteration=%d", n, i)
			require.GreaterOrEqual(t, pick.Index, 0)
			require.Less(t, pick.Index, n)
			previous = pick.Index
		}
	}
}

func TestSelectNext_RejectionSamplingRedraws(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{1, 1, 1, 2}}
	sel := NewSelector(WithRand(rng))

	pick := sel.SelectNext(createTestEntries(10, 10, 10), 1)

	assert.Equal(t, 2, pick.Index)
	assert.Equal(t, []int{3, 3, 3, 3}, rng.bounds)
	assert.Equal(t, int64(0), pick.StartOffset)
}

func TestSelectNext_LargeListSkipsExcludedIndex(t *testing.T) {
	durations := make([]int64, 100)
	entries := createTestEntries(durations...)

	tests := []struct {
		name string
		draw int
		want int
	}{
		{name: "below excluded", draw: 9, want: 9},
		{name: "at excluded", draw: 10, want: 11},
		{name: "last candidate", draw: 98, want: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{t: t, values: []int{tt.draw}}
			sel := NewSelector(WithRand(rng))

			pick := sel.SelectNext(entries, 10)

			assert.Equal(t, tt.want, pick.Index)
			assert.Equal(t, []int{99}, rng.bounds)
		})
	}
}

func TestSelectNext_NoPreviousDrawsFullRange(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{2}}
	sel := NewSelector(WithRand(rng))

	pick := sel.SelectNext(createTestEntries(1, 2, 3), NoPrevious)

	assert.Equal(t, 2, pick.Index)
	assert.Equal(t, []int{3}, rng.bounds)
}

func TestStartOffset_ThresholdMode(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	sel := NewSelector(WithRand(rng), WithOffsetMode(OffsetThreshold))

	for _, d := range []int64{0, 1, 30, 299} {
		for i := 0; i < 100; i++ {
			assert.Equal(t, int64(0), sel.StartOffset(playlist.Entry{Reference: "x", DurationSeconds: d}))
		}
	}

	for _, d := range []int64{300, 301, 3600} {
		for i := 0; i < 500; i++ {
			off := sel.StartOffset(playlist.Entry{Reference: "x", DurationSeconds: d})
			require.GreaterOrEqual(t, off, int64(0))
			require.Less(t, off, d)
		}
	}
}

func TestStartOffset_ThresholdModeUsesDraw(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{250}}
	sel := NewSelector(WithRand(rng))

	pick := sel.SelectNext(createTestEntries(600), NoPrevious)

	// single entry consumes no index draw, so the only draw is the offset
	assert.Equal(t, 0, pick.Index)
	assert.Equal(t, int64(250), pick.StartOffset)
	assert.Equal(t, []int{600}, rng.bounds)
}

func TestStartOffset_AlwaysMode(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{17}}
	sel := NewSelector(WithRand(rng), WithOffsetMode(OffsetAlways))

	off := sel.StartOffset(playlist.Entry{Reference: "x", DurationSeconds: 30})
	assert.Equal(t, int64(17), off)
	assert.Equal(t, []int{30}, rng.bounds)

	// Unknown duration never draws
	assert.Equal(t, int64(0), sel.StartOffset(playlist.Entry{Reference: "y"}))
	assert.Len(t, rng.bounds, 1)
}

func TestStartOffset_CustomThreshold(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{42}}
	sel := NewSelector(WithRand(rng), WithOffsetThreshold(60))

	assert.Equal(t, int64(0), sel.StartOffset(playlist.Entry{Reference: "x", DurationSeconds: 59}))
	assert.Equal(t, int64(42), sel.StartOffset(playlist.Entry{Reference: "x", DurationSeconds: 60}))
}

func TestNewSelector_Defaults(t *testing.T) {
	sel := NewSelector(WithOffsetMode("sometimes"), WithRand(nil), WithOffsetThreshold(-1))

	assert.Equal(t, OffsetThreshold, sel.Mode())
	assert.Equal(t, DefaultOffsetThreshold, sel.threshold)
	assert.NotNil(t, sel.rng)
}
