package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

func TestDwellPolicy_Interval(t *testing.T) {
	tests := []struct {
		name     string
		mode     DwellMode
		duration int64
		offset   int64
		want     time.Duration
	}{
		{name: "short_full short media plays fully", mode: DwellShortFull, duration: 45, want: 45 * time.Second},
		{name: "short_full just below threshold", mode: DwellShortFull, duration: 299, want: 299 * time.Second},
		{name: "short_full at threshold uses fixed", mode: DwellShortFull, duration: 300, offset: 120, want: 30 * time.Second},
		{name: "short_full unknown duration uses fixed", mode: DwellShortFull, duration: 0, want: 30 * time.Second},
		{name: "remaining from offset", mode: DwellRemaining, duration: 600, offset: 450, want: 150 * time.Second},
		{name: "remaining from start", mode: DwellRemaining, duration: 90, want: 90 * time.Second},
		{name: "remaining offset past end uses fixed", mode: DwellRemaining, duration: 60, offset: 60, want: 30 * time.Second},
		{name: "remaining unknown duration uses fixed", mode: DwellRemaining, duration: 0, want: 30 * time.Second},
		{name: "fixed ignores duration", mode: DwellFixed, duration: 10, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := DefaultDwellPolicy()
			policy.Mode = tt.mode

			got := policy.Interval(playlist.Entry{Reference: "clip", DurationSeconds: tt.duration}, tt.offset)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDwellPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultDwellPolicy().Validate())

	bad := DefaultDwellPolicy()
	bad.Mode = "forever"
	assert.Error(t, bad.Validate())

	bad = DefaultDwellPolicy()
	bad.Fixed = 0
	assert.Error(t, bad.Validate())

	bad = DefaultDwellPolicy()
	bad.ShortThreshold = 0
	assert.Error(t, bad.Validate())

	// threshold only matters for short_full
	fixed := DwellPolicy{Mode: DwellFixed, Fixed: time.Minute}
	assert.NoError(t, fixed.Validate())
}
