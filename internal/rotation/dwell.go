package rotation

import (
	"fmt"
	"time"

	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

// DwellMode names a policy for how long an entry stays selected
type DwellMode string

const (
	// DwellShortFull plays short media for its full duration and dwells a fixed time on long media
	DwellShortFull DwellMode = "short_full"

	// DwellRemaining dwells for the rest of the media from the chosen start offset
	DwellRemaining DwellMode = "remaining"

	// DwellFixed always dwells a fixed time
	DwellFixed DwellMode = "fixed"
)

const (
	// DefaultShortThreshold is the duration below which media counts as short
	DefaultShortThreshold int64 = 300

	// DefaultFixedDwell is the dwell used for long or unknown-length media
	DefaultFixedDwell = 30 * time.Second
)

// DwellPolicy computes the dwell interval for a selected entry.
// Unknown durations (0) always fall back to the fixed dwell so the
// scheduler never re-arms with a zero interval.
type DwellPolicy struct {
	Mode           DwellMode
	ShortThreshold int64
	Fixed          time.Duration
}

// DefaultDwellPolicy returns the short_full policy with a 300s threshold and 30s fixed dwell
func DefaultDwellPolicy() DwellPolicy {
	return DwellPolicy{
		Mode:           DwellShortFull,
		ShortThreshold: DefaultShortThreshold,
		Fixed:          DefaultFixedDwell,
	}
}

// Validate checks that the policy is usable
func (p DwellPolicy) Validate() error {
	switch p.Mode {
	case DwellShortFull, DwellRemaining, DwellFixed:
	default:
		return fmt.Errorf("invalid dwell mode: %q", p.Mode)
	}
	if p.Fixed <= 0 {
		return fmt.Errorf("invalid fixed dwell: %v (must be > 0)", p.Fixed)
	}
	if p.Mode == DwellShortFull && p.ShortThreshold <= 0 {
		return fmt.Errorf("invalid short threshold: %d (must be > 0)", p.ShortThreshold)
	}
	return nil
}

// Interval returns how long entry stays selected when playback starts at startOffset
func (p DwellPolicy) Interval(entry playlist.Entry, startOffset int64) time.Duration {
	if !entry.HasDuration() {
		return p.Fixed
	}

	switch p.Mode {
	case DwellShortFull:
		if entry.DurationSeconds < p.ShortThreshold {
			return seconds(entry.DurationSeconds)
		}
		return p.Fixed
	case DwellRemaining:
		remaining := entry.DurationSeconds - startOffset
		if remaining <= 0 {
			return p.Fixed
		}
		return seconds(remaining)
	default:
		return p.Fixed
	}
}

func seconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
